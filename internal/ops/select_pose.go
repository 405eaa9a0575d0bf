package ops

import (
	"context"
	"fmt"

	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/outfit"
)

// SelectPoseInput contains parameters for the SelectPose operation.
type SelectPoseInput struct {
	// PoseIndex is an index into the master pose list.
	PoseIndex int
}

// SelectPose moves to an explicit master pose. A pose already cached for
// the current layer is a pure cursor move; otherwise the pose is
// synthesized from any existing image of the layer and added to its cache
// before recording.
func SelectPose(ctx context.Context, st *Studio, input SelectPoseInput) (*StateOutput, error) {
	if input.PoseIndex < 0 || input.PoseIndex >= outfit.PoseCount() {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("pose_index must be in [0, %d)", outfit.PoseCount()))
	}

	if err := st.Session.Acquire(); err != nil {
		return nil, err
	}
	defer st.Session.Release()

	cur, ok := st.Session.Current()
	if !ok {
		return nil, errors.NewPrecondition("finalize a model before changing poses")
	}

	return selectPose(ctx, st, cur, input.PoseIndex)
}

// NextPose advances to the next pose: forward through the current layer's
// generated poses first, then the first master pose not yet generated.
func NextPose(ctx context.Context, st *Studio) (*StateOutput, error) {
	if err := st.Session.Acquire(); err != nil {
		return nil, err
	}
	defer st.Session.Release()

	cur, ok := st.Session.Current()
	if !ok {
		return nil, errors.NewPrecondition("finalize a model before changing poses")
	}

	target := outfit.NextPoseIndex(cur.CurrentLayer().Poses, cur.PoseIndex)
	return selectPose(ctx, st, cur, target)
}

// PreviousPose steps back through the current layer's generated poses,
// wrapping within them. It never needs a synthesis call.
func PreviousPose(ctx context.Context, st *Studio) (*StateOutput, error) {
	if err := st.Session.Acquire(); err != nil {
		return nil, err
	}
	defer st.Session.Release()

	cur, ok := st.Session.Current()
	if !ok {
		return nil, errors.NewPrecondition("finalize a model before changing poses")
	}

	target := outfit.PrevPoseIndex(cur.CurrentLayer().Poses, cur.PoseIndex)
	return selectPose(ctx, st, cur, target)
}

// selectPose performs the pose move. The caller holds the busy gate.
func selectPose(ctx context.Context, st *Studio, cur outfit.State, target int) (*StateOutput, error) {
	label := outfit.PoseLabelAt(target)
	layer := cur.CurrentLayer()

	if !layer.Poses.Has(label) {
		_, baseImage, ok := layer.Poses.First()
		if !ok {
			return nil, errors.NewPrecondition("layer has no image to synthesize from")
		}
		image, err := st.Synth.GeneratePoseVariation(ctx, baseImage, label)
		if err != nil {
			return nil, err
		}
		layer.Poses.Add(label, image)
	}

	next := outfit.NewState(cur.Layers, cur.OutfitIndex, target)
	if _, err := st.Session.Record(next); err != nil {
		return nil, err
	}
	return projectState(st, false), nil
}
