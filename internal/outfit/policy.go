package outfit

import "github.com/fitform/fitform/internal/wardrobe"

// GarmentAction classifies what applying a garment to the current state
// means.
type GarmentAction int

const (
	// GarmentRedo re-activates the already-built next layer; no synthesis.
	GarmentRedo GarmentAction = iota

	// GarmentReplace swaps out an active layer of the same category,
	// discarding it and everything stacked on top of it.
	GarmentReplace

	// GarmentAppend stacks the garment on the current top layer.
	GarmentAppend
)

// GarmentDecision is the outcome of the selection policy: what kind of
// apply this is and which layer index becomes the base the new layer is
// synthesized against (meaningless for GarmentRedo).
type GarmentDecision struct {
	Action    GarmentAction
	BaseIndex int
}

// DecideGarment applies the selection rules for choosing garment g in
// state s:
//
//  1. If the layer just beyond the active index already holds g, this is a
//     redo: the user undid the garment and picked it again, so re-applying
//     is free.
//  2. If an active layer carries the same category, the new layer replaces
//     it: the base is the layer beneath the match, and the match plus
//     everything above it is discarded.
//  3. Otherwise the garment is appended on top of the current layer.
func DecideGarment(s State, g *wardrobe.Item) GarmentDecision {
	if next := s.OutfitIndex + 1; next < len(s.Layers) {
		beyond := s.Layers[next]
		if beyond.Garment != nil && beyond.Garment.ID == g.ID {
			return GarmentDecision{Action: GarmentRedo}
		}
	}

	for p, layer := range s.ActiveLayers() {
		if layer.Garment == nil || layer.Garment.Category != g.Category {
			continue
		}
		if p > 0 {
			return GarmentDecision{Action: GarmentReplace, BaseIndex: p - 1}
		}
		// Layer 0 never carries a garment; fall through to append if it
		// somehow matched.
		break
	}

	return GarmentDecision{Action: GarmentAppend, BaseIndex: s.OutfitIndex}
}
