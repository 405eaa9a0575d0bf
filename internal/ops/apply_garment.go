package ops

import (
	"context"

	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/outfit"
	"github.com/fitform/fitform/internal/wardrobe"
)

// ApplyGarmentInput contains parameters for the ApplyGarment operation.
// Address an existing wardrobe item by ItemID, or describe an ad-hoc upload
// with Name, ImageRef and Category; a new id is minted for uploads.
type ApplyGarmentInput struct {
	ItemID string

	Name     string
	ImageRef string
	Category string
}

// ApplyGarment layers a garment onto the model. Depending on the current
// state this is a free redo of an undone layer, a same-category replacement,
// or a plain append; only the latter two synthesize. On success an uploaded
// garment joins the wardrobe; on failure nothing changes at all.
func ApplyGarment(ctx context.Context, st *Studio, input ApplyGarmentInput) (*StateOutput, error) {
	item, err := resolveGarment(st, input)
	if err != nil {
		return nil, err
	}

	if err := st.Session.Acquire(); err != nil {
		return nil, err
	}
	defer st.Session.Release()

	cur, ok := st.Session.Current()
	if !ok {
		return nil, errors.NewPrecondition("finalize a model before applying garments")
	}

	decision := outfit.DecideGarment(cur, item)

	if decision.Action == outfit.GarmentRedo {
		// The undone layer is re-activated as-is; no synthesis call.
		next := outfit.NewState(cur.Layers, cur.OutfitIndex+1, 0)
		if _, err := st.Session.RecordOrAdvance(next); err != nil {
			return nil, err
		}
		return projectState(st, false), nil
	}

	base := cur.Layers[decision.BaseIndex]
	poseLabel := outfit.PoseLabelAt(cur.PoseIndex)
	baseImage, err := baseImageFor(base, poseLabel)
	if err != nil {
		return nil, err
	}

	tryOnImage, err := st.Synth.GenerateTryOnImage(ctx, baseImage, item.URL, item.Category)
	if err != nil {
		return nil, err
	}

	// Keep everything up to the base, discard the rest of the old branch.
	stack := make([]*outfit.Layer, decision.BaseIndex+1, decision.BaseIndex+2)
	copy(stack, cur.Layers[:decision.BaseIndex+1])
	stack = append(stack, outfit.NewGarmentLayer(item, poseLabel, tryOnImage))

	next := outfit.NewState(stack, decision.BaseIndex+1, cur.PoseIndex)
	if _, err := st.Session.Record(next); err != nil {
		return nil, err
	}

	// Uploads only become selectable wardrobe entries once the apply
	// succeeded.
	if _, err := st.Catalog.AddIfAbsent(*item); err != nil {
		return nil, errors.NewInternal(err)
	}

	return projectState(st, false), nil
}

// resolveGarment turns the input addressing into a wardrobe item.
func resolveGarment(st *Studio, input ApplyGarmentInput) (*wardrobe.Item, error) {
	if input.ItemID != "" {
		if input.Name != "" || input.ImageRef != "" || input.Category != "" {
			return nil, errors.NewInvalidRequest("specify either item_id or an inline garment, not both")
		}
		item, err := st.Catalog.Get(input.ItemID)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		if item == nil {
			return nil, errors.NewNotFound("wardrobe item", input.ItemID)
		}
		return item, nil
	}

	if input.Name == "" || input.ImageRef == "" {
		return nil, errors.NewInvalidRequest("an inline garment needs name, image_ref and category")
	}
	category, err := wardrobe.ParseCategory(input.Category)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	id, err := wardrobe.NewItemID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &wardrobe.Item{
		ID:       id,
		Name:     input.Name,
		URL:      input.ImageRef,
		Category: category,
		Custom:   true,
	}, nil
}
