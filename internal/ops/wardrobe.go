package ops

import (
	"context"

	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/wardrobe"
)

// ListWardrobeOutput contains the wardrobe items, defaults first.
type ListWardrobeOutput struct {
	Items []wardrobe.Item `json:"items"`
}

// ListWardrobe returns every selectable garment: the default set plus any
// uploads applied so far this session.
func ListWardrobe(_ context.Context, st *Studio) (*ListWardrobeOutput, error) {
	items, err := st.Catalog.List()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &ListWardrobeOutput{Items: items}, nil
}
