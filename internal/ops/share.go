package ops

import (
	"context"

	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/share"
)

// ShareOutput contains the composed before/after image.
type ShareOutput struct {
	// Image is the encoded composite.
	Image []byte

	// ContentType describes the encoding of Image.
	ContentType string
}

// Share composes the original upload next to the currently displayed look
// into one downloadable image. Requires an active session whose image
// references carry inline data.
func Share(_ context.Context, st *Studio) (*ShareOutput, error) {
	original := st.Session.OriginalImage()
	current := st.Session.DisplayImage()
	if original == "" || current == "" {
		return nil, errors.NewPrecondition("nothing to share: finalize a model first")
	}

	composite, err := share.Compose(original, current)
	if err != nil {
		return nil, errors.NewInvalidInput(err.Error())
	}

	return &ShareOutput{Image: composite, ContentType: "image/jpeg"}, nil
}
