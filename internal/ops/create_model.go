package ops

import (
	"context"

	"github.com/fitform/fitform/internal/errors"
)

// CreateModelInput contains parameters for the CreateModel operation.
type CreateModelInput struct {
	// UserPhoto is the uploaded photo reference the model is derived from.
	UserPhoto string
}

// CreateModel synthesizes the personal model image from the user's photo
// and finalizes it as the session's base layer. Only valid while the
// session is Empty.
func CreateModel(ctx context.Context, st *Studio, input CreateModelInput) (*StateOutput, error) {
	if input.UserPhoto == "" {
		return nil, errors.NewInvalidRequest("user_photo is required")
	}

	if err := st.Session.Acquire(); err != nil {
		return nil, err
	}
	defer st.Session.Release()

	if st.Session.Active() {
		return nil, errors.NewPrecondition("model already finalized; reset the session first")
	}

	modelImage, err := st.Synth.GenerateModelImage(ctx, input.UserPhoto)
	if err != nil {
		return nil, err
	}

	if _, err := st.Session.FinalizeModel(input.UserPhoto, modelImage); err != nil {
		return nil, err
	}

	return projectState(st, false), nil
}
