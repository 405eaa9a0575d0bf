// Package synth wraps the external generative-image capability. Image
// payloads and results are opaque references (data URLs in practice); the
// rest of the system never interprets pixel data. The client performs no
// retries and no caching — a failure is terminal for that attempt, and
// caching is the history store's concern.
package synth

import (
	"context"

	"github.com/fitform/fitform/internal/wardrobe"
)

// Client is the boundary to the image synthesis service.
type Client interface {
	// GenerateModelImage turns a user photo into a clean full-body model
	// image suitable for layering garments onto.
	GenerateModelImage(ctx context.Context, userPhoto string) (string, error)

	// GenerateTryOnImage renders the garment onto the base image.
	GenerateTryOnImage(ctx context.Context, baseImage, garmentImage string, category wardrobe.Category) (string, error)

	// GeneratePoseVariation re-renders the base image in the given pose.
	// Garment and body content are pose-invariant, so any existing image of
	// the layer works as the base.
	GeneratePoseVariation(ctx context.Context, baseImage, poseLabel string) (string, error)
}
