package synth

import (
	"context"
	"testing"

	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/wardrobe"
)

func TestFake_DeterministicRefs(t *testing.T) {
	f := NewFake()
	ctx := context.Background()

	a, err := f.GenerateModelImage(ctx, "photo")
	if err != nil {
		t.Fatalf("GenerateModelImage failed: %v", err)
	}
	b, err := f.GenerateTryOnImage(ctx, a, "garment", wardrobe.CategoryShirt)
	if err != nil {
		t.Fatalf("GenerateTryOnImage failed: %v", err)
	}

	if a == b {
		t.Error("successive refs should differ")
	}
	if f.Calls() != 2 {
		t.Errorf("Calls = %d, want 2", f.Calls())
	}
}

func TestFake_Fail(t *testing.T) {
	f := NewFake()
	f.Fail = errors.NewSynthesis("down")

	if _, err := f.GeneratePoseVariation(context.Background(), "img", "pose"); !errors.Is(err, errors.ErrSynthesis) {
		t.Errorf("err = %v, want SYNTHESIS_FAILED", err)
	}
	if f.Calls() != 0 {
		t.Errorf("failed calls should not count, got %d", f.Calls())
	}
}
