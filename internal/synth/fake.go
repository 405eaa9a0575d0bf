package synth

import (
	"context"
	"fmt"
	"sync"

	"github.com/fitform/fitform/internal/wardrobe"
)

// Fake is an in-memory Client for tests and offline runs. It fabricates
// deterministic image references and counts calls; Fail makes every call
// return that error instead.
type Fake struct {
	mu    sync.Mutex
	calls int

	// Fail, when set, is returned by every method.
	Fail error
}

// NewFake creates a Fake that always succeeds.
func NewFake() *Fake {
	return &Fake{}
}

// Calls returns the number of synthesis calls made.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *Fake) next(kind, detail string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return "", f.Fail
	}
	f.calls++
	return fmt.Sprintf("fake://%s/%d/%s", kind, f.calls, detail), nil
}

// GenerateModelImage implements Client.
func (f *Fake) GenerateModelImage(_ context.Context, _ string) (string, error) {
	return f.next("model", "base")
}

// GenerateTryOnImage implements Client.
func (f *Fake) GenerateTryOnImage(_ context.Context, _, _ string, category wardrobe.Category) (string, error) {
	return f.next("tryon", string(category))
}

// GeneratePoseVariation implements Client.
func (f *Fake) GeneratePoseVariation(_ context.Context, _, poseLabel string) (string, error) {
	return f.next("pose", poseLabel)
}
