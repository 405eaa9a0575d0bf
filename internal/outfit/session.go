package outfit

import (
	"sync"

	"github.com/fitform/fitform/internal/errors"
)

// Session is the outfit/pose history state machine for one try-on session.
// It is Empty until a model is finalized, then Active with a history log.
//
// All mutations happen from a single logical flow of control: operations
// acquire the session before doing anything, and synthesis-backed operations
// hold it across the remote call, so no two synthesis calls are ever in
// flight at once and no history mutation can interleave with one.
type Session struct {
	mu   sync.Mutex
	busy bool

	originalImage string
	modelImage    string
	log           *Log
}

// NewSession creates an Empty session.
func NewSession() *Session {
	return &Session{}
}

// Acquire marks the session busy for the duration of one operation.
// Returns a BUSY error if another operation holds it. Callers must pair
// every successful Acquire with Release on all exit paths.
func (s *Session) Acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return errors.NewBusy()
	}
	s.busy = true
	return nil
}

// Release clears the busy flag.
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// Busy reports whether an operation is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Active reports whether a model has been finalized.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log != nil
}

// FinalizeModel transitions Empty → Active: a one-layer history holding the
// model image under the first pose, and a log containing that single
// snapshot. Only valid from Empty.
func (s *Session) FinalizeModel(originalImage, modelImage string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.log != nil {
		return State{}, errors.NewPrecondition("model already finalized; reset the session first")
	}
	if modelImage == "" {
		return State{}, errors.NewPrecondition("finalize requires a model image")
	}

	s.originalImage = originalImage
	s.modelImage = modelImage
	initial := NewState([]*Layer{NewBaseLayer(modelImage)}, 0, 0)
	s.log = NewLog(initial)
	return initial, nil
}

// Current returns the snapshot under the cursor. ok is false while Empty.
func (s *Session) Current() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return State{}, false
	}
	return s.log.Current(), true
}

// Record appends a new snapshot, discarding any redo-able future.
func (s *Session) Record(next State) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return State{}, errors.NewPrecondition("cannot record before a model is finalized")
	}
	return s.log.Record(next), nil
}

// RecordOrAdvance records next — unless the snapshot just beyond the cursor
// already equals it, in which case the cursor advances onto it instead of
// truncating the branch. This keeps the redo tail alive when re-selecting a
// garment that exactly matches the discarded next layer.
func (s *Session) RecordOrAdvance(next State) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return State{}, errors.NewPrecondition("cannot record before a model is finalized")
	}
	if peek, ok := s.log.PeekRedo(); ok && peek.Equal(next) {
		return s.log.Redo(), nil
	}
	return s.log.Record(next), nil
}

// Undo moves the cursor back one snapshot; no-op at the boundary.
func (s *Session) Undo() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return State{}, errors.NewPrecondition("nothing to undo: no model finalized")
	}
	return s.log.Undo(), nil
}

// Redo moves the cursor forward one snapshot; no-op at the boundary.
func (s *Session) Redo() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return State{}, errors.NewPrecondition("nothing to redo: no model finalized")
	}
	return s.log.Redo(), nil
}

// CanUndo reports whether undo would move the cursor.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log != nil && s.log.CanUndo()
}

// CanRedo reports whether redo would move the cursor.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log != nil && s.log.CanRedo()
}

// RemoveLastGarment deactivates the top garment layer, recording a new
// snapshot with the pose reset. The layer stays in the stack for redo.
func (s *Session) RemoveLastGarment() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return State{}, errors.NewPrecondition("no model finalized")
	}
	cur := s.log.Current()
	if cur.OutfitIndex == 0 {
		return State{}, errors.NewInvalidRequest("no garment to remove: only the base layer is active")
	}
	next := NewState(cur.Layers, cur.OutfitIndex-1, 0)
	return s.log.Record(next), nil
}

// Reset returns the session to Empty, discarding the entire log.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.originalImage = ""
	s.modelImage = ""
	s.log = nil
}

// OriginalImage returns the user's uploaded photo, or "" while Empty.
func (s *Session) OriginalImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.originalImage
}

// ModelImage returns the finalized model image, or "" while Empty.
func (s *Session) ModelImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modelImage
}

// DisplayImage resolves the image to show right now: the current snapshot's
// display image, falling back to the model image, or "" while Empty.
func (s *Session) DisplayImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return ""
	}
	if img, ok := s.log.Current().DisplayImage(); ok {
		return img
	}
	return s.modelImage
}

// HistoryCursor returns the log cursor and length, both 0 while Empty.
func (s *Session) HistoryCursor() (cursor, length int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return 0, 0
	}
	return s.log.Cursor(), s.log.Len()
}
