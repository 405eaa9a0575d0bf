package ops

import "context"

// Undo moves the history cursor back one snapshot; no-op at the boundary.
func Undo(_ context.Context, st *Studio) (*StateOutput, error) {
	if err := st.Session.Acquire(); err != nil {
		return nil, err
	}
	defer st.Session.Release()

	if _, err := st.Session.Undo(); err != nil {
		return nil, err
	}
	return projectState(st, false), nil
}

// Redo moves the history cursor forward one snapshot; no-op at the boundary.
func Redo(_ context.Context, st *Studio) (*StateOutput, error) {
	if err := st.Session.Acquire(); err != nil {
		return nil, err
	}
	defer st.Session.Release()

	if _, err := st.Session.Redo(); err != nil {
		return nil, err
	}
	return projectState(st, false), nil
}

// RemoveGarment deactivates the top garment layer; the layer stays
// available for redo.
func RemoveGarment(_ context.Context, st *Studio) (*StateOutput, error) {
	if err := st.Session.Acquire(); err != nil {
		return nil, err
	}
	defer st.Session.Release()

	if _, err := st.Session.RemoveLastGarment(); err != nil {
		return nil, err
	}
	return projectState(st, false), nil
}

// Reset discards the session's entire history and returns it to Empty.
// The wardrobe keeps any uploads for the rest of the session.
func Reset(_ context.Context, st *Studio) (*StateOutput, error) {
	if err := st.Session.Acquire(); err != nil {
		return nil, err
	}
	defer st.Session.Release()

	st.Session.Reset()
	return projectState(st, false), nil
}

// State returns the current rendering projection. Read-only; callable even
// while a synthesis call is in flight.
func State(_ context.Context, st *Studio) (*StateOutput, error) {
	return projectState(st, st.Session.Busy()), nil
}
