package outfit

// Log is the append-only, branch-discarding history of session snapshots.
// Undo and redo only move the cursor; snapshots are never mutated.
type Log struct {
	snapshots []State
	cursor    int
}

// NewLog creates a log containing the initial snapshot with the cursor on it.
func NewLog(initial State) *Log {
	return &Log{snapshots: []State{initial}}
}

// Current returns the snapshot under the cursor.
func (l *Log) Current() State {
	return l.snapshots[l.cursor]
}

// Cursor returns the cursor position.
func (l *Log) Cursor() int { return l.cursor }

// Len returns the number of snapshots.
func (l *Log) Len() int { return len(l.snapshots) }

// CanUndo reports whether a snapshot exists before the cursor.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether a snapshot exists beyond the cursor.
func (l *Log) CanRedo() bool { return l.cursor < len(l.snapshots)-1 }

// Undo moves the cursor back one snapshot. No-op at the boundary.
func (l *Log) Undo() State {
	if l.CanUndo() {
		l.cursor--
	}
	return l.Current()
}

// Redo moves the cursor forward one snapshot. No-op at the boundary.
func (l *Log) Redo() State {
	if l.CanRedo() {
		l.cursor++
	}
	return l.Current()
}

// PeekRedo returns the snapshot just beyond the cursor, if any.
func (l *Log) PeekRedo() (State, bool) {
	if !l.CanRedo() {
		return State{}, false
	}
	return l.snapshots[l.cursor+1], true
}

// Record truncates the log to the cursor, appends the snapshot, and moves
// the cursor onto it. Any redo-able future is discarded. This is the only
// way new snapshots enter the log.
func (l *Log) Record(next State) State {
	l.snapshots = append(l.snapshots[:l.cursor+1], next)
	l.cursor = len(l.snapshots) - 1
	return next
}
