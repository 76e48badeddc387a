package editor

// Snapshot is the serialized content of the editor at some point.
type Snapshot struct {
	HTML     string
	Metadata map[string]any
}

// SnapshotService records undo history around edits.
type SnapshotService interface {
	// AddUndoSnapshot runs writeBack, which changes the content, and
	// records the change so that it can be undone.
	AddUndoSnapshot(writeBack func(), metadata map[string]any)
}

// undoStack is the in-memory SnapshotService used unless another one is
// configured.
type undoStack struct {
	capture func() string
	undo    []Snapshot
	redo    []Snapshot
	limit   int
}

const defaultUndoLimit = 100

func newUndoStack(capture func() string, limit int) *undoStack {
	if limit <= 0 {
		limit = defaultUndoLimit
	}
	return &undoStack{capture: capture, limit: limit}
}

func (s *undoStack) AddUndoSnapshot(writeBack func(), metadata map[string]any) {
	before := s.capture()
	if writeBack != nil {
		writeBack()
	}
	if s.capture() == before {
		return
	}
	s.undo = append(s.undo, Snapshot{HTML: before, Metadata: metadata})
	if len(s.undo) > s.limit {
		s.undo = s.undo[len(s.undo)-s.limit:]
	}
	s.redo = nil
}

// stepBack returns the snapshot to restore for an undo, and records the
// current content for redo.
func (s *undoStack) stepBack() (Snapshot, bool) {
	n := len(s.undo)
	if n == 0 {
		return Snapshot{}, false
	}
	snapshot := s.undo[n-1]
	s.undo = s.undo[:n-1]
	s.redo = append(s.redo, Snapshot{HTML: s.capture(), Metadata: snapshot.Metadata})
	return snapshot, true
}

func (s *undoStack) stepForward() (Snapshot, bool) {
	n := len(s.redo)
	if n == 0 {
		return Snapshot{}, false
	}
	snapshot := s.redo[n-1]
	s.redo = s.redo[:n-1]
	s.undo = append(s.undo, Snapshot{HTML: s.capture(), Metadata: snapshot.Metadata})
	return snapshot, true
}
