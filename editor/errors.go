package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRoot is returned by New when no root element is given.
	ErrNoRoot = errors.New("editor: no root element")
	// ErrNothingToUndo is returned by Undo with an empty history.
	ErrNothingToUndo = errors.New("editor: nothing to undo")
	// ErrNothingToRedo is returned by Redo when no undone edit is left.
	ErrNothingToRedo = errors.New("editor: nothing to redo")
	// ErrUndoUnavailable is returned by Undo and Redo when a custom
	// snapshot service is in use.
	ErrUndoUnavailable = errors.New("editor: undo is handled by the snapshot service")
)

// FormatError reports a formatter that failed. The model is left unwritten
// when it happens.
type FormatError struct {
	APIName string
	Cause   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("editor: format %q failed: %v", e.APIName, e.Cause)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
