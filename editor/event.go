package editor

import (
	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/model"
	"github.com/shodgson/contentmodel-go/transform"
	"golang.org/x/net/html"
)

// Change sources reported by ContentChangedEvent.
const (
	ChangeSourceFormat = "Format"
	ChangeSourcePaste  = "Paste"
	ChangeSourceUndo   = "Undo"
	ChangeSourceRedo   = "Redo"
	ChangeSourceInsert = "InsertEntity"
)

// Event is something the editor tells its plugins about.
type Event interface {
	isEvent()
}

// ContentChangedEvent is sent after an edit is written back.
type ContentChangedEvent struct {
	// Model is the model written back. It is nil after undo and redo.
	Model   *model.Document
	Range   *dom.Range
	Source  string
	Data    any
	APIName string
}

// EntityInfo describes an entity to its owner.
type EntityInfo struct {
	ID         string
	Type       string
	IsReadonly bool
	Wrapper    *html.Node
}

// EntityOperationEvent tells the owner of an entity that it was removed.
type EntityOperationEvent struct {
	Entity    EntityInfo
	Operation transform.EntityOperation
	RawEvent  any
}

func (*ContentChangedEvent) isEvent()  {}
func (*EntityOperationEvent) isEvent() {}

// EventDispatcher receives the events of an editor.
type EventDispatcher interface {
	Dispatch(event Event)
}

// EventDispatcherFunc adapts a function to EventDispatcher.
type EventDispatcherFunc func(event Event)

func (f EventDispatcherFunc) Dispatch(event Event) { f(event) }
