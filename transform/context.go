// Package transform implements the edits applied to a content model: the
// removal of selected content, inline and block formatting, lists, and
// pasting one model into another. Edits work in place on the model and
// report what they changed; writing the model back to the DOM is left to
// the caller.
package transform

import "github.com/shodgson/contentmodel-go/model"

// EntityOperation tells an entity owner why its entity is being removed.
type EntityOperation int

const (
	// Overwrite is used when the entity is part of a selection being
	// replaced or deleted.
	Overwrite EntityOperation = iota
	// RemoveFromStart is used by a forward delete reaching the entity.
	RemoveFromStart
	// RemoveFromEnd is used by a backward delete reaching the entity.
	RemoveFromEnd
)

var entityOperationNames = [...]string{"Overwrite", "RemoveFromStart", "RemoveFromEnd"}

func (op EntityOperation) String() string { return entityOperationNames[op] }

// DeletedEntity is an entity removed from the model by an edit.
type DeletedEntity struct {
	Entity    *model.Entity
	Operation EntityOperation
}

// FormatContext collects the side effects of an edit that can only be
// carried out once the model is written back: entities to register or
// unregister, and the undo behaviour.
type FormatContext struct {
	NewEntities     []*model.Entity
	DeletedEntities []DeletedEntity
	// RawEvent is the event that triggered the edit, if any.
	RawEvent any
	// SkipUndoSnapshot writes the model back without an undo snapshot.
	SkipUndoSnapshot bool
	// NewPendingFormat is set when an edit formats a collapsed selection:
	// the format applies to the next typed text.
	NewPendingFormat *model.Format
}

func (fc *FormatContext) addDeleted(e *model.Entity, op EntityOperation) {
	if fc != nil {
		fc.DeletedEntities = append(fc.DeletedEntities, DeletedEntity{Entity: e, Operation: op})
	}
}

func (fc *FormatContext) addNew(e *model.Entity) {
	if fc != nil {
		fc.NewEntities = append(fc.NewEntities, e)
	}
}
