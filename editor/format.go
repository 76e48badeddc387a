package editor

import (
	"fmt"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/domtomodel"
	"github.com/shodgson/contentmodel-go/model"
	"github.com/shodgson/contentmodel-go/modeltodom"
	"github.com/shodgson/contentmodel-go/transform"
)

// Formatter changes doc and reports whether it should be written back.
type Formatter func(doc *model.Document, fc *transform.FormatContext) bool

// FormatOptions tune FormatWithModel.
type FormatOptions struct {
	// PreservePendingFormat moves the pending format to the new caret.
	PreservePendingFormat bool
	// ChangeSource is reported in ContentChangedEvent. ChangeSourceFormat
	// when empty.
	ChangeSource string
	// GetChangeData provides the Data of ContentChangedEvent.
	GetChangeData func() any
	// RawEvent is the input event that started the operation.
	RawEvent any
	// SelectionOverride reads the model with this selection instead of the
	// current one.
	SelectionOverride *dom.Range
}

// CreateContentModel returns the model of the content. The cached model is
// returned when no selection override is given and the content is still
// the one it was written to.
func (e *Editor) CreateContentModel(selectionOverride *dom.Range) *model.Document {
	if selectionOverride == nil && e.cachedModel != nil {
		if e.innerHTML() == e.cachedHTML {
			return e.cachedModel
		}
		e.logger.Debug("content changed outside the editor, model cache dropped")
		e.cachedModel = nil
	}
	rng := e.selection
	if selectionOverride != nil {
		rng = selectionOverride
	}
	opts := e.domToModel
	opts.Env = e.env()
	if opts.Logger == nil {
		opts.Logger = e.logger
	}
	doc := domtomodel.DomToContentModel(e.root, &opts, rng)
	doc.Format = e.defaultFormat.Clone()
	return doc
}

// SetContentModel replaces the content with doc and returns the new
// selection. doc becomes the cached model.
func (e *Editor) SetContentModel(doc *model.Document) *dom.Range {
	model.Normalize(doc)
	dom.RemoveChildren(e.root)
	opts := e.modelToDom
	opts.Env = e.env()
	if opts.Logger == nil {
		opts.Logger = e.logger
	}
	rng := modeltodom.ContentModelToDom(e.root, doc, &opts)
	e.Select(rng)
	e.cachedModel = doc
	e.cachedHTML = e.innerHTML()
	return rng
}

// FormatWithModel reads the content model, runs formatter on it and, when
// formatter reports a change, writes the model back as one undoable edit
// and sends a ContentChangedEvent.
//
// A formatter that panics is reported as a *FormatError. The content is
// left as it was and the next operation reads a fresh model.
func (e *Editor) FormatWithModel(apiName string, formatter Formatter, opts *FormatOptions) error {
	if opts == nil {
		opts = &FormatOptions{}
	}
	if e.focus != nil {
		e.focus()
	}

	doc := e.CreateContentModel(opts.SelectionOverride)
	fc := &transform.FormatContext{RawEvent: opts.RawEvent}

	changed, err := runFormatter(apiName, formatter, doc, fc)
	if err != nil {
		e.cachedModel = nil
		e.logger.Warn("format failed", "apiName", apiName, "error", err)
		return err
	}
	if !changed {
		// The formatter may have touched the model without asking for a
		// write back.
		e.cachedModel = nil
		if fc.NewPendingFormat != nil && e.selection != nil {
			e.SetPendingFormat(*fc.NewPendingFormat, e.selection.Start)
		}
		return nil
	}

	var rng *dom.Range
	writeBack := func() {
		e.handleNewEntities(fc)
		e.handleDeletedEntities(fc)
		pending := e.pending
		rng = e.SetContentModel(doc)
		switch {
		case rng == nil:
		case fc.NewPendingFormat != nil:
			e.SetPendingFormat(*fc.NewPendingFormat, rng.Start)
		case opts.PreservePendingFormat && pending != nil:
			e.SetPendingFormat(pending.Format, rng.Start)
		}
	}
	if fc.SkipUndoSnapshot {
		writeBack()
	} else {
		e.snapshots.AddUndoSnapshot(writeBack, map[string]any{"formatApiName": apiName})
	}

	event := &ContentChangedEvent{
		Model:   doc,
		Range:   rng,
		Source:  opts.ChangeSource,
		APIName: apiName,
	}
	if event.Source == "" {
		event.Source = ChangeSourceFormat
	}
	if opts.GetChangeData != nil {
		event.Data = opts.GetChangeData()
	}
	e.dispatch(event)
	return nil
}

func runFormatter(apiName string, formatter Formatter, doc *model.Document, fc *transform.FormatContext) (changed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = &FormatError{APIName: apiName, Cause: cause}
		}
	}()
	return formatter(doc, fc), nil
}

func (e *Editor) handleNewEntities(fc *transform.FormatContext) {
	if !e.darkMode {
		return
	}
	for _, entity := range fc.NewEntities {
		if entity.Wrapper != nil {
			dom.TransformToDarkColor(entity.Wrapper)
		}
	}
}

func (e *Editor) handleDeletedEntities(fc *transform.FormatContext) {
	for _, deleted := range fc.DeletedEntities {
		entity := deleted.Entity
		if entity.ID == "" || entity.Type == "" {
			continue
		}
		e.dispatch(&EntityOperationEvent{
			Entity: EntityInfo{
				ID:         entity.ID,
				Type:       entity.Type,
				IsReadonly: entity.IsReadonly,
				Wrapper:    entity.Wrapper,
			},
			Operation: deleted.Operation,
			RawEvent:  fc.RawEvent,
		})
	}
}

// ApplyDefaultFormat prepares the pending format for the next input when
// the caret sits in content without style. A selected range is deleted
// first, as the input replaces it.
func (e *Editor) ApplyDefaultFormat() error {
	if e.selection == nil {
		return nil
	}
	start := e.selection.Start
	for n := start.Node; n != nil && n != e.root && dom.Contains(e.root, n); n = n.Parent {
		if dom.HasAttr(n, "style") {
			return nil
		}
		if dom.IsBlockElement(n) {
			break
		}
	}

	return e.FormatWithModel("input", func(doc *model.Document, fc *transform.FormatContext) bool {
		result := transform.DeleteSelection(doc, &transform.DeleteOptions{FormatContext: fc})
		point := result.InsertPoint
		switch {
		case result.IsChanged:
			return true
		case point == nil:
			return false
		}

		para := point.Paragraph
		blocks := *point.Path[0].Children()
		index := model.IndexOfBlock(point.Path[0], para)
		if para.IsImplicit && len(para.Segments) == 1 && para.Segments[0] == model.Segment(point.Marker) &&
			index == len(blocks)-1 {
			// A caret alone after other blocks starts a new paragraph on
			// input unless the previous block is a paragraph it joins.
			if index == 0 || blocks[index-1].BlockType() != model.BlockParagraph {
				e.applyDefaultFormat(point.Marker.Format, start)
			}
		} else if !hasText(para) {
			e.applyDefaultFormat(point.Marker.Format, start)
		}
		return false
	}, nil)
}

func (e *Editor) applyDefaultFormat(current model.Format, pos dom.Position) {
	f := e.defaultFormat
	if e.pending != nil {
		f = f.Merge(e.pending.Format)
	}
	e.SetPendingFormat(f.Merge(current), pos)
}

func hasText(p *model.Paragraph) bool {
	for _, seg := range p.Segments {
		if seg.SegmentType() == model.SegmentText {
			return true
		}
	}
	return false
}
