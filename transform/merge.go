package transform

import (
	"github.com/google/uuid"
	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/model"
	"golang.org/x/net/html"
)

// MergeOptions configure MergeModel.
type MergeOptions struct {
	// MergeFormat gives pasted segments the format at the insert point,
	// under their own. Styles on at the insert point, such as italic,
	// stay on for every pasted segment.
	MergeFormat bool
}

// MergeModel deletes the selection of target and inserts the blocks of
// source in its place. The first pasted paragraph joins the paragraph of
// the insert point, the others are inserted after it with the content that
// followed the insert point moving to the last one. It returns where the
// selection ends up, or nil when target had no selection.
func MergeModel(target, source *model.Document, fc *FormatContext, opts *MergeOptions) *InsertPoint {
	if opts == nil {
		opts = &MergeOptions{}
	}
	point := DeleteSelection(target, &DeleteOptions{FormatContext: fc}).InsertPoint
	if point == nil {
		return nil
	}
	collectEntities(source, fc)

	for i, block := range source.Blocks {
		p, ok := block.(*model.Paragraph)
		if !ok {
			before := splitAtMarker(point)
			insertAfter(point.Path[0], before, block)
			continue
		}
		if i > 0 {
			splitAtMarker(point)
			point.Paragraph.Format = p.Format.Clone()
			point.Paragraph.HeaderLevel = p.HeaderLevel
			point.Paragraph.IsImplicit = point.Paragraph.IsImplicit && p.IsImplicit
		}
		segments := p.Segments
		if opts.MergeFormat {
			for _, s := range segments {
				f := s.SegmentFormat()
				*f = point.Marker.Format.Merge(*f)
			}
		}
		insertBeforeMarker(point, segments...)
	}
	return point
}

// InsertEntity wraps wrapper in a new entity of the given type and puts it
// in place of the selection of doc, as a block or inline. A document with
// no selection gets the entity at its end.
func InsertEntity(doc *model.Document, fc *FormatContext, wrapper *html.Node, entityType string, isBlock, isReadonly bool) *model.Entity {
	id := entityType + "_" + uuid.NewString()
	dom.SetEntity(wrapper, dom.EntityInfo{ID: id, Type: entityType, IsReadonly: isReadonly})
	entity := model.NewEntity(wrapper, isReadonly, model.Format{}, id, entityType)
	fc.addNew(entity)

	point := DeleteSelection(doc, &DeleteOptions{FormatContext: fc}).InsertPoint
	switch {
	case point == nil && isBlock:
		model.AddBlock(doc, entity)
	case point == nil:
		model.AddSegment(doc, entity, model.Format{})
	case isBlock:
		before := splitAtMarker(point)
		insertAfter(point.Path[0], before, entity)
	default:
		insertBeforeMarker(point, entity)
	}
	return entity
}

// splitAtMarker moves the marker and what follows it to a new paragraph
// right after the current one, and returns the paragraph left before it.
func splitAtMarker(point *InsertPoint) *model.Paragraph {
	p := point.Paragraph
	i := model.IndexOfSegment(p, point.Marker)
	if i < 0 {
		i = len(p.Segments)
	}
	next := model.NewParagraph(p.IsImplicit, p.Format)
	next.HeaderLevel = p.HeaderLevel
	next.Segments = append(next.Segments, p.Segments[i:]...)
	p.Segments = p.Segments[:i:i]
	insertAfter(point.Path[0], p, next)
	point.Paragraph = next
	return p
}

func insertBeforeMarker(point *InsertPoint, segments ...model.Segment) {
	p := point.Paragraph
	i := model.IndexOfSegment(p, point.Marker)
	if i < 0 {
		i = len(p.Segments)
	}
	p.Segments = append(p.Segments[:i], append(append([]model.Segment{}, segments...), p.Segments[i:]...)...)
}

func insertAfter(group model.BlockGroup, after, block model.Block) {
	blocks := group.Children()
	i := model.IndexOfBlock(group, after)
	if i < 0 {
		*blocks = append(*blocks, block)
		return
	}
	*blocks = append((*blocks)[:i+1], append([]model.Block{block}, (*blocks)[i+1:]...)...)
}

// collectEntities records every entity of group as new.
func collectEntities(group model.BlockGroup, fc *FormatContext) {
	for _, block := range *group.Children() {
		switch b := block.(type) {
		case *model.Entity:
			fc.addNew(b)
		case *model.Paragraph:
			for _, s := range b.Segments {
				switch seg := s.(type) {
				case *model.Entity:
					fc.addNew(seg)
				case *model.GeneralSegment:
					collectEntities(seg, fc)
				}
			}
		case *model.Table:
			for _, row := range b.Cells {
				for _, cell := range row {
					if cell != nil {
						collectEntities(cell, fc)
					}
				}
			}
		case model.BlockGroup:
			collectEntities(b, fc)
		}
	}
}
