package transform

import (
	"github.com/rivo/uniseg"
	"github.com/shodgson/contentmodel-go/model"
)

// Direction of a delete started from a collapsed selection.
type Direction int

const (
	// DirectionNone only removes selected content.
	DirectionNone Direction = iota
	// DirectionForward removes the unit after a collapsed selection.
	DirectionForward
	// DirectionBackward removes the unit before a collapsed selection.
	DirectionBackward
)

// DeleteOptions configure DeleteSelection.
type DeleteOptions struct {
	Direction Direction
	// OnDeleteEntity is called before an entity is removed. Returning false
	// keeps the entity in the model; the edit is still reported as a change.
	OnDeleteEntity func(entity *model.Entity, op EntityOperation) bool
	// FormatContext receives the entities actually removed.
	FormatContext *FormatContext
}

// InsertPoint is where new content goes once the selection is deleted.
type InsertPoint struct {
	Marker    *model.SelectionMarker
	Paragraph *model.Paragraph
	// Path holds the groups enclosing Paragraph, innermost first.
	Path         []model.BlockGroup
	TableContext *model.TableSelectionContext
}

// DeleteResult is the outcome of DeleteSelection. InsertPoint is nil when
// the model had no selection.
type DeleteResult struct {
	IsChanged   bool
	InsertPoint *InsertPoint
}

type deleter struct {
	doc     *model.Document
	opts    *DeleteOptions
	point   *InsertPoint
	changed bool
	tables  map[*model.Table]bool
}

// DeleteSelection removes the selected content of doc and leaves a single
// selection marker in its place.
//
// A collapsed selection is left untouched unless a direction is given, in
// which case the adjacent character, segment or block boundary in that
// direction is removed. Any other selection is deleted as a range: the
// marker takes the format of the first selected unit and content left in
// the last touched paragraph moves to the paragraph of the marker.
func DeleteSelection(doc *model.Document, opts *DeleteOptions) *DeleteResult {
	if opts == nil {
		opts = &DeleteOptions{}
	}
	d := &deleter{doc: doc, opts: opts, tables: map[*model.Table]bool{}}
	if point := collapsedPoint(doc); point != nil {
		d.point = point
		switch opts.Direction {
		case DirectionForward:
			d.deleteForward()
		case DirectionBackward:
			d.deleteBackward()
		}
	} else {
		d.deleteRange()
	}
	return &DeleteResult{IsChanged: d.changed, InsertPoint: d.point}
}

// collapsedPoint returns the insert point of a selection made of a single
// marker, or nil.
func collapsedPoint(doc *model.Document) *InsertPoint {
	var found []*InsertPoint
	model.IterateSelections([]model.BlockGroup{doc}, func(path []model.BlockGroup, table *model.TableSelectionContext, block model.Block, segments []model.Segment) bool {
		var point *InsertPoint
		if p, ok := block.(*model.Paragraph); ok && len(segments) == 1 {
			if m, ok := segments[0].(*model.SelectionMarker); ok {
				point = &InsertPoint{Marker: m, Paragraph: p, Path: path, TableContext: table}
			}
		}
		found = append(found, point)
		return point == nil || len(found) > 1
	}, nil)
	if len(found) == 1 {
		return found[0]
	}
	return nil
}

// removeEntity asks the entity owner whether e may go and records the
// removal when it does.
func (d *deleter) removeEntity(e *model.Entity, op EntityOperation) bool {
	d.changed = true
	if d.opts.OnDeleteEntity != nil && !d.opts.OnDeleteEntity(e, op) {
		return false
	}
	d.opts.FormatContext.addDeleted(e, op)
	return true
}

func (d *deleter) deleteForward() {
	p := d.point.Paragraph
	i := model.IndexOfSegment(p, d.point.Marker)
	if next := i + 1; next < len(p.Segments) {
		// A Br ending the paragraph only keeps the line open, so deleting it
		// joins the next paragraph. Any other Br is a line of its own.
		if _, ok := p.Segments[next].(*model.Br); !ok || next < len(p.Segments)-1 {
			d.deleteSegment(p, next, true)
			return
		}
	}
	d.joinNext()
}

func (d *deleter) deleteBackward() {
	p := d.point.Paragraph
	if i := model.IndexOfSegment(p, d.point.Marker); i > 0 {
		d.deleteSegment(p, i-1, false)
		return
	}
	d.joinPrevious()
}

// deleteSegment removes one unit of the segment at i: a grapheme cluster
// of a text, or the whole segment otherwise.
func (d *deleter) deleteSegment(p *model.Paragraph, i int, forward bool) {
	switch s := p.Segments[i].(type) {
	case *model.Text:
		d.changed = true
		if forward {
			s.Text = dropFirstGrapheme(s.Text)
		} else {
			s.Text = dropLastGrapheme(s.Text)
		}
		if s.Text != "" {
			return
		}
	case *model.Entity:
		op := RemoveFromEnd
		if forward {
			op = RemoveFromStart
		}
		if !d.removeEntity(s, op) {
			return
		}
	}
	p.Segments = append(p.Segments[:i], p.Segments[i+1:]...)
	d.changed = true
}

// joinNext pulls the block after the paragraph of the marker into it.
func (d *deleter) joinNext() {
	p := d.point.Paragraph
	path, next := adjacentBlock(d.point.Path, p, true)
	if next == nil {
		return
	}
	if n := len(p.Segments); n > 0 {
		if _, ok := p.Segments[n-1].(*model.Br); ok {
			p.Segments = p.Segments[:n-1]
		}
	}
	d.changed = true
	for {
		switch b := next.(type) {
		case *model.Paragraph:
			p.Segments = append(p.Segments, b.Segments...)
			b.Segments = nil
		case *model.Entity:
			if d.removeEntity(b, RemoveFromStart) {
				removeBlock(path[0], b)
			}
		case model.BlockGroup:
			children := *b.Children()
			if len(children) == 0 {
				removeBlock(path[0], next)
				return
			}
			path, next = within(b, path), children[0]
			continue
		default:
			removeBlock(path[0], next)
		}
		return
	}
}

// joinPrevious moves the content of the paragraph of the marker to the end
// of the block before it.
func (d *deleter) joinPrevious() {
	p := d.point.Paragraph
	path, prev := adjacentBlock(d.point.Path, p, false)
	if prev == nil {
		return
	}
	if n := len(p.Segments); n == 2 {
		if _, ok := p.Segments[1].(*model.Br); ok {
			p.Segments = p.Segments[:1]
		}
	}
	d.changed = true
	for {
		switch b := prev.(type) {
		case *model.Paragraph:
			if n := len(b.Segments); n > 0 {
				if _, ok := b.Segments[n-1].(*model.Br); ok {
					b.Segments = b.Segments[:n-1]
				}
			}
			b.Segments = append(b.Segments, p.Segments...)
			p.Segments = nil
			d.point.Paragraph = b
			d.point.Path = path
		case *model.Entity:
			if d.removeEntity(b, RemoveFromEnd) {
				removeBlock(path[0], b)
			}
		case model.BlockGroup:
			children := *b.Children()
			if len(children) == 0 {
				removeBlock(path[0], prev)
				return
			}
			path, prev = within(b, path), children[len(children)-1]
			continue
		default:
			removeBlock(path[0], prev)
		}
		return
	}
}

func (d *deleter) deleteRange() {
	type selection struct {
		path     []model.BlockGroup
		table    *model.TableSelectionContext
		block    model.Block
		segments []model.Segment
	}
	var selections []selection
	model.IterateSelections([]model.BlockGroup{d.doc}, func(path []model.BlockGroup, table *model.TableSelectionContext, block model.Block, segments []model.Segment) bool {
		selections = append(selections, selection{path, table, block, segments})
		return false
	}, nil)

	var last *model.Paragraph
	var lastTable *model.TableSelectionContext
	for _, sel := range selections {
		switch b := sel.block.(type) {
		case nil:
			d.deleteCell(sel.path, sel.table)
		case *model.Paragraph:
			d.deleteSegments(b, sel.path, sel.table, sel.segments)
			last, lastTable = b, sel.table
		default:
			d.deleteBlock(sel.path, sel.table, b)
		}
	}

	if d.point != nil && last != nil && last != d.point.Paragraph && sameCell(lastTable, d.point.TableContext) {
		p := d.point.Paragraph
		p.Segments = append(p.Segments, last.Segments...)
		last.Segments = nil
	}
}

func (d *deleter) deleteSegments(p *model.Paragraph, path []model.BlockGroup, table *model.TableSelectionContext, segments []model.Segment) {
	for _, s := range segments {
		i := model.IndexOfSegment(p, s)
		if i < 0 {
			continue
		}
		if d.point == nil {
			f := d.doc.Format
			switch s.(type) {
			case *model.Text, *model.SelectionMarker:
				f = *s.SegmentFormat()
			}
			marker := model.NewSelectionMarker(f)
			p.Segments = append(p.Segments[:i], append([]model.Segment{marker}, p.Segments[i:]...)...)
			d.point = &InsertPoint{Marker: marker, Paragraph: p, Path: path, TableContext: table}
			i++
		}
		if e, ok := s.(*model.Entity); ok && !d.removeEntity(e, Overwrite) {
			continue
		}
		p.Segments = append(p.Segments[:i], p.Segments[i+1:]...)
		d.changed = true
	}
}

// deleteBlock removes a selected divider, entity or general block. The
// first one removed gives its place to the paragraph of the marker.
func (d *deleter) deleteBlock(path []model.BlockGroup, table *model.TableSelectionContext, block model.Block) {
	group := path[0]
	i := model.IndexOfBlock(group, block)
	if i < 0 {
		return
	}
	d.changed = true
	blocks := group.Children()
	if e, ok := block.(*model.Entity); ok && !d.removeEntity(e, Overwrite) {
		if d.point == nil {
			*blocks = append((*blocks)[:i+1], append([]model.Block{d.newInsertParagraph(path, table)}, (*blocks)[i+1:]...)...)
		}
		return
	}
	if d.point == nil {
		(*blocks)[i] = d.newInsertParagraph(path, table)
		return
	}
	*blocks = append((*blocks)[:i], (*blocks)[i+1:]...)
}

// deleteCell clears a selected table cell, or removes the whole table when
// all of its cells are selected.
func (d *deleter) deleteCell(path []model.BlockGroup, table *model.TableSelectionContext) {
	if table.IsWholeTableSelected {
		if !d.tables[table.Table] {
			d.tables[table.Table] = true
			d.deleteBlock(path[1:], nil, table.Table)
		}
		return
	}
	cell, ok := path[0].(*model.TableCell)
	if !ok {
		return
	}
	p := model.NewParagraph(false, model.Format{})
	if d.point == nil {
		marker := model.NewSelectionMarker(d.doc.Format)
		p.Segments = append(p.Segments, marker)
		d.point = &InsertPoint{Marker: marker, Paragraph: p, Path: path, TableContext: table}
	}
	p.Segments = append(p.Segments, model.NewBr(d.doc.Format))
	cell.Blocks = []model.Block{p}
	d.changed = true
}

func (d *deleter) newInsertParagraph(path []model.BlockGroup, table *model.TableSelectionContext) *model.Paragraph {
	marker := model.NewSelectionMarker(d.doc.Format)
	p := model.NewParagraph(false, model.Format{})
	p.Segments = []model.Segment{marker}
	d.point = &InsertPoint{Marker: marker, Paragraph: p, Path: path, TableContext: table}
	return p
}

// adjacentBlock returns the block next to block in the given direction and
// the path of the group holding it. The walk climbs out of enclosing groups
// but never leaves a table cell or the document.
func adjacentBlock(path []model.BlockGroup, block model.Block, forward bool) ([]model.BlockGroup, model.Block) {
	current := block
	for k, group := range path {
		blocks := *group.Children()
		i := model.IndexOfBlock(group, current)
		if i < 0 {
			return nil, nil
		}
		if forward && i+1 < len(blocks) {
			return path[k:], blocks[i+1]
		}
		if !forward && i > 0 {
			return path[k:], blocks[i-1]
		}
		next, ok := group.(model.Block)
		if !ok {
			return nil, nil
		}
		current = next
	}
	return nil, nil
}

func within(group model.BlockGroup, path []model.BlockGroup) []model.BlockGroup {
	return append([]model.BlockGroup{group}, path...)
}

func removeBlock(group model.BlockGroup, block model.Block) {
	if i := model.IndexOfBlock(group, block); i >= 0 {
		blocks := group.Children()
		*blocks = append((*blocks)[:i], (*blocks)[i+1:]...)
	}
}

func sameCell(a, b *model.TableSelectionContext) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Table == b.Table && a.RowIndex == b.RowIndex && a.ColIndex == b.ColIndex
}

func dropFirstGrapheme(s string) string {
	_, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return rest
}

func dropLastGrapheme(s string) string {
	g := uniseg.NewGraphemes(s)
	last := 0
	for g.Next() {
		last, _ = g.Positions()
	}
	return s[:last]
}
