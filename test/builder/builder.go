// Package builder has terse constructors for content models, used by the
// tests of the other packages.
package builder

import (
	"fmt"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/model"
)

// Selected marks a segment or block as selected when passed to a builder.
type Selected struct{}

// Sel is the Selected flag.
var Sel = Selected{}

// Doc builds a document from blocks.
func Doc(blocks ...model.Block) *model.Document {
	return &model.Document{Blocks: blocks}
}

// DocWithFormat builds a document with a default segment format.
func DocWithFormat(f model.Format, blocks ...model.Block) *model.Document {
	return &model.Document{Blocks: blocks, Format: f}
}

// takeSegments sorts builder arguments: strings become texts, a format is
// the block format and Sel selects the block.
func takeSegments(args []interface{}) (segments []model.Segment, f model.Format, selected bool) {
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			segments = append(segments, model.NewText(v, model.Format{}))
		case model.Segment:
			segments = append(segments, v)
		case model.Format:
			f = v
		case Selected:
			selected = true
		default:
			panic(fmt.Sprintf("builder: unexpected paragraph argument %T", arg))
		}
	}
	return segments, f, selected
}

// P builds an explicit paragraph.
func P(args ...interface{}) *model.Paragraph {
	segments, f, selected := takeSegments(args)
	p := model.NewParagraph(false, f)
	p.Segments = segments
	p.IsSelected = selected
	return p
}

// Implicit builds an implicit paragraph.
func Implicit(args ...interface{}) *model.Paragraph {
	p := P(args...)
	p.IsImplicit = true
	return p
}

// H builds a heading.
func H(level int, args ...interface{}) *model.Paragraph {
	p := P(args...)
	p.HeaderLevel = level
	return p
}

// Text builds a text. A format and Sel may follow.
func Text(s string, args ...interface{}) *model.Text {
	t := model.NewText(s, model.Format{})
	for _, arg := range args {
		switch v := arg.(type) {
		case model.Format:
			t.Format = v.Clone()
		case model.Link:
			t.Link = v
		case Selected:
			t.IsSelected = true
		}
	}
	return t
}

// Marker builds a selection marker, with an optional format.
func Marker(formats ...model.Format) *model.SelectionMarker {
	var f model.Format
	if len(formats) > 0 {
		f = formats[0]
	}
	return model.NewSelectionMarker(f)
}

func Br(args ...interface{}) *model.Br {
	br := model.NewBr(model.Format{})
	for _, arg := range args {
		if _, ok := arg.(Selected); ok {
			br.IsSelected = true
		}
	}
	return br
}

func Img(src string, args ...interface{}) *model.Image {
	img := model.NewImage(src, model.Format{})
	for _, arg := range args {
		switch v := arg.(type) {
		case model.Format:
			img.Format = v.Clone()
		case Selected:
			img.IsSelected = true
		}
	}
	return img
}

// Entity builds an entity around a fresh span wrapper.
func Entity(id, entityType string, args ...interface{}) *model.Entity {
	wrapper := dom.NewElement("span")
	dom.SetEntity(wrapper, dom.EntityInfo{ID: id, Type: entityType})
	e := model.NewEntity(wrapper, false, model.Format{}, id, entityType)
	for _, arg := range args {
		if _, ok := arg.(Selected); ok {
			e.IsSelected = true
		}
	}
	return e
}

// Hr builds a divider.
func Hr(args ...interface{}) *model.Divider {
	d := model.NewDivider("hr", model.Format{})
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			d.TagName = v
		case model.Format:
			d.Format = v.Clone()
		case Selected:
			d.IsSelected = true
		}
	}
	return d
}

// Li builds a list item with one level per list type.
func Li(types []model.ListType, blocks ...model.Block) *model.ListItem {
	levels := make([]model.ListLevel, len(types))
	for i, t := range types {
		levels[i] = model.NewListLevel(t, model.Format{})
	}
	item := model.NewListItem(levels, model.Format{})
	item.Blocks = blocks
	return item
}

// Ol and Ul are the list types of a single level list item.
var (
	Ol = []model.ListType{model.ListOL}
	Ul = []model.ListType{model.ListUL}
)

func Quote(blocks ...model.Block) *model.Quote {
	q := model.NewQuote(model.Format{}, model.Format{})
	q.Blocks = blocks
	return q
}

// Table builds a table from rows of cells.
func Table(rows ...[]*model.TableCell) *model.Table {
	t := model.NewTable(len(rows), model.Format{})
	copy(t.Cells, rows)
	return t
}

// Row gathers cells for Table.
func Row(cells ...*model.TableCell) []*model.TableCell {
	return cells
}

// Cell builds a table cell. Blocks and Sel may be passed.
func Cell(args ...interface{}) *model.TableCell {
	cell := model.NewTableCell(1, 1, false, model.Format{})
	for _, arg := range args {
		switch v := arg.(type) {
		case model.Block:
			cell.Blocks = append(cell.Blocks, v)
		case Selected:
			cell.IsSelected = true
		}
	}
	return cell
}
