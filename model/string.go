package model

import (
	"fmt"
	"strings"
)

// String returns a debug representation of the document, mostly useful in
// tests.
func (d *Document) String() string {
	return "Document(" + blocksString(d.Blocks) + ")"
}

func blocksString(blocks []Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = BlockString(b)
	}
	return strings.Join(parts, ", ")
}

// BlockString returns a debug representation of block.
func BlockString(block Block) string {
	switch b := block.(type) {
	case *Paragraph:
		name := "Paragraph"
		if b.HeaderLevel > 0 {
			name = fmt.Sprintf("H%d", b.HeaderLevel)
		} else if b.IsImplicit {
			name = "Implicit"
		}
		parts := make([]string, len(b.Segments))
		for i, s := range b.Segments {
			parts[i] = SegmentString(s)
		}
		return name + "(" + strings.Join(parts, ", ") + ")"
	case *Table:
		rows := make([]string, len(b.Cells))
		for i, row := range b.Cells {
			cells := make([]string, len(row))
			for j, c := range row {
				cells[j] = "Cell(" + blocksString(c.Blocks) + ")"
			}
			rows[i] = "[" + strings.Join(cells, ", ") + "]"
		}
		return "Table(" + strings.Join(rows, ", ") + ")"
	case *ListItem:
		types := make([]string, len(b.Levels))
		for i, l := range b.Levels {
			types[i] = string(l.ListType)
		}
		return "ListItem[" + strings.Join(types, ",") + "](" + blocksString(b.Blocks) + ")"
	case *Quote:
		return "Quote(" + blocksString(b.Blocks) + ")"
	case *GeneralBlock:
		return "General<" + b.Element.Data + ">(" + blocksString(b.Blocks) + ")"
	case *Divider:
		return "Divider<" + b.TagName + ">"
	case *Entity:
		return "Entity<" + b.Type + ":" + b.ID + ">"
	}
	return "?"
}

// SegmentString returns a debug representation of segment.
func SegmentString(segment Segment) string {
	sel := ""
	if segment.Selected() {
		sel = "*"
	}
	switch s := segment.(type) {
	case *Text:
		return sel + fmt.Sprintf("%q", s.Text)
	case *SelectionMarker:
		return "Marker"
	case *Br:
		return sel + "Br"
	case *Image:
		return sel + "Image<" + s.Src + ">"
	case *GeneralSegment:
		return sel + "General<" + s.Element.Data + ">(" + blocksString(s.Blocks) + ")"
	case *Entity:
		return sel + "Entity<" + s.Type + ":" + s.ID + ">"
	}
	return "?"
}
