package transform

import "github.com/shodgson/contentmodel-go/model"

// Alignment values accepted by SetAlignment.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// SetAlignment aligns the selected paragraphs and the list items holding
// them. A fully selected table is aligned as a whole through its margins
// instead.
func SetAlignment(doc *model.Document, align string) bool {
	changed := false
	tables := map[*model.Table]bool{}
	model.IterateSelections([]model.BlockGroup{doc}, func(_ []model.BlockGroup, table *model.TableSelectionContext, block model.Block, _ []model.Segment) bool {
		if block == nil && table != nil && table.IsWholeTableSelected && !tables[table.Table] {
			tables[table.Table] = true
			alignTable(table.Table, align)
			changed = true
		}
		return false
	}, nil)

	for _, sp := range model.GetSelectedParagraphs(doc) {
		if inTables(sp.Path, tables) {
			continue
		}
		changed = true
		if item, ok := sp.Path[0].(*model.ListItem); ok && sp.Paragraph.IsImplicit {
			item.Format.TextAlign = align
			continue
		}
		sp.Paragraph.IsImplicit = false
		sp.Paragraph.Format.TextAlign = align
	}
	return changed
}

// inTables reports whether one of the cells of path belongs to tables.
func inTables(path []model.BlockGroup, tables map[*model.Table]bool) bool {
	for _, g := range path {
		cell, ok := g.(*model.TableCell)
		if !ok {
			continue
		}
		for t := range tables {
			for _, row := range t.Cells {
				for _, c := range row {
					if c == cell {
						return true
					}
				}
			}
		}
	}
	return false
}

func alignTable(t *model.Table, align string) {
	switch align {
	case AlignCenter:
		t.Format.MarginLeft, t.Format.MarginRight = "auto", "auto"
	case AlignRight:
		t.Format.MarginLeft, t.Format.MarginRight = "auto", ""
	default:
		t.Format.MarginLeft, t.Format.MarginRight = "", "auto"
	}
}

// SetHeaderLevel turns the selected paragraphs into headings of level, or
// into plain paragraphs for level 0. Headings render bold, so the weight
// of their text is kept in step.
func SetHeaderLevel(doc *model.Document, level int) bool {
	if level < 0 || level > 6 {
		return false
	}
	paragraphs := model.GetSelectedParagraphs(doc)
	for _, sp := range paragraphs {
		p := sp.Paragraph
		wasHeader := p.HeaderLevel > 0
		p.HeaderLevel = level
		if level > 0 {
			p.IsImplicit = false
		}
		for _, s := range p.Segments {
			f := s.SegmentFormat()
			switch {
			case level > 0 && f.FontWeight == "":
				f.FontWeight = "bold"
			case level == 0 && wasHeader && f.FontWeight == "bold":
				f.FontWeight = ""
			}
		}
	}
	return len(paragraphs) > 0
}
