package model

import "golang.org/x/net/html"

// Creators below copy every format and level passed in, so that no two
// nodes of a model ever share a mutable record.

// NewDocument creates an empty document with the given default format.
func NewDocument(defaultFormat Format) *Document {
	return &Document{Format: defaultFormat.Clone()}
}

// NewParagraph creates a paragraph.
func NewParagraph(isImplicit bool, format Format) *Paragraph {
	return &Paragraph{IsImplicit: isImplicit, Format: format.Clone()}
}

// NewHeader creates a paragraph rendered as a heading of the given level.
func NewHeader(level int, format Format) *Paragraph {
	return &Paragraph{HeaderLevel: level, Format: format.Clone()}
}

// NewText creates a text segment.
func NewText(text string, format Format) *Text {
	return &Text{Text: text, Format: format.Clone()}
}

// NewSelectionMarker creates a selected marker.
func NewSelectionMarker(format Format) *SelectionMarker {
	return &SelectionMarker{IsSelected: true, Format: format.Clone()}
}

// NewBr creates a line break.
func NewBr(format Format) *Br {
	return &Br{Format: format.Clone()}
}

// NewImage creates an image segment.
func NewImage(src string, format Format) *Image {
	return &Image{Src: src, Format: format.Clone()}
}

// NewTable creates a table with the given number of empty rows.
func NewTable(rowCount int, format Format) *Table {
	t := &Table{Cells: make([][]*TableCell, rowCount), Format: format.Clone()}
	for i := range t.Cells {
		t.Cells[i] = []*TableCell{}
	}
	return t
}

// NewTableCell creates a table cell. colSpan and rowSpan greater than one
// mark the cell as spanned from its left or upper neighbour.
func NewTableCell(colSpan, rowSpan int, isHeader bool, format Format) *TableCell {
	return &TableCell{
		SpanLeft:  colSpan > 1,
		SpanAbove: rowSpan > 1,
		IsHeader:  isHeader,
		Format:    format.Clone(),
	}
}

// NewListLevel creates a list level.
func NewListLevel(listType ListType, format Format) ListLevel {
	return ListLevel{ListType: listType, Format: format.Clone()}
}

// NewListItem creates a list item holding a copy of levels. The marker
// format is kept in a selection marker shaped holder.
func NewListItem(levels []ListLevel, format Format) *ListItem {
	return &ListItem{
		Levels:       CloneLevels(levels),
		FormatHolder: &SelectionMarker{IsSelected: true, Format: format.Clone()},
	}
}

// CloneLevels deep copies a list of levels.
func CloneLevels(levels []ListLevel) []ListLevel {
	result := make([]ListLevel, len(levels))
	for i, l := range levels {
		result[i] = ListLevel{
			ListType:            l.ListType,
			StartNumberOverride: l.StartNumberOverride,
			Format:              l.Format.Clone(),
		}
	}
	return result
}

// NewQuote creates a quote. segmentFormat applies to the text inside it.
func NewQuote(format, segmentFormat Format) *Quote {
	return &Quote{Format: format.Clone(), QuoteSegmentFormat: segmentFormat.Clone()}
}

// NewDivider creates a divider rendered with tagName, hr or div.
func NewDivider(tagName string, format Format) *Divider {
	return &Divider{TagName: tagName, Format: format.Clone()}
}

// NewGeneralBlock creates a block group keeping element.
func NewGeneralBlock(element *html.Node, format Format) *GeneralBlock {
	return &GeneralBlock{Element: element, Format: format.Clone()}
}

// NewGeneralSegment creates an inline group keeping element.
func NewGeneralSegment(element *html.Node, format Format) *GeneralSegment {
	return &GeneralSegment{Element: element, Format: format.Clone()}
}

// NewEntity creates an entity around wrapper.
func NewEntity(wrapper *html.Node, isReadonly bool, format Format, id, entityType string) *Entity {
	return &Entity{
		Wrapper:    wrapper,
		IsReadonly: isReadonly,
		Format:     format.Clone(),
		ID:         id,
		Type:       entityType,
	}
}
