package model

// TableSelectionContext locates a selection inside a table.
type TableSelectionContext struct {
	Table                *Table
	RowIndex             int
	ColIndex             int
	IsWholeTableSelected bool
}

// IterateCallback receives selected content. path holds the enclosing block
// groups from innermost to the document. block is nil for a selected table
// cell or a list format holder, segments is non-nil only for paragraphs and
// format holders. Returning true stops the iteration.
type IterateCallback func(path []BlockGroup, tableContext *TableSelectionContext, block Block, segments []Segment) bool

// IterateOptions tune IterateSelections.
type IterateOptions struct {
	// ContentUnderSelectedTableCell also visits content of selected cells,
	// treating all of it as selected.
	ContentUnderSelectedTableCell bool
	// ContentUnderSelectedGeneral visits content of selected general blocks
	// and segments, treating all of it as selected.
	ContentUnderSelectedGeneral bool
	// IncludeListFormatHolder adds the list format holder to the segments of
	// the first paragraph of a list item whose content is fully selected.
	IncludeListFormatHolder bool
}

// IterateSelections walks the selected blocks and segments under path[0].
// It returns true when the callback stopped the walk.
func IterateSelections(path []BlockGroup, callback IterateCallback, opts *IterateOptions) bool {
	if opts == nil {
		opts = &IterateOptions{}
	}
	return iterateSelections(path, callback, opts, nil, false)
}

func iterateSelections(path []BlockGroup, callback IterateCallback, opts *IterateOptions, table *TableSelectionContext, treatAllAsSelect bool) bool {
	parent := path[0]
	for _, block := range *parent.Children() {
		switch b := block.(type) {
		case *Paragraph:
			var selected []Segment
			for _, segment := range b.Segments {
				if g, ok := segment.(*GeneralSegment); ok {
					isSelected := treatAllAsSelect || g.IsSelected
					if isSelected {
						selected = append(selected, g)
					}
					if !isSelected || opts.ContentUnderSelectedGeneral {
						if iterateSelections(prepend(g, path), callback, opts, table, isSelected) {
							return true
						}
					}
					continue
				}
				if treatAllAsSelect || segment.Selected() {
					selected = append(selected, segment)
				}
			}
			if len(selected) > 0 && callback(path, table, b, selected) {
				return true
			}
		case *Table:
			whole := IsWholeTableSelected(b)
			for row, cells := range b.Cells {
				for col, cell := range cells {
					if cell == nil {
						continue
					}
					ctx := &TableSelectionContext{Table: b, RowIndex: row, ColIndex: col, IsWholeTableSelected: whole}
					cellPath := prepend(cell, path)
					isSelected := treatAllAsSelect || cell.IsSelected
					if isSelected && callback(cellPath, ctx, nil, nil) {
						return true
					}
					if !isSelected || opts.ContentUnderSelectedTableCell {
						if iterateSelections(cellPath, callback, opts, ctx, isSelected) {
							return true
						}
					}
				}
			}
		case *ListItem:
			if opts.IncludeListFormatHolder && b.FormatHolder != nil && (treatAllAsSelect || allSelected(b)) {
				if callback(path, table, nil, []Segment{b.FormatHolder}) {
					return true
				}
			}
			if iterateSelections(prepend(b, path), callback, opts, table, treatAllAsSelect) {
				return true
			}
		case *Quote:
			if iterateSelections(prepend(b, path), callback, opts, table, treatAllAsSelect) {
				return true
			}
		case *GeneralBlock:
			isSelected := treatAllAsSelect || b.IsSelected
			if isSelected && callback(path, table, b, nil) {
				return true
			}
			if !isSelected || opts.ContentUnderSelectedGeneral {
				if iterateSelections(prepend(b, path), callback, opts, table, isSelected) {
					return true
				}
			}
		case *Divider, *Entity:
			if (treatAllAsSelect || block.Selected()) && callback(path, table, block, nil) {
				return true
			}
		}
	}
	return false
}

func prepend(group BlockGroup, path []BlockGroup) []BlockGroup {
	result := make([]BlockGroup, 0, len(path)+1)
	result = append(result, group)
	return append(result, path...)
}

// allSelected reports whether every segment under the group is selected.
func allSelected(group BlockGroup) bool {
	found := false
	for _, block := range *group.Children() {
		p, ok := block.(*Paragraph)
		if !ok {
			if g, ok := block.(BlockGroup); ok && allSelected(g) {
				found = true
				continue
			}
			return false
		}
		for _, s := range p.Segments {
			if !s.Selected() {
				return false
			}
			found = true
		}
	}
	return found
}

// IsWholeTableSelected reports whether every cell of t is selected.
func IsWholeTableSelected(t *Table) bool {
	count := 0
	for _, row := range t.Cells {
		for _, cell := range row {
			if cell == nil {
				continue
			}
			if !cell.IsSelected {
				return false
			}
			count++
		}
	}
	return count > 0
}

// HasSelection reports whether anything under group is selected.
func HasSelection(group BlockGroup) bool {
	return IterateSelections([]BlockGroup{group}, func([]BlockGroup, *TableSelectionContext, Block, []Segment) bool {
		return true
	}, nil)
}

// GetSelectedSegments returns every selected segment, in document order.
func GetSelectedSegments(group BlockGroup, includeFormatHolder bool) []Segment {
	var result []Segment
	IterateSelections([]BlockGroup{group}, func(_ []BlockGroup, _ *TableSelectionContext, _ Block, segments []Segment) bool {
		result = append(result, segments...)
		return false
	}, &IterateOptions{
		ContentUnderSelectedTableCell: true,
		ContentUnderSelectedGeneral:   true,
		IncludeListFormatHolder:       includeFormatHolder,
	})
	return result
}

// SelectedParagraph is a paragraph holding selected content and the path
// of groups enclosing it.
type SelectedParagraph struct {
	Paragraph *Paragraph
	Path      []BlockGroup
}

// GetSelectedParagraphs returns the paragraphs holding selected segments.
func GetSelectedParagraphs(group BlockGroup) []SelectedParagraph {
	var result []SelectedParagraph
	IterateSelections([]BlockGroup{group}, func(path []BlockGroup, _ *TableSelectionContext, block Block, _ []Segment) bool {
		if p, ok := block.(*Paragraph); ok {
			if n := len(result); n == 0 || result[n-1].Paragraph != p {
				result = append(result, SelectedParagraph{Paragraph: p, Path: path})
			}
		}
		return false
	}, &IterateOptions{ContentUnderSelectedTableCell: true})
	return result
}

// ClosestListItem returns the innermost list item of path, or nil.
func ClosestListItem(path []BlockGroup) *ListItem {
	for _, g := range path {
		switch v := g.(type) {
		case *ListItem:
			return v
		case *TableCell:
			return nil
		}
	}
	return nil
}

// ClearSelection removes every selection marker and selection flag under
// group.
func ClearSelection(group BlockGroup) {
	for _, block := range *group.Children() {
		block.SetSelected(false)
		switch b := block.(type) {
		case *Paragraph:
			kept := b.Segments[:0]
			for _, s := range b.Segments {
				if _, ok := s.(*SelectionMarker); ok {
					continue
				}
				s.SetSelected(false)
				if g, ok := s.(*GeneralSegment); ok {
					ClearSelection(g)
				}
				kept = append(kept, s)
			}
			b.Segments = kept
		case *Table:
			for _, row := range b.Cells {
				for _, cell := range row {
					if cell != nil {
						cell.IsSelected = false
						ClearSelection(cell)
					}
				}
			}
		case BlockGroup:
			ClearSelection(b)
		}
	}
}
