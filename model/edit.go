package model

// AddBlock appends block to group.
func AddBlock(group BlockGroup, block Block) {
	blocks := group.Children()
	*blocks = append(*blocks, block)
}

// AddSegment appends segment to the last paragraph of group, creating an
// implicit paragraph with blockFormat when the group doesn't end with one.
// A selection marker next to selected content is dropped since the
// selected content already carries the selection.
func AddSegment(group BlockGroup, segment Segment, blockFormat Format) *Paragraph {
	blocks := group.Children()
	var p *Paragraph
	if n := len(*blocks); n > 0 {
		p, _ = (*blocks)[n-1].(*Paragraph)
	}
	if p == nil {
		p = NewParagraph(true, blockFormat)
		AddBlock(group, p)
	}

	var last Segment
	if n := len(p.Segments); n > 0 {
		last = p.Segments[n-1]
	}
	if _, ok := segment.(*SelectionMarker); ok {
		if last != nil && last.Selected() && segment.Selected() {
			return p
		}
	} else if segment.Selected() && last != nil && last.Selected() {
		if _, ok := last.(*SelectionMarker); ok {
			p.Segments = p.Segments[:len(p.Segments)-1]
		}
	}
	p.Segments = append(p.Segments, segment)
	return p
}

// IndexOfBlock returns the index of block in group, or -1.
func IndexOfBlock(group BlockGroup, block Block) int {
	for i, b := range *group.Children() {
		if b == block {
			return i
		}
	}
	return -1
}

// IndexOfSegment returns the index of segment in p, or -1.
func IndexOfSegment(p *Paragraph, segment Segment) int {
	for i, s := range p.Segments {
		if s == segment {
			return i
		}
	}
	return -1
}

// Normalize cleans up group after edits: empty text segments are removed,
// adjacent texts with the same format are merged, explicit paragraphs that
// only hold a marker get a Br and empty paragraphs are dropped.
func Normalize(group BlockGroup) {
	blocks := group.Children()
	for i := len(*blocks) - 1; i >= 0; i-- {
		block := (*blocks)[i]
		switch b := block.(type) {
		case *Paragraph:
			normalizeParagraph(b)
		case *Table:
			for _, row := range b.Cells {
				for _, cell := range row {
					if cell != nil {
						Normalize(cell)
					}
				}
			}
		case BlockGroup:
			Normalize(b)
		}
		if isBlockEmpty(block) {
			*blocks = append((*blocks)[:i], (*blocks)[i+1:]...)
		}
	}
}

func normalizeParagraph(p *Paragraph) {
	segments := p.Segments[:0]
	for _, s := range p.Segments {
		if t, ok := s.(*Text); ok && t.Text == "" {
			continue
		}
		if n := len(segments); n > 0 {
			if merged := mergeText(segments[n-1], s); merged {
				continue
			}
		}
		segments = append(segments, s)
	}
	p.Segments = segments

	if p.IsImplicit {
		return
	}
	n := len(p.Segments)
	if n == 1 {
		if m, ok := p.Segments[0].(*SelectionMarker); ok {
			p.Segments = append(p.Segments, NewBr(m.Format))
		}
	} else if n > 1 {
		if _, ok := p.Segments[n-1].(*Br); ok {
			var content []Segment
			for _, s := range p.Segments {
				if _, ok := s.(*SelectionMarker); !ok {
					content = append(content, s)
				}
			}
			if len(content) > 1 {
				if _, ok := content[len(content)-2].(*Br); !ok {
					p.Segments = p.Segments[:n-1]
				}
			}
		}
	}
}

func mergeText(prev, next Segment) bool {
	a, ok1 := prev.(*Text)
	b, ok2 := next.(*Text)
	if !ok1 || !ok2 || a.IsSelected != b.IsSelected || a.Link != b.Link || !a.Format.Equal(b.Format) {
		return false
	}
	a.Text += b.Text
	return true
}

func isBlockEmpty(block Block) bool {
	switch b := block.(type) {
	case *Paragraph:
		return len(b.Segments) == 0
	case *Quote:
		return len(b.Blocks) == 0
	case *ListItem:
		for _, child := range b.Blocks {
			if !isBlockEmpty(child) {
				return false
			}
		}
		return true
	case *Table:
		return len(b.Cells) == 0
	}
	return false
}
