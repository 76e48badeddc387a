package transform

import (
	"strings"
	"unicode"

	"github.com/shodgson/contentmodel-go/model"
)

// AdjustTrailingSpaceSelection moves the trailing white space of a selected
// text out of the selection, so that decorations such as underline don't
// extend past the last word. The space goes into a new unselected text with
// no format right after segment. When segment has nothing but white space,
// a white space only text ending p loses its format instead.
func AdjustTrailingSpaceSelection(segment model.Segment, p *model.Paragraph) {
	t, ok := segment.(*model.Text)
	if !ok || p == nil {
		return
	}
	trimmed := strings.TrimRightFunc(t.Text, unicode.IsSpace)
	trailing := t.Text[len(trimmed):]
	if trimmed != "" && trailing != "" {
		t.Text = trimmed
		space := &model.Text{Text: trailing}
		i := model.IndexOfSegment(p, t)
		if i < 0 {
			p.Segments = append(p.Segments, space)
			return
		}
		p.Segments = append(p.Segments[:i+1], append([]model.Segment{space}, p.Segments[i+1:]...)...)
		return
	}
	if n := len(p.Segments); n > 0 {
		if last, ok := p.Segments[n-1].(*model.Text); ok && strings.TrimSpace(last.Text) == "" {
			last.Format = model.Format{}
		}
	}
}
