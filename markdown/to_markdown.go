package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/model"
)

// BlockSerializerFunc is the function to serialize a block.
type BlockSerializerFunc func(state *SerializerState, block model.Block, parent model.BlockGroup, index int)

// SegmentSerializerFunc is the function to serialize a segment. segments
// are the inline siblings of the segment, and index its position.
type SegmentSerializerFunc func(state *SerializerState, segment model.Segment, segments []model.Segment, index int)

// MarkStringFunc computes the opening or closing string of a mark.
type MarkStringFunc func(state *SerializerState, mark Mark, segments []model.Segment, index int) string

// Mark is an inline style that markdown expresses with delimiters around
// the text, such as emphasis or links.
type Mark struct {
	Name string
	// Link is set for the link mark.
	Link model.Link
}

// Eq reports whether both marks are the same.
func (m Mark) Eq(other Mark) bool {
	return m == other
}

// IsInSet reports whether m is part of set.
func (m Mark) IsInSet(set []Mark) bool {
	for _, other := range set {
		if m.Eq(other) {
			return true
		}
	}
	return false
}

// MarkSerializerSpec is the serializer info for a mark.
type MarkSerializerSpec struct {
	Open                     interface{} // Can be a string or a MarkStringFunc
	Close                    interface{} // Can be a string or a MarkStringFunc
	Mixable                  bool
	ExpelEnclosingWhitespace bool
	NoEscape                 bool
}

// Options are the serializer options.
type Options struct {
	// TightLists renders list items without blank lines between them.
	TightLists bool
}

// Serializer describes how to serialize a content model as
// Markdown/CommonMark text.
type Serializer struct {
	Blocks   map[string]BlockSerializerFunc
	Segments map[string]SegmentSerializerFunc
	Marks    map[string]MarkSerializerSpec
}

// NewSerializer constructs a serializer with the given configuration.
//
// blocks maps block kinds (see BlockKind) to functions serializing such a
// block, and segments does the same for inline segments (see SegmentKind).
//
// The marks map holds the `Open` and `Close` strings that should appear
// before and after a piece of text with that mark, either directly or as a
// function of the state and the mark. Marks are derived from the segment
// format: "em", "strong", "strike", "link" and "code", in that nesting
// order.
//
// A mark can be `Mixable`, which means that the order in which its opening
// and closing syntax appears relative to other mixable marks can be varied
// (`**a *b***` and `*a **b***`, but not “ `a *b*` “). A mark with
// `NoEscape` disables character escaping; it has to be the innermost mark.
// `ExpelEnclosingWhitespace` moves whitespace from inside the mark to
// outside of it, since CommonMark does not permit enclosing whitespace
// inside emphasis, see http://spec.commonmark.org/0.26/#example-330
func NewSerializer(
	blocks map[string]BlockSerializerFunc,
	segments map[string]SegmentSerializerFunc,
	marks map[string]MarkSerializerSpec,
) *Serializer {
	return &Serializer{
		Blocks:   blocks,
		Segments: segments,
		Marks:    marks,
	}
}

// Serialize the content of the given document to
// [CommonMark](http://commonmark.org/).
func (s *Serializer) Serialize(doc *model.Document, options ...Options) string {
	var opts Options
	if len(options) > 0 {
		opts = options[0]
	}
	state := NewSerializerState(s, opts)
	state.RenderContent(doc)
	return state.Out
}

// Block kinds used as keys of Serializer.Blocks.
const (
	KindParagraph  = "paragraph"
	KindHeading    = "heading"
	KindCodeBlock  = "code_block"
	KindBlockquote = "blockquote"
	KindListItem   = "list_item"
	KindTable      = "table"
	KindRule       = "horizontal_rule"
	KindEntity     = "entity"
	KindGeneral    = "general"
)

// Segment kinds used as keys of Serializer.Segments.
const (
	KindText      = "text"
	KindImage     = "image"
	KindHardBreak = "hard_break"
)

// BlockKind returns the serializer key of block. Paragraphs with
// preformatted white space are code blocks.
func BlockKind(block model.Block) string {
	switch b := block.(type) {
	case *model.Paragraph:
		switch {
		case b.HeaderLevel > 0:
			return KindHeading
		case strings.HasPrefix(b.Format.WhiteSpace, "pre"):
			return KindCodeBlock
		}
		return KindParagraph
	case *model.Quote:
		return KindBlockquote
	case *model.ListItem:
		return KindListItem
	case *model.Table:
		return KindTable
	case *model.Divider:
		return KindRule
	case *model.Entity:
		return KindEntity
	case *model.GeneralBlock:
		return KindGeneral
	}
	return ""
}

// SegmentKind returns the serializer key of segment.
func SegmentKind(segment model.Segment) string {
	switch segment.(type) {
	case *model.Text:
		return KindText
	case *model.Image:
		return KindImage
	case *model.Br:
		return KindHardBreak
	case *model.Entity:
		return KindEntity
	}
	return ""
}

var backticksRegexp = regexp.MustCompile("`{3,}")

// DefaultSerializer serializes every kind of block and segment of the
// content model.
var DefaultSerializer = NewSerializer(map[string]BlockSerializerFunc{
	KindBlockquote: func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		quote := block.(*model.Quote)
		state.WrapBlock("> ", nil, quote, func() { state.RenderContent(quote) })
	},
	KindCodeBlock: func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		p := block.(*model.Paragraph)
		fence := "```"
		content := strings.TrimSuffix(plainText(p.Segments), "\n")
		matches := backticksRegexp.FindAllString(content, -1)
		for _, backticks := range matches {
			if len(backticks) >= len(fence) {
				fence = backticks + "`"
			}
		}

		state.Write(fence + "\n")
		state.Text(content, false)
		state.EnsureNewLine()
		state.Write(fence)
		state.CloseBlock(p)
	},
	KindHeading: func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		p := block.(*model.Paragraph)
		if !hasInlineContent(p) {
			return
		}
		state.Write(strings.Repeat("#", min(p.HeaderLevel, 6)) + " ")
		state.WithImplicitFormat(model.Format{FontWeight: "bold"}, func() {
			state.RenderInline(p)
		})
		state.CloseBlock(p)
	},
	KindRule: func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		// A DIV divider only adds spacing.
		if d := block.(*model.Divider); d.TagName == "hr" {
			state.Write("---")
			state.CloseBlock(d)
		}
	},
	KindListItem: func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		state.RenderListItem(block.(*model.ListItem))
	},
	KindParagraph: func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		p := block.(*model.Paragraph)
		if !hasInlineContent(p) {
			return
		}
		state.RenderInline(p)
		state.CloseBlock(p)
	},
	KindTable: func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		state.RenderTable(block.(*model.Table))
	},
	KindEntity: func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		e := block.(*model.Entity)
		if e.Wrapper == nil {
			return
		}
		if text := strings.TrimSpace(dom.TextContent(e.Wrapper)); text != "" {
			state.Text(text)
			state.CloseBlock(e)
		}
	},
	KindGeneral: func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		state.RenderContent(block.(*model.GeneralBlock))
	},
}, map[string]SegmentSerializerFunc{
	KindText: func(state *SerializerState, segment model.Segment, _ []model.Segment, _ int) {
		state.Text(segment.(*model.Text).Text, !state.InAutoLink)
	},
	KindImage: func(state *SerializerState, segment model.Segment, _ []model.Segment, _ int) {
		img := segment.(*model.Image)
		src := strings.ReplaceAll(img.Src, "(", "\\(")
		src = strings.ReplaceAll(src, ")", "\\)")
		title := ""
		if img.Title != "" {
			title = ` "` + strings.ReplaceAll(img.Title, `"`, `\"`) + `"`
		}
		state.Write(fmt.Sprintf("![%s](%s)%s", state.Esc(img.Alt), src, title))
	},
	KindHardBreak: func(state *SerializerState, _ model.Segment, segments []model.Segment, index int) {
		for _, next := range segments[index+1:] {
			if _, ok := next.(*model.Br); !ok {
				state.Write("\\\n")
				return
			}
		}
	},
	KindEntity: func(state *SerializerState, segment model.Segment, _ []model.Segment, _ int) {
		if e := segment.(*model.Entity); e.Wrapper != nil {
			state.Text(dom.TextContent(e.Wrapper))
		}
	},
}, map[string]MarkSerializerSpec{
	"em":     {Open: "*", Close: "*", Mixable: true, ExpelEnclosingWhitespace: true},
	"strong": {Open: "**", Close: "**", Mixable: true, ExpelEnclosingWhitespace: true},
	"strike": {Open: "~~", Close: "~~", Mixable: true, ExpelEnclosingWhitespace: true},
	"link": {
		Open: MarkStringFunc(func(state *SerializerState, mark Mark, segments []model.Segment, index int) string {
			state.InAutoLink = state.isPlainURL(mark, segments, index)
			if state.InAutoLink {
				return "<"
			}
			return "["
		}),
		Close: MarkStringFunc(func(state *SerializerState, mark Mark, _ []model.Segment, _ int) string {
			if state.InAutoLink {
				state.InAutoLink = false
				return ">"
			}
			href := strings.ReplaceAll(mark.Link.Href, "(", "\\(")
			href = strings.ReplaceAll(href, ")", "\\)")
			href = strings.ReplaceAll(href, `"`, `\"`)
			title := mark.Link.Title
			if title != "" {
				title = ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
			}
			return fmt.Sprintf("](%s%s)", href, title)
		}),
		Mixable: true,
	},
	"code": {
		Open: MarkStringFunc(func(_ *SerializerState, _ Mark, segments []model.Segment, index int) string {
			if index >= len(segments) {
				return "`"
			}
			return backticksFor(segments[index], -1)
		}),
		Close: MarkStringFunc(func(_ *SerializerState, _ Mark, segments []model.Segment, index int) string {
			if index < 1 || index > len(segments) {
				return "`"
			}
			return backticksFor(segments[index-1], 1)
		}),
		NoEscape: true,
	},
})

func backticksFor(segment model.Segment, side int) string {
	length := 0
	if t, ok := segment.(*model.Text); ok {
		ticks := strings.FieldsFunc(t.Text, func(r rune) bool { return r != '`' })
		for _, tick := range ticks {
			if l := len(tick); l > length {
				length = l
			}
		}
	}
	result := "`"
	if length > 0 && side > 0 {
		result = " `"
	}
	result += strings.Repeat("`", length)
	if length > 0 && side < 0 {
		result += " "
	}
	return result
}

// isCode reports whether a segment format is rendered as inline code.
func isCode(f *model.Format) bool {
	return strings.Contains(strings.ToLower(f.FontFamily), "monospace")
}

// plainText joins the text of segments, with a newline for each Br.
func plainText(segments []model.Segment) string {
	var b strings.Builder
	for _, s := range inlineSegments(segments) {
		switch s := s.(type) {
		case *model.Text:
			b.WriteString(s.Text)
		case *model.Br:
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// inlineSegments drops selection markers and flattens general segments
// into the segments of their paragraphs.
func inlineSegments(segments []model.Segment) []model.Segment {
	result := make([]model.Segment, 0, len(segments))
	for _, s := range segments {
		switch s := s.(type) {
		case *model.SelectionMarker:
		case *model.GeneralSegment:
			for _, b := range s.Blocks {
				if p, ok := b.(*model.Paragraph); ok {
					result = append(result, inlineSegments(p.Segments)...)
				}
			}
		default:
			result = append(result, s)
		}
	}
	return result
}

func hasInlineContent(p *model.Paragraph) bool {
	for _, s := range inlineSegments(p.Segments) {
		if _, ok := s.(*model.Br); !ok {
			return true
		}
	}
	return false
}

func withText(t *model.Text, text string) *model.Text {
	copied := *t
	copied.Text = text
	return &copied
}

func (s *SerializerState) isPlainURL(link Mark, segments []model.Segment, index int) bool {
	if link.Link.Title != "" {
		return false
	}
	href := link.Link.Href
	if !strings.Contains(href, ":") {
		return false
	}
	if index >= len(segments) {
		return true
	}
	content, ok := segments[index].(*model.Text)
	if !ok || content.Text != href {
		return false
	}
	marks := s.MarksOf(content)
	if marks[len(marks)-1] != link {
		return false
	}
	if index == len(segments)-1 {
		return true
	}
	return !link.IsInSet(s.MarksOf(segments[index+1]))
}

// listCounter is the numbering state of one list depth.
type listCounter struct {
	listType model.ListType
	next     int
}

// width is the marker width of the last rendered item.
func (c listCounter) width() int {
	if c.listType == model.ListOL {
		return len(strconv.Itoa(c.next-1)) + 2
	}
	return 2
}

// SerializerState is an object used to track state and expose methods
// related to markdown serialization. Instances are passed to block, segment
// and mark serialization functions.
type SerializerState struct {
	Blocks       map[string]BlockSerializerFunc
	Segments     map[string]SegmentSerializerFunc
	Marks        map[string]MarkSerializerSpec
	Delim        string
	Out          string
	Closed       model.Block
	InAutoLink   bool
	AtBlockStart bool
	InTightList  bool
	lists        []listCounter
	implicit     model.Format
}

// NewSerializerState returns a state rendering with the tables of s.
func NewSerializerState(s *Serializer, opts Options) *SerializerState {
	return &SerializerState{
		Blocks:      s.Blocks,
		Segments:    s.Segments,
		Marks:       s.Marks,
		InTightList: opts.TightLists,
	}
}

func (s *SerializerState) flushClose(size ...int) {
	if s.Closed == nil {
		return
	}
	s.EnsureNewLine()
	siz := 2
	if len(size) > 0 {
		siz = size[0]
	}
	if siz > 1 {
		delimMin := strings.TrimRightFunc(s.Delim, unicode.IsSpace)
		for i := 1; i < siz; i++ {
			s.Out += delimMin + "\n"
		}
	}
	s.Closed = nil
}

// WrapBlock renders a block, prefixing each line with `delim`, and the first
// line in `firstDelim`. `block` should be the block that is closed at the
// end, and `f` is a function that renders the content of the block.
func (s *SerializerState) WrapBlock(delim string, firstDelim *string, block model.Block, f func()) {
	old := s.Delim
	d := delim
	if firstDelim != nil {
		d = *firstDelim
	}
	s.Write(d)
	s.Delim += delim
	f()
	s.Delim = old
	s.CloseBlock(block)
}

func (s *SerializerState) atBlank() bool {
	if len(s.Out) == 0 {
		return true
	}
	return s.Out[len(s.Out)-1] == '\n'
}

// EnsureNewLine ensures the current content ends with a newline.
func (s *SerializerState) EnsureNewLine() {
	if !s.atBlank() {
		s.Out += "\n"
	}
}

// Write prepares the state for writing output (closing closed paragraphs,
// adding delimiters, and so on), and then optionally add content
// (unescaped) to the output.
func (s *SerializerState) Write(content ...string) {
	s.flushClose()
	if s.Delim != "" && s.atBlank() {
		s.Out += s.Delim
	}
	if len(content) > 0 {
		s.Out += content[0]
	}
}

// CloseBlock closes the given block.
func (s *SerializerState) CloseBlock(block model.Block) {
	s.Closed = block
}

var exclamationRegexp = regexp.MustCompile(`(^|[^\\])\!$`)

// Text adds the given text to the document. When escape is not `false`, it
// will be escaped.
func (s *SerializerState) Text(text string, escape ...bool) {
	lines := strings.Split(text, "\n")
	esc := true
	if len(escape) > 0 {
		esc = escape[0]
	}
	for i, line := range lines {
		s.Write()
		// Escape exclamation marks in front of links
		if !esc && strings.HasPrefix(line, "[") && exclamationRegexp.MatchString(s.Out) {
			s.Out = s.Out[:len(s.Out)-1] + "\\!"
		}
		if esc {
			s.Out += s.Esc(line, s.AtBlockStart || i > 0)
		} else {
			s.Out += line
		}
		if line != "" {
			s.AtBlockStart = false
		}
		if i != len(lines)-1 {
			s.Out += "\n"
		}
	}
}

// Render the given block.
func (s *SerializerState) Render(block model.Block, parent model.BlockGroup, index int) {
	if _, ok := block.(*model.ListItem); !ok {
		s.lists = nil
	}
	if fn, ok := s.Blocks[BlockKind(block)]; ok {
		fn(s, block, parent, index)
	}
}

// RenderContent renders the blocks of `parent`.
func (s *SerializerState) RenderContent(parent model.BlockGroup) {
	for i, block := range *parent.Children() {
		s.Render(block, parent, i)
	}
	s.lists = nil
}

// WithImplicitFormat runs f with a segment format that the enclosing block
// already conveys, such as the bold weight of headings. Marks for it are not
// written.
func (s *SerializerState) WithImplicitFormat(implicit model.Format, f func()) {
	old := s.implicit
	s.implicit = implicit
	f()
	s.implicit = old
}

// MarksOf returns the marks of a segment, outermost first.
func (s *SerializerState) MarksOf(segment model.Segment) []Mark {
	if segment == nil {
		return nil
	}
	f := segment.SegmentFormat()
	var marks []Mark
	if f.Italic && !s.implicit.Italic {
		marks = append(marks, Mark{Name: "em"})
	}
	if f.IsBold() && !s.implicit.IsBold() {
		marks = append(marks, Mark{Name: "strong"})
	}
	if f.Strikethrough && !s.implicit.Strikethrough {
		marks = append(marks, Mark{Name: "strike"})
	}
	switch seg := segment.(type) {
	case *model.Text:
		if !seg.Link.IsEmpty() {
			marks = append(marks, Mark{Name: "link", Link: seg.Link})
		}
		if isCode(f) && !isCode(&s.implicit) {
			marks = append(marks, Mark{Name: "code"})
		}
	case *model.Image:
		if !seg.Link.IsEmpty() {
			marks = append(marks, Mark{Name: "link", Link: seg.Link})
		}
	}
	filtered := marks[:0]
	for _, m := range marks {
		if _, ok := s.Marks[m.Name]; ok {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func (s *SerializerState) renderSegment(segment model.Segment, segments []model.Segment, index int) {
	if fn, ok := s.Segments[SegmentKind(segment)]; ok {
		fn(s, segment, segments, index)
	}
}

// RenderInline renders the segments of `p` as inline content.
func (s *SerializerState) RenderInline(p *model.Paragraph) {
	segments := inlineSegments(p.Segments)
	s.AtBlockStart = true
	var active []Mark
	var trailing string

	progress := func(segment model.Segment, index int) {
		marks := s.MarksOf(segment)

		// Remove marks from hard breaks that are the last segment inside
		// that mark to prevent parser edge cases with new lines just
		// before closing marks.
		if _, ok := segment.(*model.Br); ok {
			var filtered []Mark
			for _, m := range marks {
				if index+1 == len(segments) {
					continue
				}
				next := segments[index+1]
				if !m.IsInSet(s.MarksOf(next)) {
					continue
				}
				if t, ok := next.(*model.Text); !ok || strings.TrimSpace(t.Text) != "" {
					filtered = append(filtered, m)
				}
			}
			marks = filtered
		}

		leading := trailing
		trailing = ""
		// If whitespace has to be expelled from the text, adjust leading
		// and trailing accordingly.
		if t, ok := segment.(*model.Text); ok {
			var expelLeading, expelTrailing bool
			for _, mark := range marks {
				if info, ok := s.Marks[mark.Name]; !ok || !info.ExpelEnclosingWhitespace {
					continue
				}
				if !mark.IsInSet(active) {
					expelLeading = true
				}
				if index == len(segments)-1 || !mark.IsInSet(s.MarksOf(segments[index+1])) {
					expelTrailing = true
				}
			}
			text := t.Text
			if expelLeading {
				inner := strings.TrimLeftFunc(text, unicode.IsSpace)
				leading += text[:len(text)-len(inner)]
				text = inner
			}
			if expelTrailing {
				inner := strings.TrimRightFunc(text, unicode.IsSpace)
				trailing = text[len(inner):]
				text = inner
			}
			switch {
			case text == "":
				segment = nil
				marks = active
			case text != t.Text:
				segment = withText(t, text)
			}
		}

		var inner Mark
		noEsc := false
		if len(marks) > 0 {
			inner = marks[len(marks)-1]
			noEsc = s.Marks[inner.Name].NoEscape
		}
		length := len(marks)
		if noEsc {
			length--
		}

		// Try to reorder mixable marks, such as em and strong, which in
		// Markdown may be opened and closed in different order, so that
		// order of the marks for the segment matches the order in active.
	outer:
		for i := 0; i < len(marks); i++ {
			mark := marks[i]
			if !s.Marks[mark.Name].Mixable {
				break
			}
			for j, other := range active {
				if !s.Marks[other.Name].Mixable {
					break
				}
				if !mark.Eq(other) {
					continue
				}
				mixed := make([]Mark, 0, len(marks))
				if i > j {
					mixed = append(mixed, marks[:j]...)
					mixed = append(mixed, mark)
					mixed = append(mixed, marks[j:i]...)
					mixed = append(mixed, marks[i+1:]...)
				} else if j > i {
					hi := min(j, len(marks))
					for hi > i+1 && !s.Marks[marks[hi-1].Name].Mixable {
						hi--
					}
					mixed = append(mixed, marks[:i]...)
					mixed = append(mixed, marks[i+1:hi]...)
					mixed = append(mixed, mark)
					mixed = append(mixed, marks[hi:]...)
				} else {
					mixed = marks
				}
				marks = mixed
				continue outer
			}
		}

		// Find the prefix of the mark set that didn't change
		keep := 0
		for keep < min(len(marks), len(active)) && marks[keep].Eq(active[keep]) {
			keep++
		}

		// Close the marks that need to be closed
		for keep < len(active) {
			s.Text(s.MarkString(active[len(active)-1], false, segments, index), false)
			active = active[:len(active)-1]
		}

		// Output any previously expelled trailing whitespace outside the marks
		if leading != "" {
			s.Text(leading)
		}

		if segment == nil {
			return
		}
		// Open the marks that need to be opened
		for len(active) < length {
			add := marks[len(active)]
			active = append(active, add)
			s.Text(s.MarkString(add, true, segments, index), false)
		}

		// Render the segment. Special case code marks, since their
		// content may not be escaped.
		if t, ok := segment.(*model.Text); ok && noEsc {
			s.Text(s.MarkString(inner, true, segments, index)+t.Text+
				s.MarkString(inner, false, segments, index+1), false)
		} else {
			s.renderSegment(segment, segments, index)
		}
	}

	for i, segment := range segments {
		progress(segment, i)
	}
	progress(nil, len(segments))
	s.AtBlockStart = false
}

// RenderListItem renders a list item. Consecutive items of a block group
// form the lists: the numbering of ordered levels continues from the
// previous item unless the level starts a new list or overrides its start
// number.
func (s *SerializerState) RenderListItem(item *model.ListItem) {
	levels := item.Levels
	if len(levels) == 0 {
		s.RenderContent(item)
		return
	}

	if _, ok := s.Closed.(*model.ListItem); ok && s.InTightList {
		s.flushClose(1)
	}

	keep := 0
	for keep < min(len(s.lists), len(levels)) && s.lists[keep].listType == levels[keep].ListType {
		keep++
	}
	s.lists = s.lists[:keep]
	for _, level := range levels[keep:] {
		s.lists = append(s.lists, listCounter{listType: level.ListType, next: 1})
	}
	depth := len(levels) - 1
	current := &s.lists[depth]
	if n := levels[depth].StartNumberOverride; n > 0 {
		current.next = n
	}

	marker := "* "
	if current.listType == model.ListOL {
		marker = strconv.Itoa(current.next) + ". "
	}
	current.next++

	indent := 0
	for _, c := range s.lists[:depth] {
		indent += c.width()
	}

	old, lists := s.Delim, s.lists
	s.Delim += strings.Repeat(" ", indent)
	s.lists = nil
	s.WrapBlock(strings.Repeat(" ", len(marker)), &marker, item, func() { s.RenderContent(item) })
	s.Delim, s.lists = old, lists
}

// RenderTable renders a table with the pipe syntax of GitHub Flavored
// Markdown. The first row is the header row; merged cells are left out.
func (s *SerializerState) RenderTable(table *model.Table) {
	var rows [][]string
	width := 0
	for _, row := range table.Cells {
		var cells []string
		for _, cell := range row {
			switch {
			case cell == nil || cell.SpanLeft:
			case cell.SpanAbove:
				cells = append(cells, "")
			default:
				cells = append(cells, s.renderCell(cell))
			}
		}
		rows = append(rows, cells)
		width = max(width, len(cells))
	}
	if width == 0 {
		return
	}

	separator := make([]string, width)
	for i := range separator {
		separator[i] = "---"
	}
	lines := make([]string, 0, len(rows)+1)
	for i, cells := range rows {
		for len(cells) < width {
			cells = append(cells, "")
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			lines = append(lines, "| "+strings.Join(separator, " | ")+" |")
		}
	}
	for i, line := range lines {
		if i > 0 {
			s.EnsureNewLine()
		}
		s.Write(line)
	}
	s.CloseBlock(table)
}

func (s *SerializerState) renderCell(cell *model.TableCell) string {
	sub := &SerializerState{
		Blocks:      s.Blocks,
		Segments:    s.Segments,
		Marks:       s.Marks,
		InTightList: true,
	}
	if cell.IsHeader {
		sub.implicit = model.Format{FontWeight: "bold"}
	}
	sub.RenderContent(cell)
	var parts []string
	for _, line := range strings.Split(sub.Out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, strings.ReplaceAll(line, "|", "\\|"))
		}
	}
	return strings.Join(parts, " ")
}

var (
	escRegexp1 = regexp.MustCompile("([`*\\\\~\\[\\]])")
	escRegexp2 = regexp.MustCompile(`(\b_)|(_\b)`)
	escRegexp3 = regexp.MustCompile(`^([#\-*+>])`)
	escRegexp4 = regexp.MustCompile(`^(\s*\d+)\.`)
)

// Esc escapes the given string so that it can safely appear in Markdown
// content. If `startOfLine` is true, also escape characters that have special
// meaning only at the start of the line.
func (s *SerializerState) Esc(str string, startOfLine ...bool) string {
	start := false
	if len(startOfLine) > 0 {
		start = startOfLine[0]
	}
	str = escRegexp1.ReplaceAllString(str, "\\$1")
	str = escRegexp2.ReplaceAllString(str, "\\_")
	if start {
		str = escRegexp3.ReplaceAllString(str, "\\$1")
		str = escRegexp4.ReplaceAllString(str, "$1\\.")
	}
	return str
}

// MarkString gets the markdown string for a given opening or closing mark.
func (s *SerializerState) MarkString(mark Mark, open bool, segments []model.Segment, index int) string {
	info := s.Marks[mark.Name]
	value := info.Open
	if !open {
		value = info.Close
	}
	switch value := value.(type) {
	case string:
		return value
	case MarkStringFunc:
		return value(s, mark, segments, index)
	}
	return ""
}
