package domtomodel

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/format"
	"github.com/shodgson/contentmodel-go/model"
	"golang.org/x/net/html"
)

var defaultStyles = map[string]dom.Style{
	"b":          {{Property: "font-weight", Value: "bold"}},
	"strong":     {{Property: "font-weight", Value: "bold"}},
	"i":          {{Property: "font-style", Value: "italic"}},
	"em":         {{Property: "font-style", Value: "italic"}},
	"u":          {{Property: "text-decoration", Value: "underline"}},
	"s":          {{Property: "text-decoration", Value: "line-through"}},
	"strike":     {{Property: "text-decoration", Value: "line-through"}},
	"del":        {{Property: "text-decoration", Value: "line-through"}},
	"sup":        {{Property: "vertical-align", Value: "super"}},
	"sub":        {{Property: "vertical-align", Value: "sub"}},
	"code":       {{Property: "font-family", Value: "monospace"}},
	"center":     {{Property: "text-align", Value: "center"}},
	"pre":        {{Property: "white-space", Value: "pre"}},
	"h1":         {{Property: "font-weight", Value: "bold"}},
	"h2":         {{Property: "font-weight", Value: "bold"}},
	"h3":         {{Property: "font-weight", Value: "bold"}},
	"h4":         {{Property: "font-weight", Value: "bold"}},
	"h5":         {{Property: "font-weight", Value: "bold"}},
	"h6":         {{Property: "font-weight", Value: "bold"}},
	"th":         {{Property: "font-weight", Value: "bold"}},
	"blockquote": {{Property: "margin-top", Value: "1em"}, {Property: "margin-right", Value: "40px"}, {Property: "margin-bottom", Value: "1em"}, {Property: "margin-left", Value: "40px"}},
}

// DefaultStyle returns the style implied by a tag.
func DefaultStyle(tag string) dom.Style {
	return defaultStyles[tag]
}

var defaultProcessors map[string]ElementProcessor

func init() {
	defaultProcessors = map[string]ElementProcessor{
		KeyElement: elementProcessor,
		KeyChild:   childProcessor,
		KeyText:    textProcessor,
		KeyEntity:  entityProcessor,
		KeyGeneral: generalProcessor,

		"a":          linkProcessor,
		"br":         brProcessor,
		"img":        imageProcessor,
		"hr":         hrProcessor,
		"blockquote": quoteProcessor,
		"ol":         listProcessor,
		"ul":         listProcessor,
		"li":         listItemProcessor,
		"table":      tableProcessor,
		"script":     nil,
		"style":      nil,
		"head":       nil,
		"meta":       nil,
		"title":      nil,
	}
	for _, tag := range []string{"span", "font", "b", "strong", "i", "em", "u", "s", "strike", "del", "sup", "sub", "code", "small", "label"} {
		defaultProcessors[tag] = formatProcessor
	}
	for _, tag := range []string{"div", "p", "center", "pre", "section", "article", "header", "footer", "main", "nav", "aside", "address", "h1", "h2", "h3", "h4", "h5", "h6"} {
		defaultProcessors[tag] = blockProcessor
	}
}

// ProcessChildren processes the children of parent into group.
func ProcessChildren(group model.BlockGroup, parent *html.Node, ctx *Context) {
	ctx.Processors[KeyChild](group, parent, ctx)
}

// ProcessElement processes one element into group through the element
// dispatcher.
func ProcessElement(group model.BlockGroup, el *html.Node, ctx *Context) {
	ctx.Processors[KeyElement](group, el, ctx)
}

func childProcessor(group model.BlockGroup, parent *html.Node, ctx *Context) {
	index := 0
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		handleRegularSelection(group, parent, index, ctx)
		switch child.Type {
		case html.ElementNode:
			ctx.Processors[KeyElement](group, child, ctx)
		case html.TextNode:
			if p := ctx.Processors[KeyText]; p != nil {
				p(group, child, ctx)
			}
		}
		index++
	}
	handleRegularSelection(group, parent, index, ctx)
}

// handleRegularSelection adds a marker when a selection boundary is the
// child offset index of parent.
func handleRegularSelection(group model.BlockGroup, parent *html.Node, index int, ctx *Context) {
	sel := ctx.RegularSelection
	if sel == nil {
		return
	}
	if sel.Start.Node == parent && sel.Start.Offset == index {
		ctx.IsInSelection = true
		addSelectionMarker(group, ctx)
	}
	if sel.End.Node == parent && sel.End.Offset == index {
		if !sel.Collapsed {
			addSelectionMarker(group, ctx)
		}
		ctx.IsInSelection = false
	}
}

func addSelectionMarker(group model.BlockGroup, ctx *Context) {
	marker := model.NewSelectionMarker(ctx.SegmentFormat)
	model.AddSegment(group, marker, ctx.BlockFormat)
}

func elementProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	if _, ok := dom.ParseEntity(el); ok {
		if p := ctx.Processors[KeyEntity]; p != nil {
			p(group, el, ctx)
			return
		}
	}
	tag := dom.Tag(el)
	p, ok := ctx.Processors[tag]
	if !ok {
		p = ctx.Processors[KeyGeneral]
	}
	if p == nil {
		ctx.Logger.Debug("element skipped", "tag", tag)
		return
	}
	p(group, el, ctx)
}

var whiteSpaceRegexp = regexp.MustCompile(`[ \t\r\n\f]+`)

func textProcessor(group model.BlockGroup, node *html.Node, ctx *Context) {
	txt := node.Data
	start, end := -1, -1
	if sel := ctx.RegularSelection; sel != nil {
		if sel.Start.Node == node {
			start = runeOffset(txt, sel.Start.Offset)
		}
		if sel.End.Node == node {
			end = runeOffset(txt, sel.End.Offset)
		}
	}
	if start >= 0 {
		addTextSegment(group, txt[:start], ctx)
		ctx.IsInSelection = true
		addSelectionMarker(group, ctx)
		txt = txt[start:]
		if end >= 0 {
			end -= start
		}
	}
	if end >= 0 {
		addTextSegment(group, txt[:end], ctx)
		if !ctx.RegularSelection.Collapsed {
			addSelectionMarker(group, ctx)
		}
		ctx.IsInSelection = false
		txt = txt[end:]
	}
	addTextSegment(group, txt, ctx)
}

// runeOffset clamps the byte offset v into s and moves it back to the
// start of the rune it falls in.
func runeOffset(s string, v int) int {
	switch {
	case v <= 0:
		return 0
	case v >= len(s):
		return len(s)
	}
	for v > 0 && !utf8.RuneStart(s[v]) {
		v--
	}
	return v
}

func addTextSegment(group model.BlockGroup, text string, ctx *Context) {
	if text == "" {
		return
	}
	var last *model.Paragraph
	blocks := *group.Children()
	if n := len(blocks); n > 0 {
		last, _ = blocks[n-1].(*model.Paragraph)
	}
	if !strings.HasPrefix(ctx.BlockFormat.WhiteSpace, "pre") && !strings.HasPrefix(ctx.SegmentFormat.WhiteSpace, "pre") {
		text = whiteSpaceRegexp.ReplaceAllString(text, " ")
		if last == nil || len(last.Segments) == 0 {
			if text == " " {
				return
			}
		} else if _, ok := last.Segments[len(last.Segments)-1].(*model.Br); ok {
			// Whitespace at the start of a line collapses.
			if text = strings.TrimPrefix(text, " "); text == "" {
				return
			}
		}
	}
	if last != nil && len(last.Segments) > 0 {
		if t, ok := last.Segments[len(last.Segments)-1].(*model.Text); ok &&
			t.IsSelected == ctx.IsInSelection && t.Link == ctx.Link && t.Format.Equal(ctx.SegmentFormat) {
			t.Text += text
			return
		}
	}
	t := model.NewText(text, ctx.SegmentFormat)
	t.Link = ctx.Link
	t.IsSelected = ctx.IsInSelection
	model.AddSegment(group, t, ctx.BlockFormat)
}

// addBlock appends block to group, first dropping a trailing empty
// implicit paragraph left by a previous block element.
func addBlock(group model.BlockGroup, block model.Block) {
	blocks := group.Children()
	if n := len(*blocks); n > 0 {
		if p, ok := (*blocks)[n-1].(*model.Paragraph); ok && p.IsImplicit && len(p.Segments) == 0 {
			*blocks = (*blocks)[:n-1]
		}
	}
	model.AddBlock(group, block)
}

// addTrailingParagraph ends a block element: content following it goes to
// a new implicit paragraph.
func addTrailingParagraph(group model.BlockGroup, ctx *Context) {
	addBlock(group, model.NewParagraph(true, ctx.BlockFormat))
}

// formatProcessor handles inline formatting elements such as SPAN or B.
// Block display turns them into block elements.
func formatProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	if dom.IsBlockElement(el) {
		blockProcessor(group, el, ctx)
		return
	}
	ctx.stackFormat(func() {
		ctx.parse(&ctx.SegmentFormat, format.CategorySegment, ctx.source(el))
		ProcessChildren(group, el, ctx)
	})
}

func linkProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	ctx.stackFormat(func() {
		if href := dom.GetAttr(el, "href"); href != "" {
			ctx.Link = model.Link{
				Href:   href,
				Target: dom.GetAttr(el, "target"),
				Title:  dom.GetAttr(el, "title"),
			}
		}
		ctx.parse(&ctx.SegmentFormat, format.CategorySegment, ctx.source(el))
		ProcessChildren(group, el, ctx)
	})
}

func brProcessor(group model.BlockGroup, _ *html.Node, ctx *Context) {
	br := model.NewBr(ctx.SegmentFormat)
	br.IsSelected = ctx.IsInSelection
	model.AddSegment(group, br, ctx.BlockFormat)
}

func imageProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	img := model.NewImage(dom.GetAttr(el, "src"), ctx.SegmentFormat)
	img.Alt = dom.GetAttr(el, "alt")
	img.Title = dom.GetAttr(el, "title")
	img.Link = ctx.Link
	img.IsSelected = ctx.IsInSelection
	src := ctx.source(el)
	ctx.parse(&img.Format, format.CategorySegment, src)
	ctx.parse(&img.Format, format.CategoryImage, src)
	model.AddSegment(group, img, ctx.BlockFormat)
}

func hrProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	divider := model.NewDivider("hr", model.Format{})
	ctx.parse(&divider.Format, format.CategoryDivider, ctx.source(el))
	divider.IsSelected = ctx.IsInSelection
	addBlock(group, divider)
}

func entityProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	info, _ := dom.ParseEntity(el)
	entity := model.NewEntity(el, info.IsReadonly, ctx.SegmentFormat, info.ID, info.Type)
	entity.IsSelected = ctx.IsInSelection
	if dom.IsBlockElement(el) {
		addBlock(group, entity)
	} else {
		model.AddSegment(group, entity, ctx.BlockFormat)
	}
}

var headerLevels = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

// blockProcessor turns a block element into an explicit paragraph holding
// its inline content. A container of other block elements is kept as a
// general block instead, so that it renders back around its children.
func blockProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	level := headerLevels[dom.Tag(el)]
	if level == 0 && hasBlockChild(el) {
		generalBlockProcessor(group, el, ctx)
		return
	}
	ctx.stackFormat(func() {
		src := ctx.source(el)
		ctx.parse(&ctx.BlockFormat, format.CategoryBlock, src)
		ctx.parse(&ctx.SegmentFormat, format.CategorySegment, src)
		p := model.NewParagraph(false, ctx.BlockFormat)
		p.HeaderLevel = level
		addBlock(group, p)
		ProcessChildren(group, el, ctx)
	})
	addTrailingParagraph(group, ctx)
}

func hasBlockChild(el *html.Node) bool {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsBlockElement(c) {
			return true
		}
	}
	return false
}

func generalProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	if dom.IsBlockElement(el) {
		generalBlockProcessor(group, el, ctx)
		return
	}
	ctx.Logger.Debug("inline element kept as general segment", "tag", dom.Tag(el))
	segment := model.NewGeneralSegment(el, ctx.SegmentFormat)
	segment.IsSelected = ctx.IsInSelection
	model.AddSegment(group, segment, ctx.BlockFormat)
	ctx.stackFormat(func() {
		ctx.BlockFormat = model.Format{}
		ProcessChildren(segment, el, ctx)
	})
}

func generalBlockProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	block := model.NewGeneralBlock(el, model.Format{})
	addBlock(group, block)
	ctx.stackFormat(func() {
		ctx.BlockFormat = model.Format{}
		ProcessChildren(block, el, ctx)
	})
}
