package domtomodel

import (
	"github.com/shodgson/contentmodel-go/format"
	"github.com/shodgson/contentmodel-go/model"
	"golang.org/x/net/html"
)

// quoteProcessor handles BLOCKQUOTE. A quote with a left border becomes a
// Quote group. A quote that only sets vertical margins is decomposed into
// spacing dividers around an indented paragraph. Anything else is kept as
// a general block.
func quoteProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	src := ctx.source(el)
	switch {
	case format.HasBorder(src):
		borderQuote(group, el, src, ctx)
	case hasVerticalMargin(src):
		marginQuote(group, el, src, ctx)
	default:
		generalBlockProcessor(group, el, ctx)
	}
}

func hasVerticalMargin(src *format.Source) bool {
	return src.Style.Get("margin") != "" || src.Style.Get("margin-top") != "" || src.Style.Get("margin-bottom") != ""
}

func borderQuote(group model.BlockGroup, el *html.Node, src *format.Source, ctx *Context) {
	quoteFormat := ctx.BlockFormat.Clone()
	ctx.parse(&quoteFormat, format.CategoryBlock, src)

	var color model.Format
	ctx.parse(&color, format.CategorySegment, &format.Source{Node: el, Style: src.Style})
	segmentFormat := model.Format{TextColor: color.TextColor}
	if segmentFormat.TextColor == "" {
		segmentFormat.TextColor = ctx.SegmentFormat.TextColor
	}

	quote := model.NewQuote(quoteFormat, segmentFormat)
	addBlock(group, quote)
	ctx.stackFormat(func() {
		ctx.parse(&ctx.SegmentFormat, format.CategorySegment, src)
		ctx.SegmentFormat.TextColor = ""
		ProcessChildren(quote, el, ctx)
	})
}

func marginQuote(group model.BlockGroup, el *html.Node, src *format.Source, ctx *Context) {
	var parsed model.Format
	ctx.parse(&parsed, format.CategoryBlock, src)

	if !format.IsZeroLength(parsed.MarginTop) {
		addBlock(group, model.NewDivider("div", model.Format{MarginTop: parsed.MarginTop}))
	}
	ctx.stackFormat(func() {
		top, bottom := parsed.MarginTop, parsed.MarginBottom
		parsed.MarginTop, parsed.MarginBottom = "", ""
		ctx.BlockFormat = ctx.BlockFormat.Merge(parsed)
		ctx.parse(&ctx.SegmentFormat, format.CategorySegment, src)
		addBlock(group, model.NewParagraph(false, ctx.BlockFormat))
		ProcessChildren(group, el, ctx)
		parsed.MarginTop, parsed.MarginBottom = top, bottom
	})
	if !format.IsZeroLength(parsed.MarginBottom) {
		addBlock(group, model.NewDivider("div", model.Format{MarginBottom: parsed.MarginBottom}))
	}
	addTrailingParagraph(group, ctx)
}
