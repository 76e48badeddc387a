package domtomodel

import (
	"strconv"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/format"
	"github.com/shodgson/contentmodel-go/model"
	"golang.org/x/net/html"
)

// listProcessor pushes a list level for OL and UL. Ordered lists keep one
// item counter per depth so that a list whose start number doesn't
// continue the previous list at the same depth gets a start override.
func listProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	listType := model.ListUL
	if dom.Tag(el) == "ol" {
		listType = model.ListOL
	}
	level := model.NewListLevel(listType, model.Format{})
	src := ctx.source(el)
	ctx.parse(&level.Format, format.CategoryListLevel, src)

	lf := &ctx.ListFormat
	depth := len(lf.Levels)
	if listType == model.ListOL {
		start := 1
		if v, err := strconv.Atoi(dom.GetAttr(el, "start")); err == nil {
			start = v
		}
		if depth < len(lf.ThreadItemCounts) {
			if lf.ThreadItemCounts[depth] != start-1 {
				level.StartNumberOverride = start
			}
			lf.ThreadItemCounts = lf.ThreadItemCounts[:depth+1]
			lf.ThreadItemCounts[depth] = start - 1
		} else {
			if start != 1 {
				level.StartNumberOverride = start
			}
			for len(lf.ThreadItemCounts) < depth {
				lf.ThreadItemCounts = append(lf.ThreadItemCounts, 0)
			}
			lf.ThreadItemCounts = append(lf.ThreadItemCounts, start-1)
		}
	}

	savedLevels, savedParent := lf.Levels, lf.ListParent
	lf.Levels = append(model.CloneLevels(lf.Levels), level)
	if lf.ListParent == nil {
		lf.ListParent = group
	}
	ctx.stackFormat(func() {
		ctx.parse(&ctx.SegmentFormat, format.CategorySegment, src)
		ProcessChildren(group, el, ctx)
	})
	lf.Levels, lf.ListParent = savedLevels, savedParent
}

// listItemProcessor adds a list item to the list parent. An LI outside of
// a list is processed as a block element.
func listItemProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	lf := &ctx.ListFormat
	if lf.ListParent == nil || len(lf.Levels) == 0 {
		blockProcessor(group, el, ctx)
		return
	}
	ctx.stackFormat(func() {
		src := ctx.source(el)
		ctx.parse(&ctx.SegmentFormat, format.CategorySegment, src)
		item := model.NewListItem(lf.Levels, ctx.SegmentFormat)
		ctx.parse(&item.Format, format.CategoryBlock, src)
		addBlock(lf.ListParent, item)
		// Only the first item of a list restarts the numbering.
		lf.Levels[len(lf.Levels)-1].StartNumberOverride = 0
		ctx.BlockFormat = model.Format{}
		ProcessChildren(item, el, ctx)
	})
	if depth := len(lf.Levels) - 1; depth < len(lf.ThreadItemCounts) && lf.Levels[depth].ListType == model.ListOL {
		lf.ThreadItemCounts[depth]++
	}
}
