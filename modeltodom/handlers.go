package modeltodom

import (
	"strconv"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/format"
	"github.com/shodgson/contentmodel-go/model"
	"golang.org/x/net/html"
)

func defaultHandlers() Handlers {
	return Handlers{
		Block:              handleBlock,
		BlockGroupChildren: handleBlockGroupChildren,
		Segment:            handleSegment,
		Paragraph:          handleParagraph,
		Table:              handleTable,
		Quote:              handleQuote,
		ListItem:           handleListItem,
		GeneralBlock:       handleGeneralBlock,
		Divider:            handleDivider,
		Entity:             handleEntity,
		List:               handleList,
		Text:               handleText,
		Br:                 handleBr,
		Image:              handleImage,
		SelectionMarker:    handleSelectionMarker,
		GeneralSegment:     handleGeneralSegment,
	}
}

// handleBlockGroupChildren renders the blocks of group. Consecutive list
// items share their list elements; any other block ends the lists.
func handleBlockGroupChildren(parent *html.Node, group model.BlockGroup, ctx *Context) {
	lf := &ctx.ListFormat
	saved := lf.NodeStack
	defer func() { lf.NodeStack = saved }()

	lf.NodeStack = nil
	for _, block := range *group.Children() {
		if _, ok := block.(*model.ListItem); !ok {
			lf.NodeStack = nil
		}
		ctx.Handlers.Block(parent, block, ctx)
	}
}

func handleBlock(parent *html.Node, block model.Block, ctx *Context) {
	switch b := block.(type) {
	case *model.Paragraph:
		ctx.Handlers.Paragraph(parent, b, ctx)
	case *model.Table:
		ctx.Handlers.Table(parent, b, ctx)
	case *model.Quote:
		ctx.Handlers.Quote(parent, b, ctx)
	case *model.ListItem:
		ctx.Handlers.ListItem(parent, b, ctx)
	case *model.GeneralBlock:
		ctx.Handlers.GeneralBlock(parent, b, ctx)
	case *model.Divider:
		ctx.Handlers.Divider(parent, b, ctx)
	case *model.Entity:
		ctx.RegularSelection.Current = SelectionPosition{Block: parent, Segment: parent.LastChild}
		trackSelection(ctx, b.IsSelected, func() {
			ctx.Handlers.Entity(parent, b, ctx)
		})
	default:
		ctx.Logger.Warn("block not rendered", "blockType", block.BlockType())
	}
}

func handleSegment(parent *html.Node, segment model.Segment, ctx *Context) {
	trackSelection(ctx, segment.Selected(), func() {
		switch s := segment.(type) {
		case *model.Text:
			ctx.Handlers.Text(parent, s, ctx)
		case *model.Br:
			ctx.Handlers.Br(parent, s, ctx)
		case *model.Image:
			ctx.Handlers.Image(parent, s, ctx)
		case *model.SelectionMarker:
			ctx.Handlers.SelectionMarker(parent, s, ctx)
		case *model.GeneralSegment:
			ctx.Handlers.GeneralSegment(parent, s, ctx)
		case *model.Entity:
			ctx.Handlers.Entity(parent, s, ctx)
		default:
			ctx.Logger.Warn("segment not rendered", "segmentType", segment.SegmentType())
		}
	})
}

// trackSelection records the current position as the selection start
// before the first selected node, and as the selection end after each one.
func trackSelection(ctx *Context, selected bool, render func()) {
	sel := &ctx.RegularSelection
	if selected && sel.Start == nil {
		start := sel.Current
		sel.Start = &start
	}
	render()
	if selected {
		end := sel.Current
		sel.End = &end
	}
}

// handleParagraph renders the segments of an implicit paragraph straight
// into parent, and those of other paragraphs into a DIV or heading.
func handleParagraph(parent *html.Node, p *model.Paragraph, ctx *Context) {
	implicit := ctx.Env.ImplicitFormat
	defer func() { ctx.Env.ImplicitFormat = implicit }()

	container := parent
	if !p.IsImplicit {
		tag := "div"
		if p.HeaderLevel >= 1 && p.HeaderLevel <= 6 {
			tag = "h" + strconv.Itoa(p.HeaderLevel)
			ctx.Env.ImplicitFormat = implicit.Merge(model.Format{FontWeight: "bold"})
		}
		container = dom.NewElement(tag)
		parent.AppendChild(container)
		ctx.apply(&p.Format, format.CategoryBlock, container)
	}

	ctx.RegularSelection.Current = SelectionPosition{Block: container, Segment: container.LastChild}
	for _, s := range p.Segments {
		ctx.Handlers.Segment(container, s, ctx)
	}
}

func linkElement(link model.Link) *html.Node {
	a := dom.NewElement("a", html.Attribute{Key: "href", Val: link.Href})
	if link.Target != "" {
		dom.SetAttr(a, "target", link.Target)
	}
	if link.Title != "" {
		dom.SetAttr(a, "title", link.Title)
	}
	return a
}

func handleText(parent *html.Node, t *model.Text, ctx *Context) {
	txt := dom.NewText(t.Text)
	span := dom.NewElement("span")
	parent.AppendChild(span)
	if t.Link.IsEmpty() {
		span.AppendChild(txt)
	} else {
		a := linkElement(t.Link)
		a.AppendChild(txt)
		span.AppendChild(a)
	}
	ctx.apply(&t.Format, format.CategorySegment, span)
	ctx.RegularSelection.Current.Segment = txt
}

func handleBr(parent *html.Node, _ *model.Br, ctx *Context) {
	br := dom.NewElement("br")
	parent.AppendChild(br)
	ctx.RegularSelection.Current.Segment = br
}

func handleImage(parent *html.Node, img *model.Image, ctx *Context) {
	el := dom.NewElement("img", html.Attribute{Key: "src", Val: img.Src})
	if img.Alt != "" {
		dom.SetAttr(el, "alt", img.Alt)
	}
	if img.Title != "" {
		dom.SetAttr(el, "title", img.Title)
	}
	ctx.apply(&img.Format, format.CategoryImage, el)

	node := el
	if !img.Link.IsEmpty() {
		node = linkElement(img.Link)
		node.AppendChild(el)
	}
	parent.AppendChild(node)
	ctx.RegularSelection.Current.Segment = node
}

// handleSelectionMarker renders nothing: the marker only shows up as the
// selection position tracked around it.
func handleSelectionMarker(*html.Node, *model.SelectionMarker, *Context) {}

func handleGeneralSegment(parent *html.Node, g *model.GeneralSegment, ctx *Context) {
	el := dom.CloneElement(g.Element)
	parent.AppendChild(el)

	current := ctx.RegularSelection.Current
	ctx.Handlers.BlockGroupChildren(el, g, ctx)
	ctx.RegularSelection.Current = SelectionPosition{Block: current.Block, Segment: el}
}

func handleGeneralBlock(parent *html.Node, g *model.GeneralBlock, ctx *Context) {
	el := dom.CloneElement(g.Element)
	parent.AppendChild(el)
	ctx.Handlers.BlockGroupChildren(el, g, ctx)
}

// handleEntity puts the entity wrapper back as is.
func handleEntity(parent *html.Node, e *model.Entity, ctx *Context) {
	if e.Wrapper == nil {
		ctx.Logger.Warn("entity without wrapper", "id", e.ID, "type", e.Type)
		return
	}
	dom.Detach(e.Wrapper)
	parent.AppendChild(e.Wrapper)
	ctx.Entities = append(ctx.Entities, EntityPair{Entity: e, Wrapper: e.Wrapper})
	ctx.RegularSelection.Current.Segment = e.Wrapper
}

func handleDivider(parent *html.Node, d *model.Divider, ctx *Context) {
	tag := d.TagName
	if tag == "" {
		tag = "hr"
	}
	el := dom.NewElement(tag)
	parent.AppendChild(el)
	ctx.apply(&d.Format, format.CategoryDivider, el)
}

func handleQuote(parent *html.Node, q *model.Quote, ctx *Context) {
	el := dom.NewElement("blockquote")
	parent.AppendChild(el)
	ctx.apply(&q.Format, format.CategoryBlock, el)

	implicit := ctx.Env.ImplicitFormat
	defer func() { ctx.Env.ImplicitFormat = implicit }()
	if color := q.QuoteSegmentFormat.TextColor; color != "" {
		format.Apply(&q.QuoteSegmentFormat, []*format.Handler{format.Handlers[format.KeyTextColor]}, el, ctx.Env)
		ctx.Env.ImplicitFormat = implicit.Merge(model.Format{TextColor: color})
	}
	ctx.Handlers.BlockGroupChildren(el, q, ctx)
}

// listItemAppliers render the list marker format on LI.
var listItemAppliers = []*format.Handler{
	format.Handlers[format.KeyFontFamily],
	format.Handlers[format.KeyFontSize],
	format.Handlers[format.KeyTextColor],
}

func handleListItem(parent *html.Node, item *model.ListItem, ctx *Context) {
	list := ctx.Handlers.List(parent, item.Levels, ctx)
	li := dom.NewElement("li")
	list.AppendChild(li)
	ctx.apply(&item.Format, format.CategoryBlock, li)
	if item.FormatHolder != nil {
		format.Apply(&item.FormatHolder.Format, listItemAppliers, li, ctx.Env)
	}
	ctx.Handlers.BlockGroupChildren(li, item, ctx)

	lf := &ctx.ListFormat
	if depth := len(item.Levels) - 1; depth >= 0 && depth < len(lf.ThreadItemCounts) && item.Levels[depth].ListType == model.ListOL {
		lf.ThreadItemCounts[depth]++
	}
}

// handleList reuses the open list elements matching the leading levels and
// creates the remaining ones. An ordered level with a start override
// always opens a new list.
func handleList(parent *html.Node, levels []model.ListLevel, ctx *Context) *html.Node {
	lf := &ctx.ListFormat
	if len(lf.NodeStack) == 0 {
		lf.NodeStack = []ListStackItem{{Node: parent}}
	}

	layer := 0
	for layer < len(levels) && layer+1 < len(lf.NodeStack) {
		open, level := lf.NodeStack[layer+1].Level, levels[layer]
		if open.ListType != level.ListType || !open.Format.Equal(level.Format) ||
			(level.ListType == model.ListOL && level.StartNumberOverride > 0) {
			break
		}
		layer++
	}
	lf.NodeStack = lf.NodeStack[:layer+1]

	for ; layer < len(levels); layer++ {
		level := &levels[layer]
		tag := "ul"
		if level.ListType == model.ListOL {
			tag = "ol"
		}
		el := dom.NewElement(tag)
		lf.NodeStack[len(lf.NodeStack)-1].Node.AppendChild(el)
		if level.ListType == model.ListOL {
			if start := threadStart(lf, layer, level.StartNumberOverride); start != 1 {
				dom.SetAttr(el, "start", strconv.Itoa(start))
			}
		}
		ctx.apply(&level.Format, format.CategoryListLevel, el)
		lf.NodeStack = append(lf.NodeStack, ListStackItem{Node: el, Level: level})
	}
	return lf.NodeStack[len(lf.NodeStack)-1].Node
}

// threadStart returns the number of the first item of a new ordered list
// at depth, continuing the items counted so far unless override is set.
func threadStart(lf *ListFormat, depth, override int) int {
	counts := lf.ThreadItemCounts
	if len(counts) > depth+1 {
		counts = counts[:depth+1]
	}
	for len(counts) <= depth {
		counts = append(counts, 0)
	}
	if override > 0 {
		counts[depth] = override - 1
	}
	lf.ThreadItemCounts = counts
	return counts[depth] + 1
}

func handleTable(parent *html.Node, t *model.Table, ctx *Context) {
	if len(t.Cells) == 0 {
		return
	}
	table := dom.NewElement("table")
	parent.AppendChild(table)
	ctx.apply(&t.Format, format.CategoryTable, table)

	if hasLength(t.Widths) {
		colgroup := dom.NewElement("colgroup")
		table.AppendChild(colgroup)
		for _, w := range t.Widths {
			col := dom.NewElement("col")
			if w > 0 {
				dom.SetStyle(col, "width", pixels(w))
			}
			colgroup.AppendChild(col)
		}
	}

	tbody := dom.NewElement("tbody")
	table.AppendChild(tbody)
	for r, row := range t.Cells {
		tr := dom.NewElement("tr")
		tbody.AppendChild(tr)
		if r < len(t.Heights) && t.Heights[r] > 0 {
			dom.SetStyle(tr, "height", pixels(t.Heights[r]))
		}
		for c, cell := range row {
			if cell == nil || cell.SpanLeft || cell.SpanAbove {
				continue
			}
			tag := "td"
			if cell.IsHeader {
				tag = "th"
			}
			td := dom.NewElement(tag)
			tr.AppendChild(td)
			if n := colSpan(row, c); n > 1 {
				dom.SetAttr(td, "colspan", strconv.Itoa(n))
			}
			if n := rowSpan(t.Cells, r, c); n > 1 {
				dom.SetAttr(td, "rowspan", strconv.Itoa(n))
			}
			ctx.apply(&cell.Format, format.CategoryTableCell, td)
			ctx.Handlers.BlockGroupChildren(td, cell, ctx)
		}
	}
}

func colSpan(row []*model.TableCell, c int) int {
	n := 1
	for c+n < len(row) && row[c+n] != nil && row[c+n].SpanLeft {
		n++
	}
	return n
}

func rowSpan(cells [][]*model.TableCell, r, c int) int {
	n := 1
	for r+n < len(cells) && c < len(cells[r+n]) && cells[r+n][c] != nil && cells[r+n][c].SpanAbove {
		n++
	}
	return n
}

func hasLength(values []float64) bool {
	for _, v := range values {
		if v > 0 {
			return true
		}
	}
	return false
}

func pixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
