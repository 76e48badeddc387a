package domtomodel

import (
	"strconv"
	"strings"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/format"
	"github.com/shodgson/contentmodel-go/model"
	"golang.org/x/net/html"
)

// Span limits, as applied by browsers.
const (
	maxColSpan = 1000
	maxRowSpan = 65534
)

// tableProcessor builds a table. Cells spanning several columns or rows
// are followed by placeholder cells flagged SpanLeft or SpanAbove.
func tableProcessor(group model.BlockGroup, el *html.Node, ctx *Context) {
	table := model.NewTable(0, model.Format{})
	ctx.parse(&table.Format, format.CategoryTable, ctx.source(el))
	addBlock(group, table)

	rows := tableRows(el)
	grid := make([][]*model.TableCell, len(rows))
	for r, tr := range rows {
		col := 0
		for _, td := range dom.Children(tr) {
			tag := dom.Tag(td)
			if tag != "td" && tag != "th" {
				continue
			}
			for col < len(grid[r]) && grid[r][col] != nil {
				col++
			}
			colSpan := spanValue(td, "colspan", maxColSpan)
			rowSpan := spanValue(td, "rowspan", maxRowSpan)
			if r+rowSpan > len(rows) {
				rowSpan = len(rows) - r
			}
			// Spans stop growing the table past maxColSpan columns.
			if col+colSpan > maxColSpan {
				colSpan = max(1, maxColSpan-col)
			}

			cell := model.NewTableCell(1, 1, tag == "th", model.Format{})
			src := ctx.source(td)
			ctx.parse(&cell.Format, format.CategoryTableCell, src)
			ctx.stackFormat(func() {
				ctx.BlockFormat = model.Format{}
				ctx.parse(&ctx.SegmentFormat, format.CategorySegment, src)
				ProcessChildren(cell, td, ctx)
			})

			for dr := 0; dr < rowSpan; dr++ {
				for dc := 0; dc < colSpan; dc++ {
					target := cell
					if dr > 0 || dc > 0 {
						target = model.NewTableCell(spanFlag(dc), spanFlag(dr), cell.IsHeader, cell.Format)
					}
					setCell(grid, r+dr, col+dc, target)
				}
			}
			col += colSpan
		}
	}

	width := 0
	for _, row := range grid {
		width = max(width, len(row))
	}
	for r := range grid {
		for c := 0; c < width; c++ {
			if c >= len(grid[r]) || grid[r][c] == nil {
				setCell(grid, r, c, model.NewTableCell(1, 1, false, model.Format{}))
			}
		}
	}
	table.Cells = grid
	table.Widths = columnWidths(el, grid)
	for _, tr := range rows {
		table.Heights = append(table.Heights, lengthValue(format.NewSource(tr, nil).Get("height")))
	}
}

func spanFlag(offset int) int {
	if offset > 0 {
		return 2
	}
	return 1
}

func setCell(grid [][]*model.TableCell, r, c int, cell *model.TableCell) {
	for len(grid[r]) <= c {
		grid[r] = append(grid[r], nil)
	}
	grid[r][c] = cell
}

func spanValue(td *html.Node, attr string, limit int) int {
	v, err := strconv.Atoi(strings.TrimSpace(dom.GetAttr(td, attr)))
	if err != nil || v < 1 {
		return 1
	}
	return min(v, limit)
}

// tableRows collects the TR elements of a table in document order.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for _, child := range dom.Children(table) {
		switch dom.Tag(child) {
		case "tr":
			rows = append(rows, child)
		case "thead", "tbody", "tfoot":
			for _, tr := range dom.Children(child) {
				if dom.Tag(tr) == "tr" {
					rows = append(rows, tr)
				}
			}
		}
	}
	return rows
}

// columnWidths reads widths from COL elements, falling back to the width
// of the first row cells.
func columnWidths(table *html.Node, grid [][]*model.TableCell) []float64 {
	var widths []float64
	for _, child := range dom.Children(table) {
		if dom.Tag(child) != "colgroup" {
			continue
		}
		for _, col := range dom.Children(child) {
			if dom.Tag(col) == "col" {
				w := format.NewSource(col, nil).Get("width")
				if w == "" {
					w = dom.GetAttr(col, "width")
				}
				widths = append(widths, lengthValue(w))
			}
		}
	}
	if len(widths) > 0 || len(grid) == 0 {
		return widths
	}
	for _, cell := range grid[0] {
		widths = append(widths, lengthValue(cell.Format.Width))
	}
	return widths
}

// lengthValue parses a pixel length, returning 0 for other units.
func lengthValue(v string) float64 {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
