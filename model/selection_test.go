package model_test

import (
	"testing"

	. "github.com/shodgson/contentmodel-go/model"
	"github.com/shodgson/contentmodel-go/test/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visit struct {
	path     []BlockGroup
	table    *TableSelectionContext
	block    Block
	segments []Segment
}

func collect(doc *Document, opts *IterateOptions) []visit {
	var visits []visit
	IterateSelections([]BlockGroup{doc}, func(path []BlockGroup, table *TableSelectionContext, block Block, segments []Segment) bool {
		visits = append(visits, visit{path, table, block, segments})
		return false
	}, opts)
	return visits
}

func TestIterateParagraphs(t *testing.T) {
	a := builder.Text("a", builder.Sel)
	m := builder.Marker()
	p1 := builder.P(a, builder.Text("b"))
	p2 := builder.P(builder.Text("c"), m)
	doc := builder.Doc(p1, builder.P("d"), p2)

	visits := collect(doc, nil)

	require.Len(t, visits, 2)
	assert.Equal(t, visit{[]BlockGroup{doc}, nil, p1, []Segment{a}}, visits[0])
	assert.Equal(t, visit{[]BlockGroup{doc}, nil, p2, []Segment{m}}, visits[1])
}

func TestIterateStops(t *testing.T) {
	doc := builder.Doc(builder.P(builder.Text("a", builder.Sel)), builder.P(builder.Text("b", builder.Sel)))
	count := 0

	stopped := IterateSelections([]BlockGroup{doc}, func([]BlockGroup, *TableSelectionContext, Block, []Segment) bool {
		count++
		return true
	}, nil)

	assert.True(t, stopped)
	assert.Equal(t, 1, count)
}

func TestIterateNestedGroups(t *testing.T) {
	a := builder.Text("a", builder.Sel)
	p := builder.Implicit(a)
	item := builder.Li(builder.Ul, p)
	quote := builder.Quote(item)
	doc := builder.Doc(quote)

	visits := collect(doc, nil)

	require.Len(t, visits, 1)
	assert.Equal(t, []BlockGroup{item, quote, doc}, visits[0].path)
	assert.Same(t, p, visits[0].block)
}

func TestIterateListFormatHolder(t *testing.T) {
	a := builder.Text("a", builder.Sel)
	item := builder.Li(builder.Ol, builder.Implicit(a))
	partial := builder.Li(builder.Ol, builder.Implicit(builder.Text("b", builder.Sel), builder.Text("c")))
	doc := builder.Doc(item, partial)

	visits := collect(doc, &IterateOptions{IncludeListFormatHolder: true})

	require.Len(t, visits, 3)
	assert.Nil(t, visits[0].block)
	assert.Nil(t, visits[0].table)
	assert.Equal(t, []Segment{item.FormatHolder}, visits[0].segments)
	assert.Equal(t, []Segment{a}, visits[1].segments)
	assert.NotNil(t, visits[2].block)

	assert.Len(t, collect(doc, nil), 2)
}

func TestIterateTableCells(t *testing.T) {
	inner := builder.P("x")
	selected := builder.Cell(builder.Sel, inner)
	y := builder.Text("y", builder.Sel)
	other := builder.Cell(builder.P(y))
	table := builder.Table(builder.Row(selected, other))
	doc := builder.Doc(table)

	visits := collect(doc, nil)

	require.Len(t, visits, 2)
	assert.Nil(t, visits[0].block)
	assert.Equal(t, []BlockGroup{selected, doc}, visits[0].path)
	assert.Equal(t, &TableSelectionContext{Table: table, RowIndex: 0, ColIndex: 0}, visits[0].table)
	assert.Equal(t, []Segment{y}, visits[1].segments)
	assert.Equal(t, 1, visits[1].table.ColIndex)

	visits = collect(doc, &IterateOptions{ContentUnderSelectedTableCell: true})
	require.Len(t, visits, 3)
	assert.Same(t, inner, visits[1].block)
	assert.Equal(t, inner.Segments, visits[1].segments)
}

func TestIterateWholeTable(t *testing.T) {
	table := builder.Table(builder.Row(builder.Cell(builder.Sel), builder.Cell(builder.Sel)))
	assert.True(t, IsWholeTableSelected(table))

	visits := collect(builder.Doc(table), nil)
	require.Len(t, visits, 2)
	assert.True(t, visits[0].table.IsWholeTableSelected)

	assert.False(t, IsWholeTableSelected(builder.Table(builder.Row(builder.Cell(builder.Sel), builder.Cell()))))
	assert.False(t, IsWholeTableSelected(builder.Table()))
}

func TestIterateGeneralBlock(t *testing.T) {
	inner := builder.P("x")
	general := NewGeneralBlock(nil, Format{})
	general.Blocks = []Block{inner}
	general.IsSelected = true
	doc := builder.Doc(general)

	visits := collect(doc, nil)
	require.Len(t, visits, 1)
	assert.Same(t, general, visits[0].block)

	visits = collect(doc, &IterateOptions{ContentUnderSelectedGeneral: true})
	require.Len(t, visits, 2)
	assert.Equal(t, []BlockGroup{general, doc}, visits[1].path)
}

func TestIterateGeneralSegment(t *testing.T) {
	x := builder.Text("x", builder.Sel)
	general := NewGeneralSegment(nil, Format{})
	general.Blocks = []Block{builder.Implicit(x)}
	doc := builder.Doc(builder.P(general))

	visits := collect(doc, nil)

	require.Len(t, visits, 1)
	assert.Equal(t, []Segment{x}, visits[0].segments)
	assert.Equal(t, []BlockGroup{general, doc}, visits[0].path)
}

func TestIterateDividerAndEntity(t *testing.T) {
	hr := builder.Hr(builder.Sel)
	e := builder.Entity("1", "x", builder.Sel)
	doc := builder.Doc(hr, builder.Hr(), e)

	visits := collect(doc, nil)

	require.Len(t, visits, 2)
	assert.Same(t, hr, visits[0].block)
	assert.Same(t, e, visits[1].block)
}

func TestHasSelection(t *testing.T) {
	assert.False(t, HasSelection(builder.Doc(builder.P("a"))))
	assert.True(t, HasSelection(builder.Doc(builder.P(builder.Marker()))))
}

func TestGetSelectedSegments(t *testing.T) {
	a := builder.Text("a", builder.Sel)
	b := builder.Text("b")
	item := builder.Li(builder.Ol, builder.Implicit(a))
	cellText := builder.Text("c")
	doc := builder.Doc(item, builder.Table(builder.Row(builder.Cell(builder.Sel, builder.P(cellText)))), builder.P(b))

	assert.Equal(t, []Segment{a, cellText}, GetSelectedSegments(doc, false))
	assert.Equal(t, []Segment{item.FormatHolder, a, cellText}, GetSelectedSegments(doc, true))
}

func TestGetSelectedParagraphs(t *testing.T) {
	p1 := builder.P(builder.Text("a", builder.Sel))
	p2 := builder.Implicit(builder.Text("b", builder.Sel))
	item := builder.Li(builder.Ul, p2)
	doc := builder.Doc(p1, builder.P("c"), item)

	paragraphs := GetSelectedParagraphs(doc)

	require.Len(t, paragraphs, 2)
	assert.Same(t, p1, paragraphs[0].Paragraph)
	assert.Equal(t, []BlockGroup{doc}, paragraphs[0].Path)
	assert.Same(t, p2, paragraphs[1].Paragraph)
	assert.Same(t, item, ClosestListItem(paragraphs[1].Path))
	assert.Nil(t, ClosestListItem(paragraphs[0].Path))
}

func TestClosestListItemStopsAtCell(t *testing.T) {
	item := builder.Li(builder.Ol)
	cell := builder.Cell()

	assert.Nil(t, ClosestListItem([]BlockGroup{cell, item}))
	assert.Same(t, item, ClosestListItem([]BlockGroup{builder.Quote(), item, cell}))
}

func TestClearSelection(t *testing.T) {
	a := builder.Text("a", builder.Sel)
	cell := builder.Cell(builder.Sel, builder.P(builder.Br(builder.Sel)))
	table := builder.Table(builder.Row(cell))
	hr := builder.Hr(builder.Sel)
	doc := builder.Doc(builder.P(a, builder.Marker()), table, builder.Quote(builder.P(builder.Img("x", builder.Sel))), hr)

	ClearSelection(doc)

	assert.False(t, HasSelection(doc))
	assert.Equal(t, []Segment{a}, doc.Blocks[0].(*Paragraph).Segments)
	assert.False(t, a.IsSelected)
	assert.False(t, cell.IsSelected)
	assert.False(t, hr.IsSelected)
}
