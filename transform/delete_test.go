package transform

import (
	"testing"

	"github.com/shodgson/contentmodel-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	forward  = &DeleteOptions{Direction: DirectionForward}
	backward = &DeleteOptions{Direction: DirectionBackward}
)

func TestDeleteWithoutSelection(t *testing.T) {
	d := doc(p(text("test")))

	result := DeleteSelection(d, nil)

	assert.False(t, result.IsChanged)
	assert.Nil(t, result.InsertPoint)
}

func TestDeleteCollapsedWithoutDirection(t *testing.T) {
	m := marker(size("10px"))
	para := p(m)
	d := doc(para)

	result := DeleteSelection(d, nil)

	assert.False(t, result.IsChanged)
	assert.Equal(t, &InsertPoint{Marker: m, Paragraph: para, Path: path(d)}, result.InsertPoint)
	assert.Equal(t, segments(m), para.Segments)
}

func TestDeleteSelectedText(t *testing.T) {
	para := p(text("test1", size("10px"), sel))
	d := doc(para)

	result := DeleteSelection(d, nil)

	assert.True(t, result.IsChanged)
	require.NotNil(t, result.InsertPoint)
	assert.Same(t, para, result.InsertPoint.Paragraph)
	assert.Equal(t, path(d), result.InsertPoint.Path)
	assert.Nil(t, result.InsertPoint.TableContext)
	assert.Equal(t, size("10px"), result.InsertPoint.Marker.Format)
	assert.Equal(t, segments(result.InsertPoint.Marker), para.Segments)
}

func TestDeleteTextAcrossParagraphs(t *testing.T) {
	test0 := text("test0", size("10px"))
	para1 := p(test0, text("test1", size("11px"), sel))
	para2 := p(text("test2", size("12px"), sel))
	d := doc(para1, para2)

	result := DeleteSelection(d, nil)

	assert.True(t, result.IsChanged)
	assert.Same(t, para1, result.InsertPoint.Paragraph)
	assert.Equal(t, size("11px"), result.InsertPoint.Marker.Format)
	assert.Equal(t, segments(test0, result.InsertPoint.Marker), para1.Segments)
	assert.Empty(t, para2.Segments)
}

func TestDeleteMovesRestOfLastParagraph(t *testing.T) {
	tail := text("tail")
	para1 := p(text("head"), text("x", sel))
	para2 := p(text("y", sel), tail)
	d := doc(para1, para2)

	result := DeleteSelection(d, nil)

	assert.True(t, result.IsChanged)
	assert.Len(t, para1.Segments, 3)
	assert.Same(t, result.InsertPoint.Marker, para1.Segments[1])
	assert.Same(t, tail, para1.Segments[2])
	assert.Empty(t, para2.Segments)
}

func TestDeleteSelectedDivider(t *testing.T) {
	d := doc(hr("div", sel))

	result := DeleteSelection(d, nil)

	assert.True(t, result.IsChanged)
	require.Len(t, d.Blocks, 1)
	para, ok := d.Blocks[0].(*model.Paragraph)
	require.True(t, ok)
	assert.False(t, para.IsImplicit)
	assert.Equal(t, segments(result.InsertPoint.Marker), para.Segments)
	assert.Equal(t, &InsertPoint{Marker: result.InsertPoint.Marker, Paragraph: para, Path: path(d)}, result.InsertPoint)
}

func TestDeleteTwoDividers(t *testing.T) {
	para1, para2 := p(), p()
	d := doc(para1, hr("div", sel), hr(sel), para2)

	result := DeleteSelection(d, nil)

	assert.True(t, result.IsChanged)
	require.Len(t, d.Blocks, 3)
	assert.Same(t, para1, d.Blocks[0])
	assert.Same(t, result.InsertPoint.Paragraph, d.Blocks[1])
	assert.Same(t, para2, d.Blocks[2])
}

func TestDeleteSomeTableCells(t *testing.T) {
	cell1 := cell()
	cell2 := cell(sel, p(text("content")))
	tbl := table(row(cell1, cell2))
	d := doc(tbl)

	result := DeleteSelection(d, nil)

	assert.True(t, result.IsChanged)
	point := result.InsertPoint
	require.NotNil(t, point)
	assert.Equal(t, path(cell2, d), point.Path)
	assert.Equal(t, &model.TableSelectionContext{Table: tbl, RowIndex: 0, ColIndex: 1}, point.TableContext)
	assert.Empty(t, cell1.Blocks)
	require.Len(t, cell2.Blocks, 1)
	assert.Same(t, point.Paragraph, cell2.Blocks[0])
	require.Len(t, point.Paragraph.Segments, 2)
	assert.Same(t, point.Marker, point.Paragraph.Segments[0])
	assert.IsType(t, &model.Br{}, point.Paragraph.Segments[1])
	assert.True(t, cell2.IsSelected)
}

func TestDeleteOtherSelectedCellsGetEmptyLine(t *testing.T) {
	cell1 := cell(sel, p(text("a")))
	cell2 := cell(sel, p(text("b")))
	d := doc(table(row(cell1, cell2), row(cell(), cell())))

	result := DeleteSelection(d, nil)

	require.NotNil(t, result.InsertPoint)
	assert.Same(t, result.InsertPoint.Paragraph, cell1.Blocks[0])
	require.Len(t, cell2.Blocks, 1)
	other := cell2.Blocks[0].(*model.Paragraph)
	require.Len(t, other.Segments, 1)
	assert.IsType(t, &model.Br{}, other.Segments[0])
}

func TestDeleteWholeTable(t *testing.T) {
	d := doc(table(row(cell(sel, p(text("a"))))))

	result := DeleteSelection(d, nil)

	assert.True(t, result.IsChanged)
	require.Len(t, d.Blocks, 1)
	assert.Same(t, result.InsertPoint.Paragraph, d.Blocks[0])
	assert.Equal(t, path(d), result.InsertPoint.Path)
	assert.Nil(t, result.InsertPoint.TableContext)
	assert.Equal(t, segments(result.InsertPoint.Marker), result.InsertPoint.Paragraph.Segments)
}

func TestDeleteSelectedEntity(t *testing.T) {
	e := entity("e1", "mention", sel)
	d := doc(e)
	fc := &FormatContext{}

	result := DeleteSelection(d, &DeleteOptions{FormatContext: fc})

	assert.True(t, result.IsChanged)
	require.Len(t, d.Blocks, 1)
	assert.Same(t, result.InsertPoint.Paragraph, d.Blocks[0])
	assert.Equal(t, []DeletedEntity{{Entity: e, Operation: Overwrite}}, fc.DeletedEntities)
}

func TestDeleteEntityKeptByCallback(t *testing.T) {
	e := entity("e1", "mention", sel)
	d := doc(e)
	fc := &FormatContext{}
	var ops []EntityOperation

	result := DeleteSelection(d, &DeleteOptions{
		FormatContext: fc,
		OnDeleteEntity: func(entity *model.Entity, op EntityOperation) bool {
			assert.Same(t, e, entity)
			ops = append(ops, op)
			return false
		},
	})

	assert.True(t, result.IsChanged)
	assert.Equal(t, []EntityOperation{Overwrite}, ops)
	require.Len(t, d.Blocks, 2)
	assert.Same(t, e, d.Blocks[0])
	assert.Same(t, result.InsertPoint.Paragraph, d.Blocks[1])
	assert.Empty(t, fc.DeletedEntities)
}

func TestDeleteEntityAllowedByCallback(t *testing.T) {
	e := entity("e1", "mention", sel)
	d := doc(e)

	result := DeleteSelection(d, &DeleteOptions{
		OnDeleteEntity: func(*model.Entity, EntityOperation) bool { return true },
	})

	assert.True(t, result.IsChanged)
	require.Len(t, d.Blocks, 1)
	assert.IsType(t, &model.Paragraph{}, d.Blocks[0])
}

func TestDeleteUsesDefaultFormat(t *testing.T) {
	d := doc(hr("div", sel))
	d.Format = size("10pt")

	result := DeleteSelection(d, nil)

	assert.Equal(t, size("10pt"), result.InsertPoint.Marker.Format)
}

func TestDeleteDoubleMarkers(t *testing.T) {
	for _, opts := range []*DeleteOptions{nil, forward, backward} {
		test1, test2 := text("test1"), text("test2")
		para1 := p(test1, marker(size("10px")))
		para2 := p(marker(size("20px")), test2)
		d := doc(para1, para2)

		result := DeleteSelection(d, opts)

		assert.True(t, result.IsChanged)
		assert.Same(t, para1, result.InsertPoint.Paragraph)
		assert.Equal(t, size("10px"), result.InsertPoint.Marker.Format)
		assert.Equal(t, segments(test1, result.InsertPoint.Marker, test2), para1.Segments)
		assert.Empty(t, para2.Segments)
	}
}

func TestDeleteForwardText(t *testing.T) {
	m := marker(size("10px"))
	para := p(m, text("test"))
	d := doc(para)

	result := DeleteSelection(d, forward)

	assert.True(t, result.IsChanged)
	assert.Equal(t, &InsertPoint{Marker: m, Paragraph: para, Path: path(d)}, result.InsertPoint)
	assert.Equal(t, segments(m, text("est")), para.Segments)
}

func TestDeleteGraphemeClusters(t *testing.T) {
	para := p(marker(), text("éx"))
	DeleteSelection(doc(para), forward)
	assert.Equal(t, "x", para.Segments[1].(*model.Text).Text)

	para = p(text("x\U0001F44D\U0001F3FD"), marker())
	DeleteSelection(doc(para), backward)
	assert.Equal(t, "x", para.Segments[0].(*model.Text).Text)
}

func TestDeleteForwardRemovesEmptiedText(t *testing.T) {
	m := marker()
	para := p(m, text("a"), text("b"))
	DeleteSelection(doc(para), forward)
	assert.Equal(t, segments(m, text("b")), para.Segments)
}

func TestDeleteForwardAtEndOfParagraph(t *testing.T) {
	m := marker(size("10px"))
	test1, test2 := text("test1"), text("test2")
	para1 := p(test1, m)
	para2 := p(test2)
	d := doc(para1, para2)

	result := DeleteSelection(d, forward)

	assert.True(t, result.IsChanged)
	assert.Same(t, para1, result.InsertPoint.Paragraph)
	assert.Equal(t, segments(test1, m, test2), para1.Segments)
	assert.Empty(t, para2.Segments)
}

func TestDeleteForwardFromEmptyLine(t *testing.T) {
	m := marker()
	test := text("test")
	para1 := p(m, br())
	para2 := p(test)

	result := DeleteSelection(doc(para1, para2), forward)

	assert.True(t, result.IsChanged)
	assert.Equal(t, segments(m, test), para1.Segments)
	assert.Empty(t, para2.Segments)
}

func TestDeleteForwardStopsAtDoubleBr(t *testing.T) {
	m := marker()
	br2 := br()
	para1 := p(m, br(), br2)
	para2 := p(text("test"))

	result := DeleteSelection(doc(para1, para2), forward)

	assert.True(t, result.IsChanged)
	assert.Equal(t, segments(m, br2), para1.Segments)
	assert.Equal(t, segments(text("test")), para2.Segments)
}

func TestDeleteForwardImage(t *testing.T) {
	m := marker()
	para := p(m, img(""))

	result := DeleteSelection(doc(para), forward)

	assert.True(t, result.IsChanged)
	assert.Equal(t, segments(m), para.Segments)
}

func TestDeleteForwardRemovesNextBlock(t *testing.T) {
	for name, next := range map[string]model.Block{
		"table":   table(row(cell())),
		"divider": hr(),
	} {
		m := marker()
		para := p(m, br())
		d := doc(para, next)

		result := DeleteSelection(d, forward)

		assert.True(t, result.IsChanged, name)
		assert.Equal(t, []model.Block{para}, d.Blocks, name)
		assert.Equal(t, segments(m), para.Segments, name)
	}
}

func TestDeleteForwardEntity(t *testing.T) {
	e := entity("e1", "mention")
	m := marker()
	para := p(m, br())
	d := doc(para, e)
	fc := &FormatContext{}

	result := DeleteSelection(d, &DeleteOptions{Direction: DirectionForward, FormatContext: fc})

	assert.True(t, result.IsChanged)
	assert.Equal(t, []model.Block{para}, d.Blocks)
	assert.Equal(t, []DeletedEntity{{Entity: e, Operation: RemoveFromStart}}, fc.DeletedEntities)
}

func TestDeleteForwardEntityKept(t *testing.T) {
	e := entity("e1", "mention")
	m := marker()
	para := p(m, br())
	d := doc(para, e)
	var ops []EntityOperation

	result := DeleteSelection(d, &DeleteOptions{
		Direction: DirectionForward,
		OnDeleteEntity: func(_ *model.Entity, op EntityOperation) bool {
			ops = append(ops, op)
			return false
		},
	})

	assert.True(t, result.IsChanged)
	assert.Equal(t, []EntityOperation{RemoveFromStart}, ops)
	assert.Equal(t, []model.Block{para, e}, d.Blocks)
	assert.Equal(t, segments(m), para.Segments)
}

func TestDeleteForwardInlineEntity(t *testing.T) {
	e := entity("e1", "mention")
	m := marker()
	para := p(m, e, text("a"))
	fc := &FormatContext{}

	DeleteSelection(doc(para), &DeleteOptions{Direction: DirectionForward, FormatContext: fc})

	assert.Equal(t, segments(m, text("a")), para.Segments)
	assert.Equal(t, []DeletedEntity{{Entity: e, Operation: RemoveFromStart}}, fc.DeletedEntities)
}

func TestDeleteForwardIntoListItem(t *testing.T) {
	m := marker()
	test := text("test")
	para1 := p(m, br())
	para2 := p(test)
	item := li(nil, para2)
	d := doc(para1, item)

	result := DeleteSelection(d, forward)

	assert.True(t, result.IsChanged)
	assert.Equal(t, path(d), result.InsertPoint.Path)
	assert.Equal(t, segments(m, test), para1.Segments)
	assert.Equal(t, []model.Block{para1, item}, d.Blocks)
	assert.Empty(t, para2.Segments)
}

func TestDeleteForwardOutOfQuote(t *testing.T) {
	m := marker()
	test := text("test")
	para1 := p(m, br())
	para2 := p(test)
	q := quote(para1)
	d := doc(q, li(ol, para2))

	result := DeleteSelection(d, forward)

	assert.True(t, result.IsChanged)
	assert.Equal(t, path(q, d), result.InsertPoint.Path)
	assert.Equal(t, segments(m, test), para1.Segments)
	assert.Empty(t, para2.Segments)
}

func TestDeleteForwardAtEndOfDocument(t *testing.T) {
	m := marker()
	para := p(text("a"), m, br())

	result := DeleteSelection(doc(para), forward)

	assert.False(t, result.IsChanged)
	assert.Len(t, para.Segments, 3)
}

func TestDeleteForwardDoesNotLeaveTableCell(t *testing.T) {
	para := p(marker())
	other := p(text("b"))
	d := doc(table(row(cell(para), cell(other))))

	result := DeleteSelection(d, forward)

	assert.False(t, result.IsChanged)
	require.NotNil(t, result.InsertPoint.TableContext)
	assert.Equal(t, 0, result.InsertPoint.TableContext.ColIndex)
	assert.Len(t, other.Segments, 1)
}

func TestDeleteBackwardText(t *testing.T) {
	m := marker()
	para := p(text("test"), m)

	result := DeleteSelection(doc(para), backward)

	assert.True(t, result.IsChanged)
	assert.Equal(t, segments(text("tes"), m), para.Segments)
}

func TestDeleteBackwardBr(t *testing.T) {
	m := marker()
	para := p(text("a"), br(), m)

	DeleteSelection(doc(para), backward)

	assert.Equal(t, segments(text("a"), m), para.Segments)
}

func TestDeleteBackwardAtStartOfParagraph(t *testing.T) {
	m := marker(size("10px"))
	test1, test2 := text("test1"), text("test2")
	para1 := p(test1)
	para2 := p(m, test2)
	d := doc(para1, para2)

	result := DeleteSelection(d, backward)

	assert.True(t, result.IsChanged)
	assert.Equal(t, &InsertPoint{Marker: m, Paragraph: para1, Path: path(d)}, result.InsertPoint)
	assert.Equal(t, segments(test1, m, test2), para1.Segments)
	assert.Empty(t, para2.Segments)
}

func TestDeleteBackwardAfterEmptyLine(t *testing.T) {
	m := marker()
	test := text("test")
	para1 := p(br(), model.Format{LineHeight: "10"})
	para2 := p(m, test, model.Format{LineHeight: "12"})

	result := DeleteSelection(doc(para1, para2), backward)

	assert.True(t, result.IsChanged)
	assert.Same(t, para1, result.InsertPoint.Paragraph)
	assert.Equal(t, segments(m, test), para1.Segments)
	assert.Equal(t, "10", para1.Format.LineHeight)
	assert.Empty(t, para2.Segments)
}

func TestDeleteBackwardAfterDoubleBr(t *testing.T) {
	m := marker()
	test := text("test")
	br1 := br()
	para1 := p(br1, br())
	para2 := p(m, test)

	DeleteSelection(doc(para1, para2), backward)

	assert.Equal(t, segments(br1, m, test), para1.Segments)
	assert.Empty(t, para2.Segments)
}

func TestDeleteBackwardIntoListItem(t *testing.T) {
	m := marker()
	test := text("test")
	para1 := p(m, br())
	para2 := p(test)
	item := li(nil, para2)
	d := doc(item, para1)

	result := DeleteSelection(d, backward)

	assert.True(t, result.IsChanged)
	assert.Equal(t, &InsertPoint{Marker: m, Paragraph: para2, Path: path(item, d)}, result.InsertPoint)
	assert.Equal(t, segments(test, m), para2.Segments)
	assert.Empty(t, para1.Segments)
}

func TestDeleteBackwardRemovesPreviousBlock(t *testing.T) {
	for name, prev := range map[string]model.Block{
		"table":   table(row(cell())),
		"divider": hr(),
	} {
		m := marker()
		para := p(m, br())
		d := doc(prev, para)

		result := DeleteSelection(d, backward)

		assert.True(t, result.IsChanged, name)
		assert.Same(t, para, result.InsertPoint.Paragraph, name)
		assert.Equal(t, []model.Block{para}, d.Blocks, name)
		assert.Equal(t, segments(m), para.Segments, name)
	}
}

func TestDeleteBackwardEntity(t *testing.T) {
	e := entity("e1", "mention")
	para := p(marker(), br())
	d := doc(e, para)
	fc := &FormatContext{}

	DeleteSelection(d, &DeleteOptions{Direction: DirectionBackward, FormatContext: fc})

	assert.Equal(t, []model.Block{para}, d.Blocks)
	assert.Equal(t, []DeletedEntity{{Entity: e, Operation: RemoveFromEnd}}, fc.DeletedEntities)
}

func TestDeleteBackwardAtStartOfDocument(t *testing.T) {
	para := p(marker(), br())

	result := DeleteSelection(doc(para), backward)

	assert.False(t, result.IsChanged)
	assert.Len(t, para.Segments, 2)
}

func TestEntityOperationString(t *testing.T) {
	assert.Equal(t, "Overwrite", Overwrite.String())
	assert.Equal(t, "RemoveFromStart", RemoveFromStart.String())
	assert.Equal(t, "RemoveFromEnd", RemoveFromEnd.String())
}
