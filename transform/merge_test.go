package transform

import (
	"strings"
	"testing"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSingleParagraph(t *testing.T) {
	a, b, x := text("a"), text("b"), text("x")
	m := marker()
	para := p(a, m, b)
	target := doc(para)

	point := MergeModel(target, doc(implicit(x)), nil, nil)

	require.NotNil(t, point)
	assert.Same(t, para, point.Paragraph)
	assert.Equal(t, segments(a, x, m, b), para.Segments)
}

func TestMergeParagraphs(t *testing.T) {
	a, b, x, y := text("a"), text("b"), text("x"), text("y")
	m := marker()
	para := p(a, m, b)
	target := doc(para)

	point := MergeModel(target, doc(p(x), p(y, model.Format{TextAlign: "right"})), nil, nil)

	require.Len(t, target.Blocks, 2)
	assert.Equal(t, segments(a, x), para.Segments)
	last := target.Blocks[1].(*model.Paragraph)
	assert.Same(t, last, point.Paragraph)
	assert.Equal(t, segments(y, m, b), last.Segments)
	assert.Equal(t, "right", last.Format.TextAlign)
}

func TestMergeBlock(t *testing.T) {
	a, b := text("a"), text("b")
	m := marker()
	para := p(a, m, b)
	divider := hr()
	target := doc(para)

	point := MergeModel(target, doc(divider), nil, nil)

	require.Len(t, target.Blocks, 3)
	assert.Same(t, para, target.Blocks[0])
	assert.Same(t, divider, target.Blocks[1])
	assert.Same(t, point.Paragraph, target.Blocks[2])
	assert.Equal(t, segments(a), para.Segments)
	assert.Equal(t, segments(m, b), point.Paragraph.Segments)
}

func TestMergeReplacesSelection(t *testing.T) {
	para := p(text("a"), text("old", sel))
	target := doc(para)

	point := MergeModel(target, doc(implicit(text("new"))), nil, nil)

	require.NotNil(t, point)
	assert.Equal(t, segments(text("a"), text("new"), point.Marker), para.Segments)
}

func TestMergeFormat(t *testing.T) {
	x := text("x", model.Format{Italic: true})
	target := doc(p(marker(size("10px"))))

	MergeModel(target, doc(implicit(x)), nil, &MergeOptions{MergeFormat: true})

	assert.Equal(t, model.Format{FontSize: "10px", Italic: true}, x.Format)
}

func TestMergeFormatKeepsInsertPointStyles(t *testing.T) {
	x := text("x")
	target := doc(p(marker(model.Format{Italic: true})))

	MergeModel(target, doc(implicit(x)), nil, &MergeOptions{MergeFormat: true})

	assert.Equal(t, model.Format{Italic: true}, x.Format)
}

func TestMergeRecordsEntities(t *testing.T) {
	inline := entity("e1", "mention")
	block := entity("e2", "card")
	fc := &FormatContext{}

	MergeModel(doc(p(marker())), doc(implicit(inline), block), fc, nil)

	assert.Equal(t, []*model.Entity{inline, block}, fc.NewEntities)
}

func TestMergeWithoutSelection(t *testing.T) {
	assert.Nil(t, MergeModel(doc(p(text("a"))), doc(p(text("b"))), nil, nil))
}

func TestInsertInlineEntity(t *testing.T) {
	a := text("a")
	m := marker()
	para := p(a, m)
	fc := &FormatContext{}

	e := InsertEntity(doc(para), fc, dom.NewElement("span"), "mention", false, true)

	assert.Equal(t, segments(a, e, m), para.Segments)
	assert.True(t, strings.HasPrefix(e.ID, "mention_"))
	assert.Equal(t, "mention", e.Type)
	assert.True(t, e.IsReadonly)
	info, ok := dom.ParseEntity(e.Wrapper)
	require.True(t, ok)
	assert.Equal(t, dom.EntityInfo{ID: e.ID, Type: "mention", IsReadonly: true}, info)
	assert.Equal(t, []*model.Entity{e}, fc.NewEntities)
}

func TestInsertBlockEntity(t *testing.T) {
	a := text("a")
	m := marker()
	para := p(a, m)
	d := doc(para)

	e := InsertEntity(d, nil, dom.NewElement("div"), "card", true, false)

	require.Len(t, d.Blocks, 3)
	assert.Same(t, para, d.Blocks[0])
	assert.Same(t, e, d.Blocks[1])
	assert.Equal(t, segments(m), d.Blocks[2].(*model.Paragraph).Segments)
}

func TestInsertEntityWithoutSelection(t *testing.T) {
	d := doc(p(text("a")))

	e := InsertEntity(d, nil, dom.NewElement("div"), "card", true, false)

	require.Len(t, d.Blocks, 2)
	assert.Same(t, e, d.Blocks[1])
}
