package transform

import (
	"testing"

	"github.com/shodgson/contentmodel-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustTrailingSpaceSelection(t *testing.T) {
	word := text("abc  ", size("10px"), sel)
	next := text("d")
	para := p(word, next)

	AdjustTrailingSpaceSelection(word, para)

	require.Len(t, para.Segments, 3)
	assert.Equal(t, "abc", word.Text)
	assert.Equal(t, &model.Text{Text: "  "}, para.Segments[1])
	assert.Same(t, next, para.Segments[2])
}

func TestAdjustTrailingSpaceOnlySpace(t *testing.T) {
	space := text(" ", size("10px"), sel)
	para := p(text("a"), space)

	AdjustTrailingSpaceSelection(space, para)

	assert.Len(t, para.Segments, 2)
	assert.True(t, space.Format.IsEmpty())
	assert.True(t, space.IsSelected)
}

func TestAdjustTrailingSpaceIgnoresOtherSegments(t *testing.T) {
	image := img("x.png", sel)
	para := p(image)

	AdjustTrailingSpaceSelection(image, para)
	AdjustTrailingSpaceSelection(text("a "), nil)

	assert.Equal(t, segments(image), para.Segments)
}

func TestToggleBold(t *testing.T) {
	a := text("a", model.Format{FontWeight: "bold"}, sel)
	b := text("b", sel)
	d := doc(p(a, b))

	assert.True(t, ToggleBold(d, nil))
	assert.Equal(t, "bold", a.Format.FontWeight)
	assert.Equal(t, "bold", b.Format.FontWeight)

	assert.True(t, ToggleBold(d, nil))
	assert.Equal(t, "normal", a.Format.FontWeight)
	assert.Equal(t, "normal", b.Format.FontWeight)
}

func TestToggleWithoutSelection(t *testing.T) {
	assert.False(t, ToggleItalic(doc(p(text("a"))), nil))
}

func TestToggleCollapsedSetsPendingFormat(t *testing.T) {
	m := marker(size("10px"))
	d := doc(p(text("a"), m))
	fc := &FormatContext{}

	assert.True(t, ToggleItalic(d, fc))

	assert.True(t, m.Format.Italic)
	require.NotNil(t, fc.NewPendingFormat)
	assert.Equal(t, model.Format{FontSize: "10px", Italic: true}, *fc.NewPendingFormat)
}

func TestToggleUnderlineSkipsTrailingSpace(t *testing.T) {
	word := text("word ", sel)
	para := p(word)

	assert.True(t, ToggleUnderline(doc(para), nil))

	require.Len(t, para.Segments, 2)
	assert.True(t, word.Format.Underline)
	assert.Equal(t, "word", word.Text)
	space := para.Segments[1].(*model.Text)
	assert.Equal(t, " ", space.Text)
	assert.False(t, space.Format.Underline)
	assert.False(t, space.IsSelected)
}

func TestToggleStrikethroughOff(t *testing.T) {
	a := text("a", model.Format{Strikethrough: true}, sel)

	assert.True(t, ToggleStrikethrough(doc(p(a)), nil))

	assert.False(t, a.Format.Strikethrough)
}

func TestSuperscriptAndSubscriptExclude(t *testing.T) {
	a := text("a", model.Format{Subscript: true}, sel)
	d := doc(p(a))

	ToggleSuperscript(d, nil)
	assert.True(t, a.Format.Superscript)
	assert.False(t, a.Format.Subscript)

	ToggleSubscript(d, nil)
	assert.True(t, a.Format.Subscript)
	assert.False(t, a.Format.Superscript)
}

func TestSetFontSizeReachesListMarker(t *testing.T) {
	a := text("a", sel)
	item := li(ol, implicit(a))

	assert.True(t, SetFontSize(doc(item), nil, "20px"))

	assert.Equal(t, "20px", a.Format.FontSize)
	assert.Equal(t, "20px", item.FormatHolder.Format.FontSize)
}

func TestSetColorsAndFamily(t *testing.T) {
	a := text("a", sel)
	d := doc(p(a))

	SetTextColor(d, nil, "red")
	SetBackgroundColor(d, nil, "yellow")
	SetFontFamily(d, nil, "Arial")

	assert.Equal(t, model.Format{TextColor: "red", BackgroundColor: "yellow", FontFamily: "Arial"}, a.Format)
}

func TestSetAlignment(t *testing.T) {
	para := implicit(text("a", sel))

	assert.True(t, SetAlignment(doc(para), AlignCenter))

	assert.False(t, para.IsImplicit)
	assert.Equal(t, "center", para.Format.TextAlign)
}

func TestSetAlignmentOfListItem(t *testing.T) {
	para := implicit(text("a", sel))
	item := li(ul, para)

	SetAlignment(doc(item), AlignRight)

	assert.Equal(t, "right", item.Format.TextAlign)
	assert.True(t, para.IsImplicit)
	assert.Empty(t, para.Format.TextAlign)
}

func TestSetAlignmentOfWholeTable(t *testing.T) {
	para := implicit(text("x"))
	tbl := table(row(cell(sel, para)))

	assert.True(t, SetAlignment(doc(tbl), AlignCenter))
	assert.Equal(t, "auto", tbl.Format.MarginLeft)
	assert.Equal(t, "auto", tbl.Format.MarginRight)
	assert.Empty(t, para.Format.TextAlign)

	SetAlignment(doc(tbl), AlignLeft)
	assert.Empty(t, tbl.Format.MarginLeft)
	assert.Equal(t, "auto", tbl.Format.MarginRight)
}

func TestSetHeaderLevel(t *testing.T) {
	a := text("a", sel)
	para := implicit(a)
	d := doc(para)

	assert.True(t, SetHeaderLevel(d, 2))
	assert.Equal(t, 2, para.HeaderLevel)
	assert.False(t, para.IsImplicit)
	assert.Equal(t, "bold", a.Format.FontWeight)

	assert.True(t, SetHeaderLevel(d, 0))
	assert.Equal(t, 0, para.HeaderLevel)
	assert.Empty(t, a.Format.FontWeight)

	assert.False(t, SetHeaderLevel(d, 7))
}

func TestToggleNumbering(t *testing.T) {
	para := p(text("a", sel), model.Format{TextAlign: "center"})
	d := doc(para)

	assert.True(t, ToggleNumbering(d))

	require.Len(t, d.Blocks, 1)
	item, ok := d.Blocks[0].(*model.ListItem)
	require.True(t, ok)
	assert.Equal(t, []model.ListLevel{{ListType: model.ListOL}}, item.Levels)
	assert.Equal(t, []model.Block{para}, item.Blocks)
	assert.True(t, para.IsImplicit)
	assert.Equal(t, "center", item.Format.TextAlign)

	assert.True(t, ToggleNumbering(d))

	assert.Equal(t, []model.Block{para}, d.Blocks)
	assert.False(t, para.IsImplicit)
	assert.Equal(t, "center", para.Format.TextAlign)
}

func TestToggleBulletChangesListType(t *testing.T) {
	item := li(ol, implicit(text("a", sel)))
	item.Levels[0].StartNumberOverride = 3
	d := doc(item)

	assert.True(t, ToggleBullet(d))

	assert.Equal(t, []model.Block{item}, d.Blocks)
	assert.Equal(t, model.ListUL, item.Levels[0].ListType)
	assert.Zero(t, item.Levels[0].StartNumberOverride)
}

func TestToggleListWithoutSelection(t *testing.T) {
	assert.False(t, ToggleBullet(doc(p(text("a")))))
}
