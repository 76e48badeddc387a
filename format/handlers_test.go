package format_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shodgson/contentmodel-go/dom"
	. "github.com/shodgson/contentmodel-go/format"
	"github.com/shodgson/contentmodel-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func element(t *testing.T, source string) *html.Node {
	nodes, err := html.ParseFragment(strings.NewReader(source), dom.NewElement("div"))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	return nodes[0]
}

func parseFormat(t *testing.T, key Key, source string, env *Env) model.Format {
	var f model.Format
	Handlers[key].Parse(&f, NewSource(element(t, source), nil), env)
	return f
}

func applyFormat(t *testing.T, key Key, f model.Format, env *Env) string {
	el := dom.NewElement("span")
	el.AppendChild(dom.NewText("x"))
	Handlers[key].Apply(&f, el, env)
	buf := new(bytes.Buffer)
	require.NoError(t, html.Render(buf, el))
	return buf.String()
}

func TestResolve(t *testing.T) {
	custom := &Handler{}
	extra := &Handler{}

	resolved := Resolve(
		map[Key]*Handler{KeyBold: nil, KeyItalic: custom},
		map[Category][]*Handler{CategorySegment: {extra}},
	)

	segment := resolved[CategorySegment]
	assert.Len(t, segment, len(Keys[CategorySegment]))
	assert.NotContains(t, segment, Handlers[KeyBold])
	assert.Contains(t, segment, custom)
	assert.Same(t, extra, segment[len(segment)-1])
	assert.Equal(t, Handlers[KeyBorder], resolved[CategoryTable][0])
}

func TestSourceDefault(t *testing.T) {
	src := NewSource(element(t, `<b style="color: red"></b>`), dom.Style{{Property: "font-weight", Value: "bold"}, {Property: "color", Value: "blue"}})

	assert.Equal(t, "red", src.Get("color"))
	assert.Equal(t, "bold", src.Get("font-weight"))
	assert.Equal(t, "", src.Get("margin"))
}

func TestParseAndApplyRunsAllHandlers(t *testing.T) {
	handlers := Resolve(nil, nil)[CategorySegment]
	src := NewSource(element(t, `<span style="font-size: 10px; font-style: italic; color: red"></span>`), nil)

	var f model.Format
	Parse(&f, handlers, src, nil)
	assert.Equal(t, model.Format{FontSize: "10px", Italic: true, TextColor: "red"}, f)

	el := dom.NewElement("span")
	Apply(&f, handlers, el, nil)
	assert.Equal(t, "font-size: 10px; color: red;", dom.GetAttr(el, "style"))
	require.NotNil(t, el.FirstChild)
	assert.Equal(t, "i", dom.Tag(el.FirstChild))
}

func TestTextAlign(t *testing.T) {
	assert.Equal(t, "start", parseFormat(t, KeyTextAlign, `<div style="text-align: left"></div>`, nil).TextAlign)
	assert.Equal(t, "end", parseFormat(t, KeyTextAlign, `<div style="text-align: right"></div>`, nil).TextAlign)
	assert.Equal(t, "center", parseFormat(t, KeyTextAlign, `<div align="center"></div>`, nil).TextAlign)
	assert.Equal(t, "", parseFormat(t, KeyTextAlign, `<div style="text-align: inherit"></div>`, nil).TextAlign)

	assert.Equal(t, `<span style="text-align: left;">x</span>`, applyFormat(t, KeyTextAlign, model.Format{TextAlign: "start"}, nil))
	assert.Equal(t, `<span style="text-align: right;">x</span>`, applyFormat(t, KeyTextAlign, model.Format{TextAlign: "start", Direction: "rtl"}, nil))
	assert.Equal(t, `<span style="text-align: justify;">x</span>`, applyFormat(t, KeyTextAlign, model.Format{TextAlign: "justify"}, nil))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "rtl", parseFormat(t, KeyDirection, `<div dir="rtl"></div>`, nil).Direction)
	assert.Equal(t, "ltr", parseFormat(t, KeyDirection, `<div dir="rtl" style="direction: ltr"></div>`, nil).Direction)
	assert.Equal(t, "", parseFormat(t, KeyDirection, `<div dir="auto"></div>`, nil).Direction)
}

func TestMargin(t *testing.T) {
	f := parseFormat(t, KeyMargin, `<div style="margin: 1px 2px; margin-left: 5px"></div>`, nil)

	assert.Equal(t, model.Format{MarginTop: "1px", MarginRight: "2px", MarginBottom: "1px", MarginLeft: "5px"}, f)
	assert.Equal(t,
		`<span style="margin-top: 1px; margin-right: 2px; margin-bottom: 1px; margin-left: 5px;">x</span>`,
		applyFormat(t, KeyMargin, f, nil))
}

func TestMarginDefaultStyle(t *testing.T) {
	defaults := dom.Style{{Property: "margin-top", Value: "1em"}, {Property: "margin-bottom", Value: "1em"}}

	var f model.Format
	Handlers[KeyMargin].Parse(&f, NewSource(element(t, `<p style="margin-bottom: 0"></p>`), defaults), nil)

	assert.Equal(t, "1em", f.MarginTop)
	assert.Equal(t, "0", f.MarginBottom)
	assert.Equal(t, "", f.MarginLeft)
}

func TestPadding(t *testing.T) {
	f := parseFormat(t, KeyPadding, `<div style="padding: 1px 2px 3px"></div>`, nil)

	assert.Equal(t, model.Format{PaddingTop: "1px", PaddingRight: "2px", PaddingBottom: "3px", PaddingLeft: "2px"}, f)
}

func TestExpandBox(t *testing.T) {
	assert.Equal(t, [4]string{"1px", "1px", "1px", "1px"}, ExpandBox("1px"))
	assert.Equal(t, [4]string{"1px", "2px", "3px", "4px"}, ExpandBox("1px 2px 3px 4px"))
	assert.Equal(t, [4]string{}, ExpandBox(""))
	assert.Equal(t, [4]string{}, ExpandBox("1px 2px 3px 4px 5px"))
}

func TestIsZeroLength(t *testing.T) {
	for _, v := range []string{"", "0", "0px", "0.0em", " 0% "} {
		assert.True(t, IsZeroLength(v), v)
	}
	for _, v := range []string{"1px", "10px", "0.5em"} {
		assert.False(t, IsZeroLength(v), v)
	}
}

func TestBorder(t *testing.T) {
	f := parseFormat(t, KeyBorder, `<div style="border: 1px solid; border-top: none"></div>`, nil)

	assert.Equal(t, "none", f.BorderTop)
	assert.Equal(t, "1px solid", f.BorderLeft)
	assert.Equal(t, "1px solid", f.BorderBottom)

	assert.True(t, HasBorder(NewSource(element(t, `<div style="border-left: 3px solid"></div>`), nil)))
	assert.False(t, HasBorder(NewSource(element(t, `<div style="border: none"></div>`), nil)))
	assert.False(t, HasBorder(NewSource(element(t, `<div style="border: 0"></div>`), nil)))
	assert.False(t, HasBorder(NewSource(element(t, `<div></div>`), nil)))
}

func TestSize(t *testing.T) {
	f := parseFormat(t, KeySize, `<img width="100" height="50%">`, nil)
	assert.Equal(t, "100px", f.Width)
	assert.Equal(t, "50%", f.Height)

	f = parseFormat(t, KeySize, `<img width="100" style="width: 20em">`, nil)
	assert.Equal(t, "20em", f.Width)
	assert.Equal(t, "", f.Height)
}

func TestVerticalAlign(t *testing.T) {
	assert.Equal(t, "top", parseFormat(t, KeyVerticalAlign, `<div valign="top"></div>`, nil).VerticalAlign)
	assert.Equal(t, "", parseFormat(t, KeyVerticalAlign, `<div style="vertical-align: super"></div>`, nil).VerticalAlign)
}

func TestBold(t *testing.T) {
	assert.Equal(t, "700", parseFormat(t, KeyBold, `<span style="font-weight: 700"></span>`, nil).FontWeight)
	assert.Equal(t, "", parseFormat(t, KeyBold, `<span style="font-weight: inherit"></span>`, nil).FontWeight)

	heading := &Env{ImplicitFormat: model.Format{FontWeight: "bold"}}
	assert.Equal(t, `<span><b>x</b></span>`, applyFormat(t, KeyBold, model.Format{FontWeight: "bold"}, nil))
	assert.Equal(t, `<span style="font-weight: 600;">x</span>`, applyFormat(t, KeyBold, model.Format{FontWeight: "600"}, nil))
	assert.Equal(t, `<span>x</span>`, applyFormat(t, KeyBold, model.Format{FontWeight: "bold"}, heading))
	assert.Equal(t, `<span>x</span>`, applyFormat(t, KeyBold, model.Format{FontWeight: "700"}, heading))
	assert.Equal(t, `<span style="font-weight: normal;">x</span>`, applyFormat(t, KeyBold, model.Format{}, heading))
}

func TestItalic(t *testing.T) {
	assert.True(t, parseFormat(t, KeyItalic, `<span style="font-style: oblique"></span>`, nil).Italic)

	f := model.Format{Italic: true}
	Handlers[KeyItalic].Parse(&f, NewSource(element(t, `<span style="font-style: normal"></span>`), nil), nil)
	assert.False(t, f.Italic)

	quote := &Env{ImplicitFormat: model.Format{Italic: true}}
	assert.Equal(t, `<span><i>x</i></span>`, applyFormat(t, KeyItalic, model.Format{Italic: true}, nil))
	assert.Equal(t, `<span>x</span>`, applyFormat(t, KeyItalic, model.Format{Italic: true}, quote))
	assert.Equal(t, `<span style="font-style: normal;">x</span>`, applyFormat(t, KeyItalic, model.Format{}, quote))
}

func TestDecorations(t *testing.T) {
	src := NewSource(element(t, `<span style="text-decoration: underline line-through"></span>`), nil)
	var f model.Format
	Handlers[KeyUnderline].Parse(&f, src, nil)
	Handlers[KeyStrike].Parse(&f, src, nil)

	assert.True(t, f.Underline)
	assert.True(t, f.Strikethrough)
	assert.False(t, parseFormat(t, KeyUnderline, `<u></u>`, nil).Underline)

	assert.Equal(t, `<span><u>x</u></span>`, applyFormat(t, KeyUnderline, model.Format{Underline: true}, nil))
	assert.Equal(t, `<span><s>x</s></span>`, applyFormat(t, KeyStrike, model.Format{Strikethrough: true}, nil))
	assert.Equal(t, `<span>x</span>`, applyFormat(t, KeyUnderline, model.Format{Underline: true}, &Env{ImplicitFormat: model.Format{Underline: true}}))
}

func TestSuperOrSubScript(t *testing.T) {
	f := parseFormat(t, KeySuperOrSubScript, `<span style="vertical-align: sub"></span>`, nil)
	assert.True(t, f.Subscript)
	assert.False(t, f.Superscript)

	assert.Equal(t, `<span><sup>x</sup></span>`, applyFormat(t, KeySuperOrSubScript, model.Format{Superscript: true}, nil))
	assert.Equal(t, `<span><sub>x</sub></span>`, applyFormat(t, KeySuperOrSubScript, model.Format{Subscript: true}, nil))
}

func TestFontFamilyAndSize(t *testing.T) {
	f := parseFormat(t, KeyFontFamily, `<span style="font-family: Arial, sans-serif"></span>`, nil)
	assert.Equal(t, "Arial, sans-serif", f.FontFamily)

	assert.Equal(t, `<span style="font-size: 12pt;">x</span>`, applyFormat(t, KeyFontSize, model.Format{FontSize: "12pt"}, nil))
}

func TestTextColor(t *testing.T) {
	assert.Equal(t, "red", parseFormat(t, KeyTextColor, `<font color="red"></font>`, nil).TextColor)
	assert.Equal(t, "", parseFormat(t, KeyTextColor, `<span style="color: inherit"></span>`, nil).TextColor)

	dark := &Env{IsDarkMode: true, TransformColor: func(c string) string { return "dark-" + c }}
	assert.Equal(t, "red", parseFormat(t, KeyTextColor, `<span data-ogsc="red" style="color: dark-red"></span>`, dark).TextColor)
	assert.Equal(t, "dark-red", parseFormat(t, KeyTextColor, `<span data-ogsc="red" style="color: dark-red"></span>`, nil).TextColor)

	assert.Equal(t, `<span data-ogsc="red" style="color: dark-red;">x</span>`, applyFormat(t, KeyTextColor, model.Format{TextColor: "red"}, dark))
	assert.Equal(t, `<span style="color: red;">x</span>`, applyFormat(t, KeyTextColor, model.Format{TextColor: "red"}, nil))
	assert.Equal(t, `<span>x</span>`, applyFormat(t, KeyTextColor, model.Format{TextColor: "red"}, &Env{ImplicitFormat: model.Format{TextColor: "red"}}))
}

func TestBackgroundColor(t *testing.T) {
	assert.Equal(t, "", parseFormat(t, KeyBackgroundColor, `<span style="background-color: transparent"></span>`, nil).BackgroundColor)

	dark := &Env{IsDarkMode: true}
	assert.Equal(t, "white", parseFormat(t, KeyBackgroundColor, `<span data-ogsb="white" style="background-color: black"></span>`, dark).BackgroundColor)
	assert.Equal(t,
		`<span data-ogsb="white" style="background-color: rgb(0, 0, 0);">x</span>`,
		applyFormat(t, KeyBackgroundColor, model.Format{BackgroundColor: "white"}, dark))
}

func TestDataset(t *testing.T) {
	f := parseFormat(t, KeyDataset, `<table data-b="2" data-a="1" data-ogsc="red" id="x"></table>`, nil)

	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, f.Dataset)
	assert.Nil(t, parseFormat(t, KeyDataset, `<table></table>`, nil).Dataset)
	assert.Equal(t, `<span data-a="1" data-b="2">x</span>`, applyFormat(t, KeyDataset, f, nil))
}

func TestListStyle(t *testing.T) {
	assert.Equal(t, "lower-alpha", parseFormat(t, KeyListStyle, `<ol style="list-style-type: lower-alpha"></ol>`, nil).ListStyleType)
}
