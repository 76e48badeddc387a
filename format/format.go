// Package format converts between element styles and model formats, one
// property family at a time.
package format

import (
	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/model"
	"golang.org/x/net/html"
)

// Env is the editor state format handlers depend on.
type Env struct {
	IsDarkMode bool
	// TransformColor maps a color to its dark mode value. dom.DarkColor is
	// used when nil.
	TransformColor func(string) string
	// ImplicitFormat is the segment format the enclosing block element
	// already provides, such as the bold weight of a heading.
	ImplicitFormat model.Format
}

func (e *Env) darkColor(c string) string {
	if e == nil || !e.IsDarkMode || c == "" {
		return c
	}
	if e.TransformColor != nil {
		return e.TransformColor(c)
	}
	return dom.DarkColor(c)
}

// Source is an element being parsed, with its inline style parsed once.
type Source struct {
	Node *html.Node
	// Style is the inline style of Node.
	Style dom.Style
	// Default is the style implied by the tag, such as bold for B.
	Default dom.Style
}

// NewSource parses the inline style of n.
func NewSource(n *html.Node, defaultStyle dom.Style) *Source {
	return &Source{Node: n, Style: dom.GetStyle(n), Default: defaultStyle}
}

// Get returns a style property, falling back to the default style.
func (s *Source) Get(property string) string {
	if v := s.Style.Get(property); v != "" {
		return v
	}
	return s.Default.Get(property)
}

// Handler parses one property family into a format, and applies it back.
type Handler struct {
	Parse func(f *model.Format, src *Source, env *Env)
	Apply func(f *model.Format, el *html.Node, env *Env)
}

// Key names a handler.
type Key string

const (
	KeyBackgroundColor  Key = "backgroundColor"
	KeyBorder           Key = "border"
	KeyDirection        Key = "direction"
	KeyTextAlign        Key = "textAlign"
	KeyMargin           Key = "margin"
	KeyPadding          Key = "padding"
	KeyLineHeight       Key = "lineHeight"
	KeyWhiteSpace       Key = "whiteSpace"
	KeyVerticalAlign    Key = "verticalAlign"
	KeySize             Key = "size"
	KeyFontFamily       Key = "fontFamily"
	KeyFontSize         Key = "fontSize"
	KeyTextColor        Key = "textColor"
	KeyBold             Key = "bold"
	KeyItalic           Key = "italic"
	KeyUnderline        Key = "underline"
	KeyStrike           Key = "strike"
	KeySuperOrSubScript Key = "superOrSubScript"
	KeyListStyle        Key = "listStyle"
	KeyDataset          Key = "dataset"
)

// Category is the kind of model node a format belongs to.
type Category string

const (
	CategoryBlock     Category = "block"
	CategorySegment   Category = "segment"
	CategoryTable     Category = "table"
	CategoryTableCell Category = "tableCell"
	CategoryListLevel Category = "listLevel"
	CategoryDivider   Category = "divider"
	CategoryImage     Category = "image"
)

// Keys lists, per category, the handlers used in parse and apply order.
var Keys = map[Category][]Key{
	CategoryBlock: {
		KeyBackgroundColor, KeyDirection, KeyTextAlign, KeyLineHeight,
		KeyWhiteSpace, KeyMargin, KeyPadding, KeyBorder,
	},
	CategorySegment: {
		KeySuperOrSubScript, KeyStrike, KeyUnderline, KeyItalic, KeyBold,
		KeyFontFamily, KeyFontSize, KeyTextColor, KeyBackgroundColor, KeyLineHeight,
	},
	CategoryTable: {
		KeyBorder, KeyBackgroundColor, KeyMargin, KeySize, KeyDataset,
	},
	CategoryTableCell: {
		KeyBorder, KeyBackgroundColor, KeyPadding, KeyTextAlign,
		KeyVerticalAlign, KeySize, KeyDataset,
	},
	CategoryListLevel: {
		KeyListStyle, KeyDirection, KeyTextAlign, KeyMargin, KeyPadding, KeyDataset,
	},
	CategoryDivider: {
		KeyMargin, KeyPadding, KeyBorder, KeySize,
	},
	CategoryImage: {
		KeySize, KeyMargin, KeyPadding, KeyBorder,
	},
}

// Resolve builds the handler lists per category from the built-in handlers,
// replaced by override entries (a nil entry disables the handler) and
// extended by additional handlers.
func Resolve(override map[Key]*Handler, additional map[Category][]*Handler) map[Category][]*Handler {
	result := make(map[Category][]*Handler, len(Keys))
	for category, keys := range Keys {
		var list []*Handler
		for _, key := range keys {
			h := Handlers[key]
			if o, ok := override[key]; ok {
				h = o
			}
			if h != nil {
				list = append(list, h)
			}
		}
		result[category] = append(list, additional[category]...)
	}
	return result
}

// Parse runs the parse side of handlers.
func Parse(f *model.Format, handlers []*Handler, src *Source, env *Env) {
	for _, h := range handlers {
		if h.Parse != nil {
			h.Parse(f, src, env)
		}
	}
}

// Apply runs the apply side of handlers.
func Apply(f *model.Format, handlers []*Handler, el *html.Node, env *Env) {
	for _, h := range handlers {
		if h.Apply != nil {
			h.Apply(f, el, env)
		}
	}
}
