package format

import (
	"sort"
	"strings"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/model"
	"golang.org/x/net/html"
)

// Handlers holds the built-in handlers.
var Handlers = map[Key]*Handler{
	KeyBackgroundColor:  backgroundColorHandler,
	KeyBorder:           borderHandler,
	KeyDirection:        directionHandler,
	KeyTextAlign:        textAlignHandler,
	KeyMargin:           boxHandler("margin", marginFields),
	KeyPadding:          boxHandler("padding", paddingFields),
	KeyLineHeight:       styleHandler("line-height", func(f *model.Format) *string { return &f.LineHeight }),
	KeyWhiteSpace:       styleHandler("white-space", func(f *model.Format) *string { return &f.WhiteSpace }),
	KeyVerticalAlign:    verticalAlignHandler,
	KeySize:             sizeHandler,
	KeyFontFamily:       styleHandler("font-family", func(f *model.Format) *string { return &f.FontFamily }),
	KeyFontSize:         styleHandler("font-size", func(f *model.Format) *string { return &f.FontSize }),
	KeyTextColor:        textColorHandler,
	KeyBold:             boldHandler,
	KeyItalic:           italicHandler,
	KeyUnderline:        decorationHandler("underline", "u", func(f *model.Format) *bool { return &f.Underline }),
	KeyStrike:           decorationHandler("line-through", "s", func(f *model.Format) *bool { return &f.Strikethrough }),
	KeySuperOrSubScript: superOrSubScriptHandler,
	KeyListStyle:        styleHandler("list-style-type", func(f *model.Format) *string { return &f.ListStyleType }),
	KeyDataset:          datasetHandler,
}

func styleHandler(property string, field func(*model.Format) *string) *Handler {
	return &Handler{
		Parse: func(f *model.Format, src *Source, _ *Env) {
			if v := src.Get(property); v != "" {
				*field(f) = v
			}
		},
		Apply: func(f *model.Format, el *html.Node, _ *Env) {
			if v := *field(f); v != "" {
				dom.SetStyle(el, property, v)
			}
		},
	}
}

var backgroundColorHandler = &Handler{
	Parse: func(f *model.Format, src *Source, env *Env) {
		v := src.Get("background-color")
		if env != nil && env.IsDarkMode {
			if og := dom.GetAttr(src.Node, "data-ogsb"); og != "" {
				v = og
			}
		}
		if v != "" && v != "transparent" {
			f.BackgroundColor = v
		}
	},
	Apply: func(f *model.Format, el *html.Node, env *Env) {
		if f.BackgroundColor == "" {
			return
		}
		if env != nil && env.IsDarkMode {
			dom.SetAttr(el, "data-ogsb", f.BackgroundColor)
		}
		dom.SetStyle(el, "background-color", env.darkColor(f.BackgroundColor))
	},
}

var textColorHandler = &Handler{
	Parse: func(f *model.Format, src *Source, env *Env) {
		v := src.Get("color")
		if v == "" && dom.Tag(src.Node) == "font" {
			v = dom.GetAttr(src.Node, "color")
		}
		if env != nil && env.IsDarkMode {
			if og := dom.GetAttr(src.Node, "data-ogsc"); og != "" {
				v = og
			}
		}
		if v != "" && v != "inherit" {
			f.TextColor = v
		}
	},
	Apply: func(f *model.Format, el *html.Node, env *Env) {
		if f.TextColor == "" || f.TextColor == env.implicit().TextColor {
			return
		}
		if env != nil && env.IsDarkMode {
			dom.SetAttr(el, "data-ogsc", f.TextColor)
		}
		dom.SetStyle(el, "color", env.darkColor(f.TextColor))
	},
}

func (e *Env) implicit() model.Format {
	if e == nil {
		return model.Format{}
	}
	return e.ImplicitFormat
}

var borderSides = []struct {
	property string
	field    func(*model.Format) *string
}{
	{"border-top", func(f *model.Format) *string { return &f.BorderTop }},
	{"border-right", func(f *model.Format) *string { return &f.BorderRight }},
	{"border-bottom", func(f *model.Format) *string { return &f.BorderBottom }},
	{"border-left", func(f *model.Format) *string { return &f.BorderLeft }},
}

var borderHandler = &Handler{
	Parse: func(f *model.Format, src *Source, _ *Env) {
		all := src.Get("border")
		for _, side := range borderSides {
			if v := src.Get(side.property); v != "" {
				*side.field(f) = v
			} else if all != "" {
				*side.field(f) = all
			}
		}
	},
	Apply: func(f *model.Format, el *html.Node, _ *Env) {
		for _, side := range borderSides {
			if v := *side.field(f); v != "" {
				dom.SetStyle(el, side.property, v)
			}
		}
	},
}

// HasBorder reports whether the element style sets a left border, either
// directly or through the shorthand.
func HasBorder(src *Source) bool {
	v := src.Style.Get("border-left")
	if v == "" {
		v = src.Style.Get("border")
	}
	return v != "" && v != "none" && !strings.HasPrefix(v, "0")
}

type boxFields [4]func(*model.Format) *string

var marginFields = boxFields{
	func(f *model.Format) *string { return &f.MarginTop },
	func(f *model.Format) *string { return &f.MarginRight },
	func(f *model.Format) *string { return &f.MarginBottom },
	func(f *model.Format) *string { return &f.MarginLeft },
}

var paddingFields = boxFields{
	func(f *model.Format) *string { return &f.PaddingTop },
	func(f *model.Format) *string { return &f.PaddingRight },
	func(f *model.Format) *string { return &f.PaddingBottom },
	func(f *model.Format) *string { return &f.PaddingLeft },
}

var boxSides = [4]string{"top", "right", "bottom", "left"}

// ExpandBox expands a margin or padding shorthand into top, right, bottom
// and left values.
func ExpandBox(v string) [4]string {
	parts := strings.Fields(v)
	switch len(parts) {
	case 1:
		return [4]string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		return [4]string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		return [4]string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		return [4]string{parts[0], parts[1], parts[2], parts[3]}
	}
	return [4]string{}
}

func boxHandler(property string, fields boxFields) *Handler {
	return &Handler{
		Parse: func(f *model.Format, src *Source, _ *Env) {
			// The default style only applies when the element style doesn't
			// set the side, shorthand included.
			apply := func(style dom.Style) {
				values := ExpandBox(style.Get(property))
				for i, side := range boxSides {
					if v := style.Get(property + "-" + side); v != "" {
						values[i] = v
					}
					if values[i] != "" {
						*fields[i](f) = values[i]
					}
				}
			}
			apply(src.Default)
			apply(src.Style)
		},
		Apply: func(f *model.Format, el *html.Node, _ *Env) {
			for i, side := range boxSides {
				if v := *fields[i](f); v != "" {
					dom.SetStyle(el, property+"-"+side, v)
				}
			}
		},
	}
}

// IsZeroLength reports whether a CSS length is unset or zero.
func IsZeroLength(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	return strings.TrimRight(strings.TrimLeft(v, "0."), "abcdefghijklmnopqrstuvwxyz%") == ""
}

var directionHandler = &Handler{
	Parse: func(f *model.Format, src *Source, _ *Env) {
		v := src.Get("direction")
		if v == "" {
			v = dom.GetAttr(src.Node, "dir")
		}
		if v == "rtl" || v == "ltr" {
			f.Direction = v
		}
	},
	Apply: func(f *model.Format, el *html.Node, _ *Env) {
		if f.Direction != "" {
			dom.SetStyle(el, "direction", f.Direction)
		}
	},
}

var textAlignHandler = &Handler{
	Parse: func(f *model.Format, src *Source, _ *Env) {
		v := src.Get("text-align")
		if v == "" {
			v = dom.GetAttr(src.Node, "align")
		}
		switch strings.ToLower(v) {
		case "left", "start":
			f.TextAlign = "start"
		case "right", "end":
			f.TextAlign = "end"
		case "center", "justify":
			f.TextAlign = strings.ToLower(v)
		}
	},
	Apply: func(f *model.Format, el *html.Node, _ *Env) {
		v := f.TextAlign
		switch v {
		case "":
			return
		case "start":
			v = "left"
			if f.Direction == "rtl" {
				v = "right"
			}
		case "end":
			v = "right"
			if f.Direction == "rtl" {
				v = "left"
			}
		}
		dom.SetStyle(el, "text-align", v)
	},
}

var verticalAlignHandler = &Handler{
	Parse: func(f *model.Format, src *Source, _ *Env) {
		v := src.Get("vertical-align")
		if v == "" {
			v = dom.GetAttr(src.Node, "valign")
		}
		switch v {
		case "top", "middle", "bottom":
			f.VerticalAlign = v
		}
	},
	Apply: func(f *model.Format, el *html.Node, _ *Env) {
		if f.VerticalAlign != "" {
			dom.SetStyle(el, "vertical-align", f.VerticalAlign)
		}
	},
}

var sizeHandler = &Handler{
	Parse: func(f *model.Format, src *Source, _ *Env) {
		f.Width = sizeValue(src, "width", f.Width)
		f.Height = sizeValue(src, "height", f.Height)
	},
	Apply: func(f *model.Format, el *html.Node, _ *Env) {
		if f.Width != "" {
			dom.SetStyle(el, "width", f.Width)
		}
		if f.Height != "" {
			dom.SetStyle(el, "height", f.Height)
		}
	},
}

func sizeValue(src *Source, property, current string) string {
	if v := src.Get(property); v != "" {
		return v
	}
	if v := dom.GetAttr(src.Node, property); v != "" {
		if strings.Trim(v, "0123456789.") == "" {
			return v + "px"
		}
		return v
	}
	return current
}

var boldHandler = &Handler{
	Parse: func(f *model.Format, src *Source, _ *Env) {
		if v := src.Get("font-weight"); v != "" && v != "inherit" {
			f.FontWeight = v
		}
	},
	Apply: func(f *model.Format, el *html.Node, env *Env) {
		implicit := env.implicit()
		switch {
		case f.FontWeight == implicit.FontWeight:
		case f.IsBold() && implicit.IsBold():
		case f.FontWeight == "bold" && !implicit.IsBold():
			dom.WrapChildren(el, "b")
		case f.IsBold():
			dom.SetStyle(el, "font-weight", f.FontWeight)
		case implicit.IsBold():
			weight := f.FontWeight
			if weight == "" {
				weight = "normal"
			}
			dom.SetStyle(el, "font-weight", weight)
		}
	},
}

var italicHandler = &Handler{
	Parse: func(f *model.Format, src *Source, _ *Env) {
		switch src.Get("font-style") {
		case "italic", "oblique":
			f.Italic = true
		case "normal", "initial":
			f.Italic = false
		}
	},
	Apply: func(f *model.Format, el *html.Node, env *Env) {
		implicit := env.implicit()
		if f.Italic && !implicit.Italic {
			dom.WrapChildren(el, "i")
		} else if !f.Italic && implicit.Italic {
			dom.SetStyle(el, "font-style", "normal")
		}
	},
}

func decorationHandler(value, tag string, field func(*model.Format) *bool) *Handler {
	return &Handler{
		Parse: func(f *model.Format, src *Source, _ *Env) {
			v := src.Get("text-decoration")
			if v == "" {
				v = src.Get("text-decoration-line")
			}
			if strings.Contains(v, value) {
				*field(f) = true
			} else if v == "none" {
				*field(f) = false
			}
		},
		Apply: func(f *model.Format, el *html.Node, env *Env) {
			implicit := env.implicit()
			if *field(f) && !*field(&implicit) {
				dom.WrapChildren(el, tag)
			}
		},
	}
}

var superOrSubScriptHandler = &Handler{
	Parse: func(f *model.Format, src *Source, _ *Env) {
		switch src.Get("vertical-align") {
		case "super":
			f.Superscript, f.Subscript = true, false
		case "sub":
			f.Superscript, f.Subscript = false, true
		case "baseline":
			f.Superscript, f.Subscript = false, false
		}
	},
	Apply: func(f *model.Format, el *html.Node, _ *Env) {
		if f.Superscript {
			dom.WrapChildren(el, "sup")
		} else if f.Subscript {
			dom.WrapChildren(el, "sub")
		}
	},
}

const datasetPrefix = "data-"

var datasetHandler = &Handler{
	Parse: func(f *model.Format, src *Source, _ *Env) {
		for _, a := range src.Node.Attr {
			if !strings.HasPrefix(a.Key, datasetPrefix) || a.Key == "data-ogsc" || a.Key == "data-ogsb" {
				continue
			}
			if f.Dataset == nil {
				f.Dataset = map[string]string{}
			}
			f.Dataset[a.Key[len(datasetPrefix):]] = a.Val
		}
	},
	Apply: func(f *model.Format, el *html.Node, _ *Env) {
		keys := make([]string, 0, len(f.Dataset))
		for k := range f.Dataset {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			dom.SetAttr(el, datasetPrefix+k, f.Dataset[k])
		}
	},
}
