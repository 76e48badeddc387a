package model

import "reflect"

// Format is the style record attached to blocks, segments, list levels and
// table cells. An empty string or false means the property is not set. Which
// fields are meaningful for a given node kind is decided by the format
// handler categories in package format.
type Format struct {
	FontFamily      string
	FontSize        string
	FontWeight      string
	Italic          bool
	Underline       bool
	Strikethrough   bool
	Superscript     bool
	Subscript       bool
	TextColor       string
	BackgroundColor string
	LineHeight      string

	Direction     string
	TextAlign     string
	WhiteSpace    string
	VerticalAlign string

	MarginTop    string
	MarginRight  string
	MarginBottom string
	MarginLeft   string

	PaddingTop    string
	PaddingRight  string
	PaddingBottom string
	PaddingLeft   string

	BorderTop    string
	BorderRight  string
	BorderBottom string
	BorderLeft   string

	Width  string
	Height string

	ListStyleType string

	Dataset map[string]string
}

// Clone returns a deep copy of the format.
func (f Format) Clone() Format {
	if f.Dataset != nil {
		ds := make(map[string]string, len(f.Dataset))
		for k, v := range f.Dataset {
			ds[k] = v
		}
		f.Dataset = ds
	}
	return f
}

// Equal reports whether two formats hold the same values.
func (f Format) Equal(other Format) bool {
	if len(f.Dataset) == 0 {
		f.Dataset = nil
	}
	if len(other.Dataset) == 0 {
		other.Dataset = nil
	}
	return reflect.DeepEqual(f, other)
}

// IsEmpty reports whether no property is set.
func (f Format) IsEmpty() bool {
	return f.Equal(Format{})
}

// IsBold reports whether the font weight renders as bold.
func (f Format) IsBold() bool {
	switch f.FontWeight {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// Merge returns a copy of f where every property set in other overrides
// the corresponding property of f. Boolean properties can only be turned
// on: a false value in other leaves the value of f.
func (f Format) Merge(other Format) Format {
	result := f.Clone()
	mergeString(&result.FontFamily, other.FontFamily)
	mergeString(&result.FontSize, other.FontSize)
	mergeString(&result.FontWeight, other.FontWeight)
	result.Italic = result.Italic || other.Italic
	result.Underline = result.Underline || other.Underline
	result.Strikethrough = result.Strikethrough || other.Strikethrough
	result.Superscript = result.Superscript || other.Superscript
	result.Subscript = result.Subscript || other.Subscript
	mergeString(&result.TextColor, other.TextColor)
	mergeString(&result.BackgroundColor, other.BackgroundColor)
	mergeString(&result.LineHeight, other.LineHeight)
	mergeString(&result.Direction, other.Direction)
	mergeString(&result.TextAlign, other.TextAlign)
	mergeString(&result.WhiteSpace, other.WhiteSpace)
	mergeString(&result.VerticalAlign, other.VerticalAlign)
	mergeString(&result.MarginTop, other.MarginTop)
	mergeString(&result.MarginRight, other.MarginRight)
	mergeString(&result.MarginBottom, other.MarginBottom)
	mergeString(&result.MarginLeft, other.MarginLeft)
	mergeString(&result.PaddingTop, other.PaddingTop)
	mergeString(&result.PaddingRight, other.PaddingRight)
	mergeString(&result.PaddingBottom, other.PaddingBottom)
	mergeString(&result.PaddingLeft, other.PaddingLeft)
	mergeString(&result.BorderTop, other.BorderTop)
	mergeString(&result.BorderRight, other.BorderRight)
	mergeString(&result.BorderBottom, other.BorderBottom)
	mergeString(&result.BorderLeft, other.BorderLeft)
	mergeString(&result.Width, other.Width)
	mergeString(&result.Height, other.Height)
	mergeString(&result.ListStyleType, other.ListStyleType)
	for k, v := range other.Dataset {
		if result.Dataset == nil {
			result.Dataset = map[string]string{}
		}
		result.Dataset[k] = v
	}
	return result
}

func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Link holds the hyperlink applied to a text or image segment.
type Link struct {
	Href   string
	Target string
	Title  string
}

// IsEmpty reports whether the segment carries no link.
func (l Link) IsEmpty() bool { return l.Href == "" }
