package dom

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

// Declaration is one `property: value` pair of an inline style.
type Declaration struct {
	Property string
	Value    string
}

// Style is an ordered list of declarations.
type Style []Declaration

// ParseStyle tokenizes the content of a style attribute. Invalid
// declarations are skipped.
func ParseStyle(s string) Style {
	var result Style
	if strings.TrimSpace(s) == "" {
		return result
	}
	p := css.NewParser(parse.NewInputString(s), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return result
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			var b strings.Builder
			for _, v := range p.Values() {
				switch v.TokenType {
				case css.WhitespaceToken:
					b.WriteByte(' ')
				case css.CommaToken:
					b.WriteString(", ")
				default:
					b.Write(v.Data)
				}
			}
			value := strings.TrimSpace(b.String())
			if value == "" {
				continue
			}
			result.Set(strings.ToLower(string(data)), value)
		}
	}
}

// Get returns the value of property, or "".
func (s Style) Get(property string) string {
	for _, d := range s {
		if d.Property == property {
			return d.Value
		}
	}
	return ""
}

// Set replaces or appends property. An empty value removes it.
func (s *Style) Set(property, value string) {
	for i, d := range *s {
		if d.Property == property {
			if value == "" {
				*s = append((*s)[:i], (*s)[i+1:]...)
			} else {
				(*s)[i].Value = value
			}
			return
		}
	}
	if value != "" {
		*s = append(*s, Declaration{Property: property, Value: value})
	}
}

// Merge returns a copy of s overridden by other.
func (s Style) Merge(other Style) Style {
	result := make(Style, len(s), len(s)+len(other))
	copy(result, s)
	for _, d := range other {
		result.Set(d.Property, d.Value)
	}
	return result
}

// String serializes the style the way browsers do:
// `font-size: 10px; color: red;`.
func (s Style) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.Property + ": " + d.Value + ";"
	}
	return strings.Join(parts, " ")
}

// GetStyle parses the style attribute of n.
func GetStyle(n *html.Node) Style {
	return ParseStyle(GetAttr(n, "style"))
}

// GetStyleValue returns one property of the inline style of n.
func GetStyleValue(n *html.Node, property string) string {
	return GetStyle(n).Get(property)
}

// SetStyle sets one property of the inline style of n. An empty value
// removes the property, and the attribute once no property is left.
func SetStyle(n *html.Node, property, value string) {
	style := GetStyle(n)
	style.Set(property, value)
	if len(style) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", style.String())
}
