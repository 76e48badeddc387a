package dom

import "golang.org/x/net/html"

// Position is a point inside the DOM. For a text node Offset counts bytes
// of its data; for an element it counts child nodes.
type Position struct {
	Node   *html.Node
	Offset int
}

// Range is a DOM selection range.
type Range struct {
	Start Position
	End   Position
}

// Collapsed reports whether the range is a caret.
func (r *Range) Collapsed() bool {
	return r.Start == r.End
}

// NewCaret returns a collapsed range at (node, offset).
func NewCaret(node *html.Node, offset int) *Range {
	p := Position{Node: node, Offset: offset}
	return &Range{Start: p, End: p}
}

// PositionBefore returns the position right before n in its parent.
func PositionBefore(n *html.Node) Position {
	return Position{Node: n.Parent, Offset: IndexOf(n)}
}

// PositionAfter returns the position right after n in its parent.
func PositionAfter(n *html.Node) Position {
	return Position{Node: n.Parent, Offset: IndexOf(n) + 1}
}

// Normalize moves a position that points at a text node child to the start
// of that text node.
func (p Position) Normalize() Position {
	if p.Node == nil || p.Node.Type != html.ElementNode {
		return p
	}
	if child := ChildAt(p.Node, p.Offset); child != nil && child.Type == html.TextNode {
		return Position{Node: child}
	}
	return p
}
