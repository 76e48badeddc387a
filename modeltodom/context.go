// Package modeltodom renders a content model back into an HTML subtree.
package modeltodom

import (
	"log/slog"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/format"
	"github.com/shodgson/contentmodel-go/model"
	"golang.org/x/net/html"
)

// Handlers are the functions rendering each kind of model node. Every
// handler appends what it creates to parent.
type Handlers struct {
	Block              func(parent *html.Node, block model.Block, ctx *Context)
	BlockGroupChildren func(parent *html.Node, group model.BlockGroup, ctx *Context)
	Segment            func(parent *html.Node, segment model.Segment, ctx *Context)

	Paragraph    func(parent *html.Node, p *model.Paragraph, ctx *Context)
	Table        func(parent *html.Node, t *model.Table, ctx *Context)
	Quote        func(parent *html.Node, q *model.Quote, ctx *Context)
	ListItem     func(parent *html.Node, item *model.ListItem, ctx *Context)
	GeneralBlock func(parent *html.Node, g *model.GeneralBlock, ctx *Context)
	Divider      func(parent *html.Node, d *model.Divider, ctx *Context)
	Entity       func(parent *html.Node, e *model.Entity, ctx *Context)

	// List returns the list element an item of levels goes into, creating
	// list elements as needed.
	List func(parent *html.Node, levels []model.ListLevel, ctx *Context) *html.Node

	Text            func(parent *html.Node, t *model.Text, ctx *Context)
	Br              func(parent *html.Node, br *model.Br, ctx *Context)
	Image           func(parent *html.Node, img *model.Image, ctx *Context)
	SelectionMarker func(parent *html.Node, m *model.SelectionMarker, ctx *Context)
	GeneralSegment  func(parent *html.Node, g *model.GeneralSegment, ctx *Context)
}

// merge returns h with every non-nil handler of override in place.
func (h Handlers) merge(override Handlers) Handlers {
	if override.Block != nil {
		h.Block = override.Block
	}
	if override.BlockGroupChildren != nil {
		h.BlockGroupChildren = override.BlockGroupChildren
	}
	if override.Segment != nil {
		h.Segment = override.Segment
	}
	if override.Paragraph != nil {
		h.Paragraph = override.Paragraph
	}
	if override.Table != nil {
		h.Table = override.Table
	}
	if override.Quote != nil {
		h.Quote = override.Quote
	}
	if override.ListItem != nil {
		h.ListItem = override.ListItem
	}
	if override.GeneralBlock != nil {
		h.GeneralBlock = override.GeneralBlock
	}
	if override.Divider != nil {
		h.Divider = override.Divider
	}
	if override.Entity != nil {
		h.Entity = override.Entity
	}
	if override.List != nil {
		h.List = override.List
	}
	if override.Text != nil {
		h.Text = override.Text
	}
	if override.Br != nil {
		h.Br = override.Br
	}
	if override.Image != nil {
		h.Image = override.Image
	}
	if override.SelectionMarker != nil {
		h.SelectionMarker = override.SelectionMarker
	}
	if override.GeneralSegment != nil {
		h.GeneralSegment = override.GeneralSegment
	}
	return h
}

// Options configure ContentModelToDom.
type Options struct {
	// FormatApplierOverride replaces built-in format appliers. A nil entry
	// disables the applier.
	FormatApplierOverride    map[format.Key]*format.Handler
	AdditionalFormatAppliers map[format.Category][]*format.Handler
	// HandlerOverride replaces the built-in handlers it sets.
	HandlerOverride Handlers
	Env             *format.Env
	Logger          *slog.Logger
}

// SelectionPosition is a point recorded while rendering: right after
// Segment, or at the start of Block when Segment is nil.
type SelectionPosition struct {
	Block   *html.Node
	Segment *html.Node
}

// Position resolves p to a DOM position.
func (p SelectionPosition) Position() dom.Position {
	switch {
	case p.Segment == nil:
		return dom.Position{Node: p.Block}
	case p.Segment.Type == html.TextNode:
		return dom.Position{Node: p.Segment, Offset: len(p.Segment.Data)}
	}
	return dom.PositionAfter(p.Segment)
}

// RegularSelection tracks where the selection lands in the new DOM.
type RegularSelection struct {
	Start   *SelectionPosition
	End     *SelectionPosition
	Current SelectionPosition
}

// ListStackItem is a list element opened while rendering list items. The
// bottom item holds the container the lists are appended to.
type ListStackItem struct {
	Node  *html.Node
	Level *model.ListLevel
}

// ListFormat is the list rendering state.
type ListFormat struct {
	ThreadItemCounts []int
	NodeStack        []ListStackItem
}

// EntityPair links a rendered entity to its wrapper.
type EntityPair struct {
	Entity  *model.Entity
	Wrapper *html.Node
}

// Context is the state threaded through the handlers.
type Context struct {
	RegularSelection RegularSelection
	ListFormat       ListFormat

	Env            *format.Env
	FormatAppliers map[format.Category][]*format.Handler
	Handlers       Handlers
	Entities       []EntityPair
	Logger         *slog.Logger
}

// NewContext composes the handler and applier tables with opts.
func NewContext(opts *Options) *Context {
	if opts == nil {
		opts = &Options{}
	}
	env := format.Env{}
	if opts.Env != nil {
		env = *opts.Env
	}
	ctx := &Context{
		Env:            &env,
		FormatAppliers: format.Resolve(opts.FormatApplierOverride, opts.AdditionalFormatAppliers),
		Handlers:       defaultHandlers().merge(opts.HandlerOverride),
		Logger:         opts.Logger,
	}
	if ctx.Logger == nil {
		ctx.Logger = slog.Default()
	}
	return ctx
}

// Range returns the selection recorded while rendering, or nil.
func (ctx *Context) Range() *dom.Range {
	sel := ctx.RegularSelection
	if sel.Start == nil {
		return nil
	}
	end := sel.Start
	if sel.End != nil {
		end = sel.End
	}
	return &dom.Range{Start: sel.Start.Position(), End: end.Position()}
}

func (ctx *Context) apply(f *model.Format, category format.Category, el *html.Node) {
	format.Apply(f, ctx.FormatAppliers[category], el, ctx.Env)
}

// ContentModelToDom renders m into root and returns the selection of the
// model in the new DOM, or nil when nothing is selected.
func ContentModelToDom(root *html.Node, m *model.Document, opts *Options) *dom.Range {
	ctx := NewContext(opts)
	Render(root, m, ctx)
	return ctx.Range()
}

// Render renders m into root with an existing context.
func Render(root *html.Node, m *model.Document, ctx *Context) {
	ctx.RegularSelection.Current = SelectionPosition{Block: root, Segment: root.LastChild}
	ctx.Handlers.BlockGroupChildren(root, m, ctx)
}
