// Package domtomodel builds a content model from an HTML subtree.
package domtomodel

import (
	"log/slog"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/format"
	"github.com/shodgson/contentmodel-go/model"
	"golang.org/x/net/html"
)

// ElementProcessor turns an element into model content added to group.
type ElementProcessor func(group model.BlockGroup, el *html.Node, ctx *Context)

// Processor map keys that aren't tag names.
const (
	// KeyElement dispatches any element to its processor.
	KeyElement = "element"
	// KeyChild walks the children of an element.
	KeyChild = "child"
	// KeyText processes text nodes.
	KeyText = "#text"
	// KeyEntity processes entity wrappers.
	KeyEntity = "entity"
	// KeyGeneral processes elements without a dedicated processor.
	KeyGeneral = "*"
)

// Options configure DomToContentModel. Override maps replace or extend
// the built-in tables; a nil processor entry makes the element ignored and
// a nil parser entry disables that format handler.
type Options struct {
	ProcessorOverride       map[string]ElementProcessor
	DefaultStyleOverride    map[string]dom.Style
	FormatParserOverride    map[format.Key]*format.Handler
	AdditionalFormatParsers map[format.Category][]*format.Handler
	Env                     *format.Env
	Logger                  *slog.Logger
}

// Selection is the regular selection consumed by the walk. It is captured
// once when the context is created.
type Selection struct {
	Start     dom.Position
	End       dom.Position
	Collapsed bool
}

// ListFormat is the list nesting state of the walk.
type ListFormat struct {
	// Levels are the list levels enclosing the current node.
	Levels []model.ListLevel
	// ListParent is the group list items are added to.
	ListParent model.BlockGroup
	// ThreadItemCounts counts items seen per depth of ordered lists.
	ThreadItemCounts []int
}

// Context is the state threaded through the processors.
type Context struct {
	BlockFormat   model.Format
	SegmentFormat model.Format
	Link          model.Link

	RegularSelection *Selection
	IsInSelection    bool
	ListFormat       ListFormat

	Env           *format.Env
	DefaultStyles map[string]dom.Style
	FormatParsers map[format.Category][]*format.Handler
	Processors    map[string]ElementProcessor
	Logger        *slog.Logger
}

// NewContext composes the processing tables with opts and captures rng.
func NewContext(opts *Options, rng *dom.Range) *Context {
	if opts == nil {
		opts = &Options{}
	}
	ctx := &Context{
		Env:           opts.Env,
		DefaultStyles: make(map[string]dom.Style, len(defaultStyles)),
		FormatParsers: format.Resolve(opts.FormatParserOverride, opts.AdditionalFormatParsers),
		Processors:    make(map[string]ElementProcessor, len(defaultProcessors)),
		Logger:        opts.Logger,
	}
	if ctx.Env == nil {
		ctx.Env = &format.Env{}
	}
	if ctx.Logger == nil {
		ctx.Logger = slog.Default()
	}
	for tag, style := range defaultStyles {
		ctx.DefaultStyles[tag] = style
	}
	for tag, style := range opts.DefaultStyleOverride {
		ctx.DefaultStyles[tag] = style
	}
	for key, p := range defaultProcessors {
		ctx.Processors[key] = p
	}
	for key, p := range opts.ProcessorOverride {
		ctx.Processors[key] = p
	}
	if rng != nil {
		ctx.RegularSelection = &Selection{Start: rng.Start, End: rng.End, Collapsed: rng.Collapsed()}
	}
	return ctx
}

// stackFormat runs fn and restores the inherited formats and link
// afterwards.
func (ctx *Context) stackFormat(fn func()) {
	block, segment, link := ctx.BlockFormat.Clone(), ctx.SegmentFormat.Clone(), ctx.Link
	defer func() {
		ctx.BlockFormat, ctx.SegmentFormat, ctx.Link = block, segment, link
	}()
	fn()
}

// parse applies the parsers of category on el to f.
func (ctx *Context) parse(f *model.Format, category format.Category, src *format.Source) {
	format.Parse(f, ctx.FormatParsers[category], src, ctx.Env)
}

// source parses the inline style of el along with its tag default style.
func (ctx *Context) source(el *html.Node) *format.Source {
	return format.NewSource(el, ctx.DefaultStyles[dom.Tag(el)])
}

// DomToContentModel builds a document from the children of root.
func DomToContentModel(root *html.Node, opts *Options, rng *dom.Range) *model.Document {
	ctx := NewContext(opts, rng)
	doc := model.NewDocument(model.Format{})
	doc.Doc = ownerDocument(root)
	ctx.Processors[KeyChild](doc, root, ctx)
	return doc
}

func ownerDocument(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.DocumentNode {
			return n
		}
	}
	return nil
}
