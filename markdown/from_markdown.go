package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/domtomodel"
	"github.com/shodgson/contentmodel-go/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// ErrEmptySource is returned when parsing blank markdown.
var ErrEmptySource = errors.New("markdown: empty source")

// QuoteStyle is the inline style given to blockquotes, so that they are
// read back as quotes with a left border.
const QuoteStyle = "border-left: 3px solid #c8c8c8; padding-left: 10px"

// DefaultParser converts CommonMark, with the GitHub Flavored Markdown
// tables and strikethrough, to HTML.
var DefaultParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithASTTransformers(util.Prioritized(quoteStyler{}, 100)),
	),
)

type quoteStyler struct{}

func (quoteStyler) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	// The walker never fails.
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindBlockquote {
			n.SetAttributeString("style", []byte(QuoteStyle))
		}
		return ast.WalkContinue, nil
	})
}

// ToHTML renders markdown source to HTML with the given goldmark instance,
// or DefaultParser when nil.
func ToHTML(md goldmark.Markdown, source []byte) (string, error) {
	if md == nil {
		md = DefaultParser
	}
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return buf.String(), nil
}

// Parse builds a content model from markdown source: the HTML rendered by
// DefaultParser is processed with the given DOM to model options.
func Parse(source []byte, opts *domtomodel.Options) (*model.Document, error) {
	if len(bytes.TrimSpace(source)) == 0 {
		return nil, ErrEmptySource
	}
	out, err := ToHTML(nil, source)
	if err != nil {
		return nil, err
	}
	root := dom.NewElement("div")
	nodes, err := html.ParseFragment(bytes.NewReader([]byte(out)), root)
	if err != nil {
		return nil, fmt.Errorf("markdown: parse html: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	doc := domtomodel.DomToContentModel(root, opts, nil)
	model.Normalize(doc)
	return doc, nil
}
