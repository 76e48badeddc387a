package editor

import (
	"bytes"
	"fmt"
	"strings"

	gonotion "github.com/dstotijn/go-notion"
	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/markdown"
	"github.com/shodgson/contentmodel-go/notion"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
)

func newMinifier() *minify.M {
	m := minify.New()
	m.Add("text/html", &mhtml.Minifier{KeepEndTags: true, KeepQuotes: true, KeepDefaultAttrVals: true})
	return m
}

// GetContent returns the content as HTML with light mode colors. With
// minified set, insignificant whitespace and markup are stripped.
func (e *Editor) GetContent(minified bool) (string, error) {
	root := e.root
	if e.darkMode {
		root = cloneTree(e.root)
		dom.TransformToLightColor(root)
	}
	out, err := renderChildren(root)
	if err != nil {
		return "", err
	}
	if !minified {
		return out, nil
	}
	out, err = e.minifier.String("text/html", out)
	if err != nil {
		return "", fmt.Errorf("editor: minify content: %w", err)
	}
	return out, nil
}

// GetMarkdown returns the content as CommonMark.
func (e *Editor) GetMarkdown(opts ...markdown.Options) string {
	return markdown.DefaultSerializer.Serialize(e.CreateContentModel(nil), opts...)
}

// GetNotionBlocks returns the content as blocks of the Notion API.
func (e *Editor) GetNotionBlocks() []gonotion.Block {
	return notion.ToBlocks(e.CreateContentModel(nil))
}

// SetContent replaces the content with an HTML fragment. The selection
// and the undo history are left alone.
func (e *Editor) SetContent(fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), e.root)
	if err != nil {
		return fmt.Errorf("editor: parse content: %w", err)
	}
	dom.RemoveChildren(e.root)
	for _, n := range nodes {
		e.root.AppendChild(n)
		e.TransformToDarkColor(n)
	}
	e.Select(nil)
	return nil
}

// Undo restores the content as it was before the last edit.
func (e *Editor) Undo() error {
	if e.history == nil {
		return ErrUndoUnavailable
	}
	snapshot, ok := e.history.stepBack()
	if !ok {
		return ErrNothingToUndo
	}
	return e.restore(snapshot, ChangeSourceUndo)
}

// Redo reapplies the last undone edit.
func (e *Editor) Redo() error {
	if e.history == nil {
		return ErrUndoUnavailable
	}
	snapshot, ok := e.history.stepForward()
	if !ok {
		return ErrNothingToRedo
	}
	return e.restore(snapshot, ChangeSourceRedo)
}

// restore puts back snapshot content, which already carries the colors of
// the current mode.
func (e *Editor) restore(snapshot Snapshot, source string) error {
	nodes, err := html.ParseFragment(strings.NewReader(snapshot.HTML), e.root)
	if err != nil {
		return fmt.Errorf("editor: restore snapshot: %w", err)
	}
	dom.RemoveChildren(e.root)
	for _, n := range nodes {
		e.root.AppendChild(n)
	}
	e.Select(nil)
	e.logger.Debug("snapshot restored", "source", source, "metadata", snapshot.Metadata)
	e.dispatch(&ContentChangedEvent{Source: source, Data: snapshot.Metadata})
	return nil
}

// innerHTML serializes the content for the undo history.
func (e *Editor) innerHTML() string {
	out, err := renderChildren(e.root)
	if err != nil {
		e.logger.Warn("cannot serialize content", "error", err)
	}
	return out
}

func renderChildren(n *html.Node) (string, error) {
	buf := new(bytes.Buffer)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(buf, c); err != nil {
			return "", fmt.Errorf("editor: render content: %w", err)
		}
	}
	return buf.String(), nil
}

func cloneTree(n *html.Node) *html.Node {
	clone := dom.CloneElement(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(cloneTree(c))
	}
	return clone
}
