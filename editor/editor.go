// Package editor holds an editing session over an HTML subtree and runs
// format operations on it through the content model.
package editor

import (
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/domtomodel"
	"github.com/shodgson/contentmodel-go/format"
	"github.com/shodgson/contentmodel-go/model"
	"github.com/shodgson/contentmodel-go/modeltodom"
	"github.com/shodgson/contentmodel-go/transform"
	"github.com/tdewolff/minify/v2"
	"golang.org/x/net/html"
)

// PendingFormat is a segment format waiting for the next input at
// Position, such as bold toggled on a collapsed selection.
type PendingFormat struct {
	Format   model.Format
	Position dom.Position
}

// Editor is an editing session over the children of a root element. It is
// not safe for concurrent use.
type Editor struct {
	root      *html.Node
	selection *dom.Range
	// cachedModel is the model last written back, valid until the selection
	// changes or the content differs from cachedHTML.
	cachedModel *model.Document
	cachedHTML  string

	defaultFormat  model.Format
	darkMode       bool
	transformColor func(string) string
	pending        *PendingFormat

	dispatcher EventDispatcher
	snapshots  SnapshotService
	history    *undoStack
	undoLimit  int
	focus      func()
	// onDeleteEntity decides whether Delete may remove an entity.
	onDeleteEntity func(*model.Entity, transform.EntityOperation) bool

	domToModel domtomodel.Options
	modelToDom modeltodom.Options
	sanitizer  *bluemonday.Policy
	minifier   *minify.M
	logger     *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger of the editor and of its conversions.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithEventDispatcher sets the receiver of content and entity events.
func WithEventDispatcher(d EventDispatcher) Option {
	return func(e *Editor) {
		e.dispatcher = d
	}
}

// WithSnapshotService replaces the in-memory undo history.
func WithSnapshotService(s SnapshotService) Option {
	return func(e *Editor) {
		e.snapshots = s
	}
}

// WithUndoLimit caps the in-memory undo history.
func WithUndoLimit(n int) Option {
	return func(e *Editor) {
		e.undoLimit = n
	}
}

// WithFocusHandler sets the function that moves input focus to the editor
// before each format operation.
func WithFocusHandler(focus func()) Option {
	return func(e *Editor) {
		e.focus = focus
	}
}

// WithEntityDeleteHandler sets the function asked before Delete removes an
// entity. Returning false keeps the entity.
func WithEntityDeleteHandler(fn func(entity *model.Entity, op transform.EntityOperation) bool) Option {
	return func(e *Editor) {
		e.onDeleteEntity = fn
	}
}

// WithDarkMode starts the editor in dark mode. transformColor maps colors
// to their dark counterpart; dom.DarkColor is used when it is nil.
func WithDarkMode(transformColor func(string) string) Option {
	return func(e *Editor) {
		e.darkMode = true
		e.transformColor = transformColor
	}
}

// WithDefaultFormat sets the segment format of content without style.
func WithDefaultFormat(f model.Format) Option {
	return func(e *Editor) {
		e.defaultFormat = f.Clone()
	}
}

// WithDomToModelOptions sets the options used to read the content.
func WithDomToModelOptions(opts domtomodel.Options) Option {
	return func(e *Editor) {
		e.domToModel = opts
	}
}

// WithModelToDomOptions sets the options used to write the content.
func WithModelToDomOptions(opts modeltodom.Options) Option {
	return func(e *Editor) {
		e.modelToDom = opts
	}
}

// WithSanitizer replaces the policy pasted HTML is cleaned with.
func WithSanitizer(p *bluemonday.Policy) Option {
	return func(e *Editor) {
		e.sanitizer = p
	}
}

// New creates an editor over the children of root.
func New(root *html.Node, opts ...Option) (*Editor, error) {
	if root == nil || root.Type != html.ElementNode {
		return nil, ErrNoRoot
	}
	e := &Editor{root: root}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.snapshots == nil {
		e.history = newUndoStack(e.innerHTML, e.undoLimit)
		e.snapshots = e.history
	}
	if e.sanitizer == nil {
		e.sanitizer = pastePolicy()
	}
	e.minifier = newMinifier()
	if e.darkMode {
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			dom.TransformToDarkColor(c)
		}
	}
	return e, nil
}

// Root returns the element the editor edits the children of.
func (e *Editor) Root() *html.Node {
	return e.root
}

// Selection returns the current selection, or nil.
func (e *Editor) Selection() *dom.Range {
	return e.selection
}

// Select moves the selection. The cached model is dropped, and so is a
// pending format that isn't at the new caret.
func (e *Editor) Select(rng *dom.Range) {
	e.selection = rng
	e.cachedModel = nil
	if e.pending == nil {
		return
	}
	if rng == nil || !rng.Collapsed() || rng.Start != e.pending.Position {
		e.pending = nil
	}
}

// InvalidateCache drops the cached model, so that the next operation reads
// the content again.
func (e *Editor) InvalidateCache() {
	e.cachedModel = nil
}

// PendingFormat returns the pending format, or nil.
func (e *Editor) PendingFormat() *PendingFormat {
	return e.pending
}

// SetPendingFormat records f to be used by the next input at pos.
func (e *Editor) SetPendingFormat(f model.Format, pos dom.Position) {
	e.pending = &PendingFormat{Format: f.Clone(), Position: pos}
}

// DefaultFormat returns the segment format of content without style.
func (e *Editor) DefaultFormat() model.Format {
	return e.defaultFormat.Clone()
}

// IsDarkMode reports whether colors are shown in dark mode.
func (e *Editor) IsDarkMode() bool {
	return e.darkMode
}

// SetDarkMode switches the content colors between light and dark mode.
func (e *Editor) SetDarkMode(on bool) {
	if on == e.darkMode {
		return
	}
	e.darkMode = on
	for c := e.root.FirstChild; c != nil; c = c.NextSibling {
		if on {
			dom.TransformToDarkColor(c)
		} else {
			dom.TransformToLightColor(c)
		}
	}
	e.cachedModel = nil
	e.logger.Debug("dark mode changed", "darkMode", on)
}

// TransformToDarkColor transforms the colors of node when the editor is in
// dark mode, for content about to be inserted.
func (e *Editor) TransformToDarkColor(node *html.Node) {
	if e.darkMode && node != nil {
		dom.TransformToDarkColor(node)
	}
}

func (e *Editor) env() *format.Env {
	return &format.Env{IsDarkMode: e.darkMode, TransformColor: e.transformColor}
}

func (e *Editor) dispatch(event Event) {
	if e.dispatcher != nil {
		e.dispatcher.Dispatch(event)
	}
}
