package editor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/domtomodel"
	"github.com/shodgson/contentmodel-go/format"
	"github.com/shodgson/contentmodel-go/model"
	"github.com/shodgson/contentmodel-go/transform"
	"golang.org/x/net/html"
)

var (
	colorRegexp  = regexp.MustCompile(`^(#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|rgba?\(\s*\d+\s*,\s*\d+\s*,\s*\d+\s*(,\s*[\d.]+\s*)?\)|[a-zA-Z]+)$`)
	lengthRegexp = regexp.MustCompile(`^(-?[\d.]+(px|em|rem|pt|%|in|cm|mm)?|auto|inherit|initial)$`)
	fontRegexp   = regexp.MustCompile(`^[\w\s,"'-]+$`)
	weightRegexp = regexp.MustCompile(`^(normal|bold|bolder|lighter|[1-9]00)$`)
	borderRegexp = regexp.MustCompile(`^[\w\s#().,%-]+$`)
)

// pastePolicy keeps the markup and the styles the format handlers read.
func pastePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("span", "div", "font", "u", "s", "strike", "sub", "sup", "hr")
	p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("td", "th")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
	p.AllowAttrs("width", "height").Matching(bluemonday.NumberOrPercent).OnElements("img", "td", "th", "col", "table")
	p.AllowAttrs("dir").Matching(bluemonday.Direction).Globally()

	p.AllowStyles("color", "background-color").Matching(colorRegexp).Globally()
	p.AllowStyles("font-size", "line-height", "width", "height").Matching(lengthRegexp).Globally()
	p.AllowStyles("margin-top", "margin-right", "margin-bottom", "margin-left").Matching(lengthRegexp).Globally()
	p.AllowStyles("padding-top", "padding-right", "padding-bottom", "padding-left").Matching(lengthRegexp).Globally()
	p.AllowStyles("font-family").Matching(fontRegexp).Globally()
	p.AllowStyles("font-weight").Matching(weightRegexp).Globally()
	p.AllowStyles("font-style").MatchingEnum("normal", "italic", "oblique").Globally()
	p.AllowStyles("text-decoration").MatchingEnum("none", "underline", "line-through", "underline line-through").Globally()
	p.AllowStyles("vertical-align").MatchingEnum("baseline", "sub", "super", "top", "middle", "bottom").Globally()
	p.AllowStyles("text-align").Matching(bluemonday.CellAlign).Globally()
	p.AllowStyles("direction").MatchingEnum("ltr", "rtl").Globally()
	p.AllowStyles("white-space").MatchingEnum("normal", "pre", "pre-wrap", "pre-line", "nowrap").Globally()
	p.AllowStyles("list-style-type").MatchingEnum("disc", "circle", "square", "decimal", "lower-alpha", "upper-alpha", "lower-roman", "upper-roman").OnElements("ol", "ul", "li")
	p.AllowStyles("border-top", "border-right", "border-bottom", "border-left", "border").Matching(borderRegexp).Globally()
	return p
}

// Paste sanitizes an HTML fragment and merges it at the selection,
// replacing selected content.
func (e *Editor) Paste(fragment string) error {
	clean := e.sanitizer.Sanitize(fragment)
	container := dom.NewElement("div")
	nodes, err := html.ParseFragment(strings.NewReader(clean), container)
	if err != nil {
		return fmt.Errorf("editor: parse pasted html: %w", err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	opts := e.domToModel
	opts.Env = &format.Env{}
	if opts.Logger == nil {
		opts.Logger = e.logger
	}
	source := domtomodel.DomToContentModel(container, &opts, nil)

	return e.FormatWithModel("paste", func(doc *model.Document, fc *transform.FormatContext) bool {
		return transform.MergeModel(doc, source, fc, &transform.MergeOptions{MergeFormat: true}) != nil
	}, &FormatOptions{
		ChangeSource:  ChangeSourcePaste,
		GetChangeData: func() any { return clean },
	})
}
