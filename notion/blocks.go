// Package notion converts a content model to the blocks of the Notion API.
package notion

import (
	"strings"

	gonotion "github.com/dstotijn/go-notion"
	"github.com/rivo/uniseg"
	"github.com/shodgson/contentmodel-go/dom"
	"github.com/shodgson/contentmodel-go/model"
)

// MaxTextLength is the longest content the API accepts for a rich text
// object. Longer texts are split.
const MaxTextLength = 2000

// CodeLanguage is the language of code blocks.
var CodeLanguage = "plain text"

// NewPageParams returns the parameters creating a page with the given
// title and the blocks of doc, under the parent page.
func NewPageParams(parentPageID, title string, doc *model.Document) gonotion.CreatePageParams {
	return gonotion.CreatePageParams{
		ParentType: gonotion.ParentTypePage,
		ParentID:   parentPageID,
		Title:      []gonotion.RichText{textRichText(title)},
		Children:   ToBlocks(doc),
	}
}

// ToBlocks converts the blocks of doc. List items become nested list
// blocks following their levels, images become image blocks after the
// text of their paragraph.
func ToBlocks(doc *model.Document) []gonotion.Block {
	return blocks(doc.Blocks)
}

func blocks(source []model.Block) []gonotion.Block {
	var result []gonotion.Block
	// lists[d] receives the list items of depth d.
	var lists []*[]gonotion.Block
	for _, b := range source {
		item, ok := b.(*model.ListItem)
		if !ok || len(item.Levels) == 0 {
			lists = nil
			result = append(result, block(b)...)
			continue
		}
		if len(lists) == 0 {
			lists = append(lists, &result)
		}
		depth := min(len(item.Levels)-1, len(lists)-1)
		lists = lists[:depth+1]
		converted, children := listItem(item)
		*lists[depth] = append(*lists[depth], converted)
		lists = append(lists, children)
	}
	return result
}

func block(b model.Block) []gonotion.Block {
	switch b := b.(type) {
	case *model.Paragraph:
		return paragraph(b)
	case *model.Quote:
		quote := &gonotion.QuoteBlock{}
		quote.RichText, quote.Children = splitLead(blocks(b.Blocks))
		return []gonotion.Block{quote}
	case *model.Table:
		return table(b)
	case *model.Divider:
		if b.TagName == "hr" {
			return []gonotion.Block{&gonotion.DividerBlock{}}
		}
	case *model.Entity:
		if b.Wrapper != nil {
			if text := strings.TrimSpace(dom.TextContent(b.Wrapper)); text != "" {
				return []gonotion.Block{&gonotion.ParagraphBlock{RichText: splitRichText(textRichText(text))}}
			}
		}
	case *model.GeneralBlock:
		return blocks(b.Blocks)
	case *model.ListItem:
		return blocks(b.Blocks)
	}
	return nil
}

func paragraph(p *model.Paragraph) []gonotion.Block {
	rich := RichText(p.Segments)
	images := imageBlocks(p.Segments)
	var text gonotion.Block
	switch {
	case strings.HasPrefix(p.Format.WhiteSpace, "pre"):
		content := strings.TrimSuffix(PlainText(p.Segments), "\n")
		language := CodeLanguage
		text = &gonotion.CodeBlock{
			RichText: splitRichText(textRichText(content)),
			Language: &language,
		}
	case len(rich) == 0:
		if p.IsImplicit || len(images) > 0 {
			return images
		}
		text = &gonotion.ParagraphBlock{RichText: []gonotion.RichText{}}
	case p.HeaderLevel == 1:
		text = &gonotion.Heading1Block{RichText: rich}
	case p.HeaderLevel == 2:
		text = &gonotion.Heading2Block{RichText: rich}
	case p.HeaderLevel >= 3:
		text = &gonotion.Heading3Block{RichText: rich}
	default:
		text = &gonotion.ParagraphBlock{RichText: rich}
	}
	return append([]gonotion.Block{text}, images...)
}

// listItem returns the block of item, with the address of its children
// for the nested items that follow.
func listItem(item *model.ListItem) (gonotion.Block, *[]gonotion.Block) {
	rich, children := splitLead(blocks(item.Blocks))
	if item.Levels[len(item.Levels)-1].ListType == model.ListOL {
		b := &gonotion.NumberedListItemBlock{RichText: rich, Children: children}
		return b, &b.Children
	}
	b := &gonotion.BulletedListItemBlock{RichText: rich, Children: children}
	return b, &b.Children
}

// splitLead takes the text of a leading paragraph block, for blocks
// holding both text and children.
func splitLead(children []gonotion.Block) ([]gonotion.RichText, []gonotion.Block) {
	if len(children) > 0 {
		if p, ok := children[0].(*gonotion.ParagraphBlock); ok && len(p.Children) == 0 {
			if len(children) == 1 {
				return p.RichText, nil
			}
			return p.RichText, children[1:]
		}
	}
	return []gonotion.RichText{}, children
}

func table(t *model.Table) []gonotion.Block {
	width := 0
	for _, row := range t.Cells {
		width = max(width, len(row))
	}
	if width == 0 {
		return nil
	}
	result := &gonotion.TableBlock{
		TableWidth:      width,
		HasColumnHeader: len(t.Cells) > 0,
	}
	for r, row := range t.Cells {
		cells := make([][]gonotion.RichText, width)
		for c := range cells {
			cells[c] = []gonotion.RichText{}
			if c >= len(row) || row[c] == nil || row[c].SpanLeft || row[c].SpanAbove {
				continue
			}
			if r == 0 && !row[c].IsHeader {
				result.HasColumnHeader = false
			}
			cells[c] = cellText(row[c].Blocks)
		}
		result.Children = append(result.Children, &gonotion.TableRowBlock{Cells: cells})
	}
	return []gonotion.Block{result}
}

// cellText joins the text of the paragraphs of a cell with new lines.
func cellText(source []model.Block) []gonotion.RichText {
	result := []gonotion.RichText{}
	for _, b := range source {
		p, ok := b.(*model.Paragraph)
		if !ok {
			continue
		}
		rich := RichText(p.Segments)
		if len(rich) == 0 {
			continue
		}
		if len(result) > 0 {
			result = append(result, textRichText("\n"))
		}
		result = append(result, rich...)
	}
	return result
}

func imageBlocks(segments []model.Segment) []gonotion.Block {
	var result []gonotion.Block
	for _, s := range flatten(segments) {
		img, ok := s.(*model.Image)
		if !ok || !isExternal(img.Src) {
			continue
		}
		b := &gonotion.ImageBlock{
			Type:     gonotion.FileTypeExternal,
			External: &gonotion.FileExternal{URL: img.Src},
		}
		if img.Alt != "" {
			b.Caption = []gonotion.RichText{textRichText(img.Alt)}
		}
		result = append(result, b)
	}
	return result
}

func isExternal(src string) bool {
	return strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "http://")
}

// run is a piece of text with its annotations, before it is split to
// the length limit.
type run struct {
	text        string
	annotations gonotion.Annotations
	link        string
}

// RichText converts inline segments. Consecutive texts with the same
// annotations and link are merged, line breaks become new lines.
func RichText(segments []model.Segment) []gonotion.RichText {
	var runs []run
	add := func(r run) {
		if n := len(runs); n > 0 && runs[n-1].annotations == r.annotations && runs[n-1].link == r.link {
			runs[n-1].text += r.text
			return
		}
		runs = append(runs, r)
	}
	for _, s := range flatten(segments) {
		switch s := s.(type) {
		case *model.Text:
			if s.Text != "" {
				add(run{text: s.Text, annotations: annotations(&s.Format), link: s.Link.Href})
			}
		case *model.Br:
			if len(runs) > 0 {
				runs[len(runs)-1].text += "\n"
			} else {
				add(run{text: "\n"})
			}
		case *model.Entity:
			if s.Wrapper != nil {
				if text := dom.TextContent(s.Wrapper); text != "" {
					add(run{text: text, annotations: annotations(&s.Format)})
				}
			}
		}
	}

	result := []gonotion.RichText{}
	for _, r := range runs {
		rich := textRichText(r.text)
		if r.annotations != (gonotion.Annotations{}) {
			a := r.annotations
			rich.Annotations = &a
		}
		if r.link != "" {
			rich.Text.Link = &gonotion.Link{URL: r.link}
		}
		result = append(result, splitRichText(rich)...)
	}
	return result
}

// PlainText joins the text of segments, with a new line for each line
// break.
func PlainText(segments []model.Segment) string {
	var b strings.Builder
	for _, s := range flatten(segments) {
		switch s := s.(type) {
		case *model.Text:
			b.WriteString(s.Text)
		case *model.Br:
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func annotations(f *model.Format) gonotion.Annotations {
	return gonotion.Annotations{
		Bold:          f.IsBold(),
		Italic:        f.Italic,
		Strikethrough: f.Strikethrough,
		Underline:     f.Underline,
		Code:          strings.Contains(strings.ToLower(f.FontFamily), "monospace"),
	}
}

func textRichText(text string) gonotion.RichText {
	return gonotion.RichText{
		Type:      gonotion.RichTextTypeText,
		PlainText: text,
		Text:      &gonotion.Text{Content: text},
	}
}

// splitRichText cuts rich text into pieces of at most MaxTextLength
// characters, between grapheme clusters.
func splitRichText(rich gonotion.RichText) []gonotion.RichText {
	content := rich.Text.Content
	if len([]rune(content)) <= MaxTextLength {
		return []gonotion.RichText{rich}
	}
	var result []gonotion.RichText
	var chunk strings.Builder
	length := 0
	flush := func() {
		piece := rich
		text := *rich.Text
		text.Content = chunk.String()
		piece.Text = &text
		piece.PlainText = text.Content
		result = append(result, piece)
		chunk.Reset()
		length = 0
	}
	g := uniseg.NewGraphemes(content)
	for g.Next() {
		cluster := g.Str()
		n := len(g.Runes())
		if length > 0 && length+n > MaxTextLength {
			flush()
		}
		chunk.WriteString(cluster)
		length += n
	}
	if length > 0 {
		flush()
	}
	return result
}

// flatten drops selection markers and replaces general segments with the
// segments of their paragraphs.
func flatten(segments []model.Segment) []model.Segment {
	result := make([]model.Segment, 0, len(segments))
	for _, s := range segments {
		switch s := s.(type) {
		case *model.SelectionMarker:
		case *model.GeneralSegment:
			for _, b := range s.Blocks {
				if p, ok := b.(*model.Paragraph); ok {
					result = append(result, flatten(p.Segments)...)
				}
			}
		default:
			result = append(result, s)
		}
	}
	return result
}
