package model

import (
	"golang.org/x/net/html"
)

// BlockType is the discriminant of a Block.
type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockTable
	BlockGroupBlock
	BlockDivider
	BlockEntity
)

var blockTypeNames = [...]string{"Paragraph", "Table", "BlockGroup", "Divider", "Entity"}

func (t BlockType) String() string { return blockTypeNames[t] }

// BlockGroupType is the discriminant of a BlockGroup.
type BlockGroupType int

const (
	GroupDocument BlockGroupType = iota
	GroupGeneral
	GroupListItem
	GroupQuote
	GroupTableCell
)

var groupTypeNames = [...]string{"Document", "General", "ListItem", "Quote", "TableCell"}

func (t BlockGroupType) String() string { return groupTypeNames[t] }

// SegmentType is the discriminant of a Segment.
type SegmentType int

const (
	SegmentText SegmentType = iota
	SegmentSelectionMarker
	SegmentBr
	SegmentImage
	SegmentGeneral
	SegmentEntity
)

var segmentTypeNames = [...]string{"Text", "SelectionMarker", "Br", "Image", "General", "Entity"}

func (t SegmentType) String() string { return segmentTypeNames[t] }

// ListType is the kind of a list level.
type ListType string

const (
	ListOL ListType = "OL"
	ListUL ListType = "UL"
)

// Selectable is implemented by every block and segment.
type Selectable interface {
	Selected() bool
	SetSelected(bool)
}

// Block is a block level node of the content model. The set of
// implementations is closed.
type Block interface {
	Selectable
	BlockType() BlockType
	BlockFormat() *Format
	isBlock()
}

// Segment is an inline node of a paragraph. The set of implementations is
// closed.
type Segment interface {
	Selectable
	SegmentType() SegmentType
	SegmentFormat() *Format
	isSegment()
}

// BlockGroup is a node owning an ordered list of blocks.
type BlockGroup interface {
	BlockGroupType() BlockGroupType
	Children() *[]Block
}

// Document is the root block group of a content model.
type Document struct {
	Blocks []Block
	// Format is the default segment format of the editing surface.
	Format Format
	// Doc is the owner document new nodes are created for.
	Doc *html.Node
}

func (d *Document) BlockGroupType() BlockGroupType { return GroupDocument }
func (d *Document) Children() *[]Block             { return &d.Blocks }

// Paragraph is an ordered list of segments.
type Paragraph struct {
	IsSelected bool
	Segments   []Segment
	Format     Format
	// IsImplicit is set when the paragraph has no block element of its own.
	IsImplicit bool
	// HeaderLevel is 1 to 6 for headings, 0 otherwise.
	HeaderLevel int
}

func (*Paragraph) BlockType() BlockType   { return BlockParagraph }
func (p *Paragraph) BlockFormat() *Format { return &p.Format }
func (*Paragraph) isBlock()               {}

// Table is a grid of cells. A spanned cell is represented by a cell with
// SpanLeft or SpanAbove set.
type Table struct {
	IsSelected bool
	Cells      [][]*TableCell
	Widths     []float64
	Heights    []float64
	Format     Format
}

func (*Table) BlockType() BlockType   { return BlockTable }
func (t *Table) BlockFormat() *Format { return &t.Format }
func (*Table) isBlock()               {}

// TableCell is a block group inside a table.
type TableCell struct {
	IsSelected bool
	Blocks     []Block
	Format     Format
	SpanLeft   bool
	SpanAbove  bool
	IsHeader   bool
}

func (*TableCell) BlockGroupType() BlockGroupType { return GroupTableCell }
func (c *TableCell) Children() *[]Block           { return &c.Blocks }

// GeneralBlock keeps an element that has no dedicated model type.
type GeneralBlock struct {
	IsSelected bool
	Blocks     []Block
	Format     Format
	Element    *html.Node
}

func (*GeneralBlock) BlockType() BlockType           { return BlockGroupBlock }
func (g *GeneralBlock) BlockFormat() *Format         { return &g.Format }
func (*GeneralBlock) BlockGroupType() BlockGroupType { return GroupGeneral }
func (g *GeneralBlock) Children() *[]Block           { return &g.Blocks }
func (*GeneralBlock) isBlock()                       {}

// ListLevel describes one nesting level of a list item.
type ListLevel struct {
	ListType            ListType
	StartNumberOverride int
	Format              Format
}

// ListItem is a block group rendered as an LI.
type ListItem struct {
	IsSelected bool
	Blocks     []Block
	Levels     []ListLevel
	Format     Format
	// FormatHolder carries the segment format of the list marker.
	FormatHolder *SelectionMarker
}

func (*ListItem) BlockType() BlockType           { return BlockGroupBlock }
func (l *ListItem) BlockFormat() *Format         { return &l.Format }
func (*ListItem) BlockGroupType() BlockGroupType { return GroupListItem }
func (l *ListItem) Children() *[]Block           { return &l.Blocks }
func (*ListItem) isBlock()                       {}

// Quote is a block group rendered as a BLOCKQUOTE.
type Quote struct {
	IsSelected bool
	Blocks     []Block
	Format     Format
	// QuoteSegmentFormat is the inline format of text directly under the quote.
	QuoteSegmentFormat Format
}

func (*Quote) BlockType() BlockType           { return BlockGroupBlock }
func (q *Quote) BlockFormat() *Format         { return &q.Format }
func (*Quote) BlockGroupType() BlockGroupType { return GroupQuote }
func (q *Quote) Children() *[]Block           { return &q.Blocks }
func (*Quote) isBlock()                       {}

// Divider is a horizontal rule or an empty spacing div.
type Divider struct {
	IsSelected bool
	TagName    string
	Format     Format
}

func (*Divider) BlockType() BlockType   { return BlockDivider }
func (d *Divider) BlockFormat() *Format { return &d.Format }
func (*Divider) isBlock()               {}

// Entity wraps an opaque element. It is valid both as a block and as a
// segment; its content is never parsed.
type Entity struct {
	IsSelected bool
	Wrapper    *html.Node
	ID         string
	Type       string
	IsReadonly bool
	Format     Format
}

func (*Entity) BlockType() BlockType     { return BlockEntity }
func (e *Entity) BlockFormat() *Format   { return &e.Format }
func (*Entity) SegmentType() SegmentType { return SegmentEntity }
func (e *Entity) SegmentFormat() *Format { return &e.Format }
func (*Entity) isBlock()                 {}
func (*Entity) isSegment()               {}

// Text is a run of text sharing one format.
type Text struct {
	IsSelected bool
	Text       string
	Format     Format
	Link       Link
}

func (*Text) SegmentType() SegmentType { return SegmentText }
func (t *Text) SegmentFormat() *Format { return &t.Format }
func (*Text) isSegment()               {}

// SelectionMarker is a zero width segment marking a collapsed caret.
type SelectionMarker struct {
	IsSelected bool
	Format     Format
}

func (*SelectionMarker) SegmentType() SegmentType { return SegmentSelectionMarker }
func (m *SelectionMarker) SegmentFormat() *Format { return &m.Format }
func (*SelectionMarker) isSegment()               {}

// Br is a line break.
type Br struct {
	IsSelected bool
	Format     Format
}

func (*Br) SegmentType() SegmentType { return SegmentBr }
func (b *Br) SegmentFormat() *Format { return &b.Format }
func (*Br) isSegment()               {}

// Image is an inline image.
type Image struct {
	IsSelected bool
	Src        string
	Alt        string
	Title      string
	Format     Format
	Link       Link
}

func (*Image) SegmentType() SegmentType { return SegmentImage }
func (i *Image) SegmentFormat() *Format { return &i.Format }
func (*Image) isSegment()               {}

// GeneralSegment keeps an inline element that has no dedicated model type.
// Its content is parsed into blocks.
type GeneralSegment struct {
	IsSelected bool
	Blocks     []Block
	Format     Format
	Element    *html.Node
}

func (*GeneralSegment) SegmentType() SegmentType       { return SegmentGeneral }
func (g *GeneralSegment) SegmentFormat() *Format       { return &g.Format }
func (*GeneralSegment) BlockGroupType() BlockGroupType { return GroupGeneral }
func (g *GeneralSegment) Children() *[]Block           { return &g.Blocks }
func (*GeneralSegment) isSegment()                     {}

func (p *Paragraph) Selected() bool       { return p.IsSelected }
func (p *Paragraph) SetSelected(sel bool) { p.IsSelected = sel }

func (t *Table) Selected() bool       { return t.IsSelected }
func (t *Table) SetSelected(sel bool) { t.IsSelected = sel }

func (t *TableCell) Selected() bool       { return t.IsSelected }
func (t *TableCell) SetSelected(sel bool) { t.IsSelected = sel }

func (g *GeneralBlock) Selected() bool       { return g.IsSelected }
func (g *GeneralBlock) SetSelected(sel bool) { g.IsSelected = sel }

func (l *ListItem) Selected() bool       { return l.IsSelected }
func (l *ListItem) SetSelected(sel bool) { l.IsSelected = sel }

func (q *Quote) Selected() bool       { return q.IsSelected }
func (q *Quote) SetSelected(sel bool) { q.IsSelected = sel }

func (d *Divider) Selected() bool       { return d.IsSelected }
func (d *Divider) SetSelected(sel bool) { d.IsSelected = sel }

func (e *Entity) Selected() bool       { return e.IsSelected }
func (e *Entity) SetSelected(sel bool) { e.IsSelected = sel }

func (t *Text) Selected() bool       { return t.IsSelected }
func (t *Text) SetSelected(sel bool) { t.IsSelected = sel }

func (s *SelectionMarker) Selected() bool       { return s.IsSelected }
func (s *SelectionMarker) SetSelected(sel bool) { s.IsSelected = sel }

func (b *Br) Selected() bool       { return b.IsSelected }
func (b *Br) SetSelected(sel bool) { b.IsSelected = sel }

func (i *Image) Selected() bool       { return i.IsSelected }
func (i *Image) SetSelected(sel bool) { i.IsSelected = sel }

func (g *GeneralSegment) Selected() bool       { return g.IsSelected }
func (g *GeneralSegment) SetSelected(sel bool) { g.IsSelected = sel }
