package transform

import (
	"github.com/shodgson/contentmodel-go/model"
	"github.com/shodgson/contentmodel-go/test/builder"
)

var (
	doc      = builder.Doc
	p        = builder.P
	implicit = builder.Implicit
	text     = builder.Text
	marker   = builder.Marker
	br       = builder.Br
	img      = builder.Img
	hr       = builder.Hr
	li       = builder.Li
	quote    = builder.Quote
	table    = builder.Table
	row      = builder.Row
	cell     = builder.Cell
	entity   = builder.Entity
	sel      = builder.Sel
	ol       = builder.Ol
	ul       = builder.Ul
)

func size(s string) model.Format {
	return model.Format{FontSize: s}
}

func path(groups ...model.BlockGroup) []model.BlockGroup {
	return groups
}

func segments(segs ...model.Segment) []model.Segment {
	return segs
}
