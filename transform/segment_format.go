package transform

import "github.com/shodgson/contentmodel-go/model"

type selectedSegment struct {
	segment   model.Segment
	paragraph *model.Paragraph
}

// selectedSegments lists the selected segments of doc with their paragraph.
// List format holders of fully selected list items are included, with no
// paragraph.
func selectedSegments(doc *model.Document) []selectedSegment {
	var result []selectedSegment
	model.IterateSelections([]model.BlockGroup{doc}, func(_ []model.BlockGroup, _ *model.TableSelectionContext, block model.Block, segments []model.Segment) bool {
		p, _ := block.(*model.Paragraph)
		for _, s := range segments {
			result = append(result, selectedSegment{segment: s, paragraph: p})
		}
		return false
	}, &model.IterateOptions{
		ContentUnderSelectedTableCell: true,
		ContentUnderSelectedGeneral:   true,
		IncludeListFormatHolder:       true,
	})
	return result
}

// formatSegments toggles a style on the selected segments. The style is
// turned off only when every selected segment already has it. With a
// collapsed selection, the marker is formatted and its format becomes the
// pending format of fc.
func formatSegments(doc *model.Document, fc *FormatContext, hasStyle func(model.Format) bool, toggle func(f *model.Format, on bool), trimTrailingSpace bool) bool {
	segments := selectedSegments(doc)
	if len(segments) == 0 {
		return false
	}
	if trimTrailingSpace {
		var last *selectedSegment
		for i := range segments {
			if last != nil && last.paragraph != segments[i].paragraph {
				AdjustTrailingSpaceSelection(last.segment, last.paragraph)
			}
			last = &segments[i]
		}
		AdjustTrailingSpaceSelection(last.segment, last.paragraph)
	}

	on := hasStyle == nil
	for _, s := range segments {
		if hasStyle != nil && !hasStyle(*s.segment.SegmentFormat()) {
			on = true
			break
		}
	}
	for _, s := range segments {
		toggle(s.segment.SegmentFormat(), on)
	}

	if len(segments) == 1 {
		if m, ok := segments[0].segment.(*model.SelectionMarker); ok && fc != nil {
			pending := m.Format.Clone()
			fc.NewPendingFormat = &pending
		}
	}
	return true
}

// ApplySegmentFormat calls apply on the format of every selected segment.
func ApplySegmentFormat(doc *model.Document, fc *FormatContext, apply func(f *model.Format)) bool {
	return formatSegments(doc, fc, nil, func(f *model.Format, _ bool) { apply(f) }, false)
}

// ToggleBold makes the selection bold, or normal weight when all of it is
// bold already.
func ToggleBold(doc *model.Document, fc *FormatContext) bool {
	return formatSegments(doc, fc, model.Format.IsBold, func(f *model.Format, on bool) {
		if on {
			f.FontWeight = "bold"
		} else {
			f.FontWeight = "normal"
		}
	}, false)
}

// ToggleItalic makes the selection italic, or upright when all of it is
// italic already.
func ToggleItalic(doc *model.Document, fc *FormatContext) bool {
	return formatSegments(doc, fc, func(f model.Format) bool { return f.Italic }, func(f *model.Format, on bool) {
		f.Italic = on
	}, false)
}

// ToggleUnderline works as ToggleItalic for underline. Trailing spaces of
// the selection are left out.
func ToggleUnderline(doc *model.Document, fc *FormatContext) bool {
	return formatSegments(doc, fc, func(f model.Format) bool { return f.Underline }, func(f *model.Format, on bool) {
		f.Underline = on
	}, true)
}

// ToggleStrikethrough works as ToggleUnderline for strikethrough.
func ToggleStrikethrough(doc *model.Document, fc *FormatContext) bool {
	return formatSegments(doc, fc, func(f model.Format) bool { return f.Strikethrough }, func(f *model.Format, on bool) {
		f.Strikethrough = on
	}, true)
}

// ToggleSuperscript also clears subscript, the two are exclusive.
func ToggleSuperscript(doc *model.Document, fc *FormatContext) bool {
	return formatSegments(doc, fc, func(f model.Format) bool { return f.Superscript }, func(f *model.Format, on bool) {
		f.Superscript = on
		if on {
			f.Subscript = false
		}
	}, false)
}

// ToggleSubscript also clears superscript.
func ToggleSubscript(doc *model.Document, fc *FormatContext) bool {
	return formatSegments(doc, fc, func(f model.Format) bool { return f.Subscript }, func(f *model.Format, on bool) {
		f.Subscript = on
		if on {
			f.Superscript = false
		}
	}, false)
}

// SetFontSize sets the font size of the selection, such as "12pt".
func SetFontSize(doc *model.Document, fc *FormatContext, size string) bool {
	return ApplySegmentFormat(doc, fc, func(f *model.Format) { f.FontSize = size })
}

// SetFontFamily sets the font family of the selection.
func SetFontFamily(doc *model.Document, fc *FormatContext, family string) bool {
	return ApplySegmentFormat(doc, fc, func(f *model.Format) { f.FontFamily = family })
}

// SetTextColor sets the text color of the selection. An empty color
// removes it.
func SetTextColor(doc *model.Document, fc *FormatContext, color string) bool {
	return ApplySegmentFormat(doc, fc, func(f *model.Format) { f.TextColor = color })
}

// SetBackgroundColor sets the background color of the selection. An
// empty color removes it.
func SetBackgroundColor(doc *model.Document, fc *FormatContext, color string) bool {
	return ApplySegmentFormat(doc, fc, func(f *model.Format) { f.BackgroundColor = color })
}
