package transform

import "github.com/shodgson/contentmodel-go/model"

// ToggleNumbering turns the selected paragraphs into a numbered list, or
// back into paragraphs when all of them already are.
func ToggleNumbering(doc *model.Document) bool {
	return setListType(doc, model.ListOL)
}

// ToggleBullet is ToggleNumbering for bulleted lists.
func ToggleBullet(doc *model.Document) bool {
	return setListType(doc, model.ListUL)
}

func setListType(doc *model.Document, listType model.ListType) bool {
	paragraphs := model.GetSelectedParagraphs(doc)
	if len(paragraphs) == 0 {
		return false
	}

	off := true
	for _, sp := range paragraphs {
		item := model.ClosestListItem(sp.Path)
		if item == nil || item.Levels[len(item.Levels)-1].ListType != listType {
			off = false
			break
		}
	}

	done := map[*model.ListItem]bool{}
	for _, sp := range paragraphs {
		item := model.ClosestListItem(sp.Path)
		switch {
		case item != nil && done[item]:
		case off:
			unwrapListItem(sp.Path, item)
		case item != nil:
			item.Levels[len(item.Levels)-1].ListType = listType
			item.Levels[len(item.Levels)-1].StartNumberOverride = 0
		default:
			wrapInListItem(sp.Path[0], sp.Paragraph, listType)
		}
		if item != nil {
			done[item] = true
		}
	}
	return true
}

// unwrapListItem replaces item with its blocks in the group holding it.
func unwrapListItem(path []model.BlockGroup, item *model.ListItem) {
	for k, g := range path {
		if g != model.BlockGroup(item) || k+1 >= len(path) {
			continue
		}
		parent := path[k+1]
		i := model.IndexOfBlock(parent, item)
		if i < 0 {
			return
		}
		for _, b := range item.Blocks {
			if p, ok := b.(*model.Paragraph); ok {
				p.IsImplicit = false
				if p.Format.TextAlign == "" {
					p.Format.TextAlign = item.Format.TextAlign
				}
			}
		}
		blocks := parent.Children()
		*blocks = append((*blocks)[:i], append(append([]model.Block{}, item.Blocks...), (*blocks)[i+1:]...)...)
		return
	}
}

func wrapInListItem(group model.BlockGroup, p *model.Paragraph, listType model.ListType) {
	i := model.IndexOfBlock(group, p)
	if i < 0 {
		return
	}
	var markerFormat model.Format
	for _, s := range p.Segments {
		if t, ok := s.(*model.Text); ok {
			markerFormat = model.Format{FontFamily: t.Format.FontFamily, FontSize: t.Format.FontSize, TextColor: t.Format.TextColor}
			break
		}
	}
	item := model.NewListItem([]model.ListLevel{model.NewListLevel(listType, model.Format{})}, markerFormat)
	item.Format.TextAlign = p.Format.TextAlign
	p.IsImplicit = true
	p.Format.TextAlign = ""
	item.Blocks = []model.Block{p}
	(*group.Children())[i] = item
}
