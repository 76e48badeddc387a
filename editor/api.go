package editor

import (
	"github.com/shodgson/contentmodel-go/model"
	"github.com/shodgson/contentmodel-go/transform"
	"golang.org/x/net/html"
)

func (e *Editor) ToggleBold() error {
	return e.FormatWithModel("toggleBold", transform.ToggleBold, nil)
}

func (e *Editor) ToggleItalic() error {
	return e.FormatWithModel("toggleItalic", transform.ToggleItalic, nil)
}

func (e *Editor) ToggleUnderline() error {
	return e.FormatWithModel("toggleUnderline", transform.ToggleUnderline, nil)
}

func (e *Editor) ToggleStrikethrough() error {
	return e.FormatWithModel("toggleStrikethrough", transform.ToggleStrikethrough, nil)
}

func (e *Editor) ToggleSuperscript() error {
	return e.FormatWithModel("toggleSuperscript", transform.ToggleSuperscript, nil)
}

func (e *Editor) ToggleSubscript() error {
	return e.FormatWithModel("toggleSubscript", transform.ToggleSubscript, nil)
}

func (e *Editor) SetFontSize(size string) error {
	return e.FormatWithModel("setFontSize", func(doc *model.Document, fc *transform.FormatContext) bool {
		return transform.SetFontSize(doc, fc, size)
	}, nil)
}

func (e *Editor) SetFontFamily(family string) error {
	return e.FormatWithModel("setFontName", func(doc *model.Document, fc *transform.FormatContext) bool {
		return transform.SetFontFamily(doc, fc, family)
	}, nil)
}

func (e *Editor) SetTextColor(color string) error {
	return e.FormatWithModel("setTextColor", func(doc *model.Document, fc *transform.FormatContext) bool {
		return transform.SetTextColor(doc, fc, color)
	}, nil)
}

func (e *Editor) SetBackgroundColor(color string) error {
	return e.FormatWithModel("setBackgroundColor", func(doc *model.Document, fc *transform.FormatContext) bool {
		return transform.SetBackgroundColor(doc, fc, color)
	}, nil)
}

// SetAlignment aligns the selected paragraphs, list items and whole tables.
func (e *Editor) SetAlignment(align string) error {
	return e.FormatWithModel("setAlignment", func(doc *model.Document, _ *transform.FormatContext) bool {
		return transform.SetAlignment(doc, align)
	}, nil)
}

// SetHeaderLevel turns the selected paragraphs into headers of level, or
// back into paragraphs for level 0.
func (e *Editor) SetHeaderLevel(level int) error {
	return e.FormatWithModel("setHeaderLevel", func(doc *model.Document, _ *transform.FormatContext) bool {
		return transform.SetHeaderLevel(doc, level)
	}, nil)
}

func (e *Editor) ToggleNumbering() error {
	return e.FormatWithModel("toggleNumbering", func(doc *model.Document, _ *transform.FormatContext) bool {
		return transform.ToggleNumbering(doc)
	}, nil)
}

func (e *Editor) ToggleBullet() error {
	return e.FormatWithModel("toggleBullet", func(doc *model.Document, _ *transform.FormatContext) bool {
		return transform.ToggleBullet(doc)
	}, nil)
}

// Delete removes the selection, or the unit next to a caret in direction.
func (e *Editor) Delete(direction transform.Direction) error {
	return e.FormatWithModel("deleteSelection", func(doc *model.Document, fc *transform.FormatContext) bool {
		result := transform.DeleteSelection(doc, &transform.DeleteOptions{
			Direction:      direction,
			OnDeleteEntity: e.onDeleteEntity,
			FormatContext:  fc,
		})
		return result.IsChanged
	}, nil)
}

// InsertEntity inserts wrapper as a new entity at the selection, replacing
// selected content, and returns it.
func (e *Editor) InsertEntity(wrapper *html.Node, entityType string, isBlock, isReadonly bool) (*model.Entity, error) {
	var entity *model.Entity
	err := e.FormatWithModel("insertEntity", func(doc *model.Document, fc *transform.FormatContext) bool {
		entity = transform.InsertEntity(doc, fc, wrapper, entityType, isBlock, isReadonly)
		return true
	}, &FormatOptions{ChangeSource: ChangeSourceInsert})
	if err != nil {
		return nil, err
	}
	return entity, nil
}
