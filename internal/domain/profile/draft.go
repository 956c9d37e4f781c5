package profile

import (
	"slices"

	"github.com/khoahotran/portfolio/internal/domain/i18n"
)

type ItemDraft struct {
	ID          string
	Title       i18n.Text
	Subtitle    i18n.Text
	Date        *string
	Description i18n.Text
	Images      []string
}

func (d ItemDraft) New() Item {
	it := Item{
		ID:          d.ID,
		Title:       orEmpty(d.Title),
		Subtitle:    orEmpty(d.Subtitle),
		Description: orEmpty(d.Description),
		Images:      []string{},
	}
	if d.Date != nil {
		it.Date = *d.Date
	}
	if d.Images != nil {
		it.Images = slices.Clone(d.Images)
	}
	return it
}

// Apply merges the supplied fields into it.
func (d ItemDraft) Apply(it *Item) {
	if d.Title != nil {
		it.Title = d.Title.Clone()
	}
	if d.Subtitle != nil {
		it.Subtitle = d.Subtitle.Clone()
	}
	if d.Date != nil {
		it.Date = *d.Date
	}
	if d.Description != nil {
		it.Description = d.Description.Clone()
	}
	if d.Images != nil {
		it.Images = slices.Clone(d.Images)
	}
}

// Upsert replaces the item with the same id in c, or appends it.
func (d *Data) Upsert(c Category, it Item) {
	items := d.Items(c)
	for i := range items {
		if items[i].ID == it.ID {
			out := slices.Clone(items)
			out[i] = it
			d.SetItems(c, out)
			return
		}
	}
	d.SetItems(c, append(slices.Clone(items), it))
}

func orEmpty(t i18n.Text) i18n.Text {
	if t == nil {
		return i18n.Text{}
	}
	return t.Clone()
}
