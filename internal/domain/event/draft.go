package event

import (
	"slices"

	"github.com/khoahotran/portfolio/internal/domain/i18n"
)

// Draft is a partial event as submitted by the editor. Nil fields are left
// untouched on merge. A Place of 0 clears the stored place.
type Draft struct {
	ID          string
	Title       i18n.Text
	Description i18n.Text
	Date        *string
	Images      []string
	Type        *Type
	Place       *Place
}

// New builds a complete event from the draft. Identity and timestamps are
// assigned by the caller.
func (d Draft) New() *Event {
	e := &Event{
		ID:          d.ID,
		Title:       d.Title.Clone(),
		Description: d.Description.Clone(),
		Images:      []string{},
		Type:        TypeStandard,
	}
	if e.Title == nil {
		e.Title = i18n.Text{}
	}
	if e.Description == nil {
		e.Description = i18n.Text{}
	}
	if d.Date != nil {
		e.Date = *d.Date
	}
	if d.Images != nil {
		e.Images = slices.Clone(d.Images)
	}
	if d.Type != nil {
		e.Type = *d.Type
	}
	if d.Place != nil && *d.Place != 0 {
		p := *d.Place
		e.Place = &p
	}
	return e
}

// MergeInto applies the supplied fields on top of e.
func (d Draft) MergeInto(e *Event) {
	if d.Title != nil {
		e.Title = d.Title.Clone()
	}
	if d.Description != nil {
		e.Description = d.Description.Clone()
	}
	if d.Date != nil {
		e.Date = *d.Date
	}
	if d.Images != nil {
		e.Images = slices.Clone(d.Images)
	}
	if d.Type != nil {
		e.Type = *d.Type
	}
	if d.Place != nil {
		if *d.Place == 0 {
			e.Place = nil
		} else {
			p := *d.Place
			e.Place = &p
		}
	}
}
