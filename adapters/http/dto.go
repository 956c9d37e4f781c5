package http

import (
	"encoding/json"

	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
)

// Event DTOs
type EventDisplayDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PlaceLabel  string `json:"place_label,omitempty"`
}

type EventDTO struct {
	ID          string          `json:"id"`
	Title       i18n.Text       `json:"title"`
	Description i18n.Text       `json:"description"`
	Date        string          `json:"date"`
	Images      []string        `json:"images"`
	Type        event.Type      `json:"type"`
	Place       *int            `json:"place"`
	CreatedAt   int64           `json:"createdAt"`
	UpdatedAt   int64           `json:"updatedAt,omitempty"`
	Display     EventDisplayDTO `json:"display"`
}

type EventListDTO struct {
	Language i18n.Language `json:"lang"`
	Events   []EventDTO    `json:"events"`
}

// EventRequest is a partial event. Omitted fields keep their stored value;
// "place": null or 0 removes the rank.
type EventRequest struct {
	Title       i18n.Text     `json:"title"`
	Description i18n.Text     `json:"description"`
	Date        *string       `json:"date"`
	Images      []string      `json:"images"`
	Type        *string       `json:"type"`
	Place       NullablePlace `json:"place"`
}

// NullablePlace tells an omitted place from an explicit null.
type NullablePlace struct {
	Set   bool
	Value *int
}

func (p *NullablePlace) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func ToEventDTO(e *event.Event, lang i18n.Language) EventDTO {
	dto := EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Images:      e.Images,
		Type:        e.Type,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Display: EventDisplayDTO{
			Title:       e.Title.Resolve(lang),
			Description: e.Description.Resolve(lang),
		},
	}
	if dto.Images == nil {
		dto.Images = []string{}
	}
	if e.Place != nil {
		p := int(*e.Place)
		dto.Place = &p
		dto.Display.PlaceLabel = e.Place.Label().Resolve(lang)
	}
	return dto
}

func ToEventListDTO(events []*event.Event, lang i18n.Language) EventListDTO {
	dto := EventListDTO{Language: lang, Events: make([]EventDTO, len(events))}
	for i, e := range events {
		dto.Events[i] = ToEventDTO(e, lang)
	}
	return dto
}

func (req *EventRequest) ToDraft(id string) event.Draft {
	d := event.Draft{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Images:      req.Images,
	}
	if req.Type != nil {
		t := event.Type(*req.Type)
		d.Type = &t
	}
	if req.Place.Set {
		var p event.Place
		if req.Place.Value != nil {
			p = event.Place(*req.Place.Value)
		}
		d.Place = &p
	}
	return d
}

// Profile DTOs
type ItemDisplayDTO struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

type ProfileItemDTO struct {
	profile.Item
	Display ItemDisplayDTO `json:"display"`
}

type ProfileDTO struct {
	Language  i18n.Language    `json:"lang"`
	Photos    []string         `json:"photos"`
	About     i18n.Text        `json:"about"`
	Education []ProfileItemDTO `json:"education"`
	Skills    []ProfileItemDTO `json:"skills"`
	Practice  []ProfileItemDTO `json:"practice"`
	Display   struct {
		About string `json:"about"`
	} `json:"display"`
}

type ProfileItemRequest struct {
	ID          string    `json:"id"`
	Title       i18n.Text `json:"title"`
	Subtitle    i18n.Text `json:"subtitle"`
	Date        *string   `json:"date"`
	Description i18n.Text `json:"description"`
	Images      []string  `json:"images"`
}

func ToProfileItemDTO(it profile.Item, lang i18n.Language) ProfileItemDTO {
	if it.Images == nil {
		it.Images = []string{}
	}
	return ProfileItemDTO{
		Item: it,
		Display: ItemDisplayDTO{
			Title:       it.Title.Resolve(lang),
			Subtitle:    it.Subtitle.Resolve(lang),
			Description: it.Description.Resolve(lang),
		},
	}
}

func toProfileItemDTOs(items []profile.Item, lang i18n.Language) []ProfileItemDTO {
	out := make([]ProfileItemDTO, len(items))
	for i, it := range items {
		out[i] = ToProfileItemDTO(it, lang)
	}
	return out
}

func ToProfileDTO(d *profile.Data, lang i18n.Language) ProfileDTO {
	dto := ProfileDTO{
		Language:  lang,
		Photos:    d.Photos,
		About:     d.About,
		Education: toProfileItemDTOs(d.Education, lang),
		Skills:    toProfileItemDTOs(d.Skills, lang),
		Practice:  toProfileItemDTOs(d.Practice, lang),
	}
	if dto.Photos == nil {
		dto.Photos = []string{}
	}
	dto.Display.About = d.About.Resolve(lang)
	return dto
}

func (req *ProfileItemRequest) ToDraft() profile.ItemDraft {
	return profile.ItemDraft{
		ID:          req.ID,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Date:        req.Date,
		Description: req.Description,
		Images:      req.Images,
	}
}

// Social DTOs
type SocialLinksDTO struct {
	Links []social.Link `json:"links"`
}
