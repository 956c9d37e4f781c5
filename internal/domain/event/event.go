package event

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/khoahotran/portfolio/internal/domain/i18n"
)

type Type string

const (
	TypeStandard    Type = "standard"
	TypeCompetition Type = "competition"
	TypeJourney     Type = "journey"
)

// DateLayout is the ISO calendar date events are keyed by.
const DateLayout = "2006-01-02"

// Place is a competition rank, 1 to 3.
type Place int

var placeLabels = map[Place]i18n.Text{
	1: {i18n.EN: "1st Place", i18n.RU: "1 место", i18n.CS: "1. místo"},
	2: {i18n.EN: "2nd Place", i18n.RU: "2 место", i18n.CS: "2. místo"},
	3: {i18n.EN: "3rd Place", i18n.RU: "3 место", i18n.CS: "3. místo"},
}

func (p Place) Valid() bool {
	return p >= 1 && p <= 3
}

func (p Place) Label() i18n.Text {
	return placeLabels[p].Clone()
}

type Event struct {
	ID          string    `json:"id" bson:"_id"`
	Title       i18n.Text `json:"title" bson:"title"`
	Description i18n.Text `json:"description" bson:"description"`
	Date        string    `json:"date" bson:"date"`
	Images      []string  `json:"images" bson:"images"`
	Type        Type      `json:"type" bson:"type"`
	Place       *Place    `json:"place" bson:"place"`
	CreatedAt   int64     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64     `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

var (
	ErrEventNotFound = errors.New("event not found")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
	ErrInvalidType   = errors.New("invalid event type")
	ErrInvalidPlace  = errors.New("place must be 1, 2 or 3")
	ErrEmptyImage    = errors.New("image reference must not be empty")
	ErrIDRequired    = errors.New("event id is required")
)

func (t Type) Valid() bool {
	switch t {
	case TypeStandard, TypeCompetition, TypeJourney:
		return true
	}
	return false
}

// Normalize drops the place of any non-competition event.
func (e *Event) Normalize() {
	if e.Type != TypeCompetition {
		e.Place = nil
	}
}

func (e *Event) Validate() error {
	if e.ID == "" {
		return ErrIDRequired
	}
	if e.Title.Blank() {
		return ErrTitleRequired
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrInvalidDate
	}
	if !e.Type.Valid() {
		return ErrInvalidType
	}
	if e.Place != nil && !e.Place.Valid() {
		return ErrInvalidPlace
	}
	if err := e.Title.Validate(); err != nil {
		return fmt.Errorf("title: %w", err)
	}
	if err := e.Description.Validate(); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	for _, img := range e.Images {
		if img == "" {
			return ErrEmptyImage
		}
	}
	return nil
}

func (e *Event) Clone() *Event {
	c := *e
	c.Title = e.Title.Clone()
	c.Description = e.Description.Clone()
	c.Images = slices.Clone(e.Images)
	if e.Place != nil {
		p := *e.Place
		c.Place = &p
	}
	return &c
}

// SortByDateDesc orders newest first; equal dates fall back to CreatedAt
// (newest first) and then ID.
func SortByDateDesc(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt > b.CreatedAt
		}
		return a.ID < b.ID
	})
}

type Repository interface {
	List(ctx context.Context) ([]*Event, error)
	FindByID(ctx context.Context, id string) (*Event, error)
	Put(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}

// Decorator is implemented by repositories that wrap another one, such as a
// read cache.
type Decorator interface {
	Unwrap() Repository
}

// Primary returns the innermost repository behind any decorators.
// Read-modify-write paths read through it so they never merge into a cached
// copy.
func Primary(r Repository) Repository {
	for {
		d, ok := r.(Decorator)
		if !ok {
			return r
		}
		r = d.Unwrap()
	}
}
