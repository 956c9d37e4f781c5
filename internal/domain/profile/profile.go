package profile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/khoahotran/portfolio/internal/domain/i18n"
)

type Category string

const (
	CategoryEducation Category = "education"
	CategorySkills    Category = "skills"
	CategoryPractice  Category = "practice"
)

const DefaultAvatar = "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?q=80&w=800&auto=format&fit=crop"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrItemNotFound    = errors.New("profile item not found")
	ErrInvalidCategory = errors.New("invalid profile category")
	ErrTitleRequired   = errors.New("title is required")
	ErrEmptyImage      = errors.New("image reference must not be empty")
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryEducation, CategorySkills, CategoryPractice:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Item is one entry of an education, skills or practice list. Date is free
// form ("2019 - 2023", "Present").
type Item struct {
	ID          string    `json:"id" bson:"id"`
	Title       i18n.Text `json:"title" bson:"title"`
	Subtitle    i18n.Text `json:"subtitle" bson:"subtitle"`
	Date        string    `json:"date" bson:"date"`
	Description i18n.Text `json:"description" bson:"description"`
	Images      []string  `json:"images" bson:"images"`
}

func (it *Item) Validate() error {
	if it.Title.Blank() {
		return ErrTitleRequired
	}
	for _, t := range []i18n.Text{it.Title, it.Subtitle, it.Description} {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, img := range it.Images {
		if img == "" {
			return ErrEmptyImage
		}
	}
	return nil
}

func (it Item) Clone() Item {
	it.Title = it.Title.Clone()
	it.Subtitle = it.Subtitle.Clone()
	it.Description = it.Description.Clone()
	it.Images = slices.Clone(it.Images)
	return it
}

// Data is the singleton profile document.
type Data struct {
	Photos    []string  `json:"photos" bson:"photos"`
	About     i18n.Text `json:"about" bson:"about"`
	Education []Item    `json:"education" bson:"education"`
	Skills    []Item    `json:"skills" bson:"skills"`
	Practice  []Item    `json:"practice" bson:"practice"`
}

// Default is the profile served before anything was saved.
func Default() *Data {
	return &Data{
		Photos: []string{DefaultAvatar},
		About: i18n.Text{
			i18n.EN: "Expert Full-stack Developer & UI/UX Designer specialized in building high-end digital experiences.",
			i18n.RU: "Эксперт Full-stack разработчик и UI/UX дизайнер, специализирующийся на создании высококлассных цифровых продуктов.",
			i18n.CS: "Expertní Full-stack vývojář a UI/UX designér specializující se na tvorbu špičkových digitálních zážitků.",
		},
		Education: []Item{},
		Skills:    []Item{},
		Practice:  []Item{},
	}
}

func (d *Data) Items(c Category) []Item {
	switch c {
	case CategoryEducation:
		return d.Education
	case CategorySkills:
		return d.Skills
	case CategoryPractice:
		return d.Practice
	}
	return nil
}

func (d *Data) SetItems(c Category, items []Item) {
	switch c {
	case CategoryEducation:
		d.Education = items
	case CategorySkills:
		d.Skills = items
	case CategoryPractice:
		d.Practice = items
	}
}

func (d *Data) FindItem(c Category, id string) (Item, bool) {
	for _, it := range d.Items(c) {
		if it.ID == id {
			return it.Clone(), true
		}
	}
	return Item{}, false
}

// RemoveItem reports whether an item with id existed.
func (d *Data) RemoveItem(c Category, id string) bool {
	items := d.Items(c)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	d.SetItems(c, out)
	return len(out) != len(items)
}

func (d *Data) Validate() error {
	if err := d.About.Validate(); err != nil {
		return fmt.Errorf("about: %w", err)
	}
	for _, img := range d.Photos {
		if img == "" {
			return ErrEmptyImage
		}
	}
	for _, c := range []Category{CategoryEducation, CategorySkills, CategoryPractice} {
		for i := range d.Items(c) {
			if err := d.Items(c)[i].Validate(); err != nil {
				return fmt.Errorf("%s item %q: %w", c, d.Items(c)[i].ID, err)
			}
		}
	}
	return nil
}

// Normalize replaces nil collections with empty ones so the stored document
// always has all keys.
func (d *Data) Normalize() {
	if d.Photos == nil {
		d.Photos = []string{}
	}
	if d.About == nil {
		d.About = i18n.Text{}
	}
	for _, c := range []Category{CategoryEducation, CategorySkills, CategoryPractice} {
		if d.Items(c) == nil {
			d.SetItems(c, []Item{})
		}
	}
}

func (d *Data) Clone() *Data {
	c := &Data{About: d.About.Clone()}
	c.Photos = slices.Clone(d.Photos)
	for _, cat := range []Category{CategoryEducation, CategorySkills, CategoryPractice} {
		src := d.Items(cat)
		if src == nil {
			continue
		}
		items := make([]Item, len(src))
		for i := range src {
			items[i] = src[i].Clone()
		}
		c.SetItems(cat, items)
	}
	return c
}

type Repository interface {
	// Get returns ErrProfileNotFound (wrapped) when nothing was stored yet.
	Get(ctx context.Context) (*Data, error)
	Put(ctx context.Context, d *Data) error
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
