package social

import (
	"context"
	"errors"
	"slices"
	"strings"
)

type Link struct {
	ID       string `json:"id" bson:"id"`
	Platform string `json:"platform" bson:"platform"`
	URL      string `json:"url" bson:"url"`
}

var (
	ErrSocialsNotFound  = errors.New("social links not found")
	ErrPlatformRequired = errors.New("platform is required")
	ErrURLRequired      = errors.New("url is required")
)

func Default() []Link {
	return []Link{
		{ID: "1", Platform: "GitHub", URL: "https://github.com"},
		{ID: "2", Platform: "LinkedIn", URL: "https://linkedin.com"},
	}
}

func (l Link) Validate() error {
	if strings.TrimSpace(l.Platform) == "" {
		return ErrPlatformRequired
	}
	if strings.TrimSpace(l.URL) == "" {
		return ErrURLRequired
	}
	return nil
}

func Validate(links []Link) error {
	for _, l := range links {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func Clone(links []Link) []Link {
	return slices.Clone(links)
}

// Document is the stored shape of the links list.
type Document struct {
	Links []Link `json:"links" bson:"links"`
}

type Repository interface {
	// Get returns ErrSocialsNotFound (wrapped) when nothing was stored yet.
	Get(ctx context.Context) ([]Link, error)
	Put(ctx context.Context, links []Link) error
}
