package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/khoahotran/portfolio/internal/application/usecase/content"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/pkg/logger"
	"go.uber.org/zap"
)

const maxFeedItems = 50

type RSSUseCase struct {
	store     *content.EntityStore
	publicURL string
	title     string
	logger    logger.Logger
}

func NewRSSUseCase(store *content.EntityStore, publicURL, title string, log logger.Logger) *RSSUseCase {
	return &RSSUseCase{
		store:     store,
		publicURL: strings.TrimRight(publicURL, "/"),
		title:     title,
		logger:    log,
	}
}

// Execute renders the timeline in lang, newest event first.
func (uc *RSSUseCase) Execute(ctx context.Context, lang i18n.Language) *feeds.Feed {
	uc.logger.Debug("Generating RSS feed...", zap.String("lang", string(lang)))

	events := uc.store.ListEvents(ctx)
	about := uc.store.GetProfile(ctx).About.Resolve(lang)

	feed := &feeds.Feed{
		Title:       uc.title,
		Link:        &feeds.Link{Href: uc.publicURL + "/"},
		Description: about,
		Created:     time.Now(),
	}

	for i, e := range events {
		if i == maxFeedItems {
			break
		}
		feed.Items = append(feed.Items, uc.item(e, lang))
	}
	if len(events) > 0 {
		feed.Updated = time.UnixMilli(latestUpdate(events))
	}

	uc.logger.Debug("RSS feed generated successfully", zap.Int("item_count", len(feed.Items)))
	return feed
}

func (uc *RSSUseCase) item(e *event.Event, lang i18n.Language) *feeds.Item {
	title := e.Title.Resolve(lang)
	if e.Place != nil {
		title = fmt.Sprintf("%s (%s)", title, e.Place.Label().Resolve(lang))
	}
	created, err := time.Parse(event.DateLayout, e.Date)
	if err != nil {
		created = time.UnixMilli(e.CreatedAt)
	}
	return &feeds.Item{
		Id:          e.ID,
		Title:       title,
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/event/%s", uc.publicURL, e.ID)},
		Description: e.Description.Resolve(lang),
		Created:     created,
	}
}

func latestUpdate(events []*event.Event) int64 {
	var latest int64
	for _, e := range events {
		if e.UpdatedAt > latest {
			latest = e.UpdatedAt
		}
		if e.CreatedAt > latest {
			latest = e.CreatedAt
		}
	}
	return latest
}
