package feed

import (
	"context"
	"strings"
	"testing"

	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/usecase/content"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSSUseCase(t *testing.T) {
	ctx := context.Background()
	store := content.NewEntityStore(
		persistence.NewMemoryEventRepo(),
		persistence.NewMemoryProfileRepo(),
		persistence.NewMemorySocialRepo(),
		nil, content.Settings{}, logger.NewNopLogger(),
	)
	date := "2024-04-04"
	typ := event.TypeCompetition
	place := event.Place(1)
	saved, err := store.SaveEvent(ctx, event.Draft{
		Title:       i18n.Text{i18n.EN: "Regional Cup", i18n.RU: "Региональный кубок"},
		Description: i18n.Text{i18n.EN: "Won it"},
		Date:        &date,
		Type:        &typ,
		Place:       &place,
	})
	require.NoError(t, err)

	uc := NewRSSUseCase(store, "https://example.com/", "Timeline", logger.NewNopLogger())
	feed := uc.Execute(ctx, i18n.RU)

	require.Len(t, feed.Items, 1)
	assert.Equal(t, "Региональный кубок (1 место)", feed.Items[0].Title)
	assert.Equal(t, "Won it", feed.Items[0].Description)
	assert.Equal(t, "https://example.com/event/"+saved.ID, feed.Items[0].Link.Href)

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.True(t, strings.Contains(rss, "<title>Timeline</title>"))
}
