package content

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// mapCache is a JSON cache that never expires.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (s *EntityStoreTestSuite) Test_SaveEvent_MergesIntoStoredRowNotCachedCopy() {
	ctx := context.Background()
	log := logger.NewNopLogger()
	backend := persistence.NewMemoryEventRepo()
	cache := &mapCache{data: map[string][]byte{}}
	store := NewEntityStore(
		persistence.NewCachedEventRepo(backend, cache, time.Hour, log),
		persistence.NewCachedProfileRepo(persistence.NewMemoryProfileRepo(), cache, time.Hour, log),
		persistence.NewMemorySocialRepo(),
		nil, Settings{}, log,
	)

	stored := &event.Event{ID: "e1", Title: i18n.Text{i18n.EN: "new"}, Date: "2024-01-01", Type: event.TypeStandard, Images: []string{}}
	s.Require().NoError(backend.Put(ctx, stored))
	stale := stored.Clone()
	stale.Title = i18n.Text{i18n.EN: "old"}
	s.Require().NoError(cache.Set(ctx, persistence.EventCacheKey("e1"), stale, 0))

	saved, err := store.SaveEvent(ctx, event.Draft{ID: "e1", Date: ptr("2024-02-02")})
	s.Require().NoError(err)
	s.Equal("new", saved.Title[i18n.EN])
	s.Equal("2024-02-02", saved.Date)

	got, err := backend.FindByID(ctx, "e1")
	s.Require().NoError(err)
	s.Equal("new", got.Title[i18n.EN])
}

func (s *EntityStoreTestSuite) Test_SaveProfileItem_ReadsPastCache() {
	ctx := context.Background()
	log := logger.NewNopLogger()
	backend := persistence.NewMemoryProfileRepo()
	cache := &mapCache{data: map[string][]byte{}}
	store := NewEntityStore(
		persistence.NewMemoryEventRepo(),
		persistence.NewCachedProfileRepo(backend, cache, time.Hour, log),
		persistence.NewMemorySocialRepo(),
		nil, Settings{}, log,
	)

	fresh := profile.Default()
	fresh.About = i18n.Text{i18n.EN: "fresh"}
	s.Require().NoError(backend.Put(ctx, fresh))
	s.Require().NoError(cache.Set(ctx, persistence.ProfileCacheKey, profile.Default(), 0))

	_, err := store.SaveProfileItem(ctx, profile.CategorySkills, profile.ItemDraft{Title: i18n.Text{i18n.EN: "Go"}})
	s.Require().NoError(err)

	got, err := backend.Get(ctx)
	s.Require().NoError(err)
	s.Equal("fresh", got.About[i18n.EN])
	s.Len(got.Skills, 1)
}
