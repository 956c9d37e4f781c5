package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	cachePrefix      = "portfolio:"
	EventsListKey    = cachePrefix + "events"
	ProfileCacheKey  = cachePrefix + "profile"
	SocialsCacheKey  = cachePrefix + "socials"
	DefaultCacheTTL  = 10 * time.Minute
	eventCachePrefix = cachePrefix + "event:"
)

func EventCacheKey(id string) string {
	return eventCachePrefix + id
}

// CacheKeysFor lists the keys a content change makes stale.
func CacheKeysFor(kind service.ContentKind, id string) []string {
	switch kind {
	case service.KindEvent:
		keys := []string{EventsListKey}
		if id != "" {
			keys = append(keys, EventCacheKey(id))
		}
		return keys
	case service.KindProfile:
		return []string{ProfileCacheKey}
	case service.KindSocials:
		return []string{SocialsCacheKey}
	}
	return nil
}

// Cache stores JSON values by key.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type redisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) Cache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// cacheAside holds what the cached repositories share. Cache failures are
// logged and the backend answers instead.
type cacheAside struct {
	cache  Cache
	ttl    time.Duration
	logger logger.Logger
	guard  *fillGuard
}

// fillGuard counts invalidations. A backend read may only fill the cache if
// no invalidation happened since it started.
type fillGuard struct {
	mu  sync.Mutex
	gen uint64
}

func (c cacheAside) load(ctx context.Context, key string, dst any) bool {
	hit, err := c.cache.Get(ctx, key, dst)
	if err != nil {
		c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

// generation is taken before the backend read that will fill key.
func (c cacheAside) generation() uint64 {
	c.guard.mu.Lock()
	defer c.guard.mu.Unlock()
	return c.guard.gen
}

func (c cacheAside) store(ctx context.Context, key string, v any, gen uint64) {
	c.guard.mu.Lock()
	defer c.guard.mu.Unlock()
	if c.guard.gen != gen {
		c.logger.Debug("Skip cache fill from a read older than the last write", zap.String("key", key))
		return
	}
	if err := c.cache.Set(ctx, key, v, c.ttl); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c cacheAside) invalidate(ctx context.Context, keys ...string) {
	c.guard.mu.Lock()
	defer c.guard.mu.Unlock()
	c.guard.gen++
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.logger.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// write clears keys around put, so neither a fill that raced the write nor
// one from another replica outlives it.
func (c cacheAside) write(ctx context.Context, put func() error, keys ...string) error {
	c.invalidate(ctx, keys...)
	if err := put(); err != nil {
		return err
	}
	c.invalidate(ctx, keys...)
	return nil
}

func newCacheAside(cache Cache, ttl time.Duration, log logger.Logger) cacheAside {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return cacheAside{cache: cache, ttl: ttl, logger: log, guard: &fillGuard{}}
}

type cachedEventRepo struct {
	next event.Repository
	cacheAside
}

func NewCachedEventRepo(next event.Repository, cache Cache, ttl time.Duration, log logger.Logger) event.Repository {
	return &cachedEventRepo{next: next, cacheAside: newCacheAside(cache, ttl, log)}
}

func (r *cachedEventRepo) List(ctx context.Context) ([]*event.Event, error) {
	var events []*event.Event
	if r.load(ctx, EventsListKey, &events) {
		return events, nil
	}
	gen := r.generation()
	events, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, EventsListKey, events, gen)
	return events, nil
}

func (r *cachedEventRepo) FindByID(ctx context.Context, id string) (*event.Event, error) {
	var e event.Event
	if r.load(ctx, EventCacheKey(id), &e) {
		return &e, nil
	}
	gen := r.generation()
	found, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, EventCacheKey(id), found, gen)
	return found, nil
}

func (r *cachedEventRepo) Put(ctx context.Context, e *event.Event) error {
	return r.write(ctx, func() error { return r.next.Put(ctx, e) }, CacheKeysFor(service.KindEvent, e.ID)...)
}

func (r *cachedEventRepo) Delete(ctx context.Context, id string) error {
	return r.write(ctx, func() error { return r.next.Delete(ctx, id) }, CacheKeysFor(service.KindEvent, id)...)
}

func (r *cachedEventRepo) Unwrap() event.Repository {
	return r.next
}

type cachedProfileRepo struct {
	next profile.Repository
	cacheAside
}

func NewCachedProfileRepo(next profile.Repository, cache Cache, ttl time.Duration, log logger.Logger) profile.Repository {
	return &cachedProfileRepo{next: next, cacheAside: newCacheAside(cache, ttl, log)}
}

func (r *cachedProfileRepo) Get(ctx context.Context) (*profile.Data, error) {
	var d profile.Data
	if r.load(ctx, ProfileCacheKey, &d) {
		return &d, nil
	}
	gen := r.generation()
	found, err := r.next.Get(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, ProfileCacheKey, found, gen)
	return found, nil
}

func (r *cachedProfileRepo) Put(ctx context.Context, d *profile.Data) error {
	return r.write(ctx, func() error { return r.next.Put(ctx, d) }, ProfileCacheKey)
}

func (r *cachedProfileRepo) Unwrap() profile.Repository {
	return r.next
}

type cachedSocialRepo struct {
	next social.Repository
	cacheAside
}

func NewCachedSocialRepo(next social.Repository, cache Cache, ttl time.Duration, log logger.Logger) social.Repository {
	return &cachedSocialRepo{next: next, cacheAside: newCacheAside(cache, ttl, log)}
}

func (r *cachedSocialRepo) Get(ctx context.Context) ([]social.Link, error) {
	var doc social.Document
	if r.load(ctx, SocialsCacheKey, &doc) {
		return doc.Links, nil
	}
	gen := r.generation()
	links, err := r.next.Get(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, SocialsCacheKey, social.Document{Links: links}, gen)
	return links, nil
}

func (r *cachedSocialRepo) Put(ctx context.Context, links []social.Link) error {
	return r.write(ctx, func() error { return r.next.Put(ctx, links) }, SocialsCacheKey)
}
