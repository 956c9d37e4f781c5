package persistence

import (
	"fmt"

	"github.com/khoahotran/portfolio/adapters/persistence/migrations"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/logger"
	"go.uber.org/zap"
)

// Repositories is one backend's set of content repositories.
type Repositories struct {
	Events   event.Repository
	Profiles profile.Repository
	Socials  social.Repository

	closers []func()
}

func (r *Repositories) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

// NewRepositoriesFromConfig opens the backend named by store.driver and, when
// redis.addr is set, puts the Redis cache in front of it.
func NewRepositoriesFromConfig(cfg config.Config, log logger.Logger) (*Repositories, error) {
	repos := &Repositories{}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		repos.Events = NewMemoryEventRepo()
		repos.Profiles = NewMemoryProfileRepo()
		repos.Socials = NewMemorySocialRepo()
	case config.DriverPostgres, "":
		pool, err := NewPostgresPool(cfg, log)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, pool.Close)
		version, err := migrations.Up(pool)
		if err != nil {
			repos.Close()
			return nil, err
		}
		log.Info("Database schema is up to date", zap.Uint("version", version))
		repos.Events = NewPostgresEventRepo(pool, log)
		repos.Profiles = NewPostgresProfileRepo(pool, log)
		repos.Socials = NewPostgresSocialRepo(pool, log)
	case config.DriverMongo:
		db, err := NewMongoDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, func() { DisconnectMongo(db, log) })
		repos.Events = NewMongoEventRepo(db)
		repos.Profiles = NewMongoProfileRepo(db)
		repos.Socials = NewMongoSocialRepo(db)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}

	if cfg.Redis.Addr == "" {
		return repos, nil
	}
	rdb, err := NewRedisClient(cfg, log)
	if err != nil {
		log.Warn("Redis unavailable, serving content without cache", zap.Error(err))
		return repos, nil
	}
	repos.closers = append(repos.closers, func() { _ = rdb.Close() })
	cache := NewRedisCache(rdb)
	repos.Events = NewCachedEventRepo(repos.Events, cache, cfg.Redis.TTL, log)
	repos.Profiles = NewCachedProfileRepo(repos.Profiles, cache, cfg.Redis.TTL, log)
	repos.Socials = NewCachedSocialRepo(repos.Socials, cache, cfg.Redis.TTL, log)
	return repos, nil
}
