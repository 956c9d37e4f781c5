package cachesync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// KeyCache is the part of the read cache the worker needs.
type KeyCache interface {
	Delete(ctx context.Context, keys ...string) error
}

// ProcessContentEventUseCase drops cached reads made stale by a content
// change, so API replicas that did not perform the write stop serving it.
type ProcessContentEventUseCase struct {
	cache   KeyCache
	keysFor func(service.ContentKind, string) []string
	logger  logger.Logger
}

func NewProcessContentEventUseCase(cache KeyCache, keysFor func(service.ContentKind, string) []string, log logger.Logger) *ProcessContentEventUseCase {
	return &ProcessContentEventUseCase{cache: cache, keysFor: keysFor, logger: log}
}

func (uc *ProcessContentEventUseCase) Execute(ctx context.Context, msg service.ContentChanged) error {
	keys := uc.keysFor(msg.Kind, msg.ID)
	if len(keys) == 0 {
		uc.logger.Warn("No cache keys for content kind, skip", zap.String("kind", string(msg.Kind)))
		return nil
	}
	if err := uc.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("invalidate %s cache: %w", msg.Kind, err)
	}
	uc.logger.Info("Cache invalidated",
		zap.String("event_type", string(msg.Action)),
		zap.String("kind", string(msg.Kind)),
		zap.String("id", msg.ID),
		zap.Strings("keys", keys),
	)
	return nil
}
