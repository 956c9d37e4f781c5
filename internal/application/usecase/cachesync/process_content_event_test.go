package cachesync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type recordingCache struct {
	deleted [][]string
	err     error
}

func (c *recordingCache) Delete(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys)
	return c.err
}

func keysFor(kind service.ContentKind, id string) []string {
	switch kind {
	case service.KindEvent:
		return []string{"events", "event:" + id}
	case service.KindProfile:
		return []string{"profile"}
	}
	return nil
}

func TestProcessContentEvent_DeletesKeys(t *testing.T) {
	cache := &recordingCache{}
	uc := NewProcessContentEventUseCase(cache, keysFor, logger.NewNopLogger())

	err := uc.Execute(context.Background(), service.ContentChanged{
		Action: service.ActionDeleted,
		Kind:   service.KindEvent,
		ID:     "e1",
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"events", "event:e1"}}, cache.deleted)
}

func TestProcessContentEvent_UnknownKindIsSkipped(t *testing.T) {
	cache := &recordingCache{}
	uc := NewProcessContentEventUseCase(cache, keysFor, logger.NewNopLogger())

	require.NoError(t, uc.Execute(context.Background(), service.ContentChanged{Kind: service.KindSocials}))
	assert.Empty(t, cache.deleted)
}

func TestProcessContentEvent_CacheError(t *testing.T) {
	boom := errors.New("redis down")
	uc := NewProcessContentEventUseCase(&recordingCache{err: boom}, keysFor, logger.NewNopLogger())

	err := uc.Execute(context.Background(), service.ContentChanged{Kind: service.KindProfile})
	assert.ErrorIs(t, err, boom)
}
