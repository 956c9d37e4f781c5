package auth

import (
	"context"
	"testing"

	"github.com/khoahotran/portfolio/internal/domain/session"
	"github.com/khoahotran/portfolio/pkg/broadcast"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGate(t *testing.T) (*Gate, *broadcast.Bus[session.Changed]) {
	t.Helper()
	bus := broadcast.New[session.Changed]()
	g, err := NewGate("s3cret", bus, logger.NewNopLogger())
	require.NoError(t, err)
	return g, bus
}

func TestGate_LoginLogout(t *testing.T) {
	g, bus := newGate(t)
	ctx := context.Background()
	flags := session.NewMemoryFlagStore()
	events, cancel := bus.Subscribe()
	defer cancel()

	assert.False(t, g.IsAuthenticated(ctx, flags))

	assert.False(t, g.Login(ctx, flags, "wrong"))
	assert.False(t, g.IsAuthenticated(ctx, flags))

	assert.True(t, g.Login(ctx, flags, "s3cret"))
	assert.True(t, g.IsAuthenticated(ctx, flags))
	assert.Equal(t, session.Changed{Authenticated: true}, <-events)

	g.Logout(ctx, flags)
	assert.False(t, g.IsAuthenticated(ctx, flags))
	assert.Equal(t, session.Changed{Authenticated: false}, <-events)
}

func TestGate_WrongSecretKeepsExistingSession(t *testing.T) {
	g, _ := newGate(t)
	ctx := context.Background()
	flags := session.NewMemoryFlagStore()

	require.True(t, g.Login(ctx, flags, "s3cret"))
	assert.False(t, g.Login(ctx, flags, "nope"))
	assert.True(t, g.IsAuthenticated(ctx, flags))
}

func TestGate_FlagSurvivesNewGate(t *testing.T) {
	ctx := context.Background()
	flags := session.NewMemoryFlagStore()

	first, _ := newGate(t)
	require.True(t, first.Login(ctx, flags, "s3cret"))

	second, _ := newGate(t)
	assert.True(t, second.IsAuthenticated(ctx, flags))
}

func TestNewGate_RequiresSecret(t *testing.T) {
	_, err := NewGate("", nil, logger.NewNopLogger())
	assert.Error(t, err)
}
