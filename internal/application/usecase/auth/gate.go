package auth

import (
	"context"
	"fmt"

	"github.com/khoahotran/portfolio/internal/domain/session"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/broadcast"
	"github.com/khoahotran/portfolio/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("auth_usecase")

// Gate decides whether the editor is unlocked. The flag itself lives in the
// FlagStore handed to each call so one Gate can serve many browsers.
type Gate struct {
	secretHash string
	bus        *broadcast.Bus[session.Changed]
	logger     logger.Logger
}

func NewGate(adminSecret string, bus *broadcast.Bus[session.Changed], log logger.Logger) (*Gate, error) {
	if adminSecret == "" {
		return nil, fmt.Errorf("admin secret is empty")
	}
	hash, err := auth.HashPassword(adminSecret)
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}
	return &Gate{secretHash: hash, bus: bus, logger: log}, nil
}

// Login sets the flag when secret matches. A wrong secret leaves the flag
// as it was.
func (g *Gate) Login(ctx context.Context, flags session.FlagStore, secret string) bool {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	ok := auth.CheckPasswordHash(secret, g.secretHash)
	span.SetAttributes(attribute.Bool("auth.accepted", ok))
	if !ok {
		g.logger.Warn("Rejected login attempt")
		return false
	}
	if err := flags.SetAuthenticated(ctx, true); err != nil {
		g.logger.Error("Failed to persist authenticated flag", err)
		span.RecordError(err)
		return false
	}
	g.publish(true)
	return true
}

func (g *Gate) Logout(ctx context.Context, flags session.FlagStore) {
	ctx, span := tracer.Start(ctx, "Logout")
	defer span.End()

	if err := flags.SetAuthenticated(ctx, false); err != nil {
		g.logger.Error("Failed to clear authenticated flag", err)
		span.RecordError(err)
		return
	}
	g.publish(false)
}

// IsAuthenticated treats an unreadable flag as logged out.
func (g *Gate) IsAuthenticated(ctx context.Context, flags session.FlagStore) bool {
	ok, err := flags.Authenticated(ctx)
	if err != nil {
		g.logger.Warn("Failed to read authenticated flag")
		return false
	}
	return ok
}

func (g *Gate) publish(v bool) {
	if g.bus != nil {
		g.bus.Publish(session.Changed{Authenticated: v})
	}
}
