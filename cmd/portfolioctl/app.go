package main

import (
	"context"
	"fmt"

	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/adapters/session_storage"
	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio/internal/application/usecase/content"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// app is what every command needs. The caller must defer close().
type app struct {
	cfg    config.Config
	logger logger.Logger
	repos  *persistence.Repositories
	store  *content.EntityStore
}

func loadConfig() (config.Config, logger.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return cfg, nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, logger.NewZapLogger(cfg.App.Env), nil
}

func newApp() (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	repos, err := persistence.NewRepositoriesFromConfig(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("opening content store: %w", err)
	}
	store := content.NewEntityStore(repos.Events, repos.Profiles, repos.Socials, nil, content.Settings{
		Timeout:       cfg.Store.Timeout,
		MaxImageBytes: cfg.Media.MaxImageBytes,
	}, log)
	return &app{cfg: cfg, logger: log, repos: repos, store: store}, nil
}

func (a *app) close() {
	a.repos.Close()
	_ = a.logger.Sync()
}

// newLocalGate checks the admin secret against config and keeps the flag in
// the user config dir.
func newLocalGate() (*authUC.Gate, *session_storage.FileFlagStore, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	gate, err := authUC.NewGate(cfg.Auth.AdminSecret, nil, log)
	if err != nil {
		return nil, nil, err
	}
	dir, err := session_storage.DefaultDir()
	if err != nil {
		return nil, nil, err
	}
	return gate, session_storage.NewFileFlagStore(dir), nil
}

func requireLogin(ctx context.Context) error {
	gate, flags, err := newLocalGate()
	if err != nil {
		return err
	}
	if !gate.IsAuthenticated(ctx, flags) {
		return fmt.Errorf("not logged in, run 'portfolioctl login' first")
	}
	return nil
}
