package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/backup_storage"
	"github.com/khoahotran/portfolio/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio/adapters/http"
	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/service"
	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	backupUC "github.com/khoahotran/portfolio/internal/application/usecase/backup"
	"github.com/khoahotran/portfolio/internal/application/usecase/content"
	feedUC "github.com/khoahotran/portfolio/internal/application/usecase/feed"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/internal/domain/session"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/broadcast"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/tracing"
)

func main() {
	fmt.Println("Start Portfolio API Server...")

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer tracing.Shutdown(tp, appLogger)

	// Repositories
	repos, err := persistence.NewRepositoriesFromConfig(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open content store", err, zap.String("driver", cfg.Store.Driver))
	}
	defer repos.Close()

	var publisher service.ContentPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Info("Kafka brokers not configured, content events disabled")
	}

	// Change buses
	sessions := broadcast.New[session.Changed]()
	languages := broadcast.New[i18n.Changed]()
	go watch(ctx, sessions, func(m session.Changed) {
		appLogger.Info("Admin session changed", zap.Bool("authenticated", m.Authenticated))
	})
	go watch(ctx, languages, func(m i18n.Changed) {
		appLogger.Debug("Display language changed", zap.String("lang", string(m.Language)))
	})

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	gate, err := authUC.NewGate(cfg.Auth.AdminSecret, sessions, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init session gate", err)
	}

	// Use Cases
	store := content.NewEntityStore(repos.Events, repos.Profiles, repos.Socials, publisher, content.Settings{
		Timeout:       cfg.Store.Timeout,
		MaxImageBytes: cfg.Media.MaxImageBytes,
	}, appLogger)
	rssUseCase := feedUC.NewRSSUseCase(store, cfg.App.PublicURL, cfg.App.SiteTitle, appLogger)

	var backupHandler *httpAdapter.BackupHandler
	sink, err := backup_storage.NewSinkFromConfig(ctx, cfg, appLogger)
	switch {
	case err != nil:
		appLogger.Fatal("cannot init backup storage", err)
	case sink != nil:
		backupHandler = httpAdapter.NewBackupHandler(backupUC.NewBackupUseCase(store, sink, appLogger), appLogger)
	default:
		appLogger.Info("Backup storage not configured, backup endpoint disabled")
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Gate:         gate,
		JWT:          jwtSvc,
		SecureCookie: cfg.Auth.SecureCookie,
		Languages:    languages,
		Logger:       appLogger,
		Auth:         httpAdapter.NewAuthHandler(gate, jwtSvc, cfg.Auth.SecureCookie, appLogger),
		Events:       httpAdapter.NewEventHandler(store, appLogger),
		Profile:      httpAdapter.NewProfileHandler(store, appLogger),
		Socials:      httpAdapter.NewSocialHandler(store, appLogger),
		Media:        httpAdapter.NewMediaHandler(store, appLogger),
		RSS:          httpAdapter.NewRSSHandler(rssUseCase, appLogger),
		Backup:       backupHandler,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}

func watch[T any](ctx context.Context, bus *broadcast.Bus[T], fn func(T)) {
	ch, cancel := bus.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			fn(m)
		}
	}
}
