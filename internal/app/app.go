package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sandeepkv93/catalog-api/internal/config"
	"github.com/sandeepkv93/catalog-api/internal/health"
	"github.com/sandeepkv93/catalog-api/internal/observability"
)

const (
	defaultShutdownTimeout      = 20 * time.Second
	defaultHTTPDrainTimeout     = 10 * time.Second
	defaultObservabilityTimeout = 8 * time.Second
)

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Server        *http.Server
	Observability *observability.Runtime
	DB            *gorm.DB
	Redis         redis.UniversalClient
	Readiness     *health.ProbeRunner

	ShutdownTimeout              time.Duration
	ShutdownHTTPDrainTimeout     time.Duration
	ShutdownObservabilityTimeout time.Duration
}

func New(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	db *gorm.DB,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
) *App {
	return &App{
		Config:                       cfg,
		Logger:                       logger,
		Server:                       server,
		Observability:                runtime,
		DB:                           db,
		Redis:                        redisClient,
		Readiness:                    readiness,
		ShutdownTimeout:              cfg.ShutdownTimeout,
		ShutdownHTTPDrainTimeout:     cfg.ShutdownHTTPDrainTimeout,
		ShutdownObservabilityTimeout: cfg.ShutdownObservabilityTimeout,
	}
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting", "addr", a.Server.Addr, "env", a.Config.Env)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("shutdown signal received")
	case err, ok := <-serveErr:
		if ok && err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}
	return errors.Join(runErr, a.Shutdown(context.Background()))
}

// Shutdown drains HTTP, flushes telemetry, then closes Redis and the database,
// each stage bounded by its own budget inside the overall timeout.
func (a *App) Shutdown(parent context.Context) error {
	totalCtx, totalCancel := context.WithTimeout(parent, orDefault(a.ShutdownTimeout, defaultShutdownTimeout))
	defer totalCancel()

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(totalCtx, orDefault(a.ShutdownHTTPDrainTimeout, defaultHTTPDrainTimeout))
	if err := a.Server.Shutdown(httpCtx); err != nil {
		a.Logger.Error("failed to shutdown http server", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	httpCancel()

	if a.Observability != nil {
		obsCtx, obsCancel := context.WithTimeout(totalCtx, orDefault(a.ShutdownObservabilityTimeout, defaultObservabilityTimeout))
		if err := a.Observability.Shutdown(obsCtx); err != nil {
			a.Logger.Error("failed to shutdown observability", "error", err)
			errs = append(errs, err)
		}
		obsCancel()
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Error("failed to close redis client", "error", err)
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.Logger.Error("failed to close database connection", "error", err)
				errs = append(errs, fmt.Errorf("database close: %w", err))
			}
		}
	}
	a.Logger.Info("shutdown complete")
	return errors.Join(errs...)
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
