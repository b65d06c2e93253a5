// Package app assembles the portal from its configuration.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/empdir/portal/internal/api"
	"github.com/empdir/portal/internal/core/ports"
	"github.com/empdir/portal/internal/core/service"
	"github.com/empdir/portal/internal/core/validation"
	"github.com/empdir/portal/internal/infrastructure/config"
	"github.com/empdir/portal/internal/infrastructure/db/memory"
	redisstore "github.com/empdir/portal/internal/infrastructure/db/redis"
	"github.com/empdir/portal/internal/infrastructure/directory"
	"github.com/empdir/portal/internal/infrastructure/http/handlers"
	"github.com/empdir/portal/pkg/logger"
)

type tabBackend interface {
	ports.TabStore
	ports.Locker
}

// App is a fully wired portal.
type App struct {
	Echo      *echo.Echo
	Readiness map[string]handlers.Pinger

	closers []io.Closer
}

// New connects the session backend and builds the router. Close releases
// whatever New opened. HTTP metrics go to reg, or to the default registry
// when reg is nil.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg *prometheus.Registry) (*App, error) {
	a := &App{}

	store, err := a.sessionBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	client := directory.NewClient(directory.Config{
		BaseURL: cfg.Directory.URL,
		Timeout: cfg.Directory.Timeout,
	}, logger.Component(log, "directory"))

	sessions := service.NewSessionService(store)
	submissions := service.NewSubmissionGuard(store, cfg.Session.SubmitTTL, logger.Component(log, "submissions"))
	v := validation.New(nil)

	a.Readiness = map[string]handlers.Pinger{
		"session_store": store,
		"directory":     client,
	}
	deps := api.Dependencies{
		Auth:          service.NewAuthService(client, sessions, logger.Component(log, "auth")),
		Guard:         service.NewAccessGuard(sessions, logger.Component(log, "guard"), nil),
		Dashboard:     service.NewAdminDashboard(client, v, submissions, logger.Component(log, "admin"), nil),
		Profile:       service.NewProfileService(client, v, submissions, cfg.Profile.CanEditCredentials, logger.Component(log, "profile")),
		Readiness:     a.Readiness,
		SecureCookies: cfg.Session.CookieSecure,
		Log:           logger.Component(log, "http"),
	}
	if reg != nil {
		deps.Registerer, deps.Gatherer = reg, reg
	}
	a.Echo = api.NewRouter(deps)
	return a, nil
}

func (a *App) sessionBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (tabBackend, error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("session backend: %w", err)
		}
		a.closers = append(a.closers, client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session backend: redis")
		return redisstore.NewTabStore(client, cfg.Session.IdleTTL), nil
	default:
		log.Info().Msg("session backend: memory")
		return memory.NewTabStore(cfg.Session.IdleTTL), nil
	}
}

// Check pings every readiness dependency and returns the first failure.
func (a *App) Check(ctx context.Context) error {
	for name, p := range a.Readiness {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
