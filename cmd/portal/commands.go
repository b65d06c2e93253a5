package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/empdir/portal/internal/app"
	"github.com/empdir/portal/internal/infrastructure/config"
	"github.com/empdir/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type Globals struct {
	Version string
}

type ServeCmd struct{}

func (s *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Echo,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("version", globals.Version).Str("addr", srv.Addr).Msg("portal listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type CheckCmd struct {
	Timeout time.Duration `help:"How long to wait for dependencies." default:"5s"`
}

func (c *CheckCmd) Run(ctx context.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	a, err := app.New(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Check(ctx); err != nil {
		return fmt.Errorf("not ready: %w", err)
	}
	log.Info().Msg("all dependencies reachable")
	return nil
}

func setup(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "portal",
		Env:     cfg.Env,
	})
	return cfg, log, nil
}
