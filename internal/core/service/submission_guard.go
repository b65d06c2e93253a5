package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/empdir/portal/internal/core/domain"
	"github.com/empdir/portal/internal/core/ports"
	"github.com/empdir/portal/internal/metrics"
)

const defaultSubmissionTTL = 30 * time.Second

// SubmissionGuard lets one submission per form and browser namespace run at
// a time. The marker expires on its own if a release is ever lost.
type SubmissionGuard struct {
	locker ports.Locker
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSubmissionGuard(locker ports.Locker, ttl time.Duration, log zerolog.Logger) *SubmissionGuard {
	if ttl <= 0 {
		ttl = defaultSubmissionTTL
	}
	return &SubmissionGuard{locker: locker, ttl: ttl, log: log}
}

// Begin marks form as submitting. The returned release must be called when
// the submission finishes. domain.ErrSubmissionInFlight is returned when a
// submission of the same form is already running.
func (g *SubmissionGuard) Begin(ctx context.Context, tab, form string) (func(), error) {
	ok, err := g.locker.Acquire(ctx, tab, form, g.ttl)
	if err != nil {
		// The marker store being down must not block the form.
		g.log.Warn().Err(err).Str("form", form).Msg("submission marker unavailable, proceeding")
		return func() {}, nil
	}
	if !ok {
		metrics.SubmissionsRejectedTotal.WithLabelValues(form).Inc()
		return nil, domain.ErrSubmissionInFlight
	}

	return func() {
		// The request context may already be done by the time we release.
		if err := g.locker.Release(context.WithoutCancel(ctx), tab, form); err != nil {
			g.log.Warn().Err(err).Str("form", form).Msg("failed to release submission marker")
		}
	}, nil
}
