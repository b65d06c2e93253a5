package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/empdir/portal/internal/core/domain"
	"github.com/empdir/portal/internal/core/ports"
	"github.com/empdir/portal/internal/core/token"
	"github.com/empdir/portal/internal/metrics"
)

const (
	LandingPath          = "/"
	NoticeSessionExpired = "Your session has expired. Please log in again."
)

// accessGuard routes users away from pages their stored session cannot
// open. It reads unverified claims and is a navigation aid only; the
// Directory API authorizes every call on its own.
type accessGuard struct {
	sessions *SessionService
	now      func() time.Time
	log      zerolog.Logger
}

// NewAccessGuard returns an AccessGuard. now defaults to time.Now.
func NewAccessGuard(sessions *SessionService, log zerolog.Logger, now func() time.Time) ports.AccessGuard {
	if now == nil {
		now = time.Now
	}
	return &accessGuard{sessions: sessions, now: now, log: log}
}

// Require checks the namespace's session against role. An empty role only
// requires a session to exist. Every blocked outcome except a missing
// session also clears what was stored.
func (g *accessGuard) Require(ctx context.Context, tab string, role domain.Role) (ports.Decision, error) {
	sess, ok, err := g.sessions.Read(ctx, tab)
	if err != nil {
		return ports.Decision{}, err
	}

	// 1. Nothing stored.
	if !ok {
		g.record(role, "no_session")
		return ports.Decision{Blocked: true, Redirect: LandingPath}, nil
	}

	// 2. Token says it has expired.
	if claims := token.Decode(sess.Token); claims.Expired(g.now()) {
		g.record(role, "expired")
		return g.block(ctx, tab, NoticeSessionExpired)
	}

	// 3. Wrong role for this page.
	if role != "" && sess.Role != role {
		g.record(role, "role_mismatch")
		g.log.Debug().Str("required", string(role)).Str("stored", string(sess.Role)).Msg("role mismatch, clearing session")
		return g.block(ctx, tab, "")
	}

	g.record(role, "allowed")
	return ports.Decision{Session: sess}, nil
}

func (g *accessGuard) block(ctx context.Context, tab, notice string) (ports.Decision, error) {
	if err := g.sessions.Clear(ctx, tab); err != nil {
		return ports.Decision{}, err
	}
	return ports.Decision{Blocked: true, Redirect: LandingPath, Notice: notice}, nil
}

func (g *accessGuard) record(role domain.Role, result string) {
	metrics.GuardDecisionsTotal.WithLabelValues(string(role), result).Inc()
}
