package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/empdir/portal/internal/core/domain"
	"github.com/empdir/portal/internal/core/ports"
	"github.com/empdir/portal/internal/metrics"
)

// authService implements login and logout against the Directory API.
type authService struct {
	directory ports.DirectoryClient
	sessions  *SessionService
	log       zerolog.Logger
}

func NewAuthService(directory ports.DirectoryClient, sessions *SessionService, log zerolog.Logger) ports.AuthService {
	return &authService{directory: directory, sessions: sessions, log: log}
}

// Login exchanges credentials for a token. Any rejection is reported as
// domain.ErrInvalidCredentials so the page never reveals why.
func (s *authService) Login(ctx context.Context, tab string, role domain.Role, username, password string) (string, error) {
	res, err := s.directory.Login(ctx, username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(string(role), "failure").Inc()
		s.log.Info().Err(err).Str("role", string(role)).Msg("login rejected")
		return "", fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	}

	sess := domain.Session{Token: res.Token, Role: role, UserID: res.ID.String()}
	if err := s.sessions.Save(ctx, tab, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues(string(role), "failure").Inc()
		return "", fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues(string(role), "success").Inc()
	return role.HomePath(sess.UserID), nil
}

func (s *authService) Logout(ctx context.Context, tab string) error {
	return s.sessions.Clear(ctx, tab)
}
