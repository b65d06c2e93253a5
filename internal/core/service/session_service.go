package service

import (
	"context"
	"fmt"

	"github.com/empdir/portal/internal/core/domain"
	"github.com/empdir/portal/internal/core/ports"
)

// Entry names inside a browser namespace.
const (
	entryToken  = "token"
	entryRole   = "role"
	entryUserID = "userId"
)

// SessionService stores the login state of one browser namespace. It keeps
// whatever token it is given; expiry is decided by AccessGuard.
type SessionService struct {
	store ports.TabStore
}

func NewSessionService(store ports.TabStore) *SessionService {
	return &SessionService{store: store}
}

// Save replaces any previous session in the namespace.
func (s *SessionService) Save(ctx context.Context, tab string, sess domain.Session) error {
	err := s.store.SetAll(ctx, tab, map[string]string{
		entryToken:  sess.Token,
		entryRole:   string(sess.Role),
		entryUserID: sess.UserID,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Read returns the stored session. ok is false unless both token and role
// are present.
func (s *SessionService) Read(ctx context.Context, tab string) (domain.Session, bool, error) {
	entries, err := s.store.GetAll(ctx, tab, entryToken, entryRole, entryUserID)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("read session: %w", err)
	}

	token, role := entries[entryToken], entries[entryRole]
	if token == "" || role == "" {
		return domain.Session{}, false, nil
	}
	return domain.Session{
		Token:  token,
		Role:   domain.Role(role),
		UserID: entries[entryUserID],
	}, true, nil
}

// Clear removes the token, role and cached user id together.
func (s *SessionService) Clear(ctx context.Context, tab string) error {
	if err := s.store.Remove(ctx, tab, entryToken, entryRole, entryUserID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
