package ports

import (
	"context"

	"github.com/empdir/portal/internal/core/domain"
)

type AuthService interface {
	// Login authenticates against the Directory API, stores the session in
	// the tab namespace and returns the path to continue to.
	Login(ctx context.Context, tab string, role domain.Role, username, password string) (string, error)
	Logout(ctx context.Context, tab string) error
}

// Decision is the outcome of an access check.
type Decision struct {
	Blocked  bool
	Redirect string
	Notice   string
	Session  domain.Session
}

// AccessGuard gates protected pages on the stored session.
type AccessGuard interface {
	Require(ctx context.Context, tab string, role domain.Role) (Decision, error)
}
