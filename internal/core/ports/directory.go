package ports

import (
	"context"

	"github.com/empdir/portal/internal/core/domain"
)

// DirectoryClient talks to the remote Directory API. Every method except
// Login sends token as a bearer credential. Failures are *domain.RequestError.
type DirectoryClient interface {
	Login(ctx context.Context, username, password string) (*domain.LoginResult, error)
	Create(ctx context.Context, token string, p domain.EmployeePayload) (*domain.Employee, error)
	FetchOne(ctx context.Context, token string, id domain.EmployeeID) (*domain.Employee, error)
	FetchAll(ctx context.Context, token string) ([]domain.Employee, error)
	Update(ctx context.Context, token string, id domain.EmployeeID, p domain.EmployeePayload) (*domain.Employee, error)
	Delete(ctx context.Context, token string, id domain.EmployeeID) error
	UpdateCredentials(ctx context.Context, token string, id domain.EmployeeID, c domain.CredentialsUpdate) error
	Ping(ctx context.Context) error
}
