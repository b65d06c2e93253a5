package ports

import (
	"context"

	"github.com/empdir/portal/internal/core/domain"
)

// ProfileState is everything the employee profile page renders.
type ProfileState struct {
	Phase      Phase
	EmployeeID string
	// BaselineEmail is the email the profile was loaded with. It round-trips
	// through the page so a submit can tell whether the username changed.
	BaselineEmail      string
	Form               domain.EmployeeForm
	Errors             domain.FormErrors
	Message            string
	Success            bool
	FormHidden         bool
	Redirect           string
	CanEditCredentials bool
}

type ProfileService interface {
	Load(ctx context.Context, session domain.Session, employeeID string) ProfileState
	Submit(ctx context.Context, tab string, session domain.Session, employeeID, baselineEmail string, form domain.EmployeeForm) ProfileState
}
