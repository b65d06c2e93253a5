package ports

import (
	"context"

	"github.com/empdir/portal/internal/core/domain"
)

// Action selects the admin dashboard form.
type Action string

const (
	ActionNone   Action = ""
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionGet    Action = "get"
	ActionGetAll Action = "getAll"
)

// ParseAction accepts the known action names.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionNone, ActionAdd, ActionUpdate, ActionDelete, ActionGet, ActionGetAll:
		return a, true
	}
	return ActionNone, false
}

// NeedsID reports whether the action targets one employee.
func (a Action) NeedsID() bool {
	return a == ActionUpdate || a == ActionDelete || a == ActionGet
}

// NeedsFields reports whether the action submits the employee fields.
func (a Action) NeedsFields() bool {
	return a == ActionAdd || a == ActionUpdate
}

// Phase is the view state of a form page. A submission in flight is
// PhaseSubmitting only while the request is being handled.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseFormOpen    Phase = "form_open"
	PhaseSubmitting  Phase = "submitting"
	PhaseResultShown Phase = "result_shown"
)

// DashboardState is everything the admin page renders.
type DashboardState struct {
	Phase      Phase
	Action     Action
	EmployeeID string
	Form       domain.EmployeeForm
	Errors     domain.FormErrors
	Message    string
	Success    bool
	Employee   *domain.Employee
	Employees  []domain.Employee
}

type DashboardService interface {
	Open(action Action) DashboardState
	Submit(ctx context.Context, tab string, session domain.Session, action Action, employeeID string, form domain.EmployeeForm) DashboardState
}
