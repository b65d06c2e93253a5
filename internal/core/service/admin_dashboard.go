package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/empdir/portal/internal/core/domain"
	"github.com/empdir/portal/internal/core/ports"
	"github.com/empdir/portal/internal/core/validation"
)

const (
	dateLayout = "2006-01-02"
	adminForm  = "admin"
)

// adminDashboard drives the administrator page: pick an action, fill the
// form, submit, show the result.
type adminDashboard struct {
	directory   ports.DirectoryClient
	validator   *validation.Validator
	submissions *SubmissionGuard
	now         func() time.Time
	log         zerolog.Logger
}

// NewAdminDashboard returns the admin DashboardService. now supplies the
// default joining date for new employees and defaults to time.Now.
func NewAdminDashboard(
	directory ports.DirectoryClient,
	validator *validation.Validator,
	submissions *SubmissionGuard,
	log zerolog.Logger,
	now func() time.Time,
) ports.DashboardService {
	if now == nil {
		now = time.Now
	}
	return &adminDashboard{
		directory:   directory,
		validator:   validator,
		submissions: submissions,
		now:         now,
		log:         log,
	}
}

// Open selects an action with a blank form and no errors.
func (d *adminDashboard) Open(action ports.Action) ports.DashboardState {
	if action == ports.ActionNone {
		return ports.DashboardState{Phase: ports.PhaseIdle, Errors: domain.FormErrors{}}
	}
	return ports.DashboardState{Phase: ports.PhaseFormOpen, Action: action, Errors: domain.FormErrors{}}
}

// Submit runs the open action. On failure the typed values stay in the form.
func (d *adminDashboard) Submit(
	ctx context.Context,
	tab string,
	sess domain.Session,
	action ports.Action,
	employeeID string,
	form domain.EmployeeForm,
) ports.DashboardState {
	if action == ports.ActionNone {
		return d.Open(action)
	}

	employeeID = strings.TrimSpace(employeeID)
	st := ports.DashboardState{
		Phase:      ports.PhaseFormOpen,
		Action:     action,
		EmployeeID: employeeID,
		Form:       form,
		Errors:     domain.FormErrors{},
	}

	// 1. Local checks; nothing is sent when they fail.
	if action.NeedsID() && employeeID == "" {
		st.Message = MsgEmployeeIDRequired
		return st
	}
	if action.NeedsFields() {
		if errs := d.validator.Validate(form, validation.ModeAdmin); len(errs) > 0 {
			st.Errors = errs
			return st
		}
	}

	// 2. One submission at a time per browser.
	release, err := d.submissions.Begin(ctx, tab, adminForm)
	if err != nil {
		st.Message = MsgSubmissionInFlight
		return st
	}
	defer release()

	// 3. Call the directory.
	st.Phase = ports.PhaseResultShown
	id := domain.EmployeeID(employeeID)

	switch action {
	case ports.ActionAdd:
		payload := form.Payload()
		if payload.JoiningDate == "" {
			payload.JoiningDate = d.now().Format(dateLayout)
		}
		if _, err := d.directory.Create(ctx, sess.Token, payload); err != nil {
			return d.failed(st, err)
		}
		return d.succeeded(action, MsgEmployeeAdded)

	case ports.ActionUpdate:
		if _, err := d.directory.Update(ctx, sess.Token, id, form.Payload()); err != nil {
			return d.failed(st, err)
		}
		return d.succeeded(action, MsgEmployeeUpdated)

	case ports.ActionDelete:
		if err := d.directory.Delete(ctx, sess.Token, id); err != nil {
			return d.failed(st, err)
		}
		return d.succeeded(action, MsgEmployeeDeleted)

	case ports.ActionGet:
		emp, err := d.directory.FetchOne(ctx, sess.Token, id)
		if err != nil {
			return d.failed(st, err)
		}
		st.Employee = emp
		st.Success = true
		return st

	case ports.ActionGetAll:
		list, err := d.directory.FetchAll(ctx, sess.Token)
		if err != nil {
			return d.failed(st, err)
		}
		st.Employees = list
		st.Success = true
		return st
	}

	return d.Open(ports.ActionNone)
}

// succeeded shows the message over a reset form.
func (d *adminDashboard) succeeded(action ports.Action, msg string) ports.DashboardState {
	return ports.DashboardState{
		Phase:   ports.PhaseResultShown,
		Action:  action,
		Errors:  domain.FormErrors{},
		Message: msg,
		Success: true,
	}
}

func (d *adminDashboard) failed(st ports.DashboardState, err error) ports.DashboardState {
	d.log.Warn().Err(err).Str("action", string(st.Action)).Msg("dashboard action failed")

	re, ok := domain.AsRequestError(err)
	switch {
	case ok && re.Kind == domain.KindServerValidation:
		st.Errors = re.FieldErrors
		st.Message = MsgFixFormErrors
	case ok:
		st.Message = "Error: " + re.Message
	default:
		st.Message = "Error: " + err.Error()
	}
	return st
}
