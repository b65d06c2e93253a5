package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/empdir/portal/internal/core/domain"
	"github.com/empdir/portal/internal/core/ports"
	"github.com/empdir/portal/internal/core/token"
	"github.com/empdir/portal/internal/core/validation"
)

const profileForm = "profile"

// profileService drives an employee's own profile page. Email is never
// editable here. Username and password are only offered when
// canEditCredentials is set.
type profileService struct {
	directory          ports.DirectoryClient
	validator          *validation.Validator
	submissions        *SubmissionGuard
	canEditCredentials bool
	log                zerolog.Logger
}

func NewProfileService(
	directory ports.DirectoryClient,
	validator *validation.Validator,
	submissions *SubmissionGuard,
	canEditCredentials bool,
	log zerolog.Logger,
) ports.ProfileService {
	return &profileService{
		directory:          directory,
		validator:          validator,
		submissions:        submissions,
		canEditCredentials: canEditCredentials,
		log:                log,
	}
}

func (p *profileService) Load(ctx context.Context, sess domain.Session, employeeID string) ports.ProfileState {
	st := p.base(employeeID)
	if missingID(employeeID) {
		return p.noID(st)
	}

	emp, err := p.directory.FetchOne(ctx, sess.Token, domain.EmployeeID(employeeID))
	if err != nil {
		if re, ok := domain.AsRequestError(err); ok && re.Kind == domain.KindAuthorization {
			st.Message = MsgProfileForbidden
			st.FormHidden = true
			return st
		}
		p.log.Warn().Err(err).Str("employee_id", employeeID).Msg("profile fetch failed")
		st.Message = MsgProfileFetchFailed
		return st
	}

	st.Form = domain.FormFromEmployee(*emp)
	st.BaselineEmail = emp.Email
	if claims := token.Decode(sess.Token); claims != nil {
		st.Form.Username = claims.Subject
	}
	return st
}

func (p *profileService) Submit(
	ctx context.Context,
	tab string,
	sess domain.Session,
	employeeID, baselineEmail string,
	form domain.EmployeeForm,
) ports.ProfileState {
	st := p.base(employeeID)
	if missingID(employeeID) {
		return p.noID(st)
	}

	form.Email = baselineEmail
	st.BaselineEmail = baselineEmail
	st.Form = form

	mode := validation.ModeProfile
	if p.canEditCredentials {
		mode = validation.ModeProfileCredentials
	}
	if errs := p.validator.Validate(form, mode); len(errs) > 0 {
		st.Errors = errs
		return st
	}

	release, err := p.submissions.Begin(ctx, tab, profileForm)
	if err != nil {
		st.Message = MsgSubmissionInFlight
		return st
	}
	defer release()

	st.Phase = ports.PhaseResultShown
	id := domain.EmployeeID(employeeID)

	// Profile fields first; credentials only once those are accepted.
	if _, err := p.directory.Update(ctx, sess.Token, id, form.Payload()); err != nil {
		return p.failed(st, err)
	}
	if p.canEditCredentials {
		delta := domain.CredentialsDelta(baselineEmail, form.Username, form.Password)
		if !delta.Empty() {
			if err := p.directory.UpdateCredentials(ctx, sess.Token, id, delta); err != nil {
				return p.failed(st, err)
			}
		}
	}

	st.Form.Password = ""
	st.Message = MsgProfileUpdated
	st.Success = true
	return st
}

func (p *profileService) base(employeeID string) ports.ProfileState {
	return ports.ProfileState{
		Phase:              ports.PhaseFormOpen,
		EmployeeID:         employeeID,
		Errors:             domain.FormErrors{},
		CanEditCredentials: p.canEditCredentials,
	}
}

func (p *profileService) noID(st ports.ProfileState) ports.ProfileState {
	st.Phase = ports.PhaseIdle
	st.Message = MsgEmployeeIDMissing
	st.FormHidden = true
	st.Redirect = LandingPath
	return st
}

func (p *profileService) failed(st ports.ProfileState, err error) ports.ProfileState {
	p.log.Warn().Err(err).Str("employee_id", st.EmployeeID).Msg("profile update failed")
	st.Form.Password = ""

	re, ok := domain.AsRequestError(err)
	switch {
	case ok && re.Kind == domain.KindServerValidation:
		st.Errors = re.FieldErrors
		st.Message = MsgFixFormErrors
	case ok && re.Kind == domain.KindTransport:
		st.Message = MsgProfileUpdateFailed
	case ok:
		st.Message = "Error: " + re.Message
	default:
		st.Message = MsgProfileUpdateFailed
	}
	return st
}

// missingID treats the literal "undefined" as absent; stale links produced
// it when no id had been stored.
func missingID(id string) bool {
	id = strings.TrimSpace(id)
	return id == "" || id == "undefined"
}
