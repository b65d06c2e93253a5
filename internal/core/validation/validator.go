// Package validation checks employee forms before anything is sent to the
// Directory API.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/empdir/portal/internal/core/domain"
)

// Mode picks the rule set for a form.
type Mode int

const (
	// ModeAdmin is the dashboard form: email is required and checked.
	ModeAdmin Mode = iota
	// ModeProfile is the self-service form: email is read-only.
	ModeProfile
	// ModeProfileCredentials adds the password rule to ModeProfile.
	ModeProfileCredentials
)

const dateLayout = "2006-01-02"

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type adminRules struct {
	FirstName   string `field:"firstName" validate:"required"`
	LastName    string `field:"lastName" validate:"required"`
	Email       string `field:"email" validate:"required,emailshape"`
	Salary      string `field:"salary" validate:"omitempty,number_text,nonnegative"`
	Department  string `field:"department" validate:"required"`
	JoiningDate string `field:"joiningDate" validate:"omitempty,calendar_date,notfuture"`
}

type profileRules struct {
	FirstName   string `field:"firstName" validate:"required"`
	LastName    string `field:"lastName" validate:"required"`
	Salary      string `field:"salary" validate:"omitempty,number_text,nonnegative"`
	Department  string `field:"department" validate:"required"`
	JoiningDate string `field:"joiningDate" validate:"omitempty,calendar_date,notfuture"`
}

type profileCredentialRules struct {
	FirstName   string `field:"firstName" validate:"required"`
	LastName    string `field:"lastName" validate:"required"`
	Salary      string `field:"salary" validate:"omitempty,number_text,nonnegative"`
	Department  string `field:"department" validate:"required"`
	JoiningDate string `field:"joiningDate" validate:"omitempty,calendar_date,notfuture"`
	Password    string `field:"password" validate:"omitempty,min=6"`
}

var messages = map[string]string{
	"firstName.required":        "First name is required",
	"lastName.required":         "Last name is required",
	"email.required":            "Email is required",
	"email.emailshape":          "Email is invalid",
	"department.required":       "Department is required",
	"salary.number_text":        "Salary must be a number",
	"salary.nonnegative":        "Salary cannot be negative",
	"joiningDate.calendar_date": "Joining date is invalid",
	"joiningDate.notfuture":     "Joining date cannot be in the future",
	"password.min":              "Password must be at least 6 characters",
}

// Validator applies the form rules. It holds no per-call state and is safe
// for concurrent use.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New builds a Validator. now supplies "today" for the joining date rule and
// defaults to time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	val := &Validator{v: validator.New(), now: now}

	val.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	mustRegister(val.v, "emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	mustRegister(val.v, "number_text", func(fl validator.FieldLevel) bool {
		_, ok := parseNumber(fl.Field().String())
		return ok
	})
	mustRegister(val.v, "nonnegative", func(fl validator.FieldLevel) bool {
		n, ok := parseNumber(fl.Field().String())
		return !ok || n >= 0
	})
	mustRegister(val.v, "calendar_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})
	mustRegister(val.v, "notfuture", val.notFuture)

	return val
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Validate returns one message per failing field. An empty result means the
// form may be submitted.
func (val *Validator) Validate(form domain.EmployeeForm, mode Mode) domain.FormErrors {
	var target any
	switch mode {
	case ModeAdmin:
		target = adminRules{
			FirstName:   form.FirstName,
			LastName:    form.LastName,
			Email:       form.Email,
			Salary:      form.Salary,
			Department:  form.Department,
			JoiningDate: form.JoiningDate,
		}
	case ModeProfileCredentials:
		target = profileCredentialRules{
			FirstName:   form.FirstName,
			LastName:    form.LastName,
			Salary:      form.Salary,
			Department:  form.Department,
			JoiningDate: form.JoiningDate,
			Password:    form.Password,
		}
	default:
		target = profileRules{
			FirstName:   form.FirstName,
			LastName:    form.LastName,
			Salary:      form.Salary,
			Department:  form.Department,
			JoiningDate: form.JoiningDate,
		}
	}

	errs := domain.FormErrors{}
	err := val.v.Struct(target)
	if err == nil {
		return errs
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// Only reachable on a programming error in the rule structs.
		panic(fmt.Sprintf("validation: %v", err))
	}
	for _, fe := range ve {
		errs[fe.Field()] = fieldError(fe)
	}
	return errs
}

// notFuture compares calendar days in the local zone, so a date equal to
// today is accepted.
func (val *Validator) notFuture(fl validator.FieldLevel) bool {
	d, err := time.Parse(dateLayout, fl.Field().String())
	if err != nil {
		return true
	}
	y, m, day := val.now().Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return !d.After(today)
}

func fieldError(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Field() + " is invalid"
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
