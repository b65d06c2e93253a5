package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoSession          = errors.New("no active session")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// ErrorKind classifies a failed directory interaction.
type ErrorKind int

const (
	// KindValidation is a local form rule failure; nothing was sent.
	KindValidation ErrorKind = iota + 1
	// KindAuthorization is a 403 from the Directory API.
	KindAuthorization
	// KindServerValidation carries per-field messages from the Directory API.
	KindServerValidation
	// KindServer is any other rejection with a flat message.
	KindServer
	// KindTransport means no response was received.
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindServerValidation:
		return "server_validation"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// RequestError is the normalised failure of a Directory API call.
type RequestError struct {
	Kind        ErrorKind
	Status      int
	Message     string
	FieldErrors FormErrors
	Err         error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// NewValidationError wraps local field errors so callers can treat them like
// any other request failure.
func NewValidationError(fields FormErrors) *RequestError {
	return &RequestError{Kind: KindValidation, Message: "form has invalid fields", FieldErrors: fields}
}

// AsRequestError unwraps err into a *RequestError when it is one.
func AsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
