package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EmployeeID is the server-assigned employee identifier. The Directory API
// sends it as a JSON number on records and as a string on login responses,
// so both forms are accepted.
type EmployeeID string

func (id *EmployeeID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("employee id: %w", err)
		}
		*id = EmployeeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("employee id: %w", err)
	}
	*id = EmployeeID(n.String())
	return nil
}

func (id EmployeeID) String() string { return string(id) }

// Employee is a directory record as returned by the Directory API.
type Employee struct {
	ID          EmployeeID `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Salary      float64    `json:"salary"`
	Department  string     `json:"department"`
	JoiningDate string     `json:"joiningDate,omitempty"`
}

// EmployeePayload is the body sent on create and update. It never carries an
// id or credentials: the server assigns ids and credentials travel through
// their own endpoint.
type EmployeePayload struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Salary      float64 `json:"salary"`
	Department  string  `json:"department"`
	JoiningDate string  `json:"joiningDate,omitempty"`
}

// EmployeeForm holds form fields exactly as the user typed them.
type EmployeeForm struct {
	FirstName   string
	LastName    string
	Email       string
	Salary      string
	Department  string
	JoiningDate string

	// Username and Password only appear on the self-service profile form.
	Username string
	Password string
}

// FormFromEmployee fills a form from a fetched record.
func FormFromEmployee(e Employee) EmployeeForm {
	return EmployeeForm{
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		Salary:      strconv.FormatFloat(e.Salary, 'f', -1, 64),
		Department:  e.Department,
		JoiningDate: e.JoiningDate,
	}
}

// Payload converts the form into a request body. An empty salary becomes 0.
// Callers validate first; an unparsable salary also yields 0.
func (f EmployeeForm) Payload() EmployeePayload {
	var salary float64
	if s := strings.TrimSpace(f.Salary); s != "" {
		salary, _ = strconv.ParseFloat(s, 64)
	}
	return EmployeePayload{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Email:       f.Email,
		Salary:      salary,
		Department:  f.Department,
		JoiningDate: f.JoiningDate,
	}
}

// CredentialsUpdate carries only the credential fields that changed.
type CredentialsUpdate struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// CredentialsDelta compares the submitted username against the baseline
// (the email the profile was loaded with) and includes the password only
// when one was typed.
func CredentialsDelta(baseline, username, password string) CredentialsUpdate {
	var u CredentialsUpdate
	if username != "" && username != baseline {
		u.Username = &username
	}
	if password != "" {
		u.Password = &password
	}
	return u
}

func (u CredentialsUpdate) Empty() bool {
	return u.Username == nil && u.Password == nil
}

// FormErrors maps a form field name to its message.
type FormErrors map[string]string
