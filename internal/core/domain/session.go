package domain

// Role is the portal role stored alongside the bearer token.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// RoleFromRoute maps the login route parameter to a role. Only "admin"
// selects the administrator role; every other value logs in as an employee.
func RoleFromRoute(param string) Role {
	if param == "admin" {
		return RoleAdmin
	}
	return RoleEmployee
}

// HomePath is where a freshly logged-in user of this role lands.
func (r Role) HomePath(userID string) string {
	if r == RoleAdmin {
		return "/admin"
	}
	return "/employee/" + userID
}

// Session is the login state held in a browser namespace.
type Session struct {
	Token  string
	Role   Role
	UserID string
}

// LoginResult is what the Directory API returns for a successful login.
type LoginResult struct {
	Token string     `json:"token"`
	ID    EmployeeID `json:"id"`
}
