package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/empdir/portal/internal/core/domain"
)

// employeeFormRequest is the posted body of the admin and profile forms.
type employeeFormRequest struct {
	Action        string `form:"action"`
	EmployeeID    string `form:"employeeId"`
	BaselineEmail string `form:"baselineEmail"`

	FirstName   string `form:"firstName"`
	LastName    string `form:"lastName"`
	Email       string `form:"email"`
	Salary      string `form:"salary"`
	Department  string `form:"department"`
	JoiningDate string `form:"joiningDate"`
	Username    string `form:"username"`
	Password    string `form:"password"`
}

func bindEmployeeForm(c echo.Context) (employeeFormRequest, error) {
	var req employeeFormRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	return req, nil
}

func (r employeeFormRequest) form() domain.EmployeeForm {
	return domain.EmployeeForm{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Salary:      r.Salary,
		Department:  r.Department,
		JoiningDate: r.JoiningDate,
		Username:    r.Username,
		Password:    r.Password,
	}
}
