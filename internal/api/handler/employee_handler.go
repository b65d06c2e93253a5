package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/empdir/portal/internal/api/middleware"
	"github.com/empdir/portal/internal/core/ports"
)

type employeePage struct {
	chrome
	State ports.ProfileState
}

// EmployeeHandler serves the self-service profile page.
type EmployeeHandler struct {
	profile ports.ProfileService
}

func NewEmployeeHandler(profile ports.ProfileService) *EmployeeHandler {
	return &EmployeeHandler{profile: profile}
}

func (h *EmployeeHandler) Show(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return h.render(c, h.profile.Load(c.Request().Context(), sess, c.Param("id")))
}

func (h *EmployeeHandler) Submit(c echo.Context) error {
	tab, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	req, err := bindEmployeeForm(c)
	if err != nil {
		return err
	}

	st := h.profile.Submit(c.Request().Context(), tab, sess, c.Param("id"), req.BaselineEmail, req.form())
	return h.render(c, st)
}

func (h *EmployeeHandler) render(c echo.Context, st ports.ProfileState) error {
	if st.Redirect != "" {
		return c.Redirect(http.StatusSeeOther, middleware.WithNotice(st.Redirect, st.Message))
	}
	return c.Render(http.StatusOK, "employee", employeePage{chrome: chrome{SignedIn: true}, State: st})
}
