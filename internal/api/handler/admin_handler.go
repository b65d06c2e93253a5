package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/empdir/portal/internal/core/ports"
)

type actionLink struct {
	Action ports.Action
	Label  string
}

var adminActions = []actionLink{
	{ports.ActionAdd, "Add Employee"},
	{ports.ActionUpdate, "Update Employee"},
	{ports.ActionDelete, "Delete Employee"},
	{ports.ActionGet, "Get Employee"},
	{ports.ActionGetAll, "Get All Employees"},
}

type adminPage struct {
	chrome
	Actions []actionLink
	State   ports.DashboardState
}

// AdminHandler serves the administrator dashboard.
type AdminHandler struct {
	dashboard ports.DashboardService
}

func NewAdminHandler(dashboard ports.DashboardService) *AdminHandler {
	return &AdminHandler{dashboard: dashboard}
}

// Show opens the form for ?action=; unknown actions show the idle page.
func (h *AdminHandler) Show(c echo.Context) error {
	action, ok := ports.ParseAction(c.QueryParam("action"))
	if !ok {
		action = ports.ActionNone
	}
	return h.render(c, h.dashboard.Open(action))
}

func (h *AdminHandler) Submit(c echo.Context) error {
	tab, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	req, err := bindEmployeeForm(c)
	if err != nil {
		return err
	}

	action, ok := ports.ParseAction(req.Action)
	if !ok {
		return h.render(c, h.dashboard.Open(ports.ActionNone))
	}

	st := h.dashboard.Submit(c.Request().Context(), tab, sess, action, req.EmployeeID, req.form())
	return h.render(c, st)
}

func (h *AdminHandler) render(c echo.Context, st ports.DashboardState) error {
	return c.Render(http.StatusOK, "admin", adminPage{
		chrome:  chrome{SignedIn: true},
		Actions: adminActions,
		State:   st,
	})
}
