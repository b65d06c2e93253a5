package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/empdir/portal/internal/api/middleware"
	"github.com/empdir/portal/internal/core/domain"
	"github.com/empdir/portal/internal/core/ports"
	"github.com/empdir/portal/internal/core/service"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// LoginPage renders the login form for the role in the route.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", newLoginPage(c.Param("role")))
}

// Login authenticates and redirects to the role's home page. Any failure
// shows the same notice.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	routeRole := c.Param("role")
	next, err := h.authService.Login(c.Request().Context(), middleware.TabID(c), domain.RoleFromRoute(routeRole), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			page := newLoginPage(routeRole)
			page.Username = req.Username
			page.Notice = service.MsgInvalidCredentials
			return c.Render(http.StatusUnauthorized, "login", page)
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, next)
}

// Logout clears the session and returns to the landing page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.TabID(c)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, service.LandingPath)
}

func newLoginPage(routeRole string) loginPage {
	label := "Employee"
	if domain.RoleFromRoute(routeRole) == domain.RoleAdmin {
		label = "Admin"
	}
	return loginPage{RouteRole: routeRole, RoleLabel: label}
}
