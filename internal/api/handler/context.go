package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/empdir/portal/internal/api/middleware"
	"github.com/empdir/portal/internal/core/domain"
)

// ctxSession returns the namespace id and the session the guard admitted.
// A missing session means the page was mounted without RequireRole.
func ctxSession(c echo.Context) (string, domain.Session, error) {
	tab := middleware.TabID(c)
	if tab == "" {
		return "", domain.Session{}, echo.NewHTTPError(http.StatusInternalServerError, "request has no browser namespace")
	}
	sess, ok := middleware.Session(c)
	if !ok {
		return "", domain.Session{}, domain.ErrNoSession
	}
	return tab, sess, nil
}
