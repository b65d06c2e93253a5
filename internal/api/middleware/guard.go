package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/empdir/portal/internal/core/domain"
	"github.com/empdir/portal/internal/core/ports"
)

const ctxSession = "session"

// RequireRole runs the access guard before the page handler. Blocked
// requests are redirected and never reach the handler, so no protected
// data is fetched for them. Must be mounted after Tab.
func RequireRole(guard ports.AccessGuard, role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d, err := guard.Require(c.Request().Context(), TabID(c), role)
			if err != nil {
				return err
			}
			if d.Blocked {
				return c.Redirect(http.StatusSeeOther, WithNotice(d.Redirect, d.Notice))
			}

			c.Set(ctxSession, d.Session)
			return next(c)
		}
	}
}

// Session returns the session the guard admitted.
func Session(c echo.Context) (domain.Session, bool) {
	s, ok := c.Get(ctxSession).(domain.Session)
	return s, ok
}

// WithNotice appends a notice query value to path when notice is set.
func WithNotice(path, notice string) string {
	if notice == "" {
		return path
	}
	return path + "?" + url.Values{"notice": {notice}}.Encode()
}
