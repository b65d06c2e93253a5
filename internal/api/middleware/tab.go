package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TabCookie names the cookie that identifies a browser's namespace.
	TabCookie = "portal_tab"
	ctxTab    = "tab"
)

// Tab makes sure every request belongs to a browser namespace, issuing a
// fresh random id when the cookie is missing or malformed. The cookie has no
// expiry, so it ends with the browser session.
func Tab(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(TabCookie); err == nil {
				if parsed, err := uuid.Parse(ck.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     TabCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(ctxTab, id)
			return next(c)
		}
	}
}

// TabID returns the namespace id set by Tab.
func TabID(c echo.Context) string {
	id, _ := c.Get(ctxTab).(string)
	return id
}
