package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestTab_IssuesCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	handler := Tab(true)(func(c echo.Context) error {
		seen = TabID(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected a uuid namespace, got %q", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != TabCookie || ck.Value != seen || !ck.HttpOnly || !ck.Secure {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
	if ck.MaxAge != 0 || !ck.Expires.IsZero() {
		t.Fatalf("cookie must be session scoped: %+v", ck)
	}
}

func TestTab_ReusesValidCookie(t *testing.T) {
	e := echo.New()
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TabCookie, Value: id})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Tab(false)(func(c echo.Context) error {
		if TabID(c) != id {
			t.Fatalf("expected %s, got %s", id, TabID(c))
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("valid cookie must not be reissued")
	}
}

func TestTab_ReplacesMalformedCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TabCookie, Value: "../../etc"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Tab(false)(func(c echo.Context) error {
		if TabID(c) == "../../etc" {
			t.Fatalf("malformed id must not be used")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatalf("expected a fresh cookie")
	}
}
