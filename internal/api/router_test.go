package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/empdir/portal/internal/api/middleware"
	"github.com/empdir/portal/internal/core/service"
	"github.com/empdir/portal/internal/core/validation"
	"github.com/empdir/portal/internal/infrastructure/db/memory"
	"github.com/empdir/portal/internal/infrastructure/directory"
	"github.com/empdir/portal/internal/infrastructure/http/handlers"
)

// fakeDirectory is a minimal Directory API backed by a map.
type fakeDirectory struct {
	mu        sync.Mutex
	employees map[string]map[string]any
	token     string
}

func (f *fakeDirectory) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path == "/api/auth/login" {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": f.token, "id": "1"})
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+f.token {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/employees":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = len(f.employees) + 1
		f.employees["new"] = body
		_ = json.NewEncoder(w).Encode(body)
	case r.Method == http.MethodGet && r.URL.Path == "/api/employees":
		list := make([]map[string]any, 0, len(f.employees))
		for _, e := range f.employees {
			list = append(list, e)
		}
		_ = json.NewEncoder(w).Encode(list)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestPortal(t *testing.T) (*echo.Echo, *fakeDirectory) {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	fake := &fakeDirectory{employees: map[string]map[string]any{}, token: signed}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	store := memory.NewTabStore(0)
	client := directory.NewClient(directory.Config{BaseURL: srv.URL}, log)
	sessions := service.NewSessionService(store)
	submissions := service.NewSubmissionGuard(store, time.Second, log)
	v := validation.New(nil)

	reg := prometheus.NewRegistry()
	e := NewRouter(Dependencies{
		Auth:       service.NewAuthService(client, sessions, log),
		Guard:      service.NewAccessGuard(sessions, log, nil),
		Dashboard:  service.NewAdminDashboard(client, v, submissions, log, nil),
		Profile:    service.NewProfileService(client, v, submissions, true, log),
		Readiness:  map[string]handlers.Pinger{"session_store": store, "directory": client},
		Registerer: reg,
		Gatherer:   reg,
		Log:        log,
	})
	return e, fake
}

func serve(e *echo.Echo, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func tabCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.TabCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie issued", middleware.TabCookie)
	return nil
}

func TestRouter_AdminFlow(t *testing.T) {
	e, fake := newTestPortal(t)

	// Landing issues the browser namespace.
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("landing: expected 200, got %d", rec.Code)
	}
	cookie := tabCookie(t, rec)

	// Dashboard is gated before login.
	rec = serve(e, httptest.NewRequest(http.MethodGet, "/admin", nil), cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect before login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	// Login.
	rec = serve(e, postForm("/login/admin", url.Values{"username": {"admin"}, "password": {"pw"}}), cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/admin" {
		t.Fatalf("expected redirect to /admin, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	// Add an employee with no salary or joining date.
	rec = serve(e, postForm("/admin", url.Values{
		"action":     {"add"},
		"firstName":  {"Jane"},
		"lastName":   {"Doe"},
		"email":      {"jane@corp.com"},
		"department": {"Eng"},
	}), cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Employee added successfully") {
		t.Fatalf("add failed: %d %s", rec.Code, rec.Body.String())
	}
	created := fake.employees["new"]
	if created["salary"] != float64(0) || created["joiningDate"] != time.Now().Format("2006-01-02") {
		t.Fatalf("unexpected payload: %v", created)
	}
	if _, ok := created["password"]; ok {
		t.Fatalf("payload must not carry credentials: %v", created)
	}

	// List.
	rec = serve(e, postForm("/admin", url.Values{"action": {"getAll"}}), cookie)
	if !strings.Contains(rec.Body.String(), "Jane") {
		t.Fatalf("expected listed employee, got %s", rec.Body.String())
	}

	// Logout clears the session.
	rec = serve(e, httptest.NewRequest(http.MethodPost, "/logout", nil), cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout: expected 303, got %d", rec.Code)
	}
	rec = serve(e, httptest.NewRequest(http.MethodGet, "/admin", nil), cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after logout, got %d", rec.Code)
	}
}

func TestRouter_EmployeeCannotOpenDashboard(t *testing.T) {
	e, _ := newTestPortal(t)
	cookie := tabCookie(t, serve(e, httptest.NewRequest(http.MethodGet, "/", nil), nil))

	rec := serve(e, postForm("/login/employee", url.Values{"username": {"jane"}, "password": {"pw"}}), cookie)
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/employee/1" {
		t.Fatalf("expected /employee/1, got %q", loc)
	}

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/admin", nil), cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	// The mismatch cleared the session, so the profile is gated too.
	rec = serve(e, httptest.NewRequest(http.MethodGet, "/employee/1", nil), cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected session to be cleared, got %d", rec.Code)
	}
}

func TestRouter_BadLogin(t *testing.T) {
	e, _ := newTestPortal(t)

	rec := serve(e, postForm("/login/admin", url.Values{"username": {"admin"}, "password": {"wrong"}}), nil)
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "Invalid credentials!") {
		t.Fatalf("expected login failure page, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UnknownPathRedirects(t *testing.T) {
	e, _ := newTestPortal(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/no/such/page", nil), nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	e, _ := newTestPortal(t)

	if rec := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil), nil); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := serve(e, httptest.NewRequest(http.MethodGet, "/health/ready", nil), nil); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}

	serve(e, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil), nil)
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "portal_http_requests_total") {
		t.Fatalf("expected http metrics, got %s", body)
	}
}
