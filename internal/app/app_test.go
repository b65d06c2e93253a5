package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/empdir/portal/internal/infrastructure/config"
)

func testConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(context.Background(), envconfig.MapLookuper(env))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func TestNew_MemoryBackend(t *testing.T) {
	directory := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer directory.Close()

	cfg := testConfig(t, map[string]string{"DIRECTORY_API_URL": directory.URL})
	a, err := New(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	if err := a.Check(context.Background()); err != nil {
		t.Fatalf("expected dependencies to be ready, got %v", err)
	}

	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected landing page, got %d", rec.Code)
	}
}

func TestCheck_DirectoryDown(t *testing.T) {
	directory := httptest.NewServer(http.NotFoundHandler())
	url := directory.URL
	directory.Close()

	cfg := testConfig(t, map[string]string{"DIRECTORY_API_URL": url})
	a, err := New(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	if err := a.Check(context.Background()); err == nil {
		t.Fatal("expected an error for an unreachable directory")
	}
}

func TestNew_RedisUnreachable(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"SESSION_BACKEND": "redis",
		"REDIS_ADDR":      "127.0.0.1:1",
	})
	if _, err := New(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Fatal("expected an error when redis cannot be reached")
	}
}
