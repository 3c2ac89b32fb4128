package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/propstack/pkg/httpx"
)

type stubPinger struct{ err error }

func (s *stubPinger) Ping(_ context.Context) error { return s.err }

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func probeHealth(t *testing.T, probes map[string]httpx.Pinger) (int, healthBody) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(probes).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	var body healthBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	return rr.Code, body
}

func TestHealthHandler(t *testing.T) {
	t.Run("all dependencies healthy", func(t *testing.T) {
		code, body := probeHealth(t, map[string]httpx.Pinger{
			"database":  &stubPinger{},
			"redis":     &stubPinger{},
			"event_bus": &stubPinger{},
		})
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if body.Status != "ok" {
			t.Errorf("status: got %q, want %q", body.Status, "ok")
		}
		for name, state := range body.Checks {
			if state != "ok" {
				t.Errorf("probe %s: got %q, want %q", name, state, "ok")
			}
		}
	})

	t.Run("one dependency down degrades the whole response", func(t *testing.T) {
		code, body := probeHealth(t, map[string]httpx.Pinger{
			"database": &stubPinger{err: errors.New("conn refused")},
			"redis":    &stubPinger{},
		})
		if code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", code)
		}
		if body.Status != "degraded" {
			t.Errorf("status: got %q, want %q", body.Status, "degraded")
		}
		if body.Checks["database"] != "unreachable" {
			t.Errorf("database probe: got %q, want unreachable", body.Checks["database"])
		}
		if body.Checks["redis"] != "ok" {
			t.Errorf("redis probe: got %q, want ok", body.Checks["redis"])
		}
	})

	t.Run("every failing probe is named", func(t *testing.T) {
		code, body := probeHealth(t, map[string]httpx.Pinger{
			"database":  &stubPinger{err: errors.New("down")},
			"redis":     &stubPinger{err: errors.New("down")},
			"event_bus": &stubPinger{err: errors.New("down")},
		})
		if code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", code)
		}
		for _, name := range []string{"database", "redis", "event_bus"} {
			if body.Checks[name] != "unreachable" {
				t.Errorf("probe %s: got %q, want unreachable", name, body.Checks[name])
			}
		}
	})

	t.Run("responds with JSON content type", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h := httpx.HealthHandler(map[string]httpx.Pinger{"database": &stubPinger{}})
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

		if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
			t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
		}
	})
}
