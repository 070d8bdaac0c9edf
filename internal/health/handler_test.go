// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func get(t *testing.T, h http.HandlerFunc) (*httptest.ResponseRecorder, ReadinessResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var body ReadinessResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec, body
}

func TestReadiness(t *testing.T) {
	t.Run("all dependencies up", func(t *testing.T) {
		h := NewHandler(
			Dependency{Name: "database", Checker: pinger{}},
			Dependency{Name: "redis", Checker: pinger{}},
		)

		rec, body := get(t, h.Readiness)
		if rec.Code != http.StatusOK || body.Status != "ok" {
			t.Fatalf("status %d, body %+v", rec.Code, body)
		}
		if len(body.Checks) != 2 || body.Checks[1].Name != "redis" {
			t.Fatalf("checks = %+v", body.Checks)
		}
	})

	t.Run("failing dependency degrades", func(t *testing.T) {
		h := NewHandler(
			Dependency{Name: "database", Checker: pinger{}},
			Dependency{Name: "redis", Checker: pinger{err: errors.New("down")}},
		)

		rec, body := get(t, h.Readiness)
		if rec.Code != http.StatusServiceUnavailable || body.Status != "degraded" {
			t.Fatalf("status %d, body %+v", rec.Code, body)
		}
		if body.Checks[1].Healthy || body.Checks[1].Message != "ping failed" {
			t.Fatalf("redis check = %+v", body.Checks[1])
		}
	})

	t.Run("missing checker is unhealthy", func(t *testing.T) {
		h := NewHandler(Dependency{Name: "database"})

		_, body := get(t, h.Readiness)
		if body.Checks[0].Healthy {
			t.Fatalf("nil checker reported healthy")
		}
	})

	t.Run("shutting down", func(t *testing.T) {
		h := NewHandler()
		h.SetShutdown(true)

		rec, body := get(t, h.Readiness)
		if rec.Code != http.StatusServiceUnavailable || body.Status != "shutting_down" {
			t.Fatalf("status %d, body %+v", rec.Code, body)
		}
	})
}

func TestLiveness(t *testing.T) {
	h := NewHandler()

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	h.SetShutdown(true)
	rec = httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status after shutdown = %d", rec.Code)
	}
}
