// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/site-atlas/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, h *Handler, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body envelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec, body
}

func TestRecordStats(t *testing.T) {
	counts := &store.Counts{
		Customers: store.RecordCounts{Active: 4, Deleted: 1},
		Sites:     store.RecordCounts{Active: 40, Deleted: 10},
		Jobs:      store.RecordCounts{Active: 160, Deleted: 40},
	}

	t.Run("reports counts", func(t *testing.T) {
		h := NewHandler(HandlerConfig{
			Counts: func(context.Context) (*store.Counts, error) { return counts, nil },
		})

		rec, body := serve(t, h, "/admin/stats/records")
		if rec.Code != http.StatusOK || !body.Success {
			t.Fatalf("status %d", rec.Code)
		}

		var got store.Counts
		if err := json.Unmarshal(body.Data, &got); err != nil {
			t.Fatalf("decode counts: %v", err)
		}
		if got != *counts {
			t.Fatalf("counts = %+v", got)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		h := NewHandler(HandlerConfig{
			Counts: func(context.Context) (*store.Counts, error) {
				return nil, errors.New("connection refused")
			},
		})

		rec, body := serve(t, h, "/admin/stats/records")
		if rec.Code != http.StatusInternalServerError || body.Success {
			t.Fatalf("status %d", rec.Code)
		}
	})

	t.Run("system stats include records", func(t *testing.T) {
		h := NewHandler(HandlerConfig{
			DBPing: func(context.Context) error { return nil },
			Counts: func(context.Context) (*store.Counts, error) { return counts, nil },
		})

		_, body := serve(t, h, "/admin/stats")

		var got SystemStatsResponse
		if err := json.Unmarshal(body.Data, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !got.Database.Healthy || got.Records == nil || got.Records.Sites.Active != 40 {
			t.Fatalf("stats = %+v", got)
		}
	})
}
