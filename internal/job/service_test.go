// AngelaMos | 2026
// service_test.go

package job

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/store"
	"github.com/carterperez-dev/site-atlas/internal/trash"
)

const (
	siteID = "0d6f8a3e-7c2b-4e0a-8f51-6a8d3c2e9b02"
	jobID  = "9e2a4c71-3b5d-4f6e-a8c9-1d2e3f4a5b03"
)

var defaultCategories = []string{"Domestic", "Ag", "Drilling", "Electrical"}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	st := store.New(sqlx.NewDb(db, "pgx"))
	return NewService(st, trash.NewService(st), defaultCategories), mock
}

func siteRows(deleted bool) *sqlmock.Rows {
	var deletedAt any
	if deleted {
		deletedAt = time.Now()
	}
	return sqlmock.NewRows([]string{
		"id", "customer_id", "name", "latitude", "longitude",
		"deleted", "deleted_at", "created_at", "updated_at",
	}).AddRow(siteID, "c-1", "Cottonwood Site 2", 40.38, -122.28, deleted, deletedAt, time.Now(), time.Now())
}

func TestDefaultJobNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^JOB-0d6f8a3e-[1-9][0-9]{2}$`)
	for range 50 {
		if n := DefaultJobNumber(siteID); !pattern.MatchString(n) {
			t.Fatalf("job number %q does not match %s", n, pattern)
		}
	}
}

func TestCreate(t *testing.T) {
	t.Run("unknown category", func(t *testing.T) {
		svc, mock := newTestService(t)

		_, err := svc.Create(context.Background(), siteID, CreateInput{Category: "Plumbing"})
		if !errors.Is(err, core.ErrInvalidInput) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unexpected SQL: %v", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM sites WHERE id = $1")).
			WithArgs(siteID).
			WillReturnRows(siteRows(false))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO jobs")).
			WithArgs(sqlmock.AnyArg(), siteID, sqlmock.AnyArg(), "Domestic", "Open").
			WillReturnRows(sqlmock.NewRows([]string{"deleted", "deleted_at", "created_at", "updated_at"}).
				AddRow(false, nil, time.Now(), time.Now()))
		mock.ExpectCommit()

		j, err := svc.Create(context.Background(), siteID, CreateInput{})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if j.Category != "Domestic" || j.Status != "Open" {
			t.Fatalf("job = %+v", j)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet SQL expectations: %v", err)
		}
	})

	t.Run("deleted site", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM sites WHERE id = $1")).
			WithArgs(siteID).
			WillReturnRows(siteRows(true))
		mock.ExpectRollback()

		_, err := svc.Create(context.Background(), siteID, CreateInput{JobNumber: "COT-1-AG", Category: "Ag"})
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet SQL expectations: %v", err)
		}
	})
}

func TestGetHidesDeletedJobs(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs WHERE id = $1")).
		WithArgs(jobID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "site_id", "job_number", "category", "status",
			"deleted", "deleted_at", "created_at", "updated_at",
		}).AddRow(jobID, siteID, "COT-1-AG", "Ag", "Open", true, time.Now(), time.Now(), time.Now()))

	if _, err := svc.Get(context.Background(), jobID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
