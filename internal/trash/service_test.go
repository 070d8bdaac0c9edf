// AngelaMos | 2026
// service_test.go

package trash

import (
	"context"
	"database/sql/driver"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
	"github.com/carterperez-dev/site-atlas/internal/store"
)

const (
	customerID = "5b0c61f4-5f1e-4a53-9a3c-2b7f0f3f6d01"
	siteID     = "0d6f8a3e-7c2b-4e0a-8f51-6a8d3c2e9b02"
	jobID      = "9e2a4c71-3b5d-4f6e-a8c9-1d2e3f4a5b03"
)

var fixedNow = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

// stampedAt matches a non-null deleted_at equal to want.
type stampedAt time.Time

func (a stampedAt) Match(v driver.Value) bool {
	switch ts := v.(type) {
	case time.Time:
		return ts.Equal(time.Time(a))
	case *time.Time:
		return ts != nil && ts.Equal(time.Time(a))
	default:
		return false
	}
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewService(store.New(sqlx.NewDb(db, "pgx")))
	svc.now = func() time.Time { return fixedNow }

	return svc, mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

var (
	customerCols = []string{"id", "name", "deleted", "deleted_at", "created_at", "updated_at"}
	siteCols     = []string{
		"id", "customer_id", "name", "latitude", "longitude",
		"deleted", "deleted_at", "created_at", "updated_at",
	}
	jobCols = []string{
		"id", "site_id", "job_number", "category", "status",
		"deleted", "deleted_at", "created_at", "updated_at",
	}
)

func TestSoftDeleteCustomerCascades(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("UPDATE customers")).
		WithArgs(customerID, true, stampedAt(fixedNow)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE sites")).
		WithArgs(customerID, true, stampedAt(fixedNow)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(q("UPDATE jobs")).
		WithArgs(customerID, true, stampedAt(fixedNow)).
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectCommit()

	c, err := svc.SoftDelete(context.Background(), lifecycle.KindCustomer, customerID)
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if c.Sites != 3 || c.Jobs != 12 {
		t.Fatalf("cascade = %+v, want 3 sites and 12 jobs", c)
	}
	if !c.DeletedAt.Equal(fixedNow) {
		t.Fatalf("deleted at = %v, want %v", c.DeletedAt, fixedNow)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestStampedAtRequiresTimestamp(t *testing.T) {
	m := stampedAt(fixedNow)
	if m.Match(nil) || m.Match((*time.Time)(nil)) {
		t.Fatalf("null deleted_at matched")
	}
	if m.Match(fixedNow.Add(time.Second)) {
		t.Fatalf("wrong deleted_at matched")
	}
	if !m.Match(fixedNow) {
		t.Fatalf("exact deleted_at rejected")
	}
}

func TestSoftDeleteSiteCascadesToJobsOnly(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("UPDATE sites")).
		WithArgs(siteID, true, stampedAt(fixedNow)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("WHERE site_id = $1")).
		WithArgs(siteID, true, stampedAt(fixedNow)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	c, err := svc.SoftDelete(context.Background(), lifecycle.KindSite, siteID)
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if c.Sites != 0 || c.Jobs != 4 {
		t.Fatalf("cascade = %+v", c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSoftDeleteCascadeFailureRollsBack(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("UPDATE customers")).
		WithArgs(customerID, true, stampedAt(fixedNow)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE sites")).
		WithArgs(customerID, true, stampedAt(fixedNow)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q("UPDATE jobs")).
		WithArgs(customerID, true, stampedAt(fixedNow)).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	_, err := svc.SoftDelete(context.Background(), lifecycle.KindCustomer, customerID)
	if !errors.Is(err, core.ErrTransactionFailed) {
		t.Fatalf("expected transaction failure, got %v", err)
	}
	if got := core.Classify(err, "customer").Code; got != core.CodeTransactionFailed {
		t.Fatalf("code = %s", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSoftDeleteMissingRecord(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("UPDATE jobs")).
		WithArgs(jobID, true, stampedAt(fixedNow)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.SoftDelete(context.Background(), lifecycle.KindJob, jobID)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if errors.Is(err, core.ErrTransactionFailed) {
		t.Fatalf("not found must not be reported as a transaction failure")
	}
}

func TestRestoreSiteLeavesCustomerDeleted(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM sites WHERE id = $1")).
		WithArgs(siteID).
		WillReturnRows(sqlmock.NewRows(siteCols).
			AddRow(siteID, customerID, "Chico Site 1", 39.72, -121.83, true, fixedNow, fixedNow, fixedNow))
	mock.ExpectExec(q("UPDATE sites")).
		WithArgs(siteID, false, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Restore(context.Background(), lifecycle.KindSite, siteID); err != nil {
		t.Fatalf("restore: %v", err)
	}

	// no statement touched customers or jobs
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestRestoreCustomerNameTaken(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM customers WHERE id = $1")).
		WithArgs(customerID).
		WillReturnRows(sqlmock.NewRows(customerCols).
			AddRow(customerID, "Adams Water Co", true, fixedNow, fixedNow, fixedNow))
	mock.ExpectExec(q("UPDATE customers")).
		WithArgs(customerID, false, nil).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := svc.Restore(context.Background(), lifecycle.KindCustomer, customerID)
	appErr := core.Classify(err, "customer")
	if appErr.Code != core.CodeConflict {
		t.Fatalf("code = %s (%v)", appErr.Code, err)
	}
	if !strings.Contains(appErr.Message, "Adams Water Co") {
		t.Fatalf("message = %q", appErr.Message)
	}
}

func TestPurge(t *testing.T) {
	t.Run("active record is rejected", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(q("FROM jobs WHERE id = $1")).
			WithArgs(jobID).
			WillReturnRows(sqlmock.NewRows(jobCols).
				AddRow(jobID, siteID, "CHI-1-DOM", "Domestic", "Open", false, nil, fixedNow, fixedNow))
		mock.ExpectRollback()

		err := svc.Purge(context.Background(), lifecycle.KindJob, jobID)
		if !errors.Is(err, core.ErrInvalidInput) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet SQL expectations: %v", err)
		}
	})

	t.Run("deleted record is removed for good", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(q("FROM jobs WHERE id = $1")).
			WithArgs(jobID).
			WillReturnRows(sqlmock.NewRows(jobCols).
				AddRow(jobID, siteID, "CHI-1-DOM", "Domestic", "Open", true, fixedNow, fixedNow, fixedNow))
		mock.ExpectExec(q("DELETE FROM jobs WHERE id = $1")).
			WithArgs(jobID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectQuery(q("FROM jobs WHERE id = $1")).
			WithArgs(jobID).
			WillReturnRows(sqlmock.NewRows(jobCols))

		if err := svc.Purge(context.Background(), lifecycle.KindJob, jobID); err != nil {
			t.Fatalf("purge: %v", err)
		}

		_, err := svc.store.Jobs.GetByID(context.Background(), jobID)
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected not found after purge, got %v", err)
		}
	})

	t.Run("purging a customer leaves its sites", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(q("FROM customers WHERE id = $1")).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows(customerCols).
				AddRow(customerID, "Adams Water Co", true, fixedNow, fixedNow, fixedNow))
		mock.ExpectExec(q("DELETE FROM customers WHERE id = $1")).
			WithArgs(customerID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := svc.Purge(context.Background(), lifecycle.KindCustomer, customerID); err != nil {
			t.Fatalf("purge: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet SQL expectations: %v", err)
		}
	})
}

func TestHandler(t *testing.T) {
	newRouter := func(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
		svc, mock := newTestService(t)
		r := chi.NewRouter()
		NewHandler(svc).RegisterRoutes(r)
		return r, mock
	}

	t.Run("unknown kind", func(t *testing.T) {
		r, _ := newRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/deleted/widget/"+jobID+"/purge", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		r, _ := newRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/deleted/job/42/restore", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("restore missing record", func(t *testing.T) {
		r, mock := newRouter(t)

		mock.ExpectBegin()
		mock.ExpectQuery(q("FROM sites WHERE id = $1")).
			WithArgs(siteID).
			WillReturnRows(sqlmock.NewRows(siteCols))
		mock.ExpectRollback()

		req := httptest.NewRequest(http.MethodPost, "/deleted/site/"+siteID+"/restore", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), core.CodeNotFound) {
			t.Fatalf("body = %s", rec.Body.String())
		}
	})

	t.Run("purge deleted job", func(t *testing.T) {
		r, mock := newRouter(t)

		mock.ExpectBegin()
		mock.ExpectQuery(q("FROM jobs WHERE id = $1")).
			WithArgs(jobID).
			WillReturnRows(sqlmock.NewRows(jobCols).
				AddRow(jobID, siteID, "JOB-1", "Ag", "Open", true, fixedNow, fixedNow, fixedNow))
		mock.ExpectExec(q("DELETE FROM jobs WHERE id = $1")).
			WithArgs(jobID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		req := httptest.NewRequest(http.MethodPost, "/deleted/job/"+jobID+"/purge", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("list deleted", func(t *testing.T) {
		r, mock := newRouter(t)
		mock.MatchExpectationsInOrder(false)

		mock.ExpectQuery(q("FROM customers")).
			WillReturnRows(sqlmock.NewRows(customerCols).
				AddRow(customerID, "Adams Water Co", true, fixedNow, fixedNow, fixedNow))
		mock.ExpectQuery(q("FROM sites")).
			WillReturnRows(sqlmock.NewRows(siteCols))
		mock.ExpectQuery(q("FROM jobs")).
			WillReturnRows(sqlmock.NewRows(jobCols))

		req := httptest.NewRequest(http.MethodGet, "/deleted", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Adams Water Co") {
			t.Fatalf("body = %s", rec.Body.String())
		}
	})
}
