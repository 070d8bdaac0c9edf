// AngelaMos | 2026
// job.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
)

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	SetLifecycle(ctx context.Context, id string, rec lifecycle.Record) error
	SetLifecycleBySite(
		ctx context.Context,
		siteID string,
		rec lifecycle.Record,
	) (int64, error)
	SetLifecycleByCustomer(
		ctx context.Context,
		customerID string,
		rec lifecycle.Record,
	) (int64, error)
	Delete(ctx context.Context, id string) error
	ListActiveBySite(ctx context.Context, siteID string) ([]Job, error)
	ListDeleted(ctx context.Context) ([]Job, error)
	Count(ctx context.Context) (RecordCounts, error)
}

const jobColumns = `id, site_id, job_number, category, status,
		deleted, deleted_at, created_at, updated_at`

type jobRepository struct {
	db core.DBTX
}

func NewJobRepository(db core.DBTX) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, j *Job) error {
	query := `
		INSERT INTO jobs (id, site_id, job_number, category, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING deleted, deleted_at, created_at, updated_at`

	err := r.db.GetContext(ctx, j, query,
		j.ID,
		j.SiteID,
		j.JobNumber,
		j.Category,
		j.Status,
	)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}

	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var j Job
	err := r.db.GetContext(ctx, &j, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	return &j, nil
}

func (r *jobRepository) SetLifecycle(
	ctx context.Context,
	id string,
	rec lifecycle.Record,
) error {
	query := `
		UPDATE jobs
		SET deleted = $2, deleted_at = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, rec.Deleted, rec.DeletedAt)
	if err != nil {
		return fmt.Errorf("set job state: %w", err)
	}

	return expectOneRow(result, "set job state")
}

func (r *jobRepository) SetLifecycleBySite(
	ctx context.Context,
	siteID string,
	rec lifecycle.Record,
) (int64, error) {
	query := `
		UPDATE jobs
		SET deleted = $2, deleted_at = $3, updated_at = NOW()
		WHERE site_id = $1`

	result, err := r.db.ExecContext(ctx, query, siteID, rec.Deleted, rec.DeletedAt)
	if err != nil {
		return 0, fmt.Errorf("cascade site jobs: %w", err)
	}

	return rowsAffected(result, "cascade site jobs")
}

// SetLifecycleByCustomer reaches jobs through every site the customer
// owns, whatever state those sites are in.
func (r *jobRepository) SetLifecycleByCustomer(
	ctx context.Context,
	customerID string,
	rec lifecycle.Record,
) (int64, error) {
	query := `
		UPDATE jobs
		SET deleted = $2, deleted_at = $3, updated_at = NOW()
		WHERE site_id IN (SELECT id FROM sites WHERE customer_id = $1)`

	result, err := r.db.ExecContext(ctx, query, customerID, rec.Deleted, rec.DeletedAt)
	if err != nil {
		return 0, fmt.Errorf("cascade customer jobs: %w", err)
	}

	return rowsAffected(result, "cascade customer jobs")
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("purge job: %w", err)
	}

	return expectOneRow(result, "purge job")
}

func (r *jobRepository) ListActiveBySite(
	ctx context.Context,
	siteID string,
) ([]Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE site_id = $1 AND NOT deleted
		ORDER BY job_number ASC, id ASC`

	jobs := []Job{}
	if err := r.db.SelectContext(ctx, &jobs, query, siteID); err != nil {
		return nil, fmt.Errorf("list site jobs: %w", err)
	}

	return jobs, nil
}

func (r *jobRepository) ListDeleted(ctx context.Context) ([]Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE deleted
		ORDER BY deleted_at DESC, id ASC`

	jobs := []Job{}
	if err := r.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("list deleted jobs: %w", err)
	}

	return jobs, nil
}

func (r *jobRepository) Count(ctx context.Context) (RecordCounts, error) {
	return countRecords(ctx, r.db, "jobs")
}
