// AngelaMos | 2026
// site.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
)

type SiteRepository interface {
	Create(ctx context.Context, site *Site) error
	GetByID(ctx context.Context, id string) (*Site, error)
	SetLifecycle(ctx context.Context, id string, rec lifecycle.Record) error
	SetLifecycleByCustomer(
		ctx context.Context,
		customerID string,
		rec lifecycle.Record,
	) (int64, error)
	Delete(ctx context.Context, id string) error
	ListActiveByCustomer(ctx context.Context, customerID string) ([]Site, error)
	ListDeleted(ctx context.Context) ([]Site, error)
	ListSummaries(ctx context.Context) ([]SiteSummary, error)
	Count(ctx context.Context) (RecordCounts, error)
}

const siteColumns = `id, customer_id, name, latitude, longitude,
		deleted, deleted_at, created_at, updated_at`

type siteRepository struct {
	db core.DBTX
}

func NewSiteRepository(db core.DBTX) SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) Create(ctx context.Context, s *Site) error {
	query := `
		INSERT INTO sites (id, customer_id, name, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING deleted, deleted_at, created_at, updated_at`

	err := r.db.GetContext(ctx, s, query,
		s.ID,
		s.CustomerID,
		s.Name,
		s.Latitude,
		s.Longitude,
	)
	if err != nil {
		return fmt.Errorf("create site: %w", err)
	}

	return nil
}

func (r *siteRepository) GetByID(ctx context.Context, id string) (*Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = $1`

	var s Site
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get site: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get site: %w", err)
	}

	return &s, nil
}

func (r *siteRepository) SetLifecycle(
	ctx context.Context,
	id string,
	rec lifecycle.Record,
) error {
	query := `
		UPDATE sites
		SET deleted = $2, deleted_at = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, rec.Deleted, rec.DeletedAt)
	if err != nil {
		return fmt.Errorf("set site state: %w", err)
	}

	return expectOneRow(result, "set site state")
}

// SetLifecycleByCustomer writes rec to every site of the customer,
// including sites already in that state, and returns how many it touched.
func (r *siteRepository) SetLifecycleByCustomer(
	ctx context.Context,
	customerID string,
	rec lifecycle.Record,
) (int64, error) {
	query := `
		UPDATE sites
		SET deleted = $2, deleted_at = $3, updated_at = NOW()
		WHERE customer_id = $1`

	result, err := r.db.ExecContext(ctx, query, customerID, rec.Deleted, rec.DeletedAt)
	if err != nil {
		return 0, fmt.Errorf("cascade sites: %w", err)
	}

	return rowsAffected(result, "cascade sites")
}

func (r *siteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("purge site: %w", err)
	}

	return expectOneRow(result, "purge site")
}

func (r *siteRepository) ListActiveByCustomer(
	ctx context.Context,
	customerID string,
) ([]Site, error) {
	query := `
		SELECT ` + siteColumns + `
		FROM sites
		WHERE customer_id = $1 AND NOT deleted
		ORDER BY name ASC, id ASC`

	sites := []Site{}
	if err := r.db.SelectContext(ctx, &sites, query, customerID); err != nil {
		return nil, fmt.Errorf("list customer sites: %w", err)
	}

	return sites, nil
}

func (r *siteRepository) ListDeleted(ctx context.Context) ([]Site, error) {
	query := `
		SELECT ` + siteColumns + `
		FROM sites
		WHERE deleted
		ORDER BY deleted_at DESC, id ASC`

	sites := []Site{}
	if err := r.db.SelectContext(ctx, &sites, query); err != nil {
		return nil, fmt.Errorf("list deleted sites: %w", err)
	}

	return sites, nil
}

// ListSummaries returns every active site in creation order. The owner
// name is empty when the customer row has been purged.
func (r *siteRepository) ListSummaries(ctx context.Context) ([]SiteSummary, error) {
	query := `
		SELECT s.id, s.name, s.latitude, s.longitude, s.customer_id,
		       COALESCE(c.name, '') AS customer_name,
		       COALESCE(string_agg(DISTINCT j.category, ',' ORDER BY j.category), '') AS categories,
		       s.created_at
		FROM sites s
		LEFT JOIN customers c ON c.id = s.customer_id
		LEFT JOIN jobs j ON j.site_id = s.id AND NOT j.deleted
		WHERE NOT s.deleted
		GROUP BY s.id, c.name
		ORDER BY s.created_at ASC, s.id ASC`

	summaries := []SiteSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("list site summaries: %w", err)
	}

	return summaries, nil
}

func (r *siteRepository) Count(ctx context.Context) (RecordCounts, error) {
	return countRecords(ctx, r.db, "sites")
}
