// AngelaMos | 2026
// customer.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	SetLifecycle(ctx context.Context, id string, rec lifecycle.Record) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]Customer, error)
	ListDeleted(ctx context.Context) ([]Customer, error)
	ExistsActiveByName(ctx context.Context, name, excludeID string) (bool, error)
	Count(ctx context.Context) (RecordCounts, error)
}

const customerColumns = `id, name, deleted, deleted_at, created_at, updated_at`

type customerRepository struct {
	db core.DBTX
}

func NewCustomerRepository(db core.DBTX) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *Customer) error {
	query := `
		INSERT INTO customers (id, name)
		VALUES ($1, $2)
		RETURNING deleted, deleted_at, created_at, updated_at`

	if err := r.db.GetContext(ctx, c, query, c.ID, c.Name); err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create customer: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

// GetByID returns the customer in whatever lifecycle state it is in.
func (r *customerRepository) GetByID(
	ctx context.Context,
	id string,
) (*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	var c Customer
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get customer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *Customer) error {
	query := `
		UPDATE customers
		SET name = $2, updated_at = NOW()
		WHERE id = $1 AND NOT deleted
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &c.UpdatedAt, query, c.ID, c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update customer: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("update customer: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update customer: %w", err)
	}

	return nil
}

func (r *customerRepository) SetLifecycle(
	ctx context.Context,
	id string,
	rec lifecycle.Record,
) error {
	query := `
		UPDATE customers
		SET deleted = $2, deleted_at = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, rec.Deleted, rec.DeletedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("set customer state: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("set customer state: %w", err)
	}

	return expectOneRow(result, "set customer state")
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("purge customer: %w", err)
	}

	return expectOneRow(result, "purge customer")
}

func (r *customerRepository) ListActive(ctx context.Context) ([]Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE NOT deleted
		ORDER BY name ASC, id ASC`

	customers := []Customer{}
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) ListDeleted(ctx context.Context) ([]Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE deleted
		ORDER BY deleted_at DESC, id ASC`

	customers := []Customer{}
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("list deleted customers: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) ExistsActiveByName(
	ctx context.Context,
	name, excludeID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM customers
			WHERE name = $1 AND NOT deleted AND id::text <> $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name, excludeID); err != nil {
		return false, fmt.Errorf("check customer name: %w", err)
	}

	return exists, nil
}

func (r *customerRepository) Count(ctx context.Context) (RecordCounts, error) {
	return countRecords(ctx, r.db, "customers")
}
