// AngelaMos | 2026
// store.go

// Package store is the persistence boundary of the atlas. Repositories run
// against either the pool or a transaction through core.DBTX.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/site-atlas/internal/core"
)

type Repositories struct {
	Customers CustomerRepository
	Sites     SiteRepository
	Jobs      JobRepository
}

func NewRepositories(db core.DBTX) Repositories {
	return Repositories{
		Customers: NewCustomerRepository(db),
		Sites:     NewSiteRepository(db),
		Jobs:      NewJobRepository(db),
	}
}

type Store struct {
	Repositories
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{
		Repositories: NewRepositories(db),
		db:           db,
	}
}

// InTx runs fn with repositories bound to a single transaction. Any error
// from fn rolls back every write fn made.
func (s *Store) InTx(ctx context.Context, fn func(r Repositories) error) error {
	return core.InTx(ctx, s.db, nil, func(tx *sqlx.Tx) error {
		return fn(NewRepositories(tx))
	})
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

type Counts struct {
	Customers RecordCounts `json:"customers"`
	Sites     RecordCounts `json:"sites"`
	Jobs      RecordCounts `json:"jobs"`
}

func (s *Store) Counts(ctx context.Context) (*Counts, error) {
	var (
		c   Counts
		err error
	)

	if c.Customers, err = s.Customers.Count(ctx); err != nil {
		return nil, err
	}
	if c.Sites, err = s.Sites.Count(ctx); err != nil {
		return nil, err
	}
	if c.Jobs, err = s.Jobs.Count(ctx); err != nil {
		return nil, err
	}

	return &c, nil
}

func countRecords(
	ctx context.Context,
	db core.DBTX,
	table string,
) (RecordCounts, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FILTER (WHERE NOT deleted) AS active,
		       COUNT(*) FILTER (WHERE deleted) AS deleted
		FROM %s`, table)

	var counts RecordCounts
	if err := db.GetContext(ctx, &counts, query); err != nil {
		return RecordCounts{}, fmt.Errorf("count %s: %w", table, err)
	}

	return counts, nil
}

func expectOneRow(result sql.Result, op string) error {
	rows, err := rowsAffected(result, op)
	if err != nil {
		return err
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func rowsAffected(result sql.Result, op string) (int64, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}
