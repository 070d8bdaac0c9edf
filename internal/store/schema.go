// AngelaMos | 2026
// schema.go

package store

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/site-atlas/internal/core"
)

//go:embed schema.sql
var schemaSQL string

// Statements returns the schema DDL split into single statements.
func Statements() []string {
	var out []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if stmt = strings.TrimSpace(stripComments(stmt)); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// Migrate applies the schema. Every statement is idempotent, so running it
// on each start is safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	return core.InTx(ctx, db, nil, func(tx *sqlx.Tx) error {
		for _, stmt := range Statements() {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
}

func stripComments(stmt string) string {
	lines := strings.Split(stmt, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
