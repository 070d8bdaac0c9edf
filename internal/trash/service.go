// AngelaMos | 2026
// service.go

// Package trash orchestrates record lifecycle transitions over the
// ownership graph: cascading soft deletes, restores and purges.
package trash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
	"github.com/carterperez-dev/site-atlas/internal/metrics"
	"github.com/carterperez-dev/site-atlas/internal/store"
)

// Cascade reports what one soft delete touched.
type Cascade struct {
	Kind      lifecycle.Kind `json:"kind"`
	ID        string         `json:"id"`
	Sites     int64          `json:"sites"`
	Jobs      int64          `json:"jobs"`
	DeletedAt time.Time      `json:"deleted_at"`
}

type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(st *store.Store) *Service {
	return &Service{
		store: st,
		now:   time.Now,
	}
}

// SoftDelete marks the record deleted along with everything it owns.
// Customers take their sites and every job under those sites; sites take
// their jobs. All rows share one timestamp and commit together.
func (s *Service) SoftDelete(
	ctx context.Context,
	kind lifecycle.Kind,
	id string,
) (c *Cascade, err error) {
	ctx, span := core.StartSpan(ctx, "trash.SoftDelete",
		attribute.String("atlas.kind", kind.String()),
		attribute.String("atlas.id", id),
	)
	defer func() {
		metrics.ObserveTransition(kind.String(), "soft_delete", err)
		core.EndSpan(span, err)
	}()

	now := s.now().UTC()
	rec := lifecycle.DeletedRecord(now)
	out := &Cascade{Kind: kind, ID: id, DeletedAt: now}

	err = s.store.InTx(ctx, func(r store.Repositories) error {
		var txErr error
		switch kind {
		case lifecycle.KindCustomer:
			if txErr = r.Customers.SetLifecycle(ctx, id, rec); txErr != nil {
				return txErr
			}
			if out.Sites, txErr = r.Sites.SetLifecycleByCustomer(ctx, id, rec); txErr != nil {
				return txErr
			}
			out.Jobs, txErr = r.Jobs.SetLifecycleByCustomer(ctx, id, rec)
			return txErr
		case lifecycle.KindSite:
			if txErr = r.Sites.SetLifecycle(ctx, id, rec); txErr != nil {
				return txErr
			}
			out.Jobs, txErr = r.Jobs.SetLifecycleBySite(ctx, id, rec)
			return txErr
		case lifecycle.KindJob:
			return r.Jobs.SetLifecycle(ctx, id, rec)
		default:
			return unknownKind(kind)
		}
	})
	if err != nil {
		return nil, txFailure("soft delete "+kind.String(), err)
	}

	metrics.CascadedRecordsTotal.WithLabelValues("site").Add(float64(out.Sites))
	metrics.CascadedRecordsTotal.WithLabelValues("job").Add(float64(out.Jobs))

	slog.InfoContext(ctx, "record soft deleted",
		"kind", kind,
		"id", id,
		"sites", out.Sites,
		"jobs", out.Jobs,
	)

	return out, nil
}

// Restore clears the deleted state of exactly one record. Parents and
// children keep whatever state they are in.
func (s *Service) Restore(
	ctx context.Context,
	kind lifecycle.Kind,
	id string,
) (err error) {
	ctx, span := core.StartSpan(ctx, "trash.Restore",
		attribute.String("atlas.kind", kind.String()),
		attribute.String("atlas.id", id),
	)
	defer func() {
		metrics.ObserveTransition(kind.String(), "restore", err)
		core.EndSpan(span, err)
	}()

	err = s.store.InTx(ctx, func(r store.Repositories) error {
		_, label, txErr := recordOf(ctx, r, kind, id)
		if txErr != nil {
			return txErr
		}

		txErr = setLifecycle(ctx, r, kind, id, lifecycle.ActiveRecord())
		if errors.Is(txErr, core.ErrDuplicateKey) {
			return core.ConflictError(fmt.Sprintf(
				"an active %s named %q already exists", kind, label,
			))
		}
		return txErr
	})
	if err != nil {
		return txFailure("restore "+kind.String(), err)
	}

	slog.InfoContext(ctx, "record restored", "kind", kind, "id", id)
	return nil
}

// Purge permanently removes exactly one deleted record. Records owned by
// it are left in place.
func (s *Service) Purge(
	ctx context.Context,
	kind lifecycle.Kind,
	id string,
) (err error) {
	ctx, span := core.StartSpan(ctx, "trash.Purge",
		attribute.String("atlas.kind", kind.String()),
		attribute.String("atlas.id", id),
	)
	defer func() {
		metrics.ObserveTransition(kind.String(), "purge", err)
		core.EndSpan(span, err)
	}()

	err = s.store.InTx(ctx, func(r store.Repositories) error {
		rec, _, txErr := recordOf(ctx, r, kind, id)
		if txErr != nil {
			return txErr
		}
		if !rec.IsDeleted() {
			return core.ValidationError(fmt.Sprintf(
				"%s must be deleted before it can be purged", kind.Title(),
			))
		}

		switch kind {
		case lifecycle.KindCustomer:
			return r.Customers.Delete(ctx, id)
		case lifecycle.KindSite:
			return r.Sites.Delete(ctx, id)
		default:
			return r.Jobs.Delete(ctx, id)
		}
	})
	if err != nil {
		return txFailure("purge "+kind.String(), err)
	}

	slog.InfoContext(ctx, "record purged", "kind", kind, "id", id)
	return nil
}

type Deleted struct {
	Customers []store.Customer
	Sites     []store.Site
	Jobs      []store.Job
}

// ListDeleted loads every deleted record, most recently deleted first.
func (s *Service) ListDeleted(ctx context.Context) (*Deleted, error) {
	var out Deleted

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Customers, err = s.store.Customers.ListDeleted(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Sites, err = s.store.Sites.ListDeleted(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Jobs, err = s.store.Jobs.ListDeleted(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &out, nil
}

func recordOf(
	ctx context.Context,
	r store.Repositories,
	kind lifecycle.Kind,
	id string,
) (lifecycle.Record, string, error) {
	switch kind {
	case lifecycle.KindCustomer:
		c, err := r.Customers.GetByID(ctx, id)
		if err != nil {
			return lifecycle.Record{}, "", err
		}
		return c.Record, c.Name, nil
	case lifecycle.KindSite:
		st, err := r.Sites.GetByID(ctx, id)
		if err != nil {
			return lifecycle.Record{}, "", err
		}
		return st.Record, st.Name, nil
	case lifecycle.KindJob:
		j, err := r.Jobs.GetByID(ctx, id)
		if err != nil {
			return lifecycle.Record{}, "", err
		}
		return j.Record, j.JobNumber, nil
	default:
		return lifecycle.Record{}, "", unknownKind(kind)
	}
}

func setLifecycle(
	ctx context.Context,
	r store.Repositories,
	kind lifecycle.Kind,
	id string,
	rec lifecycle.Record,
) error {
	switch kind {
	case lifecycle.KindCustomer:
		return r.Customers.SetLifecycle(ctx, id, rec)
	case lifecycle.KindSite:
		return r.Sites.SetLifecycle(ctx, id, rec)
	case lifecycle.KindJob:
		return r.Jobs.SetLifecycle(ctx, id, rec)
	default:
		return unknownKind(kind)
	}
}

func unknownKind(kind lifecycle.Kind) error {
	return core.ValidationError(fmt.Sprintf("unknown record type %q", kind))
}

// txFailure leaves caller-facing errors as they are and marks anything
// else as a failed unit of work.
func txFailure(op string, err error) error {
	switch {
	case core.IsAppError(err),
		errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, core.ErrDuplicateKey),
		errors.Is(err, core.ErrTransactionFailed):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, core.ErrTransactionFailed, err)
	}
}
