// AngelaMos | 2026
// service.go

package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
	"github.com/carterperez-dev/site-atlas/internal/store"
	"github.com/carterperez-dev/site-atlas/internal/trash"
)

const maxNameLength = 150

type Deleter interface {
	SoftDelete(
		ctx context.Context,
		kind lifecycle.Kind,
		id string,
	) (*trash.Cascade, error)
}

type Service struct {
	store *store.Store
	trash Deleter
}

func NewService(st *store.Store, trash Deleter) *Service {
	return &Service{
		store: st,
		trash: trash,
	}
}

func (s *Service) List(ctx context.Context) ([]store.Customer, error) {
	return s.store.Customers.ListActive(ctx)
}

// Create registers a customer. The name must not be in use by another
// active customer.
func (s *Service) Create(ctx context.Context, name string) (*store.Customer, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	c := &store.Customer{
		ID:   uuid.New().String(),
		Name: name,
	}

	err = s.store.InTx(ctx, func(r store.Repositories) error {
		if err := ensureNameFree(ctx, r, name, ""); err != nil {
			return err
		}
		return r.Customers.Create(ctx, c)
	})
	if err != nil {
		return nil, conflictOnDuplicate(err, name)
	}

	return c, nil
}

type Detail struct {
	Customer *store.Customer
	Sites    []store.Site
}

// Get returns a live customer with its active sites ordered by name.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	c, err := s.store.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsDeleted() {
		return nil, fmt.Errorf("get customer: %w", core.ErrNotFound)
	}

	sites, err := s.store.Sites.ListActiveByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Customer: c, Sites: sites}, nil
}

// Rename changes the name of a live customer, re-checking uniqueness
// against the other active customers.
func (s *Service) Rename(
	ctx context.Context,
	id, name string,
) (*store.Customer, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	var c *store.Customer
	err = s.store.InTx(ctx, func(r store.Repositories) error {
		var txErr error
		if c, txErr = r.Customers.GetByID(ctx, id); txErr != nil {
			return txErr
		}
		if c.IsDeleted() {
			return core.NotFoundError("customer")
		}
		if c.Name == name {
			return nil
		}
		if txErr = ensureNameFree(ctx, r, name, id); txErr != nil {
			return txErr
		}

		c.Name = name
		return r.Customers.Update(ctx, c)
	})
	if err != nil {
		return nil, conflictOnDuplicate(err, name)
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*trash.Cascade, error) {
	return s.trash.SoftDelete(ctx, lifecycle.KindCustomer, id)
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", core.ValidationError("customer name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", core.ValidationError(fmt.Sprintf(
			"customer name must be at most %d characters", maxNameLength,
		))
	}
	return name, nil
}

func ensureNameFree(
	ctx context.Context,
	r store.Repositories,
	name, excludeID string,
) error {
	exists, err := r.Customers.ExistsActiveByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return core.ConflictError(fmt.Sprintf("customer %q already exists", name))
	}
	return nil
}

// conflictOnDuplicate covers the race where another request claims the
// name between the check and the write.
func conflictOnDuplicate(err error, name string) error {
	if !core.IsAppError(err) && errors.Is(err, core.ErrDuplicateKey) {
		return core.ConflictError(fmt.Sprintf("customer %q already exists", name))
	}
	return err
}
