// AngelaMos | 2026
// service.go

package site

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/geo"
	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
	"github.com/carterperez-dev/site-atlas/internal/store"
	"github.com/carterperez-dev/site-atlas/internal/trash"
)

const DefaultName = "New Site"

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

type CreateInput struct {
	CustomerID string
	Name       string
	Latitude   float64
	Longitude  float64
}

// Create places a site for a live customer. Nothing is written when the
// customer is missing or deleted.
func (s *Service) Create(ctx context.Context, in CreateInput) (*store.Site, error) {
	if !geo.ValidLatitude(in.Latitude) || !geo.ValidLongitude(in.Longitude) {
		return nil, core.ValidationError("coordinates out of range")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultName
	}

	site := &store.Site{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Name:       name,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
	}

	err := s.store.InTx(ctx, func(r store.Repositories) error {
		c, err := r.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if c.IsDeleted() {
			return core.NotFoundError("customer")
		}
		return r.Sites.Create(ctx, site)
	})
	if err != nil {
		return nil, err
	}

	return site, nil
}

type Detail struct {
	Site *store.Site
	Jobs []store.Job
}

// Get returns a live site with its active jobs ordered by job number.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	site, err := s.store.Sites.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site.IsDeleted() {
		return nil, fmt.Errorf("get site: %w", core.ErrNotFound)
	}

	jobs, err := s.store.Jobs.ListActiveBySite(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Site: site, Jobs: jobs}, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*trash.Cascade, error) {
	return s.trash.SoftDelete(ctx, lifecycle.KindSite, id)
}
