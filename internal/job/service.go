// AngelaMos | 2026
// service.go

package job

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
	"github.com/carterperez-dev/site-atlas/internal/store"
	"github.com/carterperez-dev/site-atlas/internal/trash"
)

type Deleter interface {
	SoftDelete(
		ctx context.Context,
		kind lifecycle.Kind,
		id string,
	) (*trash.Cascade, error)
}

type Service struct {
	store      *store.Store
	trash      Deleter
	categories []string
}

func NewService(st *store.Store, trash Deleter, categories []string) *Service {
	return &Service{
		store:      st,
		trash:      trash,
		categories: categories,
	}
}

func (s *Service) Categories() []string {
	return slices.Clone(s.categories)
}

type CreateInput struct {
	JobNumber string
	Category  string
	Status    string
}

// Create adds a job to a live site. Blank fields fall back to a generated
// job number, the first configured category and the Open status.
func (s *Service) Create(
	ctx context.Context,
	siteID string,
	in CreateInput,
) (*store.Job, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = s.categories[0]
	}
	if !slices.Contains(s.categories, category) {
		return nil, core.ValidationError(fmt.Sprintf(
			"category must be one of %s", strings.Join(s.categories, ", "),
		))
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = store.DefaultJobStatus
	}

	number := strings.TrimSpace(in.JobNumber)
	if number == "" {
		number = DefaultJobNumber(siteID)
	}

	j := &store.Job{
		ID:        uuid.New().String(),
		SiteID:    siteID,
		JobNumber: number,
		Category:  category,
		Status:    status,
	}

	err := s.store.InTx(ctx, func(r store.Repositories) error {
		site, err := r.Sites.GetByID(ctx, siteID)
		if err != nil {
			return err
		}
		if site.IsDeleted() {
			return core.NotFoundError("site")
		}
		return r.Jobs.Create(ctx, j)
	})
	if err != nil {
		return nil, err
	}

	return j, nil
}

// Get returns a live job.
func (s *Service) Get(ctx context.Context, id string) (*store.Job, error) {
	j, err := s.store.Jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.IsDeleted() {
		return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	return j, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*trash.Cascade, error) {
	return s.trash.SoftDelete(ctx, lifecycle.KindJob, id)
}

// DefaultJobNumber builds JOB-<site id prefix>-<100..999>.
func DefaultJobNumber(siteID string) string {
	prefix := siteID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	//nolint:gosec // G404: display number, not security sensitive
	return fmt.Sprintf("JOB-%s-%d", prefix, 100+rand.IntN(900))
}
