// AngelaMos | 2026
// dto.go

package job

import (
	"time"

	"github.com/carterperez-dev/site-atlas/internal/store"
)

type CreateRequest struct {
	JobNumber string `json:"job_number" validate:"max=50"`
	Category  string `json:"category"   validate:"max=50"`
	Status    string `json:"status"     validate:"max=50"`
}

func (r CreateRequest) Input() CreateInput {
	return CreateInput{
		JobNumber: r.JobNumber,
		Category:  r.Category,
		Status:    r.Status,
	}
}

type Response struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"site_id"`
	JobNumber string    `json:"job_number"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResponse(j *store.Job) Response {
	return Response{
		ID:        j.ID,
		SiteID:    j.SiteID,
		JobNumber: j.JobNumber,
		Category:  j.Category,
		Status:    j.Status,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func ToResponses(jobs []store.Job) []Response {
	out := make([]Response, 0, len(jobs))
	for i := range jobs {
		out = append(out, ToResponse(&jobs[i]))
	}
	return out
}
