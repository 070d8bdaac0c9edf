// AngelaMos | 2026
// dto.go

package customer

import (
	"time"

	"github.com/carterperez-dev/site-atlas/internal/site"
	"github.com/carterperez-dev/site-atlas/internal/store"
)

type NameRequest struct {
	Name string `json:"name" validate:"required,max=150"`
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DetailResponse struct {
	Response
	Sites []site.Response `json:"sites"`
}

func ToResponse(c *store.Customer) Response {
	return Response{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToResponses(customers []store.Customer) []Response {
	out := make([]Response, 0, len(customers))
	for i := range customers {
		out = append(out, ToResponse(&customers[i]))
	}
	return out
}

func ToDetailResponse(d *Detail) DetailResponse {
	return DetailResponse{
		Response: ToResponse(d.Customer),
		Sites:    site.ToResponses(d.Sites),
	}
}
