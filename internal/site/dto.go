// AngelaMos | 2026
// dto.go

package site

import (
	"time"

	"github.com/carterperez-dev/site-atlas/internal/job"
	"github.com/carterperez-dev/site-atlas/internal/store"
)

// CreateRequest is the body of both site creation routes. CustomerID is
// taken from the path on the nested route.
type CreateRequest struct {
	CustomerID string   `json:"customer_id" validate:"required"`
	Name       string   `json:"name"        validate:"max=150"`
	Lat        *float64 `json:"lat"         validate:"required,gte=-90,lte=90"`
	Lng        *float64 `json:"lng"         validate:"required,gte=-180,lte=180"`
}

func (r CreateRequest) Input() CreateInput {
	return CreateInput{
		CustomerID: r.CustomerID,
		Name:       r.Name,
		Latitude:   *r.Lat,
		Longitude:  *r.Lng,
	}
}

type Response struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type DetailResponse struct {
	Response
	Jobs []job.Response `json:"jobs"`
}

func ToResponse(s *store.Site) Response {
	return Response{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		Name:       s.Name,
		Lat:        s.Latitude,
		Lng:        s.Longitude,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func ToResponses(sites []store.Site) []Response {
	out := make([]Response, 0, len(sites))
	for i := range sites {
		out = append(out, ToResponse(&sites[i]))
	}
	return out
}

func ToDetailResponse(d *Detail) DetailResponse {
	return DetailResponse{
		Response: ToResponse(d.Site),
		Jobs:     job.ToResponses(d.Jobs),
	}
}
