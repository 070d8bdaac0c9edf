// AngelaMos | 2026
// dto.go

package trash

import (
	"time"

	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
	"github.com/carterperez-dev/site-atlas/internal/store"
)

type DeletedItemResponse struct {
	Kind      lifecycle.Kind `json:"kind"`
	ID        string         `json:"id"`
	Label     string         `json:"label"`
	ParentID  string         `json:"parent_id,omitempty"`
	DeletedAt *time.Time     `json:"deleted_at"`
}

type DeletedListResponse struct {
	Customers []DeletedItemResponse `json:"customers"`
	Sites     []DeletedItemResponse `json:"sites"`
	Jobs      []DeletedItemResponse `json:"jobs"`
}

type TransitionResponse struct {
	Kind  lifecycle.Kind  `json:"kind"`
	ID    string          `json:"id"`
	State lifecycle.State `json:"state"`
}

func ToDeletedListResponse(d *Deleted) DeletedListResponse {
	resp := DeletedListResponse{
		Customers: make([]DeletedItemResponse, 0, len(d.Customers)),
		Sites:     make([]DeletedItemResponse, 0, len(d.Sites)),
		Jobs:      make([]DeletedItemResponse, 0, len(d.Jobs)),
	}

	for _, c := range d.Customers {
		resp.Customers = append(resp.Customers, DeletedItemResponse{
			Kind:      lifecycle.KindCustomer,
			ID:        c.ID,
			Label:     c.Name,
			DeletedAt: c.DeletedAt,
		})
	}
	for _, s := range d.Sites {
		resp.Sites = append(resp.Sites, toSiteItem(s))
	}
	for _, j := range d.Jobs {
		resp.Jobs = append(resp.Jobs, DeletedItemResponse{
			Kind:      lifecycle.KindJob,
			ID:        j.ID,
			Label:     j.JobNumber,
			ParentID:  j.SiteID,
			DeletedAt: j.DeletedAt,
		})
	}

	return resp
}

func toSiteItem(s store.Site) DeletedItemResponse {
	return DeletedItemResponse{
		Kind:      lifecycle.KindSite,
		ID:        s.ID,
		Label:     s.Name,
		ParentID:  s.CustomerID,
		DeletedAt: s.DeletedAt,
	}
}
