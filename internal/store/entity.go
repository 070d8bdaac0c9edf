// AngelaMos | 2026
// entity.go

package store

import (
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/carterperez-dev/site-atlas/internal/geo"
	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
)

type Customer struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	lifecycle.Record
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Site struct {
	ID         string  `db:"id"`
	CustomerID string  `db:"customer_id"`
	Name       string  `db:"name"`
	Latitude   float64 `db:"latitude"`
	Longitude  float64 `db:"longitude"`
	lifecycle.Record
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s *Site) Point() orb.Point {
	return geo.Point(s.Latitude, s.Longitude)
}

type Job struct {
	ID        string `db:"id"`
	SiteID    string `db:"site_id"`
	JobNumber string `db:"job_number"`
	Category  string `db:"category"`
	Status    string `db:"status"`
	lifecycle.Record
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const DefaultJobStatus = "Open"

// SiteSummary is an active site as shown on the map: its owner's name and
// the distinct categories of its active jobs.
type SiteSummary struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Latitude     float64   `db:"latitude"`
	Longitude    float64   `db:"longitude"`
	CustomerID   string    `db:"customer_id"`
	CustomerName string    `db:"customer_name"`
	CategoryList string    `db:"categories"`
	CreatedAt    time.Time `db:"created_at"`
}

// Categories splits the aggregated category list. The list is sorted by
// the store.
func (s *SiteSummary) Categories() []string {
	if s.CategoryList == "" {
		return []string{}
	}
	return strings.Split(s.CategoryList, ",")
}

func (s *SiteSummary) Point() orb.Point {
	return geo.Point(s.Latitude, s.Longitude)
}

type RecordCounts struct {
	Active  int64 `db:"active"  json:"active"`
	Deleted int64 `db:"deleted" json:"deleted"`
}
