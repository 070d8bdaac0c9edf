// AngelaMos | 2026
// dto.go

package sitequery

import (
	"math"
	"time"
)

type NearbyRequest struct {
	Lat      *float64 `json:"lat"       validate:"required,gte=-90,lte=90"`
	Lng      *float64 `json:"lng"       validate:"required,gte=-180,lte=180"`
	RadiusKm *float64 `json:"radius_km" validate:"omitempty,gte=0"`
}

type SiteResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	CustomerID string    `json:"customer_id"`
	Customer   string    `json:"customer"`
	Categories []string  `json:"categories"`
	DistanceKm *float64  `json:"km,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type MapConfigResponse struct {
	MapTilerKey     string  `json:"maptiler_key"`
	DefaultRadiusKm float64 `json:"default_radius_km"`
}

func ToSiteResponse(r Result) SiteResponse {
	resp := SiteResponse{
		ID:         r.Site.ID,
		Name:       r.Site.Name,
		Lat:        r.Site.Latitude,
		Lng:        r.Site.Longitude,
		CustomerID: r.Site.CustomerID,
		Customer:   r.Site.CustomerName,
		Categories: r.Site.Categories(),
		CreatedAt:  r.Site.CreatedAt,
	}

	if r.DistanceKm != nil {
		km := roundKm(*r.DistanceKm)
		resp.DistanceKm = &km
	}

	return resp
}

func ToSiteResponses(results []Result) []SiteResponse {
	out := make([]SiteResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ToSiteResponse(r))
	}
	return out
}

func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
