// AngelaMos | 2026
// service.go

package sitequery

import (
	"context"

	"github.com/paulmach/orb/geojson"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/geo"
	"github.com/carterperez-dev/site-atlas/internal/metrics"
	"github.com/carterperez-dev/site-atlas/internal/store"
)

// SummaryLister is the read side of the site repository used by queries.
type SummaryLister interface {
	ListSummaries(ctx context.Context) ([]store.SiteSummary, error)
}

type Service struct {
	sites         SummaryLister
	defaultRadius float64
}

func NewService(sites SummaryLister, defaultRadiusKm float64) *Service {
	return &Service{
		sites:         sites,
		defaultRadius: defaultRadiusKm,
	}
}

func (s *Service) DefaultRadiusKm() float64 {
	return s.defaultRadius
}

// Search runs f over a single snapshot of the active sites.
func (s *Service) Search(ctx context.Context, f Filter) (_ []Result, err error) {
	ctx, span := core.StartSpan(ctx, "sitequery.Search",
		attribute.String("atlas.query.mode", f.mode()),
		attribute.Bool("atlas.query.text", f.Text != ""),
		attribute.String("atlas.query.category", f.Category),
	)
	defer func() { core.EndSpan(span, err) }()

	sites, err := s.sites.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	results := Apply(sites, f)
	metrics.SiteQueryResults.WithLabelValues(f.mode()).Observe(float64(len(results)))

	return results, nil
}

// Nearby returns the active sites within radiusKm of the point, nearest
// first. A nil radius uses the configured default.
func (s *Service) Nearby(
	ctx context.Context,
	lat, lng float64,
	radiusKm *float64,
) ([]Result, error) {
	if !geo.ValidLatitude(lat) {
		return nil, core.ValidationError("lat must be between -90 and 90")
	}
	if !geo.ValidLongitude(lng) {
		return nil, core.ValidationError("lng must be between -180 and 180")
	}

	radius := s.defaultRadius
	if radiusKm != nil {
		radius = *radiusKm
	}
	if radius < 0 {
		return nil, core.ValidationError("radius_km must not be negative")
	}

	return s.Search(ctx, Within(lat, lng, radius))
}

// MapFeatures renders every active site as a GeoJSON point feature.
func (s *Service) MapFeatures(ctx context.Context) (*geojson.FeatureCollection, error) {
	results, err := s.Search(ctx, Filter{})
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, r := range results {
		f := geojson.NewFeature(r.Site.Point())
		f.ID = r.Site.ID
		f.Properties = geojson.Properties{
			"id":          r.Site.ID,
			"name":        r.Site.Name,
			"customer":    r.Site.CustomerName,
			"customer_id": r.Site.CustomerID,
			"categories":  r.Site.Categories(),
		}
		fc.Append(f)
	}

	return fc, nil
}
