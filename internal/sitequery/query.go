// AngelaMos | 2026
// query.go

// Package sitequery filters and orders active sites by text, category and
// distance from a point.
package sitequery

import (
	"cmp"
	"slices"
	"strings"

	"github.com/carterperez-dev/site-atlas/internal/geo"
	"github.com/carterperez-dev/site-atlas/internal/store"
)

type Result struct {
	Site       store.SiteSummary
	DistanceKm *float64
}

// Apply keeps the sites matching every criterion of f. Input order is
// treated as store order and breaks ties in every sort.
func Apply(sites []store.SiteSummary, f Filter) []Result {
	text := strings.ToLower(f.Text)
	out := make([]Result, 0, len(sites))

	for _, s := range sites {
		if text != "" && !strings.Contains(strings.ToLower(s.Name), text) {
			continue
		}
		if f.Category != "" && !slices.Contains(s.Categories(), f.Category) {
			continue
		}

		res := Result{Site: s}
		if f.HasRadius() {
			d := geo.Between(*f.Center, s.Point())
			if d > f.RadiusKm {
				continue
			}
			res.DistanceKm = &d
		}

		out = append(out, res)
	}

	switch {
	case f.HasRadius():
		slices.SortStableFunc(out, func(a, b Result) int {
			return cmp.Compare(*a.DistanceKm, *b.DistanceKm)
		})
	case f.Sort == SortName:
		slices.SortStableFunc(out, func(a, b Result) int {
			return strings.Compare(strings.ToLower(a.Site.Name), strings.ToLower(b.Site.Name))
		})
	case f.Sort == SortRecent:
		slices.SortStableFunc(out, func(a, b Result) int {
			return b.Site.CreatedAt.Compare(a.Site.CreatedAt)
		})
	}

	return out
}
