// AngelaMos | 2026
// filter.go

package sitequery

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/geo"
)

type Sort string

const (
	SortStore  Sort = ""
	SortName   Sort = "name"
	SortRecent Sort = "recent"
)

// Filter is a conjunction of criteria. Zero-valued criteria match every
// site. A radius filter is active whenever Center is set.
type Filter struct {
	Text     string
	Category string
	Center   *orb.Point
	RadiusKm float64
	Sort     Sort
}

func (f Filter) HasRadius() bool {
	return f.Center != nil
}

func (f Filter) mode() string {
	if f.HasRadius() {
		return "radius"
	}
	return "list"
}

// Within returns a filter matching sites no farther than radiusKm from
// the given coordinate.
func Within(lat, lng, radiusKm float64) Filter {
	p := geo.Point(lat, lng)
	return Filter{Center: &p, RadiusKm: radiusKm}
}

// ParseFilter reads a filter from query parameters: q, category, lat, lng,
// radius_km and sort. Malformed numbers are rejected rather than
// defaulted. A center without radius_km uses defaultRadiusKm.
func ParseFilter(v url.Values, defaultRadiusKm float64) (Filter, error) {
	f := Filter{
		Text:     strings.TrimSpace(v.Get("q")),
		Category: strings.TrimSpace(v.Get("category")),
	}

	switch sort := Sort(strings.ToLower(strings.TrimSpace(v.Get("sort")))); sort {
	case SortStore, SortName, SortRecent:
		f.Sort = sort
	default:
		return Filter{}, core.ValidationError(fmt.Sprintf("unknown sort %q", v.Get("sort")))
	}

	rawLat, rawLng := v.Get("lat"), v.Get("lng")
	rawRadius := v.Get("radius_km")

	if rawLat == "" && rawLng == "" {
		if rawRadius != "" {
			return Filter{}, core.ValidationError("radius_km requires lat and lng")
		}
		return f, nil
	}
	if rawLat == "" || rawLng == "" {
		return Filter{}, core.ValidationError("lat and lng must be given together")
	}

	lat, err := parseNumber("lat", rawLat)
	if err != nil {
		return Filter{}, err
	}
	lng, err := parseNumber("lng", rawLng)
	if err != nil {
		return Filter{}, err
	}
	if !geo.ValidLatitude(lat) {
		return Filter{}, core.ValidationError("lat must be between -90 and 90")
	}
	if !geo.ValidLongitude(lng) {
		return Filter{}, core.ValidationError("lng must be between -180 and 180")
	}

	radius := defaultRadiusKm
	if rawRadius != "" {
		if radius, err = parseNumber("radius_km", rawRadius); err != nil {
			return Filter{}, err
		}
	}
	if radius < 0 {
		return Filter{}, core.ValidationError("radius_km must not be negative")
	}

	center := geo.Point(lat, lng)
	f.Center = &center
	f.RadiusKm = radius

	return f, nil
}

func parseNumber(field, raw string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, core.ValidationError(field + " must be a number")
	}
	return n, nil
}
