// AngelaMos | 2026
// distance.go

// Package geo holds the great-circle math used by site queries.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusKm is the mean earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

// DistanceKm returns the haversine distance in kilometres between two
// latitude/longitude pairs given in degrees. Inputs are not range checked.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*sinLon*sinLon
	if a > 1 {
		a = 1
	}

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Between is DistanceKm over orb points, which are ordered [lon, lat].
func Between(a, b orb.Point) float64 {
	return DistanceKm(a.Lat(), a.Lon(), b.Lat(), b.Lon())
}

// Point builds an orb point from latitude and longitude.
func Point(lat, lon float64) orb.Point {
	return orb.Point{lon, lat}
}

func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

func ValidLongitude(lon float64) bool {
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
