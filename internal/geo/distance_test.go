// AngelaMos | 2026
// distance_test.go

package geo

import (
	"math"
	"testing"
)

var towns = map[string][2]float64{
	"corning":    {39.9271, -122.1792},
	"orland":     {39.7471, -122.1969},
	"chico":      {39.7285, -121.8375},
	"cottonwood": {40.3863, -122.2803},
	"durham":     {39.6468, -121.8005},
}

func TestDistanceKmChicoToOrland(t *testing.T) {
	got := DistanceKm(39.7285, -121.8375, 39.7471, -122.1969)
	if math.Abs(got-31) > 1 {
		t.Fatalf("chico to orland = %.3f km, want ~31", got)
	}
}

func TestDistanceKmSamePointIsZero(t *testing.T) {
	for name, p := range towns {
		if d := DistanceKm(p[0], p[1], p[0], p[1]); d != 0 {
			t.Fatalf("%s: distance to itself = %v", name, d)
		}
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	for an, a := range towns {
		for bn, b := range towns {
			ab := DistanceKm(a[0], a[1], b[0], b[1])
			ba := DistanceKm(b[0], b[1], a[0], a[1])
			if math.Abs(ab-ba) > 1e-9 {
				t.Fatalf("%s/%s: %v != %v", an, bn, ab, ba)
			}
			if ab < 0 {
				t.Fatalf("%s/%s: negative distance %v", an, bn, ab)
			}
		}
	}
}

func TestDistanceKmTriangleInequality(t *testing.T) {
	a, b, c := towns["corning"], towns["chico"], towns["cottonwood"]

	ab := DistanceKm(a[0], a[1], b[0], b[1])
	bc := DistanceKm(b[0], b[1], c[0], c[1])
	ac := DistanceKm(a[0], a[1], c[0], c[1])

	if ac > ab+bc+1e-6 {
		t.Fatalf("triangle violated: ac=%v ab+bc=%v", ac, ab+bc)
	}
}

func TestDistanceKmAntipodal(t *testing.T) {
	got := DistanceKm(0, 0, 0, 180)
	want := math.Pi * EarthRadiusKm
	if math.IsNaN(got) || math.Abs(got-want) > 1e-6 {
		t.Fatalf("antipodal = %v, want %v", got, want)
	}
}

func TestBetweenUsesLatLonOrder(t *testing.T) {
	chico := Point(39.7285, -121.8375)
	orland := Point(39.7471, -122.1969)

	if chico.Lat() != 39.7285 || chico.Lon() != -121.8375 {
		t.Fatalf("point axes swapped: %v", chico)
	}

	want := DistanceKm(39.7285, -121.8375, 39.7471, -122.1969)
	if got := Between(chico, orland); got != want {
		t.Fatalf("Between = %v, want %v", got, want)
	}
}

func TestValidRanges(t *testing.T) {
	tests := []struct {
		lat, lon float64
		ok       bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.0001, 0, false},
		{0, -180.5, false},
		{math.NaN(), 0, false},
	}

	for _, tt := range tests {
		got := ValidLatitude(tt.lat) && ValidLongitude(tt.lon)
		if got != tt.ok {
			t.Fatalf("valid(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.ok)
		}
	}
}
