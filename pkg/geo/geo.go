// Package geo provides great-circle math for proximity search.
package geo

import (
	"math"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"
)

const earthRadiusKm = 6371.0

// Coordinate is a validated latitude/longitude pair
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinate validates latitude and longitude ranges. Out-of-range
// values are a validation error, never clamped.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if lat < -90 || lat > 90 {
		return Coordinate{}, apperrors.NewFieldValidationError("lat", "latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return Coordinate{}, apperrors.NewFieldValidationError("lon", "longitude must be between -180 and 180")
	}
	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

// DistanceKm returns the great-circle distance between two coordinates
// using the haversine formula on a spherical earth.
func DistanceKm(a, b Coordinate) float64 {
	dLat := degreesToRadians(b.Latitude - a.Latitude)
	dLon := degreesToRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(a.Latitude))*math.Cos(degreesToRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// WithinRadius reports whether point lies within radiusKm of center.
func WithinRadius(center, point Coordinate, radiusKm float64) bool {
	return DistanceKm(center, point) <= radiusKm
}

// Bounds is a latitude/longitude box used as a cheap store-side
// prefilter before the exact haversine check.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBox returns a box guaranteed to contain the circle of
// radiusKm around center. Near the poles the longitude span degenerates
// and the box widens to the full range.
func BoundingBox(center Coordinate, radiusKm float64) Bounds {
	latDelta := radiansToDegrees(radiusKm / earthRadiusKm)

	b := Bounds{
		MinLat: math.Max(center.Latitude-latDelta, -90),
		MaxLat: math.Min(center.Latitude+latDelta, 90),
	}

	cosLat := math.Cos(degreesToRadians(center.Latitude))
	if cosLat < 1e-6 || b.MinLat == -90 || b.MaxLat == 90 {
		b.MinLon = -180
		b.MaxLon = 180
		return b
	}

	lonDelta := radiansToDegrees(radiusKm / (earthRadiusKm * cosLat))
	b.MinLon = math.Max(center.Longitude-lonDelta, -180)
	b.MaxLon = math.Min(center.Longitude+lonDelta, 180)
	return b
}

// Contains reports whether the coordinate lies inside the box.
func (b Bounds) Contains(c Coordinate) bool {
	return c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat &&
		c.Longitude >= b.MinLon && c.Longitude <= b.MaxLon
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
