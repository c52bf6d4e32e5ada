package kernel

import (
	"errors"
	"fmt"
	"math"

	"geodispatch/internal/pkg/errs"
	"geodispatch/internal/pkg/guard"
)

// Geographic coordinate bounds (WGS 84 degrees).
const (
	// MinLatitude is the southernmost valid latitude.
	MinLatitude = -90.0
	// MaxLatitude is the northernmost valid latitude.
	MaxLatitude = 90.0
	// MinLongitude is the westernmost valid longitude.
	MinLongitude = -180.0
	// MaxLongitude is the easternmost valid longitude.
	MaxLongitude = 180.0
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic coordinate in WGS 84 degrees.
// GeoPoint is an immutable value object that guarantees latitude and
// longitude are within valid bounds. The zero value is invalid and fails
// validation - use the constructor to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(40.4168, -3.7038)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(point) // Output: GeoPoint(40.416800,-3.703800)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude.
// Latitude must be within [MinLatitude..MaxLatitude] and longitude within
// [MinLongitude..MaxLongitude]. Returns an aggregated validation error if
// either coordinate is out of bounds.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLat(lat), point.setLon(lon)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
// Returns ErrGeoPointIsNotConstructed for zero values.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// String returns a human-readable representation in the format
// "GeoPoint(lat,lon)". Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lon)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lon == other.lon, nil
}

// DistanceTo calculates the great-circle distance in meters between two
// points using the haversine formula. Both points must be properly
// constructed.
//
// Example:
//
//	madrid, _ := kernel.NewGeoPoint(40.4168, -3.7038)
//	bilbao, _ := kernel.NewGeoPoint(43.2630, -2.9350)
//	meters, _ := madrid.DistanceTo(bilbao) // ≈ 323 km
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := toRad(other.lat - p.lat)
	dLon := toRad(other.lon - p.lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(p.lat))*math.Cos(toRad(other.lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c, nil
}

// setLat sets the latitude with bounds validation.
// Pointer receiver is intentional: private setters enable self-encapsulated
// validation during construction.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

// setLon sets the longitude with bounds validation.
func (p *GeoPoint) setLon(lon float64) error {
	if lon < MinLongitude || lon > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lon, MinLongitude, MaxLongitude)
	}

	p.lon = lon
	return nil
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
