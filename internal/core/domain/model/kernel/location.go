package kernel

import (
	"errors"
	"fmt"
	"math"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// MinLatitude and MaxLatitude bound the valid latitude in degrees.
	MinLatitude = -90.0
	MaxLatitude = 90.0

	// MinLongitude and MaxLongitude bound the valid longitude in degrees.
	MinLongitude = -180.0
	MaxLongitude = 180.0

	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or NewLocationFromPointers")

// Location is a point on the earth's surface in WGS84 degrees.
//
// Example:
//
//	loc, err := kernel.NewLocation(52.5200, 13.4050)
//	if err != nil {
//	    // coordinates out of range
//	}
//	fmt.Println(loc) // Location(52.520000,13.405000)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation validates both coordinates and returns the Location.
// Out of range or NaN values produce ValueIsOutOfRangeError for each offending coordinate.
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// NewLocationFromPointers is NewLocation for inputs where either coordinate may be absent,
// as in driver location updates. An absent coordinate is a ValueIsRequiredError.
func NewLocationFromPointers(latitude, longitude *float64) (Location, error) {
	var missing []error
	if latitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("latitude"))
	}
	if longitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("longitude"))
	}
	if len(missing) > 0 {
		return Location{}, errors.Join(missing...)
	}

	return NewLocation(*latitude, *longitude)
}

// Validate reports whether the Location was built by a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares two constructed locations by their coordinates.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// DistanceKm returns the great-circle (haversine) distance to other in kilometres.
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1, lat2 := toRadians(l.latitude), toRadians(other.latitude)
	dLat := lat2 - lat1
	dLon := toRadians(other.longitude - l.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a)), nil
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	l.longitude = longitude
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
