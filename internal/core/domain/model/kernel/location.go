package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Bounds of a valid coordinate, in degrees. Both ends are inclusive.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrLocationIsNotConstructed is returned when a zero Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a delivery coordinate. It is only stored and displayed;
// nothing in the core routes or measures with it.
type Location struct { //nolint:recvcheck //using for validation
	point orb.Point
	guard guard.ConstructorGuard
}

// NewLocation creates a Location from a latitude and a longitude in degrees.
//
// Parameters:
//   - lat: between MinLatitude and MaxLatitude inclusive
//   - lng: between MinLongitude and MaxLongitude inclusive
//
// Returns:
//   - Location: a valid location
//   - error: an out of range error for each bad coordinate, joined
//
// Example:
//
//	loc, err := kernel.NewLocation(-8.6705, 115.2126)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loc) // Location(-8.670500,115.212600)
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{guard: guard.NewConstructorGuard()}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate reports ErrLocationIsNotConstructed for the zero value.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.point.Lat()
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.point.Lon()
}

// Point exposes the coordinate in orb's (lng, lat) order.
func (l Location) Point() orb.Point {
	return l.point
}

// String formats the location with six decimals, latitude first.
func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.Lat(), l.Lng())
}

// MarshalJSON encodes the location as a GeoJSON point.
func (l Location) MarshalJSON() ([]byte, error) {
	return geojson.NewGeometry(l.point).MarshalJSON()
}

// IsEqual compares both coordinates exactly.
func (l Location) IsEqual(other Location) bool {
	return l.point.Equal(other.point)
}

func (l *Location) setLat(lat float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}
	l.point[1] = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lng", lng, MinLongitude, MaxLongitude)
	}
	l.point[0] = lng
	return nil
}
