// Package geo resolves the device's current position as a single-shot operation.
package geo

import (
	"context"
	"errors"

	"weather-widget/models"
)

var (
	// ErrPermissionDenied is returned when the user refuses to share a position
	ErrPermissionDenied = errors.New("geolocation permission denied")

	// ErrUnsupported is returned when no position source is available
	ErrUnsupported = errors.New("geolocation unsupported")
)

// Locator yields the current coordinates or one of the two failure kinds
type Locator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// Position is a position already resolved elsewhere, e.g. by a browser
type Position models.Coordinates

func (p Position) Locate(ctx context.Context) (models.Coordinates, error) {
	return models.Coordinates(p), nil
}

// Static returns a Locator that always reports the given coordinates
func Static(lat, lon float64) Locator {
	return Position{Latitude: lat, Longitude: lon}
}

type failed struct{ err error }

func (f failed) Locate(ctx context.Context) (models.Coordinates, error) {
	return models.Coordinates{}, f.err
}

// Denied returns a Locator whose permission was refused
func Denied() Locator { return failed{ErrPermissionDenied} }

// Unsupported returns a Locator for hosts without a position source
func Unsupported() Locator { return failed{ErrUnsupported} }
