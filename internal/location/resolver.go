// Package location resolves the coordinates of the user for the startup lookup.
package location

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"weather-widget/internal/models"
)

type Resolver interface {
	ResolveLocation(ctx context.Context) (models.Coordinates, error)
}

// Static answers with coordinates fixed at configuration time.
type Static struct {
	coords *models.Coordinates
}

// NewStatic returns a resolver that fails with ErrGeolocationUnavailable when either
// coordinate is missing.
func NewStatic(lat, lon *float64) *Static {
	if lat == nil || lon == nil {
		return &Static{}
	}
	return &Static{coords: &models.Coordinates{Latitude: *lat, Longitude: *lon}}
}

func (s *Static) ResolveLocation(ctx context.Context) (models.Coordinates, error) {
	if s.coords == nil {
		return models.Coordinates{}, models.ErrGeolocationUnavailable
	}
	return *s.coords, nil
}

// Unavailable is used when the host has no way to locate the user.
type Unavailable struct{}

func (Unavailable) ResolveLocation(context.Context) (models.Coordinates, error) {
	return models.Coordinates{}, models.ErrGeolocationUnavailable
}

const (
	ReportDenied      = "denied"
	ReportUnavailable = "unavailable"
)

// Reported carries the outcome of navigator.geolocation as posted by the widget page.
type Reported struct {
	coords models.Coordinates
	err    error
}

// NewReported builds a resolver from the raw values sent by the browser. A non-empty
// failure wins over coordinates.
func NewReported(lat, lon, failure string) *Reported {
	switch failure {
	case "":
	case ReportDenied:
		return &Reported{err: models.ErrGeolocationDenied}
	case ReportUnavailable:
		return &Reported{err: models.ErrGeolocationUnavailable}
	default:
		return &Reported{err: fmt.Errorf("%w: %s", models.ErrGeolocationFailed, failure)}
	}

	latitude, err := parseCoordinate(lat, 90)
	if err != nil {
		return &Reported{err: fmt.Errorf("%w: latitude: %w", models.ErrGeolocationFailed, err)}
	}
	longitude, err := parseCoordinate(lon, 180)
	if err != nil {
		return &Reported{err: fmt.Errorf("%w: longitude: %w", models.ErrGeolocationFailed, err)}
	}

	return &Reported{coords: models.Coordinates{Latitude: latitude, Longitude: longitude}}
}

func (r *Reported) ResolveLocation(context.Context) (models.Coordinates, error) {
	return r.coords, r.err
}

func parseCoordinate(raw string, limit float64) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", raw)
	}
	if math.IsNaN(v) || v < -limit || v > limit {
		return 0, fmt.Errorf("value %v out of range", v)
	}
	return v, nil
}
