package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNetwork                = errors.New("network error")
	ErrProvider               = errors.New("provider error")
	ErrNotFound               = errors.New("location not found")
	ErrGeolocationUnavailable = errors.New("geolocation unavailable")
	ErrGeolocationDenied      = errors.New("geolocation denied")
	ErrGeolocationFailed      = errors.New("geolocation failed")
)

// ProviderError is returned when the provider answers with a failing HTTP status,
// a failing in-body code or a body that cannot be decoded.
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider error (status %d, code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("provider error (status %d): %s", e.Status, e.Message)
}

// Is makes a ProviderError match ErrProvider, and ErrNotFound when the provider reported 404.
func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrProvider:
		return true
	case ErrNotFound:
		return e.Code == "404" || (e.Code == "" && e.Status == http.StatusNotFound)
	}
	return false
}

// IsGeolocation reports whether err belongs to the location resolver failures.
func IsGeolocation(err error) bool {
	return errors.Is(err, ErrGeolocationUnavailable) ||
		errors.Is(err, ErrGeolocationDenied) ||
		errors.Is(err, ErrGeolocationFailed)
}
