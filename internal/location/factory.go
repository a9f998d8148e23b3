package location

import (
	"weather-widget/config"
	"weather-widget/pkg/logger"
)

// FromConfig picks the startup resolver for the configured location mode.
func FromConfig(cfg config.LocationConfig, l *logger.Logger) Resolver {
	switch cfg.Mode {
	case config.LocationModeStatic:
		return NewStatic(cfg.Latitude, cfg.Longitude)
	case config.LocationModeIP:
		return NewIPLookup(cfg.IPLookupURL, l, nil)
	default:
		return Unavailable{}
	}
}
