package repositories

import (
	"context"
	"net/http"

	"weather-widget/config"
	"weather-widget/internal/models"
	"weather-widget/pkg/logger"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherRepository fetches current conditions and the 3-hour forecast of one location.
// Every method issues exactly one GET request.
type WeatherRepository interface {
	Name() string
	FetchCurrentByCity(ctx context.Context, name string) (models.CurrentConditions, error)
	FetchCurrentByCoordinates(ctx context.Context, lat, lon float64) (models.CurrentConditions, error)
	FetchForecastByCity(ctx context.Context, name string) ([]models.ForecastEntry, error)
	FetchForecastByCoordinates(ctx context.Context, lat, lon float64) ([]models.ForecastEntry, error)
}

// Geocoder turns a free-text city name into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (models.Coordinates, error)
}

func InitWeatherRepository(cfg *config.Config, l *logger.Logger) (*OpenWeatherRepository, error) {
	return NewOpenWeatherRepository(OpenWeatherOptions{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
		GeoURL:  cfg.Weather.GeoURL,
		Units:   cfg.Weather.Units,
		Lang:    cfg.Weather.Lang,
	}, l, http.DefaultClient)
}
