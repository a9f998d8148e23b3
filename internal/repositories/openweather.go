package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"weather-widget/internal/models"
	"weather-widget/pkg/logger"
)

const (
	OpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"
	OpenWeatherGeoURL  = "https://api.openweathermap.org/geo/1.0"
)

type OpenWeatherOptions struct {
	APIKey  string
	BaseURL string
	GeoURL  string
	Units   string
	Lang    string
}

type OpenWeatherRepository struct {
	apiKey     string
	baseURL    string
	geoURL     string
	units      string
	lang       string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenWeatherRepository(opts OpenWeatherOptions, l *logger.Logger, httpClient HTTPClient) (*OpenWeatherRepository, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = OpenWeatherBaseURL
	}
	if opts.GeoURL == "" {
		opts.GeoURL = OpenWeatherGeoURL
	}
	if opts.Units == "" {
		opts.Units = "metric"
	}
	if opts.Lang == "" {
		opts.Lang = "fr"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if l == nil {
		l = logger.Nop()
	}

	return &OpenWeatherRepository{
		apiKey:     opts.APIKey,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		geoURL:     strings.TrimRight(opts.GeoURL, "/"),
		units:      opts.Units,
		lang:       opts.Lang,
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (o *OpenWeatherRepository) Name() string {
	return "openweathermap"
}

// providerCode holds the in-body "cod" field, which is a number on /weather and a
// string on /forecast.
type providerCode string

func (c *providerCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = providerCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("unexpected cod value %s: %w", b, err)
	}
	*c = providerCode(n.String())
	return nil
}

func (c providerCode) failed() bool {
	return c != "" && c != "200"
}

// envelope is the part shared by every OpenWeatherMap body. "message" is a string on
// errors and a number on successful forecast responses.
type envelope struct {
	Cod     providerCode    `json:"cod"`
	Message json.RawMessage `json:"message"`
}

func (e envelope) message() string {
	var s string
	if err := json.Unmarshal(e.Message, &s); err == nil {
		return s
	}
	return ""
}

type condition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CurrentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp    float64 `json:"temp"`
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []condition `json:"weather"`
}

type ForecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []condition `json:"weather"`
	} `json:"list"`
}

type geocodeResponse []struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

func (o *OpenWeatherRepository) FetchCurrentByCity(ctx context.Context, name string) (models.CurrentConditions, error) {
	return o.fetchCurrent(ctx, cityParams(name))
}

func (o *OpenWeatherRepository) FetchCurrentByCoordinates(ctx context.Context, lat, lon float64) (models.CurrentConditions, error) {
	return o.fetchCurrent(ctx, coordinateParams(lat, lon))
}

func (o *OpenWeatherRepository) FetchForecastByCity(ctx context.Context, name string) ([]models.ForecastEntry, error) {
	return o.fetchForecast(ctx, cityParams(name))
}

func (o *OpenWeatherRepository) FetchForecastByCoordinates(ctx context.Context, lat, lon float64) ([]models.ForecastEntry, error) {
	return o.fetchForecast(ctx, coordinateParams(lat, lon))
}

// Geocode resolves a city through the direct geocoding endpoint and keeps the best match.
func (o *OpenWeatherRepository) Geocode(ctx context.Context, city string) (models.Coordinates, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("limit", "1")

	var response geocodeResponse
	if err := o.get(ctx, o.geoURL+"/direct", params, false, &response); err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to geocode %q: %w", city, err)
	}
	if len(response) == 0 {
		return models.Coordinates{}, fmt.Errorf("%w: %q", models.ErrNotFound, city)
	}

	return models.Coordinates{Latitude: response[0].Lat, Longitude: response[0].Lon}, nil
}

func (o *OpenWeatherRepository) fetchCurrent(ctx context.Context, params url.Values) (models.CurrentConditions, error) {
	var response CurrentResponse
	if err := o.get(ctx, o.baseURL+"/weather", params, true, &response); err != nil {
		return models.CurrentConditions{}, err
	}

	current := models.CurrentConditions{
		LocationName:   response.Name,
		Temperature:    response.Main.Temp,
		MinTemperature: response.Main.TempMin,
		MaxTemperature: response.Main.TempMax,
	}
	if len(response.Weather) > 0 {
		current.Description = response.Weather[0].Description
		current.IconCode = response.Weather[0].Icon
	}

	return current, nil
}

func (o *OpenWeatherRepository) fetchForecast(ctx context.Context, params url.Values) ([]models.ForecastEntry, error) {
	var response ForecastResponse
	if err := o.get(ctx, o.baseURL+"/forecast", params, true, &response); err != nil {
		return nil, err
	}

	o.l.Info("parsed API response", map[string]any{
		"items": len(response.List),
		"city":  response.City.Name,
	})

	entries := make([]models.ForecastEntry, 0, len(response.List))
	for _, item := range response.List {
		entry := models.ForecastEntry{
			TimestampSeconds: item.Dt,
			Temperature:      item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
			entry.IconCode = item.Weather[0].Icon
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// get issues one GET request and decodes the body into out. Transport failures wrap
// models.ErrNetwork; failing statuses, failing in-body codes and undecodable bodies
// are reported as *models.ProviderError.
func (o *OpenWeatherRepository) get(ctx context.Context, endpoint string, params url.Values, localized bool, out any) error {
	logParams := params.Encode()

	if localized {
		params.Set("units", o.units)
		params.Set("lang", o.lang)
	}
	params.Set("appid", o.apiKey)

	o.l.Info("making openweathermap API request", map[string]any{
		"endpoint": endpoint,
		"params":   logParams,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to do request: %w", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	o.l.Info("received openweathermap API response", map[string]any{
		"endpoint":   endpoint,
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", models.ErrNetwork, err)
	}

	// Geocoding answers with a bare array, so a failing decode here is expected.
	var env envelope
	_ = json.Unmarshal(body, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := env.message()
		if msg == "" {
			msg = resp.Status
		}
		return &models.ProviderError{Status: resp.StatusCode, Code: string(env.Cod), Message: msg}
	}

	if env.Cod.failed() {
		return &models.ProviderError{Status: resp.StatusCode, Code: string(env.Cod), Message: env.message()}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &models.ProviderError{
			Status:  resp.StatusCode,
			Message: "failed to parse JSON response: " + err.Error(),
		}
	}

	return nil
}

func cityParams(name string) url.Values {
	params := url.Values{}
	params.Set("q", name)
	return params
}

func coordinateParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return params
}
