package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"weather-widget/internal/models"
	"weather-widget/pkg/logger"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// IPLookup locates the host from its public address through an ip-api.com
// compatible endpoint.
type IPLookup struct {
	url        string
	httpClient HTTPClient
	l          *logger.Logger
}

type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func NewIPLookup(url string, l *logger.Logger, httpClient HTTPClient) *IPLookup {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if l == nil {
		l = logger.Nop()
	}
	return &IPLookup{url: url, httpClient: httpClient, l: l}
}

func (p *IPLookup) ResolveLocation(ctx context.Context) (models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: failed to create request: %w", models.ErrGeolocationFailed, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: failed to do request: %w", models.ErrGeolocationFailed, err)
	}
	defer resp.Body.Close()

	p.l.Info("received ip lookup response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	if resp.StatusCode == http.StatusForbidden {
		return models.Coordinates{}, models.ErrGeolocationDenied
	}
	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, fmt.Errorf("%w: HTTP error (status %d): %s", models.ErrGeolocationFailed, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: failed to read response body: %w", models.ErrGeolocationFailed, err)
	}

	var response ipLookupResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: failed to parse JSON response: %w", models.ErrGeolocationFailed, err)
	}
	if response.Status != "success" {
		return models.Coordinates{}, fmt.Errorf("%w: lookup status %q: %s", models.ErrGeolocationFailed, response.Status, response.Message)
	}

	p.l.Debug("resolved location from ip", map[string]any{"city": response.City})

	return models.Coordinates{Latitude: response.Lat, Longitude: response.Lon}, nil
}
