package location

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-widget/config"
	"weather-widget/internal/models"
	"weather-widget/pkg/logger"
)

func ptr(v float64) *float64 {
	return &v
}

func TestStatic(t *testing.T) {
	coords, err := NewStatic(ptr(48.85), ptr(2.35)).ResolveLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Latitude: 48.85, Longitude: 2.35}, coords)

	_, err = NewStatic(ptr(48.85), nil).ResolveLocation(context.Background())
	assert.ErrorIs(t, err, models.ErrGeolocationUnavailable)
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.ResolveLocation(context.Background())
	assert.ErrorIs(t, err, models.ErrGeolocationUnavailable)
}

func TestReported(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon string
		failure  string
		want     models.Coordinates
		wantErr  error
	}{
		{name: "coordinates", lat: "43.2965", lon: "5.3698", want: models.Coordinates{Latitude: 43.2965, Longitude: 5.3698}},
		{name: "denied", lat: "43.2", lon: "5.3", failure: ReportDenied, wantErr: models.ErrGeolocationDenied},
		{name: "unavailable", failure: ReportUnavailable, wantErr: models.ErrGeolocationUnavailable},
		{name: "timeout", failure: "timeout", wantErr: models.ErrGeolocationFailed},
		{name: "missing latitude", lon: "5.3", wantErr: models.ErrGeolocationFailed},
		{name: "garbage longitude", lat: "43.2", lon: "east", wantErr: models.ErrGeolocationFailed},
		{name: "out of range", lat: "91", lon: "5.3", wantErr: models.ErrGeolocationFailed},
		{name: "nan latitude", lat: "NaN", lon: "2.35", wantErr: models.ErrGeolocationFailed},
		{name: "infinite longitude", lat: "48.85", lon: "+Inf", wantErr: models.ErrGeolocationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, err := NewReported(tt.lat, tt.lon, tt.failure).ResolveLocation(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, coords)
		})
	}
}

func TestIPLookup_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "success", "city": "Bordeaux", "lat": 44.8378, "lon": -0.5792}`))
	}))
	defer mockServer.Close()

	resolver := NewIPLookup(mockServer.URL, logger.NewZapLogger("test-app", io.Discard), nil)

	coords, err := resolver.ResolveLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Latitude: 44.8378, Longitude: -0.5792}, coords)
}

func TestIPLookup_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "lookup failed", status: http.StatusOK, body: `{"status": "fail", "message": "private range"}`, wantErr: models.ErrGeolocationFailed},
		{name: "forbidden", status: http.StatusForbidden, wantErr: models.ErrGeolocationDenied},
		{name: "server error", status: http.StatusInternalServerError, wantErr: models.ErrGeolocationFailed},
		{name: "invalid json", status: http.StatusOK, body: `not json`, wantErr: models.ErrGeolocationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer mockServer.Close()

			_, err := NewIPLookup(mockServer.URL, nil, nil).ResolveLocation(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIPLookup_NetworkError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := mockServer.URL
	mockServer.Close()

	_, err := NewIPLookup(url, nil, nil).ResolveLocation(context.Background())
	assert.ErrorIs(t, err, models.ErrGeolocationFailed)
}

func TestFromConfig(t *testing.T) {
	assert.IsType(t, &Static{}, FromConfig(config.LocationConfig{Mode: config.LocationModeStatic}, nil))
	assert.IsType(t, &IPLookup{}, FromConfig(config.LocationConfig{Mode: config.LocationModeIP, IPLookupURL: "http://localhost"}, nil))
	assert.IsType(t, Unavailable{}, FromConfig(config.LocationConfig{Mode: config.LocationModeNone}, nil))
}
