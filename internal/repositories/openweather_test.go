package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-widget/internal/models"
	"weather-widget/pkg/logger"
)

const currentParisBody = `{
	"coord": {"lon": 2.3488, "lat": 48.8534},
	"weather": [{"id": 800, "main": "Clear", "description": "ciel dégagé", "icon": "01d"}],
	"main": {"temp": 21.6, "feels_like": 21.2, "temp_min": 19.4, "temp_max": 23.5, "pressure": 1015, "humidity": 50},
	"name": "Paris",
	"cod": 200
}`

func forecastBody(entries int) string {
	var items []string
	for i := 0; i < entries; i++ {
		items = append(items, fmt.Sprintf(
			`{"dt": %d, "main": {"temp": %.1f}, "weather": [{"description": "entry %d", "icon": "0%dd"}]}`,
			1753455600+int64(i)*10800, 15.0+float64(i)/10, i, i%9+1,
		))
	}
	return fmt.Sprintf(`{"cod": "200", "message": 0, "cnt": %d, "list": [%s], "city": {"name": "Paris"}}`,
		entries, strings.Join(items, ","))
}

func newTestRepository(t *testing.T, baseURL string) *OpenWeatherRepository {
	t.Helper()

	repo, err := NewOpenWeatherRepository(OpenWeatherOptions{
		APIKey:  "test-key",
		BaseURL: baseURL,
		GeoURL:  baseURL + "/geo",
	}, logger.NewZapLogger("test-app", io.Discard), http.DefaultClient)
	require.NoError(t, err)
	return repo
}

func TestNewOpenWeatherRepository_EmptyKey(t *testing.T) {
	repo, err := NewOpenWeatherRepository(OpenWeatherOptions{APIKey: "  "}, nil, nil)
	assert.Error(t, err)
	assert.Nil(t, repo)
}

func TestOpenWeatherRepository_Name(t *testing.T) {
	repo := &OpenWeatherRepository{}
	assert.Equal(t, "openweathermap", repo.Name())
}

func TestOpenWeatherRepository_FetchCurrentByCity(t *testing.T) {
	var calls atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/weather", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "Paris", q.Get("q"))
		assert.Equal(t, "test-key", q.Get("appid"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "fr", q.Get("lang"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentParisBody))
	}))
	defer mockServer.Close()

	repo := newTestRepository(t, mockServer.URL)

	current, err := repo.FetchCurrentByCity(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, models.CurrentConditions{
		LocationName:   "Paris",
		Temperature:    21.6,
		MinTemperature: 19.4,
		MaxTemperature: 23.5,
		Description:    "ciel dégagé",
		IconCode:       "01d",
	}, current)
}

func TestOpenWeatherRepository_FetchCurrentByCoordinates(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "48.8566", q.Get("lat"))
		assert.Equal(t, "2.3522", q.Get("lon"))
		assert.Empty(t, q.Get("q"))
		_, _ = w.Write([]byte(currentParisBody))
	}))
	defer mockServer.Close()

	repo := newTestRepository(t, mockServer.URL)

	current, err := repo.FetchCurrentByCoordinates(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)
	assert.Equal(t, "Paris", current.LocationName)
}

func TestOpenWeatherRepository_FetchForecastByCity(t *testing.T) {
	var calls atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "fr", r.URL.Query().Get("lang"))
		_, _ = w.Write([]byte(forecastBody(40)))
	}))
	defer mockServer.Close()

	repo := newTestRepository(t, mockServer.URL)

	entries, err := repo.FetchForecastByCity(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	require.Len(t, entries, 40)

	for i, entry := range entries {
		assert.Equal(t, 1753455600+int64(i)*10800, entry.TimestampSeconds)
		assert.Equal(t, fmt.Sprintf("entry %d", i), entry.Description)
	}
	assert.InDelta(t, 15.0, entries[0].Temperature, 1e-9)
	assert.Equal(t, "01d", entries[0].IconCode)
}

func TestOpenWeatherRepository_FetchForecastByCoordinates(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "-33.8688", r.URL.Query().Get("lat"))
		assert.Equal(t, "151.2093", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(forecastBody(3)))
	}))
	defer mockServer.Close()

	repo := newTestRepository(t, mockServer.URL)

	entries, err := repo.FetchForecastByCoordinates(context.Background(), -33.8688, 151.2093)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestOpenWeatherRepository_ForecastWithoutConditions(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cod": "200", "message": 0, "list": [{"dt": 1753455600, "main": {"temp": 12.3}, "weather": []}]}`))
	}))
	defer mockServer.Close()

	entries, err := newTestRepository(t, mockServer.URL).FetchForecastByCity(context.Background(), "Brest")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Description)
	assert.Empty(t, entries[0].IconCode)
}

func TestOpenWeatherRepository_HTTPErrorStatus(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod": 401, "message": "Invalid API key."}`))
	}))
	defer mockServer.Close()

	_, err := newTestRepository(t, mockServer.URL).FetchCurrentByCity(context.Background(), "Paris")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrProvider)
	assert.NotErrorIs(t, err, models.ErrNotFound)
	assert.NotErrorIs(t, err, models.ErrNetwork)

	var providerErr *models.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusUnauthorized, providerErr.Status)
	assert.Equal(t, "401", providerErr.Code)
	assert.Equal(t, "Invalid API key.", providerErr.Message)
}

func TestOpenWeatherRepository_HTTPErrorWithoutBody(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer mockServer.Close()

	_, err := newTestRepository(t, mockServer.URL).FetchForecastByCity(context.Background(), "Paris")
	assert.ErrorIs(t, err, models.ErrProvider)
	assert.Contains(t, err.Error(), "502")
}

func TestOpenWeatherRepository_InBodyNotFound(t *testing.T) {
	// The provider may answer HTTP 200 with a failing code in the body.
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	}))
	defer mockServer.Close()

	repo := newTestRepository(t, mockServer.URL)

	_, err := repo.FetchForecastByCity(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, models.ErrProvider)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repo.FetchCurrentByCity(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOpenWeatherRepository_InBodyFailureCode(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cod": 500, "message": "internal error"}`))
	}))
	defer mockServer.Close()

	_, err := newTestRepository(t, mockServer.URL).FetchCurrentByCoordinates(context.Background(), 1, 2)
	assert.ErrorIs(t, err, models.ErrProvider)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestOpenWeatherRepository_InvalidJSON(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("invalid json"))
	}))
	defer mockServer.Close()

	_, err := newTestRepository(t, mockServer.URL).FetchForecastByCity(context.Background(), "Paris")
	assert.ErrorIs(t, err, models.ErrProvider)
	assert.Contains(t, err.Error(), "failed to parse JSON response")
}

func TestOpenWeatherRepository_NetworkError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := mockServer.URL
	mockServer.Close()

	_, err := newTestRepository(t, baseURL).FetchCurrentByCity(context.Background(), "Paris")
	assert.ErrorIs(t, err, models.ErrNetwork)
	assert.NotErrorIs(t, err, models.ErrProvider)
}

func TestOpenWeatherRepository_ContextCancellation(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(currentParisBody))
	}))
	defer mockServer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRepository(t, mockServer.URL).FetchCurrentByCity(ctx, "Paris")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenWeatherRepository_Geocode(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/direct", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Lyon", q.Get("q"))
		assert.Equal(t, "1", q.Get("limit"))
		assert.Equal(t, "test-key", q.Get("appid"))
		assert.Empty(t, q.Get("units"))
		_, _ = w.Write([]byte(`[{"name": "Lyon", "lat": 45.7578, "lon": 4.832, "country": "FR"}]`))
	}))
	defer mockServer.Close()

	coords, err := newTestRepository(t, mockServer.URL).Geocode(context.Background(), "Lyon")
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Latitude: 45.7578, Longitude: 4.832}, coords)
}

func TestOpenWeatherRepository_GeocodeEmpty(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	_, err := newTestRepository(t, mockServer.URL).Geocode(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NotErrorIs(t, err, models.ErrProvider)
}

func TestProviderCode_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw    string
		want   providerCode
		failed bool
	}{
		{raw: `200`, want: "200"},
		{raw: `"200"`, want: "200"},
		{raw: `"404"`, want: "404", failed: true},
		{raw: `401`, want: "401", failed: true},
		{raw: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var c providerCode
			require.NoError(t, c.UnmarshalJSON([]byte(tt.raw)))
			assert.Equal(t, tt.want, c)
			assert.Equal(t, tt.failed, c.failed())
		})
	}
}
