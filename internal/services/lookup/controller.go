package lookup

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"weather-widget/internal/location"
	"weather-widget/internal/models"
	"weather-widget/internal/repositories"
	"weather-widget/pkg/logger"
)

type Options struct {
	// GeocodeSearch resolves searched cities to coordinates before fetching.
	GeocodeSearch bool
}

// Controller owns the lookup state. Each cycle (Locate or Search) fetches current
// conditions and the forecast concurrently and only reaches Ready when both succeed.
// Starting a cycle cancels the one in flight, whose result is then discarded.
type Controller struct {
	repo     repositories.WeatherRepository
	geocoder repositories.Geocoder
	opts     Options
	l        *logger.Logger

	mu     sync.Mutex
	state  State
	token  uint64
	cancel context.CancelFunc
}

func NewController(repo repositories.WeatherRepository, geocoder repositories.Geocoder, l *logger.Logger, opts Options) *Controller {
	if l == nil {
		l = logger.Nop()
	}
	if geocoder == nil {
		opts.GeocodeSearch = false
	}
	return &Controller{
		repo:     repo,
		geocoder: geocoder,
		opts:     opts,
		l:        l,
		state:    Idle(),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Locate runs a cycle for the position given by resolver. A resolver failure ends the
// cycle without any weather request.
func (c *Controller) Locate(ctx context.Context, resolver location.Resolver) State {
	ctx, token := c.begin(ctx)

	coords, err := resolver.ResolveLocation(ctx)
	if err != nil {
		return c.fail(token, originLocate, errors.Wrap(err, "resolve location"))
	}

	c.l.Info("starting located lookup", map[string]any{"coordinates": coords.String()})

	return c.fetchByCoordinates(ctx, token, originLocate, coords)
}

// Search runs a cycle for a free-text city name.
func (c *Controller) Search(ctx context.Context, city string) State {
	ctx, token := c.begin(ctx)

	city = strings.TrimSpace(city)
	if city == "" {
		return c.fail(token, originSearch, errors.Wrap(models.ErrNotFound, "empty city name"))
	}

	c.l.Info("starting city lookup", map[string]any{"city": city, "geocode": c.opts.GeocodeSearch})

	if c.opts.GeocodeSearch {
		coords, err := c.geocoder.Geocode(ctx, city)
		if err != nil {
			return c.fail(token, originSearch, errors.Wrapf(err, "geocode %q", city))
		}
		return c.fetchByCoordinates(ctx, token, originSearch, coords)
	}

	current, forecast, err := fetchBoth(ctx,
		func(ctx context.Context) (models.CurrentConditions, error) {
			return c.repo.FetchCurrentByCity(ctx, city)
		},
		func(ctx context.Context) ([]models.ForecastEntry, error) {
			return c.repo.FetchForecastByCity(ctx, city)
		},
	)
	return c.complete(token, originSearch, current, forecast, err)
}

func (c *Controller) fetchByCoordinates(ctx context.Context, token uint64, o origin, coords models.Coordinates) State {
	current, forecast, err := fetchBoth(ctx,
		func(ctx context.Context) (models.CurrentConditions, error) {
			return c.repo.FetchCurrentByCoordinates(ctx, coords.Latitude, coords.Longitude)
		},
		func(ctx context.Context) ([]models.ForecastEntry, error) {
			return c.repo.FetchForecastByCoordinates(ctx, coords.Latitude, coords.Longitude)
		},
	)
	return c.complete(token, o, current, forecast, err)
}

// fetchBoth runs both fetches in their own goroutine and waits for both. Any failure
// fails the pair.
func fetchBoth(
	ctx context.Context,
	fetchCurrent func(context.Context) (models.CurrentConditions, error),
	fetchForecast func(context.Context) ([]models.ForecastEntry, error),
) (models.CurrentConditions, []models.ForecastEntry, error) {
	var (
		wg          sync.WaitGroup
		current     models.CurrentConditions
		forecast    []models.ForecastEntry
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = fetchCurrent(ctx)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = fetchForecast(ctx)
	}()
	wg.Wait()

	if currentErr != nil {
		return models.CurrentConditions{}, nil, errors.Wrap(currentErr, "fetch current conditions")
	}
	if forecastErr != nil {
		return models.CurrentConditions{}, nil, errors.Wrap(forecastErr, "fetch forecast")
	}
	if len(forecast) == 0 {
		return models.CurrentConditions{}, nil, errors.Wrap(models.ErrNotFound, "no forecast data available")
	}

	return current, forecast, nil
}

func (c *Controller) complete(token uint64, o origin, current models.CurrentConditions, forecast []models.ForecastEntry, err error) State {
	if err != nil {
		return c.fail(token, o, err)
	}

	c.l.Info("lookup succeeded", map[string]any{
		"origin":   string(o),
		"location": current.LocationName,
		"entries":  len(forecast),
	})

	return c.finish(token, Ready(current, forecast))
}

func (c *Controller) fail(token uint64, o origin, err error) State {
	fields := map[string]any{"origin": string(o), "token": token}
	if models.IsGeolocation(err) {
		c.l.Warning(err.Error(), fields)
	} else {
		c.l.Error(err, fields)
	}
	return c.finish(token, Failed(messageFor(o, err)))
}

func (c *Controller) begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.token++
	c.cancel = cancel
	c.state = Loading()

	return ctx, c.token
}

// finish stores next unless a newer cycle started meanwhile, and returns the state
// that is current afterwards.
func (c *Controller) finish(token uint64, next State) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		c.l.Debug("discarding superseded lookup", map[string]any{
			"token":  token,
			"latest": c.token,
			"kind":   next.Kind().String(),
		})
		return c.state
	}

	c.cancel()
	c.cancel = nil
	c.state = next
	return next
}
