package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-widget/config"
	v1 "weather-widget/internal/controllers/http/v1"
	"weather-widget/internal/location"
	"weather-widget/internal/presentation"
	"weather-widget/internal/repositories"
	"weather-widget/internal/services/lookup"
	"weather-widget/pkg/httpserver"
	"weather-widget/pkg/logger"
	"weather-widget/pkg/observe"
)

// @title Weather Widget
// @version 1.0.0
// @description Current conditions and short-term forecast for the user's position or a searched city.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Lookup
// @tag.description Weather lookup operations
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	loc, err := cnf.TimeLocation()
	if err != nil {
		log.Fatalf("cannot load timezone: %v", err)
	}

	hook := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.DSN, cnf.Sentry.Debug)
	l := logger.New(logger.Options{
		AppName:  cnf.App.Name,
		AppEnv:   cnf.App.Env,
		Level:    cnf.Log.Level,
		Location: loc,
	}, os.Stdout, hook)
	hook.SetLogger(l)

	repo, err := repositories.InitWeatherRepository(cnf, l)
	if err != nil {
		l.Fatal("cannot init weather repository", map[string]any{"err": err.Error()})
	}

	controller := lookup.NewController(repo, repo, l, lookup.Options{
		GeocodeSearch: cnf.Weather.GeocodeSearch,
	})

	renderer, err := presentation.NewRenderer()
	if err != nil {
		l.Fatal("cannot init renderer", map[string]any{"err": err.Error()})
	}

	read, write, idle := cnf.Server.Timeouts()
	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  read,
		WriteTimeout: write,
		IdleTimeout:  idle,
	}, l)

	v1.NewRouter(app, controller, renderer, loc, l)

	// Startup lookup, the way the widget locates the user once per load.
	go func() {
		state := controller.Locate(ctx, location.FromConfig(cnf.Location, l))
		l.Info("startup lookup finished", map[string]any{
			"mode":  cnf.Location.Mode,
			"state": state.Kind().String(),
		})
	}()

	go func() {
		if err := app.Listen(cnf.Addr()); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":    cnf.Server.Port,
		"version": cnf.App.Version,
		"sentry":  hook.Enabled(),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		cancel()
		hook.Flush()
		_ = l.Stop()
	}()

	select {
	case sig := <-sigCh:
		l.Info("received shutdown signal", map[string]any{"signal": sig.String()})
	case <-ctx.Done():
		l.Info("context cancelled")
	}
}
