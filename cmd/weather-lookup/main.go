package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-lookup/config"
	v1 "weather-lookup/internal/controllers/http/v1"
	"weather-lookup/internal/repositories"
	"weather-lookup/internal/services/weather"
	"weather-lookup/pkg/httpserver"
	"weather-lookup/pkg/logger"
	"weather-lookup/pkg/observe"
)

// @title Weather Lookup API
// @version 1.0.0
// @description Resolves a place or coordinates and returns current conditions plus a daily forecast from OpenWeatherMap.

// @contact.name Weather Lookup Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Current conditions and daily forecast lookups
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	level, err := logger.ParseLevel(cnf.Log.Level)
	if err != nil {
		log.Fatalf("cannot parse log level: %v", err)
	}

	writers := []io.Writer{os.Stdout}
	var sentryHook *observe.SentryHook
	if cnf.Observe.SentryDSN != "" {
		sentryHook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.IsDevelopment(), cnf.Observe.SentryDSN)
		writers = append(writers, sentryHook)
	}

	l := logger.NewZapLogger(cnf.App.Name,
		logger.WithWriters(writers...),
		logger.WithLevel(level),
		logger.WithEnv(cnf.App.Env),
	)
	if sentryHook != nil {
		sentryHook.SetLogger(l)
	}

	shutdownTracing, err := observe.InitTracing(ctx, observe.TracingConfig{
		ServiceName:    cnf.App.Name,
		ServiceVersion: cnf.App.Version,
		Environment:    cnf.App.Env,
		OTLPEndpoint:   cnf.Observe.OTLPEndpoint,
		Insecure:       cnf.Observe.OTLPInsecure,
	})
	if err != nil {
		l.Fatal("cannot init tracing", map[string]any{"err": err.Error()})
	}

	app := httpserver.InitFiberServer(cnf.App.Name, cnf.Server)

	repos, err := repositories.InitWeatherRepositories(cnf, l)
	if err != nil {
		l.Fatal("cannot init weather repositories", map[string]any{"err": err.Error()})
	}

	service := weather.NewWeatherService(
		weather.NewResolver(repos.Geo, l),
		repos.Weather,
		cnf.Forecast,
		l,
	)

	v1.NewRouter(
		app,
		service,
		cnf.Forecast.DefaultPlace,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":         cnf.Server.Port,
		"env":          cnf.App.Env,
		"day_boundary": cnf.Forecast.DayBoundary,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if err := shutdownTracing(shutdownCtx); err != nil {
			l.Error(err)
		}
		if sentryHook != nil {
			sentryHook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
