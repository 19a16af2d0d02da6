package weather

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"weather-lookup/config"
	"weather-lookup/internal/models"
	"weather-lookup/internal/repositories"
	"weather-lookup/pkg/logger"
	"weather-lookup/pkg/observe"
)

const (
	entryPlace       = "place"
	entryCoordinates = "coordinates"
)

// WeatherService builds a WeatherView from a place query or from coordinates.
type WeatherService struct {
	resolver    *Resolver
	repo        repositories.WeatherRepository
	days        int
	dayBoundary string
	now         func() time.Time
	tracer      trace.Tracer
	l           *logger.Logger
}

type Option func(*WeatherService)

// WithClock replaces time.Now. The clock decides which day counts as today.
func WithClock(now func() time.Time) Option {
	return func(s *WeatherService) {
		s.now = now
	}
}

func NewWeatherService(resolver *Resolver, repo repositories.WeatherRepository, cfg config.ForecastConfig, l *logger.Logger, opts ...Option) *WeatherService {
	s := &WeatherService{
		resolver:    resolver,
		repo:        repo,
		days:        cfg.Days,
		dayBoundary: cfg.DayBoundary,
		now:         time.Now,
		tracer:      otel.Tracer("weather-lookup/internal/services/weather"),
		l:           l,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchByPlace resolves query and fetches the weather there. Resolver errors are returned as is.
func (s *WeatherService) FetchByPlace(ctx context.Context, query string) (models.WeatherView, error) {
	ctx, span := s.tracer.Start(ctx, "WeatherService.FetchByPlace", trace.WithAttributes(
		attribute.String("weather.query", query),
	))
	defer span.End()

	location, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		s.finish(span, entryPlace, err)
		return models.WeatherView{}, err
	}

	view, err := s.fetch(ctx, location)
	s.finish(span, entryPlace, err)
	return view, err
}

// FetchByCoordinates fetches current conditions and the forecast for coords.
// displayName may be empty.
func (s *WeatherService) FetchByCoordinates(ctx context.Context, coords models.Coordinates, displayName string) (models.WeatherView, error) {
	ctx, span := s.tracer.Start(ctx, "WeatherService.FetchByCoordinates")
	defer span.End()

	view, err := s.fetch(ctx, models.ResolvedLocation{Coordinates: coords, DisplayName: displayName})
	s.finish(span, entryCoordinates, err)
	return view, err
}

func (s *WeatherService) fetch(ctx context.Context, location models.ResolvedLocation) (models.WeatherView, error) {
	if err := location.Coordinates.Validate(); err != nil {
		return models.WeatherView{}, err
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Float64("weather.lat", location.Coordinates.Lat),
		attribute.Float64("weather.lon", location.Coordinates.Lon),
	)

	s.l.Info("starting weather fetch", map[string]any{
		"repo":   s.repo.Name(),
		"coords": location.Coordinates.String(),
		"name":   location.DisplayName,
	})

	var (
		current  models.CurrentConditions
		forecast models.ForecastSeries
	)

	// Both calls always settle before Wait returns; the first failure wins.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		current, err = s.repo.FetchCurrent(ctx, location.Coordinates)
		return errors.Wrap(err, "fetch current conditions")
	})
	g.Go(func() error {
		var err error
		forecast, err = s.repo.FetchForecast(ctx, location.Coordinates)
		return errors.Wrap(err, "fetch forecast")
	})

	if err := g.Wait(); err != nil {
		s.l.Warning("failed to fetch weather", map[string]any{
			"repo":   s.repo.Name(),
			"coords": location.Coordinates.String(),
			"err":    err.Error(),
		})
		return models.WeatherView{}, &WeatherUnavailableError{Err: err}
	}

	zone := s.dayZone(forecast)
	today := models.DateOf(s.now(), zone)

	view := models.WeatherView{
		Location: location,
		Current:  current,
		Upcoming: Summarize(forecast.Samples, today, s.days, zone),
	}

	s.l.Info("completed weather fetch", map[string]any{
		"repo":    s.repo.Name(),
		"samples": len(forecast.Samples),
		"days":    len(view.Upcoming),
		"today":   today.String(),
	})

	return view, nil
}

func (s *WeatherService) dayZone(forecast models.ForecastSeries) *time.Location {
	if s.dayBoundary == config.DayBoundaryUTC {
		return time.UTC
	}
	return forecast.Zone()
}

func (s *WeatherService) finish(span trace.Span, entry string, err error) {
	outcome := outcomeOf(err)
	observe.ObserveLookup(entry, outcome)
	span.SetAttributes(attribute.String("weather.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyQuery), errors.Is(err, models.ErrInvalidCoordinates):
		return "invalid_input"
	case errors.Is(err, ErrLocationNotFound):
		return "not_found"
	default:
		return "unavailable"
	}
}
