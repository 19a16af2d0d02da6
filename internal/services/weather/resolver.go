package weather

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"weather-lookup/internal/models"
	"weather-lookup/internal/repositories"
	"weather-lookup/pkg/logger"
)

// Resolver turns a free text place query into a single location.
type Resolver struct {
	geo repositories.GeoRepository
	l   *logger.Logger
}

func NewResolver(geo repositories.GeoRepository, l *logger.Logger) *Resolver {
	return &Resolver{geo: geo, l: l}
}

// Resolve asks the provider for one match. The first match is authoritative.
func (r *Resolver) Resolve(ctx context.Context, query string) (models.ResolvedLocation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.ResolvedLocation{}, ErrEmptyQuery
	}

	matches, err := r.geo.Geocode(ctx, query, 1)
	if err != nil {
		return models.ResolvedLocation{}, errors.Wrapf(err, "geocode %q", query)
	}
	if len(matches) == 0 {
		r.l.Info("no location matched", map[string]any{"query": query})
		return models.ResolvedLocation{}, ErrLocationNotFound
	}

	match := matches[0]
	location := models.ResolvedLocation{
		Coordinates: models.Coordinates{Lat: match.Lat, Lon: match.Lon},
		DisplayName: displayName(match.Name, match.Country),
	}

	r.l.Debug("location resolved", map[string]any{
		"query":  query,
		"name":   location.DisplayName,
		"coords": location.Coordinates.String(),
	})

	return location, nil
}

func displayName(name, country string) string {
	switch {
	case name == "":
		return country
	case country == "":
		return name
	default:
		return name + ", " + country
	}
}
