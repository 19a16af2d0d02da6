package models

import (
	"errors"
	"fmt"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" example:"51.5073"`
	Lon float64 `json:"lon" example:"-0.1276"`
}

// Validate reports ErrInvalidCoordinates when the point is outside the valid ranges.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %f must be between -90 and 90", ErrInvalidCoordinates, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %f must be between -180 and 180", ErrInvalidCoordinates, c.Lon)
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f", c.Lat, c.Lon)
}

// ResolvedLocation is a point plus an optional human readable name.
// DisplayName is empty when the caller supplied raw coordinates.
type ResolvedLocation struct {
	Coordinates Coordinates `json:"coordinates"`
	DisplayName string      `json:"display_name,omitempty" example:"London, GB"`
}

// GeoMatch is a single geocoding candidate as reported by the provider.
type GeoMatch struct {
	Lat     float64
	Lon     float64
	Name    string
	Country string
}
