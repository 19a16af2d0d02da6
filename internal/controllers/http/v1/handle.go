package http

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"weather-lookup/internal/models"
	"weather-lookup/internal/presenter"
	"weather-lookup/internal/repositories"
	"weather-lookup/internal/services/weather"
)

var validate = validator.New()

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"location not found"`
}

// weatherQuery holds the query parameters of GET /weather.
type weatherQuery struct {
	Q   string `validate:"max=200"`
	Lat string `validate:"required_with=Lon,latitude"`
	Lon string `validate:"required_with=Lat,longitude"`
}

// GetWeather godoc
// @Summary Get current weather and daily forecast
// @Description Looks up a place by name or postal code, or uses the given coordinates,
// @Description and returns current conditions plus up to five upcoming days.
// @Description Without any parameter the configured default place is used. q wins over lat/lon.
// @Tags Weather
// @Accept json
// @Produce json
// @Param q query string false "City name or postal code" example(London)
// @Param lat query number false "Latitude (-90 to 90), requires lon" minimum(-90) maximum(90) example(51.5073)
// @Param lon query number false "Longitude (-180 to 180), requires lat" minimum(-180) maximum(180) example(-0.1276)
// @Success 200 {object} presenter.WeatherResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "Location not found"
// @Failure 502 {object} ErrorResponse "Weather provider unavailable"
// @Router /weather [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/weather?q=London"
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	query := weatherQuery{
		Q:   c.Query("q"),
		Lat: c.Query("lat"),
		Lon: c.Query("lon"),
	}

	hasPlace := c.Context().QueryArgs().Has("q")

	var (
		view models.WeatherView
		err  error
	)

	switch {
	case hasPlace:
		if err := validate.Var(query.Q, "max=200"); err != nil {
			return r.badRequest(c, "Place query is too long")
		}
		view, err = r.service.FetchByPlace(c.UserContext(), query.Q)

	case query.Lat != "" || query.Lon != "":
		if err := validate.Struct(query); err != nil {
			return r.badRequest(c, describeValidation(err))
		}
		coords, parseErr := parseCoordinates(query.Lat, query.Lon)
		if parseErr != nil {
			return r.badRequest(c, parseErr.Error())
		}
		view, err = r.service.FetchByCoordinates(c.UserContext(), coords, "")

	default:
		view, err = r.service.FetchByPlace(c.UserContext(), r.defaultPlace)
	}

	if err != nil {
		return r.writeError(c, query, err)
	}

	return c.JSON(presenter.Present(view))
}

func (r *routes) writeError(c *fiber.Ctx, query weatherQuery, err error) error {
	switch {
	case errors.Is(err, weather.ErrEmptyQuery):
		return r.badRequest(c, "Place query must not be empty")

	case errors.Is(err, models.ErrInvalidCoordinates):
		return r.badRequest(c, err.Error())

	case errors.Is(err, weather.ErrLocationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "location not found",
		})

	case errors.Is(err, weather.ErrWeatherUnavailable), errors.Is(err, repositories.ErrUpstream):
		r.l.Error(err, map[string]any{
			"q":   query.Q,
			"lat": query.Lat,
			"lon": query.Lon,
		})
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "weather data unavailable",
		})
	}

	r.l.Error(errors.Wrap(err, "unexpected weather lookup failure"))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "Failed to fetch weather data",
	})
}

func (r *routes) badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

func parseCoordinates(lat, lon string) (models.Coordinates, error) {
	latFloat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return models.Coordinates{}, errors.New("invalid latitude format")
	}
	lonFloat, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return models.Coordinates{}, errors.New("invalid longitude format")
	}
	return models.Coordinates{Lat: latFloat, Lon: lonFloat}, nil
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}

	fe := fieldErrs[0]
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required_with":
		return "Missing required parameter: " + name
	case "latitude":
		return "Latitude must be a number between -90 and 90"
	case "longitude":
		return "Longitude must be a number between -180 and 180"
	default:
		return "Invalid parameter: " + name
	}
}
