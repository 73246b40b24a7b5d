package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/christian-pebl/DataApp-sub010/internal/monitor"
)

var validate = validator.New()

// RegisterRoutes wires the pipeline operations into the Fiber app. Pipeline
// outcomes (including failures) are reported through the result envelope with
// HTTP 200; 400 is reserved for malformed queries.
func RegisterRoutes(app *fiber.App, service *monitor.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/stations/parameters", func(c *fiber.Ctx) error {
		return c.JSON(service.DiscoverParameters(c.Context()))
	})

	v1.Get("/stations", func(c *fiber.Ctx) error {
		var q stationsQuery
		q.Parameter = c.Query("parameter")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "parameter query parameter is required")
		}
		return c.JSON(service.FilterStations(c.Context(), q.Parameter))
	})

	v1.Get("/readings", func(c *fiber.Ctx) error {
		var q readingsQuery
		q.Measure = c.Query("measure")
		q.Start = c.Query("start")
		q.End = c.Query("end")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "measure, start and end query parameters are required (measure must be a URL)")
		}
		return c.JSON(service.GetTimeSeries(c.Context(), q.Measure, q.Start, q.End))
	})

	v1.Get("/marine", func(c *fiber.Ctx) error {
		var q marineQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if q.Place != "" {
			return c.JSON(service.GetMarineByPlace(c.Context(), q.Place, q.Start, q.End))
		}
		return c.JSON(service.GetMarine(c.Context(), q.Lat, q.Lon, q.Start, q.End))
	})
}

type stationsQuery struct {
	Parameter string `validate:"required"`
}

type readingsQuery struct {
	Measure string `validate:"required,url"`
	Start   string `validate:"required"`
	End     string `validate:"required"`
}

// marineQuery accepts either a lat/lon pair or a place name. Bound-checking
// of coordinates happens inside the pipeline; bind only rejects queries that
// cannot be parsed at all.
type marineQuery struct {
	Lat   float64
	Lon   float64
	Place string
	Start string `validate:"required"`
	End   string `validate:"required"`
}

func (q *marineQuery) bind(c *fiber.Ctx) error {
	q.Place = strings.TrimSpace(c.Query("place"))
	q.Start = c.Query("start")
	q.End = c.Query("end")

	if err := validate.Struct(q); err != nil {
		return errors.New("start and end query parameters are required")
	}

	if q.Place != "" {
		return nil
	}

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return errors.New("either place or both lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return errors.New("lon must be a number")
	}

	q.Lat = lat
	q.Lon = lon
	return nil
}
