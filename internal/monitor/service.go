package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/christian-pebl/DataApp-sub010/internal/diag"
)

// FloodProvider abstracts the flood-monitoring station network.
// Implementations append their progress to the supplied log and must tolerate
// per-station failures without failing the whole operation.
type FloodProvider interface {
	DiscoverParameters(ctx context.Context, log *diag.Log) ([]string, error)
	FilterStationsByParameter(ctx context.Context, log *diag.Log, parameter string) ([]StationWithMeasure, error)
	FetchTimeSeries(ctx context.Context, log *diag.Log, measureEndpoint string, rng DateRange) (TimeSeries, error)
}

// MarineProvider abstracts the marine-forecast API.
type MarineProvider interface {
	FetchHourly(ctx context.Context, log *diag.Log, lat, lon float64, rng DateRange) (MarineData, error)
}

// PlaceResolver turns a place name into coordinates. Optional; nil when no
// geocoding backend is configured.
type PlaceResolver interface {
	Resolve(place string) (lat, lon float64, err error)
}

// Service exposes the pipeline operations. Every method constructs its own
// diagnostic log and validates inputs before any network call; no state
// survives an invocation.
type Service struct {
	flood  FloodProvider
	marine MarineProvider
	places PlaceResolver
}

// NewService creates a new Service. places may be nil.
func NewService(flood FloodProvider, marine MarineProvider, places PlaceResolver) *Service {
	return &Service{
		flood:  flood,
		marine: marine,
		places: places,
	}
}

// DiscoverParameters samples active stations and returns the deduplicated,
// sorted set of parameter names they expose.
func (s *Service) DiscoverParameters(ctx context.Context) Result {
	log := diag.NewLog()
	names, err := s.flood.DiscoverParameters(ctx, log)
	return newResult(names, log, err)
}

// FilterStations returns the stations exposing the given parameter, each with
// its resolved measure endpoint and unit/qualifier metadata.
func (s *Service) FilterStations(ctx context.Context, parameter string) Result {
	log := diag.NewLog()
	if err := ValidateParameter(parameter); err != nil {
		log.Error(err.Error())
		return newResult(nil, log, err)
	}
	matches, err := s.flood.FilterStationsByParameter(ctx, log, parameter)
	return newResult(matches, log, err)
}

// GetTimeSeries fetches readings for one measure endpoint over a date range.
func (s *Service) GetTimeSeries(ctx context.Context, measureEndpoint, start, end string) Result {
	log := diag.NewLog()
	if err := ValidateMeasureEndpoint(measureEndpoint); err != nil {
		log.Error(err.Error())
		return newResult(nil, log, err)
	}
	rng, err := ParseDateRange(start, end)
	if err != nil {
		log.Error(err.Error())
		return newResult(nil, log, err)
	}
	series, err := s.flood.FetchTimeSeries(ctx, log, measureEndpoint, rng)
	return newResult(series, log, err)
}

// GetMarine fetches hourly marine data for a coordinate pair and date range.
func (s *Service) GetMarine(ctx context.Context, lat, lon float64, start, end string) Result {
	log := diag.NewLog()
	if err := ValidateCoordinates(lat, lon); err != nil {
		log.Error(err.Error())
		return newResult(nil, log, err)
	}
	rng, err := ParseDateRange(start, end)
	if err != nil {
		log.Error(err.Error())
		return newResult(nil, log, err)
	}
	data, err := s.marine.FetchHourly(ctx, log, lat, lon, rng)
	return newResult(data, log, err)
}

// GetMarineByPlace resolves a place name to coordinates and then fetches
// marine data for it. Requires a configured PlaceResolver.
func (s *Service) GetMarineByPlace(ctx context.Context, place, start, end string) Result {
	log := diag.NewLog()
	if s.places == nil {
		err := errors.New("place lookup is not configured; provide latitude and longitude instead")
		log.Error(err.Error())
		return newResult(nil, log, err)
	}
	log.Pending(fmt.Sprintf("Resolve place %q to coordinates", place))
	lat, lon, err := s.places.Resolve(place)
	if err != nil {
		log.Error(fmt.Sprintf("Could not resolve place %q: %v", place, err))
		return newResult(nil, log, fmt.Errorf("resolve place %q: %w", place, err))
	}
	log.Success(fmt.Sprintf("Resolved %q to lat=%.4f lon=%.4f", place, lat, lon))

	if err := ValidateCoordinates(lat, lon); err != nil {
		log.Error(err.Error())
		return newResult(nil, log, err)
	}
	rng, err := ParseDateRange(start, end)
	if err != nil {
		log.Error(err.Error())
		return newResult(nil, log, err)
	}
	data, err := s.marine.FetchHourly(ctx, log, lat, lon, rng)
	return newResult(data, log, err)
}
