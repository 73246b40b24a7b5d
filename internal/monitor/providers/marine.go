package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/christian-pebl/DataApp-sub010/internal/diag"
	"github.com/christian-pebl/DataApp-sub010/internal/monitor"
)

const (
	defaultMarineBaseURL = "https://marine-api.open-meteo.com"
	marineHourlyFields   = "sea_level,wave_height,wave_direction,wave_period"
)

// MarineClient implements monitor.MarineProvider against the Open-Meteo
// marine-forecast API: a single columnar hourly fetch per invocation.
type MarineClient struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewMarineClient(client *http.Client, baseURL string) *MarineClient {
	if baseURL == "" {
		baseURL = defaultMarineBaseURL
	}
	return &MarineClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("marine-forecast"),
	}
}

// marineResponse distinguishes the three payload shapes this client inspects:
// an explicit provider error, a missing/empty hourly block, or columnar data.
type marineResponse struct {
	Error  bool          `json:"error"`
	Reason string        `json:"reason"`
	Hourly *marineHourly `json:"hourly"`
}

// marineHourly carries parallel arrays indexed by Time. Optional columns use
// pointers so a JSON null survives as "no value at this timestamp".
type marineHourly struct {
	Time          []string   `json:"time"`
	SeaLevel      []*float64 `json:"sea_level"`
	WaveHeight    []*float64 `json:"wave_height"`
	WaveDirection []*float64 `json:"wave_direction"`
	WavePeriod    []*float64 `json:"wave_period"`
}

// checkAligned verifies that every present optional column has exactly one
// entry per timestamp. The format carries no per-point timestamps, so a
// length mismatch would silently shift every value; it has to be a hard error.
func (h *marineHourly) checkAligned() error {
	columns := []struct {
		name   string
		values []*float64
	}{
		{"sea_level", h.SeaLevel},
		{"wave_height", h.WaveHeight},
		{"wave_direction", h.WaveDirection},
		{"wave_period", h.WavePeriod},
	}
	for _, col := range columns {
		if col.values == nil {
			continue
		}
		if len(col.values) != len(h.Time) {
			return fmt.Errorf("hourly array %q has %d entries but time has %d", col.name, len(col.values), len(h.Time))
		}
	}
	return nil
}

// FetchHourly fetches hourly marine data for the coordinate pair and range.
// Outcomes: provider error flag -> failure with the provider's reason; empty
// hourly block -> success with empty data and an explanatory context; normal
// data -> aligned columnar arrays mapped to points, where a null entry omits
// that field from the point without dropping the point.
func (c *MarineClient) FetchHourly(ctx context.Context, log *diag.Log, lat, lon float64, rng monitor.DateRange) (monitor.MarineData, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("start_date", rng.Start)
	values.Set("end_date", rng.End)
	values.Set("hourly", marineHourlyFields)
	values.Set("timezone", "auto")

	u := fmt.Sprintf("%s/v1/marine?%s", c.baseURL, values.Encode())

	var payload marineResponse
	if err := fetchAndLog(ctx, c.httpCfg, c.circuit, u, log, "Fetch marine data", &payload); err != nil {
		return monitor.MarineData{}, err
	}

	if payload.Error {
		reason := payload.Reason
		if reason == "" {
			reason = "provider reported an error without a reason"
		}
		log.Error(fmt.Sprintf("Marine provider rejected the request: %s", reason))
		return monitor.MarineData{}, &UpstreamDataError{Step: "Fetch marine data", Reason: reason}
	}

	if payload.Hourly == nil || len(payload.Hourly.Time) == 0 {
		log.Warning("Marine provider returned no hourly data for this location and range")
		return monitor.MarineData{
			Points:  []monitor.MarineDataPoint{},
			Context: "no hourly marine data available for this location and date range",
		}, nil
	}

	hourly := payload.Hourly
	if err := hourly.checkAligned(); err != nil {
		log.Error(fmt.Sprintf("Marine data is misaligned: %v", err))
		return monitor.MarineData{}, &UpstreamDataError{Step: "Fetch marine data", Reason: err.Error()}
	}

	points := make([]monitor.MarineDataPoint, 0, len(hourly.Time))
	for i, ts := range hourly.Time {
		point := monitor.MarineDataPoint{Time: ts}
		if hourly.SeaLevel != nil {
			point.SeaLevel = hourly.SeaLevel[i]
		}
		if hourly.WaveHeight != nil {
			point.WaveHeight = hourly.WaveHeight[i]
		}
		if hourly.WaveDirection != nil {
			point.WaveDirection = hourly.WaveDirection[i]
		}
		if hourly.WavePeriod != nil {
			point.WavePeriod = hourly.WavePeriod[i]
		}
		points = append(points, point)
	}

	log.Success(fmt.Sprintf("Processed %d hourly marine data points", len(points)))
	return monitor.MarineData{Points: points}, nil
}
