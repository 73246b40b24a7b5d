package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/christian-pebl/DataApp-sub010/internal/diag"
	"github.com/christian-pebl/DataApp-sub010/internal/monitor"
)

type readingsResponse struct {
	Items []readingItem `json:"items"`
}

type readingItem struct {
	DateTime string  `json:"dateTime"`
	Value    float64 `json:"value"`
}

// measureDetailEnvelope wraps the bare measure document. Depending on the
// endpoint the provider returns "items" as a single object or a one-element
// array, so both shapes are tried.
type measureDetailEnvelope struct {
	Items json.RawMessage `json:"items"`
}

func (e measureDetailEnvelope) measure() (measureItem, bool) {
	if len(e.Items) == 0 {
		return measureItem{}, false
	}
	var single measureItem
	if err := json.Unmarshal(e.Items, &single); err == nil && (single.Parameter != "" || single.ParameterName != "") {
		return single, true
	}
	var many []measureItem
	if err := json.Unmarshal(e.Items, &many); err == nil && len(many) > 0 {
		return many[0], true
	}
	return measureItem{}, false
}

// FetchTimeSeries fetches bounded, provider-sorted readings for one measure
// endpoint. The endpoint is opaque: readings come from suffixing it, and the
// bare endpoint itself is fetched best-effort to enrich parameter/unit
// metadata. Zero readings for a valid range is a success with an empty slice.
func (c *FloodClient) FetchTimeSeries(ctx context.Context, log *diag.Log, measureEndpoint string, rng monitor.DateRange) (monitor.TimeSeries, error) {
	readingsURL := fmt.Sprintf("%s/readings?_sorted&startdate=%s&enddate=%s&_limit=%d",
		measureEndpoint, rng.Start, rng.End, c.readingsLimit)

	var payload readingsResponse
	if err := fetchAndLog(ctx, c.httpCfg, c.circuit, readingsURL, log, "Fetch readings", &payload); err != nil {
		return monitor.TimeSeries{}, err
	}

	points := make([]monitor.TimeSeriesPoint, 0, len(payload.Items))
	for _, item := range payload.Items {
		points = append(points, monitor.TimeSeriesPoint{
			Time:  item.DateTime,
			Value: item.Value,
		})
	}

	series := monitor.TimeSeries{Points: points}

	if len(points) == 0 {
		log.Info(fmt.Sprintf("No readings between %s and %s", rng.Start, rng.End))
	} else {
		log.Info(fmt.Sprintf("Mapped %d readings", len(points)))
	}

	// Best-effort metadata enrichment from the measure's own document. A
	// failure here must not affect the readings already fetched.
	var detail measureDetailEnvelope
	if err := fetchAndLog(ctx, c.httpCfg, c.circuit, measureEndpoint, log, "Fetch measure details", &detail); err != nil {
		log.Warning("Measure details unavailable; returning readings without parameter metadata")
		return series, nil
	}

	if m, ok := detail.measure(); ok {
		series.Parameter = m.Parameter
		series.ParameterName = m.ParameterName
		series.UnitName = m.UnitName
	} else {
		log.Warning("Measure details had an unexpected shape; returning readings without parameter metadata")
	}

	return series, nil
}
