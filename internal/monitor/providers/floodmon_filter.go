package providers

import (
	"context"
	"fmt"

	"github.com/christian-pebl/DataApp-sub010/internal/diag"
	"github.com/christian-pebl/DataApp-sub010/internal/monitor"
)

// FilterStationsByParameter finds the stations exposing the given parameter.
// Candidates come from the station list (narrowed upstream with the parameter
// query); each candidate is then re-probed for the specific measure endpoint
// and its unit/qualifier. A failed re-probe skips that station with a warning
// and the operation as a whole still succeeds. Output preserves upstream
// response order.
func (c *FloodClient) FilterStationsByParameter(ctx context.Context, log *diag.Log, parameter string) ([]monitor.StationWithMeasure, error) {
	stations, err := c.sampleStations(ctx, log, parameter)
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return []monitor.StationWithMeasure{}, nil
	}

	matches := make([]monitor.StationWithMeasure, 0, len(stations))

	for _, station := range stations {
		ref := station.Reference()
		if ref == "" {
			continue
		}

		var payload measureListResponse
		step := fmt.Sprintf("Check measures for station %s", ref)
		if err := fetchAndLog(ctx, c.httpCfg, c.circuit, c.measuresURL(ref, parameter), log, step, &payload); err != nil {
			log.Warning(fmt.Sprintf("Skipping station %s: measures could not be loaded", ref))
			continue
		}

		for _, m := range payload.Items {
			if !m.matches(parameter) {
				continue
			}
			matches = append(matches, monitor.StationWithMeasure{
				Station: station,
				Measure: monitor.Measure{
					Endpoint:      m.ID,
					Parameter:     m.Parameter,
					ParameterName: m.ParameterName,
					UnitName:      m.UnitName,
					Qualifier:     m.Qualifier,
					Station:       m.Station,
				},
			})
			break
		}
	}

	log.Info(fmt.Sprintf("Found %d stations providing %q", len(matches), parameter))
	return matches, nil
}
