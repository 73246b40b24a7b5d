package providers

import (
	"context"
	"fmt"
	"sort"

	"github.com/christian-pebl/DataApp-sub010/internal/diag"
)

// DiscoverParameters samples active stations, probes a bounded subset of them
// for measures and folds the parameter names into a deduplicated, sorted set.
// A failed probe never aborts discovery: the station is skipped with a
// warning and the loop continues.
func (c *FloodClient) DiscoverParameters(ctx context.Context, log *diag.Log) ([]string, error) {
	stations, err := c.sampleStations(ctx, log, "")
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return []string{}, nil
	}

	seen := make(map[string]struct{})
	probed := 0

	for _, station := range stations {
		if probed == c.probeLimit {
			log.Info(fmt.Sprintf("Reached processing limit of %d stations; remaining stations were not probed", c.probeLimit))
			break
		}

		ref := station.Reference()
		if ref == "" {
			continue
		}
		probed++

		var payload measureListResponse
		step := fmt.Sprintf("Fetch measures for station %s", ref)
		if err := fetchAndLog(ctx, c.httpCfg, c.circuit, c.measuresURL(ref, ""), log, step, &payload); err != nil {
			log.Warning(fmt.Sprintf("Skipping station %s: measures could not be loaded", ref))
			continue
		}

		for _, m := range payload.Items {
			if m.ParameterName == "" {
				continue
			}
			seen[m.ParameterName] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	log.Info(fmt.Sprintf("Discovered %d distinct parameters across %d probed stations", len(names), probed))
	return names, nil
}
