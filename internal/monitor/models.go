package monitor

// Station represents a physical monitoring location exposing one or more
// measures.
type Station struct {
	ID               string   `json:"id"`
	Label            string   `json:"label"`
	Lat              *float64 `json:"lat,omitempty"`
	Lon              *float64 `json:"lon,omitempty"`
	StationReference string   `json:"stationReference,omitempty"`
	Notation         string   `json:"notation,omitempty"`
}

// Reference returns the identifier used to address this station on the
// provider, or "" when the station cannot be probed.
func (s Station) Reference() string {
	if s.StationReference != "" {
		return s.StationReference
	}
	return s.Notation
}

// Measure is a parameter time-series endpoint belonging to a station. The
// Endpoint URL is a capability token: readings are fetched by suffixing it,
// never by taking it apart.
type Measure struct {
	Endpoint      string `json:"endpoint"`
	Parameter     string `json:"parameter"`
	ParameterName string `json:"parameterName"`
	UnitName      string `json:"unitName"`
	Qualifier     string `json:"qualifier,omitempty"`
	Station       string `json:"station,omitempty"`
}

// StationWithMeasure pairs a station with the resolved measure for one
// specific parameter.
type StationWithMeasure struct {
	Station Station `json:"station"`
	Measure Measure `json:"measure"`
}

// TimeSeriesPoint is one timestamp+value sample. The timestamp is carried in
// the provider's own format.
type TimeSeriesPoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// TimeSeries holds bounded, provider-ordered readings for one measure.
// Parameter metadata is filled best-effort and may be empty.
type TimeSeries struct {
	Parameter     string            `json:"parameter,omitempty"`
	ParameterName string            `json:"parameterName,omitempty"`
	UnitName      string            `json:"unitName,omitempty"`
	Points        []TimeSeriesPoint `json:"points"`
}

// MarineDataPoint is one hourly marine sample. A nil field means the provider
// reported no value at that timestamp, never zero.
type MarineDataPoint struct {
	Time          string   `json:"time"`
	SeaLevel      *float64 `json:"seaLevel,omitempty"`
	WaveHeight    *float64 `json:"waveHeight,omitempty"`
	WaveDirection *float64 `json:"waveDirection,omitempty"`
	WavePeriod    *float64 `json:"wavePeriod,omitempty"`
}

// MarineData is the marine fetch output. Context explains a non-fatal
// "no data" outcome and is empty otherwise.
type MarineData struct {
	Points  []MarineDataPoint `json:"points"`
	Context string            `json:"context,omitempty"`
}

// DateRange is a validated, normalized (YYYY-MM-DD) inclusive date range with
// Start <= End.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
