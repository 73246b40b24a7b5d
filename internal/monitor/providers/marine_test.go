package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/christian-pebl/DataApp-sub010/internal/diag"
)

func newTestMarineClient(serverURL string) *MarineClient {
	c := NewMarineClient(&http.Client{Timeout: 5 * time.Second}, serverURL)
	c.httpCfg.Backoff = BackoffConfig{
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
	return c
}

func marineServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_date") == "" || q.Get("end_date") == "" || q.Get("hourly") == "" {
			t.Errorf("missing query parameters: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestFetchHourlyNormalData(t *testing.T) {
	server := marineServer(t, `{
		"hourly": {
			"time": ["2024-01-01T00:00", "2024-01-01T01:00", "2024-01-01T02:00"],
			"sea_level": [1.1, null, 1.3],
			"wave_height": [0.5, 0.6, 0.7],
			"wave_direction": [180, 185, null],
			"wave_period": [8, 9, 10]
		}
	}`)
	defer server.Close()

	c := newTestMarineClient(server.URL)
	data, err := c.FetchHourly(context.Background(), diag.NewLog(), 51.5, -4.2, testRange)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(data.Points))
	}

	// Null entries drop the field, never the point.
	p1 := data.Points[1]
	if p1.SeaLevel != nil {
		t.Errorf("null sea_level must be absent, got %v", *p1.SeaLevel)
	}
	if p1.WaveHeight == nil || *p1.WaveHeight != 0.6 {
		t.Errorf("expected wave height 0.6 at index 1, got %v", p1.WaveHeight)
	}
	p2 := data.Points[2]
	if p2.WaveDirection != nil {
		t.Errorf("null wave_direction must be absent, got %v", *p2.WaveDirection)
	}
	if p2.SeaLevel == nil || *p2.SeaLevel != 1.3 {
		t.Errorf("expected sea level 1.3 at index 2, got %v", p2.SeaLevel)
	}
	if data.Context != "" {
		t.Errorf("normal data should carry no context, got %q", data.Context)
	}
}

func TestFetchHourlyLengthMismatchIsHardError(t *testing.T) {
	// sea_level has 3 entries, wave_height only 2.
	server := marineServer(t, `{
		"hourly": {
			"time": ["2024-01-01T00:00", "2024-01-01T01:00", "2024-01-01T02:00"],
			"sea_level": [1.1, 1.2, 1.3],
			"wave_height": [0.5, 0.6]
		}
	}`)
	defer server.Close()

	c := newTestMarineClient(server.URL)
	log := diag.NewLog()
	_, err := c.FetchHourly(context.Background(), log, 51.5, -4.2, testRange)
	if err == nil {
		t.Fatal("expected a hard error for misaligned arrays")
	}
	var dataErr *UpstreamDataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected *UpstreamDataError, got %T", err)
	}

	var sawError bool
	for _, step := range log.Steps() {
		if step.Status == diag.StatusError {
			sawError = true
		}
	}
	if !sawError {
		t.Error("expected an error step for misaligned data")
	}
}

func TestFetchHourlyProviderError(t *testing.T) {
	server := marineServer(t, `{"error": true, "reason": "Latitude must be in range of -90 to 90"}`)
	defer server.Close()

	c := newTestMarineClient(server.URL)
	_, err := c.FetchHourly(context.Background(), diag.NewLog(), 51.5, -4.2, testRange)
	if err == nil {
		t.Fatal("expected failure when the provider reports an error")
	}
	var dataErr *UpstreamDataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected *UpstreamDataError, got %T", err)
	}
	if dataErr.Reason != "Latitude must be in range of -90 to 90" {
		t.Errorf("provider reason must be propagated, got %q", dataErr.Reason)
	}
}

func TestFetchHourlyEmptyHourlyBlock(t *testing.T) {
	for name, body := range map[string]string{
		"missing hourly": `{"latitude": 51.5, "longitude": -4.2}`,
		"empty time":     `{"hourly": {"time": []}}`,
	} {
		server := marineServer(t, body)

		c := newTestMarineClient(server.URL)
		log := diag.NewLog()
		data, err := c.FetchHourly(context.Background(), log, 51.5, -4.2, testRange)
		server.Close()

		if err != nil {
			t.Fatalf("%s: empty hourly block must be a success: %v", name, err)
		}
		if len(data.Points) != 0 {
			t.Errorf("%s: expected empty points, got %d", name, len(data.Points))
		}
		if data.Context == "" {
			t.Errorf("%s: expected an explanatory context string", name)
		}
	}
}
