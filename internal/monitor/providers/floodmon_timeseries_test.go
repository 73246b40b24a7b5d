package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/christian-pebl/DataApp-sub010/internal/diag"
	"github.com/christian-pebl/DataApp-sub010/internal/monitor"
)

var testRange = monitor.DateRange{Start: "2024-01-01", End: "2024-01-07"}

func TestFetchTimeSeriesMapsAllReadingsInOrder(t *testing.T) {
	const n = 25

	mux := http.NewServeMux()
	mux.HandleFunc("/id/measures/m1/readings", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("startdate") != "2024-01-01" || r.URL.Query().Get("enddate") != "2024-01-07" {
			t.Errorf("date range not forwarded: %s", r.URL.RawQuery)
		}
		items := make([]map[string]any, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, map[string]any{
				"dateTime": fmt.Sprintf("2024-01-01T%02d:00:00Z", i%24),
				"value":    float64(i),
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	})
	mux.HandleFunc("/id/measures/m1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": map[string]any{
				"parameter":     "level",
				"parameterName": "Water Level",
				"unitName":      "mAOD",
			},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestFloodClient(server.URL, FloodConfig{})
	log := diag.NewLog()

	series, err := c.FetchTimeSeries(context.Background(), log, server.URL+"/id/measures/m1", testRange)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Points) != n {
		t.Fatalf("expected %d points, got %d", n, len(series.Points))
	}
	for i, p := range series.Points {
		if p.Value != float64(i) {
			t.Fatalf("provider order not preserved at index %d: value %v", i, p.Value)
		}
	}
	if series.ParameterName != "Water Level" || series.UnitName != "mAOD" {
		t.Errorf("expected enriched metadata, got %+v", series)
	}
}

func TestFetchTimeSeriesEmptyRangeIsSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/id/measures/m1/readings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	})
	mux.HandleFunc("/id/measures/m1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{{
			"parameter":     "level",
			"parameterName": "Water Level",
			"unitName":      "mAOD",
		}}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestFloodClient(server.URL, FloodConfig{})
	series, err := c.FetchTimeSeries(context.Background(), diag.NewLog(), server.URL+"/id/measures/m1", testRange)
	if err != nil {
		t.Fatalf("zero readings must be a success: %v", err)
	}
	if series.Points == nil || len(series.Points) != 0 {
		t.Errorf("expected empty (non-nil) points, got %#v", series.Points)
	}
	// The array-shaped detail document also enriches.
	if series.ParameterName != "Water Level" {
		t.Errorf("expected enrichment from array-shaped details, got %+v", series)
	}
}

func TestFetchTimeSeriesSecondaryFetchFailureIsTolerated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/id/measures/m1/readings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
			{"dateTime": "2024-01-01T00:00:00Z", "value": 1.5},
		}})
	})
	mux.HandleFunc("/id/measures/m1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestFloodClient(server.URL, FloodConfig{})
	log := diag.NewLog()

	series, err := c.FetchTimeSeries(context.Background(), log, server.URL+"/id/measures/m1", testRange)
	if err != nil {
		t.Fatalf("metadata enrichment failure must not fail the fetch: %v", err)
	}
	if len(series.Points) != 1 {
		t.Fatalf("primary readings must survive, got %d points", len(series.Points))
	}
	if series.ParameterName != "" || series.UnitName != "" {
		t.Errorf("expected no enrichment after detail failure, got %+v", series)
	}

	var sawWarning bool
	for _, step := range log.Steps() {
		if step.Status == diag.StatusWarning {
			sawWarning = true
		}
	}
	if !sawWarning {
		t.Error("expected a warning step for the failed detail fetch")
	}
}
