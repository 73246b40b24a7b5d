package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Upstream provider base URLs; overridable for tests and mirrors.
	FloodBaseURL  string
	MarineBaseURL string

	// Optional Google API key for place-name lookup on the marine endpoint.
	GeocoderAPIKey string

	// Sampling caps protecting the upstream providers.
	StationSampleLimit int // stations fetched from the discovery endpoint
	StationProbeLimit  int // stations probed for measures during discovery
	ReadingsLimit      int // rows per readings fetch

	// Outbound HTTP timeout.
	HTTPTimeout time.Duration

	// Interval between upstream reachability probes.
	HealthInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.FloodBaseURL = getenvDefault("FLOOD_BASE_URL", "https://environment.data.gov.uk/flood-monitoring")
	cfg.MarineBaseURL = getenvDefault("MARINE_BASE_URL", "https://marine-api.open-meteo.com")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	cfg.StationSampleLimit = getenvInt("STATION_SAMPLE_LIMIT", 50)
	cfg.StationProbeLimit = getenvInt("STATION_PROBE_LIMIT", 30)
	cfg.ReadingsLimit = getenvInt("READINGS_LIMIT", 5000)

	if cfg.StationProbeLimit > cfg.StationSampleLimit {
		return nil, fmt.Errorf("STATION_PROBE_LIMIT must not exceed STATION_SAMPLE_LIMIT")
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	healthStr := getenvDefault("HEALTH_INTERVAL", "5m")
	healthInterval, err := time.ParseDuration(healthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HEALTH_INTERVAL: %w", err)
	}
	cfg.HealthInterval = healthInterval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
