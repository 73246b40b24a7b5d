package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/christian-pebl/DataApp-sub010/internal/api/http"
	"github.com/christian-pebl/DataApp-sub010/internal/config"
	"github.com/christian-pebl/DataApp-sub010/internal/health"
	"github.com/christian-pebl/DataApp-sub010/internal/monitor"
	"github.com/christian-pebl/DataApp-sub010/internal/monitor/providers"
)

func main() {
	// Load configuration (reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	flood := providers.NewFloodClient(httpClient, providers.FloodConfig{
		BaseURL:       cfg.FloodBaseURL,
		SampleLimit:   cfg.StationSampleLimit,
		ProbeLimit:    cfg.StationProbeLimit,
		ReadingsLimit: cfg.ReadingsLimit,
	})
	marine := providers.NewMarineClient(httpClient, cfg.MarineBaseURL)

	// Place lookup is optional; geocoding requires a Google API key.
	var places monitor.PlaceResolver
	if cfg.GeocoderAPIKey != "" {
		places = providers.NewGoogleGeocoder(cfg.GeocoderAPIKey)
	}

	service := monitor.NewService(flood, marine, places)

	// Periodic upstream reachability probe feeding /health.
	probes := health.New(httpClient, []health.Target{
		{Name: "flood-monitoring", URL: cfg.FloodBaseURL + "/id/stations?_limit=1"},
		{Name: "marine-forecast", URL: cfg.MarineBaseURL + "/v1/marine?latitude=0&longitude=0&hourly=wave_height"},
	}, cfg.HealthInterval)
	if err := probes.Start(); err != nil {
		log.Fatalf("failed to start health probes: %v", err)
	}
	defer probes.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "dataapp",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Health endpoint reporting upstream provider reachability.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "dataapp",
			"providers": probes.Statuses(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
