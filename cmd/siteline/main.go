package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Siteline-Labs/Siteline/internal/analysis"
	"github.com/Siteline-Labs/Siteline/internal/analyze"
	"github.com/Siteline-Labs/Siteline/internal/api"
	"github.com/Siteline-Labs/Siteline/internal/config"
	"github.com/Siteline-Labs/Siteline/internal/engine"
	"github.com/Siteline-Labs/Siteline/internal/events"
	"github.com/Siteline-Labs/Siteline/internal/providers/areafeatures"
	"github.com/Siteline-Labs/Siteline/internal/providers/geocode"
	"github.com/Siteline-Labs/Siteline/internal/providers/places"
	"github.com/Siteline-Labs/Siteline/internal/rules"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to event bus, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to event bus")
		}
	}

	// Data providers
	geocoder := geocode.NewHTTPClient(cfg.Providers.GeocodeURL, cfg.Providers.GeocodeAgent)
	placesClient := places.NewHTTPClient(cfg.Providers.PlacesURL, cfg.Providers.PlacesAPIKey)
	featuresClient := areafeatures.NewHTTPClient(cfg.Providers.AreaFeaturesURL)

	// Scoring stack
	eng := engine.New(logger)
	ruleEngine := rules.NewEngine(logger)
	planner := analysis.NewPlanner(eng, logger)
	svc := analyze.NewService(eng, ruleEngine, geocoder, placesClient, featuresClient,
		eventsClient, cfg.Providers.RadiusMeters, logger)

	// API server
	router := api.NewRouter(svc, eng, ruleEngine, planner, cfg, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
