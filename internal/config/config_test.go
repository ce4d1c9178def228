package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	envVars := []string{
		"SITELINE_PORT", "SITELINE_METRICS_PORT", "SITELINE_ADMIN_TOKEN",
		"SITELINE_EVENTS_URL", "SITELINE_GEOCODE_URL", "SITELINE_PLACES_URL",
		"SITELINE_PLACES_API_KEY", "SITELINE_AREA_FEATURES_URL",
		"SITELINE_RADIUS_METERS", "SITELINE_SIMULATIONS",
		"SITELINE_SIMULATION_WORKERS", "SITELINE_WEIGHT_ADJUSTMENT",
		"SITELINE_SUCCESS_THRESHOLD", "SITELINE_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if cfg.Providers.GeocodeURL != "https://nominatim.openstreetmap.org" {
		t.Errorf("expected geocode URL, got %s", cfg.Providers.GeocodeURL)
	}
	if cfg.Providers.RadiusMeters != 1000 {
		t.Errorf("expected radius 1000, got %d", cfg.Providers.RadiusMeters)
	}
	if cfg.Engine.DefaultSimulations != 1000 {
		t.Errorf("expected 1000 simulations, got %d", cfg.Engine.DefaultSimulations)
	}
	if cfg.Engine.WeightAdjustment != 0.2 {
		t.Errorf("expected weight adjustment 0.2, got %f", cfg.Engine.WeightAdjustment)
	}
	if cfg.Engine.SuccessThreshold != 60 {
		t.Errorf("expected success threshold 60, got %f", cfg.Engine.SuccessThreshold)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SITELINE_PORT", "9100")
	t.Setenv("SITELINE_METRICS_PORT", "9101")
	t.Setenv("SITELINE_ADMIN_TOKEN", "secret-token")
	t.Setenv("SITELINE_EVENTS_URL", "nats://nats:4222")
	t.Setenv("SITELINE_GEOCODE_URL", "http://geocode:8080")
	t.Setenv("SITELINE_PLACES_API_KEY", "fsq-key")
	t.Setenv("SITELINE_RADIUS_METERS", "1500")
	t.Setenv("SITELINE_SIMULATIONS", "500")
	t.Setenv("SITELINE_WEIGHT_ADJUSTMENT", "0.3")
	t.Setenv("SITELINE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9101 {
		t.Errorf("expected metrics port 9101, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Events.URL != "nats://nats:4222" {
		t.Errorf("expected events URL, got '%s'", cfg.Events.URL)
	}
	if cfg.Providers.GeocodeURL != "http://geocode:8080" {
		t.Errorf("expected geocode URL, got '%s'", cfg.Providers.GeocodeURL)
	}
	if cfg.Providers.PlacesAPIKey != "fsq-key" {
		t.Errorf("expected places key, got '%s'", cfg.Providers.PlacesAPIKey)
	}
	if cfg.Providers.RadiusMeters != 1500 {
		t.Errorf("expected radius 1500, got %d", cfg.Providers.RadiusMeters)
	}
	if cfg.Engine.DefaultSimulations != 500 {
		t.Errorf("expected 500 simulations, got %d", cfg.Engine.DefaultSimulations)
	}
	if cfg.Engine.WeightAdjustment != 0.3 {
		t.Errorf("expected weight adjustment 0.3, got %f", cfg.Engine.WeightAdjustment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	for _, k := range []string{"SITELINE_PORT", "SITELINE_RADIUS_METERS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 8800
providers:
  radius_meters: 750
engine:
  default_simulations: 200
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8800 {
		t.Errorf("expected port 8800, got %d", cfg.Server.Port)
	}
	if cfg.Providers.RadiusMeters != 750 {
		t.Errorf("expected radius 750, got %d", cfg.Providers.RadiusMeters)
	}
	if cfg.Engine.DefaultSimulations != 200 {
		t.Errorf("expected 200 simulations, got %d", cfg.Engine.DefaultSimulations)
	}
	// file must not clobber untouched defaults
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port default 8701, got %d", cfg.Server.MetricsPort)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
