package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Events    EventsConfig    `yaml:"events"`
	Providers ProvidersConfig `yaml:"providers"`
	Engine    EngineConfig    `yaml:"engine"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type ProvidersConfig struct {
	GeocodeURL      string `yaml:"geocode_url"`
	GeocodeAgent    string `yaml:"geocode_agent"`
	PlacesURL       string `yaml:"places_url"`
	PlacesAPIKey    string `yaml:"places_api_key"`
	AreaFeaturesURL string `yaml:"area_features_url"`
	RadiusMeters    int    `yaml:"radius_meters"`
}

type EngineConfig struct {
	DefaultSimulations int     `yaml:"default_simulations"`
	SimulationWorkers  int     `yaml:"simulation_workers"`
	WeightAdjustment   float64 `yaml:"weight_adjustment"`
	SuccessThreshold   float64 `yaml:"success_threshold"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Providers: ProvidersConfig{
			GeocodeURL:      "https://nominatim.openstreetmap.org",
			GeocodeAgent:    "siteline",
			PlacesURL:       "https://api.foursquare.com/v3",
			AreaFeaturesURL: "https://overpass-api.de",
			RadiusMeters:    1000,
		},
		Engine: EngineConfig{
			DefaultSimulations: 1000,
			WeightAdjustment:   0.2,
			SuccessThreshold:   60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SITELINE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("SITELINE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("SITELINE_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("SITELINE_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("SITELINE_GEOCODE_URL"); v != "" {
		cfg.Providers.GeocodeURL = v
	}
	if v := os.Getenv("SITELINE_PLACES_URL"); v != "" {
		cfg.Providers.PlacesURL = v
	}
	if v := os.Getenv("SITELINE_PLACES_API_KEY"); v != "" {
		cfg.Providers.PlacesAPIKey = v
	}
	if v := os.Getenv("SITELINE_AREA_FEATURES_URL"); v != "" {
		cfg.Providers.AreaFeaturesURL = v
	}
	if v := os.Getenv("SITELINE_RADIUS_METERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Providers.RadiusMeters = n
		}
	}
	if v := os.Getenv("SITELINE_SIMULATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.DefaultSimulations = n
		}
	}
	if v := os.Getenv("SITELINE_SIMULATION_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.SimulationWorkers = n
		}
	}
	if v := os.Getenv("SITELINE_WEIGHT_ADJUSTMENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.WeightAdjustment = f
		}
	}
	if v := os.Getenv("SITELINE_SUCCESS_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.SuccessThreshold = f
		}
	}
	if v := os.Getenv("SITELINE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
