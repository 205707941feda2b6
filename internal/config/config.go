// Package config provides hierarchical configuration loading for MapForge.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the MapForge agent.
type Config struct {
	Server    Server    `yaml:"server"`
	Auth      Auth      `yaml:"auth"`
	Maps      Maps      `yaml:"maps"`
	Cache     Cache     `yaml:"cache"`
	Logging   Logging   `yaml:"logging"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Auth holds the static shared-secret used to protect task routes.
type Auth struct {
	APIKey string `yaml:"api_key"`
}

// Maps holds the upstream mapping provider configuration.
type Maps struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Cache holds the upstream response cache configuration.
type Cache struct {
	Enabled   bool          `yaml:"enabled"`
	MaxSizeMB int64         `yaml:"max_size_mb"`
	TTL       time.Duration `yaml:"ttl"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Telemetry holds OpenTelemetry export configuration. An empty endpoint
// disables export entirely.
type Telemetry struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8000",
			CORSOrigin: "*",
		},
		Auth: Auth{
			APIKey: "default_api_key",
		},
		Maps: Maps{
			BaseURL: "https://maps.googleapis.com/maps/api",
			Timeout: 10 * time.Second,
		},
		Cache: Cache{
			Enabled:   true,
			MaxSizeMB: 64,
			TTL:       5 * time.Minute,
		},
		Logging: Logging{
			Level:   "info",
			Service: "mapforge",
		},
	}
}
