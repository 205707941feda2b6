package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "mapforge.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "MAPFORGE_PORT")
	setString(&cfg.Server.CORSOrigin, "MAPFORGE_CORS_ORIGIN")
	setString(&cfg.Auth.APIKey, "API_KEY")
	setString(&cfg.Maps.BaseURL, "MAPFORGE_MAPS_BASE_URL")
	setString(&cfg.Maps.APIKey, "GOOGLE_MAPS_API_KEY")
	setDuration(&cfg.Maps.Timeout, "MAPFORGE_MAPS_TIMEOUT")
	setBool(&cfg.Cache.Enabled, "MAPFORGE_CACHE_ENABLED")
	setInt64(&cfg.Cache.MaxSizeMB, "MAPFORGE_CACHE_MAX_SIZE_MB")
	setDuration(&cfg.Cache.TTL, "MAPFORGE_CACHE_TTL")
	setString(&cfg.Logging.Level, "MAPFORGE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "MAPFORGE_LOG_SERVICE")
	setString(&cfg.Telemetry.OTLPEndpoint, "MAPFORGE_OTLP_ENDPOINT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Auth.APIKey == "" {
		return errors.New("auth.api_key is required")
	}
	if cfg.Maps.BaseURL == "" {
		return errors.New("maps.base_url is required")
	}
	if cfg.Maps.Timeout <= 0 {
		return errors.New("maps.timeout must be positive")
	}
	if cfg.Cache.Enabled && cfg.Cache.MaxSizeMB < 1 {
		return errors.New("cache.max_size_mb must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
