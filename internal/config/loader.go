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
const DefaultConfigFile = "poforge.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
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
	data, err := os.ReadFile(path)
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
	setString(&cfg.Server.Port, "POFORGE_PORT")
	setString(&cfg.Server.CORSOrigin, "POFORGE_CORS_ORIGIN")
	setString(&cfg.Agent.Name, "POFORGE_AGENT_NAME")
	setString(&cfg.Agent.Description, "POFORGE_AGENT_DESCRIPTION")
	setString(&cfg.Agent.URL, "POFORGE_AGENT_URL")
	setString(&cfg.Agent.Version, "POFORGE_AGENT_VERSION")
	setDuration(&cfg.Store.TTL, "POFORGE_STORE_TTL")
	setDuration(&cfg.Store.SweepInterval, "POFORGE_STORE_SWEEP_INTERVAL")
	setBool(&cfg.Idempotency.Enabled, "POFORGE_IDEMPOTENCY_ENABLED")
	setInt64(&cfg.Idempotency.MaxSizeMB, "POFORGE_IDEMPOTENCY_MAX_SIZE_MB")
	setDuration(&cfg.Idempotency.TTL, "POFORGE_IDEMPOTENCY_TTL")
	setString(&cfg.Telemetry.Endpoint, "POFORGE_OTLP_ENDPOINT")
	setString(&cfg.Logging.Level, "POFORGE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "POFORGE_LOG_SERVICE")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Agent.Name == "" {
		return errors.New("agent.name is required")
	}
	if cfg.Agent.URL == "" {
		return errors.New("agent.url is required")
	}
	if cfg.Store.TTL > 0 && cfg.Store.SweepInterval <= 0 {
		return errors.New("store.sweep_interval must be > 0 when store.ttl is set")
	}
	if cfg.Idempotency.Enabled && cfg.Idempotency.MaxSizeMB < 1 {
		return errors.New("idempotency.max_size_mb must be >= 1")
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
