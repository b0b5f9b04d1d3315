// Package config provides hierarchical configuration loading for POForge.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the POForge agent.
type Config struct {
	Server      Server      `yaml:"server"`
	Agent       Agent       `yaml:"agent"`
	Store       Store       `yaml:"store"`
	Idempotency Idempotency `yaml:"idempotency"`
	Telemetry   Telemetry   `yaml:"telemetry"`
	Logging     Logging     `yaml:"logging"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Agent holds the agent card fields advertised at /.well-known/agent.json.
type Agent struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Version     string `yaml:"version"`
}

// Store holds task store retention configuration. A zero TTL keeps records
// for the lifetime of the process.
type Store struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// Idempotency holds idempotency replay cache configuration.
type Idempotency struct {
	Enabled   bool          `yaml:"enabled"`
	MaxSizeMB int64         `yaml:"max_size_mb"`
	TTL       time.Duration `yaml:"ttl"`
}

// Telemetry holds OpenTelemetry export configuration. An empty endpoint
// disables export.
type Telemetry struct {
	Endpoint string `yaml:"endpoint"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			CORSOrigin: "http://localhost:3000",
		},
		Agent: Agent{
			Name:        "Purchase Order Processing Agent",
			Description: "Specialized A2A agent for processing and validating purchase orders",
			URL:         "http://localhost:8080",
			Version:     "1.0.0",
		},
		Store: Store{
			TTL:           24 * time.Hour,
			SweepInterval: 5 * time.Minute,
		},
		Idempotency: Idempotency{
			Enabled:   true,
			MaxSizeMB: 16,
			TTL:       time.Hour,
		},
		Logging: Logging{
			Level:   "info",
			Service: "poforge",
		},
	}
}
