package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	LogLevel       string `yaml:"log_level"`
	Environment    string `yaml:"environment"`
}

// PipelineConfig tunes result processing.
type PipelineConfig struct {
	// Workers sizes the bulk import pool. Zero means runtime.NumCPU().
	Workers int `yaml:"workers"`
	// SuggestionLimit caps roster suggestions per unresolved player. Zero selects the default;
	// a negative value disables suggestions.
	SuggestionLimit int `yaml:"suggestion_limit"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("VISION_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VISION_WORKERS value: %v", err)
		}
		cfg.Pipeline.Workers = n
	}
	if v := os.Getenv("VISION_SUGGESTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VISION_SUGGESTIONS value: %v", err)
		}
		cfg.Pipeline.SuggestionLimit = n
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.NATS.URL = os.Getenv("NATS_URL") // optional; only the serve command needs it
	cfg.Observability.MetricsAddress = os.Getenv("METRICS_ADDRESS")
	cfg.Observability.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.Observability.Environment = os.Getenv("ENV")

	if v := os.Getenv("VISION_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VISION_WORKERS value: %v", err)
		}
		cfg.Pipeline.Workers = n
	}
	if v := os.Getenv("VISION_SUGGESTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VISION_SUGGESTIONS value: %v", err)
		}
		cfg.Pipeline.SuggestionLimit = n
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.Pipeline.Workers <= 0 {
		c.Pipeline.Workers = runtime.NumCPU()
	}
}

// Validate checks the settings the serve command depends on.
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return fmt.Errorf("nats.url (or NATS_URL) must be set")
	}
	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Observability.LogLevel)
	}
	return nil
}
