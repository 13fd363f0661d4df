// Package config handles loading and managing Credlens service configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/credlens/credlens/pkg/scoring"
)

// Config is the top-level configuration for the Credlens CLI and daemon.
// Scoring holds a full scoring snapshot; a config file may override any part
// of it and the result is validated as a whole.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Storage StorageConfig  `yaml:"storage"`
	Scoring scoring.Config `yaml:"scoring"`
}

// ServerConfig controls the credlensd HTTP service.
type ServerConfig struct {
	Port        string `yaml:"port"`
	APIKey      string `yaml:"api_key"`
	DatabaseURL string `yaml:"database_url"`
}

// StorageConfig selects the graph blob storage backend.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // local, s3, gcs
	LocalPath string `yaml:"local_path"`
	Bucket    string `yaml:"bucket"`
	S3Region  string `yaml:"s3_region"`
}

// DefaultConfig returns a Config with sensible defaults, including the
// default scoring snapshot.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Storage: StorageConfig{
			Backend:   "local",
			LocalPath: "/tmp/credlens-data",
		},
		Scoring: *scoring.Defaults(),
	}
}

// Load reads a config file from the given path. If the file does not exist,
// it returns the default config. The merged scoring snapshot is validated
// before being returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Scoring.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
