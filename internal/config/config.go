// Package config loads the service configuration from a YAML file and
// applies defaults for omitted fields.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr          string `yaml:"listen_addr"`
	CORSAllowedOrigin   string `yaml:"cors_allowed_origin"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
	MaxImportBytes      int64  `yaml:"max_import_bytes"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ListenAddr:          ":8080",
		CORSAllowedOrigin:   "*",
		FetchTimeoutSeconds: 15,
		MaxImportBytes:      16 << 20,
	}
}

// Load reads the configuration file at path. Omitted fields fall back to
// their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	def := Default()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.CORSAllowedOrigin == "" {
		cfg.CORSAllowedOrigin = def.CORSAllowedOrigin
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		cfg.FetchTimeoutSeconds = def.FetchTimeoutSeconds
	}
	if cfg.MaxImportBytes <= 0 {
		cfg.MaxImportBytes = def.MaxImportBytes
	}

	return &cfg, nil
}

// FetchTimeout returns the remote-fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
