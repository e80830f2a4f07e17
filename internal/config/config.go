package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	Storage  StorageConfig  `toml:"storage"`
	Parser   ParserConfig   `toml:"parser"`
	ASR      ASRConfig      `toml:"asr"`
	Sessions SessionsConfig `toml:"sessions"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	ReadTimeoutSec     int      `toml:"read_timeout_sec"`
	WriteTimeoutSec    int      `toml:"write_timeout_sec"`
	ShutdownTimeoutSec int      `toml:"shutdown_timeout_sec"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// StorageConfig represents the SQLite storage configuration
type StorageConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// ParserConfig represents the transcript parser configuration
type ParserConfig struct {
	// IncrementalProcess enables the per-segment Process entry point on the
	// API. Reparse with a full session snapshot is the canonical path; mixing
	// both against one session risks duplicate field population.
	IncrementalProcess bool `toml:"incremental_process"`
}

// ASRConfig represents the ASR review boundary configuration
type ASRConfig struct {
	MinConfidence float64  `toml:"min_confidence"`
	Callsigns     []string `toml:"callsigns"`
	MaxEditDist   int      `toml:"max_edit_dist"`
}

// SessionsConfig represents session lifecycle configuration
type SessionsConfig struct {
	MaxIdleMinutes int `toml:"max_idle_minutes"`
}

// Load reads and validates the configuration from a TOML file
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			CORSAllowedOrigins: []string{"*"},
			ReadTimeoutSec:     30,
			WriteTimeoutSec:    30,
			ShutdownTimeoutSec: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "casbrief.db",
		},
		Parser: ParserConfig{
			IncrementalProcess: true,
		},
		ASR: ASRConfig{
			MinConfidence: 0.6,
			MaxEditDist:   2,
		},
		Sessions: SessionsConfig{
			MaxIdleMinutes: 60,
		},
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.ASR.MinConfidence < 0 || c.ASR.MinConfidence > 1 {
		return fmt.Errorf("asr min_confidence must be in [0,1], got %f", c.ASR.MinConfidence)
	}
	if c.ASR.MaxEditDist < 0 {
		return fmt.Errorf("asr max_edit_dist must be >= 0, got %d", c.ASR.MaxEditDist)
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("storage enabled but no path configured")
	}
	if c.Sessions.MaxIdleMinutes <= 0 {
		return fmt.Errorf("sessions max_idle_minutes must be positive, got %d", c.Sessions.MaxIdleMinutes)
	}
	return nil
}
