package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9090

[asr]
min_confidence = 0.75
callsigns = ["Hawg", "Axeman"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.ASR.MinConfidence != 0.75 {
		t.Errorf("min_confidence = %f, want 0.75", cfg.ASR.MinConfidence)
	}
	if len(cfg.ASR.Callsigns) != 2 {
		t.Errorf("callsigns = %v", cfg.ASR.Callsigns)
	}
	// Unset sections keep defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want default", cfg.Logging.Level)
	}
	if cfg.Sessions.MaxIdleMinutes != 60 {
		t.Errorf("max_idle_minutes = %d, want default", cfg.Sessions.MaxIdleMinutes)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load on missing file must fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"confidence above one", func(c *Config) { c.ASR.MinConfidence = 1.5 }, true},
		{"negative edit distance", func(c *Config) { c.ASR.MaxEditDist = -1 }, true},
		{"storage enabled without path", func(c *Config) { c.Storage.Path = "" }, true},
		{"zero idle", func(c *Config) { c.Sessions.MaxIdleMinutes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
