package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 9909 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 9909)
	}
	if !cfg.Reminders.Enabled {
		t.Error("reminders should default to enabled")
	}
	if cfg.Reminders.Interval != "1m" {
		t.Errorf("Reminders.Interval = %q, want %q", cfg.Reminders.Interval, "1m")
	}
	if cfg.Telemetry.Prometheus {
		t.Error("telemetry should default to off")
	}
}

func TestNinthHomeEnvOverride(t *testing.T) {
	t.Setenv("NINTH_HOME", "/tmp/ninth-test")

	if got := NinthHome(); got != "/tmp/ninth-test" {
		t.Errorf("NinthHome() = %q, want %q", got, "/tmp/ninth-test")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("NINTH_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9999
	cfg.Reminders.Interval = "5m"
	cfg.Telemetry.Prometheus = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(NinthHome(), "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.Port != 9999 {
		t.Errorf("API.Port = %d, want 9999", loaded.API.Port)
	}
	if loaded.Reminders.Interval != "5m" {
		t.Errorf("Reminders.Interval = %q, want %q", loaded.Reminders.Interval, "5m")
	}
	if !loaded.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus should round-trip true")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("NINTH_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != DefaultConfig().API.Port {
		t.Errorf("missing config should fall back to defaults, got port %d", cfg.API.Port)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"5m", 5 * time.Minute},
		{"30s", 30 * time.Second},
		{"", time.Minute},
		{"bogus", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseDuration(tt.input, time.Minute)
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
