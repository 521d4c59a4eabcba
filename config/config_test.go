package config

import (
	"os"
	"testing"
	"time"
)

func writeConfig(t *testing.T, yaml string) {
	t.Helper()
	t.Chdir(t.TempDir())
	if err := os.WriteFile("config.yaml", []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no config file at all

	cfg := Load()

	if cfg.Forex.BaseURL != "https://api.frankfurter.dev/v1" {
		t.Errorf("BaseURL = %q", cfg.Forex.BaseURL)
	}
	if cfg.Poll.Interval != 2*time.Second {
		t.Errorf("Interval = %v, want 2s", cfg.Poll.Interval)
	}
	if cfg.Poll.MaxBackoff != 10*time.Second {
		t.Errorf("MaxBackoff = %v, want 10s", cfg.Poll.MaxBackoff)
	}
	if len(cfg.Poll.Pairs) != 2 || cfg.Poll.Pairs[0] != "USD/EUR" || cfg.Poll.Pairs[1] != "USD/JPY" {
		t.Errorf("Pairs = %v", cfg.Poll.Pairs)
	}
	if cfg.Chart.MaxSamples != 300 {
		t.Errorf("MaxSamples = %d, want 300", cfg.Chart.MaxSamples)
	}
	// Redraw interval falls back to the poll interval
	if cfg.UI.RedrawInterval != cfg.Poll.Interval {
		t.Errorf("RedrawInterval = %v, want %v", cfg.UI.RedrawInterval, cfg.Poll.Interval)
	}
}

func TestLoadFromFile(t *testing.T) {
	writeConfig(t, `
forex:
  base_url: https://rates.example.com/v1
  timeout: 3s
poll:
  interval: 1s
  max_backoff: 4s
  pairs:
    - EUR/GBP
chart:
  max_samples: 50
ui:
  addr: ":9000"
  redraw_interval: 500ms
`)

	cfg := Load()

	if cfg.Forex.BaseURL != "https://rates.example.com/v1" {
		t.Errorf("BaseURL = %q", cfg.Forex.BaseURL)
	}
	if cfg.Forex.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.Forex.Timeout)
	}
	if cfg.Poll.Interval != time.Second || cfg.Poll.MaxBackoff != 4*time.Second {
		t.Errorf("Poll = %+v", cfg.Poll)
	}
	if len(cfg.Poll.Pairs) != 1 || cfg.Poll.Pairs[0] != "EUR/GBP" {
		t.Errorf("Pairs = %v", cfg.Poll.Pairs)
	}
	if cfg.Chart.MaxSamples != 50 {
		t.Errorf("MaxSamples = %d", cfg.Chart.MaxSamples)
	}
	if cfg.UI.Addr != ":9000" || cfg.UI.RedrawInterval != 500*time.Millisecond {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FOREX_BASE_URL", "https://override.example.com")
	t.Setenv("POLL_INTERVAL", "7s")
	t.Setenv("POLL_MAX_BACKOFF", "14s")

	cfg := Load()

	if cfg.Forex.BaseURL != "https://override.example.com" {
		t.Errorf("BaseURL = %q, want env override", cfg.Forex.BaseURL)
	}
	if cfg.Poll.Interval != 7*time.Second {
		t.Errorf("Interval = %v, want 7s", cfg.Poll.Interval)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Forex: ForexConfig{BaseURL: "https://rates.example.com", Timeout: 10 * time.Second},
			Poll: PollConfig{
				Interval:   2 * time.Second,
				MaxBackoff: 10 * time.Second,
				Pairs:      []string{"USD/EUR"},
			},
			Chart: ChartConfig{MaxSamples: 300},
			UI:    UIConfig{Addr: ":8087"},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name string
		bad  func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Forex.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.Forex.Timeout = 0 }},
		{"zero interval", func(c *Config) { c.Poll.Interval = 0 }},
		{"backoff below interval", func(c *Config) { c.Poll.MaxBackoff = time.Second }},
		{"no pairs", func(c *Config) { c.Poll.Pairs = nil }},
		{"bad pair", func(c *Config) { c.Poll.Pairs = []string{"USDEUR"} }},
		{"zero max samples", func(c *Config) { c.Chart.MaxSamples = 0 }},
		{"empty addr", func(c *Config) { c.UI.Addr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.bad(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
