package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Forex ForexConfig `mapstructure:"forex"`
	Poll  PollConfig  `mapstructure:"poll"`
	Chart ChartConfig `mapstructure:"chart"`
	UI    UIConfig    `mapstructure:"ui"`
	Log   LogConfig   `mapstructure:"log"`
}

type ForexConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type PollConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	MaxBackoff time.Duration `mapstructure:"max_backoff"`
	Pairs      []string      `mapstructure:"pairs"`
}

type ChartConfig struct {
	MaxSamples int `mapstructure:"max_samples"`
}

type UIConfig struct {
	Addr           string        `mapstructure:"addr"`
	RedrawInterval time.Duration `mapstructure:"redraw_interval"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from config.yaml and overrides with environment variables.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	setDefaults(v)

	// Support environment variables with dot notation (e.g., FOREX_BASE_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The defaults describe a complete setup, so a missing file is fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read config: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("forex.base_url", "https://api.frankfurter.dev/v1")
	v.SetDefault("forex.timeout", 10*time.Second)
	v.SetDefault("poll.interval", 2*time.Second)
	v.SetDefault("poll.max_backoff", 10*time.Second)
	v.SetDefault("poll.pairs", []string{"USD/EUR", "USD/JPY"})
	v.SetDefault("chart.max_samples", 300)
	v.SetDefault("ui.addr", ":8087")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", "dev")
}

// Validate checks that the loaded configuration is usable.
// It also fills the redraw interval from the poll interval when unset.
func (c *Config) Validate() error {
	if c.Forex.BaseURL == "" {
		return fmt.Errorf("forex.base_url is required")
	}
	if c.Forex.Timeout <= 0 {
		return fmt.Errorf("forex.timeout must be positive")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive")
	}
	if c.Poll.MaxBackoff < c.Poll.Interval {
		return fmt.Errorf("poll.max_backoff must be at least poll.interval")
	}
	if len(c.Poll.Pairs) == 0 {
		return fmt.Errorf("poll.pairs must list at least one pair")
	}
	for _, p := range c.Poll.Pairs {
		parts := strings.Split(p, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("poll.pairs: %q is not of the form BASE/QUOTE", p)
		}
	}
	if c.Chart.MaxSamples < 1 {
		return fmt.Errorf("chart.max_samples must be at least 1")
	}
	if c.UI.Addr == "" {
		return fmt.Errorf("ui.addr is required")
	}
	if c.UI.RedrawInterval <= 0 {
		c.UI.RedrawInterval = c.Poll.Interval
	}
	return nil
}
