// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	StartPrice          float64       `mapstructure:"start_price"`
	Volatility          float64       `mapstructure:"volatility"`
	TickInterval        time.Duration `mapstructure:"-"`
	TickIntervalMS      int           `mapstructure:"tick_interval_ms"`
	CountdownInterval   time.Duration `mapstructure:"-"`
	CountdownIntervalMS int           `mapstructure:"countdown_interval_ms"`
	RoundDuration       time.Duration `mapstructure:"-"`
	RoundSeconds        int           `mapstructure:"round_seconds"`
	UIRefresh           time.Duration `mapstructure:"-"`
	UIRefreshMS         int           `mapstructure:"ui_refresh_ms"`
	Language            string        `mapstructure:"language"`
	Seed                int64         `mapstructure:"seed"`
	DebugLogging        bool          `mapstructure:"debug_logging"`
	LogFile             string        `mapstructure:"log_file"`
	LogMaxSizeMB        int           `mapstructure:"log_max_size_mb"`
	LogMaxBackups       int           `mapstructure:"log_max_backups"`
	LogMaxAgeDays       int           `mapstructure:"log_max_age_days"`
	HistoryDir          string        `mapstructure:"history_dir"`
	HistorySize         int           `mapstructure:"history_size"`
}

const (
	DefaultStartPrice          = 10000.0
	DefaultVolatility          = 20.0
	DefaultTickIntervalMS      = 100
	DefaultCountdownIntervalMS = 1000
	DefaultRoundSeconds        = 3600
	DefaultUIRefreshMS         = 50
	DefaultLanguage            = "zh"
	DefaultLogFile             = "logs/tryluck.log"
	DefaultLogMaxSizeMB        = 10
	DefaultLogMaxBackups       = 3
	DefaultLogMaxAgeDays       = 7
	DefaultHistorySize         = 100

	envPrefix = "TRYLUCK"
)

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"start_price":           DefaultStartPrice,
		"volatility":            DefaultVolatility,
		"tick_interval_ms":      DefaultTickIntervalMS,
		"countdown_interval_ms": DefaultCountdownIntervalMS,
		"round_seconds":         DefaultRoundSeconds,
		"ui_refresh_ms":         DefaultUIRefreshMS,
		"language":              DefaultLanguage,
		"seed":                  0,
		"debug_logging":         false,
		"log_file":              DefaultLogFile,
		"log_max_size_mb":       DefaultLogMaxSizeMB,
		"log_max_backups":       DefaultLogMaxBackups,
		"log_max_age_days":      DefaultLogMaxAgeDays,
		"history_dir":           "",
		"history_size":          DefaultHistorySize,
	}
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg, _ := load(viper.New(), "")
	return cfg
}

// LoadConfig reads the JSON config at path, applies TRYLUCK_* environment
// overrides and validates the result. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config error: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	cfg.TickInterval = time.Duration(cfg.TickIntervalMS) * time.Millisecond
	cfg.CountdownInterval = time.Duration(cfg.CountdownIntervalMS) * time.Millisecond
	cfg.RoundDuration = time.Duration(cfg.RoundSeconds) * time.Second
	cfg.UIRefresh = time.Duration(cfg.UIRefreshMS) * time.Millisecond
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.StartPrice <= 0 {
		return errors.New("invalid start_price")
	}
	if c.Volatility <= 0 {
		return errors.New("invalid volatility")
	}
	if c.TickIntervalMS <= 0 {
		return errors.New("invalid tick_interval_ms")
	}
	if c.CountdownIntervalMS <= 0 {
		return errors.New("invalid countdown_interval_ms")
	}
	if c.RoundSeconds <= 0 {
		return errors.New("invalid round_seconds")
	}
	if c.UIRefreshMS < 0 {
		return errors.New("invalid ui_refresh_ms")
	}
	if c.Language != "zh" && c.Language != "en" {
		return fmt.Errorf("unsupported language %q", c.Language)
	}
	if c.HistorySize <= 0 {
		c.HistorySize = DefaultHistorySize
	}
	return nil
}
