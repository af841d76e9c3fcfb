package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validConfigJSON = `{
    "start_price": 25000,
    "volatility": 15,
    "tick_interval_ms": 50,
    "countdown_interval_ms": 500,
    "round_seconds": 120,
    "ui_refresh_ms": 40,
    "language": "en",
    "seed": 42,
    "debug_logging": true,
    "history_dir": "history",
    "history_size": 20
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:    "Valid config",
			content: validConfigJSON,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 25000.0, cfg.StartPrice)
				assert.Equal(t, 15.0, cfg.Volatility)
				assert.Equal(t, 50*time.Millisecond, cfg.TickInterval)
				assert.Equal(t, 500*time.Millisecond, cfg.CountdownInterval)
				assert.Equal(t, 2*time.Minute, cfg.RoundDuration)
				assert.Equal(t, 40*time.Millisecond, cfg.UIRefresh)
				assert.Equal(t, "en", cfg.Language)
				assert.Equal(t, int64(42), cfg.Seed)
				assert.True(t, cfg.DebugLogging)
				assert.Equal(t, 20, cfg.HistorySize)
			},
		},
		{
			name:    "Partial config keeps defaults",
			content: `{"language": "EN"}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "en", cfg.Language)
				assert.Equal(t, DefaultStartPrice, cfg.StartPrice)
				assert.Equal(t, 100*time.Millisecond, cfg.TickInterval)
				assert.Equal(t, time.Second, cfg.CountdownInterval)
				assert.Equal(t, time.Hour, cfg.RoundDuration)
				assert.Equal(t, 50*time.Millisecond, cfg.UIRefresh)
			},
		},
		{
			name:    "Negative tick interval",
			content: `{"tick_interval_ms": -1}`,
			wantErr: true,
		},
		{
			name:    "Negative UI refresh",
			content: `{"ui_refresh_ms": -5}`,
			wantErr: true,
		},
		{
			name:    "Unknown language",
			content: `{"language": "fr"}`,
			wantErr: true,
		},
		{
			name:    "Zero start price",
			content: `{"start_price": 0}`,
			wantErr: true,
		},
		{
			name:    "Malformed JSON",
			content: `{"start_price": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultStartPrice, cfg.StartPrice)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Empty(t, cfg.HistoryDir)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	t.Setenv("TRYLUCK_LANGUAGE", "en")
	t.Setenv("TRYLUCK_ROUND_SECONDS", "30")

	cfg, err := LoadConfig(writeConfig(t, `{"language": "zh"}`))
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 30*time.Second, cfg.RoundDuration)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultVolatility, cfg.Volatility)
	assert.Equal(t, DefaultHistorySize, cfg.HistorySize)
}
