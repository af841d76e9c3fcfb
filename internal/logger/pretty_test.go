package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		fields   []zap.Field
		contains []string
	}{
		{
			name: "Round created",
			msg:  "Round created",
			fields: []zap.Field{
				zap.String("asset", "BTC/USDT"),
				zap.String("direction", "LONG"),
				zap.Int("leverage", 5),
				zap.Float64("entry_price", 10000),
				zap.Float64("tp_price", 11000),
				zap.Float64("sl_price", 9600),
			},
			contains: []string{"LONG BTC/USDT x5 @ 10000.00", "TP 11000.00", "SL 9600.00"},
		},
		{
			name: "Round finished",
			msg:  "Round finished",
			fields: []zap.Field{
				zap.String("result", "WIN_BIG"),
				zap.String("reason", "take_profit"),
				zap.Float64("pnl", 60),
				zap.Float64("pnl_percent", 60),
			},
			contains: []string{"WIN_BIG (take_profit)", "pnl 60.00 / 60.00%"},
		},
		{
			name:     "Balance changed",
			msg:      "Balance changed",
			fields:   []zap.Field{zap.String("balance", "105.5")},
			contains: []string{"Balance: 105.5"},
		},
		{
			name:     "Unknown message passes through",
			msg:      "something else",
			contains: []string{"something else"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatMessage(tt.msg, tt.fields...)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestFieldFilterCoreDropsFields(t *testing.T) {
	var buf bytes.Buffer
	encCfg := prettyEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.LevelKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(&buf), zap.InfoLevel)

	log := zap.New(NewFieldFilterCore(core)).With(zap.String("result", "LOSS"))
	log.Info("Round finished",
		zap.String("reason", "stop_loss"),
		zap.Float64("pnl", -120),
		zap.Float64("pnl_percent", -12))
	log.Debug("not enabled")
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.Contains(t, out, "LOSS (stop_loss)")
	assert.Contains(t, out, "pnl -120.00 / -12.00%")
	assert.NotContains(t, out, `"reason"`)
	assert.NotContains(t, out, "not enabled")
}

func TestCreatePrettyLogger(t *testing.T) {
	log, err := CreatePrettyLogger(true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	log, err = CreatePrettyLogger(false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
}
