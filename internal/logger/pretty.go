// internal/logger/pretty.go
package logger

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

func prettyEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		CallerKey:      "",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// customLevelEncoder formats log levels with colors
func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(fmt.Sprintf("%s[DEBUG]%s", ColorCyan, ColorReset))
	case zapcore.InfoLevel:
		enc.AppendString(fmt.Sprintf("%s[INFO]%s", ColorGreen, ColorReset))
	case zapcore.WarnLevel:
		enc.AppendString(fmt.Sprintf("%s[WARN]%s", ColorYellow, ColorReset))
	case zapcore.ErrorLevel:
		enc.AppendString(fmt.Sprintf("%s[ERROR]%s", ColorRed, ColorReset))
	case zapcore.FatalLevel:
		enc.AppendString(fmt.Sprintf("%s[FATAL]%s", ColorRed+ColorBold, ColorReset))
	default:
		enc.AppendString(fmt.Sprintf("[%s]", level.CapitalString()))
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}

// CreatePrettyLogger creates a console logger that renders round events as
// short human-readable lines instead of structured fields.
func CreatePrettyLogger(debug bool) (*zap.Logger, error) {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(prettyEncoderConfig()),
		zapcore.AddSync(zapcore.Lock(os.Stdout)),
		level,
	)
	return zap.New(NewFieldFilterCore(core)), nil
}

// FormatMessage creates user-friendly log messages
func FormatMessage(msg string, fields ...zapcore.Field) string {
	switch {
	case strings.Contains(msg, "Round created"):
		return fmt.Sprintf("%s▶ %s %s x%s @ %s%s\n    TP %s  SL %s",
			ColorCyan,
			extractField(fields, "direction"),
			extractField(fields, "asset"),
			extractField(fields, "leverage"),
			extractField(fields, "entry_price"),
			ColorReset,
			extractField(fields, "tp_price"),
			extractField(fields, "sl_price"))

	case strings.Contains(msg, "Round finished"):
		color := ColorRed
		if extractField(fields, "result") != "LOSS" {
			color = ColorGreen + ColorBold
		}
		return fmt.Sprintf("%s■ %s (%s) pnl %s / %s%%%s",
			color,
			extractField(fields, "result"),
			extractField(fields, "reason"),
			extractField(fields, "pnl"),
			extractField(fields, "pnl_percent"),
			ColorReset)

	case strings.Contains(msg, "Balance changed"):
		return fmt.Sprintf("%s💰 Balance: %s%s", ColorYellow, extractField(fields, "balance"), ColorReset)

	case strings.Contains(msg, "Experience gold claimed"):
		return fmt.Sprintf("%s🎁 Real mode unlocked%s", ColorPurple, ColorReset)

	case strings.Contains(msg, "Simulation completed"):
		return fmt.Sprintf("%s✓ %s rounds played, win rate %s%%%s",
			ColorBlue+ColorBold,
			extractField(fields, "rounds"),
			extractField(fields, "win_rate"),
			ColorReset)

	default:
		return msg
	}
}

func extractField(fields []zapcore.Field, key string) string {
	for _, field := range fields {
		if field.Key != key {
			continue
		}
		switch field.Type {
		case zapcore.StringType:
			return field.String
		case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
			return fmt.Sprintf("%d", field.Integer)
		case zapcore.Float64Type:
			return fmt.Sprintf("%.2f", math.Float64frombits(uint64(field.Integer)))
		default:
			if field.Interface != nil {
				return fmt.Sprintf("%v", field.Interface)
			}
			return fmt.Sprintf("%v", field.Integer)
		}
	}
	return ""
}

// FieldFilterCore wraps a zapcore.Core and collapses fields into the message
// via FormatMessage.
type FieldFilterCore struct {
	core   zapcore.Core
	fields []zapcore.Field
}

// NewFieldFilterCore wraps core
func NewFieldFilterCore(core zapcore.Core) *FieldFilterCore {
	return &FieldFilterCore{core: core}
}

func (c *FieldFilterCore) Enabled(level zapcore.Level) bool {
	return c.core.Enabled(level)
}

func (c *FieldFilterCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &FieldFilterCore{core: c.core, fields: merged}
}

func (c *FieldFilterCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *FieldFilterCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := append(append([]zapcore.Field{}, c.fields...), fields...)
	entry.Message = FormatMessage(entry.Message, all...)
	return c.core.Write(entry, nil)
}

func (c *FieldFilterCore) Sync() error {
	return c.core.Sync()
}
