// internal/export/export.go
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/tryluck/internal/history"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ErrNoRounds is returned when no round matches the export filters.
var ErrNoRounds = errors.New("no rounds match the export criteria")

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format      ExportFormat
	StartTime   time.Time
	EndTime     time.Time
	AssetFilter string
	ModeFilter  string
	OnlyWins    bool
	OutputDir   string
}

// RoundExporter writes journal records to standalone files
type RoundExporter struct {
	logger *zap.Logger
}

// NewRoundExporter creates a new round exporter
func NewRoundExporter(logger *zap.Logger) *RoundExporter {
	return &RoundExporter{
		logger: logger.Named("export"),
	}
}

// ExportRounds writes the rounds matching options and returns the file path.
func (re *RoundExporter) ExportRounds(rounds []history.Record, options ExportOptions) (string, error) {
	filtered := re.filterRounds(rounds, options)
	if len(filtered) == 0 {
		return "", ErrNoRounds
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].FinishedAt.Before(filtered[j].FinishedAt)
	})

	outputPath := filepath.Join(options.OutputDir, re.generateFilename(options))

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	switch options.Format {
	case FormatCSV:
		err = re.exportToCSV(filtered, outputPath)
	case FormatJSON:
		err = re.exportToJSON(filtered, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}
	if err != nil {
		return "", err
	}

	re.logger.Info("Rounds exported",
		zap.String("file", outputPath),
		zap.Int("count", len(filtered)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

func (re *RoundExporter) filterRounds(rounds []history.Record, options ExportOptions) []history.Record {
	var filtered []history.Record

	for _, r := range rounds {
		if !options.StartTime.IsZero() && r.FinishedAt.Before(options.StartTime) {
			continue
		}
		if !options.EndTime.IsZero() && r.FinishedAt.After(options.EndTime) {
			continue
		}
		if options.AssetFilter != "" && r.Asset != options.AssetFilter {
			continue
		}
		if options.ModeFilter != "" && r.Mode != options.ModeFilter {
			continue
		}
		if options.OnlyWins && !r.IsWin() {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered
}

func (re *RoundExporter) generateFilename(options ExportOptions) string {
	timestamp := time.Now().Format("20060102_150405")

	prefix := "rounds_all"
	if options.ModeFilter != "" {
		prefix = "rounds_" + options.ModeFilter
	}
	if options.OnlyWins {
		prefix += "_wins"
	}

	return fmt.Sprintf("%s_%s.%s", prefix, timestamp, options.Format)
}

func (re *RoundExporter) exportToCSV(rounds []history.Record, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(history.CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, r := range rounds {
		if err := writer.Write(r.ToCSV()); err != nil {
			return fmt.Errorf("failed to write round: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (re *RoundExporter) exportToJSON(rounds []history.Record, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := struct {
		ExportTime time.Time        `json:"export_time"`
		RoundCount int              `json:"round_count"`
		Rounds     []history.Record `json:"rounds"`
		Summary    ExportSummary    `json:"summary"`
	}{
		ExportTime: time.Now(),
		RoundCount: len(rounds),
		Rounds:     rounds,
		Summary:    CalculateSummary(rounds),
	}

	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ExportSummary contains summary statistics for exported rounds
type ExportSummary struct {
	TotalRounds  int                `json:"total_rounds"`
	WinCount     int                `json:"win_count"`
	LossCount    int                `json:"loss_count"`
	WinRate      float64            `json:"win_rate"`
	TotalStake   float64            `json:"total_stake"`
	TotalPnL     float64            `json:"total_pnl"`
	AvgPnL       float64            `json:"avg_pnl"`
	UniqueAssets int                `json:"unique_assets"`
	ByResult     map[string]int     `json:"by_result"`
	ByReason     map[string]int     `json:"by_reason"`
	PnLByAsset   map[string]float64 `json:"pnl_by_asset"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      time.Time          `json:"end_date"`
}

// CalculateSummary aggregates rounds sorted by finish time.
func CalculateSummary(rounds []history.Record) ExportSummary {
	summary := ExportSummary{
		TotalRounds: len(rounds),
		ByResult:    make(map[string]int),
		ByReason:    make(map[string]int),
		PnLByAsset:  make(map[string]float64),
	}
	if len(rounds) == 0 {
		return summary
	}

	summary.StartDate = rounds[0].FinishedAt
	summary.EndDate = rounds[len(rounds)-1].FinishedAt

	for _, r := range rounds {
		summary.ByResult[r.Result]++
		summary.ByReason[r.Reason]++
		summary.PnLByAsset[r.Asset] += r.PnL
		summary.TotalStake += r.Stake
		summary.TotalPnL += r.PnL
		if r.IsWin() {
			summary.WinCount++
		} else {
			summary.LossCount++
		}
	}

	summary.UniqueAssets = len(summary.PnLByAsset)
	summary.WinRate = float64(summary.WinCount) / float64(summary.TotalRounds) * 100
	summary.AvgPnL = summary.TotalPnL / float64(summary.TotalRounds)

	return summary
}
