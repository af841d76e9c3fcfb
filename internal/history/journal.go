// internal/history/journal.go
package history

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/tryluck/internal/events"
	"github.com/rovshanmuradov/tryluck/internal/game"
	"github.com/rovshanmuradov/tryluck/internal/logger"
)

const flushInterval = 5 * time.Second

// Journal keeps the most recent finished rounds in memory, running
// statistics over every round seen, and optionally appends each round to a
// CSV file.
type Journal struct {
	mu         sync.RWMutex
	csvWriter  *logger.SafeCSVWriter
	records    []Record
	maxRecords int
	logger     *zap.Logger

	rounds   int
	wins     int
	bigWins  int
	totalPnL float64
	best     float64
	worst    float64
}

// NewJournal creates a journal holding up to maxRecords rounds. An empty dir
// keeps the journal in memory only.
func NewJournal(dir string, maxRecords int, zapLogger *zap.Logger) (*Journal, error) {
	if maxRecords <= 0 {
		maxRecords = 100
	}

	j := &Journal{
		records:    make([]Record, 0, maxRecords),
		maxRecords: maxRecords,
		logger:     zapLogger.Named("journal"),
	}

	if dir != "" {
		filename := fmt.Sprintf("rounds_%s.csv", time.Now().Format("20060102"))
		csvPath := filepath.Join(dir, filename)

		w, err := logger.NewSafeCSVWriter(csvPath, CSVHeaders(), flushInterval, zapLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create round journal: %w", err)
		}
		j.csvWriter = w

		j.logger.Info("Round journal initialized",
			zap.String("csv_file", csvPath),
			zap.Int("max_memory_rounds", maxRecords))
	}

	return j, nil
}

// Handle implements events.Handler for RoundFinished events.
func (j *Journal) Handle(_ context.Context, e events.Event) error {
	ev, ok := e.(events.RoundFinishedEvent)
	if !ok {
		return nil
	}
	return j.Add(RecordFromEvent(ev))
}

// Add stores a finished round
func (j *Journal) Add(rec Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now()
	}

	if j.csvWriter != nil {
		if err := j.csvWriter.WriteRecord(rec.ToCSV()); err != nil {
			j.logger.Error("Failed to write round to CSV",
				zap.String("round_id", rec.RoundID),
				zap.Error(err))
			return fmt.Errorf("failed to write round: %w", err)
		}
	}

	if len(j.records) >= j.maxRecords {
		j.records = j.records[1:]
	}
	j.records = append(j.records, rec)

	if j.rounds == 0 || rec.PnL > j.best {
		j.best = rec.PnL
	}
	if j.rounds == 0 || rec.PnL < j.worst {
		j.worst = rec.PnL
	}
	j.rounds++
	if rec.IsWin() {
		j.wins++
	}
	if rec.Result == game.WinBig.String() {
		j.bigWins++
	}
	j.totalPnL += rec.PnL

	j.logger.Debug("Round recorded",
		zap.String("round_id", rec.RoundID),
		zap.String("result", rec.Result),
		zap.Float64("pnl", rec.PnL))

	return nil
}

// Recent returns up to limit of the most recent rounds, oldest first.
// A non-positive limit returns everything held in memory.
func (j *Journal) Recent(limit int) []Record {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if limit <= 0 || limit > len(j.records) {
		limit = len(j.records)
	}

	out := make([]Record, limit)
	copy(out, j.records[len(j.records)-limit:])
	return out
}

// Find returns a held round by id
func (j *Journal) Find(roundID string) (Record, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	for i := len(j.records) - 1; i >= 0; i-- {
		if j.records[i].RoundID == roundID {
			return j.records[i], true
		}
	}
	return Record{}, false
}

// Statistics returns aggregate statistics over every recorded round
func (j *Journal) Statistics() Statistics {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.statisticsLocked()
}

func (j *Journal) statisticsLocked() Statistics {
	stats := Statistics{
		Rounds:   j.rounds,
		Wins:     j.wins,
		BigWins:  j.bigWins,
		Losses:   j.rounds - j.wins,
		TotalPnL: j.totalPnL,
		BestPnL:  j.best,
		WorstPnL: j.worst,
	}
	if j.rounds > 0 {
		stats.WinRate = float64(j.wins) / float64(j.rounds) * 100
		stats.AvgPnL = j.totalPnL / float64(j.rounds)
	}
	return stats
}

// Close logs the final statistics and closes the CSV file
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	stats := j.statisticsLocked()
	j.logger.Info("Closing round journal",
		zap.Int("rounds", stats.Rounds),
		zap.Int("wins", stats.Wins),
		zap.Float64("total_pnl", stats.TotalPnL),
		zap.Float64("win_rate", stats.WinRate))

	if j.csvWriter == nil {
		return nil
	}
	return j.csvWriter.Close()
}

// Statistics holds aggregate round statistics
type Statistics struct {
	Rounds   int     `json:"rounds"`
	Wins     int     `json:"wins"`
	BigWins  int     `json:"big_wins"`
	Losses   int     `json:"losses"`
	WinRate  float64 `json:"win_rate"`
	TotalPnL float64 `json:"total_pnl"`
	AvgPnL   float64 `json:"avg_pnl"`
	BestPnL  float64 `json:"best_pnl"`
	WorstPnL float64 `json:"worst_pnl"`
}
