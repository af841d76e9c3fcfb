// internal/history/record.go
package history

import (
	"strconv"
	"time"

	"github.com/rovshanmuradov/tryluck/internal/events"
)

// Record is one finished round as stored in the journal.
type Record struct {
	RoundID    string    `json:"round_id"`
	FinishedAt time.Time `json:"finished_at"`
	Mode       string    `json:"mode"`
	Asset      string    `json:"asset"`
	Direction  string    `json:"direction"`
	Leverage   int       `json:"leverage"`
	Stake      float64   `json:"stake"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	Ticks      int       `json:"ticks"`
	Result     string    `json:"result"`
	Reason     string    `json:"reason"`
	PnL        float64   `json:"pnl"`
	PnLPercent float64   `json:"pnl_percent"`
	Balance    string    `json:"balance,omitempty"`
}

// IsWin reports whether the round ended in profit
func (r Record) IsWin() bool {
	return r.PnL > 0
}

// RecordFromEvent converts a finished-round event into a journal record.
func RecordFromEvent(e events.RoundFinishedEvent) Record {
	return Record{
		RoundID:    e.RoundID,
		FinishedAt: e.Timestamp(),
		Mode:       e.Mode,
		Asset:      e.Config.Asset,
		Direction:  e.Config.Direction.String(),
		Leverage:   e.Config.Leverage,
		Stake:      e.Config.Stake,
		EntryPrice: e.EntryPrice,
		ExitPrice:  e.ExitPrice,
		Ticks:      e.Ticks,
		Result:     e.Result.Type.String(),
		Reason:     string(e.Result.Reason),
		PnL:        e.Result.PnLAmount,
		PnLPercent: e.Result.PnLPercent,
		Balance:    e.Balance,
	}
}

// ToCSV converts the record to a CSV row matching CSVHeaders
func (r Record) ToCSV() []string {
	return []string{
		r.RoundID,
		r.FinishedAt.Format(time.RFC3339),
		r.Mode,
		r.Asset,
		r.Direction,
		strconv.Itoa(r.Leverage),
		formatFloat(r.Stake),
		formatFloat(r.EntryPrice),
		formatFloat(r.ExitPrice),
		strconv.Itoa(r.Ticks),
		r.Result,
		r.Reason,
		formatFloat(r.PnL),
		formatFloat(r.PnLPercent),
		r.Balance,
	}
}

// CSVHeaders returns the header row for round CSV files
func CSVHeaders() []string {
	return []string{
		"round_id",
		"finished_at",
		"mode",
		"asset",
		"direction",
		"leverage",
		"stake",
		"entry_price",
		"exit_price",
		"ticks",
		"result",
		"reason",
		"pnl",
		"pnl_percent",
		"balance",
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
