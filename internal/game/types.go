// internal/game/types.go
package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxLeverage is the upper bound accepted for a position.
const MaxLeverage = 10

var (
	ErrInvalidAsset      = errors.New("asset is required")
	ErrInvalidStake      = errors.New("stake must be positive")
	ErrInvalidLeverage   = fmt.Errorf("leverage must be between 1 and %d", MaxLeverage)
	ErrInvalidTakeProfit = errors.New("take profit percent must be positive")
	ErrInvalidStopLoss   = errors.New("stop loss percent must be positive")
	ErrInvalidEntryPrice = errors.New("entry price must be positive")
)

// Direction is the side of a position
type Direction int

const (
	Long Direction = iota
	Short
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case Long:
		return "LONG"
	case Short:
		return "SHORT"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection converts "long"/"short" (any case) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long":
		return Long, nil
	case "short":
		return Short, nil
	default:
		return Long, fmt.Errorf("unknown direction %q", s)
	}
}

// PositionConfig describes the mock position opened for a round.
// It is treated as immutable once the round starts.
type PositionConfig struct {
	Asset             string
	Stake             float64
	Direction         Direction
	Leverage          int
	TakeProfitPercent float64
	StopLossPercent   float64
}

// Validate checks the input contract of a round.
func (c PositionConfig) Validate() error {
	if strings.TrimSpace(c.Asset) == "" {
		return ErrInvalidAsset
	}
	if c.Stake <= 0 {
		return ErrInvalidStake
	}
	if c.Leverage < 1 || c.Leverage > MaxLeverage {
		return ErrInvalidLeverage
	}
	if c.TakeProfitPercent <= 0 {
		return ErrInvalidTakeProfit
	}
	if c.StopLossPercent <= 0 {
		return ErrInvalidStopLoss
	}
	return nil
}

// PositionSize is the notional size of the position (stake times leverage).
func (c PositionConfig) PositionSize() float64 {
	return c.Stake * float64(c.Leverage)
}

// PriceSample is one point of the round's price history
type PriceSample struct {
	Time  time.Time
	Price float64
}

// ResultType classifies a finished round
type ResultType int

const (
	Loss ResultType = iota
	WinSmall
	WinBig
)

// String returns the string representation of the result type
func (r ResultType) String() string {
	switch r {
	case Loss:
		return "LOSS"
	case WinSmall:
		return "WIN_SMALL"
	case WinBig:
		return "WIN_BIG"
	default:
		return "UNKNOWN"
	}
}

// IsWin reports whether the result is one of the winning types.
func (r ResultType) IsWin() bool {
	return r == WinSmall || r == WinBig
}

// EndReason tells what terminated a round.
type EndReason string

const (
	ReasonTakeProfit EndReason = "take_profit"
	ReasonStopLoss   EndReason = "stop_loss"
	ReasonTimeout    EndReason = "timeout"
	ReasonManual     EndReason = "manual"
)

// RoundResult is the terminal outcome of a round. Created once, never mutated.
type RoundResult struct {
	Type       ResultType
	PnLAmount  float64
	PnLPercent float64
	Reason     EndReason
}

// Snapshot is a read-only view of a running round used by the UI.
type Snapshot struct {
	RoundID         string
	Config          PositionConfig
	EntryPrice      float64
	Price           float64
	PnLAmount       float64
	PnLPercent      float64
	TakeProfitPrice float64
	StopLossPrice   float64
	Remaining       time.Duration
	Ticks           int
	Finished        bool
}

// IsProfitable reports whether the price has moved in the position's favour.
func (s Snapshot) IsProfitable() bool {
	return s.PnLAmount >= 0
}
