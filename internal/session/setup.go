// internal/session/setup.go
package session

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/tryluck/internal/game"
)

// Assets lists the tradable contracts
var Assets = []string{
	"BTC/USDT",
	"ETH/USDT",
	"SOL/USDT",
	"DOGE/USDT",
	"BNB/USDT",
	"XRP/USDT",
	"ZEC/USDT",
}

// Range is an inclusive integer bound used by the setup screens.
type Range struct {
	Min int
	Max int
}

// Clamp limits v to the range
func (r Range) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v lies in the range
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) draw(rng *rand.Rand) int {
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Entertainment mode draws
var (
	funAssetCount = 5
	FunStake      = Range{Min: 100, Max: 10000}
	FunLeverage   = Range{Min: 1, Max: 3}
	FunTakeProfit = Range{Min: 10, Max: 30}
	FunStopLoss   = Range{Min: 5, Max: 20}
)

// Real mode form bounds and defaults
var (
	RealLeverage   = Range{Min: 1, Max: game.MaxLeverage}
	RealTakeProfit = Range{Min: 1, Max: 100}
	RealStopLoss   = Range{Min: 1, Max: 50}
)

const (
	realDefaultStake      = 100
	realDefaultLeverage   = 5
	realDefaultTakeProfit = 50
	realDefaultStopLoss   = 20
)

// RandomPosition draws an entertainment-mode position.
func RandomPosition(rng *rand.Rand) game.PositionConfig {
	return drawPosition(rng, funAssetCount)
}

// PreviewPosition draws an animation frame for the entertainment setup.
// Frames may show any asset; only the final draw is limited.
func PreviewPosition(rng *rand.Rand) game.PositionConfig {
	return drawPosition(rng, len(Assets))
}

func drawPosition(rng *rand.Rand, assets int) game.PositionConfig {
	direction := game.Long
	if rng.Float64() < 0.5 {
		direction = game.Short
	}

	return game.PositionConfig{
		Asset:             Assets[rng.Intn(assets)],
		Stake:             float64(FunStake.draw(rng)),
		Direction:         direction,
		Leverage:          FunLeverage.draw(rng),
		TakeProfitPercent: float64(FunTakeProfit.draw(rng)),
		StopLossPercent:   float64(FunStopLoss.draw(rng)),
	}
}

// RealDefaults returns the initial real-mode form for the given balance.
func RealDefaults(balance decimal.Decimal) game.PositionConfig {
	stake := decimal.NewFromInt(realDefaultStake)
	if balance.LessThan(stake) {
		stake = balance
	}

	return game.PositionConfig{
		Asset:             Assets[0],
		Stake:             stake.InexactFloat64(),
		Direction:         game.Long,
		Leverage:          realDefaultLeverage,
		TakeProfitPercent: realDefaultTakeProfit,
		StopLossPercent:   realDefaultStopLoss,
	}
}
