package session

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/tryluck/internal/game"
)

func TestRandomPositionWithinRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	longs, shorts := 0, 0

	for i := 0; i < 500; i++ {
		cfg := RandomPosition(rng)
		require.NoError(t, cfg.Validate())

		assert.Contains(t, Assets[:5], cfg.Asset)
		assert.True(t, FunStake.Contains(int(cfg.Stake)), "stake %v", cfg.Stake)
		assert.True(t, FunLeverage.Contains(cfg.Leverage), "leverage %d", cfg.Leverage)
		assert.True(t, FunTakeProfit.Contains(int(cfg.TakeProfitPercent)))
		assert.True(t, FunStopLoss.Contains(int(cfg.StopLossPercent)))

		if cfg.Direction == game.Long {
			longs++
		} else {
			shorts++
		}
	}

	assert.Greater(t, longs, 0)
	assert.Greater(t, shorts, 0)
}

func TestRandomPositionDeterministic(t *testing.T) {
	a := RandomPosition(rand.New(rand.NewSource(42)))
	b := RandomPosition(rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestRealDefaults(t *testing.T) {
	tests := []struct {
		name    string
		balance decimal.Decimal
		stake   float64
	}{
		{"Experience gold", decimal.NewFromInt(5), 5},
		{"Large balance", decimal.NewFromInt(1000), 100},
		{"Exactly 100", decimal.NewFromInt(100), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RealDefaults(tt.balance)
			assert.Equal(t, Assets[0], cfg.Asset)
			assert.Equal(t, tt.stake, cfg.Stake)
			assert.Equal(t, game.Long, cfg.Direction)
			assert.Equal(t, 5, cfg.Leverage)
			assert.Equal(t, 50.0, cfg.TakeProfitPercent)
			assert.Equal(t, 20.0, cfg.StopLossPercent)
		})
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{Min: 1, Max: 10}
	assert.Equal(t, 1, r.Clamp(-3))
	assert.Equal(t, 10, r.Clamp(11))
	assert.Equal(t, 7, r.Clamp(7))
}

func TestPreviewPositionReachesEveryAsset(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := make(map[string]bool)

	for i := 0; i < 500; i++ {
		cfg := PreviewPosition(rng)
		require.NoError(t, cfg.Validate())
		seen[cfg.Asset] = true
	}

	assert.Len(t, seen, len(Assets))
}
