// internal/game/thresholds.go
package game

// Triggers holds the absolute take-profit and stop-loss prices of a round.
type Triggers struct {
	TakeProfit float64
	StopLoss   float64
}

// ComputeTriggers converts TP/SL percentages of the stake into price levels.
// Leverage shrinks the price move needed to reach a given PnL percent.
// Leverage must be positive; PositionConfig.Validate enforces it.
func ComputeTriggers(entry float64, cfg PositionConfig) Triggers {
	lev := float64(cfg.Leverage)
	rTP := (cfg.TakeProfitPercent / 100) / lev
	rSL := (cfg.StopLossPercent / 100) / lev

	if cfg.Direction == Short {
		return Triggers{
			TakeProfit: entry * (1 - rTP),
			StopLoss:   entry * (1 + rSL),
		}
	}
	return Triggers{
		TakeProfit: entry * (1 + rTP),
		StopLoss:   entry * (1 - rSL),
	}
}
