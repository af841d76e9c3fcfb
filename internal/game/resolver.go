// internal/game/resolver.go
package game

// BigWinPercent is the PnL percent a win must exceed to count as WIN_BIG.
const BigWinPercent = 50.0

// Evaluation is the per-tick PnL and trigger state for a price.
type Evaluation struct {
	PnLAmount     float64
	PnLPercent    float64
	HitTakeProfit bool
	HitStopLoss   bool
}

// Evaluate computes leveraged PnL and trigger hits for the current price.
// PnLAmount and PnLPercent derive from the same leveraged return, so they share a sign.
func Evaluate(cfg PositionConfig, triggers Triggers, entry, price float64) Evaluation {
	priceDiff := (price - entry) / entry
	raw := priceDiff
	if cfg.Direction == Short {
		raw = -priceDiff
	}
	leveraged := raw * float64(cfg.Leverage)

	ev := Evaluation{
		PnLAmount:  cfg.Stake * leveraged,
		PnLPercent: leveraged * 100,
	}

	if cfg.Direction == Short {
		ev.HitTakeProfit = price <= triggers.TakeProfit
		ev.HitStopLoss = price >= triggers.StopLoss
	} else {
		ev.HitTakeProfit = price >= triggers.TakeProfit
		ev.HitStopLoss = price <= triggers.StopLoss
	}
	return ev
}

// Classify maps a final PnL to a result type.
// Zero or negative amount is a loss; a win above 50% (strictly) is big.
func Classify(pnlAmount, pnlPercent float64) ResultType {
	if pnlAmount <= 0 {
		return Loss
	}
	if pnlPercent > BigWinPercent {
		return WinBig
	}
	return WinSmall
}

// Resolver decides when a round ends. The first terminal decision latches;
// every later call returns nil.
type Resolver struct {
	cfg      PositionConfig
	triggers Triggers
	entry    float64

	last   Evaluation
	result *RoundResult
}

// NewResolver creates a resolver for a round
func NewResolver(cfg PositionConfig, triggers Triggers, entry float64) *Resolver {
	return &Resolver{
		cfg:      cfg,
		triggers: triggers,
		entry:    entry,
	}
}

// Observe evaluates a new price. It returns a result if this price ends the round.
// A tick crossing both levels resolves as take profit.
func (r *Resolver) Observe(price float64) (Evaluation, *RoundResult) {
	if r.result != nil {
		return r.last, nil
	}

	ev := Evaluate(r.cfg, r.triggers, r.entry, price)
	r.last = ev

	switch {
	case ev.HitTakeProfit:
		return ev, r.finish(ReasonTakeProfit)
	case ev.HitStopLoss:
		return ev, r.finish(ReasonStopLoss)
	}
	return ev, nil
}

// Timeout ends the round with the last computed PnL.
func (r *Resolver) Timeout() *RoundResult {
	if r.result != nil {
		return nil
	}
	return r.finish(ReasonTimeout)
}

// Close ends the round at the user's request with the last computed PnL.
func (r *Resolver) Close() *RoundResult {
	if r.result != nil {
		return nil
	}
	return r.finish(ReasonManual)
}

// Last returns the most recent evaluation
func (r *Resolver) Last() Evaluation {
	return r.last
}

// Result returns the terminal result, if any
func (r *Resolver) Result() (RoundResult, bool) {
	if r.result == nil {
		return RoundResult{}, false
	}
	return *r.result, true
}

// Finished reports whether a terminal result was produced
func (r *Resolver) Finished() bool {
	return r.result != nil
}

func (r *Resolver) finish(reason EndReason) *RoundResult {
	r.result = &RoundResult{
		Type:       Classify(r.last.PnLAmount, r.last.PnLPercent),
		PnLAmount:  r.last.PnLAmount,
		PnLPercent: r.last.PnLPercent,
		Reason:     reason,
	}
	res := *r.result
	return &res
}
