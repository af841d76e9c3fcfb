// internal/game/simulator.go
package game

import (
	"math/rand"
	"time"
)

const (
	// DefaultVolatility bounds the random force applied on every tick.
	DefaultVolatility = 20.0

	momentumDecay = 0.7
	forceWeight   = 0.3
)

// Step advances the random walk by one tick.
// momentum' = momentum*0.7 + force*0.3, price' = price + momentum'.
func Step(price, momentum, force float64) (nextPrice, nextMomentum float64) {
	nextMomentum = momentum*momentumDecay + force*forceWeight
	return price + nextMomentum, nextMomentum
}

// Walker produces a bounded-momentum random walk.
// Not safe for concurrent use; Round serializes access to it.
type Walker struct {
	rng        *rand.Rand
	volatility float64
	price      float64
	momentum   float64
}

// NewWalker creates a walker starting at price with zero momentum.
// A nil rng falls back to a time-seeded source.
func NewWalker(price, volatility float64, rng *rand.Rand) *Walker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if volatility <= 0 {
		volatility = DefaultVolatility
	}
	return &Walker{
		rng:        rng,
		volatility: volatility,
		price:      price,
	}
}

// Draw returns a uniform force in [-volatility, +volatility].
func (w *Walker) Draw() float64 {
	return (w.rng.Float64() - 0.5) * 2 * w.volatility
}

// Next advances the walk and returns the new price.
func (w *Walker) Next() float64 {
	w.price, w.momentum = Step(w.price, w.momentum, w.Draw())
	return w.price
}

// Price returns the current price of the walk
func (w *Walker) Price() float64 {
	return w.price
}

// Momentum returns the current smoothed velocity
func (w *Walker) Momentum() float64 {
	return w.momentum
}

// Volatility returns the force bound
func (w *Walker) Volatility() float64 {
	return w.volatility
}
