// internal/game/round.go
package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultEntryPrice        = 10000.0
	DefaultRoundDuration     = time.Hour
	DefaultTickInterval      = 100 * time.Millisecond
	DefaultCountdownInterval = time.Second

	// countdownStep is the game time removed from the clock on every countdown tick.
	countdownStep = time.Second
)

// ErrAlreadyRunning is returned when Run is called twice on the same round.
var ErrAlreadyRunning = errors.New("round is already running")

// TickFunc receives a snapshot after every price tick.
type TickFunc func(Snapshot)

// FinishFunc receives the terminal result of a round. Called exactly once.
type FinishFunc func(roundID string, result RoundResult)

// RoundOptions configures a round. Zero values fall back to defaults.
type RoundOptions struct {
	EntryPrice        float64
	Volatility        float64
	Duration          time.Duration // game time on the countdown
	TickInterval      time.Duration // wall time between price ticks
	CountdownInterval time.Duration // wall time between countdown ticks
	Rand              *rand.Rand
	Clock             func() time.Time
	Logger            *zap.Logger
	OnTick            TickFunc
	OnFinish          FinishFunc
}

func (o *RoundOptions) applyDefaults() {
	if o.EntryPrice == 0 {
		o.EntryPrice = DefaultEntryPrice
	}
	if o.Volatility <= 0 {
		o.Volatility = DefaultVolatility
	}
	if o.Duration <= 0 {
		o.Duration = DefaultRoundDuration
	}
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.CountdownInterval <= 0 {
		o.CountdownInterval = DefaultCountdownInterval
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Round is one simulated position from entry to result.
// All mutable state is owned by the round and guarded by mu; the price
// ticker and the countdown ticker both go through it.
type Round struct {
	id       string
	cfg      PositionConfig
	entry    float64
	triggers Triggers

	tickInterval      time.Duration
	countdownInterval time.Duration
	clock             func() time.Time
	logger            *zap.Logger
	onTick            TickFunc
	onFinish          FinishFunc

	mu        sync.Mutex
	walker    *Walker
	resolver  *Resolver
	remaining time.Duration
	history   []PriceSample
	ticks     int
	done      chan struct{}

	running atomic.Bool
}

// NewRound validates the position and prepares a round at the entry price.
// Triggers are fixed here and never recomputed.
func NewRound(cfg PositionConfig, opts RoundOptions) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()
	if opts.EntryPrice <= 0 {
		return nil, ErrInvalidEntryPrice
	}

	triggers := ComputeTriggers(opts.EntryPrice, cfg)
	id := uuid.New().String()

	r := &Round{
		id:                id,
		cfg:               cfg,
		entry:             opts.EntryPrice,
		triggers:          triggers,
		tickInterval:      opts.TickInterval,
		countdownInterval: opts.CountdownInterval,
		clock:             opts.Clock,
		logger:            opts.Logger.Named("round").With(zap.String("round_id", id)),
		onTick:            opts.OnTick,
		onFinish:          opts.OnFinish,
		walker:            NewWalker(opts.EntryPrice, opts.Volatility, opts.Rand),
		resolver:          NewResolver(cfg, triggers, opts.EntryPrice),
		remaining:         opts.Duration,
		done:              make(chan struct{}),
	}
	r.history = append(r.history, PriceSample{Time: r.clock(), Price: opts.EntryPrice})

	r.logger.Info("Round created",
		zap.String("asset", cfg.Asset),
		zap.String("direction", cfg.Direction.String()),
		zap.Int("leverage", cfg.Leverage),
		zap.Float64("stake", cfg.Stake),
		zap.Float64("entry_price", opts.EntryPrice),
		zap.Float64("tp_price", triggers.TakeProfit),
		zap.Float64("sl_price", triggers.StopLoss))

	return r, nil
}

// Run drives the round with two tickers until it finishes or ctx is cancelled.
// Both tickers are stopped before Run returns.
func (r *Round) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.loop(gCtx, r.tickInterval, r.Tick)
	})
	g.Go(func() error {
		return r.loop(gCtx, r.countdownInterval, r.CountdownTick)
	})

	err := g.Wait()
	if err != nil {
		r.logger.Debug("Round loop cancelled", zap.Error(err))
		return err
	}
	r.logger.Debug("Round loop stopped")
	return nil
}

func (r *Round) loop(ctx context.Context, interval time.Duration, fn func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn()
		}
	}
}

// Tick advances the price by one random-walk step and evaluates it.
func (r *Round) Tick() {
	r.mu.Lock()
	if r.resolver.Finished() {
		r.mu.Unlock()
		return
	}
	price := r.walker.Next()
	snap, res := r.applyLocked(price)
	r.mu.Unlock()

	r.notify(snap, res)
}

// applyLocked records price as the new current price. mu must be held.
func (r *Round) applyLocked(price float64) (Snapshot, *RoundResult) {
	r.history = append(r.history, PriceSample{Time: r.clock(), Price: price})
	r.ticks++

	_, res := r.resolver.Observe(price)
	if res != nil {
		close(r.done)
	}
	return r.snapshotLocked(), res
}

// CountdownTick removes one second from the clock; at zero the round times out.
func (r *Round) CountdownTick() {
	r.mu.Lock()
	if r.resolver.Finished() {
		r.mu.Unlock()
		return
	}

	r.remaining -= countdownStep
	if r.remaining > 0 {
		r.mu.Unlock()
		return
	}
	r.remaining = 0
	res := r.resolver.Timeout()
	close(r.done)
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(snap, res)
}

// Stop closes the position at the last computed PnL.
// It returns false if the round had already finished.
func (r *Round) Stop() (RoundResult, bool) {
	r.mu.Lock()
	res := r.resolver.Close()
	if res == nil {
		r.mu.Unlock()
		out, _ := r.Result()
		return out, false
	}
	close(r.done)
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(snap, res)
	return *res, true
}

// Wait blocks until the round finishes or ctx is done.
func (r *Round) Wait(ctx context.Context) (RoundResult, error) {
	select {
	case <-r.done:
		res, _ := r.Result()
		return res, nil
	case <-ctx.Done():
		return RoundResult{}, ctx.Err()
	}
}

// notify publishes snap and, when res is set, the final result. Every way of
// ending a round passes through here, so the last snapshot is always Finished.
func (r *Round) notify(snap Snapshot, res *RoundResult) {
	if r.onTick != nil {
		r.onTick(snap)
	}
	if res != nil {
		r.finish(*res)
	}
}

func (r *Round) finish(res RoundResult) {
	r.logger.Info("Round finished",
		zap.String("result", res.Type.String()),
		zap.String("reason", string(res.Reason)),
		zap.Float64("pnl", res.PnLAmount),
		zap.Float64("pnl_percent", res.PnLPercent))

	if r.onFinish != nil {
		r.onFinish(r.id, res)
	}
}

// ID returns the round identifier
func (r *Round) ID() string {
	return r.id
}

// Config returns the position of the round
func (r *Round) Config() PositionConfig {
	return r.cfg
}

// EntryPrice returns the fixed entry price
func (r *Round) EntryPrice() float64 {
	return r.entry
}

// Triggers returns the fixed TP/SL levels
func (r *Round) Triggers() Triggers {
	return r.triggers
}

// Done is closed when the round produces its result.
func (r *Round) Done() <-chan struct{} {
	return r.done
}

// Result returns the terminal result once the round has finished
func (r *Round) Result() (RoundResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolver.Result()
}

// History returns a copy of the price samples recorded so far
func (r *Round) History() []PriceSample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]PriceSample, len(r.history))
	copy(out, r.history)
	return out
}

// Snapshot returns the current state of the round
func (r *Round) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Round) snapshotLocked() Snapshot {
	ev := r.resolver.Last()
	return Snapshot{
		RoundID:         r.id,
		Config:          r.cfg,
		EntryPrice:      r.entry,
		Price:           r.history[len(r.history)-1].Price,
		PnLAmount:       ev.PnLAmount,
		PnLPercent:      ev.PnLPercent,
		TakeProfitPrice: r.triggers.TakeProfit,
		StopLossPrice:   r.triggers.StopLoss,
		Remaining:       r.remaining,
		Ticks:           r.ticks,
		Finished:        r.resolver.Finished(),
	}
}
