// Package session owns the user-facing state of a play session: mode,
// language and the running balance.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/tryluck/internal/events"
	"github.com/rovshanmuradov/tryluck/internal/game"
	"github.com/rovshanmuradov/tryluck/internal/locale"
)

var (
	ErrRealModeLocked      = errors.New("real mode is locked")
	ErrInsufficientBalance = errors.New("stake exceeds balance")
	ErrInvalidDeposit      = errors.New("deposit amount must be positive")
	ErrAlreadySettled      = errors.New("round already settled")
	ErrRoundNotFinished    = errors.New("round has not finished")
)

// publishRetryLimit bounds how long a finished round waits for room on the bus.
const publishRetryLimit = 500 * time.Millisecond

// ExperienceGold is the balance granted when real mode is unlocked.
var ExperienceGold = decimal.NewFromInt(5)

// Mode is the play mode of the session.
type Mode int

const (
	Entertainment Mode = iota
	Real
)

func (m Mode) String() string {
	if m == Real {
		return "real"
	}
	return "entertainment"
}

// UserState is the user-visible account state
type UserState struct {
	HasWonOnce          bool
	Balance             decimal.Decimal
	RealModeUnlocked    bool
	UsingExperienceGold bool
}

// FinishedRound is the view of a round the controller needs to settle it.
type FinishedRound interface {
	ID() string
	Config() game.PositionConfig
	EntryPrice() float64
	Result() (game.RoundResult, bool)
	Snapshot() game.Snapshot
}

// Controller is the single owner of session state. All transitions go through
// its methods; it is safe for concurrent use.
type Controller struct {
	mu      sync.RWMutex
	state   UserState
	mode    Mode
	lang    locale.Language
	settled map[string]struct{}

	bus    *events.Bus
	logger *zap.Logger
}

// NewController creates a session in entertainment mode with a zero balance.
// bus may be nil.
func NewController(lang locale.Language, bus *events.Bus, logger *zap.Logger) *Controller {
	return &Controller{
		state:   UserState{Balance: decimal.Zero},
		mode:    Entertainment,
		lang:    lang,
		settled: make(map[string]struct{}),
		bus:     bus,
		logger:  logger.Named("session"),
	}
}

// State returns a copy of the user state
func (c *Controller) State() UserState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Mode returns the current play mode
func (c *Controller) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Language returns the current UI language
func (c *Controller) Language() locale.Language {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lang
}

// ToggleLanguage switches between Chinese and English and returns the new language.
func (c *Controller) ToggleLanguage() locale.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lang = c.lang.Toggle()
	return c.lang
}

// StartEntertainment switches to entertainment mode. Always allowed.
func (c *Controller) StartEntertainment() {
	c.setMode(Entertainment)
}

// StartReal switches to real mode once it has been unlocked.
func (c *Controller) StartReal() error {
	c.mu.RLock()
	unlocked := c.state.RealModeUnlocked
	c.mu.RUnlock()

	if !unlocked {
		return ErrRealModeLocked
	}
	c.setMode(Real)
	return nil
}

func (c *Controller) setMode(m Mode) {
	c.mu.Lock()
	changed := c.mode != m
	c.mode = m
	c.mu.Unlock()

	if changed {
		c.logger.Debug("Mode changed", zap.String("mode", m.String()))
		c.publish(events.ModeChangedEvent{BaseEvent: events.NewBase(events.ModeChanged), Mode: m.String()})
	}
}

// ClaimExperience grants the experience gold, unlocks real mode and switches to it.
func (c *Controller) ClaimExperience() {
	c.mu.Lock()
	old := c.state.Balance
	c.state.Balance = ExperienceGold
	c.state.RealModeUnlocked = true
	c.state.UsingExperienceGold = true
	c.mu.Unlock()

	c.logger.Info("Experience gold claimed", zap.String("balance", ExperienceGold.String()))
	c.balanceChanged(old, ExperienceGold, "experience")
	c.setMode(Real)
}

// Deposit adds amount to the balance.
func (c *Controller) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidDeposit
	}

	c.mu.Lock()
	old := c.state.Balance
	c.state.Balance = old.Add(amount)
	updated := c.state.Balance
	c.mu.Unlock()

	c.logger.Info("Deposit received", zap.String("amount", amount.String()))
	c.balanceChanged(old, updated, "deposit")
	return nil
}

// PrepareRound validates a position for the current mode. In real mode the
// stake may not exceed the balance.
func (c *Controller) PrepareRound(cfg game.PositionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.mode == Real && decimal.NewFromFloat(cfg.Stake).GreaterThan(c.state.Balance) {
		return fmt.Errorf("%w: stake %.2f, balance %s", ErrInsufficientBalance, cfg.Stake, c.state.Balance.StringFixed(2))
	}
	return nil
}

// OpenRound validates cfg and creates a round for it.
func (c *Controller) OpenRound(cfg game.PositionConfig, opts game.RoundOptions) (*game.Round, error) {
	if err := c.PrepareRound(cfg); err != nil {
		return nil, err
	}

	if opts.Logger == nil {
		opts.Logger = c.logger
	}
	r, err := game.NewRound(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open round: %w", err)
	}

	c.publish(events.RoundStartedEvent{
		BaseEvent:  events.NewBase(events.RoundStarted),
		RoundID:    r.ID(),
		Mode:       c.Mode().String(),
		Config:     cfg,
		EntryPrice: r.EntryPrice(),
		Triggers:   r.Triggers(),
	})
	return r, nil
}

// Settle applies a finished round to the session exactly once. Any win marks
// HasWonOnce. The balance moves by the PnL only in real mode: entertainment
// rounds are free play and never credit or debit the balance, so fun winnings
// cannot be carried into real mode.
func (c *Controller) Settle(r FinishedRound) (game.RoundResult, error) {
	res, ok := r.Result()
	if !ok {
		return game.RoundResult{}, ErrRoundNotFinished
	}

	c.mu.Lock()
	if _, done := c.settled[r.ID()]; done {
		c.mu.Unlock()
		return res, ErrAlreadySettled
	}
	c.settled[r.ID()] = struct{}{}

	if res.Type.IsWin() {
		c.state.HasWonOnce = true
	}

	mode := c.mode
	old := c.state.Balance
	if mode == Real {
		c.state.Balance = old.Add(decimal.NewFromFloat(res.PnLAmount))
	}
	updated := c.state.Balance
	c.mu.Unlock()

	c.logger.Info("Round settled",
		zap.String("round_id", r.ID()),
		zap.String("mode", mode.String()),
		zap.String("result", res.Type.String()),
		zap.Float64("pnl", res.PnLAmount),
		zap.String("balance", updated.StringFixed(2)))

	if !updated.Equal(old) {
		c.balanceChanged(old, updated, "settle")
	}

	snap := r.Snapshot()
	c.publish(events.RoundFinishedEvent{
		BaseEvent:  events.NewBase(events.RoundFinished),
		RoundID:    r.ID(),
		Mode:       mode.String(),
		Config:     r.Config(),
		EntryPrice: r.EntryPrice(),
		ExitPrice:  snap.Price,
		Ticks:      snap.Ticks,
		Result:     res,
		Balance:    updated.StringFixed(2),
	})

	return res, nil
}

func (c *Controller) balanceChanged(old, updated decimal.Decimal, reason string) {
	c.logger.Info("Balance changed",
		zap.String("balance", updated.StringFixed(2)),
		zap.String("reason", reason))

	c.publish(events.BalanceChangedEvent{
		BaseEvent:  events.NewBase(events.BalanceChanged),
		OldBalance: old.StringFixed(2),
		NewBalance: updated.StringFixed(2),
		Reason:     reason,
	})
}

func (c *Controller) publish(e events.Event) {
	if c.bus == nil {
		return
	}
	if e.Type() == events.RoundFinished {
		// The journal depends on every finished round.
		_ = c.bus.PublishWithRetry(context.Background(), e, publishRetryLimit)
		return
	}
	if err := c.bus.Publish(e); err != nil {
		c.logger.Warn("Failed to publish event",
			zap.String("event_type", string(e.Type())),
			zap.Error(err))
	}
}
