package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestRound(t *testing.T, cfg PositionConfig, opts RoundOptions) *Round {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Logger == nil {
		opts.Logger = zaptest.NewLogger(t)
	}
	r, err := NewRound(cfg, opts)
	require.NoError(t, err)
	return r
}

// wideConfig keeps TP/SL far away so only the timer or a manual stop can end the round.
func wideConfig() PositionConfig {
	return PositionConfig{Asset: "BTC/USDT", Stake: 1000, Direction: Long, Leverage: 1, TakeProfitPercent: 90, StopLossPercent: 90}
}

func TestNewRound_ValidatesInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PositionConfig)
		wantErr error
	}{
		{"empty asset", func(c *PositionConfig) { c.Asset = "" }, ErrInvalidAsset},
		{"zero stake", func(c *PositionConfig) { c.Stake = 0 }, ErrInvalidStake},
		{"zero leverage", func(c *PositionConfig) { c.Leverage = 0 }, ErrInvalidLeverage},
		{"leverage above max", func(c *PositionConfig) { c.Leverage = MaxLeverage + 1 }, ErrInvalidLeverage},
		{"negative tp", func(c *PositionConfig) { c.TakeProfitPercent = -1 }, ErrInvalidTakeProfit},
		{"zero sl", func(c *PositionConfig) { c.StopLossPercent = 0 }, ErrInvalidStopLoss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := longConfig()
			tt.mutate(&cfg)
			_, err := NewRound(cfg, RoundOptions{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := NewRound(longConfig(), RoundOptions{EntryPrice: -5})
	assert.ErrorIs(t, err, ErrInvalidEntryPrice)
}

func TestRound_InitialState(t *testing.T) {
	r := newTestRound(t, longConfig(), RoundOptions{})

	snap := r.Snapshot()
	assert.NotEmpty(t, r.ID())
	assert.Equal(t, DefaultEntryPrice, snap.EntryPrice)
	assert.Equal(t, DefaultEntryPrice, snap.Price)
	assert.Equal(t, DefaultRoundDuration, snap.Remaining)
	assert.InDelta(t, 11000, snap.TakeProfitPrice, 1e-6)
	assert.InDelta(t, 9500, snap.StopLossPrice, 1e-6)
	assert.False(t, snap.Finished)

	history := r.History()
	require.Len(t, history, 1)
	assert.Equal(t, DefaultEntryPrice, history[0].Price)
}

func TestRound_TickAppendsHistory(t *testing.T) {
	r := newTestRound(t, wideConfig(), RoundOptions{})

	for i := 0; i < 25; i++ {
		r.Tick()
		history := r.History()
		require.Len(t, history, i+2)
		assert.Equal(t, r.Snapshot().Price, history[len(history)-1].Price, "last sample is the current price")
	}

	// History is append-only: earlier samples never change.
	before := r.History()
	r.Tick()
	after := r.History()
	assert.Equal(t, before, after[:len(before)])

	// Triggers do not move while the round runs.
	assert.InDelta(t, 19000, r.Triggers().TakeProfit, 1e-6)
	assert.InDelta(t, 1000, r.Triggers().StopLoss, 1e-6)
}

func TestRound_TakeProfitEndsRound(t *testing.T) {
	var finished []RoundResult
	r := newTestRound(t, longConfig(), RoundOptions{
		OnFinish: func(_ string, res RoundResult) { finished = append(finished, res) },
	})

	r.mu.Lock()
	_, res := r.applyLocked(r.Triggers().TakeProfit)
	r.mu.Unlock()
	require.NotNil(t, res)
	r.notify(r.Snapshot(), res)

	got, ok := r.Result()
	require.True(t, ok)
	assert.Equal(t, WinSmall, got.Type)
	assert.InDelta(t, 200, got.PnLAmount, 1e-6)

	select {
	case <-r.Done():
	default:
		t.Fatal("done channel should be closed")
	}

	ticksBefore := r.Snapshot().Ticks
	r.Tick()
	r.CountdownTick()
	_, stopped := r.Stop()
	assert.False(t, stopped)
	assert.Equal(t, ticksBefore, r.Snapshot().Ticks)
	assert.Len(t, finished, 1)
}

func TestRound_StopOnce(t *testing.T) {
	var calls int32
	r := newTestRound(t, wideConfig(), RoundOptions{
		OnFinish: func(string, RoundResult) { atomic.AddInt32(&calls, 1) },
	})

	r.Tick()
	res, ok := r.Stop()
	require.True(t, ok)
	assert.Equal(t, ReasonManual, res.Reason)

	again, ok := r.Stop()
	assert.False(t, ok)
	assert.Equal(t, res, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRound_CountdownTimeout(t *testing.T) {
	r := newTestRound(t, wideConfig(), RoundOptions{Duration: 3 * time.Second})

	r.CountdownTick()
	r.CountdownTick()
	_, ok := r.Result()
	assert.False(t, ok)
	assert.Equal(t, time.Second, r.Snapshot().Remaining)

	r.CountdownTick()
	res, ok := r.Result()
	require.True(t, ok)
	assert.Equal(t, ReasonTimeout, res.Reason)
	assert.Equal(t, time.Duration(0), r.Snapshot().Remaining)
}

func TestRound_EveryEndingSendsFinishedSnapshot(t *testing.T) {
	tests := []struct {
		name   string
		end    func(*Round)
		reason EndReason
	}{
		{"manual close", func(r *Round) { r.Stop() }, ReasonManual},
		{"timeout", func(r *Round) { r.CountdownTick() }, ReasonTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var snaps []Snapshot
			var order []string
			r := newTestRound(t, wideConfig(), RoundOptions{
				Duration: time.Second,
				OnTick: func(s Snapshot) {
					snaps = append(snaps, s)
					order = append(order, "tick")
				},
				OnFinish: func(string, RoundResult) { order = append(order, "finish") },
			})

			r.Tick()
			tt.end(r)

			require.Len(t, snaps, 2)
			last := snaps[1]
			assert.True(t, last.Finished)
			assert.Equal(t, r.ID(), last.RoundID)
			assert.Equal(t, []string{"tick", "tick", "finish"}, order)

			res, ok := r.Result()
			require.True(t, ok)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestRound_ConcurrentDriversProduceOneResult(t *testing.T) {
	var calls int32
	r := newTestRound(t, wideConfig(), RoundOptions{
		Duration: 50 * time.Second,
		OnFinish: func(string, RoundResult) { atomic.AddInt32(&calls, 1) },
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Tick()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.CountdownTick()
			}
		}()
		go func() {
			defer wg.Done()
			r.Stop()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	_, ok := r.Result()
	assert.True(t, ok)
}

func TestRound_RunUntilTimeout(t *testing.T) {
	var ticks int32
	r := newTestRound(t, wideConfig(), RoundOptions{
		Duration:          3 * time.Second,
		TickInterval:      time.Millisecond,
		CountdownInterval: 5 * time.Millisecond,
		OnTick:            func(Snapshot) { atomic.AddInt32(&ticks, 1) },
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, r.Run(ctx))

	res, err := r.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReasonTimeout, res.Reason)
	assert.Greater(t, atomic.LoadInt32(&ticks), int32(0))

	// Both tickers are gone: nothing moves after Run returned.
	count := r.Snapshot().Ticks
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, count, r.Snapshot().Ticks)

	assert.ErrorIs(t, r.Run(ctx), ErrAlreadyRunning)
}

func TestRound_RunStopsOnManualClose(t *testing.T) {
	r := newTestRound(t, wideConfig(), RoundOptions{TickInterval: time.Millisecond})

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	_, ok := r.Stop()
	require.True(t, ok)

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestRound_RunCancelledByContext(t *testing.T) {
	r := newTestRound(t, wideConfig(), RoundOptions{TickInterval: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	_, ok := r.Result()
	assert.False(t, ok, "cancellation alone does not produce a result")

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer waitCancel()
	_, err := r.Wait(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
