package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/tryluck/internal/game"
)

func finishedEvent(id string) RoundFinishedEvent {
	return RoundFinishedEvent{
		BaseEvent: NewBase(RoundFinished),
		RoundID:   id,
		Result:    game.RoundResult{Type: game.WinSmall, PnLAmount: 10, PnLPercent: 10, Reason: game.ReasonTakeProfit},
	}
}

func TestBusPublishDeliversToSubscribers(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 16)
	defer bus.Shutdown(context.Background())

	var got atomic.Int32
	bus.SubscribeFunc(RoundFinished, func(ctx context.Context, e Event) error {
		ev, ok := e.(RoundFinishedEvent)
		if ok && ev.RoundID == "r1" {
			got.Add(1)
		}
		return nil
	})
	bus.SubscribeFunc(BalanceChanged, func(ctx context.Context, e Event) error {
		t.Errorf("unexpected delivery of %s", e.Type())
		return nil
	})

	require.NoError(t, bus.Publish(finishedEvent("r1")))
	assert.Eventually(t, func() bool { return got.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestBusPublishSyncJoinsHandlerErrors(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 4)
	defer bus.Shutdown(context.Background())

	errBoom := errors.New("boom")
	bus.SubscribeFunc(RoundFinished, func(context.Context, Event) error { return errBoom })
	bus.SubscribeFunc(RoundFinished, func(context.Context, Event) error { return nil })

	err := bus.PublishSync(context.Background(), finishedEvent("r2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 4)
	defer bus.Shutdown(context.Background())

	var calls int
	sub := bus.SubscribeFunc(ModeChanged, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.PublishSync(context.Background(), ModeChangedEvent{BaseEvent: NewBase(ModeChanged), Mode: "real"}))
	sub.Unsubscribe()
	require.NoError(t, bus.PublishSync(context.Background(), ModeChangedEvent{BaseEvent: NewBase(ModeChanged), Mode: "fun"}))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Stats()["event_types"])
}

func TestBusPublishAfterShutdown(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 4)
	require.NoError(t, bus.Shutdown(context.Background()))

	err := bus.Publish(finishedEvent("r3"))
	assert.ErrorIs(t, err, ErrBusClosed)
}

func TestBusPublishWithRetryWaitsForRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// No dispatcher: the queue only drains when the test reads it.
	bus := &Bus{
		handlers:  make(map[EventType]map[string]Handler),
		logger:    zaptest.NewLogger(t),
		ctx:       ctx,
		cancel:    cancel,
		eventChan: make(chan Event, 1),
	}
	require.NoError(t, bus.Publish(finishedEvent("first")))
	assert.ErrorIs(t, bus.Publish(finishedEvent("dropped")), ErrBufferFull)

	go func() {
		time.Sleep(20 * time.Millisecond)
		<-bus.eventChan
	}()

	require.NoError(t, bus.PublishWithRetry(context.Background(), finishedEvent("second"), time.Second))
	ev := (<-bus.eventChan).(RoundFinishedEvent)
	assert.Equal(t, "second", ev.RoundID)
}

func TestBusPublishWithRetryStopsWhenClosed(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 4)
	require.NoError(t, bus.Shutdown(context.Background()))

	start := time.Now()
	err := bus.PublishWithRetry(context.Background(), finishedEvent("late"), time.Second)
	assert.ErrorIs(t, err, ErrBusClosed)
	assert.Less(t, time.Since(start), 500*time.Millisecond, "closed bus is not retried")
}

func TestBaseEvent(t *testing.T) {
	before := time.Now()
	base := NewBase(RoundStarted)
	assert.Equal(t, RoundStarted, base.Type())
	assert.False(t, base.Timestamp().Before(before))
}
