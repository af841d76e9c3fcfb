package ui

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/tryluck/internal/game"
)

// SnapshotThrottler limits how often round snapshots reach the UI.
// Intermediate snapshots inside the interval are coalesced; a finished
// snapshot is always forwarded.
type SnapshotThrottler struct {
	mu        sync.Mutex
	interval  time.Duration
	last      time.Time
	sender    *UpdateSender
	clock     func() time.Time
	logger    *zap.Logger
	sent      uint64
	throttled uint64
}

// NewSnapshotThrottler creates a throttler in front of sender
func NewSnapshotThrottler(sender *UpdateSender, interval time.Duration, logger *zap.Logger) *SnapshotThrottler {
	return &SnapshotThrottler{
		interval: interval,
		sender:   sender,
		clock:    time.Now,
		logger:   logger,
	}
}

// Send forwards snap unless another one went out less than interval ago.
// It matches game.TickFunc.
func (t *SnapshotThrottler) Send(snap game.Snapshot) {
	t.mu.Lock()
	now := t.clock()
	if !snap.Finished && now.Sub(t.last) < t.interval {
		t.throttled++
		t.mu.Unlock()
		return
	}
	t.last = now
	t.sent++
	sent, throttled := t.sent, t.throttled
	t.mu.Unlock()

	if snap.Finished {
		t.logger.Debug("Snapshot throttle statistics",
			zap.String("round_id", snap.RoundID),
			zap.Uint64("sent", sent),
			zap.Uint64("throttled", throttled))
	}

	t.sender.SendSnapshot(snap)
}

// Stats returns how many snapshots were forwarded and coalesced
func (t *SnapshotThrottler) Stats() (sent, throttled uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sent, t.throttled
}
