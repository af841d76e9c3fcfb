// internal/events/types.go
package events

import (
	"time"

	"github.com/rovshanmuradov/tryluck/internal/game"
)

// EventType represents the type of event.
type EventType string

const (
	// Round events
	RoundStarted  EventType = "round.started"
	RoundFinished EventType = "round.finished"

	// Session events
	BalanceChanged EventType = "balance.changed"
	ModeChanged    EventType = "mode.changed"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	EventType EventType
	EventTime time.Time
}

// NewBase stamps an event header with the current time.
func NewBase(t EventType) BaseEvent {
	return BaseEvent{EventType: t, EventTime: time.Now()}
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

// RoundStartedEvent is emitted when a position is opened.
type RoundStartedEvent struct {
	BaseEvent
	RoundID    string
	Mode       string
	Config     game.PositionConfig
	EntryPrice float64
	Triggers   game.Triggers
}

// RoundFinishedEvent is emitted once per round after it is settled.
type RoundFinishedEvent struct {
	BaseEvent
	RoundID    string
	Mode       string
	Config     game.PositionConfig
	EntryPrice float64
	ExitPrice  float64
	Ticks      int
	Result     game.RoundResult
	Balance    string // balance after settlement, decimal string
}

// BalanceChangedEvent is emitted when the session balance changes.
type BalanceChangedEvent struct {
	BaseEvent
	OldBalance string
	NewBalance string
	Reason     string // "settle", "deposit", "experience"
}

// ModeChangedEvent is emitted when the session switches between modes.
type ModeChangedEvent struct {
	BaseEvent
	Mode string
}
