package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/tryluck/internal/game"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// StartRoundMsg asks the app to open a round for the given position
type StartRoundMsg struct {
	Config game.PositionConfig
}

// PriceTickMsg carries a snapshot of a running round after a price tick
type PriceTickMsg struct {
	Snapshot game.Snapshot
}

// RoundEndedMsg is emitted once when a round produces its result
type RoundEndedMsg struct {
	Round  *game.Round
	Result game.RoundResult
}

// LanguageChangedMsg is broadcast to the active screen after a language toggle
type LanguageChangedMsg struct{}

// ErrorMsg represents error conditions
type ErrorMsg struct {
	Error error
	Title string
}

// Event Bus for UI communication
var (
	// Bus is the global event bus for UI communication
	Bus = make(chan tea.Msg, 1024)
)

// PublishError publishes an error message to the UI bus
func PublishError(err error, title string) {
	select {
	case Bus <- ErrorMsg{Error: err, Title: title}:
	default:
		// Bus is full, drop the error
	}
}

// ListenBus returns a tea.Cmd that listens to the event bus
func ListenBus() tea.Cmd {
	return func() tea.Msg {
		return <-Bus
	}
}

// Route represents different screens in the application
type Route int

const (
	RouteWelcome Route = iota
	RouteSetupFun
	RouteSetupReal
	RouteGame
	RouteResult
	RouteInvite
	RouteDeposit
	RouteBack
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteWelcome:
		return "welcome"
	case RouteSetupFun:
		return "setup_fun"
	case RouteSetupReal:
		return "setup_real"
	case RouteGame:
		return "game"
	case RouteResult:
		return "result"
	case RouteInvite:
		return "invite"
	case RouteDeposit:
		return "deposit"
	case RouteBack:
		return "back"
	default:
		return "unknown"
	}
}

// Navigate returns a command that emits a RouterMsg
func Navigate(route Route) tea.Cmd {
	return func() tea.Msg {
		return RouterMsg{To: route}
	}
}
