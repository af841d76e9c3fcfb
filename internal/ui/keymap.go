package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global
	Quit     key.Binding
	Back     key.Binding
	Language key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	// Game
	ClosePosition key.Binding
	Max           key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Language: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "中/EN"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "less"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "more"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev"),
		),

		ClosePosition: key.NewBinding(
			key.WithKeys("c", "x"),
			key.WithHelp("c", "close position"),
		),
		Max: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "max"),
		),
	}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Language, k.Quit}
}

// FullHelp returns extended help text for the current context
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Enter, k.Tab, k.ShiftTab},
		{k.ClosePosition, k.Max},
		{k.Language, k.Back, k.Quit},
	}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteWelcome:
		return []key.Binding{k.Enter, k.Language, k.Quit}
	case RouteSetupFun:
		return []key.Binding{k.Language, k.Quit}
	case RouteSetupReal:
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Max, k.Enter, k.Quit}
	case RouteGame:
		return []key.Binding{k.ClosePosition, k.Language, k.Quit}
	case RouteResult:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Language, k.Quit}
	case RouteInvite:
		return []key.Binding{k.Enter, k.Back}
	case RouteDeposit:
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Back}
	default:
		return k.ShortHelp()
	}
}
