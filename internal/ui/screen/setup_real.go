package screen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/tryluck/internal/game"
	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/session"
	"github.com/rovshanmuradov/tryluck/internal/ui"
	"github.com/rovshanmuradov/tryluck/internal/ui/component"
	"github.com/rovshanmuradov/tryluck/internal/ui/router"
	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

type realField int

const (
	fieldAsset realField = iota
	fieldStake
	fieldDirection
	fieldLeverage
	fieldTakeProfit
	fieldStopLoss
	fieldSubmit
	fieldCount
)

// RealSetupScreen is the real-mode position form
type RealSetupScreen struct {
	deps   Deps
	width  int
	height int

	cfg      game.PositionConfig
	assetIdx int
	stake    textinput.Model
	focus    realField
	err      string

	helpBar *component.HelpBar

	titleStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	focusedLabel lipgloss.Style
	valueStyle   lipgloss.Style
	mutedStyle   lipgloss.Style
	errorStyle   lipgloss.Style
	submitStyle  lipgloss.Style
	submitFocus  lipgloss.Style
	boxStyle     lipgloss.Style
}

// NewRealSetupScreen creates the form pre-filled with the real-mode defaults
func NewRealSetupScreen(deps Deps) *RealSetupScreen {
	palette := style.DefaultPalette()
	cfg := session.RealDefaults(deps.Session.State().Balance)

	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 12
	ti.Prompt = ""
	ti.SetValue(decimal.NewFromFloat(cfg.Stake).String())

	return &RealSetupScreen{
		deps:  deps,
		cfg:   cfg,
		stake: ti,
		helpBar: component.NewHelpBar().
			SetKeyBindings(deps.Keys.ContextualHelp(ui.RouteSetupReal)),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.RealBadge).
			Bold(true).
			Margin(0, 0, 1, 0),

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Width(14),

		focusedLabel: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Width(14),

		valueStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error).
			Margin(1, 0, 0, 0),

		submitStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 4),

		submitFocus: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.RealBadge).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.RealBadge).
			Padding(0, 4),

		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.RealBadge).
			Padding(1, 3),
	}
}

// Init initializes the form
func (s *RealSetupScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles screen updates
func (s *RealSetupScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.focus == fieldStake {
			var cmd tea.Cmd
			s.stake, cmd = s.stake.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	keys := s.deps.Keys
	switch {
	case key.Matches(keyMsg, keys.Enter):
		return s, s.submit()

	case key.Matches(keyMsg, keys.Up), key.Matches(keyMsg, keys.ShiftTab):
		s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		return s, nil

	case key.Matches(keyMsg, keys.Down), key.Matches(keyMsg, keys.Tab):
		s.setFocus((s.focus + 1) % fieldCount)
		return s, nil

	case key.Matches(keyMsg, keys.Max):
		s.stake.SetValue(s.deps.Session.State().Balance.RoundDown(2).StringFixed(2))
		s.stake.CursorEnd()
		return s, nil
	}

	if s.focus == fieldStake {
		var cmd tea.Cmd
		s.stake, cmd = s.stake.Update(msg)
		return s, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		s.adjust(-1)
	case key.Matches(keyMsg, keys.Right):
		s.adjust(1)
	}
	return s, nil
}

func (s *RealSetupScreen) setFocus(f realField) {
	s.focus = f
	if f == fieldStake {
		s.stake.Focus()
	} else {
		s.stake.Blur()
	}
}

func (s *RealSetupScreen) adjust(delta int) {
	switch s.focus {
	case fieldAsset:
		n := len(session.Assets)
		s.assetIdx = (s.assetIdx + delta + n) % n
		s.cfg.Asset = session.Assets[s.assetIdx]
	case fieldDirection:
		if s.cfg.Direction == game.Long {
			s.cfg.Direction = game.Short
		} else {
			s.cfg.Direction = game.Long
		}
	case fieldLeverage:
		s.cfg.Leverage = session.RealLeverage.Clamp(s.cfg.Leverage + delta)
	case fieldTakeProfit:
		s.cfg.TakeProfitPercent = float64(session.RealTakeProfit.Clamp(int(s.cfg.TakeProfitPercent) + delta))
	case fieldStopLoss:
		s.cfg.StopLossPercent = float64(session.RealStopLoss.Clamp(int(s.cfg.StopLossPercent) + delta))
	}
}

func (s *RealSetupScreen) submit() tea.Cmd {
	amount, err := decimal.NewFromString(strings.TrimSpace(s.stake.Value()))
	if err != nil || !amount.IsPositive() {
		s.err = s.deps.t(locale.InvalidAmount)
		return nil
	}

	cfg := s.cfg
	cfg.Stake = amount.InexactFloat64()
	if err := s.deps.Session.PrepareRound(cfg); err != nil {
		if errors.Is(err, session.ErrInsufficientBalance) {
			s.err = s.deps.t(locale.InsufficientFunds)
		} else {
			s.err = err.Error()
		}
		return nil
	}

	s.err = ""
	return func() tea.Msg {
		return ui.StartRoundMsg{Config: cfg}
	}
}

// Config returns the position as currently entered, stake excluded
func (s *RealSetupScreen) Config() game.PositionConfig {
	return s.cfg
}

// Err returns the last validation message
func (s *RealSetupScreen) Err() string {
	return s.err
}

// View renders the form
func (s *RealSetupScreen) View() string {
	var b strings.Builder
	b.WriteString(s.titleStyle.Render(s.deps.t(locale.ConfigReal)))
	b.WriteString("\n")

	balance := s.deps.Session.State().Balance.StringFixed(2)
	rows := []string{
		s.row(fieldAsset, locale.Asset, "◀ "+s.cfg.Asset+" ▶"),
		s.row(fieldStake, locale.Amount, s.stake.View()+s.mutedStyle.Render(
			fmt.Sprintf("  U  (%s %s)", s.deps.t(locale.Max), balance))),
		s.row(fieldDirection, locale.Direction, "◀ "+directionLabel(s.deps.lang(), s.cfg.Direction)+" ▶"),
		s.row(fieldLeverage, locale.Leverage, fmt.Sprintf("◀ %dx ▶", s.cfg.Leverage)),
		s.row(fieldTakeProfit, locale.TakeProfit, fmt.Sprintf("◀ %.0f%% ▶", s.cfg.TakeProfitPercent)),
		s.row(fieldStopLoss, locale.StopLoss, fmt.Sprintf("◀ %.0f%% ▶", s.cfg.StopLossPercent)),
	}

	submit := s.submitStyle
	if s.focus == fieldSubmit {
		submit = s.submitFocus
	}
	rows = append(rows, "", submit.Render(s.deps.t(locale.StartTrading)))

	b.WriteString(s.boxStyle.Render(strings.Join(rows, "\n")))
	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(s.errorStyle.Render(s.err))
	}
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())

	return place(s.width, s.height, b.String())
}

func (s *RealSetupScreen) row(f realField, label locale.Key, value string) string {
	st := s.labelStyle
	if s.focus == f {
		st = s.focusedLabel
	}
	return st.Render(s.deps.t(label)) + s.valueStyle.Render(value)
}

// SetSize sets the screen dimensions
func (s *RealSetupScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
}
