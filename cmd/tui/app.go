package main

import (
	"errors"
	"math/rand"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/tryluck/internal/config"
	"github.com/rovshanmuradov/tryluck/internal/game"
	"github.com/rovshanmuradov/tryluck/internal/session"
	"github.com/rovshanmuradov/tryluck/internal/ui"
	"github.com/rovshanmuradov/tryluck/internal/ui/component"
	"github.com/rovshanmuradov/tryluck/internal/ui/router"
	"github.com/rovshanmuradov/tryluck/internal/ui/screen"
	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

// AppModel represents the main TUI application model
type AppModel struct {
	router *router.Router
	deps   screen.Deps
	cfg    *config.Config
	sender *ui.UpdateSender
	logger *zap.Logger

	header *component.StatusHeader
	err    string
	width  int
	height int
}

// NewAppModel creates a new application model on the welcome screen
func NewAppModel(cfg *config.Config, deps screen.Deps, sender *ui.UpdateSender) *AppModel {
	m := &AppModel{
		deps:   deps,
		cfg:    cfg,
		sender: sender,
		logger: deps.Logger.Named("app"),
		header: component.NewStatusHeader(),
	}
	m.router = router.New(screen.NewWelcomeScreen(deps))
	return m
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		ui.ListenBus(),
	)
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.router.SetSize(msg.Width, m.bodyHeight())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.deps.Keys.Quit):
			m.router.Close()
			return m, tea.Quit

		case key.Matches(msg, m.deps.Keys.Language):
			lang := m.deps.Session.ToggleLanguage()
			m.logger.Debug("Language changed", zap.String("language", lang.String()))
			return m, m.forward(ui.LanguageChangedMsg{})
		}
		m.err = ""
		return m, m.forward(msg)

	case ui.RouterMsg:
		return m, m.handleNavigation(msg.To)

	case ui.StartRoundMsg:
		return m, m.openRound(msg.Config)

	case ui.RoundEndedMsg:
		return m, m.settle(msg)

	case ui.PriceTickMsg:
		return m, tea.Batch(m.forward(msg), ui.ListenBus())

	case ui.ErrorMsg:
		m.showError(msg.Title, msg.Error)
		return m, ui.ListenBus()
	}

	return m, m.forward(msg)
}

func (m *AppModel) forward(msg tea.Msg) tea.Cmd {
	updated, cmd := m.router.Update(msg)
	m.router = updated.(*router.Router)
	return cmd
}

// handleNavigation handles navigation to different screens.
// Modals are pushed over the current screen; everything else replaces the stack.
func (m *AppModel) handleNavigation(route ui.Route) tea.Cmd {
	m.err = ""

	switch route {
	case ui.RouteWelcome:
		return m.router.Replace(screen.NewWelcomeScreen(m.deps))

	case ui.RouteSetupFun:
		m.deps.Session.StartEntertainment()
		return m.router.Replace(screen.NewFunSetupScreen(m.deps))

	case ui.RouteSetupReal:
		if err := m.deps.Session.StartReal(); err != nil {
			m.showError("real mode", err)
			return nil
		}
		return m.router.Replace(screen.NewRealSetupScreen(m.deps))

	case ui.RouteInvite:
		return m.router.Push(screen.NewInviteModal(m.deps))

	case ui.RouteDeposit:
		return m.router.Push(screen.NewDepositModal(m.deps))

	case ui.RouteBack:
		return m.router.Back()

	default:
		m.logger.Warn("Unknown route", zap.String("route", route.String()))
		return nil
	}
}

func (m *AppModel) openRound(cfg game.PositionConfig) tea.Cmd {
	opts := game.RoundOptions{
		EntryPrice:        m.cfg.StartPrice,
		Volatility:        m.cfg.Volatility,
		Duration:          m.cfg.RoundDuration,
		TickInterval:      m.cfg.TickInterval,
		CountdownInterval: m.cfg.CountdownInterval,
		Rand:              rand.New(rand.NewSource(m.deps.Rand.Int63())),
		Logger:            m.deps.Logger,
		OnTick:            m.sender.SendSnapshot,
	}
	if m.cfg.UIRefresh > 0 {
		throttler := ui.NewSnapshotThrottler(m.sender, m.cfg.UIRefresh, m.deps.Logger)
		opts.OnTick = throttler.Send
	}

	round, err := m.deps.Session.OpenRound(cfg, opts)
	if err != nil {
		m.showError("open round", err)
		return nil
	}
	return m.router.Replace(screen.NewGameScreen(m.deps, round))
}

func (m *AppModel) settle(msg ui.RoundEndedMsg) tea.Cmd {
	res, err := m.deps.Session.Settle(msg.Round)
	switch {
	case errors.Is(err, session.ErrAlreadySettled):
		return nil
	case err != nil:
		m.showError("settle", err)
		return nil
	}
	return m.router.Replace(screen.NewResultScreen(m.deps, msg.Round, res))
}

func (m *AppModel) showError(title string, err error) {
	m.logger.Warn("UI error", zap.String("title", title), zap.Error(err))
	m.err = err.Error()
}

func (m *AppModel) bodyHeight() int {
	h := m.height - m.header.Height()
	if h < 0 {
		return 0
	}
	return h
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	state := m.deps.Session.State()
	m.header.
		SetLanguage(m.deps.Session.Language()).
		SetBalance(state.Balance, state.UsingExperienceGold).
		SetReal(m.deps.Session.Mode() == session.Real)

	view := m.header.View() + "\n" + m.router.View()
	if m.err != "" {
		errStyle := lipgloss.NewStyle().Foreground(style.DefaultPalette().Error).Bold(true)
		view += "\n" + errStyle.Render("✗ "+m.err)
	}
	return view
}
