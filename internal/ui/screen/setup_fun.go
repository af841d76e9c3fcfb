package screen

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/tryluck/internal/game"
	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/session"
	"github.com/rovshanmuradov/tryluck/internal/ui"
	"github.com/rovshanmuradov/tryluck/internal/ui/component"
	"github.com/rovshanmuradov/tryluck/internal/ui/router"
	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

const (
	// funSpinFrames is how many random frames are shown before the final draw.
	funSpinFrames   = 20
	funSpinInterval = 100 * time.Millisecond
	funReadyPause   = time.Second
)

type funSpinMsg struct{ owner *FunSetupScreen }

type funReadyMsg struct{ owner *FunSetupScreen }

// FunSetupScreen animates a random entertainment position and then starts it
type FunSetupScreen struct {
	deps   Deps
	width  int
	height int

	frame   int
	preview game.PositionConfig
	final   *game.PositionConfig

	helpBar *component.HelpBar

	titleStyle lipgloss.Style
	readyStyle lipgloss.Style
	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
	boxStyle   lipgloss.Style
}

// NewFunSetupScreen creates the entertainment setup screen
func NewFunSetupScreen(deps Deps) *FunSetupScreen {
	palette := style.DefaultPalette()

	return &FunSetupScreen{
		deps:    deps,
		preview: session.PreviewPosition(deps.Rand),
		helpBar: component.NewHelpBar().
			SetKeyBindings(deps.Keys.ContextualHelp(ui.RouteSetupFun)),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(0, 0, 1, 0),

		readyStyle: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true).
			Margin(0, 0, 1, 0),

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Width(14),

		valueStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.FunBadge).
			Padding(1, 3),
	}
}

// Init starts the animation
func (s *FunSetupScreen) Init() tea.Cmd {
	if s.final != nil {
		return nil
	}
	return s.spin()
}

func (s *FunSetupScreen) spin() tea.Cmd {
	return tea.Tick(funSpinInterval, func(time.Time) tea.Msg {
		return funSpinMsg{owner: s}
	})
}

// Update handles screen updates
func (s *FunSetupScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case funSpinMsg:
		if msg.owner != s || s.final != nil {
			return s, nil
		}
		s.frame++
		if s.frame <= funSpinFrames {
			s.preview = session.PreviewPosition(s.deps.Rand)
			return s, s.spin()
		}

		cfg := session.RandomPosition(s.deps.Rand)
		s.final = &cfg
		s.preview = cfg
		return s, tea.Tick(funReadyPause, func(time.Time) tea.Msg {
			return funReadyMsg{owner: s}
		})

	case funReadyMsg:
		if msg.owner != s || s.final == nil {
			return s, nil
		}
		cfg := *s.final
		return s, func() tea.Msg {
			return ui.StartRoundMsg{Config: cfg}
		}
	}
	return s, nil
}

// Ready reports whether the final position has been drawn
func (s *FunSetupScreen) Ready() bool {
	return s.final != nil
}

// View renders the setup animation
func (s *FunSetupScreen) View() string {
	var b strings.Builder

	if s.final != nil {
		b.WriteString(s.readyStyle.Render(s.deps.t(locale.Ready)))
	} else {
		b.WriteString(s.titleStyle.Render(s.deps.t(locale.Selecting)))
	}
	b.WriteString("\n")
	b.WriteString(s.boxStyle.Render(s.renderPosition(s.preview)))
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())

	return place(s.width, s.height, b.String())
}

func (s *FunSetupScreen) renderPosition(cfg game.PositionConfig) string {
	rows := [][2]string{
		{s.deps.t(locale.Asset), cfg.Asset},
		{s.deps.t(locale.Amount), fmt.Sprintf("%.0f U", cfg.Stake)},
		{s.deps.t(locale.Direction), directionLabel(s.deps.lang(), cfg.Direction)},
		{s.deps.t(locale.Leverage), fmt.Sprintf("%dx", cfg.Leverage)},
		{s.deps.t(locale.TakeProfit), fmt.Sprintf("%.0f%%", cfg.TakeProfitPercent)},
		{s.deps.t(locale.StopLoss), fmt.Sprintf("%.0f%%", cfg.StopLossPercent)},
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = s.labelStyle.Render(row[0]) + s.valueStyle.Render(row[1])
	}
	return strings.Join(lines, "\n")
}

// SetSize sets the screen dimensions
func (s *FunSetupScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
}

func directionLabel(lang locale.Language, d game.Direction) string {
	palette := style.DefaultPalette()
	if d == game.Short {
		return lipgloss.NewStyle().Foreground(palette.Short).Render(locale.T(lang, locale.Short))
	}
	return lipgloss.NewStyle().Foreground(palette.Long).Render(locale.T(lang, locale.Long))
}
