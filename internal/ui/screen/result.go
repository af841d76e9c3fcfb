package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/tryluck/internal/game"
	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/session"
	"github.com/rovshanmuradov/tryluck/internal/ui"
	"github.com/rovshanmuradov/tryluck/internal/ui/component"
	"github.com/rovshanmuradov/tryluck/internal/ui/gaming"
	"github.com/rovshanmuradov/tryluck/internal/ui/router"
	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

// statsRefresh re-renders once the journal has caught up with the bus.
const statsRefresh = 250 * time.Millisecond

type statsRefreshMsg struct{}

// ResultScreen shows the outcome of a settled round and the follow-up actions
type ResultScreen struct {
	deps   Deps
	width  int
	height int

	result game.RoundResult
	mode   session.Mode
	prices []float64
	quote  string

	menu      *menu
	sparkline *component.Sparkline
	helpBar   *component.HelpBar

	titleStyle lipgloss.Style
	quoteStyle lipgloss.Style
	mutedStyle lipgloss.Style
}

// NewResultScreen creates the result screen for a finished round
func NewResultScreen(deps Deps, round *game.Round, result game.RoundResult) *ResultScreen {
	palette := style.DefaultPalette()

	history := round.History()
	prices := make([]float64, len(history))
	for i, p := range history {
		prices[i] = p.Price
	}

	s := &ResultScreen{
		deps:      deps,
		result:    result,
		mode:      deps.Session.Mode(),
		prices:    prices,
		menu:      newMenu(),
		sparkline: component.NewSparkline(40),
		helpBar: component.NewHelpBar().
			SetKeyBindings(deps.Keys.ContextualHelp(ui.RouteResult)),

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Margin(1, 0),

		quoteStyle: lipgloss.NewStyle().
			Foreground(palette.TextSecondary).
			Italic(true).
			Margin(1, 0),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}
	s.sparkline.SetColor(palette.PnLColor(result.PnLAmount)).SetData(prices)
	s.quote = locale.ResultQuote(deps.lang(), result.Type, result.PnLPercent, deps.Rand)
	s.menu.setItems(s.Actions())
	return s
}

// Init initializes the result screen
func (s *ResultScreen) Init() tea.Cmd {
	s.menu.setItems(s.Actions())
	if s.deps.Journal == nil {
		return nil
	}
	return tea.Tick(statsRefresh, func(time.Time) tea.Msg { return statsRefreshMsg{} })
}

// Actions returns the follow-up actions for the mode and outcome of the round
func (s *ResultScreen) Actions() []MenuItem {
	palette := style.DefaultPalette()
	sess := s.deps.Session

	if s.mode == session.Entertainment {
		return []MenuItem{
			{Label: s.deps.t(locale.PlayAgain), Action: navigate(ui.RouteSetupFun)},
			{
				Label:  s.deps.t(locale.ClaimExp),
				Hint:   s.deps.t(locale.ClaimTip),
				Accent: palette.Gold,
				Action: func() tea.Cmd {
					sess.ClaimExperience()
					return ui.Navigate(ui.RouteSetupReal)
				},
			},
		}
	}

	var items []MenuItem
	if s.result.Type.IsWin() {
		items = append(items,
			MenuItem{Label: s.deps.t(locale.ContinueReal), Accent: palette.Success, Action: navigate(ui.RouteSetupReal)},
			MenuItem{Label: s.deps.t(locale.DepositMore), Accent: palette.Gold, Action: navigate(ui.RouteDeposit)},
		)
	} else {
		if sess.State().UsingExperienceGold {
			items = append(items,
				MenuItem{Label: s.deps.t(locale.Invite), Accent: palette.Info, Action: navigate(ui.RouteInvite)})
		}
		items = append(items,
			MenuItem{Label: s.deps.t(locale.DepositRecover), Accent: palette.Gold, Action: navigate(ui.RouteDeposit)})
	}
	return append(items, MenuItem{Label: s.deps.t(locale.BackToFun), Action: navigate(ui.RouteSetupFun)})
}

func navigate(route ui.Route) func() tea.Cmd {
	return func() tea.Cmd { return ui.Navigate(route) }
}

// Update handles screen updates
func (s *ResultScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.deps.Keys.Up):
			s.menu.moveUp()
		case key.Matches(msg, s.deps.Keys.Down):
			s.menu.moveDown()
		case key.Matches(msg, s.deps.Keys.Enter):
			return s, s.menu.activate()
		}

	case ui.LanguageChangedMsg:
		s.quote = locale.ResultQuote(s.deps.lang(), s.result.Type, s.result.PnLPercent, s.deps.Rand)
		s.menu.setItems(s.Actions())
	}
	return s, nil
}

// View renders the result
func (s *ResultScreen) View() string {
	palette := style.DefaultPalette()
	color := palette.PnLColor(s.result.PnLAmount)
	if !s.result.Type.IsWin() {
		color = palette.Error
	}

	title := s.titleStyle.Foreground(color).
		Render(locale.ResultTitle(s.deps.lang(), s.result.Type))

	pnl := lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(fmt.Sprintf("%+.2f U", s.result.PnLAmount))
	percent := s.mutedStyle.Render(fmt.Sprintf("(%+.2f%%)", s.result.PnLPercent))

	parts := []string{
		title,
		pnl + "  " + percent,
		s.sparkline.View(),
		s.mutedStyle.Render(reasonLabel(s.result.Reason)),
		s.quoteStyle.Render("“" + s.quote + "”"),
		s.menu.View(),
	}
	if stats := s.statsLine(); stats != "" {
		parts = append(parts, "", s.mutedStyle.Render(stats))
	}
	parts = append(parts, s.helpBar.View())

	return place(s.width, s.height, strings.Join(parts, "\n"))
}

func (s *ResultScreen) statsLine() string {
	if s.deps.Journal == nil {
		return ""
	}
	st := s.deps.Journal.Statistics()
	if st.Rounds == 0 {
		return ""
	}
	level := gaming.LevelFor(st)
	badge := gaming.NewBadgeStyle(level).RenderProgress(st.Wins, s.deps.lang())
	return badge + "  " + fmt.Sprintf("%d rounds · %.0f%% win · %+.2f U", st.Rounds, st.WinRate, st.TotalPnL)
}

func reasonLabel(r game.EndReason) string {
	switch r {
	case game.ReasonTakeProfit:
		return "TP ✓"
	case game.ReasonStopLoss:
		return "SL ✗"
	case game.ReasonTimeout:
		return "⏱"
	default:
		return "■"
	}
}

// SetSize sets the screen dimensions
func (s *ResultScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
	if width > 20 {
		w := width - 20
		if w > 60 {
			w = 60
		}
		s.sparkline.SetWidth(w).SetData(s.prices)
	}
}
