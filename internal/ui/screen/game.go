package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/tryluck/internal/game"
	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/ui"
	"github.com/rovshanmuradov/tryluck/internal/ui/component"
	"github.com/rovshanmuradov/tryluck/internal/ui/router"
	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

const (
	chartMinHeight = 6
	chartMaxHeight = 16
)

// GameScreen runs a round and shows it live. Closing the screen cancels the round.
type GameScreen struct {
	deps   Deps
	width  int
	height int

	round  *game.Round
	ctx    context.Context
	cancel context.CancelFunc

	snap   game.Snapshot
	prices []float64

	chart   *component.PriceChart
	gauge   *component.PnLGauge
	helpBar *component.HelpBar

	headerStyle lipgloss.Style
	timerStyle  lipgloss.Style
	labelStyle  lipgloss.Style
	valueStyle  lipgloss.Style
	stopStyle   lipgloss.Style
	boxStyle    lipgloss.Style
}

// NewGameScreen creates the screen for an opened, not yet running round
func NewGameScreen(deps Deps, round *game.Round) *GameScreen {
	palette := style.DefaultPalette()
	ctx, cancel := context.WithCancel(context.Background())
	snap := round.Snapshot()
	cfg := round.Config()
	triggers := round.Triggers()

	return &GameScreen{
		deps:   deps,
		round:  round,
		ctx:    ctx,
		cancel: cancel,
		snap:   snap,
		prices: []float64{snap.Price},

		chart: component.NewPriceChart(60, chartMinHeight).
			SetLevels(round.EntryPrice(), triggers.TakeProfit, triggers.StopLoss),
		gauge: component.NewPnLGauge(31).
			SetBounds(cfg.TakeProfitPercent, cfg.StopLossPercent),
		helpBar: component.NewHelpBar().
			SetKeyBindings(deps.Keys.ContextualHelp(ui.RouteGame)),

		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		timerStyle: lipgloss.NewStyle().
			Foreground(palette.Warning).
			Bold(true),

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		valueStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		stopStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Error).
			Bold(true).
			Padding(0, 3),

		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 1),
	}
}

// Init starts the round. The returned command resolves to exactly one
// RoundEndedMsg when the round finishes, whatever ended it.
func (s *GameScreen) Init() tea.Cmd {
	round, ctx, logger := s.round, s.ctx, s.deps.Logger
	return func() tea.Msg {
		if err := round.Run(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				if logger != nil {
					logger.Debug("Round abandoned", zap.String("round_id", round.ID()), zap.Error(err))
				}
				return nil
			}
			ui.PublishError(err, "round")
			return nil
		}
		res, _ := round.Result()
		return ui.RoundEndedMsg{Round: round, Result: res}
	}
}

// Close cancels the round if it is still running
func (s *GameScreen) Close() error {
	s.cancel()
	return nil
}

// Round returns the round shown by the screen
func (s *GameScreen) Round() *game.Round {
	return s.round
}

// Update handles screen updates
func (s *GameScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.PriceTickMsg:
		if msg.Snapshot.RoundID != s.round.ID() {
			return s, nil
		}
		s.snap = msg.Snapshot
		s.prices = append(s.prices, msg.Snapshot.Price)

	case tea.KeyMsg:
		if key.Matches(msg, s.deps.Keys.ClosePosition) {
			// Run observes the stop and emits the result.
			s.round.Stop()
		}
	}
	return s, nil
}

// View renders the live round
func (s *GameScreen) View() string {
	cfg := s.snap.Config
	palette := style.DefaultPalette()
	pnlStyle := lipgloss.NewStyle().Foreground(palette.PnLColor(s.snap.PnLAmount)).Bold(true)
	trend := "▼"
	if s.snap.IsProfitable() {
		trend = "▲"
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		s.headerStyle.Render(cfg.Asset),
		"  ",
		directionLabel(s.deps.lang(), cfg.Direction),
		s.headerStyle.Render(fmt.Sprintf(" %dx", cfg.Leverage)),
		"    ",
		s.labelStyle.Render(s.deps.t(locale.TimeLeft)+" "),
		s.timerStyle.Render(FormatCountdown(s.snap.Remaining)),
	)

	price := s.labelStyle.Render(s.deps.t(locale.CurrentPrice)+" ") +
		s.valueStyle.Render(fmt.Sprintf("%.2f", s.snap.Price)) +
		s.labelStyle.Render(fmt.Sprintf("   %s %.2f", s.deps.t(locale.Entry), s.snap.EntryPrice))

	pnl := s.labelStyle.Render(s.deps.t(locale.CurrentPnL)+" ") +
		pnlStyle.Render(fmt.Sprintf("%s %+.2f%%  %+.2f U", trend, s.snap.PnLPercent, s.snap.PnLAmount))

	s.gauge.SetValue(s.snap.PnLPercent)
	s.chart.SetData(s.prices)

	details := strings.Join([]string{
		s.detail(locale.Principal, fmt.Sprintf("%.2f U", cfg.Stake)) + "   " +
			s.detail(locale.Position, fmt.Sprintf("%.2f U", cfg.PositionSize())),
		s.detail(locale.TPPrice, fmt.Sprintf("%.2f", s.snap.TakeProfitPrice)) + "   " +
			s.detail(locale.SLPrice, fmt.Sprintf("%.2f", s.snap.StopLossPrice)),
	}, "\n")

	content := strings.Join([]string{
		header,
		"",
		price,
		pnl,
		s.gauge.View(),
		"",
		s.boxStyle.Render(s.chart.View()),
		details,
		"",
		s.stopStyle.Render(s.deps.t(locale.ClosePosition)),
		s.helpBar.View(),
	}, "\n")

	return place(s.width, s.height, content)
}

func (s *GameScreen) detail(label locale.Key, value string) string {
	return s.labelStyle.Render(s.deps.t(label)+" ") + s.valueStyle.Render(value)
}

// SetSize sets the screen dimensions
func (s *GameScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)

	chartWidth := width - 8
	if chartWidth > 100 {
		chartWidth = 100
	}
	chartHeight := height - 18
	if chartHeight < chartMinHeight {
		chartHeight = chartMinHeight
	} else if chartHeight > chartMaxHeight {
		chartHeight = chartMaxHeight
	}
	if chartWidth > 0 {
		s.chart.SetSize(chartWidth, chartHeight)
	}
}

// FormatCountdown renders a remaining duration as mm:ss
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
