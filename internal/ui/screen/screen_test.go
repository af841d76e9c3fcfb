package screen

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/tryluck/internal/game"
	"github.com/rovshanmuradov/tryluck/internal/history"
	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/session"
	"github.com/rovshanmuradov/tryluck/internal/ui"
)

func testDeps() Deps {
	return Deps{
		Session: session.NewController(locale.English, nil, zap.NewNop()),
		Keys:    ui.DefaultKeyMap(),
		Rand:    rand.New(rand.NewSource(3)),
		Logger:  zap.NewNop(),
	}
}

func testRound(t *testing.T) *game.Round {
	t.Helper()
	r, err := game.NewRound(game.PositionConfig{
		Asset:             "ETH/USDT",
		Stake:             100,
		Direction:         game.Short,
		Leverage:          3,
		TakeProfitPercent: 30,
		StopLossPercent:   15,
	}, game.RoundOptions{
		TickInterval:      time.Hour,
		CountdownInterval: time.Hour,
		Rand:              rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	return r
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWelcomeStartNavigates(t *testing.T) {
	s := NewWelcomeScreen(testDeps())
	assert.NotEmpty(t, s.Quote())

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteSetupFun}, cmd())
}

func TestWelcomeQuoteFollowsLanguage(t *testing.T) {
	deps := testDeps()
	s := NewWelcomeScreen(deps)

	deps.Session.ToggleLanguage()
	s.Update(ui.LanguageChangedMsg{})
	assert.Contains(t, s.View(), locale.T(locale.Chinese, locale.StartGame))
}

func TestFunSetupAnimation(t *testing.T) {
	s := NewFunSetupScreen(testDeps())
	require.NotNil(t, s.Init())

	for i := 0; i < funSpinFrames; i++ {
		_, cmd := s.Update(funSpinMsg{owner: s})
		require.NotNil(t, cmd)
		assert.False(t, s.Ready(), "frame %d", i+1)
	}

	_, cmd := s.Update(funSpinMsg{owner: s})
	require.NotNil(t, cmd)
	assert.True(t, s.Ready())
	assert.Contains(t, s.View(), locale.T(locale.English, locale.Ready))

	_, cmd = s.Update(funReadyMsg{owner: s})
	require.NotNil(t, cmd)
	start, ok := cmd().(ui.StartRoundMsg)
	require.True(t, ok)
	require.NoError(t, start.Config.Validate())
	assert.Contains(t, session.Assets[:5], start.Config.Asset)
	assert.True(t, session.FunLeverage.Contains(start.Config.Leverage))
}

func TestFunSetupIgnoresForeignTicks(t *testing.T) {
	s := NewFunSetupScreen(testDeps())
	other := NewFunSetupScreen(testDeps())

	_, cmd := s.Update(funSpinMsg{owner: other})
	assert.Nil(t, cmd)
	_, cmd = s.Update(funReadyMsg{owner: s})
	assert.Nil(t, cmd, "not ready yet")
}

func TestRealSetupAdjustsWithinRanges(t *testing.T) {
	deps := testDeps()
	deps.Session.ClaimExperience()
	s := NewRealSetupScreen(deps)

	assert.Equal(t, 5.0, s.Config().Stake)

	s.setFocus(fieldLeverage)
	for i := 0; i < 20; i++ {
		s.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, session.RealLeverage.Max, s.Config().Leverage)

	s.setFocus(fieldStopLoss)
	for i := 0; i < 100; i++ {
		s.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	assert.Equal(t, float64(session.RealStopLoss.Min), s.Config().StopLossPercent)

	s.setFocus(fieldDirection)
	s.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, game.Short, s.Config().Direction)

	s.setFocus(fieldAsset)
	s.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, session.Assets[len(session.Assets)-1], s.Config().Asset)
}

func TestRealSetupSubmit(t *testing.T) {
	deps := testDeps()
	deps.Session.ClaimExperience()
	s := NewRealSetupScreen(deps)

	s.stake.SetValue("50")
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, locale.T(locale.English, locale.InsufficientFunds), s.Err())

	s.stake.SetValue("abc")
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, locale.T(locale.English, locale.InvalidAmount), s.Err())

	s.Update(keyRunes("m"))
	assert.Equal(t, "5.00", s.stake.Value())

	_, cmd = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	start, ok := cmd().(ui.StartRoundMsg)
	require.True(t, ok)
	assert.Equal(t, 5.0, start.Config.Stake)
	assert.Empty(t, s.Err())
}

func TestGameScreenTicksAndStop(t *testing.T) {
	deps := testDeps()
	round := testRound(t)
	s := NewGameScreen(deps, round)
	s.SetSize(120, 40)

	snap := round.Snapshot()
	snap.Price = 10010
	s.Update(ui.PriceTickMsg{Snapshot: snap})
	assert.Equal(t, 10010.0, s.snap.Price)
	assert.Len(t, s.prices, 2)

	s.Update(ui.PriceTickMsg{Snapshot: game.Snapshot{RoundID: "other", Price: 1}})
	assert.Len(t, s.prices, 2, "ticks of other rounds are ignored")

	view := s.View()
	assert.Contains(t, view, "ETH/USDT")
	assert.Contains(t, view, "60:00")
	assert.Contains(t, view, "▲", "flat PnL counts as profitable")

	snap.PnLAmount, snap.PnLPercent = -3, -3
	s.Update(ui.PriceTickMsg{Snapshot: snap})
	assert.Contains(t, s.View(), "▼ -3.00%")

	s.Update(keyRunes("c"))
	res, ok := round.Result()
	require.True(t, ok)
	assert.Equal(t, game.ReasonManual, res.Reason)

	msg := s.Init()()
	ended, ok := msg.(ui.RoundEndedMsg)
	require.True(t, ok)
	assert.Equal(t, round, ended.Round)
	assert.Equal(t, res, ended.Result)
}

func TestGameScreenCloseCancelsRound(t *testing.T) {
	round := testRound(t)
	s := NewGameScreen(testDeps(), round)
	require.NoError(t, s.Close())

	assert.Nil(t, s.Init()(), "cancelled round emits no result")
	assert.ErrorIs(t, s.ctx.Err(), context.Canceled)
	_, finished := round.Result()
	assert.False(t, finished)
}

func TestGameScreenReportsRunFailure(t *testing.T) {
	for len(ui.Bus) > 0 {
		<-ui.Bus
	}

	round := testRound(t)
	round.Stop()
	require.NoError(t, round.Run(context.Background()))

	s := NewGameScreen(testDeps(), round)
	defer s.Close()
	assert.Nil(t, s.Init()(), "a failed run does not end the round twice")

	require.Len(t, ui.Bus, 1)
	msg, ok := (<-ui.Bus).(ui.ErrorMsg)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Error, game.ErrAlreadyRunning)
	assert.Equal(t, "round", msg.Title)
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "60:00", FormatCountdown(time.Hour))
	assert.Equal(t, "01:05", FormatCountdown(65*time.Second))
	assert.Equal(t, "00:00", FormatCountdown(-time.Second))
}

func labels(items []MenuItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestResultActions(t *testing.T) {
	tr := func(k locale.Key) string { return locale.T(locale.English, k) }

	t.Run("Entertainment", func(t *testing.T) {
		s := NewResultScreen(testDeps(), testRound(t), game.RoundResult{Type: game.Loss})
		assert.Equal(t, []string{tr(locale.PlayAgain), tr(locale.ClaimExp)}, labels(s.Actions()))
	})

	t.Run("Real win", func(t *testing.T) {
		deps := testDeps()
		deps.Session.ClaimExperience()
		s := NewResultScreen(deps, testRound(t), game.RoundResult{Type: game.WinSmall, PnLAmount: 1, PnLPercent: 20})
		assert.Equal(t, []string{tr(locale.ContinueReal), tr(locale.DepositMore), tr(locale.BackToFun)}, labels(s.Actions()))
	})

	t.Run("Real loss with experience gold", func(t *testing.T) {
		deps := testDeps()
		deps.Session.ClaimExperience()
		s := NewResultScreen(deps, testRound(t), game.RoundResult{Type: game.Loss, PnLAmount: -1})
		assert.Equal(t, []string{tr(locale.Invite), tr(locale.DepositRecover), tr(locale.BackToFun)}, labels(s.Actions()))
	})
}

func TestResultClaimExperience(t *testing.T) {
	deps := testDeps()
	s := NewResultScreen(deps, testRound(t), game.RoundResult{Type: game.WinBig, PnLAmount: 10, PnLPercent: 60})

	s.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteSetupReal}, cmd())

	state := deps.Session.State()
	assert.True(t, state.RealModeUnlocked)
	assert.True(t, state.Balance.Equal(session.ExperienceGold))
}

func TestResultShowsLuckLevel(t *testing.T) {
	journal, err := history.NewJournal("", 10, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer journal.Close()

	for i := 0; i < 6; i++ {
		require.NoError(t, journal.Add(history.Record{
			RoundID: fmt.Sprintf("r%d", i),
			Result:  game.WinSmall.String(),
			PnL:     5,
		}))
	}

	deps := testDeps()
	deps.Journal = journal
	s := NewResultScreen(deps, testRound(t), game.RoundResult{Type: game.WinSmall, PnLAmount: 5, PnLPercent: 5})
	s.SetSize(100, 40)

	line := s.statsLine()
	assert.Contains(t, line, "L3")
	assert.Contains(t, line, "6 rounds")
}

func TestDepositModal(t *testing.T) {
	deps := testDeps()
	m := NewDepositModal(deps)
	assert.Equal(t, "100", m.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "500", m.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "100", m.Value(), "presets wrap")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteBack}, cmd())
	assert.True(t, deps.Session.State().Balance.Equal(decimal.NewFromInt(100)))
}

func TestDepositModalRejectsInvalid(t *testing.T) {
	deps := testDeps()
	m := NewDepositModal(deps)

	m.amount.SetValue("-5")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.Err())
	assert.True(t, deps.Session.State().Balance.IsZero())
}

func TestInviteModalCloses(t *testing.T) {
	m := NewInviteModal(testDeps())
	assert.Contains(t, m.View(), locale.T(locale.English, locale.InviteGold))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteBack}, cmd())
}
