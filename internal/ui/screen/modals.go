package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/ui"
	"github.com/rovshanmuradov/tryluck/internal/ui/component"
	"github.com/rovshanmuradov/tryluck/internal/ui/router"
	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

func modalBox(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Padding(1, 4).
		Align(lipgloss.Center)
}

// InviteModal tells the user about the invite reward
type InviteModal struct {
	deps   Deps
	width  int
	height int

	helpBar *component.HelpBar
}

// NewInviteModal creates the invite modal
func NewInviteModal(deps Deps) *InviteModal {
	return &InviteModal{
		deps: deps,
		helpBar: component.NewHelpBar().
			SetKeyBindings(deps.Keys.ContextualHelp(ui.RouteInvite)),
	}
}

// Init initializes the modal
func (m *InviteModal) Init() tea.Cmd {
	return nil
}

// Update handles modal updates
func (m *InviteModal) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.deps.Keys.Enter) {
		return m, ui.Navigate(ui.RouteBack)
	}
	return m, nil
}

// View renders the modal
func (m *InviteModal) View() string {
	palette := style.DefaultPalette()
	title := lipgloss.NewStyle().Foreground(palette.Info).Bold(true).Render(m.deps.t(locale.InviteTitle))
	desc := lipgloss.NewStyle().Foreground(palette.TextSecondary).Render(m.deps.t(locale.InviteDesc))
	gold := lipgloss.NewStyle().Foreground(palette.Gold).Bold(true).Render(m.deps.t(locale.InviteGold))
	closeBtn := lipgloss.NewStyle().Foreground(palette.Background).Background(palette.Info).
		Bold(true).Padding(0, 3).Render(m.deps.t(locale.Close))

	body := strings.Join([]string{title, "", desc, gold, "", closeBtn}, "\n")
	return place(m.width, m.height, modalBox(palette.Info).Render(body)+"\n"+m.helpBar.View())
}

// SetSize sets the modal dimensions
func (m *InviteModal) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.helpBar.SetWidth(width)
}

// DepositPresets are the quick-pick deposit amounts
var DepositPresets = []int64{100, 500, 1000}

const (
	depositFocusInput = iota
	depositFocusPresets
)

// DepositModal tops up the balance
type DepositModal struct {
	deps   Deps
	width  int
	height int

	amount textinput.Model
	focus  int
	preset int
	err    string

	helpBar *component.HelpBar
}

// NewDepositModal creates the deposit modal with the first preset filled in
func NewDepositModal(deps Deps) *DepositModal {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 12
	ti.Prompt = "$ "
	ti.SetValue(decimal.NewFromInt(DepositPresets[0]).String())
	ti.Focus()

	return &DepositModal{
		deps:   deps,
		amount: ti,
		helpBar: component.NewHelpBar().
			SetKeyBindings(deps.Keys.ContextualHelp(ui.RouteDeposit)),
	}
}

// Init initializes the modal
func (m *DepositModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles modal updates
func (m *DepositModal) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		return m, cmd
	}

	keys := m.deps.Keys
	switch {
	case key.Matches(keyMsg, keys.Enter):
		return m, m.confirm()

	case key.Matches(keyMsg, keys.Up), key.Matches(keyMsg, keys.Down), key.Matches(keyMsg, keys.Tab):
		if m.focus == depositFocusInput {
			m.focus = depositFocusPresets
			m.amount.Blur()
			m.selectPreset(m.preset)
		} else {
			m.focus = depositFocusInput
			m.amount.Focus()
		}
		return m, nil
	}

	if m.focus == depositFocusPresets {
		switch {
		case key.Matches(keyMsg, keys.Left):
			m.selectPreset(m.preset - 1)
		case key.Matches(keyMsg, keys.Right):
			m.selectPreset(m.preset + 1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.amount, cmd = m.amount.Update(msg)
	return m, cmd
}

func (m *DepositModal) selectPreset(i int) {
	n := len(DepositPresets)
	m.preset = (i + n) % n
	m.amount.SetValue(decimal.NewFromInt(DepositPresets[m.preset]).String())
}

func (m *DepositModal) confirm() tea.Cmd {
	amount, err := decimal.NewFromString(strings.TrimSpace(m.amount.Value()))
	if err != nil {
		m.err = m.deps.t(locale.InvalidAmount)
		return nil
	}
	if err := m.deps.Session.Deposit(amount); err != nil {
		m.err = m.deps.t(locale.InvalidAmount)
		return nil
	}
	m.err = ""
	return ui.Navigate(ui.RouteBack)
}

// Value returns the amount currently entered
func (m *DepositModal) Value() string {
	return m.amount.Value()
}

// Err returns the last validation message
func (m *DepositModal) Err() string {
	return m.err
}

// View renders the modal
func (m *DepositModal) View() string {
	palette := style.DefaultPalette()
	title := lipgloss.NewStyle().Foreground(palette.Gold).Bold(true).Render(m.deps.t(locale.DepositTitle))
	label := lipgloss.NewStyle().Foreground(palette.TextMuted).Render(m.deps.t(locale.DepositAmount))

	presets := make([]string, len(DepositPresets))
	for i, p := range DepositPresets {
		st := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(palette.TextMuted)
		if m.focus == depositFocusPresets && i == m.preset {
			st = st.BorderForeground(palette.Gold).Foreground(palette.Gold).Bold(true)
		}
		presets[i] = st.Render(decimal.NewFromInt(p).String())
	}

	confirm := lipgloss.NewStyle().Foreground(palette.Background).Background(palette.Gold).
		Bold(true).Padding(0, 3).Render(m.deps.t(locale.DepositConfirm))
	cancel := lipgloss.NewStyle().Foreground(palette.TextMuted).Padding(0, 2).
		Render("esc " + m.deps.t(locale.Cancel))

	rows := []string{
		title,
		"",
		label,
		m.amount.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, presets...),
		"",
		confirm + cancel,
	}
	if m.err != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(palette.Error).Render(m.err))
	}

	return place(m.width, m.height, modalBox(palette.Gold).Render(strings.Join(rows, "\n"))+"\n"+m.helpBar.View())
}

// SetSize sets the modal dimensions
func (m *DepositModal) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.helpBar.SetWidth(width)
}
