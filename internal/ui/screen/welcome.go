package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/ui"
	"github.com/rovshanmuradov/tryluck/internal/ui/component"
	"github.com/rovshanmuradov/tryluck/internal/ui/router"
	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

// WelcomeScreen is the landing screen with a quote and the start button
type WelcomeScreen struct {
	deps   Deps
	width  int
	height int

	quote   string
	helpBar *component.HelpBar

	titleStyle  lipgloss.Style
	quoteStyle  lipgloss.Style
	buttonStyle lipgloss.Style
	tipStyle    lipgloss.Style
}

// NewWelcomeScreen creates the welcome screen
func NewWelcomeScreen(deps Deps) *WelcomeScreen {
	palette := style.DefaultPalette()

	s := &WelcomeScreen{
		deps: deps,
		helpBar: component.NewHelpBar().
			SetKeyBindings(deps.Keys.ContextualHelp(ui.RouteWelcome)),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Gold).
			Bold(true).
			Align(lipgloss.Center).
			Margin(1, 0),

		quoteStyle: lipgloss.NewStyle().
			Foreground(palette.TextSecondary).
			Italic(true).
			Align(lipgloss.Center).
			Margin(0, 0, 2, 0),

		buttonStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Secondary).
			Bold(true).
			Padding(0, 4),

		tipStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Margin(1, 0, 0, 0),
	}
	s.quote = locale.WelcomeQuote(deps.lang(), deps.Rand)
	return s
}

// Init initializes the welcome screen
func (s *WelcomeScreen) Init() tea.Cmd {
	return nil
}

// Update handles screen updates
func (s *WelcomeScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, s.deps.Keys.Enter) {
			return s, ui.Navigate(ui.RouteSetupFun)
		}

	case ui.LanguageChangedMsg:
		s.quote = locale.WelcomeQuote(s.deps.lang(), s.deps.Rand)
	}
	return s, nil
}

// Quote returns the quote currently shown
func (s *WelcomeScreen) Quote() string {
	return s.quote
}

// View renders the welcome screen
func (s *WelcomeScreen) View() string {
	var b strings.Builder

	b.WriteString(s.titleStyle.Render(s.deps.t(locale.Title)))
	b.WriteString("\n")
	b.WriteString(s.quoteStyle.Render("“" + s.quote + "”"))
	b.WriteString("\n")
	b.WriteString(s.buttonStyle.Render("▶ " + s.deps.t(locale.StartGame)))
	b.WriteString("\n")
	b.WriteString(s.tipStyle.Render(s.deps.t(locale.NewUserTip)))
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())

	return place(s.width, s.height, b.String())
}

// SetSize sets the screen dimensions
func (s *WelcomeScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
}

// place centers content when the terminal is known
func place(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(content))
}
