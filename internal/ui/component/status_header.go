package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

// StatusHeader shows the title, the balance and the play mode
type StatusHeader struct {
	lang           locale.Language
	balance        decimal.Decimal
	experienceGold bool
	real           bool
	style          StatusHeaderStyle
	width          int
}

// StatusHeaderStyle contains all styling for the status header
type StatusHeaderStyle struct {
	container lipgloss.Style
	title     lipgloss.Style
	label     lipgloss.Style
	balance   lipgloss.Style
	gold      lipgloss.Style
	realBadge lipgloss.Style
	funBadge  lipgloss.Style
	language  lipgloss.Style
}

// NewStatusHeader creates a new status header component
func NewStatusHeader() *StatusHeader {
	palette := style.DefaultPalette()
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(palette.Background)

	return &StatusHeader{
		lang:    locale.Default,
		balance: decimal.Zero,
		style: StatusHeaderStyle{
			container: lipgloss.NewStyle().
				Foreground(palette.Text).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(0, 2),

			title: lipgloss.NewStyle().
				Foreground(palette.Primary).
				Bold(true),

			label: lipgloss.NewStyle().
				Foreground(palette.TextSecondary),

			balance: lipgloss.NewStyle().
				Foreground(palette.Text).
				Bold(true),

			gold: lipgloss.NewStyle().
				Foreground(palette.Gold).
				Bold(true),

			realBadge: badge.Background(palette.RealBadge),
			funBadge:  badge.Background(palette.FunBadge),

			language: lipgloss.NewStyle().
				Foreground(palette.TextMuted),
		},
	}
}

// SetLanguage sets the display language
func (sh *StatusHeader) SetLanguage(lang locale.Language) *StatusHeader {
	sh.lang = lang
	return sh
}

// SetBalance updates the balance. gold marks it as experience gold.
func (sh *StatusHeader) SetBalance(balance decimal.Decimal, gold bool) *StatusHeader {
	sh.balance = balance
	sh.experienceGold = gold
	return sh
}

// SetReal switches the mode badge
func (sh *StatusHeader) SetReal(real bool) *StatusHeader {
	sh.real = real
	return sh
}

// SetWidth sets the component width for responsive layout
func (sh *StatusHeader) SetWidth(width int) *StatusHeader {
	sh.width = width
	return sh
}

// Height is the number of rows the header occupies
func (sh *StatusHeader) Height() int {
	return lipgloss.Height(sh.View())
}

// View renders the status header
func (sh *StatusHeader) View() string {
	title := sh.style.title.Render(strings.ReplaceAll(locale.T(sh.lang, locale.Title), "\n", " "))

	label := locale.T(sh.lang, locale.Balance)
	amountStyle := sh.style.balance
	if sh.experienceGold {
		label = locale.T(sh.lang, locale.ExpGold)
		amountStyle = sh.style.gold
	}
	balance := sh.style.label.Render(label) + amountStyle.Render(sh.balance.StringFixed(2)+" U")

	badge := sh.style.funBadge.Render("FUN")
	if sh.real {
		badge = sh.style.realBadge.Render("REAL")
	}

	lang := sh.style.language.Render("ctrl+t " + locale.T(sh.lang, locale.LanguageLabel))

	content := lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", balance, "  ", badge, "  ", lang)

	container := sh.style.container
	if sh.width > 4 {
		container = container.Width(sh.width - 2)
	}
	return container.Render(content)
}
