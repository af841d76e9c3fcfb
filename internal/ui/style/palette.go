package style

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Cyan    = lipgloss.Color("#00E5FF") // Primary highlight
	Magenta = lipgloss.Color("#FF1B6B") // Accent / buttons
	Yellow  = lipgloss.Color("#FFB500") // Warnings / experience gold
	Green   = lipgloss.Color("#2AFFAA") // Profit
	Red     = lipgloss.Color("#FF5555") // Loss
	Blue    = lipgloss.Color("#3B82F6") // Info
	Purple  = lipgloss.Color("#8B5CF6") // Entertainment mode

	Base03 = lipgloss.Color("#1B1D23") // Background
	Base02 = lipgloss.Color("#262831") // Darker background
	Base01 = lipgloss.Color("#6C7280") // Muted text
	Base2  = lipgloss.Color("#ECEFF4") // Primary text
	Base1  = lipgloss.Color("#B4BCC8") // Secondary text
)

// Palette provides a centralized color management
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color

	Background    lipgloss.Color
	BackgroundAlt lipgloss.Color
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	TextSecondary lipgloss.Color

	Long  lipgloss.Color
	Short lipgloss.Color
	Gold  lipgloss.Color

	RealBadge lipgloss.Color
	FunBadge  lipgloss.Color

	EntryLine      lipgloss.Color
	TakeProfitLine lipgloss.Color
	StopLossLine   lipgloss.Color
}

// DefaultPalette returns the default color palette
func DefaultPalette() Palette {
	return Palette{
		Primary:   Cyan,
		Secondary: Magenta,
		Success:   Green,
		Error:     Red,
		Warning:   Yellow,
		Info:      Blue,

		Background:    Base03,
		BackgroundAlt: Base02,
		Text:          Base2,
		TextMuted:     Base01,
		TextSecondary: Base1,

		Long:  Green,
		Short: Red,
		Gold:  Yellow,

		RealBadge: Magenta,
		FunBadge:  Purple,

		EntryLine:      Base1,
		TakeProfitLine: Green,
		StopLossLine:   Red,
	}
}

// PnLColor picks the profit or loss color for a signed value
func (p Palette) PnLColor(v float64) lipgloss.Color {
	if v >= 0 {
		return p.Success
	}
	return p.Error
}
