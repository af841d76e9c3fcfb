package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

// PnLGauge shows how far the current PnL has travelled towards the stop
// loss (left half) or the take profit (right half).
type PnLGauge struct {
	value     float64 // PnL percentage
	width     int
	profitEnd float64 // take profit percent, right edge
	lossEnd   float64 // stop loss percent, left edge
	showValue bool
}

// NewPnLGauge creates a new PnL gauge component
func NewPnLGauge(width int) *PnLGauge {
	return &PnLGauge{
		width:     width,
		profitEnd: 20,
		lossEnd:   20,
		showValue: true,
	}
}

// SetValue sets the PnL percentage value
func (p *PnLGauge) SetValue(value float64) *PnLGauge {
	p.value = value
	return p
}

// SetWidth sets the gauge width
func (p *PnLGauge) SetWidth(width int) *PnLGauge {
	p.width = width
	return p
}

// SetBounds sets the take profit and stop loss percents the gauge spans.
// Non-positive bounds are ignored.
func (p *PnLGauge) SetBounds(takeProfit, stopLoss float64) *PnLGauge {
	if takeProfit > 0 {
		p.profitEnd = takeProfit
	}
	if stopLoss > 0 {
		p.lossEnd = stopLoss
	}
	return p
}

// SetShowValue enables/disables value display
func (p *PnLGauge) SetShowValue(show bool) *PnLGauge {
	p.showValue = show
	return p
}

// Fill returns the filled fraction of the active half in [0, 1]
func (p *PnLGauge) Fill() float64 {
	switch {
	case p.value > 0:
		return math.Min(p.value/p.profitEnd, 1)
	case p.value < 0:
		return math.Min(-p.value/p.lossEnd, 1)
	default:
		return 0
	}
}

// View renders the PnL gauge
func (p *PnLGauge) View() string {
	palette := style.DefaultPalette()
	color := palette.TextMuted
	if p.value != 0 {
		color = palette.PnLColor(p.value)
	}

	bar := p.bar(palette)
	if !p.showValue {
		return bar
	}

	text := lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(fmt.Sprintf("%+.2f%%", p.value))
	return bar + " " + text
}

func (p *PnLGauge) bar(palette style.Palette) string {
	half := (p.width - 1) / 2
	if half <= 0 {
		return ""
	}

	filled := int(p.Fill()*float64(half) + 0.5)
	if filled == 0 && p.value != 0 {
		filled = 1
	}

	empty := lipgloss.NewStyle().Foreground(palette.TextMuted)
	loss := lipgloss.NewStyle().Foreground(palette.StopLossLine)
	profit := lipgloss.NewStyle().Foreground(palette.TakeProfitLine)

	left := empty.Render(strings.Repeat("─", half))
	right := empty.Render(strings.Repeat("─", half))
	if p.value < 0 {
		left = empty.Render(strings.Repeat("─", half-filled)) + loss.Render(strings.Repeat("━", filled))
	} else if p.value > 0 {
		right = profit.Render(strings.Repeat("━", filled)) + empty.Render(strings.Repeat("─", half-filled))
	}

	return loss.Render("SL ") + left + empty.Render("│") + right + profit.Render(" TP")
}
