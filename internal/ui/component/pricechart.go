package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

// domainPad widens the y-range so the reference lines never sit on the border.
const domainPad = 0.0005

// labelWidth is reserved on the right for the level labels.
const labelWidth = 14

type cellKind int

const (
	cellEmpty cellKind = iota
	cellEntry
	cellTakeProfit
	cellStopLoss
	cellLine
	cellPoint
)

// PriceChart is a multi-row price chart with entry, take profit and stop loss
// reference lines. The full history is downsampled to the plot width.
type PriceChart struct {
	data   []float64
	width  int
	height int

	entry      float64
	takeProfit float64
	stopLoss   float64

	styles map[cellKind]lipgloss.Style
}

// NewPriceChart creates a chart of the given size
func NewPriceChart(width, height int) *PriceChart {
	palette := style.DefaultPalette()
	return &PriceChart{
		width:  width,
		height: height,
		styles: map[cellKind]lipgloss.Style{
			cellEmpty:      lipgloss.NewStyle(),
			cellEntry:      lipgloss.NewStyle().Foreground(palette.EntryLine),
			cellTakeProfit: lipgloss.NewStyle().Foreground(palette.TakeProfitLine),
			cellStopLoss:   lipgloss.NewStyle().Foreground(palette.StopLossLine),
			cellLine:       lipgloss.NewStyle().Foreground(palette.Primary),
			cellPoint:      lipgloss.NewStyle().Foreground(palette.Primary).Bold(true),
		},
	}
}

// SetSize sets the chart size including the label column
func (c *PriceChart) SetSize(width, height int) *PriceChart {
	c.width = width
	c.height = height
	return c
}

// SetLevels sets the reference prices
func (c *PriceChart) SetLevels(entry, takeProfit, stopLoss float64) *PriceChart {
	c.entry = entry
	c.takeProfit = takeProfit
	c.stopLoss = stopLoss
	return c
}

// SetData replaces the price series
func (c *PriceChart) SetData(data []float64) *PriceChart {
	c.data = data
	return c
}

func (c *PriceChart) plotWidth() int {
	return c.width - labelWidth
}

// Domain returns the padded y-range covering the data and every reference level
func (c *PriceChart) Domain() (float64, float64) {
	values := make([]float64, 0, len(c.data)+3)
	values = append(values, c.data...)
	for _, lvl := range []float64{c.entry, c.takeProfit, c.stopLoss} {
		if lvl > 0 {
			values = append(values, lvl)
		}
	}
	if len(values) == 0 {
		return 0, 0
	}

	lo, hi := minMax(values)
	return lo * (1 - domainPad), hi * (1 + domainPad)
}

// Row maps a price to a chart row, 0 being the top
func (c *PriceChart) Row(price float64) int {
	lo, hi := c.Domain()
	if hi <= lo || c.height <= 1 {
		return 0
	}
	row := int((hi-price)/(hi-lo)*float64(c.height-1) + 0.5)
	if row < 0 {
		return 0
	}
	if row >= c.height {
		return c.height - 1
	}
	return row
}

// View renders the chart
func (c *PriceChart) View() string {
	w := c.plotWidth()
	if w <= 0 || c.height <= 0 {
		return ""
	}

	grid := make([][]cellKind, c.height)
	for i := range grid {
		grid[i] = make([]cellKind, w)
	}
	labels := make([]string, c.height)

	c.drawLevel(grid, labels, c.entry, cellEntry, "")
	c.drawLevel(grid, labels, c.stopLoss, cellStopLoss, "SL")
	c.drawLevel(grid, labels, c.takeProfit, cellTakeProfit, "TP")

	points := Downsample(c.data, w)
	prev := -1
	for x, p := range points {
		row := c.Row(p)
		if prev >= 0 {
			from, to := prev, row
			if from > to {
				from, to = to, from
			}
			for y := from; y <= to; y++ {
				grid[y][x] = cellLine
			}
		}
		grid[row][x] = cellPoint
		prev = row
	}

	lines := make([]string, c.height)
	for y, cells := range grid {
		lines[y] = c.renderRow(cells) + labels[y]
	}
	return strings.Join(lines, "\n")
}

func (c *PriceChart) drawLevel(grid [][]cellKind, labels []string, price float64, kind cellKind, name string) {
	if price <= 0 {
		return
	}
	row := c.Row(price)
	for x := range grid[row] {
		grid[row][x] = kind
	}

	text := fmt.Sprintf(" %.2f", price)
	if name != "" {
		text = fmt.Sprintf(" %s %.2f", name, price)
	}
	labels[row] = c.styles[kind].Render(text)
}

func (c *PriceChart) renderRow(cells []cellKind) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(cells); i++ {
		if i < len(cells) && cells[i] == cells[start] {
			continue
		}
		kind := cells[start]
		b.WriteString(c.styles[kind].Render(strings.Repeat(glyph(kind), i-start)))
		start = i
	}
	return b.String()
}

func glyph(kind cellKind) string {
	switch kind {
	case cellEntry:
		return "┈"
	case cellTakeProfit, cellStopLoss:
		return "─"
	case cellLine:
		return "│"
	case cellPoint:
		return "•"
	default:
		return " "
	}
}
