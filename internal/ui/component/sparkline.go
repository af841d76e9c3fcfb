package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline is a one-row trend graph, used for the price path of a finished round
type Sparkline struct {
	data  []float64
	width int
	style lipgloss.Style
	color lipgloss.Color
}

// NewSparkline creates a new sparkline component
func NewSparkline(width int) *Sparkline {
	return &Sparkline{
		width: width,
		style: lipgloss.NewStyle(),
		color: style.DefaultPalette().Primary,
	}
}

// SetData sets the data points, downsampled to the sparkline width
func (s *Sparkline) SetData(data []float64) *Sparkline {
	s.data = Downsample(data, s.width)
	return s
}

// SetWidth sets the width of the sparkline
func (s *Sparkline) SetWidth(width int) *Sparkline {
	s.width = width
	s.data = Downsample(s.data, width)
	return s
}

// SetColor sets the color for the sparkline
func (s *Sparkline) SetColor(color lipgloss.Color) *Sparkline {
	s.color = color
	return s
}

// View renders the sparkline
func (s *Sparkline) View() string {
	if len(s.data) == 0 {
		return s.style.Render(strings.Repeat("▁", s.width))
	}
	return s.style.Foreground(s.color).Render(s.blocks())
}

func (s *Sparkline) blocks() string {
	lo, hi := minMax(s.data)
	if lo == hi {
		return strings.Repeat("▄", len(s.data))
	}

	var b strings.Builder
	for _, v := range s.data {
		idx := int((v - lo) / (hi - lo) * float64(len(sparkChars)-1))
		if idx < 0 {
			idx = 0
		} else if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

// ChangePercent returns the percentage change from first to last data point
func (s *Sparkline) ChangePercent() float64 {
	if len(s.data) < 2 || s.data[0] == 0 {
		return 0
	}
	first := s.data[0]
	return (s.data[len(s.data)-1] - first) / first * 100
}

// Downsample picks at most n evenly spaced points from data, always keeping
// the first and the last one.
func Downsample(data []float64, n int) []float64 {
	if n <= 0 || len(data) == 0 {
		return nil
	}
	if len(data) <= n {
		out := make([]float64, len(data))
		copy(out, data)
		return out
	}
	if n == 1 {
		return []float64{data[len(data)-1]}
	}

	out := make([]float64, n)
	step := float64(len(data)-1) / float64(n-1)
	for i := range out {
		out[i] = data[int(float64(i)*step+0.5)]
	}
	return out
}

func minMax(data []float64) (float64, float64) {
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
