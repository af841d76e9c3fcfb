package gaming

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/tryluck/internal/history"
	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

// LuckLevel is a rank earned from the number of winning rounds
type LuckLevel struct {
	Level   int
	Badge   string
	Titles  map[locale.Language]string
	MinWins int
	Color   lipgloss.Color
}

// Title returns the level title in lang, falling back to Chinese
func (l LuckLevel) Title(lang locale.Language) string {
	if t, ok := l.Titles[lang]; ok {
		return t
	}
	return l.Titles[locale.Chinese]
}

// LuckLevels is ordered by MinWins ascending.
var LuckLevels = []LuckLevel{
	{
		Level:   1,
		Badge:   "L1",
		Titles:  map[locale.Language]string{locale.Chinese: "韭菜", locale.English: "Rookie"},
		MinWins: 0,
		Color:   style.Base01,
	},
	{
		Level:   2,
		Badge:   "L2",
		Titles:  map[locale.Language]string{locale.Chinese: "小散", locale.English: "Trader"},
		MinWins: 1,
		Color:   style.Yellow,
	},
	{
		Level:   3,
		Badge:   "L3",
		Titles:  map[locale.Language]string{locale.Chinese: "老手", locale.English: "Pro"},
		MinWins: 5,
		Color:   style.Blue,
	},
	{
		Level:   4,
		Badge:   "L4",
		Titles:  map[locale.Language]string{locale.Chinese: "大户", locale.English: "Whale"},
		MinWins: 15,
		Color:   style.Purple,
	},
	{
		Level:   5,
		Badge:   "L5",
		Titles:  map[locale.Language]string{locale.Chinese: "赌神", locale.English: "Legend"},
		MinWins: 40,
		Color:   style.Green,
	},
}

// CalculateLevel returns the highest level reached with wins
func CalculateLevel(wins int) LuckLevel {
	current := LuckLevels[0]
	for _, level := range LuckLevels {
		if wins >= level.MinWins {
			current = level
		}
	}
	return current
}

// LevelFor derives the level from journal statistics
func LevelFor(stats history.Statistics) LuckLevel {
	return CalculateLevel(stats.Wins)
}

// NextLevel returns the level after current, if any
func NextLevel(current LuckLevel) (LuckLevel, bool) {
	for i, level := range LuckLevels {
		if level.Level == current.Level && i < len(LuckLevels)-1 {
			return LuckLevels[i+1], true
		}
	}
	return LuckLevel{}, false
}

// ProgressToNext returns the percentage of wins collected towards the next level.
// The top level always reports 100.
func ProgressToNext(wins int) float64 {
	current := CalculateLevel(wins)
	next, ok := NextLevel(current)
	if !ok {
		return 100
	}

	span := next.MinWins - current.MinWins
	if span <= 0 {
		return 100
	}
	pct := float64(wins-current.MinWins) / float64(span) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// BadgeStyle renders luck level badges
type BadgeStyle struct {
	badge lipgloss.Style
	title lipgloss.Style
	muted lipgloss.Style
}

// NewBadgeStyle creates the styles for level
func NewBadgeStyle(level LuckLevel) BadgeStyle {
	palette := style.DefaultPalette()

	return BadgeStyle{
		badge: lipgloss.NewStyle().
			Foreground(level.Color).
			Background(palette.BackgroundAlt).
			Bold(true).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Foreground(level.Color).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}
}

// RenderBadge renders the badge alone, e.g. "L3"
func (s BadgeStyle) RenderBadge(level LuckLevel) string {
	return s.badge.Render(level.Badge)
}

// RenderFull renders badge and title, e.g. "L3 Pro"
func (s BadgeStyle) RenderFull(level LuckLevel, lang locale.Language) string {
	return lipgloss.JoinHorizontal(lipgloss.Left,
		s.badge.Render(level.Badge), " ", s.title.Render(level.Title(lang)))
}

// RenderProgress renders badge, title and the wins still missing for the next level
func (s BadgeStyle) RenderProgress(wins int, lang locale.Language) string {
	level := CalculateLevel(wins)
	full := s.RenderFull(level, lang)

	next, ok := NextLevel(level)
	if !ok {
		return full
	}
	return full + s.muted.Render(fmt.Sprintf(" %.0f%% → %s", ProgressToNext(wins), next.Badge))
}
