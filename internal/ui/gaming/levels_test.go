package gaming

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rovshanmuradov/tryluck/internal/history"
	"github.com/rovshanmuradov/tryluck/internal/locale"
)

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		wins  int
		badge string
	}{
		{0, "L1"},
		{1, "L2"},
		{4, "L2"},
		{5, "L3"},
		{15, "L4"},
		{39, "L4"},
		{40, "L5"},
		{1000, "L5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.badge, CalculateLevel(tt.wins).Badge, "wins=%d", tt.wins)
	}
}

func TestLevelFor(t *testing.T) {
	level := LevelFor(history.Statistics{Rounds: 10, Wins: 6})
	assert.Equal(t, "L3", level.Badge)
}

func TestNextLevel(t *testing.T) {
	next, ok := NextLevel(LuckLevels[0])
	assert.True(t, ok)
	assert.Equal(t, 2, next.Level)

	_, ok = NextLevel(LuckLevels[len(LuckLevels)-1])
	assert.False(t, ok)
}

func TestProgressToNext(t *testing.T) {
	assert.Equal(t, 0.0, ProgressToNext(0))
	assert.Equal(t, 50.0, ProgressToNext(10))
	assert.Equal(t, 100.0, ProgressToNext(40))
}

func TestTitleFallsBackToChinese(t *testing.T) {
	level := CalculateLevel(0)
	assert.Equal(t, "Rookie", level.Title(locale.English))
	assert.Equal(t, "韭菜", level.Title(locale.Language("xx")))
}

func TestRenderProgress(t *testing.T) {
	level := CalculateLevel(10)
	s := NewBadgeStyle(level)

	out := s.RenderProgress(10, locale.English)
	assert.Contains(t, out, "L3")
	assert.Contains(t, out, "Pro")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "L4")

	top := s.RenderProgress(50, locale.English)
	assert.NotContains(t, top, "%")
}
