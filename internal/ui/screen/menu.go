package screen

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/tryluck/internal/ui/style"
)

// MenuItem is one selectable action of a screen
type MenuItem struct {
	Label  string
	Hint   string
	Accent lipgloss.Color
	Action func() tea.Cmd
}

// menu is a vertical list of actions with a wrapping cursor
type menu struct {
	items    []MenuItem
	selected int

	itemStyle     lipgloss.Style
	selectedStyle lipgloss.Style
	hintStyle     lipgloss.Style
}

func newMenu() *menu {
	palette := style.DefaultPalette()
	return &menu{
		itemStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 2),

		selectedStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 2).
			Bold(true),

		hintStyle: lipgloss.NewStyle().
			Foreground(palette.Gold).
			Padding(0, 4).
			Italic(true),
	}
}

func (m *menu) setItems(items []MenuItem) {
	m.items = items
	if m.selected >= len(items) {
		m.selected = 0
	}
}

func (m *menu) moveUp() {
	if len(m.items) == 0 {
		return
	}
	if m.selected > 0 {
		m.selected--
	} else {
		m.selected = len(m.items) - 1
	}
}

func (m *menu) moveDown() {
	if len(m.items) == 0 {
		return
	}
	if m.selected < len(m.items)-1 {
		m.selected++
	} else {
		m.selected = 0
	}
}

func (m *menu) activate() tea.Cmd {
	if m.selected >= len(m.items) || m.items[m.selected].Action == nil {
		return nil
	}
	return m.items[m.selected].Action()
}

func (m *menu) View() string {
	rows := make([]string, 0, len(m.items)*2)
	for i, item := range m.items {
		st := m.itemStyle
		if i == m.selected {
			st = m.selectedStyle
			if item.Accent != "" {
				st = st.Background(item.Accent)
			}
		}
		rows = append(rows, st.Render("▸ "+item.Label))
		if item.Hint != "" {
			rows = append(rows, m.hintStyle.Render(item.Hint))
		}
	}
	return strings.Join(rows, "\n")
}
