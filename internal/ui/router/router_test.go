package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreen struct {
	name    string
	inits   int
	closed  int
	updates []tea.Msg
	width   int
	height  int
}

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return nil
}

func (f *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	f.updates = append(f.updates, msg)
	return f, nil
}

func (f *fakeScreen) View() string { return f.name }

func (f *fakeScreen) SetSize(w, h int) {
	f.width, f.height = w, h
}

func (f *fakeScreen) Close() error {
	f.closed++
	return nil
}

func TestPushPop(t *testing.T) {
	root := &fakeScreen{name: "root"}
	modal := &fakeScreen{name: "modal"}
	r := New(root)
	r.SetSize(80, 24)

	r.Push(modal)
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "modal", r.View())
	assert.Equal(t, 80, modal.width)
	assert.True(t, r.CanGoBack())

	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "root", r.View())
	assert.Equal(t, 1, modal.closed)
	assert.Equal(t, 0, root.closed)
	assert.Equal(t, 1, root.inits)

	assert.Nil(t, r.Pop(), "last screen stays")
	assert.Equal(t, 1, r.Depth())
}

func TestReplaceClosesWholeStack(t *testing.T) {
	root := &fakeScreen{name: "root"}
	modal := &fakeScreen{name: "modal"}
	next := &fakeScreen{name: "next"}
	r := New(root)
	r.Push(modal)

	r.Replace(next)
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "next", r.View())
	assert.Equal(t, 1, root.closed)
	assert.Equal(t, 1, modal.closed)
	assert.Equal(t, 1, next.inits)
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	root := &fakeScreen{name: "root"}
	r := New(root)

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	r.Update(esc)
	require.Len(t, root.updates, 1, "root receives esc when nothing to pop")

	modal := &fakeScreen{name: "modal"}
	r.Push(modal)
	r.Update(esc)
	assert.Equal(t, 1, r.Depth())
	assert.Empty(t, modal.updates)
}

func TestWindowSizeResizesCurrent(t *testing.T) {
	root := &fakeScreen{name: "root"}
	r := New(root)
	r.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, root.width)
	assert.Equal(t, 30, root.height)
	assert.Empty(t, root.updates)
}

func TestClearAndClose(t *testing.T) {
	root := &fakeScreen{name: "root"}
	a := &fakeScreen{name: "a"}
	b := &fakeScreen{name: "b"}
	r := New(root)
	r.Push(a)
	r.Push(b)

	r.Clear()
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)

	r.Close()
	assert.Equal(t, 1, root.closed)
}
