package main

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memarena/arena"
	"github.com/joshuapare/memarena/region"
)

func newTestExplorer(t *testing.T) explorerModel {
	t.Helper()
	a := arena.New(region.Heap{Page: 4096}, nil)
	require.NoError(t, a.Init(4096))
	m := newExplorer(a)
	m.copy = func(string) error { return nil }
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msgs through Update and returns the resulting model.
func send(t *testing.T, m explorerModel, msgs ...tea.Msg) explorerModel {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		var ok bool
		m, ok = updated.(explorerModel)
		require.True(t, ok)
	}
	return m
}

func TestExplorerInitialTable(t *testing.T) {
	m := newTestExplorer(t)
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "Free", m.table.Rows()[0][1])
	assert.Equal(t, "4080", m.table.Rows()[0][4])
	assert.Contains(t, m.View(), "Arena Explorer")
}

func TestExplorerTypedOperations(t *testing.T) {
	m := newTestExplorer(t)

	m = send(t, m, runes(":"))
	require.True(t, m.typing)

	m = send(t, m, runes("alloc 100"), tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.typing)
	assert.Equal(t, "#1 = 0x00000010", m.status)
	assert.False(t, m.isError)
	require.Len(t, m.table.Rows(), 2)
	assert.Equal(t, "Busy", m.table.Rows()[0][1])

	m = send(t, m, runes("a"), runes("200"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "#2 = 0x00000084", m.status)
	require.Len(t, m.table.Rows(), 3)

	m = send(t, m, runes(":"), runes("free #1"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "released 0x00000010", m.status)
	assert.Equal(t, "Free", m.table.Rows()[0][1])

	m = send(t, m, runes(":"), runes("free #1"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.isError)
	assert.Contains(t, m.status, "block already free")

	m = send(t, m, runes(":"), runes("bogus"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.isError)
	assert.Contains(t, m.status, "unknown operation")
}

func TestExplorerCancelInput(t *testing.T) {
	m := newTestExplorer(t)
	m = send(t, m, runes(":"), runes("alloc 8"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.typing)
	assert.Len(t, m.table.Rows(), 1, "cancelled op does not run")
}

func TestExplorerFreeSelected(t *testing.T) {
	m := newTestExplorer(t)
	m = send(t, m, runes("a"), runes("64"), tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, runes("a"), runes("64"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.table.Rows(), 3)

	// Cursor starts on the first block.
	m = send(t, m, runes("f"))
	assert.Equal(t, "released 0x00000010", m.status)
	assert.Equal(t, "Free", m.table.Rows()[0][1])

	m = send(t, m, runes("f"))
	assert.True(t, m.isError)
	assert.Equal(t, "block 1 is already free", m.status)

	// Second block merges with the free tail and the first block.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("f"))
	assert.False(t, m.isError)
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, 0, m.table.Cursor(), "cursor clamps to the shorter list")
}

func TestExplorerCopy(t *testing.T) {
	m := newTestExplorer(t)
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	m = send(t, m, runes("y"))
	assert.Contains(t, copied, "Block list")
	assert.Contains(t, copied, "Total size = 4096")
	assert.Equal(t, "block table copied to clipboard", m.status)

	m.copy = func(string) error { return errors.New("no clipboard") }
	m = send(t, m, runes("y"))
	assert.True(t, m.isError)
	assert.Contains(t, m.status, "no clipboard")
}

func TestExplorerHelpAndQuit(t *testing.T) {
	m := newTestExplorer(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m = send(t, m, runes("?"))
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "release selected block")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.showHelp)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
