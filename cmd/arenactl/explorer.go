package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memarena/arena"
	"github.com/joshuapare/memarena/internal/logger"
)

// explorerModel is the bubbletea model behind arenactl explore.
type explorerModel struct {
	a    *arena.Arena
	in   *interpreter
	keys explorerKeys

	table  table.Model
	input  textinput.Model
	blocks []arena.BlockInfo
	stats  arena.Stats

	typing   bool
	showHelp bool
	status   string
	isError  bool

	width  int
	height int

	// copy writes text to the system clipboard.
	copy func(string) error
}

var blockColumns = []table.Column{
	{Title: "No.", Width: 5},
	{Title: "Status", Width: 6},
	{Title: "Begin", Width: 10},
	{Title: "End", Width: 10},
	{Title: "Size", Width: 10},
	{Title: "Total", Width: 10},
	{Title: "Header", Width: 10},
}

func newExplorer(a *arena.Arena) explorerModel {
	t := table.New(
		table.WithColumns(blockColumns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(blockTableStyles())

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "alloc 100 | free #1 | free 0x10 | check"
	ti.CharLimit = 64

	m := explorerModel{
		a:     a,
		in:    &interpreter{a: a, out: io.Discard},
		keys:  defaultExplorerKeys(),
		table: t,
		input: ti,
		copy:  clipboard.WriteAll,
	}
	m.refresh()
	return m
}

// refresh reloads the block table and stats from the arena.
func (m *explorerModel) refresh() {
	blocks, err := m.a.Blocks()
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	st, err := m.a.Stats()
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.blocks, m.stats = blocks, st

	rows := make([]table.Row, len(blocks))
	for i, b := range blocks {
		rows[i] = table.Row{
			strconv.Itoa(b.Index),
			b.Status.String(),
			fmt.Sprintf("0x%08x", b.Begin),
			fmt.Sprintf("0x%08x", b.End),
			strconv.Itoa(b.Size),
			strconv.Itoa(b.TotalSize),
			fmt.Sprintf("0x%08x", b.Header),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *explorerModel) setStatus(msg string, isError bool) {
	m.status, m.isError = msg, isError
}

// run executes o and reports its result in the status line.
func (m *explorerModel) run(o op) {
	m.in.exec(o)
	res := m.in.results[len(m.in.results)-1]
	switch {
	case res.Error != "":
		m.setStatus(fmt.Sprintf("%s: %s", o.Text, res.Error), true)
	case o.Kind == opAlloc:
		m.setStatus(fmt.Sprintf("#%d = %s", res.Label, res.Handle), false)
	case o.Kind == opFree:
		m.setStatus(fmt.Sprintf("released %s", res.Handle), false)
	default:
		m.setStatus(o.Text+": ok", false)
	}
	logger.L.Debug("explorer op", "op", o.Text, "err", res.Error)
	m.refresh()
}

func (m explorerModel) Init() tea.Cmd {
	return nil
}

func (m explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(3, msg.Height-9))
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			return m.handleInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m explorerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel):
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.typing = true
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Alloc):
		m.typing = true
		m.input.SetValue("alloc ")
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Free):
		m.freeSelected()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		var buf bytes.Buffer
		if err := m.a.Dump(&buf); err != nil {
			m.setStatus(err.Error(), true)
		} else if err := m.copy(buf.String()); err != nil {
			m.setStatus("copy failed: "+err.Error(), true)
		} else {
			m.setStatus("block table copied to clipboard", false)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m explorerModel) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.typing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.typing = false
		m.input.Blur()
		o, ok, err := parseOp(len(m.in.results)+1, m.input.Value())
		switch {
		case err != nil:
			m.setStatus(err.Error(), true)
		case ok:
			m.run(o)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// freeSelected releases the block under the cursor.
func (m *explorerModel) freeSelected() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.blocks) {
		return
	}
	b := m.blocks[i]
	if b.Status != arena.StatusBusy {
		m.setStatus(fmt.Sprintf("block %d is already free", b.Index), true)
		return
	}
	m.run(op{
		Line:   len(m.in.results) + 1,
		Text:   fmt.Sprintf("free 0x%x", b.Begin),
		Kind:   opFree,
		Handle: arena.Handle(b.Begin),
	})
}
