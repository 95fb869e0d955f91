package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#383838")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(successColor)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)
)

func blockTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(primaryColor).
		Bold(true)
	return s
}

// View renders the explorer. The help box is drawn over the main view.
func (m explorerModel) View() string {
	if m.showHelp {
		help := overlay.New(
			helpView{keys: m.keys},
			mainView{m: m},
			overlay.Center, // horizontal position
			overlay.Center, // vertical position
			0,
			0,
		)
		return help.View()
	}
	return m.renderMain()
}

func (m explorerModel) renderMain() string {
	header := headerStyle.Render("Arena Explorer")

	summary := summaryStyle.Render(fmt.Sprintf(
		"region %d bytes  blocks %d (%d busy, %d free)  busy %d  free %d  largest free %d",
		m.a.RegionSize(), m.stats.Blocks, m.stats.BusyBlocks, m.stats.FreeBlocks,
		m.stats.BusyBytes, m.stats.FreeBytes, m.stats.LargestFree,
	))

	status := ""
	if m.status != "" {
		if m.isError {
			status = statusErrorStyle.Render(m.status)
		} else {
			status = statusOKStyle.Render(m.status)
		}
	}

	bottom := footerStyle.Render(": op  a alloc  f free  y copy  ? help  q quit")
	if m.typing {
		bottom = m.input.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		summary,
		paneStyle.Render(m.table.View()),
		status,
		bottom,
	)
}

// mainView adapts the explorer's main screen to tea.Model for the overlay.
type mainView struct{ m explorerModel }

func (v mainView) Init() tea.Cmd                       { return nil }
func (v mainView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v mainView) View() string                        { return v.m.renderMain() }

// helpView is the key reference shown by '?'.
type helpView struct{ keys explorerKeys }

func (v helpView) Init() tea.Cmd                       { return nil }
func (v helpView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }

func (v helpView) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, k := range v.keys.helpBindings() {
		h := k.Help()
		fmt.Fprintf(&b, "%-8s %s\n", h.Key, h.Desc)
	}
	b.WriteString("\nOperations: alloc <n>, free #k, free <handle>, check")
	return helpBoxStyle.Render(b.String())
}
