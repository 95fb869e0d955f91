package main

import "github.com/charmbracelet/bubbles/key"

// explorerKeys defines the explorer's keyboard shortcuts.
type explorerKeys struct {
	Up      key.Binding
	Down    key.Binding
	Command key.Binding
	Alloc   key.Binding
	Free    key.Binding
	Copy    key.Binding
	Help    key.Binding
	Submit  key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func defaultExplorerKeys() explorerKeys {
	return explorerKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "type an operation"),
		),
		Alloc: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "allocate"),
		),
		Free: key.NewBinding(
			key.WithKeys("f", "delete"),
			key.WithHelp("f", "release selected block"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy block table"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run operation"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpBindings lists the bindings shown in the help overlay, in order.
func (k explorerKeys) helpBindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Command, k.Alloc, k.Free, k.Copy, k.Submit, k.Cancel, k.Help, k.Quit}
}
