package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joshuapare/memarena/internal/logger"
)

func init() {
	cmd := newExploreCmd()
	addArenaFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [ops...]",
		Short: "Browse the block list interactively",
		Long: `The explore command runs any given operations, then opens a full-screen
view of the block list. Operations can be typed at the prompt, the selected
block can be released, and the block table can be copied to the clipboard.

Keys:
  ↑/k ↓/j   move through the block list
  :         type an operation (alloc, free, check, ...)
  a         start an alloc operation
  f         release the selected block
  y         copy the block table to the clipboard
  ?         show help
  q         quit

Example:
  arenactl explore --size 8192 "alloc 100" "alloc 200"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(args)
		},
	}
	return cmd
}

func runExplore(args []string) error {
	var ops []op
	if scriptFile != "" || len(args) > 0 {
		var err error
		if ops, err = readScript(args); err != nil {
			return err
		}
	}

	a, release, err := openArena()
	if err != nil {
		return err
	}
	defer release()

	m := newExplorer(a)
	for _, o := range ops {
		m.in.exec(o)
	}
	m.refresh()

	logger.L.Info("starting explorer", "region", a.RegionSize(), "ops", len(ops))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("explorer: %w", err)
	}
	return nil
}
