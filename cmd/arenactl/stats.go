package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/memarena/arena"
)

func init() {
	cmd := newStatsCmd()
	addArenaFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [ops...]",
		Short: "Show arena statistics after running operations",
		Long: `The stats command runs operations silently, the same way run does,
then prints block counts, byte totals and operation counters.

Example:
  arenactl stats "alloc 100" "alloc 200" "free #1"
  arenactl stats --size 1048576 --file workload.txt --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

type statsReport struct {
	RegionSize int `json:"region_size"`
	arena.Stats
}

func runStats(args []string) error {
	ops, err := readScript(args)
	if err != nil {
		return err
	}

	a, release, err := openArena()
	if err != nil {
		return err
	}
	defer release()

	in := &interpreter{a: a, out: io.Discard}
	for _, o := range ops {
		in.exec(o)
	}
	printVerbose("Ran %d operations (%d failed)\n", len(ops), in.failed)

	st, err := a.Stats()
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(statsReport{RegionSize: a.RegionSize(), Stats: st})
	}
	if !quiet {
		writeStats(os.Stdout, a.RegionSize(), st)
	}
	return nil
}

// writeStats prints st with thousands separators.
func writeStats(w io.Writer, regionSize int, st arena.Stats) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Arena Statistics\n")
	p.Fprintf(w, "%s\n", strings.Repeat("=", 40))
	p.Fprintf(w, "Region:        %d bytes\n", regionSize)
	p.Fprintf(w, "Blocks:        %d (%d busy, %d free)\n", st.Blocks, st.BusyBlocks, st.FreeBlocks)
	p.Fprintf(w, "Busy:          %d bytes\n", st.BusyBytes)
	p.Fprintf(w, "Free:          %d bytes\n", st.FreeBytes)
	p.Fprintf(w, "Largest free:  %d bytes\n", st.LargestFree)
	p.Fprintf(w, "Operations:\n")
	p.Fprintf(w, "  Allocations: %d (%d failed)\n", st.Ops.Allocs, st.Ops.AllocFailures)
	p.Fprintf(w, "  Releases:    %d (%d failed)\n", st.Ops.Releases, st.Ops.ReleaseFailures)
	p.Fprintf(w, "  Splits:      %d\n", st.Ops.Splits)
	p.Fprintf(w, "  Merges:      %d right, %d left\n", st.Ops.CoalesceRight, st.Ops.CoalesceLeft)
}
