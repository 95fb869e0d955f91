package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memarena/arena"
)

var runStrict bool

func init() {
	cmd := newRunCmd()
	addArenaFlags(cmd)
	cmd.Flags().BoolVar(&runStrict, "strict", false, "Exit non-zero if any operation fails")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [ops...]",
		Short: "Run a script of alloc/free operations",
		Long: `The run command initializes an arena and executes operations in order,
printing the result of each one. Operations come from --file, then from the
arguments (one operation per argument), or from stdin when neither is given.

Operations:
  alloc <size>     allocate; results are labelled #1, #2, ...
  free #<label>    release a labelled allocation
  free <handle>    release a raw handle (decimal or 0x hex)
  dump             print the block table
  stats            print totals and counters
  check            verify the block list

A failed operation is reported and the script continues.

Example:
  arenactl run --size 4096 "alloc 100" "alloc 200" "free #1" dump
  arenactl run --provider heap --file scenario.txt --strict
  arenactl run --json < scenario.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args)
		},
	}
	return cmd
}

// opResult is the outcome of one op, as reported by --json.
type opResult struct {
	Line   int    `json:"line"`
	Op     string `json:"op"`
	Label  int    `json:"label,omitempty"`
	Handle string `json:"handle,omitempty"`
	Error  string `json:"error,omitempty"`
}

type runReport struct {
	Ops    []opResult        `json:"ops"`
	Failed int               `json:"failed"`
	Blocks []arena.BlockInfo `json:"blocks"`
	Stats  arena.Stats       `json:"stats"`
}

func runScript(args []string) error {
	ops, err := readScript(args)
	if err != nil {
		return err
	}

	a, release, err := openArena()
	if err != nil {
		return err
	}
	defer release()

	in := &interpreter{a: a, out: os.Stdout, echo: !jsonOut && !quiet}
	for _, o := range ops {
		in.exec(o)
	}
	if !jsonOut && in.failed > 0 {
		printInfo("%d of %d operations failed\n", in.failed, len(ops))
	}

	if jsonOut {
		report := runReport{Ops: in.results, Failed: in.failed}
		if report.Blocks, err = a.Blocks(); err != nil {
			return err
		}
		if report.Stats, err = a.Stats(); err != nil {
			return err
		}
		if err := printJSON(report); err != nil {
			return err
		}
	}

	if runStrict && in.failed > 0 {
		return fmt.Errorf("%d of %d operations failed", in.failed, len(ops))
	}
	return nil
}

// interpreter executes ops against an arena and keeps the label table.
type interpreter struct {
	a       *arena.Arena
	out     io.Writer
	echo    bool // print a line per op and the output of dump/stats/check
	labels  []arena.Handle
	results []opResult
	failed  int
}

func (in *interpreter) exec(o op) {
	res := opResult{Line: o.Line, Op: o.Text}
	err := in.apply(o, &res)
	if err != nil {
		in.failed++
		res.Error = err.Error()
		if in.echo {
			fmt.Fprintf(in.out, "line %d: %s: %v\n", o.Line, o.Text, err)
		}
	}
	in.results = append(in.results, res)
}

func (in *interpreter) apply(o op, res *opResult) error {
	switch o.Kind {
	case opAlloc:
		h, err := in.a.Allocate(o.Size)
		// Failed allocations still take a label so that #k always names the
		// k-th alloc line; freeing one releases Nil.
		in.labels = append(in.labels, h)
		res.Label = len(in.labels)
		if err != nil {
			return err
		}
		res.Handle = fmt.Sprintf("0x%08x", uint32(h))
		if in.echo {
			fmt.Fprintf(in.out, "#%d = %s (%s)\n", res.Label, res.Handle, o.Text)
		}
		return nil

	case opFree:
		h := o.Handle
		if o.Label > 0 {
			if o.Label > len(in.labels) {
				return fmt.Errorf("no allocation labelled #%d", o.Label)
			}
			h = in.labels[o.Label-1]
			res.Label = o.Label
		}
		res.Handle = fmt.Sprintf("0x%08x", uint32(h))
		if err := in.a.Release(h); err != nil {
			return err
		}
		if in.echo {
			fmt.Fprintf(in.out, "%s (%s)\n", o.Text, res.Handle)
		}
		return nil

	case opDump:
		if !in.echo {
			return nil
		}
		return in.a.Dump(in.out)

	case opStats:
		st, err := in.a.Stats()
		if err != nil {
			return err
		}
		if in.echo {
			writeStats(in.out, in.a.RegionSize(), st)
		}
		return nil

	case opCheck:
		if err := in.a.Check(); err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		if in.echo {
			fmt.Fprintln(in.out, "check: ok")
		}
		return nil
	}
	return fmt.Errorf("unsupported operation %q", o.Text)
}
