package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joshuapare/memarena/arena"
)

type opKind int

const (
	opAlloc opKind = iota + 1
	opFree
	opDump
	opStats
	opCheck
)

// op is one parsed script line.
//
// Grammar (one op per line, // starts a comment):
//
//	alloc <size>     allocate; the result is labelled #1, #2, ... in order
//	free #<label>    release the handle returned by the labelled alloc
//	free <handle>    release a raw handle, decimal or 0x-prefixed hex
//	dump             print the block table
//	stats            print totals and counters
//	check            verify the block list invariants
type op struct {
	Line   int
	Text   string
	Kind   opKind
	Size   int
	Label  int
	Handle arena.Handle
}

// readScript collects ops from the --file script (if any) followed by the
// positional arguments, each of which is one op. With neither, ops are read
// from stdin.
func readScript(args []string) ([]op, error) {
	var ops []op

	src := scriptFile
	if src == "" && len(args) == 0 {
		src = "-"
	}

	if src != "" {
		r := io.Reader(os.Stdin)
		if src != "-" {
			f, err := os.Open(src)
			if err != nil {
				return nil, fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
			r = f
		}
		parsed, err := parseScript(r)
		if err != nil {
			return nil, err
		}
		ops = append(ops, parsed...)
	}

	for _, arg := range args {
		o, ok, err := parseOp(len(ops)+1, arg)
		if err != nil {
			return nil, err
		}
		if ok {
			ops = append(ops, o)
		}
	}
	return ops, nil
}

// parseScript parses one op per line.
func parseScript(r io.Reader) ([]op, error) {
	var ops []op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		o, ok, err := parseOp(line, sc.Text())
		if err != nil {
			return nil, err
		}
		if ok {
			ops = append(ops, o)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ops, nil
}

// parseOp parses a single line. ok is false for blank and comment-only lines.
func parseOp(line int, text string) (o op, ok bool, err error) {
	if i := strings.Index(text, "//"); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return op{}, false, nil
	}

	o = op{Line: line, Text: strings.Join(fields, " ")}
	bad := func(format string, args ...any) (op, bool, error) {
		return op{}, false, fmt.Errorf("line %d: %q: %s", line, o.Text, fmt.Sprintf(format, args...))
	}

	switch cmd := strings.ToLower(fields[0]); cmd {
	case "alloc":
		if len(fields) != 2 {
			return bad("usage: alloc <size>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return bad("size must be an integer")
		}
		o.Kind, o.Size = opAlloc, n

	case "free":
		if len(fields) != 2 {
			return bad("usage: free #<label> | free <handle>")
		}
		arg := fields[1]
		if label, found := strings.CutPrefix(arg, "#"); found {
			k, err := strconv.Atoi(label)
			if err != nil || k < 1 {
				return bad("label must be #1 or greater")
			}
			o.Kind, o.Label = opFree, k
			break
		}
		h, err := strconv.ParseUint(arg, 0, 32)
		if err != nil {
			return bad("handle must be a 32-bit number")
		}
		o.Kind, o.Handle = opFree, arena.Handle(h)

	case "dump", "stats", "check":
		if len(fields) != 1 {
			return bad("%s takes no arguments", cmd)
		}
		o.Kind = map[string]opKind{"dump": opDump, "stats": opStats, "check": opCheck}[cmd]

	default:
		return bad("unknown operation %q", fields[0])
	}
	return o, true, nil
}
