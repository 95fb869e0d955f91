package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memarena/arena"
	"github.com/joshuapare/memarena/internal/logger"
	"github.com/joshuapare/memarena/region"
)

const defaultArenaSize = 64 * 1024

var (
	arenaSize    int
	pageSize     int
	providerName string
	scriptFile   string
)

// addArenaFlags registers the flags shared by every command that builds an arena.
func addArenaFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&arenaSize, "size", defaultArenaSize, "Region size in bytes (rounded up to the page size)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Page size for the heap provider (default: OS page size)")
	cmd.Flags().StringVar(&providerName, "provider", "anon", "Region provider: anon (mmap) or heap")
	cmd.Flags().StringVarP(&scriptFile, "file", "f", "", "Read operations from a script file (- for stdin)")
}

// trackingProvider remembers the region it handed out so the session can
// unmap it on exit.
type trackingProvider struct {
	arena.Provider
	region []byte
}

func (p *trackingProvider) Acquire(n int) ([]byte, error) {
	b, err := p.Provider.Acquire(n)
	if err == nil {
		p.region = b
	}
	return b, err
}

func newProvider() (arena.Provider, error) {
	switch strings.ToLower(providerName) {
	case "anon", "":
		if pageSize != 0 {
			return nil, fmt.Errorf("--page-size only applies to the heap provider")
		}
		return region.Anonymous{}, nil
	case "heap":
		return region.Heap{Page: pageSize}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want anon or heap)", providerName)
	}
}

// openArena builds and initializes an arena from the command flags. The
// returned function releases the region and must be called when done.
func openArena() (*arena.Arena, func(), error) {
	p, err := newProvider()
	if err != nil {
		return nil, nil, err
	}
	tp := &trackingProvider{Provider: p}

	a := arena.New(tp, &arena.Options{Logger: logger.L})
	if err := a.Init(arenaSize); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize arena: %w", err)
	}
	printVerbose("Region: %d bytes (page %d, provider %s)\n", a.RegionSize(), p.PageSize(), providerName)

	release := func() {
		if err := region.Unmap(tp.region); err != nil {
			logger.L.Warn("unmap failed", "err", err)
		}
	}
	return a, release, nil
}
