package arena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memarena/region"
)

const testPage = 4096

// newTestArena returns an arena initialized with a heap region of size bytes
// rounded to 4KB pages.
func newTestArena(t *testing.T, size int) *Arena {
	t.Helper()
	a := New(region.Heap{Page: testPage}, nil)
	require.NoError(t, a.Init(size))
	return a
}

// shape is the part of a block that round-trip laws compare.
type shape struct {
	Status Status
	Size   int
}

func shapeOf(t *testing.T, a *Arena) []shape {
	t.Helper()
	blocks, err := a.Blocks()
	require.NoError(t, err)
	out := make([]shape, len(blocks))
	for i, b := range blocks {
		out[i] = shape{Status: b.Status, Size: b.Size}
	}
	return out
}

func requireShape(t *testing.T, a *Arena, want ...shape) {
	t.Helper()
	require.Equal(t, want, shapeOf(t, a))
	require.NoError(t, a.Check())
}

func free(size int) shape { return shape{Status: StatusFree, Size: size} }
func busy(size int) shape { return shape{Status: StatusBusy, Size: size} }

func mustAlloc(t *testing.T, a *Arena, size int) Handle {
	t.Helper()
	h, err := a.Allocate(size)
	require.NoError(t, err, "Allocate(%d)", size)
	require.NotEqual(t, Nil, h)
	return h
}

// flakyProvider fails the first failures calls to Acquire, then serves heap memory.
type flakyProvider struct {
	failures int
	calls    int
	err      error
}

func (p *flakyProvider) PageSize() int { return testPage }

func (p *flakyProvider) Acquire(n int) ([]byte, error) {
	p.calls++
	if p.calls <= p.failures {
		return nil, p.err
	}
	return make([]byte, n), nil
}

// shortProvider returns a region one quantum shorter than requested.
type shortProvider struct{}

func (shortProvider) PageSize() int { return testPage }

func (shortProvider) Acquire(n int) ([]byte, error) { return make([]byte, n-Quantum), nil }
