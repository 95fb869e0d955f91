// Package region provides backing-memory sources for an arena.
//
// Every type here satisfies arena.Provider: it reports a page size and hands
// out exactly one zero-initialized byte slice of the requested length. The
// arena never asks twice after a successful Acquire.
//
//   - Anonymous: private anonymous mapping (mmap) on unix, heap elsewhere
//   - Heap: a plain Go allocation with a configurable page size
//   - Fixed: a caller-supplied buffer, for embedding an arena in memory the
//     caller already owns
//   - Failing: never succeeds, for exercising acquisition failures
package region

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrTooSmall indicates a Fixed buffer shorter than the requested region.
	ErrTooSmall = errors.New("region: buffer too small")

	// ErrInUse indicates a Fixed buffer that has already been handed out.
	ErrInUse = errors.New("region: buffer already acquired")

	// ErrUnavailable is the default error returned by Failing.
	ErrUnavailable = errors.New("region: memory unavailable")

	// ErrBadSize indicates a non-positive request.
	ErrBadSize = errors.New("region: size must be positive")
)

// osPageSize is the page size used when a provider leaves it unset.
func osPageSize() int {
	return os.Getpagesize()
}

// Heap allocates the region on the Go heap.
type Heap struct {
	// Page is the rounding unit reported to the arena.
	// Default: the OS page size
	Page int
}

// PageSize implements arena.Provider.
func (h Heap) PageSize() int {
	if h.Page <= 0 {
		return osPageSize()
	}
	return h.Page
}

// Acquire implements arena.Provider. The returned slice is zeroed by make.
func (h Heap) Acquire(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrBadSize
	}
	return make([]byte, n), nil
}

// Fixed serves the region out of a buffer owned by the caller.
type Fixed struct {
	buf  []byte
	page int
	used bool
}

// NewFixed wraps buf. page <= 0 selects the OS page size.
func NewFixed(buf []byte, page int) *Fixed {
	return &Fixed{buf: buf, page: page}
}

// PageSize implements arena.Provider.
func (f *Fixed) PageSize() int {
	if f.page <= 0 {
		return osPageSize()
	}
	return f.page
}

// Acquire implements arena.Provider. It zeroes and returns the first n bytes
// of the buffer, with capacity clipped to n.
func (f *Fixed) Acquire(n int) ([]byte, error) {
	switch {
	case n <= 0:
		return nil, ErrBadSize
	case f.used:
		return nil, ErrInUse
	case n > len(f.buf):
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTooSmall, n, len(f.buf))
	}
	b := f.buf[:n:n]
	clear(b)
	f.used = true
	return b, nil
}

// Failing is a provider whose Acquire always fails.
type Failing struct {
	// Err is returned from Acquire.
	// Default: ErrUnavailable
	Err error

	// Page is the page size reported to the arena.
	// Default: the OS page size
	Page int
}

// PageSize implements arena.Provider.
func (f Failing) PageSize() int {
	if f.Page <= 0 {
		return osPageSize()
	}
	return f.Page
}

// Acquire implements arena.Provider.
func (f Failing) Acquire(int) ([]byte, error) {
	if f.Err == nil {
		return nil, ErrUnavailable
	}
	return nil, f.Err
}
