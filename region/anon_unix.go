//go:build unix

package region

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Anonymous maps a private, zero-filled region straight from the kernel. It is
// the closest match to grabbing pages with mmap(/dev/zero) and is what the
// CLI uses by default.
type Anonymous struct{}

// PageSize implements arena.Provider.
func (Anonymous) PageSize() int {
	return unix.Getpagesize()
}

// Acquire implements arena.Provider. n should already be page aligned; the
// kernel rounds the mapping up regardless, but the returned slice has length n.
func (Anonymous) Acquire(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrBadSize
	}
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("region: mmap %d bytes: %w", n, err)
	}
	return data, nil
}

// Unmap releases a region returned by Anonymous.Acquire. Unmapping twice is
// treated as a no-op.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		return nil
	}
	return err
}
