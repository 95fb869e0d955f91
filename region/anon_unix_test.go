//go:build unix

package region

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestAnonymousAcquire(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	var p Anonymous
	require.Equal(t, unix.Getpagesize(), p.PageSize())

	n := 2 * p.PageSize()
	data, err := p.Acquire(n)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, Unmap(data))
	}()

	require.Len(t, data, n)
	for i, v := range data {
		if v != 0 {
			t.Fatalf("byte %d not zero: 0x%x", i, v)
		}
	}

	// The mapping is writable.
	data[0] = 0x42
	data[n-1] = 0x24
	require.Equal(t, byte(0x42), data[0])
	require.Equal(t, byte(0x24), data[n-1])
}

func TestAnonymousBadSize(t *testing.T) {
	_, err := Anonymous{}.Acquire(-1)
	require.ErrorIs(t, err, ErrBadSize)
}

func TestUnmapEmpty(t *testing.T) {
	require.NoError(t, Unmap(nil))
}
