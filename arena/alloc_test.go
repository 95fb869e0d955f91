package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const initialFree = 4096 - HeaderSize

func TestAllocateSplitsFirstBlock(t *testing.T) {
	a := newTestArena(t, 4096)

	h := mustAlloc(t, a, 100)
	require.Equal(t, Handle(HeaderSize), h, "payload starts right after the first header")
	requireShape(t, a, busy(100), free(initialFree-100-HeaderSize))

	blocks, err := a.Blocks()
	require.NoError(t, err)
	require.Equal(t, HeaderSize+100, blocks[1].Header, "remainder header follows the payload")
}

func TestAllocateRoundsToQuantum(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{1, 4},
		{3, 4},
		{4, 4},
		{5, 8},
		{101, 104},
	}

	for _, tt := range tests {
		a := newTestArena(t, 4096)
		mustAlloc(t, a, tt.size)
		requireShape(t, a, busy(tt.want), free(initialFree-tt.want-HeaderSize))
	}
}

func TestAllocateInvalidSize(t *testing.T) {
	a := newTestArena(t, 4096)
	before := shapeOf(t, a)

	for _, size := range []int{0, -1, -4096} {
		h, err := a.Allocate(size)
		require.ErrorIs(t, err, ErrInvalidSize, "Allocate(%d)", size)
		require.Equal(t, Nil, h)
	}
	require.Equal(t, before, shapeOf(t, a))
}

func TestAllocateTooLarge(t *testing.T) {
	a := newTestArena(t, 4096)
	before := shapeOf(t, a)

	for _, size := range []int{initialFree + 1, 4096, 1 << 30} {
		h, err := a.Allocate(size)
		require.ErrorIs(t, err, ErrNoSpace, "Allocate(%d)", size)
		require.Equal(t, Nil, h)
	}
	require.Equal(t, before, shapeOf(t, a))
}

func TestAllocateExactFitConsumesBlock(t *testing.T) {
	a := newTestArena(t, 4096)
	mustAlloc(t, a, initialFree)
	requireShape(t, a, busy(initialFree))

	_, err := a.Allocate(1)
	require.ErrorIs(t, err, ErrNoSpace)
}

func TestAllocateSlackOnLastBlock(t *testing.T) {
	// Payload equals request plus one header: too small to split, so the
	// whole block goes out and stays Busy.
	a := newTestArena(t, 4096)
	mustAlloc(t, a, initialFree-HeaderSize)
	requireShape(t, a, busy(initialFree))
}

func TestAllocateSmallestSplit(t *testing.T) {
	a := newTestArena(t, 4096)
	mustAlloc(t, a, initialFree-HeaderSize-Quantum)
	requireShape(t, a, busy(initialFree-HeaderSize-Quantum), free(Quantum))
}

func TestAllocateSlackOnMiddleBlock(t *testing.T) {
	a := newTestArena(t, 4096)
	first := mustAlloc(t, a, 100)
	hole := mustAlloc(t, a, 40)
	mustAlloc(t, a, 100)
	require.NoError(t, a.Release(hole))
	tail := initialFree - 3*HeaderSize - 240
	requireShape(t, a, busy(100), free(40), busy(100), free(tail))

	// 36 fits the 40-byte hole, but 4 bytes of slack cannot hold a header.
	h := mustAlloc(t, a, 36)
	require.Equal(t, hole, h)
	requireShape(t, a, busy(100), busy(40), busy(100), free(tail))

	require.NoError(t, a.Release(h))
	requireShape(t, a, busy(100), free(40), busy(100), free(tail))
	require.NoError(t, a.Release(first))
}

func TestAllocateSlackOnFirstBlock(t *testing.T) {
	a := newTestArena(t, 4096)
	hole := mustAlloc(t, a, 40)
	mustAlloc(t, a, 100)
	require.NoError(t, a.Release(hole))

	h := mustAlloc(t, a, 40)
	require.Equal(t, hole, h)
	requireShape(t, a, busy(40), busy(100), free(initialFree-2*HeaderSize-140))
}

func TestAllocateFirstFitNotBestFit(t *testing.T) {
	a := newTestArena(t, 4096)
	mustAlloc(t, a, 100)
	big := mustAlloc(t, a, 400)
	mustAlloc(t, a, 100)
	small := mustAlloc(t, a, 48)
	mustAlloc(t, a, 100)
	require.NoError(t, a.Release(big))
	require.NoError(t, a.Release(small))

	// The 48-byte hole is the tighter fit, but the 400-byte hole comes first.
	h := mustAlloc(t, a, 40)
	require.Equal(t, big, h)

	tail := initialFree - 5*HeaderSize - 748
	requireShape(t, a,
		busy(100), busy(40), free(400-HeaderSize-40), busy(100), free(48), busy(100), free(tail))
}

func TestAllocateSkipsBusyAndSmallBlocks(t *testing.T) {
	a := newTestArena(t, 4096)
	mustAlloc(t, a, 100)
	hole := mustAlloc(t, a, 32)
	mustAlloc(t, a, 100)
	require.NoError(t, a.Release(hole))

	h := mustAlloc(t, a, 64)
	blocks, err := a.Blocks()
	require.NoError(t, err)
	require.Equal(t, blocks[3].Begin, int(h), "request larger than the hole lands in the tail")
}

func TestAllocateLargestContiguousBlockRule(t *testing.T) {
	a := newTestArena(t, 4096)
	first := mustAlloc(t, a, 1000)
	mustAlloc(t, a, 1000)
	mustAlloc(t, a, 1000)
	require.NoError(t, a.Release(first))

	tail := initialFree - 3*(1000+HeaderSize)
	requireShape(t, a, free(1000), busy(1000), busy(1000), free(tail))

	stats, err := a.Stats()
	require.NoError(t, err)
	require.Greater(t, 1000+tail, 1500, "total free payload would fit the request")
	require.Equal(t, tail, stats.LargestFree)

	before := shapeOf(t, a)
	_, err = a.Allocate(1500)
	require.ErrorIs(t, err, ErrNoSpace)
	require.Equal(t, before, shapeOf(t, a))
}

func TestAllocateUntilFull(t *testing.T) {
	a := newTestArena(t, 4096)
	var handles []Handle
	for {
		h, err := a.Allocate(60)
		if err != nil {
			require.ErrorIs(t, err, ErrNoSpace)
			break
		}
		handles = append(handles, h)
		require.NoError(t, a.Check())
	}
	// Each allocation takes 76 bytes. After 53 of them the tail has a
	// 52-byte payload, too small for another one.
	require.Len(t, handles, 53)
	requireShape(t, a, append(repeatShape(busy(60), 53), free(4096-53*76-HeaderSize))...)

	for _, h := range handles {
		require.NoError(t, a.Release(h))
	}
	requireShape(t, a, free(initialFree))
}

func repeatShape(s shape, n int) []shape {
	out := make([]shape, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestPayload(t *testing.T) {
	a := newTestArena(t, 4096)
	h := mustAlloc(t, a, 10)
	next := mustAlloc(t, a, 8)

	buf, err := a.Payload(h)
	require.NoError(t, err)
	require.Len(t, buf, 12, "payload covers the rounded size")
	require.Equal(t, 12, cap(buf))
	copy(buf, "hello, arena")

	again, err := a.Payload(h)
	require.NoError(t, err)
	require.Equal(t, "hello, arena", string(again))

	// Writing through the payload never touches the neighbouring header.
	require.NoError(t, a.Check())
	require.NoError(t, a.Release(next))

	_, err = a.Payload(Nil)
	require.ErrorIs(t, err, ErrNilHandle)
	_, err = a.Payload(h + 1)
	require.ErrorIs(t, err, ErrUnknownHandle)

	require.NoError(t, a.Release(h))
	_, err = a.Payload(h)
	require.ErrorIs(t, err, ErrUnknownHandle)
}
