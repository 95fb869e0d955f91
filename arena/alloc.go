package arena

import (
	"fmt"

	"github.com/joshuapare/memarena/internal/format"
)

// Allocate reserves at least size bytes and returns the handle of the payload.
//
// The request is rounded up to a multiple of Quantum and served from the
// first free block, in address order, that can hold it. A block with room
// for the request plus another header is split and the tail stays free;
// otherwise the whole block is handed out and its slack stays attached to
// the allocation until it is released.
func (a *Arena) Allocate(size int) (Handle, error) {
	h, err := a.allocate(size)
	if err != nil {
		a.ops.AllocFailures++
	}
	return h, err
}

func (a *Arena) allocate(size int) (Handle, error) {
	if size < 1 {
		return Nil, fmt.Errorf("%w: requested %d", ErrInvalidSize, size)
	}
	if !a.initialized {
		return Nil, ErrNotInitialized
	}
	if size > len(a.buf) {
		return Nil, fmt.Errorf("%w: requested %d, region is %d", ErrNoSpace, size, len(a.buf))
	}
	need := format.AlignQuantum(size)

	for off := 0; off != format.NoNext; {
		b, err := a.blockAt(off)
		if err != nil {
			return Nil, err
		}
		if b.Free() && int(b.Size) >= need {
			split := a.claim(&b, need)
			a.ops.Allocs++
			a.log.Debug("allocate",
				"requested", size,
				"rounded", need,
				"handle", b.payload(),
				"size", b.Size,
				"split", split,
			)
			return b.payload(), nil
		}
		off = int(b.Next)
	}

	a.log.Debug("allocate failed", "requested", size, "rounded", need)
	return Nil, fmt.Errorf("%w: requested %d (rounded %d)", ErrNoSpace, size, need)
}

// claim marks the free block b busy with a payload of need bytes. When the
// block is large enough for need plus another header with a non-empty
// payload, a free remainder block is carved from its tail and linked in
// after it. Reports whether a split happened.
func (a *Arena) claim(b *block, need int) bool {
	split := int(b.Size) > need+HeaderSize
	if split {
		rest := block{
			off: b.off + HeaderSize + need,
			Header: format.Header{
				Next:   b.Next,
				Size:   b.Size - uint32(HeaderSize+need),
				Status: format.StatusFree,
			},
		}
		a.put(rest)
		b.Next = int64(rest.off)
		b.Size = uint32(need)
		a.ops.Splits++
	}
	b.Status = format.StatusBusy
	a.put(*b)
	return split
}
