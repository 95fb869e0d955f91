package arena

import (
	"fmt"

	"github.com/joshuapare/memarena/internal/format"
)

// Release returns the block identified by h to the free list and merges it
// with a free neighbour on either side. The list is left untouched when h is
// Nil, does not name a block, or names a block that is already free.
func (a *Arena) Release(h Handle) error {
	err := a.release(h)
	if err != nil {
		a.ops.ReleaseFailures++
	}
	return err
}

func (a *Arena) release(h Handle) error {
	if h == Nil {
		return ErrNilHandle
	}
	if !a.initialized {
		return ErrNotInitialized
	}

	cur, prev, err := a.find(h)
	if err != nil {
		a.log.Warn("release rejected", "handle", h, "err", err)
		return err
	}
	if cur.Free() {
		a.log.Warn("release rejected", "handle", h, "err", ErrDoubleRelease)
		return fmt.Errorf("%w: handle 0x%X", ErrDoubleRelease, uint32(h))
	}

	// Read the right neighbour before anything is written so a decode
	// failure leaves the list as it was.
	var next block
	hasNext := cur.Next != format.NoNext
	if hasNext {
		if next, err = a.blockAt(int(cur.Next)); err != nil {
			return err
		}
	}

	size := cur.Size
	cur.Status = format.StatusFree

	// Right first, so that folding into the left neighbour carries the
	// merged span along in one step.
	if hasNext && next.Free() {
		cur.Size += HeaderSize + next.Size
		cur.Next = next.Next
		format.ClearHeader(a.buf, next.off)
		a.ops.CoalesceRight++
	}

	if prev != nil && prev.Free() {
		prev.Size += HeaderSize + cur.Size
		prev.Next = cur.Next
		a.put(*prev)
		format.ClearHeader(a.buf, cur.off)
		a.ops.CoalesceLeft++
	} else {
		a.put(cur)
	}

	a.ops.Releases++
	a.log.Debug("release", "handle", h, "size", size)
	return nil
}

// Payload returns the bytes of the busy block identified by h. The slice's
// capacity ends at the payload so appends cannot spill into the next header.
func (a *Arena) Payload(h Handle) ([]byte, error) {
	if h == Nil {
		return nil, ErrNilHandle
	}
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	b, _, err := a.find(h)
	if err != nil {
		return nil, err
	}
	if b.Free() {
		return nil, fmt.Errorf("%w: block at 0x%X is free", ErrUnknownHandle, b.off)
	}
	start, end := int(b.payload()), b.end()
	return a.buf[start:end:end], nil
}

// find walks the list for the block whose payload starts at h and returns it
// together with its predecessor (nil for the first block). The walk stops as
// soon as it passes the candidate header since blocks are address-ordered.
func (a *Arena) find(h Handle) (block, *block, error) {
	target := int64(h) - HeaderSize
	if target < 0 || target+HeaderSize > int64(len(a.buf)) {
		return block{}, nil, fmt.Errorf("%w: 0x%X outside region", ErrUnknownHandle, uint32(h))
	}

	var prev *block
	for off := 0; off != format.NoNext; {
		b, err := a.blockAt(off)
		if err != nil {
			return block{}, nil, err
		}
		switch {
		case int64(b.off) == target:
			return b, prev, nil
		case int64(b.off) > target:
			return block{}, nil, fmt.Errorf("%w: 0x%X", ErrUnknownHandle, uint32(h))
		}
		p := b
		prev = &p
		off = int(b.Next)
	}
	return block{}, nil, fmt.Errorf("%w: 0x%X", ErrUnknownHandle, uint32(h))
}
