// Package arena implements a single-region, first-fit allocator.
//
// # Overview
//
// An Arena takes one contiguous region from a Provider at Init and carves it
// into blocks. Each block is a 16-byte header followed by its payload, and
// the headers form an address-ordered singly linked list that partitions the
// whole region with no gaps:
//
//	+--------+-----------+--------+-----------+--------+--------------+
//	| header | payload   | header | payload   | header | payload      |
//	| Busy   | 100 bytes | Busy   | 200 bytes | Free   | rest         |
//	+--------+-----------+--------+-----------+--------+--------------+
//	0x0000   0x0010      0x0074   0x0084      0x014C   0x015C
//
// # Operations
//
//   - Init(n): acquire n bytes rounded up to the page size, install one free block
//   - Allocate(n): round n up to a multiple of 4, take the first free block
//     that fits, split off the tail when there is room for another header
//   - Release(h): mark the block free, merge with a free right neighbour,
//     then with a free left neighbour
//   - Dump(w): print the block table and totals
//
// # Usage Example
//
//	a := arena.New(region.Anonymous{}, nil)
//	if err := a.Init(4096); err != nil {
//	    return err
//	}
//
//	h, err := a.Allocate(100)
//	if err != nil {
//	    return err
//	}
//	buf, _ := a.Payload(h)
//	copy(buf, "hello")
//
//	_ = a.Release(h)
//	_ = a.Dump(os.Stdout)
//
// # Handles
//
// Allocate returns a Handle, the byte offset of the payload inside the
// region. Release and Payload look the handle up in the list every time, so
// a stale, forged or repeated handle is rejected (ErrUnknownHandle,
// ErrDoubleRelease) instead of corrupting the list.
//
// # Slack
//
// When the first fitting block is too small to split (its payload is at most
// the rounded request plus one header), the whole block is handed out. The
// extra bytes stay with the allocation and come back on Release.
//
// # Thread Safety
//
// Arena instances are not thread-safe. Callers must serialize access to an
// arena themselves, for example with a sync.Mutex around every call.
package arena
