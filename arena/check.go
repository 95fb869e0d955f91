package arena

import (
	"fmt"

	"github.com/joshuapare/memarena/internal/format"
)

// InvariantError reports a block list that violates one of the arena's
// structural invariants.
type InvariantError struct {
	Kind    string // "Header", "Contiguity", "Quantum", "Coalescing" or "Accounting"
	Message string
	Offset  int // header offset where the violation was found, -1 if not tied to a block
	Details map[string]any
}

func (e *InvariantError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Kind, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Check walks the raw headers and verifies that
//   - every header decodes,
//   - each block links to the byte right after its payload and the last block
//     ends the region,
//   - every payload size is a multiple of Quantum,
//   - no two adjacent blocks are both free,
//   - header and payload bytes add up to the region size.
//
// It returns the first violation as an *InvariantError, or nil.
func (a *Arena) Check() error {
	if !a.initialized {
		return ErrNotInitialized
	}

	total := 0
	prevFree := false
	for off := 0; ; {
		h, err := format.ReadHeader(a.buf, off)
		if err != nil {
			return &InvariantError{Kind: "Header", Message: err.Error(), Offset: off}
		}
		if h.Size%Quantum != 0 {
			return &InvariantError{
				Kind:    "Quantum",
				Message: fmt.Sprintf("payload size %d is not a multiple of %d", h.Size, Quantum),
				Offset:  off,
			}
		}
		if prevFree && h.Free() {
			return &InvariantError{
				Kind:    "Coalescing",
				Message: "free block follows another free block",
				Offset:  off,
			}
		}
		prevFree = h.Free()
		total += HeaderSize + int(h.Size)

		end := h.End(off)
		if h.Next == format.NoNext {
			if end != len(a.buf) {
				return &InvariantError{
					Kind:    "Contiguity",
					Message: "last block does not end the region",
					Offset:  off,
					Details: map[string]any{"end": end, "region": len(a.buf)},
				}
			}
			break
		}
		if h.Next != int64(end) {
			return &InvariantError{
				Kind:    "Contiguity",
				Message: "next header does not start where the payload ends",
				Offset:  off,
				Details: map[string]any{"next": h.Next, "end": end},
			}
		}
		off = end
	}

	if total != len(a.buf) {
		return &InvariantError{
			Kind:    "Accounting",
			Message: fmt.Sprintf("blocks cover %d bytes, region is %d", total, len(a.buf)),
			Offset:  -1,
		}
	}
	return nil
}
