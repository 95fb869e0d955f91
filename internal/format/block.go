package format

import "fmt"

// Header is the decoded form of a block header.
type Header struct {
	Next   int64  // Offset of the next header, NoNext for the last block
	Size   uint32 // Payload bytes following the header
	Status uint16 // StatusFree or StatusBusy
}

// Free reports whether the header is tagged free.
func (h Header) Free() bool { return h.Status == StatusFree }

// End returns the offset one past the payload of a block whose header starts at off.
func (h Header) End(off int) int {
	return off + HeaderSize + int(h.Size)
}

// ReadHeader decodes the header at off, checking that both the header and the
// payload it declares lie inside b.
func ReadHeader(b []byte, off int) (Header, error) {
	if off < 0 || off+HeaderSize > len(b) {
		return Header{}, fmt.Errorf("header at 0x%X: %w", off, ErrTruncated)
	}
	if m := ReadU16(b, off+MagicOffset); m != HeaderMagic {
		return Header{}, fmt.Errorf("header at 0x%X: %w (got 0x%04X)", off, ErrSignatureMismatch, m)
	}
	h := Header{
		Next:   ReadI64(b, off+NextOffset),
		Size:   ReadU32(b, off+SizeOffset),
		Status: ReadU16(b, off+StatusOffset),
	}
	if h.Status != StatusFree && h.Status != StatusBusy {
		return Header{}, fmt.Errorf("header at 0x%X: %w (%d)", off, ErrBadStatus, h.Status)
	}
	if h.End(off) > len(b) {
		return Header{}, fmt.Errorf("payload at 0x%X size %d: %w", off+HeaderSize, h.Size, ErrTruncated)
	}
	return h, nil
}

// WriteHeader encodes h at off. The caller guarantees off+HeaderSize <= len(b).
func WriteHeader(b []byte, off int, h Header) {
	PutI64(b, off+NextOffset, h.Next)
	PutU32(b, off+SizeOffset, h.Size)
	PutU16(b, off+StatusOffset, h.Status)
	PutU16(b, off+MagicOffset, HeaderMagic)
}

// ClearHeader zeroes the header bytes at off. Used when a block is absorbed by
// its neighbour so a stale header can never be resolved again.
func ClearHeader(b []byte, off int) {
	clear(b[off : off+HeaderSize])
}
