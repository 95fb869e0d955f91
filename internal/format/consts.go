// Package format holds the on-region layout of arena block headers and the
// low-level helpers used to read and write them. It knows nothing about list
// policy (first-fit, splitting, coalescing); the arena package builds that on
// top of these primitives.
package format

// Block header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    8     Offset of the next header in the region, NoNext for the last block.
//	0x08    4     Payload size in bytes (header excluded), a multiple of Quantum.
//	0x0C    2     Status tag: StatusFree or StatusBusy.
//	0x0E    2     Magic, HeaderMagic for every header the arena has written.
const (
	// HeaderSize is the number of bytes preceding every payload.
	HeaderSize = 0x10

	NextOffset   = 0x00
	SizeOffset   = 0x08
	StatusOffset = 0x0C
	MagicOffset  = 0x0E

	// HeaderMagic marks a header written by the arena. A zeroed region has no
	// valid headers until the first one is installed.
	HeaderMagic = 0xB10C

	// NoNext terminates the block list.
	NoNext = -1

	// Quantum is the allocation rounding unit. Every payload size is a
	// multiple of it.
	Quantum = 4

	// QuantumMask is Quantum - 1.
	QuantumMask = Quantum - 1

	// MaxPayload is the largest value the 32-bit size field can hold while
	// staying a multiple of Quantum.
	MaxPayload = 0xFFFFFFFF &^ QuantumMask
)

// Status tag values. Zero is deliberately unused so that a zeroed header is
// never mistaken for a live block.
const (
	StatusFree uint16 = 1
	StatusBusy uint16 = 2
)
