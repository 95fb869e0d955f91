package format

// AlignQuantum returns n aligned up to the next multiple of Quantum.
//
// Example:
//
//	AlignQuantum(1)   = 4
//	AlignQuantum(4)   = 4
//	AlignQuantum(101) = 104
func AlignQuantum(n int) int {
	return (n + QuantumMask) & ^QuantumMask
}

// AlignUp returns n rounded up to the next multiple of unit. unit must be
// positive; it does not have to be a power of two (page sizes reported by
// test providers are arbitrary).
//
// Example:
//
//	AlignUp(1, 4096)    = 4096
//	AlignUp(4096, 4096) = 4096
//	AlignUp(4097, 4096) = 8192
func AlignUp(n, unit int) int {
	if r := n % unit; r != 0 {
		return n + unit - r
	}
	return n
}
