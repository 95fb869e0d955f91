//go:build !unix

package region

// Anonymous falls back to a heap allocation where mmap is not available.
type Anonymous struct{}

// PageSize implements arena.Provider.
func (Anonymous) PageSize() int {
	return osPageSize()
}

// Acquire implements arena.Provider.
func (Anonymous) Acquire(n int) ([]byte, error) {
	return Heap{}.Acquire(n)
}

// Unmap is a no-op for heap-backed regions.
func Unmap([]byte) error {
	return nil
}
