package arena

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/memarena/internal/format"
)

const (
	// HeaderSize is the number of bytes of bookkeeping in front of every payload.
	HeaderSize = format.HeaderSize

	// Quantum is the allocation rounding unit.
	Quantum = format.Quantum

	// MaxRegionSize is the largest page-rounded region Init accepts (2GB - 1).
	MaxRegionSize = 0x7FFFFFFF
)

// Handle identifies an allocation: it is the byte offset of the payload
// within the region. Handles are only meaningful to the arena that issued them.
type Handle uint32

// Nil is the absent handle. No payload ever starts at offset 0 because the
// first header occupies it.
const Nil Handle = 0

// Provider supplies the backing region. Acquire is called at most once per
// successful Init and must return exactly n zeroed bytes. See package region
// for implementations.
type Provider interface {
	PageSize() int
	Acquire(n int) ([]byte, error)
}

// Options configures an Arena.
type Options struct {
	// Logger receives Debug records for successful operations and Warn
	// records for rejected ones.
	// Default: a logger that discards everything
	Logger *slog.Logger
}

// DefaultOptions returns the options used when New is given nil.
func DefaultOptions() *Options {
	return &Options{Logger: discardLogger()}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Arena is a single-region first-fit allocator. The zero value is not usable;
// call New. An Arena is not safe for concurrent use.
type Arena struct {
	provider Provider
	log      *slog.Logger

	// buf is the whole region; the first header lives at offset 0.
	buf         []byte
	initialized bool

	ops Counters
}

// New returns an uninitialized arena that will take its region from p.
func New(p Provider, opts *Options) *Arena {
	if opts == nil {
		opts = DefaultOptions()
	}
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	return &Arena{provider: p, log: log}
}

// Init acquires a region of regionSize bytes rounded up to the provider's page
// size and installs a single free block covering it. Init succeeds at most
// once; failures before the first success may be retried.
func (a *Arena) Init(regionSize int) error {
	if a.initialized {
		return ErrAlreadyInitialized
	}
	if regionSize <= 0 {
		return fmt.Errorf("%w: region size %d", ErrInvalidSize, regionSize)
	}
	if regionSize > MaxRegionSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrRegionTooLarge, regionSize, MaxRegionSize)
	}

	page := a.provider.PageSize()
	if page <= 0 || page%Quantum != 0 {
		return fmt.Errorf("%w: got %d", ErrBadPageSize, page)
	}

	size := format.AlignUp(regionSize, page)
	if size > MaxRegionSize {
		return fmt.Errorf("%w: %d bytes after rounding to %d-byte pages", ErrRegionTooLarge, size, page)
	}
	if size < HeaderSize {
		return fmt.Errorf("%w: %d-byte region cannot hold a block header", ErrInvalidSize, size)
	}

	buf, err := a.provider.Acquire(size)
	if err != nil {
		a.log.Warn("region acquisition failed", "size", size, "err", err)
		return fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	if len(buf) != size {
		a.log.Warn("region has wrong length", "size", size, "got", len(buf))
		return fmt.Errorf("%w: provider returned %d bytes, want %d", ErrAcquire, len(buf), size)
	}

	format.WriteHeader(buf, 0, format.Header{
		Next:   format.NoNext,
		Size:   uint32(size - HeaderSize),
		Status: format.StatusFree,
	})
	a.buf = buf
	a.initialized = true

	a.log.Debug("arena initialized", "requested", regionSize, "region", size, "page", page)
	return nil
}

// Initialized reports whether Init has succeeded.
func (a *Arena) Initialized() bool { return a.initialized }

// RegionSize returns the page-rounded region length, or 0 before Init.
func (a *Arena) RegionSize() int { return len(a.buf) }

// block is a decoded header together with its offset in the region.
type block struct {
	off int
	format.Header
}

// end returns the offset one past the block's payload.
func (b block) end() int { return b.End(b.off) }

// payload returns the handle of the block's payload.
func (b block) payload() Handle { return Handle(b.off + HeaderSize) }

// blockAt decodes the header at off and checks that its link points at the
// byte right after its payload (or that it is the last block and ends the
// region). Every walk goes through here, so a walk always moves strictly
// forward and terminates.
func (a *Arena) blockAt(off int) (block, error) {
	h, err := format.ReadHeader(a.buf, off)
	if err != nil {
		return block{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	b := block{off: off, Header: h}
	switch {
	case h.Next == format.NoNext && b.end() != len(a.buf):
		return block{}, fmt.Errorf("%w: last block at 0x%X ends at 0x%X, region ends at 0x%X",
			ErrCorrupt, off, b.end(), len(a.buf))
	case h.Next != format.NoNext && h.Next != int64(b.end()):
		return block{}, fmt.Errorf("%w: block at 0x%X links to 0x%X, payload ends at 0x%X",
			ErrCorrupt, off, h.Next, b.end())
	}
	return b, nil
}

// put writes b's header back into the region.
func (a *Arena) put(b block) {
	format.WriteHeader(a.buf, b.off, b.Header)
}
