package arena

import "errors"

var (
	// ErrAlreadyInitialized indicates Init was called after a successful Init.
	ErrAlreadyInitialized = errors.New("arena: already initialized")

	// ErrInvalidSize indicates a non-positive region or allocation size.
	ErrInvalidSize = errors.New("arena: size must be positive")

	// ErrRegionTooLarge indicates a region that does not fit the header size field.
	ErrRegionTooLarge = errors.New("arena: region too large")

	// ErrBadPageSize indicates a provider page size that is not a positive multiple of the quantum.
	ErrBadPageSize = errors.New("arena: provider page size must be a positive multiple of 4")

	// ErrAcquire indicates the provider could not supply the region.
	ErrAcquire = errors.New("arena: region acquisition failed")

	// ErrNotInitialized indicates an operation on an arena whose Init has not succeeded.
	ErrNotInitialized = errors.New("arena: not initialized")

	// ErrNoSpace indicates that no free block is large enough for the request.
	ErrNoSpace = errors.New("arena: no free block large enough")

	// ErrNilHandle indicates Release or Payload was given the Nil handle.
	ErrNilHandle = errors.New("arena: nil handle")

	// ErrUnknownHandle indicates a handle that is not the payload start of any block.
	ErrUnknownHandle = errors.New("arena: unknown handle")

	// ErrDoubleRelease indicates a handle whose block is already free.
	ErrDoubleRelease = errors.New("arena: block already free")

	// ErrCorrupt indicates a block header that failed to decode. The arena
	// writes every header itself, so this only happens if region memory was
	// modified outside the payload slices it hands out.
	ErrCorrupt = errors.New("arena: corrupt block list")
)
