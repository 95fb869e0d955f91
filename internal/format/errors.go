package format

import "errors"

var (
	// ErrSignatureMismatch indicates a header without HeaderMagic.
	ErrSignatureMismatch = errors.New("format: header magic mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadStatus indicates a status tag that is neither free nor busy.
	ErrBadStatus = errors.New("format: unknown status tag")
)
