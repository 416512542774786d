package application

import "errors"

// Sentinel errors for common conditions
var (
	ErrUnknownAnchor = errors.New("unknown anchor")
	ErrOutOfRange    = errors.New("section index out of range")
	ErrFetchFailed   = errors.New("media fetch failed")
	ErrCacheFailed   = errors.New("media cache failed")
)
