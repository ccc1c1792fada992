package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPath is returned for an empty segment list or an empty segment.
var ErrInvalidPath = errors.New("invalid path")

// ErrContentNotFound is returned when the CMS has no post at the requested URI.
var ErrContentNotFound = errors.New("content not found")

// FetchError wraps a transport, protocol or payload failure talking to the CMS.
type FetchError struct {
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch content: %v", e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
