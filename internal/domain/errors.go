package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrMalformedID  = errors.New("invalid post ID")
	ErrStorage      = errors.New("storage failure")
)

// Validation failures. Each wraps ErrInvalidInput.
var (
	ErrUnsupportedImageType = fmt.Errorf("%w: unsupported type", ErrInvalidInput)
	ErrImageTooLarge        = fmt.Errorf("%w: too large", ErrInvalidInput)
	ErrMissingTitle         = fmt.Errorf("%w: title is required", ErrInvalidInput)
	ErrMissingImage         = fmt.Errorf("%w: no image file uploaded", ErrInvalidInput)
)
