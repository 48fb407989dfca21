package imgedit

import "errors"

var (
	// ErrNoImage is returned by operations that need a loaded image, such as saving.
	// Transforms requested without an image are no-ops and never return it.
	ErrNoImage = errors.New("no image loaded")

	// ErrInvalidDimensions reports a resize or scale target that is zero or negative.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidOperation reports an operation that cannot be parsed or applied.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrUnsupportedFormat reports an unknown image format or extension.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
