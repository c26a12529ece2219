package texprep

import "github.com/gogpu/texprep/internal/image"

// Errors returned by texprep. Wrapped errors keep these as their cause, so
// callers test with errors.Is.
var (
	// ErrOutOfMemory is returned when a scratch or output buffer cannot be
	// allocated. The input is left unmodified.
	ErrOutOfMemory = image.ErrOutOfMemory

	// ErrInvalidRegion is returned when a region is empty or extends past
	// its parent buffer. Nothing is allocated or modified.
	ErrInvalidRegion = image.ErrInvalidRegion

	// ErrUnsupportedFormat is returned when dilation is requested on data
	// that is not 4-byte RGBA, or resampling on more than 4 bytes per pixel.
	ErrUnsupportedFormat = image.ErrUnsupportedFormat

	// ErrInvalidDimensions is returned when a width or height is not positive.
	ErrInvalidDimensions = image.ErrInvalidDimensions

	// ErrDataTooSmall is returned when a buffer is shorter than its
	// declared geometry.
	ErrDataTooSmall = image.ErrDataTooSmall
)
