// Package image provides pixel buffer views and resampling for texprep.
//
// This package implements strided views over raw byte buffers, a bounded
// allocator for scratch memory, the cubic Hermite resampler and mipmap
// generation used on texture bake paths.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatGrayAlpha8 is 8-bit grayscale with 8-bit alpha (2 bytes per pixel).
	FormatGrayAlpha8

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8

	// FormatRGBA8 is 32-bit non-premultiplied RGBA (4 bytes per pixel).
	// This is the only format accepted by dilation.
	FormatRGBA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// AlphaIndex is the byte offset of alpha inside a pixel, -1 without alpha.
	AlphaIndex int
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8:      {BytesPerPixel: 1, HasAlpha: false, AlphaIndex: -1},
	FormatGrayAlpha8: {BytesPerPixel: 2, HasAlpha: true, AlphaIndex: 1},
	FormatRGB8:       {BytesPerPixel: 3, HasAlpha: false, AlphaIndex: -1},
	FormatRGBA8:      {BytesPerPixel: 4, HasAlpha: true, AlphaIndex: 3},
}

// FormatForBPP returns the format stored with bpp bytes per pixel.
// Returns ErrUnsupportedFormat when no format uses that many bytes.
func FormatForBPP(bpp int) (Format, error) {
	for f := range formatCount {
		if formatInfoTable[f].BytesPerPixel == bpp {
			return f, nil
		}
	}
	return 0, ErrUnsupportedFormat
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{AlphaIndex: -1}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatGrayAlpha8:
		return "GrayAlpha8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for a packed image.
// Returns -1 if the size does not fit in an int.
func (f Format) ImageBytes(width, height int) int {
	if width < 0 || height < 0 {
		return -1
	}
	bpp := f.BytesPerPixel()
	if bpp == 0 {
		return 0
	}
	if width != 0 && height > maxInt/bpp/width {
		return -1
	}
	return width * height * bpp
}

const maxInt = int(^uint(0) >> 1)
