package image

import "errors"

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrUnsupportedFormat is returned when the format or bytes-per-pixel
	// value is not supported by the operation.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrInvalidRegion is returned when a sub-rectangle is empty or
	// extends past its parent.
	ErrInvalidRegion = errors.New("image: invalid region")

	// ErrOutOfMemory is returned when an allocation is refused.
	ErrOutOfMemory = errors.New("image: out of memory")
)

// View is a rectangular window onto a pixel array.
//
// A View addresses width x height pixels of a fixed format, stride bytes
// apart row to row. It either owns a packed array or aliases a region of a
// larger parent array (see Sub). All pixel access goes through bounds-checked
// offsets.
//
// Thread safety: View carries no locks. Concurrent writers to overlapping
// views need external synchronization.
type View struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// NewView allocates a packed view of the given size from alloc.
// A nil alloc uses the default pool.
func NewView(width, height int, format Format, alloc Allocator) (*View, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrUnsupportedFormat
	}
	if alloc == nil {
		alloc = DefaultPool()
	}

	size := format.ImageBytes(width, height)
	if size < 0 {
		return nil, ErrOutOfMemory
	}
	data, err := alloc.Alloc(size)
	if err != nil {
		return nil, err
	}

	return &View{
		data:   data,
		width:  width,
		height: height,
		stride: format.RowBytes(width),
		format: format,
	}, nil
}

// FromRaw creates a View over existing data without copying.
// Stride must be at least format.RowBytes(width). The last row only needs
// RowBytes(width) bytes, so sub-image slices such as those of image.NRGBA
// are accepted.
func FromRaw(data []byte, width, height int, format Format, stride int) (*View, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrUnsupportedFormat
	}

	rowBytes := format.RowBytes(width)
	if stride < rowBytes {
		return nil, ErrInvalidStride
	}

	if height-1 > (maxInt-rowBytes)/stride {
		return nil, ErrDataTooSmall
	}
	requiredSize := (height-1)*stride + rowBytes
	if len(data) < requiredSize {
		return nil, ErrDataTooSmall
	}

	return &View{
		data:   data[:requiredSize],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Width returns the view width in pixels.
func (v *View) Width() int {
	return v.width
}

// Height returns the view height in pixels.
func (v *View) Height() int {
	return v.height
}

// Stride returns the number of bytes between the starts of adjacent rows.
func (v *View) Stride() int {
	return v.stride
}

// Format returns the pixel format.
func (v *View) Format() Format {
	return v.format
}

// Bounds returns the view dimensions as (width, height).
func (v *View) Bounds() (int, int) {
	return v.width, v.height
}

// Data returns the raw pixel data slice, starting at pixel (0, 0).
func (v *View) Data() []byte {
	return v.data
}

// IsPacked reports whether rows follow each other with no padding, so the
// whole view is one contiguous run of PackedSize bytes.
func (v *View) IsPacked() bool {
	return v.stride == v.format.RowBytes(v.width)
}

// PackedSize returns the number of bytes of the view's pixels without padding.
func (v *View) PackedSize() int {
	return v.format.RowBytes(v.width) * v.height
}

// Row returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (v *View) Row(y int) []byte {
	if y < 0 || y >= v.height {
		return nil
	}
	start := y * v.stride
	return v.data[start : start+v.format.RowBytes(v.width)]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (v *View) PixelOffset(x, y int) int {
	if x < 0 || x >= v.width || y < 0 || y >= v.height {
		return -1
	}
	return y*v.stride + x*v.format.BytesPerPixel()
}

// Pixel returns a slice of the raw bytes for pixel (x, y).
// Returns nil if coordinates are out of bounds.
func (v *View) Pixel(x, y int) []byte {
	offset := v.PixelOffset(x, y)
	if offset < 0 {
		return nil
	}
	return v.data[offset : offset+v.format.BytesPerPixel()]
}

// PixelClamped returns the bytes of the pixel nearest to (x, y), replicating
// edge pixels for coordinates outside the view.
func (v *View) PixelClamped(x, y int) []byte {
	return v.Pixel(clamp(x, 0, v.width-1), clamp(y, 0, v.height-1))
}

// Alpha returns the alpha byte of pixel (x, y), or 255 for formats without
// alpha. Returns 0 if coordinates are out of bounds.
func (v *View) Alpha(x, y int) byte {
	p := v.Pixel(x, y)
	if p == nil {
		return 0
	}
	idx := v.format.Info().AlphaIndex
	if idx < 0 {
		return 255
	}
	return p[idx]
}

// Sub returns a view onto the rectangle (x, y, width, height) of v.
// The returned View shares memory with v.
func (v *View) Sub(x, y, width, height int) (*View, error) {
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return nil, ErrInvalidRegion
	}
	if width > v.width-x || height > v.height-y {
		return nil, ErrInvalidRegion
	}

	bpp := v.format.BytesPerPixel()
	offset := y*v.stride + x*bpp
	end := (y+height-1)*v.stride + (x+width)*bpp

	return &View{
		data:   v.data[offset:end],
		width:  width,
		height: height,
		stride: v.stride,
		format: v.format,
	}, nil
}

// CopyTo writes the view's pixels into dst as a packed array.
// Packed views are moved with a single copy, others row by row.
func (v *View) CopyTo(dst []byte) error {
	size := v.PackedSize()
	if len(dst) < size {
		return ErrDataTooSmall
	}
	if v.IsPacked() {
		copy(dst, v.data[:size])
		return nil
	}
	rowBytes := v.format.RowBytes(v.width)
	for y := range v.height {
		copy(dst[y*rowBytes:(y+1)*rowBytes], v.Row(y))
	}
	return nil
}

// CopyFrom overwrites the view's pixels from a packed array.
func (v *View) CopyFrom(src []byte) error {
	size := v.PackedSize()
	if len(src) < size {
		return ErrDataTooSmall
	}
	if v.IsPacked() {
		copy(v.data[:size], src)
		return nil
	}
	rowBytes := v.format.RowBytes(v.width)
	for y := range v.height {
		copy(v.Row(y), src[y*rowBytes:(y+1)*rowBytes])
	}
	return nil
}

// Detach copies the view into a newly allocated packed View.
func (v *View) Detach(alloc Allocator) (*View, error) {
	dst, err := NewView(v.width, v.height, v.format, alloc)
	if err != nil {
		return nil, err
	}
	if err := v.CopyTo(dst.data); err != nil {
		return nil, err
	}
	return dst, nil
}

// Release hands the view's memory back to alloc. Only views created by
// NewView with the same allocator may be released, and the view must not be
// used afterwards.
func (v *View) Release(alloc Allocator) {
	if v == nil {
		return
	}
	if alloc == nil {
		alloc = DefaultPool()
	}
	alloc.Free(v.data)
	v.data = nil
}

// clamp clamps an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
