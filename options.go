package texprep

import (
	"github.com/gogpu/texprep/internal/filter"
	"github.com/gogpu/texprep/internal/image"
)

// Allocator hands out pixel memory for scratch and output buffers.
//
// Alloc must return a zeroed slice of exactly n bytes, or an error (typically
// ErrOutOfMemory) instead of panicking. Free gives a slice back when texprep
// is done with it; output buffers handed to the caller are never freed.
type Allocator = image.Allocator

// NewPool returns an Allocator that recycles buffers of equal length,
// keeping at most maxPerBucket of each and refusing single requests larger
// than maxAlloc bytes (0 selects the default of 1 GiB).
func NewPool(maxPerBucket, maxAlloc int) Allocator {
	return image.NewPool(maxPerBucket, maxAlloc)
}

// Option configures a texprep operation.
// Use functional options to override the defaults.
//
// Example:
//
//	// Default dilation: threshold 10, 11 sweeps
//	err := texprep.DilateAll(pix, w, h)
//
//	// Wider bleed for a padded atlas
//	err := texprep.DilateAll(pix, w, h, texprep.WithPasses(24))
type Option func(*options)

// options holds optional configuration for an operation.
type options struct {
	threshold  uint8
	passes     int
	alloc      Allocator
	bpp        int
	powerOfTwo bool
	mipmaps    bool
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		threshold: filter.DefaultAlphaThreshold,
		passes:    filter.DefaultPasses,
		alloc:     nil, // Will be set to the package pool if nil
		bpp:       4,
	}
}

// buildOptions applies opts over the defaults.
func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.alloc == nil {
		o.alloc = image.DefaultPool()
	}
	return o
}

// dilator returns the filter configured by o.
func (o *options) dilator() *filter.Dilator {
	return &filter.Dilator{
		Threshold: o.threshold,
		Passes:    o.passes,
		Alloc:     o.alloc,
	}
}

// WithAlphaThreshold sets the alpha a pixel must exceed to act as a colour
// source during dilation. The default is 10. A threshold of 0 makes every
// pixel with any coverage a source.
func WithAlphaThreshold(threshold uint8) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithPasses sets the number of dilation sweeps. Colour travels one pixel
// per sweep. The default is 11; 0 disables dilation. Negative values are
// ignored.
func WithPasses(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.passes = n
		}
	}
}

// WithAllocator sets the allocator used for scratch and output buffers.
// Nil restores the default pool.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithBytesPerPixel declares the pixel size of the buffer passed to the
// dilation functions. The default is 4. Dilation fails with
// ErrUnsupportedFormat for any other value, rather than misreading bytes.
func WithBytesPerPixel(bpp int) Option {
	return func(o *options) {
		o.bpp = bpp
	}
}

// WithPowerOfTwo makes Prepare resample the texture down to the largest
// power-of-two size that fits in each dimension.
func WithPowerOfTwo() Option {
	return func(o *options) {
		o.powerOfTwo = true
	}
}

// WithMipmaps makes Prepare build a full mipmap chain.
func WithMipmaps() Option {
	return func(o *options) {
		o.mipmaps = true
	}
}
