package filter

import (
	"github.com/gogpu/texprep/internal/image"
)

const (
	// bpp is the pixel size dilation works on (RGBA).
	bpp = 4

	// alphaIndex is the offset of alpha inside a pixel.
	alphaIndex = bpp - 1

	// DefaultAlphaThreshold is the alpha a pixel must exceed to act as a
	// colour source.
	DefaultAlphaThreshold = 10

	// DefaultPasses is the number of relaxation sweeps: one initial pass
	// plus five ping-pong round trips.
	DefaultPasses = 1 + 5*2
)

// neighbours lists the probe offsets in priority order: up, left, right, down.
var neighbours = [4][2]int{
	{0, -1},
	{-1, 0},
	{1, 0},
	{0, 1},
}

// DilatePass runs one relaxation sweep over packed w x h RGBA buffers.
//
// Every pixel is copied from src to dst. A pixel whose alpha is at most
// threshold then takes the colour of its first neighbour (up, left, right,
// down, edge-clamped) with alpha above threshold, and becomes fully opaque.
// Only one neighbour ever contributes. Colour therefore spreads by exactly
// one pixel per call.
//
// src and dst must not overlap.
func DilatePass(w, h int, src, dst []byte, threshold uint8) {
	rowBytes := w * bpp
	m := 0
	for y := range h {
		for x := range w {
			copy(dst[m:m+bpp], src[m:m+bpp])
			if src[m+alphaIndex] > threshold {
				m += bpp
				continue
			}

			for _, d := range neighbours {
				nx := clampInt(x+d[0], 0, w-1)
				ny := clampInt(y+d[1], 0, h-1)
				n := ny*rowBytes + nx*bpp
				if src[n+alphaIndex] > threshold {
					copy(dst[m:m+alphaIndex], src[n:n+alphaIndex])
					dst[m+alphaIndex] = 255
					break
				}
			}
			m += bpp
		}
	}
}

// MergeColor copies R, G and B from dilated into original for every pixel
// that is fully transparent in original. Alpha in original is never written.
func MergeColor(dilated, original []byte) {
	n := min(len(dilated), len(original))
	for m := 0; m+bpp <= n; m += bpp {
		if original[m+alphaIndex] == 0 {
			copy(original[m:m+alphaIndex], dilated[m:m+alphaIndex])
		}
	}
}

// Dilator bleeds opaque colour into neighbouring transparent pixels so that
// bilinear filtering near sprite edges does not pick up black.
//
// A zero Dilator is not useful; start from NewDilator.
type Dilator struct {
	// Threshold is the alpha a pixel must exceed to be a colour source.
	Threshold uint8

	// Passes is the number of relaxation sweeps. Zero leaves the image
	// unchanged.
	Passes int

	// Alloc provides scratch memory. Nil uses the default pool.
	Alloc image.Allocator
}

// NewDilator returns a Dilator with the default threshold and pass count.
func NewDilator() *Dilator {
	return &Dilator{
		Threshold: DefaultAlphaThreshold,
		Passes:    DefaultPasses,
	}
}

// Apply dilates the pixels of v in place.
//
// The view is copied out, swept Passes times between two scratch buffers,
// and only the colour of pixels that were fully transparent is written back.
// Alpha of v is unchanged. On error v is left untouched.
func (d *Dilator) Apply(v *image.View) error {
	if v.Format() != image.FormatRGBA8 {
		return image.ErrUnsupportedFormat
	}
	alloc := d.Alloc
	if alloc == nil {
		alloc = image.DefaultPool()
	}

	w, h := v.Bounds()
	size := v.PackedSize()

	scratch, err := allocScratch(alloc, size, 3)
	if err != nil {
		return err
	}
	defer func() {
		for _, b := range scratch {
			alloc.Free(b)
		}
	}()
	original, ping, pong := scratch[0], scratch[1], scratch[2]

	if err := v.CopyTo(original); err != nil {
		return err
	}
	if d.Passes <= 0 {
		return nil
	}

	DilatePass(w, h, original, ping, d.Threshold)
	src, dst := ping, pong
	for i := 1; i < d.Passes; i++ {
		DilatePass(w, h, src, dst, d.Threshold)
		src, dst = dst, src
	}

	MergeColor(src, original)
	return v.CopyFrom(original)
}

// allocScratch obtains n buffers of size bytes, releasing the ones already
// obtained if any allocation fails.
func allocScratch(alloc image.Allocator, size, n int) ([][]byte, error) {
	bufs := make([][]byte, 0, n)
	for range n {
		b, err := alloc.Alloc(size)
		if err != nil {
			for _, got := range bufs {
				alloc.Free(got)
			}
			return nil, err
		}
		bufs = append(bufs, b)
	}
	return bufs, nil
}

// clampInt clamps an integer to [minVal, maxVal].
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
