package image

import "math/bits"

// MipmapChain holds pre-computed downscaled versions of an image.
//
// Each level is half the size of the previous one (rounded down, never
// below 1). Level 0 is the caller's image. The chain continues until both
// dimensions reach 1 pixel.
type MipmapChain struct {
	levels []*View // Level 0 = original size
	alloc  Allocator
}

// GenerateMipmaps creates a mipmap chain from src, allocating the levels
// from alloc (nil means the default pool).
//
// Uses a box filter (2x2 average) on every channel. The source view becomes
// level 0 and is not copied. On allocation failure every level obtained so
// far is released and the error is returned.
func GenerateMipmaps(src *View, alloc Allocator) (*MipmapChain, error) {
	if src == nil || src.width <= 0 || src.height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if alloc == nil {
		alloc = DefaultPool()
	}

	numLevels := MipLevelCount(src.width, src.height)
	chain := &MipmapChain{
		levels: make([]*View, 1, numLevels),
		alloc:  alloc,
	}
	chain.levels[0] = src

	for i := 1; i < numLevels; i++ {
		next, err := downsample(chain.levels[i-1], alloc)
		if err != nil {
			chain.Release()
			return nil, err
		}
		chain.levels = append(chain.levels, next)
	}

	return chain, nil
}

// MipLevelCount returns the number of levels of a full chain for an image
// of the given size: 1 + floor(log2(max(width, height))).
func MipLevelCount(width, height int) int {
	m := max(width, height)
	if m <= 0 {
		return 0
	}
	return bits.Len(uint(m))
}

// downsample creates a half-size version of src using a box filter.
func downsample(src *View, alloc Allocator) (*View, error) {
	srcW, srcH := src.Bounds()
	dstW := max(1, srcW/2)
	dstH := max(1, srcH/2)

	dst, err := NewView(dstW, dstH, src.format, alloc)
	if err != nil {
		return nil, err
	}

	bpp := src.format.BytesPerPixel()
	for dy := range dstH {
		for dx := range dstW {
			sx := dx * 2
			sy := dy * 2

			// Sample 2x2 region (handle odd dimensions)
			p0 := src.Pixel(sx, sy)
			p1 := src.Pixel(min(sx+1, srcW-1), sy)
			p2 := src.Pixel(sx, min(sy+1, srcH-1))
			p3 := src.Pixel(min(sx+1, srcW-1), min(sy+1, srcH-1))

			out := dst.Pixel(dx, dy)
			for i := range bpp {
				sum := uint16(p0[i]) + uint16(p1[i]) + uint16(p2[i]) + uint16(p3[i])
				out[i] = byte(sum / 4)
			}
		}
	}

	return dst, nil
}

// Level returns the mipmap at the specified level.
// Level 0 is the original image. Returns nil if level is out of range.
func (m *MipmapChain) Level(n int) *View {
	if m == nil || n < 0 || n >= len(m.levels) {
		return nil
	}
	return m.levels[n]
}

// NumLevels returns the total number of mipmap levels in the chain.
// Returns 0 if the chain is nil.
func (m *MipmapChain) NumLevels() int {
	if m == nil {
		return 0
	}
	return len(m.levels)
}

// Release returns all mipmap buffers to the allocator except level 0.
//
// Level 0 is the original image and is not returned since it was provided by
// the caller. After calling Release, the chain should not be used.
func (m *MipmapChain) Release() {
	if m == nil {
		return
	}

	for i := 1; i < len(m.levels); i++ {
		if m.levels[i] != nil {
			m.levels[i].Release(m.alloc)
			m.levels[i] = nil
		}
	}
	m.levels = m.levels[:min(1, len(m.levels))]
}
