package texprep

import (
	"errors"
	"fmt"
	stdimage "image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/texprep/internal/image"
)

// ErrReleased is returned when a released Texture is used.
var ErrReleased = errors.New("texprep: texture released")

// Texture is an RGBA image prepared for GPU upload: colour bled into its
// transparent border, optionally power-of-two sized and mipmapped.
//
// A Texture owns its pixel memory until Release is called.
//
// Thread safety: Texture is not safe for concurrent mutation.
type Texture struct {
	base  *image.View
	chain *image.MipmapChain
	opts  options
}

// Prepare builds a Texture from img. img itself is not modified.
//
// The pixels are copied, dilated with the configured threshold and pass
// count, resampled down to power-of-two dimensions with WithPowerOfTwo, and
// mipmapped with WithMipmaps.
func Prepare(img *stdimage.NRGBA, opts ...Option) (*Texture, error) {
	o := buildOptions(opts)
	log := Logger()

	src, err := image.NRGBAView(img)
	if err != nil {
		return nil, fmt.Errorf("texprep: prepare: %w", err)
	}
	base, err := src.Detach(o.alloc)
	if err != nil {
		return nil, fmt.Errorf("texprep: prepare: %w", err)
	}

	if err := dilateView(base, &o); err != nil {
		base.Release(o.alloc)
		return nil, err
	}

	if o.powerOfTwo {
		w, h := base.Bounds()
		pw, ph := HighestPowerOfTwo(w), HighestPowerOfTwo(h)
		if pw != w || ph != h {
			resized, err := resizeView(base, pw, ph, o.alloc)
			base.Release(o.alloc)
			if err != nil {
				return nil, err
			}
			base = resized
		}
	}

	t := &Texture{base: base, opts: o}

	if o.mipmaps {
		chain, err := image.GenerateMipmaps(base, o.alloc)
		if err != nil {
			base.Release(o.alloc)
			return nil, fmt.Errorf("texprep: mipmaps: %w", err)
		}
		t.chain = chain
	}

	log.Debug("texprep: prepared texture",
		"width", t.Width(), "height", t.Height(), "levels", t.NumLevels())
	return t, nil
}

// Width returns the width of level 0 in pixels.
func (t *Texture) Width() int {
	if t.base == nil {
		return 0
	}
	return t.base.Width()
}

// Height returns the height of level 0 in pixels.
func (t *Texture) Height() int {
	if t.base == nil {
		return 0
	}
	return t.base.Height()
}

// Pix returns the packed RGBA pixels of level 0.
// Writes through the slice are visible to later uploads.
func (t *Texture) Pix() []byte {
	if t.base == nil {
		return nil
	}
	return t.base.Data()
}

// NumLevels returns the number of mip levels, 1 without mipmaps.
func (t *Texture) NumLevels() int {
	if t.base == nil {
		return 0
	}
	if t.chain == nil {
		return 1
	}
	return t.chain.NumLevels()
}

// Level returns the packed pixels and size of mip level n.
// Returns nil if n is out of range.
func (t *Texture) Level(n int) (pix []byte, width, height int) {
	if t.base == nil {
		return nil, 0, 0
	}
	var v *image.View
	if t.chain == nil {
		if n == 0 {
			v = t.base
		}
	} else {
		v = t.chain.Level(n)
	}
	if v == nil {
		return nil, 0, 0
	}
	return v.Data(), v.Width(), v.Height()
}

// Descriptor returns the GPU texture descriptor matching t.
func (t *Texture) Descriptor(label string) gputypes.TextureDescriptor {
	return gputypes.TextureDescriptor{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              uint32(t.Width()),  //nolint:gosec // dimensions are positive ints
			Height:             uint32(t.Height()), //nolint:gosec // dimensions are positive ints
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: uint32(t.NumLevels()), //nolint:gosec // at most 64 levels
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

// Upload creates a GPU texture from level 0.
func (t *Texture) Upload(c gpucontext.TextureCreator) (gpucontext.Texture, error) {
	if t.base == nil {
		return nil, ErrReleased
	}
	tex, err := c.NewTextureFromRGBA(t.Width(), t.Height(), t.Pix())
	if err != nil {
		return nil, fmt.Errorf("texprep: upload %dx%d: %w", t.Width(), t.Height(), err)
	}
	return tex, nil
}

// Update re-uploads all of level 0 into an existing GPU texture.
func (t *Texture) Update(u gpucontext.TextureUpdater) error {
	if t.base == nil {
		return ErrReleased
	}
	if err := u.UpdateData(t.Pix()); err != nil {
		return fmt.Errorf("texprep: update: %w", err)
	}
	return nil
}

// UpdateRegion re-dilates the rectangle (x, y, w, h) of level 0 in place and
// uploads just that rectangle. It is meant for editors that paint into Pix
// and push dirty regions. Other mip levels are not refreshed.
func (t *Texture) UpdateRegion(u gpucontext.TextureRegionUpdater, x, y, w, h int) error {
	if t.base == nil {
		return ErrReleased
	}
	region, err := t.base.Sub(x, y, w, h)
	if err != nil {
		return fmt.Errorf("texprep: update region (%d,%d %dx%d): %w", x, y, w, h, err)
	}

	// Allocate before dilating: a refused allocation must leave Pix as it was.
	alloc := t.opts.alloc
	packed, err := alloc.Alloc(region.PackedSize())
	if err != nil {
		return fmt.Errorf("texprep: update region: %w", err)
	}
	defer alloc.Free(packed)

	if err := dilateView(region, &t.opts); err != nil {
		return err
	}
	if err := region.CopyTo(packed); err != nil {
		return fmt.Errorf("texprep: update region: %w", err)
	}
	if err := u.UpdateRegion(x, y, w, h, packed); err != nil {
		return fmt.Errorf("texprep: update region (%d,%d %dx%d): %w", x, y, w, h, err)
	}
	return nil
}

// Release returns the texture's memory to its allocator. The Texture must
// not be used afterwards; methods then report ErrReleased or zero values.
func (t *Texture) Release() {
	if t.chain != nil {
		t.chain.Release()
		t.chain = nil
	}
	if t.base != nil {
		t.base.Release(t.opts.alloc)
		t.base = nil
	}
}
