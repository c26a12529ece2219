package texprep

import (
	"fmt"
	stdimage "image"

	"github.com/gogpu/texprep/internal/image"
)

// DilateAll bleeds opaque colour into the transparent pixels of a packed
// width x height RGBA buffer, in place.
//
// Only the colour of fully transparent pixels changes; alpha is preserved
// byte for byte. See DilateRegion for details.
func DilateAll(pix []byte, width, height int, opts ...Option) error {
	return DilateRegion(pix, width, height, 0, 0, width, height, opts...)
}

// DilateRegion bleeds opaque colour into the transparent pixels of the
// rectangle (x, y, subWidth, subHeight) of a packed width x height RGBA
// buffer, in place.
//
// The region is treated as a standalone image: neighbours outside it are
// never read. Each sweep pulls the colour of the first neighbour (up, left,
// right, down) whose alpha exceeds the threshold into pixels at or below the
// threshold. After all sweeps, the resulting colour is written back into
// pixels whose alpha is exactly 0.
//
// The region is validated before anything is allocated. On any error the
// buffer is left unmodified.
func DilateRegion(pix []byte, width, height, x, y, subWidth, subHeight int, opts ...Option) error {
	o := buildOptions(opts)
	if o.bpp != image.FormatRGBA8.BytesPerPixel() {
		return fmt.Errorf("texprep: dilate %d bytes per pixel: %w", o.bpp, ErrUnsupportedFormat)
	}

	parent, err := image.FromRaw(pix, width, height, image.FormatRGBA8, image.FormatRGBA8.RowBytes(width))
	if err != nil {
		return fmt.Errorf("texprep: dilate: %w", err)
	}
	region, err := parent.Sub(x, y, subWidth, subHeight)
	if err != nil {
		return fmt.Errorf("texprep: dilate region (%d,%d %dx%d) of %dx%d: %w",
			x, y, subWidth, subHeight, width, height, err)
	}

	return dilateView(region, &o)
}

// DilateNRGBA dilates every pixel of img in place, honouring its stride.
func DilateNRGBA(img *stdimage.NRGBA, opts ...Option) error {
	o := buildOptions(opts)
	v, err := image.NRGBAView(img)
	if err != nil {
		return fmt.Errorf("texprep: dilate: %w", err)
	}
	return dilateView(v, &o)
}

func dilateView(v *image.View, o *options) error {
	w, h := v.Bounds()
	Logger().Debug("texprep: dilate",
		"width", w, "height", h,
		"passes", o.passes, "threshold", o.threshold)

	if err := o.dilator().Apply(v); err != nil {
		return fmt.Errorf("texprep: dilate: %w", err)
	}
	return nil
}
