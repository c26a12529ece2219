package texprep

import (
	"fmt"
	stdimage "image"

	"github.com/gogpu/texprep/internal/image"
)

// Resize resamples a packed srcWidth x srcHeight buffer of bytesPerPixel
// channels (1 to 4) to dstWidth x dstHeight with a bicubic filter.
//
// Destination pixel (x, y) samples the source at normalized coordinates
// (x/(dstWidth-1), y/(dstHeight-1)); an axis of size 1 samples at 0. Each
// channel is reconstructed from the clamped 4x4 neighbourhood with two
// passes of cubic Hermite interpolation, then clamped to [0, 255] and
// truncated. Channels are raw bytes; no colour-space conversion happens.
//
// The returned buffer is newly allocated from the configured Allocator and
// owned by the caller.
func Resize(src []byte, srcWidth, srcHeight, dstWidth, dstHeight, bytesPerPixel int, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)

	format, err := image.FormatForBPP(bytesPerPixel)
	if err != nil {
		return nil, fmt.Errorf("texprep: resize %d bytes per pixel: %w", bytesPerPixel, err)
	}
	sv, err := image.FromRaw(src, srcWidth, srcHeight, format, format.RowBytes(srcWidth))
	if err != nil {
		return nil, fmt.Errorf("texprep: resize source: %w", err)
	}

	dv, err := resizeView(sv, dstWidth, dstHeight, o.alloc)
	if err != nil {
		return nil, err
	}
	return dv.Data(), nil
}

// ResizeNRGBA returns a new width x height image resampled from img.
func ResizeNRGBA(img *stdimage.NRGBA, width, height int, opts ...Option) (*stdimage.NRGBA, error) {
	o := buildOptions(opts)

	sv, err := image.NRGBAView(img)
	if err != nil {
		return nil, fmt.Errorf("texprep: resize source: %w", err)
	}
	dv, err := resizeView(sv, width, height, o.alloc)
	if err != nil {
		return nil, err
	}

	return &stdimage.NRGBA{
		Pix:    dv.Data(),
		Stride: dv.Stride(),
		Rect:   stdimage.Rect(0, 0, width, height),
	}, nil
}

func resizeView(src *image.View, width, height int, alloc Allocator) (*image.View, error) {
	sw, sh := src.Bounds()
	Logger().Debug("texprep: resize",
		"from", fmt.Sprintf("%dx%d", sw, sh),
		"to", fmt.Sprintf("%dx%d", width, height),
		"format", src.Format())

	dst, err := image.NewView(width, height, src.Format(), alloc)
	if err != nil {
		return nil, fmt.Errorf("texprep: resize to %dx%d: %w", width, height, err)
	}
	if err := image.Resize(src, dst); err != nil {
		dst.Release(alloc)
		return nil, fmt.Errorf("texprep: resize: %w", err)
	}
	return dst, nil
}
