package texprep

import (
	"errors"
	stdimage "image"
	"image/color"
	"testing"
)

// tileset builds a 16x16 grid of tile x tile pixels where tiles listed in
// opaque are filled with alpha a and the rest are transparent.
func tileset(tile int, a uint8, opaque ...int) *stdimage.NRGBA {
	size := tile * TileGrid
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, size, size))
	for _, id := range opaque {
		tx, ty := id%TileGrid, id/TileGrid
		for y := ty * tile; y < (ty+1)*tile; y++ {
			for x := tx * tile; x < (tx+1)*tile; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: a})
			}
		}
	}
	return img
}

func TestAnalyseTileFlags(t *testing.T) {
	img := tileset(4, 255, 0, 17, 255)

	flags, err := AnalyseTileFlags(img.Pix, img.Rect.Dx(), img.Rect.Dy())
	if err != nil {
		t.Fatalf("AnalyseTileFlags() = %v", err)
	}

	for id := range TileCount {
		want := id == 0 || id == 17 || id == 255
		if flags.Opaque(id) != want {
			t.Errorf("tile %d opaque = %v, want %v", id, flags.Opaque(id), want)
		}
	}
}

func TestAnalyseTileFlagsThreshold(t *testing.T) {
	tests := []struct {
		alpha uint8
		want  bool
	}{
		{TileOpaqueAlpha, true},
		{TileOpaqueAlpha - 1, false},
		{255, true},
	}

	for _, tt := range tests {
		img := tileset(2, tt.alpha, 5)
		flags, err := AnalyseTileFlags(img.Pix, img.Rect.Dx(), img.Rect.Dy())
		if err != nil {
			t.Fatalf("AnalyseTileFlags() = %v", err)
		}
		if flags.Opaque(5) != tt.want {
			t.Errorf("alpha %d: opaque = %v, want %v", tt.alpha, flags.Opaque(5), tt.want)
		}
	}
}

func TestAnalyseTileFlagsOnePixelHole(t *testing.T) {
	img := tileset(8, 255, 3)
	img.SetNRGBA(3*8+5, 6, color.NRGBA{A: 0})

	flags, err := AnalyseTileFlags(img.Pix, img.Rect.Dx(), img.Rect.Dy())
	if err != nil {
		t.Fatalf("AnalyseTileFlags() = %v", err)
	}
	if flags.Opaque(3) {
		t.Error("tile with a transparent pixel flagged opaque")
	}
}

func TestAnalyseTileFlagsNonSquare(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"wide tiles", 64, 32},
		{"smaller than grid", 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix := fill(tt.w, tt.h, color.NRGBA{A: 255})
			flags, err := AnalyseTileFlags(pix, tt.w, tt.h)
			if err != nil {
				t.Fatalf("AnalyseTileFlags() = %v", err)
			}
			if flags != (TileFlags{}) {
				t.Error("expected no flags for an unsupported grid")
			}
		})
	}
}

func TestAnalyseTileFlagsErrors(t *testing.T) {
	if _, err := AnalyseTileFlags(make([]byte, 10), 16, 16); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("error = %v, want ErrDataTooSmall", err)
	}
	if _, err := AnalyseTileFlags(nil, 0, 16); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("error = %v, want ErrInvalidDimensions", err)
	}
}

func TestTileFlagsOpaqueRange(t *testing.T) {
	var f TileFlags
	f[0] = TileOpaque
	if f.Opaque(-1) || f.Opaque(TileCount) {
		t.Error("out of range ids should not be opaque")
	}
	if !f.Opaque(0) {
		t.Error("tile 0 should be opaque")
	}
}

func TestPixelsEqual(t *testing.T) {
	a := stdimage.NewNRGBA(stdimage.Rect(0, 0, 3, 2))
	a.SetNRGBA(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	// Same pixels behind a wider stride and offset bounds.
	parent := stdimage.NewNRGBA(stdimage.Rect(0, 0, 5, 4))
	parent.SetNRGBA(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	b := parent.SubImage(stdimage.Rect(1, 1, 4, 3)).(*stdimage.NRGBA)

	if !PixelsEqual(a, b) {
		t.Error("equal pixels reported different")
	}

	b.SetNRGBA(3, 1, color.NRGBA{A: 1})
	if PixelsEqual(a, b) {
		t.Error("different pixels reported equal")
	}

	c := stdimage.NewNRGBA(stdimage.Rect(0, 0, 2, 3))
	if PixelsEqual(a, c) {
		t.Error("different sizes reported equal")
	}
}
