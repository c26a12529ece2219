package texprep

import (
	"bytes"
	"fmt"
	stdimage "image"

	"github.com/gogpu/texprep/internal/image"
)

const (
	// TileGrid is the number of tiles along each side of a tileset image.
	TileGrid = 16

	// TileCount is the number of tiles in a tileset image.
	TileCount = TileGrid * TileGrid

	// TileOpaqueAlpha is the alpha every pixel of a tile must reach for the
	// tile to count as opaque.
	TileOpaqueAlpha = 250
)

// TileFlag describes properties of one tile in a tileset.
type TileFlag uint8

const (
	// TileOpaque marks a tile whose pixels all have alpha >= TileOpaqueAlpha.
	TileOpaque TileFlag = 1 << iota
)

// TileFlags holds the flags of every tile of a 16x16 tileset, row by row.
type TileFlags [TileCount]TileFlag

// Opaque reports whether tile id is marked opaque.
func (f *TileFlags) Opaque(id int) bool {
	if id < 0 || id >= TileCount {
		return false
	}
	return f[id]&TileOpaque != 0
}

// AnalyseTileFlags splits a packed width x height RGBA tileset into a 16x16
// grid and flags the opaque tiles. Map renderers use the flag to skip drawing
// whatever a tile covers.
//
// Only grids of square tiles are analysed; other sizes return all-zero flags.
func AnalyseTileFlags(pix []byte, width, height int) (TileFlags, error) {
	var flags TileFlags

	v, err := image.FromRaw(pix, width, height, image.FormatRGBA8, image.FormatRGBA8.RowBytes(width))
	if err != nil {
		return flags, fmt.Errorf("texprep: tile flags: %w", err)
	}

	tw := width / TileGrid
	th := height / TileGrid
	if tw != th || tw == 0 {
		Logger().Warn("texprep: tile flags skipped, tiles are not square",
			"width", width, "height", height)
		return flags, nil
	}

	for ty := range TileGrid {
		for tx := range TileGrid {
			if tileOpaque(v, tx*tw, ty*th, tw, th) {
				flags[ty*TileGrid+tx] |= TileOpaque
			}
		}
	}
	return flags, nil
}

func tileOpaque(v *image.View, x0, y0, w, h int) bool {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if v.Alpha(x, y) < TileOpaqueAlpha {
				return false
			}
		}
	}
	return true
}

// PixelsEqual reports whether a and b have the same size and identical
// pixels. Bounds offsets and row padding are ignored.
func PixelsEqual(a, b *stdimage.NRGBA) bool {
	if a.Rect.Dx() != b.Rect.Dx() || a.Rect.Dy() != b.Rect.Dy() {
		return false
	}
	rowBytes := a.Rect.Dx() * 4
	for y := range a.Rect.Dy() {
		ra := a.Pix[y*a.Stride : y*a.Stride+rowBytes]
		rb := b.Pix[y*b.Stride : y*b.Stride+rowBytes]
		if !bytes.Equal(ra, rb) {
			return false
		}
	}
	return true
}
