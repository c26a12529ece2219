package filter

import (
	"bytes"
	"errors"

	"github.com/gogpu/texprep/internal/image"
)

// Test helper functions shared across filter tests.

// rgba is one straight-alpha pixel.
type rgba [4]byte

// packed builds a w x h RGBA buffer filled with fill.
func packed(w, h int, fill rgba) []byte {
	buf := make([]byte, w*h*bpp)
	for i := 0; i < len(buf); i += bpp {
		copy(buf[i:], fill[:])
	}
	return buf
}

// set writes p at (x, y) of a packed w-wide buffer.
func set(buf []byte, w, x, y int, p rgba) {
	copy(buf[(y*w+x)*bpp:], p[:])
}

// at reads the pixel at (x, y) of a packed w-wide buffer.
func at(buf []byte, w, x, y int) rgba {
	var p rgba
	copy(p[:], buf[(y*w+x)*bpp:])
	return p
}

// view wraps a packed buffer in an RGBA8 view.
func view(buf []byte, w, h int) *image.View {
	v, err := image.FromRaw(buf, w, h, image.FormatRGBA8, w*bpp)
	if err != nil {
		panic(err)
	}
	return v
}

// errNoMemory is returned by failingAlloc.
var errNoMemory = errors.New("no memory")

// failingAlloc grants the first ok allocations and refuses the rest.
type failingAlloc struct {
	ok    int
	calls int
	freed int
}

func (a *failingAlloc) Alloc(n int) ([]byte, error) {
	a.calls++
	if a.calls > a.ok {
		return nil, errNoMemory
	}
	return make([]byte, n), nil
}

func (a *failingAlloc) Free([]byte) { a.freed++ }

// sameBytes reports whether a and b are identical.
func sameBytes(a, b []byte) bool {
	return bytes.Equal(a, b)
}
