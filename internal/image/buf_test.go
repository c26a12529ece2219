package image

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewView(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		format  Format
		wantErr error
	}{
		{"valid RGBA8", 100, 100, FormatRGBA8, nil},
		{"valid Gray8", 50, 50, FormatGray8, nil},
		{"1x1 minimum", 1, 1, FormatRGBA8, nil},
		{"zero width", 0, 100, FormatRGBA8, ErrInvalidDimensions},
		{"zero height", 100, 0, FormatRGBA8, ErrInvalidDimensions},
		{"negative width", -1, 100, FormatRGBA8, ErrInvalidDimensions},
		{"invalid format", 100, 100, Format(255), ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewView(tt.width, tt.height, tt.format, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewView() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			if v.Width() != tt.width || v.Height() != tt.height {
				t.Errorf("Bounds() = %dx%d, want %dx%d", v.Width(), v.Height(), tt.width, tt.height)
			}
			if v.Stride() != tt.format.RowBytes(tt.width) {
				t.Errorf("Stride() = %d, want %d", v.Stride(), tt.format.RowBytes(tt.width))
			}
			if len(v.Data()) != tt.format.ImageBytes(tt.width, tt.height) {
				t.Errorf("len(Data()) = %d, want %d", len(v.Data()), tt.format.ImageBytes(tt.width, tt.height))
			}
			if !v.IsPacked() {
				t.Error("new view should be packed")
			}
		})
	}
}

func TestNewViewAllocatorRefuses(t *testing.T) {
	pool := NewPool(0, 64)
	if _, err := NewView(16, 16, FormatRGBA8, pool); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("NewView over limit error = %v, want ErrOutOfMemory", err)
	}
}

func TestFromRaw(t *testing.T) {
	tests := []struct {
		name    string
		dataLen int
		width   int
		height  int
		stride  int
		wantErr error
	}{
		{"exact packed", 4 * 4 * 3, 4, 3, 16, nil},
		{"padded stride", 20*3 - 4, 4, 3, 20, nil},
		{"stride too small", 64, 4, 3, 12, ErrInvalidStride},
		{"data too small", 16*3 - 1, 4, 3, 16, ErrDataTooSmall},
		{"zero height", 64, 4, 0, 16, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRaw(make([]byte, tt.dataLen), tt.width, tt.height, FormatRGBA8, tt.stride)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FromRaw() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestViewPixelAccess(t *testing.T) {
	data := make([]byte, 3*2*4)
	v, err := FromRaw(data, 3, 2, FormatRGBA8, 12)
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}

	copy(v.Pixel(2, 1), []byte{1, 2, 3, 4})
	if got := data[20:24]; !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("Pixel(2,1) wrote %v at wrong offset", got)
	}
	if v.Alpha(2, 1) != 4 {
		t.Errorf("Alpha(2,1) = %d, want 4", v.Alpha(2, 1))
	}

	for _, p := range [][2]int{{-1, 0}, {3, 0}, {0, 2}, {0, -1}} {
		if v.Pixel(p[0], p[1]) != nil {
			t.Errorf("Pixel(%d,%d) should be nil", p[0], p[1])
		}
		if v.PixelOffset(p[0], p[1]) != -1 {
			t.Errorf("PixelOffset(%d,%d) should be -1", p[0], p[1])
		}
	}
	if v.Row(2) != nil {
		t.Error("Row(2) should be nil")
	}
}

func TestViewPixelClamped(t *testing.T) {
	v, _ := NewView(2, 2, FormatGray8, nil)
	copy(v.Data(), []byte{10, 20, 30, 40})

	tests := []struct {
		x, y int
		want byte
	}{
		{-5, -5, 10},
		{5, -1, 20},
		{-1, 9, 30},
		{9, 9, 40},
		{1, 0, 20},
	}
	for _, tt := range tests {
		if got := v.PixelClamped(tt.x, tt.y)[0]; got != tt.want {
			t.Errorf("PixelClamped(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestViewAlphaWithoutChannel(t *testing.T) {
	v, _ := NewView(1, 1, FormatRGB8, nil)
	if v.Alpha(0, 0) != 255 {
		t.Errorf("Alpha on RGB8 = %d, want 255", v.Alpha(0, 0))
	}
}

func TestViewSub(t *testing.T) {
	parent, _ := NewView(4, 4, FormatRGBA8, nil)
	for i := range parent.Data() {
		parent.Data()[i] = byte(i)
	}

	tests := []struct {
		name       string
		x, y, w, h int
		wantErr    error
	}{
		{"interior", 1, 1, 2, 2, nil},
		{"whole", 0, 0, 4, 4, nil},
		{"bottom right pixel", 3, 3, 1, 1, nil},
		{"zero width", 0, 0, 0, 2, ErrInvalidRegion},
		{"negative height", 0, 0, 2, -1, ErrInvalidRegion},
		{"negative x", -1, 0, 2, 2, ErrInvalidRegion},
		{"past right edge", 3, 0, 2, 1, ErrInvalidRegion},
		{"past bottom edge", 0, 2, 1, 3, ErrInvalidRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := parent.Sub(tt.x, tt.y, tt.w, tt.h)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Sub() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if sub.Stride() != parent.Stride() {
				t.Errorf("sub stride = %d, want parent stride %d", sub.Stride(), parent.Stride())
			}
			got := sub.Pixel(0, 0)
			want := parent.Pixel(tt.x, tt.y)
			if !bytes.Equal(got, want) {
				t.Errorf("sub (0,0) = %v, want %v", got, want)
			}
			// Writes through the sub view land in the parent.
			sub.Pixel(tt.w-1, tt.h-1)[0] = 0xEE
			if parent.Pixel(tt.x+tt.w-1, tt.y+tt.h-1)[0] != 0xEE {
				t.Error("write through sub view not visible in parent")
			}
		})
	}
}

func TestViewCopyToFrom(t *testing.T) {
	parent, _ := NewView(4, 3, FormatRGBA8, nil)
	for i := range parent.Data() {
		parent.Data()[i] = byte(i)
	}
	sub, err := parent.Sub(1, 1, 2, 2)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if sub.IsPacked() {
		t.Fatal("interior sub view should not be packed")
	}

	packed := make([]byte, sub.PackedSize())
	if err := sub.CopyTo(packed); err != nil {
		t.Fatalf("CopyTo failed: %v", err)
	}
	want := append(append([]byte{}, parent.Pixel(1, 1)...), parent.Pixel(2, 1)...)
	want = append(want, parent.Pixel(1, 2)...)
	want = append(want, parent.Pixel(2, 2)...)
	if !bytes.Equal(packed, want) {
		t.Errorf("CopyTo = %v, want %v", packed, want)
	}

	for i := range packed {
		packed[i] = 0xAB
	}
	before := append([]byte{}, parent.Data()...)
	if err := sub.CopyFrom(packed); err != nil {
		t.Fatalf("CopyFrom failed: %v", err)
	}
	for y := range 3 {
		for x := range 4 {
			inside := x >= 1 && x <= 2 && y >= 1 && y <= 2
			off := parent.PixelOffset(x, y)
			for c := range 4 {
				got := parent.Data()[off+c]
				switch {
				case inside && got != 0xAB:
					t.Fatalf("(%d,%d) not written", x, y)
				case !inside && got != before[off+c]:
					t.Fatalf("(%d,%d) outside region modified", x, y)
				}
			}
		}
	}

	if err := sub.CopyTo(make([]byte, 3)); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("CopyTo short dst error = %v, want ErrDataTooSmall", err)
	}
	if err := sub.CopyFrom(make([]byte, 3)); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("CopyFrom short src error = %v, want ErrDataTooSmall", err)
	}
}

func TestViewDetach(t *testing.T) {
	parent, _ := NewView(3, 3, FormatRGBA8, nil)
	for i := range parent.Data() {
		parent.Data()[i] = byte(i * 3)
	}
	sub, _ := parent.Sub(1, 0, 2, 3)

	d, err := sub.Detach(nil)
	if err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if !d.IsPacked() || d.Width() != 2 || d.Height() != 3 {
		t.Fatalf("detached view %dx%d packed=%v", d.Width(), d.Height(), d.IsPacked())
	}
	for y := range 3 {
		for x := range 2 {
			if !bytes.Equal(d.Pixel(x, y), sub.Pixel(x, y)) {
				t.Errorf("detached (%d,%d) differs", x, y)
			}
		}
	}

	d.Pixel(0, 0)[0] = 0xFF
	if sub.Pixel(0, 0)[0] == 0xFF {
		t.Error("detached view still aliases parent")
	}
}
