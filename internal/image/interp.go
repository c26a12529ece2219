package image

import "github.com/chewxy/math32"

// CubicHermite evaluates the four-point cubic through B (t=0) and C (t=1),
// using A and D as tangent context. It is the Catmull-Rom spline written in
// power form.
func CubicHermite(a, b, c, d, t float32) float32 {
	ca := -a/2 + (3*b)/2 - (3*c)/2 + d/2
	cb := a - (5*b)/2 + 2*c - d/2
	cc := -a/2 + c/2
	cd := b

	return ca*t*t*t + cb*t*t + cc*t + cd
}

// SampleBicubic reconstructs the pixel at normalized coordinates (u, v) and
// writes BytesPerPixel bytes to out.
//
// The coordinate maps to X = u*width - 0.5. The 4x4 neighbourhood around
// floor(X), floor(Y) is gathered with edge replication, every row is
// interpolated horizontally, and the four row results vertically. Each
// channel is clamped to [0, 255] and truncated.
func SampleBicubic(src *View, u, v float32, out []byte) {
	w, h := src.Bounds()
	bpp := src.format.BytesPerPixel()

	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5

	xf := math32.Floor(fx)
	yf := math32.Floor(fy)
	x := int(xf)
	y := int(yf)
	tx := fx - xf
	ty := fy - yf

	var samples [4][4][]byte
	for dy := range 4 {
		for dx := range 4 {
			samples[dy][dx] = src.PixelClamped(x+dx-1, y+dy-1)
		}
	}

	for i := range bpp {
		var rows [4]float32
		for dy := range 4 {
			row := &samples[dy]
			rows[dy] = CubicHermite(
				float32(row[0][i]), float32(row[1][i]),
				float32(row[2][i]), float32(row[3][i]), tx)
		}
		out[i] = byte(clampFloat(CubicHermite(rows[0], rows[1], rows[2], rows[3], ty), 0, 255))
	}
}

// Resize fills dst by bicubic resampling of src. Both views must share
// a format.
func Resize(src, dst *View) error {
	if src.format != dst.format {
		return ErrUnsupportedFormat
	}

	dw, dh := dst.Bounds()
	for y := range dh {
		v := normalized(y, dh)
		for x := range dw {
			SampleBicubic(src, normalized(x, dw), v, dst.Pixel(x, y))
		}
	}
	return nil
}

// normalized maps index i of n samples onto [0, 1]. A single sample sits at 0.
func normalized(i, n int) float32 {
	if n <= 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}

// clampFloat clamps a float32 value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clampFloat(val, minVal, maxVal float32) float32 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
