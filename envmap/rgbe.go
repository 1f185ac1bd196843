package envmap

import "github.com/chewxy/math32"

// Shared-exponent RGBE pixels: 8 bits per color scaled so the largest
// component lands in [128, 256), plus the exponent biased by 128. An
// exponent byte of 0 is pure black.

// encodeRgbeChunk packs groups of components floats into 4 byte RGBE
// pixels. buf must hold len(data)/components*4 bytes. Returns the
// number of bytes written.
func encodeRgbeChunk(components int, data []float32, buf []byte) int {
	n := 0
	for i := 0; i+components <= len(data); i += components {
		r := data[i+0]
		g := data[i+1]
		b := data[i+2]

		max := math32.Max(r, math32.Max(g, b))
		if max < 1e-32 {
			buf[n+0] = 0
			buf[n+1] = 0
			buf[n+2] = 0
			buf[n+3] = 0
		} else {
			frac, exp := math32.Frexp(max)
			scale := frac * 256 / max
			buf[n+0] = uint8(math32.Max(0, r*scale))
			buf[n+1] = uint8(math32.Max(0, g*scale))
			buf[n+2] = uint8(math32.Max(0, b*scale))
			buf[n+3] = uint8(exp + 128)
		}
		n += 4
	}
	return n
}

// decodeRgbeChunk expands 4 byte RGBE pixels into groups of components
// floats. buf must hold len(data)/4*components floats. With 4
// components the alpha is fixed at 1. Returns the number of floats
// written.
func decodeRgbeChunk(components int, data []byte, buf []float32) int {
	n := 0
	for i := 0; i+4 <= len(data); i += 4 {
		if e := data[i+3]; e == 0 {
			buf[n+0] = 0
			buf[n+1] = 0
			buf[n+2] = 0
		} else {
			f := math32.Ldexp(1.0, int(e)-(128+8))
			buf[n+0] = float32(data[i+0]) * f
			buf[n+1] = float32(data[i+1]) * f
			buf[n+2] = float32(data[i+2]) * f
		}
		if components == 4 {
			buf[n+3] = 1
			n += 4
		} else {
			n += 3
		}
	}
	return n
}
