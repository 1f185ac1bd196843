package libio

import (
	goimg "image"
	"image/color"
	"image/draw"
)

// FromImage converts any decoded image into a 4-channel IntImage.
func FromImage(src goimg.Image) *IntImage {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	nrgba, ok := src.(*goimg.NRGBA)
	if !ok || b.Min != (goimg.Point{}) || nrgba.Stride != w*4 {
		nrgba = goimg.NewNRGBA(goimg.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}

	pix := make([]uint8, w*h*4)
	copy(pix, nrgba.Pix)

	return NewIntImage(pix, 4, w, h)
}

// FloatFromImage converts a decoded image into a 4-channel FloatImage
// through the 16-bit color model, mapping [0, 0xffff] onto [0, 1].
func FloatFromImage(src goimg.Image) *FloatImage {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	pix := make([]float32, w*h*4)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA64Model.Convert(src.At(x, y)).(color.NRGBA64)
			pix[i+0] = float32(c.R) / 0xffff
			pix[i+1] = float32(c.G) / 0xffff
			pix[i+2] = float32(c.B) / 0xffff
			pix[i+3] = float32(c.A) / 0xffff
			i += 4
		}
	}

	return NewFloatImage(pix, 4, w, h)
}
