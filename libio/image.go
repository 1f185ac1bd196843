package libio

import (
	goimg "image"

	"github.com/chewxy/math32"
)

type image struct {
	Channels      int
	Width, Height int
}

// Calculates the tuple index into the image data.
//
// The origin (0,0) is in the top left, matching Go's image package.
func (img *image) Index(x, y int) int {
	return x*img.Channels + y*img.Channels*img.Width
}

func (img *image) Count() int {
	return img.Width * img.Height
}

type IntImage struct {
	image
	Pix []uint8
}

func NewIntImage(pix []uint8, channels int, width, height int) *IntImage {
	return &IntImage{
		Pix: pix,
		image: image{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

func (img *IntImage) Bytes() int {
	return img.Width * img.Height * img.Channels
}

func (img *IntImage) ToChannels(nr int, defaults ...uint8) *IntImage {
	dst := toChannels(img.Channels, nr, img.Count(), img.Pix, defaults...)

	return NewIntImage(dst, nr, img.Width, img.Height)
}

// toChannels widens or narrows the per-pixel channel count. Appended
// channels take their values from defaults, zero when not given.
func toChannels[P ~[]E, E any](srcCh, dstCh int, count int, pix P, defaults ...E) P {
	if srcCh == dstCh {
		return pix
	}

	if len(defaults) < dstCh-srcCh {
		missing := dstCh - srcCh - len(defaults)
		defaults = append(defaults, make([]E, missing)...)
	}

	dst := make([]E, count*dstCh)

	if dstCh > srcCh {
		for i := 0; i < count; i++ {
			for c := 0; c < srcCh; c++ {
				dst[i*dstCh+c] = pix[i*srcCh+c]
			}
			for c := srcCh; c < dstCh; c++ {
				dst[i*dstCh+c] = defaults[c-srcCh]
			}
		}
	}

	if dstCh < srcCh {
		for i := 0; i < count; i++ {
			for c := 0; c < dstCh; c++ {
				dst[i*dstCh+c] = pix[i*srcCh+c]
			}
		}
	}

	return dst
}

// ToNRGBA converts to the standard library's straight-alpha image type.
// Single and dual channel images are widened as grayscale.
func (img *IntImage) ToNRGBA() *goimg.NRGBA {
	rgba := goimg.NewNRGBA(goimg.Rect(0, 0, img.Width, img.Height))

	for i := 0; i < img.Count(); i++ {
		j := i * img.Channels
		k := i * 4
		switch img.Channels {
		case 1:
			rgba.Pix[k+0] = img.Pix[j]
			rgba.Pix[k+1] = img.Pix[j]
			rgba.Pix[k+2] = img.Pix[j]
			rgba.Pix[k+3] = 0xff
		case 2:
			rgba.Pix[k+0] = img.Pix[j]
			rgba.Pix[k+1] = img.Pix[j]
			rgba.Pix[k+2] = img.Pix[j]
			rgba.Pix[k+3] = img.Pix[j+1]
		case 3:
			rgba.Pix[k+0] = img.Pix[j+0]
			rgba.Pix[k+1] = img.Pix[j+1]
			rgba.Pix[k+2] = img.Pix[j+2]
			rgba.Pix[k+3] = 0xff
		default:
			copy(rgba.Pix[k:k+4], img.Pix[j:j+4])
		}
	}

	return rgba
}

// ToFloatImage linearizes the 8-bit pixels with the given gamma.
// Alpha channels keep the gamma applied too, which is fine for the
// opaque textures this tool deals in.
func (img *IntImage) ToFloatImage(gamma float32) *FloatImage {
	pix := make([]float32, len(img.Pix))

	for i := 0; i < len(img.Pix); i++ {
		pix[i] = math32.Pow(float32(img.Pix[i])/0xff, gamma)
	}

	return NewFloatImage(pix, img.Channels, img.Width, img.Height)
}

type FloatImage struct {
	image
	Pix []float32
}

func NewFloatImage(pix []float32, channels int, width, height int) *FloatImage {
	return &FloatImage{
		Pix: pix,
		image: image{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

func (img *FloatImage) Bytes() int {
	return img.Width * img.Height * img.Channels * 4
}

func (img *FloatImage) ToChannels(nr int, defaults ...float32) *FloatImage {
	dst := toChannels(img.Channels, nr, img.Count(), img.Pix, defaults...)

	return NewFloatImage(dst, nr, img.Width, img.Height)
}

func (img *FloatImage) ToIntImage(gamma, scale float32) *IntImage {
	pix := make([]uint8, len(img.Pix))

	for i := 0; i < len(img.Pix); i++ {
		pix[i] = uint8(tonemap(img.Pix[i], 1.0/gamma, scale)*0xff + 0.5)
	}

	return NewIntImage(pix, img.Channels, img.Width, img.Height)
}

func tonemap(value, gamma, scale float32) float32 {
	value = math32.Pow(value*scale, gamma)
	return math32.Min(math32.Max(0.0, value), 1.0)
}
