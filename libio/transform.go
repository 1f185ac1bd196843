package libio

// Transform is a lossless per-face reorientation. Rotations are
// clockwise in screen space (top-left origin).
type Transform int

const (
	TransformNone = Transform(iota)
	TransformRotate90
	TransformRotate180
	TransformRotate270
	TransformFlipX
	TransformFlipY
)

func (t Transform) String() string {
	switch t {
	case TransformNone:
		return "none"
	case TransformRotate90:
		return "rotate90"
	case TransformRotate180:
		return "rotate180"
	case TransformRotate270:
		return "rotate270"
	case TransformFlipX:
		return "flipx"
	case TransformFlipY:
		return "flipy"
	}
	return "invalid"
}

// Swaps reports whether the transform swaps width and height.
func (t Transform) Swaps() bool {
	return t == TransformRotate90 || t == TransformRotate270
}

// Apply returns a reoriented copy, or the image itself for TransformNone.
func (img *IntImage) Apply(t Transform) *IntImage {
	if t == TransformNone {
		return img
	}
	pix, w, h := transformPix(img.Pix, img.Channels, img.Width, img.Height, t)
	return NewIntImage(pix, img.Channels, w, h)
}

// Apply returns a reoriented copy, or the image itself for TransformNone.
func (img *FloatImage) Apply(t Transform) *FloatImage {
	if t == TransformNone {
		return img
	}
	pix, w, h := transformPix(img.Pix, img.Channels, img.Width, img.Height, t)
	return NewFloatImage(pix, img.Channels, w, h)
}

func transformPix[P ~[]E, E any](pix P, ch, w, h int, t Transform) (P, int, int) {
	dw, dh := w, h
	if t.Swaps() {
		dw, dh = h, w
	}

	dst := make([]E, len(pix))

	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			var sx, sy int
			switch t {
			case TransformRotate90:
				sx, sy = y, h-1-x
			case TransformRotate180:
				sx, sy = w-1-x, h-1-y
			case TransformRotate270:
				sx, sy = w-1-y, x
			case TransformFlipX:
				sx, sy = w-1-x, y
			case TransformFlipY:
				sx, sy = x, h-1-y
			default:
				sx, sy = x, y
			}

			si := (sx + sy*w) * ch
			di := (x + y*dw) * ch
			copy(dst[di:di+ch], pix[si:si+ch])
		}
	}

	return dst, dw, dh
}
