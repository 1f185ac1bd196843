package skybox

import (
	"errors"
	"fmt"
	goimg "image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/mokiat/goexr/exr"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"skyconv/libio"
	"skyconv/vtf"
)

// ErrUnsupportedFormat marks face files no codec can decode.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// FaceImage is one decoded face. Exactly one of Rgba and Hdr is set.
type FaceImage struct {
	Rgba *libio.IntImage
	Hdr  *libio.FloatImage
}

func (f *FaceImage) IsHDR() bool {
	return f.Hdr != nil
}

// Size returns the face dimensions.
func (f *FaceImage) Size() (int, int) {
	if f.Hdr != nil {
		return f.Hdr.Width, f.Hdr.Height
	}
	return f.Rgba.Width, f.Rgba.Height
}

// Flatten returns the face as 4 channel 8 bit colors, tonemapping HDR
// sources with gamma and scale. The result is always opaque.
func (f *FaceImage) Flatten(gamma, scale float32) *libio.IntImage {
	if f.Hdr != nil {
		return f.Hdr.ToChannels(3).ToIntImage(gamma, scale).ToChannels(4, 0xff)
	}
	return f.Rgba
}

// Linear returns the face as 3 channel float colors, linearizing 8 bit
// sources with gamma.
func (f *FaceImage) Linear(gamma float32) *libio.FloatImage {
	if f.Hdr != nil {
		return f.Hdr.ToChannels(3)
	}
	return f.Rgba.ToFloatImage(gamma).ToChannels(3)
}

// LoadFace decodes a face image, picking the codec by file extension.
func LoadFace(path string) (*FaceImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".vtf":
		tex, err := vtf.Decode(file)
		if err != nil {
			return nil, err
		}
		return &FaceImage{Rgba: tex.Rgba, Hdr: tex.Hdr}, nil

	case ".hdr":
		img, err := libio.DecodeHdr(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return &FaceImage{Hdr: img}, nil

	case ".exr":
		img, err := exr.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		// the 16 bit color model clips the float range to [0, 1]
		return &FaceImage{Hdr: libio.FloatFromImage(img)}, nil

	default:
		var img goimg.Image
		switch ext {
		case ".png":
			img, err = png.Decode(file)
		case ".jpg", ".jpeg":
			img, err = jpeg.Decode(file)
		case ".tga":
			img, err = tga.Decode(file)
		case ".bmp":
			img, err = bmp.Decode(file)
		case ".tif", ".tiff":
			img, err = tiff.Decode(file)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return &FaceImage{Rgba: libio.FromImage(img)}, nil
	}
}
