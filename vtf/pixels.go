package vtf

import (
	"encoding/binary"

	"github.com/x448/float16"

	"skyconv/libio"
)

// decodable reports whether the format can be converted to a raster
// image. Paletted and vector formats are not.
func decodable(f Format) bool {
	if f.Compressed() {
		return true
	}
	switch f {
	case FormatP8, FormatUV88, FormatUVWQ8888, FormatUVLX8888, FormatNone:
		return false
	}
	return f.pixelBytes() != 0
}

// decodePixels converts raw image data into a 4-channel raster.
func decodePixels(f Format, data []byte, width, height int) (*libio.IntImage, *libio.FloatImage, error) {
	if f == FormatRGBA16161616F {
		return nil, decodeFloatPixels(data, width, height), nil
	}

	count := width * height
	pix := make([]uint8, count*4)

	switch f {
	case FormatRGBA8888:
		copy(pix, data)
	case FormatABGR8888:
		for i := 0; i < count; i++ {
			pix[i*4+0] = data[i*4+3]
			pix[i*4+1] = data[i*4+2]
			pix[i*4+2] = data[i*4+1]
			pix[i*4+3] = data[i*4+0]
		}
	case FormatARGB8888:
		for i := 0; i < count; i++ {
			pix[i*4+0] = data[i*4+1]
			pix[i*4+1] = data[i*4+2]
			pix[i*4+2] = data[i*4+3]
			pix[i*4+3] = data[i*4+0]
		}
	case FormatBGRA8888:
		for i := 0; i < count; i++ {
			pix[i*4+0] = data[i*4+2]
			pix[i*4+1] = data[i*4+1]
			pix[i*4+2] = data[i*4+0]
			pix[i*4+3] = data[i*4+3]
		}
	case FormatBGRX8888:
		for i := 0; i < count; i++ {
			pix[i*4+0] = data[i*4+2]
			pix[i*4+1] = data[i*4+1]
			pix[i*4+2] = data[i*4+0]
			pix[i*4+3] = 0xff
		}
	case FormatRGB888, FormatRGB888BlueScreen:
		for i := 0; i < count; i++ {
			pix[i*4+0] = data[i*3+0]
			pix[i*4+1] = data[i*3+1]
			pix[i*4+2] = data[i*3+2]
			pix[i*4+3] = 0xff
		}
	case FormatBGR888, FormatBGR888BlueScreen:
		for i := 0; i < count; i++ {
			pix[i*4+0] = data[i*3+2]
			pix[i*4+1] = data[i*3+1]
			pix[i*4+2] = data[i*3+0]
			pix[i*4+3] = 0xff
		}
	case FormatRGB565:
		// the first named component sits in the low bits
		for i := 0; i < count; i++ {
			p := binary.LittleEndian.Uint16(data[i*2:])
			pix[i*4+0] = expand5(uint8(p))
			pix[i*4+1] = expand6(uint8(p >> 5))
			pix[i*4+2] = expand5(uint8(p >> 11))
			pix[i*4+3] = 0xff
		}
	case FormatBGR565:
		for i := 0; i < count; i++ {
			p := binary.LittleEndian.Uint16(data[i*2:])
			pix[i*4+0] = expand5(uint8(p >> 11))
			pix[i*4+1] = expand6(uint8(p >> 5))
			pix[i*4+2] = expand5(uint8(p))
			pix[i*4+3] = 0xff
		}
	case FormatBGRX5551, FormatBGRA5551:
		for i := 0; i < count; i++ {
			p := binary.LittleEndian.Uint16(data[i*2:])
			pix[i*4+0] = expand5(uint8(p >> 10))
			pix[i*4+1] = expand5(uint8(p >> 5))
			pix[i*4+2] = expand5(uint8(p))
			if f == FormatBGRA5551 && p&0x8000 == 0 {
				pix[i*4+3] = 0
			} else {
				pix[i*4+3] = 0xff
			}
		}
	case FormatBGRA4444:
		for i := 0; i < count; i++ {
			p := binary.LittleEndian.Uint16(data[i*2:])
			pix[i*4+0] = expand4(uint8(p >> 8))
			pix[i*4+1] = expand4(uint8(p >> 4))
			pix[i*4+2] = expand4(uint8(p))
			pix[i*4+3] = expand4(uint8(p >> 12))
		}
	case FormatI8:
		for i := 0; i < count; i++ {
			pix[i*4+0] = data[i]
			pix[i*4+1] = data[i]
			pix[i*4+2] = data[i]
			pix[i*4+3] = 0xff
		}
	case FormatIA88:
		for i := 0; i < count; i++ {
			pix[i*4+0] = data[i*2]
			pix[i*4+1] = data[i*2]
			pix[i*4+2] = data[i*2]
			pix[i*4+3] = data[i*2+1]
		}
	case FormatA8:
		for i := 0; i < count; i++ {
			pix[i*4+3] = data[i]
		}
	case FormatRGBA16161616:
		for i := 0; i < count*4; i++ {
			pix[i] = uint8(binary.LittleEndian.Uint16(data[i*2:]) >> 8)
		}
	case FormatDXT1, FormatDXT1OneBitAlpha:
		decodeDXT1(pix, data, width, height, f == FormatDXT1OneBitAlpha)
	case FormatDXT3:
		decodeDXT3(pix, data, width, height)
	case FormatDXT5:
		decodeDXT5(pix, data, width, height)
	default:
		return nil, nil, ErrUnsupportedFormat
	}

	return libio.NewIntImage(pix, 4, width, height), nil, nil
}

func decodeFloatPixels(data []byte, width, height int) *libio.FloatImage {
	count := width * height
	pix := make([]float32, count*4)
	for i := 0; i < count*4; i++ {
		pix[i] = float16.Frombits(binary.LittleEndian.Uint16(data[i*2:])).Float32()
	}
	return libio.NewFloatImage(pix, 4, width, height)
}

// expand5 widens a 5 bit channel to 8 bits.
func expand5(v uint8) uint8 {
	v &= 0x1f
	return v<<3 | v>>2
}

// expand6 widens a 6 bit channel to 8 bits.
func expand6(v uint8) uint8 {
	v &= 0x3f
	return v<<2 | v>>4
}

// expand4 widens a 4 bit channel to 8 bits.
func expand4(v uint8) uint8 {
	v &= 0x0f
	return v<<4 | v
}
