package vtf

// Format is the on-disk pixel format id of the high and low resolution
// image data.
type Format uint32

const (
	FormatRGBA8888 = Format(iota)
	FormatABGR8888
	FormatRGB888
	FormatBGR888
	FormatRGB565
	FormatI8
	FormatIA88
	FormatP8
	FormatA8
	FormatRGB888BlueScreen
	FormatBGR888BlueScreen
	FormatARGB8888
	FormatBGRA8888
	FormatDXT1
	FormatDXT3
	FormatDXT5
	FormatBGRX8888
	FormatBGR565
	FormatBGRX5551
	FormatBGRA4444
	FormatDXT1OneBitAlpha
	FormatBGRA5551
	FormatUV88
	FormatUVWQ8888
	FormatRGBA16161616F
	FormatRGBA16161616
	FormatUVLX8888

	FormatNone = Format(0xffffffff)
)

var formatNames = map[Format]string{
	FormatRGBA8888:         "RGBA8888",
	FormatABGR8888:         "ABGR8888",
	FormatRGB888:           "RGB888",
	FormatBGR888:           "BGR888",
	FormatRGB565:           "RGB565",
	FormatI8:               "I8",
	FormatIA88:             "IA88",
	FormatP8:               "P8",
	FormatA8:               "A8",
	FormatRGB888BlueScreen: "RGB888_BLUESCREEN",
	FormatBGR888BlueScreen: "BGR888_BLUESCREEN",
	FormatARGB8888:         "ARGB8888",
	FormatBGRA8888:         "BGRA8888",
	FormatDXT1:             "DXT1",
	FormatDXT3:             "DXT3",
	FormatDXT5:             "DXT5",
	FormatBGRX8888:         "BGRX8888",
	FormatBGR565:           "BGR565",
	FormatBGRX5551:         "BGRX5551",
	FormatBGRA4444:         "BGRA4444",
	FormatDXT1OneBitAlpha:  "DXT1_ONEBITALPHA",
	FormatBGRA5551:         "BGRA5551",
	FormatUV88:             "UV88",
	FormatUVWQ8888:         "UVWQ8888",
	FormatRGBA16161616F:    "RGBA16161616F",
	FormatRGBA16161616:     "RGBA16161616",
	FormatUVLX8888:         "UVLX8888",
	FormatNone:             "NONE",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "UNKNOWN"
}

// Compressed reports whether the format stores 4x4 blocks.
func (f Format) Compressed() bool {
	switch f {
	case FormatDXT1, FormatDXT1OneBitAlpha, FormatDXT3, FormatDXT5:
		return true
	}
	return false
}

// pixelBytes is the per-pixel size of uncompressed formats.
func (f Format) pixelBytes() int {
	switch f {
	case FormatRGBA8888, FormatABGR8888, FormatARGB8888, FormatBGRA8888,
		FormatBGRX8888, FormatUVWQ8888, FormatUVLX8888:
		return 4
	case FormatRGB888, FormatBGR888, FormatRGB888BlueScreen, FormatBGR888BlueScreen:
		return 3
	case FormatRGB565, FormatBGR565, FormatBGRX5551, FormatBGRA5551,
		FormatBGRA4444, FormatIA88, FormatUV88:
		return 2
	case FormatI8, FormatA8, FormatP8:
		return 1
	case FormatRGBA16161616F, FormatRGBA16161616:
		return 8
	}
	return 0
}

// blockBytes is the size of one 4x4 block of compressed formats.
func (f Format) blockBytes() int {
	switch f {
	case FormatDXT1, FormatDXT1OneBitAlpha:
		return 8
	case FormatDXT3, FormatDXT5:
		return 16
	}
	return 0
}

// DataSize returns the byte size of a single width x height image in
// this format, or 0 if the format has no defined storage size.
func (f Format) DataSize(width, height int) int {
	if f.Compressed() {
		return ((width + 3) / 4) * ((height + 3) / 4) * f.blockBytes()
	}
	return width * height * f.pixelBytes()
}
