package vtf_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/x448/float16"

	"skyconv/vtf"
)

func decode(t *testing.T, raw []byte) *vtf.Texture {
	t.Helper()
	tex, err := vtf.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	return tex
}

func TestDecodeRgba8888(t *testing.T) {
	want := pattern(4*2*4, 1)
	raw := encodeVtf(t, vtfParams{minor: 2, width: 4, height: 2, data: want})

	tex := decode(t, raw)

	if tex.Header.Version() != "7.2" {
		t.Errorf("version should be 7.2 but is %s\n", tex.Header.Version())
	}
	if tex.IsHDR() {
		t.Error("integer format should not decode as hdr")
	}
	if tex.Rgba.Width != 4 || tex.Rgba.Height != 2 {
		t.Errorf("size should be 4x2 but is %dx%d\n", tex.Rgba.Width, tex.Rgba.Height)
	}
	if !bytes.Equal(tex.Rgba.Pix, want) {
		t.Errorf("pixels should be %v but are %v\n", want, tex.Rgba.Pix)
	}
}

func TestDecodePixelFormats(t *testing.T) {
	tests := []struct {
		format vtf.Format
		data   []byte
		want   [4]uint8
	}{
		{vtf.FormatRGBA8888, []byte{1, 2, 3, 4}, [4]uint8{1, 2, 3, 4}},
		{vtf.FormatABGR8888, []byte{1, 2, 3, 4}, [4]uint8{4, 3, 2, 1}},
		{vtf.FormatARGB8888, []byte{1, 2, 3, 4}, [4]uint8{2, 3, 4, 1}},
		{vtf.FormatBGRA8888, []byte{1, 2, 3, 4}, [4]uint8{3, 2, 1, 4}},
		{vtf.FormatBGRX8888, []byte{1, 2, 3, 9}, [4]uint8{3, 2, 1, 0xff}},
		{vtf.FormatRGB888, []byte{1, 2, 3}, [4]uint8{1, 2, 3, 0xff}},
		{vtf.FormatBGR888, []byte{1, 2, 3}, [4]uint8{3, 2, 1, 0xff}},
		{vtf.FormatRGB888BlueScreen, []byte{1, 2, 3}, [4]uint8{1, 2, 3, 0xff}},
		{vtf.FormatRGB565, []byte{0x1f, 0x00}, [4]uint8{0xff, 0, 0, 0xff}},
		{vtf.FormatBGR565, []byte{0x00, 0xf8}, [4]uint8{0xff, 0, 0, 0xff}},
		{vtf.FormatBGRA5551, []byte{0x00, 0xfc}, [4]uint8{0xff, 0, 0, 0xff}},
		{vtf.FormatBGRA5551, []byte{0x00, 0x7c}, [4]uint8{0xff, 0, 0, 0}},
		{vtf.FormatBGRX5551, []byte{0x00, 0x7c}, [4]uint8{0xff, 0, 0, 0xff}},
		{vtf.FormatBGRA4444, []byte{0x00, 0x8f}, [4]uint8{0xff, 0, 0, 0x88}},
		{vtf.FormatI8, []byte{7}, [4]uint8{7, 7, 7, 0xff}},
		{vtf.FormatIA88, []byte{7, 9}, [4]uint8{7, 7, 7, 9}},
		{vtf.FormatA8, []byte{9}, [4]uint8{0, 0, 0, 9}},
		{vtf.FormatRGBA16161616, []byte{0x00, 0xff, 0x00, 0x80, 0x00, 0x01, 0xff, 0xff}, [4]uint8{0xff, 0x80, 0x01, 0xff}},
	}

	for _, test := range tests {
		t.Run(test.format.String(), func(t *testing.T) {
			raw := encodeVtf(t, vtfParams{minor: 2, width: 1, height: 1, format: test.format, data: test.data})
			tex := decode(t, raw)
			if !bytes.Equal(tex.Rgba.Pix, test.want[:]) {
				t.Errorf("pixel should be %v but is %v\n", test.want, tex.Rgba.Pix)
			}
		})
	}
}

func TestDecodePicksFullResMip(t *testing.T) {
	want := pattern(8*8*4, 0x33)
	data := pattern(2*2*4, 0x11)
	data = append(data, pattern(4*4*4, 0x22)...)
	data = append(data, want...)
	raw := encodeVtf(t, vtfParams{minor: 1, width: 8, height: 8, mipmaps: 3, data: data})

	tex := decode(t, raw)

	if !bytes.Equal(tex.Rgba.Pix, want) {
		t.Error("decode should pick the largest mip")
	}
}

func TestDecodeClampsMipSizes(t *testing.T) {
	// 8x2 with 4 mips, the smaller mips degenerate to 1 pixel rows
	want := pattern(8*2*4, 0x44)
	data := make([]byte, 4+8+16)
	data = append(data, want...)
	raw := encodeVtf(t, vtfParams{minor: 0, width: 8, height: 2, mipmaps: 4, data: data})

	tex := decode(t, raw)

	if !bytes.Equal(tex.Rgba.Pix, want) {
		t.Error("decode should clamp mip dimensions to 1")
	}
}

func TestDecodeFirstFrameOnly(t *testing.T) {
	want := pattern(4*4*4, 0x40)
	data := make([]byte, 2*2*4*2) // both frames of the small mip
	data = append(data, want...)
	data = append(data, pattern(4*4*4, 0x80)...)
	raw := encodeVtf(t, vtfParams{minor: 2, width: 4, height: 4, frames: 2, mipmaps: 2, data: data})

	tex := decode(t, raw)

	if !bytes.Equal(tex.Rgba.Pix, want) {
		t.Error("decode should pick the first frame")
	}
}

func TestDecodeSkipsThumbnail(t *testing.T) {
	want := pattern(2*2*4, 5)
	data := pattern(32, 0xcc) // 8x8 dxt1 thumbnail
	data = append(data, want...)
	raw := encodeVtf(t, vtfParams{
		minor: 1, width: 2, height: 2,
		lowResFormat: vtf.FormatDXT1, lowResWidth: 8, lowResHeight: 8,
		data: data,
	})

	tex := decode(t, raw)

	if !bytes.Equal(tex.Rgba.Pix, want) {
		t.Error("decode should skip the thumbnail")
	}
}

func TestDecodeResourceOffsets(t *testing.T) {
	want := pattern(2*2*4, 9)
	data := pattern(8, 0xcc) // 4x4 dxt1 thumbnail
	data = append(data, want...)

	headerSize := 80 + 3*8
	raw := encodeVtf(t, vtfParams{
		minor: 5, width: 2, height: 2,
		lowResFormat: vtf.FormatDXT1, lowResWidth: 4, lowResHeight: 4,
		resources: []vtf.Resource{
			{Tag: [3]byte{0x01, 0, 0}, Offset: uint32(headerSize)},
			{Tag: [3]byte{'C', 'R', 'C'}, Flags: 0x02, Offset: 0xdeadbeef},
			{Tag: [3]byte{0x30, 0, 0}, Offset: uint32(headerSize + 8)},
		},
		data: data,
	})

	tex := decode(t, raw)

	if tex.Header.Version() != "7.5" {
		t.Errorf("version should be 7.5 but is %s\n", tex.Header.Version())
	}
	if !bytes.Equal(tex.Rgba.Pix, want) {
		t.Error("decode should read the image data at the resource offset")
	}
}

func TestDecodeHighDynamicRange(t *testing.T) {
	want := []float32{0.5, 1.5, -2, 1, 0.25, 100, 0, 0.75}
	data := make([]byte, len(want)*2)
	for i, f := range want {
		binary.LittleEndian.PutUint16(data[i*2:], float16.Fromfloat32(f).Bits())
	}
	raw := encodeVtf(t, vtfParams{minor: 2, width: 2, height: 1, format: vtf.FormatRGBA16161616F, data: data})

	tex := decode(t, raw)

	if !tex.IsHDR() {
		t.Fatal("float format should decode as hdr")
	}
	if tex.Rgba != nil {
		t.Error("hdr texture should not have an integer image")
	}
	for i, should := range want {
		if is := tex.Hdr.Pix[i]; is != should {
			t.Errorf("float %d should be %.4f but is %.4f\n", i, should, is)
		}
	}
}

// one dxt1 block: red and blue endpoints, first row indices 0..3
var dxtColorBlock = []byte{0x00, 0xf8, 0x1f, 0x00, 0xe4, 0x00, 0x00, 0x00}

func TestDecodeDxt1(t *testing.T) {
	raw := encodeVtf(t, vtfParams{minor: 2, width: 4, height: 4, format: vtf.FormatDXT1, data: dxtColorBlock})

	tex := decode(t, raw)

	want := [][4]uint8{
		{0xff, 0, 0, 0xff},
		{0, 0, 0xff, 0xff},
		{170, 0, 85, 0xff},
		{85, 0, 170, 0xff},
	}
	for i, should := range want {
		is := tex.Rgba.Pix[i*4 : i*4+4]
		if !bytes.Equal(is, should[:]) {
			t.Errorf("pixel %d should be %v but is %v\n", i, should, is)
		}
	}
	// remaining pixels use palette entry 0
	for i := 4; i < 16; i++ {
		if !bytes.Equal(tex.Rgba.Pix[i*4:i*4+4], want[0][:]) {
			t.Errorf("pixel %d should be %v but is %v\n", i, want[0], tex.Rgba.Pix[i*4:i*4+4])
		}
	}
}

func TestDecodeDxt1ThreeColorMode(t *testing.T) {
	// c0 <= c1, pixel 0 uses entry 3, pixel 1 the interpolated entry 2
	block := []byte{0x1f, 0x00, 0x00, 0xf8, 0x0b, 0x00, 0x00, 0x00}

	tests := []struct {
		format    vtf.Format
		wantAlpha uint8
	}{
		{vtf.FormatDXT1, 0xff},
		{vtf.FormatDXT1OneBitAlpha, 0},
	}
	for _, test := range tests {
		t.Run(test.format.String(), func(t *testing.T) {
			raw := encodeVtf(t, vtfParams{minor: 2, width: 4, height: 4, format: test.format, data: block})
			tex := decode(t, raw)

			should := [4]uint8{0, 0, 0, test.wantAlpha}
			if !bytes.Equal(tex.Rgba.Pix[0:4], should[:]) {
				t.Errorf("pixel 0 should be %v but is %v\n", should, tex.Rgba.Pix[0:4])
			}
			mid := [4]uint8{127, 0, 127, 0xff}
			if !bytes.Equal(tex.Rgba.Pix[4:8], mid[:]) {
				t.Errorf("pixel 1 should be %v but is %v\n", mid, tex.Rgba.Pix[4:8])
			}
		})
	}
}

func TestDecodeDxt3(t *testing.T) {
	block := []byte{0x8f, 0x40, 0, 0, 0, 0, 0, 0}
	block = append(block, dxtColorBlock...)
	raw := encodeVtf(t, vtfParams{minor: 2, width: 4, height: 4, format: vtf.FormatDXT3, data: block})

	tex := decode(t, raw)

	want := [][4]uint8{
		{0xff, 0, 0, 0xff},
		{0, 0, 0xff, 0x88},
		{170, 0, 85, 0},
		{85, 0, 170, 0x44},
	}
	for i, should := range want {
		is := tex.Rgba.Pix[i*4 : i*4+4]
		if !bytes.Equal(is, should[:]) {
			t.Errorf("pixel %d should be %v but is %v\n", i, should, is)
		}
	}
	if tex.Rgba.Pix[4*4+3] != 0 {
		t.Error("second row should have explicit alpha 0")
	}
}

func TestDecodeDxt5(t *testing.T) {
	block := []byte{7, 0, 0x88, 0, 0, 0, 0, 0}
	block = append(block, dxtColorBlock...)
	raw := encodeVtf(t, vtfParams{minor: 2, width: 4, height: 4, format: vtf.FormatDXT5, data: block})

	tex := decode(t, raw)

	want := [][4]uint8{
		{0xff, 0, 0, 7},
		{0, 0, 0xff, 0},
		{170, 0, 85, 6},
		{85, 0, 170, 7},
	}
	for i, should := range want {
		is := tex.Rgba.Pix[i*4 : i*4+4]
		if !bytes.Equal(is, should[:]) {
			t.Errorf("pixel %d should be %v but is %v\n", i, should, is)
		}
	}
}

func TestDecodeDxtPartialBlock(t *testing.T) {
	// 2x2 image still stores a full block, indices 0,1 / 2,3
	block := []byte{0x00, 0xf8, 0x1f, 0x00, 0x04, 0x0e, 0x00, 0x00}
	raw := encodeVtf(t, vtfParams{minor: 2, width: 2, height: 2, format: vtf.FormatDXT1, data: block})

	tex := decode(t, raw)

	if tex.Rgba.Width != 2 || tex.Rgba.Height != 2 {
		t.Fatalf("size should be 2x2 but is %dx%d\n", tex.Rgba.Width, tex.Rgba.Height)
	}
	want := [][4]uint8{
		{0xff, 0, 0, 0xff},
		{0, 0, 0xff, 0xff},
		{170, 0, 85, 0xff},
		{85, 0, 170, 0xff},
	}
	for i, should := range want {
		is := tex.Rgba.Pix[i*4 : i*4+4]
		if !bytes.Equal(is, should[:]) {
			t.Errorf("pixel %d should be %v but is %v\n", i, should, is)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	plain := func() []byte {
		return encodeVtf(t, vtfParams{minor: 2, width: 4, height: 4, data: pattern(64, 0)})
	}

	tests := []struct {
		name string
		raw  func() []byte
		want error
	}{
		{"bad signature", func() []byte {
			raw := plain()
			raw[0] = 'X'
			return raw
		}, vtf.ErrCorruptHeader},
		{"future version", func() []byte {
			return encodeVtf(t, vtfParams{minor: 6, width: 4, height: 4, data: pattern(64, 0)})
		}, vtf.ErrUnsupportedFormat},
		{"small header size", func() []byte {
			return encodeVtf(t, vtfParams{minor: 1, headerSize: 60, width: 4, height: 4, data: pattern(64, 0)})
		}, vtf.ErrCorruptHeader},
		{"zero width", func() []byte {
			return encodeVtf(t, vtfParams{minor: 2, width: 0, height: 4, data: pattern(64, 0)})
		}, vtf.ErrCorruptHeader},
		{"zero frames", func() []byte {
			raw := plain()
			binary.LittleEndian.PutUint16(raw[24:], 0)
			return raw
		}, vtf.ErrCorruptHeader},
		{"zero mipmaps", func() []byte {
			raw := plain()
			raw[56] = 0
			return raw
		}, vtf.ErrCorruptHeader},
		{"excessive mipmaps", func() []byte {
			raw := plain()
			raw[56] = 33
			return raw
		}, vtf.ErrCorruptHeader},
		{"zero depth", func() []byte {
			raw := plain()
			binary.LittleEndian.PutUint16(raw[63:], 0)
			return raw
		}, vtf.ErrCorruptHeader},
		{"volume texture", func() []byte {
			raw := plain()
			binary.LittleEndian.PutUint16(raw[63:], 4)
			return raw
		}, vtf.ErrUnsupportedFormat},
		{"cube map", func() []byte {
			return encodeVtf(t, vtfParams{minor: 2, width: 4, height: 4, flags: vtf.FlagEnvMap, data: pattern(64, 0)})
		}, vtf.ErrUnsupportedFormat},
		{"paletted format", func() []byte {
			return encodeVtf(t, vtfParams{minor: 2, width: 1, height: 1, format: vtf.FormatP8, data: []byte{0}})
		}, vtf.ErrUnsupportedFormat},
		{"truncated header", func() []byte {
			return plain()[:40]
		}, vtf.ErrCorruptHeader},
		{"truncated image data", func() []byte {
			return encodeVtf(t, vtfParams{minor: 2, width: 4, height: 4, data: pattern(32, 0)})
		}, vtf.ErrCorruptHeader},
		{"missing image resource", func() []byte {
			return encodeVtf(t, vtfParams{
				minor: 4, width: 4, height: 4,
				resources: []vtf.Resource{{Tag: [3]byte{'C', 'R', 'C'}, Flags: 0x02}},
				data:      pattern(64, 0),
			})
		}, vtf.ErrCorruptHeader},
		{"image resource without data", func() []byte {
			return encodeVtf(t, vtfParams{
				minor: 4, width: 4, height: 4,
				resources: []vtf.Resource{{Tag: [3]byte{0x30, 0, 0}, Flags: 0x02, Offset: 88}},
				data:      pattern(64, 0),
			})
		}, vtf.ErrCorruptHeader},
		{"image resource out of range", func() []byte {
			return encodeVtf(t, vtfParams{
				minor: 4, width: 4, height: 4,
				resources: []vtf.Resource{{Tag: [3]byte{0x30, 0, 0}, Offset: 0xffff}},
				data:      pattern(64, 0),
			})
		}, vtf.ErrCorruptHeader},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := vtf.Decode(bytes.NewReader(test.raw()))
			if err == nil {
				t.Fatal("decode should fail")
			}
			if !errors.Is(err, test.want) {
				t.Errorf("error should be %q but is %q\n", test.want, err)
			}
		})
	}
}

func TestDecodeHeaderFields(t *testing.T) {
	raw := encodeVtf(t, vtfParams{
		minor: 5, width: 16, height: 8,
		flags: vtf.FlagEightBitAlpha, frames: 2,
		format: vtf.FormatDXT5, mipmaps: 5,
		lowResFormat: vtf.FormatDXT1, lowResWidth: 4, lowResHeight: 4,
		resources: []vtf.Resource{
			{Tag: [3]byte{0x01, 0, 0}, Offset: 96},
			{Tag: [3]byte{0x30, 0, 0}, Offset: 104},
		},
	})

	h, err := vtf.DecodeHeader(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}

	if h.Version() != "7.5" {
		t.Errorf("version should be 7.5 but is %s\n", h.Version())
	}
	if h.Width != 16 || h.Height != 8 || h.Depth != 1 {
		t.Errorf("size should be 16x8x1 but is %dx%dx%d\n", h.Width, h.Height, h.Depth)
	}
	if h.Frames != 2 {
		t.Errorf("frames should be 2 but are %d\n", h.Frames)
	}
	if h.Flags != vtf.FlagEightBitAlpha {
		t.Errorf("flags should be 0x%04x but are 0x%04x\n", vtf.FlagEightBitAlpha, h.Flags)
	}
	if h.Format != vtf.FormatDXT5 {
		t.Errorf("format should be %s but is %s\n", vtf.FormatDXT5, h.Format)
	}
	if h.MipmapCount != 5 {
		t.Errorf("mipmaps should be 5 but are %d\n", h.MipmapCount)
	}
	if h.LowResFormat != vtf.FormatDXT1 || h.LowResWidth != 4 || h.LowResHeight != 4 {
		t.Errorf("thumbnail should be 4x4 %s but is %dx%d %s\n",
			vtf.FormatDXT1, h.LowResWidth, h.LowResHeight, h.LowResFormat)
	}
	if h.Reflectivity != [3]float32{0.2, 0.3, 0.4} {
		t.Errorf("reflectivity should be [0.2 0.3 0.4] but is %v\n", h.Reflectivity)
	}
	if h.BumpmapScale != 1.0 {
		t.Errorf("bumpmap scale should be 1 but is %f\n", h.BumpmapScale)
	}
	if len(h.Resources) != 2 {
		t.Fatalf("header should list 2 resources but lists %d\n", len(h.Resources))
	}
	if h.Resources[1].Tag != [3]byte{0x30, 0, 0} || h.Resources[1].Offset != 104 {
		t.Errorf("image resource should point at 104 but is %+v\n", h.Resources[1])
	}
}

func TestHeaderFaces(t *testing.T) {
	tests := []struct {
		name string
		h    vtf.Header
		want int
	}{
		{"flat", vtf.Header{MinorVersion: 2}, 1},
		{"envmap with spheremap", vtf.Header{MinorVersion: 1, Flags: vtf.FlagEnvMap}, 7},
		{"envmap without spheremap", vtf.Header{MinorVersion: 1, Flags: vtf.FlagEnvMap, FirstFrame: 0xffff}, 6},
		{"envmap 7.0", vtf.Header{MinorVersion: 0, Flags: vtf.FlagEnvMap}, 6},
		{"envmap 7.5", vtf.Header{MinorVersion: 5, Flags: vtf.FlagEnvMap}, 6},
	}
	for _, test := range tests {
		if faces := test.h.Faces(); faces != test.want {
			t.Errorf("%s should have %d faces but has %d\n", test.name, test.want, faces)
		}
	}
}
