package vtf_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"skyconv/libio"
	"skyconv/vtf"
)

// vtfParams describes a synthetic container assembled by encodeVtf.
// Zero values mean a single frame, single mip 7.x file without a
// thumbnail; format zero is RGBA8888.
type vtfParams struct {
	minor        int
	headerSize   int
	width        int
	height       int
	depth        int
	flags        uint32
	frames       int
	format       vtf.Format
	mipmaps      int
	lowResFormat vtf.Format
	lowResWidth  int
	lowResHeight int
	resources    []vtf.Resource
	// data holds the payload as stored on disk: the thumbnail first,
	// then the mips from smallest to largest
	data []byte
}

func encodeVtf(t *testing.T, p vtfParams) []byte {
	t.Helper()

	if p.depth == 0 {
		p.depth = 1
	}
	if p.frames == 0 {
		p.frames = 1
	}
	if p.mipmaps == 0 {
		p.mipmaps = 1
	}
	if p.lowResFormat == 0 {
		p.lowResFormat = vtf.FormatNone
	}
	if p.headerSize == 0 {
		p.headerSize = 80 + 8*len(p.resources)
	}

	buf := new(bytes.Buffer)
	bw := &libio.BinaryWriter{Dst: buf, Order: binary.LittleEndian}

	bw.WriteBytes([]byte{'V', 'T', 'F', 0})
	bw.WriteUInt32(7)
	bw.WriteUInt32(uint32(p.minor))
	bw.WriteUInt32(uint32(p.headerSize))
	bw.WriteUInt16(uint16(p.width))
	bw.WriteUInt16(uint16(p.height))
	bw.WriteUInt32(p.flags)
	bw.WriteUInt16(uint16(p.frames))
	bw.WriteUInt16(0)
	bw.WriteBytes(make([]byte, 4))
	bw.WriteFloat32(0.2)
	bw.WriteFloat32(0.3)
	bw.WriteFloat32(0.4)
	bw.WriteBytes(make([]byte, 4))
	bw.WriteFloat32(1.0)
	bw.WriteUInt32(uint32(p.format))
	bw.WriteUInt8(uint8(p.mipmaps))
	bw.WriteUInt32(uint32(p.lowResFormat))
	bw.WriteUInt8(uint8(p.lowResWidth))
	bw.WriteUInt8(uint8(p.lowResHeight))

	written := 63
	if p.minor >= 2 {
		bw.WriteUInt16(uint16(p.depth))
		written += 2
	}
	if p.minor >= 3 {
		bw.WriteBytes(make([]byte, 3))
		bw.WriteUInt32(uint32(len(p.resources)))
		bw.WriteBytes(make([]byte, 8))
		written += 15
		for _, res := range p.resources {
			bw.WriteBytes(res.Tag[:])
			bw.WriteUInt8(res.Flags)
			bw.WriteUInt32(res.Offset)
			written += 8
		}
	}
	if p.headerSize > written {
		bw.WriteBytes(make([]byte, p.headerSize-written))
	}
	bw.WriteBytes(p.data)

	if bw.Err != nil {
		t.Fatal(bw.Err)
	}
	return buf.Bytes()
}

// pattern returns n distinguishable bytes so tests can tell mips and
// frames apart.
func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i)
	}
	return b
}
