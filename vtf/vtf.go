package vtf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"skyconv/libio"
)

// Valve Texture Format containers, versions 7.0 through 7.5. Headers
// are byte packed on disk, so fields are read one by one instead of
// through a struct. Image data is stored smallest mip first; within a
// mip it is ordered frame, face, z-slice.

var (
	ErrCorruptHeader     = errors.New("corrupt vtf header")
	ErrUnsupportedFormat = errors.New("unsupported vtf format")
)

var signature = [4]byte{'V', 'T', 'F', 0}

const (
	// minor versions that added fields to the base header
	versionDepth     = 2
	versionResources = 3

	headerBaseSize     = 63
	headerResourceSize = 80
)

// Texture flags, from the header's flag field.
const (
	FlagOneBitAlpha   = uint32(0x00001000)
	FlagEightBitAlpha = uint32(0x00002000)
	FlagEnvMap        = uint32(0x00004000)
)

// Resource dictionary tag of the high resolution image data (7.3+).
var tagImage = [3]byte{0x30, 0, 0}

// resourceNoDataFlag marks resources whose offset field holds a value
// instead of a file offset.
const resourceNoDataFlag = uint8(0x02)

type Resource struct {
	Tag    [3]byte
	Flags  uint8
	Offset uint32
}

type Header struct {
	MajorVersion int
	MinorVersion int
	HeaderSize   int

	Width  int
	Height int
	Depth  int

	Flags      uint32
	Frames     int
	FirstFrame int

	Reflectivity [3]float32
	BumpmapScale float32

	Format      Format
	MipmapCount int

	LowResFormat Format
	LowResWidth  int
	LowResHeight int

	Resources []Resource
}

// Version returns the container version as "7.4".
func (h *Header) Version() string {
	return fmt.Sprintf("%d.%d", h.MajorVersion, h.MinorVersion)
}

// Faces returns the number of cube faces stored per frame.
func (h *Header) Faces() int {
	if h.Flags&FlagEnvMap == 0 {
		return 1
	}
	// 7.1 through 7.4 store a seventh sphere map face unless the first
	// frame marker says otherwise
	if h.MinorVersion >= 1 && h.MinorVersion <= 4 && h.FirstFrame != 0xffff {
		return 7
	}
	return 6
}

func (h *Header) resource(tag [3]byte) (Resource, bool) {
	for _, res := range h.Resources {
		if res.Tag == tag {
			return res, true
		}
	}
	return Resource{}, false
}

// mipSize returns the dimensions of mip level, where level 0 is the
// full resolution.
func (h *Header) mipSize(level int) (int, int) {
	w := h.Width >> level
	if w < 1 {
		w = 1
	}
	mh := h.Height >> level
	if mh < 1 {
		mh = 1
	}
	return w, mh
}

// DecodeHeader reads and validates a container header, consuming
// exactly the declared header area.
func DecodeHeader(r io.Reader) (*Header, error) {
	br := &libio.BinaryReader{
		Src:   r,
		Order: binary.LittleEndian,
	}
	return decodeHeader(br)
}

func decodeHeader(br *libio.BinaryReader) (*Header, error) {
	var sig [4]byte
	if !br.ReadRef(&sig) {
		return nil, fmt.Errorf("%w: expected signature; byte 0x%08x", ErrCorruptHeader, br.LastIndex)
	}
	if sig != signature {
		return nil, fmt.Errorf("%w: bad signature %q", ErrCorruptHeader, sig[:])
	}

	h := &Header{Depth: 1}

	var format, lowResFormat, flags int
	br.ReadUInt32(&h.MajorVersion)
	br.ReadUInt32(&h.MinorVersion)
	br.ReadUInt32(&h.HeaderSize)
	br.ReadUInt16(&h.Width)
	br.ReadUInt16(&h.Height)
	br.ReadUInt32(&flags)
	br.ReadUInt16(&h.Frames)
	br.ReadUInt16(&h.FirstFrame)
	br.Skip(4)
	br.ReadFloat32(&h.Reflectivity[0])
	br.ReadFloat32(&h.Reflectivity[1])
	br.ReadFloat32(&h.Reflectivity[2])
	br.Skip(4)
	br.ReadFloat32(&h.BumpmapScale)
	br.ReadUInt32(&format)
	br.ReadUInt8(&h.MipmapCount)
	br.ReadUInt32(&lowResFormat)
	br.ReadUInt8(&h.LowResWidth)
	br.ReadUInt8(&h.LowResHeight)
	if br.Err != nil {
		return nil, fmt.Errorf("%w: header truncated; byte 0x%08x", ErrCorruptHeader, br.LastIndex)
	}

	h.Flags = uint32(flags)
	h.Format = Format(uint32(format))
	h.LowResFormat = Format(uint32(lowResFormat))

	if h.MajorVersion != 7 || h.MinorVersion < 0 || h.MinorVersion > 5 {
		return nil, fmt.Errorf("%w: version %d.%d", ErrUnsupportedFormat, h.MajorVersion, h.MinorVersion)
	}

	minSize := headerBaseSize
	if h.MinorVersion >= versionDepth {
		br.ReadUInt16(&h.Depth)
		minSize += 2
	}

	resourceCount := 0
	if h.MinorVersion >= versionResources {
		br.Skip(3)
		br.ReadUInt32(&resourceCount)
		br.Skip(8)
		minSize = headerResourceSize + 8*resourceCount
		if resourceCount > 0xff {
			return nil, fmt.Errorf("%w: %d resources", ErrCorruptHeader, resourceCount)
		}
		for i := 0; i < resourceCount; i++ {
			var res Resource
			br.ReadRef(&res.Tag)
			br.ReadRef(&res.Flags)
			offset := 0
			br.ReadUInt32(&offset)
			res.Offset = uint32(offset)
			h.Resources = append(h.Resources, res)
		}
	}

	if br.Err != nil {
		return nil, fmt.Errorf("%w: header truncated; byte 0x%08x", ErrCorruptHeader, br.LastIndex)
	}

	if h.HeaderSize < minSize {
		return nil, fmt.Errorf("%w: header size %d below %d", ErrCorruptHeader, h.HeaderSize, minSize)
	}
	if h.Width <= 0 || h.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrCorruptHeader, h.Width, h.Height)
	}
	if h.Depth <= 0 {
		return nil, fmt.Errorf("%w: depth %d", ErrCorruptHeader, h.Depth)
	}
	if h.Frames <= 0 {
		return nil, fmt.Errorf("%w: %d frames", ErrCorruptHeader, h.Frames)
	}
	if h.MipmapCount <= 0 || h.MipmapCount > 32 {
		return nil, fmt.Errorf("%w: %d mipmaps", ErrCorruptHeader, h.MipmapCount)
	}

	if !br.Skip(h.HeaderSize - br.Index) {
		return nil, fmt.Errorf("%w: header truncated; byte 0x%08x", ErrCorruptHeader, br.LastIndex)
	}

	return h, nil
}

// Texture is a decoded high resolution image. Exactly one of Rgba and
// Hdr is set: integer formats decode to a 4-channel Rgba, the 16-bit
// float format decodes to a 4-channel Hdr.
type Texture struct {
	Header *Header
	Rgba   *libio.IntImage
	Hdr    *libio.FloatImage
}

func (t *Texture) IsHDR() bool {
	return t.Hdr != nil
}

// Decode reads a container and decodes the full resolution mip of the
// first frame.
func Decode(r io.Reader) (*Texture, error) {
	br := &libio.BinaryReader{
		Src:   r,
		Order: binary.LittleEndian,
	}

	h, err := decodeHeader(br)
	if err != nil {
		return nil, err
	}

	if h.Flags&FlagEnvMap != 0 {
		return nil, fmt.Errorf("%w: cube map textures", ErrUnsupportedFormat)
	}
	if h.Depth > 1 {
		return nil, fmt.Errorf("%w: volume textures", ErrUnsupportedFormat)
	}
	if !decodable(h.Format) {
		return nil, fmt.Errorf("%w: pixel format %s", ErrUnsupportedFormat, h.Format)
	}

	data, err := io.ReadAll(br.Src)
	if err != nil {
		return nil, fmt.Errorf("could not read image data: %w", err)
	}

	offset, err := h.imageDataOffset(len(data))
	if err != nil {
		return nil, err
	}

	// skip the smaller mips in front of the full resolution one
	for level := h.MipmapCount - 1; level >= 1; level-- {
		w, mh := h.mipSize(level)
		offset += h.Format.DataSize(w, mh) * h.Frames
	}

	need := h.Format.DataSize(h.Width, h.Height)
	if offset+need > len(data) {
		return nil, fmt.Errorf("%w: image data truncated, need %d bytes at %d of %d",
			ErrCorruptHeader, need, offset, len(data))
	}

	rgba, hdr, err := decodePixels(h.Format, data[offset:offset+need], h.Width, h.Height)
	if err != nil {
		return nil, err
	}

	return &Texture{Header: h, Rgba: rgba, Hdr: hdr}, nil
}

// imageDataOffset locates the high resolution data relative to the end
// of the header. size is the length of the data following the header.
func (h *Header) imageDataOffset(size int) (int, error) {
	if h.MinorVersion >= versionResources {
		res, ok := h.resource(tagImage)
		if !ok || res.Flags&resourceNoDataFlag != 0 {
			return 0, fmt.Errorf("%w: no image resource", ErrCorruptHeader)
		}
		offset := int(res.Offset) - h.HeaderSize
		if offset < 0 || offset > size {
			return 0, fmt.Errorf("%w: image resource offset 0x%08x", ErrCorruptHeader, res.Offset)
		}
		return offset, nil
	}

	// before 7.3 the thumbnail directly follows the header and the
	// image data follows the thumbnail
	offset := 0
	if h.LowResFormat != FormatNone {
		offset = h.LowResFormat.DataSize(h.LowResWidth, h.LowResHeight)
	}
	if offset > size {
		return 0, fmt.Errorf("%w: thumbnail exceeds file", ErrCorruptHeader)
	}
	return offset, nil
}
