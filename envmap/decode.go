package envmap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"skyconv/libio"
)

// largest face size DecodeEnvMap accepts. 8k faces already exceed any
// skybox in the wild; anything above is a corrupt header, rejected
// before the pixel buffers are allocated.
const maxFaceSize = 0x2000

// DecodeHeader reads and validates a .skyenv header.
func DecodeHeader(r io.Reader) (*EnvMapHeader, error) {
	br, ok := r.(*libio.BinaryReader)
	if !ok {
		br = &libio.BinaryReader{
			Src:   r,
			Order: binary.LittleEndian,
		}
	}

	header := EnvMapHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected environment header; byte 0x%08x", br.LastIndex)
	}

	if header.Check != MagicNumberSKYENV {
		return nil, fmt.Errorf("environment header is corrupt; byte 0x%08x", br.LastIndex)
	}

	if header.Version != EnvMapVersion1_000_000 {
		return nil, fmt.Errorf("environment version %d unsupported; byte 0x%08x", header.Version, br.LastIndex)
	}

	if header.Size == 0 || header.Size > maxFaceSize {
		return nil, fmt.Errorf("environment face size %d out of range; byte 0x%08x", header.Size, br.LastIndex)
	}

	return &header, nil
}

// DecodeEnvMap reads a .skyenv container.
func DecodeEnvMap(r io.Reader) (env *EnvMap, err error) {
	var br *libio.BinaryReader
	var ok bool

	if br, ok = r.(*libio.BinaryReader); !ok {
		br = &libio.BinaryReader{
			Src:   r,
			Order: binary.LittleEndian,
		}

		defer func() {
			if br.Err != nil {
				if err == nil {
					err = br.Err
				} else {
					err = fmt.Errorf("%v: %w", err, br.Err)
				}
			}
		}()
	}

	header, err := DecodeHeader(br)
	if err != nil {
		return nil, err
	}

	pixr := br.Src
	if header.Compression == EnvMapCompressionLZ4 || header.Compression == EnvMapCompressionLZ4Fast {
		pixr = lz4.NewReader(br.Src)
	} else if header.Compression != EnvMapCompressionNone {
		return nil, fmt.Errorf("environment compression id %d unsupported; byte 0x%08x", header.Compression, br.LastIndex)
	}

	pixels := 6 * int(header.Size) * int(header.Size)
	data := make([]byte, pixels*4)
	_, err = io.ReadFull(pixr, data)
	if err != nil {
		return nil, fmt.Errorf("expected %d encoded pixels: %w", pixels, err)
	}

	colors, err := DecodeRgbe(bytes.NewBuffer(data), false)
	if err != nil {
		return nil, fmt.Errorf("decoding error: %w", err)
	}

	return NewEnvMap(colors, int(header.Size)), nil
}

// DecodeRgbe reads 4 byte RGBE pixels until EOF and expands them to
// float colors. With hasAlpha each pixel expands to 4 floats with the
// alpha fixed at 1.
func DecodeRgbe(r io.Reader, hasAlpha bool) ([]float32, error) {
	// 16 kib input chunks
	rbuf := make([]byte, 16384)

	components := 4
	wsize := 16384
	if !hasAlpha {
		components = 3
		wsize = 12288
	}
	result := make([]float32, wsize)

	wn := 0
	for i := 0; ; i++ {
		rn, err := io.ReadFull(r, rbuf)

		if err != nil && !(errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)) {
			// UnexpectedEOF is expected
			return nil, err
		}

		if rn == 0 {
			break
		}

		if rn%4 != 0 {
			return nil, fmt.Errorf("source not a multiple of 4 bytes")
		}

		mincap := i*wsize + wsize
		if cap(result) < mincap {
			old := result
			// grow by 25%
			newsize := (cap(result) * 5) / 4
			if newsize < cap(result)+4*wsize {
				// grow fast at the start
				newsize = cap(result) + 4*wsize
			}
			result = make([]float32, newsize)
			copy(result, old)
		}

		chunk := result[i*wsize : i*wsize+wsize]
		wn += decodeRgbeChunk(components, rbuf[:rn], chunk)

		if err != nil {
			break
		}
	}

	return result[:wn], nil
}
