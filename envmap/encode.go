package envmap

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"skyconv/libio"
)

type EncodeContext struct {
	Compression EnvMapCompression
	Writer      io.Writer
}

type EncodeOption func(ctx *EncodeContext) error

// OptCompress enables LZ4 compression. Level 0 is the fast encoder,
// levels 1 through 9 trade speed for ratio. Negative levels disable
// compression.
func OptCompress(level int) EncodeOption {
	levels := []lz4.CompressionLevel{lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9}
	if level < 0 {
		return nil
	}

	if level >= len(levels) {
		level = len(levels) - 1
	}

	return func(ctx *EncodeContext) error {
		if ctx.Compression != EnvMapCompressionNone {
			return fmt.Errorf("compression already configured")
		}
		lzw := lz4.NewWriter(ctx.Writer)
		lzw.Apply(lz4.CompressionLevelOption(levels[level]))
		if level == 0 {
			ctx.Compression = EnvMapCompressionLZ4Fast
		} else {
			ctx.Compression = EnvMapCompressionLZ4
		}
		ctx.Writer = lzw
		return nil
	}
}

// EncodeEnvMap writes env as a .skyenv container.
func EncodeEnvMap(w io.Writer, env *EnvMap, options ...EncodeOption) (err error) {
	var bw *libio.BinaryWriter
	var ok bool

	if bw, ok = w.(*libio.BinaryWriter); !ok {
		bw = &libio.BinaryWriter{
			Dst:   w,
			Order: binary.LittleEndian,
		}

		defer func() {
			if bw.Err != nil {
				if err == nil {
					err = bw.Err
				} else {
					err = fmt.Errorf("%v: %w", err, bw.Err)
				}
			}
		}()
	}

	ctx := EncodeContext{
		Writer: bw.Dst,
	}

	for _, opt := range options {
		if opt != nil {
			err = opt(&ctx)
			if err != nil {
				return err
			}
		}
	}

	header := EnvMapHeader{
		Check:       MagicNumberSKYENV,
		Version:     EnvMapVersion1_000_000,
		Compression: ctx.Compression,
		Size:        uint32(env.Size),
	}
	if !bw.WriteRef(&header) {
		return fmt.Errorf("could not write environment header: %w", bw.Err)
	}

	if err := EncodeRgbe(ctx.Writer, env.Concat(), false); err != nil {
		return fmt.Errorf("could not write environment pixels: %w", err)
	}

	if closer, ok := (ctx.Writer).(io.WriteCloser); ok {
		err = closer.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// EncodeRgbe writes float colors as 4 byte RGBE pixels. With hasAlpha
// the source holds 4 floats per pixel and the alpha is dropped.
func EncodeRgbe(w io.Writer, data []float32, hasAlpha bool) error {
	// 16 kib output chunks
	components := 4
	rsize := 16384
	if !hasAlpha {
		components = 3
		rsize = 12288
	}
	buf := make([]byte, 16384)

	if len(data)%components != 0 {
		return fmt.Errorf("source not a multiple of %d floats", components)
	}

	for i := 0; i < len(data); i += rsize {
		j := i + rsize
		if j > len(data) {
			j = len(data)
		}
		chunk := data[i:j]
		n := encodeRgbeChunk(components, chunk, buf)

		_, err := w.Write(buf[:n])
		if err != nil {
			return err
		}
	}
	return nil
}
