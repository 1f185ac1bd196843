package libio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chewxy/math32"
)

// Radiance picture files (.hdr), RGBE pixels with a shared 8-bit
// exponent. Decoding handles flat scanlines, the old run-length
// scheme and the per-component run-length scheme; encoding always
// writes flat scanlines, which every reader accepts.

const hdrFormat = "32-bit_rle_rgbe"

func DecodeHdr(r io.Reader) (*FloatImage, error) {
	rd := bufio.NewReader(r)

	magic, err := rd.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("could not read radiance header: %w", err)
	}
	if !strings.HasPrefix(magic, "#?") {
		return nil, fmt.Errorf("not a radiance picture")
	}

	formatOk := false
	for {
		line, err := rd.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("could not read radiance header: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "FORMAT=") {
			if strings.TrimPrefix(line, "FORMAT=") != hdrFormat {
				return nil, fmt.Errorf("radiance format %q unsupported", strings.TrimPrefix(line, "FORMAT="))
			}
			formatOk = true
		}
		// EXPOSURE, GAMMA etc. do not affect the stored pixels
	}
	if !formatOk {
		return nil, fmt.Errorf("radiance format missing")
	}

	resolution, err := rd.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("could not read radiance resolution: %w", err)
	}

	var width, height int
	if _, err := fmt.Sscanf(resolution, "-Y %d +X %d", &height, &width); err != nil {
		return nil, fmt.Errorf("radiance orientation %q unsupported", strings.TrimSpace(resolution))
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("radiance resolution %dx%d invalid", width, height)
	}

	pix := make([]float32, width*height*3)
	scanline := make([]byte, width*4)

	for y := 0; y < height; y++ {
		if err := readHdrScanline(rd, scanline, width); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", y, err)
		}

		row := pix[y*width*3:]
		for x := 0; x < width; x++ {
			r, g, b := rgbeToFloat(scanline[x*4], scanline[x*4+1], scanline[x*4+2], scanline[x*4+3])
			row[x*3+0] = r
			row[x*3+1] = g
			row[x*3+2] = b
		}
	}

	return NewFloatImage(pix, 3, width, height), nil
}

func readHdrScanline(rd *bufio.Reader, scanline []byte, width int) error {
	var head [4]byte
	if _, err := io.ReadFull(rd, head[:]); err != nil {
		return err
	}

	if head[0] == 2 && head[1] == 2 && head[2]&0x80 == 0 {
		if int(head[2])<<8|int(head[3]) != width {
			return fmt.Errorf("scanline length mismatch")
		}
		return readHdrRleComponents(rd, scanline, width)
	}

	// flat scanline, possibly with old-style run markers
	copy(scanline[0:4], head[:])
	shift := uint(0)
	x := 1
	for x < width {
		p := scanline[x*4:]
		if _, err := io.ReadFull(rd, p[:4]); err != nil {
			return err
		}
		if p[0] == 1 && p[1] == 1 && p[2] == 1 {
			count := int(p[3]) << shift
			if x+count > width {
				return fmt.Errorf("run marker out of bounds")
			}
			prev := scanline[(x-1)*4 : x*4]
			for i := 0; i < count; i++ {
				copy(scanline[(x+i)*4:], prev)
			}
			x += count
			shift += 8
		} else {
			x++
			shift = 0
		}
	}
	return nil
}

func readHdrRleComponents(rd *bufio.Reader, scanline []byte, width int) error {
	for c := 0; c < 4; c++ {
		x := 0
		for x < width {
			code, err := rd.ReadByte()
			if err != nil {
				return err
			}
			if code > 128 {
				count := int(code) - 128
				if x+count > width {
					return fmt.Errorf("component run out of bounds")
				}
				value, err := rd.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < count; i++ {
					scanline[(x+i)*4+c] = value
				}
				x += count
			} else {
				count := int(code)
				if count == 0 || x+count > width {
					return fmt.Errorf("component literal out of bounds")
				}
				for i := 0; i < count; i++ {
					value, err := rd.ReadByte()
					if err != nil {
						return err
					}
					scanline[(x+i)*4+c] = value
				}
				x += count
			}
		}
	}
	return nil
}

func rgbeToFloat(r, g, b, e byte) (float32, float32, float32) {
	if e == 0 {
		return 0, 0, 0
	}
	f := math32.Ldexp(1.0, int(e)-(128+8))
	return float32(r) * f, float32(g) * f, float32(b) * f
}

func floatToRgbe(r, g, b float32) (byte, byte, byte, byte) {
	max := math32.Max(r, math32.Max(g, b))
	if max < 1e-32 {
		return 0, 0, 0, 0
	}
	frac, exp := math32.Frexp(max)
	scale := frac * 256 / max
	return byte(math32.Max(0, r*scale)), byte(math32.Max(0, g*scale)), byte(math32.Max(0, b*scale)), byte(exp + 128)
}

// EncodeHdr writes img as a radiance picture with flat scanlines.
// Only the first three channels are stored.
func EncodeHdr(w io.Writer, img *FloatImage) error {
	if img.Channels < 3 {
		return fmt.Errorf("radiance pictures need 3 channels, image has %d", img.Channels)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "#?RADIANCE\nFORMAT=%s\n\n-Y %d +X %d\n", hdrFormat, img.Height, img.Width); err != nil {
		return err
	}

	buf := make([]byte, 4)
	for i := 0; i < img.Count(); i++ {
		j := i * img.Channels
		buf[0], buf[1], buf[2], buf[3] = floatToRgbe(img.Pix[j+0], img.Pix[j+1], img.Pix[j+2])
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}
