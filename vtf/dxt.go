package vtf

// dxtColorTable decodes the two RGB565 endpoints of a DXT color block and
// interpolates the 4 entry palette. With fourColor unset and c0 <= c1 the
// block is in three color mode: entry 2 is the midpoint and entry 3 is
// transparent black.
func dxtColorTable(block []byte, fourColor bool) [4][4]uint8 {
	c0 := uint16(block[0]) | uint16(block[1])<<8
	c1 := uint16(block[2]) | uint16(block[3])<<8

	var colors [4][4]uint8
	colors[0] = [4]uint8{expand5(uint8(c0 >> 11)), expand6(uint8(c0 >> 5)), expand5(uint8(c0)), 0xff}
	colors[1] = [4]uint8{expand5(uint8(c1 >> 11)), expand6(uint8(c1 >> 5)), expand5(uint8(c1)), 0xff}

	if fourColor || c0 > c1 {
		for ch := 0; ch < 3; ch++ {
			colors[2][ch] = uint8((2*int(colors[0][ch]) + int(colors[1][ch])) / 3)
			colors[3][ch] = uint8((int(colors[0][ch]) + 2*int(colors[1][ch])) / 3)
		}
		colors[2][3] = 0xff
		colors[3][3] = 0xff
		return colors
	}

	for ch := 0; ch < 3; ch++ {
		colors[2][ch] = uint8((int(colors[0][ch]) + int(colors[1][ch])) / 2)
	}
	colors[2][3] = 0xff
	return colors
}

// dxt5AlphaTable interpolates the 8 entry alpha palette. With a0 > a1 all six
// remaining entries are interpolated, otherwise four are interpolated and the
// last two are fixed at fully transparent and fully opaque.
func dxt5AlphaTable(a0, a1 uint8) [8]uint8 {
	var alphas [8]uint8
	alphas[0] = a0
	alphas[1] = a1
	if a0 > a1 {
		for i := 2; i < 8; i++ {
			alphas[i] = uint8((int(a0)*(8-i) + int(a1)*(i-1)) / 7)
		}
		return alphas
	}
	for i := 2; i < 6; i++ {
		alphas[i] = uint8((int(a0)*(6-i) + int(a1)*(i-1)) / 5)
	}
	alphas[6] = 0
	alphas[7] = 0xff
	return alphas
}

// decodeDXT1 decompresses DXT1 blocks into pix. Each 8 byte block holds two
// RGB565 endpoints followed by 16 two bit palette indices. Partial blocks at
// the right and bottom edges are stored in full and clipped while decoding.
func decodeDXT1(pix []uint8, data []byte, width, height int, oneBitAlpha bool) {
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			block := data[(by*blocksX+bx)*8:]
			colors := dxtColorTable(block, false)
			if !oneBitAlpha {
				// Plain DXT1 carries no alpha, three color mode is
				// only a palette choice.
				colors[3][3] = 0xff
			}

			indices := uint32(block[4]) | uint32(block[5])<<8 | uint32(block[6])<<16 | uint32(block[7])<<24
			for py := 0; py < 4; py++ {
				for px := 0; px < 4; px++ {
					x := bx*4 + px
					y := by*4 + py
					if x >= width || y >= height {
						continue
					}
					c := colors[(indices>>(2*(py*4+px)))&3]
					copy(pix[(y*width+x)*4:], c[:])
				}
			}
		}
	}
}

// decodeDXT3 decompresses DXT3 blocks into pix. Each 16 byte block holds 16
// explicit 4 bit alpha values followed by a DXT1 style color block that is
// always in four color mode.
func decodeDXT3(pix []uint8, data []byte, width, height int) {
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			block := data[(by*blocksX+bx)*16:]
			colors := dxtColorTable(block[8:], true)

			indices := uint32(block[12]) | uint32(block[13])<<8 | uint32(block[14])<<16 | uint32(block[15])<<24
			for py := 0; py < 4; py++ {
				alphaRow := uint16(block[py*2]) | uint16(block[py*2+1])<<8
				for px := 0; px < 4; px++ {
					x := bx*4 + px
					y := by*4 + py
					if x >= width || y >= height {
						continue
					}
					c := colors[(indices>>(2*(py*4+px)))&3]
					c[3] = expand4(uint8(alphaRow >> (4 * px)))
					copy(pix[(y*width+x)*4:], c[:])
				}
			}
		}
	}
}

// decodeDXT5 decompresses DXT5 blocks into pix. Each 16 byte block holds two
// alpha endpoints and 16 three bit alpha indices followed by a DXT1 style
// color block that is always in four color mode.
func decodeDXT5(pix []uint8, data []byte, width, height int) {
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			block := data[(by*blocksX+bx)*16:]
			colors := dxtColorTable(block[8:], true)
			alphas := dxt5AlphaTable(block[0], block[1])

			var alphaIndices uint64
			for i := 0; i < 6; i++ {
				alphaIndices |= uint64(block[2+i]) << (8 * i)
			}

			indices := uint32(block[12]) | uint32(block[13])<<8 | uint32(block[14])<<16 | uint32(block[15])<<24
			for py := 0; py < 4; py++ {
				for px := 0; px < 4; px++ {
					x := bx*4 + px
					y := by*4 + py
					if x >= width || y >= height {
						continue
					}
					i := py*4 + px
					c := colors[(indices>>(2*i))&3]
					c[3] = alphas[(alphaIndices>>(3*i))&7]
					copy(pix[(y*width+x)*4:], c[:])
				}
			}
		}
	}
}
