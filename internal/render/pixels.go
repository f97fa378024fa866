package render

import "image/color"

func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func put(buf []byte, i int, c color.RGBA) {
	base := i * 4
	buf[base+0] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}

// fillBinaryRGBA converts binary cell data (0/non-zero) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	onC, offC := toRGBA(on), toRGBA(off)
	for i, c := range cells {
		if c != 0 {
			put(buf, i, onC)
			continue
		}
		put(buf, i, offC)
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. Values
// past the end of the palette use its last entry; an empty palette clears the
// buffer to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			put(buf, i, color.RGBA{})
		}
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		put(buf, i, palette[min(int(c), last)])
	}
}
