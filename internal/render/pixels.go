package render

import "image/color"

// rgba8 converts c into 8-bit RGBA components.
func rgba8(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// fillSpan writes px into every 4-byte pixel of buf.
func fillSpan(buf []byte, px [4]byte) {
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = px[0]
		buf[base+1] = px[1]
		buf[base+2] = px[2]
		buf[base+3] = px[3]
	}
}
