/*
Package rgb565 implements the packed 16-bit pixel format used throughout
the playback pipeline.

A pixel stores red in the top 5 bits, green in the middle 6 bits and blue
in the bottom 5 bits. The format is what small SPI-attached displays
consume natively, so decoded frames can be flushed without conversion.
*/
package rgb565

import "image/color"

// White and Black are the startup palette colors.
const (
	White uint16 = 0xffff
	Black uint16 = 0x0000
)

// Pack quantizes 8-bit channels into a packed pixel.
func Pack(r, g, b uint8) uint16 {
	return uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b)>>3
}

// FromColor converts any color.Color to a packed pixel.
func FromColor(c color.Color) uint16 {
	r, g, b, _ := c.RGBA()
	return Pack(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// RGBA expands a packed pixel back to 8-bit channels, replicating the
// top bits into the low bits so full white stays full white.
func RGBA(p uint16) color.RGBA {
	r := uint8(p >> 11 & 0x1f)
	g := uint8(p >> 5 & 0x3f)
	b := uint8(p & 0x1f)
	return color.RGBA{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2, 0xff}
}

// FromHSV converts a hue in degrees with 8-bit saturation and value to a
// packed pixel using the six-sector piecewise model. Every input maps to
// a valid color; hues at or beyond 360 wrap.
func FromHSV(h uint16, s, v uint8) uint16 {
	h %= 360
	region := uint8(h / 60)
	remainder := uint8((h - uint16(region)*60) * 255 / 60)

	p := uint8(uint16(v) * (255 - uint16(s)) >> 8)
	q := uint8(uint16(v) * (255 - uint16(s)*uint16(remainder)>>8) >> 8)
	t := uint8(uint16(v) * (255 - uint16(s)*(255-uint16(remainder))>>8) >> 8)

	var r, g, b uint8
	switch region {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return Pack(r, g, b)
}
