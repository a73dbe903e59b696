package framebuf

import (
	"image/color"
)

// RGBTo565 packs 8-bit red, green and blue into a 565 word.
func RGBTo565(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3))
}

// RGB565Color is a 16-bit 565 color.
type RGB565Color uint16

// RGBA implements color.Color. The 5 and 6 bit channels are replicated into
// the low bits so that full intensity maps to 0xFFFF.
func (c RGB565Color) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1F
	g6 := uint32(c>>5) & 0x3F
	b5 := uint32(c) & 0x1F
	r = (r5<<3 | r5>>2) * 0x101
	g = (g6<<2 | g6>>4) * 0x101
	b = (b5<<3 | b5>>2) * 0x101
	return r, g, b, 0xFFFF
}

func toRGB565(c color.Color) color.Color {
	if v, ok := c.(RGB565Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return RGB565Color(RGBTo565(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}

// RGB565Model converts colors to RGB565Color.
var RGB565Model = color.ModelFunc(toRGB565)

// Gray4 represents a 4-bit grayscale color (0-15 intensity levels).
// Only the lower 4 bits of Y are used.
type Gray4 struct {
	Y uint8
}

// RGBA converts the Gray4 color to standard RGBA.
func (c Gray4) RGBA() (r, g, b, a uint32) {
	// 0xF * 0x1111 = 0xFFFF
	y := uint32(c.Y&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

// Luma4 returns the 4-bit luminance of an 8-bit RGB triplet.
func Luma4(r, g, b uint8) uint8 {
	// 0.299R + 0.587G + 0.114B
	y := (299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000
	return uint8(y >> 4)
}

func toGray4(c color.Color) color.Color {
	if g, ok := c.(Gray4); ok {
		return g
	}
	r, g, b, _ := c.RGBA()
	return Gray4{Y: Luma4(uint8(r>>8), uint8(g>>8), uint8(b>>8))}
}

// Gray4Model converts colors to Gray4.
var Gray4Model = color.ModelFunc(toGray4)

// Mono reports whether an 8-bit RGB triplet is lit on a monochrome display:
// the channel average must reach 127.
func Mono(r, g, b uint8) bool {
	return (uint32(r)+uint32(g)+uint32(b))/3 >= 127
}

func toMono(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	if Mono(uint8(r>>8), uint8(g>>8), uint8(b>>8)) {
		return color.Gray{Y: 0xFF}
	}
	return color.Gray{Y: 0}
}

// MonoModel converts colors to black or white color.Gray values.
var MonoModel = color.ModelFunc(toMono)

// FromRGB converts an 8-bit RGB triplet to a native color of the format
// without any device specific calibration.
func (f Format) FromRGB(r, g, b uint8) Color {
	switch f {
	case RGB565:
		return RGBTo565(r, g, b)
	case GS4HMSB:
		return Color(Luma4(r, g, b))
	}
	if Mono(r, g, b) {
		return 1
	}
	return 0
}
