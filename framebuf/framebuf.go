// Package framebuf provides the in-memory pixel buffers used to compose text and
// images before they reach a display.
//
// Three packed pixel formats are supported:
//
//   - MonoHLSB: 1 bit per pixel, rows stored top to bottom, most significant bit
//     is the leftmost pixel, every row padded to a whole byte.
//   - RGB565: 2 bytes per pixel, big-endian, as sent over SPI to TFT controllers.
//   - GS4HMSB: 4-bit grayscale, 2 pixels per byte, high nibble is the left pixel.
//
// Colors are handled as native values (Color) already encoded for the format.
package framebuf

import (
	"fmt"
	"image"
	"image/color"
)

// Format is a packed pixel layout.
type Format uint8

const (
	MonoHLSB Format = iota
	RGB565
	GS4HMSB
)

func (f Format) String() string {
	switch f {
	case MonoHLSB:
		return "MONO_HLSB"
	case RGB565:
		return "RGB565"
	case GS4HMSB:
		return "GS4_HMSB"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// BitsPerPixel returns the pixel depth of the format.
func (f Format) BitsPerPixel() int {
	switch f {
	case RGB565:
		return 16
	case GS4HMSB:
		return 4
	}
	return 1
}

// Stride returns the number of bytes used by one row of w pixels.
func (f Format) Stride(w int) int {
	return (w*f.BitsPerPixel() + 7) / 8
}

// Len returns the number of bytes used by a w×h image.
func (f Format) Len(w, h int) int {
	return f.Stride(w) * h
}

// Color is a native pixel value in the encoding of a Format: 0 or 1 for
// MonoHLSB, a 565 word for RGB565 and 0-15 for GS4HMSB.
type Color uint16

// Key is a transparency key. Pixels whose final color equals the key are not
// written by Blit. NoKey disables transparency.
type Key int32

// NoKey disables transparency.
const NoKey Key = -1

// Matches reports whether c is the transparent color.
func (k Key) Matches(c Color) bool {
	return k >= 0 && Color(k) == c
}

// Palette maps a 1-bit source pixel to a native color: index 0 is the
// background, index 1 the foreground.
type Palette [2]Color

// NewPalette returns the palette for drawing fg on bg.
func NewPalette(fg, bg Color) Palette {
	return Palette{bg, fg}
}

// Swap returns the palette with foreground and background exchanged.
func (p Palette) Swap() Palette {
	return Palette{p[1], p[0]}
}

// Buffer is a packed pixel buffer. It implements draw.Image so the standard
// image packages can render into it.
type Buffer struct {
	Pix    []byte          // Packed pixel data
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
	format Format
}

// New returns a zeroed w×h buffer.
func New(w, h int, f Format) *Buffer {
	if w < 0 || h < 0 {
		return &Buffer{Rect: image.Rect(0, 0, w, h), format: f}
	}
	return &Buffer{
		Pix:    make([]byte, f.Len(w, h)),
		Stride: f.Stride(w),
		Rect:   image.Rect(0, 0, w, h),
		format: f,
	}
}

// Wrap returns a w×h buffer backed by pix. It panics if pix is too short.
func Wrap(pix []byte, w, h int, f Format) *Buffer {
	if len(pix) < f.Len(w, h) {
		panic(fmt.Sprintf("framebuf: %d bytes is too short for a %dx%d %s buffer", len(pix), w, h, f))
	}
	return &Buffer{
		Pix:    pix,
		Stride: f.Stride(w),
		Rect:   image.Rect(0, 0, w, h),
		format: f,
	}
}

// Format returns the pixel layout of the buffer.
func (b *Buffer) Format() Format {
	return b.format
}

// Bounds returns the image bounds.
func (b *Buffer) Bounds() image.Rectangle {
	return b.Rect
}

// ColorModel returns the color model matching the buffer format.
func (b *Buffer) ColorModel() color.Model {
	switch b.format {
	case RGB565:
		return RGB565Model
	case GS4HMSB:
		return Gray4Model
	}
	return MonoModel
}

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color {
	c := b.Pixel(x, y)
	switch b.format {
	case RGB565:
		return RGB565Color(c)
	case GS4HMSB:
		return Gray4{Y: uint8(c)}
	}
	if c != 0 {
		return color.White
	}
	return color.Black
}

// Set implements draw.Image.
func (b *Buffer) Set(x, y int, c color.Color) {
	b.SetPixel(x, y, b.Native(c))
}

// Native converts c to a native color of the buffer format.
func (b *Buffer) Native(c color.Color) Color {
	switch b.format {
	case RGB565:
		return Color(RGB565Model.Convert(c).(RGB565Color))
	case GS4HMSB:
		return Color(Gray4Model.Convert(c).(Gray4).Y)
	}
	if MonoModel.Convert(c).(color.Gray).Y != 0 {
		return 1
	}
	return 0
}

// Pixel returns the native color at (x, y), or 0 outside the bounds.
func (b *Buffer) Pixel(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return 0
	}
	x -= b.Rect.Min.X
	row := (y - b.Rect.Min.Y) * b.Stride
	switch b.format {
	case RGB565:
		i := row + x*2
		return Color(b.Pix[i])<<8 | Color(b.Pix[i+1])
	case GS4HMSB:
		i := row + x/2
		shift := uint(4 * (1 - (x & 1)))
		return Color(b.Pix[i]>>shift) & 0x0F
	}
	return Color(b.Pix[row+x/8]>>(7-uint(x%8))) & 1
}

// SetPixel sets the native color at (x, y). Writes outside the bounds are
// ignored.
func (b *Buffer) SetPixel(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	x -= b.Rect.Min.X
	row := (y - b.Rect.Min.Y) * b.Stride
	switch b.format {
	case RGB565:
		i := row + x*2
		b.Pix[i] = byte(c >> 8)
		b.Pix[i+1] = byte(c)
	case GS4HMSB:
		i := row + x/2
		shift := uint(4 * (1 - (x & 1)))
		b.Pix[i] = (b.Pix[i] &^ (0x0F << shift)) | (byte(c&0x0F) << shift)
	default:
		i := row + x/8
		mask := byte(0x80) >> uint(x%8)
		if c&1 != 0 {
			b.Pix[i] |= mask
		} else {
			b.Pix[i] &^= mask
		}
	}
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c Color) {
	var pattern []byte
	switch b.format {
	case RGB565:
		pattern = []byte{byte(c >> 8), byte(c)}
	case GS4HMSB:
		n := byte(c & 0x0F)
		pattern = []byte{n<<4 | n}
	default:
		pattern = []byte{0x00}
		if c&1 != 0 {
			pattern[0] = 0xFF
		}
	}
	for i := range b.Pix {
		b.Pix[i] = pattern[i%len(pattern)]
	}
}

// Blit composites src onto b with its top-left corner at (x, y).
//
// Each source pixel value is first mapped through pal when pal is not nil
// (this is how 1-bit data is colored), then skipped if it equals key. Pixels
// falling outside b are clipped.
func (b *Buffer) Blit(src *Buffer, x, y int, key Key, pal *Palette) {
	sb := src.Rect
	dst := image.Rect(x, y, x+sb.Dx(), y+sb.Dy()).Intersect(b.Rect)
	if dst.Empty() {
		return
	}
	for dy := dst.Min.Y; dy < dst.Max.Y; dy++ {
		sy := sb.Min.Y + dy - y
		for dx := dst.Min.X; dx < dst.Max.X; dx++ {
			c := src.Pixel(sb.Min.X+dx-x, sy)
			if pal != nil {
				c = pal[c&1]
			}
			if key.Matches(c) {
				continue
			}
			b.SetPixel(dx, dy, c)
		}
	}
}

// Region returns a copy of the pixels inside r, packed in the buffer format
// with rows padded to a byte.
func (b *Buffer) Region(r image.Rectangle) []byte {
	r = r.Intersect(b.Rect)
	if r.Empty() {
		return nil
	}
	if r == b.Rect {
		return append([]byte(nil), b.Pix[:b.format.Len(r.Dx(), r.Dy())]...)
	}
	out := New(r.Dx(), r.Dy(), b.format)
	// Byte aligned rows can be copied as is.
	if bits := (r.Min.X - b.Rect.Min.X) * b.format.BitsPerPixel(); bits%8 == 0 {
		start := bits / 8
		for y := 0; y < r.Dy(); y++ {
			row := (r.Min.Y-b.Rect.Min.Y+y)*b.Stride + start
			copy(out.Pix[y*out.Stride:(y+1)*out.Stride], b.Pix[row:row+out.Stride])
		}
		maskTail(out)
		return out.Pix
	}
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			out.SetPixel(x, y, b.Pixel(r.Min.X+x, r.Min.Y+y))
		}
	}
	return out.Pix
}

// maskTail clears the padding bits at the end of each row.
func maskTail(b *Buffer) {
	bits := b.Rect.Dx() * b.format.BitsPerPixel()
	if bits%8 == 0 || b.Stride == 0 {
		return
	}
	mask := byte(0xFF) << uint(8-bits%8)
	for y := 0; y < b.Rect.Dy(); y++ {
		b.Pix[y*b.Stride+b.Stride-1] &= mask
	}
}
