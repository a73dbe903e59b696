// Package glyph transforms monochrome glyph bitmaps.
//
// A glyph is a square size×size bit matrix stored row-major, most significant
// bit first, with every row padded to a whole byte. This is the layout of the
// bitmap region of a .bmf font file and of framebuf.MonoHLSB.
package glyph

import (
	"github.com/flavioheleno/easydisplay/framebuf"
)

// ByteSize returns the number of bytes used by a size×size glyph.
func ByteSize(size int) int {
	return (size + 7) / 8 * size
}

// Rescale resizes a glyph from oldSize to newSize pixels using nearest
// neighbour sampling. When both sizes are equal bits is returned as is.
func Rescale(bits []byte, newSize, oldSize int) []byte {
	if newSize == oldSize {
		return bits
	}
	out := make([]byte, ByteSize(newSize))
	if newSize <= 0 || oldSize <= 0 {
		return out
	}
	oldStride := (oldSize + 7) / 8
	newStride := (newSize + 7) / 8
	for row := 0; row < newSize; row++ {
		sy := row * oldSize / newSize
		src := bits[sy*oldStride : (sy+1)*oldStride]
		dst := out[row*newStride : (row+1)*newStride]
		for col := 0; col < newSize; col++ {
			sx := col * oldSize / newSize
			if src[sx>>3]>>(7-uint(sx&7))&1 != 0 {
				dst[col>>3] |= 0x80 >> uint(col&7)
			}
		}
	}
	return out
}

// Flatten converts a w×h monochrome bitmap into pixel data of format f, a
// source bit of 0 taking pal[0] and a bit of 1 taking pal[1].
//
// For RGB565 every pixel becomes the two big-endian bytes of its palette
// entry, ready to stream to a display window.
func Flatten(bits []byte, w, h int, pal framebuf.Palette, f framebuf.Format) []byte {
	srcStride := (w + 7) / 8
	switch f {
	case framebuf.RGB565:
		entries := [2][2]byte{
			{byte(pal[0] >> 8), byte(pal[0])},
			{byte(pal[1] >> 8), byte(pal[1])},
		}
		out := make([]byte, 0, w*h*2)
		for y := 0; y < h; y++ {
			row := bits[y*srcStride : (y+1)*srcStride]
			for x := 0; x < w; x++ {
				out = append(out, entries[row[x>>3]>>(7-uint(x&7))&1][:]...)
			}
		}
		return out
	case framebuf.MonoHLSB:
		if pal[1]&1 == 1 && pal[0]&1 == 0 {
			return append([]byte(nil), bits[:srcStride*h]...)
		}
	}
	src := framebuf.Wrap(bits, w, h, framebuf.MonoHLSB)
	dst := framebuf.New(w, h, f)
	dst.Blit(src, 0, 0, framebuf.NoKey, &pal)
	return dst.Pix
}
