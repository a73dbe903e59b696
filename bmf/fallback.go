package bmf

import (
	"github.com/flavioheleno/easydisplay/glyph"
)

// FallbackSize is the cell size of Fallback.
const FallbackSize = 16

// Fallback is the 16×16 glyph drawn for code points missing from a font: a
// filled block with a question mark cut out of it.
var Fallback = []byte{
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xF0, 0x0F, 0xCF, 0xF3, 0xCF, 0xF3, 0xFF, 0xF3,
	0xFF, 0xCF, 0xFF, 0x3F, 0xFF, 0x3F, 0xFF, 0xFF,
	0xFF, 0x3F, 0xFF, 0x3F, 0xFF, 0xFF, 0xFF, 0xFF,
}

// FallbackGlyph returns Fallback scaled to a size×size cell.
func FallbackGlyph(size int) []byte {
	return append([]byte(nil), glyph.Rescale(Fallback, size, FallbackSize)...)
}
