package bmf

import (
	"fmt"
)

const (
	// Magic is the marker at the start of every font file.
	Magic = "BM"
	// Version is the only supported format version.
	Version = 3
	// HeaderSize is the length of the fixed header; the index region starts
	// right after it.
	HeaderSize = 0x10
	// MaxBitmapStart is the largest offset representable in the 3-byte
	// bitmapStart field.
	MaxBitmapStart = 1<<24 - 1
)

// Header is the fixed 16-byte header of a font file.
//
// Layout:
//
//	0  2  marker "BM"
//	2  1  version (3)
//	3  1  map mode (0: row-major MONO, MSB first)
//	4  3  bitmap start, big-endian
//	7  1  glyph cell size in pixels
//	8  1  bytes per glyph
//	9  7  reserved
type Header struct {
	Version     uint8
	MapMode     uint8
	BitmapStart uint32
	CellSize    uint8
	GlyphSize   uint8
	Reserved    [7]byte
}

// GlyphCount returns the number of entries in the index region.
func (h Header) GlyphCount() int {
	if h.BitmapStart < HeaderSize {
		return 0
	}
	return int(h.BitmapStart-HeaderSize) / 2
}

// MarshalBinary encodes the header. Map mode and reserved bytes are written
// exactly as held.
func (h Header) MarshalBinary() ([]byte, error) {
	if h.BitmapStart > MaxBitmapStart {
		return nil, &FormatError{Field: "bitmap start", Value: h.BitmapStart}
	}
	b := make([]byte, HeaderSize)
	copy(b, Magic)
	b[2] = h.Version
	b[3] = h.MapMode
	b[4] = byte(h.BitmapStart >> 16)
	b[5] = byte(h.BitmapStart >> 8)
	b[6] = byte(h.BitmapStart)
	b[7] = h.CellSize
	b[8] = h.GlyphSize
	copy(b[9:], h.Reserved[:])
	return b, nil
}

// UnmarshalBinary decodes and validates a header. Only the marker and the
// version are checked.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return &FormatError{Field: "header length", Value: len(b)}
	}
	if string(b[0:2]) != Magic {
		return &FormatError{Field: "marker", Value: fmt.Sprintf("%q", b[0:2])}
	}
	if b[2] != Version {
		return &FormatError{Field: "version", Value: b[2]}
	}
	h.Version = b[2]
	h.MapMode = b[3]
	h.BitmapStart = uint32(b[4])<<16 | uint32(b[5])<<8 | uint32(b[6])
	h.CellSize = b[7]
	h.GlyphSize = b[8]
	copy(h.Reserved[:], b[9:HeaderSize])
	return nil
}
