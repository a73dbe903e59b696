// Package bmf reads and writes .bmf bitmap font files.
//
// A .bmf file holds fixed-size square monochrome glyphs for a set of Unicode
// code points of the Basic Multilingual Plane:
//
//	+-----------------+  0x00
//	| header          |  16 bytes, see Header
//	+-----------------+  0x10
//	| index           |  sorted big-endian uint16 code points
//	+-----------------+  bitmap start
//	| bitmaps         |  one glyph per index entry, same order
//	+-----------------+
//
// Glyph lookup is a binary search over the index read straight from the file,
// so fonts with tens of thousands of glyphs can be used with almost no memory.
package bmf

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Font is an open font file. It is not safe for concurrent use.
type Font struct {
	r      io.ReaderAt
	closer io.Closer
	hdr    Header
	log    logrus.FieldLogger
	probe  [2]byte
}

// Open opens and validates the font file at path. The file stays open until
// Close is called; glyphs are read on demand.
func Open(path string) (*Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	font, err := NewFont(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	font.closer = f
	font.log = font.log.WithField("file", path)
	return font, nil
}

// NewFont validates the header read from r and returns a Font reading glyphs
// from it.
func NewFont(r io.ReaderAt) (*Font, error) {
	var b [HeaderSize]byte
	if n, err := r.ReadAt(b[:], 0); err != nil {
		if err == io.EOF {
			return nil, &FormatError{Field: "header length", Value: n}
		}
		return nil, err
	}
	f := &Font{r: r, log: discard}
	if err := f.hdr.UnmarshalBinary(b[:]); err != nil {
		return nil, err
	}
	return f, nil
}

// SetLogger sets where lookup diagnostics go.
func (f *Font) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discard
	}
	f.log = l
}

// Header returns the decoded file header.
func (f *Font) Header() Header {
	return f.hdr
}

// CellSize returns the pixel size glyphs were rasterized at.
func (f *Font) CellSize() int {
	return int(f.hdr.CellSize)
}

// GlyphSize returns the number of bytes of one glyph.
func (f *Font) GlyphSize() int {
	return int(f.hdr.GlyphSize)
}

// Len returns the number of glyphs in the font.
func (f *Font) Len() int {
	return f.hdr.GlyphCount()
}

// Close closes the underlying file, if the font was opened with Open.
func (f *Font) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// Index returns the position of r in the index region.
func (f *Font) Index(r rune) (int, bool, error) {
	if r < 0 || r > 0xFFFF {
		return 0, false, nil
	}
	code := uint16(r)
	lo := int64(HeaderSize)
	hi := int64(f.hdr.BitmapStart) - 2
	for lo <= hi {
		// Round down to an entry boundary.
		mid := ((lo + hi) / 4) * 2
		if _, err := f.r.ReadAt(f.probe[:], mid); err != nil {
			return 0, false, err
		}
		v := uint16(f.probe[0])<<8 | uint16(f.probe[1])
		switch {
		case code == v:
			return int(mid-HeaderSize) / 2, true, nil
		case code < v:
			hi = mid - 2
		default:
			lo = mid + 2
		}
	}
	return 0, false, nil
}

// Lookup returns the bitmap of r. ok is false when the font has no glyph for
// r; err is only set for read failures.
func (f *Font) Lookup(r rune) (bits []byte, ok bool, err error) {
	i, ok, err := f.Index(r)
	if err != nil || !ok {
		return nil, false, err
	}
	bits = make([]byte, f.hdr.GlyphSize)
	off := int64(f.hdr.BitmapStart) + int64(i)*int64(f.hdr.GlyphSize)
	if _, err := f.r.ReadAt(bits, off); err != nil {
		return nil, false, err
	}
	return bits, true, nil
}

// Glyph returns the bitmap of r, or the fallback glyph when the font does not
// contain r.
func (f *Font) Glyph(r rune) ([]byte, error) {
	bits, ok, err := f.Lookup(r)
	if err != nil {
		return nil, err
	}
	if !ok {
		f.log.WithField("rune", string(r)).Debug("glyph missing, using fallback")
		return FallbackGlyph(f.CellSize()), nil
	}
	return bits, nil
}

// Runes returns the code points of the index region in file order.
func (f *Font) Runes() ([]rune, error) {
	n := f.Len()
	b := make([]byte, n*2)
	if _, err := f.r.ReadAt(b, HeaderSize); err != nil {
		return nil, err
	}
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = rune(b[2*i])<<8 | rune(b[2*i+1])
	}
	return runes, nil
}
