package bmf

import (
	"bufio"
	"image"
	"io"
	"os"

	"github.com/bits-and-blooms/bitset"
	"github.com/icza/bitio"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/flavioheleno/easydisplay/glyph"
)

// Replacement is stored in place of code points outside the Basic
// Multilingual Plane, which do not fit the 2-byte index (FULLWIDTH QUESTION
// MARK).
const Replacement = '？'

// DefaultSize is the cell size used when BuildOpts.Size is zero.
const DefaultSize = 16

// BuildOpts configures Build.
type BuildOpts struct {
	// Size is the glyph cell size in pixels (default: 16). The bytes per glyph
	// must fit the 1-byte header field, so the largest size is 42.
	Size int

	// Offset moves the pen inside the cell. (0, 0) puts the top of the font
	// ascent on the first row.
	Offset image.Point

	// Logger receives progress information (default: discarded).
	Logger logrus.FieldLogger
}

// BuildInfo describes a generated font file.
type BuildInfo struct {
	Count       int   // Number of glyphs
	CellSize    int   // Glyph cell size in pixels
	BitmapStart int64 // Offset of the bitmap region
	Size        int64 // Total file size in bytes
}

// BuildFile creates the font file at path. See Build.
func BuildFile(path string, face font.Face, chars []rune, opts *BuildOpts) (*BuildInfo, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	info, err := Build(f, face, chars, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Build rasterizes chars with face and writes a font file to w.
//
// Duplicate characters are dropped and the rest are stored in ascending code
// point order. Characters above U+FFFF are stored as Replacement.
func Build(w io.WriteSeeker, face font.Face, chars []rune, opts *BuildOpts) (*BuildInfo, error) {
	if opts == nil {
		opts = &BuildOpts{}
	}
	size := opts.Size
	if size == 0 {
		size = DefaultSize
	}
	if size < 0 || glyph.ByteSize(size) > 0xFF {
		return nil, &FormatError{Field: "size", Value: size}
	}
	log := opts.Logger
	if log == nil {
		log = discard
	}

	var set bitset.BitSet
	for _, r := range chars {
		if r < 0 {
			continue
		}
		if r > 0xFFFF {
			r = Replacement
		}
		set.Set(uint(r))
	}
	count := int(set.Count())
	if count == 0 {
		return nil, &FormatError{Field: "character set", Value: "empty"}
	}

	hdr := Header{
		Version:   Version,
		CellSize:  uint8(size),
		GlyphSize: uint8(glyph.ByteSize(size)),
	}
	b, err := hdr.MarshalBinary()
	if err != nil {
		return nil, err
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(b); err != nil {
		return nil, err
	}
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if _, err := bw.Write([]byte{byte(i >> 8), byte(i)}); err != nil {
			return nil, err
		}
	}
	if err := bw.Flush(); err != nil {
		return nil, err
	}
	start, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	if start > MaxBitmapStart {
		return nil, &FormatError{Field: "bitmap start", Value: start}
	}
	log.WithFields(logrus.Fields{"glyphs": count, "bitmap_start": start}).Debug("index written")

	r := newRasterizer(face, size, opts.Offset)
	bits := bitio.NewWriter(bw)
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if err := r.write(bits, rune(i)); err != nil {
			return nil, err
		}
	}
	if err := bits.Close(); err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, err
	}

	total, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	if _, err := w.Seek(4, io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte{byte(start >> 16), byte(start >> 8), byte(start)}); err != nil {
		return nil, err
	}
	if _, err := w.Seek(total, io.SeekStart); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{"glyphs": count, "size": size, "bytes": total}).Debug("font built")
	return &BuildInfo{
		Count:       count,
		CellSize:    size,
		BitmapStart: start,
		Size:        total,
	}, nil
}

// rasterizer draws single characters onto a size×size grayscale canvas.
type rasterizer struct {
	canvas *image.Gray
	drawer font.Drawer
	origin fixed.Point26_6
	size   int
	stride int
}

func newRasterizer(face font.Face, size int, offset image.Point) *rasterizer {
	canvas := image.NewGray(image.Rect(0, 0, size, size))
	return &rasterizer{
		canvas: canvas,
		drawer: font.Drawer{
			Dst:  canvas,
			Src:  image.White,
			Face: face,
		},
		origin: fixed.Point26_6{
			X: fixed.I(offset.X),
			Y: fixed.I(offset.Y) + face.Metrics().Ascent,
		},
		size:   size,
		stride: (size + 7) / 8 * 8,
	}
}

// write rasterizes r and packs it row by row, MSB first, padding every row to
// a byte. A pixel is ink when at least half covered.
func (r *rasterizer) write(w *bitio.Writer, c rune) error {
	clear(r.canvas.Pix)
	r.drawer.Dot = r.origin
	r.drawer.DrawString(string(c))
	for y := 0; y < r.size; y++ {
		row := r.canvas.Pix[y*r.canvas.Stride:]
		for x := 0; x < r.stride; x++ {
			if err := w.WriteBool(x < r.size && row[x] >= 0x80); err != nil {
				return err
			}
		}
	}
	return nil
}
