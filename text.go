package easydisplay

import (
	"image"

	"github.com/flavioheleno/easydisplay/bmf"
	"github.com/flavioheleno/easydisplay/framebuf"
	"github.com/flavioheleno/easydisplay/glyph"
)

// Text draws s with its first glyph's top-left corner at (x, y).
//
// '\n' moves to the start of the next line and '\t' to the next multiple of
// the glyph size; other characters below U+0010 are ignored. Characters whose
// position lies past the right or bottom edge are dropped; glyphs straddling
// an edge are clipped. Code points missing from the font are drawn with the
// fallback glyph.
func (d *Display) Text(s string, x, y int, opts ...Option) error {
	if d.font == nil {
		return ErrNoFont
	}
	if err := checkFont(d.font); err != nil {
		return err
	}
	p := d.params(opts)
	cell := d.font.CellSize()
	size := p.size
	if size <= 0 {
		size = cell
	}
	pal := p.palette()
	w, h := d.rect.Dx(), d.rect.Dy()

	if err := d.begin(&p); err != nil {
		return err
	}
	initX := x
	newline := func() {
		x = initX
		y += size + p.lineSpacing
	}
	for _, r := range s {
		switch {
		case r == '\n':
			newline()
			continue
		case r == '\t':
			x = (floorDiv(x, size)+1)*size + floorMod(initX, size)
			continue
		case r < 0x10:
			continue
		}
		adv := d.advance(r, size, p.halfWidth)
		if p.autoWrap && x+adv > w {
			newline()
		}
		if x >= w || y >= h {
			continue
		}
		bits, err := d.font.Glyph(r)
		if err != nil {
			return err
		}
		if err := d.glyph(glyph.Rescale(bits, size, cell), x, y, size, pal, p.key); err != nil {
			return err
		}
		x += adv
	}
	return d.end(&p)
}

// checkFont rejects fonts whose header describes glyphs too short for their
// cell size. Such files open fine since only the marker and version are
// checked on load.
func checkFont(f *bmf.Font) error {
	cell := f.CellSize()
	if cell == 0 {
		return &bmf.FormatError{Field: "cell size", Value: cell}
	}
	if n := f.GlyphSize(); n < glyph.ByteSize(cell) {
		return &bmf.FormatError{Field: "glyph size", Value: n}
	}
	return nil
}

// advance returns how far the cursor moves after drawing r.
func (d *Display) advance(r rune, size int, halfWidth bool) int {
	if halfWidth && r < 0x80 && !d.wide[r] {
		return size / 2
	}
	return size
}

// glyph draws a size×size monochrome bitmap at (x, y).
func (d *Display) glyph(bits []byte, x, y, size int, pal framebuf.Palette, key framebuf.Key) error {
	if d.buffered != nil {
		src := framebuf.Wrap(bits, size, size, framebuf.MonoHLSB)
		return d.buffered.Blit(src, x, y, key, &pal)
	}
	full := image.Rect(x, y, x+size, y+size)
	vis := full.Intersect(d.rect)
	if vis.Empty() {
		return nil
	}
	data := glyph.Flatten(bits, size, size, pal, d.format)
	if vis != full {
		data = framebuf.Wrap(data, size, size, d.format).Region(vis.Sub(full.Min))
	}
	if err := d.stream.SetWindow(vis.Min.X, vis.Min.Y, vis.Max.X-1, vis.Max.Y-1); err != nil {
		return err
	}
	return d.stream.WritePixelData(data)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
