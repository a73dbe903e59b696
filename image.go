package easydisplay

import (
	"bufio"
	"image"
	"io"
	"os"

	"github.com/flavioheleno/easydisplay/framebuf"
	"github.com/flavioheleno/easydisplay/glyph"
)

// MaxImageSize is the largest image width or height accepted by the
// decoders.
const MaxImageSize = 1<<16 - 1

// sink writes a decoded image to the target as horizontal bands, top to
// bottom. In streaming mode the window is set once to the visible part of
// the image and bands are cropped to it.
type sink struct {
	d    *Display
	x, y int             // Image position on the target
	w, h int             // Image size
	vis  image.Rectangle // Visible part, target coordinates
	key  framebuf.Key
	row  int // Next image row
	open bool
}

func (d *Display) newSink(x, y, w, h int, key framebuf.Key) *sink {
	return &sink{
		d:   d,
		x:   x,
		y:   y,
		w:   w,
		h:   h,
		vis: image.Rect(x, y, x+w, y+h).Intersect(d.rect),
		key: key,
	}
}

// visible reports whether any part of the image lands on the target.
func (s *sink) visible() bool {
	return !s.vis.Empty()
}

// span returns the bytes [b0, b1) of an image row holding the visible
// columns, for rows of bpp bits per pixel. col is the image column at b0 and
// w the number of columns from col to the right edge of the visible part.
func (s *sink) span(bpp int) (b0, b1, col, w int) {
	c0, c1 := s.vis.Min.X-s.x, s.vis.Max.X-s.x
	b0 = c0 * bpp / 8
	b1 = (c1*bpp + 7) / 8
	col = b0 * 8 / bpp
	return b0, b1, col, c1 - col
}

// band writes the next src.Rect.Dy() rows of the image, holding the image
// columns from col on. src is either in the target format, or MonoHLSB
// mapped through pal.
func (s *sink) band(src *framebuf.Buffer, col int, pal *framebuf.Palette) error {
	w, rows := src.Rect.Dx(), src.Rect.Dy()
	x, top := s.x+col, s.y+s.row
	s.row += rows
	if s.d.buffered != nil {
		return s.d.buffered.Blit(src, x, top, s.key, pal)
	}

	full := image.Rect(x, top, x+w, top+rows)
	vis := full.Intersect(s.vis)
	if vis.Empty() {
		return nil
	}
	if !s.open {
		if err := s.d.stream.SetWindow(s.vis.Min.X, s.vis.Min.Y, s.vis.Max.X-1, s.vis.Max.Y-1); err != nil {
			return err
		}
		s.open = true
	}
	if pal != nil {
		src = framebuf.Wrap(glyph.Flatten(src.Pix, w, rows, *pal, s.d.format), w, rows, s.d.format)
	}
	var data []byte
	if vis == full {
		data = src.Pix[:s.d.format.Len(w, rows)]
	} else {
		data = src.Region(vis.Sub(full.Min))
	}
	return s.d.stream.WritePixelData(data)
}

// rowReader reads image rows of stride bytes and keeps bytes [b0, b1) of
// each one.
type rowReader struct {
	r      *bufio.Reader
	stride int
	b0, b1 int
}

// read fills dst, which must hold b1-b0 bytes, from the next row.
func (rr *rowReader) read(dst []byte) error {
	if _, err := rr.r.Discard(rr.b0); err != nil {
		return unexpected(err)
	}
	if _, err := io.ReadFull(rr.r, dst); err != nil {
		return unexpected(err)
	}
	if _, err := rr.r.Discard(rr.stride - rr.b1); err != nil {
		return unexpected(err)
	}
	return nil
}

// rgbConverter returns the RGB to native conversion of the target.
func (d *Display) rgbConverter(p *params) func(r, g, b uint8) framebuf.Color {
	if d.format == framebuf.MonoHLSB {
		return func(r, g, b uint8) framebuf.Color {
			if framebuf.Mono(r, g, b) {
				return p.color
			}
			return p.bg
		}
	}
	if c, ok := d.target.(RGBConverter); ok {
		return c.RGBToNative
	}
	return d.format.FromRGB
}

// withFile opens path and hands it to fn.
func withFile(path string, fn func(f *os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}
