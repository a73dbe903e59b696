package easydisplay

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/flavioheleno/easydisplay/framebuf"
)

// bmpHeader is the BITMAPFILEHEADER followed by a BITMAPINFOHEADER.
type bmpHeader struct {
	Magic       [2]byte
	FileSize    uint32
	Reserved    uint32
	Offset      uint32
	InfoSize    uint32
	Width       int32
	Height      int32
	Planes      uint16
	Depth       uint16
	Compression uint32
	ImageSize   uint32
	XPPM, YPPM  int32
	Colors      uint32
	Important   uint32
}

func (h *bmpHeader) validate() error {
	switch {
	case h.Magic != [2]byte{'B', 'M'}:
		return &FormatError{Format: "BMP", Field: "signature", Value: string(h.Magic[:])}
	case h.Planes != 1:
		return &FormatError{Format: "BMP", Field: "planes", Value: h.Planes}
	case h.Depth != 24:
		return &FormatError{Format: "BMP", Field: "depth", Value: h.Depth}
	case h.Compression != 0:
		return &FormatError{Format: "BMP", Field: "compression", Value: h.Compression}
	case h.Width <= 0 || h.Width > MaxImageSize:
		return &FormatError{Format: "BMP", Field: "width", Value: h.Width}
	case h.Height == 0 || h.Height > MaxImageSize || h.Height < -MaxImageSize:
		return &FormatError{Format: "BMP", Field: "height", Value: h.Height}
	}
	return nil
}

// BMP draws an uncompressed 24-bit Windows bitmap with its top-left corner
// at (x, y). Both bottom-up and top-down row orders are supported. The image
// is cropped to the part of the target right of x and below y.
func (d *Display) BMP(r io.ReadSeeker, x, y int, opts ...Option) error {
	p := d.params(opts)
	base, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	var hdr bmpHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("easydisplay: bmp header: %w", unexpected(err))
	}
	if err := hdr.validate(); err != nil {
		return err
	}

	w, h := int(hdr.Width), int(hdr.Height)
	bottomUp := h > 0
	if !bottomUp {
		h = -h
	}
	rowSize := int64(w*3+3) &^ 3
	srcH := h
	w = min(w, d.rect.Dx()-x)
	h = min(h, d.rect.Dy()-y)
	d.log.WithFields(logrus.Fields{
		"w":         hdr.Width,
		"h":         hdr.Height,
		"bottom_up": bottomUp,
	}).Debug("bmp")

	if err := d.begin(&p); err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		return d.end(&p)
	}

	s := d.newSink(x, y, w, h, p.key)
	if !s.visible() {
		return d.end(&p)
	}
	// Only the visible rows and columns are read.
	c0 := s.vis.Min.X - x
	w = s.vis.Dx()
	r0, r1 := s.vis.Min.Y-y, s.vis.Max.Y-y
	buf := make([]byte, 3*w)
	band := framebuf.New(w, 1, d.format)
	conv := d.rgbConverter(&p)
	s.row = r0
	for row := r0; row < r1; row++ {
		src := row
		if bottomUp {
			src = srcH - 1 - row
		}
		if _, err := r.Seek(base+int64(hdr.Offset)+int64(src)*rowSize+int64(3*c0), io.SeekStart); err != nil {
			return err
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("easydisplay: bmp row %d: %w", src, unexpected(err))
		}
		for i := 0; i < w; i++ {
			cb, cg, cr := buf[3*i], buf[3*i+1], buf[3*i+2]
			if p.invert {
				cr, cg, cb = 255-cr, 255-cg, 255-cb
			}
			band.SetPixel(i, 0, conv(cr, cg, cb))
		}
		if err := s.band(band, c0, nil); err != nil {
			return err
		}
	}
	return d.end(&p)
}

// BMPFile is like BMP for the file at path.
func (d *Display) BMPFile(path string, x, y int, opts ...Option) error {
	return withFile(path, func(f *os.File) error { return d.BMP(f, x, y, opts...) })
}
