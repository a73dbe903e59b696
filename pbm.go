package easydisplay

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/flavioheleno/easydisplay/framebuf"
)

// PBM draws a binary Netpbm image with its top-left corner at (x, y).
//
// P4 bitmaps are drawn with the foreground color for set bits and the
// background color for clear ones. P6 pixmaps are converted to the target
// format; on monochrome targets a pixel is foreground when the average of its
// channels is at least 127. Comments in the header are not supported.
func (d *Display) PBM(r io.Reader, x, y int, opts ...Option) error {
	p := d.params(opts)
	br := bufio.NewReaderSize(r, d.readSize)

	magic, err := readLine(br)
	if err != nil {
		return err
	}
	if magic != "P4" && magic != "P6" {
		return &FormatError{Format: "PBM", Field: "signature", Value: magic}
	}
	w, h, err := readSize(br, "PBM")
	if err != nil {
		return err
	}
	if magic == "P6" {
		// The maximum value is assumed to be 255.
		if _, err := readLine(br); err != nil {
			return err
		}
	}
	d.log.WithFields(logrus.Fields{"type": magic, "w": w, "h": h}).Debug("pbm")

	if err := d.begin(&p); err != nil {
		return err
	}
	s := d.newSink(x, y, w, h, p.key)
	if !s.visible() {
		return d.end(&p)
	}
	if magic == "P4" {
		err = d.pbmBitmap(br, s, &p)
	} else {
		err = d.pbmPixmap(br, s, &p)
	}
	if err != nil {
		return err
	}
	return d.end(&p)
}

// PBMFile is like PBM for the file at path.
func (d *Display) PBMFile(path string, x, y int, opts ...Option) error {
	return withFile(path, func(f *os.File) error { return d.PBM(f, x, y, opts...) })
}

func (d *Display) pbmBitmap(br *bufio.Reader, s *sink, p *params) error {
	b0, b1, col, w := s.span(1)
	rows := rowReader{r: br, stride: framebuf.MonoHLSB.Stride(s.w), b0: b0, b1: b1}
	stride := b1 - b0
	chunk := max(1, d.readSize/stride)
	buf := make([]byte, stride*chunk)
	pal := p.palette()
	for row := 0; row < s.h; row += chunk {
		n := min(chunk, s.h-row)
		for i := 0; i < n; i++ {
			if err := rows.read(buf[i*stride : (i+1)*stride]); err != nil {
				return fmt.Errorf("easydisplay: pbm row %d: %w", row+i, err)
			}
		}
		if err := s.band(framebuf.Wrap(buf, w, n, framebuf.MonoHLSB), col, &pal); err != nil {
			return err
		}
	}
	return nil
}

func (d *Display) pbmPixmap(br *bufio.Reader, s *sink, p *params) error {
	b0, b1, col, w := s.span(24)
	rows := rowReader{r: br, stride: 3 * s.w, b0: b0, b1: b1}
	stride := b1 - b0
	chunk := max(1, d.readSize/stride)
	buf := make([]byte, stride*chunk)
	band := framebuf.New(w, chunk, d.format)
	conv := d.rgbConverter(p)
	for row := 0; row < s.h; row += chunk {
		n := min(chunk, s.h-row)
		out := framebuf.Wrap(band.Pix, w, n, d.format)
		for i := 0; i < n; i++ {
			px := buf[i*stride : (i+1)*stride]
			if err := rows.read(px); err != nil {
				return fmt.Errorf("easydisplay: pbm row %d: %w", row+i, err)
			}
			for x := 0; x < w; x++ {
				cr, cg, cb := px[3*x], px[3*x+1], px[3*x+2]
				if p.invert {
					cr, cg, cb = 255-cr, 255-cg, 255-cb
				}
				out.SetPixel(x, i, conv(cr, cg, cb))
			}
		}
		if err := s.band(out, col, nil); err != nil {
			return err
		}
	}
	return nil
}

// readLine reads a header line without its line terminator.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", unexpected(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSize parses a "width height" header line. Both dimensions must be in
// 1..MaxImageSize.
func readSize(br *bufio.Reader, format string) (w, h int, err error) {
	line, err := readLine(br)
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, &FormatError{Format: format, Field: "size", Value: line}
	}
	if w, err = strconv.Atoi(fields[0]); err != nil || w <= 0 || w > MaxImageSize {
		return 0, 0, &FormatError{Format: format, Field: "width", Value: fields[0]}
	}
	if h, err = strconv.Atoi(fields[1]); err != nil || h <= 0 || h > MaxImageSize {
		return 0, 0, &FormatError{Format: format, Field: "height", Value: fields[1]}
	}
	return w, h, nil
}

// unexpected turns io.EOF into io.ErrUnexpectedEOF; inside a file header or
// payload the end of input is always premature.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
