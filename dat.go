package easydisplay

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/flavioheleno/easydisplay/framebuf"
)

// DAT file header lines. The header is followed by the raw pixel data in the
// target format, row-major, rows padded to a byte.
const (
	DATSignature = "EasyDisplay"
	DATVersion   = "V1"
)

// DAT draws a raw pixel data file with its top-left corner at (x, y). The
// data must be in the target format; see EncodeDAT.
//
// On streaming targets an image that fits on the display is copied to the
// device in large chunks without any conversion.
func (d *Display) DAT(r io.Reader, x, y int, opts ...Option) error {
	p := d.params(opts)
	br := bufio.NewReaderSize(r, d.readSize*10)

	sig, err := readLine(br)
	if err != nil {
		return err
	}
	if sig != DATSignature {
		return &FormatError{Format: "DAT", Field: "signature", Value: sig}
	}
	ver, err := readLine(br)
	if err != nil {
		return err
	}
	if ver != DATVersion {
		return &FormatError{Format: "DAT", Field: "version", Value: ver}
	}
	w, h, err := readSize(br, "DAT")
	if err != nil {
		return err
	}
	d.log.WithFields(logrus.Fields{"w": w, "h": h}).Debug("dat")

	if err := d.begin(&p); err != nil {
		return err
	}
	s := d.newSink(x, y, w, h, p.key)
	if !s.visible() {
		return d.end(&p)
	}
	if d.stream != nil && s.vis == image.Rect(x, y, x+w, y+h) {
		err = d.datStream(br, s)
	} else {
		err = d.datRows(br, s)
	}
	if err != nil {
		return err
	}
	return d.end(&p)
}

// DATFile is like DAT for the file at path.
func (d *Display) DATFile(path string, x, y int, opts ...Option) error {
	return withFile(path, func(f *os.File) error { return d.DAT(f, x, y, opts...) })
}

// datStream copies the payload straight into the window.
func (d *Display) datStream(r io.Reader, s *sink) error {
	if err := d.stream.SetWindow(s.vis.Min.X, s.vis.Min.Y, s.vis.Max.X-1, s.vis.Max.Y-1); err != nil {
		return err
	}
	buf := make([]byte, d.readSize*10)
	for left := d.format.Len(s.w, s.h); left > 0; {
		n := min(left, len(buf))
		if _, err := io.ReadFull(r, buf[:n]); err != nil {
			return fmt.Errorf("easydisplay: dat payload: %w", unexpected(err))
		}
		if err := d.stream.WritePixelData(buf[:n]); err != nil {
			return err
		}
		left -= n
	}
	return nil
}

// datRows draws the visible part of the payload one row at a time.
func (d *Display) datRows(br *bufio.Reader, s *sink) error {
	b0, b1, col, w := s.span(d.format.BitsPerPixel())
	rows := rowReader{r: br, stride: d.format.Stride(s.w), b0: b0, b1: b1}
	buf := make([]byte, b1-b0)
	for row := 0; row < s.h; row++ {
		if err := rows.read(buf); err != nil {
			return fmt.Errorf("easydisplay: dat row %d: %w", row, err)
		}
		if err := s.band(framebuf.Wrap(buf, w, 1, d.format), col, nil); err != nil {
			return err
		}
	}
	return nil
}

// DATOpts controls EncodeDAT.
type DATOpts struct {
	// Size resizes the image first. A zero dimension keeps the aspect
	// ratio; the zero value keeps the original size.
	Size image.Point
	// Invert inverts the colors.
	Invert bool
}

// EncodeDAT writes img as a DAT file in format f. Colors are converted with
// the color model of the format, so monochrome output thresholds on the
// average of the channels.
func EncodeDAT(w io.Writer, img image.Image, f framebuf.Format, opts *DATOpts) error {
	if opts == nil {
		opts = &DATOpts{}
	}
	if opts.Size.X < 0 || opts.Size.Y < 0 {
		return fmt.Errorf("easydisplay: invalid dat size %v", opts.Size)
	}
	var src image.Image = img
	if opts.Size != (image.Point{}) {
		src = imaging.Resize(src, opts.Size.X, opts.Size.Y, imaging.Lanczos)
	}
	if opts.Invert {
		src = imaging.Invert(src)
	}
	b := src.Bounds()
	if b.Empty() {
		return fmt.Errorf("easydisplay: empty image %v", b)
	}
	buf := framebuf.New(b.Dx(), b.Dy(), f)
	draw.Draw(buf, buf.Bounds(), src, b.Min, draw.Src)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%s\n%d %d\n", DATSignature, DATVersion, b.Dx(), b.Dy())
	if _, err := bw.Write(buf.Pix); err != nil {
		return err
	}
	return bw.Flush()
}

// EncodeDATFile is like EncodeDAT but decodes the image at in and writes the
// result to out. Any format known to imaging.Open is accepted.
func EncodeDATFile(out, in string, f framebuf.Format, opts *DATOpts) error {
	img, err := imaging.Open(in)
	if err != nil {
		return err
	}
	fh, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := EncodeDAT(fh, img, f, opts); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
