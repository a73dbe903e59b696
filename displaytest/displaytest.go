// Package displaytest provides a streaming render target for tests.
//
// Stream behaves like a display controller without host side frame buffer:
// pixel data is written into a window selected beforehand. Everything sent to
// it is recorded so tests can check both the resulting image and the traffic.
package displaytest

import (
	"errors"
	"fmt"
	"image"

	"github.com/flavioheleno/easydisplay/framebuf"
)

// Stream is an in-memory streaming target.
type Stream struct {
	Buf     *framebuf.Buffer  // Device RAM
	Windows []image.Rectangle // Every window set, Max exclusive
	Writes  [][]byte          // Every WritePixelData call
	Fills   []framebuf.Color  // Every Fill call
	Flushes int

	win     image.Rectangle
	row     int
	pending []byte
}

// NewStream returns a w×h streaming target of format f.
func NewStream(w, h int, f framebuf.Format) *Stream {
	return &Stream{Buf: framebuf.New(w, h, f)}
}

func (s *Stream) Bounds() image.Rectangle { return s.Buf.Bounds() }
func (s *Stream) Format() framebuf.Format { return s.Buf.Format() }

func (s *Stream) Fill(c framebuf.Color) error {
	s.Fills = append(s.Fills, c)
	s.Buf.Fill(c)
	return nil
}

func (s *Stream) SetPixel(x, y int, c framebuf.Color) error {
	s.Buf.SetPixel(x, y, c)
	return nil
}

func (s *Stream) Flush() error {
	s.Flushes++
	return nil
}

// SetWindow selects the inclusive rectangle (x0, y0)-(x1, y1).
func (s *Stream) SetWindow(x0, y0, x1, y1 int) error {
	r := image.Rect(x0, y0, x1+1, y1+1)
	if x1 < x0 || y1 < y0 || !r.In(s.Buf.Rect) {
		return fmt.Errorf("displaytest: invalid window (%d,%d)-(%d,%d)", x0, y0, x1, y1)
	}
	if len(s.pending) != 0 {
		return errors.New("displaytest: window changed with a partial row pending")
	}
	s.Windows = append(s.Windows, r)
	s.win = r
	s.row = 0
	return nil
}

// WritePixelData stores p row by row into the current window. Rows may be
// split across calls.
func (s *Stream) WritePixelData(p []byte) error {
	if s.win.Empty() {
		return errors.New("displaytest: no window")
	}
	s.Writes = append(s.Writes, append([]byte(nil), p...))
	s.pending = append(s.pending, p...)
	f := s.Buf.Format()
	w := s.win.Dx()
	stride := f.Stride(w)
	for len(s.pending) >= stride {
		if s.row >= s.win.Dy() {
			return fmt.Errorf("displaytest: %d bytes past the end of window %v", len(s.pending), s.win)
		}
		src := framebuf.Wrap(s.pending[:stride], w, 1, f)
		s.Buf.Blit(src, s.win.Min.X, s.win.Min.Y+s.row, framebuf.NoKey, nil)
		s.pending = s.pending[stride:]
		s.row++
	}
	return nil
}

// Written returns the number of bytes written into the current window.
func (s *Stream) Written() int {
	return s.row*s.Buf.Format().Stride(s.win.Dx()) + len(s.pending)
}

// Bytes returns the total number of bytes written since creation.
func (s *Stream) Bytes() int {
	n := 0
	for _, w := range s.Writes {
		n += len(w)
	}
	return n
}
