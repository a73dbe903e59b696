package easydisplay

import (
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"tinygo.org/x/drivers"

	"github.com/flavioheleno/easydisplay/framebuf"
)

// Target is the display surface a Display renders onto. Colors are native
// values in the target Format.
type Target interface {
	// Bounds returns the display size; Min is expected to be (0, 0).
	Bounds() image.Rectangle
	// Format returns the native pixel format.
	Format() framebuf.Format
	// Fill sets every pixel to c.
	Fill(c framebuf.Color) error
	// SetPixel sets a single pixel.
	SetPixel(x, y int, c framebuf.Color) error
	// Flush pushes pending changes to the device. Streaming targets
	// usually have nothing to do.
	Flush() error
}

// BufferedTarget is a target backed by a host side frame buffer supporting
// composition with a transparency key and a palette.
type BufferedTarget interface {
	Target
	// Blit composites src at (x, y); see framebuf.Buffer.Blit.
	Blit(src *framebuf.Buffer, x, y int, key framebuf.Key, pal *framebuf.Palette) error
}

// StreamingTarget is a target without host side buffer. Pixels are sent in
// target format, row-major, into a window set beforehand.
type StreamingTarget interface {
	Target
	// SetWindow selects the inclusive rectangle (x0, y0)-(x1, y1) that
	// following writes fill.
	SetWindow(x0, y0, x1, y1 int) error
	// WritePixelData streams pixel data into the current window.
	WritePixelData(p []byte) error
}

// RGBConverter is implemented by targets with their own color conversion.
// Without it framebuf.Format.FromRGB is used.
type RGBConverter interface {
	RGBToNative(r, g, b uint8) framebuf.Color
}

// MemoryTarget is a BufferedTarget that only keeps pixels in memory. It is
// useful for off-screen composition and previews.
type MemoryTarget struct {
	buf *framebuf.Buffer
}

// NewMemoryTarget returns a w×h in-memory target.
func NewMemoryTarget(w, h int, f framebuf.Format) *MemoryTarget {
	return &MemoryTarget{buf: framebuf.New(w, h, f)}
}

// Buffer returns the backing frame buffer.
func (m *MemoryTarget) Buffer() *framebuf.Buffer { return m.buf }

// Bounds implements Target.
func (m *MemoryTarget) Bounds() image.Rectangle { return m.buf.Bounds() }

// Format implements Target.
func (m *MemoryTarget) Format() framebuf.Format { return m.buf.Format() }

// Fill implements Target.
func (m *MemoryTarget) Fill(c framebuf.Color) error {
	m.buf.Fill(c)
	return nil
}

// SetPixel implements Target.
func (m *MemoryTarget) SetPixel(x, y int, c framebuf.Color) error {
	m.buf.SetPixel(x, y, c)
	return nil
}

// Flush does nothing; the pixels are already in memory.
func (m *MemoryTarget) Flush() error { return nil }

// Blit implements BufferedTarget.
func (m *MemoryTarget) Blit(src *framebuf.Buffer, x, y int, key framebuf.Key, pal *framebuf.Palette) error {
	m.buf.Blit(src, x, y, key, pal)
	return nil
}

// DrawerTarget renders into a frame buffer and flushes it to any periph.io
// display.Drawer.
type DrawerTarget struct {
	MemoryTarget
	dev display.Drawer
}

// NewDrawerTarget returns a buffered target for dev using frame buffer format
// f. Flush draws the whole buffer; the device converts colors with its own
// color model.
func NewDrawerTarget(dev display.Drawer, f framebuf.Format) *DrawerTarget {
	r := dev.Bounds()
	return &DrawerTarget{
		MemoryTarget: *NewMemoryTarget(r.Dx(), r.Dy(), f),
		dev:          dev,
	}
}

// Flush draws the frame buffer onto the device.
func (d *DrawerTarget) Flush() error {
	return d.dev.Draw(d.dev.Bounds(), d.buf, image.Point{})
}

// DisplayerTarget renders into a frame buffer and flushes it to a TinyGo
// drivers.Displayer.
type DisplayerTarget struct {
	MemoryTarget
	dev drivers.Displayer
}

// NewDisplayerTarget returns a buffered target for dev using frame buffer
// format f.
func NewDisplayerTarget(dev drivers.Displayer, f framebuf.Format) *DisplayerTarget {
	w, h := dev.Size()
	return &DisplayerTarget{
		MemoryTarget: *NewMemoryTarget(int(w), int(h), f),
		dev:          dev,
	}
}

// Flush copies every pixel to the device and refreshes it.
func (d *DisplayerTarget) Flush() error {
	r := d.buf.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.RGBAModel.Convert(d.buf.At(x, y)).(color.RGBA)
			d.dev.SetPixel(int16(x), int16(y), c)
		}
	}
	return d.dev.Display()
}
