package ssd1322

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/flavioheleno/easydisplay/framebuf"
)

var errHalted = errors.New("ssd1322: halted")

// Opts is the configuration for the SSD1322 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 256, must be even and ≤480)
	H int // Height (default: 64, must be ≤128)

	// Rotation and mirroring
	Rotated       bool // 180° rotation
	Sequential    bool // Sequential COM pin configuration
	SwapTopBottom bool // Swap top/bottom display halves

	// Optional hardware reset pin
	RST gpio.PinIO // Reset pin (optional, nil if not used)

	// Logger receives flush diagnostics at debug level (optional)
	Logger logrus.FieldLogger
}

// Dev is the device handle for the SSD1322 display.
//
// Dev keeps a 4-bit frame buffer on the host. Drawing operations only change
// that buffer; Flush sends the bounding box of what changed since the last
// flush.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinIO  // Reset pin (optional)

	// Display geometry
	rect         image.Rectangle
	columnOffset int // For centering on 480-column RAM

	// Pixel buffers
	fb    *framebuf.Buffer // Frame being composed
	shown *framebuf.Buffer // Frame in display RAM

	halted bool
	log    logrus.FieldLogger
}

// NewSPI creates a new SSD1322 device connected via SPI.
//
// The SPI port is configured for 10MHz, Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The dc (Data/Command) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults (256x64 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 256, H: 64}
	}
	if opts.W <= 0 || opts.W%2 != 0 || opts.W > 480 {
		return nil, errors.New("ssd1322: width must be even and between 2 and 480")
	}
	if opts.H <= 0 || opts.H > 128 {
		return nil, errors.New("ssd1322: height must be between 1 and 128")
	}

	// Mode3 works too; the controller accepts up to 10MHz serial clock.
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1322: connect: %w", err)
	}

	d := &Dev{
		c:            c,
		dc:           dc,
		rst:          opts.RST,
		rect:         image.Rect(0, 0, opts.W, opts.H),
		columnOffset: (480 - opts.W) / 2,
		fb:           framebuf.New(opts.W, opts.H, framebuf.GS4HMSB),
		shown:        framebuf.New(opts.W, opts.H, framebuf.GS4HMSB),
		log:          opts.Logger,
	}
	if d.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.log = l
	}
	d.log = d.log.WithField("dev", d.String())

	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST low: %w", err)
		}
		time.Sleep(200 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST high: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
	}

	cmds := []byte{
		0xFD, 0x12, // Unlock command codes
		0xAE,       // Display OFF
		0xB3, 0xF2, // Clock divider and oscillator frequency
		0xCA, byte(opts.H - 1), // MUX ratio
		0xA2, 0x00, // Display offset
		0xA1, 0x00, // Start line
	}

	remap1, remap2 := byte(0x14), byte(0x11)
	if opts.Rotated {
		remap1 = 0x06
	}
	if opts.Sequential {
		remap2 |= 0x01
	}
	if opts.SwapTopBottom {
		remap2 |= 0x02
	}

	cmds = append(cmds,
		0xA0, remap1, remap2, // Remap and dual COM mode
		0xAB, 0x01, // Function selection (enable internal VDD)
		0xB4, 0xA0, 0xFD, // VSL (display enhancement)
		0xC1, 0xFF, // Contrast (max)
		0xC7, 0x0F, // Master contrast
		0xB9,       // Use default grayscale table
		0xB1, 0xE2, // Phase length
		0xD1, 0x82, 0x20, // Display enhancements
		0xBB, 0x1F, // Pre-charge voltage
		0xB6, 0x08, // Second pre-charge period
		0xBE, 0x07, // VCOMH voltage
		0xA6, // Normal display mode
		0xA9, // Exit partial display mode
	)

	if err := d.sendCommands(cmds); err != nil {
		return err
	}
	// RAM content is undefined after reset.
	if err := d.writeRect(d.rect, d.shown.Pix); err != nil {
		return err
	}
	return d.sendCommand(0xAF) // Display ON
}

func (d *Dev) sendCommand(cmd byte) error {
	return d.sendCommands([]byte{cmd})
}

func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// writeRect writes packed pixels to region r of the display RAM. r must
// start and end on even columns.
func (d *Dev) writeRect(r image.Rectangle, pixels []byte) error {
	// Column addresses count pixel pairs.
	colStart := byte((r.Min.X + d.columnOffset) / 2)
	colEnd := byte((r.Max.X - 1 + d.columnOffset) / 2)

	commands := []byte{
		0x15, colStart, colEnd, // Column address
		0x75, byte(r.Min.Y), byte(r.Max.Y - 1), // Row address
		0x5C, // Enable write to RAM
	}
	if err := d.sendCommands(commands); err != nil {
		return err
	}
	return d.sendData(pixels)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return framebuf.Gray4Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Format returns the pixel layout of the frame buffer.
func (d *Dev) Format() framebuf.Format {
	return framebuf.GS4HMSB
}

// Buffer returns the frame buffer. Changes show up on the next Flush.
func (d *Dev) Buffer() *framebuf.Buffer {
	return d.fb
}

// RGBToNative returns the gray level of an RGB color.
func (d *Dev) RGBToNative(r, g, b uint8) framebuf.Color {
	return framebuf.Color(framebuf.Luma4(r, g, b))
}

// Fill sets every pixel of the frame buffer to gray level c.
func (d *Dev) Fill(c framebuf.Color) error {
	d.fb.Fill(c)
	return nil
}

// SetPixel sets a pixel of the frame buffer to gray level c.
func (d *Dev) SetPixel(x, y int, c framebuf.Color) error {
	d.fb.SetPixel(x, y, c)
	return nil
}

// Blit composites src onto the frame buffer; see framebuf.Buffer.Blit.
func (d *Dev) Blit(src *framebuf.Buffer, x, y int, key framebuf.Key, pal *framebuf.Palette) error {
	d.fb.Blit(src, x, y, key, pal)
	return nil
}

// Write writes raw GS4_HMSB pixel data covering the whole display.
// The data must be exactly d.rect.Dx() * d.rect.Dy() / 2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	if len(pixels) != len(d.fb.Pix) {
		return 0, errors.New("ssd1322: invalid buffer size")
	}
	if err := d.writeRect(d.rect, pixels); err != nil {
		return 0, err
	}
	copy(d.fb.Pix, pixels)
	copy(d.shown.Pix, pixels)
	return len(pixels), nil
}

// Draw draws src onto the frame buffer and flushes it. It implements
// display.Drawer.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Full frame in native format.
	if b, ok := src.(*framebuf.Buffer); ok && b.Format() == framebuf.GS4HMSB &&
		dst == d.rect && sp == (image.Point{}) && b.Rect == d.rect {
		_, err := d.Write(b.Pix[:len(d.fb.Pix)])
		return err
	}

	draw.Draw(d.fb, dst, src, sp, draw.Src)
	return d.Flush()
}

// Flush sends the smallest rectangle covering every pixel changed since the
// last flush.
func (d *Dev) Flush() error {
	if d.halted {
		return errHalted
	}
	r := d.calculateDiff()
	if r.Empty() {
		return nil
	}
	d.log.WithField("rect", r).Debug("flush")
	if err := d.writeRect(r, d.fb.Region(r)); err != nil {
		return err
	}
	copy(d.shown.Pix, d.fb.Pix)
	return nil
}

// calculateDiff compares the composed and shown frames and returns the
// bounding box of the changed pixels, widened to whole bytes. It is empty when
// nothing changed.
func (d *Dev) calculateDiff() image.Rectangle {
	stride := d.fb.Stride
	minRow, maxRow := d.rect.Dy(), -1
	minByte, maxByte := stride, -1

	for y := 0; y < d.rect.Dy(); y++ {
		next := d.fb.Pix[y*stride : (y+1)*stride]
		last := d.shown.Pix[y*stride : (y+1)*stride]
		if bytes.Equal(next, last) {
			continue
		}
		minRow = min(minRow, y)
		maxRow = y
		for x := range next {
			if next[x] != last[x] {
				minByte = min(minByte, x)
				maxByte = max(maxByte, x)
			}
		}
	}
	if maxRow < 0 {
		return image.Rectangle{}
	}
	// Each byte holds two pixels.
	return image.Rect(minByte*2, minRow, (maxByte+1)*2, maxRow+1)
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errHalted
	}
	return d.sendCommands([]byte{0xC1, contrast})
}

// Invert inverts the display colors (black becomes white and vice versa).
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(0xA6) // Normal display
	if invert {
		mode = 0xA7 // Inverted display
	}
	return d.sendCommand(mode)
}

// Halt powers off the display.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommand(0xAE) // Display OFF
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1322.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// ScrollSpeed defines the horizontal scroll frame rate.
type ScrollSpeed byte

const (
	// Scroll frame rates (in display refresh cycles)
	Speed6Frames   ScrollSpeed = 0x00
	Speed10Frames  ScrollSpeed = 0x01
	Speed100Frames ScrollSpeed = 0x02
	Speed200Frames ScrollSpeed = 0x03
)

// ScrollHorizontal starts horizontal scrolling on the display.
// startRow and endRow specify the scroll region (must be >= 0 and < height).
// If right is true, scrolls right; otherwise scrolls left.
func (d *Dev) ScrollHorizontal(startRow, endRow byte, speed ScrollSpeed, right bool) error {
	if d.halted {
		return errHalted
	}
	if int(startRow) >= d.rect.Dy() || int(endRow) >= d.rect.Dy() {
		return errors.New("ssd1322: scroll row out of range")
	}

	scrollCmd := byte(0x26) // Left
	if right {
		scrollCmd = 0x27 // Right
	}
	return d.sendCommands([]byte{
		scrollCmd,
		0x00,        // Dummy byte (always 0x00)
		startRow,    // Start row
		byte(speed), // Scroll speed
		endRow,      // End row
		0x00, 0x00,  // Dummy bytes
		0x2F, // Activate scroll
	})
}

// StopScroll stops all scrolling and resets the display to normal operation.
func (d *Dev) StopScroll() error {
	if d.halted {
		return errHalted
	}
	return d.sendCommand(0x2E) // Deactivate scroll
}
