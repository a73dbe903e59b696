// Package easydisplay draws UTF-8 text and images on small displays.
//
// Text is rendered from .bmf bitmap fonts, which hold one square 1-bit glyph
// per character and are read from disk on demand, so fonts with thousands of
// CJK characters fit devices with little memory. Images are read from PBM
// (P4, P6), 24-bit BMP and DAT files in small chunks.
//
// # Targets
//
// A Display draws on a Target. Two kinds are supported:
//
//   - BufferedTarget keeps a frame buffer in host memory. Glyphs and image
//     bands are blitted into it, which allows a transparent color key. Show
//     pushes the buffer to the panel.
//   - StreamingTarget has no frame buffer. Each glyph or image region is sent
//     as an address window followed by raw pixel data in the target format.
//
// A target implementing both is used as a BufferedTarget. The ssd1322
// subpackage is a buffered driver. MemoryTarget, DrawerTarget and
// DisplayerTarget adapt an in-memory buffer, any periph.io display.Drawer and
// any TinyGo drivers.Displayer.
//
// # Pixel formats
//
// Targets use one of the framebuf formats:
//
//	MonoHLSB  1 bit per pixel, MSB is the leftmost pixel
//	RGB565    16 bits per pixel, big-endian
//	GS4HMSB   4 bits per pixel, high nibble is the leftmost pixel
//
// Colors are passed in the target format. A glyph or 1-bit image maps its set
// bits to the foreground color and its clear bits to the background color;
// Invert swaps them.
//
// # Basic Usage
//
//	dev, _ := ssd1322.NewSPI(port, dc, &ssd1322.Opts{W: 256, H: 64})
//	opts := easydisplay.DefaultOpts()
//	opts.Font = "text_lite_16px_2312.v3.bmf"
//	opts.Color = 15
//	opts.Show = true
//	disp, _ := easydisplay.New(dev, &opts)
//	defer disp.Close()
//
//	disp.Text("温度 23.5°C", 0, 0, easydisplay.WithClear(true))
//	disp.PBMFile("logo.pbm", 200, 0, easydisplay.WithInvert(true))
//
// Options given to a call override the Display defaults for that call only.
//
// # Text layout
//
// The cursor starts at (x, y) and advances by the glyph size, or by half of it
// for ASCII characters in half width mode. A newline returns to x and moves
// down one line. A tab moves to the next multiple of the glyph size, keeping
// the alignment of the starting x. Control characters below 0x10 are skipped.
// With auto wrap enabled a character that would cross the right edge starts a
// new line; otherwise characters outside the display are dropped.
//
// # Fonts
//
// The bmf subpackage reads and builds .bmf fonts. The bmfgen command turns a
// TrueType or OpenType font into one holding just the needed characters.
// Characters missing from a font are drawn as a placeholder box.
package easydisplay
