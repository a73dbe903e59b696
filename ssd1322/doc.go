// Package ssd1322 controls a SSD1322 OLED display via SPI.
//
// The SSD1322 is a 4-bit grayscale OLED controller supporting up to 480×128 pixels.
// The driver keeps a GS4_HMSB frame buffer on the host and implements both the
// display.Drawer interface from periph.io and easydisplay.BufferedTarget.
//
// # Display Characteristics
//
// - 4-bit grayscale with 16 intensity levels (0-15)
// - Support for various resolutions (typically 256×64 or 128×64)
// - Hardware scrolling support (horizontal only)
// - Adjustable contrast (0-255)
// - Display inversion
// - 480-column internal RAM with automatic centering for smaller displays
//
// # Hardware Connection
//
// Connect the SSD1322 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V (or 5V depending on display)
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RES         → Optional: GPIO for hardware reset
//
// # Basic Usage
//
//	host.Init()
//	port, _ := spireg.Open("")
//	dev, _ := ssd1322.NewSPI(port, gpioreg.ByName("GPIO25"), &ssd1322.Opts{
//		W:   256,
//		H:   64,
//		RST: gpioreg.ByName("GPIO24"), // Optional
//	})
//	defer dev.Halt()
//
//	disp, _ := easydisplay.New(dev, &easydisplay.Opts{
//		Font:      "fonts/text_lite_16px_2312.v3.bmf",
//		Color:     15,
//		HalfWidth: true,
//		Show:      true,
//	})
//	disp.Text("Hello 世界", 0, 0)
//
// With RST set the driver pulls it low for 200ms and high for 200ms before
// initializing. Without it the display relies on its power-on reset.
//
// # Drawing
//
// Fill, SetPixel and Blit only change the host frame buffer. Flush compares it
// with the frame last sent and writes the minimal bounding rectangle of the
// changes, so small updates cost little bus time. Draw renders any image into
// the buffer and flushes it. Write sends a full raw frame directly:
//
//	pixels := make([]byte, 256*64/2) // 8192 bytes for 256×64
//	dev.Write(pixels)
//
// Standard Go colors are converted to the 16 gray levels by luminance.
//
// # Hardware Scrolling
//
//	dev.ScrollHorizontal(0, 63, ssd1322.Speed10Frames, false)
//	time.Sleep(5 * time.Second)
//	dev.StopScroll()
//
// # Display Resolution
//
// Width must be even and ≤480. Height must be ≤128.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/SSD1322.pdf
package ssd1322
