package framebuf

import (
	"image/color"
	"testing"
)

func TestGray4RGBA(t *testing.T) {
	tests := []struct {
		name string
		gray Gray4
		want uint32
	}{
		{"black", Gray4{Y: 0}, 0x0000},
		{"dark gray", Gray4{Y: 5}, 0x5555},
		{"mid gray", Gray4{Y: 8}, 0x8888},
		{"white", Gray4{Y: 15}, 0xFFFF},
		{"mask ignored", Gray4{Y: 0x5F}, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.gray.RGBA()
			if r != tt.want || g != tt.want || b != tt.want || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, ffff)",
					r, g, b, a, tt.want, tt.want, tt.want)
			}
		})
	}
}

func TestGray4ModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  uint8
	}{
		{"gray4 passthrough", Gray4{Y: 7}, 7},
		{"black", color.Black, 0},
		{"white", color.White, 15},
		{"gray rgb", color.RGBA{0x88, 0x88, 0x88, 0xFF}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Gray4Model.Convert(tt.input).(Gray4)
			if result.Y != tt.want {
				t.Errorf("Gray4Model.Convert(%v).Y = %d, want %d", tt.input, result.Y, tt.want)
			}
		})
	}
}

func TestRGBTo565(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    Color
	}{
		{0, 0, 0, 0x0000},
		{0xFF, 0xFF, 0xFF, 0xFFFF},
		{0xFF, 0, 0, 0xF800},
		{0, 0xFF, 0, 0x07E0},
		{0, 0, 0xFF, 0x001F},
	}
	for _, tt := range tests {
		if got := RGBTo565(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("RGBTo565(%d, %d, %d) = %#04x, want %#04x", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestRGB565ColorRoundTrip(t *testing.T) {
	for _, c := range []RGB565Color{0x0000, 0xFFFF, 0xF800, 0x07E0, 0x001F, 0x8410} {
		if got := RGB565Model.Convert(color.RGBAModel.Convert(c)).(RGB565Color); got != c {
			t.Errorf("round trip of %#04x = %#04x", uint16(c), uint16(got))
		}
	}
}

func TestMonoThreshold(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    bool
	}{
		{0, 0, 0, false},
		{127, 127, 127, true},
		{126, 127, 127, false},
		{255, 255, 0, true},
		{255, 0, 0, false},
	}
	for _, tt := range tests {
		if got := Mono(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("Mono(%d, %d, %d) = %t, want %t", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestFormatFromRGB(t *testing.T) {
	if got := RGB565.FromRGB(0xFF, 0xFF, 0xFF); got != 0xFFFF {
		t.Errorf("RGB565 white = %#04x", got)
	}
	if got := GS4HMSB.FromRGB(0xFF, 0xFF, 0xFF); got != 15 {
		t.Errorf("GS4HMSB white = %d", got)
	}
	if got := MonoHLSB.FromRGB(0x10, 0x10, 0x10); got != 0 {
		t.Errorf("MonoHLSB dark = %d", got)
	}
}
