package easydisplay

import (
	"image"
	"image/color"
	"image/draw"
	"slices"
	"strings"
	"testing"

	"periph.io/x/conn/v3/display"
	"tinygo.org/x/drivers"

	"github.com/flavioheleno/easydisplay/framebuf"
)

var (
	_ BufferedTarget    = (*MemoryTarget)(nil)
	_ BufferedTarget    = (*DrawerTarget)(nil)
	_ BufferedTarget    = (*DisplayerTarget)(nil)
	_ display.Drawer    = (*fakeDrawer)(nil)
	_ drivers.Displayer = (*fakeDisplayer)(nil)
)

// fakeDrawer is a periph display.Drawer drawing into an RGBA image.
type fakeDrawer struct {
	img   *image.RGBA
	draws []image.Rectangle
}

func (f *fakeDrawer) String() string          { return "fake" }
func (f *fakeDrawer) Halt() error             { return nil }
func (f *fakeDrawer) ColorModel() color.Model { return color.RGBAModel }
func (f *fakeDrawer) Bounds() image.Rectangle { return f.img.Bounds() }

func (f *fakeDrawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	f.draws = append(f.draws, r)
	draw.Draw(f.img, r, src, sp, draw.Src)
	return nil
}

// fakeDisplayer is a TinyGo drivers.Displayer recording its pixels.
type fakeDisplayer struct {
	w, h     int16
	px       map[image.Point]color.RGBA
	displays int
}

func (f *fakeDisplayer) Size() (int16, int16) { return f.w, f.h }
func (f *fakeDisplayer) Display() error       { f.displays++; return nil }

func (f *fakeDisplayer) SetPixel(x, y int16, c color.RGBA) {
	f.px[image.Pt(int(x), int(y))] = c
}

func TestDrawerTarget(t *testing.T) {
	dev := &fakeDrawer{img: image.NewRGBA(image.Rect(0, 0, 32, 16))}
	tgt := NewDrawerTarget(dev, framebuf.RGB565)
	if got := tgt.Bounds(); got != dev.Bounds() {
		t.Fatalf("Bounds() = %v, want %v", got, dev.Bounds())
	}
	o := DefaultOpts()
	o.Color = 0xF800
	d := newDisplay(t, tgt, &o)

	if err := d.Text("A", 0, 0); err != nil {
		t.Fatal(err)
	}
	if len(dev.draws) != 0 {
		t.Fatalf("drawn before Show: %v", dev.draws)
	}
	if err := d.Show(); err != nil {
		t.Fatal(err)
	}
	if want := []image.Rectangle{dev.Bounds()}; !slices.Equal(dev.draws, want) {
		t.Fatalf("draws = %v, want %v", dev.draws, want)
	}
	red := color.RGBA{R: 0xFF, A: 0xFF}
	black := color.RGBA{A: 0xFF}
	for _, tc := range []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red},
		{15, 15, red},
		{16, 0, black},
		{31, 15, black},
	} {
		if got := dev.img.RGBAAt(tc.x, tc.y); got != tc.want {
			t.Errorf("device pixel (%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDisplayerTarget(t *testing.T) {
	dev := &fakeDisplayer{w: 16, h: 2, px: map[image.Point]color.RGBA{}}
	tgt := NewDisplayerTarget(dev, framebuf.MonoHLSB)
	if got, want := tgt.Bounds(), image.Rect(0, 0, 16, 2); got != want {
		t.Fatalf("Bounds() = %v, want %v", got, want)
	}
	d := newDisplay(t, tgt, monoOpts())

	if err := d.PBM(strings.NewReader("P4\n8 1\n\xA0"), 4, 1, WithShow(true)); err != nil {
		t.Fatal(err)
	}
	if dev.displays != 1 {
		t.Errorf("Display called %d times, want 1", dev.displays)
	}
	if len(dev.px) != 32 {
		t.Fatalf("%d pixels sent, want the whole 16x2 screen", len(dev.px))
	}
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black := color.RGBA{A: 0xFF}
	for p, c := range dev.px {
		want := black
		if p == image.Pt(4, 1) || p == image.Pt(6, 1) {
			want = white
		}
		if c != want {
			t.Errorf("device pixel %v = %v, want %v", p, c, want)
		}
	}
}
