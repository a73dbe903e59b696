package easydisplay

import "github.com/flavioheleno/easydisplay/framebuf"

// params are the drawing parameters of one call.
type params struct {
	color, bg   framebuf.Color
	key         framebuf.Key
	size        int
	show        bool
	clear       bool
	invert      bool
	autoWrap    bool
	halfWidth   bool
	lineSpacing int
}

// palette returns the palette used for 1-bit sources.
func (p *params) palette() framebuf.Palette {
	pal := framebuf.NewPalette(p.color, p.bg)
	if p.invert {
		pal = pal.Swap()
	}
	return pal
}

// Option overrides a Display default for a single call.
type Option func(*params)

// WithColor sets the foreground color.
func WithColor(c framebuf.Color) Option { return func(p *params) { p.color = c } }

// WithBackground sets the background color of glyphs and 1-bit images.
func WithBackground(c framebuf.Color) Option { return func(p *params) { p.bg = c } }

// WithKey sets the transparent color; framebuf.NoKey disables it.
func WithKey(k framebuf.Key) Option { return func(p *params) { p.key = k } }

// WithSize draws glyphs at size pixels, rescaling from the font cell size.
func WithSize(size int) Option { return func(p *params) { p.size = size } }

// WithInvert swaps the foreground and background colors.
func WithInvert(v bool) Option { return func(p *params) { p.invert = v } }

// WithShow flushes the target once the call is done.
func WithShow(v bool) Option { return func(p *params) { p.show = v } }

// WithClear fills the target with the background color before drawing.
func WithClear(v bool) Option { return func(p *params) { p.clear = v } }

// WithAutoWrap starts a new line when a character would cross the right edge.
func WithAutoWrap(v bool) Option { return func(p *params) { p.autoWrap = v } }

// WithHalfWidth makes ASCII characters outside the wide set advance by half
// the glyph size.
func WithHalfWidth(v bool) Option { return func(p *params) { p.halfWidth = v } }

// WithLineSpacing adds n pixels between lines.
func WithLineSpacing(n int) Option { return func(p *params) { p.lineSpacing = n } }

func (d *Display) params(opts []Option) params {
	p := d.def
	for _, o := range opts {
		o(&p)
	}
	return p
}
