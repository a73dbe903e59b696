package easydisplay

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/flavioheleno/easydisplay/bmf"
	"github.com/flavioheleno/easydisplay/framebuf"
)

// Opts holds the defaults of a Display. Individual Text and image calls can
// override the drawing fields with Option values.
type Opts struct {
	// Font is the path of a .bmf font loaded by New. Empty means no font;
	// one can be set later with LoadFont or SetFont.
	Font string

	Color      framebuf.Color // Foreground
	Background framebuf.Color // Background, also used by Clear
	// Key is the transparent color in buffered mode. It is only used when
	// UseKey is set.
	Key    framebuf.Color
	UseKey bool

	Show   bool // Flush after each call
	Clear  bool // Fill with Background before each call
	Invert bool // Swap foreground and background

	Size        int  // Glyph size in pixels; 0 uses the font cell size
	AutoWrap    bool // Break lines at the right edge
	HalfWidth   bool // ASCII advances by half the glyph size
	LineSpacing int  // Extra pixels between lines

	// WideRunes are ASCII characters that advance a full cell even in
	// half width mode.
	WideRunes string
	// ReadSize is the chunk size in bytes used when reading image files.
	ReadSize int

	Logger logrus.FieldLogger
}

// DefaultOpts returns the options used when New is passed nil.
func DefaultOpts() Opts {
	return Opts{
		Color:     0xFFFF,
		HalfWidth: true,
		WideRunes: "MOQVWXmw",
		ReadSize:  32,
	}
}

// Display renders text and images onto a Target.
type Display struct {
	target   Target
	buffered BufferedTarget  // Set in buffered mode
	stream   StreamingTarget // Set in streaming mode
	format   framebuf.Format
	rect     image.Rectangle

	font     *bmf.Font
	ownsFont bool

	def      params
	wide     map[rune]bool
	readSize int
	log      logrus.FieldLogger
}

// New returns a Display drawing on t. Targets implementing BufferedTarget are
// drawn through their frame buffer; StreamingTarget ones receive windows of
// pixel data.
func New(t Target, opts *Opts) (*Display, error) {
	if opts == nil {
		o := DefaultOpts()
		opts = &o
	}
	key := framebuf.NoKey
	if opts.UseKey {
		key = framebuf.Key(opts.Key)
	}
	d := &Display{
		target: t,
		format: t.Format(),
		rect:   t.Bounds(),
		def: params{
			color:       opts.Color,
			bg:          opts.Background,
			key:         key,
			show:        opts.Show,
			clear:       opts.Clear,
			invert:      opts.Invert,
			size:        opts.Size,
			autoWrap:    opts.AutoWrap,
			halfWidth:   opts.HalfWidth,
			lineSpacing: opts.LineSpacing,
		},
		wide:     make(map[rune]bool),
		readSize: opts.ReadSize,
		log:      opts.Logger,
	}
	switch tt := t.(type) {
	case BufferedTarget:
		d.buffered = tt
	case StreamingTarget:
		d.stream = tt
	default:
		return nil, ErrTarget
	}
	if d.rect.Empty() {
		return nil, fmt.Errorf("easydisplay: empty target bounds %v", d.rect)
	}
	if opts.Size < 0 {
		return nil, fmt.Errorf("easydisplay: invalid glyph size %d", opts.Size)
	}
	if d.readSize <= 0 {
		d.readSize = DefaultOpts().ReadSize
	}
	if d.log == nil {
		d.log = discard
	}
	for _, r := range opts.WideRunes {
		d.wide[r] = true
	}
	d.log = d.log.WithFields(logrus.Fields{
		"format": d.format,
		"size":   fmt.Sprintf("%dx%d", d.rect.Dx(), d.rect.Dy()),
	})
	if opts.Font != "" {
		if err := d.LoadFont(opts.Font); err != nil {
			return nil, err
		}
	}
	d.log.WithField("buffered", d.buffered != nil).Debug("display ready")
	return d, nil
}

// Buffered reports whether the display draws through a frame buffer.
func (d *Display) Buffered() bool {
	return d.buffered != nil
}

// Bounds returns the target bounds.
func (d *Display) Bounds() image.Rectangle {
	return d.rect
}

// LoadFont opens the .bmf font at path and makes it current. A font
// previously opened by LoadFont is closed.
func (d *Display) LoadFont(path string) error {
	f, err := bmf.Open(path)
	if err != nil {
		return err
	}
	f.SetLogger(d.log.WithField("font", path))
	d.setFont(f, true)
	d.log.WithFields(logrus.Fields{
		"font":   path,
		"cell":   f.CellSize(),
		"glyphs": f.Len(),
	}).Debug("font loaded")
	return nil
}

// SetFont makes f the current font. The caller keeps ownership of f.
func (d *Display) SetFont(f *bmf.Font) {
	d.setFont(f, false)
}

// Font returns the current font, or nil.
func (d *Display) Font() *bmf.Font {
	return d.font
}

func (d *Display) setFont(f *bmf.Font, owned bool) {
	if d.ownsFont && d.font != nil && d.font != f {
		d.font.Close()
	}
	d.font = f
	d.ownsFont = owned
}

// Clear fills the target with the background color.
func (d *Display) Clear() error {
	return d.target.Fill(d.def.bg)
}

// Show flushes pending changes to the device.
func (d *Display) Show() error {
	return d.target.Flush()
}

// Close closes the font if it was opened by LoadFont.
func (d *Display) Close() error {
	if d.ownsFont && d.font != nil {
		err := d.font.Close()
		d.font = nil
		return err
	}
	return nil
}

// begin clears the target when requested; it is called once the input has
// been validated.
func (d *Display) begin(p *params) error {
	if p.clear {
		return d.target.Fill(p.bg)
	}
	return nil
}

// end flushes the target when requested.
func (d *Display) end(p *params) error {
	if p.show {
		return d.target.Flush()
	}
	return nil
}
