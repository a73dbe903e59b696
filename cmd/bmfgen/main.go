// Command bmfgen converts a TrueType or OpenType font into a .bmf bitmap font
// holding only the characters an application needs.
//
//	bmfgen -f NotoSansSC.otf -T charset.txt -s 16
//	bmfgen -f DejaVuSans.ttf -t "0123456789:." -s 24 -y 2 -o clock.bmf
//
// With --dump it prints the glyphs of an existing font file instead:
//
//	bmfgen --dump clock.bmf -t 12
package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/flavioheleno/easydisplay/bmf"
)

type options struct {
	Font     flags.Filename `short:"f" long:"font"      description:"TrueType or OpenType font to rasterize"`
	Text     string         `short:"t" long:"text"      description:"characters to include"`
	TextFile flags.Filename `short:"T" long:"text-file" description:"file holding the characters to include"`
	Size     int            `short:"s" long:"size"      description:"glyph size in pixels" default:"16"`
	Xoffset  int            `short:"x" long:"xoffset"   description:"x offset of the glyphs in the cell" default:"0"`
	Yoffset  int            `short:"y" long:"yoffset"   description:"y offset of the glyphs in the cell" default:"0"`
	Output   flags.Filename `short:"o" long:"output"    description:"output file (default: <font>-<count>-<size>.v3.bmf)"`
	Dump     flags.Filename `long:"dump"                description:"print the glyphs of an existing .bmf file"`
	Verbose  bool           `short:"v" long:"verbose"   description:"show debug information"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	log := logrus.New()
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if len(args) > 0 {
		log.Fatal("do not provide additional parameters")
	}

	if opts.Dump != "" {
		err = dump(os.Stdout, string(opts.Dump), opts.Text)
	} else {
		err = generate(&opts, log)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func generate(opts *options, log logrus.FieldLogger) error {
	if opts.Font == "" {
		return errors.New("a font is required (-f)")
	}
	chars, err := charset(opts.Text, string(opts.TextFile))
	if err != nil {
		return err
	}

	face, err := bmf.LoadFace(string(opts.Font), opts.Size)
	if err != nil {
		return err
	}
	defer face.Close()

	out := string(opts.Output)
	if out == "" {
		out = defaultOutput(string(opts.Font), chars, opts.Size)
	}
	log.WithFields(logrus.Fields{
		"font":   opts.Font,
		"chars":  len(chars),
		"size":   opts.Size,
		"output": out,
	}).Info("building font")

	info, err := bmf.BuildFile(out, face, chars, &bmf.BuildOpts{
		Size:   opts.Size,
		Offset: image.Pt(opts.Xoffset, opts.Yoffset),
		Logger: log,
	})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"glyphs":       info.Count,
		"cell":         info.CellSize,
		"bitmap_start": fmt.Sprintf("%#x", info.BitmapStart),
		"bytes":        info.Size,
	}).Info("done")
	return nil
}

// charset returns the characters given on the command line or read from a
// file. Line breaks in the file are ignored.
func charset(text, file string) ([]rune, error) {
	switch {
	case text != "" && file != "":
		return nil, errors.New("use either -t or -T, not both")
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		text = strings.NewReplacer("\r", "", "\n", "").Replace(string(b))
	}
	if text == "" {
		return nil, errors.New("no characters given (-t or -T)")
	}
	return []rune(text), nil
}

// defaultOutput names the output after the font, the number of distinct
// characters and the glyph size.
func defaultOutput(font string, chars []rune, size int) string {
	seen := make(map[rune]bool, len(chars))
	for _, r := range chars {
		if r > 0xFFFF {
			r = bmf.Replacement
		}
		seen[r] = true
	}
	base := strings.TrimSuffix(filepath.Base(font), filepath.Ext(font))
	return fmt.Sprintf("%s-%d-%d.v3.bmf", base, len(seen), size)
}

// dump prints glyphs of the font at path, one per block of text lines. All
// glyphs are printed when text is empty.
func dump(w io.Writer, path, text string) error {
	f, err := bmf.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	hdr := f.Header()
	fmt.Fprintf(w, "version %d, %d glyphs, %dx%d px, %d bytes each, bitmaps at %#x\n",
		hdr.Version, f.Len(), f.CellSize(), f.CellSize(), f.GlyphSize(), hdr.BitmapStart)

	runes := []rune(text)
	if len(runes) == 0 {
		if runes, err = f.Runes(); err != nil {
			return err
		}
	}
	size := f.CellSize()
	stride := (size + 7) / 8
	for _, r := range runes {
		bits, ok, err := f.Lookup(r)
		if err != nil {
			return err
		}
		note := ""
		if !ok {
			note = " (missing, fallback)"
			if bits, err = f.Glyph(r); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "\n%U %q%s\n", r, r, note)
		var sb strings.Builder
		for y := 0; y < size; y++ {
			sb.Reset()
			for x := 0; x < size; x++ {
				if bits[y*stride+x/8]&(0x80>>uint(x%8)) != 0 {
					sb.WriteByte('#')
				} else {
					sb.WriteByte('.')
				}
			}
			fmt.Fprintln(w, sb.String())
		}
	}
	return nil
}
