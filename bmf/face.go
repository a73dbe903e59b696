package bmf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// LoadFace loads a TrueType or OpenType font for rasterizing at size pixels
// per em. For .ttc collections the first font is used. Hinting is disabled so
// outlines are sampled as designed.
func LoadFace(path string, size int) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFace(data, strings.EqualFold(filepath.Ext(path), ".ttc"), size)
}

// ParseFace is like LoadFace for font data already in memory.
func ParseFace(data []byte, collection bool, size int) (font.Face, error) {
	var (
		f   *opentype.Font
		err error
	)
	if collection {
		var c *opentype.Collection
		if c, err = opentype.ParseCollection(data); err == nil {
			f, err = c.Font(0)
		}
	} else {
		f, err = opentype.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("bmf: parse font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
