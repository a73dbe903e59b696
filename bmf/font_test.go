package bmf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// makeFont assembles a font file in memory. Glyph i is filled with byte i+1.
func makeFont(t *testing.T, cell int, runes []rune) []byte {
	t.Helper()
	glyphSize := (cell + 7) / 8 * cell
	hdr := Header{
		Version:     Version,
		BitmapStart: uint32(HeaderSize + 2*len(runes)),
		CellSize:    uint8(cell),
		GlyphSize:   uint8(glyphSize),
	}
	b, err := hdr.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range runes {
		b = append(b, byte(r>>8), byte(r))
	}
	for i := range runes {
		b = append(b, bytes.Repeat([]byte{byte(i + 1)}, glyphSize)...)
	}
	return b
}

func TestHeaderRoundTrip(t *testing.T) {
	in := Header{
		Version:     Version,
		MapMode:     7,
		BitmapStart: 0x012345,
		CellSize:    24,
		GlyphSize:   72,
		Reserved:    [7]byte{1, 2, 3, 4, 5, 6, 7},
	}
	b, err := in.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'B', 'M', 3, 7, 0x01, 0x23, 0x45, 24, 72, 1, 2, 3, 4, 5, 6, 7}
	if !bytes.Equal(b, want) {
		t.Fatalf("MarshalBinary = % X, want % X", b, want)
	}
	var out Header
	if err := out.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("UnmarshalBinary = %+v, want %+v", out, in)
	}
}

func TestHeaderBitmapStartOverflow(t *testing.T) {
	_, err := Header{Version: Version, BitmapStart: MaxBitmapStart + 1}.MarshalBinary()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FormatError", err)
	}
}

func TestNewFontValidation(t *testing.T) {
	good := makeFont(t, 16, []rune{'A'})

	badMarker := append([]byte(nil), good...)
	badMarker[1] = 'X'

	badVersion := append([]byte(nil), good...)
	badVersion[2] = 2

	oddMapMode := append([]byte(nil), good...)
	oddMapMode[3] = 9

	tests := []struct {
		name      string
		data      []byte
		wantField string
		wantValue any
	}{
		{"valid", good, "", nil},
		{"map mode not validated", oddMapMode, "", nil},
		{"bad marker", badMarker, "marker", nil},
		{"bad version", badVersion, "version", nil},
		{"truncated", good[:10], "header length", 10},
		{"empty", nil, "header length", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFont(bytes.NewReader(tt.data))
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("NewFont: %v", err)
				}
				return
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *FormatError", err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fe.Field, tt.wantField)
			}
			if tt.wantValue != nil && fe.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", fe.Value, tt.wantValue)
			}
		})
	}
}

func TestFormatErrorValue(t *testing.T) {
	data := makeFont(t, 16, []rune{'A'})
	data[2] = 4
	_, err := NewFont(bytes.NewReader(data))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FormatError", err)
	}
	if fe.Value != uint8(4) {
		t.Errorf("Value = %v, want 4", fe.Value)
	}
	if got, want := err.Error(), "bmf: invalid version: 4"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIndexBinarySearch(t *testing.T) {
	sets := [][]rune{
		{'A'},
		{'A', 'B'},
		{'0', 'A', 'a', 'z', 'é', '中'},
		{0x0000, 0x0001, 0x7FFF, 0xFFFE, 0xFFFF},
	}
	for _, runes := range sets {
		f, err := NewFont(bytes.NewReader(makeFont(t, 8, runes)))
		if err != nil {
			t.Fatal(err)
		}
		present := make(map[rune]bool)
		for i, r := range runes {
			present[r] = true
			got, ok, err := f.Index(r)
			if err != nil || !ok || got != i {
				t.Errorf("%q: Index(%U) = %d, %t, %v; want %d", string(runes), r, got, ok, err, i)
			}
		}
		for _, r := range []rune{0x0002, '@', 'C', 'b', 0x4E2C, 0xFFFD, 0x10000, -1} {
			if present[r] {
				continue
			}
			if _, ok, err := f.Index(r); ok || err != nil {
				t.Errorf("%q: Index(%U) found an absent code point (err %v)", string(runes), r, err)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	f, err := NewFont(bytes.NewReader(makeFont(t, 16, []rune{'A', 'B', 'C'})))
	if err != nil {
		t.Fatal(err)
	}
	bits, ok, err := f.Lookup('C')
	if err != nil || !ok {
		t.Fatalf("Lookup('C') = %t, %v", ok, err)
	}
	if !bytes.Equal(bits, bytes.Repeat([]byte{3}, 32)) {
		t.Errorf("Lookup('C') = % X", bits)
	}

	bits, ok, err = f.Lookup('Z')
	if ok || err != nil || bits != nil {
		t.Errorf("Lookup('Z') = % X, %t, %v; want nil, false, nil", bits, ok, err)
	}
}

func TestGlyphFallback(t *testing.T) {
	for _, cell := range []int{16, 12, 24} {
		f, err := NewFont(bytes.NewReader(makeFont(t, cell, []rune{'A'})))
		if err != nil {
			t.Fatal(err)
		}
		bits, err := f.Glyph('Z')
		if err != nil {
			t.Fatal(err)
		}
		if len(bits) != f.GlyphSize() {
			t.Errorf("cell %d: fallback is %d bytes, want %d", cell, len(bits), f.GlyphSize())
		}
		if cell == FallbackSize && !bytes.Equal(bits, Fallback) {
			t.Errorf("fallback = % X, want % X", bits, Fallback)
		}
	}
}

func TestFallbackGlyphIsCopy(t *testing.T) {
	g := FallbackGlyph(FallbackSize)
	g[0] = 0
	if Fallback[0] != 0xFF {
		t.Fatal("FallbackGlyph returned the shared slice")
	}
}

func TestRunes(t *testing.T) {
	want := []rune{'A', 'B', '中'}
	f, err := NewFont(bytes.NewReader(makeFont(t, 16, want)))
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 3 {
		t.Errorf("Len() = %d, want 3", f.Len())
	}
	got, err := f.Runes()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Errorf("Runes() = %q, want %q", string(got), string(want))
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bmf")
	if err := os.WriteFile(path, makeFont(t, 16, []rune{'A'}), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if f.CellSize() != 16 || f.GlyphSize() != 32 {
		t.Errorf("CellSize, GlyphSize = %d, %d; want 16, 32", f.CellSize(), f.GlyphSize())
	}

	_, err = Open(filepath.Join(t.TempDir(), "missing.bmf"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) = %v, want os.ErrNotExist", err)
	}
}
