package fontatlas

import (
	"bytes"
	"testing"
)

func TestFontGlyphLookup(t *testing.T) {
	f := testFont()

	g, ok := f.Glyph('A')
	if !ok || g.CharCode != 'A' {
		t.Errorf("Glyph('A') = %+v, %v; want the A record", g, ok)
	}
	if _, ok := f.Glyph('z'); ok {
		t.Error("Glyph('z') found a record that was never built")
	}
}

func TestFontGlyphList(t *testing.T) {
	f := testFont()

	list := f.GlyphList()
	if len(list) != len(f.Glyphs) {
		t.Fatalf("len = %d, want %d", len(list), len(f.Glyphs))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].CharCode >= list[i].CharCode {
			t.Fatalf("list not sorted by char code at %d: %d >= %d", i, list[i-1].CharCode, list[i].CharCode)
		}
	}
}

func TestFontAtlasImage(t *testing.T) {
	f := &Font{
		AtlasWidth:  3,
		AtlasHeight: 2,
		AtlasPixels: []byte{10, 20, 30, 40, 50, 60},
	}

	img := f.AtlasImage()
	b := img.Bounds()
	if b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("image bounds = %v, want 3x2", b)
	}
	for row := 0; row < 2; row++ {
		got := img.Pix[row*img.Stride : row*img.Stride+3]
		want := f.AtlasPixels[row*3 : (row+1)*3]
		if !bytes.Equal(got, want) {
			t.Errorf("row %d = %v, want %v", row, got, want)
		}
	}
}
