package fontatlas

import (
	"image"
	"sort"
)

// Glyph is one placed glyph: atlas position plus rendering metrics.
// Width and Height are the ink dimensions; the bitmap footprint in the
// atlas extends the build spread beyond the ink on every side, and
// BearingX and BearingY already point at that padded box's top-left (y-up,
// BearingY above the baseline).
type Glyph struct {
	// CharCode is the character this glyph renders.
	CharCode uint32

	// X and Y are the top-left corner of the glyph bitmap in the atlas.
	X, Y float32

	// Width and Height are the ink dimensions in pixels.
	Width, Height float32

	// BearingX and BearingY locate the padded bitmap relative to the pen
	// origin.
	BearingX, BearingY float32

	// Advance is the horizontal pen advance.
	Advance float32
}

// Font is a built glyph atlas for one font file at one pixel size. It is
// immutable once built; the renderer owns it for the process lifetime of
// that font+size pair.
type Font struct {
	// Glyphs maps character codes to their placements. Keys are unique.
	Glyphs map[rune]Glyph

	// AtlasWidth and AtlasHeight are the atlas dimensions in texels.
	AtlasWidth, AtlasHeight int

	// AtlasPixels is the row-major single-channel atlas bitmap.
	AtlasPixels []byte

	// SpaceAdvance is the pen advance of the space character.
	SpaceAdvance float32

	// Key identifies this font+size pair; it is also the cache file stem.
	Key string
}

// Glyph returns the placement record for r.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	g, ok := f.Glyphs[r]
	return g, ok
}

// GlyphList returns all placement records sorted by character code.
func (f *Font) GlyphList() []Glyph {
	list := make([]Glyph, 0, len(f.Glyphs))
	for _, g := range f.Glyphs {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CharCode < list[j].CharCode
	})
	return list
}

// AtlasImage returns the atlas as a grayscale image, for debug dumps or
// uploading through image-based texture paths.
func (f *Font) AtlasImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.AtlasWidth, f.AtlasHeight))
	for row := 0; row < f.AtlasHeight; row++ {
		copy(img.Pix[row*img.Stride:row*img.Stride+f.AtlasWidth],
			f.AtlasPixels[row*f.AtlasWidth:(row+1)*f.AtlasWidth])
	}
	return img
}
