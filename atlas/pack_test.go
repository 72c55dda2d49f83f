package atlas

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/fontatlas/sdf"
)

// makeGlyph builds a glyph bitmap of the given size filled with the low
// byte of its character code, so atlas content checks can tell glyphs apart.
func makeGlyph(code uint32, w, h int) sdf.Glyph {
	field := make([]byte, w*h)
	for i := range field {
		field[i] = byte(code)
	}
	return sdf.Glyph{
		CharCode:    code,
		Field:       field,
		FieldWidth:  w,
		FieldHeight: h,
	}
}

func TestPackGolden(t *testing.T) {
	glyphs := []sdf.Glyph{
		makeGlyph('A', 10, 10),
		makeGlyph('B', 10, 10),
		makeGlyph('C', 20, 5),
	}

	a, placed := Pack(glyphs)

	if a.Width != 20 || a.Height != 15 {
		t.Fatalf("atlas = %dx%d, want 20x15", a.Width, a.Height)
	}

	want := []struct {
		code uint32
		x, y int
	}{
		{'A', 0, 0},
		{'B', 10, 0},
		{'C', 0, 10},
	}
	if len(placed) != len(want) {
		t.Fatalf("len(placed) = %d, want %d", len(placed), len(want))
	}
	for i, w := range want {
		p := placed[i]
		if p.Glyph.CharCode != w.code || p.X != w.x || p.Y != w.y {
			t.Errorf("placed[%d] = %c at (%d,%d), want %c at (%d,%d)",
				i, p.Glyph.CharCode, p.X, p.Y, w.code, w.x, w.y)
		}
	}

	// Spot-check atlas content: each region carries its glyph's fill byte,
	// everything else is zero.
	for _, w := range want {
		if got := a.Pixels[w.y*a.Width+w.x]; got != byte(w.code) {
			t.Errorf("texel at (%d,%d) = %d, want %d", w.x, w.y, got, byte(w.code))
		}
	}
	if got := a.Pixels[14*a.Width+19]; got != 'C' {
		t.Errorf("bottom-right texel = %d, want %d", got, 'C')
	}
}

// TestPackGrowthDirection pins the grow rule with equal-area glyphs: the
// first two growths tie and extend columns, the third is cheaper as rows.
func TestPackGrowthDirection(t *testing.T) {
	glyphs := []sdf.Glyph{
		makeGlyph('A', 4, 4),
		makeGlyph('B', 4, 4),
		makeGlyph('C', 4, 4),
		makeGlyph('D', 4, 4),
	}

	a, placed := Pack(glyphs)

	if a.Width != 8 || a.Height != 8 {
		t.Fatalf("atlas = %dx%d, want 8x8", a.Width, a.Height)
	}
	want := []struct{ x, y int }{{0, 0}, {4, 0}, {0, 4}, {4, 4}}
	for i, w := range want {
		if placed[i].X != w.x || placed[i].Y != w.y {
			t.Errorf("placed[%d] at (%d,%d), want (%d,%d)", i, placed[i].X, placed[i].Y, w.x, w.y)
		}
	}
}

func TestPackInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	glyphs := make([]sdf.Glyph, 40)
	for i := range glyphs {
		glyphs[i] = makeGlyph(uint32(33+i), 1+rng.Intn(25), 1+rng.Intn(25))
	}

	a, placed := Pack(glyphs)

	if len(placed) != len(glyphs) {
		t.Fatalf("len(placed) = %d, want %d", len(placed), len(glyphs))
	}

	covered := make([]bool, a.Width*a.Height)
	for _, p := range placed {
		g := p.Glyph
		if p.X < 0 || p.Y < 0 || p.X+g.FieldWidth > a.Width || p.Y+g.FieldHeight > a.Height {
			t.Fatalf("glyph %d at (%d,%d) size %dx%d escapes %dx%d atlas",
				g.CharCode, p.X, p.Y, g.FieldWidth, g.FieldHeight, a.Width, a.Height)
		}
		for row := 0; row < g.FieldHeight; row++ {
			for col := 0; col < g.FieldWidth; col++ {
				idx := (p.Y+row)*a.Width + p.X + col
				if covered[idx] {
					t.Fatalf("glyph %d overlaps at (%d,%d)", g.CharCode, p.X+col, p.Y+row)
				}
				covered[idx] = true
				if a.Pixels[idx] != byte(g.CharCode) {
					t.Fatalf("glyph %d texel at (%d,%d) = %d, want %d",
						g.CharCode, p.X+col, p.Y+row, a.Pixels[idx], byte(g.CharCode))
				}
			}
		}
	}
	for i, c := range covered {
		if !c && a.Pixels[i] != 0 {
			t.Fatalf("uncovered texel %d = %d, want 0", i, a.Pixels[i])
		}
	}

	// Placements come back sorted by character code.
	for i := 1; i < len(placed); i++ {
		if placed[i-1].Glyph.CharCode >= placed[i].Glyph.CharCode {
			t.Fatalf("placements not sorted by char code at %d", i)
		}
	}
}

// TestPackDeterminism packs the same set in two input orders; the sort by
// area and character code must make the result bit-identical.
func TestPackDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	glyphs := make([]sdf.Glyph, 25)
	for i := range glyphs {
		glyphs[i] = makeGlyph(uint32(40+i), 1+rng.Intn(16), 1+rng.Intn(16))
	}
	reversed := make([]sdf.Glyph, len(glyphs))
	for i, g := range glyphs {
		reversed[len(glyphs)-1-i] = g
	}

	a1, p1 := Pack(glyphs)
	a2, p2 := Pack(reversed)

	if a1.Width != a2.Width || a1.Height != a2.Height {
		t.Fatalf("dimensions differ: %dx%d vs %dx%d", a1.Width, a1.Height, a2.Width, a2.Height)
	}
	if !bytes.Equal(a1.Pixels, a2.Pixels) {
		t.Error("atlas pixels differ between input orders")
	}
	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Errorf("placements differ (-first +reversed):\n%s", diff)
	}
}

func TestPackZeroAreaGlyph(t *testing.T) {
	glyphs := []sdf.Glyph{
		makeGlyph('A', 6, 6),
		{CharCode: ' '}, // no ink, no bitmap
	}

	a, placed := Pack(glyphs)

	if a.Width != 6 || a.Height != 6 {
		t.Fatalf("atlas = %dx%d, want 6x6 (zero-area glyph must not grow it)", a.Width, a.Height)
	}
	if len(placed) != 2 {
		t.Fatalf("len(placed) = %d, want 2", len(placed))
	}
	sp := placed[0] // ' ' < 'A'
	if sp.Glyph.CharCode != ' ' || sp.X != 0 || sp.Y != 0 {
		t.Errorf("zero-area placement = %c at (%d,%d), want space at (0,0)", sp.Glyph.CharCode, sp.X, sp.Y)
	}
}

func TestPackEmptyInput(t *testing.T) {
	a, placed := Pack(nil)
	if a.Width != 0 || a.Height != 0 || len(a.Pixels) != 0 {
		t.Errorf("empty pack atlas = %dx%d (%d bytes), want empty", a.Width, a.Height, len(a.Pixels))
	}
	if len(placed) != 0 {
		t.Errorf("len(placed) = %d, want 0", len(placed))
	}
}

func TestPackSingle(t *testing.T) {
	a, placed := Pack([]sdf.Glyph{makeGlyph('X', 7, 3)})
	if a.Width != 7 || a.Height != 3 {
		t.Errorf("atlas = %dx%d, want 7x3", a.Width, a.Height)
	}
	if placed[0].X != 0 || placed[0].Y != 0 {
		t.Errorf("placement = (%d,%d), want (0,0)", placed[0].X, placed[0].Y)
	}
}
