package atlas

import (
	"errors"
	"testing"

	"github.com/gogpu/fontatlas/sdf"
)

func TestShelfAllocate(t *testing.T) {
	s := NewShelf(64, 64)

	x, y, ok := s.Allocate(20, 10)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("first allocation = (%d,%d,%v), want (0,0,true)", x, y, ok)
	}
	x, y, ok = s.Allocate(20, 8)
	if !ok || x != 20 || y != 0 {
		t.Fatalf("same-shelf allocation = (%d,%d,%v), want (20,0,true)", x, y, ok)
	}

	// Wider than the remaining shelf width: opens a shelf below.
	x, y, ok = s.Allocate(30, 12)
	if !ok || x != 0 || y != 10 {
		t.Fatalf("new-shelf allocation = (%d,%d,%v), want (0,10,true)", x, y, ok)
	}
}

func TestShelfLastShelfStretches(t *testing.T) {
	s := NewShelf(64, 64)

	s.Allocate(10, 10)
	// Taller than the current shelf but still on it: the last shelf grows.
	x, y, ok := s.Allocate(10, 20)
	if !ok || x != 10 || y != 0 {
		t.Fatalf("stretch allocation = (%d,%d,%v), want (10,0,true)", x, y, ok)
	}
	// The next shelf must start below the stretched height.
	x, y, ok = s.Allocate(64, 5)
	if !ok || x != 0 || y != 20 {
		t.Fatalf("post-stretch shelf = (%d,%d,%v), want (0,20,true)", x, y, ok)
	}
}

func TestShelfOutOfRoom(t *testing.T) {
	s := NewShelf(32, 32)

	if _, _, ok := s.Allocate(33, 1); ok {
		t.Error("allocation wider than canvas succeeded")
	}
	if _, _, ok := s.Allocate(1, 33); ok {
		t.Error("allocation taller than canvas succeeded")
	}

	if _, _, ok := s.Allocate(32, 30); !ok {
		t.Fatal("large allocation failed")
	}
	if _, _, ok := s.Allocate(1, 3); ok {
		t.Error("allocation below full shelf succeeded with 2 rows left")
	}
}

func TestShelfUtilizationAndReset(t *testing.T) {
	s := NewShelf(10, 10)
	if u := s.Utilization(); u != 0 {
		t.Errorf("empty utilization = %v, want 0", u)
	}
	s.Allocate(5, 10)
	if u := s.Utilization(); u != 0.5 {
		t.Errorf("utilization = %v, want 0.5", u)
	}
	s.Reset()
	if u := s.Utilization(); u != 0 {
		t.Errorf("utilization after reset = %v, want 0", u)
	}
	if x, y, ok := s.Allocate(10, 10); !ok || x != 0 || y != 0 {
		t.Errorf("allocation after reset = (%d,%d,%v), want (0,0,true)", x, y, ok)
	}
}

func TestPackBounded(t *testing.T) {
	glyphs := []sdf.Glyph{
		makeGlyph('A', 10, 8),
		makeGlyph('B', 10, 12),
		makeGlyph('C', 12, 12),
		{CharCode: ' '},
	}

	a, placed, err := PackBounded(glyphs, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	if a.Width != 32 || a.Height != 32 {
		t.Fatalf("atlas = %dx%d, want 32x32", a.Width, a.Height)
	}
	if len(placed) != len(glyphs) {
		t.Fatalf("len(placed) = %d, want %d", len(placed), len(glyphs))
	}

	// Tallest-first with ties by code: C (12), B (12), A (8), then the
	// zero-area space. Output is re-sorted by code.
	want := []struct {
		code uint32
		x, y int
	}{
		{' ', 0, 0},
		{'A', 22, 0}, // fits the first shelf after B and C
		{'B', 0, 0},
		{'C', 10, 0},
	}
	for i, w := range want {
		p := placed[i]
		if p.Glyph.CharCode != w.code || p.X != w.x || p.Y != w.y {
			t.Errorf("placed[%d] = %c at (%d,%d), want %c at (%d,%d)",
				i, p.Glyph.CharCode, p.X, p.Y, w.code, w.x, w.y)
		}
	}

	// Content check: A's fill byte at its top-left texel.
	if got := a.Pixels[0*32+22]; got != 'A' {
		t.Errorf("texel at (22,0) = %d, want %d", got, 'A')
	}
}

func TestPackBoundedOutOfRoom(t *testing.T) {
	glyphs := []sdf.Glyph{
		makeGlyph('A', 16, 16),
		makeGlyph('B', 16, 16),
		makeGlyph('C', 16, 16),
	}

	_, _, err := PackBounded(glyphs, 16, 32)
	var be *BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("err = %v, want *BoundsError", err)
	}
	if be.CharCode != 'C' {
		t.Errorf("failing glyph = %c, want C", be.CharCode)
	}
}
