package atlas

import (
	"fmt"
	"sort"

	"github.com/gogpu/fontatlas/sdf"
)

// Shelf is a shelf-based allocator for a fixed-size canvas.
//
// Rectangles are organized in horizontal shelves: each shelf has the height
// of the tallest item placed on it, items go left-to-right until the shelf
// is out of width, then a new shelf starts below. Unlike the growing packer
// in Pack, a Shelf never resizes; allocation fails when the canvas is out
// of room. It packs tighter than the grow packer for same-height runs of
// glyphs and is the natural target for fixed power-of-two GPU textures.
type Shelf struct {
	width, height int
	shelves       []shelfRow
	usedArea      int
}

type shelfRow struct {
	y      int // top of the shelf
	height int // tallest item so far
	x      int // next free slot
}

// NewShelf creates an allocator for a fixed width x height canvas.
func NewShelf(width, height int) *Shelf {
	return &Shelf{width: width, height: height}
}

// Allocate finds space for a w x h rectangle. It returns the top-left
// position, or ok=false when the canvas cannot take the rectangle.
func (s *Shelf) Allocate(w, h int) (x, y int, ok bool) {
	for i := range s.shelves {
		sh := &s.shelves[i]
		if sh.x+w > s.width {
			continue
		}
		if h > sh.height {
			// Taller than the shelf. The last shelf may still stretch
			// downward if nothing sits below it yet.
			if i == len(s.shelves)-1 && sh.y+h <= s.height {
				sh.height = h
				x, y = sh.x, sh.y
				sh.x += w
				s.usedArea += w * h
				return x, y, true
			}
			continue
		}
		x, y = sh.x, sh.y
		sh.x += w
		s.usedArea += w * h
		return x, y, true
	}

	// Open a new shelf below the last one.
	newY := 0
	if n := len(s.shelves); n > 0 {
		last := s.shelves[n-1]
		newY = last.y + last.height
	}
	if newY+h > s.height || w > s.width {
		return 0, 0, false
	}
	s.shelves = append(s.shelves, shelfRow{y: newY, height: h, x: w})
	s.usedArea += w * h
	return 0, newY, true
}

// Utilization returns the fraction of the canvas area allocated, 0 to 1.
func (s *Shelf) Utilization() float64 {
	if s.width <= 0 || s.height <= 0 {
		return 0
	}
	return float64(s.usedArea) / float64(s.width*s.height)
}

// Reset clears all allocations, keeping the canvas dimensions.
func (s *Shelf) Reset() {
	s.shelves = s.shelves[:0]
	s.usedArea = 0
}

// BoundsError reports glyphs that did not fit a fixed-size canvas.
type BoundsError struct {
	CharCode      uint32
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("atlas: glyph %d (%dx%d) does not fit the bounded canvas", e.CharCode, e.Width, e.Height)
}

// PackBounded places every glyph into a fixed width x height canvas using
// shelf allocation. Glyphs are sorted tallest-first (ties by character
// code) so shelves stay dense, and the returned placements are sorted by
// character code like Pack's. It fails with a BoundsError when a glyph
// cannot be placed; partial output is discarded.
func PackBounded(glyphs []sdf.Glyph, width, height int) (*Atlas, []Placed, error) {
	sorted := make([]sdf.Glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FieldHeight != sorted[j].FieldHeight {
			return sorted[i].FieldHeight > sorted[j].FieldHeight
		}
		return sorted[i].CharCode < sorted[j].CharCode
	})

	shelf := NewShelf(width, height)
	canvas := &Atlas{Pixels: make([]byte, width*height), Width: width, Height: height}
	placed := make([]Placed, 0, len(sorted))

	for _, gl := range sorted {
		if gl.FieldWidth <= 0 || gl.FieldHeight <= 0 {
			placed = append(placed, Placed{Glyph: gl})
			continue
		}
		x, y, ok := shelf.Allocate(gl.FieldWidth, gl.FieldHeight)
		if !ok {
			return nil, nil, &BoundsError{CharCode: gl.CharCode, Width: gl.FieldWidth, Height: gl.FieldHeight}
		}
		for row := 0; row < gl.FieldHeight; row++ {
			dst := (y+row)*width + x
			copy(canvas.Pixels[dst:dst+gl.FieldWidth], gl.Field[row*gl.FieldWidth:(row+1)*gl.FieldWidth])
		}
		placed = append(placed, Placed{Glyph: gl, X: x, Y: y})
	}

	sort.Slice(placed, func(i, j int) bool {
		return placed[i].Glyph.CharCode < placed[j].Glyph.CharCode
	})
	return canvas, placed, nil
}
