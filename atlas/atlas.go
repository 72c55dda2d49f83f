// Package atlas packs rasterized glyph bitmaps into a single 2D canvas.
//
// The packer is greedy: glyphs are placed largest-first into the first free
// position found by a row-major scan, and the canvas grows on demand when
// nothing fits. It has no optimality guarantee but is deterministic:
// identical input produces a bit-identical atlas and placements.
package atlas

import (
	"sort"

	"github.com/gogpu/fontatlas/sdf"
)

// Atlas is the packed single-channel bitmap. Texels not covered by any
// glyph are zero.
type Atlas struct {
	// Pixels is the row-major byte grid, Width*Height bytes.
	Pixels []byte

	// Width and Height are the final canvas dimensions.
	Width, Height int
}

// Placed is a glyph together with its atlas-space top-left position.
type Placed struct {
	// Glyph is the rasterized glyph that was placed.
	Glyph sdf.Glyph

	// X and Y are the top-left corner of the glyph bitmap in the atlas.
	X, Y int
}

// Pack places every glyph into a freshly grown atlas.
//
// Glyphs are sorted by descending bitmap area, ties broken by ascending
// character code so reruns are deterministic. Each glyph takes the first
// fully free top-left found by a row-major scan; when no candidate is free
// the canvas grows in the direction that keeps it closer to square, and the
// glyph is placed flush in the new region. Zero-area glyphs place at (0,0)
// without claiming texels.
//
// The returned placements are sorted by character code. Every placement
// lies fully inside the final bounds, no two placements overlap, and every
// uncovered texel is zero.
func Pack(glyphs []sdf.Glyph) (*Atlas, []Placed) {
	sorted := make([]sdf.Glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.Slice(sorted, func(i, j int) bool {
		ai, aj := sorted[i].Area(), sorted[j].Area()
		if ai != aj {
			return ai > aj
		}
		return sorted[i].CharCode < sorted[j].CharCode
	})

	var g grid
	placed := make([]Placed, 0, len(sorted))
	for _, gl := range sorted {
		if gl.FieldWidth <= 0 || gl.FieldHeight <= 0 {
			placed = append(placed, Placed{Glyph: gl})
			continue
		}

		x, y, ok := g.findFirstFit(gl.FieldWidth, gl.FieldHeight)
		if !ok {
			x, y = g.grow(gl.FieldWidth, gl.FieldHeight)
		}
		g.write(gl.Field, x, y, gl.FieldWidth, gl.FieldHeight)
		placed = append(placed, Placed{Glyph: gl, X: x, Y: y})
	}

	sort.Slice(placed, func(i, j int) bool {
		return placed[i].Glyph.CharCode < placed[j].Glyph.CharCode
	})

	// Cells start zeroed and unwritten texels are never touched, so the
	// zero-fill invariant holds without a final sweep.
	return &Atlas{Pixels: g.cells, Width: g.w, Height: g.h}, placed
}

// grid is the growing canvas used during one Pack call: a flat byte buffer
// plus a parallel written mask indexed by row*w+col. The mask, not the
// byte value, decides occupancy, so glyphs may legitimately contain zero
// bytes.
type grid struct {
	cells   []byte
	written []bool
	w, h    int
}

// findFirstFit scans candidate top-left positions in row-major order and
// returns the first whose full footprint is unwritten. The candidate range
// is bounded by dim - glyphDim + 1 per axis, saturating at zero.
func (g *grid) findFirstFit(gw, gh int) (x, y int, ok bool) {
	rowBound := g.h - gh + 1
	if rowBound < 0 {
		rowBound = 0
	}
	colBound := g.w - gw + 1
	if colBound < 0 {
		colBound = 0
	}

	for y := 0; y < rowBound; y++ {
		for x := 0; x < colBound; x++ {
			if g.fits(x, y, gw, gh) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// fits reports whether the gw x gh footprint at (x, y) is entirely free.
func (g *grid) fits(x, y, gw, gh int) bool {
	for row := 0; row < gh; row++ {
		base := (y+row)*g.w + x
		for col := 0; col < gw; col++ {
			if g.written[base+col] {
				return false
			}
		}
	}
	return true
}

// grow extends the canvas to accept a gw x gh glyph that found no free
// footprint, and returns the position the glyph must be placed at.
//
// The direction is chosen by comparing the dimension each growth would
// produce: rows are extended (glyph placed bottom-left) when height+gh is
// smaller than width+gw, otherwise columns are extended (glyph placed
// top-right). The primary axis grows by the full glyph dimension, the other
// only by whatever is still missing. Every growth adds at least the glyph's
// own area, so packing always terminates.
func (g *grid) grow(gw, gh int) (x, y int) {
	if g.h+gh < g.w+gw {
		// Extend rows, place bottom-left.
		addW := gw - g.w
		if addW < 0 {
			addW = 0
		}
		x, y = 0, g.h
		g.resize(g.w+addW, g.h+gh)
	} else {
		// Extend columns, place top-right.
		addH := gh - g.h
		if addH < 0 {
			addH = 0
		}
		x, y = g.w, 0
		g.resize(g.w+gw, g.h+addH)
	}
	return x, y
}

// resize reallocates the canvas to w x h, preserving existing content in
// the top-left corner. Dimensions only ever increase.
func (g *grid) resize(w, h int) {
	cells := make([]byte, w*h)
	written := make([]bool, w*h)
	for row := 0; row < g.h; row++ {
		copy(cells[row*w:row*w+g.w], g.cells[row*g.w:(row+1)*g.w])
		copy(written[row*w:row*w+g.w], g.written[row*g.w:(row+1)*g.w])
	}
	g.cells = cells
	g.written = written
	g.w = w
	g.h = h
}

// write copies a glyph bitmap into the canvas at (x, y) and marks its
// texels written. The footprint must already be known to be free and in
// bounds.
func (g *grid) write(field []byte, x, y, gw, gh int) {
	for row := 0; row < gh; row++ {
		base := (y+row)*g.w + x
		copy(g.cells[base:base+gw], field[row*gw:(row+1)*gw])
		for col := 0; col < gw; col++ {
			g.written[base+col] = true
		}
	}
}
