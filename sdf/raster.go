package sdf

import (
	"math"
)

// Metrics describes the ink box and pen metrics of one glyph, in pixels.
// Bearings use the y-up font convention: BearingX is the left edge of the
// ink relative to the pen origin, BearingY the top edge above the baseline.
type Metrics struct {
	// Width and Height are the ink dimensions.
	Width, Height int

	// BearingX is the horizontal offset from the origin to the ink left edge.
	BearingX float64

	// BearingY is the vertical offset from the baseline to the ink top edge.
	BearingY float64

	// Advance is the horizontal pen advance after this glyph.
	Advance float64
}

// Glyph is one rasterized signed-distance bitmap, not yet placed in an
// atlas. Field is row-major, top row first, one byte per texel: 0 is far
// outside, 255 far inside, 127/128 on the outline.
type Glyph struct {
	// CharCode is the character this glyph renders.
	CharCode uint32

	// Field is the distance bitmap, FieldWidth*FieldHeight bytes.
	Field []byte

	// FieldWidth and FieldHeight are the bitmap dimensions: the ink box
	// plus spread padding on every side.
	FieldWidth, FieldHeight int

	// Width and Height are the ink dimensions.
	Width, Height int

	// BearingX and BearingY locate the top-left of the padded bitmap
	// relative to the pen origin (y-up, BearingY above the baseline).
	BearingX, BearingY float32

	// Advance is the horizontal pen advance.
	Advance float32
}

// Area returns the bitmap area in texels.
func (g *Glyph) Area() int {
	return g.FieldWidth * g.FieldHeight
}

// Rasterize evaluates the signed distance field of the glyph outline over a
// spread-padded raster box and quantizes it to bytes.
//
// The box is the ink size plus 2*spread per axis, so the field has full
// support up to spread pixels beyond the ink. Each texel samples the pixel
// center: the minimum distance over every segment of every contour gives
// the magnitude, the summed ray-crossing parity the sign (odd = inside =
// positive). Distances are clamped to [-spread, spread] and mapped to
// [0, 255].
//
// Glyphs with no ink (such as accents-only placeholders or space) produce
// an empty bitmap so they claim no atlas texels.
func Rasterize(charCode uint32, contours []Contour, m Metrics, spread int) Glyph {
	g := Glyph{
		CharCode: charCode,
		Width:    m.Width,
		Height:   m.Height,
		BearingX: float32(m.BearingX - float64(spread)),
		BearingY: float32(m.BearingY + float64(spread)),
		Advance:  float32(m.Advance),
	}

	if m.Width <= 0 || m.Height <= 0 || len(contours) == 0 {
		g.BearingX = float32(m.BearingX)
		g.BearingY = float32(m.BearingY)
		return g
	}

	fw := m.Width + 2*spread
	fh := m.Height + 2*spread
	g.FieldWidth = fw
	g.FieldHeight = fh
	g.Field = make([]byte, fw*fh)

	left := m.BearingX - float64(spread)
	top := m.BearingY + float64(spread)
	s := float64(spread)

	for row := 0; row < fh; row++ {
		py := top - float64(row) - 0.5
		for col := 0; col < fw; col++ {
			p := Point{X: left + float64(col) + 0.5, Y: py}

			minDist := math.MaxFloat64
			crossings := 0
			for _, c := range contours {
				d, n := Nearest(p, c)
				if d < minDist {
					minDist = d
				}
				crossings += n
			}

			// Even-odd rule: odd crossing total means inside.
			signed := -minDist
			if crossings%2 == 1 {
				signed = minDist
			}
			if signed > s {
				signed = s
			} else if signed < -s {
				signed = -s
			}

			g.Field[row*fw+col] = byte(math.Round((signed + s) * 255 / (2 * s)))
		}
	}

	return g
}
