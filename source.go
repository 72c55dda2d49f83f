package fontatlas

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fontatlas/sdf"
)

// fontSource wraps a parsed font file. sfnt.Font is safe for concurrent
// use as long as every call gets its own sfnt.Buffer, which is how the
// builder's rasterization workers use it.
type fontSource struct {
	font *sfnt.Font
	ppem fixed.Int26_6
}

// openFontSource reads and parses a TTF/OTF font file at the given pixel
// size. Failures here are FontSourceError territory: fatal, surfaced to
// the caller, no fallback glyph source.
func openFontSource(path string, pixelSize int) (*fontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: read font file: %w", err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: parse font file %q: %w", path, err)
	}
	return &fontSource{
		font: f,
		ppem: fixed.I(pixelSize),
	}, nil
}

// advance returns the pen advance of r in pixels.
func (s *fontSource) advance(buf *sfnt.Buffer, r rune) (float64, error) {
	gi, err := s.font.GlyphIndex(buf, r)
	if err != nil {
		return 0, fmt.Errorf("fontatlas: glyph index for %q: %w", r, err)
	}
	adv, err := s.font.GlyphAdvance(buf, gi, s.ppem, font.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("fontatlas: advance for %q: %w", r, err)
	}
	return fixedToFloat(adv), nil
}

// extract returns the closed contours and pixel metrics of r.
//
// sfnt yields coordinates with y pointing down; they are flipped here so
// that everything downstream (bearings, raster sampling) lives in the
// usual y-up font space. Cubic segments make the whole build fail with
// ErrUnsupportedSegment: the distance evaluator is exact and closed-form,
// and CFF outlines are not supported input.
func (s *fontSource) extract(buf *sfnt.Buffer, r rune) ([]sdf.Contour, sdf.Metrics, error) {
	gi, err := s.font.GlyphIndex(buf, r)
	if err != nil {
		return nil, sdf.Metrics{}, fmt.Errorf("fontatlas: glyph index for %q: %w", r, err)
	}

	segments, err := s.font.LoadGlyph(buf, gi, s.ppem, nil)
	if err != nil {
		return nil, sdf.Metrics{}, fmt.Errorf("fontatlas: load glyph %q: %w", r, err)
	}

	var contours []sdf.Contour
	var cur *sdf.Contour
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			contours = append(contours, sdf.Contour{Start: segPoint(seg.Args[0])})
			cur = &contours[len(contours)-1]

		case sfnt.SegmentOpLineTo:
			if cur == nil {
				return nil, sdf.Metrics{}, fmt.Errorf("fontatlas: glyph %q: outline does not start with a move", r)
			}
			cur.Segments = append(cur.Segments, sdf.Line(segPoint(seg.Args[0])))

		case sfnt.SegmentOpQuadTo:
			if cur == nil {
				return nil, sdf.Metrics{}, fmt.Errorf("fontatlas: glyph %q: outline does not start with a move", r)
			}
			cur.Segments = append(cur.Segments, sdf.Quadratic(segPoint(seg.Args[0]), segPoint(seg.Args[1])))

		case sfnt.SegmentOpCubeTo:
			return nil, sdf.Metrics{}, fmt.Errorf("%w (glyph %q)", ErrUnsupportedSegment, r)
		}
	}

	// TrueType contours are implicitly closed; make the closure explicit
	// so the crossing parity walk sees a full loop.
	for i := range contours {
		c := &contours[i]
		if n := len(c.Segments); n == 0 || c.Segments[n-1].End != c.Start {
			c.Segments = append(c.Segments, sdf.Line(c.Start))
		}
	}

	m, err := s.metrics(buf, gi, contours)
	if err != nil {
		return nil, sdf.Metrics{}, fmt.Errorf("fontatlas: metrics for %q: %w", r, err)
	}
	return contours, m, nil
}

// metrics derives the integer ink box and bearings from the extracted
// contours, snapped outward to whole pixels, plus the advance.
func (s *fontSource) metrics(buf *sfnt.Buffer, gi sfnt.GlyphIndex, contours []sdf.Contour) (sdf.Metrics, error) {
	adv, err := s.font.GlyphAdvance(buf, gi, s.ppem, font.HintingNone)
	if err != nil {
		return sdf.Metrics{}, err
	}
	m := sdf.Metrics{Advance: fixedToFloat(adv)}

	if len(contours) == 0 {
		return m, nil
	}

	box := contours[0].Bounds()
	for _, c := range contours[1:] {
		box = box.Union(c.Bounds())
	}

	left := math.Floor(box.MinX)
	right := math.Ceil(box.MaxX)
	bottom := math.Floor(box.MinY)
	top := math.Ceil(box.MaxY)

	m.Width = int(right - left)
	m.Height = int(top - bottom)
	m.BearingX = left
	m.BearingY = top
	return m, nil
}

// segPoint converts a 26.6 fixed-point outline point to pixel coordinates,
// flipping y to the y-up convention.
func segPoint(p fixed.Point26_6) sdf.Point {
	return sdf.Point{
		X: fixedToFloat(p.X),
		Y: -fixedToFloat(p.Y),
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
