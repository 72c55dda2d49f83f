package sdf

import (
	"math"
)

// Nearest returns the minimum Euclidean distance from p to the contour and
// the contour's contribution to the crossing count of a ray cast from p in
// the +x direction. The caller combines results over all contours of a
// glyph: the global minimum distance gives the field magnitude, the summed
// crossing parity gives the sign (odd = inside, even-odd rule).
//
// Nearest is stateless and pure. Degenerate zero-length line segments
// contribute the infinite sentinel distance and no crossings.
func Nearest(p Point, c Contour) (dist float64, crossings int) {
	dist = math.MaxFloat64
	start := c.Start
	for _, seg := range c.Segments {
		var d float64
		var n int
		switch seg.Kind {
		case SegmentLine:
			d = distanceToLine(p, start, seg.End)
			n = lineCrossings(p, start, seg.End)
		case SegmentQuadratic:
			d = distanceToQuadratic(p, start, seg.Control, seg.End)
			n = quadraticCrossings(p, start, seg.Control, seg.End)
		}
		if d < dist {
			dist = d
		}
		crossings += n
		start = seg.End
	}
	return dist, crossings
}

// distanceToLine returns the distance from p to the line segment s-e.
//
// The projection parameter is clamped to the half-open interval (0, 1]:
// t <= 0 is rejected so that each shared vertex is owned by exactly one of
// its two adjacent segments. Without this, distances at vertices would be
// reported twice, once per neighbor.
func distanceToLine(p, s, e Point) float64 {
	// Degenerate segment, contributes nothing.
	if s == e {
		return math.MaxFloat64
	}

	d := e.Sub(s)
	t := p.Sub(s).Dot(d) / d.LengthSquared()

	// The projection falls before the segment start; the previous segment
	// owns this region.
	if t <= 0 {
		return math.MaxFloat64
	}
	if t > 1 {
		t = 1
	}

	proj := s.Add(d.Mul(t))
	return p.Sub(proj).Length()
}

// lineCrossings counts crossings (0 or 1) of the +x ray from p with the
// line segment s-e. Horizontal segments never cross. A crossing at a
// vertex counts only at the start of an upward segment or the end of a
// downward one, so that the ray passing exactly through a shared vertex is
// counted once, not twice.
func lineCrossings(p, s, e Point) int {
	d := e.Sub(s)
	if d.Y == 0 {
		return 0
	}

	t := (p.Y - s.Y) / d.Y
	x := s.X + t*d.X

	if x > p.X && ((t > 0 && t < 1) || (t == 0 && d.Y > 0) || (t == 1 && d.Y < 0)) {
		return 1
	}
	return 0
}

// distanceToQuadratic returns the distance from p to the quadratic Bezier
// curve with start s, control c and end e.
//
// The squared distance to the curve is a quartic polynomial in the curve
// parameter, so its critical points are the roots of a cubic. The cubic is
// depressed and solved in closed form; each root is mapped back to the
// curve parameter, subjected to the same half-open (0, 1] ownership rule as
// lines, and the smallest resulting distance wins.
func distanceToQuadratic(p, s, c, e Point) float64 {
	sc := c.Sub(s)
	ps := s.Sub(p)

	// Quartic distance-squared coefficients. a is the curve's second
	// derivative direction; a == 0 means the control point is the segment
	// midpoint and the curve degenerates to the line s-e.
	a := Point{X: s.X - 2*c.X + e.X, Y: s.Y - 2*c.Y + e.Y}
	if a == (Point{}) {
		return distanceToLine(p, s, e)
	}

	d4 := a.Dot(a)
	d3 := a.Dot(sc)
	d2 := a.Dot(ps) + 2*sc.Dot(sc)
	d1 := sc.Dot(ps)
	d0 := ps.Dot(ps)

	// Depressed cubic t^3 + dp*t + dq = 0 of the quartic's derivative.
	dp := (d4*d2 - 3*d3*d3) / (d4 * d4)
	dq := (2*d3*d3*d3 - d4*d3*d2 + d4*d4*d1) / (d4 * d4 * d4)

	roots, n := solveDepressedCubic(dp, dq)

	minDist := math.MaxFloat64
	for i := 0; i < n; i++ {
		// Map the depressed root back to the curve parameter.
		t := roots[i] - d3/d4

		// Same vertex ownership rule as for lines.
		if t <= 0 {
			continue
		}
		if t > 1 {
			t = 1
		}

		d := math.Sqrt(d4*t*t*t*t + 4*d3*t*t*t + 2*d2*t*t + 4*d1*t + d0)
		if d < minDist {
			minDist = d
		}
	}
	return minDist
}

// solveDepressedCubic finds the real roots of t^3 + dp*t + dq = 0.
//
// The discriminant sign selects one of three non-overlapping branches:
// positive gives the single real root via Cardano's formula, negative gives
// three real roots via the trigonometric form, and exactly zero is handled
// on its own. Folding the zero case into either branch would take the
// square root of a negative value and produce NaNs.
func solveDepressedCubic(dp, dq float64) (roots [3]float64, n int) {
	if dp == 0 && dq == 0 {
		// Triple root at zero.
		return roots, 1
	}

	discriminant := 4*dp*dp*dp + 27*dq*dq
	switch {
	case discriminant > 0:
		// One real root, Cardano's formula.
		a := -dq / 2
		b := math.Sqrt(discriminant / 108)
		roots[0] = math.Cbrt(a+b) + math.Cbrt(a-b)
		return roots, 1
	case discriminant < 0:
		// Three real roots, trigonometric form.
		amp := 2 * math.Sqrt(-dp/3)
		phase := math.Acos((3*dq)/(2*dp)*math.Sqrt(-3/dp)) / 3
		for k := 0; k < 3; k++ {
			roots[k] = amp * math.Cos(phase-2*math.Pi*float64(k)/3)
		}
		return roots, 3
	default:
		// Zero discriminant: a simple root and a double root.
		roots[0] = 3 * dq / dp
		roots[1] = -3 * dq / (2 * dp)
		return roots, 2
	}
}

// quadraticCrossings counts crossings (0..2) of the +x ray from p with the
// quadratic Bezier s, c, e.
//
// If y(t) is linear in t the single crossing is solved directly with the
// line rules. Otherwise y(t) = p.Y has zero or two roots, possibly
// coincident; vertex crossings use the curve's local start/end y-direction
// for the same tie-break as lines, and a tangential double root is counted
// at most once.
func quadraticCrossings(p, s, c, e Point) int {
	at := func(t float64) float64 {
		u := 1 - t
		return u*u*s.X + 2*u*t*c.X + t*t*e.X
	}

	u := s.Y - 2*c.Y + e.Y
	if u == 0 {
		// y varies linearly in t.
		diff := e.Y - s.Y
		if diff == 0 {
			return 0
		}
		t := (p.Y - s.Y) / diff
		if x := at(t); x > p.X && ((t > 0 && t < 1) || (t == 0 && diff > 0) || (t == 1 && diff < 0)) {
			return 1
		}
		return 0
	}

	w := p.Y*s.Y - 2*p.Y*c.Y + p.Y*e.Y - s.Y*e.Y + c.Y*c.Y
	if w < 0 {
		return 0
	}
	w = math.Sqrt(w)
	v := s.Y - c.Y

	t1 := (v + w) / u
	t2 := (v - w) / u
	x1 := at(t1)
	x2 := at(t2)

	// Local y-direction at the curve ends. The fallback covers the case
	// where the control point shares the end's y coordinate.
	sDir := c.Y - s.Y
	if s.Y == c.Y {
		sDir = e.Y - s.Y
	}
	eDir := e.Y - c.Y
	if c.Y == e.Y {
		eDir = e.Y - s.Y
	}

	if t1 == t2 {
		// Tangential double root, count at most once.
		if x1 > p.X && ((t1 == 0 && sDir > 0) || (t1 == 1 && eDir < 0)) {
			return 1
		}
		return 0
	}

	n := 0
	if x1 > p.X && ((t1 > 0 && t1 < 1) || (t1 == 0 && sDir > 0) || (t1 == 1 && eDir < 0)) {
		n++
	}
	if x2 > p.X && ((t2 > 0 && t2 < 1) || (t2 == 0 && sDir > 0) || (t2 == 1 && eDir < 0)) {
		n++
	}
	return n
}
