package sdf

// SegmentKind classifies outline segments by their geometric type.
// Cubic Bezier segments have no closed-form minimum-distance solution and
// are rejected during outline extraction, so no kind exists for them here.
type SegmentKind int

const (
	// SegmentLine is a straight line to the end point.
	SegmentLine SegmentKind = iota

	// SegmentQuadratic is a quadratic Bezier curve (one control point).
	SegmentQuadratic
)

// String returns a string representation of the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLine:
		return "Line"
	case SegmentQuadratic:
		return "Quadratic"
	default:
		return "Unknown"
	}
}

// Segment is one piece of a contour. Its start point is implicit: the end
// point of the previous segment, or the contour start for the first one.
type Segment struct {
	// Kind is the geometric type of this segment.
	Kind SegmentKind

	// Control is the control point. Only meaningful for SegmentQuadratic.
	Control Point

	// End is the segment end point.
	End Point
}

// Line creates a line segment to end.
func Line(end Point) Segment {
	return Segment{Kind: SegmentLine, End: end}
}

// Quadratic creates a quadratic Bezier segment.
func Quadratic(control, end Point) Segment {
	return Segment{Kind: SegmentQuadratic, Control: control, End: end}
}

// Contour is a closed ordered sequence of segments. The last segment's end
// point returns to Start. Contours are immutable once extracted.
type Contour struct {
	// Start is the first point of the contour.
	Start Point

	// Segments are the pieces of the loop, in order.
	Segments []Segment
}

// Bounds returns the control-point bounding box of the contour. Since
// quadratic curves stay inside the hull of their control points, the box is
// a conservative cover of the ink.
func (c Contour) Bounds() Rect {
	r := Rect{
		MinX: c.Start.X, MinY: c.Start.Y,
		MaxX: c.Start.X, MaxY: c.Start.Y,
	}
	grow := func(p Point) {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	for _, seg := range c.Segments {
		if seg.Kind == SegmentQuadratic {
			grow(seg.Control)
		}
		grow(seg.End)
	}
	return r
}
