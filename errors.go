package fontatlas

import "errors"

// Sentinel errors for the fontatlas package.
var (
	// ErrCacheMiss signals that no usable cache file exists for a font and
	// size. It is a rebuild signal, not a failure: Builder.Build reacts by
	// rasterizing and packing from scratch.
	ErrCacheMiss = errors.New("fontatlas: cache miss")

	// ErrUnsupportedSegment is returned when a font outline contains cubic
	// Bezier segments. The distance evaluator is closed-form and quadratic
	// outlines (TrueType glyf) are the supported input; there is no
	// flattening fallback.
	ErrUnsupportedSegment = errors.New("fontatlas: cubic bezier segments are not supported")
)
