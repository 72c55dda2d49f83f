// Package sdf rasterizes glyph outlines into signed-distance-field bitmaps.
//
// A glyph outline is a set of closed contours built from line and quadratic
// Bezier segments, in pixel coordinates with y pointing up. For every texel
// of a spread-padded raster box the package computes the exact minimum
// distance to the outline (quadratic segments via closed-form cubic root
// finding, no subdivision) and the inside/outside sign via the even-odd
// crossing rule, then quantizes the clamped signed distance to a byte:
//
//	0   = spread pixels (or more) outside the outline
//	128 = on the outline
//	255 = spread pixels (or more) inside
//
// Cubic Bezier segments have no closed-form distance solution and are not
// representable here; callers reject them during outline extraction.
package sdf
