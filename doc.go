// Package fontatlas builds signed-distance-field glyph atlases for GPU
// text rendering.
//
// Given a vector font file (TrueType glyf outlines) and a target pixel
// size, the pipeline rasterizes every character in the configured range
// into a signed-distance bitmap, packs the bitmaps into one single-channel
// atlas, and caches the result in a compact binary file so repeated runs
// skip rasterization entirely.
//
// # Pipeline
//
//  1. Extract closed line/quadratic contours and metrics per character
//     (golang.org/x/image/font/sfnt).
//  2. Rasterize each glyph's exact signed distance field over a
//     spread-padded box (package sdf).
//  3. Pack all bitmaps largest-first into a growing atlas (package atlas).
//  4. Persist atlas and glyph table; later runs load the cache instead.
//
// # Usage
//
//	builder, err := fontatlas.NewBuilder(fontatlas.Options{
//	    CacheDir:  "fontcache",
//	    Spread:    8,
//	    FirstChar: 33,
//	    LastChar:  126,
//	    Workers:   4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	font, err := builder.Build("fonts/roboto.ttf", 64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// font.AtlasPixels is a single-channel texture, font.Glyphs the
//	// per-character placement and metric table.
//
// The build is deterministic: the same font, size and options produce a
// bit-identical cache file. Cubic (CFF) outlines are rejected; kerning,
// hinting and shaping are out of scope.
package fontatlas
