package fontatlas

import (
	"runtime"
)

// Options holds atlas build parameters.
type Options struct {
	// CacheDir is the directory holding cache files. It is explicit so
	// tests and tools can redirect it to an isolated location.
	// Default: "fontcache"
	CacheDir string

	// Spread is the distance range of the field in pixels: how far beyond
	// the ink the field stays accurate before clamping. It also drives the
	// padding around each glyph bitmap.
	// Default: 8
	Spread int

	// FirstChar and LastChar bound the inclusive character-code range
	// built into the atlas.
	// Default: 33..126 (printable ASCII)
	FirstChar, LastChar rune

	// Workers bounds the number of goroutines rasterizing glyphs
	// concurrently. Packing is always single-threaded.
	// Default: runtime.GOMAXPROCS(0)
	Workers int
}

// DefaultOptions returns the default build configuration.
func DefaultOptions() Options {
	return Options{
		CacheDir:  "fontcache",
		Spread:    8,
		FirstChar: 33,
		LastChar:  126,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// Validate checks if the options are valid and returns an error if not.
func (o *Options) Validate() error {
	if o.CacheDir == "" {
		return &OptionsError{Field: "CacheDir", Reason: "must not be empty"}
	}
	if o.Spread < 1 {
		return &OptionsError{Field: "Spread", Reason: "must be at least 1"}
	}
	if o.Spread > 128 {
		return &OptionsError{Field: "Spread", Reason: "must be at most 128"}
	}
	if o.FirstChar < 1 {
		return &OptionsError{Field: "FirstChar", Reason: "must be positive"}
	}
	if o.LastChar < o.FirstChar {
		return &OptionsError{Field: "LastChar", Reason: "must not be below FirstChar"}
	}
	if o.Workers < 1 {
		return &OptionsError{Field: "Workers", Reason: "must be at least 1"}
	}
	return nil
}

// OptionsError represents an options validation error.
type OptionsError struct {
	Field  string
	Reason string
}

func (e *OptionsError) Error() string {
	return "fontatlas: invalid options." + e.Field + ": " + e.Reason
}
