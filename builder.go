package fontatlas

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/fontatlas/atlas"
	"github.com/gogpu/fontatlas/sdf"
)

// Builder builds or loads glyph atlases. Each font+size pair is resolved
// at most once per Builder: results are held in a process-lifetime table
// and handed out to every subsequent caller.
type Builder struct {
	opts Options

	mu    sync.RWMutex
	fonts map[string]*Font
}

// NewBuilder creates a builder with the given options.
func NewBuilder(opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		opts:  opts,
		fonts: make(map[string]*Font),
	}, nil
}

// NewBuilderDefault creates a builder with default options.
func NewBuilderDefault() *Builder {
	b, _ := NewBuilder(DefaultOptions())
	return b
}

// Options returns the builder's configuration.
func (b *Builder) Options() Options {
	return b.opts
}

// Build returns the atlas font for fontPath at pixelSize, building it if
// needed.
//
// The lookup order is memory table, then cache file, then a full build:
// extract every character in the configured range, rasterize the signed
// distance fields (in parallel across characters), pack them into one
// atlas, persist the result. The build is all-or-nothing: any extraction
// or rasterization failure aborts with no partial output.
func (b *Builder) Build(fontPath string, pixelSize int) (*Font, error) {
	if pixelSize < 1 {
		return nil, &OptionsError{Field: "pixelSize", Reason: "must be at least 1"}
	}
	key := cacheKey(fontPath, pixelSize)

	// Fast path: already resolved (read lock).
	b.mu.RLock()
	if f, ok := b.fonts[key]; ok {
		b.mu.RUnlock()
		return f, nil
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	// Double-check after acquiring the write lock.
	if f, ok := b.fonts[key]; ok {
		return f, nil
	}

	path := filepath.Join(b.opts.CacheDir, key+".cache")
	f, err := Load(path)
	if err == nil {
		f.Key = key
		b.fonts[key] = f
		return f, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	Logger().Info("building glyph atlas", "font", fontPath, "size", pixelSize)
	f, err = b.build(fontPath, pixelSize)
	if err != nil {
		return nil, err
	}
	f.Key = key

	if err := os.MkdirAll(b.opts.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("fontatlas: create cache dir: %w", err)
	}
	if err := Save(path, f); err != nil {
		return nil, err
	}

	b.fonts[key] = f
	return f, nil
}

// build runs the full pipeline: extract, rasterize, pack, assemble.
func (b *Builder) build(fontPath string, pixelSize int) (*Font, error) {
	src, err := openFontSource(fontPath, pixelSize)
	if err != nil {
		return nil, err
	}

	var buf sfnt.Buffer
	spaceAdvance, err := src.advance(&buf, ' ')
	if err != nil {
		return nil, err
	}

	chars := make([]rune, 0, b.opts.LastChar-b.opts.FirstChar+1)
	for r := b.opts.FirstChar; r <= b.opts.LastChar; r++ {
		chars = append(chars, r)
	}

	// Rasterization is embarrassingly parallel across characters: each
	// worker owns its sfnt.Buffer and writes a distinct slot. Packing
	// below stays single-threaded, every placement depends on the ones
	// before it.
	glyphs := make([]sdf.Glyph, len(chars))
	var g errgroup.Group
	g.SetLimit(b.opts.Workers)
	for i, r := range chars {
		i, r := i, r
		g.Go(func() error {
			var buf sfnt.Buffer
			contours, m, err := src.extract(&buf, r)
			if err != nil {
				return err
			}
			glyphs[i] = sdf.Rasterize(uint32(r), contours, m, b.opts.Spread)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	Logger().Debug("rasterized glyph fields", "font", fontPath, "glyphs", len(glyphs), "spread", b.opts.Spread)

	packed, placed := atlas.Pack(glyphs)
	Logger().Debug("packed atlas", "width", packed.Width, "height", packed.Height, "glyphs", len(placed))

	f := &Font{
		Glyphs:       make(map[rune]Glyph, len(placed)),
		AtlasWidth:   packed.Width,
		AtlasHeight:  packed.Height,
		AtlasPixels:  packed.Pixels,
		SpaceAdvance: float32(spaceAdvance),
	}
	for _, p := range placed {
		f.Glyphs[rune(p.Glyph.CharCode)] = Glyph{
			CharCode: p.Glyph.CharCode,
			X:        float32(p.X),
			Y:        float32(p.Y),
			Width:    float32(p.Glyph.Width),
			Height:   float32(p.Glyph.Height),
			BearingX: p.Glyph.BearingX,
			BearingY: p.Glyph.BearingY,
			Advance:  p.Glyph.Advance,
		}
	}
	return f, nil
}

// cacheKey derives the deterministic cache identity for a font file and
// pixel size: the file's base name without extension, followed by the size.
func cacheKey(fontPath string, pixelSize int) string {
	stem := strings.TrimSuffix(filepath.Base(fontPath), filepath.Ext(fontPath))
	return fmt.Sprintf("%s%d", stem, pixelSize)
}
