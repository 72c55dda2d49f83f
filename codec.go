package fontatlas

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Cache file layout, little-endian, no implicit padding:
//
//	u32 atlas_width
//	u32 atlas_height
//	u8[atlas_width*atlas_height]  atlas_pixels (row-major)
//	u8[pad]                       pad = (4 - (atlas_width*atlas_height) % 4) % 4
//	f32 space_advance
//	u32 glyph_count
//	glyph_count records of 32 bytes:
//	  u32 char_code
//	  f32 position_x, position_y
//	  f32 width, height
//	  f32 bearing_x, bearing_y
//	  f32 advance
//
// Glyph records are sorted by char_code, so the file round-trips
// byte-identically.

const glyphRecordSize = 32

// Save writes the font's atlas and glyph table to path.
func Save(path string, f *Font) error {
	pixels := f.AtlasWidth * f.AtlasHeight
	pad := (4 - pixels%4) % 4
	glyphs := f.GlyphList()

	buf := make([]byte, 0, 8+pixels+pad+8+glyphRecordSize*len(glyphs))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(f.AtlasWidth))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(f.AtlasHeight))
	buf = append(buf, f.AtlasPixels...)
	buf = append(buf, make([]byte, pad)...)
	buf = appendFloat32(buf, f.SpaceAdvance)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(glyphs)))

	for _, g := range glyphs {
		buf = binary.LittleEndian.AppendUint32(buf, g.CharCode)
		buf = appendFloat32(buf, g.X)
		buf = appendFloat32(buf, g.Y)
		buf = appendFloat32(buf, g.Width)
		buf = appendFloat32(buf, g.Height)
		buf = appendFloat32(buf, g.BearingX)
		buf = appendFloat32(buf, g.BearingY)
		buf = appendFloat32(buf, g.Advance)
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("fontatlas: write cache: %w", err)
	}
	return nil
}

// Load reads a cache file written by Save.
//
// A missing file is not an error: Load returns ErrCacheMiss so the caller
// rebuilds. Malformed or truncated content also returns ErrCacheMiss after
// logging a warning, so a corrupted cache self-heals by being rebuilt and
// overwritten. Any other I/O error is returned as-is.
func Load(path string) (*Font, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("fontatlas: read cache: %w", err)
	}

	f, err := decode(buf)
	if err != nil {
		Logger().Warn("discarding corrupt atlas cache", "path", path, "err", err)
		return nil, ErrCacheMiss
	}
	return f, nil
}

func decode(buf []byte) (*Font, error) {
	r := reader{buf: buf}

	w := int(r.u32())
	h := int(r.u32())
	pixels := r.bytes(w * h)
	r.skip((4 - (w*h)%4) % 4)
	space := r.f32()
	count := int(r.u32())

	if r.err != nil {
		return nil, r.err
	}
	if len(r.buf)-r.off != count*glyphRecordSize {
		return nil, fmt.Errorf("glyph table length %d does not match count %d", len(r.buf)-r.off, count)
	}

	f := &Font{
		Glyphs:       make(map[rune]Glyph, count),
		AtlasWidth:   w,
		AtlasHeight:  h,
		AtlasPixels:  pixels,
		SpaceAdvance: space,
	}
	for i := 0; i < count; i++ {
		g := Glyph{
			CharCode: r.u32(),
			X:        r.f32(),
			Y:        r.f32(),
			Width:    r.f32(),
			Height:   r.f32(),
			BearingX: r.f32(),
			BearingY: r.f32(),
			Advance:  r.f32(),
		}
		if _, dup := f.Glyphs[rune(g.CharCode)]; dup {
			return nil, fmt.Errorf("duplicate glyph record for char %d", g.CharCode)
		}
		f.Glyphs[rune(g.CharCode)] = g
	}
	return f, r.err
}

// reader is a cursor over the cache buffer. The first short read poisons
// it; callers check err once after a run of reads.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) u32() uint32 {
	if r.err != nil || r.off+4 > len(r.buf) {
		r.fail()
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil || n < 0 || r.off+n > len(r.buf) {
		r.fail()
		return nil
	}
	v := make([]byte, n)
	copy(v, r.buf[r.off:])
	r.off += n
	return v
}

func (r *reader) skip(n int) {
	if r.err != nil || r.off+n > len(r.buf) {
		r.fail()
		return
	}
	r.off += n
}

func (r *reader) fail() {
	if r.err == nil {
		r.err = fmt.Errorf("truncated cache file at offset %d", r.off)
	}
}

func appendFloat32(buf []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
}
