// Command atlasgen builds a signed-distance-field glyph atlas from a font
// file and writes it to the cache directory, optionally dumping the packed
// atlas as a grayscale BMP for visual inspection.
//
// Usage:
//
//	atlasgen -font fonts/roboto.ttf -size 64 [-spread 8] [-cache dir] [-bmp atlas.bmp] [-v]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/image/bmp"

	"github.com/gogpu/fontatlas"
)

var (
	fontPath = flag.String("font", "", "input TTF/OTF font file")
	size     = flag.Int("size", 64, "pixel size to rasterize at")
	spread   = flag.Int("spread", 8, "distance field spread in pixels")
	cacheDir = flag.String("cache", "fontcache", "cache directory for the atlas file")
	bmpPath  = flag.String("bmp", "", "also write the atlas as a grayscale BMP")
	first    = flag.Int("first", 33, "first character code to include")
	last     = flag.Int("last", 126, "last character code to include")
	verbose  = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()
	if *fontPath == "" {
		fmt.Fprintln(os.Stderr, "atlasgen: -font is required")
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		fontatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	opts := fontatlas.DefaultOptions()
	opts.CacheDir = *cacheDir
	opts.Spread = *spread
	opts.FirstChar = rune(*first)
	opts.LastChar = rune(*last)

	builder, err := fontatlas.NewBuilder(opts)
	if err != nil {
		fatal(err)
	}

	font, err := builder.Build(*fontPath, *size)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("atlas %dx%d, %d glyphs, cache %s\n",
		font.AtlasWidth, font.AtlasHeight, len(font.Glyphs), font.Key)

	if *bmpPath != "" {
		if err := writeBMP(*bmpPath, font); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", *bmpPath)
	}
}

func writeBMP(path string, font *fontatlas.Font) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bmp.Encode(out, font.AtlasImage()); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "atlasgen:", err)
	os.Exit(1)
}
