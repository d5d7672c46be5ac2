package pipeline

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/Super-Rogatory/simple-image-quantization/internal/hasher"
	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
	"github.com/Super-Rogatory/simple-image-quantization/internal/rawrgb"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Converted describes one raw raster written by the pipeline.
type Converted struct {
	Key        string
	OutPath    string // relative to the output directory
	OrigWidth  int
	OrigHeight int
	Hash       string
}

// convertResult holds the result of processing a single source image.
type convertResult struct {
	out Converted
	err error
}

// convertImage decodes one image, fits it to the profile raster and writes
// it in planar layout.
func convertImage(src Source, cfg Config) convertResult {
	result := convertResult{out: Converted{Key: src.Key}}

	f, err := os.Open(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return result
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	result.out.OrigWidth = bounds.Dx()
	result.out.OrigHeight = bounds.Dy()

	buf := Fit(img, cfg.Profile.Width, cfg.Profile.Height)
	result.out.Hash = hasher.Fingerprint(buf, hasher.DefaultHexLen)

	ext := ".rgb"
	if cfg.Compress {
		ext += ".zst"
	}
	rel := filepath.FromSlash(src.Key) + ext
	outPath := filepath.Join(cfg.OutputDir, rel)
	if dir := filepath.Dir(outPath); dir != cfg.OutputDir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			result.err = fmt.Errorf("create %s: %w", dir, err)
			return result
		}
	}
	if err := rawrgb.WriteFile(outPath, buf); err != nil {
		result.err = err
		return result
	}
	result.out.OutPath = filepath.ToSlash(rel)

	return result
}

// Fit scales and center-crops img to exactly width×height and flattens it
// to RGB. Images already at that size are only flattened.
func Fit(img image.Image, width, height int) *pixbuf.Buffer {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return pixbuf.FromImage(img)
	}
	return pixbuf.FromImage(imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos))
}
