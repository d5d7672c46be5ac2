//go:build ignore

// gen_fixtures creates small raw planar test images for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
	"github.com/Super-Rogatory/simple-image-quantization/internal/rawrgb"
)

// All fixtures use the default lena-512 raster.
const size = 512

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fixtures := map[string]*pixbuf.Buffer{
		"gradient.rgb":   gradient(size, size),
		"solid.rgb":      solid(size, size, 200, 100, 50),
		"noise.rgb.zst":  noise(size, size),
		"two-levels.rgb": twoLevels(size, size),
	}
	for name, buf := range fixtures {
		if err := rawrgb.WriteFile(filepath.Join(dir, name), buf); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s\n", len(fixtures), dir)
}

func gradient(w, h int) *pixbuf.Buffer {
	buf := pixbuf.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(y*w+x, uint8(x*255/w), uint8(y*255/h), 128)
		}
	}
	return buf
}

func solid(w, h int, r, g, b uint8) *pixbuf.Buffer {
	buf := pixbuf.New(w, h)
	for i := 0; i < buf.Len(); i++ {
		buf.Set(i, r, g, b)
	}
	return buf
}

// noise is a deterministic LCG pattern; every channel is close to uniform.
func noise(w, h int) *pixbuf.Buffer {
	buf := pixbuf.New(w, h)
	seed := uint32(1)
	for i := range buf.Pix {
		seed = seed*1664525 + 1013904223
		buf.Pix[i] = uint8(seed >> 24)
	}
	return buf
}

// twoLevels splits the image into a dark left half and a bright right half,
// so equal-count buckets straddle duplicate values.
func twoLevels(w, h int) *pixbuf.Buffer {
	buf := pixbuf.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(20)
			if x >= w/2 {
				v = 230
			}
			buf.Set(y*w+x, v, v, v)
		}
	}
	return buf
}
