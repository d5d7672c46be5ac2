// Package rawrgb reads and writes headerless planar RGB rasters.
//
// A file of a w×h image is exactly 3·w·h bytes: every red sample in
// row-major order, then every green sample, then every blue sample.
// Files ending in ".zst" are additionally zstd-framed.
package rawrgb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
	"github.com/klauspost/compress/zstd"
)

// ErrTrailingData is returned when a stream holds more than one raster.
var ErrTrailingData = errors.New("trailing data after planar raster")

// Decode reads one planar raster and deinterleaves it into RGB triples.
func Decode(r io.Reader, width, height int) (*pixbuf.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	n := width * height

	planes := make([]byte, 3*n)
	if _, err := io.ReadFull(r, planes); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("short raster, want %d bytes for %dx%d: %w", 3*n, width, height, pixbuf.ErrSize)
		}
		return nil, fmt.Errorf("read planes: %w", err)
	}
	var extra [1]byte
	if m, _ := r.Read(extra[:]); m > 0 {
		return nil, ErrTrailingData
	}

	buf := pixbuf.New(width, height)
	red, green, blue := planes[:n], planes[n:2*n], planes[2*n:]
	for i := 0; i < n; i++ {
		buf.Set(i, red[i], green[i], blue[i])
	}
	return buf, nil
}

// Encode writes buf in planar layout.
func Encode(w io.Writer, buf *pixbuf.Buffer) error {
	n := buf.Len()
	planes := make([]byte, 3*n)
	for i := 0; i < n; i++ {
		planes[i], planes[n+i], planes[2*n+i] = buf.At(i)
	}
	_, err := w.Write(planes)
	return err
}

// IsCompressed reports whether path is zstd-framed by naming convention.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zst")
}

// ReadFile loads a raster of the given size from path.
func ReadFile(path string, width, height int) (*pixbuf.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if IsCompressed(path) {
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	buf, err := Decode(r, width, height)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

// WriteFile stores buf at path, zstd-framing it when the name ends in ".zst".
func WriteFile(path string, buf *pixbuf.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if IsCompressed(path) {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			f.Close()
			return fmt.Errorf("zstd %s: %w", path, err)
		}
		if err := Encode(enc, buf); err != nil {
			enc.Close()
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := enc.Close(); err != nil {
			f.Close()
			return fmt.Errorf("flush %s: %w", path, err)
		}
	} else if err := Encode(f, buf); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
