package pixbuf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel is the size of one interleaved RGB triple.
const BytesPerPixel = 3

// ErrSize is returned when a byte slice does not match width×height×3.
var ErrSize = errors.New("pixel data size does not match dimensions")

// Buffer is an interleaved RGB raster. The pixel at index i (row-major)
// occupies Pix[i*3 : i*3+3] as R, G, B.
type Buffer struct {
	Pix    []uint8
	Width  int
	Height int
}

// New allocates a zeroed buffer of the given size.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Pix:    make([]uint8, width*height*BytesPerPixel),
		Width:  width,
		Height: height,
	}
}

// FromPix wraps existing interleaved data without copying.
func FromPix(pix []uint8, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if len(pix) != width*height*BytesPerPixel {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSize, len(pix), width*height*BytesPerPixel)
	}
	return &Buffer{Pix: pix, Width: width, Height: height}, nil
}

// Len returns the number of pixels.
func (b *Buffer) Len() int { return b.Width * b.Height }

// At returns the triple of pixel i.
func (b *Buffer) At(i int) (r, g, bl uint8) {
	o := i * BytesPerPixel
	return b.Pix[o], b.Pix[o+1], b.Pix[o+2]
}

// Set overwrites pixel i.
func (b *Buffer) Set(i int, r, g, bl uint8) {
	o := i * BytesPerPixel
	b.Pix[o] = r
	b.Pix[o+1] = g
	b.Pix[o+2] = bl
}

// Clone returns a deep copy, so a second pass can run on the original data.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Pix: pix, Width: b.Width, Height: b.Height}
}

// Equal reports whether both buffers have the same size and bytes.
func (b *Buffer) Equal(o *Buffer) bool {
	return b.Width == o.Width && b.Height == o.Height && bytes.Equal(b.Pix, o.Pix)
}

// Image returns an opaque NRGBA copy for display or encoding layers.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, o := 0, 0; i < b.Len(); i, o = i+1, o+4 {
		r, g, bl := b.At(i)
		img.Pix[o] = r
		img.Pix[o+1] = g
		img.Pix[o+2] = bl
		img.Pix[o+3] = 0xff
	}
	return img
}

// FromImage flattens any image into a buffer of the same bounds.
// Alpha is dropped; colors are taken un-premultiplied.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := New(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf.Set(i, c.R, c.G, c.B)
			i++
		}
	}
	return buf
}
