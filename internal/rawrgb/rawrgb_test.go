package rawrgb

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
)

func TestDecode_PlanarLayout(t *testing.T) {
	// 2x2 image: R plane, G plane, B plane.
	data := []byte{
		1, 2, 3, 4,
		10, 20, 30, 40,
		100, 200, 250, 255,
	}
	buf, err := Decode(bytes.NewReader(data), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 10, 100, 2, 20, 200, 3, 30, 250, 4, 40, 255}
	if !bytes.Equal(buf.Pix, want) {
		t.Errorf("interleaved: got %v, want %v", buf.Pix, want)
	}

	var out bytes.Buffer
	if err := Encode(&out, buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Errorf("planar: got %v, want %v", out.Bytes(), data)
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := Decode(bytes.NewReader(make([]byte, 11)), 2, 2); !errors.Is(err, pixbuf.ErrSize) {
		t.Errorf("short: got %v, want ErrSize", err)
	}
	if _, err := Decode(bytes.NewReader(nil), 2, 2); !errors.Is(err, pixbuf.ErrSize) {
		t.Errorf("empty: got %v, want ErrSize", err)
	}
	if _, err := Decode(bytes.NewReader(make([]byte, 13)), 2, 2); !errors.Is(err, ErrTrailingData) {
		t.Errorf("long: got %v, want ErrTrailingData", err)
	}
	if _, err := Decode(bytes.NewReader(make([]byte, 12)), 0, 4); err == nil {
		t.Error("zero width accepted")
	}
}

func TestFiles(t *testing.T) {
	src := pixbuf.New(7, 5)
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 13)
	}

	dir := t.TempDir()
	for _, name := range []string{"plain.rgb", "packed.rgb.zst", "UPPER.RGB.ZST"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(path, src); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := ReadFile(path, 7, 5)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !got.Equal(src) {
				t.Error("pixels differ after file round trip")
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if !IsCompressed(path) && info.Size() != int64(len(src.Pix)) {
				t.Errorf("plain size: got %d, want %d", info.Size(), len(src.Pix))
			}
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.rgb"), 4, 4)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want ErrNotExist", err)
	}
}
