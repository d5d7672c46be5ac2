package hasher

import (
	"testing"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
)

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("quant"), 0)
	if len(a) != 16 {
		t.Fatalf("full hash length: got %d", len(a))
	}
	if b := ContentHash([]byte("quant"), 8); b != a[:8] {
		t.Errorf("truncated: got %q, want %q", b, a[:8])
	}
	if ContentHash([]byte("quanT"), 0) == a {
		t.Error("different inputs produced the same hash")
	}
}

func TestFingerprint_IncludesShape(t *testing.T) {
	wide := pixbuf.New(4, 1)
	tall := pixbuf.New(1, 4)
	if Fingerprint(wide, 0) == Fingerprint(tall, 0) {
		t.Error("same bytes with different shapes should not collide")
	}

	again := pixbuf.New(4, 1)
	if Fingerprint(wide, DefaultHexLen) != Fingerprint(again, DefaultHexLen) {
		t.Error("fingerprint not deterministic")
	}
	again.Set(2, 1, 0, 0)
	if Fingerprint(wide, 0) == Fingerprint(again, 0) {
		t.Error("pixel change not reflected in fingerprint")
	}
}
