package profile

import "testing"

func TestGet_Fallback(t *testing.T) {
	p := Get("does-not-exist")
	if p.Name != "does-not-exist" {
		t.Errorf("name: got %q", p.Name)
	}
	if p.Width != 512 || p.Height != 512 {
		t.Errorf("fallback size: got %dx%d, want 512x512", p.Width, p.Height)
	}
	if Known("does-not-exist") || !Known(DefaultName) {
		t.Error("Known reports wrong membership")
	}
}

func TestOverride(t *testing.T) {
	p := Get("vga").Override(0, 100)
	if p.Width != 640 || p.Height != 100 {
		t.Errorf("got %dx%d, want 640x100", p.Width, p.Height)
	}
	if p.RawSize() != 640*100*3 {
		t.Errorf("raw size: got %d", p.RawSize())
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(profiles) {
		t.Fatalf("got %d names", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("not sorted: %v", names)
		}
	}
}
