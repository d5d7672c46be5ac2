package quant

import (
	"errors"
	"testing"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
)

// testBuffer fills a buffer with a deterministic, non-trivial pattern.
func testBuffer(w, h int) *pixbuf.Buffer {
	buf := pixbuf.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(y*w+x,
				uint8((x*17)^(y*31)),
				uint8(x*43+y*13),
				uint8((x*7)^(y*11)),
			)
		}
	}
	return buf
}

// directError computes the expected error sums without the engine.
func directError(orig, quantized *pixbuf.Buffer) [3]int64 {
	var sums [3]int64
	for i, v := range orig.Pix {
		d := int64(v) - int64(quantized.Pix[i])
		if d < 0 {
			d = -d
		}
		sums[i%3] += d
	}
	return sums
}

func TestPartitionCount(t *testing.T) {
	for _, tc := range []struct {
		colors int64
		want   int
	}{
		{0, 0},
		{-8, 0},
		{1, 1},
		{8, 2},
		{27, 3},
		{64, 4},
		{100, 5}, // 4.64
		{200, 6}, // 5.85
		{16777216, 256},
	} {
		if got := PartitionCount(tc.colors); got != tc.want {
			t.Errorf("PartitionCount(%d): got %d, want %d", tc.colors, got, tc.want)
		}
	}
}

func TestEngine_UnknownModeIsNoOp(t *testing.T) {
	for _, mode := range []Mode{0, 3, -1} {
		buf := testBuffer(16, 16)
		orig := buf.Clone()

		res, err := New(Config{Mode: mode, Colors: 64}).Run(buf)
		if err != nil {
			t.Fatalf("mode %d: %v", mode, err)
		}
		if !buf.Equal(orig) {
			t.Errorf("mode %d: buffer modified", mode)
		}
		if res.Errors.Total() != 0 {
			t.Errorf("mode %d: total error %d, want 0", mode, res.Errors.Total())
		}
		if res.Tables[Red] != nil {
			t.Errorf("mode %d: unexpected partition", mode)
		}
	}
}

func TestEngine_UniformSingleBucket(t *testing.T) {
	buf := testBuffer(8, 8)
	res, err := New(Config{Mode: ModeUniform, Colors: 1}).Run(buf)
	if err != nil {
		t.Fatal(err)
	}
	if res.Partitions != 1 {
		t.Fatalf("partitions: got %d", res.Partitions)
	}
	for i := 0; i < buf.Len(); i++ {
		r, g, b := buf.At(i)
		if r != 128 || g != 128 || b != 128 {
			t.Fatalf("pixel %d: got (%d,%d,%d), want (128,128,128)", i, r, g, b)
		}
	}
}

func TestEngine_UniformSharesPartition(t *testing.T) {
	res, err := New(Config{Mode: ModeUniform, Colors: 64}).Run(testBuffer(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if res.Tables[Red] != res.Tables[Green] || res.Tables[Green] != res.Tables[Blue] {
		t.Error("uniform channels should share one partition")
	}
	if res.Partitions != 4 || res.Tables[Red].Len() != 4 {
		t.Errorf("partitions: got %d/%d, want 4", res.Partitions, res.Tables[Red].Len())
	}
}

func TestEngine_ErrorMatchesDirectSum(t *testing.T) {
	for _, mode := range []Mode{ModeUniform, ModeNonUniform} {
		for _, colors := range []int64{1, 8, 27, 1000, 1 << 24} {
			buf := testBuffer(32, 24)
			orig := buf.Clone()

			res, err := New(Config{Mode: mode, Colors: colors}).Run(buf)
			if err != nil {
				t.Fatalf("%s/%d: %v", mode, colors, err)
			}
			want := directError(orig, buf)
			for _, c := range Channels {
				if got := res.Errors.Sum(c); got != want[c] {
					t.Errorf("%s/%d %s: got %d, want %d", mode, colors, c, got, want[c])
				}
			}
			if res.Errors.Total() != want[0]+want[1]+want[2] {
				t.Errorf("%s/%d: total mismatch", mode, colors)
			}
		}
	}
}

func TestEngine_NonUniformPerChannel(t *testing.T) {
	// Red spans the whole range, green is constant: the partitions differ.
	buf := pixbuf.New(64, 1)
	for i := 0; i < 64; i++ {
		buf.Set(i, uint8(i*4), 7, uint8(255-i))
	}
	res, err := New(Config{Mode: ModeNonUniform, Colors: 8}).Run(buf)
	if err != nil {
		t.Fatal(err)
	}
	if res.Tables[Red] == res.Tables[Green] {
		t.Fatal("non-uniform channels should not share a partition")
	}
	g := res.Tables[Green]
	if g.Buckets[0].Lo != 7 || g.Buckets[g.Len()-1].Hi != 7 {
		t.Errorf("green partition should only span 7, got %+v", g.Buckets)
	}
	if res.Errors.Sum(Green) != 0 {
		t.Errorf("green error: got %d, want 0", res.Errors.Sum(Green))
	}
	for i := 0; i < buf.Len(); i++ {
		if _, gv, _ := buf.At(i); gv != 7 {
			t.Fatalf("pixel %d green: got %d, want 7", i, gv)
		}
	}
}

func TestEngine_ClampsPartitions(t *testing.T) {
	// 2 pixels cannot be split into 256 groups.
	buf := pixbuf.New(2, 1)
	buf.Set(0, 10, 20, 30)
	buf.Set(1, 200, 210, 220)

	res, err := New(Config{Mode: ModeNonUniform, Colors: 1 << 24}).Run(buf.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if res.Requested != 256 || res.Partitions != 2 {
		t.Errorf("non-uniform: requested %d used %d, want 256/2", res.Requested, res.Partitions)
	}
	if res.Errors.Total() != 0 {
		t.Errorf("one pixel per bucket should be lossless, got %d", res.Errors.Total())
	}

	res, err = New(Config{Mode: ModeUniform, Colors: 1 << 30}).Run(buf.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if res.Partitions != 256 {
		t.Errorf("uniform: got %d partitions, want 256", res.Partitions)
	}

	res, err = New(Config{Mode: ModeUniform, Colors: 0}).Run(buf.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if res.Partitions != 1 {
		t.Errorf("uniform zero budget: got %d partitions, want 1", res.Partitions)
	}
}

func TestEngine_NonUniformEmptyBuffer(t *testing.T) {
	_, err := New(Config{Mode: ModeNonUniform, Colors: 8}).Run(pixbuf.New(0, 0))
	if !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("got %v, want ErrEmptyBuffer", err)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	for _, mode := range []Mode{ModeUniform, ModeNonUniform} {
		a, b := testBuffer(40, 30), testBuffer(40, 30)
		ra, err := New(Config{Mode: mode, Colors: 125}).Run(a)
		if err != nil {
			t.Fatal(err)
		}
		rb, err := New(Config{Mode: mode, Colors: 125}).Run(b)
		if err != nil {
			t.Fatal(err)
		}
		if ra.Errors != rb.Errors {
			t.Errorf("%s: errors differ: %+v vs %+v", mode, ra.Errors, rb.Errors)
		}
		if !a.Equal(b) {
			t.Errorf("%s: outputs differ", mode)
		}
	}
}

func TestEngine_ParallelScanMatchesSerial(t *testing.T) {
	for _, mode := range []Mode{ModeUniform, ModeNonUniform} {
		serial, parallel := testBuffer(37, 29), testBuffer(37, 29)
		rs, err := New(Config{Mode: mode, Colors: 343}).Run(serial)
		if err != nil {
			t.Fatal(err)
		}
		rp, err := New(Config{Mode: mode, Colors: 343, Workers: 6}).Run(parallel)
		if err != nil {
			t.Fatal(err)
		}
		if rs.Errors != rp.Errors {
			t.Errorf("%s: serial %+v, parallel %+v", mode, rs.Errors, rp.Errors)
		}
		if !serial.Equal(parallel) {
			t.Errorf("%s: parallel output differs", mode)
		}
	}
}

func TestEngine_RequantizeIsFixedPoint(t *testing.T) {
	buf := testBuffer(16, 16)
	if _, err := New(Config{Mode: ModeUniform, Colors: 216}).Run(buf); err != nil {
		t.Fatal(err)
	}
	once := buf.Clone()
	res, err := New(Config{Mode: ModeUniform, Colors: 216}).Run(buf)
	if err != nil {
		t.Fatal(err)
	}
	if res.Errors.Total() != 0 || !buf.Equal(once) {
		t.Errorf("second uniform pass changed the image (error %d)", res.Errors.Total())
	}
}

func TestAccumulator(t *testing.T) {
	var a Accumulator
	a.Record(Red, 10, 4)
	a.Record(Red, 4, 10)
	a.Record(Green, 255, 0)
	a.Record(Blue, 7, 7)
	if a.Sum(Red) != 12 || a.Sum(Green) != 255 || a.Sum(Blue) != 0 {
		t.Errorf("sums: got %d/%d/%d", a.Sum(Red), a.Sum(Green), a.Sum(Blue))
	}
	if a.Total() != 267 {
		t.Errorf("total: got %d, want 267", a.Total())
	}

	var b Accumulator
	b.Record(Blue, 0, 3)
	b.Merge(&a)
	a.Merge(&Accumulator{})
	if b.Total() != 270 || a.Total() != 267 {
		t.Errorf("merge: got %d and %d", b.Total(), a.Total())
	}
}

func BenchmarkEngine(b *testing.B) {
	src := testBuffer(512, 512)
	for _, mode := range []Mode{ModeUniform, ModeNonUniform} {
		b.Run(mode.String(), func(b *testing.B) {
			buf := src.Clone()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				copy(buf.Pix, src.Pix)
				if _, err := New(Config{Mode: mode, Colors: 4096}).Run(buf); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
