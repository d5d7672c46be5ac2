package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
	"github.com/Super-Rogatory/simple-image-quantization/internal/quant"
)

func runPass(t *testing.T, mode quant.Mode, colors int64) *quant.Result {
	t.Helper()
	buf := pixbuf.New(8, 8)
	for i := 0; i < buf.Len(); i++ {
		buf.Set(i, uint8(i*4), uint8(255-i*3), uint8(i*i))
	}
	res, err := quant.New(quant.Config{Mode: mode, Colors: colors}).Run(buf)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res
}

func TestReportRoundtrip(t *testing.T) {
	r := New("dataset/test.rgb")
	r.Width, r.Height = 8, 8
	r.InputHash, r.OutputHash = "aaaa", "bbbb"
	r.Fill(runPass(t, quant.ModeUniform, 27))

	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	r2, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if r2.Version != SupportedVersion {
		t.Errorf("version: got %d, want %d", r2.Version, SupportedVersion)
	}
	if r2.Mode != 1 || r2.ModeName != "uniform" {
		t.Errorf("mode: got %d %q", r2.Mode, r2.ModeName)
	}
	if r2.Partitions != 3 || r2.Requested != 3 {
		t.Errorf("partitions: got %d/%d", r2.Requested, r2.Partitions)
	}
	if r2.Errors.Total != r2.Errors.Red+r2.Errors.Green+r2.Errors.Blue {
		t.Errorf("total %d is not the channel sum", r2.Errors.Total)
	}
	if r2.Errors.Total != r.Errors.Total || r2.OutputHash != "bbbb" {
		t.Error("fields lost in round trip")
	}
}

func TestFill_TablesPerMode(t *testing.T) {
	r := New("x")
	r.Fill(runPass(t, quant.ModeUniform, 64))
	if len(r.Tables) != 1 {
		t.Fatalf("uniform: got %d tables, want 1", len(r.Tables))
	}
	if got := r.Tables[0].Channels; len(got) != 3 {
		t.Errorf("uniform table channels: got %v", got)
	}
	if r.Tables[0].Boundary != "closed" || len(r.Tables[0].Buckets) != 4 {
		t.Errorf("uniform table: %+v", r.Tables[0])
	}

	r.Fill(runPass(t, quant.ModeNonUniform, 64))
	if len(r.Tables) != 3 {
		t.Fatalf("non-uniform: got %d tables, want 3", len(r.Tables))
	}
	for i, name := range []string{"red", "green", "blue"} {
		if r.Tables[i].Channels[0] != name || r.Tables[i].Boundary != "half-open" {
			t.Errorf("table %d: %v %s", i, r.Tables[i].Channels, r.Tables[i].Boundary)
		}
	}

	r.Fill(runPass(t, quant.Mode(9), 64))
	if len(r.Tables) != 0 || r.Errors.Total != 0 {
		t.Errorf("no-op: got %d tables, error %d", len(r.Tables), r.Errors.Total)
	}
}

func TestReportIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"source": "a.rgb",
		"mode": 2,
		"future_field": "should be ignored",
		"errors": { "red": 1, "green": 2, "blue": 3, "total": 6, "max": 9 }
	}`

	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if r.Mode != 2 || r.Errors.Total != 6 {
		t.Errorf("got mode %d total %d", r.Mode, r.Errors.Total)
	}
}

func TestWriteCSV_Sorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results_mode_1.csv")
	rows := []SweepRow{{Buckets: 4, Error: 40}, {Buckets: 2, Error: 900}, {Buckets: 3, Error: 120}}
	if err := WriteCSV(rows, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Buckets,Error\n2,900\n3,120\n4,40\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
	if rows[0].Buckets != 4 {
		t.Error("input rows were reordered")
	}
}
