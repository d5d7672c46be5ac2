package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/Super-Rogatory/simple-image-quantization/internal/quant"
)

// New creates an empty report for the given source file.
func New(source string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      source,
	}
}

// Fill copies the outcome of a pass into the report.
func (r *Report) Fill(res *quant.Result) {
	r.Mode = int(res.Mode)
	r.ModeName = res.Mode.String()
	r.Colors = res.Colors
	r.Requested = res.Requested
	r.Partitions = res.Partitions
	r.Errors = Errors{
		Red:   res.Errors.Sum(quant.Red),
		Green: res.Errors.Sum(quant.Green),
		Blue:  res.Errors.Sum(quant.Blue),
		Total: res.Errors.Total(),
	}

	r.Tables = nil
	seen := map[*quant.Partition]int{}
	for _, c := range quant.Channels {
		part := res.Tables[c]
		if part == nil {
			continue
		}
		if i, ok := seen[part]; ok {
			r.Tables[i].Channels = append(r.Tables[i].Channels, c.String())
			continue
		}
		seen[part] = len(r.Tables)
		r.Tables = append(r.Tables, newTable(part, c))
	}
}

func newTable(p *quant.Partition, c quant.Channel) Table {
	t := Table{
		Channels: []string{c.String()},
		Boundary: p.Boundary.String(),
		Buckets:  make([]Bucket, len(p.Buckets)),
	}
	for i, b := range p.Buckets {
		t.Buckets[i] = Bucket{Lo: b.Lo, Hi: b.Hi, Rep: b.Rep, Count: b.Count}
	}
	return t
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report written by WriteJSON.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

// WriteCSV writes sweep rows sorted by bucket count, with a
// "Buckets,Error" header.
func WriteCSV(rows []SweepRow, path string) error {
	sorted := append([]SweepRow(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Buckets < sorted[j].Buckets
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Write([]string{"Buckets", "Error"})
	for _, row := range sorted {
		w.Write([]string{strconv.Itoa(row.Buckets), strconv.FormatInt(row.Error, 10)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
