package quant

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
)

// ErrEmptyBuffer is returned when a population-based pass gets no pixels.
var ErrEmptyBuffer = errors.New("empty pixel buffer")

// Mode selects the partitioning policy of an Engine.
type Mode int

const (
	ModeUniform    Mode = 1
	ModeNonUniform Mode = 2
)

// Valid reports whether m selects a policy. Any other value makes Run a no-op.
func (m Mode) Valid() bool {
	return m == ModeUniform || m == ModeNonUniform
}

func (m Mode) String() string {
	switch m {
	case ModeUniform:
		return "uniform"
	case ModeNonUniform:
		return "non-uniform"
	default:
		return fmt.Sprintf("none(%d)", int(m))
	}
}

// PartitionCount derives the per-channel bucket count for a target number of
// distinct colors: the joint palette is the product of three channel
// partitions, so P = round(cbrt(colors)). Non-positive budgets give 0.
func PartitionCount(colors int64) int {
	if colors <= 0 {
		return 0
	}
	return int(math.Round(math.Cbrt(float64(colors))))
}

// Config holds the parameters of a quantization pass.
type Config struct {
	Mode   Mode
	Colors int64 // target maximum number of distinct colors
	// Workers splits the pixel scan across goroutines. Values below 2 keep
	// the scan on the calling goroutine.
	Workers int
}

// Result describes one completed pass.
type Result struct {
	Mode   Mode
	Colors int64
	// Requested is the partition count derived from Colors; Partitions is
	// the count actually used after clamping to the policy's valid range.
	Requested  int
	Partitions int
	// Tables holds the partition applied to each channel, indexed by
	// Channel. Uniform passes share one partition across all three.
	// All nil when the mode is not valid.
	Tables [3]*Partition
	Errors Accumulator
}

// Engine quantizes pixel buffers in place.
type Engine struct {
	cfg        Config
	partitions int
}

// New creates an engine. The partition count is derived once here so both
// policies see the same value for the same budget.
func New(cfg Config) *Engine {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Engine{
		cfg:        cfg,
		partitions: PartitionCount(cfg.Colors),
	}
}

// Partitions returns the partition count derived from the color budget.
func (e *Engine) Partitions() int { return e.partitions }

// Run builds the partitions for the configured mode, then replaces every
// channel value in buf with its representative. Each pass gets its own
// Accumulator, so repeated runs are independent.
//
// An unrecognised mode leaves buf untouched and reports zero error.
func (e *Engine) Run(buf *pixbuf.Buffer) (*Result, error) {
	res := &Result{
		Mode:      e.cfg.Mode,
		Colors:    e.cfg.Colors,
		Requested: e.partitions,
	}

	switch e.cfg.Mode {
	case ModeUniform:
		p := clamp(e.partitions, 1, Levels)
		part, err := BuildUniform(p)
		if err != nil {
			return nil, err
		}
		res.Partitions = p
		res.Tables = [3]*Partition{part, part, part}

	case ModeNonUniform:
		n := buf.Len()
		if n == 0 {
			return nil, ErrEmptyBuffer
		}
		p := clamp(e.partitions, 1, n)
		hists := ChannelHistograms(buf)
		for _, c := range Channels {
			part, err := BuildNonUniform(&hists[c], p)
			if err != nil {
				return nil, fmt.Errorf("%s channel: %w", c, err)
			}
			res.Tables[c] = part
		}
		res.Partitions = p

	default:
		return res, nil
	}

	res.Errors = e.scan(buf, &res.Tables)
	return res, nil
}

// ChannelHistograms counts every channel of buf in a single pass.
func ChannelHistograms(buf *pixbuf.Buffer) [3]Histogram {
	var hists [3]Histogram
	pix := buf.Pix[:buf.Len()*pixbuf.BytesPerPixel]
	for o := 0; o < len(pix); o += pixbuf.BytesPerPixel {
		hists[Red].Add(pix[o])
		hists[Green].Add(pix[o+1])
		hists[Blue].Add(pix[o+2])
	}
	return hists
}

func (e *Engine) scan(buf *pixbuf.Buffer, tables *[3]*Partition) Accumulator {
	n := buf.Len()
	workers := min(e.cfg.Workers, n)

	if workers <= 1 {
		var acc Accumulator
		quantizeRange(buf, tables, &acc, 0, n)
		return acc
	}

	partial := make([]Accumulator, workers)
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(acc *Accumulator, start, end int) {
			defer wg.Done()
			quantizeRange(buf, tables, acc, start, end)
		}(&partial[w], start, end)
	}
	wg.Wait()

	var total Accumulator
	for i := range partial {
		total.Merge(&partial[i])
	}
	return total
}

// quantizeRange maps pixels [start, end). The error is taken from the
// original value before it is overwritten.
func quantizeRange(buf *pixbuf.Buffer, tables *[3]*Partition, acc *Accumulator, start, end int) {
	pix := buf.Pix
	for o := start * pixbuf.BytesPerPixel; o < end*pixbuf.BytesPerPixel; o += pixbuf.BytesPerPixel {
		for _, c := range Channels {
			orig := pix[o+int(c)]
			q := tables[c].Map(orig)
			acc.Record(c, orig, q)
			pix[o+int(c)] = q
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
