package pipeline

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
	"github.com/Super-Rogatory/simple-image-quantization/internal/quant"
	"github.com/Super-Rogatory/simple-image-quantization/internal/report"
)

// SweepConfig describes an error-versus-buckets sweep over one image.
type SweepConfig struct {
	Source  *pixbuf.Buffer // left unmodified; every pass works on a copy
	Modes   []quant.Mode
	From    int // first per-channel bucket count
	To      int // last per-channel bucket count, inclusive
	Workers int
	Verbose bool
}

type sweepJob struct {
	mode    quant.Mode
	buckets int
}

// Sweep quantizes the source once per mode and bucket count b, with a
// color budget of b³, and returns the total error of every pass grouped
// by mode and sorted by bucket count. Passes run concurrently; each owns
// its buffer copy and accumulator.
func Sweep(cfg SweepConfig) (map[quant.Mode][]report.SweepRow, error) {
	if cfg.Source == nil {
		return nil, errors.New("sweep: no source image")
	}
	if cfg.From < 1 || cfg.To < cfg.From {
		return nil, fmt.Errorf("sweep: invalid bucket range %d..%d", cfg.From, cfg.To)
	}
	if len(cfg.Modes) == 0 {
		return nil, errors.New("sweep: no modes")
	}

	var jobs []sweepJob
	for _, m := range cfg.Modes {
		for b := cfg.From; b <= cfg.To; b++ {
			jobs = append(jobs, sweepJob{mode: m, buckets: b})
		}
	}

	rows := make([]report.SweepRow, len(jobs))
	var mu sync.Mutex
	var firstErr error

	forEach(len(jobs), cfg.Workers, func(i int) {
		j := jobs[i]
		b := int64(j.buckets)
		res, err := quant.New(quant.Config{Mode: j.mode, Colors: b * b * b}).Run(cfg.Source.Clone())
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("sweep %s b=%d: %w", j.mode, j.buckets, err)
			}
			mu.Unlock()
			return
		}
		rows[i] = report.SweepRow{Buckets: j.buckets, Error: res.Errors.Total()}
		if cfg.Verbose {
			fmt.Fprintf(os.Stderr, "[quant] sweep %s b=%d (P=%d): %d\n",
				j.mode, j.buckets, res.Partitions, res.Errors.Total())
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}

	out := make(map[quant.Mode][]report.SweepRow, len(cfg.Modes))
	for i, j := range jobs {
		out[j.mode] = append(out[j.mode], rows[i])
	}
	for m := range out {
		sort.Slice(out[m], func(a, b int) bool { return out[m][a].Buckets < out[m][b].Buckets })
	}
	return out, nil
}
