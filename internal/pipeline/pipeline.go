package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/Super-Rogatory/simple-image-quantization/internal/profile"
)

// Config holds all parameters for a conversion run.
type Config struct {
	Input     string // image file or directory
	OutputDir string
	Profile   profile.Profile
	Workers   int
	Verbose   bool
	Compress  bool // write .rgb.zst instead of .rgb
}

// Pipeline converts ordinary images into raw planar rasters.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg}
}

// Run converts every image found under the input and returns the written
// rasters in scan order.
func (p *Pipeline) Run() ([]Converted, error) {
	sources, err := ScanImages(p.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.Input)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[quant] found %d images\n", len(sources))
	}

	results := make([]convertResult, len(sources))
	forEach(len(sources), p.cfg.Workers, func(i int) {
		s := sources[i]
		if p.cfg.Verbose {
			fmt.Fprintf(os.Stderr, "[quant] converting: %s\n", s.Key)
		}
		results[i] = convertImage(s, p.cfg)
	})

	var out []Converted
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		out = append(out, r.out)
	}

	// Report errors but don't fail the whole run for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[quant] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to convert", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[quant] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	return out, nil
}

// forEach calls fn for every index in [0, n) with at most workers calls
// in flight, and returns when all calls are done.
func forEach(n, workers int, fn func(i int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release
			fn(idx)
		}(i)
	}
	wg.Wait()
}
