package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pipeline"
	"github.com/Super-Rogatory/simple-image-quantization/internal/quant"
	"github.com/Super-Rogatory/simple-image-quantization/internal/rawrgb"
	"github.com/Super-Rogatory/simple-image-quantization/internal/report"
	"github.com/spf13/cobra"
)

var (
	sweepFrom    int
	sweepTo      int
	sweepOutDir  string
	sweepWorkers int
	sweepModes   []int
	sweepRaster  rasterFlags
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <file.rgb>",
	Short: "Measure total error over a range of bucket counts",
	Long: `Quantizes the image once for every per-channel bucket count b in
[--from, --to] using a color budget of b³, for each requested mode, and
writes results_mode_<m>.csv files with "Buckets,Error" rows.`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 2, "first bucket count")
	sweepCmd.Flags().IntVar(&sweepTo, "to", 256, "last bucket count")
	sweepCmd.Flags().StringVarP(&sweepOutDir, "out", "o", ".", "directory for CSV results")
	sweepCmd.Flags().IntVarP(&sweepWorkers, "workers", "w", 0, "parallel passes (0 = NumCPU)")
	sweepCmd.Flags().IntSliceVar(&sweepModes, "modes", []int{1, 2}, "modes to sweep")
	sweepRaster.register(sweepCmd)
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(_ *cobra.Command, args []string) error {
	start := time.Now()

	prof, err := sweepRaster.resolve()
	if err != nil {
		return err
	}

	var modes []quant.Mode
	for _, m := range sweepModes {
		mode := quant.Mode(m)
		if !mode.Valid() {
			return fmt.Errorf("cannot sweep mode %d", m)
		}
		modes = append(modes, mode)
	}

	buf, err := rawrgb.ReadFile(args[0], prof.Width, prof.Height)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(sweepOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	results, err := pipeline.Sweep(pipeline.SweepConfig{
		Source:  buf,
		Modes:   modes,
		From:    sweepFrom,
		To:      sweepTo,
		Workers: sweepWorkers,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	for _, m := range modes {
		rows := results[m]
		name := fmt.Sprintf("results_mode_%d.csv", int(m))
		path := filepath.Join(sweepOutDir, name)
		if err := report.WriteCSV(rows, path); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}

		first, last := rows[0], rows[len(rows)-1]
		fmt.Printf("  %-12s %3d buckets: %12d   %3d buckets: %12d   → %s\n",
			m, first.Buckets, first.Error, last.Buckets, last.Error, name)
	}
	fmt.Printf("  Time:        %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Println()
	return nil
}
