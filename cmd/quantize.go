package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Super-Rogatory/simple-image-quantization/internal/hasher"
	"github.com/Super-Rogatory/simple-image-quantization/internal/quant"
	"github.com/Super-Rogatory/simple-image-quantization/internal/rawrgb"
	"github.com/Super-Rogatory/simple-image-quantization/internal/report"
	"github.com/spf13/cobra"
)

var (
	quantMode    int
	quantColors  int64
	quantWorkers int
	quantReport  string
	quantSummary bool
	quantRaster  rasterFlags
)

var quantizeCmd = &cobra.Command{
	Use:   "quantize <file.rgb> [mode] [colors]",
	Short: "Quantize a raw planar RGB image and print the total error",
	Long: `Reads a headerless planar RGB file (all red samples, then green, then
blue), quantizes every channel and prints the sum of absolute errors.

Mode 1 is uniform, mode 2 is non-uniform; any other mode leaves the
image unchanged. The color budget sets the per-channel bucket count to
round(cbrt(colors)). Mode and budget may be given as flags or as the
second and third positional arguments.

Files ending in .zst are decompressed transparently.`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runQuantize,
}

func init() {
	quantizeCmd.Flags().IntVarP(&quantMode, "mode", "m", int(quant.ModeUniform), "1 = uniform, 2 = non-uniform, other = no-op")
	quantizeCmd.Flags().Int64VarP(&quantColors, "colors", "b", 64, "maximum number of distinct output colors")
	quantizeCmd.Flags().IntVarP(&quantWorkers, "workers", "w", 1, "goroutines for the pixel scan")
	quantizeCmd.Flags().StringVar(&quantReport, "report", "", "write a JSON report to this path")
	quantizeCmd.Flags().BoolVar(&quantSummary, "summary", false, "print per-channel errors and partitions")
	quantRaster.register(quantizeCmd)
	rootCmd.AddCommand(quantizeCmd)
}

func runQuantize(_ *cobra.Command, args []string) error {
	start := time.Now()

	mode, colors := quantMode, quantColors
	if len(args) > 1 {
		m, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("mode must be an integer: %q", args[1])
		}
		mode = m
	}
	if len(args) > 2 {
		c, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("colors must be an integer: %q", args[2])
		}
		colors = c
	}
	if colors < 1 {
		return fmt.Errorf("colors must be positive, got %d", colors)
	}

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	prof, err := quantRaster.resolve()
	if err != nil {
		return err
	}

	logVerbose("input:   %s", absInput)
	logVerbose("mode:    %s", quant.Mode(mode))
	logVerbose("colors:  %d (P=%d)", colors, quant.PartitionCount(colors))

	buf, err := rawrgb.ReadFile(absInput, prof.Width, prof.Height)
	if err != nil {
		return err
	}
	inHash := hasher.Fingerprint(buf, hasher.DefaultHexLen)

	res, err := quant.New(quant.Config{
		Mode:    quant.Mode(mode),
		Colors:  colors,
		Workers: quantWorkers,
	}).Run(buf)
	if err != nil {
		return fmt.Errorf("quantize: %w", err)
	}
	if !res.Mode.Valid() {
		logVerbose("mode %d is not a quantization mode, image left unchanged", mode)
	} else if res.Partitions != res.Requested {
		logVerbose("partition count %d clamped to %d", res.Requested, res.Partitions)
	}

	r := report.New(absInput)
	r.Profile = prof.Name
	r.Width, r.Height = prof.Width, prof.Height
	r.Workers = quantWorkers
	r.InputHash = inHash
	r.OutputHash = hasher.Fingerprint(buf, hasher.DefaultHexLen)
	r.Fill(res)

	fmt.Printf("Total Error Sum: %d\n", r.Errors.Total)
	if quantSummary {
		printQuantSummary(r, time.Since(start))
	}

	if quantReport != "" {
		if err := report.WriteJSON(r, quantReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logVerbose("report:  %s", quantReport)
	}
	return nil
}

func printQuantSummary(r *report.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Printf("  Image:       %s (%dx%d)\n", filepath.Base(r.Source), r.Width, r.Height)
	fmt.Printf("  Mode:        %s\n", r.ModeName)
	fmt.Printf("  Colors:      %d → %d buckets per channel\n", r.Colors, r.Partitions)
	fmt.Printf("  Red error:   %d\n", r.Errors.Red)
	fmt.Printf("  Green error: %d\n", r.Errors.Green)
	fmt.Printf("  Blue error:  %d\n", r.Errors.Blue)
	if px := int64(r.Width * r.Height); px > 0 {
		fmt.Printf("  Mean error:  %.3f per channel value\n", float64(r.Errors.Total)/float64(3*px))
	}
	fmt.Printf("  Input:       %s\n", r.InputHash)
	fmt.Printf("  Output:      %s\n", r.OutputHash)
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()

	for _, t := range r.Tables {
		fmt.Printf("  Partition (%v, %s):\n", t.Channels, t.Boundary)
		for i, b := range t.Buckets {
			fmt.Printf("    %3d  [%3d, %3d] → %3d  (%d)\n", i, b.Lo, b.Hi, b.Rep, b.Count)
		}
		fmt.Println()
	}
}
