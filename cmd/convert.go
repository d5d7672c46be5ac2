package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	convertOutDir  string
	convertWorkers int
	convertZstd    bool
	convertRaster  rasterFlags
)

var convertCmd = &cobra.Command{
	Use:   "convert <image_or_dir>",
	Short: "Turn png/jpeg/gif/bmp/tiff/webp images into raw planar RGB inputs",
	Long: `Decodes images, scales and center-crops them to the raster size of the
selected profile, and writes them in the planar layout read by
"quant quantize". Directories are scanned recursively.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", "./dataset", "output directory")
	convertCmd.Flags().IntVarP(&convertWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	convertCmd.Flags().BoolVar(&convertZstd, "zstd", false, "write zstd-compressed .rgb.zst files")
	convertRaster.register(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(convertOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	prof, err := convertRaster.resolve()
	if err != nil {
		return err
	}
	if prof.Width <= 0 || prof.Height <= 0 {
		return fmt.Errorf("invalid raster size %dx%d", prof.Width, prof.Height)
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	converted, err := pipeline.New(pipeline.Config{
		Input:     absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   convertWorkers,
		Verbose:   verbose,
		Compress:  convertZstd,
	}).Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	fmt.Println()
	for _, c := range converted {
		fmt.Printf("  %-40s %5dx%-5d → %s  %s\n",
			truncKey(c.Key, 40), c.OrigWidth, c.OrigHeight, c.OutPath, c.Hash)
	}
	fmt.Println()
	fmt.Printf("  Converted:   %d images to %dx%d\n", len(converted), prof.Width, prof.Height)
	fmt.Printf("  Time:        %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Println()
	return nil
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
