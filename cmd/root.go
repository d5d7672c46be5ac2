package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "quant",
	Short: "Per-channel color quantization for raw RGB rasters",
	Long: `quant — reduces the number of distinct colors in a raw planar RGB image
by mapping each channel onto a few representative levels, and reports
the absolute error of the mapping.

Two policies are available: uniform (equal-width buckets over 0-255)
and non-uniform (equal-population buckets per channel).`,
	Version:      version,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"quant %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[quant] "+format+"\n", args...)
	}
}
