package cmd

import (
	"fmt"
	"os"

	"github.com/Super-Rogatory/simple-image-quantization/internal/hasher"
	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
	"github.com/Super-Rogatory/simple-image-quantization/internal/quant"
	"github.com/Super-Rogatory/simple-image-quantization/internal/rawrgb"
	"github.com/spf13/cobra"
)

var statsRaster rasterFlags

var statsCmd = &cobra.Command{
	Use:   "stats <file.rgb>",
	Short: "Display value statistics of a raw planar RGB image",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsRaster.register(statsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	prof, err := statsRaster.resolve()
	if err != nil {
		return err
	}

	buf, err := rawrgb.ReadFile(path, prof.Width, prof.Height)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  File:             %s (%s)\n", path, formatBytes(info.Size()))
	fmt.Printf("  Raster:           %dx%d, %d pixels\n", buf.Width, buf.Height, buf.Len())
	fmt.Printf("  Fingerprint:      %s\n", hasher.Fingerprint(buf, hasher.DefaultHexLen))
	fmt.Printf("  Distinct colors:  %d\n", distinctColors(buf))
	fmt.Println()

	hists := quant.ChannelHistograms(buf)
	fmt.Println("  Channel breakdown:")
	for _, c := range quant.Channels {
		h := &hists[c]
		lo, hi := valueRange(h)
		fmt.Printf("    %-6s  min %3d  max %3d  distinct %3d  mean %.2f\n",
			c, lo, hi, h.Distinct(), mean(h))
	}
	fmt.Println()
	return nil
}

// distinctColors counts unique RGB triples with a 2 MiB bitset.
func distinctColors(buf *pixbuf.Buffer) int {
	seen := make([]uint64, 1<<24/64)
	n := 0
	for i := 0; i < buf.Len(); i++ {
		r, g, b := buf.At(i)
		key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		word, bit := key/64, uint64(1)<<(key%64)
		if seen[word]&bit == 0 {
			seen[word] |= bit
			n++
		}
	}
	return n
}

func valueRange(h *quant.Histogram) (lo, hi int) {
	lo, hi = -1, -1
	for v, c := range h {
		if c == 0 {
			continue
		}
		if lo < 0 {
			lo = v
		}
		hi = v
	}
	return lo, hi
}

func mean(h *quant.Histogram) float64 {
	var sum, n int64
	for v, c := range h {
		sum += int64(v) * int64(c)
		n += int64(c)
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
