package cmd

import (
	"fmt"

	"github.com/Super-Rogatory/simple-image-quantization/internal/hasher"
	"github.com/Super-Rogatory/simple-image-quantization/internal/quant"
	"github.com/Super-Rogatory/simple-image-quantization/internal/rawrgb"
	"github.com/Super-Rogatory/simple-image-quantization/internal/report"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report.json>",
	Short: "Re-run the pass recorded in a report and check it reproduces",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	r, err := report.ReadJSON(args[0])
	if err != nil {
		return err
	}
	if r.Version != report.SupportedVersion {
		return fmt.Errorf("unsupported report version: %d", r.Version)
	}

	buf, err := rawrgb.ReadFile(r.Source, r.Width, r.Height)
	if err != nil {
		return err
	}

	errs := validateReport(r, func() (*quant.Result, string, string, error) {
		in := hasher.Fingerprint(buf, hasher.DefaultHexLen)
		res, err := quant.New(quant.Config{
			Mode:    quant.Mode(r.Mode),
			Colors:  r.Colors,
			Workers: r.Workers,
		}).Run(buf)
		if err != nil {
			return nil, "", "", err
		}
		return res, in, hasher.Fingerprint(buf, hasher.DefaultHexLen), nil
	})

	if len(errs) == 0 {
		fmt.Println("  ✓ Report reproduces")
		fmt.Printf("  ✓ %s, %d buckets, total error %d\n", r.ModeName, r.Partitions, r.Errors.Total)
		return nil
	}

	fmt.Printf("  ✗ Report has %d mismatch(es):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

// validateReport re-runs a pass and lists every recorded value that differs.
func validateReport(r *report.Report, rerun func() (*quant.Result, string, string, error)) []string {
	var errs []string

	// Check internal consistency first.
	if sum := r.Errors.Red + r.Errors.Green + r.Errors.Blue; sum != r.Errors.Total {
		errs = append(errs, fmt.Sprintf("errors.total %d != channel sum %d", r.Errors.Total, sum))
	}
	if want := quant.PartitionCount(r.Colors); r.Requested != want {
		errs = append(errs, fmt.Sprintf("requested_partitions %d, colors %d gives %d", r.Requested, r.Colors, want))
	}

	res, inHash, outHash, err := rerun()
	if err != nil {
		return append(errs, fmt.Sprintf("re-run failed: %v", err))
	}

	if inHash != r.InputHash {
		errs = append(errs, fmt.Sprintf("input hash mismatch: report=%s, file=%s", r.InputHash, inHash))
	}
	if outHash != r.OutputHash {
		errs = append(errs, fmt.Sprintf("output hash mismatch: report=%s, re-run=%s", r.OutputHash, outHash))
	}
	if res.Partitions != r.Partitions {
		errs = append(errs, fmt.Sprintf("partitions: report=%d, re-run=%d", r.Partitions, res.Partitions))
	}

	got := report.New(r.Source)
	got.Fill(res)
	for _, c := range []struct {
		name       string
		want, have int64
	}{
		{"red", r.Errors.Red, got.Errors.Red},
		{"green", r.Errors.Green, got.Errors.Green},
		{"blue", r.Errors.Blue, got.Errors.Blue},
		{"total", r.Errors.Total, got.Errors.Total},
	} {
		if c.want != c.have {
			errs = append(errs, fmt.Sprintf("%s error: report=%d, re-run=%d", c.name, c.want, c.have))
		}
	}

	return errs
}
