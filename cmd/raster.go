package cmd

import (
	"fmt"
	"strings"

	"github.com/Super-Rogatory/simple-image-quantization/internal/profile"
	"github.com/spf13/cobra"
)

// rasterFlags selects the fixed raster size of a command.
type rasterFlags struct {
	profile string
	width   int
	height  int
}

func (f *rasterFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.profile, "profile", "p", profile.DefaultName,
		"raster size preset ("+strings.Join(profile.Names(), ", ")+")")
	c.Flags().IntVar(&f.width, "width", 0, "raster width (overrides profile)")
	c.Flags().IntVar(&f.height, "height", 0, "raster height (overrides profile)")
}

func (f *rasterFlags) resolve() (profile.Profile, error) {
	if f.width < 0 || f.height < 0 {
		return profile.Profile{}, fmt.Errorf("invalid raster size %dx%d", f.width, f.height)
	}
	if !profile.Known(f.profile) {
		logVerbose("unknown profile %q, falling back to %s", f.profile, profile.DefaultName)
	}
	p := profile.Get(f.profile).Override(f.width, f.height)
	logVerbose("raster:  %s (%dx%d)", p.Name, p.Width, p.Height)
	return p, nil
}
