package profile

import "sort"

// Profile fixes the raster size of a run. Raw planar files carry no header,
// so the dimensions must come from here.
type Profile struct {
	Name   string
	Width  int
	Height int
}

// DefaultName is used when no profile is requested.
const DefaultName = "lena-512"

// Built-in profiles.
var profiles = map[string]Profile{
	"lena-512":   {Name: "lena-512", Width: 512, Height: 512},
	"square-256": {Name: "square-256", Width: 256, Height: 256},
	"cif":        {Name: "cif", Width: 352, Height: 288},
	"vga":        {Name: "vga", Width: 640, Height: 480},
}

// Get returns a profile by name. Falls back to lena-512 if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Names lists the built-in profiles in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Override replaces dimensions that are set (> 0).
func (p Profile) Override(width, height int) Profile {
	if width > 0 {
		p.Width = width
	}
	if height > 0 {
		p.Height = height
	}
	return p
}

// Pixels returns the pixel count of one raster.
func (p Profile) Pixels() int { return p.Width * p.Height }

// RawSize returns the byte size of one planar raster.
func (p Profile) RawSize() int64 { return int64(p.Pixels()) * 3 }
