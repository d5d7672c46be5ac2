package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the scanned directory.
	RelPath string
	// Key is RelPath without its extension, with forward slashes.
	Key string
	// Format is the source format (png, jpeg, gif, bmp, tiff, webp).
	Format string
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tiff": "tiff",
	".tif":  "tiff",
	".webp": "webp",
}

// ScanImages returns all image sources under root. A regular file is
// returned as a single source when it has a known extension.
func ScanImages(root string) ([]Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		src, ok := newSource(filepath.Dir(root), root)
		if !ok {
			return nil, fmt.Errorf("unsupported image extension: %s", filepath.Ext(root))
		}
		return []Source{src}, nil
	}

	var sources []Source
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if src, ok := newSource(root, path); ok {
			sources = append(sources, src)
		}
		return nil
	})
	return sources, err
}

func newSource(root, path string) (Source, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := imageExtensions[ext]
	if !ok {
		return Source{}, false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return Source{
		AbsPath: abs,
		RelPath: filepath.ToSlash(rel),
		Key:     filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel))),
		Format:  format,
	}, true
}
