package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTemplateName is used when the output path is a directory.
const DefaultTemplateName = "color-by-numbers.png"

// SavePNG encodes img to path, creating parent directories.
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// OutputPath derives the template path. An empty output yields
// dir/<input name>_<timestamp>.png, an existing directory gets
// DefaultTemplateName inside it, anything else is used as is.
func OutputPath(output, input, dir string, now time.Time) string {
	if output == "" {
		baseName := filepath.Base(input)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		cleanName := strings.ReplaceAll(nameOnly, " ", "_")
		timestamp := now.Format("2006-01-02_15-04-05")
		return filepath.Join(dir, fmt.Sprintf("%s_%s.png", cleanName, timestamp))
	}
	if fi, err := os.Stat(output); err == nil && fi.IsDir() {
		return filepath.Join(output, DefaultTemplateName)
	}
	return output
}

// Sibling returns path with its extension replaced by suffix, e.g.
// Sibling("out/a.png", "_legend.png") == "out/a_legend.png".
func Sibling(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// WithBlockSize tags path with a block size, e.g. "out/a_b15.png".
func WithBlockSize(path string, blockSize int) string {
	return Sibling(path, fmt.Sprintf("_b%d%s", blockSize, filepath.Ext(path)))
}
