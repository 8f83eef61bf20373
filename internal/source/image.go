package source

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageExtensions lists the file types the registered decoders understand.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// IsImage reports whether name has one of ImageExtensions.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ImageSource decodes a single image file or every image in a folder,
// sorted by name.
type ImageSource struct {
	paths []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && IsImage(entry.Name()) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) PageCount() int {
	return len(s.paths)
}

// Path returns the file behind page index.
func (s *ImageSource) Path(index int) string {
	return s.paths[index]
}

func (s *ImageSource) GetPageDimensions(index int) (float64, float64, error) {
	if err := checkIndex(index, s.PageCount()); err != nil {
		return 0, 0, err
	}
	f, err := os.Open(s.paths[index])
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode config %s: %w", s.paths[index], err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

// RenderPage decodes the image. dpi is ignored for raster files.
func (s *ImageSource) RenderPage(index int, dpi int) (image.Image, error) {
	if err := checkIndex(index, s.PageCount()); err != nil {
		return nil, err
	}
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.paths[index], err)
	}
	return img, nil
}

func (s *ImageSource) Close() error {
	return nil
}
