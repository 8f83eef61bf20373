package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/paintbynumbers/internal/source"
)

// FindLatestInput returns the most recently modified image or PDF in dir.
func FindLatestInput(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		if !source.IsImage(name) && !strings.EqualFold(filepath.Ext(name), ".pdf") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, name)
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено изображений или PDF", dir)
	}

	return latestFile, nil
}
