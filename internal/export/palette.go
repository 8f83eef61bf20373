package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/paintbynumbers/internal/palette"
)

// PaletteFile is the on-disk color guide for one template.
type PaletteFile struct {
	Version   string        `yaml:"version" json:"version"`
	Source    string        `yaml:"source,omitempty" json:"source,omitempty"`
	BlockSize int           `yaml:"block_size" json:"block_size"`
	Width     int           `yaml:"width" json:"width"`
	Height    int           `yaml:"height" json:"height"`
	Colors    []PaletteItem `yaml:"colors" json:"colors"`
}

// PaletteItem is one numbered color of the guide.
type PaletteItem struct {
	ID    int    `yaml:"id" json:"id"`
	Hex   string `yaml:"hex" json:"hex"`
	RGB   string `yaml:"rgb" json:"rgb"`
	Count int    `yaml:"count" json:"count"`
}

// NewPaletteFile converts palette entries for writing.
func NewPaletteFile(entries []palette.Entry, blockSize, width, height int, source string) *PaletteFile {
	pf := &PaletteFile{
		Version:   "1.0",
		Source:    source,
		BlockSize: blockSize,
		Width:     width,
		Height:    height,
		Colors:    make([]PaletteItem, 0, len(entries)),
	}
	for _, e := range entries {
		pf.Colors = append(pf.Colors, PaletteItem{ID: e.ID, Hex: e.Hex, RGB: e.CSS(), Count: e.Count})
	}
	return pf
}

// Entries rebuilds palette entries from the hex values of the file.
func (pf *PaletteFile) Entries() ([]palette.Entry, error) {
	entries := make([]palette.Entry, 0, len(pf.Colors))
	for _, c := range pf.Colors {
		var r, g, b uint8
		if _, err := fmt.Sscanf(strings.ToLower(c.Hex), "#%02x%02x%02x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("color %d: bad hex %q: %w", c.ID, c.Hex, err)
		}
		entries = append(entries, palette.NewEntry(c.ID, r, g, b, c.Count))
	}
	return entries, nil
}

// WritePalette writes the palette as YAML, or JSON when path ends in .json.
func WritePalette(pf *PaletteFile, path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(pf, "", "  ")
	} else {
		data, err = yaml.Marshal(pf)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadPalette reads a palette written by WritePalette.
func ReadPalette(path string) (*PaletteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pf PaletteFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &pf)
	} else {
		err = yaml.Unmarshal(data, &pf)
	}
	if err != nil {
		return nil, err
	}

	return &pf, nil
}
