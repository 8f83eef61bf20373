package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/paintbynumbers/internal/raster"
	"github.com/ivlev/paintbynumbers/internal/system"
)

type Config struct {
	InputPath    string  `yaml:"input"`
	OutputPath   string  `yaml:"output"`
	BlockSize    int     `yaml:"block_size"`
	Sizes        []int   `yaml:"sizes"` // Extra block sizes rendered from the same session
	MinBlockSize int     `yaml:"min_block_size"`
	MaxBlockSize int     `yaml:"max_block_size"`
	MaxColors    int     `yaml:"max_colors"`
	MaxWidth     int     `yaml:"max_width"` // Working width, 0 keeps the source width
	Resample     string  `yaml:"resample"`
	Tolerance    int     `yaml:"tolerance"`
	LabelBox     int     `yaml:"label_box"`
	FontSize     float64 `yaml:"font_size"`
	BasicFont    bool    `yaml:"basic_font"`
	Page         int     `yaml:"page"` // PDF page, 0-based
	DPI          int     `yaml:"dpi"`
	Workers      int     `yaml:"workers"`
	Legend       bool    `yaml:"legend"`
	LegendQR     bool    `yaml:"legend_qr"`
	PaletteFile  bool    `yaml:"palette_file"`
	ShowStats    bool    `yaml:"show_stats"`
	BuildVersion string  `yaml:"-"`
}

// Default returns the settings of the original web tool: 10px blocks,
// 12 colors, 600px working width. The legend and palette file are written
// unless turned off.
func Default() *Config {
	return &Config{
		BlockSize:    10,
		MinBlockSize: 5,
		MaxBlockSize: 30,
		MaxColors:    12,
		MaxWidth:     600,
		Resample:     "bilinear",
		Tolerance:    10,
		LabelBox:     12,
		FontSize:     12,
		DPI:          150,
		Workers:      system.DefaultWorkers(),
		Legend:       true,
		PaletteFile:  true,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks parameter ranges. Errors unwrap to raster.ErrInvalidParameter.
func (c *Config) Validate() error {
	if err := raster.CheckPositive("min_block_size", c.MinBlockSize); err != nil {
		return err
	}
	if c.MaxBlockSize < c.MinBlockSize {
		return &raster.ParamError{Name: "max_block_size", Value: c.MaxBlockSize, Reason: "below min_block_size"}
	}
	if err := c.CheckBlockSize(c.BlockSize); err != nil {
		return err
	}
	for _, s := range c.Sizes {
		if err := c.CheckBlockSize(s); err != nil {
			return err
		}
	}
	if err := raster.CheckPositive("max_colors", c.MaxColors); err != nil {
		return err
	}
	if c.MaxWidth < 0 {
		return &raster.ParamError{Name: "max_width", Value: c.MaxWidth, Reason: "must not be negative"}
	}
	if err := raster.CheckPositive("tolerance", c.Tolerance); err != nil {
		return err
	}
	if err := raster.CheckPositive("label_box", c.LabelBox); err != nil {
		return err
	}
	if c.Page < 0 {
		return &raster.ParamError{Name: "page", Value: c.Page, Reason: "must not be negative"}
	}
	return nil
}

// CheckBlockSize validates n against the configured block size range.
func (c *Config) CheckBlockSize(n int) error {
	return raster.CheckRange("block_size", n, c.MinBlockSize, c.MaxBlockSize)
}
