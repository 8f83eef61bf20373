// Package label composites palette numbers onto a quantized buffer.
package label

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/paintbynumbers/internal/palette"
	"github.com/ivlev/paintbynumbers/internal/raster"
)

const (
	DefaultBoxSize  = 12   // Edge of the white square behind a number, px
	DefaultFontSize = 12.0 // Label font size, px at 72 DPI
)

// Label is one number drawn on the template.
type Label struct {
	X, Y int // Center of the label
	ID   int // Palette entry id
}

// Placer draws a sparse grid of palette ids. A Placer holds a font.Face and
// is not safe for concurrent use.
type Placer struct {
	Face       font.Face
	BoxSize    int
	Tolerance  int
	Background color.Color
	Ink        color.Color
}

// NewPlacer returns a placer using Go Regular at the given size.
// size <= 0 selects DefaultFontSize.
func NewPlacer(size float64) (*Placer, error) {
	face, err := GoRegularFace(size)
	if err != nil {
		return nil, err
	}
	p := NewBasicPlacer()
	p.Face = face
	return p, nil
}

// NewBasicPlacer returns a placer using the built-in 7x13 bitmap font.
func NewBasicPlacer() *Placer {
	return &Placer{
		Face:       basicfont.Face7x13,
		BoxSize:    DefaultBoxSize,
		Tolerance:  palette.DefaultTolerance,
		Background: color.White,
		Ink:        color.Black,
	}
}

// GoRegularFace parses the embedded Go Regular font.
func GoRegularFace(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go regular: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// GridPoints lists the sample points for blockSize: from (blockSize,
// blockSize) every 2*blockSize on both axes, row by row, inside width x height.
func GridPoints(width, height, blockSize int) []image.Point {
	if blockSize <= 0 {
		return nil
	}
	var pts []image.Point
	step := 2 * blockSize
	for y := blockSize; y < height; y += step {
		for x := blockSize; x < width; x += step {
			pts = append(pts, image.Point{X: x, Y: y})
		}
	}
	return pts
}

// Place returns a copy of quantized with a number drawn at every grid point
// whose color matches a palette entry. Colors are always sampled from
// quantized, so earlier labels never affect later matches. Labels are drawn
// in row-major order and later squares overlap earlier ones.
func (p *Placer) Place(ctx context.Context, quantized *raster.Buffer, entries []palette.Entry, blockSize int) (*raster.Buffer, []Label, error) {
	if err := raster.CheckPositive("block_size", blockSize); err != nil {
		return nil, nil, err
	}
	if err := quantized.Validate(); err != nil {
		return nil, nil, fmt.Errorf("label: %w", err)
	}

	out := quantized.Clone()
	labels := []Label{}
	if len(entries) == 0 {
		return out, labels, nil
	}

	dst := out.View()
	for _, pt := range GridPoints(quantized.Width, quantized.Height, blockSize) {
		if pt.X == blockSize {
			// New grid row.
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
		e, ok := palette.Match(entries, quantized.RGBAAt(pt.X, pt.Y), p.Tolerance)
		if !ok {
			continue
		}
		p.drawLabel(dst, pt, strconv.Itoa(e.ID))
		labels = append(labels, Label{X: pt.X, Y: pt.Y, ID: e.ID})
	}
	return out, labels, nil
}

func (p *Placer) drawLabel(dst *image.NRGBA, at image.Point, text string) {
	half := p.BoxSize / 2
	box := image.Rect(at.X-half, at.Y-half, at.X-half+p.BoxSize, at.Y-half+p.BoxSize).Intersect(dst.Rect)
	draw.Draw(dst, box, image.NewUniform(p.Background), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(p.Ink),
		Face: p.Face,
	}
	m := p.Face.Metrics()
	width := d.MeasureString(text)
	// Horizontal center, vertical middle of the ascent/descent band.
	d.Dot = fixed.Point26_6{
		X: fixed.I(at.X) - width/2,
		Y: fixed.I(at.Y) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}
