// Package legend renders the color guide that accompanies a template: one
// numbered swatch per palette entry and, optionally, a QR code listing the
// same colors for a paint shopping list.
package legend

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/paintbynumbers/internal/palette"
)

type Config struct {
	Width   int
	Padding int
	Swatch  int // Edge of a color square
	Spacing int // Vertical gap between rows
	QR      bool
	QRSize  int
	Title   string
	Face    font.Face
}

func DefaultConfig() Config {
	return Config{
		Width:   320,
		Padding: 16,
		Swatch:  28,
		Spacing: 8,
		QRSize:  160,
		Title:   "Color Guide",
		Face:    basicfont.Face7x13,
	}
}

// ScaleForWidth enlarges the swatches for wide templates so the guide stays
// readable next to them.
func ScaleForWidth(cfg *Config, templateWidth int) {
	if templateWidth > 1000 {
		cfg.Swatch = 48
		cfg.Spacing = 14
		cfg.Padding = 28
		cfg.Width = 420
	} else if templateWidth > 500 {
		cfg.Swatch = 36
		cfg.Spacing = 10
		cfg.Padding = 20
	}
}

// Height returns the image height Render produces for n entries.
func (c Config) Height(n int) int {
	rows := max(n, 1)
	h := c.Padding*2 + c.titleHeight() + rows*(c.Swatch+c.Spacing)
	if c.QR && n > 0 {
		h += c.QRSize + c.Padding
	}
	return h
}

func (c Config) titleHeight() int {
	return c.Face.Metrics().Height.Ceil() + c.Spacing
}

// Text returns the plain-text listing encoded in the QR code.
func Text(entries []palette.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%d %s\n", e.ID, e.Hex)
	}
	return b.String()
}

// Render draws the guide on a white background.
func Render(entries []palette.Entry, cfg Config) (*image.RGBA, error) {
	if cfg.Face == nil {
		cfg.Face = basicfont.Face7x13
	}
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height(len(entries))))
	draw.Draw(img, img.Rect, image.NewUniform(color.White), image.Point{}, draw.Src)

	y := cfg.Padding
	drawText(img, cfg.Face, cfg.Title, cfg.Padding, y, color.Black)
	y += cfg.titleHeight()

	if len(entries) == 0 {
		drawText(img, cfg.Face, "No opaque colors", cfg.Padding, y, color.Black)
		return img, nil
	}

	for _, e := range entries {
		sw := image.Rect(cfg.Padding, y, cfg.Padding+cfg.Swatch, y+cfg.Swatch)
		draw.Draw(img, sw, image.NewUniform(e.RGB), image.Point{}, draw.Src)

		id := strconv.Itoa(e.ID)
		idW := font.MeasureString(cfg.Face, id).Ceil()
		textY := y + (cfg.Swatch-cfg.Face.Metrics().Height.Ceil())/2
		drawText(img, cfg.Face, id, sw.Min.X+(cfg.Swatch-idW)/2, textY, InkFor(e.RGB))

		line := fmt.Sprintf("%s  %s", e.Hex, e.CSS())
		drawText(img, cfg.Face, line, sw.Max.X+cfg.Padding, textY, color.Black)

		y += cfg.Swatch + cfg.Spacing
	}

	if cfg.QR {
		qr, err := qrcode.New(Text(entries), qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("qr code: %w", err)
		}
		qr.DisableBorder = true
		code := qr.Image(cfg.QRSize)
		at := image.Pt(cfg.Padding, y+cfg.Padding/2)
		draw.Draw(img, code.Bounds().Add(at), code, code.Bounds().Min, draw.Src)
	}

	return img, nil
}

// InkFor picks black or white text for legibility on c.
func InkFor(c color.RGBA) color.Color {
	cf, _ := colorful.MakeColor(c)
	l, _, _ := cf.Lab()
	if l > 0.6 {
		return color.Black
	}
	return color.White
}

// drawText draws s with its top-left corner at (x, y).
func drawText(dst draw.Image, face font.Face, s string, x, y int, ink color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}
