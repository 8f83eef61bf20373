package legend

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/ivlev/paintbynumbers/internal/palette"
)

func testEntries(n int) []palette.Entry {
	entries := make([]palette.Entry, n)
	for i := range entries {
		entries[i] = palette.NewEntry(i+1, uint8(20*i), 100, 200, 10-i)
	}
	return entries
}

func TestRenderSwatches(t *testing.T) {
	cfg := DefaultConfig()
	entries := testEntries(3)

	img, err := Render(entries, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Rect.Dx() != cfg.Width || img.Rect.Dy() != cfg.Height(3) {
		t.Fatalf("Unexpected bounds %v", img.Rect)
	}

	y := cfg.Padding + cfg.titleHeight()
	for _, e := range entries {
		// Swatch corner is never covered by the centered id.
		got := img.RGBAAt(cfg.Padding+1, y+1)
		if got != e.RGB {
			t.Errorf("entry %d: swatch pixel %v, want %v", e.ID, got, e.RGB)
		}
		y += cfg.Swatch + cfg.Spacing
	}
}

func TestHeightGrowsWithPalette(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Height(12) <= cfg.Height(4) {
		t.Error("Legend should grow with palette length")
	}
	cfg.QR = true
	if cfg.Height(4) != DefaultConfig().Height(4)+cfg.QRSize+cfg.Padding {
		t.Error("QR code should add its size plus padding")
	}
	if cfg.Height(0) != DefaultConfig().Height(0) {
		t.Error("Empty palette should not reserve QR space")
	}
}

func TestRenderQR(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QR = true
	entries := testEntries(5)

	img, err := Render(entries, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	top := cfg.Padding + cfg.titleHeight() + len(entries)*(cfg.Swatch+cfg.Spacing)
	area := image.Rect(cfg.Padding, top, cfg.Padding+cfg.QRSize, top+cfg.QRSize)
	dark := 0
	for y := area.Min.Y; y < area.Max.Y && y < img.Rect.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if img.RGBAAt(x, y).R < 64 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("Expected QR modules in the QR area")
	}
}

func TestRenderEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QR = true
	img, err := Render(nil, cfg)
	if err != nil {
		t.Fatalf("Empty palette must render: %v", err)
	}
	if img.Rect.Dy() != cfg.Height(0) {
		t.Errorf("Unexpected height %d", img.Rect.Dy())
	}
}

func TestText(t *testing.T) {
	got := Text(testEntries(2))
	if !strings.HasPrefix(got, "1 #0064c8\n2 #1464c8\n") {
		t.Errorf("Unexpected text %q", got)
	}
}

func TestInkFor(t *testing.T) {
	if InkFor(color.RGBA{R: 250, G: 250, B: 250, A: 255}) != color.Black {
		t.Error("Expected black ink on a light swatch")
	}
	if InkFor(color.RGBA{R: 10, G: 10, B: 40, A: 255}) != color.White {
		t.Error("Expected white ink on a dark swatch")
	}
}

func TestScaleForWidth(t *testing.T) {
	cfg := DefaultConfig()
	ScaleForWidth(&cfg, 600)
	if cfg.Swatch != 36 {
		t.Errorf("Expected 36px swatches for 600px templates, got %d", cfg.Swatch)
	}
	small := DefaultConfig()
	ScaleForWidth(&small, 200)
	if small != DefaultConfig() {
		t.Error("Small templates should keep defaults")
	}
}
