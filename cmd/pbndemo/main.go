package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/ivlev/paintbynumbers/internal/config"
	"github.com/ivlev/paintbynumbers/internal/engine"
	"github.com/ivlev/paintbynumbers/internal/export"
	"github.com/ivlev/paintbynumbers/internal/legend"
)

func main() {
	outDir := filepath.Join(os.TempDir(), "pbndemo")
	os.MkdirAll(outDir, 0755)
	templatePath := filepath.Join(outDir, "synthetic.png")

	fmt.Println("=== Paint By Numbers Demo ===")
	fmt.Printf("Output: %s\n\n", outDir)

	// Step 1: Create synthetic test image
	fmt.Println("[1/4] Creating synthetic test image...")
	img := createTestImage(1200, 800)
	fmt.Printf("✓ Created test image (%dx%d)\n\n", img.Bounds().Dx(), img.Bounds().Dy())

	// Step 2: Build the template
	fmt.Println("[2/4] Building template...")
	cfg := config.Default()
	session, err := engine.NewSession(cfg)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	ctx := context.Background()
	res, err := session.Load(ctx, img)
	if err != nil {
		log.Fatalf("Failed to build template: %v", err)
	}
	if err := export.SavePNG(res.Annotated.Image(), templatePath); err != nil {
		log.Fatalf("Failed to save template: %v", err)
	}
	fmt.Printf("✓ Template saved to: %s (%dx%d)\n\n", templatePath, res.Annotated.Width, res.Annotated.Height)

	// Step 3: Rebuild with other block sizes from the retained image
	fmt.Println("[3/4] Re-running with other block sizes...")
	for _, bs := range []int{5, 20, 30} {
		r, err := session.SetBlockSize(ctx, bs)
		if err != nil {
			log.Fatalf("Failed to rebuild with block %d: %v", bs, err)
		}
		fmt.Printf("  Block %2d: colors=%d labels=%d time=%v\n", bs, len(r.Palette), len(r.Labels), r.Timings.Total())
	}
	fmt.Println()

	// Step 4: Palette file and legend
	fmt.Println("[4/4] Writing palette and legend...")
	palettePath := export.Sibling(templatePath, "_palette.yaml")
	pf := export.NewPaletteFile(res.Palette, res.BlockSize, res.Annotated.Width, res.Annotated.Height, "synthetic")
	if err := export.WritePalette(pf, palettePath); err != nil {
		log.Fatalf("Failed to write palette: %v", err)
	}
	lcfg := legend.DefaultConfig()
	lcfg.QR = true
	sheet, err := legend.Render(res.Palette, lcfg)
	if err != nil {
		log.Fatalf("Failed to render legend: %v", err)
	}
	legendPath := export.Sibling(templatePath, "_legend.png")
	if err := export.SavePNG(sheet, legendPath); err != nil {
		log.Fatalf("Failed to save legend: %v", err)
	}
	fmt.Printf("✓ Palette: %s\n✓ Legend: %s\n\n", palettePath, legendPath)

	fmt.Println("=== Palette ===")
	for _, e := range res.Palette {
		fmt.Printf("  %2d. %s %s count=%d\n", e.ID, e.Hex, e.CSS(), e.Count)
	}

	fmt.Println("\n✅ Demo completed successfully!")
}

// createTestImage creates a synthetic picture with flat color regions
func createTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Sky
	drawRect(img, 0, 0, width, height*2/3, color.RGBA{135, 206, 235, 255})
	// Ground
	drawRect(img, 0, height*2/3, width, height, color.RGBA{34, 139, 34, 255})
	// Sun
	drawRect(img, width-260, 60, width-120, 200, color.RGBA{255, 215, 0, 255})
	// House
	drawRect(img, 300, 300, 700, 533, color.RGBA{178, 34, 34, 255})
	drawRect(img, 460, 420, 540, 533, color.RGBA{101, 67, 33, 255})
	// Transparent hole, skipped by the palette
	drawRect(img, 40, 700, 140, 780, color.RGBA{})

	return img
}

// drawRect draws a filled rectangle
func drawRect(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			if x >= 0 && x < img.Bounds().Dx() && y >= 0 && y < img.Bounds().Dy() {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
