package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ivlev/paintbynumbers/internal/palette"
)

func TestPaletteWriteRead(t *testing.T) {
	entries := []palette.Entry{
		palette.NewEntry(1, 255, 0, 0, 300),
		palette.NewEntry(2, 1, 2, 3, 12),
	}
	pf := NewPaletteFile(entries, 10, 600, 400, "photo.jpg")

	for _, name := range []string{"palette.yaml", "palette.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WritePalette(pf, path); err != nil {
				t.Fatalf("WritePalette failed: %v", err)
			}
			read, err := ReadPalette(path)
			if err != nil {
				t.Fatalf("ReadPalette failed: %v", err)
			}
			if read.BlockSize != 10 || read.Version != "1.0" || len(read.Colors) != 2 {
				t.Fatalf("Unexpected palette file %+v", read)
			}
			if read.Colors[1].Hex != "#010203" || read.Colors[1].RGB != "rgb(1, 2, 3)" {
				t.Errorf("Unexpected color %+v", read.Colors[1])
			}

			back, err := read.Entries()
			if err != nil {
				t.Fatal(err)
			}
			for i := range entries {
				if back[i] != entries[i] {
					t.Errorf("Entry %d: got %+v, want %+v", i, back[i], entries[i])
				}
			}
		})
	}
}

func TestPaletteEntriesBadHex(t *testing.T) {
	pf := &PaletteFile{Colors: []PaletteItem{{ID: 1, Hex: "red"}}}
	if _, err := pf.Entries(); err == nil {
		t.Error("Expected error for bad hex")
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	path := filepath.Join(t.TempDir(), "nested", "out.png")
	if err := SavePNG(img, path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := decoded.At(2, 1).RGBA()
	if r>>8 != 9 || g>>8 != 8 || b>>8 != 7 {
		t.Errorf("Unexpected pixel %v", decoded.At(2, 1))
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2026, 2, 13, 1, 0, 0, 0, time.UTC)

	got := OutputPath("", "input/my photo.jpg", "output", now)
	if got != filepath.Join("output", "my_photo_2026-02-13_01-00-00.png") {
		t.Errorf("Unexpected generated path %s", got)
	}

	dir := t.TempDir()
	if got := OutputPath(dir, "x.png", "output", now); got != filepath.Join(dir, DefaultTemplateName) {
		t.Errorf("Directory output should use %s, got %s", DefaultTemplateName, got)
	}

	if got := OutputPath("custom.png", "x.png", "output", now); got != "custom.png" {
		t.Errorf("Explicit output changed: %s", got)
	}
}

func TestSiblingPaths(t *testing.T) {
	if got := Sibling("out/a.png", "_legend.png"); got != "out/a_legend.png" {
		t.Errorf("Sibling = %s", got)
	}
	if got := WithBlockSize("out/a.png", 15); !strings.HasSuffix(got, "a_b15.png") {
		t.Errorf("WithBlockSize = %s", got)
	}
}
