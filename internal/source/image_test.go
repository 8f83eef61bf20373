package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImageSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	writePNG(t, path, 32, 24)

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if src.PageCount() != 1 {
		t.Fatalf("Expected 1 page, got %d", src.PageCount())
	}
	w, h, err := src.GetPageDimensions(0)
	if err != nil || w != 32 || h != 24 {
		t.Errorf("Dimensions = %vx%v, %v; want 32x24", w, h, err)
	}
	img, err := src.RenderPage(0, 0)
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}
	if _, err := src.RenderPage(1, 0); err == nil {
		t.Error("Expected out of range error")
	}
}

func TestImageSourceFolder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "a.png"), 8, 8)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644)

	src, err := NewImageSource(dir)
	if err != nil {
		t.Fatal(err)
	}
	if src.PageCount() != 2 {
		t.Fatalf("Expected 2 images, got %d", src.PageCount())
	}
	if filepath.Base(src.Path(0)) != "a.png" {
		t.Errorf("Expected sorted paths, got %s first", src.Path(0))
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"x.PNG", true},
		{"x.jpeg", true},
		{"x.webp", true},
		{"x.tiff", true},
		{"x.pdf", false},
		{"x", false},
	}
	for _, tt := range tests {
		if got := IsImage(tt.name); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
