package resample

import (
	"image"
	"image/color"
	"testing"
)

func TestTargetSize(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{1200, 800, 600, 600, 400},
		{1000, 333, 600, 600, 200}, // 199.8 rounds up
		{601, 301, 600, 600, 300},  // 300.499 rounds down
		{400, 900, 600, 400, 900},
		{600, 10, 600, 600, 10},
		{5000, 2, 600, 600, 1},
		{800, 600, 0, 800, 600},
		{0, 10, 600, 0, 0},
	}

	for _, tt := range tests {
		w, h := TargetSize(tt.w, tt.h, tt.max)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("TargetSize(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"bilinear", false},
		{"", false}, // default
		{"approx-bilinear", false},
		{"catmullrom", false},
		{"nearest", false},
		{"lanczos", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			r, err := New(tt.variant)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if r == nil {
				t.Error("Expected resampler, got nil")
			}
		})
	}
}

func TestFitDownscalesSolidImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 1210, 810))
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}

	for _, variant := range []string{"nearest", "bilinear", "catmullrom"} {
		r, _ := New(variant)
		out := r.Fit(src, 600)
		if out.Rect != image.Rect(0, 0, 600, 400) {
			t.Fatalf("%s: unexpected bounds %v", variant, out.Rect)
		}
		if got := out.NRGBAAt(300, 200); got != (color.NRGBA{R: 30, G: 60, B: 90, A: 255}) {
			t.Errorf("%s: center pixel %v", variant, got)
		}
	}
}

func TestFitKeepsSmallImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 40))
	src.SetRGBA(49, 39, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	r, _ := New("")
	out := r.Fit(src, 600)
	if out.Rect.Dx() != 50 || out.Rect.Dy() != 40 {
		t.Fatalf("Unexpected size %v", out.Rect)
	}
	if out.NRGBAAt(49, 39) != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Error("Small image should be copied unchanged")
	}
	out.SetNRGBA(0, 0, color.NRGBA{A: 255})
	if src.RGBAAt(0, 0).A != 0 {
		t.Error("Fit must not alias the source")
	}
}

func TestFitKeepsStraightAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(3, 3, 13, 8))
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 200})
		}
	}

	r, _ := New("")
	out := r.Fit(src, 600)
	want := color.NRGBA{R: 200, G: 100, B: 50, A: 200}
	if got := out.NRGBAAt(0, 0); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := out.NRGBAAt(9, 4); got != want {
		t.Errorf("Expected %v at the far corner, got %v", want, got)
	}
}
