package resample

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Resampler scales an image to the working size used by the pipeline.
type Resampler interface {
	Fit(img image.Image, maxWidth int) *image.NRGBA
}

// Kernel resamples with one of the x/image/draw interpolators.
type Kernel struct {
	Scaler draw.Scaler
}

// Fit scales img down to at most maxWidth pixels wide, keeping the aspect
// ratio. Narrower images keep their size. maxWidth <= 0 disables scaling.
// The result is always a fresh *image.NRGBA anchored at (0,0), so
// semi-transparent pixels keep their straight color.
func (k *Kernel) Fit(img image.Image, maxWidth int) *image.NRGBA {
	src := img.Bounds()
	w, h := TargetSize(src.Dx(), src.Dy(), maxWidth)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		if n, ok := img.(*image.NRGBA); ok {
			for y := 0; y < h; y++ {
				i := n.PixOffset(src.Min.X, src.Min.Y+y)
				copy(dst.Pix[y*dst.Stride:y*dst.Stride+w*4], n.Pix[i:i+w*4])
			}
			return dst
		}
		draw.Draw(dst, dst.Rect, img, src.Min, draw.Src)
		return dst
	}
	k.Scaler.Scale(dst, dst.Rect, img, src, draw.Src, nil)
	return dst
}

// TargetSize returns (min(w, maxWidth), round(h*w'/w)), never less than 1
// in either dimension for non-empty input.
func TargetSize(w, h, maxWidth int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxWidth <= 0 || w <= maxWidth {
		return w, h
	}
	nh := int(math.Round(float64(h) * float64(maxWidth) / float64(w)))
	if nh < 1 {
		nh = 1
	}
	return maxWidth, nh
}
