// Package raster holds the RGBA pixel buffer passed between pipeline stages.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Buffer is a tightly packed raster of straight (non-premultiplied) RGBA:
// row-major, 4 bytes per pixel, no stride padding. The layout matches
// *image.NRGBA. Colors travel as color.RGBA values holding the raw channels.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

// New allocates a zeroed (fully transparent) buffer.
func New(width, height int) *Buffer {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// Validate reports ErrEmptyBuffer for nil, zero-sized or length-mismatched buffers.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrEmptyBuffer)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyBuffer, b.Width, b.Height)
	}
	if b.Width > math.MaxInt/4/b.Height {
		return fmt.Errorf("%w: %dx%d is too large", ErrEmptyBuffer, b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrEmptyBuffer, b.Width, b.Height, b.Width*b.Height*4, len(b.Pix))
	}
	return nil
}

// Offset returns the index of the R channel of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// RGBAAt returns the raw channels of pixel (x, y).
func (b *Buffer) RGBAAt(x, y int) color.RGBA {
	i := b.Offset(x, y)
	p := b.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// SetRGBA writes the raw channels of pixel (x, y).
func (b *Buffer) SetRGBA(x, y int, c color.RGBA) {
	i := b.Offset(x, y)
	p := b.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// Equal reports whether both buffers have the same shape and bytes.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Image returns a copy of the buffer as *image.NRGBA anchored at (0,0).
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

// FromImage copies any image into a new Buffer. *image.NRGBA sources are
// copied row by row without touching the channels. Other images go through
// draw.Src, which un-premultiplies *image.RGBA and friends.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := New(w, h)
	if w == 0 || h == 0 {
		return out
	}

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			i := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.Pix[y*w*4:(y+1)*w*4], src.Pix[i:i+w*4])
		}
		return out
	}

	draw.Draw(out.View(), image.Rect(0, 0, w, h), img, bounds.Min, draw.Src)
	return out
}

// View wraps the buffer's backing bytes as *image.NRGBA without copying.
// Writes through the view modify b.
func (b *Buffer) View() *image.NRGBA {
	return &image.NRGBA{Pix: b.Pix, Stride: b.Width * 4, Rect: image.Rect(0, 0, b.Width, b.Height)}
}
