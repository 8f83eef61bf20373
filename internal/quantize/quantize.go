// Package quantize flattens an image into a grid of single-color blocks.
package quantize

import (
	"context"
	"fmt"

	"github.com/ivlev/paintbynumbers/internal/raster"
)

// Options tunes how the work is scheduled. The result does not depend on it.
type Options struct {
	Workers int // Parallel block bands, <= 1 runs inline
}

// Quantize walks a blockSize grid from (0,0) and fills every block with the
// color of its anchor pixel, the block's top-left corner. Blocks on the right
// and bottom edges are clipped. The source is never modified.
func Quantize(ctx context.Context, src *raster.Buffer, blockSize int, opts Options) (*raster.Buffer, error) {
	if err := raster.CheckPositive("block_size", blockSize); err != nil {
		return nil, err
	}
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("quantize: %w", err)
	}

	dst := raster.New(src.Width, src.Height)

	// One band is one row of blocks, so bands never share pixels.
	err := raster.ForEachBand(ctx, src.Height, blockSize, opts.Workers, func(ctx context.Context, _, y0, y1 int) error {
		for x := 0; x < src.Width; x += blockSize {
			fillBlock(src, dst, x, y0, min(x+blockSize, src.Width), y1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// fillBlock copies the anchor (x0, y0) of src into dst over [x0,x1)x[y0,y1).
func fillBlock(src, dst *raster.Buffer, x0, y0, x1, y1 int) {
	a := src.Offset(x0, y0)
	anchor := src.Pix[a : a+4 : a+4]

	rowStart := dst.Offset(x0, y0)
	row := dst.Pix[rowStart : rowStart+(x1-x0)*4]
	for i := 0; i < len(row); i += 4 {
		copy(row[i:i+4], anchor)
	}
	// Remaining rows of the block are identical to the first.
	for y := y0 + 1; y < y1; y++ {
		off := dst.Offset(x0, y)
		copy(dst.Pix[off:off+len(row)], row)
	}
}
