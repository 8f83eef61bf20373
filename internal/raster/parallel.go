package raster

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEachBand splits [0, rows) into consecutive bands of bandRows rows and calls
// fn for each band on at most workers goroutines. The context is checked before
// every band, so cancellation takes effect between bands. The first error wins.
func ForEachBand(ctx context.Context, rows, bandRows, workers int, fn func(ctx context.Context, index, y0, y1 int) error) error {
	if bandRows <= 0 {
		bandRows = 1
	}
	if workers <= 0 {
		workers = 1
	}

	bands := (rows + bandRows - 1) / bandRows
	if workers > bands {
		workers = bands
	}

	if workers <= 1 {
		for i := 0; i < bands; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			y0 := i * bandRows
			if err := fn(ctx, i, y0, min(y0+bandRows, rows)); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < bands; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			y0 := i * bandRows
			return fn(gctx, i, y0, min(y0+bandRows, rows))
		})
	}
	return g.Wait()
}
