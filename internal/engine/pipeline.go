package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ivlev/paintbynumbers/internal/label"
	"github.com/ivlev/paintbynumbers/internal/palette"
	"github.com/ivlev/paintbynumbers/internal/quantize"
	"github.com/ivlev/paintbynumbers/internal/raster"
)

// Options carries the knobs of a single pipeline run.
type Options struct {
	Workers      int
	MinBlockSize int // 0 means 1
	MaxBlockSize int // 0 means unbounded
	Placer       *label.Placer
}

// Timings records how long each stage took.
type Timings struct {
	Quantize time.Duration
	Palette  time.Duration
	Labels   time.Duration
}

// Total sums all stages.
func (t Timings) Total() time.Duration {
	return t.Quantize + t.Palette + t.Labels
}

// Result is the output of one pipeline run. Its buffers are owned by the
// caller and never reused by later runs.
type Result struct {
	BlockSize int
	MaxColors int
	Quantized *raster.Buffer
	Palette   []palette.Entry
	Annotated *raster.Buffer
	Labels    []label.Label
	// Notice is palette.ErrNoOpaquePixels when nothing could be numbered.
	// It is informational, the run itself succeeded.
	Notice  error
	Timings Timings
}

// Process runs quantize, palette extraction and label placement on src.
// Parameters and the buffer shape are checked before any stage runs and no
// partial result is returned on error.
func Process(ctx context.Context, src *raster.Buffer, blockSize, maxColors int, opts Options) (*Result, error) {
	if err := checkParams(blockSize, maxColors, opts); err != nil {
		return nil, err
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}

	placer := opts.Placer
	if placer == nil {
		placer = label.NewBasicPlacer()
	}

	res := &Result{BlockSize: blockSize, MaxColors: maxColors}

	start := time.Now()
	quantized, err := quantize.Quantize(ctx, src, blockSize, quantize.Options{Workers: opts.Workers})
	if err != nil {
		return nil, fmt.Errorf("quantize: %w", err)
	}
	res.Timings.Quantize = time.Since(start)

	start = time.Now()
	entries, err := palette.Extract(ctx, quantized, maxColors, palette.Options{Workers: opts.Workers})
	if err != nil {
		return nil, fmt.Errorf("extract palette: %w", err)
	}
	res.Timings.Palette = time.Since(start)

	start = time.Now()
	annotated, labels, err := placer.Place(ctx, quantized, entries, blockSize)
	if err != nil {
		return nil, fmt.Errorf("place labels: %w", err)
	}
	res.Timings.Labels = time.Since(start)

	res.Quantized = quantized
	res.Palette = entries
	res.Annotated = annotated
	res.Labels = labels
	if len(entries) == 0 {
		res.Notice = palette.ErrNoOpaquePixels
	}
	return res, nil
}

func checkParams(blockSize, maxColors int, opts Options) error {
	lo, hi := opts.MinBlockSize, opts.MaxBlockSize
	if lo <= 0 {
		lo = 1
	}
	if hi <= 0 {
		hi = math.MaxInt
	}
	if err := raster.CheckRange("block_size", blockSize, lo, hi); err != nil {
		return err
	}
	return raster.CheckPositive("max_colors", maxColors)
}
