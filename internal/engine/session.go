package engine

import (
	"context"
	"errors"
	"image"

	"github.com/ivlev/paintbynumbers/internal/config"
	"github.com/ivlev/paintbynumbers/internal/label"
	"github.com/ivlev/paintbynumbers/internal/raster"
	"github.com/ivlev/paintbynumbers/internal/resample"
)

// ErrNoSource is returned when a parameter changes before any image was loaded.
var ErrNoSource = errors.New("no source image loaded")

// Session keeps the working copy of one uploaded image so the template can be
// rebuilt with new parameters without decoding it again. A Session is not
// safe for concurrent use.
type Session struct {
	cfg       *config.Config
	resampler resample.Resampler
	placer    *label.Placer

	source    *raster.Buffer
	blockSize int
	maxColors int
	result    *Result
}

// NewSession builds the label placer and resampler described by cfg.
func NewSession(cfg *config.Config) (*Session, error) {
	rs, err := resample.New(cfg.Resample)
	if err != nil {
		return nil, err
	}

	var placer *label.Placer
	if cfg.BasicFont {
		placer = label.NewBasicPlacer()
	} else {
		placer, err = label.NewPlacer(cfg.FontSize)
		if err != nil {
			return nil, err
		}
	}
	placer.Tolerance = cfg.Tolerance
	placer.BoxSize = cfg.LabelBox

	return &Session{
		cfg:       cfg,
		resampler: rs,
		placer:    placer,
		blockSize: cfg.BlockSize,
		maxColors: cfg.MaxColors,
	}, nil
}

// Load replaces the session image. The image is scaled down to the working
// width, retained, and the template is rebuilt with the current parameters.
// On error the previous image and result stay in place.
func (s *Session) Load(ctx context.Context, img image.Image) (*Result, error) {
	working := raster.FromImage(s.resampler.Fit(img, s.cfg.MaxWidth))
	res, err := s.run(ctx, working, s.blockSize, s.maxColors)
	if err != nil {
		return nil, err
	}
	s.source = working
	return res, nil
}

// SetBlockSize rebuilds the template from the retained image with a new
// block size.
func (s *Session) SetBlockSize(ctx context.Context, n int) (*Result, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	return s.run(ctx, s.source, n, s.maxColors)
}

// SetMaxColors rebuilds the template with a new palette cap.
func (s *Session) SetMaxColors(ctx context.Context, n int) (*Result, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	return s.run(ctx, s.source, s.blockSize, n)
}

func (s *Session) run(ctx context.Context, src *raster.Buffer, blockSize, maxColors int) (*Result, error) {
	res, err := Process(ctx, src, blockSize, maxColors, Options{
		Workers:      s.cfg.Workers,
		MinBlockSize: s.cfg.MinBlockSize,
		MaxBlockSize: s.cfg.MaxBlockSize,
		Placer:       s.placer,
	})
	if err != nil {
		return nil, err
	}
	s.blockSize = blockSize
	s.maxColors = maxColors
	s.result = res
	return res, nil
}

// Result returns the current template, nil before the first Load.
func (s *Session) Result() *Result {
	return s.result
}

// Source returns the retained working image, nil before the first Load.
func (s *Session) Source() *raster.Buffer {
	return s.source
}

// BlockSize returns the block size of the current result.
func (s *Session) BlockSize() int {
	return s.blockSize
}

// MaxColors returns the palette cap of the current result.
func (s *Session) MaxColors() int {
	return s.maxColors
}
