// Package palette extracts a ranked list of dominant opaque colors from a
// quantized buffer and maps sampled colors back onto that list.
package palette

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/paintbynumbers/internal/raster"
)

// ErrNoOpaquePixels marks an empty palette. It is a notice for callers, the
// extractor itself returns an empty slice and a nil error in that case.
var ErrNoOpaquePixels = errors.New("no opaque pixels")

// DefaultMaxColors is the default palette cap.
const DefaultMaxColors = 12

// AlphaThreshold is the smallest alpha counted as opaque.
const AlphaThreshold = 128

// Key packs an RGB triple as 0xRRGGBB.
type Key uint32

// KeyOf packs one RGB triple.
func KeyOf(r, g, b uint8) Key {
	return Key(r)<<16 | Key(g)<<8 | Key(b)
}

// RGB unpacks the key.
func (k Key) RGB() (r, g, b uint8) {
	return uint8(k >> 16), uint8(k >> 8), uint8(k)
}

// Entry is one ranked palette color.
type Entry struct {
	ID    int        // 1-based rank
	RGB   color.RGBA // Always opaque
	Hex   string     // "#rrggbb"
	Count int        // Opaque pixels of this color in the scanned buffer
}

// CSS returns the color in "rgb(r, g, b)" notation.
func (e Entry) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", e.RGB.R, e.RGB.G, e.RGB.B)
}

// Key returns the packed color of the entry.
func (e Entry) Key() Key {
	return KeyOf(e.RGB.R, e.RGB.G, e.RGB.B)
}

// NewEntry builds an entry with its hex representation filled in.
func NewEntry(id int, r, g, b uint8, count int) Entry {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return Entry{
		ID:    id,
		RGB:   color.RGBA{R: r, G: g, B: b, A: 255},
		Hex:   c.Hex(),
		Count: count,
	}
}

// Options tunes how the scan is scheduled. The result does not depend on it.
type Options struct {
	Workers  int // Parallel row bands, <= 1 runs inline
	BandRows int // Rows per band, 0 picks a default
}

const defaultBandRows = 32

// tally is the frequency table of one scanned band.
type tally struct {
	count map[Key]int
	first map[Key]int // Row-major pixel index of the first occurrence
}

// Extract counts opaque colors and returns the maxColors most frequent ones.
// Ties keep first-seen scan order. Fully transparent input yields an empty,
// non-nil slice.
func Extract(ctx context.Context, buf *raster.Buffer, maxColors int, opts Options) ([]Entry, error) {
	if err := raster.CheckPositive("max_colors", maxColors); err != nil {
		return nil, err
	}
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	bandRows := opts.BandRows
	if bandRows <= 0 {
		bandRows = defaultBandRows
	}
	bands := make([]tally, (buf.Height+bandRows-1)/bandRows)

	err := raster.ForEachBand(ctx, buf.Height, bandRows, opts.Workers, func(_ context.Context, index, y0, y1 int) error {
		bands[index] = scan(buf, y0, y1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rank(merge(bands), maxColors), nil
}

func scan(buf *raster.Buffer, y0, y1 int) tally {
	t := tally{count: make(map[Key]int), first: make(map[Key]int)}
	start, end := buf.Offset(0, y0), buf.Offset(0, y1)
	pix := buf.Pix[start:end]
	base := y0 * buf.Width
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] < AlphaThreshold {
			continue
		}
		k := KeyOf(pix[i], pix[i+1], pix[i+2])
		if _, seen := t.count[k]; !seen {
			t.first[k] = base + i/4
		}
		t.count[k]++
	}
	return t
}

// merge folds band tallies in band order. Bands are disjoint and ordered, so
// the first band that saw a key holds its global first occurrence.
func merge(bands []tally) tally {
	if len(bands) == 1 {
		return bands[0]
	}
	out := tally{count: make(map[Key]int), first: make(map[Key]int)}
	for _, b := range bands {
		for k, n := range b.count {
			if _, seen := out.count[k]; !seen {
				out.first[k] = b.first[k]
			}
			out.count[k] += n
		}
	}
	return out
}

func rank(t tally, maxColors int) []Entry {
	keys := make([]Key, 0, len(t.count))
	for k := range t.count {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := t.count[keys[i]], t.count[keys[j]]
		if ci != cj {
			return ci > cj
		}
		return t.first[keys[i]] < t.first[keys[j]]
	})

	n := min(maxColors, len(keys))
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		r, g, b := keys[i].RGB()
		entries[i] = NewEntry(i+1, r, g, b, t.count[keys[i]])
	}
	return entries
}

// DefaultTolerance is the exclusive per-channel distance used for matching.
const DefaultTolerance = 10

// Match returns the first entry, in rank order, whose every channel differs
// from c by less than tolerance. Colors below AlphaThreshold never match.
func Match(entries []Entry, c color.RGBA, tolerance int) (Entry, bool) {
	if c.A < AlphaThreshold {
		return Entry{}, false
	}
	for _, e := range entries {
		if absDiff(e.RGB.R, c.R) < tolerance &&
			absDiff(e.RGB.G, c.G) < tolerance &&
			absDiff(e.RGB.B, c.B) < tolerance {
			return e, true
		}
	}
	return Entry{}, false
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
