package resample

import (
	"fmt"

	"golang.org/x/image/draw"
)

// New creates a resampler for the given interpolation kernel name.
func New(variant string) (Resampler, error) {
	switch variant {
	case "bilinear", "":
		return &Kernel{Scaler: draw.BiLinear}, nil
	case "approx-bilinear":
		return &Kernel{Scaler: draw.ApproxBiLinear}, nil
	case "catmullrom":
		return &Kernel{Scaler: draw.CatmullRom}, nil
	case "nearest":
		return &Kernel{Scaler: draw.NearestNeighbor}, nil
	default:
		return nil, fmt.Errorf("unknown resample kernel: %s", variant)
	}
}
