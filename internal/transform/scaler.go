// Package transform provides the pixel transforms applied to a pasted image.
package transform

import (
	"fmt"
	"image"
	"strings"
)

// Scaler is the interface that all resampling backends must implement.
type Scaler interface {
	// Name returns the backend identifier (e.g., "xdraw", "nfnt").
	Name() string

	// Scale resamples src to exactly width x height pixels.
	Scale(src *image.NRGBA, width, height int, r Resampler) image.Image

	// Resamplers lists the resampling kernels the backend supports.
	Resamplers() []Resampler
}

// Resampler selects the interpolation kernel used when scaling.
type Resampler string

const (
	Nearest  Resampler = "nearest"
	Bilinear Resampler = "bilinear"
	Lanczos  Resampler = "lanczos"
)

// DefaultResampler is used when no resampler is configured.
const DefaultResampler = Bilinear

// ParseResampler parses a resampler name.
func ParseResampler(s string) (Resampler, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bilinear", "linear":
		return Bilinear, nil
	case "nearest", "nearest-neighbor":
		return Nearest, nil
	case "lanczos", "lanczos3":
		return Lanczos, nil
	default:
		return "", fmt.Errorf("unknown resampler: %s", s)
	}
}

// AllResamplers returns every supported resampler.
func AllResamplers() []Resampler {
	return []Resampler{Nearest, Bilinear, Lanczos}
}
