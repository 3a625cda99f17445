package transform

import (
	"fmt"
	"math"

	"github.com/roboco-io/img2md/internal/ir"
)

// WhiteToTransparent clears the alpha of every pure white pixel.
// Only exact (255,255,255) matches are keyed; all other pixels are copied as is.
func WhiteToTransparent(img *ir.RasterImage) *ir.RasterImage {
	out := img.Clone()
	for i := 0; i+3 < len(out.Pix); i += 4 {
		if out.Pix[i] == 0xff && out.Pix[i+1] == 0xff && out.Pix[i+2] == 0xff {
			out.Pix[i+3] = 0
		}
	}
	return out
}

// RoundCorners clears the alpha of pixels outside a rounded rectangle.
// The radius is clamped to min(width, height)/2.
func RoundCorners(img *ir.RasterImage, radius int) *ir.RasterImage {
	out := img.Clone()
	r := ClampRadius(img.Width, img.Height, radius)
	if r <= 0 {
		return out
	}

	// Work in doubled coordinates so pixel centers are integers. A pixel in a
	// corner square is kept when its center lies within r-0.5 of the corner
	// circle center at (r, r).
	c := 2 * r
	limit := (2*r - 1) * (2*r - 1)
	for y := 0; y < r; y++ {
		dy := c - (2*y + 1)
		for x := 0; x < r; x++ {
			dx := c - (2*x + 1)
			if dx*dx+dy*dy <= limit {
				continue
			}
			clearAlpha(out, x, y)
			clearAlpha(out, out.Width-1-x, y)
			clearAlpha(out, x, out.Height-1-y)
			clearAlpha(out, out.Width-1-x, out.Height-1-y)
		}
	}
	return out
}

// ClampRadius limits radius so opposite corners never overlap.
func ClampRadius(width, height, radius int) int {
	maxRadius := width
	if height < maxRadius {
		maxRadius = height
	}
	maxRadius /= 2
	if radius > maxRadius {
		return maxRadius
	}
	return radius
}

func clearAlpha(img *ir.RasterImage, x, y int) {
	img.Pix[img.PixOffset(x, y)+3] = 0
}

// TargetSize returns the dimensions produced by scaling width x height by percent.
func TargetSize(width, height, percent int) (int, int, error) {
	if percent <= 0 {
		return 0, 0, fmt.Errorf("%w: scaling factor must be positive, got %d%%", ir.ErrInvalidImage, percent)
	}
	factor := float64(percent) / 100
	w := int(math.Round(float64(width) * factor))
	h := int(math.Round(float64(height) * factor))
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d at %d%% yields %dx%d", ir.ErrInvalidImage, width, height, percent, w, h)
	}
	return w, h, nil
}

// Scale resamples img to width x height using the given backend.
func Scale(img *ir.RasterImage, width, height int, s Scaler, r Resampler) (*ir.RasterImage, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: target size %dx%d", ir.ErrInvalidImage, width, height)
	}
	if s == nil {
		s = XDrawScaler{}
	}
	if width == img.Width && height == img.Height {
		return img.Clone(), nil
	}
	return ir.RasterFromImage(s.Scale(img.ToNRGBA(), width, height, r)), nil
}
