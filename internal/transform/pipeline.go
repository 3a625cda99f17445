package transform

import (
	"fmt"

	"github.com/roboco-io/img2md/internal/ir"
)

// Options selects the transforms and scaling backend for Apply.
type Options struct {
	WhiteAsTransparent bool
	RoundCorners       bool
	CornerRadius       int
	ScalePercent       int
	Scaler             Scaler
	Resampler          Resampler
}

// OptionsFrom builds pipeline options from confirmed insert options.
func OptionsFrom(o ir.InsertOptions, s Scaler, r Resampler) Options {
	return Options{
		WhiteAsTransparent: o.WhiteAsTransparent,
		RoundCorners:       o.RoundCorners,
		CornerRadius:       o.CornerRadius,
		ScalePercent:       o.ScalePercent,
		Scaler:             s,
		Resampler:          r,
	}
}

// Result contains the transformed image and what was applied.
type Result struct {
	Image     *ir.RasterImage
	SrcWidth  int
	SrcHeight int
	Applied   []string
}

// Apply runs the selected transforms in a fixed order: white keying, corner
// rounding, then scaling. Scaling at exactly 100% is skipped.
func Apply(img *ir.RasterImage, opts Options) (*Result, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		Image:     img,
		SrcWidth:  img.Width,
		SrcHeight: img.Height,
	}

	if opts.WhiteAsTransparent {
		res.Image = WhiteToTransparent(res.Image)
		res.Applied = append(res.Applied, "white-to-transparent")
	}

	if opts.RoundCorners {
		res.Image = RoundCorners(res.Image, opts.CornerRadius)
		res.Applied = append(res.Applied, fmt.Sprintf("round-corners(%d)", opts.CornerRadius))
	}

	if opts.ScalePercent != ir.NoScale {
		w, h, err := TargetSize(res.Image.Width, res.Image.Height, opts.ScalePercent)
		if err != nil {
			return nil, err
		}
		scaled, err := Scale(res.Image, w, h, opts.Scaler, opts.Resampler)
		if err != nil {
			return nil, err
		}
		res.Image = scaled
		res.Applied = append(res.Applied, fmt.Sprintf("scale(%d%%)", opts.ScalePercent))
	}

	return res, nil
}
