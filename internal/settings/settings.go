// Package settings confirms the presentation options of a paste.
package settings

import (
	"context"
	"fmt"

	"github.com/roboco-io/img2md/internal/ir"
	"github.com/roboco-io/img2md/internal/transform"
)

// Request describes the paste the user is asked to confirm.
type Request struct {
	DocumentPath string
	Width        int // source image width
	Height       int // source image height
	Defaults     ir.InsertOptions
}

// Collaborator presents the options and returns the confirmed values.
// Implementations return ir.ErrUserCancelled when the user dismisses the form.
type Collaborator interface {
	Confirm(ctx context.Context, req Request) (ir.InsertOptions, error)
}

// Overrides holds option values given explicitly, e.g. on the command line.
// Nil fields keep the request defaults.
type Overrides struct {
	WhiteAsTransparent *bool
	RoundCorners       *bool
	CornerRadius       *int
	ScalePercent       *int
	Inline             *bool
	ImageName          *string
	DirectoryPattern   *string
}

// Apply returns opts with every set override applied.
func (o Overrides) Apply(opts ir.InsertOptions) ir.InsertOptions {
	if o.WhiteAsTransparent != nil {
		opts.WhiteAsTransparent = *o.WhiteAsTransparent
	}
	if o.RoundCorners != nil {
		opts.RoundCorners = *o.RoundCorners
	}
	if o.CornerRadius != nil {
		opts.CornerRadius = *o.CornerRadius
	}
	if o.ScalePercent != nil {
		opts.ScalePercent = *o.ScalePercent
	}
	if o.Inline != nil {
		opts.Inline = *o.Inline
	}
	if o.ImageName != nil {
		opts.ImageName = *o.ImageName
	}
	if o.DirectoryPattern != nil {
		opts.DirectoryPattern = *o.DirectoryPattern
	}
	return opts
}

// Static confirms the request defaults merged with overrides, without asking.
type Static struct {
	Overrides Overrides
}

func (s Static) Confirm(ctx context.Context, req Request) (ir.InsertOptions, error) {
	if err := ctx.Err(); err != nil {
		return ir.InsertOptions{}, err
	}
	opts := s.Overrides.Apply(req.Defaults)
	if err := opts.Validate(); err != nil {
		return ir.InsertOptions{}, err
	}
	return opts, nil
}

// Cancel always reports that the user dismissed the form.
type Cancel struct{}

func (Cancel) Confirm(ctx context.Context, req Request) (ir.InsertOptions, error) {
	return ir.InsertOptions{}, ir.ErrUserCancelled
}

// ProjectedSize returns the "W x H" label for the output of scaling
// width x height by percent, or "-" when the result would be empty.
func ProjectedSize(width, height, percent int) string {
	if percent == ir.NoScale {
		return fmt.Sprintf("%d x %d", width, height)
	}
	w, h, err := transform.TargetSize(width, height, percent)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%d x %d", w, h)
}
