// Package action runs one paste: clipboard, settings, transforms, file or
// inline reference, caret insertion, staging and preferences, in that order.
package action

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roboco-io/img2md/internal/clipboard"
	"github.com/roboco-io/img2md/internal/editor"
	"github.com/roboco-io/img2md/internal/ir"
	"github.com/roboco-io/img2md/internal/planner"
	"github.com/roboco-io/img2md/internal/prefs"
	"github.com/roboco-io/img2md/internal/settings"
	"github.com/roboco-io/img2md/internal/transform"
	"github.com/roboco-io/img2md/internal/vcs"
)

// Controller wires the collaborators of a paste.
type Controller struct {
	Clipboard clipboard.Source
	Settings  settings.Collaborator
	Planner   *planner.Planner
	Editor    editor.Inserter
	VCS       vcs.Stager // nil disables staging
	Prefs     prefs.Store

	// Defaults are the options used for anything never saved in Prefs.
	Defaults ir.InsertOptions

	Scaler    transform.Scaler
	Resampler transform.Resampler

	Logger *slog.Logger
}

// Outcome describes a completed paste.
type Outcome struct {
	Result    *ir.InsertionResult
	Options   ir.InsertOptions
	Markdown  string
	SrcWidth  int
	SrcHeight int
	Width     int
	Height    int
	Applied   []string
	Staged    bool
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Run performs one paste into the document at docPath.
// On error only the effects of steps before the failing one remain.
func (c *Controller) Run(ctx context.Context, docPath string) (*Outcome, error) {
	log := c.logger()

	img, err := c.Clipboard.Image(ctx)
	if err != nil {
		return nil, err
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	log.Debug("action: clipboard image", "width", img.Width, "height", img.Height)

	defaults := c.Defaults
	if defaults == (ir.InsertOptions{}) {
		defaults = ir.DefaultInsertOptions()
	}
	if c.Prefs != nil {
		defaults, err = prefs.LoadWith(c.Prefs, docPath, defaults)
		if err != nil {
			return nil, fmt.Errorf("loading preferences: %w", err)
		}
	}

	opts, err := c.Settings.Confirm(ctx, settings.Request{
		DocumentPath: docPath,
		Width:        img.Width,
		Height:       img.Height,
		Defaults:     defaults,
	})
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rawName := opts.ImageName
	if opts.ImageName, err = c.Planner.ResolveName(rawName); err != nil {
		return nil, fmt.Errorf("generating image name: %w", err)
	}

	tr, err := transform.Apply(img, transform.OptionsFrom(opts, c.Scaler, c.Resampler))
	if err != nil {
		return nil, err
	}
	if len(tr.Applied) > 0 {
		log.Debug("action: transformed image", "applied", tr.Applied,
			"width", tr.Image.Width, "height", tr.Image.Height)
	}

	res, err := c.Planner.Plan(tr.Image, opts, docPath)
	if err != nil {
		return nil, err
	}

	md := editor.Link(res)
	if err := c.Editor.Insert(ctx, md); err != nil {
		return nil, fmt.Errorf("inserting markdown: %w", err)
	}

	out := &Outcome{
		Result:    res,
		Options:   opts,
		Markdown:  md,
		SrcWidth:  tr.SrcWidth,
		SrcHeight: tr.SrcHeight,
		Width:     tr.Image.Width,
		Height:    tr.Image.Height,
		Applied:   tr.Applied,
	}

	// Staging failures never abort the paste.
	if res.IsFile() && c.VCS != nil {
		if err := c.VCS.Stage(ctx, res.AbsolutePath); err != nil {
			log.Debug("action: staging skipped", "path", res.AbsolutePath, "error", err)
		} else {
			out.Staged = true
		}
	}

	if c.Prefs != nil {
		if err := prefs.Save(c.Prefs, docPath, opts, rawName); err != nil {
			return out, fmt.Errorf("saving preferences: %w", err)
		}
	}

	log.Info("action: pasted image", "name", res.Name, "kind", res.Kind)
	return out, nil
}
