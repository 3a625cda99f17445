// Package vcs schedules newly written images for addition to version control.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotVersioned is returned when a path is not inside a work tree.
var ErrNotVersioned = errors.New("not under version control")

// Stager schedules a new file for addition.
type Stager interface {
	Stage(ctx context.Context, path string) error
}

// Git stages files with the git command line.
type Git struct {
	// Binary is the git executable. Empty means "git" from PATH.
	Binary string
}

func (g Git) binary() string {
	if g.Binary == "" {
		return "git"
	}
	return g.Binary
}

// Stage runs "git add" for path if it lies inside a git work tree.
func (g Git) Stage(ctx context.Context, path string) error {
	dir := filepath.Dir(path)

	cmd := exec.CommandContext(ctx, g.binary(), "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil || strings.TrimSpace(string(output)) != "true" {
		return ErrNotVersioned
	}

	cmd = exec.CommandContext(ctx, g.binary(), "add", "--", filepath.Base(path))
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git add failed: %s", strings.TrimSpace(string(output)))
	}
	return nil
}

// Noop never stages anything.
type Noop struct{}

func (Noop) Stage(ctx context.Context, path string) error { return nil }
