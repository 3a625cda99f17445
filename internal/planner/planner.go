// Package planner decides where a pasted image goes and how it is referenced.
package planner

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roboco-io/img2md/internal/codec"
	"github.com/roboco-io/img2md/internal/ir"
)

// MarkdownExtensions are stripped from the document name to form its base name.
var MarkdownExtensions = []string{".md", ".Rmd", ".markdown", ".mdx"}

// RandomNameLength is the length of generated image names.
const RandomNameLength = 8

// FileSystem is the subset of file operations the planner needs.
type FileSystem interface {
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Stat(path string) (fs.FileInfo, error)
}

type osFS struct{}

func (osFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

func (osFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (osFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// OSFileSystem returns a FileSystem backed by the os package.
func OSFileSystem() FileSystem {
	return osFS{}
}

// Planner turns a transformed image into an InsertionResult.
type Planner struct {
	fs      FileSystem
	encoder *codec.Encoder
	names   func() (string, error)
	logger  *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithFileSystem replaces the file system used for directory creation and writes.
func WithFileSystem(fsys FileSystem) Option {
	return func(p *Planner) { p.fs = fsys }
}

// WithEncoder sets the PNG encoder.
func WithEncoder(e *codec.Encoder) Option {
	return func(p *Planner) { p.encoder = e }
}

// WithNameGenerator replaces the random name generator.
func WithNameGenerator(gen func() (string, error)) Option {
	return func(p *Planner) { p.names = gen }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// New creates a planner writing to the real file system.
func New(opts ...Option) *Planner {
	p := &Planner{
		fs:      osFS{},
		encoder: codec.NewEncoder(codec.CompressionDefault),
		names:   RandomName,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ResolveName returns name, or a generated one when name is blank.
func (p *Planner) ResolveName(name string) (string, error) {
	if strings.TrimSpace(name) != "" {
		return name, nil
	}
	return p.names()
}

// Plan encodes img and either inlines it or writes it next to the document.
// A blank opts.ImageName gets a random name.
func (p *Planner) Plan(img *ir.RasterImage, opts ir.InsertOptions, docPath string) (*ir.InsertionResult, error) {
	name, err := p.ResolveName(opts.ImageName)
	if err != nil {
		return nil, fmt.Errorf("generating image name: %w", err)
	}

	data, err := p.encoder.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	if opts.Inline {
		p.logger.Debug("planner: inlining image", "name", name, "bytes", len(data))
		return ir.NewInlineReference(name, codec.ToBase64(data)), nil
	}

	docDir := filepath.Dir(docPath)
	dir := filepath.Join(docDir, filepath.FromSlash(ResolvePattern(opts.DirectoryPattern, DocumentBaseName(docPath))))

	if err := p.fs.MkdirAll(dir, 0755); err != nil {
		return nil, &ir.FileSystemError{Op: "mkdir", Path: dir, Err: err}
	}

	target := filepath.Join(dir, name+".png")

	// Existing files are replaced without confirmation.
	overwritten := false
	if _, err := p.fs.Stat(target); err == nil {
		overwritten = true
		p.logger.Warn("planner: overwriting existing image", "path", target)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, &ir.FileSystemError{Op: "stat", Path: target, Err: err}
	}

	if err := p.fs.WriteFile(target, data, 0644); err != nil {
		return nil, &ir.FileSystemError{Op: "write", Path: target, Err: err}
	}

	rel, err := RelativePath(docDir, target)
	if err != nil {
		return nil, err
	}

	p.logger.Info("planner: wrote image", "path", target, "bytes", len(data))

	res := ir.NewFileReference(name, rel, target)
	res.Overwritten = overwritten
	return res, nil
}

// DocumentBaseName returns the file name of docPath without a Markdown extension.
func DocumentBaseName(docPath string) string {
	base := filepath.Base(docPath)
	for _, ext := range MarkdownExtensions {
		if strings.HasSuffix(base, ext) && len(base) > len(ext) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return base
}

// ResolvePattern substitutes the document base name into a directory pattern.
func ResolvePattern(pattern, baseName string) string {
	return strings.ReplaceAll(pattern, ir.DocumentNameToken, baseName)
}

// RelativePath returns target relative to base using forward slashes.
func RelativePath(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", target, err)
	}
	return filepath.ToSlash(rel), nil
}

// RandomName returns a random lowercase hex token of RandomNameLength characters.
func RandomName() (string, error) {
	buf := make([]byte, RandomNameLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
