// Package clipboard supplies the image a paste starts from.
package clipboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	xclip "golang.design/x/clipboard"

	"github.com/roboco-io/img2md/internal/codec"
	"github.com/roboco-io/img2md/internal/ir"
)

// Source supplies the raw pasted image.
// Implementations return ir.ErrNoImageOnClipboard when no image is available.
type Source interface {
	Image(ctx context.Context) (*ir.RasterImage, error)
}

// System reads the image from the system clipboard.
type System struct{}

var (
	initOnce sync.Once
	initErr  error
)

// Image reads PNG data from the system clipboard.
func (System) Image(ctx context.Context) (*ir.RasterImage, error) {
	initOnce.Do(func() { initErr = xclip.Init() })
	if initErr != nil {
		return nil, fmt.Errorf("clipboard unavailable: %w", initErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := xclip.Read(xclip.FmtImage)
	if len(data) == 0 {
		return nil, ir.ErrNoImageOnClipboard
	}
	img, _, err := codec.Decode(data)
	return img, err
}

// File reads the image from a file standing in for the clipboard.
type File struct {
	Path string
}

func (f File) Image(ctx context.Context) (*ir.RasterImage, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ir.ErrNoImageOnClipboard, f.Path)
		}
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return decode(data)
}

// Reader reads the image from r, typically stdin.
type Reader struct {
	R io.Reader
}

func (r Reader) Image(ctx context.Context) (*ir.RasterImage, error) {
	data, err := io.ReadAll(r.R)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return decode(data)
}

// Static returns a fixed image. A nil image behaves like an empty clipboard.
type Static struct {
	Img *ir.RasterImage
}

func (s Static) Image(ctx context.Context) (*ir.RasterImage, error) {
	if s.Img == nil {
		return nil, ir.ErrNoImageOnClipboard
	}
	return s.Img, nil
}

func decode(data []byte) (*ir.RasterImage, error) {
	if len(data) == 0 {
		return nil, ir.ErrNoImageOnClipboard
	}
	img, _, err := codec.Decode(data)
	return img, err
}

// FromFlag returns the source selected by a --from flag value:
// empty for the system clipboard, "-" for stdin, anything else a file path.
func FromFlag(from string, stdin io.Reader) Source {
	switch from {
	case "":
		return System{}
	case "-":
		return Reader{R: stdin}
	default:
		return File{Path: from}
	}
}
