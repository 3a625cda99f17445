// Package codec decodes pasted images and encodes transformed images as PNG.
package codec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/roboco-io/img2md/internal/ir"
)

// Format represents an input image format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatTIFF
	FormatWebP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// DetectFormatFromPath detects the image format from the file extension.
func DetectFormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".gif":
		return FormatGIF
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	case ".webp":
		return FormatWebP
	default:
		return FormatUnknown
	}
}

// DetectFormat detects the format by reading magic bytes.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return FormatPNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return FormatJPEG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return FormatGIF
	case bytes.HasPrefix(data, []byte("BM")):
		return FormatBMP
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return FormatTIFF
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return FormatWebP
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format from the first bytes of r.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 12)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 2 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}
	return DetectFormat(buf[:n]), nil
}

// Decode decodes any supported image format into a RasterImage.
func Decode(data []byte) (*ir.RasterImage, Format, error) {
	format := DetectFormat(data)
	if format == FormatUnknown {
		return nil, format, fmt.Errorf("%w: unrecognized image data (%d bytes)", ir.ErrInvalidImage, len(data))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("%w: decoding %s: %v", ir.ErrInvalidImage, format, err)
	}

	r := ir.RasterFromImage(img)
	if err := r.Validate(); err != nil {
		return nil, format, err
	}
	return r, format, nil
}
