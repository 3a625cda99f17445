package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/roboco-io/img2md/internal/ir"
)

// Compression selects the PNG compression level.
type Compression string

const (
	CompressionDefault Compression = "default"
	CompressionSpeed   Compression = "speed"
	CompressionBest    Compression = "best"
	CompressionNone    Compression = "none"
)

// ParseCompression parses a compression level name.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CompressionDefault, nil
	case CompressionDefault, CompressionSpeed, CompressionBest, CompressionNone:
		return c, nil
	default:
		return "", fmt.Errorf("unknown png compression: %s", s)
	}
}

func (c Compression) level() png.CompressionLevel {
	switch c {
	case CompressionSpeed:
		return png.BestSpeed
	case CompressionBest:
		return png.BestCompression
	case CompressionNone:
		return png.NoCompression
	default:
		return png.DefaultCompression
	}
}

// Encoder encodes RasterImages as PNG.
type Encoder struct {
	Compression Compression
}

// NewEncoder creates an encoder with the given compression level.
func NewEncoder(c Compression) *Encoder {
	return &Encoder{Compression: c}
}

// EncodePNG encodes img losslessly, preserving the alpha channel.
func (e *Encoder) EncodePNG(img *ir.RasterImage) ([]byte, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	enc := png.Encoder{CompressionLevel: e.Compression.level()}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, img.ToNRGBA()); err != nil {
		return nil, fmt.Errorf("%w: encoding png: %v", ir.ErrInvalidImage, err)
	}
	return buf.Bytes(), nil
}

// EncodePNG encodes img with the default compression level.
func EncodePNG(img *ir.RasterImage) ([]byte, error) {
	return NewEncoder(CompressionDefault).EncodePNG(img)
}

// DecodePNG decodes PNG data into a RasterImage.
func DecodePNG(data []byte) (*ir.RasterImage, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding png: %v", ir.ErrInvalidImage, err)
	}
	r := ir.RasterFromImage(img)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// ToBase64 returns the standard, padded, unwrapped base64 form of data.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
