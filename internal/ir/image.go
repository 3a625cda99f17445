package ir

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// RasterImage is an RGBA8 bitmap with non-premultiplied alpha.
// Pixels are stored row-major with a stride of Width*4.
type RasterImage struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Pix    []uint8 `json:"-"`
}

// NewRaster creates a fully transparent image of the given size.
func NewRaster(width, height int) *RasterImage {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &RasterImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// RasterFromImage converts any image.Image into a RasterImage.
func RasterFromImage(src image.Image) *RasterImage {
	if n, ok := src.(*image.NRGBA); ok {
		return RasterFromNRGBA(n)
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return RasterFromNRGBA(dst)
}

// RasterFromNRGBA copies an NRGBA image into a RasterImage.
func RasterFromNRGBA(src *image.NRGBA) *RasterImage {
	b := src.Bounds()
	r := NewRaster(b.Dx(), b.Dy())
	rowLen := r.Width * 4
	for y := 0; y < r.Height; y++ {
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(r.Pix[y*rowLen:(y+1)*rowLen], src.Pix[off:off+rowLen])
	}
	return r
}

// Validate checks the image dimensions and buffer length.
func (r *RasterImage) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: zero dimension %dx%d", ErrInvalidImage, r.Width, r.Height)
	}
	if len(r.Pix) != r.Width*r.Height*4 {
		return fmt.Errorf("%w: expected %d bytes for %dx%d, got %d",
			ErrInvalidImage, r.Width*r.Height*4, r.Width, r.Height, len(r.Pix))
	}
	return nil
}

// Bounds returns the image rectangle anchored at the origin.
func (r *RasterImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (r *RasterImage) PixOffset(x, y int) int {
	return (y*r.Width + x) * 4
}

// At returns the color of pixel (x, y).
func (r *RasterImage) At(x, y int) color.NRGBA {
	i := r.PixOffset(x, y)
	return color.NRGBA{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2], A: r.Pix[i+3]}
}

// Set sets the color of pixel (x, y).
func (r *RasterImage) Set(x, y int, c color.NRGBA) {
	i := r.PixOffset(x, y)
	r.Pix[i] = c.R
	r.Pix[i+1] = c.G
	r.Pix[i+2] = c.B
	r.Pix[i+3] = c.A
}

// Clone returns a deep copy of the image.
func (r *RasterImage) Clone() *RasterImage {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &RasterImage{Width: r.Width, Height: r.Height, Pix: pix}
}

// ToNRGBA returns a standard library image holding a copy of the pixels.
func (r *RasterImage) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	copy(img.Pix, r.Pix)
	return img
}

// Equal reports whether both images have the same size and pixels.
func (r *RasterImage) Equal(other *RasterImage) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Width != other.Width || r.Height != other.Height || len(r.Pix) != len(other.Pix) {
		return false
	}
	for i := range r.Pix {
		if r.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}
