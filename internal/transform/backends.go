package transform

import (
	"image"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// DefaultBackend is the scaler used when none is configured.
const DefaultBackend = "xdraw"

// XDrawScaler resamples with golang.org/x/image/draw.
type XDrawScaler struct{}

func (XDrawScaler) Name() string { return "xdraw" }

func (XDrawScaler) Resamplers() []Resampler { return AllResamplers() }

func (XDrawScaler) Scale(src *image.NRGBA, width, height int, r Resampler) image.Image {
	var interp xdraw.Interpolator
	switch r {
	case Nearest:
		interp = xdraw.NearestNeighbor
	case Lanczos:
		interp = xdraw.CatmullRom
	default:
		interp = xdraw.BiLinear
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	interp.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// NfntScaler resamples with github.com/nfnt/resize.
type NfntScaler struct{}

func (NfntScaler) Name() string { return "nfnt" }

func (NfntScaler) Resamplers() []Resampler { return AllResamplers() }

func (NfntScaler) Scale(src *image.NRGBA, width, height int, r Resampler) image.Image {
	interp := resize.Bilinear
	switch r {
	case Nearest:
		interp = resize.NearestNeighbor
	case Lanczos:
		interp = resize.Lanczos3
	}
	return resize.Resize(uint(width), uint(height), src, interp)
}

// GiftScaler resamples with github.com/disintegration/gift.
type GiftScaler struct{}

func (GiftScaler) Name() string { return "gift" }

func (GiftScaler) Resamplers() []Resampler { return AllResamplers() }

func (GiftScaler) Scale(src *image.NRGBA, width, height int, r Resampler) image.Image {
	resampling := gift.LinearResampling
	switch r {
	case Nearest:
		resampling = gift.NearestNeighborResampling
	case Lanczos:
		resampling = gift.LanczosResampling
	}
	g := gift.New(gift.Resize(width, height, resampling))
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}
