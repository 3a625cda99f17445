package transform

import (
	"errors"
	"image/color"
	"testing"

	"github.com/roboco-io/img2md/internal/ir"
)

func solid(w, h int, c color.NRGBA) *ir.RasterImage {
	img := ir.NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func TestWhiteToTransparent(t *testing.T) {
	img := solid(4, 4, white)
	img.Set(1, 1, red)
	img.Set(2, 2, color.NRGBA{R: 254, G: 255, B: 255, A: 200})

	out := WhiteToTransparent(img)

	if out.At(0, 0).A != 0 {
		t.Errorf("expected white pixel to be transparent, got alpha %d", out.At(0, 0).A)
	}
	if out.At(0, 0).R != 255 {
		t.Error("expected color channels to be preserved")
	}
	if out.At(1, 1) != red {
		t.Errorf("expected red pixel untouched, got %v", out.At(1, 1))
	}
	if out.At(2, 2).A != 200 {
		t.Errorf("expected near-white pixel untouched, got alpha %d", out.At(2, 2).A)
	}
	if img.At(0, 0).A != 255 {
		t.Error("expected input image not to be mutated")
	}
}

func TestWhiteToTransparent_Idempotent(t *testing.T) {
	img := solid(8, 8, white)
	img.Set(3, 3, red)

	once := WhiteToTransparent(img)
	twice := WhiteToTransparent(once)

	if !once.Equal(twice) {
		t.Error("expected second application to change nothing")
	}
}

func TestRoundCorners(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		radius int
	}{
		{"radius 1", 10, 10, 1},
		{"radius 20", 100, 100, 20},
		{"wide", 80, 30, 20},
		{"clamped", 10, 6, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img := solid(tc.w, tc.h, red)
			out := RoundCorners(img, tc.radius)

			if out.Width != tc.w || out.Height != tc.h {
				t.Fatalf("expected %dx%d, got %dx%d", tc.w, tc.h, out.Width, out.Height)
			}

			corners := [][2]int{{0, 0}, {tc.w - 1, 0}, {0, tc.h - 1}, {tc.w - 1, tc.h - 1}}
			for _, c := range corners {
				if a := out.At(c[0], c[1]).A; a != 0 {
					t.Errorf("expected corner (%d,%d) transparent, got alpha %d", c[0], c[1], a)
				}
			}

			if got := out.At(tc.w/2, tc.h/2); got != red {
				t.Errorf("expected center untouched, got %v", got)
			}
		})
	}
}

func TestRoundCorners_StraightEdges(t *testing.T) {
	img := solid(100, 100, red)
	out := RoundCorners(img, 20)

	// Middle of each edge lies on the straight part of the mask.
	edges := [][2]int{{50, 0}, {0, 50}, {99, 50}, {50, 99}}
	for _, e := range edges {
		if got := out.At(e[0], e[1]); got != red {
			t.Errorf("expected edge pixel (%d,%d) untouched, got %v", e[0], e[1], got)
		}
	}

	// The tangent point of the corner arc is kept.
	if out.At(20, 0).A == 0 {
		t.Error("expected pixel at arc tangent to be kept")
	}
	if out.At(8, 8).A == 0 {
		t.Error("expected pixel inside the arc to be kept")
	}
	if out.At(2, 2).A != 0 {
		t.Error("expected pixel outside the arc to be cleared")
	}
}

func TestRoundCorners_ZeroRadius(t *testing.T) {
	img := solid(5, 5, red)
	out := RoundCorners(img, 0)

	if !img.Equal(out) {
		t.Error("expected zero radius to leave the image unchanged")
	}
}

func TestClampRadius(t *testing.T) {
	tests := []struct {
		w, h, r, expected int
	}{
		{100, 100, 20, 20},
		{30, 80, 20, 15},
		{30, 80, 15, 15},
		{1, 1, 20, 0},
	}

	for _, tc := range tests {
		if got := ClampRadius(tc.w, tc.h, tc.r); got != tc.expected {
			t.Errorf("ClampRadius(%d, %d, %d) = %d, want %d", tc.w, tc.h, tc.r, got, tc.expected)
		}
	}
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		w, h, percent int
		ew, eh        int
		wantErr       bool
	}{
		{100, 100, 100, 100, 100, false},
		{100, 50, 50, 50, 25, false},
		{3, 3, 50, 2, 2, false},
		{640, 480, 125, 800, 600, false},
		{100, 100, 0, 0, 0, true},
		{100, 100, -10, 0, 0, true},
		{1, 1, 10, 0, 0, true},
	}

	for _, tc := range tests {
		w, h, err := TargetSize(tc.w, tc.h, tc.percent)
		if tc.wantErr {
			if !errors.Is(err, ir.ErrInvalidImage) {
				t.Errorf("TargetSize(%d, %d, %d): expected ErrInvalidImage, got %v", tc.w, tc.h, tc.percent, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("TargetSize(%d, %d, %d): unexpected error: %v", tc.w, tc.h, tc.percent, err)
			continue
		}
		if w != tc.ew || h != tc.eh {
			t.Errorf("TargetSize(%d, %d, %d) = %dx%d, want %dx%d", tc.w, tc.h, tc.percent, w, h, tc.ew, tc.eh)
		}
	}
}

func TestScale_Backends(t *testing.T) {
	img := solid(40, 20, red)

	for _, name := range List() {
		s, err := Get(name)
		if err != nil {
			t.Fatalf("failed to get %s: %v", name, err)
		}
		for _, r := range s.Resamplers() {
			t.Run(name+"/"+string(r), func(t *testing.T) {
				out, err := Scale(img, 20, 10, s, r)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if out.Width != 20 || out.Height != 10 {
					t.Errorf("expected 20x10, got %dx%d", out.Width, out.Height)
				}
				if err := out.Validate(); err != nil {
					t.Errorf("invalid output: %v", err)
				}
				if got := out.At(10, 5); got.R < 250 || got.G > 5 || got.B > 5 || got.A < 250 {
					t.Errorf("expected solid color to survive resampling, got %v", got)
				}
			})
		}
	}
}

func TestScale_InvalidTarget(t *testing.T) {
	img := solid(4, 4, red)

	if _, err := Scale(img, 0, 4, nil, Bilinear); !errors.Is(err, ir.ErrInvalidImage) {
		t.Errorf("expected ErrInvalidImage, got %v", err)
	}
}

func TestApply_NoScaleIsIdentity(t *testing.T) {
	img := solid(10, 10, red)
	img.Set(3, 4, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	res, err := Apply(img, Options{ScalePercent: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Image != img {
		t.Error("expected input to be returned unchanged at 100%")
	}
	if len(res.Applied) != 0 {
		t.Errorf("expected no transforms, got %v", res.Applied)
	}
}

func TestApply_Order(t *testing.T) {
	img := solid(100, 100, white)

	res, err := Apply(img, Options{
		WhiteAsTransparent: true,
		RoundCorners:       true,
		CornerRadius:       20,
		ScalePercent:       50,
		Scaler:             XDrawScaler{},
		Resampler:          Nearest,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"white-to-transparent", "round-corners(20)", "scale(50%)"}
	if len(res.Applied) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, res.Applied)
	}
	for i := range expected {
		if res.Applied[i] != expected[i] {
			t.Errorf("step %d: expected %s, got %s", i, expected[i], res.Applied[i])
		}
	}

	if res.Image.Width != 50 || res.Image.Height != 50 {
		t.Errorf("expected 50x50, got %dx%d", res.Image.Width, res.Image.Height)
	}
	if res.SrcWidth != 100 || res.SrcHeight != 100 {
		t.Errorf("expected source 100x100, got %dx%d", res.SrcWidth, res.SrcHeight)
	}
	if res.Image.At(25, 25).A != 0 {
		t.Error("expected keyed white to stay transparent after scaling")
	}
}

func TestApply_InvalidImage(t *testing.T) {
	if _, err := Apply(ir.NewRaster(0, 0), Options{ScalePercent: 100}); !errors.Is(err, ir.ErrInvalidImage) {
		t.Errorf("expected ErrInvalidImage, got %v", err)
	}
}

func TestOptionsFrom(t *testing.T) {
	o := ir.DefaultInsertOptions()
	o.WhiteAsTransparent = true
	o.ScalePercent = 75

	opts := OptionsFrom(o, GiftScaler{}, Lanczos)

	if !opts.WhiteAsTransparent || opts.RoundCorners {
		t.Error("expected flags to be copied")
	}
	if opts.ScalePercent != 75 || opts.CornerRadius != 20 {
		t.Errorf("unexpected numbers: %+v", opts)
	}
	if opts.Scaler.Name() != "gift" || opts.Resampler != Lanczos {
		t.Errorf("unexpected backend: %s/%s", opts.Scaler.Name(), opts.Resampler)
	}
}
