package glitchsort

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"
)

type Options struct {
	// Generated image size. Ignored when the Sorter wraps an external image.
	Width, Height int
	// Ascending noise cut points, one color band per entry.
	// Noise values fall roughly in [-1, 1]; values below Thresholds[0] land in band 0.
	Thresholds []float64
	// Noise source settings, including the seed.
	Noise NoiseOptions
	// Band 0 is painted with Background instead of a palette color when
	// UseBackground is set.
	Background    color.RGBA
	UseBackground bool
	PaletteMode   PaletteMode
	// Inclusive luminance window selected for sorting.
	// Wider windows => longer runs => stronger streaks.
	MaskLow, MaskHigh uint8
	// Row workers for the sort stage. <= 0 uses GOMAXPROCS, 1 is sequential.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Width:      1920,
		Height:     1080,
		Thresholds: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
		Noise:      DefaultNoiseOptions(),
		Background: color.RGBA{R: 0, G: 0, B: 0, A: 255},
		MaskLow:    50,
		MaskHigh:   150,
	}
}

// OptionsFromSize returns DefaultOptions sized to size, with a sequential
// sort for small images where goroutine fan-out does not pay off.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	opt.Width, opt.Height = size.X, size.Y
	if size.X*size.Y <= 256*256 {
		opt.Workers = 1
	} else {
		opt.Workers = runtime.GOMAXPROCS(0)
	}
	return opt
}

// WithTimeSeed returns opt with the noise seed taken from the wall clock.
func (opt Options) WithTimeSeed() Options {
	opt.Noise.Seed = time.Now().UnixNano()
	return opt
}

// Validate reports the first violated precondition in opt.
func (opt Options) Validate() error {
	if opt.Width <= 0 || opt.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, opt.Width, opt.Height)
	}
	if err := ValidateThresholds(opt.Thresholds); err != nil {
		return err
	}
	if !(opt.Noise.ScaleX > 0) || !(opt.Noise.ScaleY > 0) {
		return fmt.Errorf("%w: %g, %g", ErrInvalidScale, opt.Noise.ScaleX, opt.Noise.ScaleY)
	}
	if opt.MaskLow > opt.MaskHigh {
		return fmt.Errorf("%w: low %d, high %d", ErrMaskRange, opt.MaskLow, opt.MaskHigh)
	}
	return nil
}

// Sorter carries one image through luminance, mask and run-sort stages.
// Intermediate buffers stay on the struct for diagnostics.
type Sorter struct {
	InputImage *image.RGBA
	Noise      *NoiseField
	Palette    Palette
	Luma       *image.Gray
	Mask       *image.Gray
	Output     *image.RGBA
}

// NewSorter wraps an externally supplied image. Pass nil and call Generate
// to sort a noise image instead.
func NewSorter(input *image.RGBA) *Sorter {
	return &Sorter{InputImage: input}
}

// Generate replaces the input with a banded noise image built from opt.
// The palette is drawn once from a generator seeded with opt.Noise.Seed.
func (s *Sorter) Generate(opt Options) {
	mustNot(opt.Validate())
	rng := rand.New(rand.NewPCG(uint64(opt.Noise.Seed), 0x9e3779b97f4a7c15))
	s.GenerateWithPalette(opt, NewPalette(rng, len(opt.Thresholds), opt.PaletteMode))
}

// GenerateWithPalette is Generate with a caller-supplied palette, for
// example one extracted from a reference image. len(p) must equal
// len(opt.Thresholds).
func (s *Sorter) GenerateWithPalette(opt Options, p Palette) {
	mustNot(opt.Validate())
	if opt.UseBackground {
		p = p.WithBackground(opt.Background)
	}
	s.Palette = p
	s.Noise = GenerateNoise(opt.Width, opt.Height, opt.Noise)
	s.InputImage = Colorize(s.Noise, opt.Thresholds, s.Palette)
	Logger().Info("generated noise image",
		"width", opt.Width, "height", opt.Height,
		"seed", opt.Noise.Seed, "bands", len(opt.Thresholds))
}

// Build runs luminance, mask and run-sort over the input image.
// Only MaskLow, MaskHigh and Workers are read from opt.
func (s *Sorter) Build(ctx context.Context, opt Options) error {
	if s.InputImage == nil {
		return ErrNoInput
	}
	if opt.MaskLow > opt.MaskHigh {
		return fmt.Errorf("%w: low %d, high %d", ErrMaskRange, opt.MaskLow, opt.MaskHigh)
	}
	s.Luma = ToLuminance(s.InputImage)
	s.Mask = BuildMask(s.Luma, opt.MaskLow, opt.MaskHigh)
	if l := Logger(); l.Enabled(ctx, slog.LevelDebug) {
		mean, std := LuminanceStats(s.Luma)
		l.Debug("mask", "low", opt.MaskLow, "high", opt.MaskHigh,
			"coverage", MaskCoverage(s.Mask), "lumaMean", mean, "lumaStd", std)
	}
	out, err := SortImage(ctx, s.InputImage, s.Mask, opt.Workers)
	if err != nil {
		return err
	}
	s.Output = out
	Logger().Info("sorted image", "width", out.Rect.Dx(), "height", out.Rect.Dy())
	return nil
}

// Run generates a noise image from opt and sorts it.
func Run(ctx context.Context, opt Options) (*Sorter, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	s := NewSorter(nil)
	s.Generate(opt)
	if err := s.Build(ctx, opt); err != nil {
		return nil, err
	}
	return s, nil
}
