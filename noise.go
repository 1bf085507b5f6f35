package glitchsort

import (
	"fmt"

	"github.com/aquilax/go-perlin"
)

// Noise2D is a coherent noise source.
type Noise2D interface {
	Noise2D(x, y float64) float64
}

type NoiseOptions struct {
	Seed int64
	// Per-axis feature scale. Coordinates are divided by dimension*scale,
	// so smaller values give larger features.
	ScaleX, ScaleY float64
	// Perlin weight falloff per octave. Lower alpha => rougher field.
	Alpha float64
	// Perlin frequency multiplier per octave.
	Beta float64
	// Number of octaves summed. One octave keeps values within about
	// [-0.71, 0.71]; each extra octave widens the range by its weight.
	Octaves int32
}

func DefaultNoiseOptions() NoiseOptions {
	return NoiseOptions{
		ScaleX:  0.2,
		ScaleY:  0.2,
		Alpha:   2,
		Beta:    2,
		Octaves: 1,
	}
}

// NoiseField holds one scalar per pixel, row-major.
type NoiseField struct {
	W, H   int
	Values []float64 // len = W*H
}

func (f *NoiseField) At(x, y int) float64 {
	return f.Values[y*f.W+x]
}

// NewPerlin returns the seeded Perlin source used by GenerateNoise.
func NewPerlin(opt NoiseOptions) Noise2D {
	return perlin.NewPerlin(opt.Alpha, opt.Beta, opt.Octaves, opt.Seed)
}

// GenerateNoise samples a seeded Perlin field of the given size.
func GenerateNoise(width, height int, opt NoiseOptions) *NoiseField {
	return SampleNoise(NewPerlin(opt), width, height, opt.ScaleX, opt.ScaleY)
}

// SampleNoise evaluates src at (x/(width*scaleX), y/(height*scaleY)) for every pixel.
func SampleNoise(src Noise2D, width, height int, scaleX, scaleY float64) *NoiseField {
	if width <= 0 || height <= 0 {
		panic(fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height))
	}
	if !(scaleX > 0) || !(scaleY > 0) {
		panic(fmt.Errorf("%w: %g, %g", ErrInvalidScale, scaleX, scaleY))
	}
	f := &NoiseField{
		W:      width,
		H:      height,
		Values: make([]float64, width*height),
	}
	dx := float64(width) * scaleX
	dy := float64(height) * scaleY
	for y := range height {
		for x := range width {
			f.Values[y*width+x] = src.Noise2D(float64(x)/dx, float64(y)/dy)
		}
	}
	return f
}
