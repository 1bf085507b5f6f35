package glitchsort

import (
	"image/color"
	"math/rand/v2"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

type PaletteMode int

const (
	PaletteModeRandom PaletteMode = iota
	PaletteModeHappy
)

func (m PaletteMode) String() string {
	switch m {
	case PaletteModeHappy:
		return "happy"
	default:
		return "random"
	}
}

// ParsePaletteMode accepts "random" or "happy".
func ParsePaletteMode(s string) (PaletteMode, bool) {
	switch s {
	case "random", "":
		return PaletteModeRandom, true
	case "happy":
		return PaletteModeHappy, true
	}
	return PaletteModeRandom, false
}

// Palette holds one color per band. It is built once before rendering and
// never mutated afterwards.
type Palette []colorful.Color

// NewPalette draws n colors from rng using the given mode.
func NewPalette(rng *rand.Rand, n int, mode PaletteMode) Palette {
	switch mode {
	case PaletteModeHappy:
		return HappyPalette(rng, n)
	default:
		return RandomPalette(rng, n)
	}
}

// RandomPalette draws n colors with uniformly random 8-bit channels.
func RandomPalette(rng *rand.Rand, n int) Palette {
	p := make(Palette, n)
	for i := range p {
		p[i] = colorful.Color{
			R: float64(rng.IntN(256)) / 255.0,
			G: float64(rng.IntN(256)) / 255.0,
			B: float64(rng.IntN(256)) / 255.0,
		}
	}
	return p
}

// HappyPalette draws n saturated, mid-bright colors in HSV space.
func HappyPalette(rng *rand.Rand, n int) Palette {
	p := make(Palette, n)
	for i := range p {
		p[i] = colorful.Hsv(
			rng.Float64()*360.0,
			0.7+rng.Float64()*0.3,
			0.6+rng.Float64()*0.3,
		).Clamped()
	}
	return p
}

// WithBackground returns a copy of p whose first entry is bg. The alpha of
// bg is ignored; generated images are always opaque.
func (p Palette) WithBackground(bg color.RGBA) Palette {
	out := slices.Clone(p)
	if len(out) == 0 {
		return out
	}
	bg.A = 255
	c, _ := colorful.MakeColor(bg)
	out[0] = c
	return out
}

// RGBA returns entry i as an opaque 8-bit color.
func (p Palette) RGBA(i int) color.RGBA {
	c := p[i]
	return color.RGBA{
		R: uint8(max(0, min(255, c.R*255+0.5))),
		G: uint8(max(0, min(255, c.G*255+0.5))),
		B: uint8(max(0, min(255, c.B*255+0.5))),
		A: 255,
	}
}

// SortByBrightness orders colors from darkest to brightest using the same
// luminance weights as the sort key.
func (p Palette) SortByBrightness() {
	slices.SortStableFunc(p, func(a, b colorful.Color) int {
		ca, cb := Palette{a}.RGBA(0), Palette{b}.RGBA(0)
		return int(Luminance(ca.R, ca.G, ca.B)) - int(Luminance(cb.R, cb.G, cb.B))
	})
}
