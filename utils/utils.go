package utils

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
	"slices"
	"time"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/setanarut/glitchsort"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts "dominantcolor" or "kmeans".
func ParsePaletteMethod(s string) (PaletteMethod, bool) {
	switch s {
	case "dominantcolor", "dominant":
		return PaletteMethodDominantColor, true
	case "kmeans":
		return PaletteMethodKMeans, true
	}
	return PaletteMethodDominantColor, false
}

// TimeSeed derives a noise seed from the wall clock.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

// ParseHexColor parses "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// ExtractDominantPalette returns up to k dominant colors of img, heaviest first.
func ExtractDominantPalette(img image.Image, k int) glitchsort.Palette {
	if k <= 0 {
		return nil
	}
	candidates := dominantcolor.FindWeight(img, k)
	out := make(glitchsort.Palette, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		out = append(out, col.Clamped())
	}
	return out
}

// ExtractKMeansPalette clusters a subsample of img into k colors, most
// populated cluster first.
func ExtractKMeansPalette(img image.Image, k int) glitchsort.Palette {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, min(k, len(dataset)))
	if err != nil || len(cc) == 0 {
		return nil
	}
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make(glitchsort.Palette, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped())
	}
	return out
}

// ExtractPalette returns a k-color palette taken from a reference image.
// Short results are padded by repeating the last color so the palette
// always matches a k-entry threshold list.
func ExtractPalette(img image.Image, k int, method PaletteMethod) glitchsort.Palette {
	var p glitchsort.Palette
	switch method {
	case PaletteMethodKMeans:
		p = ExtractKMeansPalette(img, k)
		if len(p) == 0 {
			warnFallback(method, PaletteMethodDominantColor)
			p = ExtractDominantPalette(img, k)
		}
	default:
		p = ExtractDominantPalette(img, k)
	}
	if len(p) == 0 && k > 0 {
		// Avoid an empty palette that would break colorizing.
		p = glitchsort.Palette{{R: 0.5, G: 0.5, B: 0.5}}
	}
	for len(p) < k {
		p = append(p, p[len(p)-1])
	}
	return p
}

func warnFallback(from, to PaletteMethod) {
	glitchsort.Logger().Warn("empty palette, falling back", "method", from.String(), "fallback", to.String())
}

// ToRGBA copies any image into a zero-origin RGBA buffer.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Resize scales img to w×h with Catmull-Rom filtering.
func Resize(img image.Image, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// ReadImage decodes png, jpeg, gif, bmp, tiff or webp into an RGBA buffer.
func ReadImage(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SavePalette writes the palette as a strip of tileSize squares.
func SavePalette(palette glitchsort.Palette, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i := range palette {
		draw.Draw(img, image.Rect(i*tileSize, 0, (i+1)*tileSize, tileSize),
			image.NewUniform(palette.RGBA(i)), image.Point{}, draw.Src)
	}
	return SaveImage(img, filename)
}
