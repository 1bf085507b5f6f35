package utils_test

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/glitchsort/utils"
)

func twoColorImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	red := color.RGBA{220, 20, 20, 255}
	blue := color.RGBA{20, 20, 220, 255}
	for y := range 10 {
		for x := range 20 {
			if x < 14 {
				img.SetRGBA(x, y, red)
			} else {
				img.SetRGBA(x, y, blue)
			}
		}
	}
	return img
}

func TestParseHexColor(t *testing.T) {
	c, err := utils.ParseHexColor("#0a141e")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, c)

	_, err = utils.ParseHexColor("not-a-color")
	assert.Error(t, err)
}

func TestParsePaletteMethod(t *testing.T) {
	m, ok := utils.ParsePaletteMethod("kmeans")
	assert.True(t, ok)
	assert.Equal(t, utils.PaletteMethodKMeans, m)
	assert.Equal(t, "kmeans", m.String())

	m, ok = utils.ParsePaletteMethod("dominantcolor")
	assert.True(t, ok)
	assert.Equal(t, "dominantcolor", m.String())

	_, ok = utils.ParsePaletteMethod("random")
	assert.False(t, ok)
}

func TestToRGBA_OffsetImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	src.SetNRGBA(5, 5, color.NRGBA{1, 2, 3, 255})
	out := utils.ToRGBA(src)
	require.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, out.RGBAAt(0, 0))

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, rgba, utils.ToRGBA(rgba))
}

func TestResize(t *testing.T) {
	out := utils.Resize(twoColorImage(), 10, 5)
	assert.Equal(t, image.Rect(0, 0, 10, 5), out.Bounds())
}

func TestSaveAndReadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	img := twoColorImage()
	require.NoError(t, utils.SaveImage(img, path))

	got, err := utils.ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, got.Pix)

	_, err = utils.ReadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestExtractPalette_PadsToK(t *testing.T) {
	for _, method := range []utils.PaletteMethod{utils.PaletteMethodDominantColor, utils.PaletteMethodKMeans} {
		t.Run(method.String(), func(t *testing.T) {
			p := utils.ExtractPalette(twoColorImage(), 5, method)
			require.Len(t, p, 5)
			for _, c := range p {
				assert.True(t, c.IsValid(), "color %v out of gamut", c)
			}
		})
	}
	assert.Empty(t, utils.ExtractPalette(twoColorImage(), 0, utils.PaletteMethodKMeans))
}

func TestSavePalette(t *testing.T) {
	p := utils.ExtractPalette(twoColorImage(), 3, utils.PaletteMethodDominantColor)
	path := filepath.Join(t.TempDir(), "palette.png")
	require.NoError(t, utils.SavePalette(p, 8, path))

	got, err := utils.ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 24, 8), got.Bounds())
	assert.Equal(t, p.RGBA(0), got.RGBAAt(0, 0))

	assert.Error(t, utils.SavePalette(nil, 8, path))
}
