package glitchsort

import "image"

// Luminance returns 0.299R + 0.587G + 0.114B truncated to 8 bits.
// Each product is rounded to float32 before summing.
func Luminance(r, g, b uint8) uint8 {
	return uint8(float32(0.299*float32(r)) + float32(0.587*float32(g)) + float32(0.114*float32(b)))
}

// ToLuminance reduces img to a single brightness channel. Alpha is ignored.
func ToLuminance(img *image.RGBA) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x := range w {
			dst[x] = Luminance(src[x*4], src[x*4+1], src[x*4+2])
		}
	}
	return gray
}
