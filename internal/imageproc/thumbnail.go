package imageproc

import (
	"image"
)

// Thumbnail scales img proportionally to fit inside maxW x maxH
func Thumbnail(img image.Image, maxW, maxH int, rs Resampler) *image.NRGBA {
	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	return Resize(img, w, h, rs)
}
