// Package imageproc provides thin adapters over the imaging libraries: decoding, encoding, resizing, thumbnails, fills and watermarks.
package imageproc

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

const (
	watermarkWidthShare = 0.7
	watermarkOpacity    = 0.5
)

// Watermark places mark over the centre of base. Neither argument is modified
func Watermark(base, mark image.Image, rs Resampler) *image.NRGBA {
	baseW := base.Bounds().Dx()
	baseH := base.Bounds().Dy()

	// масштабируем watermark до 70 процентов ширины основы с сохранением пропорций
	markB := mark.Bounds()
	targetW := max(1, int(float64(baseW)*watermarkWidthShare))
	targetH := max(1, int(math.Round(float64(markB.Dy())*float64(targetW)/float64(markB.Dx()))))

	scaled := Resize(mark, targetW, targetH, rs)

	// находим центр основного изображения
	offset := image.Pt(
		(baseW-targetW)/2,
		(baseH-targetH)/2,
	)

	return imaging.Overlay(base, scaled, offset, watermarkOpacity)
}
