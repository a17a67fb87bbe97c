package imageproc

import (
	"image"
	"math"
)

func Resize(img image.Image, width, height int, rs Resampler) *image.NRGBA {
	if rs == nil {
		rs = DefaultResampler
	}
	return rs.Resize(img, width, height)
}

// FitSize returns the largest size with the source aspect ratio that fits into maxW x maxH.
// Both sides stay at least 1 pixel; the result may be larger than the source.
func FitSize(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}

	wRatio := float64(maxW) / float64(srcW)
	hRatio := float64(maxH) / float64(srcH)

	var w, h int
	if wRatio <= hRatio {
		w = maxW
		h = int(math.Round(float64(srcH) * wRatio))
	} else {
		h = maxH
		w = int(math.Round(float64(srcW) * hRatio))
	}

	return max(1, min(w, maxW)), max(1, min(h, maxH))
}
