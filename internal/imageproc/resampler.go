package imageproc

import (
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Resampler scales an image to exactly width x height. Every backend returns a new NRGBA buffer
type Resampler interface {
	Resize(img image.Image, width, height int) *image.NRGBA
	Name() string
}

// DefaultResampler - Lanczos из imaging
var DefaultResampler Resampler = ImagingResampler{filterName: "lanczos", filter: imaging.Lanczos}

type ImagingResampler struct {
	filterName string
	filter     imaging.ResampleFilter
}

func (r ImagingResampler) Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, r.filter)
}

func (r ImagingResampler) Name() string { return "imaging:" + r.filterName }

type BildResampler struct {
	filterName string
	filter     transform.ResampleFilter
}

func (r BildResampler) Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Clone(transform.Resize(img, width, height, r.filter))
}

func (r BildResampler) Name() string { return "bild:" + r.filterName }

type NfntResampler struct {
	filterName string
	interp     resize.InterpolationFunction
}

func (r NfntResampler) Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Clone(resize.Resize(uint(width), uint(height), img, r.interp))
}

func (r NfntResampler) Name() string { return "nfnt:" + r.filterName }

var imagingFilters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

var bildFilters = map[string]transform.ResampleFilter{
	"lanczos":    transform.Lanczos,
	"catmullrom": transform.CatmullRom,
	"mitchell":   transform.MitchellNetravali,
	"gaussian":   transform.Gaussian,
	"linear":     transform.Linear,
	"box":        transform.Box,
	"nearest":    transform.NearestNeighbor,
}

var nfntFilters = map[string]resize.InterpolationFunction{
	"lanczos":  resize.Lanczos3,
	"lanczos2": resize.Lanczos2,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"linear":   resize.Bilinear,
	"nearest":  resize.NearestNeighbor,
}

// ResamplerFromName parses values like "imaging:lanczos", "bild:linear" or "nfnt:bicubic".
// A bare library name picks its lanczos filter, an empty string gives DefaultResampler.
func ResamplerFromName(name string) (Resampler, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultResampler, nil
	}

	lib, filter, found := strings.Cut(name, ":")
	if !found || filter == "" {
		filter = "lanczos"
	}

	switch lib {
	case "imaging":
		if f, ok := imagingFilters[filter]; ok {
			return ImagingResampler{filterName: filter, filter: f}, nil
		}
	case "bild":
		if f, ok := bildFilters[filter]; ok {
			return BildResampler{filterName: filter, filter: f}, nil
		}
	case "nfnt":
		if f, ok := nfntFilters[filter]; ok {
			return NfntResampler{filterName: filter, interp: f}, nil
		}
	default:
		return nil, fmt.Errorf("unknown resampler library %q", lib)
	}

	return nil, fmt.Errorf("resampler %q has no filter %q", lib, filter)
}
