package imageproc

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

const hexDigits = "0123456789abcdefABCDEF"

// ParseColor accepts "#rrggbb" and "#rgb", the leading '#' may be omitted
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	// colorful.Hex терпит хвост и короткую последнюю компоненту, поэтому форму проверяем сами
	if (len(s) != 4 && len(s) != 7) || strings.Trim(s[1:], hexDigits) != "" {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidColor, s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidColor, s)
	}
	return c, nil
}

// Fill returns a width x height buffer painted with c
func Fill(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

// Blank returns a fully transparent width x height buffer
func Blank(width, height int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}
