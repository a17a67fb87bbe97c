// Package model provides data-structs and error kinds shared by the registry, the service and the transport
package model

import (
	"errors"

	"github.com/disintegration/imaging"
)

// Handle - непрозрачный идентификатор картинки, выдаваемый хосту. Ноль никогда не выдается
type Handle uint64

const NoHandle Handle = 0

//---------------------

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type HandleResponse struct {
	Handle Handle `json:"handle"`
}

type SizeResponse struct {
	Bytes int `json:"bytes"`
}

//-------------------

type OpenRequest struct {
	Path string `json:"path"`
}

type SaveRequest struct {
	Path string `json:"path"`
}

type DimensionsRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type FillRequest struct {
	Color string `json:"color"`
}

type WatermarkRequest struct {
	Mark Handle `json:"mark"`
}

// ------------------

var (
	ErrDecode            error = errors.New("failed to decode image")                 // 400
	ErrEncode            error = errors.New("failed to encode image")                 // 500
	ErrIO                error = errors.New("filesystem operation failed")            // 500
	ErrInvalidDimensions error = errors.New("invalid image dimensions")               // 400
	ErrInvalidHandle     error = errors.New("image handle is closed or unknown")      // 404
	ErrInvalidColor      error = errors.New("color must be in #rrggbb or #rgb form")  // 400
	ErrUnsupportedFormat error = errors.New("unsupported image format")               // 400
	ErrBadRequest        error = errors.New("incorrect request body or parameters")   // 400
	ErrPathOutsideRoot   error = errors.New("path points outside of the images root") // 400
)

//--------------------

const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
	GIF  = "image/gif"
	TIFF = "image/tiff"
	BMP  = "image/bmp"
)

var GetCType = map[imaging.Format]string{
	imaging.JPEG: JPEG,
	imaging.PNG:  PNG,
	imaging.GIF:  GIF,
	imaging.TIFF: TIFF,
	imaging.BMP:  BMP,
}
