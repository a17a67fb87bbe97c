// Package imagehandles exposes image manipulation to a host through opaque handles.
//
// Handles are plain uint64 values, paths are strings, dimensions are ints and encoded images
// are byte slices. All state lives in one process-wide table created on first use. The table is
// safe for concurrent use, but callers sharing a handle between goroutines should still order
// their calls: a Resize racing a Save may save either the old or the new buffer.
//
//	h, err := imagehandles.Open("photo.jpg")
//	if err != nil {
//		return err
//	}
//	defer imagehandles.Close(h)
//
//	if err := imagehandles.Thumbnail(h, 128, 128); err != nil {
//		return err
//	}
//	return imagehandles.Save(h, "photo_thumb.png")
package imagehandles

import (
	"errors"
	"sync"

	"github.com/UnendingLoop/ImageHandles/internal/imageproc"
	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/UnendingLoop/ImageHandles/internal/registry"
)

// Error kinds, test with errors.Is
var (
	ErrDecode            = model.ErrDecode
	ErrEncode            = model.ErrEncode
	ErrIO                = model.ErrIO
	ErrInvalidDimensions = model.ErrInvalidDimensions
	ErrInvalidHandle     = model.ErrInvalidHandle
)

// ErrInUse is returned by Configure after the first handle operation
var ErrInUse = errors.New("imagehandles: handle table is already in use")

var (
	once    sync.Once
	optsMu  sync.Mutex
	opts    = registry.DefaultOptions()
	handles *registry.Registry
)

// Configure sets the dimension limit (0 disables it) and the resampler, e.g. "imaging:lanczos",
// "bild:linear" or "nfnt:bicubic". It must be called before any other function.
func Configure(maxDimension int, resampler string) error {
	rs, err := imageproc.ResamplerFromName(resampler)
	if err != nil {
		return err
	}

	optsMu.Lock()
	defer optsMu.Unlock()

	if handles != nil {
		return ErrInUse
	}
	opts.MaxDimension = maxDimension
	opts.Resampler = rs
	return nil
}

func table() *registry.Registry {
	once.Do(func() {
		optsMu.Lock()
		handles = registry.New(opts)
		optsMu.Unlock()
	})
	return handles
}

// Open decodes the image file at path and returns its handle
func Open(path string) (uint64, error) {
	h, err := table().Open(path)
	return uint64(h), err
}

// NewRGBA allocates a transparent width x height image
func NewRGBA(width, height int) (uint64, error) {
	h, err := table().NewRGBA(width, height)
	return uint64(h), err
}

// Resize resamples the image to exactly width x height, the handle stays valid
func Resize(handle uint64, width, height int) error {
	return table().Resize(model.Handle(handle), width, height)
}

// Thumbnail scales the image proportionally to fit inside width x height
func Thumbnail(handle uint64, width, height int) error {
	return table().Thumbnail(model.Handle(handle), width, height)
}

// Save writes the image to path in the format named by its extension
func Save(handle uint64, path string) error {
	return table().Save(model.Handle(handle), path)
}

// EncodePNG returns the image encoded as PNG
func EncodePNG(handle uint64) ([]byte, error) {
	return table().EncodePNG(model.Handle(handle))
}

// Size returns the byte length of the pixel buffer
func Size(handle uint64) (int, error) {
	return table().Size(model.Handle(handle))
}

// Dimensions returns the current width and height of the image
func Dimensions(handle uint64) (width, height int, err error) {
	return table().Dimensions(model.Handle(handle))
}

// Close releases the image. A second Close of the same handle returns ErrInvalidHandle
func Close(handle uint64) error {
	return table().Close(model.Handle(handle))
}
