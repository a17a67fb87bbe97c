// Package service provides the context-aware facade over the handle registry used by the HTTP host
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnendingLoop/ImageHandles/internal/imageproc"
	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/UnendingLoop/ImageHandles/internal/mwlogger"
	"github.com/disintegration/imaging"
)

// HandleRegistry - контракт реестра хэндлов
type HandleRegistry interface {
	Open(path string) (model.Handle, error)
	NewRGBA(width, height int) (model.Handle, error)
	Resize(h model.Handle, width, height int) error
	Thumbnail(h model.Handle, width, height int) error
	Fill(h model.Handle, hexColor string) error
	Watermark(h, mark model.Handle) error
	Save(h model.Handle, path string) error
	Encode(h model.Handle, format imaging.Format) ([]byte, error)
	Size(h model.Handle) (int, error)
	Dimensions(h model.Handle) (int, int, error)
	Close(h model.Handle) error
}

type HandleService struct {
	registry HandleRegistry
	root     string // пустая строка - пути не ограничиваются
}

func NewHandleService(reg HandleRegistry, imagesRoot string) *HandleService {
	return &HandleService{
		registry: reg,
		root:     imagesRoot,
	}
}

func (s HandleService) Open(ctx context.Context, path string) (model.Handle, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	fullPath, err := resolvePath(s.root, path)
	if err != nil {
		return model.NoHandle, err
	}

	h, err := s.registry.Open(fullPath)
	if err != nil {
		logFailure(logger, err, fmt.Sprintf("Failed to open image %q", fullPath))
		return model.NoHandle, err
	}

	logger.Debug().Uint64("handle", uint64(h)).Str("path", fullPath).Msg("Image opened")
	return h, nil
}

func (s HandleService) NewRGBA(ctx context.Context, width, height int) (model.Handle, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	h, err := s.registry.NewRGBA(width, height)
	if err != nil {
		logFailure(logger, err, "Failed to allocate blank image")
		return model.NoHandle, err
	}

	logger.Debug().Uint64("handle", uint64(h)).Int("width", width).Int("height", height).Msg("Blank image created")
	return h, nil
}

func (s HandleService) Resize(ctx context.Context, h model.Handle, width, height int) (*model.Dimensions, error) {
	if err := s.registry.Resize(h, width, height); err != nil {
		logFailure(mwlogger.LoggerFromContext(ctx), err, fmt.Sprintf("Failed to resize image %d", h))
		return nil, err
	}
	return s.Dimensions(ctx, h)
}

func (s HandleService) Thumbnail(ctx context.Context, h model.Handle, width, height int) (*model.Dimensions, error) {
	if err := s.registry.Thumbnail(h, width, height); err != nil {
		logFailure(mwlogger.LoggerFromContext(ctx), err, fmt.Sprintf("Failed to make thumbnail of image %d", h))
		return nil, err
	}
	return s.Dimensions(ctx, h)
}

func (s HandleService) Fill(ctx context.Context, h model.Handle, hexColor string) error {
	if err := s.registry.Fill(h, hexColor); err != nil {
		logFailure(mwlogger.LoggerFromContext(ctx), err, fmt.Sprintf("Failed to fill image %d", h))
		return err
	}
	return nil
}

func (s HandleService) Watermark(ctx context.Context, h, mark model.Handle) error {
	if err := s.registry.Watermark(h, mark); err != nil {
		logFailure(mwlogger.LoggerFromContext(ctx), err, fmt.Sprintf("Failed to apply watermark %d to image %d", mark, h))
		return err
	}
	return nil
}

func (s HandleService) Save(ctx context.Context, h model.Handle, path string) error {
	logger := mwlogger.LoggerFromContext(ctx)

	fullPath, err := resolvePath(s.root, path)
	if err != nil {
		return err
	}

	if err := s.registry.Save(h, fullPath); err != nil {
		logFailure(logger, err, fmt.Sprintf("Failed to save image %d to %q", h, fullPath))
		return err
	}

	logger.Info().Uint64("handle", uint64(h)).Str("path", fullPath).Msg("Image saved")
	return nil
}

// Encode returns the encoded image and its content type. An empty format name means PNG
func (s HandleService) Encode(ctx context.Context, h model.Handle, formatName string) ([]byte, string, error) {
	format := imaging.PNG
	if formatName != "" {
		var err error
		if format, err = imageproc.FormatFromName(formatName); err != nil {
			return nil, "", err
		}
	}

	data, err := s.registry.Encode(h, format)
	if err != nil {
		logFailure(mwlogger.LoggerFromContext(ctx), err, fmt.Sprintf("Failed to encode image %d as %s", h, format))
		return nil, "", err
	}
	return data, model.GetCType[format], nil
}

func (s HandleService) EncodePNG(ctx context.Context, h model.Handle) ([]byte, error) {
	data, _, err := s.Encode(ctx, h, "")
	return data, err
}

func (s HandleService) Size(ctx context.Context, h model.Handle) (int, error) {
	size, err := s.registry.Size(h)
	if err != nil {
		logFailure(mwlogger.LoggerFromContext(ctx), err, fmt.Sprintf("Failed to get size of image %d", h))
		return 0, err
	}
	return size, nil
}

func (s HandleService) Dimensions(ctx context.Context, h model.Handle) (*model.Dimensions, error) {
	w, ht, err := s.registry.Dimensions(h)
	if err != nil {
		logFailure(mwlogger.LoggerFromContext(ctx), err, fmt.Sprintf("Failed to get dimensions of image %d", h))
		return nil, err
	}
	return &model.Dimensions{Width: w, Height: ht}, nil
}

func (s HandleService) Close(ctx context.Context, h model.Handle) error {
	logger := mwlogger.LoggerFromContext(ctx)

	if err := s.registry.Close(h); err != nil {
		logFailure(logger, err, fmt.Sprintf("Failed to close image %d", h))
		return err
	}

	logger.Debug().Uint64("handle", uint64(h)).Msg("Image closed")
	return nil
}

// IsClientError reports errors caused by the caller's input rather than by the server
func IsClientError(err error) bool {
	switch {
	case errors.Is(err, model.ErrInvalidHandle),
		errors.Is(err, model.ErrInvalidDimensions),
		errors.Is(err, model.ErrInvalidColor),
		errors.Is(err, model.ErrUnsupportedFormat),
		errors.Is(err, model.ErrPathOutsideRoot),
		errors.Is(err, model.ErrBadRequest):
		return true
	case errors.Is(err, model.ErrDecode) && !errors.Is(err, model.ErrIO):
		return true
	default:
		return false
	}
}
