package main

import (
	"context"

	"github.com/UnendingLoop/ImageHandles/internal/model"
)

type ImageAPIService interface {
	Open(ctx context.Context, path string) (model.Handle, error)
	NewRGBA(ctx context.Context, width, height int) (model.Handle, error)
	Resize(ctx context.Context, h model.Handle, width, height int) (*model.Dimensions, error)
	Thumbnail(ctx context.Context, h model.Handle, width, height int) (*model.Dimensions, error)
	Fill(ctx context.Context, h model.Handle, hexColor string) error
	Watermark(ctx context.Context, h, mark model.Handle) error
	Save(ctx context.Context, h model.Handle, path string) error
	Encode(ctx context.Context, h model.Handle, format string) ([]byte, string, error)
	EncodePNG(ctx context.Context, h model.Handle) ([]byte, error)
	Size(ctx context.Context, h model.Handle) (int, error)
	Dimensions(ctx context.Context, h model.Handle) (*model.Dimensions, error)
	Close(ctx context.Context, h model.Handle) error
}
