package transport

import (
	"context"

	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/gin-gonic/gin"
)

type mockImageService struct {
	openFn       func(ctx context.Context, path string) (model.Handle, error)
	newRGBAFn    func(ctx context.Context, w, h int) (model.Handle, error)
	resizeFn     func(ctx context.Context, h model.Handle, w, ht int) (*model.Dimensions, error)
	thumbnailFn  func(ctx context.Context, h model.Handle, w, ht int) (*model.Dimensions, error)
	fillFn       func(ctx context.Context, h model.Handle, c string) error
	watermarkFn  func(ctx context.Context, h, mark model.Handle) error
	saveFn       func(ctx context.Context, h model.Handle, path string) error
	encodeFn     func(ctx context.Context, h model.Handle, format string) ([]byte, string, error)
	encodePNGFn  func(ctx context.Context, h model.Handle) ([]byte, error)
	sizeFn       func(ctx context.Context, h model.Handle) (int, error)
	dimensionsFn func(ctx context.Context, h model.Handle) (*model.Dimensions, error)
	closeFn      func(ctx context.Context, h model.Handle) error
}

func (m *mockImageService) Open(ctx context.Context, path string) (model.Handle, error) {
	return m.openFn(ctx, path)
}

func (m *mockImageService) NewRGBA(ctx context.Context, w, h int) (model.Handle, error) {
	return m.newRGBAFn(ctx, w, h)
}

func (m *mockImageService) Resize(ctx context.Context, h model.Handle, w, ht int) (*model.Dimensions, error) {
	return m.resizeFn(ctx, h, w, ht)
}

func (m *mockImageService) Thumbnail(ctx context.Context, h model.Handle, w, ht int) (*model.Dimensions, error) {
	return m.thumbnailFn(ctx, h, w, ht)
}

func (m *mockImageService) Fill(ctx context.Context, h model.Handle, c string) error {
	return m.fillFn(ctx, h, c)
}

func (m *mockImageService) Watermark(ctx context.Context, h, mark model.Handle) error {
	return m.watermarkFn(ctx, h, mark)
}

func (m *mockImageService) Save(ctx context.Context, h model.Handle, path string) error {
	return m.saveFn(ctx, h, path)
}

func (m *mockImageService) Encode(ctx context.Context, h model.Handle, format string) ([]byte, string, error) {
	return m.encodeFn(ctx, h, format)
}

func (m *mockImageService) EncodePNG(ctx context.Context, h model.Handle) ([]byte, error) {
	return m.encodePNGFn(ctx, h)
}

func (m *mockImageService) Size(ctx context.Context, h model.Handle) (int, error) {
	return m.sizeFn(ctx, h)
}

func (m *mockImageService) Dimensions(ctx context.Context, h model.Handle) (*model.Dimensions, error) {
	return m.dimensionsFn(ctx, h)
}

func (m *mockImageService) Close(ctx context.Context, h model.Handle) error {
	return m.closeFn(ctx, h)
}

func init() {
	gin.SetMode(gin.TestMode)
}
