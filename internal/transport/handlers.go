// Package transport provides HTTP handlers exposing handle operations to remote hosts
package transport

import (
	"context"
	"net/http"

	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/wb-go/wbf/ginext"
)

type ImageHandler struct {
	service ImageService
}

type ImageService interface {
	Open(ctx context.Context, path string) (model.Handle, error)
	NewRGBA(ctx context.Context, width, height int) (model.Handle, error)
	Resize(ctx context.Context, h model.Handle, width, height int) (*model.Dimensions, error)
	Thumbnail(ctx context.Context, h model.Handle, width, height int) (*model.Dimensions, error)
	Fill(ctx context.Context, h model.Handle, hexColor string) error
	Watermark(ctx context.Context, h, mark model.Handle) error
	Save(ctx context.Context, h model.Handle, path string) error
	Encode(ctx context.Context, h model.Handle, format string) ([]byte, string, error) // байты и content-type
	EncodePNG(ctx context.Context, h model.Handle) ([]byte, error)
	Size(ctx context.Context, h model.Handle) (int, error)
	Dimensions(ctx context.Context, h model.Handle) (*model.Dimensions, error)
	Close(ctx context.Context, h model.Handle) error
}

func NewImageHandler(svc ImageService) *ImageHandler {
	return &ImageHandler{
		service: svc,
	}
}

// Register вешает все маршруты на движок
func (h ImageHandler) Register(engine *ginext.Engine) {
	engine.GET("/ping", h.SimplePinger)
	engine.POST("/images/open", h.Open)
	engine.POST("/images", h.NewRGBA)
	engine.POST("/images/:id/resize", h.Resize)
	engine.POST("/images/:id/thumbnail", h.Thumbnail)
	engine.POST("/images/:id/fill", h.Fill)
	engine.POST("/images/:id/watermark", h.Watermark)
	engine.POST("/images/:id/save", h.Save)
	engine.GET("/images/:id/png", h.EncodePNG)
	engine.GET("/images/:id/encode", h.Encode)
	engine.GET("/images/:id/size", h.Size)
	engine.GET("/images/:id/dimensions", h.Dimensions)
	engine.DELETE("/images/:id", h.Close)
}

func (h ImageHandler) SimplePinger(ctx *ginext.Context) {
	ctx.JSON(http.StatusOK, map[string]string{"message": "pong"})
}

func (h ImageHandler) Open(ctx *ginext.Context) {
	var req model.OpenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, model.ErrBadRequest)
		return
	}

	handle, err := h.service.Open(ctx.Request.Context(), req.Path)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, model.HandleResponse{Handle: handle})
}

func (h ImageHandler) NewRGBA(ctx *ginext.Context) {
	var req model.DimensionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, model.ErrBadRequest)
		return
	}

	handle, err := h.service.NewRGBA(ctx.Request.Context(), req.Width, req.Height)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, model.HandleResponse{Handle: handle})
}

func (h ImageHandler) Resize(ctx *ginext.Context) {
	h.rescale(ctx, h.service.Resize)
}

func (h ImageHandler) Thumbnail(ctx *ginext.Context) {
	h.rescale(ctx, h.service.Thumbnail)
}

func (h ImageHandler) rescale(ctx *ginext.Context, op func(context.Context, model.Handle, int, int) (*model.Dimensions, error)) {
	handle, err := handleParam(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req model.DimensionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, model.ErrBadRequest)
		return
	}

	dims, err := op(ctx.Request.Context(), handle, req.Width, req.Height)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dims)
}

func (h ImageHandler) Fill(ctx *ginext.Context) {
	handle, err := handleParam(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req model.FillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, model.ErrBadRequest)
		return
	}

	if err := h.service.Fill(ctx.Request.Context(), handle, req.Color); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h ImageHandler) Watermark(ctx *ginext.Context) {
	handle, err := handleParam(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req model.WatermarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, model.ErrBadRequest)
		return
	}

	if err := h.service.Watermark(ctx.Request.Context(), handle, req.Mark); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h ImageHandler) Save(ctx *ginext.Context) {
	handle, err := handleParam(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req model.SaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, model.ErrBadRequest)
		return
	}

	if err := h.service.Save(ctx.Request.Context(), handle, req.Path); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h ImageHandler) EncodePNG(ctx *ginext.Context) {
	handle, err := handleParam(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	data, err := h.service.EncodePNG(ctx.Request.Context(), handle)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, model.PNG, data)
}

func (h ImageHandler) Encode(ctx *ginext.Context) {
	handle, err := handleParam(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	data, cType, err := h.service.Encode(ctx.Request.Context(), handle, ctx.Query("format"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, cType, data)
}

func (h ImageHandler) Size(ctx *ginext.Context) {
	handle, err := handleParam(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	size, err := h.service.Size(ctx.Request.Context(), handle)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, model.SizeResponse{Bytes: size})
}

func (h ImageHandler) Dimensions(ctx *ginext.Context) {
	handle, err := handleParam(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	dims, err := h.service.Dimensions(ctx.Request.Context(), handle)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dims)
}

func (h ImageHandler) Close(ctx *ginext.Context) {
	handle, err := handleParam(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.service.Close(ctx.Request.Context(), handle); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
