package transport

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/wb-go/wbf/ginext"
)

func errorCodeDefiner(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidHandle),
		errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, model.ErrBadRequest),
		errors.Is(err, model.ErrInvalidDimensions),
		errors.Is(err, model.ErrInvalidColor),
		errors.Is(err, model.ErrUnsupportedFormat),
		errors.Is(err, model.ErrPathOutsideRoot):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrIO),
		errors.Is(err, model.ErrEncode):
		return http.StatusInternalServerError
	case errors.Is(err, model.ErrDecode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx *ginext.Context, err error) {
	ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
}

// handleParam парсит :id из пути; мусор и ноль считаются неизвестным хэндлом
func handleParam(ctx *ginext.Context) (model.Handle, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || model.Handle(id) == model.NoHandle {
		return model.NoHandle, fmt.Errorf("%w: %q", model.ErrInvalidHandle, raw)
	}
	return model.Handle(id), nil
}
