package service

import (
	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/disintegration/imaging"
)

// MOCK REGISTRY

type mockRegistry struct {
	openFn       func(path string) (model.Handle, error)
	newRGBAFn    func(w, h int) (model.Handle, error)
	resizeFn     func(h model.Handle, w, ht int) error
	thumbnailFn  func(h model.Handle, w, ht int) error
	fillFn       func(h model.Handle, c string) error
	watermarkFn  func(h, mark model.Handle) error
	saveFn       func(h model.Handle, path string) error
	encodeFn     func(h model.Handle, f imaging.Format) ([]byte, error)
	sizeFn       func(h model.Handle) (int, error)
	dimensionsFn func(h model.Handle) (int, int, error)
	closeFn      func(h model.Handle) error
}

func (m *mockRegistry) Open(path string) (model.Handle, error) {
	return m.openFn(path)
}

func (m *mockRegistry) NewRGBA(w, h int) (model.Handle, error) {
	return m.newRGBAFn(w, h)
}

func (m *mockRegistry) Resize(h model.Handle, w, ht int) error {
	return m.resizeFn(h, w, ht)
}

func (m *mockRegistry) Thumbnail(h model.Handle, w, ht int) error {
	return m.thumbnailFn(h, w, ht)
}

func (m *mockRegistry) Fill(h model.Handle, c string) error {
	return m.fillFn(h, c)
}

func (m *mockRegistry) Watermark(h, mark model.Handle) error {
	return m.watermarkFn(h, mark)
}

func (m *mockRegistry) Save(h model.Handle, path string) error {
	return m.saveFn(h, path)
}

func (m *mockRegistry) Encode(h model.Handle, f imaging.Format) ([]byte, error) {
	return m.encodeFn(h, f)
}

func (m *mockRegistry) Size(h model.Handle) (int, error) {
	return m.sizeFn(h)
}

func (m *mockRegistry) Dimensions(h model.Handle) (int, int, error) {
	return m.dimensionsFn(h)
}

func (m *mockRegistry) Close(h model.Handle) error {
	return m.closeFn(h)
}
