// Package registry provides the handle table: opaque handles mapped to owned image buffers.
//
// Every operation forwards to internal/imageproc and reports its result. A Registry is safe for
// concurrent use: the table is guarded by one mutex and each entry by its own, so calls on
// different handles run in parallel and calls on the same handle are serialised.
package registry

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/UnendingLoop/ImageHandles/internal/imageproc"
	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/disintegration/imaging"
)

// Options - параметры реестра. Нулевые значения заменяются дефолтами в New
type Options struct {
	// MaxDimension ограничивает ширину и высоту буфера, 0 - без ограничений
	MaxDimension int
	Resampler    imageproc.Resampler
	Encode       imageproc.EncodeOptions
}

func DefaultOptions() Options {
	return Options{
		MaxDimension: 16384,
		Resampler:    imageproc.DefaultResampler,
		Encode:       imageproc.DefaultEncodeOptions,
	}
}

type entry struct {
	mu  sync.Mutex
	img *image.NRGBA // nil после Close
}

type Registry struct {
	mu      sync.Mutex
	entries map[model.Handle]*entry
	nextID  atomic.Uint64
	opts    Options
}

func New(opts Options) *Registry {
	if opts.Resampler == nil {
		opts.Resampler = imageproc.DefaultResampler
	}
	if opts.MaxDimension < 0 {
		opts.MaxDimension = 0
	}
	return &Registry{
		entries: make(map[model.Handle]*entry),
		opts:    opts,
	}
}

func (r *Registry) Options() Options {
	return r.opts
}

// Open decodes the file at path into a new handle. Files larger than MaxDimension are rejected before decoding
func (r *Registry) Open(path string) (model.Handle, error) {
	img, err := imageproc.Open(path, r.opts.MaxDimension)
	if err != nil {
		return model.NoHandle, err
	}
	return r.insert(img), nil
}

// NewRGBA allocates a blank, fully transparent buffer
func (r *Registry) NewRGBA(width, height int) (model.Handle, error) {
	if err := r.checkDimensions(width, height); err != nil {
		return model.NoHandle, err
	}
	return r.insert(imageproc.Blank(width, height)), nil
}

// Resize replaces the buffer with an exact width x height resample. The handle stays the same
func (r *Registry) Resize(h model.Handle, width, height int) error {
	return r.mutate(h, func(img *image.NRGBA) (*image.NRGBA, error) {
		if err := r.checkDimensions(width, height); err != nil {
			return nil, err
		}
		return imageproc.Resize(img, width, height, r.opts.Resampler), nil
	})
}

// Thumbnail replaces the buffer with a proportional version fitting inside width x height
func (r *Registry) Thumbnail(h model.Handle, width, height int) error {
	return r.mutate(h, func(img *image.NRGBA) (*image.NRGBA, error) {
		if err := r.checkDimensions(width, height); err != nil {
			return nil, err
		}
		return imageproc.Thumbnail(img, width, height, r.opts.Resampler), nil
	})
}

// Fill paints the whole buffer with a colour given as "#rrggbb" or "#rgb"
func (r *Registry) Fill(h model.Handle, hexColor string) error {
	return r.mutate(h, func(img *image.NRGBA) (*image.NRGBA, error) {
		c, err := imageproc.ParseColor(hexColor)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		return imageproc.Fill(b.Dx(), b.Dy(), c), nil
	})
}

// Watermark overlays a copy of mark onto h. h and mark may be the same handle
func (r *Registry) Watermark(h, mark model.Handle) error {
	var markImg *image.NRGBA
	if err := r.view(mark, func(img *image.NRGBA) error {
		markImg = imaging.Clone(img)
		return nil
	}); err != nil {
		return fmt.Errorf("watermark source: %w", err)
	}

	return r.mutate(h, func(img *image.NRGBA) (*image.NRGBA, error) {
		return imageproc.Watermark(img, markImg, r.opts.Resampler), nil
	})
}

// Save encodes the buffer into path, the format comes from the extension
func (r *Registry) Save(h model.Handle, path string) error {
	return r.view(h, func(img *image.NRGBA) error {
		return imageproc.Save(path, img, r.opts.Encode)
	})
}

func (r *Registry) Encode(h model.Handle, format imaging.Format) ([]byte, error) {
	var data []byte
	err := r.view(h, func(img *image.NRGBA) error {
		var err error
		data, err = imageproc.EncodeBytes(img, format, r.opts.Encode)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Registry) EncodePNG(h model.Handle) ([]byte, error) {
	return r.Encode(h, imaging.PNG)
}

// Size returns the byte length of the pixel buffer
func (r *Registry) Size(h model.Handle) (int, error) {
	size := 0
	err := r.view(h, func(img *image.NRGBA) error {
		size = len(img.Pix)
		return nil
	})
	return size, err
}

func (r *Registry) Dimensions(h model.Handle) (int, int, error) {
	var w, ht int
	err := r.view(h, func(img *image.NRGBA) error {
		b := img.Bounds()
		w, ht = b.Dx(), b.Dy()
		return nil
	})
	return w, ht, err
}

// Close releases the buffer. Closing an already closed or unknown handle fails with model.ErrInvalidHandle
func (r *Registry) Close(h model.Handle) error {
	r.mu.Lock()
	e, ok := r.entries[h]
	if ok {
		delete(r.entries, h)
	}
	r.mu.Unlock()

	if !ok {
		return invalidHandle(h)
	}

	// ждем завершения операции, начатой до Close
	e.mu.Lock()
	e.img = nil
	e.mu.Unlock()
	return nil
}

// CloseAll releases every live handle and returns how many were released
func (r *Registry) CloseAll() int {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[model.Handle]*entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.mu.Lock()
		e.img = nil
		e.mu.Unlock()
	}
	return len(entries)
}

// Len returns the number of live handles
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

//--------------------

func (r *Registry) insert(img *image.NRGBA) model.Handle {
	h := model.Handle(r.nextID.Add(1))

	r.mu.Lock()
	r.entries[h] = &entry{img: img}
	r.mu.Unlock()

	return h
}

func (r *Registry) lookup(h model.Handle) (*entry, error) {
	r.mu.Lock()
	e, ok := r.entries[h]
	r.mu.Unlock()

	if !ok {
		return nil, invalidHandle(h)
	}
	return e, nil
}

// view runs fn with the entry locked; fn must not keep img
func (r *Registry) view(h model.Handle, fn func(img *image.NRGBA) error) error {
	e, err := r.lookup(h)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.img == nil {
		return invalidHandle(h)
	}
	return fn(e.img)
}

// mutate swaps the entry buffer for the one fn returns; on error the old buffer stays.
// Argument checks belong inside fn so a closed handle is reported before bad arguments
func (r *Registry) mutate(h model.Handle, fn func(img *image.NRGBA) (*image.NRGBA, error)) error {
	e, err := r.lookup(h)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.img == nil {
		return invalidHandle(h)
	}

	res, err := fn(e.img)
	if err != nil {
		return err
	}
	e.img = res
	return nil
}

func (r *Registry) checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width and height must be positive, got %dx%d", model.ErrInvalidDimensions, width, height)
	}
	if maxDim := r.opts.MaxDimension; maxDim > 0 && (width > maxDim || height > maxDim) {
		return fmt.Errorf("%w: %dx%d exceeds limit %d", model.ErrInvalidDimensions, width, height, maxDim)
	}
	return nil
}

func invalidHandle(h model.Handle) error {
	return fmt.Errorf("%w: %d", model.ErrInvalidHandle, h)
}
