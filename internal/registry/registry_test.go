package registry

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 100, G: 100, B: 200, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "source.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))

	return path
}

func mustDimensions(t *testing.T, r *Registry, h model.Handle) (int, int) {
	t.Helper()

	w, ht, err := r.Dimensions(h)
	require.NoError(t, err)
	return w, ht
}

func TestRegistry_OpenDimensions(t *testing.T) {
	r := New(DefaultOptions())

	h, err := r.Open(writeTestPNG(t, 64, 48))
	require.NoError(t, err)
	require.NotEqual(t, model.NoHandle, h)

	w, ht := mustDimensions(t, r, h)
	require.Equal(t, 64, w)
	require.Equal(t, 48, ht)
}

func TestRegistry_OpenErrors(t *testing.T) {
	r := New(DefaultOptions())

	_, err := r.Open(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, model.ErrDecode)
	require.ErrorIs(t, err, model.ErrIO)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not-an-image"), 0o600))
	_, err = r.Open(bad)
	require.ErrorIs(t, err, model.ErrDecode)

	require.Zero(t, r.Len())
}

func TestRegistry_OpenRespectsMaxDimension(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDimension = 32
	r := New(opts)

	_, err := r.Open(writeTestPNG(t, 64, 48))
	require.ErrorIs(t, err, model.ErrInvalidDimensions)
	require.Zero(t, r.Len())

	h, err := r.Open(writeTestPNG(t, 32, 10))
	require.NoError(t, err)
	w, ht := mustDimensions(t, r, h)
	require.Equal(t, 32, w)
	require.Equal(t, 10, ht)
}

func TestRegistry_NewRGBA(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr error
	}{
		{"ok", 20, 10, nil},
		{"zero width", 0, 5, model.ErrInvalidDimensions},
		{"negative height", 5, -1, model.ErrInvalidDimensions},
		{"over limit", 100, 5, model.ErrInvalidDimensions},
	}

	r := New(Options{MaxDimension: 64})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := r.NewRGBA(tt.w, tt.h)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Equal(t, model.NoHandle, h)
				return
			}
			require.NoError(t, err)

			w, ht := mustDimensions(t, r, h)
			require.Equal(t, tt.w, w)
			require.Equal(t, tt.h, ht)

			size, err := r.Size(h)
			require.NoError(t, err)
			require.Equal(t, tt.w*tt.h*4, size)
		})
	}
}

func TestRegistry_Resize(t *testing.T) {
	r := New(DefaultOptions())
	h, err := r.NewRGBA(200, 100)
	require.NoError(t, err)

	require.NoError(t, r.Resize(h, 50, 70))
	w, ht := mustDimensions(t, r, h)
	require.Equal(t, 50, w)
	require.Equal(t, 70, ht)

	size, err := r.Size(h)
	require.NoError(t, err)
	require.Equal(t, 50*70*4, size)

	// неверные размеры не трогают буфер
	require.ErrorIs(t, r.Resize(h, 0, 10), model.ErrInvalidDimensions)
	w, ht = mustDimensions(t, r, h)
	require.Equal(t, 50, w)
	require.Equal(t, 70, ht)
}

func TestRegistry_Thumbnail(t *testing.T) {
	r := New(DefaultOptions())
	h, err := r.NewRGBA(300, 200)
	require.NoError(t, err)

	require.NoError(t, r.Thumbnail(h, 100, 100))
	w, ht := mustDimensions(t, r, h)
	require.Equal(t, 100, w)
	require.Equal(t, 67, ht)

	require.ErrorIs(t, r.Thumbnail(h, 10, -10), model.ErrInvalidDimensions)
}

func TestRegistry_SaveOpenRoundTrip(t *testing.T) {
	r := New(DefaultOptions())
	dir := t.TempDir()

	h, err := r.NewRGBA(33, 21)
	require.NoError(t, err)
	require.NoError(t, r.Fill(h, "#336699"))

	for _, name := range []string{"out.png", "out.jpg", "out.gif", "out.bmp", "out.tif"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, r.Save(h, path))

			reopened, err := r.Open(path)
			require.NoError(t, err)

			w, ht := mustDimensions(t, r, reopened)
			require.Equal(t, 33, w)
			require.Equal(t, 21, ht)
			require.NoError(t, r.Close(reopened))
		})
	}
}

func TestRegistry_SaveErrors(t *testing.T) {
	r := New(DefaultOptions())
	h, err := r.NewRGBA(4, 4)
	require.NoError(t, err)

	require.ErrorIs(t, r.Save(h, filepath.Join(t.TempDir(), "out.unknown")), model.ErrEncode)
	require.ErrorIs(t, r.Save(h, filepath.Join(t.TempDir(), "no", "dir", "out.png")), model.ErrIO)
}

func TestRegistry_EncodePNG(t *testing.T) {
	r := New(DefaultOptions())
	h, err := r.NewRGBA(8, 6)
	require.NoError(t, err)

	data, err := r.EncodePNG(h)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Width)
	require.Equal(t, 6, cfg.Height)

	jpg, err := r.Encode(h, imaging.JPEG)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xD8}, jpg[:2])
}

func TestRegistry_FillAndWatermark(t *testing.T) {
	r := New(DefaultOptions())

	base, err := r.NewRGBA(40, 30)
	require.NoError(t, err)
	mark, err := r.NewRGBA(10, 5)
	require.NoError(t, err)

	require.NoError(t, r.Fill(base, "#000000"))
	require.NoError(t, r.Fill(mark, "fff"))
	require.ErrorIs(t, r.Fill(base, "purple-ish"), model.ErrInvalidColor)

	require.NoError(t, r.Watermark(base, mark))
	w, ht := mustDimensions(t, r, base)
	require.Equal(t, 40, w)
	require.Equal(t, 30, ht)

	// метка не меняется
	w, ht = mustDimensions(t, r, mark)
	require.Equal(t, 10, w)
	require.Equal(t, 5, ht)

	// сама на себя
	require.NoError(t, r.Watermark(base, base))

	require.NoError(t, r.Close(mark))
	require.ErrorIs(t, r.Watermark(base, mark), model.ErrInvalidHandle)
}

func TestRegistry_CloseInvalidates(t *testing.T) {
	r := New(DefaultOptions())
	h, err := r.NewRGBA(5, 5)
	require.NoError(t, err)

	require.NoError(t, r.Close(h))

	_, _, err = r.Dimensions(h)
	require.ErrorIs(t, err, model.ErrInvalidHandle)
	_, err = r.Size(h)
	require.ErrorIs(t, err, model.ErrInvalidHandle)
	require.ErrorIs(t, r.Resize(h, 2, 2), model.ErrInvalidHandle)
	require.ErrorIs(t, r.Thumbnail(h, 2, 2), model.ErrInvalidHandle)
	require.ErrorIs(t, r.Save(h, filepath.Join(t.TempDir(), "x.png")), model.ErrInvalidHandle)
	_, err = r.EncodePNG(h)
	require.ErrorIs(t, err, model.ErrInvalidHandle)
	require.ErrorIs(t, r.Fill(h, "#fff"), model.ErrInvalidHandle)

	// закрытый хэндл важнее неверных аргументов
	require.ErrorIs(t, r.Resize(h, 0, 0), model.ErrInvalidHandle)
	require.NotErrorIs(t, r.Resize(h, 0, 0), model.ErrInvalidDimensions)
	require.ErrorIs(t, r.Thumbnail(h, -1, 0), model.ErrInvalidHandle)
	require.ErrorIs(t, r.Fill(h, "bogus"), model.ErrInvalidHandle)
	require.NotErrorIs(t, r.Fill(h, "bogus"), model.ErrInvalidColor)

	// повторный Close - ошибка
	require.ErrorIs(t, r.Close(h), model.ErrInvalidHandle)
	require.ErrorIs(t, r.Close(model.NoHandle), model.ErrInvalidHandle)
	require.ErrorIs(t, r.Close(12345), model.ErrInvalidHandle)
}

func TestRegistry_HandlesNotReused(t *testing.T) {
	r := New(DefaultOptions())

	first, err := r.NewRGBA(1, 1)
	require.NoError(t, err)
	require.NoError(t, r.Close(first))

	second, err := r.NewRGBA(1, 1)
	require.NoError(t, err)
	require.Greater(t, second, first)
}

func TestRegistry_CloseAll(t *testing.T) {
	r := New(DefaultOptions())

	var handles []model.Handle
	for i := 0; i < 3; i++ {
		h, err := r.NewRGBA(2, 2)
		require.NoError(t, err)
		handles = append(handles, h)
	}
	require.Equal(t, 3, r.Len())

	require.Equal(t, 3, r.CloseAll())
	require.Zero(t, r.Len())

	for _, h := range handles {
		require.ErrorIs(t, r.Close(h), model.ErrInvalidHandle)
	}
}

func TestRegistry_NoAliasing(t *testing.T) {
	r := New(DefaultOptions())
	path := writeTestPNG(t, 20, 20)

	a, err := r.Open(path)
	require.NoError(t, err)
	b, err := r.Open(path)
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	require.NoError(t, r.Resize(a, 5, 5))

	w, ht := mustDimensions(t, r, b)
	require.Equal(t, 20, w)
	require.Equal(t, 20, ht)
}

func TestRegistry_Concurrent(t *testing.T) {
	r := New(DefaultOptions())
	shared, err := r.NewRGBA(50, 50)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			own, err := r.NewRGBA(10+n, 10)
			if err != nil {
				t.Error(err)
				return
			}
			if err := r.Resize(shared, 20+n, 20); err != nil {
				t.Error(err)
			}
			if _, err := r.EncodePNG(own); err != nil {
				t.Error(err)
			}
			if err := r.Close(own); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, r.Len())
	_, ht := mustDimensions(t, r, shared)
	require.Equal(t, 20, ht)
}

func TestNew_Defaults(t *testing.T) {
	r := New(Options{MaxDimension: -5})
	require.NotNil(t, r.Options().Resampler)
	require.Zero(t, r.Options().MaxDimension)

	h, err := r.NewRGBA(100000, 1)
	require.NoError(t, err)
	require.NoError(t, r.Close(h))
}
