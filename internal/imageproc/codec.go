package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // регистрируем декодер WebP для image.Decode
)

// EncodeOptions - настройки кодировщиков, пробрасываются в imaging.Encode
type EncodeOptions struct {
	JPEGQuality    int
	PNGCompression png.CompressionLevel
}

var DefaultEncodeOptions = EncodeOptions{
	JPEGQuality:    95,
	PNGCompression: png.DefaultCompression,
}

var pngCompressionNames = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
}

func (o EncodeOptions) imagingOptions() []imaging.EncodeOption {
	quality := o.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = DefaultEncodeOptions.JPEGQuality
	}
	return []imaging.EncodeOption{
		imaging.JPEGQuality(quality),
		imaging.PNGCompressionLevel(o.PNGCompression),
	}
}

// PNGCompressionFromName maps config values like "best" or "speed" to a png level
func PNGCompressionFromName(name string) (png.CompressionLevel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return png.DefaultCompression, nil
	}
	level, ok := pngCompressionNames[name]
	if !ok {
		return png.DefaultCompression, fmt.Errorf("unknown png compression %q", name)
	}
	return level, nil
}

// FormatFromName accepts "png", "jpeg", "jpg", "gif", "tif", "tiff", "bmp" with or without a leading dot
func FormatFromName(name string) (imaging.Format, error) {
	format, err := imaging.FormatFromExtension(strings.TrimPrefix(strings.ToLower(name), "."))
	if err != nil {
		return -1, fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, name)
	}
	return format, nil
}

// Open reads and decodes the file at path. Filesystem failures match both model.ErrDecode and model.ErrIO.
// With maxDimension > 0 the header is checked first and larger images fail with model.ErrInvalidDimensions.
func Open(path string, maxDimension int) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", model.ErrDecode, model.ErrIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", model.ErrDecode, model.ErrIO, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %w: %q is not a regular file", model.ErrDecode, model.ErrIO, path)
	}

	if maxDimension > 0 {
		cfg, _, err := image.DecodeConfig(f)
		if err != nil {
			return nil, fmt.Errorf("open %q: %w", path, decodeError(err))
		}
		if cfg.Width > maxDimension || cfg.Height > maxDimension {
			return nil, fmt.Errorf("%w: %q is %dx%d, limit %d", model.ErrInvalidDimensions, path, cfg.Width, cfg.Height, maxDimension)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %w: %w", model.ErrDecode, model.ErrIO, err)
		}
	}

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	return img, nil
}

// Decode decodes any registered format into a freshly allocated NRGBA buffer
func Decode(r io.Reader) (*image.NRGBA, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", model.ErrDecode)
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, decodeError(err)
	}

	return imaging.Clone(img), nil
}

func decodeError(err error) error {
	if errors.Is(err, image.ErrFormat) {
		return fmt.Errorf("%w: %w", model.ErrDecode, model.ErrUnsupportedFormat)
	}
	return fmt.Errorf("%w: %w", model.ErrDecode, err)
}

func Encode(w io.Writer, img image.Image, format imaging.Format, opts EncodeOptions) error {
	if _, ok := model.GetCType[format]; !ok {
		return fmt.Errorf("%w: %w", model.ErrEncode, model.ErrUnsupportedFormat)
	}
	if err := imaging.Encode(w, img, format, opts.imagingOptions()...); err != nil {
		return fmt.Errorf("%w: %s: %w", model.ErrEncode, format, err)
	}
	return nil
}

func EncodeBytes(img image.Image, format imaging.Format, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes img into path, picking the format from the file extension.
// The extension is checked before the file is created so an unsupported one leaves nothing behind.
func Save(path string, img image.Image, opts EncodeOptions) (err error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("%w: %w: %q", model.ErrEncode, model.ErrUnsupportedFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrIO, err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", model.ErrIO, cErr)
		}
	}()

	return Encode(f, img, format, opts)
}
