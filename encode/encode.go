// Package encode writes images to disk in one of several formats with a
// selectable quality/size trade-off for the lossy ones.
package encode

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Options select the output codec and its parameters.
type Options struct {
	Format  string // jpeg, png, bmp or tiff; empty means jpeg
	Quality int    // 0-100, jpeg only; passed through to the codec unchanged
}

// Ext returns the file extension for the configured format, without dot.
func (o Options) Ext() string {
	if o.Format == "" || o.Format == "jpeg" {
		return "jpg"
	}
	return o.Format
}

// Save encodes img to path. The stream is written to a temporary file
// in the destination directory and renamed into place only after the
// codec has finalized it and the data is flushed, so a failed encode
// never leaves a partial file under the final name.
func Save(img image.Image, path string, opts Options) (err error) {
	dir, name := filepath.Split(path)
	outFile, err := os.CreateTemp(dir, name)
	if err != nil {
		return fmt.Errorf("could not create destination %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush destination %q: %w", path, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close destination %q: %w", path, defErr)
		}

		if err != nil || !canRename {
			if defErr := os.Remove(outFile.Name()); defErr != nil {
				slog.Error("could not remove temporary destination", "name", outFile.Name(), "error", defErr)
			}
			return
		}

		if defErr := os.Rename(outFile.Name(), path); defErr != nil {
			err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
		}
	}()

	switch opts.Format {
	case "", "jpeg":
		if err = jpeg.Encode(outFile, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
			return fmt.Errorf("could not encode JPEG destination %q: %w", path, err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", path, err)
		}
	case "bmp":
		if err = bmp.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", path, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}

	canRename = true
	return err
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
