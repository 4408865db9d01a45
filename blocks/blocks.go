// Package blocks generates square images tiled with randomly colored
// square blocks.
package blocks

import (
	"fmt"
	"image/color"
	"math/rand/v2"
)

// MaxSize is the largest accepted image edge length in pixels.
const MaxSize = 1000

// Config describes one square image as a grid of square blocks.
type Config struct {
	Size      int // image edge length in pixels
	BlockSize int // block edge length in pixels, must divide Size
}

func (c Config) Validate() error {
	switch {
	case c.Size < 1:
		return fmt.Errorf("invalid image size: %d", c.Size)
	case c.Size > MaxSize:
		return fmt.Errorf("image size %d exceeds maximum %d", c.Size, MaxSize)
	case c.BlockSize < 1:
		return fmt.Errorf("invalid block size: %d", c.BlockSize)
	case c.Size%c.BlockSize != 0:
		return fmt.Errorf("image size %d is not divisible by block size %d", c.Size, c.BlockSize)
	}
	return nil
}

// Generate fills a fresh image with a (Size/BlockSize)² grid of
// axis-aligned squares, each colored by an independent uniform draw
// from pal. Blocks are visited row-major, top-to-bottom, and every
// pixel of the buffer is written exactly once.
func Generate(conf Config, pal color.Palette, rnd *rand.Rand) (*Image, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if len(pal) == 0 {
		return nil, fmt.Errorf("empty palette")
	}

	img := NewImage(conf.Size, conf.Size)
	row := make([]uint8, 3*conf.BlockSize)
	for by := 0; by < conf.Size; by += conf.BlockSize {
		for bx := 0; bx < conf.Size; bx += conf.BlockSize {
			c := color.RGBAModel.Convert(pal[rnd.IntN(len(pal))]).(color.RGBA)
			for i := range conf.BlockSize {
				row[3*i], row[3*i+1], row[3*i+2] = c.R, c.G, c.B
			}
			for y := by; y < by+conf.BlockSize; y++ {
				copy(img.Row(y)[3*bx:], row)
			}
		}
	}
	return img, nil
}
