package blocks

import (
	"image"
	"image/color"
)

// Image is a packed 24-bit RGB pixel buffer: 3 bytes per pixel, row-major,
// top-to-bottom, no alpha. It implements image.Image so encoders consume
// scanlines in the same order the generator wrote them.
type Image struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewImage allocates a zeroed width x height buffer.
func NewImage(width, height int) *Image {
	return &Image{
		Pix:    make([]uint8, 3*width*height),
		Stride: 3 * width,
		Rect:   image.Rect(0, 0, width, height),
	}
}

func (p *Image) ColorModel() color.Model { return color.RGBAModel }

func (p *Image) Bounds() image.Rectangle { return p.Rect }

func (p *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	return color.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 0xFF}
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// Row returns the packed scanline y as a slice into the buffer.
func (p *Image) Row(y int) []uint8 {
	i := p.PixOffset(p.Rect.Min.X, y)
	return p.Pix[i : i+p.Stride : i+p.Stride]
}

// Opaque always reports true, there is no alpha channel to begin with.
func (p *Image) Opaque() bool { return true }
