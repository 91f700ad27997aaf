package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Canvas is a grid of linear colors, stored row-major. Colors are kept unclamped;
// clamping happens only when a canvas is encoded.
type Canvas struct {
	Width  int
	Height int
	pixels []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("canvas size %dx%d is negative", width, height))
	}
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

func (c *Canvas) index(x, y int) int {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		panic(fmt.Sprintf("pixel (%d, %d) outside %dx%d canvas", x, y, c.Width, c.Height))
	}
	return y*c.Width + x
}

// PixelAt returns the color at (x, y). It panics outside the canvas.
func (c *Canvas) PixelAt(x, y int) core.Color {
	return c.pixels[c.index(x, y)]
}

// WritePixel sets the color at (x, y). It panics outside the canvas.
func (c *Canvas) WritePixel(x, y int, col core.Color) {
	c.pixels[c.index(x, y)] = col
}

// Bounds returns the canvas rectangle in pixel coordinates
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// ToImage converts the whole canvas to 8-bit RGBA
func (c *Canvas) ToImage() *image.RGBA {
	return c.SubImage(c.Bounds())
}

// SubImage converts the pixels inside bounds to an RGBA image whose origin is bounds.Min
func (c *Canvas) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(c.Bounds())
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, colorToRGBA(c.PixelAt(x, y)))
		}
	}
	return img
}

// ChannelByte scales a linear channel value to [0, 255], rounding and clamping
func ChannelByte(v float64) uint8 {
	scaled := math.Round(v * 255)
	if scaled < 0 || math.IsNaN(scaled) {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

func colorToRGBA(c core.Color) color.RGBA {
	return color.RGBA{
		R: ChannelByte(c.R),
		G: ChannelByte(c.G),
		B: ChannelByte(c.B),
		A: 255,
	}
}
