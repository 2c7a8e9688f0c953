package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Image is a linear-color pixel buffer. Row 0 is the bottom scanline; the buffer
// itself is stored top-down, the order the encoders write it.
type Image struct {
	Width  int
	Height int
	pixels []core.Color
}

// New allocates a black image
func New(width, height int) (*Image, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("image must be at least 1x1, got %dx%d", width, height)
	}
	pixels := make([]core.Color, width*height)
	for i := range pixels {
		pixels[i] = core.Black()
	}
	return &Image{Width: width, Height: height, pixels: pixels}, nil
}

// Index maps bottom-up (col, row) to the top-down buffer offset
func (img *Image) Index(col, row int) int {
	return (img.Height-1-row)*img.Width + col
}

// SetPixel stores a linear color. Out-of-range coordinates are ignored.
func (img *Image) SetPixel(col, row int, c core.Color) {
	if col < 0 || col >= img.Width || row < 0 || row >= img.Height {
		return
	}
	img.pixels[img.Index(col, row)] = c
}

// At returns the linear color at bottom-up (col, row)
func (img *Image) At(col, row int) core.Color {
	return img.pixels[img.Index(col, row)]
}

// EncodeColor converts a linear color to an 8-bit display color, per channel
// 255.999 * clamp(c^(1/gamma), 0, 1). A gamma <= 0 skips the correction.
func EncodeColor(c core.Color, gamma float64) color.NRGBA {
	display := c.GammaCorrect(gamma).Clamp(0, 1)
	return color.NRGBA{
		R: toByte(display.R),
		G: toByte(display.G),
		B: toByte(display.B),
		A: c.A,
	}
}

// toByte maps [0, 1] to [0, 255]; NaN becomes black
func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(255.999 * v)
}

// ToNRGBA converts the buffer into a standard library image, top row first
func (img *Image) ToNRGBA(gamma float64) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetNRGBA(x, y, EncodeColor(img.pixels[y*img.Width+x], gamma))
		}
	}
	return out
}
