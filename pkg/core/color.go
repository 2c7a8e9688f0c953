package core

import (
	"math"
	"math/rand"
)

// OpaqueAlpha is the alpha value of every color built by the constructors below
const OpaqueAlpha uint8 = 255

// Color is a linear-space radiance or attenuation value.
// Components are unbounded; they only get clamped when encoded for display.
type Color struct {
	R, G, B float64
	A       uint8
}

// NewColor creates a color with an explicit alpha
func NewColor(r, g, b float64, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque color
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: OpaqueAlpha}
}

// Gray creates an opaque color with all three channels set to v
func Gray(v float64) Color {
	return RGB(v, v, v)
}

// Black returns opaque zero radiance
func Black() Color {
	return Gray(0)
}

// RandomColor returns an opaque color with each channel uniform in [0, 1)
func RandomColor(random *rand.Rand) Color {
	return RGB(random.Float64(), random.Float64(), random.Float64())
}

// Add accumulates two colors channel by channel, keeping c's alpha
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A}
}

// Multiply scales every channel by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar, c.A}
}

// MultiplyColor applies other as an attenuation, channel by channel
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A}
}

// Lerp linearly interpolates from c (t=0) to other (t=1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Multiply(1 - t).Add(other.Multiply(t))
}

// GammaCorrect raises each channel to 1/gamma. A gamma <= 0 leaves the color unchanged.
func (c Color) GammaCorrect(gamma float64) Color {
	if gamma <= 0 {
		return c
	}
	invGamma := 1.0 / gamma
	return Color{
		R: math.Pow(c.R, invGamma),
		G: math.Pow(c.G, invGamma),
		B: math.Pow(c.B, invGamma),
		A: c.A,
	}
}

// Clamp returns a color with components clamped to [min, max]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
		A: c.A,
	}
}
