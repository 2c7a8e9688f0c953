package integrator

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray, bouncing at most depth times.
	// The world must not change while RayColor runs; random belongs to the caller's goroutine.
	RayColor(ray core.Ray, world geometry.Shape, depth int, random *rand.Rand) core.Color
}

// Background is a vertical sky gradient seen by rays that miss everything
type Background struct {
	Horizon core.Color // Seen looking straight down (y = -1)
	Zenith  core.Color // Seen looking straight up (y = +1)
}

// DefaultBackground returns the white to pale blue sky
func DefaultBackground() Background {
	return Background{
		Horizon: core.Gray(1.0),
		Zenith:  core.RGB(0.5, 0.5, 0.9),
	}
}

// ColorAt blends horizon to zenith by the ray's normalized y direction
func (b Background) ColorAt(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Horizon.Multiply(1.0 - t).Add(b.Zenith.Multiply(t))
}
