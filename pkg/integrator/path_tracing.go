package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ShadowAcneEpsilon is the lower bound on hit distance, excluding self-intersection at a ray's origin
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{background: background}
}

// Background returns the sky gradient used for misses
func (pt *PathTracingIntegrator) Background() Background {
	return pt.background
}

// RayColor follows a single path, multiplying attenuation at each bounce.
// A path that runs out of bounces contributes nothing.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, depth int, random *rand.Rand) core.Color {
	throughput := core.Gray(1.0)

	for remaining := depth; remaining > 0; remaining-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyColor(pt.background.ColorAt(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
		if !didScatter {
			// Path ends here, only emitted light reaches the camera
			return throughput.MultiplyColor(hit.Material.Emit())
		}

		throughput = throughput.MultiplyColor(scatter.Attenuation)
		if throughput.R == 0 && throughput.G == 0 && throughput.B == 0 {
			break
		}
		ray = scatter.Scattered
	}

	return core.Black()
}
