package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Filter tints rays that pass through it without bending them
type Filter struct {
	noEmission
	Albedo  core.Color
	Opacity float64 // Scale applied to the tint
}

// NewFilter creates a new filter material
func NewFilter(albedo core.Color, opacity float64) *Filter {
	return &Filter{Albedo: albedo, Opacity: opacity}
}

// RandomFilter creates a filter with a random tint and opacity
func RandomFilter(random *rand.Rand) *Filter {
	return NewFilter(core.RandomColor(random), random.Float64())
}

// Scatter continues the incoming direction from the hit point
func (f *Filter) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	return ScatterResult{
		Attenuation: f.Albedo.Multiply(f.Opacity),
		Scattered:   scatteredFrom(rayIn, hit, rayIn.Direction),
	}, true
}

func (f *Filter) Kind() Kind { return KindFilter }
func (f *Filter) sealed()    {}

// Normal is a debug material that colors surfaces by their normal
type Normal struct {
	noEmission
	Brightness float64
	Intensity  float64 // Offset added to each normal component before scaling
}

// NewNormal creates a new normal visualizer
func NewNormal(brightness, intensity float64) *Normal {
	return &Normal{Brightness: brightness, Intensity: intensity}
}

// Scatter passes the ray through, attenuated by brightness*(normal+intensity) per channel
func (n *Normal) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	attenuation := core.RGB(
		n.Brightness*(hit.Normal.X+n.Intensity),
		n.Brightness*(hit.Normal.Y+n.Intensity),
		n.Brightness*(hit.Normal.Z+n.Intensity),
	)
	return ScatterResult{
		Attenuation: attenuation,
		Scattered:   scatteredFrom(rayIn, hit, rayIn.Direction),
	}, true
}

func (n *Normal) Kind() Kind { return KindNormal }
func (n *Normal) sealed()    {}
