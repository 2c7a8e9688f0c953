package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Light represents a light-emitting material
type Light struct {
	Albedo    core.Color // Emitted color
	Intensity float64    // Scale applied to the color
}

// NewLight creates a new light material
func NewLight(albedo core.Color, intensity float64) *Light {
	return &Light{Albedo: albedo, Intensity: intensity}
}

// RandomLight creates a light with a random color and an intensity in [1, 10)
func RandomLight(random *rand.Rand) *Light {
	return NewLight(core.RandomColor(random), core.RandomFloat(random, 1, 10))
}

// Scatter implements the Material interface for lights.
// Lights don't scatter, every path that reaches one ends there.
func (l *Light) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns a flat emission independent of angle and distance
func (l *Light) Emit() core.Color {
	return l.Albedo.Multiply(l.Intensity)
}

func (l *Light) Kind() Kind { return KindLight }
func (l *Light) sealed()    {}

// Absorber swallows every ray and emits nothing. It renders as matte black.
type Absorber struct {
	noEmission
}

// NewAbsorber creates a new absorbing material
func NewAbsorber() *Absorber {
	return &Absorber{}
}

// Scatter implements the Material interface for the absorber
func (a *Absorber) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	return ScatterResult{}, false
}

func (a *Absorber) Kind() Kind { return KindAbsorber }
func (a *Absorber) sealed()    {}
