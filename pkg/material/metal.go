package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	noEmission
	Albedo   core.Color // Metal color
	Fuzzness float64    // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Color, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// RandomMetal creates a metal with a random albedo and fuzz
func RandomMetal(random *rand.Rand) *Metal {
	return NewMetal(core.RandomColor(random), random.Float64())
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	return reflectOff(rayIn, hit, m.Albedo, m.Fuzzness, random)
}

func (m *Metal) Kind() Kind { return KindMetal }
func (m *Metal) sealed()    {}

// Mirror is a metal without fuzz
type Mirror struct {
	noEmission
	Albedo core.Color
}

// NewMirror creates a new mirror material
func NewMirror(albedo core.Color) *Mirror {
	return &Mirror{Albedo: albedo}
}

// RandomMirror creates a mirror with a random tint
func RandomMirror(random *rand.Rand) *Mirror {
	return NewMirror(core.RandomColor(random))
}

// Scatter implements the Material interface for perfect specular reflection
func (m *Mirror) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	return reflectOff(rayIn, hit, m.Albedo, 0, random)
}

func (m *Mirror) Kind() Kind { return KindMirror }
func (m *Mirror) sealed()    {}

// reflectOff reflects about the hit normal, perturbed by fuzz. Rays pushed below
// the surface are absorbed.
func reflectOff(rayIn core.Ray, hit HitRecord, albedo core.Color, fuzz float64, random *rand.Rand) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(random).Multiply(fuzz))
	}

	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Attenuation: albedo,
		Scattered:   scatteredFrom(rayIn, hit, reflected),
	}, true
}
