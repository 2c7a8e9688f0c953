package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	noEmission
	Albedo core.Color // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// RandomLambertian creates a lambertian with a random albedo
func RandomLambertian(random *rand.Rand) *Lambertian {
	return NewLambertian(core.RandomColor(random))
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(random))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Attenuation: l.Albedo,
		Scattered:   scatteredFrom(rayIn, hit, scatterDirection),
	}, true
}

func (l *Lambertian) Kind() Kind { return KindLambertian }
func (l *Lambertian) sealed()    {}
