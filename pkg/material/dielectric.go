package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	noEmission
	Albedo          core.Color // Tint applied to both reflected and refracted rays
	RefractiveIndex float64    // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(albedo core.Color, refractiveIndex float64) *Dielectric {
	return &Dielectric{Albedo: albedo, RefractiveIndex: refractiveIndex}
}

// RandomDielectric creates a lightly tinted glass with an index in [1.0, 2.0)
func RandomDielectric(random *rand.Rand) *Dielectric {
	return NewDielectric(core.Gray(core.RandomFloat(random, 0.5, 1.0)), core.RandomFloat(random, 1.0, 2.0))
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	// Determine if we're entering or exiting the material
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	} else {
		refractionRatio = d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > random.Float64() {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = unitDirection.Refract(hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Attenuation: d.Albedo,
		Scattered:   scatteredFrom(rayIn, hit, direction),
	}, true
}

func (d *Dielectric) Kind() Kind { return KindDielectric }
func (d *Dielectric) sealed()    {}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
