package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind identifies a material variant. It is the type tag used by scene files.
type Kind string

const (
	KindLambertian Kind = "lambertian"
	KindMetal      Kind = "metal"
	KindMirror     Kind = "mirror"
	KindDielectric Kind = "dielectric"
	KindLight      Kind = "light"
	KindFilter     Kind = "filter"
	KindNormal     Kind = "normal"
	KindAbsorber   Kind = "none"
)

// Kinds lists every material variant in a stable order
func Kinds() []Kind {
	return []Kind{
		KindLambertian, KindMetal, KindMirror, KindDielectric,
		KindLight, KindFilter, KindNormal, KindAbsorber,
	}
}

// Material is the scatter/emit contract shared by every surface.
// The variant set is closed: only types in this package implement it.
// Materials are immutable and safe to share across goroutines.
type Material interface {
	// Scatter returns the attenuation and outgoing ray, or false if the path ends here
	Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)

	// Emit returns the light contributed when Scatter terminates the path
	Emit() core.Color

	// Kind returns the variant tag
	Kind() Kind

	sealed()
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Attenuation core.Color // Componentwise multiplier applied to the scattered radiance
	Scattered   core.Ray   // The outgoing ray
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// noEmission is embedded by every non-emitting variant
type noEmission struct{}

func (noEmission) Emit() core.Color { return core.Black() }

// scatteredFrom builds the outgoing ray at the hit point, keeping the incoming ray's time
func scatteredFrom(rayIn core.Ray, hit HitRecord, direction core.Vec3) core.Ray {
	return core.NewRayAt(hit.Point, direction, rayIn.Time)
}
