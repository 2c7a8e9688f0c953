package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/material"
)

// MaterialSpec is the serialized form of a material. Type is one of the
// material.Kind tags; the remaining fields apply per type.
type MaterialSpec struct {
	Type            material.Kind `yaml:"type"`
	Albedo          ColorSpec     `yaml:"albedo,omitempty"`
	Fuzz            float64       `yaml:"fuzz,omitempty"`             // metal
	RefractiveIndex float64       `yaml:"refractive_index,omitempty"` // dielectric
	Intensity       float64       `yaml:"intensity,omitempty"`        // light, normal
	Opacity         float64       `yaml:"opacity,omitempty"`          // filter
	Brightness      float64       `yaml:"brightness,omitempty"`       // normal
}

// Build constructs the material
func (ms MaterialSpec) Build() (material.Material, error) {
	albedo := ms.Albedo.Color()
	switch ms.Type {
	case material.KindLambertian:
		return material.NewLambertian(albedo), nil
	case material.KindMetal:
		return material.NewMetal(albedo, ms.Fuzz), nil
	case material.KindMirror:
		return material.NewMirror(albedo), nil
	case material.KindDielectric:
		if ms.RefractiveIndex == 0 {
			return nil, fmt.Errorf("dielectric needs a non-zero refractive_index")
		}
		return material.NewDielectric(albedo, ms.RefractiveIndex), nil
	case material.KindLight:
		return material.NewLight(albedo, ms.Intensity), nil
	case material.KindFilter:
		return material.NewFilter(albedo, ms.Opacity), nil
	case material.KindNormal:
		return material.NewNormal(ms.Brightness, ms.Intensity), nil
	case material.KindAbsorber:
		return material.NewAbsorber(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, ms.Type)
	}
}

// DescribeMaterial converts a material back into its serialized form
func DescribeMaterial(m material.Material) (MaterialSpec, error) {
	switch m := m.(type) {
	case *material.Lambertian:
		return MaterialSpec{Type: m.Kind(), Albedo: ColorSpec(m.Albedo)}, nil
	case *material.Metal:
		return MaterialSpec{Type: m.Kind(), Albedo: ColorSpec(m.Albedo), Fuzz: m.Fuzzness}, nil
	case *material.Mirror:
		return MaterialSpec{Type: m.Kind(), Albedo: ColorSpec(m.Albedo)}, nil
	case *material.Dielectric:
		return MaterialSpec{Type: m.Kind(), Albedo: ColorSpec(m.Albedo), RefractiveIndex: m.RefractiveIndex}, nil
	case *material.Light:
		return MaterialSpec{Type: m.Kind(), Albedo: ColorSpec(m.Albedo), Intensity: m.Intensity}, nil
	case *material.Filter:
		return MaterialSpec{Type: m.Kind(), Albedo: ColorSpec(m.Albedo), Opacity: m.Opacity}, nil
	case *material.Normal:
		return MaterialSpec{Type: m.Kind(), Brightness: m.Brightness, Intensity: m.Intensity}, nil
	case *material.Absorber:
		return MaterialSpec{Type: m.Kind()}, nil
	default:
		return MaterialSpec{}, fmt.Errorf("%w: %T", ErrUnknownMaterial, m)
	}
}
