package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

type builtin struct {
	description string
	describe    func(seed int64) (*Descriptor, error)
}

var builtins = map[string]builtin{
	"default": {
		description: "Mirrored, metal, glass and diffuse spheres between two colored suns",
		describe:    func(int64) (*Descriptor, error) { return defaultScene(), nil },
	},
	"two-spheres": {
		description: "A small diffuse sphere resting on a large ground sphere",
		describe:    func(int64) (*Descriptor, error) { return twoSpheresScene(), nil },
	},
	"showcase": {
		description: "Spheres with randomized materials; the seed picks the materials",
		describe:    showcaseScene,
	},
	"triangles": {
		description: "A metal pyramid and free-standing triangles over a ground sphere",
		describe:    func(int64) (*Descriptor, error) { return trianglesScene(), nil },
	},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the descriptor of a built-in scene. seed only affects
// scenes with randomized content.
func Describe(name string, seed int64) (*Descriptor, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	d, err := b.describe(seed)
	if err != nil {
		return nil, fmt.Errorf("while describing scene %q: %w", name, err)
	}
	d.Name = name
	d.Description = b.description
	return d, nil
}

// ByName builds a built-in scene
func ByName(name string, seed int64) (*Scene, error) {
	d, err := Describe(name, seed)
	if err != nil {
		return nil, err
	}
	return d.Build("")
}

func vec(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func rgb(r, g, b float64) ColorSpec {
	return ColorSpec(core.RGB(r, g, b))
}

func gray(v float64) ColorSpec {
	return rgb(v, v, v)
}

func sphere(center Vector, radius float64, m MaterialSpec) ShapeDescriptor {
	return ShapeDescriptor{Shape: ShapeSphere, Center: center, Radius: radius, Material: m}
}

func movingSphere(from, to Vector, radius float64, m MaterialSpec) ShapeDescriptor {
	return ShapeDescriptor{Shape: ShapeMovingSphere, Center: from, CenterTo: &to, Radius: radius, Material: m}
}

func triangle(a, b, c Vector, m MaterialSpec) ShapeDescriptor {
	return ShapeDescriptor{Shape: ShapeTriangle, Vertices: []Vector{a, b, c}, Material: m}
}

func lambertian(albedo ColorSpec) MaterialSpec {
	return MaterialSpec{Type: material.KindLambertian, Albedo: albedo}
}

func metal(albedo ColorSpec, fuzz float64) MaterialSpec {
	return MaterialSpec{Type: material.KindMetal, Albedo: albedo, Fuzz: fuzz}
}

func mirror(albedo ColorSpec) MaterialSpec {
	return MaterialSpec{Type: material.KindMirror, Albedo: albedo}
}

func dielectric(albedo ColorSpec, refractiveIndex float64) MaterialSpec {
	return MaterialSpec{Type: material.KindDielectric, Albedo: albedo, RefractiveIndex: refractiveIndex}
}

func light(albedo ColorSpec, intensity float64) MaterialSpec {
	return MaterialSpec{Type: material.KindLight, Albedo: albedo, Intensity: intensity}
}
