package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/imaging"
	"github.com/df07/go-pathtracer/pkg/material"
)

// showcaseVFov matches a viewport two units tall at focal length two
var showcaseVFov = 2 * math.Atan(0.5) * 180 / math.Pi

// showcaseScene places nine spheres in front of a camera at the origin and
// draws every material from seed, so each seed gives a different look
func showcaseScene(seed int64) (*Descriptor, error) {
	random := rand.New(rand.NewSource(seed))
	var describeErr error
	describe := func(m material.Material) MaterialSpec {
		spec, err := DescribeMaterial(m)
		if err != nil && describeErr == nil {
			describeErr = err
		}
		return spec
	}

	d := &Descriptor{
		Settings: SettingsDescriptor{
			Render: RenderDescriptor{
				SamplesPerPixel: 100,
				MaxDepth:        100,
				Gamma:           1,
				ShutterClose:    1,
			},
			Camera: CameraDescriptor{
				LookFrom: vec(0, 0, 0),
				LookAt:   vec(0, 0, -1),
				Up:       vec(0, 1, 0),
				VFov:     showcaseVFov,
			},
		},
		Image: imaging.Widescreen(500, imaging.Landscape),
		World: []ShapeDescriptor{
			// Back
			sphere(vec(3.1, -1.6, -8), 0.6, describe(material.RandomLight(random))),
			sphere(vec(0, 0, -5), -1.5, describe(material.RandomMirror(random))),
			sphere(vec(-3.3, -0.08, -5.2), 1.5, describe(material.RandomMetal(random))),
			sphere(vec(3.3, -0.08, -5.2), -1.5, describe(material.RandomDielectric(random))),
			// Bubble
			sphere(vec(1.2, 1.3, -3.8), -0.5, describe(material.RandomDielectric(random))),
			// Sun behind the camera
			sphere(vec(0, -1, 15), 7, describe(material.RandomLight(random))),
			sphere(vec(-1.2, -1.35, -4), 0.2, describe(material.RandomDielectric(random))),
			sphere(vec(1.2, -1.5, -4), 0.2, describe(material.RandomMetal(random))),
			// Ground
			sphere(vec(0, -101.5, -2), 100, describe(material.RandomLambertian(random))),
		},
	}
	if describeErr != nil {
		return nil, describeErr
	}
	return d, nil
}
