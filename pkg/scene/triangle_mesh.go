package scene

import (
	"github.com/df07/go-pathtracer/pkg/imaging"
)

// trianglesScene showcases triangle geometry: a four-sided metal pyramid, a
// glass panel and a diffuse panel standing on a ground sphere
func trianglesScene() *Descriptor {
	gold := metal(rgb(0.8, 0.6, 0.2), 0.1)
	glass := dielectric(gray(0.95), 1.5)
	red := lambertian(rgb(0.65, 0.25, 0.2))

	apex := vec(0, 1.6, 0)
	frontLeft, frontRight := vec(-1, 0, 1), vec(1, 0, 1)
	backLeft, backRight := vec(-1, 0, -1), vec(1, 0, -1)

	return &Descriptor{
		Settings: SettingsDescriptor{
			Render: RenderDescriptor{
				SamplesPerPixel: 64,
				MaxDepth:        20,
				Gamma:           2,
				ShutterClose:    1,
			},
			Camera: CameraDescriptor{
				LookFrom: vec(0, 2, 6),
				LookAt:   vec(0, 1, 0),
				Up:       vec(0, 1, 0),
				VFov:     45,
				Aperture: 0.02,
			},
		},
		Image: imaging.Widescreen(338, imaging.Landscape),
		World: []ShapeDescriptor{
			// Pyramid
			triangle(frontLeft, frontRight, apex, gold),
			triangle(frontRight, backRight, apex, gold),
			triangle(backRight, backLeft, apex, gold),
			triangle(backLeft, frontLeft, apex, gold),

			// Panels
			triangle(vec(-3, 0, -1), vec(-1.5, 0, -1.5), vec(-2.2, 2, -1.2), glass),
			triangle(vec(1.5, 0, -1.5), vec(3, 0, -1), vec(2.2, 2, -1.2), red),

			sphere(vec(0, 5, 2), 1, light(gray(1), 4)),
			// Ground
			sphere(vec(0, -1000, 0), 1000, lambertian(gray(0.5))),
		},
	}
}
