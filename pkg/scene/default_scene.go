package scene

import (
	"github.com/df07/go-pathtracer/pkg/imaging"
)

// defaultScene is a diagonal row of spheres viewed from -X, with a sun on
// either side and two small spheres moving while the shutter is open
func defaultScene() *Descriptor {
	return &Descriptor{
		Settings: SettingsDescriptor{
			Render: RenderDescriptor{
				SamplesPerPixel: 10,
				MaxDepth:        10,
				Gamma:           1,
				ShutterOpen:     0,
				ShutterClose:    1,
			},
			Camera: CameraDescriptor{
				LookFrom: vec(-12, 2, 0),
				LookAt:   vec(0, 0, 0),
				Up:       vec(0, 1, 0),
				VFov:     40,
			},
		},
		Image: imaging.Widescreen(500, imaging.Landscape),
		World: []ShapeDescriptor{
			// Center
			sphere(vec(0, 0, 0), 1.5, mirror(gray(0.9))),
			// Closest
			sphere(vec(-4.5, -0.7, -3.2), 1, metal(gray(0.9), 0.9)),
			sphere(vec(-3, -0.65, -1.7), 1, dielectric(gray(0.9), 1.5)),
			// Inside-out diffuse sphere
			sphere(vec(3, -0.55, 2), -1, lambertian(gray(0.9))),
			sphere(vec(4.5, -0.7, 3.5), 1, mirror(gray(0.8))),
			sphere(vec(6.5, -0.9, 5.5), 1, metal(rgb(0.1, 0.8, 0.7), 0.1)),
			sphere(vec(8.5, -1.2, 7.5), 1, lambertian(gray(0.7))),
			// Farthest
			sphere(vec(10.5, -1.5, 9.5), 1, metal(rgb(0.8, 0.1, 0.7), 0.9)),

			movingSphere(vec(-1.2, 2.1, 1.0), vec(-1.2, 2.1, 1.3), 0.2, metal(rgb(1, 0.7, 0.1), 0.3)),
			movingSphere(vec(-1.2, 2.4, -1.6), vec(-1.2, 2.4, -1.4), 0.2, metal(rgb(0.7, 0.1, 1), 0.7)),

			// Suns
			sphere(vec(0, -1, 17), 7, light(rgb(0.5, 0.5, 0.1), 8)),
			sphere(vec(0, -1, -17), 7, light(rgb(0.5, 0.1, 0.5), 8)),

			// Marble
			sphere(vec(-6, -1.52, 2.5), 0.2, dielectric(gray(0.9), 1.4)),
			// Ground
			sphere(vec(0, -101.5, 0), 100, lambertian(rgb(0.9, 0.2, 0.4))),
		},
	}
}

// twoSpheresScene is a small diffuse sphere sitting on a large ground sphere
func twoSpheresScene() *Descriptor {
	return &Descriptor{
		Settings: SettingsDescriptor{
			Render: RenderDescriptor{
				SamplesPerPixel: 100,
				MaxDepth:        50,
				Gamma:           2,
				ShutterClose:    1,
			},
			Camera: CameraDescriptor{
				LookFrom: vec(0, 0, 0),
				LookAt:   vec(0, 0, -1),
				Up:       vec(0, 1, 0),
				VFov:     90,
			},
		},
		Image: imaging.Widescreen(360, imaging.Landscape),
		World: []ShapeDescriptor{
			sphere(vec(0, 0, -1), 0.5, lambertian(rgb(0.7, 0.3, 0.3))),
			sphere(vec(0, -100.5, -1), 100, lambertian(rgb(0.8, 0.8, 0))),
		},
	}
}
