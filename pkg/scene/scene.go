package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/imaging"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Camera      renderer.CameraConfig   // AspectRatio always matches Image
	Settings    renderer.RenderSettings // Samples, depth, gamma and shutter interval
	Image       imaging.Size            // Output resolution
	World       *geometry.World         // Objects in the scene
}

// Resize changes the output resolution and keeps the camera aspect ratio in step
func (s *Scene) Resize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("image must be at least 1x1, got %dx%d", width, height)
	}
	s.Image = imaging.Size{Width: width, Height: height}
	s.Camera.AspectRatio = s.Image.AspectRatio()
	return nil
}

// NewCamera builds the camera for the current configuration
func (s *Scene) NewCamera() (*renderer.Camera, error) {
	camera, err := renderer.NewCamera(s.Camera)
	if err != nil {
		return nil, fmt.Errorf("while building camera for scene %q: %w", s.Name, err)
	}
	return camera, nil
}

// NewRaytracer builds a raytracer for the scene at its current resolution
func (s *Scene) NewRaytracer(opts renderer.Options) (*renderer.Raytracer, error) {
	camera, err := s.NewCamera()
	if err != nil {
		return nil, err
	}
	return renderer.NewRaytracer(s.World, camera, s.Image.Width, s.Image.Height, s.Settings, opts)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene,
// counting each mesh triangle separately
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.World.Shapes {
		if mesh, ok := shape.(*geometry.TriangleMesh); ok {
			count += mesh.TriangleCount()
		} else {
			count++
		}
	}
	return count
}

func loadMesh(path string, m material.Material, options *geometry.TriangleMeshOptions) (geometry.Shape, error) {
	mesh, err := loaders.LoadGLTFMesh(path, m, options)
	if err != nil {
		return nil, fmt.Errorf("while loading mesh: %w", err)
	}
	return mesh, nil
}
