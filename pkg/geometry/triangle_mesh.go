package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMesh is an indexed triangle list sharing one material.
// Intersection is a linear scan over its triangles.
type TriangleMesh struct {
	triangles World
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Scale    float64    // Uniform scale applied first; zero means 1
	Rotation *core.Vec3 // Optional rotation (radians around X, then Y, then Z)
	Offset   core.Vec3  // Translation applied last
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices in faces forms a triangle. options may be nil.
func NewTriangleMesh(vertices []core.Vec3, faces []int, material material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3", len(faces))
	}

	workingVertices := vertices
	if options != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			workingVertices[i] = options.transform(vertex)
		}
	}

	numTriangles := len(faces) / 3
	mesh := &TriangleMesh{triangles: World{Shapes: make([]Shape, 0, numTriangles)}}
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if !inRange(i0, len(workingVertices)) || !inRange(i1, len(workingVertices)) || !inRange(i2, len(workingVertices)) {
			return nil, fmt.Errorf("triangle %d references vertex outside [0, %d)", i, len(workingVertices))
		}

		a, b, c := workingVertices[i0], workingVertices[i1], workingVertices[i2]
		// Skip zero-area triangles, their normal is undefined
		if b.Subtract(a).Cross(c.Subtract(a)).NearZero() {
			continue
		}
		mesh.triangles.Add(NewTriangle(a, b, c, material))
	}

	return mesh, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return tm.triangles.Hit(ray, tMin, tMax)
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return tm.triangles.Len()
}

// Triangles returns the individual triangles
func (tm *TriangleMesh) Triangles() []Shape {
	return tm.triangles.Shapes
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}

func (o *TriangleMeshOptions) transform(vertex core.Vec3) core.Vec3 {
	if o.Scale != 0 {
		vertex = vertex.Multiply(o.Scale)
	}
	if o.Rotation != nil {
		vertex = rotateVertex(vertex, *o.Rotation)
	}
	return vertex.Add(o.Offset)
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos, sin := math.Cos(rotation.X), math.Sin(rotation.X)
		vertex = core.NewVec3(vertex.X, vertex.Y*cos-vertex.Z*sin, vertex.Y*sin+vertex.Z*cos)
	}
	if rotation.Y != 0 {
		cos, sin := math.Cos(rotation.Y), math.Sin(rotation.Y)
		vertex = core.NewVec3(vertex.X*cos+vertex.Z*sin, vertex.Y, -vertex.X*sin+vertex.Z*cos)
	}
	if rotation.Z != 0 {
		cos, sin := math.Cos(rotation.Z), math.Sin(rotation.Z)
		vertex = core.NewVec3(vertex.X*cos-vertex.Y*sin, vertex.X*sin+vertex.Y*cos, vertex.Z)
	}
	return vertex
}
