package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// parallelEpsilon bounds the determinant below which a ray counts as parallel to the triangle
const parallelEpsilon = 1e-8

// Triangle represents a single triangle defined by three vertices.
// Vertex order sets the winding and so the direction of the geometric normal.
type Triangle struct {
	A, B, C  core.Vec3
	Material material.Material
	normal   core.Vec3 // Cached normalize(cross(B-A, C-A))
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(a, b, c core.Vec3, material material.Material) *Triangle {
	return &Triangle{
		A:        a,
		B:        b,
		C:        c,
		Material: material,
		normal:   b.Subtract(a).Cross(c.Subtract(a)).Normalize(),
	}
}

// Normal returns the geometric normal before face orientation
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm.
// Both faces are hittable.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	edge1 := t.B.Subtract(t.A)
	edge2 := t.C.Subtract(t.A)

	pvec := ray.Direction.Cross(edge2)
	determinant := edge1.Dot(pvec)

	// Ray lies in the plane of the triangle
	if determinant > -parallelEpsilon && determinant < parallelEpsilon {
		return nil, false
	}

	inverseDeterminant := 1.0 / determinant
	tvec := ray.Origin.Subtract(t.A)

	u := tvec.Dot(pvec) * inverseDeterminant
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	qvec := tvec.Cross(edge1)
	v := ray.Direction.Dot(qvec) * inverseDeterminant
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	root := edge2.Dot(qvec) * inverseDeterminant
	if root < tMin || root > tMax {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: t.Material,
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	return hitRecord, true
}
