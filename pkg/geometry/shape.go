package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit returns the closest intersection with t in [tMin, tMax].
// Implementations must be safe for concurrent use and never mutate themselves.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

// World is an ordered collection of shapes searched linearly for the nearest hit
type World struct {
	Shapes []Shape
}

// NewWorld creates a world from the given shapes
func NewWorld(shapes ...Shape) *World {
	return &World{Shapes: shapes}
}

// Add appends shapes to the world. Not safe to call while rendering.
func (w *World) Add(shapes ...Shape) {
	w.Shapes = append(w.Shapes, shapes...)
}

// Len returns the number of top-level shapes
func (w *World) Len() int {
	return len(w.Shapes)
}

// Hit implements Shape by narrowing the upper bound to the closest hit found so far
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var best *material.HitRecord
	closest := tMax

	for _, shape := range w.Shapes {
		if hit, ok := shape.Hit(ray, tMin, closest); ok {
			closest = hit.T
			best = hit
		}
	}

	return best, best != nil
}
