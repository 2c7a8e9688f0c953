package server

import (
	"fmt"
	"math"
	"math/rand"
	"net/http"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult is the closest hit along an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // nil if the hit could not be attributed to a top-level shape
}

// inspectPixel casts a ray through the center of pixel (x, y), with y counted
// from the top of the image, using the renderer's pixel mapping
func inspectPixel(sc *scene.Scene, x, y int) (InspectResult, error) {
	camera, err := sc.NewCamera()
	if err != nil {
		return InspectResult{}, err
	}
	row := sc.Image.Height - 1 - y
	s, t := renderer.ImagePlane(x, row, 0.5, 0.5, sc.Image.Width, sc.Image.Height)
	ray := camera.GetRay(s, t, rand.New(rand.NewSource(0)))

	hit, ok := sc.World.Hit(ray, integrator.ShadowAcneEpsilon, math.Inf(1))
	if !ok {
		return InspectResult{}, nil
	}
	for _, shape := range sc.World.Shapes {
		if h, ok := shape.Hit(ray, integrator.ShadowAcneEpsilon, hit.T+integrator.ShadowAcneEpsilon); ok && h.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Shape: shape}, nil
		}
	}
	return InspectResult{Hit: true, HitRecord: hit}, nil
}

// extractMaterialInfo reports the material kind and its parameters
func extractMaterialInfo(m material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	spec, err := scene.DescribeMaterial(m)
	if err != nil {
		return "unknown", properties
	}
	if !spec.Albedo.IsZero() {
		c := spec.Albedo.Color()
		properties["albedo"] = [3]float64{c.R, c.G, c.B}
		properties["color"] = hexColor(c)
	}
	if spec.Fuzz != 0 {
		properties["fuzz"] = spec.Fuzz
	}
	if spec.RefractiveIndex != 0 {
		properties["refractiveIndex"] = spec.RefractiveIndex
	}
	if spec.Intensity != 0 {
		properties["intensity"] = spec.Intensity
	}
	if spec.Opacity != 0 {
		properties["opacity"] = spec.Opacity
	}
	if spec.Brightness != 0 {
		properties["brightness"] = spec.Brightness
	}
	return string(spec.Type), properties
}

// extractGeometryInfo names the shape and adds its defining values
func extractGeometryInfo(shape geometry.Shape, properties map[string]interface{}) string {
	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center0)
		properties["radius"] = geom.Radius
		if geom.IsMoving() {
			return "moving_sphere"
		}
		return "sphere"
	case *geometry.Triangle:
		properties["normal"] = vecArray(geom.Normal())
		return "triangle"
	case *geometry.TriangleMesh:
		properties["triangleCount"] = geom.TriangleCount()
		return "mesh"
	default:
		return "unknown"
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := parseRenderRequest(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sc, err := s.buildScene(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	x, err := parseIntParam(query, "x", -1, 0, sc.Image.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, sc.Image.Height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if x < 0 || y < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("x and y are required"))
		return
	}

	result, err := inspectPixel(sc, x, y)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	response := InspectResponse{Hit: result.Hit}
	if result.Hit {
		hit := result.HitRecord
		response.Point = vecArray(hit.Point)
		response.Normal = vecArray(hit.Normal)
		response.Distance = hit.T
		response.FrontFace = hit.FrontFace
		response.MaterialType, response.Properties = extractMaterialInfo(hit.Material)
		response.GeometryType = extractGeometryInfo(result.Shape, response.Properties)
	}
	writeJSON(w, http.StatusOK, response)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	channel := func(v float64) int { return int(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}
