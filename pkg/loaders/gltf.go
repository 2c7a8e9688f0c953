package loaders

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MeshData contains the triangles read from a glTF document
type MeshData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle)
}

// TriangleCount returns the number of faces
func (md *MeshData) TriangleCount() int {
	return len(md.Faces) / 3
}

// LoadGLTF reads every triangle primitive of a .gltf or .glb file. Node
// transforms are not applied.
func LoadGLTF(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("while opening gltf: %w", err)
	}
	data, err := MeshFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("while reading %s: %w", path, err)
	}
	return data, nil
}

// LoadGLTFMesh reads a glTF file into a triangle mesh with a single material
func LoadGLTFMesh(path string, m material.Material, options *geometry.TriangleMeshOptions) (*geometry.TriangleMesh, error) {
	data, err := LoadGLTF(path)
	if err != nil {
		return nil, err
	}
	return geometry.NewTriangleMesh(data.Vertices, data.Faces, m, options)
}

// MeshFromDocument collects the triangle primitives of every mesh in doc.
// Non-triangle primitives and primitives without positions are skipped.
func MeshFromDocument(doc *gltf.Document) (*MeshData, error) {
	data := &MeshData{}
	for _, mesh := range doc.Meshes {
		for i, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			if err := appendPrimitive(doc, prim, data); err != nil {
				return nil, fmt.Errorf("while reading mesh %q primitive %d: %w", mesh.Name, i, err)
			}
		}
	}
	if len(data.Faces) == 0 {
		return nil, fmt.Errorf("document has no triangle primitives")
	}
	return data, nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, data *MeshData) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	positions, err := readPositions(doc, posIdx)
	if err != nil {
		return fmt.Errorf("while reading positions: %w", err)
	}

	base := len(data.Vertices)
	data.Vertices = append(data.Vertices, positions...)

	if prim.Indices == nil {
		for i := 0; i+2 < len(positions); i += 3 {
			data.Faces = append(data.Faces, base+i, base+i+1, base+i+2)
		}
		return nil
	}

	indices, err := readIndices(doc, *prim.Indices)
	if err != nil {
		return fmt.Errorf("while reading indices: %w", err)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		data.Faces = append(data.Faces, base+indices[i], base+indices[i+1], base+indices[i+2])
	}
	return nil
}

// accessorBytes returns the buffer backing an accessor plus its start offset and stride
func accessorBytes(doc *gltf.Document, accessorIdx int, elementSize int) ([]byte, int, int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, 0, 0, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor %d has no buffer view", accessorIdx)
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("buffer %d out of range", view.Buffer)
	}
	buf := doc.Buffers[view.Buffer].Data
	if buf == nil {
		return nil, 0, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	start := view.ByteOffset + accessor.ByteOffset
	stride := view.ByteStride
	if stride == 0 {
		stride = elementSize
	}
	if accessor.Count > 0 {
		end := start + (accessor.Count-1)*stride + elementSize
		if end > len(buf) {
			return nil, 0, 0, fmt.Errorf("accessor %d reads past the end of buffer %d", accessorIdx, view.Buffer)
		}
	}
	return buf, start, stride, nil
}

// readPositions decodes a float VEC3 accessor
func readPositions(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	buf, start, stride, err := accessorBytes(doc, accessorIdx, 12)
	if err != nil {
		return nil, err
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	result := make([]core.Vec3, accessor.Count)
	for i := range result {
		offset := start + i*stride
		result[i] = core.NewVec3(
			float64(readFloat32(buf[offset:])),
			float64(readFloat32(buf[offset+4:])),
			float64(readFloat32(buf[offset+8:])),
		)
	}
	return result, nil
}

// readIndices decodes an unsigned SCALAR accessor
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	buf, start, stride, err := accessorBytes(doc, accessorIdx, size)
	if err != nil {
		return nil, err
	}
	result := make([]int, accessor.Count)
	for i := range result {
		offset := start + i*stride
		switch size {
		case 1:
			result[i] = int(buf[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(buf[offset:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(buf[offset:]))
		}
	}
	return result, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
