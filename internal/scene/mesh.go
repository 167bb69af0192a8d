// Package scene describes pickable geometry. Entities bake their mesh
// into world space once at construction so the per-frame pick path
// never re-transforms vertices.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"pick3d/internal/geom"
)

// TriangleMesh is an indexed triangle list in model space.
type TriangleMesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

// MeshFromIndexed wraps shared vertices and a triangle index list.
func MeshFromIndexed(vertices []mgl32.Vec3, indices []uint32) *TriangleMesh {
	return &TriangleMesh{Vertices: vertices, Indices: indices}
}

// MeshFromSoup builds a mesh from raw triangle soup, three vertices
// per triangle in order.
func MeshFromSoup(vertices []mgl32.Vec3) *TriangleMesh {
	indices := make([]uint32, len(vertices))
	for i := range indices {
		indices[i] = uint32(i)
	}
	return &TriangleMesh{Vertices: vertices, Indices: indices}
}

func (m *TriangleMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the i-th triangle in model space.
func (m *TriangleMesh) Triangle(i int) geom.Triangle {
	return geom.Triangle{
		V0: m.Vertices[m.Indices[i*3]],
		V1: m.Vertices[m.Indices[i*3+1]],
		V2: m.Vertices[m.Indices[i*3+2]],
	}
}

// CubeMesh builds an axis-aligned cube centered at the origin.
func CubeMesh(edge float32) *TriangleMesh {
	h := edge / 2
	vertices := []mgl32.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	indices := []uint32{
		4, 5, 6, 4, 6, 7, // front
		1, 0, 3, 1, 3, 2, // back
		0, 4, 7, 0, 7, 3, // left
		5, 1, 2, 5, 2, 6, // right
		7, 6, 2, 7, 2, 3, // top
		0, 1, 5, 0, 5, 4, // bottom
	}
	return &TriangleMesh{Vertices: vertices, Indices: indices}
}
