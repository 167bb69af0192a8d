package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"pick3d/internal/geom"
)

// EntityID identifies a pickable entity. IDs must be unique within a
// snapshot.
type EntityID uint32

// Entity is one pickable object. World-space triangles, bounds and the
// acceleration tree are baked at construction; changing Transform
// requires rebuilding the entity.
type Entity struct {
	ID        EntityID
	Name      string
	Mesh      *TriangleMesh
	Transform mgl32.Mat4

	worldTris []geom.Triangle
	bvh       *geom.BVHNode
	bounds    geom.AABB
}

// NewEntity bakes mesh into world space under transform.
func NewEntity(id EntityID, name string, mesh *TriangleMesh, transform mgl32.Mat4) Entity {
	tris := make([]geom.Triangle, mesh.TriangleCount())
	for i := range tris {
		tris[i] = mesh.Triangle(i).Transform(transform)
	}
	return Entity{
		ID:        id,
		Name:      name,
		Mesh:      mesh,
		Transform: transform,
		worldTris: tris,
		bvh:       geom.BuildBVH(tris),
		bounds:    geom.BoundsOf(tris),
	}
}

// WorldTriangles returns the baked world-space triangles in mesh order.
func (e *Entity) WorldTriangles() []geom.Triangle { return e.worldTris }

// BVH returns the entity's world-space acceleration tree, nil for an
// empty mesh.
func (e *Entity) BVH() *geom.BVHNode { return e.bvh }

// Bounds returns the world-space bounding box.
func (e *Entity) Bounds() geom.AABB { return e.bounds }

// Snapshot is the set of entities a pick runs against. It is treated
// as immutable once handed to the picking service.
type Snapshot struct {
	Entities []Entity
}

func (s *Snapshot) Add(e Entity) {
	s.Entities = append(s.Entities, e)
}

// TriangleCount sums triangles across all entities.
func (s *Snapshot) TriangleCount() int {
	n := 0
	for i := range s.Entities {
		n += len(s.Entities[i].worldTris)
	}
	return n
}
