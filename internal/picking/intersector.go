package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"pick3d/internal/geom"
	"pick3d/internal/scene"
)

// Hit describes the nearest triangle struck by a ray.
type Hit struct {
	Entity   scene.EntityID
	Triangle int
	Distance float32
	Point    mgl32.Vec3
}

// Intersect scans the entities and returns the nearest hit along the
// ray. Exact distance ties resolve to the lowest entity id, then the
// lowest triangle index, so repeated casts always agree.
func Intersect(r geom.Ray, entities []scene.Entity) (Hit, bool) {
	return IntersectWithin(r, entities, math32.MaxFloat32)
}

// IntersectWithin is Intersect restricted to hits no farther than
// maxDistance.
func IntersectWithin(r geom.Ray, entities []scene.Entity, maxDistance float32) (Hit, bool) {
	var best Hit
	found := false

	for ei := range entities {
		ent := &entities[ei]
		tris := ent.WorldTriangles()
		for _, ti := range candidateTriangles(ent, r) {
			dist, ok := tris[ti].IntersectRay(r)
			if !ok || dist > maxDistance {
				continue
			}
			if !found || betterHit(dist, ent.ID, ti, best) {
				best = Hit{
					Entity:   ent.ID,
					Triangle: ti,
					Distance: dist,
					Point:    r.At(dist),
				}
				found = true
			}
		}
	}
	return best, found
}

// candidateTriangles narrows the triangle set through the entity's
// BVH. The tree query may return extra indices but never drops one
// the ray hits, so the scan below stays exact.
func candidateTriangles(ent *scene.Entity, r geom.Ray) []int {
	if bvh := ent.BVH(); bvh != nil {
		return bvh.QueryRay(r)
	}
	indices := make([]int, len(ent.WorldTriangles()))
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func betterHit(dist float32, id scene.EntityID, tri int, best Hit) bool {
	if dist != best.Distance {
		return dist < best.Distance
	}
	if id != best.Entity {
		return id < best.Entity
	}
	return tri < best.Triangle
}
