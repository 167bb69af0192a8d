package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// EmptyAABB returns a box that grows to fit whatever is added to it.
func EmptyAABB() AABB {
	return AABB{
		Min: mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: mgl32.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// Grow expands the box to contain p.
func (b AABB) Grow(p mgl32.Vec3) AABB {
	return AABB{Min: vec3Min(b.Min, p), Max: vec3Max(b.Max, p)}
}

// GrowTriangle expands the box to contain all three triangle vertices.
func (b AABB) GrowTriangle(tr Triangle) AABB {
	return b.Grow(tr.V0).Grow(tr.V1).Grow(tr.V2)
}

// Center returns the box midpoint.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Intersects reports whether two boxes overlap.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X() <= o.Max.X() && b.Max.X() >= o.Min.X() &&
		b.Min.Y() <= o.Max.Y() && b.Max.Y() >= o.Min.Y() &&
		b.Min.Z() <= o.Max.Z() && b.Max.Z() >= o.Min.Z()
}

// BoundsOf returns the AABB enclosing all given triangles.
func BoundsOf(tris []Triangle) AABB {
	bounds := EmptyAABB()
	for _, tr := range tris {
		bounds = bounds.GrowTriangle(tr)
	}
	return bounds
}

// IntersectRay runs the slab test. Returns the entry parameter and whether
// the ray touches the box at all (tmin may be negative when the origin is
// inside).
func (b AABB) IntersectRay(r Ray) (tmin float32, ok bool) {
	tmin = -math32.MaxFloat32
	tmax := float32(math32.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin[axis]
		d := r.Dir[axis]
		if d != 0 {
			t1 := (b.Min[axis] - o) / d
			t2 := (b.Max[axis] - o) / d
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if o < b.Min[axis] || o > b.Max[axis] {
			return 0, false
		}
	}

	if tmin > tmax || tmax < 0 {
		return 0, false
	}
	return tmin, true
}

// BVHNode is a node in a bounding volume hierarchy over a triangle slice.
type BVHNode struct {
	Bounds    AABB
	Left      *BVHNode
	Right     *BVHNode
	Triangles []int // indices into the source slice (leaf nodes only)
}

const (
	bvhLeafSize = 4
	bvhMaxDepth = 20
)

// BuildBVH builds a hierarchy over tris, splitting on the longest axis at
// the mean centroid. Returns nil for an empty slice.
func BuildBVH(tris []Triangle) *BVHNode {
	if len(tris) == 0 {
		return nil
	}
	indices := make([]int, len(tris))
	for i := range indices {
		indices[i] = i
	}
	return buildBVHNode(tris, indices, 0)
}

func buildBVHNode(tris []Triangle, indices []int, depth int) *BVHNode {
	node := &BVHNode{Bounds: EmptyAABB()}
	for _, idx := range indices {
		node.Bounds = node.Bounds.GrowTriangle(tris[idx])
	}

	if len(indices) <= bvhLeafSize || depth > bvhMaxDepth {
		node.Triangles = indices
		return node
	}

	// Split on the longest axis around the mean centroid
	size := node.Bounds.Max.Sub(node.Bounds.Min)
	axis := 0
	if size.Y() > size.X() {
		axis = 1
	}
	if size.Z() > size[axis] {
		axis = 2
	}

	mid := partitionTriangles(tris, indices, axis)
	if mid == 0 || mid == len(indices) {
		// Couldn't split, make leaf
		node.Triangles = indices
		return node
	}

	node.Left = buildBVHNode(tris, indices[:mid], depth+1)
	node.Right = buildBVHNode(tris, indices[mid:], depth+1)
	return node
}

func partitionTriangles(tris []Triangle, indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		center += tris[idx].Centroid()[axis]
	}
	center /= float32(len(indices))

	left := 0
	right := len(indices) - 1
	for left <= right {
		if tris[indices[left]].Centroid()[axis] < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

// QueryRay collects the triangle indices of every leaf whose bounds the ray
// touches. Used as a pre-filter; callers still run the exact triangle test.
func (n *BVHNode) QueryRay(r Ray) []int {
	var out []int
	n.collectRay(r, &out)
	return out
}

// collectRay appends into a caller-owned slice. Leaf index slices share
// one backing array, so appending onto them directly would clobber
// sibling leaves.
func (n *BVHNode) collectRay(r Ray, out *[]int) {
	if n == nil {
		return
	}
	if _, ok := n.Bounds.IntersectRay(r); !ok {
		return
	}
	if n.Triangles != nil {
		*out = append(*out, n.Triangles...)
		return
	}
	n.Left.collectRay(r, out)
	n.Right.collectRay(r, out)
}

func vec3Min(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		math32.Min(a.X(), b.X()),
		math32.Min(a.Y(), b.Y()),
		math32.Min(a.Z(), b.Z()),
	}
}

func vec3Max(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		math32.Max(a.X(), b.X()),
		math32.Max(a.Y(), b.Y()),
		math32.Max(a.Z(), b.Z()),
	}
}
