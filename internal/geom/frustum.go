package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Frustum is the 6 planes of a view frustum, used to cull entities
// that cannot be visible.
type Frustum struct {
	planes [6]plane // left, right, bottom, top, near, far
}

// plane is ax + by + cz + d = 0 with a unit normal.
type plane struct {
	normal   mgl32.Vec3
	distance float32
}

// ExtractFrustum extracts the frustum planes from a combined
// view-projection matrix using the Gribb/Hartmann method. Any camera
// representation that can produce the matrix works.
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	row0 := viewProj.Row(0)
	row1 := viewProj.Row(1)
	row2 := viewProj.Row(2)
	row3 := viewProj.Row(3)

	var f Frustum
	f.planes[0] = normalizePlane(row3.Add(row0)) // left
	f.planes[1] = normalizePlane(row3.Sub(row0)) // right
	f.planes[2] = normalizePlane(row3.Add(row1)) // bottom
	f.planes[3] = normalizePlane(row3.Sub(row1)) // top
	f.planes[4] = normalizePlane(row3.Add(row2)) // near
	f.planes[5] = normalizePlane(row3.Sub(row2)) // far
	return f
}

func normalizePlane(v mgl32.Vec4) plane {
	n := v.Vec3()
	length := n.Len()
	if length == 0 {
		return plane{normal: n, distance: v.W()}
	}
	return plane{normal: n.Mul(1.0 / length), distance: v.W() / length}
}

// ContainsSphere reports whether a sphere is inside or intersects the
// frustum.
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for i := 0; i < 6; i++ {
		dist := f.planes[i].normal.Dot(center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether a point is inside the frustum.
func (f *Frustum) ContainsPoint(point mgl32.Vec3) bool {
	for i := 0; i < 6; i++ {
		dist := f.planes[i].normal.Dot(point) + f.planes[i].distance
		if dist < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB is a conservative test using the box's bounding sphere. It
// may report true for a box slightly outside, never false for one inside.
func (f *Frustum) ContainsAABB(b AABB) bool {
	center := b.Center()
	radius := b.Max.Sub(center).Len()
	return f.ContainsSphere(center, radius)
}
