package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon below which a ray-triangle determinant counts as parallel and a
// hit parameter counts as self-intersection at the origin.
const intersectEpsilon = 1e-7

// Triangle is three vertex positions in a single space (local or world).
type Triangle struct {
	V0, V1, V2 mgl32.Vec3
}

// Normal returns the (unnormalized) face normal. Zero for degenerate
// triangles.
func (tr Triangle) Normal() mgl32.Vec3 {
	return tr.V1.Sub(tr.V0).Cross(tr.V2.Sub(tr.V0))
}

// Centroid returns the triangle center, used for spatial partitioning.
func (tr Triangle) Centroid() mgl32.Vec3 {
	return tr.V0.Add(tr.V1).Add(tr.V2).Mul(1.0 / 3.0)
}

// Degenerate reports whether the triangle has near-zero area (coincident or
// collinear vertices). Degenerate triangles never intersect a ray.
func (tr Triangle) Degenerate() bool {
	n := tr.Normal()
	return n.Dot(n) < intersectEpsilon*intersectEpsilon
}

// IntersectRay runs the Moller-Trumbore test and returns the hit parameter
// along the ray. Misses, hits behind the origin (t below epsilon) and
// degenerate triangles all report ok=false. A degenerate triangle makes the
// determinant vanish, so it is rejected by the parallel check without a
// separate area test.
func (tr Triangle) IntersectRay(r Ray) (t float32, ok bool) {
	edge1 := tr.V1.Sub(tr.V0)
	edge2 := tr.V2.Sub(tr.V0)

	p := r.Dir.Cross(edge2)
	det := edge1.Dot(p)
	if math32.Abs(det) < intersectEpsilon {
		return 0, false
	}
	invDet := 1.0 / det

	s := r.Origin.Sub(tr.V0)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = edge2.Dot(q) * invDet
	if t < intersectEpsilon {
		return 0, false
	}
	return t, true
}

// Transform returns the triangle with each vertex transformed by m.
func (tr Triangle) Transform(m mgl32.Mat4) Triangle {
	return Triangle{
		V0: mgl32.TransformCoordinate(tr.V0, m),
		V1: mgl32.TransformCoordinate(tr.V1, m),
		V2: mgl32.TransformCoordinate(tr.V2, m),
	}
}
