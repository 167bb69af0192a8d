package geom

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func almostEqual(a, b, tolerance float32) bool {
	return math32.Abs(a-b) <= tolerance
}

func vec3AlmostEqual(a, b mgl32.Vec3, tolerance float32) bool {
	return a.Sub(b).Len() <= tolerance
}

func TestRayAt(t *testing.T) {
	r := NewRay(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 2})

	if !vec3AlmostEqual(r.Dir, mgl32.Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("Expected normalized direction (0,0,1), got %v", r.Dir)
	}

	p := r.At(5)
	if !vec3AlmostEqual(p, mgl32.Vec3{1, 2, 8}, 1e-6) {
		t.Errorf("Expected point (1,2,8), got %v", p)
	}
}

func TestTriangleIntersectRayHit(t *testing.T) {
	tri := Triangle{
		V0: mgl32.Vec3{-1, -1, -5},
		V1: mgl32.Vec3{1, -1, -5},
		V2: mgl32.Vec3{0, 1, -5},
	}
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})

	dist, ok := tri.IntersectRay(r)
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	if !almostEqual(dist, 5, 1e-5) {
		t.Errorf("Expected t=5, got %f", dist)
	}

	point := r.At(dist)
	if !vec3AlmostEqual(point, mgl32.Vec3{0, 0, -5}, 1e-5) {
		t.Errorf("Expected hit point (0,0,-5), got %v", point)
	}
}

func TestTriangleIntersectRayMiss(t *testing.T) {
	tri := Triangle{
		V0: mgl32.Vec3{-1, -1, -5},
		V1: mgl32.Vec3{1, -1, -5},
		V2: mgl32.Vec3{0, 1, -5},
	}
	// Ray passes well outside the triangle
	r := NewRay(mgl32.Vec3{10, 10, 0}, mgl32.Vec3{0, 0, -1})

	if _, ok := tri.IntersectRay(r); ok {
		t.Error("Expected miss for ray outside the triangle")
	}
}

func TestTriangleIntersectRayBehindOrigin(t *testing.T) {
	tri := Triangle{
		V0: mgl32.Vec3{-1, -1, 5},
		V1: mgl32.Vec3{1, -1, 5},
		V2: mgl32.Vec3{0, 1, 5},
	}
	// Triangle sits behind the ray origin
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})

	if _, ok := tri.IntersectRay(r); ok {
		t.Error("Expected no hit for triangle behind the ray origin")
	}
}

func TestTriangleIntersectRayParallel(t *testing.T) {
	tri := Triangle{
		V0: mgl32.Vec3{-1, 0, -5},
		V1: mgl32.Vec3{1, 0, -5},
		V2: mgl32.Vec3{0, 0, -7},
	}
	// Ray runs in the triangle's plane
	r := NewRay(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0})

	if _, ok := tri.IntersectRay(r); ok {
		t.Error("Expected no hit for ray parallel to triangle plane")
	}
}

func TestDegenerateTriangleNeverHits(t *testing.T) {
	cases := []struct {
		name string
		tri  Triangle
	}{
		{"coincident vertices", Triangle{
			V0: mgl32.Vec3{0, 0, -5},
			V1: mgl32.Vec3{0, 0, -5},
			V2: mgl32.Vec3{1, 1, -5},
		}},
		{"collinear vertices", Triangle{
			V0: mgl32.Vec3{-1, 0, -5},
			V1: mgl32.Vec3{0, 0, -5},
			V2: mgl32.Vec3{1, 0, -5},
		}},
	}

	for _, tc := range cases {
		if !tc.tri.Degenerate() {
			t.Errorf("%s: expected Degenerate() to be true", tc.name)
		}
		// Fire rays from several directions, none may hit
		rays := []Ray{
			NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}),
			NewRay(mgl32.Vec3{0, 5, -5}, mgl32.Vec3{0, -1, 0}),
			NewRay(mgl32.Vec3{-5, 0.5, -5}, mgl32.Vec3{1, 0, 0}),
		}
		for _, r := range rays {
			if _, ok := tc.tri.IntersectRay(r); ok {
				t.Errorf("%s: degenerate triangle produced a hit", tc.name)
			}
		}
	}
}

func TestTriangleTransform(t *testing.T) {
	tri := Triangle{
		V0: mgl32.Vec3{0, 0, 0},
		V1: mgl32.Vec3{1, 0, 0},
		V2: mgl32.Vec3{0, 1, 0},
	}
	m := mgl32.Translate3D(10, 0, -2)

	moved := tri.Transform(m)
	if !vec3AlmostEqual(moved.V0, mgl32.Vec3{10, 0, -2}, 1e-6) {
		t.Errorf("Expected V0 (10,0,-2), got %v", moved.V0)
	}
	if !vec3AlmostEqual(moved.V2, mgl32.Vec3{10, 1, -2}, 1e-6) {
		t.Errorf("Expected V2 (10,1,-2), got %v", moved.V2)
	}
}

func TestTriangleNormalAndCentroid(t *testing.T) {
	tri := Triangle{
		V0: mgl32.Vec3{0, 0, 0},
		V1: mgl32.Vec3{2, 0, 0},
		V2: mgl32.Vec3{0, 2, 0},
	}

	n := tri.Normal().Normalize()
	if !vec3AlmostEqual(n, mgl32.Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("Expected normal (0,0,1), got %v", n)
	}

	c := tri.Centroid()
	want := mgl32.Vec3{2.0 / 3.0, 2.0 / 3.0, 0}
	if !vec3AlmostEqual(c, want, 1e-6) {
		t.Errorf("Expected centroid %v, got %v", want, c)
	}
}

func BenchmarkTriangleIntersectRay(b *testing.B) {
	tri := Triangle{
		V0: mgl32.Vec3{-1, -1, -5},
		V1: mgl32.Vec3{1, -1, -5},
		V2: mgl32.Vec3{0, 1, -5},
	}
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.01, 0.01, -1})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tri.IntersectRay(r)
	}
}
