package geom

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAABBIntersectRay(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	r := NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	dist, ok := box.IntersectRay(r)
	if !ok {
		t.Fatal("Expected hit on box straight ahead")
	}
	if !almostEqual(dist, 4, 1e-5) {
		t.Errorf("Expected entry distance 4, got %f", dist)
	}

	// Ray aimed away from the box
	r = NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1})
	if _, ok := box.IntersectRay(r); ok {
		t.Error("Expected miss for ray pointing away")
	}

	// Ray offset past the box edge
	r = NewRay(mgl32.Vec3{5, 0, 5}, mgl32.Vec3{0, 0, -1})
	if _, ok := box.IntersectRay(r); ok {
		t.Error("Expected miss for offset ray")
	}
}

func TestAABBIntersectRayFromInside(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})

	if _, ok := box.IntersectRay(r); !ok {
		t.Error("Expected hit when ray origin is inside the box")
	}
}

func TestAABBGrow(t *testing.T) {
	box := EmptyAABB()
	box = box.Grow(mgl32.Vec3{1, 2, 3})
	box = box.Grow(mgl32.Vec3{-1, 0, 5})

	if !vec3AlmostEqual(box.Min, mgl32.Vec3{-1, 0, 3}, 1e-6) {
		t.Errorf("Expected min (-1,0,3), got %v", box.Min)
	}
	if !vec3AlmostEqual(box.Max, mgl32.Vec3{1, 2, 5}, 1e-6) {
		t.Errorf("Expected max (1,2,5), got %v", box.Max)
	}
}

func TestAABBIntersects(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{2, 2, 2}}
	b := AABB{Min: mgl32.Vec3{1, 1, 1}, Max: mgl32.Vec3{3, 3, 3}}
	c := AABB{Min: mgl32.Vec3{5, 5, 5}, Max: mgl32.Vec3{6, 6, 6}}

	if !a.Intersects(b) {
		t.Error("Expected overlapping boxes to intersect")
	}
	if a.Intersects(c) {
		t.Error("Expected disjoint boxes not to intersect")
	}
}

func randomTriangle(rng *rand.Rand) Triangle {
	p := func() mgl32.Vec3 {
		return mgl32.Vec3{
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
		}
	}
	base := p()
	return Triangle{
		V0: base,
		V1: base.Add(mgl32.Vec3{rng.Float32() + 0.1, rng.Float32(), rng.Float32()}),
		V2: base.Add(mgl32.Vec3{rng.Float32(), rng.Float32() + 0.1, rng.Float32()}),
	}
}

// The BVH query may return extra candidates but must never drop a
// triangle the ray actually hits.
func TestBVHQueryNeverMissesHits(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	tris := make([]Triangle, 200)
	for i := range tris {
		tris[i] = randomTriangle(rng)
	}
	bvh := BuildBVH(tris)
	if bvh == nil {
		t.Fatal("Expected non-nil BVH root")
	}

	for n := 0; n < 100; n++ {
		origin := mgl32.Vec3{rng.Float32()*30 - 15, rng.Float32()*30 - 15, 25}
		dir := mgl32.Vec3{rng.Float32() - 0.5, rng.Float32() - 0.5, -1}
		r := NewRay(origin, dir)

		candidates := bvh.QueryRay(r)
		inCandidates := make(map[int]bool, len(candidates))
		for _, idx := range candidates {
			inCandidates[idx] = true
		}

		for i, tri := range tris {
			if _, ok := tri.IntersectRay(r); ok && !inCandidates[i] {
				t.Fatalf("Ray %d hits triangle %d but BVH query omitted it", n, i)
			}
		}
	}
}

func TestBVHLeafHoldsAllTriangles(t *testing.T) {
	tris := []Triangle{
		{V0: mgl32.Vec3{0, 0, 0}, V1: mgl32.Vec3{1, 0, 0}, V2: mgl32.Vec3{0, 1, 0}},
		{V0: mgl32.Vec3{2, 0, 0}, V1: mgl32.Vec3{3, 0, 0}, V2: mgl32.Vec3{2, 1, 0}},
	}
	bvh := BuildBVH(tris)

	if len(bvh.Triangles) != 2 {
		t.Errorf("Expected a single leaf with 2 triangles, got %d", len(bvh.Triangles))
	}

	// A ray through both triangles' bounds returns both indices
	r := NewRay(mgl32.Vec3{1.5, 0.5, 5}, mgl32.Vec3{0, 0, -1})
	got := bvh.QueryRay(r)
	sort.Ints(got)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("Expected candidates [0 1], got %v", got)
	}
}

func TestBuildBVHEmpty(t *testing.T) {
	if bvh := BuildBVH(nil); bvh != nil {
		t.Error("Expected nil BVH for empty triangle list")
	}
}

func TestBoundsOf(t *testing.T) {
	tris := []Triangle{
		{V0: mgl32.Vec3{-2, 0, 0}, V1: mgl32.Vec3{0, 3, 0}, V2: mgl32.Vec3{0, 0, 1}},
		{V0: mgl32.Vec3{5, 0, 0}, V1: mgl32.Vec3{0, -1, 0}, V2: mgl32.Vec3{0, 0, -4}},
	}
	b := BoundsOf(tris)

	if !vec3AlmostEqual(b.Min, mgl32.Vec3{-2, -1, -4}, 1e-6) {
		t.Errorf("Expected min (-2,-1,-4), got %v", b.Min)
	}
	if !vec3AlmostEqual(b.Max, mgl32.Vec3{5, 3, 1}, 1e-6) {
		t.Errorf("Expected max (5,3,1), got %v", b.Max)
	}
}
