package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCubeMesh(t *testing.T) {
	cube := CubeMesh(2)

	if got := cube.TriangleCount(); got != 12 {
		t.Errorf("Expected 12 triangles, got %d", got)
	}
	if got := len(cube.Vertices); got != 8 {
		t.Errorf("Expected 8 vertices, got %d", got)
	}

	// Every vertex sits on the half-edge envelope
	for i, v := range cube.Vertices {
		for axis := 0; axis < 3; axis++ {
			if v[axis] != 1 && v[axis] != -1 {
				t.Errorf("Vertex %d axis %d: expected +/-1, got %f", i, axis, v[axis])
			}
		}
	}
}

func TestMeshFromSoup(t *testing.T) {
	soup := []mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
	}
	m := MeshFromSoup(soup)

	if got := m.TriangleCount(); got != 2 {
		t.Fatalf("Expected 2 triangles, got %d", got)
	}
	tri := m.Triangle(1)
	if tri.V0 != soup[3] || tri.V1 != soup[4] || tri.V2 != soup[5] {
		t.Errorf("Expected second soup triangle, got %v", tri)
	}
}

func TestNewEntityBakesTransform(t *testing.T) {
	mesh := MeshFromIndexed(
		[]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]uint32{0, 1, 2},
	)
	ent := NewEntity(7, "wedge", mesh, mgl32.Translate3D(10, 0, 0))

	tris := ent.WorldTriangles()
	if len(tris) != 1 {
		t.Fatalf("Expected 1 world triangle, got %d", len(tris))
	}
	if tris[0].V0 != (mgl32.Vec3{10, 0, 0}) {
		t.Errorf("Expected baked V0 (10,0,0), got %v", tris[0].V0)
	}

	b := ent.Bounds()
	if b.Min != (mgl32.Vec3{10, 0, 0}) || b.Max != (mgl32.Vec3{11, 1, 0}) {
		t.Errorf("Expected bounds (10,0,0)-(11,1,0), got %v - %v", b.Min, b.Max)
	}
}

func TestEntityBVHCoversMesh(t *testing.T) {
	ent := NewEntity(1, "cube", CubeMesh(2), mgl32.Ident4())

	if ent.BVH() == nil {
		t.Fatal("Expected non-nil BVH for cube entity")
	}
}

func TestSnapshotTriangleCount(t *testing.T) {
	var snap Snapshot
	snap.Add(NewEntity(1, "a", CubeMesh(1), mgl32.Ident4()))
	snap.Add(NewEntity(2, "b", CubeMesh(1), mgl32.Translate3D(5, 0, 0)))

	if got := snap.TriangleCount(); got != 24 {
		t.Errorf("Expected 24 triangles across snapshot, got %d", got)
	}
	if len(snap.Entities) != 2 {
		t.Errorf("Expected 2 entities, got %d", len(snap.Entities))
	}
}
