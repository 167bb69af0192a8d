package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

func writeTempOBJ(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOBJFanTriangulates(t *testing.T) {
	mesh, err := LoadMesh(writeTempOBJ(t))
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}

	if got := mesh.TriangleCount(); got != 2 {
		t.Fatalf("Expected quad to triangulate into 2 triangles, got %d", got)
	}

	tri := mesh.Triangle(1)
	if tri.V0 != (mgl32.Vec3{0, 0, 0}) || tri.V1 != (mgl32.Vec3{1, 1, 0}) || tri.V2 != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Expected fan triangle (0,0,0)(1,1,0)(0,1,0), got %v", tri)
	}
}

func TestLoadGLTFRoundTrip(t *testing.T) {
	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{
		{0, 0, 0}, {2, 0, 0}, {0, 2, 0},
	})
	indices := modeler.WriteIndices(doc, []uint32{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: map[string]int{gltf.POSITION: positions},
		}},
	}}

	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	mesh, err := LoadMesh(path)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if got := mesh.TriangleCount(); got != 1 {
		t.Fatalf("Expected 1 triangle, got %d", got)
	}
	tri := mesh.Triangle(0)
	if tri.V1 != (mgl32.Vec3{2, 0, 0}) {
		t.Errorf("Expected V1 (2,0,0), got %v", tri.V1)
	}
}

func TestLoadMeshUnknownExtension(t *testing.T) {
	if _, err := LoadMesh("model.stl"); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestLoadMeshMissingFile(t *testing.T) {
	if _, err := LoadMesh(filepath.Join(t.TempDir(), "gone.obj")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadMeshCachesByPath(t *testing.T) {
	path := writeTempOBJ(t)

	first, err := LoadMesh(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := LoadMesh(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Expected repeated loads to return the cached mesh")
	}
}
