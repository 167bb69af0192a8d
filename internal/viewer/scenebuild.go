package viewer

import (
	"log"
	"path/filepath"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"pick3d/internal/assets"
	"pick3d/internal/scene"
)

// entityModel pairs a drawable raylib model with its place in the
// world, index-aligned with the snapshot's entities.
type entityModel struct {
	model    rl.Model
	position rl.Vector3
	tint     rl.Color
}

// buildScene assembles the demo snapshot: primitives around the
// origin plus the optional configured mesh file. The raylib models
// draw; the extracted triangle meshes feed the pick pipeline.
func (a *App) buildScene() {
	a.snap = &scene.Snapshot{}
	a.models = nil

	a.addPrimitive(1, "cube", rl.GenMeshCube(2, 2, 2), mgl32.Vec3{0, 1, 0}, colorEntityA)
	a.addPrimitive(2, "sphere", rl.GenMeshSphere(1.2, 16, 16), mgl32.Vec3{4.5, 1.2, 0}, colorEntityB)
	a.addPrimitive(3, "torus", rl.GenMeshTorus(0.3, 2.5, 16, 24), mgl32.Vec3{-4.5, 1, 0}, colorEntityC)
	a.addPrimitive(4, "slab", rl.GenMeshCube(14, 0.4, 10), mgl32.Vec3{0, -0.2, 0}, colorEntityD)

	if a.cfg.MeshPath != "" {
		a.addMeshFile(5, a.cfg.MeshPath, mgl32.Vec3{0, 1, -4})
	}

	log.Printf("Scene ready: %d entities, %d triangles",
		len(a.snap.Entities), a.snap.TriangleCount())
}

func (a *App) addPrimitive(id scene.EntityID, name string, mesh rl.Mesh, at mgl32.Vec3, tint rl.Color) {
	tm := triangleMeshFromRaylib(mesh)
	a.snap.Add(scene.NewEntity(id, name, tm, mgl32.Translate3D(at.X(), at.Y(), at.Z())))
	a.models = append(a.models, entityModel{
		model:    rl.LoadModelFromMesh(mesh),
		position: toRlVec(at),
		tint:     tint,
	})
}

// addMeshFile loads path twice on purpose: raylib keeps the GPU-side
// model for drawing, assets keeps the CPU triangles for picking.
func (a *App) addMeshFile(id scene.EntityID, path string, at mgl32.Vec3) {
	tm, err := assets.LoadMesh(path)
	if err != nil {
		log.Printf("Failed to load mesh %s: %v", path, err)
		return
	}

	a.snap.Add(scene.NewEntity(id, filepath.Base(path), tm, mgl32.Translate3D(at.X(), at.Y(), at.Z())))
	a.models = append(a.models, entityModel{
		model:    rl.LoadModel(path),
		position: toRlVec(at),
		tint:     colorEntityE,
	})
	log.Printf("Loaded %s: %d triangles", path, tm.TriangleCount())
}

// triangleMeshFromRaylib copies a raylib mesh's geometry into a
// pickable triangle mesh.
func triangleMeshFromRaylib(mesh rl.Mesh) *scene.TriangleMesh {
	raw := unsafe.Slice(mesh.Vertices, mesh.VertexCount*3)
	vertices := make([]mgl32.Vec3, mesh.VertexCount)
	for i := range vertices {
		vertices[i] = mgl32.Vec3{raw[i*3+0], raw[i*3+1], raw[i*3+2]}
	}

	if mesh.Indices != nil {
		raw := unsafe.Slice(mesh.Indices, mesh.TriangleCount*3)
		indices := make([]uint32, len(raw))
		for i, v := range raw {
			indices[i] = uint32(v)
		}
		return scene.MeshFromIndexed(vertices, indices)
	}
	return scene.MeshFromSoup(vertices)
}

func (a *App) unloadModels() {
	for _, em := range a.models {
		rl.UnloadModel(em.model)
	}
	a.models = nil
}
