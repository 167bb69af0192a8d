// Package assets loads triangle meshes from glTF and OBJ files,
// caching them by path.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/sheenobu/go-obj/obj"

	"pick3d/internal/scene"
)

var manager *Manager

type Manager struct {
	meshes map[string]*scene.TriangleMesh
}

func Init() {
	manager = &Manager{
		meshes: make(map[string]*scene.TriangleMesh),
	}
}

// LoadMesh loads the mesh at path, dispatching on the file extension.
// Supported formats: .gltf, .glb and .obj. Repeated loads of the same
// path return the cached mesh.
func LoadMesh(path string) (*scene.TriangleMesh, error) {
	if manager == nil {
		Init()
	}

	if mesh, exists := manager.meshes[path]; exists {
		return mesh, nil
	}

	var mesh *scene.TriangleMesh
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		mesh, err = loadGLTF(path)
	case ".obj":
		mesh, err = loadOBJ(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	manager.meshes[path] = mesh
	return mesh, nil
}

// loadGLTF flattens every triangle primitive in the document into one
// indexed mesh.
func loadGLTF(path string) (*scene.TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gltf %s: %w", path, err)
	}

	var vertices []mgl32.Vec3
	var indices []uint32
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("failed to read positions: %w", err)
			}

			base := uint32(len(vertices))
			for _, p := range positions {
				vertices = append(vertices, mgl32.Vec3{p[0], p[1], p[2]})
			}

			if prim.Indices != nil {
				idx, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("failed to read indices: %w", err)
				}
				for _, i := range idx {
					indices = append(indices, base+i)
				}
			} else {
				for i := range positions {
					indices = append(indices, base+uint32(i))
				}
			}
		}
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("gltf %s holds no triangles", path)
	}
	return scene.MeshFromIndexed(vertices, indices), nil
}

// loadOBJ reads a Wavefront file, fan-triangulating any polygon
// faces.
func loadOBJ(path string) (*scene.TriangleMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open obj %s: %w", path, err)
	}
	defer f.Close()

	object, err := obj.NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to parse obj %s: %w", path, err)
	}

	var soup []mgl32.Vec3
	for _, face := range object.Faces {
		if len(face.Points) < 3 {
			continue
		}
		for i := 2; i < len(face.Points); i++ {
			for _, pt := range []*obj.Point{face.Points[0], face.Points[i-1], face.Points[i]} {
				v := pt.Vertex
				soup = append(soup, mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)})
			}
		}
	}
	if len(soup) == 0 {
		return nil, fmt.Errorf("obj %s holds no faces", path)
	}
	return scene.MeshFromSoup(soup), nil
}
