// Package picking turns cursor positions into world-space rays and
// resolves them against scene snapshots. Results are deterministic:
// the same cursor, camera and snapshot always produce the same hit.
package picking

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"pick3d/internal/geom"
)

// ErrInvalidViewport reports a viewport with a non-positive dimension.
// It is the only error the pick path returns.
var ErrInvalidViewport = errors.New("picking: viewport dimensions must be positive")

// Viewport is the render target size in pixels.
type Viewport struct {
	Width  float32
	Height float32
}

// RayCaster unprojects cursor positions through a camera. Cursor
// coordinates are in pixels with the origin at the top-left corner,
// matching window mouse coordinates.
type RayCaster struct {
	View     mgl32.Mat4
	Proj     mgl32.Mat4
	Viewport Viewport
}

// Cast builds the world-space ray under the cursor. The ray origin
// lies on the near plane and the direction points toward the far
// plane, so every hit along it is in front of the camera.
func (rc RayCaster) Cast(cursorX, cursorY float32) (geom.Ray, error) {
	if rc.Viewport.Width <= 0 || rc.Viewport.Height <= 0 {
		return geom.Ray{}, ErrInvalidViewport
	}

	// Window Y grows downward, NDC Y grows upward
	ndcX := 2*cursorX/rc.Viewport.Width - 1
	ndcY := 1 - 2*cursorY/rc.Viewport.Height

	inv := rc.Proj.Mul4(rc.View).Inv()
	near := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, -1}, inv)
	far := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, 1}, inv)

	return geom.NewRay(near, far.Sub(near)), nil
}
