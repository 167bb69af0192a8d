// Package orbit implements a pivot-anchored camera controller with
// quaternion orientation. Rotation happens through small incremental
// quaternions per mouse move; position and orientation are
// renormalized every step so long drags never accumulate scale or
// skew.
package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects how a drag rotates the camera.
type Mode int

const (
	// Constrained yaws about the world up axis and pitches about the
	// camera's local right axis, keeping the horizon level.
	Constrained Mode = iota
	// Free tumbles about an axis perpendicular to both the cursor
	// motion and the view direction, with no up axis preference.
	Free
)

// State is the controller's drag state.
type State int

const (
	Idle State = iota
	Dragging
)

const minOrbitDistance = 1e-6

// Controller orbits a camera around a pivot point. Zero value is not
// usable; construct with New or position with LookAt.
type Controller struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Pivot       mgl32.Vec3
	WorldUp     mgl32.Vec3

	// Sensitivity converts cursor pixels to radians.
	Sensitivity float32
	// MinPitch and MaxPitch bound the angle between WorldUp and the
	// pivot-to-camera direction in Constrained mode.
	MinPitch float32
	MaxPitch float32
	// MinDistance and MaxDistance bound zoom.
	MinDistance float32
	MaxDistance float32
	ZoomSpeed   float32
	PanSpeed    float32

	state        State
	mode         Mode
	dragDistance float32
}

// New returns a controller looking at the origin from 20 units out,
// 30 degrees above the horizon.
func New() *Controller {
	c := &Controller{
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Sensitivity: 0.005,
		MinPitch:    mgl32.DegToRad(1),
		MaxPitch:    mgl32.DegToRad(179),
		MinDistance: 5,
		MaxDistance: 30,
		ZoomSpeed:   50,
		PanSpeed:    0.002,
	}
	dist := float32(20)
	pitch := mgl32.DegToRad(30)
	eye := mgl32.Vec3{0, dist * math32.Sin(pitch), dist * math32.Cos(pitch)}
	c.LookAt(eye, mgl32.Vec3{0, 0, 0}, c.WorldUp)
	return c
}

// LookAt places the camera at eye aiming at pivot. The pivot becomes
// the orbit center.
func (c *Controller) LookAt(eye, pivot, up mgl32.Vec3) {
	c.Position = eye
	c.Pivot = pivot
	c.Orientation = mgl32.QuatLookAtV(eye, pivot, up).Normalize()
}

func (c *Controller) State() State { return c.state }

// Mode returns the rotation mode of the active or most recent drag.
func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Forward() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (c *Controller) Right() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Up returns the camera's local up axis, which tracks the tumble in
// Free mode and stays near WorldUp in Constrained mode.
func (c *Controller) Up() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{0, 1, 0})
}

func (c *Controller) Distance() float32 {
	return c.Position.Sub(c.Pivot).Len()
}

// ViewMatrix builds the world-to-camera transform.
func (c *Controller) ViewMatrix() mgl32.Mat4 {
	p := c.Position
	return c.Orientation.Inverse().Mat4().Mul4(mgl32.Translate3D(-p.X(), -p.Y(), -p.Z()))
}

// BeginDrag enters the Dragging state and captures the current orbit
// distance; every move of this drag renormalizes against it. Calling
// it mid-drag does nothing.
func (c *Controller) BeginDrag(mode Mode) {
	if c.state == Dragging {
		return
	}
	c.state = Dragging
	c.mode = mode
	c.dragDistance = c.Distance()
}

// EndDrag returns to Idle. Position and orientation keep their final
// drag values.
func (c *Controller) EndDrag() {
	c.state = Idle
}

// DragMove rotates the camera around the pivot by a cursor delta in
// pixels, window Y growing downward. Moves while Idle and zero deltas
// do nothing. The camera follows the drag: dragging right orbits the
// camera to its right, dragging up lifts it over the scene.
func (c *Controller) DragMove(dx, dy float32) {
	if c.state != Dragging || (dx == 0 && dy == 0) {
		return
	}

	var incr mgl32.Quat
	switch c.mode {
	case Free:
		move := c.Right().Mul(dx).Add(c.Up().Mul(-dy))
		axis := move.Cross(c.Forward())
		if axis.Len() < 1e-12 {
			return
		}
		angle := math32.Hypot(dx, dy) * c.Sensitivity
		incr = mgl32.QuatRotate(angle, axis.Normalize())
	default:
		incr = c.constrainedIncrement(dx, dy)
	}

	c.applyRotation(incr)
}

// constrainedIncrement composes yaw about WorldUp with pitch about
// the post-yaw right axis. Pitching about the axis the yaw just
// produced keeps that axis level, so the horizon cannot roll no
// matter how long the drag runs.
func (c *Controller) constrainedIncrement(dx, dy float32) mgl32.Quat {
	yaw := mgl32.QuatRotate(dx*c.Sensitivity, c.WorldUp)
	right := yaw.Rotate(c.Right())

	pitch := dy * c.Sensitivity
	offset := c.Position.Sub(c.Pivot)
	if d := offset.Len(); d > minOrbitDistance {
		// Polar angle moves one-to-one with the pitch increment while
		// right stays perpendicular to WorldUp, so clamping the
		// increment clamps the angle exactly.
		theta := math32.Acos(mgl32.Clamp(c.WorldUp.Dot(offset.Mul(1/d)), -1, 1))
		pitch = mgl32.Clamp(pitch, c.MinPitch-theta, c.MaxPitch-theta)
	}

	return mgl32.QuatRotate(pitch, right).Mul(yaw)
}

func (c *Controller) applyRotation(incr mgl32.Quat) {
	offset := c.Position.Sub(c.Pivot)
	if offset.Len() > minOrbitDistance {
		rotated := incr.Rotate(offset)
		c.Position = c.Pivot.Add(rotated.Normalize().Mul(c.dragDistance))
	}
	c.Orientation = incr.Mul(c.Orientation).Normalize()
}

// Zoom moves the camera along the pivot direction. Positive scroll
// zooms in. Works in any state, including mid-drag, where it also
// rebases the drag's captured distance.
func (c *Controller) Zoom(scroll, dt float32) {
	offset := c.Position.Sub(c.Pivot)
	d := offset.Len()

	dir := c.Forward().Mul(-1)
	if d > minOrbitDistance {
		dir = offset.Mul(1 / d)
	}

	next := mgl32.Clamp(d-scroll*dt*c.ZoomSpeed, c.MinDistance, c.MaxDistance)
	c.Position = c.Pivot.Add(dir.Mul(next))
	if c.state == Dragging {
		c.dragDistance = next
	}
}

// Pan slides the pivot and camera together across the view plane.
// The scene follows the cursor, so dragging right moves the camera
// toward its left. Step size scales with orbit distance.
func (c *Controller) Pan(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	step := c.Distance() * c.PanSpeed
	delta := c.Right().Mul(-dx * step).Add(c.Up().Mul(dy * step))
	c.Pivot = c.Pivot.Add(delta)
	c.Position = c.Position.Add(delta)
}
