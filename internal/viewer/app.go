// Package viewer is the interactive demo: an orbit camera over a
// small scene with cursor picking on every frame, plus the optional
// GPU hover path when a compute device is available.
package viewer

import (
	"log"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"pick3d/internal/compute"
	"pick3d/internal/config"
	"pick3d/internal/geom"
	"pick3d/internal/orbit"
	"pick3d/internal/picking"
	"pick3d/internal/scene"
)

const (
	cameraFovY = 45
	cameraNear = 0.1
	cameraFar  = 1000
)

type App struct {
	cfg     config.Config
	cfgPath string

	ctrl *orbit.Controller
	svc  *picking.Service
	snap *scene.Snapshot

	models []entityModel

	picker  *compute.Picker
	gpuInfo compute.AdapterInfo

	// Camera state of the current frame, shared by pick and draw
	view mgl32.Mat4
	proj mgl32.Mat4
	vp   picking.Viewport

	hoverFrames int
	visible     int
	showPanel   bool
}

func New(cfg config.Config, cfgPath string) *App {
	ctrl := orbit.New()
	ctrl.Sensitivity = cfg.Camera.Sensitivity
	ctrl.MinDistance = cfg.Camera.MinDistance
	ctrl.MaxDistance = cfg.Camera.MaxDistance
	ctrl.ZoomSpeed = cfg.Camera.ZoomSpeed
	ctrl.PanSpeed = cfg.Camera.PanSpeed
	// Config pitch counts degrees above the horizon, the controller
	// clamps the angle measured from WorldUp
	ctrl.MinPitch = mgl32.DegToRad(90 - cfg.Camera.MaxPitch)
	ctrl.MaxPitch = mgl32.DegToRad(90 - cfg.Camera.MinPitch)

	pitch := mgl32.DegToRad(cfg.Camera.Pitch)
	eye := mgl32.Vec3{0, cfg.Camera.Distance * math32.Sin(pitch), cfg.Camera.Distance * math32.Cos(pitch)}
	ctrl.LookAt(eye, mgl32.Vec3{0, 0, 0}, ctrl.WorldUp)

	svc := picking.NewService()
	svc.MaxDistance = cfg.Picking.MaxDistance

	return &App{
		cfg:       cfg,
		cfgPath:   cfgPath,
		ctrl:      ctrl,
		svc:       svc,
		showPanel: true,
	}
}

func (a *App) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(a.cfg.Window.Width, a.cfg.Window.Height, "pick3d viewer")
	defer rl.CloseWindow()

	rl.SetTargetFPS(a.cfg.Window.TargetFPS)
	initRayguiStyle()

	a.buildScene()
	defer a.unloadModels()

	if a.cfg.Picking.UseGPU {
		a.initGPUPicker()
	}
	if a.picker != nil {
		defer a.picker.Release()
	}

	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}

	a.saveConfig()
}

func (a *App) initGPUPicker() {
	info, err := compute.Initialize()
	if err != nil {
		log.Printf("GPU compute unavailable, hover disabled: %v", err)
		return
	}

	picker, err := compute.NewPicker(uint32(a.snap.TriangleCount()))
	if err != nil {
		log.Printf("Failed to build GPU picker: %v", err)
		return
	}
	if err := picker.SetScene(a.snap); err != nil {
		log.Printf("Failed to upload scene to GPU: %v", err)
		picker.Release()
		return
	}

	a.picker = picker
	a.gpuInfo = info
	log.Printf("GPU hover backend: %s (%s)", info.Name, info.Backend)
}

func (a *App) Update() {
	dt := rl.GetFrameTime()
	mouse := rl.GetMousePosition()
	delta := rl.GetMouseDelta()

	// Middle mouse orbits, Shift+middle tumbles, Alt+middle pans
	if rl.IsMouseButtonPressed(rl.MouseMiddleButton) && !rl.IsKeyDown(rl.KeyLeftAlt) {
		// Orbit around what the cursor grabbed; with no hit recorded
		// yet the existing pivot stands.
		if hit, ok := a.svc.CurrentHit(); ok {
			a.ctrl.Pivot = hit.Point
		} else if last, ok := a.svc.LastHit(); ok {
			a.ctrl.Pivot = last.Point
		}
		if rl.IsKeyDown(rl.KeyLeftShift) {
			a.ctrl.BeginDrag(orbit.Free)
		} else {
			a.ctrl.BeginDrag(orbit.Constrained)
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseMiddleButton) {
		a.ctrl.EndDrag()
	}
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) && rl.IsKeyDown(rl.KeyLeftAlt) {
		a.ctrl.Pan(delta.X, delta.Y)
	} else {
		a.ctrl.DragMove(delta.X, delta.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.ctrl.Zoom(wheel, dt)
	}

	a.vp = picking.Viewport{
		Width:  float32(rl.GetScreenWidth()),
		Height: float32(rl.GetScreenHeight()),
	}
	a.view = a.ctrl.ViewMatrix()
	a.proj = mgl32.Perspective(mgl32.DegToRad(cameraFovY), a.vp.Width/a.vp.Height, cameraNear, cameraFar)

	if _, _, err := a.svc.Update(mouse.X, mouse.Y, a.vp, a.view, a.proj, a.snap); err != nil {
		log.Printf("Pick failed: %v", err)
	}

	if a.cfg.Picking.UseGPU && a.picker != nil {
		a.updateHover(mouse)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		a.showPanel = !a.showPanel
	}
}

// updateHover drains the GPU picker and feeds it the next stamped
// ray. One request rides at a time; results apply through the
// service's generation gate so stale answers never surface.
func (a *App) updateHover(mouse rl.Vector2) {
	res, ok, err := a.picker.Poll()
	if err != nil {
		log.Printf("GPU hover read failed: %v", err)
		return
	}
	if ok {
		a.svc.ApplyHover(res)
	}

	a.hoverFrames++
	if a.picker.Pending() || a.hoverFrames < a.cfg.Picking.HoverInterval {
		return
	}
	a.hoverFrames = 0

	rc := picking.RayCaster{View: a.view, Proj: a.proj, Viewport: a.vp}
	ray, err := rc.Cast(mouse.X, mouse.Y)
	if err != nil {
		return
	}
	if err := a.picker.Submit(a.svc.NextHoverRequest(ray)); err != nil {
		log.Printf("GPU hover submit failed: %v", err)
	}
}

func (a *App) Draw() {
	// Target sits one unit down the forward axis so the raylib camera
	// agrees with ViewMatrix even when the pivot is off to the side.
	camera := rl.Camera3D{
		Position:   toRlVec(a.ctrl.Position),
		Target:     toRlVec(a.ctrl.Position.Add(a.ctrl.Forward())),
		Up:         toRlVec(a.ctrl.Up()),
		Fovy:       cameraFovY,
		Projection: rl.CameraPerspective,
	}

	current, currentOK := a.svc.CurrentHit()
	hover, hoverOK := a.svc.Hover()
	frustum := geom.ExtractFrustum(a.proj.Mul4(a.view))

	rl.BeginDrawing()
	rl.ClearBackground(colorBgDark)

	rl.BeginMode3D(camera)
	rl.DrawGrid(24, 1)

	a.visible = 0
	for i := range a.snap.Entities {
		ent := &a.snap.Entities[i]
		if !frustum.ContainsAABB(ent.Bounds()) {
			continue
		}
		a.visible++

		tint := a.models[i].tint
		if currentOK && current.Entity == ent.ID {
			tint = colorPicked
		} else if hoverOK && hover == ent.ID {
			tint = colorHover
		}
		rl.DrawModel(a.models[i].model, a.models[i].position, 1, tint)
	}

	if currentOK {
		rl.DrawSphere(toRlVec(current.Point), 0.1, colorHitMarker)
	} else if last, ok := a.svc.LastHit(); ok {
		rl.DrawSphereWires(toRlVec(last.Point), 0.1, 6, 6, colorLastMarker)
	}
	rl.EndMode3D()

	a.drawPanel()
	rl.EndDrawing()
}

// saveConfig persists window and camera state for the next session.
func (a *App) saveConfig() {
	a.cfg.Window.Width = int32(rl.GetScreenWidth())
	a.cfg.Window.Height = int32(rl.GetScreenHeight())
	a.cfg.Camera.Distance = a.ctrl.Distance()
	a.cfg.Camera.Sensitivity = a.ctrl.Sensitivity
	a.cfg.Picking.MaxDistance = a.svc.MaxDistance

	dir := a.ctrl.Position.Sub(a.ctrl.Pivot).Normalize()
	polar := math32.Acos(mgl32.Clamp(a.ctrl.WorldUp.Dot(dir), -1, 1))
	a.cfg.Camera.Pitch = 90 - mgl32.RadToDeg(polar)

	if err := a.cfg.Save(a.cfgPath); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

func toRlVec(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}
