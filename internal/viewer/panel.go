package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"pick3d/internal/scene"
)

// Theme colors - indigo dark theme, shared by the raygui controls
// and the custom overlay drawing.
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255) // Clear color
	colorBgPanel   = rl.NewColor(18, 18, 24, 245) // Panel background
	colorBgElement = rl.NewColor(28, 28, 38, 255) // Sliders, buttons
	colorBgHover   = rl.NewColor(38, 38, 52, 255) // Hover state

	colorAccent      = rl.NewColor(108, 99, 255, 255)  // Primary indigo
	colorAccentLight = rl.NewColor(167, 139, 250, 255) // Light purple

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)

	colorBorder = rl.NewColor(50, 50, 65, 255)

	// Entity tints and pick highlights
	colorEntityA = rl.NewColor(102, 191, 255, 255) // Sky blue
	colorEntityB = rl.NewColor(211, 176, 131, 255) // Beige
	colorEntityC = rl.NewColor(0, 228, 48, 255)    // Green
	colorEntityD = rl.NewColor(160, 160, 170, 255) // Slab gray
	colorEntityE = rl.NewColor(255, 161, 0, 255)   // Loaded mesh

	colorPicked     = rl.NewColor(255, 109, 194, 255) // Selected entity
	colorHover      = rl.NewColor(255, 203, 0, 255)   // Hovered entity
	colorHitMarker  = rl.NewColor(230, 41, 55, 255)   // Hit point sphere
	colorLastMarker = rl.NewColor(230, 41, 55, 140)   // Retained hit wires
)

const (
	panelWidth = 250
	panelPad   = 12
)

// initRayguiStyle applies the dark theme to raygui. The default font
// stays; only colors and text size change.
func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func (a *App) drawPanel() {
	rl.DrawFPS(10, 10)
	rl.DrawText("MMB: orbit  |  Shift+MMB: tumble  |  Alt+MMB: pan  |  Wheel: zoom  |  Tab: panel",
		10, int32(rl.GetScreenHeight())-26, 15, colorTextMuted)

	if !a.showPanel {
		return
	}

	panelX := int32(rl.GetScreenWidth()) - panelWidth
	panelH := int32(rl.GetScreenHeight())
	rl.DrawRectangle(panelX, 0, panelWidth, panelH, colorBgPanel)
	rl.DrawRectangle(panelX, 0, 2, panelH, colorBorder)

	x := panelX + panelPad
	y := int32(panelPad)

	rl.DrawText("pick3d", x, y, 19, colorAccentLight)
	y += 32

	// Hit readout
	rl.DrawText("HIT", x, y, 15, colorTextMuted)
	y += 22
	if hit, ok := a.svc.CurrentHit(); ok {
		rl.DrawText(fmt.Sprintf("%s  (entity %d)", a.entityName(hit.Entity), hit.Entity), x, y, 15, colorTextPrimary)
		y += 20
		rl.DrawText(fmt.Sprintf("triangle %d   dist %.2f", hit.Triangle, hit.Distance), x, y, 15, colorTextSecondary)
		y += 20
		rl.DrawText(fmt.Sprintf("at %.2f  %.2f  %.2f", hit.Point.X(), hit.Point.Y(), hit.Point.Z()), x, y, 15, colorTextSecondary)
		y += 28
	} else if last, ok := a.svc.LastHit(); ok {
		rl.DrawText("nothing under cursor", x, y, 15, colorTextMuted)
		y += 20
		rl.DrawText(fmt.Sprintf("last: %s   dist %.2f", a.entityName(last.Entity), last.Distance), x, y, 15, colorTextMuted)
		y += 28
	} else {
		rl.DrawText("nothing under cursor", x, y, 15, colorTextMuted)
		y += 28
	}

	// Hover readout (async path)
	rl.DrawText("HOVER", x, y, 15, colorTextMuted)
	y += 22
	if ent, ok := a.svc.Hover(); ok {
		rl.DrawText(a.entityName(ent), x, y, 15, colorHover)
	} else {
		rl.DrawText("-", x, y, 15, colorTextMuted)
	}
	y += 20
	backend := "cpu only"
	if a.picker != nil {
		backend = fmt.Sprintf("%s / %s", a.gpuInfo.Name, a.gpuInfo.Backend)
	}
	rl.DrawText(backend, x, y, 10, colorTextMuted)
	y += 26

	// Scene stats
	rl.DrawText("SCENE", x, y, 15, colorTextMuted)
	y += 22
	rl.DrawText(fmt.Sprintf("%d/%d entities visible", a.visible, len(a.snap.Entities)), x, y, 15, colorTextSecondary)
	y += 20
	rl.DrawText(fmt.Sprintf("%d triangles", a.snap.TriangleCount()), x, y, 15, colorTextSecondary)
	y += 30

	// Camera settings
	rl.DrawText("CAMERA", x, y, 15, colorTextMuted)
	y += 22
	rl.DrawText("Sensitivity", x, y+4, 15, colorTextSecondary)
	sensBounds := rl.Rectangle{X: float32(x + 92), Y: float32(y), Width: 90, Height: 20}
	a.ctrl.Sensitivity = gui.Slider(sensBounds, "", fmt.Sprintf("%.3f", a.ctrl.Sensitivity), a.ctrl.Sensitivity, 0.001, 0.02)
	y += 26
	rl.DrawText("Zoom speed", x, y+4, 15, colorTextSecondary)
	zoomBounds := rl.Rectangle{X: float32(x + 92), Y: float32(y), Width: 90, Height: 20}
	a.ctrl.ZoomSpeed = gui.Slider(zoomBounds, "", fmt.Sprintf("%.0f", a.ctrl.ZoomSpeed), a.ctrl.ZoomSpeed, 10, 150)
	y += 30

	// Picking settings
	rl.DrawText("PICKING", x, y, 15, colorTextMuted)
	y += 22
	checkBounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: 16, Height: 16}
	a.cfg.Picking.UseGPU = gui.CheckBox(checkBounds, "GPU hover", a.cfg.Picking.UseGPU)
	y += 26
	rl.DrawText("Max dist", x, y+4, 15, colorTextSecondary)
	distLabel := "off"
	if a.svc.MaxDistance > 0 {
		distLabel = fmt.Sprintf("%.0f", a.svc.MaxDistance)
	}
	distBounds := rl.Rectangle{X: float32(x + 92), Y: float32(y), Width: 90, Height: 20}
	a.svc.MaxDistance = gui.Slider(distBounds, "", distLabel, a.svc.MaxDistance, 0, 100)
	y += 32

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 114, Height: 26}, "Save settings") {
		a.saveConfig()
	}
}

// entityName resolves an id against the snapshot for display.
func (a *App) entityName(id scene.EntityID) string {
	for i := range a.snap.Entities {
		if a.snap.Entities[i].ID == id {
			return a.snap.Entities[i].Name
		}
	}
	return fmt.Sprintf("entity %d", id)
}
