// Package config persists viewer settings between sessions as JSON.
package config

import (
	"encoding/json"
	"os"
)

// Camera holds orbit controller settings. Pitch values are degrees
// above the horizon, negative looking up from below.
type Camera struct {
	Distance    float32 `json:"distance"`
	MinDistance float32 `json:"minDistance"`
	MaxDistance float32 `json:"maxDistance"`
	Pitch       float32 `json:"pitch"`
	MinPitch    float32 `json:"minPitch"`
	MaxPitch    float32 `json:"maxPitch"`
	Sensitivity float32 `json:"sensitivity"`
	ZoomSpeed   float32 `json:"zoomSpeed"`
	PanSpeed    float32 `json:"panSpeed"`
}

// Picking holds pick pipeline settings.
type Picking struct {
	// MaxDistance caps hit distance when positive, zero is unlimited.
	MaxDistance float32 `json:"maxDistance"`
	// UseGPU enables the asynchronous compute hover path.
	UseGPU bool `json:"useGpu"`
	// HoverInterval is the number of frames between hover submissions.
	HoverInterval int `json:"hoverInterval"`
}

type Window struct {
	Width     int32 `json:"width"`
	Height    int32 `json:"height"`
	TargetFPS int32 `json:"targetFps"`
}

// Config is the persisted viewer configuration.
type Config struct {
	Window  Window  `json:"window"`
	Camera  Camera  `json:"camera"`
	Picking Picking `json:"picking"`
	// MeshPath optionally names a glTF or OBJ file to add to the scene.
	MeshPath string `json:"meshPath,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:     1280,
			Height:    720,
			TargetFPS: 120,
		},
		Camera: Camera{
			Distance:    20,
			MinDistance: 5,
			MaxDistance: 30,
			Pitch:       30,
			MinPitch:    -89,
			MaxPitch:    89,
			Sensitivity: 0.005,
			ZoomSpeed:   50,
			PanSpeed:    0.002,
		},
		Picking: Picking{
			UseGPU:        true,
			HoverInterval: 3,
		},
	}
}

// Load reads the configuration at path. A missing file yields the
// defaults with no error; an unreadable one yields the defaults and
// the parse error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
