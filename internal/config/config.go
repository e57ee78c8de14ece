package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings is the startup configuration, optionally read from a YAML file.
type Settings struct {
	Title       string  `yaml:"title"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FullScreen  bool    `yaml:"full_screen"`
	VSync       bool    `yaml:"vsync"`
	MaxFPS      int     `yaml:"max_fps"` // immediate mode only, 0 = uncapped
	ScreenNear  float32 `yaml:"screen_near"`
	ScreenDepth float32 `yaml:"screen_depth"`

	ClearColor     [4]float32 `yaml:"clear_color"`
	CameraPosition [3]float32 `yaml:"camera_position"`
	CameraRotation [3]float32 `yaml:"camera_rotation"` // degrees: pitch, yaw, roll

	ShaderDir  string `yaml:"shader_dir"`
	CaptureDir string `yaml:"capture_dir"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Title:          "color-triangle",
		Width:          800,
		Height:         600,
		VSync:          true,
		ScreenNear:     0.1,
		ScreenDepth:    1000.0,
		ClearColor:     [4]float32{0, 0, 0, 1},
		CameraPosition: [3]float32{0, 0, -10},
		ShaderDir:      "assets/shaders/color",
		CaptureDir:     ".",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.Width, s.Height)
	}
	if s.ScreenNear <= 0 {
		return errors.New("screen_near must be positive")
	}
	if s.ScreenDepth <= s.ScreenNear {
		return fmt.Errorf("screen_depth %v must be greater than screen_near %v", s.ScreenDepth, s.ScreenNear)
	}
	if s.MaxFPS < 0 {
		return fmt.Errorf("max_fps %d must not be negative", s.MaxFPS)
	}
	if s.ShaderDir == "" {
		return errors.New("shader_dir must be set")
	}
	return nil
}

// PresentSettings holds the values that can change while running.
type PresentSettings struct {
	mu     sync.RWMutex
	vsync  bool
	maxFPS int
}

var globalPresentSettings = &PresentSettings{
	vsync: true,
}

// Apply copies the runtime-adjustable values of s into the global settings.
func Apply(s Settings) {
	SetVSync(s.VSync)
	SetMaxFPS(s.MaxFPS)
}

// GetVSync reports whether presentation waits for vertical blank
func GetVSync() bool {
	globalPresentSettings.mu.RLock()
	defer globalPresentSettings.mu.RUnlock()
	return globalPresentSettings.vsync
}

func SetVSync(enabled bool) {
	globalPresentSettings.mu.Lock()
	defer globalPresentSettings.mu.Unlock()
	globalPresentSettings.vsync = enabled
}

// ToggleVSync flips vsync and returns the new value
func ToggleVSync() bool {
	globalPresentSettings.mu.Lock()
	defer globalPresentSettings.mu.Unlock()
	globalPresentSettings.vsync = !globalPresentSettings.vsync
	return globalPresentSettings.vsync
}

// GetMaxFPS returns the software frame cap used without vsync
func GetMaxFPS() int {
	globalPresentSettings.mu.RLock()
	defer globalPresentSettings.mu.RUnlock()
	return globalPresentSettings.maxFPS
}

// SetMaxFPS sets the software frame cap; 0 disables it
func SetMaxFPS(fps int) {
	globalPresentSettings.mu.Lock()
	defer globalPresentSettings.mu.Unlock()

	// Clamp to reasonable values
	if fps < 0 {
		fps = 0
	}
	if fps > 1000 {
		fps = 1000
	}

	globalPresentSettings.maxFPS = fps
}
