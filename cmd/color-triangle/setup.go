package main

import (
	"fmt"
	"log"

	"color-triangle/internal/capture"
	"color-triangle/internal/config"
	"color-triangle/internal/game"
	"color-triangle/internal/graphics"
	"color-triangle/internal/graphics/gldevice"
	renderer "color-triangle/internal/graphics/renderer"
	"color-triangle/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func setupWindow(settings config.Settings) (*glfw.Window, int, int, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	width, height := settings.Width, settings.Height
	var monitor *glfw.Monitor
	if settings.FullScreen {
		// Full screen runs at the desktop resolution
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	window, err := glfw.CreateWindow(width, height, settings.Title, monitor, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	window.MakeContextCurrent()

	// The framebuffer can differ from the window size on high-DPI displays
	fbWidth, fbHeight := window.GetFramebufferSize()
	return window, fbWidth, fbHeight, nil
}

// windowHost adapts a GLFW window to game.Host
type windowHost struct {
	window *glfw.Window
}

func (h windowHost) PollEvents() {
	glfw.PollEvents()
}

func (h windowHost) ShouldClose() bool {
	return h.window.ShouldClose()
}

// System holds all the initialized components
type System struct {
	App      *game.App
	Renderer *renderer.Renderer
	Device   *gldevice.Device
}

func setupSystem(window *glfw.Window, width, height int, settings config.Settings) (*System, error) {
	device, err := gldevice.New(window, width, height)
	if err != nil {
		return nil, fmt.Errorf("could not initialize the graphics device: %w", err)
	}
	log.Printf("graphics device: %v", device.Info())

	camera := graphics.NewCamera()
	pos, rot := settings.CameraPosition, settings.CameraRotation
	camera.SetPosition(pos[0], pos[1], pos[2])
	camera.SetRotation(rot[0], rot[1], rot[2])

	transforms := graphics.NewTransforms(width, height, settings.ScreenNear, settings.ScreenDepth)

	model, err := graphics.NewModel(device, graphics.TriangleVertices, graphics.TriangleIndices)
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("could not initialize the model object: %w", err)
	}

	vertPath, fragPath := graphics.ShaderPaths(settings.ShaderDir)
	shader, err := graphics.NewColorShader(device, graphics.NewBindings(device), vertPath, fragPath)
	if err != nil {
		model.Dispose()
		device.Close()
		return nil, fmt.Errorf("could not initialize the color shader object: %w", err)
	}

	r := renderer.NewRenderer(device, renderer.Scene{
		Camera:     camera,
		Transforms: transforms,
		Model:      model,
		Shader:     shader,
	}, mgl32.Vec4(settings.ClearColor))

	im := input.NewInputManager()
	im.SetKeyCallback(window)

	app := game.NewApp(windowHost{window: window}, r, im)
	app.SetCaptureHandler(capture.NewCapturer(device, settings.CaptureDir).Capture)

	return &System{App: app, Renderer: r, Device: device}, nil
}

// Shutdown releases scene resources, then the device
func (s *System) Shutdown() {
	s.Renderer.Dispose()
	s.Device.Close()
}
