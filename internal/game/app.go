package game

import (
	"fmt"
	"log"
	"time"

	"color-triangle/internal/config"
	"color-triangle/internal/input"
	"color-triangle/internal/profiling"
)

// Host is the window side of the loop: event pumping and the close flag.
type Host interface {
	PollEvents()
	ShouldClose() bool
}

// FrameRenderer renders one complete frame per call.
type FrameRenderer interface {
	Frame() error
	RequestCapture(fn func() error)
}

// App drives the per-iteration sequence: pump events, check for exit,
// render a frame, handle toggles.
type App struct {
	host     Host
	renderer FrameRenderer
	input    *input.InputManager
	capture  func() (string, error)

	fpsLimiter *FPSLimiter
	iterations int
	frames     int

	fpsFrames        int
	lastFPSCheckTime time.Time
}

func NewApp(host Host, r FrameRenderer, im *input.InputManager) *App {
	return &App{
		host:             host,
		renderer:         r,
		input:            im,
		fpsLimiter:       NewFPSLimiter(),
		lastFPSCheckTime: time.Now(),
	}
}

// SetCaptureHandler sets what ActionCapture runs; fn returns the written path.
func (a *App) SetCaptureHandler(fn func() (string, error)) {
	a.capture = fn
}

// Iterations returns how many loop iterations have started.
func (a *App) Iterations() int {
	return a.iterations
}

// Frames returns how many frames were rendered successfully.
func (a *App) Frames() int {
	return a.frames
}

// Run loops until exit is requested (nil) or a frame fails (the error).
func (a *App) Run() error {
	for {
		ok, err := a.tick()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func (a *App) exitRequested() bool {
	// A press and release inside one poll leaves only the edge flag set.
	quit := a.input.IsActive(input.ActionQuit) || a.input.JustPressed(input.ActionQuit)
	return quit || a.host.ShouldClose()
}

func (a *App) tick() (bool, error) {
	profiling.ResetFrame()
	start := time.Now()
	a.iterations++

	func() { defer profiling.Track("host.PollEvents")(); a.host.PollEvents() }()

	if a.exitRequested() {
		return false, nil
	}

	if err := a.renderer.Frame(); err != nil {
		return false, fmt.Errorf("iteration %d: %w", a.iterations, err)
	}
	a.frames++

	a.handleInputActions()
	a.input.PostUpdate()

	a.reportTiming(start)
	a.fpsLimiter.Wait(effectiveLimit())
	return true, nil
}

func (a *App) handleInputActions() {
	if a.input.JustPressed(input.ActionToggleVSync) {
		log.Printf("vsync: %v", config.ToggleVSync())
	}

	if a.input.JustPressed(input.ActionCapture) && a.capture != nil {
		a.renderer.RequestCapture(func() error {
			path, err := a.capture()
			if err != nil {
				return err
			}
			log.Printf("captured frame to %s", path)
			return nil
		})
	}
}

func (a *App) reportTiming(start time.Time) {
	a.fpsFrames++
	if time.Since(a.lastFPSCheckTime) >= time.Second {
		fmt.Println("FPS: ", a.fpsFrames)
		a.fpsFrames = 0
		a.lastFPSCheckTime = time.Now()
	}

	limit := effectiveLimit()
	if limit <= 0 {
		return
	}
	target := time.Second / time.Duration(limit)
	if d := time.Since(start); d > target {
		log.Printf("Slow frame: %v (target %v). Top stages: %s", d, target, profiling.TopN(3))
	}
}

// effectiveLimit is the software cap for this frame. Vsync paces the loop
// on its own, so the cap only applies in immediate mode.
func effectiveLimit() int {
	if config.GetVSync() {
		return 0
	}
	return config.GetMaxFPS()
}
