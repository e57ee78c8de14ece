package main

import (
	"flag"
	"log"
	"runtime"

	"color-triangle/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	configPath := flag.String("config", "", "path to a YAML settings file")
	flag.Parse()

	settings := config.Default()
	if *configPath != "" {
		s, err := config.Load(*configPath)
		if err != nil {
			closer.Fatalln(err)
		}
		settings = s
	}
	config.Apply(settings)

	closer.Bind(func() {
		log.Println("color-triangle: shut down")
	})

	if err := run(settings); err != nil {
		closer.Fatalln(err)
	}
}

// run owns every GL resource; its defers release them on the locked thread
// before the process exits.
func run(settings config.Settings) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, width, height, err := setupWindow(settings)
	if err != nil {
		return err
	}
	defer window.Destroy()

	sys, err := setupSystem(window, width, height, settings)
	if err != nil {
		return err
	}
	defer sys.Shutdown()

	return sys.App.Run()
}
