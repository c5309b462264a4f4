package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"fieldview/config"
)

func main() {
	runtime.LockOSThread()

	var (
		width        = flag.Int("width", 0, "Window width (overrides settings)")
		height       = flag.Int("height", 0, "Window height (overrides settings)")
		resolution   = flag.Int("res", 64, "Demo field resolution per axis")
		settingsPath = flag.String("settings", "settings.json", "Path to settings file")
		serve        = flag.Bool("serve", false, "Enable the websocket slice server")
	)
	flag.Parse()

	if *resolution < 2 {
		log.Fatalf("Field resolution must be at least 2 (got %d)", *resolution)
	}

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *width > 0 {
		settings.Window.Width = *width
	}
	if *height > 0 {
		settings.Window.Height = *height
	}
	if *serve {
		settings.Server.Enabled = true
	}

	fmt.Println("=== fieldview ===")
	fmt.Printf("Window: %dx%d\n", settings.Window.Width, settings.Window.Height)
	fmt.Printf("Field: %dx%dx%d\n", *resolution, *resolution, *resolution)
	fmt.Printf("Colormap: %s\n", settings.Render.Colormap)

	f := makeDemoField(*resolution)

	viewer, err := NewViewer(settings, f)
	if err != nil {
		log.Fatalf("Failed to create viewer: %v", err)
	}
	defer viewer.Terminate()

	if settings.Server.Enabled {
		interval := time.Duration(settings.Server.UpdateIntervalMs) * time.Millisecond
		server := NewSliceServer(viewer.Snapshot, interval)
		server.Start(settings.Server.Port)
	}

	fmt.Println("Controls: drag to orbit, scroll to zoom, X/Y/Z pick axis,")
	fmt.Println("  [ ] move slice, B box shell, 1-4 colormap, Esc quit")

	viewer.Run()
}
