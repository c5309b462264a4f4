// Package config loads viewer settings from a JSON file, falling back to
// defaults when no file is present.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Settings struct {
	Window WindowSettings `json:"window"`
	Render RenderSettings `json:"render"`
	Server ServerSettings `json:"server"`
}

type WindowSettings struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

type RenderSettings struct {
	Colormap string `json:"colormap"`
	// Background color components in [0,1].
	Background [3]float32 `json:"background"`
}

type ServerSettings struct {
	Enabled          bool `json:"enabled"`
	Port             int  `json:"port"`
	UpdateIntervalMs int  `json:"updateIntervalMs"`
}

// Default returns the settings used when no file overrides them.
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "fieldview",
		},
		Render: RenderSettings{
			Colormap:   "viridis",
			Background: [3]float32{0.05, 0.05, 0.1},
		},
		Server: ServerSettings{
			Enabled:          false,
			Port:             8080,
			UpdateIntervalMs: 250,
		},
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Settings, error) {
	s := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&s); err != nil {
		return Default(), fmt.Errorf("error parsing %s: %w", path, err)
	}
	return s, nil
}
