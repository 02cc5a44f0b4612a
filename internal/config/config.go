// Package config holds the small set of host-level settings this emulator
// actually needs, loaded from an optional JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the host's user-editable configuration. Audio and save-state
// settings are deliberately absent: both are explicit non-goals of the
// emulation core.
type Config struct {
	Window WindowConfig `json:"window"`
	Debug  DebugConfig  `json:"debug"`
	Paths  PathsConfig  `json:"paths"`

	path   string
	loaded bool
}

// WindowConfig controls the host window's presentation of the 256x240
// framebuffer.
type WindowConfig struct {
	Scale int `json:"scale"` // integer multiple of the native 256x240 resolution
}

// DebugConfig toggles the on-screen running/halted-state overlay described in
// spec.md §7's "the window remains open ... the log shows the cause".
type DebugConfig struct {
	ShowOverlay bool `json:"show_overlay"`
}

// PathsConfig holds a ROM search directory. It is saved and loaded with the
// rest of the config; the command line does not fall back to it, since
// -nes_rom is required.
type PathsConfig struct {
	ROMs string `json:"roms"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{Scale: 2},
		Debug:  DebugConfig{ShowOverlay: false},
		Paths:  PathsConfig{ROMs: "./roms"},
	}
}

// Load reads path as JSON into a new Config. If path does not exist, the
// defaults are written to it and returned, matching the teacher pack's
// load-or-write-defaults behavior.
func Load(path string) (*Config, error) {
	c := NewConfig()
	c.path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := c.Save(); err != nil {
			return nil, err
		}
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	c.path = path
	c.normalize()
	c.loaded = true
	return c, nil
}

// Save writes c to its path as indented JSON, creating the parent
// directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config: no path set")
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create directory %q: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %q: %w", c.path, err)
	}
	return nil
}

func (c *Config) normalize() {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
}

// Resolution returns the native NES framebuffer resolution.
func (c *Config) Resolution() (int, int) { return 256, 240 }

// WindowResolution returns the host window resolution implied by Scale.
func (c *Config) WindowResolution() (int, int) {
	w, h := c.Resolution()
	return w * c.Window.Scale, h * c.Window.Scale
}

// Loaded reports whether the configuration came from an existing file
// rather than freshly-written defaults.
func (c *Config) Loaded() bool { return c.loaded }
