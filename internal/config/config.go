// Package config handles loading and saving of terrain and viewer settings.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig controls how a heightmap is turned into a mesh.
type TerrainConfig struct {
	Heightmap      string  `yaml:"heightmap"`
	ErrorThreshold float32 `yaml:"error_threshold"`
	YScale         float32 `yaml:"y_scale"`    // world height of a full-scale sample
	PixelSize      float32 `yaml:"pixel_size"` // world length of one pixel
	Wireframe      bool    `yaml:"wireframe"`
}

// ViewerConfig holds window and camera settings.
type ViewerConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	FOV           float32 `yaml:"fov"`
	ThresholdStep float32 `yaml:"threshold_step"` // factor applied per +/- key press
	SunAzimuth    float32 `yaml:"sun_azimuth"`    // degrees
	SunElevation  float32 `yaml:"sun_elevation"`  // degrees
	Ambient       float32 `yaml:"ambient"`
}

// ExportConfig holds batch export settings.
type ExportConfig struct {
	Format      string `yaml:"format"` // obj or bin
	Output      string `yaml:"output"`
	PreviewSize int    `yaml:"preview_size"`
	Workers     int    `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Export formats.
const (
	FormatOBJ    = "obj"
	FormatBinary = "bin"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Heightmap:      "terrain.png",
			ErrorThreshold: 0.2,
			YScale:         20,
			PixelSize:      1,
			Wireframe:      false,
		},
		Viewer: ViewerConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			FOV:           45,
			ThresholdStep: 1.25,
			SunAzimuth:    225,
			SunElevation:  45,
			Ambient:       0.35,
		},
		Export: ExportConfig{
			Format:      FormatOBJ,
			Output:      "",
			PreviewSize: 1024,
			Workers:     4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Terrain.ErrorThreshold < 0:
		return fmt.Errorf("%w: terrain.error_threshold %v is negative", ErrInvalid, c.Terrain.ErrorThreshold)
	case c.Terrain.YScale <= 0:
		return fmt.Errorf("%w: terrain.y_scale must be positive", ErrInvalid)
	case c.Terrain.PixelSize <= 0:
		return fmt.Errorf("%w: terrain.pixel_size must be positive", ErrInvalid)
	case c.Viewer.Width <= 0 || c.Viewer.Height <= 0:
		return fmt.Errorf("%w: viewer size %dx%d", ErrInvalid, c.Viewer.Width, c.Viewer.Height)
	case c.Viewer.ThresholdStep <= 1:
		return fmt.Errorf("%w: viewer.threshold_step must be greater than 1", ErrInvalid)
	case c.Viewer.SunElevation < 0 || c.Viewer.SunElevation > 90:
		return fmt.Errorf("%w: viewer.sun_elevation %v outside 0..90", ErrInvalid, c.Viewer.SunElevation)
	case c.Viewer.Ambient < 0 || c.Viewer.Ambient > 1:
		return fmt.Errorf("%w: viewer.ambient %v outside 0..1", ErrInvalid, c.Viewer.Ambient)
	case c.Export.Format != FormatOBJ && c.Export.Format != FormatBinary:
		return fmt.Errorf("%w: export.format %q", ErrInvalid, c.Export.Format)
	case c.Export.PreviewSize <= 0:
		return fmt.Errorf("%w: export.preview_size must be positive", ErrInvalid)
	case c.Export.Workers <= 0:
		return fmt.Errorf("%w: export.workers must be positive", ErrInvalid)
	}
	return nil
}
