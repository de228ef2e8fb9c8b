package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/math"
)

// DefaultPath is where the application looks for its configuration file.
const DefaultPath = "assets/flagpole.toml"

const (
	minWindowSize uint32 = 64
	maxWindowSize uint32 = 8192
	maxSamples    uint32 = 16
)

type Config struct {
	Window WindowConfig `toml:"window"`
	Log    LogConfig    `toml:"log"`
	Assets AssetsConfig `toml:"assets"`
	Camera CameraConfig `toml:"camera"`
	Scene  SceneConfig  `toml:"scene"`
	Wave   WaveConfig   `toml:"wave"`
}

type WindowConfig struct {
	// The application name used in windowing.
	Name string `toml:"name"`
	// Window starting position x axis.
	X uint32 `toml:"x"`
	// Window starting position y axis.
	Y      uint32 `toml:"y"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	// Multisample anti-aliasing samples. Zero disables MSAA.
	MSAASamples uint32 `toml:"msaa_samples"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AssetsConfig struct {
	Dir string `toml:"dir"`
	// Flag mesh, relative to Dir.
	FlagMesh string `toml:"flag_mesh"`
	// Reload assets when they change on disk.
	Watch bool `toml:"watch"`
}

type CameraConfig struct {
	OrbitRadius float32 `toml:"orbit_radius"`
	Height      float32 `toml:"height"`
	// Orbit angular speed in radians per second.
	Speed      float32 `toml:"speed"`
	FovDegrees float32 `toml:"fov_degrees"`
	Near       float32 `toml:"near"`
	Far        float32 `toml:"far"`
}

type SphereConfig struct {
	Radius  float32 `toml:"radius"`
	CenterY float32 `toml:"center_y"`
	Sectors uint32  `toml:"sectors"`
	Stacks  uint32  `toml:"stacks"`
}

type CylinderConfig struct {
	Radius float32 `toml:"radius"`
	Top    float32 `toml:"top"`
	Bottom float32 `toml:"bottom"`
}

type SceneConfig struct {
	Sphere   SphereConfig   `toml:"sphere"`
	Shaft    CylinderConfig `toml:"shaft"`
	Finial   CylinderConfig `toml:"finial"`
	Segments uint32         `toml:"segments"`
}

type WaveConfig struct {
	Amplitude float32 `toml:"amplitude"`
	Speed     float32 `toml:"speed"`
	Frequency float32 `toml:"frequency"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Name:        "Flagpole",
			X:           100,
			Y:           100,
			Width:       1024,
			Height:      768,
			MSAASamples: 4,
		},
		Log: LogConfig{
			Level: "info",
		},
		Assets: AssetsConfig{
			Dir:      "assets",
			FlagMesh: "meshes/vertexstore.obj",
			Watch:    true,
		},
		Camera: CameraConfig{
			OrbitRadius: 4.0,
			Height:      1.0,
			Speed:       0.1,
			FovDegrees:  45.0,
			Near:        0.1,
			Far:         100.0,
		},
		Scene: SceneConfig{
			Sphere: SphereConfig{
				Radius:  0.08,
				CenterY: 0.08,
				Sectors: 36,
				Stacks:  18,
			},
			Shaft: CylinderConfig{
				Radius: 0.05,
				Top:    0.0,
				Bottom: -1.1,
			},
			Finial: CylinderConfig{
				Radius: 0.02,
				Top:    -1.1,
				Bottom: -1.3,
			},
			Segments: 360,
		},
		Wave: WaveConfig{
			Amplitude: 0.5,
			Speed:     0.8,
			Frequency: 3.0,
		},
	}
}

/**
 * @brief Loads the configuration at path on top of the defaults. Keys that
 * are missing in the file keep their default value. A missing file is not
 * an error: the defaults are returned and a warning is logged.
 */
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogWarn("config file %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("config: parse %s:%d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.Validate()
	core.LogDebug("loaded config from %s", path)
	return cfg, nil
}

/**
 * @brief Clamps values that would break the renderer into a usable range
 * and restores defaults for counts that must be non-zero.
 */
func (c *Config) Validate() {
	def := Default()

	c.Window.Width = math.Clamp(c.Window.Width, minWindowSize, maxWindowSize)
	c.Window.Height = math.Clamp(c.Window.Height, minWindowSize, maxWindowSize)
	c.Window.MSAASamples = math.Clamp(c.Window.MSAASamples, 0, maxSamples)
	if c.Window.Name == "" {
		c.Window.Name = def.Window.Name
	}

	c.Camera.FovDegrees = math.Clamp(c.Camera.FovDegrees, 1.0, 179.0)
	if c.Camera.Near <= 0 {
		c.Camera.Near = def.Camera.Near
	}
	if c.Camera.Far <= c.Camera.Near {
		core.LogWarn("camera far plane %.3f must be beyond the near plane %.3f. Defaulting to %.1f.", c.Camera.Far, c.Camera.Near, def.Camera.Far)
		c.Camera.Far = def.Camera.Far
	}

	if c.Scene.Sphere.Sectors < 3 {
		c.Scene.Sphere.Sectors = def.Scene.Sphere.Sectors
	}
	if c.Scene.Sphere.Stacks < 3 {
		c.Scene.Sphere.Stacks = def.Scene.Sphere.Stacks
	}
	if c.Scene.Segments < 3 {
		c.Scene.Segments = def.Scene.Segments
	}
}

// AspectRatio returns the window width divided by its height.
func (c *Config) AspectRatio() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}
