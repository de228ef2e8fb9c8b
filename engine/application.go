package engine

import (
	"github.com/spaghettifunk/flagpole/engine/config"
	"github.com/spaghettifunk/flagpole/engine/math"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name        string
	MSAASamples uint32
	LogLevel    string
	// Directory holding meshes and shaders.
	AssetsDir   string
	WatchAssets bool
	ClearColour math.Vec3
}

// NewApplicationConfig derives the engine settings from the loaded configuration.
func NewApplicationConfig(cfg *config.Config) *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   cfg.Window.X,
		StartPosY:   cfg.Window.Y,
		StartWidth:  cfg.Window.Width,
		StartHeight: cfg.Window.Height,
		Name:        cfg.Window.Name,
		MSAASamples: cfg.Window.MSAASamples,
		LogLevel:    cfg.Log.Level,
		AssetsDir:   cfg.Assets.Dir,
		WatchAssets: cfg.Assets.Watch,
		ClearColour: math.NewVec3(0.0, 0.0, 0.2),
	}
}
