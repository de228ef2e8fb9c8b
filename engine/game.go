package engine

import (
	"github.com/spaghettifunk/flagpole/engine/assets"
	"github.com/spaghettifunk/flagpole/engine/renderer"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func(r *renderer.RendererSystem, am *assets.AssetManager) error

// Update receives the seconds since the previous frame and since the engine started.
type Update func(deltaTime, elapsedTime float64) error
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
