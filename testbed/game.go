package testbed

import (
	"github.com/spaghettifunk/flagpole/engine"
	"github.com/spaghettifunk/flagpole/engine/config"
	"github.com/spaghettifunk/flagpole/scene"
)

// FlagpoleGame plugs the flagpole scene into the engine callbacks.
type FlagpoleGame struct {
	*engine.Game
	Scene *scene.FlagScene
}

func NewFlagpoleGame(cfg *config.Config) *FlagpoleGame {
	s := scene.New(cfg, nil)
	fg := &FlagpoleGame{
		Game: &engine.Game{
			ApplicationConfig: engine.NewApplicationConfig(cfg),
			State:             s,
		},
		Scene: s,
	}

	fg.FnInitialize = s.Initialize
	fg.FnUpdate = s.Update
	fg.FnRender = s.Render
	fg.FnOnResize = s.OnResize
	fg.FnShutdown = s.Shutdown

	return fg
}
