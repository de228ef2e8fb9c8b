/*
Flagpole renders a flag waving on a pole, orbited by the camera.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/flagpole/engine"
	"github.com/spaghettifunk/flagpole/engine/config"
	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/testbed"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the TOML configuration file")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error); overrides the configuration")
	assetsDir := flag.String("assets", "", "assets directory; overrides the configuration")
	flag.Parse()

	os.Exit(run(*configPath, *logLevel, *assetsDir))
}

func run(configPath, logLevel, assetsDir string) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		core.LogError("%s", err)
		return 1
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if assetsDir != "" {
		cfg.Assets.Dir = assetsDir
	}

	game := testbed.NewFlagpoleGame(cfg)

	e, err := engine.New(game.Game)
	if err != nil {
		core.LogError("failed to create the engine: %s", err)
		return 1
	}
	core.LogInfo("assets directory: %s", e.AssetsDir())

	defer func() {
		if err := e.Shutdown(); err != nil {
			core.LogError("%s", err)
		}
	}()

	if err := e.Initialize(); err != nil {
		core.LogError("failed to initialize the engine: %s", err)
		return 1
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	// stop the run loop; shutdown happens on this goroutine
	go func() {
		if sig, ok := <-sigCh; ok {
			core.LogInfo("received %s, stopping", sig)
			e.Stop()
		}
	}()

	// run engine
	if err := e.Run(); err != nil {
		core.LogError("engine stopped with an error: %s", err)
		return 1
	}
	return 0
}
