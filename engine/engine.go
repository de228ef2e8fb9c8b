package engine

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/spaghettifunk/flagpole/engine/assets"
	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/platform"
	"github.com/spaghettifunk/flagpole/engine/renderer"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
	"github.com/spaghettifunk/flagpole/engine/renderer/opengl"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	default:
		return "unknown"
	}
}

const (
	vertexShaderAsset   = "shaders/vert.glsl"
	fragmentShaderAsset = "shaders/frag.glsl"
)

type Engine struct {
	currentStage   Stage
	gameInstance   *Game
	isRunning      atomic.Bool
	platform       *platform.Platform
	assetManager   *assets.AssetManager
	rendererSystem *renderer.RendererSystem
	width          uint32
	height         uint32
	clock          *core.Clock
	metrics        *core.Metrics
	lastTime       float64
}

func New(g *Game) (*Engine, error) {
	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}
	core.LogDebug("engine stage: %s", e.currentStage)

	if g.ApplicationConfig.LogLevel != "" {
		if err := core.SetLogLevel(g.ApplicationConfig.LogLevel); err != nil {
			return nil, fmt.Errorf("engine: log level: %w", err)
		}
	}

	am, err := assets.NewAssetManager(g.ApplicationConfig.AssetsDir)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.assetManager = am

	e.platform = platform.New()
	e.rendererSystem = renderer.NewRendererSystem(opengl.New(e.platform))

	e.setStage(EngineStageBootComplete)
	return e, nil
}

func (e *Engine) setStage(stage Stage) {
	e.currentStage = stage
	core.LogDebug("engine stage: %s", stage)
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("%w: cannot initialize while %s", core.ErrEngineStage, e.currentStage)
	}
	e.setStage(EngineStageInitializing)

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_KEY_RELEASED, e.onKey)

	appConfig := e.gameInstance.ApplicationConfig
	if err := e.platform.Startup(appConfig.Name,
		appConfig.StartPosX,
		appConfig.StartPosY,
		appConfig.StartWidth,
		appConfig.StartHeight,
		appConfig.MSAASamples); err != nil {
		return err
	}

	// initialize subsystems
	if err := e.assetManager.Initialize(appConfig.WatchAssets); err != nil {
		return err
	}

	vertexSource, err := e.assetManager.LoadShaderSource(vertexShaderAsset)
	if err != nil {
		core.LogError("Failed to load builtin vertex shader.")
		return err
	}
	fragmentSource, err := e.assetManager.LoadShaderSource(fragmentShaderAsset)
	if err != nil {
		core.LogError("Failed to load builtin fragment shader.")
		return err
	}

	rbc := &metadata.RendererBackendConfig{
		ApplicationName:      appConfig.Name,
		ClearColour:          appConfig.ClearColour,
		VertexShaderSource:   vertexSource,
		FragmentShaderSource: fragmentSource,
	}
	if err := e.rendererSystem.Initialize(rbc, e.width, e.height); err != nil {
		return err
	}

	if err := e.gameInstance.FnInitialize(e.rendererSystem, e.assetManager); err != nil {
		core.LogError("game failed to initialize: %s", err)
		return err
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.isRunning.Store(true)
	e.setStage(EngineStageInitialized)
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("%w: cannot run while %s", core.ErrEngineStage, e.currentStage)
	}
	e.setStage(EngineStageRunning)

	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.Elapsed()

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}

		// Update clock and get delta time.
		e.clock.Update()

		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)
		var frameStartTime float64 = e.platform.GetAbsoluteTime()

		e.dispatchAssetChanges()

		if err := e.gameInstance.FnUpdate(delta, currentTime); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			e.isRunning.Store(false)
			return err
		}

		packet := &metadata.RenderPacket{
			DeltaTime: delta,
		}

		// Call the game's render routine.
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			e.isRunning.Store(false)
			return err
		}

		// Draw frame
		if err := e.rendererSystem.DrawFrame(packet); err != nil {
			e.isRunning.Store(false)
			return err
		}

		// Figure out how long the frame took.
		var frameEndTime float64 = e.platform.GetAbsoluteTime()
		if e.metrics.Update(frameEndTime - frameStartTime) {
			fps, frameTime := e.metrics.Frame()
			core.LogInfo("FPS: %.0f (%.3f ms/frame)", fps, frameTime)
		}

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		// As a safety, input is the last thing to be updated before
		// this frame ends.
		core.InputUpdate(delta)

		// Update last time
		e.lastTime = currentTime
	}

	return nil
}

// Stop asks the run loop to exit after the current frame. It is safe to
// call from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

// dispatchAssetChanges forwards every pending asset change as an event
// without blocking the frame.
func (e *Engine) dispatchAssetChanges() {
	for {
		select {
		case name, ok := <-e.assetManager.Changes():
			if !ok {
				return
			}
			core.LogInfo("asset %s changed on disk", name)
			core.EventFire(core.EventContext{
				Type: core.EVENT_CODE_ASSET_CHANGED,
				Data: &core.AssetEvent{Path: name},
			})
		default:
			return
		}
	}
}

// Shutdown releases every subsystem in reverse order of creation. It must
// run on the goroutine that called Initialize.
func (e *Engine) Shutdown() error {
	e.setStage(EngineStageShuttingDown)
	e.clock.Stop()

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := e.rendererSystem.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	e.assetManager.Shutdown()
	if err := e.platform.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := core.EventSystemShutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := core.InputShutdown(); err != nil {
		errs = append(errs, err)
	}

	e.setStage(EngineStageUninitialized)
	if len(errs) > 0 {
		return fmt.Errorf("engine shutdown: %v", errs)
	}
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

// AssetsDir returns the absolute assets directory, for logging.
func (e *Engine) AssetsDir() string {
	dir, err := filepath.Abs(e.assetManager.Dir())
	if err != nil {
		return e.assetManager.Dir()
	}
	return dir
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED && ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	core.LogDebug("key %d event %d", ke.KeyCode, context.Type)
	return false
}
