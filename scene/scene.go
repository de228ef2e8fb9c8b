// Package scene assembles the flagpole scene: a static pole batch, a
// sphere on top of the pole and a waving flag loaded from disk.
package scene

import (
	"fmt"

	"github.com/spaghettifunk/flagpole/engine/assets"
	"github.com/spaghettifunk/flagpole/engine/config"
	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/math"
	"github.com/spaghettifunk/flagpole/engine/renderer"
	"github.com/spaghettifunk/flagpole/engine/renderer/components"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
	"github.com/spaghettifunk/flagpole/engine/systems"
)

const (
	PoleMeshName   = "pole"
	SphereMeshName = "sphere"
)

type FlagScene struct {
	cfg          *config.Config
	assetManager *assets.AssetManager
	renderer     *renderer.RendererSystem
	wave         *systems.WaveAnimator
	camera       *components.Camera

	pole   *metadata.Mesh
	sphere *metadata.Mesh
	flag   *metadata.Mesh

	elapsed      float32
	flagVertices []math.Vertex
}

func New(cfg *config.Config, am *assets.AssetManager) *FlagScene {
	camera := components.NewCamera(cfg.Camera.OrbitRadius, cfg.Camera.Height, cfg.Camera.Speed)
	camera.SetPerspective(cfg.Camera.FovDegrees, cfg.AspectRatio(), cfg.Camera.Near, cfg.Camera.Far)

	return &FlagScene{
		cfg:          cfg,
		assetManager: am,
		wave: &systems.WaveAnimator{
			Amplitude: cfg.Wave.Amplitude,
			Speed:     cfg.Wave.Speed,
			Frequency: cfg.Wave.Frequency,
		},
		camera: camera,
	}
}

/**
 * @brief Builds the pole and sphere buffers, loads the flag and uploads
 * all three. A flag that cannot be loaded aborts initialization.
 */
func (s *FlagScene) Initialize(r *renderer.RendererSystem, am *assets.AssetManager) error {
	s.renderer = r
	if am != nil {
		s.assetManager = am
	}

	s.pole = &metadata.Mesh{Name: PoleMeshName, Config: BuildPoleBatch(&s.cfg.Scene)}
	s.sphere = &metadata.Mesh{Name: SphereMeshName, Config: BuildSphere(&s.cfg.Scene)}

	flagConfig, err := s.assetManager.LoadMesh(s.cfg.Assets.FlagMesh)
	if err != nil {
		core.LogError("failed to load flag mesh %s: %s", s.cfg.Assets.FlagMesh, err)
		return fmt.Errorf("scene: flag: %w", err)
	}
	flagConfig.Dynamic = true
	s.flag = &metadata.Mesh{Name: flagConfig.Name, Config: flagConfig}

	for _, mesh := range []*metadata.Mesh{s.pole, s.sphere, s.flag} {
		if err := s.upload(mesh); err != nil {
			return err
		}
	}
	s.resetFlagVertices()

	core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, s.onAssetChanged)
	return nil
}

func (s *FlagScene) upload(mesh *metadata.Mesh) error {
	g, err := s.renderer.CreateGeometry(mesh.Config)
	if err != nil {
		return fmt.Errorf("scene: upload %s: %w", mesh.Name, err)
	}
	mesh.Geometry = g
	core.LogInfo("mesh %s uploaded: %d vertices, %d indices", mesh.Name, g.VertexCount, g.IndexCount)
	return nil
}

// resetFlagVertices copies the parsed flag into the buffer the animator
// rewrites every frame.
func (s *FlagScene) resetFlagVertices() {
	s.flagVertices = append(s.flagVertices[:0], s.flag.Config.Vertices...)
}

// Update animates the flag for the given number of seconds since start.
func (s *FlagScene) Update(deltaTime, elapsedTime float64) error {
	s.elapsed = float32(elapsedTime)
	s.wave.Animate(s.flagVertices, s.elapsed)
	s.camera.Orbit(s.elapsed)
	return nil
}

// Render re-uploads the animated flag and queues the three meshes.
func (s *FlagScene) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	if err := s.renderer.UpdateGeometry(s.flag.Geometry, s.flagVertices); err != nil {
		return fmt.Errorf("scene: update flag: %w", err)
	}

	packet.View = s.camera.GetView()
	packet.Projection = s.camera.GetProjection()
	identity := math.NewMat4Identity()
	packet.Geometries = append(packet.Geometries,
		metadata.GeometryRenderData{Model: identity, Geometry: s.pole.Geometry},
		metadata.GeometryRenderData{Model: identity, Geometry: s.sphere.Geometry},
		metadata.GeometryRenderData{Model: identity, Geometry: s.flag.Geometry},
	)
	return nil
}

func (s *FlagScene) OnResize(width, height uint32) error {
	if height == 0 {
		return nil
	}
	s.camera.SetPerspective(s.cfg.Camera.FovDegrees, float32(width)/float32(height), s.cfg.Camera.Near, s.cfg.Camera.Far)
	return nil
}

/**
 * @brief Re-parses the flag file and swaps it in. On a parse error the
 * current flag is kept and the error is returned. If the new flag cannot be
 * uploaded, the current one is uploaded again.
 */
func (s *FlagScene) Reload() error {
	flagConfig, err := s.assetManager.LoadMesh(s.cfg.Assets.FlagMesh)
	if err != nil {
		return fmt.Errorf("scene: reload flag: %w", err)
	}
	flagConfig.Dynamic = true

	old := s.flag
	s.renderer.DestroyGeometry(old.Geometry)
	mesh := &metadata.Mesh{Name: flagConfig.Name, Config: flagConfig}
	if err := s.upload(mesh); err != nil {
		// put the previous flag back
		if restoreErr := s.upload(old); restoreErr != nil {
			core.LogError("failed to restore the previous flag: %s", restoreErr)
		}
		return err
	}
	s.flag = mesh
	s.resetFlagVertices()
	s.wave.Animate(s.flagVertices, s.elapsed)
	return nil
}

func (s *FlagScene) onAssetChanged(context core.EventContext) bool {
	event, ok := context.Data.(*core.AssetEvent)
	if !ok || event.Path != s.cfg.Assets.FlagMesh {
		return false
	}
	if err := s.Reload(); err != nil {
		core.LogError("keeping the previous flag: %s", err)
		return true
	}
	core.LogInfo("flag reloaded from %s", event.Path)
	return true
}

// Shutdown releases the scene geometries.
func (s *FlagScene) Shutdown() error {
	for _, mesh := range []*metadata.Mesh{s.flag, s.sphere, s.pole} {
		if mesh != nil && mesh.IsUploaded() {
			s.renderer.DestroyGeometry(mesh.Geometry)
			mesh.Geometry = nil
		}
	}
	return nil
}

// Camera returns the orbiting scene camera.
func (s *FlagScene) Camera() *components.Camera {
	return s.camera
}

// FlagVertices returns the animated flag buffer.
func (s *FlagScene) FlagVertices() []math.Vertex {
	return s.flagVertices
}
