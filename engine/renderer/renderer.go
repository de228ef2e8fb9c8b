package renderer

import (
	"fmt"
	"sort"

	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/math"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

// RendererSystem tracks the geometries handed to a backend and drives
// its frame.
type RendererSystem struct {
	backend    RendererBackend
	geometries map[string]*metadata.Geometry

	// The current window framebuffer width.
	FramebufferWidth uint32
	// The current window framebuffer height.
	FramebufferHeight uint32
	FrameNumber       uint64
}

func NewRendererSystem(backend RendererBackend) *RendererSystem {
	return &RendererSystem{
		backend:    backend,
		geometries: make(map[string]*metadata.Geometry),
	}
}

func (r *RendererSystem) Initialize(config *metadata.RendererBackendConfig, width, height uint32) error {
	r.FramebufferWidth = width
	r.FramebufferHeight = height
	r.FrameNumber = 0

	if err := r.backend.Initialize(config, width, height); err != nil {
		core.LogError("renderer backend failed to initialize: %s", err)
		return err
	}
	core.LogInfo("Renderer system initialized.")
	return nil
}

// Shutdown releases every geometry still alive and then the backend.
func (r *RendererSystem) Shutdown() error {
	names := make([]string, 0, len(r.geometries))
	for name := range r.geometries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.DestroyGeometry(r.geometries[name])
	}
	return r.backend.Shutdown()
}

func (r *RendererSystem) OnResize(width, height uint32) error {
	r.FramebufferWidth = width
	r.FramebufferHeight = height
	return r.backend.Resized(width, height)
}

/**
 * @brief Uploads config and registers the resulting geometry under
 * config.Name. Names are unique.
 *
 * @return The geometry handle or an error if the buffers are inconsistent.
 */
func (r *RendererSystem) CreateGeometry(config *metadata.GeometryConfig) (*metadata.Geometry, error) {
	if _, exists := r.geometries[config.Name]; exists {
		return nil, fmt.Errorf("geometry %q already exists", config.Name)
	}
	if config.VertexCount() == 0 || config.IndexCount() == 0 {
		return nil, fmt.Errorf("geometry %q has no vertices or indices", config.Name)
	}
	if config.IndexCount()%3 != 0 {
		return nil, fmt.Errorf("geometry %q: index count %d is not a triangle list", config.Name, config.IndexCount())
	}
	for _, idx := range config.Indices {
		if idx >= config.VertexCount() {
			return nil, fmt.Errorf("geometry %q: %w: %d of %d vertices", config.Name, core.ErrIndexOutOfRange, idx, config.VertexCount())
		}
	}

	geometry := &metadata.Geometry{
		ID:          core.IdentifierAquireNewID(),
		Generation:  0,
		Center:      config.Center,
		Extents:     config.Extents,
		Name:        config.Name,
		VertexCount: config.VertexCount(),
		IndexCount:  config.IndexCount(),
		Dynamic:     config.Dynamic,
	}
	if err := r.backend.CreateGeometry(geometry, config.Vertices, config.Indices); err != nil {
		return nil, fmt.Errorf("geometry %q: %w", config.Name, err)
	}
	r.geometries[config.Name] = geometry

	core.LogDebug("geometry %s uploaded: %d vertices, %d indices (dynamic=%t)", geometry.Name, geometry.VertexCount, geometry.IndexCount, geometry.Dynamic)
	return geometry, nil
}

// UpdateGeometry re-uploads the vertices of a dynamic geometry.
func (r *RendererSystem) UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex) error {
	if !geometry.Dynamic {
		return fmt.Errorf("geometry %q is static", geometry.Name)
	}
	if uint32(len(vertices)) != geometry.VertexCount {
		return fmt.Errorf("geometry %q expects %d vertices, got %d", geometry.Name, geometry.VertexCount, len(vertices))
	}
	if err := r.backend.UpdateGeometry(geometry, vertices); err != nil {
		return err
	}
	geometry.Generation++
	return nil
}

func (r *RendererSystem) DestroyGeometry(geometry *metadata.Geometry) {
	if geometry == nil {
		return
	}
	if _, exists := r.geometries[geometry.Name]; !exists {
		core.LogWarn("geometry %s is not registered", geometry.Name)
		return
	}
	r.backend.DestroyGeometry(geometry)
	delete(r.geometries, geometry.Name)
	core.LogDebug("geometry %s destroyed", geometry.Name)
}

// Get returns the geometry registered under name.
func (r *RendererSystem) Get(name string) (*metadata.Geometry, bool) {
	g, ok := r.geometries[name]
	return g, ok
}

// GeometryCount returns the number of live geometries.
func (r *RendererSystem) GeometryCount() int {
	return len(r.geometries)
}

func (r *RendererSystem) DrawFrame(packet *metadata.RenderPacket) error {
	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}

	r.backend.UpdateGlobalState(packet.Projection, packet.View)
	for i := range packet.Geometries {
		r.backend.DrawGeometry(&packet.Geometries[i])
	}

	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	r.FrameNumber++
	return nil
}
