package renderer

import (
	"github.com/spaghettifunk/flagpole/engine/math"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

// RendererBackend is implemented by the graphics API specific renderers.
// Every method is called from the goroutine that owns the graphics context.
type RendererBackend interface {
	Initialize(config *metadata.RendererBackendConfig, width, height uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	// UpdateGlobalState sets the matrices shared by every draw of the frame.
	UpdateGlobalState(projection, view math.Mat4)
	EndFrame(deltaTime float64) error
	// CreateGeometry uploads the buffers and fills geometry.InternalID.
	CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex, indices []uint32) error
	// UpdateGeometry replaces the vertex data of a dynamic geometry. The
	// vertex count must not change.
	UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex) error
	DestroyGeometry(geometry *metadata.Geometry)
	DrawGeometry(data *metadata.GeometryRenderData)
}
