package metadata

import (
	"github.com/spaghettifunk/flagpole/engine/math"
)

type RendererBackendConfig struct {
	/** @brief The name of the application */
	ApplicationName string
	/** @brief The colour the framebuffer is cleared to every frame. */
	ClearColour math.Vec3
	/** @brief NUL terminated GLSL source of the vertex stage. */
	VertexShaderSource string
	/** @brief NUL terminated GLSL source of the fragment stage. */
	FragmentShaderSource string
}

/**
 * @brief Everything required to draw a single frame.
 */
type RenderPacket struct {
	DeltaTime  float64
	View       math.Mat4
	Projection math.Mat4
	Geometries []GeometryRenderData
}
