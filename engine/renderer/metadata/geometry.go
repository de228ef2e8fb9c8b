package metadata

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/flagpole/engine/math"
)

/** @brief The name of the default geometry. */
const DefaultGeometryName string = "default"

/**
 * @brief Represents the configuration for a geometry: the CPU side
 * vertex and index buffers produced by a generator or a loader.
 */
type GeometryConfig struct {
	/** @brief The vertex records; position followed by colour. */
	Vertices []math.Vertex
	/** @brief Triangle list Indices into Vertices. Always a multiple of 3. */
	Indices []uint32

	Center  math.Vec3
	Extents math.Extents3D

	/** @brief The Name of the geometry. */
	Name string
	/** @brief Dynamic geometries have their vertices re-uploaded every frame. */
	Dynamic bool
}

// VertexCount returns the number of vertex records.
func (c *GeometryConfig) VertexCount() uint32 {
	return uint32(len(c.Vertices))
}

// IndexCount returns the number of indices.
func (c *GeometryConfig) IndexCount() uint32 {
	return uint32(len(c.Indices))
}

// UpdateExtents recomputes Center and Extents from the current vertices.
func (c *GeometryConfig) UpdateExtents() {
	c.Extents, c.Center = math.GeometryCalculateExtents(c.Vertices)
}

/**
 * @brief Represents geometry that was handed to the renderer.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uuid.UUID
	/** @brief The internal geometry identifier, used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The geometry name. */
	Name string

	VertexCount uint32
	IndexCount  uint32
	Dynamic     bool
}

/**
 * @brief The data the backend needs to issue a draw call for a geometry.
 */
type GeometryRenderData struct {
	Model    math.Mat4
	Geometry *Geometry
}
