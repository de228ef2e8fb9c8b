package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

/** @brief a 4x4 matrix, column-major, typically used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief Represents a single vertex in 3D space.
 * The layout is six tightly packed float32 values: the position
 * followed by the colour. Renderers rely on that stride.
 */
type Vertex struct {
	/** @brief The position of the vertex */
	Position Vec3
	/** @brief The colour of the vertex. */
	Colour Vec3
}

const (
	// VertexFloatCount is the number of float32 values in a single Vertex.
	VertexFloatCount = 6
	// VertexStride is the size of a Vertex in bytes.
	VertexStride = VertexFloatCount * 4
	// VertexColourOffset is the byte offset of the colour inside a Vertex.
	VertexColourOffset = 3 * 4
)
