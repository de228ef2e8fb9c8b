package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/flagpole/engine/math"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

/**
 * @brief Max number of simultaneously uploaded geometries
 */
const OPENGL_MAX_GEOMETRY_COUNT uint32 = 4096

/**
 * @brief The GL objects backing an uploaded geometry.
 */
type openglGeometryData struct {
	vao uint32
	vbo uint32
	ebo uint32
	/** @brief The vertex count. */
	vertexCount uint32
	/** @brief The index count. */
	indexCount int32
	dynamic    bool
}

func (r *OpenGLRenderer) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex, indices []uint32) error {
	if len(r.geometries) >= int(OPENGL_MAX_GEOMETRY_COUNT) {
		return fmt.Errorf("too many geometries, the maximum is %d", OPENGL_MAX_GEOMETRY_COUNT)
	}
	if len(vertices) == 0 || len(indices) == 0 {
		return fmt.Errorf("geometry %s has no data", geometry.Name)
	}

	usage := uint32(gl.STATIC_DRAW)
	if geometry.Dynamic {
		usage = gl.DYNAMIC_DRAW
	}

	data := &openglGeometryData{
		vertexCount: uint32(len(vertices)),
		indexCount:  int32(len(indices)),
		dynamic:     geometry.Dynamic,
	}

	gl.GenVertexArrays(1, &data.vao)
	gl.BindVertexArray(data.vao)

	gl.GenBuffers(1, &data.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, data.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*math.VertexStride, gl.Ptr(&vertices[0]), usage)

	gl.GenBuffers(1, &data.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, data.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(&indices[0]), gl.STATIC_DRAW)

	// position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, math.VertexStride, 0)
	// colour
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, math.VertexStride, math.VertexColourOffset)

	gl.BindVertexArray(0)

	r.nextGeometryID++
	geometry.InternalID = r.nextGeometryID
	r.geometries[geometry.InternalID] = data
	return nil
}

func (r *OpenGLRenderer) UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex) error {
	data, ok := r.geometries[geometry.InternalID]
	if !ok {
		return fmt.Errorf("geometry %s is not uploaded", geometry.Name)
	}
	if !data.dynamic {
		return fmt.Errorf("geometry %s was uploaded as static", geometry.Name)
	}
	if uint32(len(vertices)) != data.vertexCount {
		return fmt.Errorf("geometry %s holds %d vertices, got %d", geometry.Name, data.vertexCount, len(vertices))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, data.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*math.VertexStride, gl.Ptr(&vertices[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func (r *OpenGLRenderer) DestroyGeometry(geometry *metadata.Geometry) {
	data, ok := r.geometries[geometry.InternalID]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &data.ebo)
	gl.DeleteBuffers(1, &data.vbo)
	gl.DeleteVertexArrays(1, &data.vao)
	delete(r.geometries, geometry.InternalID)
	geometry.InternalID = 0
}

func (r *OpenGLRenderer) DrawGeometry(data *metadata.GeometryRenderData) {
	if data.Geometry == nil {
		return
	}
	gd, ok := r.geometries[data.Geometry.InternalID]
	if !ok {
		return
	}
	gl.UniformMatrix4fv(r.modelLocation, 1, false, &data.Model.Data[0])
	gl.BindVertexArray(gd.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, gd.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}
