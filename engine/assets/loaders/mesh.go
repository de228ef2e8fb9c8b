package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/math"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

// ParseError reports a failure while reading a mesh file. Line is zero when
// the error is not tied to a single line, for example an index that is
// only found to be out of range once the whole file has been read.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("mesh %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("mesh %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type MeshLoader struct{}

func (ml *MeshLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	config, err := ParseMeshFile(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeMesh,
		Name:     config.Name,
		FullPath: path,
		DataSize: uint64(len(config.Vertices))*uint64(unsafe.Sizeof(math.Vertex{})) + uint64(len(config.Indices))*4,
		Data:     config,
	}, nil
}

func (ml *MeshLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

// maxMeshLineLength bounds a single line of a mesh file, comments included.
const maxMeshLineLength = 16 * 1024 * 1024

type faceCorner struct {
	vertex, colour int
	line           int
}

/**
 * @brief Reads a mesh made of v (position), c (colour) and f (face)
 * records. Every face corner becomes its own vertex record, in file
 * order, and the index buffer is 0..3F-1. Lines starting with any other
 * token are ignored, and so is anything that follows a complete record
 * unless it looks like another value.
 *
 * @param path The path of the mesh file.
 * @return The expanded geometry configuration or a *ParseError.
 */
func ParseMeshFile(path string) (*metadata.GeometryConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("%w: %v", core.ErrFileNotFound, err)}
	}
	defer file.Close()

	var positions, colours []math.Vec3
	var corners []faceCorner

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMeshLineLength)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineNumber, Err: err}
			}
			positions = append(positions, v)
		case "c":
			c, err := parseVec3(fields[1:])
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineNumber, Err: err}
			}
			colours = append(colours, c)
		case "f":
			face, err := parseFace(fields[1:], lineNumber)
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineNumber, Err: err}
			}
			corners = append(corners, face...)
		default:
			// Unknown tokens start a comment that runs to the end of the line.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: path, Line: lineNumber, Err: err}
	}

	config := &metadata.GeometryConfig{
		Name:     path,
		Vertices: make([]math.Vertex, 0, len(corners)),
		Indices:  make([]uint32, 0, len(corners)),
	}
	for i, corner := range corners {
		if corner.vertex < 1 || corner.vertex > len(positions) {
			return nil, &ParseError{Path: path, Line: corner.line, Err: fmt.Errorf("%w: vertex %d of %d", core.ErrIndexOutOfRange, corner.vertex, len(positions))}
		}
		if corner.colour < 1 || corner.colour > len(colours) {
			return nil, &ParseError{Path: path, Line: corner.line, Err: fmt.Errorf("%w: colour %d of %d", core.ErrIndexOutOfRange, corner.colour, len(colours))}
		}
		config.Vertices = append(config.Vertices, math.Vertex{
			Position: positions[corner.vertex-1],
			Colour:   colours[corner.colour-1],
		})
		config.Indices = append(config.Indices, uint32(i))
	}
	config.UpdateExtents()

	core.LogDebug("parsed mesh %s: %d positions, %d colours, %d faces", path, len(positions), len(colours), len(corners)/3)
	return config, nil
}

func parseVec3(values []string) (math.Vec3, error) {
	if len(values) < 3 {
		return math.Vec3{}, fmt.Errorf("%w: expected 3 values, got %d", core.ErrMalformedVertex, len(values))
	}
	if len(values) > 3 {
		if _, err := strconv.ParseFloat(values[3], 32); err == nil {
			return math.Vec3{}, fmt.Errorf("%w: unexpected value %q after 3 values", core.ErrMalformedVertex, values[3])
		}
	}
	var out [3]float32
	for i, v := range values[:3] {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: invalid value %q", core.ErrMalformedVertex, v)
		}
		out[i] = float32(f)
	}
	return math.NewVec3(out[0], out[1], out[2]), nil
}

func parseFace(values []string, line int) ([]faceCorner, error) {
	if len(values) < 3 {
		return nil, fmt.Errorf("%w: expected 3 corners, got %d", core.ErrMalformedFace, len(values))
	}
	if len(values) > 3 {
		if _, _, err := parseCorner(values[3]); err == nil {
			return nil, fmt.Errorf("%w: unexpected corner %q after 3 corners", core.ErrMalformedFace, values[3])
		}
	}
	corners := make([]faceCorner, 3)
	for i, v := range values[:3] {
		vertex, colour, err := parseCorner(v)
		if err != nil {
			return nil, err
		}
		corners[i] = faceCorner{vertex: vertex, colour: colour, line: line}
	}
	return corners, nil
}

// parseCorner reads a single vertex/colour index pair.
func parseCorner(value string) (int, int, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: invalid corner %q", core.ErrMalformedFace, value)
	}
	vertex, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid vertex index %q", core.ErrMalformedFace, parts[0])
	}
	colour, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid colour index %q", core.ErrMalformedFace, parts[1])
	}
	return vertex, colour, nil
}
