package systems

import (
	"github.com/chewxy/math32"
	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/math"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

const (
	DefaultSphereSectorCount uint32 = 36
	DefaultSphereStackCount  uint32 = 18
	DefaultCylinderSegments  uint32 = 360
)

var (
	// SphereColour is written to the colour slot of every sphere vertex.
	SphereColour = math.NewVec3(0.0, 1.0, 0.0)
	// CylinderColour is written to the colour slot of every cylinder vertex.
	CylinderColour = math.NewVec3(0.0, 0.0, 1.0)
	// GroundColour is written to the colour slot of every ground vertex.
	GroundColour = math.NewVec3(0.8, 0.8, 0.8)
)

// SphereConfig describes a UV sphere.
type SphereConfig struct {
	Name   string
	Center math.Vec3
	Radius float32
	// Number of longitude slices. Zero means DefaultSphereSectorCount.
	SectorCount uint32
	// Number of latitude bands. Zero means DefaultSphereStackCount.
	StackCount uint32
	// Added to every generated index, for appending into a shared buffer.
	StartIndex uint32
}

// CylinderConfig describes an open cylinder shell along the y axis.
type CylinderConfig struct {
	Name    string
	Center  math.Vec3
	Radius  float32
	YTop    float32
	YBottom float32
	// Zero means DefaultCylinderSegments.
	Segments   uint32
	StartIndex uint32
}

/**
 * @brief Generates a UV sphere. Rings run from the +z pole (stack angle pi/2)
 * to the -z pole (-pi/2), and each ring repeats its first vertex at 2pi so
 * the seam is not shared.
 *
 * The first and last stacks only emit one triangle per sector; the pole
 * rings are left without a fan.
 *
 * @param config The sphere parameters. Zero counts fall back to the defaults.
 * @return A geometry configuration with (stacks+1)*(sectors+1) vertices.
 */
func GeometrySystemGenerateSphereConfig(config SphereConfig) *metadata.GeometryConfig {
	sectorCount := config.SectorCount
	if sectorCount == 0 {
		core.LogWarn("sectorCount must be a positive number. Defaulting to %d.", DefaultSphereSectorCount)
		sectorCount = DefaultSphereSectorCount
	}
	stackCount := config.StackCount
	if stackCount == 0 {
		core.LogWarn("stackCount must be a positive number. Defaulting to %d.", DefaultSphereStackCount)
		stackCount = DefaultSphereStackCount
	}

	center := config.Center
	radius := config.Radius

	vertices := make([]math.Vertex, 0, (stackCount+1)*(sectorCount+1))
	indices := make([]uint32, 0, 6*stackCount*sectorCount)

	sectorStep := math.K_PI_2 / float32(sectorCount)
	stackStep := math.K_PI / float32(stackCount)

	for i := uint32(0); i <= stackCount; i++ {
		stackAngle := math.K_HALF_PI - float32(i)*stackStep
		xy := radius * math32.Cos(stackAngle)
		z := center.Z + radius*math32.Sin(stackAngle)

		for j := uint32(0); j <= sectorCount; j++ {
			sectorAngle := float32(j) * sectorStep
			vertices = append(vertices, math.Vertex{
				Position: math.Vec3{
					X: center.X + xy*math32.Cos(sectorAngle),
					Y: center.Y + xy*math32.Sin(sectorAngle),
					Z: z,
				},
				Colour: SphereColour,
			})
		}
	}

	//  k1--k1+1
	//  |  / |
	//  | /  |
	//  k2--k2+1
	for i := uint32(0); i < stackCount; i++ {
		k1 := i * (sectorCount + 1)
		k2 := k1 + sectorCount + 1

		for j := uint32(0); j < sectorCount; j, k1, k2 = j+1, k1+1, k2+1 {
			if i != 0 {
				indices = append(indices,
					config.StartIndex+k1,
					config.StartIndex+k2,
					config.StartIndex+k1+1)
			}
			if i != stackCount-1 {
				indices = append(indices,
					config.StartIndex+k1+1,
					config.StartIndex+k2,
					config.StartIndex+k2+1)
			}
		}
	}

	out := &metadata.GeometryConfig{
		Name:     geometryName(config.Name),
		Vertices: vertices,
		Indices:  indices,
	}
	out.UpdateExtents()
	return out
}

/**
 * @brief Generates the side wall of a cylinder as a strip of quads. Each of
 * the segments+1 iterations emits its own four vertices, so the last quad
 * closes the shell by overlapping the first one.
 *
 * @param config The cylinder parameters. Zero segments fall back to the default.
 * @return A geometry configuration with 4*(segments+1) vertices and
 * 6*(segments+1) indices in [StartIndex, StartIndex+4*(segments+1)).
 */
func GeometrySystemGenerateCylinderShellConfig(config CylinderConfig) *metadata.GeometryConfig {
	segments := config.Segments
	if segments == 0 {
		core.LogWarn("segments must be a positive number. Defaulting to %d.", DefaultCylinderSegments)
		segments = DefaultCylinderSegments
	}

	center := config.Center
	r := config.Radius

	vertices := make([]math.Vertex, 0, 4*(segments+1))
	indices := make([]uint32, 0, 6*(segments+1))

	point := func(t, y float32) math.Vertex {
		return math.Vertex{
			Position: math.Vec3{
				X: center.X + math32.Sin(t)*r,
				Y: y,
				Z: center.Z + math32.Cos(t)*r,
			},
			Colour: CylinderColour,
		}
	}

	for n := uint32(0); n <= segments; n++ {
		t0 := math.K_PI_2 * float32(n) / float32(segments)
		t1 := math.K_PI_2 * float32(n+1) / float32(segments)

		vertices = append(vertices,
			point(t0, config.YTop),
			point(t0, config.YBottom),
			point(t1, config.YTop),
			point(t1, config.YBottom))

		b := config.StartIndex + 4*n
		indices = append(indices,
			b, b+1, b+2,
			b+1, b+2, b+3)
	}

	out := &metadata.GeometryConfig{
		Name:     geometryName(config.Name),
		Vertices: vertices,
		Indices:  indices,
	}
	out.UpdateExtents()
	return out
}

/**
 * @brief Generates the fixed ground the flagpole stands on: a flat patch
 * at y=-1.3 made of four triangles.
 */
func GeometrySystemGenerateGroundConfig(name string) *metadata.GeometryConfig {
	positions := []math.Vec3{
		{X: -1.5, Y: -1.3, Z: -0.8},
		{X: -1.5, Y: -1.3, Z: 0.0},
		{X: 1.5, Y: -1.3, Z: 0.0},
		{X: 1.5, Y: -1.3, Z: -0.8},
		{X: -1.5, Y: -1.3, Z: 0.8},
		{X: 1.5, Y: -1.3, Z: 0.8},
	}
	vertices := make([]math.Vertex, len(positions))
	for i, p := range positions {
		vertices[i] = math.Vertex{Position: p, Colour: GroundColour}
	}

	out := &metadata.GeometryConfig{
		Name:     geometryName(name),
		Vertices: vertices,
		Indices: []uint32{
			0, 1, 2,
			0, 2, 3,
			1, 2, 4,
			4, 5, 2,
		},
	}
	out.UpdateExtents()
	return out
}

/**
 * @brief Appends the vertices and indices of src to dst. Indices of src
 * are copied as-is, so src must have been generated with a StartIndex equal
 * to the vertex count of dst.
 */
func GeometrySystemAppend(dst, src *metadata.GeometryConfig) {
	dst.Vertices = append(dst.Vertices, src.Vertices...)
	dst.Indices = append(dst.Indices, src.Indices...)
	dst.UpdateExtents()
}

func geometryName(name string) string {
	if len(name) > 0 {
		return name
	}
	return metadata.DefaultGeometryName
}
