package scene

import (
	"github.com/spaghettifunk/flagpole/engine/config"
	"github.com/spaghettifunk/flagpole/engine/math"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
	"github.com/spaghettifunk/flagpole/engine/systems"
)

// BuildPoleBatch generates the ground, the shaft and the finial into one
// buffer. Each piece is generated with a start index equal to the number
// of vertices already in the batch.
func BuildPoleBatch(cfg *config.SceneConfig) *metadata.GeometryConfig {
	batch := systems.GeometrySystemGenerateGroundConfig(PoleMeshName)

	shaft := systems.GeometrySystemGenerateCylinderShellConfig(systems.CylinderConfig{
		Name:       "shaft",
		Radius:     cfg.Shaft.Radius,
		YTop:       cfg.Shaft.Top,
		YBottom:    cfg.Shaft.Bottom,
		Segments:   cfg.Segments,
		StartIndex: batch.VertexCount(),
	})
	systems.GeometrySystemAppend(batch, shaft)

	finial := systems.GeometrySystemGenerateCylinderShellConfig(systems.CylinderConfig{
		Name:       "finial",
		Radius:     cfg.Finial.Radius,
		YTop:       cfg.Finial.Top,
		YBottom:    cfg.Finial.Bottom,
		Segments:   cfg.Segments,
		StartIndex: batch.VertexCount(),
	})
	systems.GeometrySystemAppend(batch, finial)

	return batch
}

// BuildSphere generates the ball on top of the pole.
func BuildSphere(cfg *config.SceneConfig) *metadata.GeometryConfig {
	return systems.GeometrySystemGenerateSphereConfig(systems.SphereConfig{
		Name:        SphereMeshName,
		Center:      math.NewVec3(0, cfg.Sphere.CenterY, 0),
		Radius:      cfg.Sphere.Radius,
		SectorCount: cfg.Sphere.Sectors,
		StackCount:  cfg.Sphere.Stacks,
	})
}
