package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Basics(t *testing.T) {
	v := NewVec3(1, 2, 2)
	assert.Equal(t, float32(3), v.Length())
	assert.Equal(t, Vec3{2, 4, 4}, v.Add(v))
	assert.Equal(t, Vec3{}, v.Sub(v))
	assert.Equal(t, float32(9), v.Dot(v))
	assert.Equal(t, float32(0), NewVec3(1, 0, 0).Dot(NewVec3(0, 1, 0)))
	assert.Equal(t, Vec3{0, 0, 1}, NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)))
	assert.Equal(t, Vec3{}, Vec3{}.Normalized())
	assert.True(t, v.Normalized().Compare(Vec3{1.0 / 3, 2.0 / 3, 2.0 / 3}, 1e-6))
}

func TestGeometryCalculateExtents(t *testing.T) {
	extents, center := GeometryCalculateExtents(nil)
	assert.Equal(t, Extents3D{}, extents)
	assert.Equal(t, Vec3{}, center)

	vertices := []Vertex{
		{Position: Vec3{-1, 0, 2}},
		{Position: Vec3{3, -2, 0}},
		{Position: Vec3{1, 4, 1}},
	}
	extents, center = GeometryCalculateExtents(vertices)
	assert.Equal(t, Vec3{-1, -2, 0}, extents.Min)
	assert.Equal(t, Vec3{3, 4, 2}, extents.Max)
	assert.Equal(t, Vec3{1, 1, 1}, center)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := NewVec3(0, 1, 4)
	view := NewMat4LookAt(eye, NewVec3Zero(), NewVec3Up())
	assert.True(t, eye.Transform(view).Compare(NewVec3Zero(), 1e-5))

	// The target ends up straight ahead on the negative z axis.
	target := NewVec3Zero().Transform(view)
	assert.InDelta(t, 0, target.X, 1e-5)
	assert.InDelta(t, 0, target.Y, 1e-5)
	assert.Less(t, target.Z, float32(0))
}

func TestPerspective(t *testing.T) {
	p := NewMat4Perspective(DegToRad(90), 1, 0.1, 100)
	assert.InDelta(t, 1, p.Data[0], 1e-5)
	assert.InDelta(t, 1, p.Data[5], 1e-5)
	assert.Equal(t, float32(-1), p.Data[11])
	assert.Equal(t, float32(0), p.Data[15])
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(10, 0, 5))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
	assert.Equal(t, uint32(64), Clamp(uint32(1), 64, 8192))
}
