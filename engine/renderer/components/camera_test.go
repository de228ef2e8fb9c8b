package components

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/flagpole/engine/math"
)

func TestCameraOrbit(t *testing.T) {
	c := NewCamera(4, 1, 0.1)
	assert.True(t, c.GetPosition().Compare(math.NewVec3(0, 1, 4), 1e-6))

	c.Orbit(10)
	s, co := math32.Sincos(1)
	assert.True(t, c.GetPosition().Compare(math.NewVec3(4*s, 1, 4*co), 1e-5))

	// Quarter turn.
	c.Orbit(math.K_HALF_PI / 0.1)
	assert.True(t, c.GetPosition().Compare(math.NewVec3(4, 1, 0), 1e-4))
}

func TestCameraViewLooksAtOrigin(t *testing.T) {
	c := NewCamera(4, 1, 0.1)
	c.Orbit(3)
	assert.True(t, c.IsDirty)
	view := c.GetView()
	assert.False(t, c.IsDirty)

	// The origin is straight ahead, on the negative z axis of view space.
	origin := math.NewVec3Zero().Transform(view)
	assert.InDelta(t, 0, origin.X, 1e-5)
	assert.InDelta(t, 0, origin.Y, 1e-5)
	assert.InDelta(t, -c.GetPosition().Length(), origin.Z, 1e-5)

	// The eye is the view space origin.
	eye := c.GetPosition().Transform(view)
	assert.True(t, eye.Compare(math.NewVec3Zero(), 1e-5))
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera(4, 1, 0.1)
	c.SetPerspective(45, 4.0/3.0, 0.1, 100)
	assert.Equal(t, math.NewMat4Perspective(math.DegToRad(45), 4.0/3.0, 0.1, 100), c.GetProjection())
}
