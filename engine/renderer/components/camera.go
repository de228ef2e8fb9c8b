package components

import (
	"github.com/chewxy/math32"
	"github.com/spaghettifunk/flagpole/engine/math"
)

/**
 * @brief A camera circling the origin at a fixed height, always looking at
 * the origin with +Y up.
 */
type Camera struct {
	/** @brief The distance from the Y axis. */
	OrbitRadius float32
	/** @brief The height of the eye above the XZ plane. */
	Height float32
	/** @brief Orbit angular speed in radians per second. */
	Speed float32

	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use Orbit() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix math.Mat4

	fovRadians  float32
	aspectRatio float32
	near        float32
	far         float32
}

func NewCamera(orbitRadius, height, speed float32) *Camera {
	camera := &Camera{
		OrbitRadius: orbitRadius,
		Height:      height,
		Speed:       speed,
	}
	camera.Reset()
	return camera
}

// Reset puts the camera back at the start of its orbit.
func (c *Camera) Reset() {
	c.ViewMatrix = math.NewMat4Identity()
	c.Orbit(0)
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

/**
 * @brief Moves the eye to where the orbit is at t seconds:
 * (sin(Speed*t)*R, H, cos(Speed*t)*R).
 */
func (c *Camera) Orbit(t float32) {
	s, co := math32.Sincos(c.Speed * t)
	c.Position = math.NewVec3(s*c.OrbitRadius, c.Height, co*c.OrbitRadius)
	c.IsDirty = true
}

func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		c.ViewMatrix = math.NewMat4LookAt(c.Position, math.NewVec3Zero(), math.NewVec3Up())
		c.IsDirty = false
	}
	return c.ViewMatrix
}

// SetPerspective stores the projection parameters used by GetProjection.
func (c *Camera) SetPerspective(fovDegrees, aspectRatio, near, far float32) {
	c.fovRadians = math.DegToRad(fovDegrees)
	c.aspectRatio = aspectRatio
	c.near = near
	c.far = far
}

func (c *Camera) GetProjection() math.Mat4 {
	return math.NewMat4Perspective(c.fovRadians, c.aspectRatio, c.near, c.far)
}
