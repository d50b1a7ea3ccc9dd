// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/armillary/pkg/math"
)

// PerspectiveCamera looks from Position towards Target.
type PerspectiveCamera struct {
	FOV    float32 // Vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: math.Vec3{Z: -1},
		Up:     math.Vec3{Y: 1},
	}
}

// SetAspect updates the aspect ratio. Non-positive values are ignored.
func (c *PerspectiveCamera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// Projection returns the projection matrix.
func (c *PerspectiveCamera) Projection() math.Mat4 {
	return math.Perspective(c.FOV*math32.Pi/180, c.Aspect, c.Near, c.Far)
}

// View returns the view matrix.
func (c *PerspectiveCamera) View() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() math.Mat4 {
	return c.Projection().Mul(c.View())
}

// InverseViewProjection returns the matrix that maps clip space back to
// world space.
func (c *PerspectiveCamera) InverseViewProjection() math.Mat4 {
	return c.ViewProjection().Inverse()
}

// Forward returns the normalized viewing direction.
func (c *PerspectiveCamera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Orientation returns Euler angles (YXZ order) that turn a node the same
// way as the camera, so a quad facing +Z faces the viewer.
func (c *PerspectiveCamera) Orientation() math.Vec3 {
	f := c.Forward()
	pitch := math32.Asin(clamp(f.Y, -1, 1))
	yaw := math32.Atan2(-f.X, -f.Z)
	return math.Vec3{X: pitch, Y: yaw}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
