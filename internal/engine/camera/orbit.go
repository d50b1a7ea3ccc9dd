package camera

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/armillary/pkg/math"
)

const polarEpsilon = 1e-6

// OrbitControls orbits a PerspectiveCamera around its target.
// Angles are spherical coordinates with Y up: Theta is the azimuth around
// Y measured from +Z, Phi the polar angle from +Y.
type OrbitControls struct {
	Camera *PerspectiveCamera

	Enabled      bool
	EnableRotate bool
	EnablePan    bool
	EnableZoom   bool

	EnableDamping bool
	DampingFactor float32

	// AutoRotateSpeed of 1 is one revolution every 60 seconds.
	AutoRotateSpeed float32
	// AutoRotateEase is how long auto-rotation takes to reach full speed
	// after being switched back on.
	AutoRotateEase  float32

	RotateSpeed float32
	PanSpeed    float32
	ZoomSpeed   float32

	MinDistance float32
	MaxDistance float32
	MinPolar    float32
	MaxPolar    float32

	theta, phi, radius float32
	deltaTheta         float32
	deltaPhi           float32
	panOffset          math.Vec3
	scale              float32

	autoRotate bool
	rampTween  *gween.Tween
	ramp       float32

	viewportH float32
}

// NewOrbitControls creates controls for cam, reading the current offset
// between camera and target.
func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	c := &OrbitControls{
		Camera:        cam,
		Enabled:       true,
		EnableRotate:  true,
		EnablePan:     true,
		EnableZoom:    true,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		PanSpeed:      1,
		ZoomSpeed:     1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		MinPolar:      0,
		MaxPolar:      math32.Pi,
		scale:         1,
		ramp:          1,
		viewportH:     1,
	}
	c.AutoRotateSpeed = 2
	c.sync()
	return c
}

// sync reads the spherical coordinates from the camera position.
func (c *OrbitControls) sync() {
	offset := c.Camera.Position.Sub(c.Camera.Target)
	c.radius = offset.Length()
	if c.radius == 0 {
		c.theta, c.phi = 0, math32.Pi/2
		return
	}
	c.theta = math32.Atan2(offset.X, offset.Z)
	c.phi = math32.Acos(clamp(offset.Y/c.radius, -1, 1))
}

// SetViewport records the viewport height used to scale drag input.
func (c *OrbitControls) SetViewport(width, height int32) {
	if height > 0 {
		c.viewportH = float32(height)
	}
}

// SetAutoRotate switches auto-rotation. Turning it on eases the speed in
// over AutoRotateEase seconds.
func (c *OrbitControls) SetAutoRotate(on bool) {
	if on == c.autoRotate {
		return
	}
	c.autoRotate = on
	if !on {
		c.rampTween = nil
		return
	}
	if c.AutoRotateEase > 0 {
		c.rampTween = gween.New(0, 1, c.AutoRotateEase, ease.InOutQuad)
		c.ramp = 0
	} else {
		c.ramp = 1
	}
}

// AutoRotate reports whether auto-rotation is on.
func (c *OrbitControls) AutoRotate() bool {
	return c.autoRotate
}

// Azimuth returns the current azimuth angle in radians.
func (c *OrbitControls) Azimuth() float32 {
	return c.theta
}

// Polar returns the current polar angle in radians.
func (c *OrbitControls) Polar() float32 {
	return c.phi
}

// Distance returns the current distance to the target.
func (c *OrbitControls) Distance() float32 {
	return c.radius
}

func (c *OrbitControls) rotateLeft(angle float32) {
	c.deltaTheta -= angle
}

func (c *OrbitControls) rotateUp(angle float32) {
	c.deltaPhi -= angle
}

// Rotate orbits by a pointer drag of dx, dy pixels.
func (c *OrbitControls) Rotate(dx, dy float32) {
	if !c.Enabled || !c.EnableRotate {
		return
	}
	c.rotateLeft(2 * math32.Pi * dx / c.viewportH * c.RotateSpeed)
	c.rotateUp(2 * math32.Pi * dy / c.viewportH * c.RotateSpeed)
}

// Pan moves the target by a pointer drag of dx, dy pixels.
func (c *OrbitControls) Pan(dx, dy float32) {
	if !c.Enabled || !c.EnablePan {
		return
	}

	offset := c.Camera.Position.Sub(c.Camera.Target)
	targetDistance := offset.Length() * math32.Tan(c.Camera.FOV/2*math32.Pi/180)

	forward := c.Camera.Forward()
	right := forward.Cross(c.Camera.Up).Normalize()
	up := right.Cross(forward)

	left := right.Scale(-2 * dx * targetDistance / c.viewportH * c.PanSpeed)
	upward := up.Scale(2 * dy * targetDistance / c.viewportH * c.PanSpeed)
	c.panOffset = c.panOffset.Add(left).Add(upward)
}

// Zoom dollies towards the target; positive delta moves closer.
func (c *OrbitControls) Zoom(delta float32) {
	if !c.Enabled || !c.EnableZoom || delta == 0 {
		return
	}
	step := math32.Pow(0.95, c.ZoomSpeed)
	if delta > 0 {
		c.scale *= step
	} else {
		c.scale /= step
	}
}

// Update advances the controls by dt seconds and moves the camera.
func (c *OrbitControls) Update(dt float32) {
	if c.autoRotate && c.Enabled {
		if c.rampTween != nil {
			v, done := c.rampTween.Update(dt)
			c.ramp = v
			if done {
				c.rampTween = nil
				c.ramp = 1
			}
		}
		c.rotateLeft(2 * math32.Pi / 60 * c.AutoRotateSpeed * dt * c.ramp)
	}

	if c.EnableDamping {
		c.theta += c.deltaTheta * c.DampingFactor
		c.phi += c.deltaPhi * c.DampingFactor
	} else {
		c.theta += c.deltaTheta
		c.phi += c.deltaPhi
	}

	c.phi = clamp(c.phi, c.MinPolar, c.MaxPolar)
	c.phi = clamp(c.phi, polarEpsilon, math32.Pi-polarEpsilon)

	c.radius = clamp(c.radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Camera.Target = c.Camera.Target.Add(c.panOffset.Scale(c.DampingFactor))
	} else {
		c.Camera.Target = c.Camera.Target.Add(c.panOffset)
	}

	sinPhi, cosPhi := math32.Sincos(c.phi)
	sinTheta, cosTheta := math32.Sincos(c.theta)
	c.Camera.Position = c.Camera.Target.Add(math.Vec3{
		X: c.radius * sinPhi * sinTheta,
		Y: c.radius * cosPhi,
		Z: c.radius * sinPhi * cosTheta,
	})

	if c.EnableDamping {
		c.deltaTheta *= 1 - c.DampingFactor
		c.deltaPhi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Scale(1 - c.DampingFactor)
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
		c.panOffset = math.Vec3{}
	}
	c.scale = 1
}
