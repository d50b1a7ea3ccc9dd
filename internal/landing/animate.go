package landing

import (
	"github.com/Faultbox/armillary/internal/engine/camera"
	"github.com/Faultbox/armillary/pkg/math"
)

// referenceFPS is the frame rate the per-frame spin amounts are tuned for.
const referenceFPS = 60

// Per-frame spin at referenceFPS, in radians.
var (
	ring0Spin = math.Vec3{X: 0.02, Y: 0.01}
	ring1Spin = math.Vec3{Y: 0.01}
	ring2Spin = math.Vec3{Z: 0.01}
	diceSpin  = math.Vec3{X: -0.01, Y: -0.005, Z: -0.001}
)

// Animator spins the widgets and turns the titles towards the camera.
type Animator struct {
	widgets []*Widget
	camera  *camera.PerspectiveCamera
}

// NewAnimator creates an animator for widgets viewed by cam.
func NewAnimator(widgets []*Widget, cam *camera.PerspectiveCamera) *Animator {
	return &Animator{widgets: widgets, camera: cam}
}

// Update advances the animation by dt seconds.
func (a *Animator) Update(dt float32) {
	k := dt * referenceFPS
	facing := a.camera.Orientation()

	for _, w := range a.widgets {
		w.Rings[0].Rotation = w.Rings[0].Rotation.Add(ring0Spin.Scale(k))
		w.Rings[1].Rotation = w.Rings[1].Rotation.Add(ring1Spin.Scale(k))
		w.Rings[2].Rotation = w.Rings[2].Rotation.Add(ring2Spin.Scale(k))
		w.Dice.Rotation = w.Dice.Rotation.Add(diceSpin.Scale(k))

		if title, ok := w.Title.Get(); ok {
			title.Rotation = facing
		}
	}
}
