package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/armillary/pkg/math"
)

const eps = 1e-3

func near(a, b float32) bool {
	return math32.Abs(a-b) < eps
}

func newTestRig() (*PerspectiveCamera, *OrbitControls) {
	cam := NewPerspective(75, 16.0/9.0, 0.1, 1000)
	cam.Position = math.Vec3{Z: 30}
	cam.Target = math.Vec3{}
	ctl := NewOrbitControls(cam)
	ctl.SetViewport(1280, 720)
	return cam, ctl
}

func TestNewOrbitControlsReadsCamera(t *testing.T) {
	_, ctl := newTestRig()

	if !near(ctl.Distance(), 30) {
		t.Errorf("distance = %v, want 30", ctl.Distance())
	}
	if !near(ctl.Azimuth(), 0) {
		t.Errorf("azimuth = %v, want 0", ctl.Azimuth())
	}
	if !near(ctl.Polar(), math32.Pi/2) {
		t.Errorf("polar = %v, want pi/2", ctl.Polar())
	}
}

func TestUpdateWithoutInputKeepsCamera(t *testing.T) {
	cam, ctl := newTestRig()
	ctl.Update(1.0 / 60)

	if !near(cam.Position.X, 0) || !near(cam.Position.Y, 0) || !near(cam.Position.Z, 30) {
		t.Errorf("camera moved to %+v without input", cam.Position)
	}
}

func TestAutoRotateAdvancesAzimuth(t *testing.T) {
	_, ctl := newTestRig()
	ctl.AutoRotateSpeed = -0.5
	ctl.SetAutoRotate(true)

	ctl.Update(1)
	want := 2 * math32.Pi / 60 * 0.5
	if !near(ctl.Azimuth(), want) {
		t.Errorf("azimuth after 1s = %v, want %v", ctl.Azimuth(), want)
	}

	ctl.SetAutoRotate(false)
	before := ctl.Azimuth()
	ctl.Update(1)
	if !near(ctl.Azimuth(), before) {
		t.Errorf("azimuth changed while auto-rotate off: %v -> %v", before, ctl.Azimuth())
	}
}

func TestAutoRotateEasesIn(t *testing.T) {
	_, ctl := newTestRig()
	ctl.AutoRotateSpeed = 1
	ctl.AutoRotateEase = 1
	ctl.SetAutoRotate(true)

	ctl.Update(0.1)
	full := 2 * math32.Pi / 60 * 0.1
	got := math32.Abs(ctl.Azimuth())
	if got <= 0 || got >= full/2 {
		t.Errorf("first step moved %v, want a fraction of %v", got, full)
	}

	for i := 0; i < 20; i++ {
		ctl.Update(0.1)
	}
	before := ctl.Azimuth()
	ctl.Update(0.1)
	if step := math32.Abs(ctl.Azimuth() - before); !near(step, full) {
		t.Errorf("step after ease = %v, want %v", step, full)
	}
}

func TestSetAutoRotateIsIdempotent(t *testing.T) {
	_, ctl := newTestRig()
	ctl.AutoRotateEase = 1
	ctl.SetAutoRotate(true)
	for i := 0; i < 20; i++ {
		ctl.Update(0.1)
	}

	ctl.SetAutoRotate(true)
	if ctl.rampTween != nil {
		t.Error("re-enabling an active auto-rotate should not restart the ease")
	}
}

func TestDisabledControlsIgnoreInput(t *testing.T) {
	_, ctl := newTestRig()
	ctl.Enabled = false
	ctl.Rotate(100, 0)
	ctl.Pan(100, 0)
	ctl.Update(1)

	if !near(ctl.Azimuth(), 0) {
		t.Errorf("azimuth = %v, want 0 with controls disabled", ctl.Azimuth())
	}
}

func TestRotateAndDamping(t *testing.T) {
	_, ctl := newTestRig()
	ctl.EnableDamping = true
	ctl.Rotate(-72, 0)

	ctl.Update(1.0 / 60)
	first := ctl.Azimuth()
	if first <= 0 {
		t.Fatalf("azimuth = %v, want positive after dragging left", first)
	}

	for i := 0; i < 600; i++ {
		ctl.Update(1.0 / 60)
	}
	total := 2 * math32.Pi * 72 / 720
	if math32.Abs(ctl.Azimuth()-total) > 0.01 {
		t.Errorf("damped azimuth settled at %v, want %v", ctl.Azimuth(), total)
	}
}

func TestPolarIsClamped(t *testing.T) {
	_, ctl := newTestRig()
	ctl.Rotate(0, 10000)
	ctl.Update(0)

	if ctl.Polar() <= 0 {
		t.Errorf("polar = %v, want clamped above 0", ctl.Polar())
	}
}

func TestZoomDisabled(t *testing.T) {
	_, ctl := newTestRig()
	ctl.EnableZoom = false
	ctl.Zoom(5)
	ctl.Update(0)
	if !near(ctl.Distance(), 30) {
		t.Errorf("distance = %v, want 30 with zoom disabled", ctl.Distance())
	}

	ctl.EnableZoom = true
	ctl.Zoom(1)
	ctl.Update(0)
	if ctl.Distance() >= 30 {
		t.Errorf("distance = %v, want closer after zoom in", ctl.Distance())
	}
}

func TestPanMovesTarget(t *testing.T) {
	cam, ctl := newTestRig()
	ctl.Pan(100, 0)
	ctl.Update(0)

	if cam.Target.X >= 0 {
		t.Errorf("target = %+v, want moved to -X after dragging right", cam.Target)
	}
	if !near(cam.Position.X, cam.Target.X) {
		t.Errorf("camera should move with the target: pos %+v target %+v", cam.Position, cam.Target)
	}
}

func TestOrientationFacesCamera(t *testing.T) {
	tests := []struct {
		name    string
		pos     math.Vec3
		wantYaw float32
	}{
		{"front", math.Vec3{Z: 30}, 0},
		{"right", math.Vec3{X: 30}, math32.Pi / 2},
		{"left", math.Vec3{X: -30}, -math32.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewPerspective(75, 1, 0.1, 1000)
			cam.Position = tt.pos
			cam.Target = math.Vec3{}

			o := cam.Orientation()
			if !near(o.Y, tt.wantYaw) || !near(o.X, 0) {
				t.Errorf("orientation = %+v, want yaw %v pitch 0", o, tt.wantYaw)
			}
		})
	}
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	cam := NewPerspective(75, 1.5, 0.1, 1000)
	cam.SetAspect(0)
	if cam.Aspect != 1.5 {
		t.Errorf("aspect = %v, want 1.5", cam.Aspect)
	}
	cam.SetAspect(2)
	if cam.Aspect != 2 {
		t.Errorf("aspect = %v, want 2", cam.Aspect)
	}
}

func TestInverseViewProjectionRoundTrip(t *testing.T) {
	cam, _ := newTestRig()
	p := math.Vec3{X: 3, Y: -2, Z: 1}

	clip := cam.ViewProjection().TransformVec3(p)
	back := cam.InverseViewProjection().TransformVec3(clip)
	if !near(back.X, p.X) || !near(back.Y, p.Y) || !near(back.Z, p.Z) {
		t.Errorf("round trip = %+v, want %+v", back, p)
	}
}
