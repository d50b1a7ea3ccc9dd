package picking

import (
	"testing"

	"github.com/Faultbox/armillary/pkg/math"
)

const eps = 1e-3

func near(a, b float32) bool {
	d := a - b
	return d < eps && d > -eps
}

func testInvViewProj() math.Mat4 {
	proj := math.Perspective(75*3.14159265/180, 1, 0.1, 1000)
	view := math.LookAt(math.Vec3{Z: 30}, math.Vec3{}, math.Vec3{Y: 1})
	return proj.Mul(view).Inverse()
}

func TestFromNDCCenter(t *testing.T) {
	r := FromNDC(0, 0, testInvViewProj())

	if !near(r.Origin.X, 0) || !near(r.Origin.Y, 0) {
		t.Errorf("center ray origin = %+v, want on the z axis", r.Origin)
	}
	if !near(r.Direction.Z, -1) {
		t.Errorf("center ray direction = %+v, want -Z", r.Direction)
	}
}

func TestFromNDCOffCenter(t *testing.T) {
	r := FromNDC(0.5, 0.5, testInvViewProj())
	if r.Direction.X <= 0 || r.Direction.Y <= 0 {
		t.Errorf("upper-right ray direction = %+v, want +X +Y components", r.Direction)
	}
	if !near(r.Direction.Length(), 1) {
		t.Errorf("direction not normalized: %v", r.Direction.Length())
	}
}

func TestToNDC(t *testing.T) {
	tests := []struct {
		name         string
		sx, sy       float32
		wantX, wantY float32
	}{
		{"top-left", 0, 0, -1, 1},
		{"center", 400, 300, 0, 0},
		{"bottom-right", 800, 600, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ToNDC(tt.sx, tt.sy, 800, 600)
			if !near(x, tt.wantX) || !near(y, tt.wantY) {
				t.Errorf("ToNDC(%v,%v) = (%v,%v), want (%v,%v)", tt.sx, tt.sy, x, y, tt.wantX, tt.wantY)
			}
		})
	}

	if x, y := ToNDC(10, 10, 0, 0); x != 0 || y != 0 {
		t.Errorf("zero viewport should map to origin, got (%v,%v)", x, y)
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(1, 1, 1, -1, -1, -1)

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{math.Vec3{Z: 10}, math.Vec3{Z: -1}}, true, 9},
		{"miss", Ray{math.Vec3{X: 5, Z: 10}, math.Vec3{Z: -1}}, false, 0},
		{"behind", Ray{math.Vec3{Z: 10}, math.Vec3{Z: 1}}, false, 0},
		{"inside", Ray{math.Vec3{}, math.Vec3{X: 1}}, true, 1},
		{"parallel outside", Ray{math.Vec3{Y: 2, Z: 10}, math.Vec3{Z: -1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && !near(got, tt.wantT) {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestIntersectSphere(t *testing.T) {
	center := math.Vec3{X: 0, Y: 0, Z: 0}

	r := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	if got, hit := r.IntersectSphere(center, 2); !hit || !near(got, 8) {
		t.Errorf("front hit = (%v,%v), want (8,true)", got, hit)
	}

	r = Ray{Origin: math.Vec3{X: 3, Z: 10}, Direction: math.Vec3{Z: -1}}
	if _, hit := r.IntersectSphere(center, 2); hit {
		t.Error("expected miss for offset ray")
	}

	r = Ray{Origin: math.Vec3{}, Direction: math.Vec3{Y: 1}}
	if got, hit := r.IntersectSphere(center, 2); !hit || !near(got, 2) {
		t.Errorf("inside hit = (%v,%v), want (2,true)", got, hit)
	}

	r = Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: 1}}
	if _, hit := r.IntersectSphere(center, 2); hit {
		t.Error("sphere behind the ray should not be hit")
	}
}

func TestTransformKeepsParameter(t *testing.T) {
	r := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	m := math.Scale(2, 2, 2).Inverse()

	local := r.Transform(m)
	world := r.At(4)
	got := local.At(4)
	if !near(got.Z, world.Z*0.5) {
		t.Errorf("local point z = %v, want %v", got.Z, world.Z*0.5)
	}
}
