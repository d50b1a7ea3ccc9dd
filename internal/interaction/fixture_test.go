package interaction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/armillary/internal/assets"
	"github.com/Faultbox/armillary/internal/engine/camera"
	"github.com/Faultbox/armillary/internal/engine/scene"
	"github.com/Faultbox/armillary/pkg/math"
)

type fakeOutliner struct {
	calls int
	last  []*scene.Node
}

func (f *fakeOutliner) SetSelection(nodes []*scene.Node) {
	f.calls++
	f.last = append([]*scene.Node(nil), nodes...)
}

type fakeRotator struct {
	on    bool
	calls []bool
}

func (f *fakeRotator) SetAutoRotate(on bool) {
	f.on = on
	f.calls = append(f.calls, on)
}

type fakePanels struct {
	opened []string
}

func (f *fakePanels) Open(id string) {
	f.opened = append(f.opened, id)
}

// widget is one menu entry's scene nodes.
type widget struct {
	id     string
	hitbox *scene.Node
	dice   *scene.Node
	deco   *Decorations
	title  *scene.Node
}

func newWidget(id string, pos math.Vec3) *widget {
	hit := scene.NewMesh(id+"-hitbox", scene.Box(2, 2, 2), scene.HitVolume())
	hit.Position = pos
	dice := scene.NewMesh(id+"-dice", scene.Box(1, 1, 1))
	dice.Position = pos

	sphere := scene.NewPointLight(id+"-sphere-light", [3]float32{1, 1, 1}, 10, 0)
	sphere.Visible = false
	titleLight := scene.NewPointLight(id+"-title-light", [3]float32{1, 1, 1}, 10, 0)
	titleLight.Visible = false

	title := scene.NewMesh(id+"-title", scene.Plane(2, 1))
	title.Visible = false
	title.Pickable = false

	return &widget{
		id:     id,
		hitbox: hit,
		dice:   dice,
		title:  title,
		deco: &Decorations{
			Highlight:   dice,
			SphereLight: sphere,
			TitleLight:  titleLight,
			Title:       assets.Ready(title),
		},
	}
}

func (w *widget) active() bool {
	return w.deco.SphereLight.Visible && w.deco.TitleLight.Visible && w.title.Visible
}

func (w *widget) dark() bool {
	return !w.deco.SphereLight.Visible && !w.deco.TitleLight.Visible && !w.title.Visible
}

type rig struct {
	scene    *scene.Scene
	cam      *camera.PerspectiveCamera
	outline  *fakeOutliner
	rotator  *fakeRotator
	panels   *fakePanels
	ctl      *Controller
	a, b     *widget
	star     *scene.Node
}

// newRig builds a scene with two widgets left and right of the origin and
// an unregistered star above them.
func newRig(t *testing.T) *rig {
	t.Helper()

	r := &rig{
		scene:   scene.New(),
		cam:     camera.NewPerspective(75, 16.0/9.0, 0.1, 1000),
		outline: &fakeOutliner{},
		rotator: &fakeRotator{on: true},
		panels:  &fakePanels{},
	}
	r.cam.Position = math.Vec3{Z: 30}
	r.cam.Target = math.Vec3{}

	r.a = newWidget("about", math.Vec3{X: -8})
	r.b = newWidget("projects", math.Vec3{X: 8})
	r.star = scene.NewMesh("star", scene.Sphere(1, 8, 8))
	r.star.Position = math.Vec3{Y: 8}

	for _, w := range []*widget{r.a, r.b} {
		r.scene.Add(w.hitbox, w.dice, w.deco.SphereLight, w.deco.TitleLight, w.title)
	}
	r.scene.Add(r.star)

	r.ctl = NewController(Options{
		Scene:       r.scene,
		Camera:      r.cam,
		Outliner:    r.outline,
		AutoRotator: r.rotator,
		Panels:      r.panels,
	})
	for _, w := range []*widget{r.a, r.b} {
		_, err := r.ctl.Register(w.id, w.hitbox, w.deco)
		require.NoError(t, err)
	}
	return r
}

// ndc returns the pointer position over a world point.
func (r *rig) ndc(p math.Vec3) (float32, float32) {
	c := r.cam.ViewProjection().TransformVec3(p)
	return c.X, c.Y
}

func (r *rig) over(w *widget) (float32, float32) {
	return r.ndc(w.hitbox.Position)
}

// empty is a pointer position that hits nothing.
func (r *rig) empty() (float32, float32) {
	return 0, -0.9
}
