package landing

import (
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/armillary/internal/assets"
	"github.com/Faultbox/armillary/internal/config"
	"github.com/Faultbox/armillary/internal/engine/camera"
	"github.com/Faultbox/armillary/internal/engine/scene"
	"github.com/Faultbox/armillary/internal/engine/ui2d"
	"github.com/Faultbox/armillary/pkg/math"
)

type fakeSurface struct {
	selection []*scene.Node
	width     int
	height    int
	resX      float32
	resY      float32
	renders   int
}

func (s *fakeSurface) SetSelection(nodes []*scene.Node) {
	s.selection = append([]*scene.Node(nil), nodes...)
}
func (s *fakeSurface) SetSize(w, h int)           { s.width, s.height = w, h }
func (s *fakeSurface) SetResolution(x, y float32) { s.resX, s.resY = x, y }
func (s *fakeSurface) Render(*scene.Scene, *camera.PerspectiveCamera) {
	s.renders++
}

type fakeCues struct {
	hovered int
	opened  []string
	closed  []string
	loaded  map[string][]byte
}

func (c *fakeCues) Hovered()              { c.hovered++ }
func (c *fakeCues) PanelOpened(id string) { c.opened = append(c.opened, id) }
func (c *fakeCues) PanelClosed(id string) { c.closed = append(c.closed, id) }
func (c *fakeCues) Load(name string, data []byte) error {
	if c.loaded == nil {
		c.loaded = make(map[string][]byte)
	}
	c.loaded[name] = data
	return nil
}

type fixture struct {
	app     *App
	surface *fakeSurface
	cues    *fakeCues
	loader  *assets.Loader
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Scene.StarCount = 0
	cfg.Scene.Seed = 42
	for i := range cfg.Menu {
		cfg.Menu[i].Faces = nil
	}
	return cfg
}

func newFixture(t *testing.T, cfg *config.Config, ui *ui2d.Context) *fixture {
	t.Helper()

	m := assets.NewManager()
	m.AddSource(fstest.MapFS{
		"sfx/hover.wav": {Data: []byte("hover-bytes")},
	})
	loader := assets.NewLoader(m, 2, nil)

	f := &fixture{surface: &fakeSurface{}, cues: &fakeCues{}, loader: loader}
	app, err := New(Options{
		Config:  cfg,
		Loader:  loader,
		Surface: f.surface,
		UI:      ui,
		Cues:    f.cues,
	})
	require.NoError(t, err)
	t.Cleanup(app.Close)
	f.app = app
	return f
}

// screenOf projects a world point to window pixels.
func (f *fixture) screenOf(p math.Vec3) (int, int) {
	clip := f.app.Camera().ViewProjection().MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	nx, ny := clip[0]/clip[3], clip[1]/clip[3]
	w, h := float32(f.app.width), float32(f.app.height)
	return int((nx + 1) / 2 * w), int((1 - ny) / 2 * h)
}

func (f *fixture) widget(id string) *Widget {
	for _, w := range f.app.Widgets() {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (f *fixture) over(id string) (int, int) {
	return f.screenOf(f.widget(id).Dice.Position)
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Options{Config: testConfig()})
	assert.Error(t, err)
}

func TestNewBuildsScene(t *testing.T) {
	cfg := testConfig()
	cfg.Scene.StarCount = 25
	f := newFixture(t, cfg, nil)

	require.Len(t, f.app.Widgets(), 4)
	assert.Equal(t, 4, f.app.Controller().Registry().Len())
	assert.Equal(t, int64(42), f.app.Seed())

	top := map[*scene.Node]bool{}
	stars := 0
	for _, n := range f.app.Scene().Children() {
		top[n] = true
		if n.Geometry != nil && n.Geometry.Shape == scene.ShapeSphere {
			stars++
		}
	}
	assert.Equal(t, 25, stars)

	for _, w := range f.app.Widgets() {
		assert.True(t, top[w.Hit], "%s hit box at root", w.ID)
		assert.True(t, top[w.Dice], "%s dice at root", w.ID)
		for _, r := range w.Rings {
			assert.True(t, top[r], "%s ring at root", w.ID)
		}
		assert.False(t, w.SphereLight.Visible)
		assert.False(t, w.TitleLight.Visible)

		// The built-in font resolves at once, so titles exist but are hidden.
		title, ok := w.Title.Get()
		require.True(t, ok, "%s title", w.ID)
		assert.False(t, title.Visible)
		assert.False(t, title.Pickable)
		assert.True(t, top[title])
	}
}

func TestDuplicateMenuSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.Menu = append(cfg.Menu, cfg.Menu[0])
	f := newFixture(t, cfg, nil)

	assert.Len(t, f.app.Widgets(), 4)
	assert.Equal(t, 4, f.app.Controller().Registry().Len())
}

func TestStarsDeterministic(t *testing.T) {
	a := buildStars(rand.New(rand.NewSource(7)), 50, 100, 0.25)
	b := buildStars(rand.New(rand.NewSource(7)), 50, 100, 0.25)
	c := buildStars(rand.New(rand.NewSource(8)), 50, 100, 0.25)

	require.Len(t, a, 50)
	differs := false
	for i := range a {
		assert.Equal(t, a[i].Position, b[i].Position)
		if a[i].Position != c[i].Position {
			differs = true
		}
		p := a[i].Position
		for _, v := range []float32{p.X, p.Y, p.Z} {
			assert.GreaterOrEqual(t, v, float32(-50))
			assert.Less(t, v, float32(50))
		}
	}
	assert.True(t, differs, "different seeds should give different layouts")
	assert.Same(t, a[0].Geometry, a[1].Geometry)
}

func TestResizeUpdatesCameraSurfaceAndResolution(t *testing.T) {
	f := newFixture(t, testConfig(), nil)

	assert.Equal(t, 1280, f.surface.width)
	assert.InDelta(t, 1280.0/720.0, f.app.Camera().Aspect, 1e-6)

	f.app.Resize(800, 400)
	assert.InDelta(t, 2.0, f.app.Camera().Aspect, 1e-6)
	assert.Equal(t, 800, f.surface.width)
	assert.Equal(t, 400, f.surface.height)
	assert.InDelta(t, 1.0/800, f.surface.resX, 1e-9)
	assert.InDelta(t, 1.0/400, f.surface.resY, 1e-9)

	f.app.SetPixelRatio(2)
	assert.InDelta(t, 2.0, f.app.Camera().Aspect, 1e-6)
	assert.Equal(t, 1600, f.surface.width)
	assert.InDelta(t, 1.0/800, f.surface.resY, 1e-9)

	// Minimized windows report zero size.
	f.app.Resize(0, 0)
	assert.Equal(t, 1600, f.surface.width)
	assert.InDelta(t, 2.0, f.app.Camera().Aspect, 1e-6)
}

func TestHoverHighlightsWidget(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	about := f.widget("about")
	x, y := f.over("about")

	f.app.PointerMove(x, y, 0, 0)

	assert.Equal(t, "about", f.app.Controller().Hovered())
	assert.Equal(t, []*scene.Node{about.Dice}, f.surface.selection)
	assert.True(t, about.SphereLight.Visible)
	assert.True(t, about.TitleLight.Visible)
	title, _ := about.Title.Get()
	assert.True(t, title.Visible)
	assert.False(t, f.app.Controls().AutoRotate())
	assert.Equal(t, 1, f.cues.hovered)

	// Leaving to empty space resets everything.
	f.app.PointerMove(f.app.width/2, f.app.height-2, 0, 0)
	assert.Equal(t, "", f.app.Controller().Hovered())
	assert.Empty(t, f.surface.selection)
	assert.False(t, about.SphereLight.Visible)
	assert.False(t, title.Visible)
	assert.True(t, f.app.Controls().AutoRotate())
}

func TestClickOpensPanelAndEscapeCloses(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	x, y := f.over("projects")

	f.app.PointerMove(x, y, 0, 0)
	f.app.PointerDown(x, y, ButtonLeft)
	f.app.PointerUp(x, y, ButtonLeft)

	assert.Equal(t, "projects", f.app.Panels().Current())
	assert.True(t, f.app.Controller().Suspended())
	assert.Equal(t, "", f.app.Controller().Hovered())
	assert.False(t, f.app.Controls().AutoRotate())
	assert.Equal(t, []string{"projects"}, f.cues.opened)

	// Pointer input is ignored while the panel is open.
	ax, ay := f.over("about")
	f.app.PointerMove(ax, ay, 0, 0)
	assert.Equal(t, "", f.app.Controller().Hovered())

	f.app.Escape()
	assert.False(t, f.app.Panels().IsOpen())
	assert.False(t, f.app.Controller().Suspended())
	assert.True(t, f.app.Controls().AutoRotate())
	assert.Equal(t, []string{"projects"}, f.cues.closed)
}

func TestPressAndReleaseOnDifferentWidgets(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	x, y := f.over("about")
	x2, y2 := f.over("social")

	f.app.PointerDown(x, y, ButtonLeft)
	f.app.PointerUp(x2, y2, ButtonLeft)

	assert.False(t, f.app.Panels().IsOpen())
}

func TestRightButtonDoesNotOpen(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	x, y := f.over("pups")

	f.app.PointerDown(x, y, ButtonRight)
	f.app.PointerUp(x, y, ButtonRight)

	assert.False(t, f.app.Panels().IsOpen())
}

func TestDragRotatesCamera(t *testing.T) {
	cfg := testConfig()
	cfg.Controls.AutoRotate = false
	f := newFixture(t, cfg, nil)
	before := f.app.Controls().Azimuth()

	cx, cy := f.app.width/2, f.app.height-2
	f.app.PointerDown(cx, cy, ButtonLeft)
	f.app.PointerMove(cx+100, cy, 100, 0)
	f.app.PointerUp(cx+100, cy, ButtonLeft)
	f.app.Frame(1.0 / 60)

	assert.NotEqual(t, before, f.app.Controls().Azimuth())
}

func TestAutoRotateDisabledInConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Controls.AutoRotate = false
	f := newFixture(t, cfg, nil)
	x, y := f.over("about")

	f.app.PointerMove(x, y, 0, 0)
	f.app.PointerMove(f.app.width/2, f.app.height-2, 0, 0)

	assert.False(t, f.app.Controls().AutoRotate())
}

func TestFrameAnimatesWidgets(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	w := f.widget("about")

	f.app.Frame(1.0 / 60)

	assert.InDelta(t, 0.02, w.Rings[0].Rotation.X, 1e-6)
	assert.InDelta(t, 0.01, w.Rings[0].Rotation.Y, 1e-6)
	assert.InDelta(t, 0.01, w.Rings[1].Rotation.Y, 1e-6)
	assert.InDelta(t, 0.01, w.Rings[2].Rotation.Z, 1e-6)
	assert.InDelta(t, -0.01, w.Dice.Rotation.X, 1e-6)
	assert.InDelta(t, -0.005, w.Dice.Rotation.Y, 1e-6)

	title, _ := w.Title.Get()
	assert.Equal(t, f.app.Camera().Orientation(), title.Rotation)
}

func TestSoundCuesLoaded(t *testing.T) {
	cfg := testConfig()
	cfg.Audio.HoverSound = "sfx/hover.wav"
	cfg.Audio.OpenSound = "sfx/missing.wav"
	f := newFixture(t, cfg, nil)

	f.loader.Wait()
	f.app.Frame(0)

	assert.Equal(t, []byte("hover-bytes"), f.cues.loaded[CueHover])
	assert.NotContains(t, f.cues.loaded, CueOpen)
}

func TestRenderDrawsOpenPanel(t *testing.T) {
	ui := ui2d.NewHeadlessContext(1280, 720)
	f := newFixture(t, testConfig(), ui)

	f.app.Render()
	assert.Equal(t, 1, f.surface.renders)
	solid, _ := ui.Renderer().QuadCount()
	assert.Zero(t, solid)

	f.app.Panels().Open("pups")
	f.app.Render()
	solid, text := ui.Renderer().QuadCount()
	assert.Greater(t, solid, 0)
	assert.Greater(t, text, 0)

	// Escape goes through the UI and closes on the next frame.
	f.app.Escape()
	f.app.Render()
	assert.False(t, f.app.Panels().IsOpen())
}

func TestQuickClickReachesUI(t *testing.T) {
	ui := ui2d.NewHeadlessContext(1280, 720)
	f := newFixture(t, testConfig(), ui)
	f.app.Panels().Open("about")

	f.app.PointerDown(10, 10, ButtonLeft)
	f.app.PointerUp(10, 10, ButtonLeft)

	in := ui.Input()
	assert.False(t, in.MouseLeftDown)
	assert.True(t, in.MouseLeftClicked, "press is latched until the UI frame")

	f.app.Render()
	assert.False(t, in.MouseLeftClicked)
	assert.True(t, f.app.Panels().IsOpen(), "click outside the Close button")
}
