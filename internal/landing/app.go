// Package landing assembles the landing scene: the starfield, the menu
// widgets, the camera controls and the panels, and routes window events
// to them.
package landing

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/armillary/internal/assets"
	"github.com/Faultbox/armillary/internal/config"
	"github.com/Faultbox/armillary/internal/engine/camera"
	"github.com/Faultbox/armillary/internal/engine/picking"
	"github.com/Faultbox/armillary/internal/engine/scene"
	"github.com/Faultbox/armillary/internal/engine/ui2d"
	"github.com/Faultbox/armillary/internal/interaction"
	"github.com/Faultbox/armillary/internal/panel"
	"github.com/Faultbox/armillary/pkg/math"
)

// Sound cue names passed to Cues.Load.
const (
	CueHover = "hover"
	CueOpen  = "open"
)

const skydomeRadius = 500

// Surface draws frames and owns the outline selection. It is the
// post-processing composer in the real program.
type Surface interface {
	SetSelection(nodes []*scene.Node)
	SetSize(width, height int)
	SetResolution(x, y float32)
	Render(s *scene.Scene, cam *camera.PerspectiveCamera)
}

// Cues plays interface sounds.
type Cues interface {
	panel.Listener
	Hovered()
	Load(name string, data []byte) error
}

// Pointer buttons, matching SDL numbering.
const (
	ButtonLeft  = 1
	ButtonRight = 3
)

type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

// Options configures an App. UI and Cues may be nil.
type Options struct {
	Config  *config.Config
	Loader  *assets.Loader
	Surface Surface
	UI      *ui2d.Context
	Cues    Cues
	Logger  *zap.Logger
}

// App is the running landing scene. All methods must be called from the
// frame goroutine.
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	loader *assets.Loader

	scene      *scene.Scene
	camera     *camera.PerspectiveCamera
	controls   *camera.OrbitControls
	controller *interaction.Controller
	panels     *panel.Manager
	animator   *Animator
	widgets    []*Widget
	surface    Surface
	ui         *ui2d.Context
	view       *panel.View

	seed       int64
	width      int
	height     int
	pixelRatio float32
	drag       dragMode
}

// autoRotator forwards hover-driven auto-rotation to the controls unless
// auto-rotation is disabled in the configuration.
type autoRotator struct {
	controls *camera.OrbitControls
	allowed  bool
}

func (r autoRotator) SetAutoRotate(on bool) {
	r.controls.SetAutoRotate(on && r.allowed)
}

// New builds the scene and wires the interaction controller, panels and
// cues together.
func New(opts Options) (*App, error) {
	if opts.Config == nil || opts.Loader == nil || opts.Surface == nil {
		return nil, errors.New("landing: config, loader and surface are required")
	}
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	a := &App{
		cfg:        cfg,
		log:        log,
		loader:     opts.Loader,
		scene:      scene.New(),
		surface:    opts.Surface,
		ui:         opts.UI,
		pixelRatio: 1,
	}
	a.scene.Background = cfg.Scene.Background

	a.setupCamera()

	a.panels = panel.NewManager(log.Named("panel"))
	for _, mc := range cfg.Menu {
		a.panels.Register(panel.Content{ID: mc.ID, Heading: mc.Panel.Heading, Body: mc.Panel.Body})
	}

	a.controller = interaction.NewController(interaction.Options{
		Scene:       a.scene,
		Camera:      a.camera,
		Outliner:    a.surface,
		AutoRotator: autoRotator{controls: a.controls, allowed: cfg.Controls.AutoRotate},
		Panels:      a.panels,
		Logger:      log.Named("interaction"),
	})
	a.panels.AddListener(a.controller)

	if opts.Cues != nil {
		a.setupCues(opts.Cues)
	}

	a.buildContent()
	a.animator = NewAnimator(a.widgets, a.camera)

	if a.ui != nil {
		a.view = panel.NewView(a.panels, a.ui)
	}

	a.Resize(cfg.Window.Width, cfg.Window.Height)
	return a, nil
}

func (a *App) setupCamera() {
	cc := a.cfg.Camera
	aspect := float32(1)
	if a.cfg.Window.Height > 0 {
		aspect = float32(a.cfg.Window.Width) / float32(a.cfg.Window.Height)
	}
	a.camera = camera.NewPerspective(cc.FOV, aspect, cc.Near, cc.Far)
	a.camera.Position = math.Vec3{Z: cc.Distance}
	a.camera.Target = math.Vec3{}

	ctl := a.cfg.Controls
	a.controls = camera.NewOrbitControls(a.camera)
	a.controls.EnableZoom = ctl.EnableZoom
	a.controls.EnableRotate = ctl.EnableRotate
	a.controls.EnablePan = ctl.EnablePan
	a.controls.EnableDamping = ctl.EnableDamping
	a.controls.DampingFactor = ctl.DampingFactor
	a.controls.AutoRotateSpeed = ctl.AutoRotateSpeed
	a.controls.AutoRotateEase = ctl.ResumeSeconds
	a.controls.SetAutoRotate(ctl.AutoRotate)
}

func (a *App) setupCues(cues Cues) {
	a.panels.AddListener(cues)
	a.controller.Hover().OnEnter = func(*interaction.MenuEntry) {
		cues.Hovered()
	}

	ac := a.cfg.Audio
	for _, c := range []struct{ name, path string }{
		{CueHover, ac.HoverSound},
		{CueOpen, ac.OpenSound},
	} {
		if c.path == "" {
			continue
		}
		name, path := c.name, c.path
		f := a.loader.Bytes(path)
		f.OnReady(func(data []byte) {
			if err := cues.Load(name, data); err != nil {
				a.log.Warn("load sound cue", zap.String("cue", name), zap.String("path", path), zap.Error(err))
			}
		})
		f.OnFail(func(err error) {
			a.log.Warn("read sound cue", zap.String("cue", name), zap.String("path", path), zap.Error(err))
		})
	}
}

func (a *App) buildContent() {
	sc := a.cfg.Scene

	a.seed = sc.Seed
	if a.seed == 0 {
		a.seed = time.Now().UnixNano()
	}
	a.log.Info("building scene", zap.Int64("seed", a.seed), zap.Int("stars", sc.StarCount))

	rng := rand.New(rand.NewSource(a.seed))
	a.scene.Add(buildStars(rng, sc.StarCount, sc.StarSpread, sc.StarRadius)...)

	key := scene.NewPointLight("key-light", sc.KeyLight.Color, sc.KeyLight.Intensity, 0)
	key.Position = math.V3(sc.KeyLight.Position)
	a.scene.Add(key, scene.NewAmbientLight("ambient", [3]float32{1, 1, 1}, sc.Ambient))

	if bg := a.cfg.Assets.Background; bg != "" {
		tex := a.loader.Texture(bg)
		tex.OnFail(func(err error) {
			a.log.Warn("background texture", zap.String("path", bg), zap.Error(err))
		})
		a.scene.Add(buildSkydome(tex, skydomeRadius))
	}

	font := a.loader.Font(a.cfg.Assets.TitleFont)
	for _, mc := range a.cfg.Menu {
		if a.controller.Registry().LookupID(mc.ID) != nil {
			a.log.Warn("duplicate menu id, skipping", zap.String("id", mc.ID))
			continue
		}
		w := buildWidget(a.scene, mc, a.loader, font)
		if _, err := a.controller.Register(mc.ID, w.Hit, w.Decorations()); err != nil {
			a.log.Warn("register menu", zap.String("id", mc.ID), zap.Error(err))
			continue
		}
		id := mc.ID
		w.Title.OnFail(func(err error) {
			a.log.Warn("title unavailable", zap.String("id", id), zap.Error(err))
		})
		for _, face := range mc.Faces {
			a.watchTexture(id, face)
		}
		a.widgets = append(a.widgets, w)
	}
}

// watchTexture logs a dice face that failed to load; the face draws
// untextured.
func (a *App) watchTexture(id, path string) {
	a.loader.Texture(path).OnFail(func(err error) {
		a.log.Warn("face texture", zap.String("id", id), zap.String("path", path), zap.Error(err))
	})
}

// Resize applies a new window size to the camera aspect, the surface
// size and the FXAA resolution together. Zero sizes (minimized windows)
// are ignored.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height

	pw, ph := a.PixelSize()
	a.camera.SetAspect(float32(width) / float32(height))
	a.controls.SetViewport(int32(width), int32(height))
	a.surface.SetSize(pw, ph)
	a.surface.SetResolution(1/float32(pw), 1/float32(ph))
	if a.ui != nil {
		a.ui.Resize(pw, ph)
	}
	a.log.Debug("resized", zap.Int("width", width), zap.Int("height", height),
		zap.Int("pixel_width", pw), zap.Int("pixel_height", ph))
}

// SetPixelRatio sets framebuffer pixels per window unit and reapplies
// the current size.
func (a *App) SetPixelRatio(r float32) {
	if r <= 0 {
		return
	}
	a.pixelRatio = r
	a.Resize(a.width, a.height)
}

// PixelSize returns the framebuffer size.
func (a *App) PixelSize() (int, int) {
	pw := int(float32(a.width)*a.pixelRatio + 0.5)
	ph := int(float32(a.height)*a.pixelRatio + 0.5)
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	return pw, ph
}

func (a *App) ndc(x, y int) (float32, float32) {
	return picking.ToNDC(float32(x), float32(y), float32(a.width), float32(a.height))
}

func (a *App) uiPointer(x, y int) {
	if a.ui == nil {
		return
	}
	in := a.ui.Input()
	in.MouseX = float32(x) * a.pixelRatio
	in.MouseY = float32(y) * a.pixelRatio
}

// PointerMove handles pointer motion in window coordinates.
func (a *App) PointerMove(x, y, dx, dy int) {
	a.uiPointer(x, y)
	if a.panels.IsOpen() {
		return
	}

	switch a.drag {
	case dragRotate:
		a.controls.Rotate(float32(dx), float32(dy))
	case dragPan:
		a.controls.Pan(float32(dx), float32(dy))
	}
	a.controller.PointerMove(a.ndc(x, y))
}

// PointerDown handles a button press in window coordinates.
func (a *App) PointerDown(x, y int, button uint8) {
	a.uiPointer(x, y)
	if button == ButtonLeft && a.ui != nil {
		in := a.ui.Input()
		in.MouseLeftDown = true
		in.MouseLeftClicked = true
	}
	if a.panels.IsOpen() {
		return
	}

	switch button {
	case ButtonLeft:
		a.drag = dragRotate
		a.controller.PointerDown(a.ndc(x, y))
	case ButtonRight:
		a.drag = dragPan
	}
}

// PointerUp handles a button release in window coordinates.
func (a *App) PointerUp(x, y int, button uint8) {
	a.uiPointer(x, y)
	a.drag = dragNone
	if button != ButtonLeft {
		return
	}
	if a.ui != nil {
		a.ui.Input().MouseLeftDown = false
	}
	if id, ok := a.controller.PointerUp(a.ndc(x, y)); ok {
		a.log.Info("menu selected", zap.String("id", id))
	}
}

// Wheel zooms the camera when zoom is enabled.
func (a *App) Wheel(delta float32) {
	if a.panels.IsOpen() {
		return
	}
	a.controls.Zoom(delta)
}

// Escape closes the open panel.
func (a *App) Escape() {
	if a.ui != nil {
		a.ui.Input().KeyEscape = true
		return
	}
	a.panels.CloseCurrent()
}

// Frame applies finished asset loads and advances the camera and the
// animation by dt seconds.
func (a *App) Frame(dt float32) {
	a.loader.Poll()
	a.controls.Update(dt)
	a.animator.Update(dt)
}

// Render draws the scene and the open panel.
func (a *App) Render() {
	a.surface.Render(a.scene, a.camera)
	if a.ui == nil {
		return
	}
	a.ui.Begin()
	a.view.Render()
	a.ui.End()
}

// Scene returns the scene graph.
func (a *App) Scene() *scene.Scene { return a.scene }

// Camera returns the camera.
func (a *App) Camera() *camera.PerspectiveCamera { return a.camera }

// Controls returns the orbit controls.
func (a *App) Controls() *camera.OrbitControls { return a.controls }

// Controller returns the interaction controller.
func (a *App) Controller() *interaction.Controller { return a.controller }

// Panels returns the panel manager.
func (a *App) Panels() *panel.Manager { return a.panels }

// Widgets returns the menu widgets in configuration order.
func (a *App) Widgets() []*Widget { return a.widgets }

// Seed returns the star field seed in use.
func (a *App) Seed() int64 { return a.seed }

// Close waits for outstanding asset loads.
func (a *App) Close() {
	a.loader.Close()
}
