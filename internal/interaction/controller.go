package interaction

import (
	"go.uber.org/zap"

	"github.com/Faultbox/armillary/internal/engine/scene"
)

// Options configures a Controller. Outliner, AutoRotator and Panels may be
// nil.
type Options struct {
	Scene       *scene.Scene
	Camera      Projector
	Outliner    Outliner
	AutoRotator AutoRotator
	Panels      PanelOpener
	Logger      *zap.Logger
}

// Controller routes pointer events through the resolver into the hover
// state machine and the gesture detector.
type Controller struct {
	registry *Registry
	resolver *Resolver
	hover    *Hover
	gesture  *Gesture
	rotator  AutoRotator
	log      *zap.Logger

	suspended bool
}

// NewController creates a controller with an empty registry.
func NewController(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	reg := NewRegistry(log)
	return &Controller{
		registry: reg,
		resolver: NewResolver(opts.Scene, opts.Camera),
		hover:    NewHover(reg, opts.Outliner, opts.AutoRotator, log),
		gesture:  NewGesture(reg, opts.Panels, log),
		rotator:  opts.AutoRotator,
		log:      log,
	}
}

// Registry returns the controller's registry.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Hover returns the hover state machine.
func (c *Controller) Hover() *Hover {
	return c.hover
}

// Register adds a menu entry. A title that resolves later becomes visible
// only if its entry is hovered at that moment.
func (c *Controller) Register(id string, hitTarget *scene.Node, deco *Decorations) (*MenuEntry, error) {
	e, err := c.registry.Register(id, hitTarget, deco)
	if err != nil {
		return nil, err
	}
	if deco != nil && deco.Title != nil {
		deco.Title.OnReady(func(title *scene.Node) {
			title.SetVisible(c.hover.Current() == id)
		})
	}
	return e, nil
}

// Hovered returns the hovered entry ID, or "".
func (c *Controller) Hovered() string {
	return c.hover.Current()
}

// Suspended reports whether pointer handling is paused by an open panel.
func (c *Controller) Suspended() bool {
	return c.suspended
}

// PointerMove updates hover state for the NDC pointer position.
func (c *Controller) PointerMove(x, y float32) {
	if c.suspended {
		return
	}
	c.hover.Update(c.resolver.Resolve(x, y))
}

// PointerDown starts a gesture at the NDC pointer position.
func (c *Controller) PointerDown(x, y float32) {
	if c.suspended {
		return
	}
	c.gesture.Press(c.resolver.Resolve(x, y))
}

// PointerUp finishes a gesture. It returns the ID of the opened entry.
func (c *Controller) PointerUp(x, y float32) (string, bool) {
	if c.suspended {
		c.gesture.Clear()
		return "", false
	}
	return c.gesture.Release(c.resolver.Resolve(x, y))
}

// PanelOpened pauses hover and gestures, clears the hover and stops
// auto-rotation.
func (c *Controller) PanelOpened(id string) {
	c.log.Debug("panel opened, pointer suspended", zap.String("id", id))
	c.suspended = true
	c.gesture.Clear()
	c.hover.Reset()
	if c.rotator != nil {
		c.rotator.SetAutoRotate(false)
	}
}

// PanelClosed resumes hover and gestures and restarts auto-rotation.
func (c *Controller) PanelClosed(id string) {
	c.log.Debug("panel closed, pointer resumed", zap.String("id", id))
	c.suspended = false
	if c.rotator != nil {
		c.rotator.SetAutoRotate(true)
	}
}
