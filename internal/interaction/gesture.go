package interaction

import (
	"go.uber.org/zap"

	"github.com/Faultbox/armillary/internal/engine/scene"
)

// PanelOpener shows the panel of a menu entry.
type PanelOpener interface {
	Open(id string)
}

// Gesture confirms a click when press and release land on the same node.
type Gesture struct {
	registry *Registry
	panels   PanelOpener
	log      *zap.Logger

	pressed *scene.Node
}

// NewGesture creates a gesture detector. panels may be nil.
func NewGesture(r *Registry, panels PanelOpener, log *zap.Logger) *Gesture {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gesture{registry: r, panels: panels, log: log}
}

// Press records the node under the pointer at press time (nil for none).
func (g *Gesture) Press(hit *scene.Node) {
	g.pressed = hit
}

// Release compares hit with the pressed node by identity. On a match that
// belongs to an entry, the entry's panel is opened and its ID returned.
// The pressed node is always cleared.
func (g *Gesture) Release(hit *scene.Node) (string, bool) {
	pressed := g.pressed
	g.pressed = nil

	if pressed == nil || hit != pressed {
		return "", false
	}
	e := g.registry.Lookup(hit)
	if e == nil {
		return "", false
	}

	g.log.Debug("menu click", zap.String("id", e.ID))
	if g.panels != nil {
		g.panels.Open(e.ID)
	}
	return e.ID, true
}

// Pressed returns the node recorded by the last Press, or nil.
func (g *Gesture) Pressed() *scene.Node {
	return g.pressed
}

// Clear drops any in-flight press.
func (g *Gesture) Clear() {
	g.pressed = nil
}
