package interaction

import (
	"go.uber.org/zap"

	"github.com/Faultbox/armillary/internal/engine/scene"
)

// Outliner receives the set of nodes to draw with a highlight outline.
type Outliner interface {
	SetSelection(nodes []*scene.Node)
}

// AutoRotator toggles camera auto-rotation.
type AutoRotator interface {
	SetAutoRotate(on bool)
}

// Hover tracks which entry is under the pointer. Side effects fire only
// when the hovered entry changes.
type Hover struct {
	registry *Registry
	outline  Outliner
	rotator  AutoRotator
	log      *zap.Logger

	current  string
	selected []*scene.Node

	// OnEnter, if set, is called after an entry becomes hovered.
	OnEnter func(e *MenuEntry)
}

// NewHover creates an idle hover state machine. outline and rotator may
// be nil.
func NewHover(r *Registry, outline Outliner, rotator AutoRotator, log *zap.Logger) *Hover {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hover{
		registry: r,
		outline:  outline,
		rotator:  rotator,
		log:      log,
		selected: make([]*scene.Node, 0, 1),
	}
}

// Current returns the hovered entry ID, or "" when idle.
func (h *Hover) Current() string {
	return h.current
}

// Selected returns the outline set. It holds at most one node.
func (h *Hover) Selected() []*scene.Node {
	return h.selected
}

// Update feeds the node under the pointer (nil for a miss).
func (h *Hover) Update(hit *scene.Node) {
	e := h.registry.Lookup(hit)

	switch {
	case e == nil && h.current == "":
		return
	case e == nil:
		h.leave(true)
	case e.ID == h.current:
		return
	case h.current != "":
		h.log.Debug("hover switch", zap.String("from", h.current), zap.String("to", e.ID))
		h.allOff()
		h.enter(e)
	default:
		h.enter(e)
	}
}

// Reset returns to idle, clearing the outline and all lights. Auto-rotation
// is left untouched.
func (h *Hover) Reset() {
	if h.current == "" {
		return
	}
	h.leave(false)
}

func (h *Hover) enter(e *MenuEntry) {
	h.current = e.ID

	h.setSelection(e.Primary())

	if e.Decorations == nil {
		h.log.Debug("hovered entry has no decorations", zap.String("id", e.ID))
	}
	e.setActive(true)

	if h.rotator != nil {
		h.rotator.SetAutoRotate(false)
	}
	h.log.Debug("hover enter", zap.String("id", e.ID))

	if h.OnEnter != nil {
		h.OnEnter(e)
	}
}

func (h *Hover) leave(resumeRotation bool) {
	h.log.Debug("hover leave", zap.String("id", h.current))
	h.current = ""
	h.setSelection(nil)
	h.allOff()
	if resumeRotation && h.rotator != nil {
		h.rotator.SetAutoRotate(true)
	}
}

func (h *Hover) allOff() {
	h.registry.ForEach(func(e *MenuEntry) {
		e.setActive(false)
	})
}

func (h *Hover) setSelection(n *scene.Node) {
	h.selected = h.selected[:0]
	if n != nil {
		h.selected = append(h.selected, n)
	}
	if h.outline != nil {
		h.outline.SetSelection(h.selected)
	}
}
