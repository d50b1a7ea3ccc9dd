// Package interaction turns pointer input into menu hover and open events.
//
// A Controller owns a Registry of menu entries, resolves pointer positions
// to scene nodes, drives the hover state machine and detects press/release
// clicks. All methods must be called from the frame goroutine.
package interaction

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/armillary/internal/assets"
	"github.com/Faultbox/armillary/internal/engine/scene"
)

var (
	// ErrDuplicateEntry is returned when an ID is registered twice.
	ErrDuplicateEntry = errors.New("duplicate menu entry")
	// ErrInvalidEntry is returned for an empty ID or a nil hit target.
	ErrInvalidEntry = errors.New("invalid menu entry")
)

// Decorations are the visual elements switched together with an entry.
// Any field may be nil.
type Decorations struct {
	// Highlight is outlined while the entry is hovered. When nil the hit
	// target is outlined instead.
	Highlight   *scene.Node
	Rings       []*scene.Node
	SphereLight *scene.Node
	TitleLight  *scene.Node
	// Title resolves once the title text has been built.
	Title *assets.Future[*scene.Node]
}

// MenuEntry is one interactive widget.
type MenuEntry struct {
	ID          string
	HitTarget   *scene.Node
	Decorations *Decorations
}

// Primary returns the node to outline while the entry is hovered.
func (e *MenuEntry) Primary() *scene.Node {
	if e.Decorations != nil && e.Decorations.Highlight != nil {
		return e.Decorations.Highlight
	}
	return e.HitTarget
}

// setActive switches the entry's lights and title. An unresolved title is
// left alone.
func (e *MenuEntry) setActive(on bool) {
	d := e.Decorations
	if d == nil {
		return
	}
	d.SphereLight.SetVisible(on)
	d.TitleLight.SetVisible(on)
	if title, ok := d.Title.Get(); ok {
		title.SetVisible(on)
	}
}

// Registry holds the menu entries in registration order.
type Registry struct {
	entries []*MenuEntry
	byID    map[string]*MenuEntry
	byNode  map[*scene.Node]*MenuEntry
	log     *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		byID:   make(map[string]*MenuEntry),
		byNode: make(map[*scene.Node]*MenuEntry),
		log:    log,
	}
}

// Register adds an entry. A duplicate ID is logged and rejected with
// ErrDuplicateEntry; the earlier entry is kept.
func (r *Registry) Register(id string, hitTarget *scene.Node, deco *Decorations) (*MenuEntry, error) {
	if id == "" || hitTarget == nil {
		return nil, fmt.Errorf("%w: id %q", ErrInvalidEntry, id)
	}
	if _, exists := r.byID[id]; exists {
		r.log.Warn("menu entry already registered, ignoring", zap.String("id", id))
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, id)
	}

	e := &MenuEntry{ID: id, HitTarget: hitTarget, Decorations: deco}
	r.entries = append(r.entries, e)
	r.byID[id] = e
	r.bind(hitTarget, e)
	if deco != nil && deco.Highlight != nil && deco.Highlight != hitTarget {
		r.bind(deco.Highlight, e)
	}

	r.log.Debug("menu entry registered", zap.String("id", id), zap.String("target", hitTarget.Name))
	return e, nil
}

func (r *Registry) bind(n *scene.Node, e *MenuEntry) {
	if owner, taken := r.byNode[n]; taken {
		r.log.Warn("node already owned by another entry",
			zap.String("node", n.Name), zap.String("owner", owner.ID), zap.String("id", e.ID))
		return
	}
	r.byNode[n] = e
}

// Lookup returns the entry owning a hit-tested node, or nil.
func (r *Registry) Lookup(n *scene.Node) *MenuEntry {
	if n == nil {
		return nil
	}
	return r.byNode[n]
}

// LookupID returns the entry with the given ID, or nil.
func (r *Registry) LookupID(id string) *MenuEntry {
	return r.byID[id]
}

// ForEach calls fn for every entry in registration order.
func (r *Registry) ForEach(fn func(*MenuEntry)) {
	for _, e := range r.entries {
		fn(e)
	}
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
