// Package panel manages the content panels opened from the menu widgets.
package panel

import (
	"go.uber.org/zap"
)

// Content is the text of one panel.
type Content struct {
	ID      string
	Heading string
	Body    []string
}

// Listener is notified when panels open and close.
type Listener interface {
	PanelOpened(id string)
	PanelClosed(id string)
}

// Manager holds panel content per menu entry and tracks the open panel.
// At most one panel is open at a time.
type Manager struct {
	panels    map[string]Content
	current   string
	listeners []Listener
	log       *zap.Logger
}

// NewManager creates an empty panel manager.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		panels: make(map[string]Content),
		log:    log,
	}
}

// Register adds or replaces the content for c.ID.
func (m *Manager) Register(c Content) {
	m.panels[c.ID] = c
}

// AddListener registers l for open/close notifications.
func (m *Manager) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

// Open shows the panel for id. Unknown ids are logged and ignored.
// Opening a panel while another is open closes the other first.
func (m *Manager) Open(id string) {
	if _, ok := m.panels[id]; !ok {
		m.log.Warn("open unknown panel", zap.String("id", id))
		return
	}
	if m.current == id {
		return
	}
	if m.current != "" {
		m.Close(m.current)
	}

	m.current = id
	m.log.Debug("panel opened", zap.String("id", id))
	for _, l := range m.listeners {
		l.PanelOpened(id)
	}
}

// Close hides the panel for id if it is the open one.
func (m *Manager) Close(id string) {
	if id == "" || m.current != id {
		return
	}

	m.current = ""
	m.log.Debug("panel closed", zap.String("id", id))
	for _, l := range m.listeners {
		l.PanelClosed(id)
	}
}

// CloseCurrent closes whichever panel is open.
func (m *Manager) CloseCurrent() {
	m.Close(m.current)
}

// Current returns the open panel id, or "" when none is open.
func (m *Manager) Current() string {
	return m.current
}

// IsOpen reports whether a panel is open.
func (m *Manager) IsOpen() bool {
	return m.current != ""
}

// Content returns the content registered for id.
func (m *Manager) Content(id string) (Content, bool) {
	c, ok := m.panels[id]
	return c, ok
}
