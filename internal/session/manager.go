// Package session manages editing tabs. Each tab owns an independent
// room engine (document, history, paint state) plus view state; the
// manager arbitrates which tab is live.
package session

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/roomstorm/internal/engine"
	"github.com/dshills/roomstorm/internal/engine/document"
)

// ErrTabNotFound indicates no tab has the given id.
var ErrTabNotFound = errors.New("tab not found")

// ViewState is the per-tab viewport the UI wants restored on switch.
type ViewState struct {
	ScrollX     int
	ScrollY     int
	Zoom        float64
	ActiveLayer string
}

// Tab is one editing session.
type Tab struct {
	// ID is an opaque identifier, stable for the tab's lifetime.
	ID string

	// Engine is the tab's room engine.
	Engine *engine.Engine

	// View is the last saved viewport for this tab.
	View ViewState

	// modified indicates unsaved changes.
	modified atomic.Bool
}

// NewTab creates a tab around an engine.
func NewTab(e *engine.Engine) *Tab {
	return &Tab{
		ID:     uuid.NewString(),
		Engine: e,
		View:   ViewState{Zoom: 1},
	}
}

// Name returns the tab's room name.
func (t *Tab) Name() string { return t.Engine.Name() }

// IsModified returns true if the tab has unsaved changes.
func (t *Tab) IsModified() bool { return t.modified.Load() }

// SetModified sets the modified flag.
func (t *Tab) SetModified(modified bool) { t.modified.Store(modified) }

// Manager holds all open tabs. No two tabs' histories interact; the
// active tab's state is the only live state.
type Manager struct {
	mu     sync.RWMutex
	tabs   map[string]*Tab // id -> tab
	order  []string        // open order for navigation
	active string
}

// NewManager creates an empty tab manager.
func NewManager() *Manager {
	return &Manager{tabs: make(map[string]*Tab)}
}

// Open creates a tab editing the given room and makes it active. If a
// tab already holds a room with the same name, that tab is activated
// instead of opening a duplicate.
func (m *Manager) Open(r *document.Room, opts ...engine.Option) *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.order {
		if m.tabs[id].Name() == r.Name {
			m.active = id
			return m.tabs[id]
		}
	}

	tab := NewTab(engine.New(append([]engine.Option{engine.WithRoom(r)}, opts...)...))
	m.tabs[tab.ID] = tab
	m.order = append(m.order, tab.ID)
	m.active = tab.ID
	return tab
}

// Switch saves the active tab's view state and activates the target.
func (m *Manager) Switch(id string, current ViewState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tabs[id]; !ok {
		return ErrTabNotFound
	}
	if tab, ok := m.tabs[m.active]; ok {
		tab.View = current
	}
	m.active = id
	return nil
}

// Close removes a tab. Closing the last remaining tab does nothing.
// If the active tab is closed, an adjacent tab becomes active first.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tabs[id]; !ok {
		return ErrTabNotFound
	}
	if len(m.order) == 1 {
		return nil
	}

	idx := m.indexLocked(id)
	if m.active == id {
		// Prefer the tab to the left, else the one that slides in
		// from the right.
		adj := idx - 1
		if adj < 0 {
			adj = idx + 1
		}
		m.active = m.order[adj]
	}

	delete(m.tabs, id)
	m.order = append(m.order[:idx], m.order[idx+1:]...)
	return nil
}

// Active returns the active tab, or nil when no tabs are open.
func (m *Manager) Active() *Tab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tabs[m.active]
}

// Get returns a tab by id.
func (m *Manager) Get(id string) (*Tab, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tab, ok := m.tabs[id]
	return tab, ok
}

// ByName returns the tab editing the named room.
func (m *Manager) ByName(name string) (*Tab, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if m.tabs[id].Name() == name {
			return m.tabs[id], true
		}
	}
	return nil, false
}

// All returns the open tabs in open order.
func (m *Manager) All() []*Tab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tabs := make([]*Tab, 0, len(m.order))
	for _, id := range m.order {
		tabs = append(tabs, m.tabs[id])
	}
	return tabs
}

// Count returns the number of open tabs.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tabs)
}

// Next activates and returns the next tab in open order, wrapping
// around at the end.
func (m *Manager) Next() *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexLocked(m.active)
	if idx < 0 {
		return nil
	}
	m.active = m.order[(idx+1)%len(m.order)]
	return m.tabs[m.active]
}

// Previous activates and returns the previous tab in open order,
// wrapping around at the start.
func (m *Manager) Previous() *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexLocked(m.active)
	if idx < 0 {
		return nil
	}
	idx--
	if idx < 0 {
		idx = len(m.order) - 1
	}
	m.active = m.order[idx]
	return m.tabs[m.active]
}

// HasDirty returns true if any tab has unsaved changes.
func (m *Manager) HasDirty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, tab := range m.tabs {
		if tab.IsModified() {
			return true
		}
	}
	return false
}

func (m *Manager) indexLocked(id string) int {
	for i, o := range m.order {
		if o == id {
			return i
		}
	}
	return -1
}
