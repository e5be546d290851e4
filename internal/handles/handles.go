// ABOUTME: Transient display handles for image payloads.
// ABOUTME: Arena-indexed token table with idempotent release.

package handles

import "sync"

// Scope separates handles for freshly selected, not-yet-persisted inputs
// (owned by an in-progress edit and released wholesale if the edit is
// cancelled) from handles over already-persisted payloads (created for
// display, released on teardown).
type Scope int

const (
	ScopePending Scope = iota
	ScopeStored
)

// Handle is an opaque token referencing a payload in the manager's
// table. The zero value is never a live handle.
type Handle uint64

// Manager maps handles to payload bytes for the lifetime of a session.
// Handles are not garbage-collected; each one acquired must eventually
// be released exactly once, though extra releases are harmless no-ops.
type Manager struct {
	mu      sync.Mutex
	next    Handle
	entries map[Handle]entry
}

type entry struct {
	data  []byte
	scope Scope
}

func NewManager() *Manager {
	return &Manager{entries: make(map[Handle]entry)}
}

// Acquire registers payload and returns a handle for it. Cheap: the
// payload bytes are referenced, not copied.
func (m *Manager) Acquire(payload []byte, scope Scope) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.entries[m.next] = entry{data: payload, scope: scope}
	return m.next
}

// Resolve returns the payload for h, or ok=false if h was never issued
// or has been released.
func (m *Manager) Resolve(h Handle) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[h]
	return e.data, ok
}

// Release frees h. Releasing an unknown or already-released handle is a
// no-op, never an error.
func (m *Manager) Release(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, h)
}

// ReleaseScope frees every live handle in the given scope, e.g. all
// pending handles when an edit is cancelled.
func (m *Manager) ReleaseScope(scope Scope) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for h, e := range m.entries {
		if e.scope == scope {
			delete(m.entries, h)
		}
	}
}

// Live returns the number of unreleased handles.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
