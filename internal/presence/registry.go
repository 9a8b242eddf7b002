// Package presence tracks which connections are online and the display name
// each declared at join time. It is the source of truth for the users list.
package presence

import "sync"

// Registry maps live connection IDs to display names. Names are not unique;
// two participants may share one. An entry lives exactly as long as the
// underlying connection.
type Registry struct {
	mu    sync.RWMutex
	names map[string]string
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]string)}
}

// Join records the display name for a connection, overwriting any previous
// declaration. Empty connection IDs are ignored.
func (r *Registry) Join(connID, name string) {
	if connID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.names[connID]; !ok {
		r.order = append(r.order, connID)
	}
	r.names[connID] = name
}

// Leave removes the connection and returns the name it had registered.
// A connection that never joined is a silent no-op.
func (r *Registry) Leave(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.names[connID]
	if !ok {
		return "", false
	}
	delete(r.names, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return name, true
}

// Name returns the display name registered for a connection.
func (r *Registry) Name(connID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[connID]
	return name, ok
}

// Snapshot returns the display names of everyone online, in registration
// order, duplicates included.
func (r *Registry) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.names[id])
	}
	return out
}

// Count returns the number of registered participants.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}
