package flare

import (
	"sync"
	"sync/atomic"
)

// entry is one category registration. Once registrations carry a fired
// flag so that a re-entrant emit during the listener's own invocation
// cannot deliver to it a second time before its self-removal lands.
type entry struct {
	id       any
	listener Listener
	once     bool
	fired    atomic.Bool
}

// wildEntry is one wildcard registration.
type wildEntry struct {
	id       any
	listener WildcardListener
	once     bool
	fired    atomic.Bool
}

// registry stores category listeners in registration order with
// identity-keyed membership, and the wildcard set independently.
// A category with zero listeners is pruned, so it is indistinguishable
// from one that was never registered.
type registry struct {
	mu      sync.RWMutex
	cats    map[Category][]*entry
	ids     map[Category]map[any]*entry
	wild    []*wildEntry
	wildIDs map[any]*wildEntry
}

func newRegistry() *registry {
	return &registry{
		cats:    make(map[Category][]*entry),
		ids:     make(map[Category]map[any]*entry),
		wildIDs: make(map[any]*wildEntry),
	}
}

// add appends a registration for a category. Duplicate identities are
// a no-op; the first registration and its position win.
func (r *registry) add(c Category, id any, l Listener, once bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID := r.ids[c]
	if byID == nil {
		byID = make(map[any]*entry)
		r.ids[c] = byID
	}
	if _, exists := byID[id]; exists {
		return false
	}

	e := &entry{id: id, listener: l, once: once}
	byID[id] = e
	r.cats[c] = append(r.cats[c], e)
	return true
}

// remove drops the registration with the given identity. Absent
// identities and unknown categories are a no-op.
func (r *registry) remove(c Category, id any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID := r.ids[c]
	e, exists := byID[id]
	if !exists {
		return false
	}
	delete(byID, id)

	ordered := r.cats[c]
	for i, cand := range ordered {
		if cand == e {
			r.cats[c] = append(ordered[:i], ordered[i+1:]...)
			break
		}
	}

	if len(byID) == 0 {
		delete(r.ids, c)
		delete(r.cats, c)
	}
	return true
}

// removeEntry drops a specific entry, used for once self-removal. The
// identity map is only cleared when it still points at this entry, so
// a listener re-registered mid-broadcast is not clobbered.
func (r *registry) removeEntry(c Category, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ordered := r.cats[c]
	found := false
	for i, cand := range ordered {
		if cand == e {
			r.cats[c] = append(ordered[:i], ordered[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return
	}

	if byID := r.ids[c]; byID[e.id] == e {
		delete(byID, e.id)
		if len(byID) == 0 {
			delete(r.ids, c)
			delete(r.cats, c)
		}
	}
}

// addWild appends a wildcard registration. Duplicate identities are a
// no-op.
func (r *registry) addWild(id any, l WildcardListener, once bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.wildIDs[id]; exists {
		return false
	}
	e := &wildEntry{id: id, listener: l, once: once}
	r.wildIDs[id] = e
	r.wild = append(r.wild, e)
	return true
}

// removeWild drops the wildcard registration with the given identity.
func (r *registry) removeWild(id any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.wildIDs[id]
	if !exists {
		return false
	}
	delete(r.wildIDs, id)
	for i, cand := range r.wild {
		if cand == e {
			r.wild = append(r.wild[:i], r.wild[i+1:]...)
			break
		}
	}
	return true
}

// removeWildEntry drops a specific wildcard entry (once self-removal).
func (r *registry) removeWildEntry(e *wildEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for i, cand := range r.wild {
		if cand == e {
			r.wild = append(r.wild[:i], r.wild[i+1:]...)
			found = true
			break
		}
	}
	if found && r.wildIDs[e.id] == e {
		delete(r.wildIDs, e.id)
	}
}

// snapshot returns a frozen copy of the category's registrations in
// registration order. Broadcast iterates the copy, never the live
// slice, so listeners mutating the registry cannot affect the
// in-flight emission.
func (r *registry) snapshot(c Category) []*entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ordered := r.cats[c]
	if len(ordered) == 0 {
		return nil
	}
	out := make([]*entry, len(ordered))
	copy(out, ordered)
	return out
}

// snapshotWild returns a frozen copy of the wildcard set.
func (r *registry) snapshotWild() []*wildEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.wild) == 0 {
		return nil
	}
	out := make([]*wildEntry, len(r.wild))
	copy(out, r.wild)
	return out
}

// count returns the number of registrations for a category.
func (r *registry) count(c Category) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cats[c])
}

// countWild returns the number of wildcard registrations.
func (r *registry) countWild() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.wild)
}

// clear removes every registration for a category.
func (r *registry) clear(c Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cats, c)
	delete(r.ids, c)
}

// clearWild removes every wildcard registration.
func (r *registry) clearWild() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wild = nil
	r.wildIDs = make(map[any]*wildEntry)
}

// clearAll removes everything, categories and wildcard set alike.
func (r *registry) clearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cats = make(map[Category][]*entry)
	r.ids = make(map[Category]map[any]*entry)
	r.wild = nil
	r.wildIDs = make(map[any]*wildEntry)
}
