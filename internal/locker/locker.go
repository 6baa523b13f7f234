// Package locker provides per-key mutual exclusion. The offer orchestrator and
// the expiry sweep both lock on a negotiation id so that round checks and
// decision application for one negotiation never interleave, while different
// negotiations proceed fully in parallel.
package locker

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

// Lock blocks until the key's lock is held and returns the unlock function.
// Entries are reference counted and removed once no goroutine holds or waits
// on the key.
func (km *KeyedMutex) Lock(key string) func() {
	km.mu.Lock()
	e, ok := km.entries[key]
	if !ok {
		e = &entry{}
		km.entries[key] = e
	}
	e.refs++
	km.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		km.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(km.entries, key)
		}
		km.mu.Unlock()
	}
}
