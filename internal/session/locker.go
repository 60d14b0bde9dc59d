package session

import "sync"

// keyedMutex serializes work per session id. Entries are refcounted so
// the map does not accumulate ids no one is waiting on.
type keyedMutex struct {
	mu   sync.Mutex
	held map[string]*mutexEntry
}

type mutexEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{held: make(map[string]*mutexEntry)}
}

func (k *keyedMutex) lock(id string) {
	k.mu.Lock()
	entry, ok := k.held[id]
	if !ok {
		entry = &mutexEntry{}
		k.held[id] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

func (k *keyedMutex) unlock(id string) {
	k.mu.Lock()
	entry := k.held[id]
	entry.refs--
	if entry.refs == 0 {
		delete(k.held, id)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}
