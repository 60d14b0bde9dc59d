package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory with a TTL refreshed on
// access. Suitable for single-instance deployments and tests.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memoryEntry
	updates  *keyedMutex
}

type memoryEntry struct {
	sess     *Session
	lastSeen time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memoryEntry),
		updates:  newKeyedMutex(),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	entry.lastSeen = time.Now()

	copied := *entry.sess
	return &copied, nil
}

func (s *MemoryStore) Put(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	s.sessions[sess.ID] = &memoryEntry{sess: &copied, lastSeen: time.Now()}
	return nil
}

// Update runs fn against the stored session and saves the result,
// holding a per-session lock across the whole cycle.
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) error {
	s.updates.lock(id)
	defer s.updates.unlock(id)

	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(sess); err != nil {
		return err
	}
	return s.Put(ctx, sess)
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// sweepLocked drops sessions idle past the TTL. Caller holds the lock.
func (s *MemoryStore) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
