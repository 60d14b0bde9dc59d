package timeline

import (
	"errors"
	"sync"
)

var (
	// ErrIndexOutOfRange reports an ordinal that resolves outside the
	// current timeline bounds.
	ErrIndexOutOfRange = errors.New("subtitle index out of range")

	// ErrInvalidTiming reports a subtitle whose end time would not be
	// strictly after its start time.
	ErrInvalidTiming = errors.New("subtitle end time must be after start time")
)

// Store holds the subtitles of one editing session in insertion order.
// Mutations are serialized and atomic: a failed apply leaves the
// timeline exactly as it was. Chronological order is a derived view,
// never an invariant of the stored sequence.
type Store struct {
	mu   sync.Mutex
	subs []Subtitle
}

func NewStore() *Store {
	return &Store{}
}

// NewStoreFrom seeds a store with an existing snapshot, applying the
// same per-element invariant filtering as Replace.
func NewStoreFrom(subs []Subtitle) *Store {
	s := NewStore()
	s.Replace(subs)
	return s
}

// Applied describes the outcome of a successful mutation.
type Applied struct {
	// Subtitle is the inserted or rebuilt entry as now stored.
	Subtitle Subtitle
	// Index is its position in insertion order.
	Index int
	// NoOp is set when the mutation was the no-op sentinel.
	NoOp bool
}

// Apply commits a single mutation. Updates resolve negative ordinals
// against the current length; an out-of-range ordinal fails with
// ErrIndexOutOfRange and a timing violation after overlay fails with
// ErrInvalidTiming, both without modifying the timeline.
func (s *Store) Apply(m Mutation) (Applied, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch m.Kind {
	case KindNone:
		return Applied{NoOp: true}, nil

	case KindInsert:
		sub := m.Subtitle
		if !sub.Valid() {
			return Applied{}, ErrInvalidTiming
		}
		sub.ID = NewID()
		s.subs = append(s.subs, sub)
		return Applied{Subtitle: sub, Index: len(s.subs) - 1}, nil

	case KindUpdate:
		idx, err := ResolveIndex(m.Index, len(s.subs))
		if err != nil {
			return Applied{}, err
		}
		rebuilt := m.Fields.overlay(s.subs[idx])
		if !rebuilt.Valid() {
			return Applied{}, ErrInvalidTiming
		}
		s.subs[idx] = rebuilt
		return Applied{Subtitle: rebuilt, Index: idx}, nil

	default:
		return Applied{}, errors.New("unknown mutation kind")
	}
}

// Snapshot returns a copy of the timeline in insertion order.
func (s *Store) Snapshot() []Subtitle {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Subtitle, len(s.subs))
	copy(out, s.subs)
	return out
}

// Replace swaps in a whole new sequence. Elements violating the timing
// invariants are dropped rather than failing the replacement.
func (s *Store) Replace(subs []Subtitle) {
	kept := make([]Subtitle, 0, len(subs))
	for _, sub := range subs {
		if sub.Valid() {
			kept = append(kept, sub)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = kept
}

// Clear removes every subtitle.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = nil
}

// Len reports the number of subtitles currently stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
