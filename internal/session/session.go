package session

import "sync"

// Store holds one mutable record per room. Records are created lazily by the
// persona's init function and live until End is called for the room. Tool
// calls for a single room are serialized by the session driver; the mutex
// only guards the map against cross-room concurrency.
type Store[T any] struct {
    mu     sync.Mutex
    states map[string]*T
}

func NewStore[T any]() *Store[T] {
    return &Store[T]{states: make(map[string]*T)}
}

// GetOrCreate returns the record for room, building it with init on first
// access. Callers always receive the same pointer for the same room, so a
// mutation made during one tool call is visible to the next.
func (s *Store[T]) GetOrCreate(room string, init func() *T) *T {
    s.mu.Lock()
    defer s.mu.Unlock()
    st := s.states[room]
    if st == nil {
        st = init()
        s.states[room] = st
    }
    return st
}

// Peek returns the record for room without creating one.
func (s *Store[T]) Peek(room string) (*T, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    st, ok := s.states[room]
    return st, ok
}

// End discards the record for room.
func (s *Store[T]) End(room string) {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.states, room)
}

func (s *Store[T]) Len() int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return len(s.states)
}
