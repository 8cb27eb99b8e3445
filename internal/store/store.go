package store

import (
    "errors"
    "sync"
    "time"

    "voicedays/agent/internal/types"
)

var ErrSessionExists = errors.New("session already exists")

// Store tracks live conversations and their event logs. Session records here
// are lifecycle bookkeeping for the API; per-room persona state lives with
// each persona.
type Store struct {
    mu       sync.RWMutex
    sessions map[string]*types.Session
    byRoom   map[string]string
    events   map[string][]types.Event
}

func New() *Store {
    return &Store{
        sessions: make(map[string]*types.Session),
        byRoom:   make(map[string]string),
        events:   make(map[string][]types.Event),
    }
}

func (s *Store) CreateSession(sess *types.Session) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.sessions[sess.ID]; ok {
        return ErrSessionExists
    }
    s.sessions[sess.ID] = sess
    s.byRoom[sess.RoomName] = sess.ID
    s.events[sess.ID] = []types.Event{}
    return nil
}

func (s *Store) GetSession(id string) *types.Session {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.sessions[id]
}

// GetByRoom returns the most recent session created for a room name.
func (s *Store) GetByRoom(room string) *types.Session {
    s.mu.RLock()
    defer s.mu.RUnlock()
    id, ok := s.byRoom[room]
    if !ok {
        return nil
    }
    return s.sessions[id]
}

func (s *Store) EndSession(id string, at time.Time) {
    s.mu.Lock()
    if sess, ok := s.sessions[id]; ok {
        sess.Status = "ended"
        sess.EndedAt = &at
    }
    s.mu.Unlock()
}

func (s *Store) AppendEvent(sessionID, typ string, payload map[string]any) types.Event {
    evt := types.Event{Type: typ, Ts: time.Now().UTC(), Payload: payload}
    s.mu.Lock()
    defer s.mu.Unlock()
    s.events[sessionID] = append(s.events[sessionID], evt)
    // Cap total events per session to avoid unbounded growth
    const maxEvents = 200
    if l := len(s.events[sessionID]); l > maxEvents {
        keep := maxEvents - 1
        dropped := l - keep
        s.events[sessionID] = append([]types.Event(nil), s.events[sessionID][l-keep:]...)
        warn := types.Event{Type: "events_truncated", Ts: time.Now().UTC(), Payload: map[string]any{"session_id": sessionID, "dropped": dropped, "kept": keep}}
        s.events[sessionID] = append(s.events[sessionID], warn)
    }
    return evt
}

func (s *Store) ListEvents(sessionID string) []types.Event {
    s.mu.RLock()
    defer s.mu.RUnlock()
    src := s.events[sessionID]
    out := make([]types.Event, len(src))
    copy(out, src)
    return out
}

func (s *Store) ListSessionIDs() []string {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]string, 0, len(s.sessions))
    for id := range s.sessions {
        out = append(out, id)
    }
    return out
}
