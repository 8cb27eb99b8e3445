package store

import (
    "testing"
    "time"

    "voicedays/agent/internal/types"
)

func TestCreateAndGetSession(t *testing.T) {
    st := New()
    s := &types.Session{ID: "abc123", RoomName: "room_day2", Persona: "day2", CreatedAt: time.Now()}
    if err := st.CreateSession(s); err != nil {
        t.Fatalf("create session: %v", err)
    }
    got := st.GetSession("abc123")
    if got == nil || got.Persona != "day2" {
        t.Fatalf("expected session with persona day2, got %#v", got)
    }
    if byRoom := st.GetByRoom("room_day2"); byRoom == nil || byRoom.ID != "abc123" {
        t.Fatalf("expected room lookup to find abc123, got %#v", byRoom)
    }
}

func TestCreateDuplicateFails(t *testing.T) {
    st := New()
    s := &types.Session{ID: "dup", CreatedAt: time.Now()}
    if err := st.CreateSession(s); err != nil {
        t.Fatalf("create session: %v", err)
    }
    if err := st.CreateSession(s); err != ErrSessionExists {
        t.Fatalf("expected ErrSessionExists, got %v", err)
    }
}

func TestEndSession(t *testing.T) {
    st := New()
    s := &types.Session{ID: "abc", Status: "active", CreatedAt: time.Now()}
    _ = st.CreateSession(s)

    at := time.Now().UTC()
    st.EndSession("abc", at)

    got := st.GetSession("abc")
    if got.Status != "ended" || got.EndedAt == nil {
        t.Fatalf("expected ended session, got %#v", got)
    }
}

func TestEventCapTruncates(t *testing.T) {
    st := New()
    _ = st.CreateSession(&types.Session{ID: "s1", CreatedAt: time.Now()})

    for i := 0; i < 250; i++ {
        st.AppendEvent("s1", "tool_invoked", nil)
    }
    evts := st.ListEvents("s1")
    if len(evts) != 200 {
        t.Fatalf("expected 200 events after cap, got %d", len(evts))
    }
    if evts[len(evts)-1].Type != "events_truncated" {
        t.Fatalf("expected trailing truncation warning, got %q", evts[len(evts)-1].Type)
    }
}
