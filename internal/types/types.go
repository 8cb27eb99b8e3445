package types

import "time"

type Event struct {
    Type    string         `json:"type"`
    Ts      time.Time      `json:"timestamp"`
    Payload map[string]any `json:"payload,omitempty"`
}

type Session struct {
    ID        string    `json:"session_id"`
    RoomName  string    `json:"room_name"`
    Persona   string    `json:"persona"`
    Metadata  string    `json:"metadata,omitempty"`
    CreatedAt time.Time `json:"created_at"`
    Status    string    `json:"status"`
    EndedAt   *time.Time `json:"ended_at,omitempty"`
}
