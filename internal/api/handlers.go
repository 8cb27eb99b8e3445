package api

import (
    "encoding/json"
    "io"
    "log"
    "net/http"
    "time"

    "github.com/google/uuid"
    "voicedays/agent/internal/auth"
    "voicedays/agent/internal/config"
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/store"
    "voicedays/agent/internal/types"
)

type Handlers struct {
    cfg      config.Config
    store    *store.Store
    registry *persona.Registry
}

func NewHandlers(cfg config.Config, st *store.Store, reg *persona.Registry) *Handlers {
    return &Handlers{cfg: cfg, store: st, registry: reg}
}

type createSessionRequest struct {
    RoomName string `json:"room_name"`
    Persona  string `json:"persona"`
    Metadata string `json:"metadata"`
}

func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
    var req createSessionRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, "invalid JSON body", http.StatusBadRequest)
        return
    }

    id := uuid.New().String()
    roomName := req.RoomName
    if roomName == "" {
        roomName = "room_" + id
    }

    name := h.registry.Select(req.Persona, roomName)
    d := h.registry.Get(name)
    if d == nil {
        http.Error(w, "no persona available", http.StatusInternalServerError)
        return
    }

    sess := &types.Session{
        ID:        id,
        RoomName:  roomName,
        Persona:   d.Name,
        Metadata:  req.Metadata,
        CreatedAt: time.Now().UTC(),
        Status:    "created",
    }
    if err := h.store.CreateSession(sess); err != nil {
        http.Error(w, err.Error(), http.StatusConflict)
        return
    }
    h.store.AppendEvent(id, "session_created", map[string]any{"room_name": roomName, "persona": d.Name})

    exp := time.Now().Add(time.Duration(h.cfg.Driver.TokenExpMin) * time.Minute).Unix()
    token, err := auth.GenerateDriverToken(h.cfg.Driver.TokenSecret, id, exp)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusOK)
    _ = json.NewEncoder(w).Encode(map[string]any{
        "session_id": id,
        "room_name":  roomName,
        "persona": map[string]any{
            "name":         d.Name,
            "title":        d.Title,
            "voice":        d.Voice,
            "instructions": d.Instructions,
            "tools":        d.Tools.Definitions(),
        },
        "driver_token": token,
    })
}

func (h *Handlers) HandleCallTool(w http.ResponseWriter, r *http.Request, id, toolName string) {
    sess := h.store.GetSession(id)
    if sess == nil {
        http.NotFound(w, r)
        return
    }
    if sess.Status == "ended" {
        http.Error(w, "session ended", http.StatusConflict)
        return
    }
    d := h.registry.Get(sess.Persona)
    if d == nil {
        http.Error(w, "persona not registered", http.StatusInternalServerError)
        return
    }

    body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
    if err != nil {
        http.Error(w, "reading body", http.StatusBadRequest)
        return
    }

    result := d.Tools.Dispatch(r.Context(), sess.RoomName, toolName, body)
    h.store.AppendEvent(id, "tool_called", map[string]any{"tool": toolName})

    w.Header().Set("Content-Type", "application/json")
    _ = json.NewEncoder(w).Encode(map[string]any{"result": result})
}

func (h *Handlers) HandleEndSession(w http.ResponseWriter, r *http.Request, id string) {
    sess := h.store.GetSession(id)
    if sess == nil {
        http.NotFound(w, r)
        return
    }
    if sess.Status != "ended" {
        h.store.EndSession(id, time.Now().UTC())
        if d := h.registry.Get(sess.Persona); d != nil && d.EndSession != nil {
            d.EndSession(sess.RoomName)
        }
        h.store.AppendEvent(id, "session_ended", nil)
        log.Printf("api: session ended id=%s room=%s", id, sess.RoomName)
    }

    w.Header().Set("Content-Type", "application/json")
    _ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "status": "ended"})
}

func (h *Handlers) HandleListEvents(w http.ResponseWriter, r *http.Request, id string) {
    sess := h.store.GetSession(id)
    if sess == nil {
        http.NotFound(w, r)
        return
    }
    events := h.store.ListEvents(id)
    w.Header().Set("Content-Type", "application/json")
    _ = json.NewEncoder(w).Encode(map[string]any{
        "session_id": id,
        "events":     events,
    })
}

func (h *Handlers) HandleListPersonas(w http.ResponseWriter, r *http.Request) {
    out := make([]map[string]any, 0)
    for _, name := range h.registry.Names() {
        d := h.registry.Get(name)
        if d == nil {
            continue
        }
        tools := make([]string, 0)
        for _, def := range d.Tools.Definitions() {
            tools = append(tools, def.Name)
        }
        out = append(out, map[string]any{
            "name":  d.Name,
            "title": d.Title,
            "voice": d.Voice,
            "tools": tools,
        })
    }
    w.Header().Set("Content-Type", "application/json")
    _ = json.NewEncoder(w).Encode(map[string]any{"personas": out})
}
