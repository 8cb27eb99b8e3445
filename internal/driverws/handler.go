// Package driverws is the WebSocket boundary for session drivers: the
// external voice pipeline connects here, streams tool calls in, and gets
// speakable results back on the same connection.
package driverws

import (
    "encoding/json"
    "log"
    "net/http"
    "strings"
    "time"

    "voicedays/agent/internal/auth"
    "voicedays/agent/internal/config"
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/store"

    ws "nhooyr.io/websocket"
)

// Message is one frame on the driver socket. Drivers send type "tool_call";
// the server answers with type "tool_result" carrying the same call_id.
type Message struct {
    Type    string          `json:"type"`
    CallID  string          `json:"call_id,omitempty"`
    Tool    string          `json:"tool,omitempty"`
    Payload json.RawMessage `json:"payload,omitempty"`
    Result  string          `json:"result,omitempty"`
}

type Server struct {
    Cfg      config.Config
    Store    *store.Store
    Reg      *Registry
    Registry *persona.Registry
}

func NewServer(cfg config.Config, st *store.Store, reg *Registry, personas *persona.Registry) *Server {
    return &Server{Cfg: cfg, Store: st, Reg: reg, Registry: personas}
}

func (s *Server) HandleDriverWS(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()
    sessionID := q.Get("session_id")
    if sessionID == "" {
        http.Error(w, "missing session_id", http.StatusBadRequest)
        return
    }
    sess := s.Store.GetSession(sessionID)
    if sess == nil {
        http.Error(w, "unknown session", http.StatusNotFound)
        return
    }
    authz := r.Header.Get("Authorization")
    if !strings.HasPrefix(authz, "Bearer ") {
        http.Error(w, "missing bearer token", http.StatusUnauthorized)
        return
    }
    token := strings.TrimPrefix(authz, "Bearer ")
    if s.Cfg.Driver.TokenSecret == "" {
        http.Error(w, "driver auth not configured", http.StatusUnauthorized)
        return
    }
    if _, _, err := auth.ValidateDriverToken(s.Cfg.Driver.TokenSecret, token, sessionID, time.Now(), s.Cfg.Driver.TokenSkewSecs); err != nil {
        http.Error(w, "invalid token", http.StatusUnauthorized)
        return
    }

    d := s.Registry.Get(sess.Persona)
    if d == nil {
        http.Error(w, "persona not registered", http.StatusInternalServerError)
        return
    }

    c, err := ws.Accept(w, r, nil)
    if err != nil {
        log.Printf("ws accept: %v", err)
        return
    }
    replaced := s.Reg.Replace(sessionID, c)
    if replaced {
        s.Store.AppendEvent(sessionID, "driver_replaced", nil)
    }
    s.Store.AppendEvent(sessionID, "driver_connected", nil)

    ctx := r.Context()
    for {
        typ, data, err := c.Read(ctx)
        if err != nil {
            break
        }
        if typ != ws.MessageText && typ != ws.MessageBinary {
            continue
        }
        var msg Message
        if err := json.Unmarshal(data, &msg); err != nil {
            s.Store.AppendEvent(sessionID, "driver_msg_invalid", map[string]any{"error": err.Error()})
            continue
        }
        if msg.Type != "tool_call" || msg.Tool == "" {
            s.Store.AppendEvent(sessionID, "driver_msg_invalid", map[string]any{"type": msg.Type})
            continue
        }

        result := d.Tools.Dispatch(ctx, sess.RoomName, msg.Tool, msg.Payload)
        s.Store.AppendEvent(sessionID, "tool_called", map[string]any{"tool": msg.Tool, "call_id": msg.CallID})

        reply := Message{Type: "tool_result", CallID: msg.CallID, Tool: msg.Tool, Result: result}
        if err := c.Write(ctx, ws.MessageText, mustJSON(reply)); err != nil {
            break
        }
    }
    _ = c.Close(ws.StatusNormalClosure, "done")
    s.Reg.Remove(sessionID)
    s.Store.AppendEvent(sessionID, "driver_disconnected", nil)
}
