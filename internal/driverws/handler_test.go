package driverws

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    ws "nhooyr.io/websocket"

    "voicedays/agent/internal/auth"
    "voicedays/agent/internal/config"
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/store"
    "voicedays/agent/internal/tool"
    "voicedays/agent/internal/types"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
    t.Helper()
    cfg := config.Load()
    cfg.Driver.TokenSecret = testSecret

    reg := persona.NewRegistry("day1")
    reg.Register(&persona.Descriptor{
        Name: "day1",
        Tools: tool.NewDispatcher("day1", []tool.Definition{{
            Name:        "echo",
            Description: "Echo the payload back.",
            InputSchema: tool.Schema[struct{}](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                return "echo:" + string(inv.Input), nil
            },
        }}),
    })

    st := store.New()
    s := NewServer(cfg, st, NewRegistry(), reg)
    srv := httptest.NewServer(http.HandlerFunc(s.HandleDriverWS))
    t.Cleanup(srv.Close)
    return srv, st
}

func dial(t *testing.T, srv *httptest.Server, sessionID, token string) (*ws.Conn, *http.Response, error) {
    t.Helper()
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    t.Cleanup(cancel)
    url := "ws" + srv.URL[len("http"):] + "/?session_id=" + sessionID
    return ws.Dial(ctx, url, &ws.DialOptions{
        HTTPHeader: http.Header{"Authorization": []string{"Bearer " + token}},
    })
}

func TestToolCallRoundTrip(t *testing.T) {
    srv, st := newTestServer(t)

    sess := &types.Session{ID: "s1", RoomName: "room_day1", Persona: "day1", CreatedAt: time.Now().UTC(), Status: "created"}
    if err := st.CreateSession(sess); err != nil { t.Fatalf("create session: %v", err) }
    token, err := auth.GenerateDriverToken(testSecret, "s1", time.Now().Add(time.Minute).Unix())
    if err != nil { t.Fatalf("token: %v", err) }

    c, _, err := dial(t, srv, "s1", token)
    if err != nil { t.Fatalf("dial: %v", err) }
    defer c.Close(ws.StatusNormalClosure, "done")

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    call := Message{Type: "tool_call", CallID: "c1", Tool: "echo", Payload: json.RawMessage(`{"x":1}`)}
    if err := c.Write(ctx, ws.MessageText, mustJSON(call)); err != nil { t.Fatalf("write: %v", err) }

    _, data, err := c.Read(ctx)
    if err != nil { t.Fatalf("read: %v", err) }
    var reply Message
    if err := json.Unmarshal(data, &reply); err != nil { t.Fatalf("unmarshal: %v", err) }
    if reply.Type != "tool_result" || reply.CallID != "c1" || reply.Tool != "echo" {
        t.Fatalf("unexpected reply: %+v", reply)
    }
    if reply.Result != `echo:{"x":1}` {
        t.Fatalf("unexpected result: %q", reply.Result)
    }
}

func TestRejectsBadAuth(t *testing.T) {
    srv, st := newTestServer(t)

    sess := &types.Session{ID: "s1", RoomName: "room_day1", Persona: "day1", CreatedAt: time.Now().UTC(), Status: "created"}
    if err := st.CreateSession(sess); err != nil { t.Fatalf("create session: %v", err) }

    // Token minted for a different session.
    token, _ := auth.GenerateDriverToken(testSecret, "other", time.Now().Add(time.Minute).Unix())
    _, resp, err := dial(t, srv, "s1", token)
    if err == nil { t.Fatalf("expected dial to fail") }
    if resp != nil && resp.StatusCode != http.StatusUnauthorized {
        t.Fatalf("expected 401, got %d", resp.StatusCode)
    }

    // Unknown session.
    token, _ = auth.GenerateDriverToken(testSecret, "ghost", time.Now().Add(time.Minute).Unix())
    _, resp, err = dial(t, srv, "ghost", token)
    if err == nil { t.Fatalf("expected dial to fail") }
    if resp != nil && resp.StatusCode != http.StatusNotFound {
        t.Fatalf("expected 404, got %d", resp.StatusCode)
    }
}
