package main

import (
    "context"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "voicedays/agent/internal/api"
    "voicedays/agent/internal/config"
    "voicedays/agent/internal/docstore"
    "voicedays/agent/internal/driverws"
    "voicedays/agent/internal/health"
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/personas/assistant"
    "voicedays/agent/internal/personas/barista"
    "voicedays/agent/internal/personas/fraud"
    "voicedays/agent/internal/personas/gamemaster"
    "voicedays/agent/internal/personas/grocery"
    "voicedays/agent/internal/personas/improv"
    "voicedays/agent/internal/personas/sdr"
    "voicedays/agent/internal/personas/shop"
    "voicedays/agent/internal/personas/tutor"
    "voicedays/agent/internal/personas/wellness"
    "voicedays/agent/internal/store"
)

func main() {
    // Load .env file if present (ignored if missing)
    _ = godotenv.Load()

    cfg := config.Load()

    st := store.New()
    docs := docstore.New(cfg.Data.Dir)

    reg := persona.NewRegistry(cfg.Agent.DefaultPersona)
    reg.Register(assistant.New())
    reg.Register(barista.New(docs))
    reg.Register(wellness.New(docs))
    reg.Register(tutor.New(docs))
    reg.Register(sdr.New(docs))
    reg.Register(fraud.New(docs))
    reg.Register(grocery.New(docs))
    reg.Register(gamemaster.New(docs))
    reg.Register(shop.New(docs))
    reg.Register(improv.New(func(room string) string {
        if sess := st.GetByRoom(room); sess != nil {
            return sess.Metadata
        }
        return ""
    }))

    if hs := health.CheckAll(context.Background(), cfg, reg); !hs.OK {
        log.Printf("startup health:\n%s", hs)
    }

    h := api.NewHandlers(cfg, st, reg)
    mux := http.NewServeMux()
    mux.Handle("/", api.NewRouter(h))
    // WS driver route
    wsReg := driverws.NewRegistry()
    wss := driverws.NewServer(cfg, st, wsReg, reg)
    mux.HandleFunc("/ws/driver", wss.HandleDriverWS)

    addr := ":" + cfg.Server.Port
    srv := &http.Server{
        Addr:              addr,
        Handler:           logMiddleware(mux),
        ReadHeaderTimeout: 5 * time.Second,
    }

    // Graceful shutdown on SIGINT/SIGTERM
    sigc := make(chan os.Signal, 1)
    signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
    go func() {
        <-sigc
        log.Printf("shutdown signal received; stopping server...")
        // Release per-room persona state before draining HTTP
        for _, id := range st.ListSessionIDs() {
            sess := st.GetSession(id)
            if sess == nil || sess.Status == "ended" {
                continue
            }
            st.EndSession(id, time.Now().UTC())
            if d := reg.Get(sess.Persona); d != nil && d.EndSession != nil {
                d.EndSession(sess.RoomName)
            }
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = srv.Shutdown(ctx)
    }()

    log.Printf("server starting on %s (personas: %v)", addr, reg.Names())
    if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
        log.Println("server error:", err)
        os.Exit(1)
    }
}

func logMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()
        next.ServeHTTP(w, r)
        log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
    })
}
