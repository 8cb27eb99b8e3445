package api

import (
    "net/http"
    "strings"

    "github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *Handlers) http.Handler {
    mux := http.NewServeMux()

    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        w.Write([]byte("ok"))
    })

    mux.Handle("/metrics", promhttp.Handler())

    mux.HandleFunc("/personas", func(w http.ResponseWriter, r *http.Request) {
        if r.Method == http.MethodGet {
            h.HandleListPersonas(w, r)
            return
        }
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
    })

    mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
        if r.Method == http.MethodPost {
            h.HandleCreateSession(w, r)
            return
        }
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
    })

    mux.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
        // /sessions/{id}/end | /events | /tools/{tool}
        path := strings.TrimSuffix(r.URL.Path, "/")
        const prefix = "/sessions/"
        if !strings.HasPrefix(path, prefix) {
            http.NotFound(w, r)
            return
        }
        rest := strings.TrimPrefix(path, prefix)
        parts := strings.Split(rest, "/")
        if len(parts) == 0 || parts[0] == "" {
            http.NotFound(w, r)
            return
        }
        id := parts[0]
        tail := ""
        if len(parts) > 1 {
            tail = parts[1]
        }

        switch tail {
        case "end":
            if r.Method != http.MethodPost {
                http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
                return
            }
            h.HandleEndSession(w, r, id)
            return
        case "events":
            if r.Method != http.MethodGet {
                http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
                return
            }
            h.HandleListEvents(w, r, id)
            return
        case "tools":
            if len(parts) < 3 || parts[2] == "" {
                http.NotFound(w, r)
                return
            }
            if r.Method != http.MethodPost {
                http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
                return
            }
            h.HandleCallTool(w, r, id, parts[2])
            return
        default:
            http.NotFound(w, r)
            return
        }
    })

    return mux
}
