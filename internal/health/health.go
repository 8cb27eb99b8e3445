package health

import (
    "context"
    "fmt"
    "os"
    "path/filepath"
    "time"

    "voicedays/agent/internal/config"
    "voicedays/agent/internal/persona"
)

type CheckResult struct {
    Name    string        `json:"name"`
    OK      bool          `json:"ok"`
    Latency time.Duration `json:"latency_ms"`
    Error   string        `json:"error,omitempty"`
}

type HealthStatus struct {
    OK        bool          `json:"ok"`
    Checks    []CheckResult `json:"checks"`
    CheckedAt time.Time     `json:"checked_at"`
}

func (h HealthStatus) String() string {
    status := "OK"
    if !h.OK {
        status = "FAIL"
    }
    s := fmt.Sprintf("Health: %s\n", status)
    for _, c := range h.Checks {
        mark := "✓"
        if !c.OK {
            mark = "✗"
        }
        s += fmt.Sprintf("  %s %s (%dms)", mark, c.Name, c.Latency.Milliseconds())
        if c.Error != "" {
            s += fmt.Sprintf(" - %s", c.Error)
        }
        s += "\n"
    }
    return s
}

// CheckAll runs all health checks and returns combined status
func CheckAll(ctx context.Context, cfg config.Config, reg *persona.Registry) HealthStatus {
    checks := []CheckResult{
        checkDataDir(cfg),
        checkPersonas(cfg, reg),
    }

    allOK := true
    for _, c := range checks {
        if !c.OK {
            allOK = false
        }
    }

    return HealthStatus{
        OK:        allOK,
        Checks:    checks,
        CheckedAt: time.Now().UTC(),
    }
}

// checkDataDir probes that the document directory exists and is writable.
func checkDataDir(cfg config.Config) CheckResult {
    start := time.Now()
    result := CheckResult{Name: "data_dir"}

    if cfg.Data.Dir == "" {
        result.Error = "DATA_DIR not set"
        result.Latency = time.Since(start)
        return result
    }
    if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
        result.Error = fmt.Sprintf("mkdir failed: %v", err)
        result.Latency = time.Since(start)
        return result
    }

    probe := filepath.Join(cfg.Data.Dir, ".health_probe")
    if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
        result.Error = fmt.Sprintf("write failed: %v", err)
        result.Latency = time.Since(start)
        return result
    }
    _ = os.Remove(probe)

    result.Latency = time.Since(start)
    result.OK = true
    return result
}

func checkPersonas(cfg config.Config, reg *persona.Registry) CheckResult {
    start := time.Now()
    result := CheckResult{Name: "personas"}
    result.Latency = time.Since(start)

    names := reg.Names()
    if len(names) == 0 {
        result.Error = "no personas registered"
        return result
    }
    if reg.Get(cfg.Agent.DefaultPersona) == nil {
        result.Error = fmt.Sprintf("default persona %q not registered", cfg.Agent.DefaultPersona)
        return result
    }

    result.OK = true
    return result
}
