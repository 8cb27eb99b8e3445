package persona

import (
    "log"
    "regexp"
    "strings"

    "voicedays/agent/internal/tool"
)

// Voice selects the synthetic voice the external pipeline should speak with.
type Voice struct {
    ID    string `json:"id"`
    Style string `json:"style"`
}

// Descriptor is the static bundle a session driver needs to run one
// conversation: the behavioral script, the tool set, and a voice. EndSession,
// when set, releases any per-room state the persona holds.
type Descriptor struct {
    Name         string
    Title        string
    Instructions string
    Voice        Voice
    Tools        *tool.Dispatcher

    EndSession func(room string)
}

// Registry maps persona names (day1..dayN) to descriptors. Lookups for
// unknown names resolve to the configured fallback.
type Registry struct {
    defs     map[string]*Descriptor
    order    []string
    fallback string
}

func NewRegistry(fallback string) *Registry {
    return &Registry{defs: make(map[string]*Descriptor), fallback: fallback}
}

func (r *Registry) Register(d *Descriptor) {
    if _, dup := r.defs[d.Name]; dup {
        log.Printf("persona: %q already registered, replacing", d.Name)
    } else {
        r.order = append(r.order, d.Name)
    }
    r.defs[d.Name] = d
}

// Normalize folds the accepted spellings of a persona name onto the
// canonical dayN form: "Day6", "day6", and bare "6" all resolve the same.
func Normalize(name string) string {
    n := strings.TrimSpace(strings.ToLower(name))
    digits := strings.TrimPrefix(n, "day")
    if digits != "" && isDigits(digits) {
        return "day" + digits
    }
    return n
}

func isDigits(s string) bool {
    for _, c := range s {
        if c < '0' || c > '9' {
            return false
        }
    }
    return len(s) > 0
}

// Get resolves name to a descriptor, falling back to the registry default
// for unknown names. Returns nil only when the fallback itself is missing.
func (r *Registry) Get(name string) *Descriptor {
    if d, ok := r.defs[Normalize(name)]; ok {
        return d
    }
    return r.defs[r.fallback]
}

func (r *Registry) Names() []string {
    out := make([]string, len(r.order))
    copy(out, r.order)
    return out
}

var daySuffix = regexp.MustCompile(`^day\d+$`)

// Select picks the persona name for a room: explicit configuration wins,
// then a trailing _dayN segment of the room name, then the fallback.
func (r *Registry) Select(explicit, roomName string) string {
    if explicit != "" {
        if d := r.Get(explicit); d != nil {
            return d.Name
        }
    }
    parts := strings.Split(roomName, "_")
    if len(parts) > 1 {
        last := strings.ToLower(parts[len(parts)-1])
        if daySuffix.MatchString(last) {
            if d, ok := r.defs[last]; ok {
                return d.Name
            }
        }
    }
    return r.fallback
}
