package tool

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "time"

    "github.com/invopop/jsonschema"
)

// Invocation is one tool call issued by the conversational model. Input is
// the raw JSON arguments; handlers decode into their own typed input struct
// and validate before touching state.
type Invocation struct {
    Room  string
    Input json.RawMessage
}

// Definition is a named operation exposed to the conversational model: a
// declared input schema and a handler returning a short speakable string.
type Definition struct {
    Name        string             `json:"name"`
    Description string             `json:"description"`
    InputSchema *jsonschema.Schema `json:"input_schema"`
    Handler     func(ctx context.Context, inv Invocation) (string, error) `json:"-"`
}

// Schema derives the JSON input schema for a tool from its input struct.
func Schema[T any]() *jsonschema.Schema {
    reflector := jsonschema.Reflector{
        AllowAdditionalProperties: false,
        DoNotReference:            true,
    }
    var v T
    return reflector.Reflect(v)
}

const apology = "Sorry, something went wrong on my end. Let's keep going."

// Dispatcher executes one persona's tools. Whatever a handler does, the
// driver always gets a string back: unknown tools and internal failures are
// logged and reported as plain speech, never as errors.
type Dispatcher struct {
    persona string
    order   []string
    defs    map[string]Definition
}

func NewDispatcher(persona string, defs []Definition) *Dispatcher {
    d := &Dispatcher{persona: persona, defs: make(map[string]Definition, len(defs))}
    for _, def := range defs {
        if _, dup := d.defs[def.Name]; dup {
            log.Printf("tool: duplicate definition %q for persona %s, keeping first", def.Name, persona)
            continue
        }
        d.defs[def.Name] = def
        d.order = append(d.order, def.Name)
    }
    return d
}

// Definitions returns the persona's tools in registration order.
func (d *Dispatcher) Definitions() []Definition {
    out := make([]Definition, 0, len(d.order))
    for _, name := range d.order {
        out = append(out, d.defs[name])
    }
    return out
}

func (d *Dispatcher) Has(name string) bool {
    _, ok := d.defs[name]
    return ok
}

func (d *Dispatcher) Dispatch(ctx context.Context, room, name string, input json.RawMessage) string {
    def, ok := d.defs[name]
    if !ok {
        metricInvocations.WithLabelValues(d.persona, name, "unknown").Inc()
        log.Printf("tool: %s/%s not defined (room=%s)", d.persona, name, room)
        return "I don't know how to do that yet."
    }
    if len(input) == 0 {
        input = json.RawMessage("{}")
    }

    start := time.Now()
    result, err := d.run(ctx, def, Invocation{Room: room, Input: input})
    metricDuration.WithLabelValues(d.persona, name).Observe(float64(time.Since(start).Milliseconds()))

    if err != nil {
        metricInvocations.WithLabelValues(d.persona, name, "error").Inc()
        log.Printf("tool: %s/%s failed (room=%s): %v", d.persona, name, room, err)
        return apology
    }
    metricInvocations.WithLabelValues(d.persona, name, "ok").Inc()
    return result
}

// run isolates the handler call so a panic is confined to one invocation.
func (d *Dispatcher) run(ctx context.Context, def Definition, inv Invocation) (result string, err error) {
    defer func() {
        if r := recover(); r != nil {
            err = &panicError{value: r}
        }
    }()
    return def.Handler(ctx, inv)
}

type panicError struct{ value any }

func (e *panicError) Error() string { return fmt.Sprintf("handler panic: %v", e.value) }
