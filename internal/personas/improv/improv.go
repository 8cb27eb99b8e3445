// Package improv is the day10 persona: a high-energy improv game show host
// that runs three rounds of absurd scenarios per contestant.
package improv

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "math/rand"

    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/session"
    "voicedays/agent/internal/tool"
)

const maxRounds = 3

var scenarios = []string{
    "You order a latte and the barista hands you a glowing portal instead. Step through it.",
    "You are a time-travelling tour guide and your group just realized the dinosaurs are very much alive.",
    "You are a waiter and the customer's order has escaped the kitchen. Break the news.",
    "You must return a cursed object to the shop, but the receipt is written in an ancient language.",
    "You are a cat explaining to your owner why the vase is broken and it is definitely not your fault.",
    "Your toaster just gave you superpowers, but only while you are making toast. A villain attacks.",
}

const instructions = `You are "Flash", the outrageous host of an improv game show called Scene Storm!

Show format:
- INTRO: welcome the contestant with huge energy. Use get_player_name to address them personally. Explain the rules: three rounds, one absurd scenario each, they act it out, you react
- ROUNDS: use get_next_scenario to fetch each scenario. Read it dramatically. Let the contestant improvise, play along briefly, then use record_round_result with a one-line summary of their reaction
- OUTRO: when get_next_scenario returns GAME_OVER, deliver an over-the-top closing ceremony celebrating their performance

Your style:
- Game show host energy, catchphrases, drama
- Keep your own turns short; the contestant is the star
- Never break character`

type roundResult struct {
    Scenario string
    Reaction string
}

type gameState struct {
    PlayerName      string
    CurrentRound    int
    MaxRounds       int
    Rounds          []roundResult
    Phase           string
    CurrentScenario string
}

type recordInput struct {
    ReactionSummary string `json:"reaction_summary" jsonschema_description:"One-line summary of how the contestant handled the scenario."`
}

// MetadataLookup returns the raw metadata string a session was created with,
// or "" when there is none.
type MetadataLookup func(room string) string

func New(lookup MetadataLookup) *persona.Descriptor {
    states := session.NewStore[gameState]()
    newGame := func() *gameState {
        return &gameState{MaxRounds: maxRounds, Phase: "intro"}
    }

    tools := []tool.Definition{
        {
            Name:        "get_player_name",
            Description: "Get the contestant's name.",
            InputSchema: tool.Schema[struct{}](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                st := states.GetOrCreate(inv.Room, newGame)
                if st.PlayerName != "" {
                    return st.PlayerName, nil
                }
                if lookup != nil {
                    if meta := lookup(inv.Room); meta != "" {
                        var m map[string]any
                        if err := json.Unmarshal([]byte(meta), &m); err == nil {
                            if name, ok := m["player_name"].(string); ok && name != "" {
                                st.PlayerName = name
                                return name, nil
                            }
                        } else {
                            log.Printf("improv: bad metadata for room %s: %v", inv.Room, err)
                        }
                    }
                }
                st.PlayerName = "Contestant"
                return st.PlayerName, nil
            },
        },
        {
            Name:        "get_next_scenario",
            Description: "Get the next improv scenario, or GAME_OVER after the final round.",
            InputSchema: tool.Schema[struct{}](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                st := states.GetOrCreate(inv.Room, newGame)
                if st.CurrentRound >= st.MaxRounds {
                    st.Phase = "outro"
                    return "GAME_OVER", nil
                }
                st.CurrentRound++
                st.Phase = "round"
                st.CurrentScenario = pickScenario(st.Rounds)
                return fmt.Sprintf("Round %d Scenario: %s", st.CurrentRound, st.CurrentScenario), nil
            },
        },
        {
            Name:        "record_round_result",
            Description: "Record the contestant's reaction to the current scenario.",
            InputSchema: tool.Schema[recordInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in recordInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                st := states.GetOrCreate(inv.Room, newGame)
                st.Rounds = append(st.Rounds, roundResult{Scenario: st.CurrentScenario, Reaction: in.ReactionSummary})
                return "Round recorded. Proceed to next round or outro.", nil
            },
        },
    }

    return &persona.Descriptor{
        Name:         "day10",
        Title:        "Improv Host",
        Instructions: instructions,
        Voice:        persona.Voice{ID: "en-US-ken", Style: "Promo"},
        Tools:        tool.NewDispatcher("day10", tools),
        EndSession:   states.End,
    }
}

// pickScenario avoids repeating a scenario already used this game.
func pickScenario(done []roundResult) string {
    used := make(map[string]bool, len(done))
    for _, r := range done {
        used[r.Scenario] = true
    }
    var fresh []string
    for _, s := range scenarios {
        if !used[s] {
            fresh = append(fresh, s)
        }
    }
    if len(fresh) == 0 {
        fresh = scenarios
    }
    return fresh[rand.Intn(len(fresh))]
}
