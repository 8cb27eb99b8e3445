// Package gamemaster is the day8 persona: an interactive fantasy game master
// that tracks evolving world state per room.
package gamemaster

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "strings"

    "voicedays/agent/internal/docstore"
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/session"
    "voicedays/agent/internal/tool"
)

const worldDoc = "day8_world_state.json"

const instructions = `You are an imaginative and engaging game master running an interactive fantasy adventure.

Your approach:
- Narrate vividly but briefly; this is a voice conversation, keep turns short
- Offer the player meaningful choices and react to what they say
- Track the world faithfully using your tools: update the player character after fights or discoveries, add NPCs when they appear, record events and quests
- When a player completes a quest objective, use complete_quest
- When asked "where am I" or "what's happening", use get_world_state_summary
- Keep the player's hit points, inventory, and status consistent with the story

Important:
- Every meaningful change to the world must go through a tool call
- Never contradict recorded world state; summarize it when unsure`

type playerCharacter struct {
    Name      string   `json:"name"`
    HP        int      `json:"hp"`
    MaxHP     int      `json:"max_hp"`
    Status    string   `json:"status"`
    Inventory []string `json:"inventory"`
}

type npc struct {
    Name     string `json:"name"`
    Role     string `json:"role"`
    Attitude string `json:"attitude"`
}

type location struct {
    Name        string   `json:"name"`
    Description string   `json:"description"`
    Paths       []string `json:"paths"`
}

type worldState struct {
    Setting         string          `json:"setting"`
    Tone            string          `json:"tone"`
    Player          playerCharacter `json:"player"`
    Location        location        `json:"location"`
    NPCs            []npc           `json:"npcs"`
    Events          []string        `json:"events"`
    ActiveQuests    []string        `json:"active_quests"`
    CompletedQuests []string        `json:"completed_quests"`
}

func defaultWorld() *worldState {
    return &worldState{
        Setting: "fantasy",
        Tone:    "dramatic",
        Player: playerCharacter{
            Name:      "Adventurer",
            HP:        100,
            MaxHP:     100,
            Status:    "Healthy",
            Inventory: []string{},
        },
        Location: location{
            Name:        "Enchanted Forest",
            Description: "Ancient trees tower overhead, their leaves shimmering with faint magic.",
            Paths:       []string{"north", "east", "south"},
        },
        NPCs:            []npc{},
        Events:          []string{},
        ActiveQuests:    []string{},
        CompletedQuests: []string{},
    }
}

type updatePlayerInput struct {
    HPChange   *int   `json:"hp_change,omitempty" jsonschema_description:"Amount to change HP by (negative for damage, positive for healing)."`
    AddItem    string `json:"add_item,omitempty" jsonschema_description:"Item to add to the inventory."`
    RemoveItem string `json:"remove_item,omitempty" jsonschema_description:"Item to remove from the inventory."`
    Name       string `json:"name,omitempty" jsonschema_description:"New name for the player character."`
}

type addNPCInput struct {
    Name     string `json:"name" jsonschema_description:"Name of the NPC."`
    Role     string `json:"role" jsonschema_description:"Role of the NPC (merchant, guard, wizard, etc.)."`
    Attitude string `json:"attitude,omitempty" jsonschema_description:"Attitude toward the player (friendly, neutral, hostile). Default neutral."`
}

type updateLocationInput struct {
    Name        string   `json:"name" jsonschema_description:"Name of the new location."`
    Description string   `json:"description" jsonschema_description:"Short description of the location."`
    Paths       []string `json:"paths,omitempty" jsonschema_description:"Directions the player can travel from here."`
}

type addEventInput struct {
    Description string `json:"description" jsonschema_description:"Short description of what happened."`
}

type questInput struct {
    Quest string `json:"quest" jsonschema_description:"Short name of the quest."`
}

func New(docs *docstore.Store) *persona.Descriptor {
    var seed *worldState
    var loaded worldState
    if err := docs.LoadInto(worldDoc, &loaded); err == nil {
        seed = &loaded
    } else {
        log.Printf("gamemaster: no seed world in %s: %v", worldDoc, err)
    }

    worlds := session.NewStore[worldState]()
    newWorld := func() *worldState {
        if seed == nil {
            return defaultWorld()
        }
        // Copy slices so rooms never share backing arrays with the seed.
        w := *seed
        w.Player.Inventory = append([]string(nil), seed.Player.Inventory...)
        w.Location.Paths = append([]string(nil), seed.Location.Paths...)
        w.NPCs = append([]npc(nil), seed.NPCs...)
        w.Events = append([]string(nil), seed.Events...)
        w.ActiveQuests = append([]string(nil), seed.ActiveQuests...)
        w.CompletedQuests = append([]string(nil), seed.CompletedQuests...)
        return &w
    }

    tools := []tool.Definition{
        {
            Name:        "update_player_character",
            Description: "Update the player character's HP, inventory, or name.",
            InputSchema: tool.Schema[updatePlayerInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in updatePlayerInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                w := worlds.GetOrCreate(inv.Room, newWorld)
                p := &w.Player

                if in.Name != "" {
                    p.Name = in.Name
                }
                if in.HPChange != nil {
                    p.HP += *in.HPChange
                    if p.HP < 0 {
                        p.HP = 0
                    }
                    if p.HP > p.MaxHP {
                        p.HP = p.MaxHP
                    }
                }
                switch {
                case p.HP < 30:
                    p.Status = "Critical"
                case p.HP < 70:
                    p.Status = "Injured"
                default:
                    p.Status = "Healthy"
                }
                if in.AddItem != "" && !contains(p.Inventory, in.AddItem) {
                    p.Inventory = append(p.Inventory, in.AddItem)
                }
                if in.RemoveItem != "" {
                    p.Inventory = remove(p.Inventory, in.RemoveItem)
                }
                return fmt.Sprintf("%s: %d/%d HP (%s). Inventory: %s.",
                    p.Name, p.HP, p.MaxHP, p.Status, inventoryOrNone(p.Inventory)), nil
            },
        },
        {
            Name:        "add_npc",
            Description: "Introduce a new NPC into the world.",
            InputSchema: tool.Schema[addNPCInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in addNPCInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                attitude := in.Attitude
                if attitude == "" {
                    attitude = "neutral"
                }
                w := worlds.GetOrCreate(inv.Room, newWorld)
                w.NPCs = append(w.NPCs, npc{Name: in.Name, Role: in.Role, Attitude: attitude})
                return fmt.Sprintf("%s the %s has entered the story (%s).", in.Name, in.Role, attitude), nil
            },
        },
        {
            Name:        "update_location",
            Description: "Move the player to a new location.",
            InputSchema: tool.Schema[updateLocationInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in updateLocationInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                w := worlds.GetOrCreate(inv.Room, newWorld)
                w.Location = location{Name: in.Name, Description: in.Description, Paths: in.Paths}
                return fmt.Sprintf("The player is now at %s. %s", in.Name, in.Description), nil
            },
        },
        {
            Name:        "add_event",
            Description: "Record a significant story event.",
            InputSchema: tool.Schema[addEventInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in addEventInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                w := worlds.GetOrCreate(inv.Room, newWorld)
                w.Events = append(w.Events, in.Description)
                return "Event recorded: " + in.Description, nil
            },
        },
        {
            Name:        "add_quest",
            Description: "Give the player a new quest.",
            InputSchema: tool.Schema[questInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in questInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                w := worlds.GetOrCreate(inv.Room, newWorld)
                w.ActiveQuests = append(w.ActiveQuests, in.Quest)
                return fmt.Sprintf("New quest: %s", in.Quest), nil
            },
        },
        {
            Name:        "complete_quest",
            Description: "Mark an active quest as completed.",
            InputSchema: tool.Schema[questInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in questInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                w := worlds.GetOrCreate(inv.Room, newWorld)
                for i, q := range w.ActiveQuests {
                    if strings.EqualFold(q, in.Quest) {
                        w.ActiveQuests = append(w.ActiveQuests[:i], w.ActiveQuests[i+1:]...)
                        w.CompletedQuests = append(w.CompletedQuests, q)
                        return fmt.Sprintf("Quest completed: %s!", q), nil
                    }
                }
                return fmt.Sprintf("Quest %q not found in active quests.", in.Quest), nil
            },
        },
        {
            Name:        "get_world_state_summary",
            Description: "Get a summary of the current world state.",
            InputSchema: tool.Schema[struct{}](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                w := worlds.GetOrCreate(inv.Room, newWorld)
                var b strings.Builder
                fmt.Fprintf(&b, "Setting: %s (%s tone)\n", w.Setting, w.Tone)
                fmt.Fprintf(&b, "Player: %s, %d/%d HP (%s). Inventory: %s.\n",
                    w.Player.Name, w.Player.HP, w.Player.MaxHP, w.Player.Status, inventoryOrNone(w.Player.Inventory))
                fmt.Fprintf(&b, "Location: %s - %s Paths: %s.\n",
                    w.Location.Name, w.Location.Description, strings.Join(w.Location.Paths, ", "))
                if len(w.NPCs) > 0 {
                    names := make([]string, 0, len(w.NPCs))
                    for _, n := range w.NPCs {
                        names = append(names, fmt.Sprintf("%s (%s, %s)", n.Name, n.Role, n.Attitude))
                    }
                    fmt.Fprintf(&b, "NPCs: %s.\n", strings.Join(names, "; "))
                }
                if len(w.Events) > 0 {
                    fmt.Fprintf(&b, "Recent events: %s.\n", strings.Join(tail(w.Events, 3), "; "))
                }
                if len(w.ActiveQuests) > 0 {
                    fmt.Fprintf(&b, "Active quests: %s.\n", strings.Join(w.ActiveQuests, "; "))
                }
                if len(w.CompletedQuests) > 0 {
                    fmt.Fprintf(&b, "Completed quests: %s.\n", strings.Join(w.CompletedQuests, "; "))
                }
                return strings.TrimRight(b.String(), "\n"), nil
            },
        },
    }

    return &persona.Descriptor{
        Name:         "day8",
        Title:        "Game Master",
        Instructions: instructions,
        Voice:        persona.Voice{ID: "en-US-ken", Style: "Conversation"},
        Tools:        tool.NewDispatcher("day8", tools),
        EndSession:   worlds.End,
    }
}

func contains(items []string, s string) bool {
    for _, it := range items {
        if it == s {
            return true
        }
    }
    return false
}

func remove(items []string, s string) []string {
    out := items[:0]
    for _, it := range items {
        if it != s {
            out = append(out, it)
        }
    }
    return out
}

func inventoryOrNone(items []string) string {
    if len(items) == 0 {
        return "empty"
    }
    return strings.Join(items, ", ")
}

func tail(items []string, n int) []string {
    if len(items) <= n {
        return items
    }
    return items[len(items)-n:]
}
