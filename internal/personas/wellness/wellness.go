// Package wellness is the day3 persona: a daily check-in companion that keeps
// a dated wellness log.
package wellness

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "strings"
    "time"

    "voicedays/agent/internal/docstore"
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/tool"
)

const logDoc = "day3_wellness_log.json"

const instructions = `You are a supportive health and wellness companion. Your role is to conduct daily check-ins with users in a warm, empathetic, and grounded way.

Your approach:
- Ask about mood and energy levels naturally
- Inquire about intentions/objectives for the day
- Offer simple, realistic advice (non-medical, non-diagnostic)
- Provide brief recaps of what was discussed
- Reference past check-ins when relevant (use the get_wellness_history tool)

Important guidelines:
- Keep advice small, actionable, and grounded
- Never diagnose or make medical claims
- Be supportive but realistic
- Keep conversations concise and focused
- Always confirm understanding before ending

When the user seems done, use the save_checkin tool to save the session.`

type checkin struct {
    Date       string   `json:"date"`
    Mood       string   `json:"mood"`
    Energy     string   `json:"energy"`
    Objectives []string `json:"objectives"`
    Summary    string   `json:"summary"`
}

type historyInput struct {
    Days int `json:"days,omitempty" jsonschema_description:"Number of days to look back (default 7)."`
}

type saveCheckinInput struct {
    Mood       string   `json:"mood" jsonschema_description:"How the user is feeling (e.g. good, tired, anxious, energetic)."`
    Energy     string   `json:"energy" jsonschema_description:"Energy level (high, medium, low)."`
    Objectives []string `json:"objectives" jsonschema_description:"One to three things the user wants to accomplish today."`
    Summary    string   `json:"summary,omitempty" jsonschema_description:"Optional brief summary of the conversation."`
}

func New(docs *docstore.Store) *persona.Descriptor {
    tools := []tool.Definition{
        {
            Name:        "get_wellness_history",
            Description: "Get wellness check-in history from the past N days.",
            InputSchema: tool.Schema[historyInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in historyInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                days := in.Days
                if days <= 0 {
                    days = 7
                }

                var history []checkin
                if err := docs.LoadInto(logDoc, &history); err != nil {
                    if !errors.Is(err, os.ErrNotExist) {
                        return "I couldn't access your previous check-ins, but that's okay. Let's focus on today.", nil
                    }
                }
                if len(history) > days {
                    history = history[len(history)-days:]
                }
                if len(history) == 0 {
                    return "This is your first check-in. Welcome!", nil
                }
                if len(history) > 3 {
                    history = history[len(history)-3:]
                }
                parts := make([]string, 0, len(history))
                for _, e := range history {
                    date := e.Date
                    if date == "" {
                        date = "Unknown date"
                    }
                    mood := e.Mood
                    if mood == "" {
                        mood = "not recorded"
                    }
                    parts = append(parts, fmt.Sprintf("On %s, you reported feeling %s.", date, mood))
                }
                return strings.Join(parts, " "), nil
            },
        },
        {
            Name:        "save_checkin",
            Description: "Save a wellness check-in to the log.",
            InputSchema: tool.Schema[saveCheckinInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in saveCheckinInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                entry := checkin{
                    Date:       time.Now().Format(time.RFC3339),
                    Mood:       in.Mood,
                    Energy:     in.Energy,
                    Objectives: in.Objectives,
                    Summary:    in.Summary,
                }
                if entry.Objectives == nil {
                    entry.Objectives = []string{}
                }
                if entry.Summary == "" {
                    entry.Summary = fmt.Sprintf("Check-in completed. Mood: %s, Energy: %s", in.Mood, in.Energy)
                }
                if err := docs.Append(logDoc, entry); err != nil {
                    return "I had trouble saving your check-in, but I've noted everything we discussed.", nil
                }
                log.Printf("wellness: check-in saved room=%s mood=%s", inv.Room, in.Mood)
                objectives := "none specified"
                if len(in.Objectives) > 0 {
                    objectives = strings.Join(in.Objectives, ", ")
                }
                return fmt.Sprintf("Check-in saved! I've recorded that you're feeling %s with %s energy, and your objectives are: %s. Take care today!",
                    in.Mood, in.Energy, objectives), nil
            },
        },
    }

    return &persona.Descriptor{
        Name:         "day3",
        Title:        "Wellness Companion",
        Instructions: instructions,
        Voice:        persona.Voice{ID: "en-US-matthew", Style: "Conversation"},
        Tools:        tool.NewDispatcher("day3", tools),
    }
}
