// Package tutor is the day4 persona: an active-recall tutor with three
// learning modes over a fixed concept catalog.
package tutor

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

const contentDoc = "day4_tutor_content.json"

const (
    ModeLearn     = "learn"
    ModeQuiz      = "quiz"
    ModeTeachBack = "teach_back"
)

// Per-mode voices: Matthew teaches, Alicia quizzes, Ken listens to teach-backs.
var modeVoices = map[string]string{
    ModeLearn:     "en-US-matthew",
    ModeQuiz:      "en-US-alicia",
    ModeTeachBack: "en-US-ken",
}

const instructions = `You are a friendly tutor with three modes: LEARN, QUIZ, and TEACH-BACK. You start in LEARN mode; use the set_mode tool when the user asks to switch.

In LEARN mode:
- Use the get_concept tool to retrieve concept information
- Explain concepts in a clear, simple way with examples and analogies
- Ask if the user wants to learn about another concept

In QUIZ mode:
- Use the get_concept tool to get questions
- Ask the question, then give feedback on the answer
- Be encouraging and helpful

In TEACH-BACK mode:
- Use the get_concept tool to get concept summaries
- Ask the user to explain a concept in their own words
- Point out what they got right and what they might have missed
- Be supportive and encouraging`

type concept struct {
    ID             string `json:"id"`
    Title          string `json:"title"`
    Summary        string `json:"summary"`
    SampleQuestion string `json:"sample_question"`
}

type tutorState struct {
    Mode string
}

type getConceptInput struct {
    ConceptID string `json:"concept_id,omitempty" jsonschema_description:"ID of the concept (e.g. variables, loops). Omit to list available concepts."`
}

type setModeInput struct {
    Mode string `json:"mode" jsonschema_description:"Learning mode: learn, quiz, or teach_back."`
}

func New(docs *docstore.Store) *persona.Descriptor {
    var content []concept
    if err := docs.LoadInto(contentDoc, &content); err != nil {
        log.Printf("tutor: loading %s: %v", contentDoc, err)
    }

    states := session.NewStore[tutorState]()
    newState := func() *tutorState { return &tutorState{Mode: ModeLearn} }

    ids := func() string {
        out := make([]string, 0, len(content))
        for _, c := range content {
            out = append(out, c.ID)
        }
        return strings.Join(out, ", ")
    }

    tools := []tool.Definition{
        {
            Name:        "get_concept",
            Description: "Get information about a concept, rendered for the current learning mode.",
            InputSchema: tool.Schema[getConceptInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in getConceptInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                if in.ConceptID == "" {
                    lines := make([]string, 0, len(content))
                    for _, c := range content {
                        lines = append(lines, fmt.Sprintf("- %s: %s", c.ID, c.Title))
                    }
                    return "Available concepts:\n" + strings.Join(lines, "\n"), nil
                }
                st := states.GetOrCreate(inv.Room, newState)
                want := strings.ToLower(in.ConceptID)
                for _, c := range content {
                    if c.ID != want {
                        continue
                    }
                    switch st.Mode {
                    case ModeQuiz:
                        return fmt.Sprintf("Question: %s", c.SampleQuestion), nil
                    case ModeTeachBack:
                        return fmt.Sprintf("Please explain: %s\n\nHere's a brief summary to help: %s", c.Title, c.Summary), nil
                    default:
                        return fmt.Sprintf("Concept: %s\n\n%s", c.Title, c.Summary), nil
                    }
                }
                return fmt.Sprintf("Concept %q not found. Available concepts: %s", in.ConceptID, ids()), nil
            },
        },
        {
            Name:        "list_concepts",
            Description: "List all available concepts to learn.",
            InputSchema: tool.Schema[struct{}](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                lines := make([]string, 0, len(content))
                for i, c := range content {
                    lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, c.Title, c.ID))
                }
                return "Available concepts:\n" + strings.Join(lines, "\n"), nil
            },
        },
        {
            Name:        "set_mode",
            Description: "Switch the learning mode for this session.",
            InputSchema: tool.Schema[setModeInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in setModeInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                mode := strings.ToLower(strings.TrimSpace(in.Mode))
                if _, ok := modeVoices[mode]; !ok {
                    return fmt.Sprintf("Mode %q isn't one I know. Pick learn, quiz, or teach_back.", in.Mode), nil
                }
                states.GetOrCreate(inv.Room, newState).Mode = mode
                return fmt.Sprintf("Switched to %s mode. Let's go!", mode), nil
            },
        },
    }

    return &persona.Descriptor{
        Name:         "day4",
        Title:        "Polyglot Tutor",
        Instructions: instructions,
        Voice:        persona.Voice{ID: modeVoices[ModeLearn], Style: "Conversation"},
        Tools:        tool.NewDispatcher("day4", tools),
        EndSession:   states.End,
    }
}
