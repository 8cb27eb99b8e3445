// Package assistant is the day1 fallback persona: a plain helpful voice
// assistant with no tools.
package assistant

import (
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/tool"
)

const instructions = `You are a helpful, friendly voice assistant.

You should:
- Answer general questions clearly and concisely
- Keep responses short and conversational, suited to being spoken aloud
- Admit when you don't know something rather than guessing
- Stay polite and upbeat throughout the conversation`

func New() *persona.Descriptor {
    return &persona.Descriptor{
        Name:         "day1",
        Title:        "The Assistant",
        Instructions: instructions,
        Voice:        persona.Voice{ID: "en-US-matthew", Style: "Conversation"},
        Tools:        tool.NewDispatcher("day1", nil),
    }
}
