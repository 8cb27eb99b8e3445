package improv

import (
    "context"
    "strings"
    "testing"

    "github.com/stretchr/testify/require"
)

func TestPlayerNameFromMetadata(t *testing.T) {
    d := New(func(room string) string {
        return `{"player_name":"Priya"}`
    })
    out := d.Tools.Dispatch(context.Background(), "room1", "get_player_name", nil)
    require.Equal(t, "Priya", out)

    // Cached after first lookup.
    out = d.Tools.Dispatch(context.Background(), "room1", "get_player_name", nil)
    require.Equal(t, "Priya", out)
}

func TestPlayerNameFallsBackToContestant(t *testing.T) {
    for name, lookup := range map[string]MetadataLookup{
        "nil lookup":  nil,
        "empty":       func(string) string { return "" },
        "bad json":    func(string) string { return "{not json" },
        "missing key": func(string) string { return `{"other":"x"}` },
        "empty name":  func(string) string { return `{"player_name":""}` },
    } {
        t.Run(name, func(t *testing.T) {
            d := New(lookup)
            out := d.Tools.Dispatch(context.Background(), "room1", "get_player_name", nil)
            require.Equal(t, "Contestant", out)
        })
    }
}

func TestThreeRoundsThenGameOver(t *testing.T) {
    d := New(nil)
    ctx := context.Background()

    seen := make(map[string]bool)
    for round := 1; round <= 3; round++ {
        out := d.Tools.Dispatch(ctx, "room1", "get_next_scenario", nil)
        prefix := "Round " + string(rune('0'+round)) + " Scenario: "
        require.True(t, strings.HasPrefix(out, prefix), "got %q", out)
        scenario := strings.TrimPrefix(out, prefix)
        require.False(t, seen[scenario], "scenario repeated: %q", scenario)
        seen[scenario] = true

        out = d.Tools.Dispatch(ctx, "room1", "record_round_result", []byte(`{"reaction_summary":"committed fully"}`))
        require.Equal(t, "Round recorded. Proceed to next round or outro.", out)
    }

    out := d.Tools.Dispatch(ctx, "room1", "get_next_scenario", nil)
    require.Equal(t, "GAME_OVER", out)

    // Still over on retry.
    out = d.Tools.Dispatch(ctx, "room1", "get_next_scenario", nil)
    require.Equal(t, "GAME_OVER", out)
}

func TestEndSessionResetsGame(t *testing.T) {
    d := New(nil)
    ctx := context.Background()

    for i := 0; i < 3; i++ {
        d.Tools.Dispatch(ctx, "room1", "get_next_scenario", nil)
    }
    require.Equal(t, "GAME_OVER", d.Tools.Dispatch(ctx, "room1", "get_next_scenario", nil))

    d.EndSession("room1")
    out := d.Tools.Dispatch(ctx, "room1", "get_next_scenario", nil)
    require.True(t, strings.HasPrefix(out, "Round 1 Scenario: "), "got %q", out)
}
