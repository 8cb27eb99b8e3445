package gamemaster

import (
    "context"
    "testing"

    "github.com/stretchr/testify/require"

    "voicedays/agent/internal/docstore"
)

func TestPlayerHPClampsAndStatusBands(t *testing.T) {
    d := New(docstore.New(t.TempDir()))
    ctx := context.Background()

    out := d.Tools.Dispatch(ctx, "room1", "update_player_character", []byte(`{"hp_change":-40}`))
    require.Contains(t, out, "60/100 HP (Injured)")

    out = d.Tools.Dispatch(ctx, "room1", "update_player_character", []byte(`{"hp_change":-35}`))
    require.Contains(t, out, "25/100 HP (Critical)")

    out = d.Tools.Dispatch(ctx, "room1", "update_player_character", []byte(`{"hp_change":-999}`))
    require.Contains(t, out, "0/100 HP (Critical)")

    out = d.Tools.Dispatch(ctx, "room1", "update_player_character", []byte(`{"hp_change":500}`))
    require.Contains(t, out, "100/100 HP (Healthy)")
}

func TestInventoryAddIsIdempotent(t *testing.T) {
    d := New(docstore.New(t.TempDir()))
    ctx := context.Background()

    d.Tools.Dispatch(ctx, "room1", "update_player_character", []byte(`{"add_item":"rusty sword"}`))
    out := d.Tools.Dispatch(ctx, "room1", "update_player_character", []byte(`{"add_item":"rusty sword"}`))
    require.Contains(t, out, "Inventory: rusty sword.")

    out = d.Tools.Dispatch(ctx, "room1", "update_player_character", []byte(`{"remove_item":"rusty sword"}`))
    require.Contains(t, out, "Inventory: empty.")
}

func TestCompleteQuestMovesBetweenLists(t *testing.T) {
    d := New(docstore.New(t.TempDir()))
    ctx := context.Background()

    d.Tools.Dispatch(ctx, "room1", "add_quest", []byte(`{"quest":"Find the amulet"}`))
    d.Tools.Dispatch(ctx, "room1", "add_quest", []byte(`{"quest":"Rescue the merchant"}`))

    out := d.Tools.Dispatch(ctx, "room1", "complete_quest", []byte(`{"quest":"find the amulet"}`))
    require.Contains(t, out, "Quest completed: Find the amulet!")

    summary := d.Tools.Dispatch(ctx, "room1", "get_world_state_summary", nil)
    require.Contains(t, summary, "Active quests: Rescue the merchant.")
    require.Contains(t, summary, "Completed quests: Find the amulet.")
}

func TestCompleteUnknownQuestLeavesListsUnchanged(t *testing.T) {
    d := New(docstore.New(t.TempDir()))
    ctx := context.Background()

    d.Tools.Dispatch(ctx, "room1", "add_quest", []byte(`{"quest":"Find the amulet"}`))
    out := d.Tools.Dispatch(ctx, "room1", "complete_quest", []byte(`{"quest":"Slay the dragon"}`))
    require.Equal(t, `Quest "Slay the dragon" not found in active quests.`, out)

    summary := d.Tools.Dispatch(ctx, "room1", "get_world_state_summary", nil)
    require.Contains(t, summary, "Active quests: Find the amulet.")
    require.NotContains(t, summary, "Completed quests:")
}

func TestSeedWorldFromDocument(t *testing.T) {
    docs := docstore.New(t.TempDir())
    require.NoError(t, docs.Save(worldDoc, map[string]any{
        "setting": "noir",
        "tone":    "gritty",
        "player": map[string]any{
            "name": "Detective Vale", "hp": 80, "max_hp": 80, "status": "Healthy", "inventory": []string{"revolver"},
        },
        "location": map[string]any{
            "name": "Rain-soaked Alley", "description": "Neon reflects off the puddles.", "paths": []string{"street"},
        },
    }))
    d := New(docs)
    ctx := context.Background()

    summary := d.Tools.Dispatch(ctx, "room1", "get_world_state_summary", nil)
    require.Contains(t, summary, "Setting: noir (gritty tone)")
    require.Contains(t, summary, "Detective Vale, 80/80 HP")
    require.Contains(t, summary, "Rain-soaked Alley")
}

func TestWorldsAreIsolatedPerRoom(t *testing.T) {
    d := New(docstore.New(t.TempDir()))
    ctx := context.Background()

    d.Tools.Dispatch(ctx, "roomA", "add_npc", []byte(`{"name":"Mira","role":"merchant"}`))
    summary := d.Tools.Dispatch(ctx, "roomB", "get_world_state_summary", nil)
    require.NotContains(t, summary, "Mira")
}
