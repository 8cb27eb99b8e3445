package barista

import (
    "context"
    "encoding/json"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "voicedays/agent/internal/docstore"
)

func TestSaveOrderAppendsRecord(t *testing.T) {
    docs := docstore.New(t.TempDir())
    require.NoError(t, docs.Append(ordersDoc, map[string]any{"name": "prior"}))

    d := New(docs)
    got := d.Tools.Dispatch(context.Background(), "room-1", "save_order", json.RawMessage(
        `{"drink_type":"latte","size":"medium","milk":"oat","extras":["caramel"],"customer_name":"Ann"}`))
    assert.Contains(t, got, "medium latte")
    assert.Contains(t, got, "Ann")

    list, ok := docs.Load(ordersDoc, nil).([]any)
    require.True(t, ok)
    require.Len(t, list, 2, "new order appended after prior contents")
    assert.Equal(t, map[string]any{
        "drinkType": "latte",
        "size":      "medium",
        "milk":      "oat",
        "extras":    []any{"caramel"},
        "name":      "Ann",
    }, list[1])
}

func TestSaveOrderNoExtras(t *testing.T) {
    docs := docstore.New(t.TempDir())
    d := New(docs)

    got := d.Tools.Dispatch(context.Background(), "room-1", "save_order", json.RawMessage(
        `{"drink_type":"coffee","size":"small","milk":"whole","extras":[],"customer_name":"Bo"}`))
    assert.Contains(t, got, "no extras")

    list := docs.Load(ordersDoc, nil).([]any)
    require.Len(t, list, 1)
    entry := list[0].(map[string]any)
    assert.Equal(t, []any{}, entry["extras"])
}
