package persona

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func reg() *Registry {
    r := NewRegistry("day1")
    r.Register(&Descriptor{Name: "day1", Title: "The Assistant"})
    r.Register(&Descriptor{Name: "day2", Title: "Barista Bot"})
    r.Register(&Descriptor{Name: "day8", Title: "Dungeon Master"})
    return r
}

func TestNormalize(t *testing.T) {
    cases := map[string]string{
        "day2":  "day2",
        "Day2":  "day2",
        " DAY2 ": "day2",
        "2":     "day2",
        "10":    "day10",
        "barista": "barista",
        "":      "",
    }
    for in, want := range cases {
        assert.Equal(t, want, Normalize(in), "input %q", in)
    }
}

func TestGetFallsBackForUnknown(t *testing.T) {
    r := reg()

    assert.Equal(t, "day2", r.Get("2").Name)
    assert.Equal(t, "day1", r.Get("day99").Name)
    assert.Equal(t, "day1", r.Get("").Name)
}

func TestSelectExplicitWins(t *testing.T) {
    r := reg()
    assert.Equal(t, "day8", r.Select("day8", "room_day2"))
}

func TestSelectRoomSuffix(t *testing.T) {
    r := reg()
    assert.Equal(t, "day2", r.Select("", "coffee_chat_day2"))
    assert.Equal(t, "day8", r.Select("", "abc_DAY8"))
}

func TestSelectFallback(t *testing.T) {
    r := reg()
    // No explicit choice, no suffix, unregistered suffix: all fall back.
    assert.Equal(t, "day1", r.Select("", "plainroom"))
    assert.Equal(t, "day1", r.Select("", "room_day77"))
    assert.Equal(t, "day1", r.Select("", "room_daytime"))
}

func TestNamesKeepsRegistrationOrder(t *testing.T) {
    r := reg()
    assert.Equal(t, []string{"day1", "day2", "day8"}, r.Names())
}
