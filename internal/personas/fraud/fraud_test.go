package fraud

import (
    "context"
    "encoding/json"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "voicedays/agent/internal/docstore"
)

func seeded(t *testing.T) *docstore.Store {
    t.Helper()
    docs := docstore.New(t.TempDir())
    require.NoError(t, docs.Save(casesDoc, []fraudCase{
        {UserName: "bob", Case: StatusPending, CardEnding: "4421",
            SecurityQuestion: "What city were you born in?",
            Transaction:      map[string]any{"amount": float64(920), "merchant": "LuxWatch Online"}},
        {UserName: "carol", Case: StatusConfirmedSafe, CardEnding: "1107"},
    }))
    return docs
}

func TestGetPendingCase(t *testing.T) {
    d := New(seeded(t))

    got := d.Tools.Dispatch(context.Background(), "r1", "get_fraud_case", json.RawMessage(`{"username":"BOB"}`))
    assert.Contains(t, got, "LuxWatch Online")
    assert.Contains(t, got, "pending_review")
}

func TestGetProcessedCase(t *testing.T) {
    d := New(seeded(t))

    got := d.Tools.Dispatch(context.Background(), "r1", "get_fraud_case", json.RawMessage(`{"username":"carol"}`))
    assert.Contains(t, got, "already been processed")
    assert.Contains(t, got, StatusConfirmedSafe)
}

func TestGetUnknownCase(t *testing.T) {
    d := New(seeded(t))

    got := d.Tools.Dispatch(context.Background(), "r1", "get_fraud_case", json.RawMessage(`{"username":"mallory"}`))
    assert.Contains(t, got, "No pending fraud case found")
}

func TestUpdateCaseTouchesOnlyTheMatch(t *testing.T) {
    docs := seeded(t)
    d := New(docs)

    got := d.Tools.Dispatch(context.Background(), "r1", "update_fraud_case", json.RawMessage(
        `{"username":"bob","status":"confirmed_fraud","outcome_note":"denied"}`))
    assert.Contains(t, got, "card ending in 4421")

    var cases []fraudCase
    require.NoError(t, docs.LoadInto(casesDoc, &cases))
    require.Len(t, cases, 2)

    assert.Equal(t, StatusConfirmedFraud, cases[0].Case)
    assert.Equal(t, StatusConfirmedFraud, cases[0].Outcome)
    assert.Equal(t, "denied", cases[0].OutcomeNote)
    // The other case is untouched.
    assert.Equal(t, StatusConfirmedSafe, cases[1].Case)
    assert.Empty(t, cases[1].OutcomeNote)
}

func TestUpdateCaseVerificationFailed(t *testing.T) {
    d := New(seeded(t))

    got := d.Tools.Dispatch(context.Background(), "r1", "update_fraud_case", json.RawMessage(
        `{"username":"bob","status":"verification_failed","outcome_note":"wrong answer"}`))
    assert.Contains(t, got, "Verification failed")
}

func TestUpdateUnknownCase(t *testing.T) {
    d := New(seeded(t))

    got := d.Tools.Dispatch(context.Background(), "r1", "update_fraud_case", json.RawMessage(
        `{"username":"nobody","status":"confirmed_safe","outcome_note":"n/a"}`))
    assert.Contains(t, got, "Case not found")
}
