// Package fraud is the day6 persona: a bank fraud-department caller that
// verifies suspicious transactions against the pending case list.
package fraud

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "strings"

    "voicedays/agent/internal/docstore"
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/tool"
)

const casesDoc = "day6_fraud_cases.json"

const (
    StatusPending            = "pending_review"
    StatusConfirmedSafe      = "confirmed_safe"
    StatusConfirmedFraud     = "confirmed_fraud"
    StatusVerificationFailed = "verification_failed"
)

const instructions = `You are a fraud detection representative for a bank's security department. Your role is to contact customers about suspicious transactions and verify if they are legitimate.

Your approach:
- Introduce yourself clearly as a bank fraud department representative
- Explain that you're calling about a suspicious transaction
- Ask for the customer's username to look up their case
- Once you have the username, use the get_fraud_case tool to retrieve transaction details
- Ask a security question to verify the customer's identity (use the security question from the case)
- If verification passes, read out the suspicious transaction details
- Ask if the customer made this transaction (yes/no)
- Based on their answer:
  * If YES: Use update_fraud_case to mark as "confirmed_safe"
  * If NO: Use update_fraud_case to mark as "confirmed_fraud"
- If verification fails, politely end the call and mark as "verification_failed"

Important:
- Be calm, professional, and reassuring
- Never ask for full card numbers, PINs, or passwords
- Only use non-sensitive information for verification
- Clearly explain what action will be taken (card blocked, dispute raised, etc.) if fraud is confirmed`

// fraudCase keeps the persisted field spellings; extra transaction details
// ride along in Transaction untouched.
type fraudCase struct {
    UserName         string         `json:"userName"`
    Case             string         `json:"case"`
    CardEnding       string         `json:"cardEnding,omitempty"`
    SecurityQuestion string         `json:"securityQuestion,omitempty"`
    SecurityAnswer   string         `json:"securityAnswer,omitempty"`
    Transaction      map[string]any `json:"transaction,omitempty"`
    Outcome          string         `json:"outcome,omitempty"`
    OutcomeNote      string         `json:"outcomeNote,omitempty"`
}

type getCaseInput struct {
    Username string `json:"username" jsonschema_description:"Customer's username."`
}

type updateCaseInput struct {
    Username    string `json:"username" jsonschema_description:"Customer's username."`
    Status      string `json:"status" jsonschema_description:"New status (confirmed_safe, confirmed_fraud, verification_failed)."`
    OutcomeNote string `json:"outcome_note" jsonschema_description:"Note about the outcome."`
}

func New(docs *docstore.Store) *persona.Descriptor {
    loadCases := func() ([]fraudCase, error) {
        var cases []fraudCase
        err := docs.LoadInto(casesDoc, &cases)
        return cases, err
    }

    tools := []tool.Definition{
        {
            Name:        "get_fraud_case",
            Description: "Get fraud case details for a username.",
            InputSchema: tool.Schema[getCaseInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in getCaseInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                cases, err := loadCases()
                if err != nil {
                    log.Printf("fraud: loading cases: %v", err)
                }
                for _, c := range cases {
                    if !strings.EqualFold(c.UserName, in.Username) {
                        continue
                    }
                    if c.Case != StatusPending {
                        return fmt.Sprintf("Case for %s has already been processed. Status: %s", in.Username, c.Case), nil
                    }
                    b, err := json.MarshalIndent(c, "", "  ")
                    if err != nil {
                        return "", err
                    }
                    return string(b), nil
                }
                return fmt.Sprintf("No pending fraud case found for username: %s", in.Username), nil
            },
        },
        {
            Name:        "update_fraud_case",
            Description: "Update a fraud case with the outcome.",
            InputSchema: tool.Schema[updateCaseInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in updateCaseInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                cases, err := loadCases()
                if err != nil {
                    log.Printf("fraud: loading cases: %v", err)
                }
                for i := range cases {
                    if !strings.EqualFold(cases[i].UserName, in.Username) {
                        continue
                    }
                    cases[i].Case = in.Status
                    cases[i].Outcome = in.Status
                    cases[i].OutcomeNote = in.OutcomeNote

                    if err := docs.Save(casesDoc, cases); err != nil {
                        return "I had trouble updating the case, but I've noted the outcome.", nil
                    }
                    log.Printf("fraud: case updated room=%s user=%s status=%s", inv.Room, in.Username, in.Status)

                    switch in.Status {
                    case StatusConfirmedSafe:
                        return "Transaction confirmed as legitimate. The case has been closed. Thank you for verifying.", nil
                    case StatusConfirmedFraud:
                        ending := cases[i].CardEnding
                        if ending == "" {
                            ending = "****"
                        }
                        return fmt.Sprintf("Fraud confirmed. I've blocked the card ending in %s and initiated a dispute. A new card will be issued within 5-7 business days. Thank you for reporting this.", ending), nil
                    default:
                        return "Verification failed. For security reasons, I cannot proceed. Please contact our customer service directly. Thank you.", nil
                    }
                }
                return fmt.Sprintf("Case not found for username: %s", in.Username), nil
            },
        },
    }

    return &persona.Descriptor{
        Name:         "day6",
        Title:        "Fraud Detective",
        Instructions: instructions,
        Voice:        persona.Voice{ID: "en-US-matthew", Style: "Conversation"},
        Tools:        tool.NewDispatcher("day6", tools),
    }
}
