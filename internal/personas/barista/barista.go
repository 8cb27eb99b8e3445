// Package barista is the day2 persona: a coffee-shop order taker that writes
// completed orders to the shared orders document.
package barista

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

const ordersDoc = "day2_orders.json"

const instructions = `You are a friendly barista at a coffee shop. Your job is to help customers place their coffee orders.

You should:
- Greet customers warmly and ask what they'd like to order
- Ask clarifying questions to fill in all order details:
  * What type of drink (coffee, latte, cappuccino, etc.)
  * What size (small, medium, large)
  * What type of milk (whole, skim, almond, oat, etc.)
  * Any extras (sugar, whipped cream, caramel, etc.)
  * Customer's name for the order
- Once you have all the information, use the save_order tool to save the order
- Be conversational and friendly throughout
- Confirm the order details before saving

Keep your responses concise and natural, as if you're having a real conversation.`

type saveOrderInput struct {
    DrinkType    string   `json:"drink_type" jsonschema_description:"Type of drink (e.g. latte, cappuccino, coffee)."`
    Size         string   `json:"size" jsonschema_description:"Size of the drink (small, medium, large)."`
    Milk         string   `json:"milk" jsonschema_description:"Type of milk (whole, skim, almond, oat, ...)."`
    Extras       []string `json:"extras" jsonschema_description:"Extras such as sugar, whipped cream, caramel."`
    CustomerName string   `json:"customer_name" jsonschema_description:"Name of the customer."`
}

// order is the persisted record shape; field spellings match the document.
type order struct {
    DrinkType string   `json:"drinkType"`
    Size      string   `json:"size"`
    Milk      string   `json:"milk"`
    Extras    []string `json:"extras"`
    Name      string   `json:"name"`
}

func New(docs *docstore.Store) *persona.Descriptor {
    tools := []tool.Definition{
        {
            Name:        "save_order",
            Description: "Save a completed coffee order.",
            InputSchema: tool.Schema[saveOrderInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in saveOrderInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                o := order{
                    DrinkType: in.DrinkType,
                    Size:      in.Size,
                    Milk:      in.Milk,
                    Extras:    in.Extras,
                    Name:      in.CustomerName,
                }
                if o.Extras == nil {
                    o.Extras = []string{}
                }
                if err := docs.Append(ordersDoc, o); err != nil {
                    return "I had trouble saving your order. Let me try again.", nil
                }
                log.Printf("barista: order saved room=%s drink=%s", inv.Room, in.DrinkType)
                extras := "no extras"
                if len(in.Extras) > 0 {
                    extras = strings.Join(in.Extras, ", ")
                }
                return fmt.Sprintf("Order saved successfully! I've got your %s %s with %s milk and %s ready for %s.",
                    in.Size, in.DrinkType, in.Milk, extras, in.CustomerName), nil
            },
        },
        {
            Name:        "check_order_status",
            Description: "Check if the current order has all required fields filled.",
            InputSchema: tool.Schema[struct{}](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                return "Use this to check what order details are still needed.", nil
            },
        },
    }

    return &persona.Descriptor{
        Name:         "day2",
        Title:        "Barista Bot",
        Instructions: instructions,
        Voice:        persona.Voice{ID: "en-US-matthew", Style: "Conversation"},
        Tools:        tool.NewDispatcher("day2", tools),
    }
}
