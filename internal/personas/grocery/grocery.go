// Package grocery is the day7 persona: a food and grocery ordering assistant
// with a per-room cart and a recipe-aware catalog.
package grocery

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "strings"
    "time"

    "voicedays/agent/internal/docstore"
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/session"
    "voicedays/agent/internal/tool"
)

const (
    catalogDoc = "day7_catalog.json"
    ordersDoc  = "day7_orders.json"
)

const maxSearchResults = 5

const instructions = `You are a friendly food and grocery ordering assistant. Your job is to help customers order food and groceries.

Your approach:
- Greet customers warmly and explain what you can help with
- Help customers add items to their cart
- Handle "ingredients for X" requests intelligently (e.g., "ingredients for peanut butter sandwich")
- Ask for clarifications when needed (size, brand, quantity)
- When asked "what's in my cart", use the get_cart tool
- Support cart operations: add, remove, update quantities
- When the user says "place order", "checkout", "I'm done", use the place_order tool
- Be conversational and confirm actions verbally

Important:
- Use the search_catalog tool to find items
- Use the get_recipe_items tool for "ingredients for X" requests
- Always confirm what you're adding to the cart
- Show enthusiasm and be helpful`

type catalog struct {
    Categories map[string][]item `json:"categories"`
    Recipes    map[string]recipe `json:"recipes"`
}

type item struct {
    ID    string   `json:"id"`
    Name  string   `json:"name"`
    Size  string   `json:"size"`
    Price int      `json:"price"`
    Tags  []string `json:"tags,omitempty"`
}

type recipe struct {
    Name  string   `json:"name"`
    Items []string `json:"items"`
}

func (c *catalog) find(itemID string) (item, bool) {
    for _, items := range c.Categories {
        for _, it := range items {
            if it.ID == itemID {
                return it, true
            }
        }
    }
    return item{}, false
}

type cartLine struct {
    ID       string `json:"id"`
    Name     string `json:"name"`
    Price    int    `json:"price"`
    Quantity int    `json:"quantity"`
}

type cartState struct {
    Lines []cartLine
}

type placedOrder struct {
    OrderID      string     `json:"order_id"`
    CustomerName string     `json:"customer_name"`
    Address      string     `json:"address"`
    Items        []cartLine `json:"items"`
    Total        int        `json:"total"`
    Currency     string     `json:"currency"`
    Timestamp    string     `json:"timestamp"`
    Status       string     `json:"status"`
}

type searchInput struct {
    Query    string `json:"query" jsonschema_description:"Search query (item name, brand, etc.)."`
    Category string `json:"category,omitempty" jsonschema_description:"Optional category filter (groceries, snacks, prepared_food)."`
}

type recipeInput struct {
    RecipeName string `json:"recipe_name" jsonschema_description:"Name of the recipe (e.g. peanut butter sandwich, pasta dish)."`
}

type addInput struct {
    ItemID   string `json:"item_id" jsonschema_description:"ID of the item to add."`
    Quantity int    `json:"quantity,omitempty" jsonschema_description:"Quantity to add (default 1)."`
}

type removeInput struct {
    ItemID string `json:"item_id" jsonschema_description:"ID of the item to remove."`
}

type placeOrderInput struct {
    CustomerName string `json:"customer_name,omitempty" jsonschema_description:"Optional customer name."`
    Address      string `json:"address,omitempty" jsonschema_description:"Optional delivery address."`
}

func New(docs *docstore.Store) *persona.Descriptor {
    var cat catalog
    if err := docs.LoadInto(catalogDoc, &cat); err != nil {
        log.Printf("grocery: loading %s: %v", catalogDoc, err)
    }

    carts := session.NewStore[cartState]()
    newCart := func() *cartState { return &cartState{} }

    tools := []tool.Definition{
        {
            Name:        "search_catalog",
            Description: "Search the food catalog for items.",
            InputSchema: tool.Schema[searchInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in searchInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                query := strings.ToLower(in.Query)

                var results []item
                for category, items := range cat.Categories {
                    if in.Category != "" && category != in.Category {
                        continue
                    }
                    for _, it := range items {
                        if matches(it, query) {
                            results = append(results, it)
                        }
                    }
                }
                if len(results) == 0 {
                    return fmt.Sprintf("No items found matching %q. Try searching for bread, eggs, milk, pasta, or prepared food items.", in.Query), nil
                }
                if len(results) > maxSearchResults {
                    results = results[:maxSearchResults]
                }
                lines := make([]string, 0, len(results))
                for _, it := range results {
                    lines = append(lines, fmt.Sprintf("- %s (%s) - ₹%d [ID: %s]", it.Name, it.Size, it.Price, it.ID))
                }
                return "Found items:\n" + strings.Join(lines, "\n"), nil
            },
        },
        {
            Name:        "get_recipe_items",
            Description: "Get items needed for a recipe.",
            InputSchema: tool.Schema[recipeInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in recipeInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                key := strings.ReplaceAll(strings.ToLower(in.RecipeName), " ", "_")
                r, ok := cat.Recipes[key]
                if !ok {
                    names := make([]string, 0, len(cat.Recipes))
                    for k := range cat.Recipes {
                        names = append(names, strings.ReplaceAll(k, "_", " "))
                    }
                    return fmt.Sprintf("Recipe %q not found. Available recipes: %s", in.RecipeName, strings.Join(names, ", ")), nil
                }
                lines := make([]string, 0, len(r.Items))
                for _, id := range r.Items {
                    if it, ok := cat.find(id); ok {
                        lines = append(lines, fmt.Sprintf("- %s (%s) - ₹%d [ID: %s]", it.Name, it.Size, it.Price, it.ID))
                    }
                }
                return fmt.Sprintf("For %s, you'll need:\n%s", r.Name, strings.Join(lines, "\n")), nil
            },
        },
        {
            Name:        "add_to_cart",
            Description: "Add an item to the cart.",
            InputSchema: tool.Schema[addInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in addInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                qty := in.Quantity
                if qty <= 0 {
                    qty = 1
                }
                it, ok := cat.find(in.ItemID)
                if !ok {
                    return fmt.Sprintf("Item with ID %q not found in catalog.", in.ItemID), nil
                }

                cart := carts.GetOrCreate(inv.Room, newCart)
                // Re-adding the same item merges into one line rather than duplicating it.
                for i := range cart.Lines {
                    if cart.Lines[i].ID == in.ItemID {
                        cart.Lines[i].Quantity += qty
                        total := cart.Lines[i].Quantity * it.Price
                        return fmt.Sprintf("Updated quantity. You now have %dx %s in your cart (₹%d total).",
                            cart.Lines[i].Quantity, it.Name, total), nil
                    }
                }
                cart.Lines = append(cart.Lines, cartLine{ID: in.ItemID, Name: it.Name, Price: it.Price, Quantity: qty})
                return fmt.Sprintf("Added %dx %s to your cart (₹%d).", qty, it.Name, qty*it.Price), nil
            },
        },
        {
            Name:        "get_cart",
            Description: "Get current cart contents.",
            InputSchema: tool.Schema[struct{}](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                cart, ok := carts.Peek(inv.Room)
                if !ok || len(cart.Lines) == 0 {
                    return "Your cart is empty.", nil
                }
                var lines []string
                total := 0
                for _, l := range cart.Lines {
                    lineTotal := l.Quantity * l.Price
                    total += lineTotal
                    lines = append(lines, fmt.Sprintf("- %dx %s - ₹%d", l.Quantity, l.Name, lineTotal))
                }
                return fmt.Sprintf("Your cart contains:\n%s\n\nTotal: ₹%d", strings.Join(lines, "\n"), total), nil
            },
        },
        {
            Name:        "remove_from_cart",
            Description: "Remove an item from the cart.",
            InputSchema: tool.Schema[removeInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in removeInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                cart := carts.GetOrCreate(inv.Room, newCart)
                for i, l := range cart.Lines {
                    if l.ID == in.ItemID {
                        cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
                        return fmt.Sprintf("Removed %s from your cart.", l.Name), nil
                    }
                }
                return fmt.Sprintf("Item with ID %q not found in cart.", in.ItemID), nil
            },
        },
        {
            Name:        "place_order",
            Description: "Place the current order.",
            InputSchema: tool.Schema[placeOrderInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in placeOrderInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                cart := carts.GetOrCreate(inv.Room, newCart)
                if len(cart.Lines) == 0 {
                    return "Your cart is empty. Add some items before placing an order.", nil
                }
                total := 0
                for _, l := range cart.Lines {
                    total += l.Quantity * l.Price
                }
                o := placedOrder{
                    OrderID:      "ORD-" + time.Now().Format("20060102150405"),
                    CustomerName: orDefault(in.CustomerName, "Guest"),
                    Address:      orDefault(in.Address, "Not provided"),
                    Items:        append([]cartLine(nil), cart.Lines...),
                    Total:        total,
                    Currency:     "INR",
                    Timestamp:    time.Now().Format(time.RFC3339),
                    Status:       "received",
                }
                if err := docs.Append(ordersDoc, o); err != nil {
                    return "I had trouble placing your order. Please try again.", nil
                }
                cart.Lines = nil
                log.Printf("grocery: order placed room=%s id=%s total=%d", inv.Room, o.OrderID, total)
                return fmt.Sprintf("Order placed successfully! Order ID: %s. Total: ₹%d. Your order will be prepared and delivered soon. Thank you!", o.OrderID, total), nil
            },
        },
    }

    return &persona.Descriptor{
        Name:         "day7",
        Title:        "Foodie Friend",
        Instructions: instructions,
        Voice:        persona.Voice{ID: "en-US-matthew", Style: "Conversation"},
        Tools:        tool.NewDispatcher("day7", tools),
        EndSession:   carts.End,
    }
}

func matches(it item, query string) bool {
    if strings.Contains(strings.ToLower(it.Name), query) {
        return true
    }
    for _, tag := range it.Tags {
        if strings.Contains(strings.ToLower(tag), query) {
            return true
        }
    }
    return false
}

func orDefault(s, def string) string {
    if s == "" {
        return def
    }
    return s
}
