// Package shop is the day9 persona: an e-commerce assistant that browses a
// product catalog and places validated orders.
package shop

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "strings"
    "time"

    "voicedays/agent/internal/docstore"
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/tool"
)

const (
    catalogDoc = "day9_catalog.json"
    ordersDoc  = "day9_orders.json"
)

const instructions = `You are a helpful shopping assistant for an online clothing and accessories store.

Your approach:
- Help customers browse the catalog using list_products, filtering by category, price, or color when asked
- Answer questions about specific products (price, sizes, colors)
- When the customer decides to buy, confirm the items and quantities, then use create_order
- Use get_last_order when the customer asks about their most recent order
- Be concise; this is a voice conversation

Important:
- Only sell products that exist in the catalog
- Always read back the order total before confirming
- Prices are in Indian Rupees`

type catalog struct {
    Products []product `json:"products"`
}

type product struct {
    ID          string `json:"id"`
    Name        string `json:"name"`
    Category    string `json:"category"`
    Price       int    `json:"price"`
    Currency    string `json:"currency"`
    Color       string `json:"color"`
    Size        string `json:"size"`
    Description string `json:"description"`
}

func (c *catalog) find(id string) (product, bool) {
    for _, p := range c.Products {
        if p.ID == id {
            return p, true
        }
    }
    return product{}, false
}

type orderLine struct {
    ProductID  string `json:"product_id"`
    Name       string `json:"name"`
    Quantity   int    `json:"quantity"`
    UnitAmount int    `json:"unit_amount"`
    Currency   string `json:"currency"`
}

type order struct {
    ID        string      `json:"id"`
    LineItems []orderLine `json:"line_items"`
    Total     int         `json:"total"`
    Currency  string      `json:"currency"`
    CreatedAt string      `json:"created_at"`
    Status    string      `json:"status"`
}

type listInput struct {
    Category string `json:"category,omitempty" jsonschema_description:"Optional category filter (e.g. tshirts, shoes, accessories)."`
    MaxPrice int    `json:"max_price,omitempty" jsonschema_description:"Optional maximum price in rupees."`
    Color    string `json:"color,omitempty" jsonschema_description:"Optional color filter."`
}

type lineItemInput struct {
    ProductID string `json:"product_id" jsonschema_description:"Catalog ID of the product."`
    Quantity  int    `json:"quantity" jsonschema_description:"Quantity to order."`
}

type createOrderInput struct {
    LineItems []lineItemInput `json:"line_items" jsonschema_description:"Products and quantities to order."`
}

const maxListed = 10

func New(docs *docstore.Store) *persona.Descriptor {
    var cat catalog
    if err := docs.LoadInto(catalogDoc, &cat); err != nil {
        log.Printf("shop: loading %s: %v", catalogDoc, err)
    }

    tools := []tool.Definition{
        {
            Name:        "list_products",
            Description: "List products from the catalog, optionally filtered.",
            InputSchema: tool.Schema[listInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in listInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                var lines []string
                for _, p := range cat.Products {
                    if in.Category != "" && !strings.EqualFold(p.Category, in.Category) {
                        continue
                    }
                    if in.MaxPrice > 0 && p.Price > in.MaxPrice {
                        continue
                    }
                    if in.Color != "" && !strings.EqualFold(p.Color, in.Color) {
                        continue
                    }
                    lines = append(lines, fmt.Sprintf("- %s (%s, %s) - ₹%d [ID: %s]", p.Name, p.Color, p.Size, p.Price, p.ID))
                    if len(lines) == maxListed {
                        break
                    }
                }
                if len(lines) == 0 {
                    return "No products match those filters. Try loosening the category, price, or color.", nil
                }
                return "Available products:\n" + strings.Join(lines, "\n"), nil
            },
        },
        {
            Name:        "create_order",
            Description: "Create an order for one or more products.",
            InputSchema: tool.Schema[createOrderInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in createOrderInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                if len(in.LineItems) == 0 {
                    return "There's nothing to order yet. Tell me which products you'd like.", nil
                }

                // Validate every line before writing anything.
                var lines []orderLine
                total := 0
                for _, li := range in.LineItems {
                    p, ok := cat.find(li.ProductID)
                    if !ok {
                        return fmt.Sprintf("Product with ID %q not found in catalog.", li.ProductID), nil
                    }
                    qty := li.Quantity
                    if qty <= 0 {
                        qty = 1
                    }
                    lines = append(lines, orderLine{
                        ProductID:  p.ID,
                        Name:       p.Name,
                        Quantity:   qty,
                        UnitAmount: p.Price,
                        Currency:   p.Currency,
                    })
                    total += qty * p.Price
                }

                o := order{
                    ID:        "ORD-" + time.Now().Format("20060102150405"),
                    LineItems: lines,
                    Total:     total,
                    Currency:  "INR",
                    CreatedAt: time.Now().Format(time.RFC3339),
                    Status:    "PENDING",
                }
                if err := docs.Append(ordersDoc, o); err != nil {
                    return "I couldn't save your order. Please try again.", nil
                }
                log.Printf("shop: order created room=%s id=%s total=%d", inv.Room, o.ID, total)

                names := make([]string, 0, len(lines))
                for _, l := range lines {
                    names = append(names, fmt.Sprintf("%dx %s", l.Quantity, l.Name))
                }
                return fmt.Sprintf("Order %s created: %s. Total: ₹%d. Status: PENDING.", o.ID, strings.Join(names, ", "), total), nil
            },
        },
        {
            Name:        "get_last_order",
            Description: "Get the customer's most recent order.",
            InputSchema: tool.Schema[struct{}](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var orders []order
                if err := docs.LoadInto(ordersDoc, &orders); err != nil || len(orders) == 0 {
                    return "You haven't placed any orders yet.", nil
                }
                last := orders[len(orders)-1]
                names := make([]string, 0, len(last.LineItems))
                for _, l := range last.LineItems {
                    names = append(names, fmt.Sprintf("%dx %s", l.Quantity, l.Name))
                }
                return fmt.Sprintf("Your last order %s: %s. Total: ₹%d. Status: %s.",
                    last.ID, strings.Join(names, ", "), last.Total, last.Status), nil
            },
        },
    }

    return &persona.Descriptor{
        Name:         "day9",
        Title:        "Shop Assistant",
        Instructions: instructions,
        Voice:        persona.Voice{ID: "en-US-alicia", Style: "Conversation"},
        Tools:        tool.NewDispatcher("day9", tools),
    }
}
