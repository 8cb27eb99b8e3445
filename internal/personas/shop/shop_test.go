package shop

import (
    "context"
    "encoding/json"
    "testing"

    "github.com/stretchr/testify/require"

    "voicedays/agent/internal/docstore"
)

const testCatalog = `{
  "products": [
    {"id": "tshirt_black_m", "name": "Classic Black Tee", "category": "tshirts", "price": 799, "currency": "INR", "color": "black", "size": "M", "description": "Soft cotton tee."},
    {"id": "tshirt_white_l", "name": "Classic White Tee", "category": "tshirts", "price": 799, "currency": "INR", "color": "white", "size": "L", "description": "Soft cotton tee."},
    {"id": "sneaker_red_9", "name": "Street Sneaker", "category": "shoes", "price": 2999, "currency": "INR", "color": "red", "size": "9", "description": "Everyday sneaker."}
  ]
}`

func newTestDocs(t *testing.T) *docstore.Store {
    t.Helper()
    docs := docstore.New(t.TempDir())
    require.NoError(t, docs.Save(catalogDoc, json.RawMessage(testCatalog)))
    return docs
}

func TestListProductsFilters(t *testing.T) {
    d := New(newTestDocs(t))
    ctx := context.Background()

    out := d.Tools.Dispatch(ctx, "room1", "list_products", []byte(`{"category":"tshirts"}`))
    require.Contains(t, out, "Classic Black Tee")
    require.Contains(t, out, "Classic White Tee")
    require.NotContains(t, out, "Street Sneaker")

    out = d.Tools.Dispatch(ctx, "room1", "list_products", []byte(`{"max_price":1000,"color":"white"}`))
    require.Contains(t, out, "Classic White Tee")
    require.NotContains(t, out, "Classic Black Tee")

    out = d.Tools.Dispatch(ctx, "room1", "list_products", []byte(`{"category":"hats"}`))
    require.Contains(t, out, "No products match")
}

func TestCreateOrderValidatesBeforeWriting(t *testing.T) {
    docs := newTestDocs(t)
    d := New(docs)
    ctx := context.Background()

    out := d.Tools.Dispatch(ctx, "room1", "create_order",
        []byte(`{"line_items":[{"product_id":"tshirt_black_m","quantity":1},{"product_id":"nope","quantity":2}]}`))
    require.Equal(t, `Product with ID "nope" not found in catalog.`, out)

    var orders []order
    err := docs.LoadInto(ordersDoc, &orders)
    require.Error(t, err) // nothing was written
}

func TestCreateOrderAndGetLastOrder(t *testing.T) {
    docs := newTestDocs(t)
    d := New(docs)
    ctx := context.Background()

    out := d.Tools.Dispatch(ctx, "room1", "get_last_order", nil)
    require.Equal(t, "You haven't placed any orders yet.", out)

    out = d.Tools.Dispatch(ctx, "room1", "create_order",
        []byte(`{"line_items":[{"product_id":"tshirt_black_m","quantity":2},{"product_id":"sneaker_red_9","quantity":1}]}`))
    require.Contains(t, out, "2x Classic Black Tee")
    require.Contains(t, out, "Total: ₹4597")
    require.Contains(t, out, "Status: PENDING")

    var orders []order
    require.NoError(t, docs.LoadInto(ordersDoc, &orders))
    require.Len(t, orders, 1)
    require.Equal(t, 4597, orders[0].Total)
    require.Equal(t, "INR", orders[0].Currency)
    require.Equal(t, "PENDING", orders[0].Status)
    require.Len(t, orders[0].LineItems, 2)
    require.Equal(t, 799, orders[0].LineItems[0].UnitAmount)

    out = d.Tools.Dispatch(ctx, "room1", "get_last_order", nil)
    require.Contains(t, out, "2x Classic Black Tee")
    require.Contains(t, out, "Total: ₹4597")
}

func TestCreateOrderEmptyLineItems(t *testing.T) {
    d := New(newTestDocs(t))
    out := d.Tools.Dispatch(context.Background(), "room1", "create_order", []byte(`{"line_items":[]}`))
    require.Contains(t, out, "nothing to order")
}
