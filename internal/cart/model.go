package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one product line in the cart. Quantity is nil when a persisted
// snapshot carried no quantity for the line.
type Item struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	ImageURL string          `json:"image_url"`
	Price    decimal.Decimal `json:"price"`
	Quantity *int            `json:"quantity,omitempty"`
}

// QuantityOrZero treats an undefined quantity as zero.
func (i Item) QuantityOrZero() int {
	if i.Quantity == nil {
		return 0
	}
	return *i.Quantity
}

// AddItemInput is an Item without its quantity.
type AddItemInput struct {
	ID       string
	Title    string
	ImageURL string
	Price    decimal.Decimal
}

// Qty is a convenience for building items with a defined quantity.
func Qty(n int) *int {
	return &n
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		if item.Quantity != nil {
			item.Quantity = Qty(*item.Quantity)
		}
		out[i] = item
	}
	return out
}

func indexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
