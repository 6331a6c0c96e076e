package summary

import (
	"context"
	"fmt"

	"github.com/angelmondragon/packfinderz-cart/internal/cart"
	"github.com/shopspring/decimal"
)

// CartScreen is the screen the summary navigates to when activated.
const CartScreen = "Cart"

// Formatter renders an amount as a currency string.
type Formatter interface {
	Format(amount decimal.Decimal) string
}

// Navigator opens a screen by name. It is fire-and-forget.
type Navigator interface {
	Navigate(ctx context.Context, screen string)
}

type productsReader interface {
	Products() []cart.Item
}

// Summary is what the floating cart widget displays.
type Summary struct {
	TotalPrice     string `json:"total_price"`
	TotalItemCount int    `json:"total_item_count"`
}

// View derives totals from the cart on every render.
type View struct {
	cart      productsReader
	formatter Formatter
	navigator Navigator
}

func NewView(c productsReader, formatter Formatter, navigator Navigator) (*View, error) {
	if c == nil {
		return nil, fmt.Errorf("cart required")
	}
	if formatter == nil {
		return nil, fmt.Errorf("formatter required")
	}
	if navigator == nil {
		return nil, fmt.Errorf("navigator required")
	}
	return &View{cart: c, formatter: formatter, navigator: navigator}, nil
}

// Render computes the summary for the current cart contents.
func (v *View) Render() Summary {
	return v.summarize(v.cart.Products())
}

// RenderItems computes the summary for an explicit list of items.
func (v *View) RenderItems(items []cart.Item) Summary {
	return v.summarize(items)
}

func (v *View) summarize(items []cart.Item) Summary {
	return Summary{
		TotalPrice:     v.formatter.Format(TotalPrice(items)),
		TotalItemCount: TotalItemCount(items),
	}
}

// Activate opens the cart detail screen.
func (v *View) Activate(ctx context.Context) {
	v.navigator.Navigate(ctx, CartScreen)
}
