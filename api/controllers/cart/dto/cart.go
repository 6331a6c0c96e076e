package cartdto

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-cart/internal/summary"
)

// AddItemRequest is the body of POST /api/cart/items.
type AddItemRequest struct {
	ID       string          `json:"id" validate:"required,max=128"`
	Title    string          `json:"title" validate:"max=256"`
	ImageURL string          `json:"image_url" validate:"max=2048"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
}

// CartItem is a cart line as exposed through the API. Quantity is omitted
// when the stored line never had one.
type CartItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Price    string `json:"price"`
	Quantity *int   `json:"quantity,omitempty"`
}

// Cart is the response of GET /api/cart.
type Cart struct {
	Products []CartItem `json:"products"`
}

// MutationResult is returned by every cart mutation. Persisted is false when
// the change is held in memory only because storage rejected the write.
type MutationResult struct {
	Products  []CartItem      `json:"products"`
	Summary   summary.Summary `json:"summary"`
	Persisted bool            `json:"persisted"`
}

// Navigation is the response of POST /api/cart/summary/activate.
type Navigation struct {
	Screen string `json:"screen"`
}
