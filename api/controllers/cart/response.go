package cart

import (
	cartdto "github.com/angelmondragon/packfinderz-cart/api/controllers/cart/dto"
	"github.com/angelmondragon/packfinderz-cart/internal/cart"
)

func newCartItems(items []cart.Item) []cartdto.CartItem {
	out := make([]cartdto.CartItem, 0, len(items))
	for _, item := range items {
		out = append(out, cartdto.CartItem{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
			Price:    item.Price.String(),
			Quantity: item.Quantity,
		})
	}
	return out
}
