package cart

import (
	"strings"

	cartdto "github.com/angelmondragon/packfinderz-cart/api/controllers/cart/dto"
	"github.com/angelmondragon/packfinderz-cart/internal/cart"
)

func toAddItemInput(payload cartdto.AddItemRequest) cart.AddItemInput {
	return cart.AddItemInput{
		ID:       strings.TrimSpace(payload.ID),
		Title:    strings.TrimSpace(payload.Title),
		ImageURL: strings.TrimSpace(payload.ImageURL),
		Price:    payload.Price,
	}
}
