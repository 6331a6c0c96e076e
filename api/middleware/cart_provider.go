package middleware

import (
	"net/http"

	"github.com/angelmondragon/packfinderz-cart/internal/cart"
)

// CartProvider scopes the cart store to every request below it. Handlers
// resolve it with cart.FromContext.
func CartProvider(c cart.Cart) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(cart.WithStore(r.Context(), c)))
		})
	}
}
