package cart

import (
	"context"

	pkgerrors "github.com/angelmondragon/packfinderz-cart/pkg/errors"
)

type ctxKey struct{}

const missingProviderMessage = "cart store must be used within a cart provider"

// WithStore scopes c to ctx so downstream consumers can resolve it.
func WithStore(ctx context.Context, c Cart) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext resolves the cart scoped by WithStore. Calling it outside a
// provider scope is a programming error reported as CodeContextMissing.
func FromContext(ctx context.Context) (Cart, error) {
	if ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(Cart); ok && c != nil {
			return c, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeContextMissing, missingProviderMessage)
}

// MustFromContext is FromContext that panics when no provider is in scope.
func MustFromContext(ctx context.Context) Cart {
	c, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return c
}
