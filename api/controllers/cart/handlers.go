package cart

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/angelmondragon/packfinderz-cart/api/controllers/cart/dto"
	"github.com/angelmondragon/packfinderz-cart/api/responses"
	"github.com/angelmondragon/packfinderz-cart/api/validators"
	"github.com/angelmondragon/packfinderz-cart/internal/cart"
	"github.com/angelmondragon/packfinderz-cart/internal/summary"
	pkgerrors "github.com/angelmondragon/packfinderz-cart/pkg/errors"
	"github.com/angelmondragon/packfinderz-cart/pkg/logger"
)

// CartFetch lists the current cart lines.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := cart.FromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartdto.Cart{Products: newCartItems(c.Products())})
	}
}

// CartAddItem handles POST /api/cart/items.
func CartAddItem(formatter summary.Formatter, navigator summary.Navigator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mutate(w, r, formatter, navigator, logg, cart.OpAdd, toAddItemInput(payload))
	}
}

// CartIncrement handles POST /api/cart/items/{id}/increment.
func CartIncrement(formatter summary.Formatter, navigator summary.Navigator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mutate(w, r, formatter, navigator, logg, cart.OpIncrement, cart.AddItemInput{ID: id})
	}
}

// CartDecrement handles POST /api/cart/items/{id}/decrement.
func CartDecrement(formatter summary.Formatter, navigator summary.Navigator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mutate(w, r, formatter, navigator, logg, cart.OpDecrement, cart.AddItemInput{ID: id})
	}
}

// CartSummary renders the floating cart totals.
func CartSummary(formatter summary.Formatter, navigator summary.Navigator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := viewFromContext(r.Context(), formatter, navigator)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view.Render())
	}
}

// CartSummaryActivate opens the cart screen. It never mutates the cart.
func CartSummaryActivate(formatter summary.Formatter, navigator summary.Navigator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := viewFromContext(r.Context(), formatter, navigator)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view.Activate(r.Context())
		responses.WriteSuccessStatus(w, http.StatusAccepted, cartdto.Navigation{Screen: summary.CartScreen})
	}
}

// mutate applies op to the provided cart and answers with the items that op
// committed. A storage write failure keeps the in-memory change, so the caller
// still gets the new state with persisted=false.
func mutate(w http.ResponseWriter, r *http.Request, formatter summary.Formatter, navigator summary.Navigator, logg *logger.Logger, op cart.Op, input cart.AddItemInput) {
	ctx := r.Context()
	c, err := cart.FromContext(ctx)
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return
	}
	view, err := summary.NewView(c, formatter, navigator)
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build cart summary"))
		return
	}

	persisted := true
	items, err := c.Apply(ctx, op, input)
	if err != nil {
		if !pkgerrors.HasCode(err, pkgerrors.CodeStorageWrite) {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		persisted = false
	}

	responses.WriteSuccess(w, cartdto.MutationResult{
		Products:  newCartItems(items),
		Summary:   view.RenderItems(items),
		Persisted: persisted,
	})
}

func viewFromContext(ctx context.Context, formatter summary.Formatter, navigator summary.Navigator) (*summary.View, error) {
	c, err := cart.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	view, err := summary.NewView(c, formatter, navigator)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build cart summary")
	}
	return view, nil
}

func itemIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	return id, nil
}
