package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/packfinderz-cart/api/controllers"
	cartcontrollers "github.com/angelmondragon/packfinderz-cart/api/controllers/cart"
	"github.com/angelmondragon/packfinderz-cart/api/middleware"
	"github.com/angelmondragon/packfinderz-cart/internal/cart"
	"github.com/angelmondragon/packfinderz-cart/internal/summary"
	"github.com/angelmondragon/packfinderz-cart/pkg/config"
	"github.com/angelmondragon/packfinderz-cart/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-cart/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *cart.Store,
	storage kvstore.Pinger,
	formatter summary.Formatter,
	navigator summary.Navigator,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Get("/healthz", controllers.HealthReady(cfg, logg, storage, store))
	r.Get("/health/live", controllers.HealthLive(cfg))
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.CartProvider(store))

		r.Get("/", cartcontrollers.CartFetch(logg))
		r.Post("/items", cartcontrollers.CartAddItem(formatter, navigator, logg))
		r.Post("/items/{id}/increment", cartcontrollers.CartIncrement(formatter, navigator, logg))
		r.Post("/items/{id}/decrement", cartcontrollers.CartDecrement(formatter, navigator, logg))

		r.Route("/summary", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartSummary(formatter, navigator, logg))
			r.Post("/activate", cartcontrollers.CartSummaryActivate(formatter, navigator, logg))
		})
	})

	return r
}
