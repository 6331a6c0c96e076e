package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/packfinderz-cart/internal/cart"
	"github.com/angelmondragon/packfinderz-cart/internal/navigation"
	"github.com/angelmondragon/packfinderz-cart/pkg/config"
	"github.com/angelmondragon/packfinderz-cart/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-cart/pkg/logger"
	"github.com/angelmondragon/packfinderz-cart/pkg/metrics"
	"github.com/angelmondragon/packfinderz-cart/pkg/money"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App:      config.AppConfig{Env: "dev"},
		Storage:  config.StorageConfig{Backend: "memory", Key: "products", Timeout: time.Second},
		Currency: config.CurrencyConfig{Code: "USD", Symbol: "$", DecimalSeparator: ".", GroupSeparator: ","},
	}
	logg := logger.Nop()
	reg := prometheus.NewRegistry()
	m := metrics.NewCartMetrics(reg)

	storage := kvstore.NewMemory()
	require.NoError(t, storage.Set(context.Background(), "products", `[{"id":"1","title":"Shoe","image_url":"","price":"10","quantity":2}]`))
	store, err := cart.NewStore(storage, logg, m, cart.Options{Key: cfg.Storage.Key})
	require.NoError(t, err)
	require.NoError(t, store.Initialize(context.Background()))

	formatter, err := money.NewFormatter(cfg.Currency)
	require.NoError(t, err)

	return NewRouter(cfg, logg, store, storage, formatter, navigation.NewLogged(logg, m), reg)
}

func TestRouterServesCartRoutes(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/api/cart", http.StatusOK},
		{http.MethodGet, "/api/cart/summary", http.StatusOK},
		{http.MethodPost, "/api/cart/items/1/increment", http.StatusOK},
		{http.MethodPost, "/api/cart/items/1/decrement", http.StatusOK},
		{http.MethodPost, "/api/cart/summary/activate", http.StatusAccepted},
		{http.MethodGet, "/api/cart/items/1/increment", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, resp.Code, "%s %s", tc.method, tc.path)
		if tc.status < 400 {
			assert.NotEmpty(t, resp.Header().Get("X-Request-Id"), "%s %s", tc.method, tc.path)
		}
	}
}

func TestRouterExposesMetrics(t *testing.T) {
	router := newTestRouter(t)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/cart/items/1/increment", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/cart/summary/activate", nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `cart_mutations_total{op="increment",outcome="changed"} 1`)
	assert.Contains(t, body, `cart_navigations_total{screen="Cart"} 1`)
}
